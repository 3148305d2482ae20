package postcard

import "glimpse/internal/api"

// ToggleState is the reconciled local state of one binary interaction on one
// post. The server's response boolean is authoritative; the counter is local
// and may be stale relative to other viewers, so Apply adjusts it relative to
// the confirmed state instead of recomputing it.
type ToggleState struct {
	Kind   api.Kind
	Active bool
	Count  int
}

// Apply reconciles the server's resulting state into the local state.
// The counter floors at zero: a stale local count (another tab, another
// device) must never produce a visible negative number.
func (t *ToggleState) Apply(newActive bool) {
	if newActive {
		t.Count++
	} else if t.Count > 0 {
		t.Count--
	}
	t.Active = newActive
}

// seedToggles builds the three reconcilers for a post. Counts come from list
// lengths directly, booleans from ownership resolution; the two are seeded
// independently so a resolver problem cannot corrupt counts.
func seedToggles(viewer *api.Viewer, post *api.Post) [3]ToggleState {
	owned := ResolveOwnership(viewer, post)
	var out [3]ToggleState
	for i, kind := range api.Kinds {
		out[i] = ToggleState{
			Kind:   kind,
			Active: owned.For(kind),
			Count:  len(post.List(kind)),
		}
	}
	return out
}
