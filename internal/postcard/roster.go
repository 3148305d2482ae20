package postcard

import "glimpse/internal/api"

// previewLimit is how many comments a card shows before offering the
// expanded view.
const previewLimit = 2

// Roster is the ordered local projection of a post's comments. The server
// owns ordering: comments are appended only from server-returned records,
// in response order.
type Roster struct {
	comments []api.Comment
}

// NewRoster copies the initial comment sequence so the widget owns its
// projection exclusively.
func NewRoster(initial []api.Comment) Roster {
	comments := make([]api.Comment, len(initial))
	copy(comments, initial)
	return Roster{comments: comments}
}

// Append adds a server-confirmed comment to the end of the sequence.
func (r *Roster) Append(c api.Comment) {
	r.comments = append(r.comments, c)
}

// Remove drops the comment with the given id. Removing an absent id is a
// no-op, which makes duplicate delete responses harmless.
func (r *Roster) Remove(commentID string) {
	kept := r.comments[:0]
	for _, c := range r.comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	r.comments = kept
}

// Preview returns the first limit comments in current order. Pure
// projection; the roster is not mutated.
func (r *Roster) Preview(limit int) []api.Comment {
	if limit > len(r.comments) {
		limit = len(r.comments)
	}
	if limit < 0 {
		limit = 0
	}
	return r.comments[:limit]
}

// HasOverflow reports whether the roster holds more than limit comments,
// i.e. whether an expand affordance should be offered.
func (r *Roster) HasOverflow(limit int) bool {
	return len(r.comments) > limit
}

// All returns the full sequence in current order.
func (r *Roster) All() []api.Comment { return r.comments }

func (r *Roster) Len() int { return len(r.comments) }

// At returns the i-th comment, if it exists.
func (r *Roster) At(i int) (api.Comment, bool) {
	if i < 0 || i >= len(r.comments) {
		return api.Comment{}, false
	}
	return r.comments[i], true
}
