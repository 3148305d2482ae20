package api

import "fmt"

// Kind identifies one of the three binary post interactions. The three
// behaviors are identical except for their endpoint and response field, so the
// client and the widget treat them as one parameterized operation.
type Kind int

const (
	KindLike Kind = iota
	KindShare
	KindSave
)

// Kinds lists all interaction kinds in display order.
var Kinds = [3]Kind{KindLike, KindShare, KindSave}

func (k Kind) String() string {
	switch k {
	case KindLike:
		return "like"
	case KindShare:
		return "share"
	case KindSave:
		return "save"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// TogglePath returns the toggle endpoint for a post.
func (k Kind) TogglePath(postID string) string {
	return fmt.Sprintf("/posts/%s/%s", postID, k.String())
}

// ResponseField names the JSON field carrying the server's resulting state
// for this kind.
func (k Kind) ResponseField() string {
	switch k {
	case KindShare:
		return "isShared"
	case KindSave:
		return "isSaved"
	}
	return "isLiked"
}

// FailureNotice is the user-facing message for a failed toggle.
func (k Kind) FailureNotice() string {
	return fmt.Sprintf("Failed to %s post", k.String())
}

// state extracts the authoritative boolean for this kind from a toggle
// response. ok is false when the server omitted the field.
func (k Kind) state(resp *ToggleResponse) (bool, bool) {
	var v *bool
	switch k {
	case KindLike:
		v = resp.IsLiked
	case KindShare:
		v = resp.IsShared
	case KindSave:
		v = resp.IsSaved
	}
	if v == nil {
		return false, false
	}
	return *v, true
}
