package postcard

import "glimpse/internal/api"

// Ownership holds the three "is mine" flags for the current viewer.
type Ownership struct {
	IsLiked  bool
	IsShared bool
	IsSaved  bool
}

// ResolveOwnership derives the viewer's active toggles from the post's
// interaction lists. An absent viewer sees no active toggles; a missing list
// is an empty list, never an error. The result seeds toggle booleans only;
// counters are seeded from list lengths independently.
func ResolveOwnership(viewer *api.Viewer, post *api.Post) Ownership {
	if viewer == nil {
		return Ownership{}
	}
	return Ownership{
		IsLiked:  contains(post.Likes, viewer.ID),
		IsShared: contains(post.Shares, viewer.ID),
		IsSaved:  contains(post.Saves, viewer.ID),
	}
}

// For returns the flag for the given interaction kind.
func (o Ownership) For(kind api.Kind) bool {
	switch kind {
	case api.KindLike:
		return o.IsLiked
	case api.KindShare:
		return o.IsShared
	case api.KindSave:
		return o.IsSaved
	}
	return false
}

func contains(refs []api.InteractionRef, actorID string) bool {
	for _, ref := range refs {
		if ref.ActorID == actorID {
			return true
		}
	}
	return false
}
