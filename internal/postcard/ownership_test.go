package postcard

import (
	"testing"

	"glimpse/internal/api"
)

func TestResolveOwnership_AbsentViewer(t *testing.T) {
	post := &api.Post{
		ID:    "p1",
		Likes: []api.InteractionRef{{ActorID: "u1"}},
	}
	got := ResolveOwnership(nil, post)
	if got.IsLiked || got.IsShared || got.IsSaved {
		t.Fatalf("absent viewer must see no active toggles, got %+v", got)
	}
}

func TestResolveOwnership_Membership(t *testing.T) {
	viewer := &api.Viewer{ID: "u1"}
	post := &api.Post{
		ID:     "p1",
		Likes:  []api.InteractionRef{{ActorID: "u2"}, {ActorID: "u1"}},
		Shares: []api.InteractionRef{{ActorID: "u2"}},
		// Saves absent: treated as an empty list.
	}
	got := ResolveOwnership(viewer, post)
	if !got.IsLiked {
		t.Errorf("IsLiked = false, want true")
	}
	if got.IsShared {
		t.Errorf("IsShared = true, want false")
	}
	if got.IsSaved {
		t.Errorf("IsSaved = true, want false for absent list")
	}
}

func TestSeedToggles_CountsIndependentOfOwnership(t *testing.T) {
	viewer := &api.Viewer{ID: "ux"}
	post := &api.Post{
		ID:    "p1",
		Likes: []api.InteractionRef{{ActorID: "a"}, {ActorID: "b"}, {ActorID: "c"}},
	}
	toggles := seedToggles(viewer, post)

	like := toggles[api.KindLike]
	if like.Count != 3 {
		t.Errorf("like count = %d, want 3 (list length)", like.Count)
	}
	if like.Active {
		t.Errorf("like active for non-member viewer")
	}
	if toggles[api.KindShare].Count != 0 || toggles[api.KindSave].Count != 0 {
		t.Errorf("absent lists must seed zero counts")
	}
}
