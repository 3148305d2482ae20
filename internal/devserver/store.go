package devserver

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"glimpse/internal/api"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// Store holds the server's feed state in memory. The real backend owns this
// data; for development it lives and dies with the process.
type Store struct {
	mu      sync.Mutex
	order   []string
	posts   map[string]*api.Post
	byName  map[string]api.Viewer
	byID    map[string]api.Viewer
	nowFunc func() time.Time
}

func NewStore() *Store {
	return &Store{
		posts:   make(map[string]*api.Post),
		byName:  make(map[string]api.Viewer),
		byID:    make(map[string]api.Viewer),
		nowFunc: time.Now,
	}
}

// EnsureUser returns the user with the given name, creating it on first
// login.
func (s *Store) EnsureUser(username string) api.Viewer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byName[username]; ok {
		return u
	}
	u := api.Viewer{ID: uuid.New().String(), Username: username}
	s.byName[username] = u
	s.byID[u.ID] = u
	return u
}

func (s *Store) UserByID(id string) (api.Viewer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	return u, ok
}

// Feed returns the posts in server order. Posts are deep-copied: handlers
// marshal them after the lock is released, while in-place list splices keep
// mutating the store's backing arrays.
func (s *Store) Feed() []api.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Post, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, copyPost(s.posts[id]))
	}
	return out
}

func copyPost(p *api.Post) api.Post {
	cp := *p
	cp.Likes = append([]api.InteractionRef(nil), p.Likes...)
	cp.Shares = append([]api.InteractionRef(nil), p.Shares...)
	cp.Saves = append([]api.InteractionRef(nil), p.Saves...)
	cp.Comments = append([]api.Comment(nil), p.Comments...)
	return cp
}

// AddPost appends a post owned by author and returns it.
func (s *Store) AddPost(author api.Viewer, description, imageURL string) api.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &api.Post{
		ID:          uuid.New().String(),
		CreatedBy:   author,
		CreatedAt:   s.nowFunc(),
		Description: description,
		ImageURL:    imageURL,
	}
	s.posts[p.ID] = p
	s.order = append(s.order, p.ID)
	return *p
}

// ToggleInteraction flips the actor's membership in one interaction list and
// returns the resulting state: present after the call or not.
func (s *Store) ToggleInteraction(kind api.Kind, postID string, actor api.Viewer) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return false, ErrNotFound
	}

	list := p.List(kind)
	for i, ref := range list {
		if ref.ActorID == actor.ID {
			list = append(list[:i], list[i+1:]...)
			s.setList(p, kind, list)
			return false, nil
		}
	}
	list = append(list, api.InteractionRef{
		ActorID:   actor.ID,
		Username:  actor.Username,
		AvatarURL: actor.AvatarURL,
	})
	s.setList(p, kind, list)
	return true, nil
}

func (s *Store) setList(p *api.Post, kind api.Kind, list []api.InteractionRef) {
	switch kind {
	case api.KindLike:
		p.Likes = list
	case api.KindShare:
		p.Shares = list
	case api.KindSave:
		p.Saves = list
	}
}

// AddComment appends a comment and returns the stored record.
func (s *Store) AddComment(postID string, author api.Viewer, text string) (*api.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("blank comment")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return nil, ErrNotFound
	}
	c := api.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		CreatedBy: author,
		Text:      text,
		CreatedAt: s.nowFunc(),
	}
	p.Comments = append(p.Comments, c)
	return &c, nil
}

// DeleteComment removes a comment. Only its author may delete it.
func (s *Store) DeleteComment(postID, commentID, actorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return ErrNotFound
	}
	for i, c := range p.Comments {
		if c.ID != commentID {
			continue
		}
		if c.CreatedBy.ID != actorID {
			return ErrForbidden
		}
		p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
		return nil
	}
	return ErrNotFound
}

// DeletePost removes a post. Only its author may delete it.
func (s *Store) DeletePost(postID, actorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return ErrNotFound
	}
	if p.CreatedBy.ID != actorID {
		return ErrForbidden
	}
	delete(s.posts, postID)
	for i, id := range s.order {
		if id == postID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Seed fills the store with demo users and posts so the client has
// something to render on first run.
func (s *Store) Seed() {
	ann := s.EnsureUser("ann")
	ben := s.EnsureUser("ben")

	p1 := s.AddPost(ann, "morning on the pier", "https://example.com/pier.jpg")
	p2 := s.AddPost(ben, "second coffee", "")
	s.AddPost(ann, "no caption needed", "https://example.com/cat.jpg")

	s.ToggleInteraction(api.KindLike, p1.ID, ben)
	s.ToggleInteraction(api.KindSave, p1.ID, ben)
	s.AddComment(p1.ID, ben, "great light")
	s.AddComment(p1.ID, ann, "thanks!")
	s.AddComment(p1.ID, ben, "where is this?")
	s.ToggleInteraction(api.KindLike, p2.ID, ann)
}
