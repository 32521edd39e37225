package service

import (
	"context"
	"sync"

	"github.com/kommer/client-go/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub gateway and token store
// ---------------------------------------------------------------------------

type stubGateway struct {
	mu sync.Mutex

	loginToken string
	loginErr   error

	me      *domain.User
	meErr   error
	meCalls int

	posts      []domain.Post
	postErr    error
	branches   []domain.Branch
	businesses []domain.Business

	favourites  []int
	addErr      error
	removeErr   error
	addCalls    []int
	removeCalls []int

	analytics *domain.BusinessAnalytics
	viewCalls []int
	trackErr  error

	answer string
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (g *stubGateway) Login(_ context.Context, _ domain.Credentials) (string, error) {
	return g.loginToken, g.loginErr
}

func (g *stubGateway) RegisterClient(_ context.Context, _ domain.ClientRegistration) (string, error) {
	return g.loginToken, g.loginErr
}

func (g *stubGateway) RegisterBusiness(_ context.Context, _ domain.BusinessRegistration) (string, error) {
	return g.loginToken, g.loginErr
}

func (g *stubGateway) Me(_ context.Context) (*domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.meCalls++
	if g.meErr != nil {
		return nil, g.meErr
	}
	return cloneUser(g.me), nil
}

func (g *stubGateway) ListPosts(_ context.Context) ([]domain.Post, error) {
	if g.postErr != nil {
		return nil, g.postErr
	}
	return append([]domain.Post(nil), g.posts...), nil
}

func (g *stubGateway) GetPost(_ context.Context, id int) (*domain.Post, error) {
	if g.postErr != nil {
		return nil, g.postErr
	}
	for _, p := range g.posts {
		if p.ID == id {
			clone := p
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (g *stubGateway) CreatePost(_ context.Context, draft domain.PostDraft) (*domain.Post, error) {
	post := domain.Post{ID: len(g.posts) + 1, Title: draft.Title, Content: draft.Content, Type: draft.Type}
	g.posts = append(g.posts, post)
	return &post, nil
}

func (g *stubGateway) ListBusinesses(_ context.Context) ([]domain.Business, error) {
	return append([]domain.Business(nil), g.businesses...), nil
}

func (g *stubGateway) GetBusiness(_ context.Context, id int) (*domain.Business, error) {
	for _, b := range g.businesses {
		if b.ID == id {
			clone := b
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (g *stubGateway) ListBusinessBranches(_ context.Context, businessID int) ([]domain.Branch, error) {
	var out []domain.Branch
	for _, b := range g.branches {
		if b.BusinessID == businessID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (g *stubGateway) ListBranches(_ context.Context) ([]domain.Branch, error) {
	return append([]domain.Branch(nil), g.branches...), nil
}

func (g *stubGateway) ListFavouriteIDs(_ context.Context) ([]int, error) {
	return append([]int(nil), g.favourites...), nil
}

func (g *stubGateway) AddFavourite(_ context.Context, postID int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addCalls = append(g.addCalls, postID)
	return g.addErr
}

func (g *stubGateway) RemoveFavourite(_ context.Context, postID int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeCalls = append(g.removeCalls, postID)
	return g.removeErr
}

func (g *stubGateway) BusinessAnalytics(_ context.Context) (*domain.BusinessAnalytics, error) {
	if g.analytics == nil {
		return nil, domain.ErrNotFound
	}
	clone := *g.analytics
	return &clone, nil
}

func (g *stubGateway) RegisterView(_ context.Context, postID int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.viewCalls = append(g.viewCalls, postID)
	return g.trackErr
}

func (g *stubGateway) RegisterPromoCopy(_ context.Context, postID int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.viewCalls = append(g.viewCalls, postID)
	return g.trackErr
}

func (g *stubGateway) AskAssistant(_ context.Context, _ string) (string, error) {
	return g.answer, nil
}

type memTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *memTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *memTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
