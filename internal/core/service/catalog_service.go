package service

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kommer/client-go/internal/core/domain"
	"github.com/kommer/client-go/internal/core/ports"
)

// CatalogService holds the most recently fetched posts, branches and
// businesses for browsing. Refresh is explicit; filtering is pure and never
// touches the network.
type CatalogService struct {
	gateway ports.Gateway
	logger  zerolog.Logger

	mu         sync.RWMutex
	posts      []domain.Post
	branches   []domain.Branch
	businesses []domain.Business
}

// FilterResult is the slice of the catalog matching a search.
type FilterResult struct {
	Posts    []domain.Post
	Branches []domain.Branch
}

func NewCatalogService(gateway ports.Gateway, logger zerolog.Logger) *CatalogService {
	return &CatalogService{gateway: gateway, logger: logger}
}

// Refresh re-fetches posts and branches from the backend and replaces the
// snapshot.
func (c *CatalogService) Refresh(ctx context.Context) error {
	posts, err := c.gateway.ListPosts(ctx)
	if err != nil {
		return err
	}
	branches, err := c.gateway.ListBranches(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.posts = posts
	c.branches = branches
	c.mu.Unlock()
	return nil
}

// RefreshBusinesses re-fetches the business list.
func (c *CatalogService) RefreshBusinesses(ctx context.Context) error {
	businesses, err := c.gateway.ListBusinesses(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.businesses = businesses
	c.mu.Unlock()
	return nil
}

// SetPosts replaces the post snapshot directly, for pages that already hold
// fresh results (e.g. the favorites view).
func (c *CatalogService) SetPosts(posts []domain.Post) {
	c.mu.Lock()
	c.posts = append([]domain.Post(nil), posts...)
	c.mu.Unlock()
}

// Posts returns a copy of the current post snapshot.
func (c *CatalogService) Posts() []domain.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Post(nil), c.posts...)
}

// Branches returns a copy of the current branch snapshot.
func (c *CatalogService) Branches() []domain.Branch {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Branch(nil), c.branches...)
}

// Businesses returns a copy of the current business snapshot.
func (c *CatalogService) Businesses() []domain.Business {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Business(nil), c.businesses...)
}

// Filter narrows the snapshot by a free-text term and a category. The term
// is a case-insensitive substring match over post title/content and branch
// description/location. Categories other than "all" and "branch" drop
// branches; "branch" drops posts.
func (c *CatalogService) Filter(term string, cat domain.Category) FilterResult {
	c.mu.RLock()
	posts := c.posts
	branches := c.branches
	c.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(term))
	if needle != "" {
		var matchedPosts []domain.Post
		for _, p := range posts {
			if strings.Contains(strings.ToLower(p.Title), needle) ||
				strings.Contains(strings.ToLower(p.Content), needle) {
				matchedPosts = append(matchedPosts, p)
			}
		}
		posts = matchedPosts

		var matchedBranches []domain.Branch
		for _, b := range branches {
			if strings.Contains(strings.ToLower(b.Description), needle) ||
				strings.Contains(strings.ToLower(b.Location), needle) {
				matchedBranches = append(matchedBranches, b)
			}
		}
		branches = matchedBranches
	}

	switch cat {
	case domain.CategoryAll:
		return FilterResult{Posts: posts, Branches: branches}
	case domain.CategoryBranches:
		return FilterResult{Branches: branches}
	default:
		var matched []domain.Post
		for _, p := range posts {
			if domain.Category(p.Type) == cat {
				matched = append(matched, p)
			}
		}
		return FilterResult{Posts: matched}
	}
}
