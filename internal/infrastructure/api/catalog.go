package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kommer/client-go/internal/core/domain"
)

// ListPosts fetches every published post.
func (c *Client) ListPosts(ctx context.Context) ([]domain.Post, error) {
	var wires []postWire
	err := c.do(ctx, call{
		endpoint: "list_posts",
		method:   http.MethodGet,
		path:     "/api/Post",
		out:      &wires,
	})
	if err != nil {
		return nil, err
	}
	return postsFromWire(wires), nil
}

// GetPost fetches one post by id.
func (c *Client) GetPost(ctx context.Context, id int) (*domain.Post, error) {
	var wire postWire
	err := c.do(ctx, call{
		endpoint: "get_post",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/post/%d", id),
		out:      &wire,
	})
	if err != nil {
		return nil, err
	}
	post := postFromWire(wire)
	return &post, nil
}

// CreatePost publishes a new post for the owned business. The draft's string
// post type is converted to the integer code the create endpoint expects.
func (c *Client) CreatePost(ctx context.Context, draft domain.PostDraft) (*domain.Post, error) {
	var wire postWire
	err := c.do(ctx, call{
		endpoint: "create_post",
		method:   http.MethodPost,
		path:     "/api/Post/create",
		body:     createRequestFromDraft(draft),
		out:      &wire,
	})
	if err != nil {
		return nil, err
	}
	post := postFromWire(wire)
	return &post, nil
}

// ListBusinesses fetches every business profile.
func (c *Client) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	var wires []businessWire
	err := c.do(ctx, call{
		endpoint: "list_businesses",
		method:   http.MethodGet,
		path:     "/api/business",
		out:      &wires,
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Business, len(wires))
	for i, w := range wires {
		out[i] = businessFromWire(w)
	}
	return out, nil
}

// GetBusiness fetches one business profile by id.
func (c *Client) GetBusiness(ctx context.Context, id int) (*domain.Business, error) {
	var wire businessWire
	err := c.do(ctx, call{
		endpoint: "get_business",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/business/%d", id),
		out:      &wire,
	})
	if err != nil {
		return nil, err
	}
	business := businessFromWire(wire)
	return &business, nil
}

// ListBusinessBranches fetches the branches of one business.
func (c *Client) ListBusinessBranches(ctx context.Context, businessID int) ([]domain.Branch, error) {
	var wires []branchWire
	err := c.do(ctx, call{
		endpoint: "list_business_branches",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/business/%d/branches", businessID),
		out:      &wires,
	})
	if err != nil {
		return nil, err
	}
	return branchesFromWire(wires), nil
}

// ListBranches fetches every branch across all businesses.
func (c *Client) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	var wires []branchWire
	err := c.do(ctx, call{
		endpoint: "list_branches",
		method:   http.MethodGet,
		path:     "/api/branch",
		out:      &wires,
	})
	if err != nil {
		return nil, err
	}
	return branchesFromWire(wires), nil
}
