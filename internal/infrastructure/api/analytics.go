package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kommer/client-go/internal/core/domain"
)

// BusinessAnalytics fetches the aggregated dashboard for the owned business.
// The backend resolves the business from the bearer token.
func (c *Client) BusinessAnalytics(ctx context.Context) (*domain.BusinessAnalytics, error) {
	var out domain.BusinessAnalytics
	err := c.do(ctx, call{
		endpoint: "business_analytics",
		method:   http.MethodGet,
		path:     "/api/Analitics",
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterView registers one view of a post.
func (c *Client) RegisterView(ctx context.Context, postID int) error {
	return c.do(ctx, call{
		endpoint: "register_view",
		method:   http.MethodPost,
		path:     fmt.Sprintf("/api/Analitics/%d/view", postID),
	})
}

// RegisterPromoCopy registers one promo-code copy on a post.
func (c *Client) RegisterPromoCopy(ctx context.Context, postID int) error {
	return c.do(ctx, call{
		endpoint: "register_promo_copy",
		method:   http.MethodPost,
		path:     fmt.Sprintf("/api/Analitics/%d/promo-copy", postID),
	})
}
