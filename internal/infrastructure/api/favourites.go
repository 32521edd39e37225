package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListFavouriteIDs fetches the authenticated user's favorite post ids.
func (c *Client) ListFavouriteIDs(ctx context.Context) ([]int, error) {
	var ids []int
	err := c.do(ctx, call{
		endpoint: "list_favourites",
		method:   http.MethodGet,
		path:     "/api/Post/favourites",
		out:      &ids,
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// AddFavourite marks a post as favorite.
func (c *Client) AddFavourite(ctx context.Context, postID int) error {
	return c.do(ctx, call{
		endpoint: "add_favourite",
		method:   http.MethodPost,
		path:     fmt.Sprintf("/api/Post/favourites/%d", postID),
	})
}

// RemoveFavourite unmarks a post as favorite.
func (c *Client) RemoveFavourite(ctx context.Context, postID int) error {
	return c.do(ctx, call{
		endpoint: "remove_favourite",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/api/Post/favourites/%d", postID),
	})
}
