package api

import (
	"context"
	"net/http"
)

// AskAssistant requests an AI-drafted post description for a prompt.
func (c *Client) AskAssistant(ctx context.Context, prompt string) (string, error) {
	var resp askResponse
	err := c.do(ctx, call{
		endpoint: "ask_assistant",
		method:   http.MethodPost,
		path:     "/api/YandexGpt/ask",
		body:     askRequest{Prompt: prompt},
		out:      &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.Answer, nil
}
