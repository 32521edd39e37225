package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/kommer/client-go/internal/core/domain"
)

// Login exchanges credentials for a bearer token. A 401 here means the
// credentials themselves were bad, not a missing session.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	var resp authResponse
	err := c.do(ctx, call{
		endpoint:  "login",
		method:    http.MethodPost,
		path:      "/api/users/login",
		body:      creds,
		out:       &resp,
		anonymous: true,
	})
	if err != nil {
		return "", credentialError(err)
	}
	return resp.AccessToken, nil
}

// RegisterClient creates a regular account and returns its bearer token.
func (c *Client) RegisterClient(ctx context.Context, reg domain.ClientRegistration) (string, error) {
	var resp authResponse
	err := c.do(ctx, call{
		endpoint:  "register_client",
		method:    http.MethodPost,
		path:      "/api/users/client/register",
		body:      registerClientRequest{ClientRegistration: reg, UserType: string(domain.RoleClient)},
		out:       &resp,
		anonymous: true,
	})
	if err != nil {
		return "", credentialError(err)
	}
	return resp.AccessToken, nil
}

// RegisterBusiness creates a business account and returns its bearer token.
func (c *Client) RegisterBusiness(ctx context.Context, reg domain.BusinessRegistration) (string, error) {
	var resp authResponse
	err := c.do(ctx, call{
		endpoint:  "register_business",
		method:    http.MethodPost,
		path:      "/api/users/business/register",
		body:      registerBusinessRequest{BusinessRegistration: reg, UserType: string(domain.RoleBusiness)},
		out:       &resp,
		anonymous: true,
	})
	if err != nil {
		return "", credentialError(err)
	}
	return resp.AccessToken, nil
}

// Me fetches the identity behind the current bearer token.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	err := c.do(ctx, call{
		endpoint: "me",
		method:   http.MethodGet,
		path:     "/api/users/me",
		out:      &user,
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// credentialError reinterprets a 401 on the credential-exchange endpoints:
// there is no session to be missing yet.
func credentialError(err error) error {
	if errors.Is(err, domain.ErrUnauthenticated) {
		return domain.ErrInvalidCredentials
	}
	return err
}
