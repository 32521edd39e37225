package ports

import (
	"context"

	"github.com/kommer/client-go/internal/core/domain"
)

// Gateway is the outbound edge of the client: one method per backend
// endpoint, speaking domain types. Wire formats (enum codes, date strings,
// DTO shapes) stay inside the implementation.
type Gateway interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	// RegisterClient creates a regular account and returns its bearer token.
	RegisterClient(ctx context.Context, reg domain.ClientRegistration) (string, error)
	// RegisterBusiness creates a business account and returns its bearer token.
	RegisterBusiness(ctx context.Context, reg domain.BusinessRegistration) (string, error)
	// Me fetches the identity behind the current bearer token.
	Me(ctx context.Context) (*domain.User, error)

	ListPosts(ctx context.Context) ([]domain.Post, error)
	GetPost(ctx context.Context, id int) (*domain.Post, error)
	CreatePost(ctx context.Context, draft domain.PostDraft) (*domain.Post, error)

	ListBusinesses(ctx context.Context) ([]domain.Business, error)
	GetBusiness(ctx context.Context, id int) (*domain.Business, error)
	ListBusinessBranches(ctx context.Context, businessID int) ([]domain.Branch, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)

	ListFavouriteIDs(ctx context.Context) ([]int, error)
	AddFavourite(ctx context.Context, postID int) error
	RemoveFavourite(ctx context.Context, postID int) error

	BusinessAnalytics(ctx context.Context) (*domain.BusinessAnalytics, error)
	RegisterView(ctx context.Context, postID int) error
	RegisterPromoCopy(ctx context.Context, postID int) error

	// AskAssistant requests an AI-drafted post description for a prompt.
	AskAssistant(ctx context.Context, prompt string) (string, error)
}
