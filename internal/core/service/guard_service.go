package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/kommer/client-go/internal/core/domain"
	"github.com/kommer/client-go/internal/core/ports"
)

// Page names a navigation target in the client.
type Page string

const (
	PageHome           Page = "home"
	PageBusinesses     Page = "businesses"
	PageBusinessDetail Page = "business-detail"
	PageBusinessEdit   Page = "business-edit"
	PagePostDetail     Page = "post-detail"
	PagePostEdit       Page = "post-edit"
	PageCreatePost     Page = "create-post"
	PageLogin          Page = "login"
	PageRegister       Page = "register"
	PageFavorites      Page = "favorites"
	PageAnalytics      Page = "analytics"
)

// Target is a page plus the resource id it addresses, when it addresses one.
type Target struct {
	Page Page
	ID   int
}

// Decision is the guard's verdict for a navigation attempt. When Allow is
// false, Redirect names where to go instead.
type Decision struct {
	Allow    bool
	Redirect Target
}

func allow() Decision            { return Decision{Allow: true} }
func redirect(t Target) Decision { return Decision{Redirect: t} }

// GuardService decides page admission from the current session and, for
// ownership-gated pages, the targeted resource. It never mutates state.
type GuardService struct {
	gateway  ports.Gateway
	sessions *SessionService
	logger   zerolog.Logger
}

func NewGuardService(gateway ports.Gateway, sessions *SessionService, logger zerolog.Logger) *GuardService {
	return &GuardService{gateway: gateway, sessions: sessions, logger: logger}
}

// Admit evaluates a navigation target.
//
// Pages needing a session redirect to login; pages needing ownership resolve
// the resource first and send non-owners to the read-only detail view. A
// missing resource redirects to the relevant list page instead, which is a
// different outcome from "not yours". Unexpected gateway failures (network,
// 5xx) are returned as errors, not folded into a redirect.
func (g *GuardService) Admit(ctx context.Context, target Target) (Decision, error) {
	session := g.sessions.Current()

	switch target.Page {
	case PageFavorites, PageCreatePost:
		if !session.IsAuthenticated {
			return redirect(Target{Page: PageLogin}), nil
		}
		return allow(), nil

	case PageAnalytics:
		// The dashboard exists only for business accounts.
		if !session.IsAuthenticated {
			return redirect(Target{Page: PageLogin}), nil
		}
		if !session.IsBusinessOwner {
			return redirect(Target{Page: PageHome}), nil
		}
		return allow(), nil

	case PagePostEdit:
		post, err := g.gateway.GetPost(ctx, target.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return redirect(Target{Page: PageHome}), nil
			}
			return Decision{}, err
		}
		if owned, ok := session.OwnedBusiness(); !ok || owned != post.BusinessID {
			return redirect(Target{Page: PagePostDetail, ID: target.ID}), nil
		}
		return allow(), nil

	case PageBusinessEdit:
		business, err := g.gateway.GetBusiness(ctx, target.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return redirect(Target{Page: PageBusinesses}), nil
			}
			return Decision{}, err
		}
		if owned, ok := session.OwnedBusiness(); !ok || owned != business.ID {
			return redirect(Target{Page: PageBusinessDetail, ID: target.ID}), nil
		}
		return allow(), nil

	default:
		// Home, lists, detail views, login and register are open to everyone.
		return allow(), nil
	}
}
