package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kommer/client-go/internal/core/domain"
	"github.com/kommer/client-go/internal/core/ports"
)

// AnalyticsService fetches the owner dashboard and fires the best-effort
// engagement counters. Counter failures are logged and swallowed; they must
// never block rendering.
type AnalyticsService struct {
	gateway  ports.Gateway
	sessions *SessionService
	logger   zerolog.Logger
}

func NewAnalyticsService(gateway ports.Gateway, sessions *SessionService, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{gateway: gateway, sessions: sessions, logger: logger}
}

// Dashboard returns the aggregated analytics for the owned business.
func (a *AnalyticsService) Dashboard(ctx context.Context) (*domain.BusinessAnalytics, error) {
	session := a.sessions.Current()
	if !session.IsAuthenticated {
		return nil, domain.ErrUnauthenticated
	}
	if !session.IsBusinessOwner {
		return nil, domain.ErrForbidden
	}
	return a.gateway.BusinessAnalytics(ctx)
}

// TrackView registers a post view. Best effort.
func (a *AnalyticsService) TrackView(ctx context.Context, postID int) {
	if err := a.gateway.RegisterView(ctx, postID); err != nil {
		a.logger.Warn().Err(err).Int("post_id", postID).Msg("view tracking failed")
	}
}

// TrackPromoCopy registers a promo-code copy. Best effort.
func (a *AnalyticsService) TrackPromoCopy(ctx context.Context, postID int) {
	if err := a.gateway.RegisterPromoCopy(ctx, postID); err != nil {
		a.logger.Warn().Err(err).Int("post_id", postID).Msg("promo copy tracking failed")
	}
}
