package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/kommer/client-go/internal/api/metrics"
	"github.com/kommer/client-go/internal/core/domain"
	"github.com/kommer/client-go/internal/core/ports"
)

// SessionService owns the one shared Session. All mutation goes through its
// methods; everything else reads a copy via Current.
type SessionService struct {
	gateway ports.Gateway
	tokens  ports.TokenStore
	logger  zerolog.Logger

	mu       sync.RWMutex
	session  domain.Session
	onLogout []func()
}

func NewSessionService(gateway ports.Gateway, tokens ports.TokenStore, logger zerolog.Logger) *SessionService {
	return &SessionService{gateway: gateway, tokens: tokens, logger: logger}
}

// Current returns a snapshot of the session state.
func (s *SessionService) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// OnLogout registers a hook run after every logout, including the forced one
// on a failed restore. Used to drop per-session caches.
func (s *SessionService) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// Restore re-establishes the session from a persisted token, if any. A token
// the identity endpoint rejects (or one that is already expired locally) is
// cleared and the session stays logged out; that outcome is not an error.
// Transport and server failures are also treated as logged out, but are
// returned so the caller can tell the user.
func (s *SessionService) Restore(ctx context.Context) error {
	token, err := s.tokens.Load()
	if err != nil {
		metrics.SessionRestoresTotal.WithLabelValues("error").Inc()
		return err
	}
	if token == "" {
		metrics.SessionRestoresTotal.WithLabelValues("none").Inc()
		return nil
	}

	if tokenExpired(token) {
		s.logger.Info().Err(domain.ErrTokenExpired).Msg("logging out")
		s.Logout()
		metrics.SessionRestoresTotal.WithLabelValues("expired").Inc()
		return nil
	}

	user, err := s.gateway.Me(ctx)
	if err != nil {
		s.Logout()
		if errors.Is(err, domain.ErrUnauthenticated) || errors.Is(err, domain.ErrInvalidCredentials) {
			s.logger.Info().Err(err).Msg("stored token rejected, logging out")
			metrics.SessionRestoresTotal.WithLabelValues("rejected").Inc()
			return nil
		}
		metrics.SessionRestoresTotal.WithLabelValues("error").Inc()
		return err
	}

	s.setUser(user)
	metrics.SessionRestoresTotal.WithLabelValues("restored").Inc()
	return nil
}

// Login exchanges credentials for a token, persists it, then fetches the
// identity and populates the session. Credential rejection propagates as
// domain.ErrInvalidCredentials; nothing is swallowed here.
func (s *SessionService) Login(ctx context.Context, creds domain.Credentials) error {
	if err := checkStruct(creds); err != nil {
		return err
	}
	token, err := s.gateway.Login(ctx, creds)
	if err != nil {
		return err
	}
	return s.establish(ctx, token)
}

// RegisterClient creates a regular account and logs it in.
func (s *SessionService) RegisterClient(ctx context.Context, reg domain.ClientRegistration) error {
	if err := checkStruct(reg); err != nil {
		return err
	}
	token, err := s.gateway.RegisterClient(ctx, reg)
	if err != nil {
		return err
	}
	return s.establish(ctx, token)
}

// RegisterBusiness creates a business account and logs it in.
func (s *SessionService) RegisterBusiness(ctx context.Context, reg domain.BusinessRegistration) error {
	if err := checkStruct(reg); err != nil {
		return err
	}
	token, err := s.gateway.RegisterBusiness(ctx, reg)
	if err != nil {
		return err
	}
	return s.establish(ctx, token)
}

// Logout clears the session and the persisted token. Idempotent; has no
// network effect.
func (s *SessionService) Logout() {
	s.mu.Lock()
	s.session = domain.Session{}
	hooks := make([]func(), len(s.onLogout))
	copy(hooks, s.onLogout)
	s.mu.Unlock()

	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear stored token")
	}
	for _, fn := range hooks {
		fn()
	}
}

func (s *SessionService) establish(ctx context.Context, token string) error {
	if err := s.tokens.Save(token); err != nil {
		return err
	}
	user, err := s.gateway.Me(ctx)
	if err != nil {
		// A token we cannot resolve an identity for is useless; drop it.
		s.Logout()
		return err
	}
	s.setUser(user)
	s.logger.Info().Str("user", user.UserName).Str("role", string(user.Role)).Msg("session established")
	return nil
}

func (s *SessionService) setUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.SessionFor(user)
}

// tokenExpired inspects the exp claim without verifying the signature (the
// client holds no secret). Tokens that do not parse as JWT are assumed live;
// opacity is the backend's prerogative and the identity endpoint decides.
func tokenExpired(raw string) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
