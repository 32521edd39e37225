package ports

// TokenStore persists the single bearer token across process restarts.
// Load returns the empty string, not an error, when no token is stored;
// absence means logged out. Save and Clear are idempotent.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}
