package ports

import (
	"context"

	"github.com/cse-motors/dealership/internal/core/domain"
)

// SessionStore persists session records keyed by an opaque identifier.
// Implementations must make Save durable before returning: the login flow
// relies on persistence completing before the redirect response is sent.
type SessionStore interface {
	// Get returns the stored record, or nil when the id is unknown.
	Get(ctx context.Context, id string) (*domain.SessionData, error)
	Save(ctx context.Context, id string, data *domain.SessionData) error
	Delete(ctx context.Context, id string) error
}
