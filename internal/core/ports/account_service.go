package ports

import (
	"context"

	"github.com/cse-motors/dealership/internal/core/domain"
)

// AccountService covers registration, authentication and profile maintenance.
type AccountService interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*domain.Account, error)
	// Authenticate verifies credentials and returns the sanitized account
	// (password hash stripped). A lookup miss and a password mismatch are
	// indistinguishable: both return domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, id, firstName, lastName, email string) (*domain.Account, error)
	ChangePassword(ctx context.Context, id, newPassword string) error
}

// TokenIssuer signs and verifies the bearer credential carried by the jwt
// cookie.
type TokenIssuer interface {
	Issue(claims domain.AccountClaims) (string, error)
	Verify(token string) (*domain.AccountClaims, error)
}
