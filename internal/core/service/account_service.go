package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/cse-motors/dealership/internal/core/domain"
	"github.com/cse-motors/dealership/internal/core/ports"
)

// MinPasswordLength applies to registration and password changes alike.
const MinPasswordLength = 12

// AccountService implements registration, login and profile maintenance.
type AccountService struct {
	repo ports.AccountRepository
}

func NewAccountService(repo ports.AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

func (s *AccountService) Register(ctx context.Context, firstName, lastName, email, password string) (*domain.Account, error) {
	if firstName == "" || lastName == "" || email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(password) < MinPasswordLength {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	created.PasswordHash = ""
	return created, nil
}

// Authenticate looks the account up by email and compares the password
// against the stored hash. A miss and a mismatch both come back as
// ErrInvalidCredentials so the caller cannot enumerate accounts.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// The hash must not travel into the session or token.
	account.PasswordHash = ""
	return account, nil
}

func (s *AccountService) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = ""
	return account, nil
}

// UpdateProfile re-checks email ownership before writing. The check is
// best-effort: a concurrent registration can still win the race, in which
// case the repository's unique index reports ErrEmailExists.
func (s *AccountService) UpdateProfile(ctx context.Context, id, firstName, lastName, email string) (*domain.Account, error) {
	if firstName == "" || lastName == "" || email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	email = normalizeEmail(email)
	taken, err := s.repo.EmailExists(ctx, email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailExists
	}

	updated, err := s.repo.UpdateProfile(ctx, id, strings.TrimSpace(firstName), strings.TrimSpace(lastName), email)
	if err != nil {
		return nil, err
	}
	updated.PasswordHash = ""
	return updated, nil
}

// ChangePassword replaces only the stored hash. Token claims carry no
// password-derived data, so no reissue happens here.
func (s *AccountService) ChangePassword(ctx context.Context, id, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, string(hash))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
