package service

import (
	"context"
	"strconv"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/cse-motors/dealership/internal/core/domain"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account
	nextID   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return nil, domain.ErrEmailExists
		}
	}
	copy := cloneAccount(account)
	r.nextID++
	copy.ID = "acct_" + strconv.Itoa(r.nextID)
	r.accounts[copy.ID] = cloneAccount(copy)
	return cloneAccount(copy), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := r.accounts[id]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) EmailExists(_ context.Context, email, excludeID string) (bool, error) {
	for _, a := range r.accounts {
		if a.Email == email && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubAccountRepo) UpdateProfile(_ context.Context, id, firstName, lastName, email string) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	a.FirstName = firstName
	a.LastName = lastName
	a.Email = email
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.PasswordHash = passwordHash
	return nil
}

func (r *stubAccountRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.accounts)), nil
}

const testPassword = "Sup3rSecret!pass"

func registerTestAccount(t *testing.T, svc *AccountService, email string) *domain.Account {
	t.Helper()
	account, err := svc.Register(context.Background(), "Alice", "Anderson", email, testPassword)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return account
}

func TestAccountService_Register(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo)

	account, err := svc.Register(context.Background(), "Alice", "Anderson", " Alice@Example.COM ", testPassword)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.Role != domain.RoleClient {
		t.Fatalf("expected role Client, got %s", account.Role)
	}
	if account.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %s", account.Email)
	}
	if account.PasswordHash != "" {
		t.Fatalf("returned account still carries the password hash")
	}

	stored := repo.accounts[account.ID]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(testPassword)); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAccountService_Register_ShortPassword(t *testing.T) {
	svc := NewAccountService(newStubAccountRepo())

	if _, err := svc.Register(context.Background(), "Bob", "Brown", "bob@example.com", "short"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	svc := NewAccountService(newStubAccountRepo())

	registerTestAccount(t, svc, "dup@example.com")
	if _, err := svc.Register(context.Background(), "Bob", "Brown", "dup@example.com", testPassword); err != domain.ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAccountService_Authenticate(t *testing.T) {
	svc := NewAccountService(newStubAccountRepo())
	registerTestAccount(t, svc, "carol@example.com")

	account, err := svc.Authenticate(context.Background(), "Carol@Example.com", testPassword)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if account.Email != "carol@example.com" {
		t.Fatalf("unexpected account: %+v", account)
	}
	if account.PasswordHash != "" {
		t.Fatalf("authenticated account still carries the password hash")
	}
}

// A wrong password and an unknown email must be indistinguishable to the
// caller so login responses cannot be used to enumerate accounts.
func TestAccountService_Authenticate_MissAndMismatchMatch(t *testing.T) {
	svc := NewAccountService(newStubAccountRepo())
	registerTestAccount(t, svc, "dave@example.com")

	_, missErr := svc.Authenticate(context.Background(), "ghost@example.com", testPassword)
	_, mismatchErr := svc.Authenticate(context.Background(), "dave@example.com", "wrong-password!!")

	if missErr != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", missErr)
	}
	if mismatchErr != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", mismatchErr)
	}
}

func TestAccountService_UpdateProfile(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo)
	account := registerTestAccount(t, svc, "erin@example.com")

	updated, err := svc.UpdateProfile(context.Background(), account.ID, "Erin", "Evans", "erin.evans@example.com")
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.LastName != "Evans" || updated.Email != "erin.evans@example.com" {
		t.Fatalf("update not applied: %+v", updated)
	}

	// Keeping your own email is not a conflict.
	if _, err := svc.UpdateProfile(context.Background(), account.ID, "Erin", "Evans", "erin.evans@example.com"); err != nil {
		t.Fatalf("same-email update: %v", err)
	}
}

func TestAccountService_UpdateProfile_EmailTaken(t *testing.T) {
	svc := NewAccountService(newStubAccountRepo())
	registerTestAccount(t, svc, "frank@example.com")
	other, err := svc.Register(context.Background(), "Grace", "Green", "grace@example.com", testPassword)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.UpdateProfile(context.Background(), other.ID, "Grace", "Green", "frank@example.com"); err != domain.ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAccountService_ChangePassword(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo)
	account := registerTestAccount(t, svc, "heidi@example.com")

	if err := svc.ChangePassword(context.Background(), account.ID, "An0ther!Secret99"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "heidi@example.com", testPassword); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "heidi@example.com", "An0ther!Secret99"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestAccountService_ChangePassword_TooShort(t *testing.T) {
	svc := NewAccountService(newStubAccountRepo())
	account := registerTestAccount(t, svc, "ivan@example.com")

	if err := svc.ChangePassword(context.Background(), account.ID, "tiny"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
