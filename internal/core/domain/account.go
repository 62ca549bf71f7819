package domain

import (
	"errors"
	"time"
)

// Account roles. Registration always produces a Client; Employee and Admin
// are provisioned out of band.
const (
	RoleClient   = "Client"
	RoleEmployee = "Employee"
	RoleAdmin    = "Admin"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountNotFound = errors.New("account not found")
var ErrEmailExists = errors.New("email already registered")

// ValidRole reports whether role is one of the recognised account roles.
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleEmployee || role == RoleAdmin
}

// IsStaff reports whether role carries back-office privileges.
func IsStaff(role string) bool {
	return role == RoleEmployee || role == RoleAdmin
}

// Account models a registered user. PasswordHash never leaves the server.
type Account struct {
	ID           string    `json:"account_id"`
	FirstName    string    `json:"account_firstname"`
	LastName     string    `json:"account_lastname"`
	Email        string    `json:"account_email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"account_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountClaims is the single shared shape for the JWT payload and the
// session's denormalized account copy. Using one struct for both keeps the
// two identity representations from diverging.
type AccountClaims struct {
	AccountID string `json:"account_id"`
	FirstName string `json:"account_firstname"`
	LastName  string `json:"account_lastname"`
	Email     string `json:"account_email"`
	Role      string `json:"account_type"`
}

// Claims projects an account into its claim set, dropping the password hash
// and timestamps.
func (a *Account) Claims() AccountClaims {
	return AccountClaims{
		AccountID: a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      a.Role,
	}
}

// Identity is the per-request projection computed by the identity middleware.
// Invariant: LoggedIn implies Account is non-nil with a valid role.
type Identity struct {
	LoggedIn bool
	Account  *AccountClaims
}

// Anonymous is the identity of a request with no token and no session.
var Anonymous = Identity{}
