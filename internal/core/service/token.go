package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cse-motors/dealership/internal/core/domain"
)

const defaultTokenTTL = 2 * time.Hour

// tokenClaims is the wire shape of the jwt cookie: the shared account claim
// set plus the registered expiry/issued-at fields.
type tokenClaims struct {
	domain.AccountClaims
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens with a fixed validity
// window.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the validity window tokens are issued with. The cookie max-age
// is kept in step with it.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

func (s *TokenService) Issue(claims domain.AccountClaims) (string, error) {
	now := time.Now()
	tc := tokenClaims{
		AccountClaims: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tc)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded claim set.
// Any failure maps to domain.ErrInvalidCredentials; the caller does not need
// to distinguish a tampered token from an expired one.
func (s *TokenService) Verify(token string) (*domain.AccountClaims, error) {
	var tc tokenClaims
	tkn, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(tc.Role) {
		return nil, domain.ErrInvalidCredentials
	}
	return &tc.AccountClaims, nil
}
