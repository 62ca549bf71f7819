package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cse-motors/dealership/internal/core/domain"
	"github.com/cse-motors/dealership/internal/core/ports"
)

// TokenCookie is the name of the cookie carrying the signed bearer token.
const TokenCookie = "jwt"

const identityContextKey = "identity"

// LoginPath is where unauthenticated or token-invalid requests are sent.
const LoginPath = "/account/login"

// Identity derives the request's identity from the bearer-token cookie and
// the session, in that order of authority, and stores it in the context.
//
// A present-but-invalid token is terminal: the cookie is cleared and the
// request is redirected to the login page so no downstream handler ever
// observes a half-valid identity. A valid token resyncs the session when the
// session lacks an account or names a different one.
func Identity(tokens ports.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := GetSession(c)

			if cookie, err := c.Cookie(TokenCookie); err == nil && cookie.Value != "" {
				claims, err := tokens.Verify(cookie.Value)
				if err != nil {
					ClearCookie(c, TokenCookie)
					c.Set(identityContextKey, domain.Anonymous)
					sess.Flash("Please log in.")
					if err := sess.Save(c.Request().Context()); err != nil {
						return err
					}
					return c.Redirect(http.StatusSeeOther, LoginPath)
				}

				if acct := sess.Account(); acct == nil || acct.AccountID != claims.AccountID {
					sess.SetAccount(*claims)
					if err := sess.Save(c.Request().Context()); err != nil {
						return err
					}
				}
				c.Set(identityContextKey, domain.Identity{LoggedIn: true, Account: claims})
				return next(c)
			}

			if acct := sess.Account(); sess.LoggedIn() && acct != nil {
				c.Set(identityContextKey, domain.Identity{LoggedIn: true, Account: acct})
				return next(c)
			}

			c.Set(identityContextKey, domain.Anonymous)
			return next(c)
		}
	}
}

// GetIdentity extracts the identity established for this request. Absent
// middleware (e.g. a bare test context) it reports anonymous.
func GetIdentity(c echo.Context) domain.Identity {
	if id, ok := c.Get(identityContextKey).(domain.Identity); ok {
		return id
	}
	return domain.Anonymous
}

// ClearCookie expires the named cookie client-side.
func ClearCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
