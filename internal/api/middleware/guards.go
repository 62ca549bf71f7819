package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cse-motors/dealership/internal/core/domain"
)

// RequireLogin passes authenticated requests through and bounces everyone
// else to the login page with a notice.
func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if GetIdentity(c).LoggedIn {
			return next(c)
		}
		return bounceToLogin(c)
	}
}

// RequireStaff passes only Employee and Admin identities. A Client gets the
// exact same notice and redirect as an anonymous caller; privilege denial is
// deliberately indistinguishable from not being logged in.
func RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := GetIdentity(c)
		if id.LoggedIn && domain.IsStaff(id.Account.Role) {
			return next(c)
		}
		return bounceToLogin(c)
	}
}

func bounceToLogin(c echo.Context) error {
	sess := GetSession(c)
	sess.Flash("Please log in.")
	if err := sess.Save(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, LoginPath)
}
