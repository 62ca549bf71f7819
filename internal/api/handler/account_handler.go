package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cse-motors/dealership/internal/api/metrics"
	"github.com/cse-motors/dealership/internal/api/middleware"
	"github.com/cse-motors/dealership/internal/core/domain"
	"github.com/cse-motors/dealership/internal/core/ports"
)

// credentialsInvalidMsg is the single message for every credential failure.
// A lookup miss and a wrong password must be indistinguishable.
const credentialsInvalidMsg = "Please check your credentials and try again."

type AccountHandler struct {
	accounts ports.AccountService
	tokens   ports.TokenIssuer
	tokenTTL time.Duration
	pages    *PageBuilder
	validate *FormValidator
	log      zerolog.Logger
}

func NewAccountHandler(accounts ports.AccountService, tokens ports.TokenIssuer, tokenTTL time.Duration, pages *PageBuilder, validate *FormValidator, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		pages:    pages,
		validate: validate,
		log:      log,
	}
}

// BuildLogin renders the login form.
func (h *AccountHandler) BuildLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "account/login", h.pages.Build(c, "Login", loginForm{}))
}

// Login authenticates the posted credentials, establishes the session and
// issues the bearer-token cookie. The session write completes before the
// redirect is sent.
func (h *AccountHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if fieldErrs := h.validate.Validate(&form); fieldErrs != nil {
		form.Password = "" // never echo the password back
		page := h.pages.Build(c, "Login", form)
		page.FieldErrors = fieldErrs
		return c.Render(http.StatusBadRequest, "account/login", page)
	}

	account, err := h.accounts.Authenticate(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			form.Password = ""
			page := h.pages.Build(c, "Login", form)
			page.Errors = []string{credentialsInvalidMsg}
			return c.Render(http.StatusBadRequest, "account/login", page)
		}
		return fmt.Errorf("login: %w", err)
	}

	claims := account.Claims()
	sess := middleware.GetSession(c)
	sess.SetAccount(claims)
	if err := sess.Save(c.Request().Context()); err != nil {
		return fmt.Errorf("login: persist session: %w", err)
	}

	token, err := h.tokens.Issue(claims)
	if err != nil {
		return fmt.Errorf("login: issue token: %w", err)
	}
	h.setTokenCookie(c, token)

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.log.Info().Str("account_id", claims.AccountID).Msg("login")
	return c.Redirect(http.StatusSeeOther, "/")
}

// BuildRegister renders the registration form.
func (h *AccountHandler) BuildRegister(c echo.Context) error {
	return c.Render(http.StatusOK, "account/register", h.pages.Build(c, "Register", registerForm{}))
}

// Register creates a Client account. A duplicate email, whether caught by
// the pre-check or by the unique index, produces the same generic notice.
func (h *AccountHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	if fieldErrs := h.validate.Validate(&form); fieldErrs != nil {
		form.Password = ""
		page := h.pages.Build(c, "Register", form)
		page.FieldErrors = fieldErrs
		return c.Render(http.StatusBadRequest, "account/register", page)
	}

	account, err := h.accounts.Register(c.Request().Context(), form.FirstName, form.LastName, form.Email, form.Password)
	if err != nil {
		if !errors.Is(err, domain.ErrEmailExists) && !errors.Is(err, domain.ErrInvalidCredentials) {
			h.log.Error().Err(err).Msg("registration failed")
		}
		metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		form.Password = ""
		page := h.pages.Build(c, "Register", form)
		page.Errors = []string{"Sorry, the registration failed."}
		return c.Render(http.StatusBadRequest, "account/register", page)
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	sess := middleware.GetSession(c)
	sess.Flash(fmt.Sprintf("Congratulations, you're registered %s. Please log in.", account.FirstName))
	if err := sess.Save(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

type managementPage struct {
	Account *domain.Account
	Staff   bool
}

// Management renders the account management view from a fresh copy of the
// account record.
func (h *AccountHandler) Management(c echo.Context) error {
	id := middleware.GetIdentity(c)
	account, err := h.accounts.GetByID(c.Request().Context(), id.Account.AccountID)
	if err != nil {
		return fmt.Errorf("account management: %w", err)
	}

	content := managementPage{Account: account, Staff: domain.IsStaff(account.Role)}
	return c.Render(http.StatusOK, "account/management", h.pages.Build(c, "Account Management", content))
}

// BuildUpdate renders the profile-update form. Without an explicit id the
// authenticated account is loaded; only admins may load someone else's.
func (h *AccountHandler) BuildUpdate(c echo.Context) error {
	id := middleware.GetIdentity(c)
	target := c.Param("account_id")
	if target == "" {
		target = id.Account.AccountID
	}
	if target != id.Account.AccountID && id.Account.Role != domain.RoleAdmin {
		target = id.Account.AccountID
	}

	account, err := h.accounts.GetByID(c.Request().Context(), target)
	if err != nil {
		return fmt.Errorf("build account update: %w", err)
	}

	form := updateAccountForm{FirstName: account.FirstName, LastName: account.LastName, Email: account.Email}
	return c.Render(http.StatusOK, "account/update", h.pages.Build(c, "Edit Account", form))
}

// Update applies a profile change and reissues both the session copy and
// the bearer token from the fresh record so the two cannot diverge.
func (h *AccountHandler) Update(c echo.Context) error {
	id := middleware.GetIdentity(c)

	var form updateAccountForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if fieldErrs := h.validate.Validate(&form); fieldErrs != nil {
		page := h.pages.Build(c, "Edit Account", form)
		page.FieldErrors = fieldErrs
		return c.Render(http.StatusBadRequest, "account/update", page)
	}

	account, err := h.accounts.UpdateProfile(c.Request().Context(), id.Account.AccountID, form.FirstName, form.LastName, form.Email)
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			page := h.pages.Build(c, "Edit Account", form)
			page.FieldErrors = map[string]string{"account_email": "That email is already in use."}
			return c.Render(http.StatusBadRequest, "account/update", page)
		}
		return fmt.Errorf("account update: %w", err)
	}

	claims := account.Claims()
	sess := middleware.GetSession(c)
	sess.SetAccount(claims)
	sess.Flash("Account information updated.")
	if err := sess.Save(c.Request().Context()); err != nil {
		return fmt.Errorf("account update: persist session: %w", err)
	}

	token, err := h.tokens.Issue(claims)
	if err != nil {
		return fmt.Errorf("account update: reissue token: %w", err)
	}
	h.setTokenCookie(c, token)

	return c.Redirect(http.StatusSeeOther, "/account/")
}

// ChangePassword replaces the stored hash. Token claims carry nothing
// password-derived, so the token is left alone.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	id := middleware.GetIdentity(c)

	var form changePasswordForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if fieldErrs := h.validate.Validate(&form); fieldErrs != nil {
		account, err := h.accounts.GetByID(c.Request().Context(), id.Account.AccountID)
		if err != nil {
			return fmt.Errorf("change password: %w", err)
		}
		page := h.pages.Build(c, "Edit Account", updateAccountForm{
			FirstName: account.FirstName, LastName: account.LastName, Email: account.Email,
		})
		page.FieldErrors = fieldErrs
		return c.Render(http.StatusBadRequest, "account/update", page)
	}

	if err := h.accounts.ChangePassword(c.Request().Context(), id.Account.AccountID, form.Password); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	sess := middleware.GetSession(c)
	sess.Flash("Password updated.")
	if err := sess.Save(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/account/")
}

// Logout destroys the server-side session and clears both cookies. The
// token itself stays cryptographically valid until its natural expiry.
func (h *AccountHandler) Logout(c echo.Context) error {
	sess := middleware.GetSession(c)
	if err := sess.Destroy(c.Request().Context()); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	middleware.ClearCookie(c, middleware.TokenCookie)
	middleware.ClearCookie(c, middleware.SessionCookie)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AccountHandler) setTokenCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
