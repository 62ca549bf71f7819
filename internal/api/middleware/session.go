package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cse-motors/dealership/internal/core/domain"
	"github.com/cse-motors/dealership/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the opaque session id.
const SessionCookie = "sessionId"

const sessionContextKey = "session"

// Session is the request-scoped view of the server-held session record.
// Mutations are buffered in memory; Save persists them synchronously, so a
// handler that saves before writing its response gets the persist-before-
// respond guarantee structurally.
type Session struct {
	id    string
	data  *domain.SessionData
	store ports.SessionStore
	dirty bool
}

// ID returns the opaque session identifier.
func (s *Session) ID() string { return s.id }

// LoggedIn reports the session's loggedin flag.
func (s *Session) LoggedIn() bool { return s.data.LoggedIn }

// Account returns the denormalized account copy, or nil.
func (s *Session) Account() *domain.AccountClaims { return s.data.Account }

// SetAccount stores the claim set and marks the session logged in.
func (s *Session) SetAccount(claims domain.AccountClaims) {
	s.data.LoggedIn = true
	s.data.Account = &claims
	s.dirty = true
}

// Flash queues a one-shot notice for the next rendered page.
func (s *Session) Flash(msg string) {
	s.data.Flashes = append(s.data.Flashes, msg)
	s.dirty = true
}

// PopFlashes returns the queued notices and clears them.
func (s *Session) PopFlashes() []string {
	if len(s.data.Flashes) == 0 {
		return nil
	}
	flashes := s.data.Flashes
	s.data.Flashes = nil
	s.dirty = true
	return flashes
}

// Save persists pending mutations. It is a no-op when nothing changed, and
// it never writes a record for a session that holds nothing, so anonymous
// requests stay side-effect-free on the store.
func (s *Session) Save(ctx context.Context) error {
	if !s.dirty {
		return nil
	}
	if s.data.Empty() {
		// Mutated back to empty (e.g. flashes consumed on a session that
		// holds no account): drop the record instead of storing a husk.
		if err := s.store.Delete(ctx, s.id); err != nil {
			return err
		}
		s.dirty = false
		return nil
	}
	if err := s.store.Save(ctx, s.id, s.data); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Destroy removes the stored record and resets the in-memory state.
func (s *Session) Destroy(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.id); err != nil {
		return err
	}
	s.data = &domain.SessionData{}
	s.dirty = false
	return nil
}

// Sessions loads (or mints) the session for every request and exposes it via
// the echo context. The session record itself is written lazily: a request
// that never mutates the session leaves the store untouched.
func Sessions(store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := &Session{store: store, data: &domain.SessionData{}}

			if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				sess.id = cookie.Value
				data, err := store.Get(c.Request().Context(), sess.id)
				if err != nil {
					return err
				}
				if data != nil {
					sess.data = data
				}
			} else {
				sess.id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    sess.id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(sessionContextKey, sess)

			if err := next(c); err != nil {
				return err
			}
			// Backstop for handlers that mutated without saving. Handlers
			// on the persist-before-respond path call Save themselves.
			return sess.Save(c.Request().Context())
		}
	}
}

// GetSession extracts the request's Session. Panics if the Sessions
// middleware did not run; every route is registered behind it.
func GetSession(c echo.Context) *Session {
	sess, ok := c.Get(sessionContextKey).(*Session)
	if !ok {
		panic("middleware: session not initialised for request")
	}
	return sess
}
