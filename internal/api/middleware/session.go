package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inboxflow/inboxflow-api/internal/core/ports"
)

// SessionCookie is the name of the HTTP-only cookie carrying the opaque
// session token.
const SessionCookie = "inboxflow_session"

// Session resolves the session cookie against the store and injects the
// authenticated user id into the request context. It runs before any other
// component on protected routes; requests without a valid session never
// reach a handler.
func Session(store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			userID, err := store.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}
