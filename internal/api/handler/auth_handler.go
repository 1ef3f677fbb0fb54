package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inboxflow/inboxflow-api/internal/api/metrics"
	"github.com/inboxflow/inboxflow-api/internal/api/middleware"
	"github.com/inboxflow/inboxflow-api/internal/core/domain"
	"github.com/inboxflow/inboxflow-api/internal/core/ports"
)

// AuthHandler exposes registration, login and account management. Successful
// register/login establish a session carried by an HTTP-only cookie.
type AuthHandler struct {
	auth     ports.AuthService
	sessions ports.SessionStore
	secure   bool
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionStore, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, secure: secureCookies}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userPayload is the public rendering of an account: never the hash, never
// the reset-token fields.
type userPayload struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type userResponse struct {
	User userPayload `json:"user"`
}

func toUserPayload(u *domain.User) userPayload {
	return userPayload{ID: u.ID, Email: u.Email, Username: u.Username, Name: u.Name}
}

// Register creates a new account and logs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrUsernameTaken):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return err
	}

	if err := h.establishSession(c, user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: toUserPayload(user)})
}

// Login authenticates with email and password. Unknown email and wrong
// password produce the same response.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	if err := h.establishSession(c, user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: toUserPayload(user)})
}

// Logout destroys the current session and expires the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookie)
	if err == nil && cookie.Value != "" {
		if err := h.sessions.Destroy(c.Request().Context(), cookie.Value); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not log out"})
		}
	}

	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword always answers with the same generic message so the
// response never reveals whether an account exists.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.auth.RequestPasswordReset(c.Request().Context(), req.Email, c.Request().Host); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "An error occurred while processing your request."})
	}
	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()

	return c.JSON(http.StatusOK, map[string]string{
		"message": "If a matching account was found, a password reset link has been sent.",
	})
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// ResetPassword redeems a reset token. A token can be redeemed at most once.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, domain.ErrInvalidResetToken) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Password reset token is invalid or has expired."})
		}
		return err
	}
	metrics.PasswordResetsTotal.WithLabelValues("completed").Inc()

	return c.JSON(http.StatusOK, map[string]string{"message": "Password has been updated successfully."})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.auth.GetUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: toUserPayload(user)})
}

type updateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// UpdateMe applies a partial profile update. An absent or empty password
// leaves the stored credential untouched.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.auth.UpdateProfile(c.Request().Context(), userID, ports.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: toUserPayload(user)})
}

func (h *AuthHandler) establishSession(c echo.Context, userID string) error {
	token, err := h.sessions.Create(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	c.SetCookie(h.sessionCookie(token, 24*60*60))
	return nil
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
