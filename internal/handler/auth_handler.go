package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"officetrack/internal/auth"
	apperrors "officetrack/internal/errors"
	"officetrack/internal/service"
)

// AuthHandler handles login, logout, and session introspection.
type AuthHandler struct {
	authService  service.AuthService
	jwtService   *auth.JWTService
	sessionStore auth.SessionStoreInterface
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, jwtService *auth.JWTService, sessionStore auth.SessionStoreInterface) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		jwtService:   jwtService,
		sessionStore: sessionStore,
	}
}

// LoginRequest represents a login attempt.
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=admin employee"`
	RememberMe bool   `json:"rememberMe"`
}

// LoginResponse is the success payload for a login.
type LoginResponse struct {
	Status string `json:"status"`
	Role   string `json:"role"`
	UserID uint   `json:"user_id"`
}

// MeResponse reports whether a valid session accompanies the request.
type MeResponse struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
}

// Login godoc
// @Summary Authenticate and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.StatusResponse
// @Failure 401 {object} errors.StatusResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error(err.Error()))
	}

	token, expiresAt, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, req.Role, req.RememberMe)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return c.JSON(http.StatusUnauthorized, apperrors.Error("Invalid credentials"))
		}
		return c.JSON(http.StatusInternalServerError, apperrors.Error("login failed"))
	}

	cookie := &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if req.RememberMe {
		cookie.Expires = expiresAt
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, LoginResponse{Status: "success", Role: user.Role, UserID: user.ID})
}

// Logout godoc
// @Summary End the session
// @Tags auth
// @Produce json
// @Success 200 {object} errors.StatusResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
		// Best effort; an already-invalid token has nothing to revoke.
		_ = h.authService.Logout(c.Request().Context(), cookie.Value)
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return c.JSON(http.StatusOK, apperrors.Success(""))
}

// Me godoc
// @Summary Report session state
// @Tags auth
// @Produce json
// @Success 200 {object} MeResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	cookie, err := c.Cookie(auth.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusOK, MeResponse{Authenticated: false})
	}

	claims, err := h.jwtService.ValidateToken(cookie.Value)
	if err != nil {
		return c.JSON(http.StatusOK, MeResponse{Authenticated: false})
	}
	if revoked, _ := h.sessionStore.IsSessionBlacklisted(c.Request().Context(), claims.ID); revoked {
		return c.JSON(http.StatusOK, MeResponse{Authenticated: false})
	}

	return c.JSON(http.StatusOK, MeResponse{Authenticated: true, Role: claims.Role})
}
