package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"bakehouse/internal/middleware"
	"bakehouse/internal/model"
	"bakehouse/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService  service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieSecure: cookieSecure}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the issued token and the signed-in user. The user sits
// under data like every other success envelope.
type AuthResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	Data    *model.User `json:"data"`
}

// SessionCookie builds the cookie mirroring a token for browser requests.
func SessionCookie(token string, expires time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie builds a cookie that removes the session cookie.
func ExpiredSessionCookie(secure bool) *http.Cookie {
	cookie := SessionCookie("", time.Unix(0, 0), secure)
	cookie.MaxAge = -1
	return cookie
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(SessionCookie(session.Token, session.ExpiresAt, h.cookieSecure))
	return c.JSON(http.StatusCreated, AuthResponse{Success: true, Token: session.Token, Data: session.User})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(SessionCookie(session.Token, session.ExpiresAt, h.cookieSecure))
	return c.JSON(http.StatusOK, AuthResponse{Success: true, Token: session.Token, Data: session.User})
}

// Logout godoc
// @Summary Logout user
// @Description Clears the session cookie. Tokens are stateless and expire on their own.
// @Tags auth
// @Produce json
// @Success 200 {object} Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(ExpiredSessionCookie(h.cookieSecure))
	return okMessage(c, "logged out successfully")
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=model.User}
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	return ok(c, http.StatusOK, middleware.CurrentUser(c))
}
