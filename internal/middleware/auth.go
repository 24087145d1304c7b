// Package middleware resolves the request principal from a bearer token or
// session cookie and enforces role restrictions.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "bakehouse/internal/errors"
	"bakehouse/internal/model"
)

const (
	// TokenCookie carries the credential for browser requests.
	TokenCookie = "token"
	userKey     = "user"
	tokenLookup = "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + TokenCookie
)

// Authenticator resolves a raw token to the user it identifies.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// tokenError separates a rejected token from a missing one.
type tokenError struct{ err error }

func (e tokenError) Error() string { return e.err.Error() }

func jwtConfig(a Authenticator) echojwt.Config {
	return echojwt.Config{
		ContextKey:  userKey,
		TokenLookup: tokenLookup,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			user, err := a.Authenticate(c.Request().Context(), auth)
			if err != nil {
				return nil, tokenError{err}
			}
			return user, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var te tokenError
			if errors.As(err, &te) {
				return te.err
			}
			return apperrors.ErrNoToken
		},
	}
}

// Protect rejects requests without a valid token with 401 and stores the
// user it names in the context.
func Protect(a Authenticator) echo.MiddlewareFunc {
	return echojwt.WithConfig(jwtConfig(a))
}

// ProtectPage is Protect for HTML pages: unauthenticated visitors are sent to
// loginPath with a next parameter instead of receiving 401.
func ProtectPage(a Authenticator, loginPath string) echo.MiddlewareFunc {
	cfg := jwtConfig(a)
	apiErrors := cfg.ErrorHandler
	cfg.ErrorHandler = func(c echo.Context, err error) error {
		err = apiErrors(c, err)
		if apperrors.IsKind(err, apperrors.KindAuth) {
			return c.Redirect(http.StatusSeeOther, loginPath+"?next="+url.QueryEscape(c.Request().URL.RequestURI()))
		}
		return err
	}
	return echojwt.WithConfig(cfg)
}

// Optional resolves the user when a valid token is present and otherwise
// lets the request through anonymously.
func Optional(a Authenticator) echo.MiddlewareFunc {
	cfg := jwtConfig(a)
	cfg.ContinueOnIgnoredError = true
	cfg.ErrorHandler = func(echo.Context, error) error { return nil }
	return echojwt.WithConfig(cfg)
}

// RestrictTo allows only users holding one of roles. It must run after Protect.
func RestrictTo(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return apperrors.ErrNoToken
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return apperrors.ErrRoleRequired
		}
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userKey).(*model.User)
	return user
}

// SetCurrentUser stores user as the request principal.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(userKey, user)
}
