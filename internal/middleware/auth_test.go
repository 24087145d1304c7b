package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bakehouse/internal/errors"
	"bakehouse/internal/model"
)

type fakeAuthenticator map[string]*model.User

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperrors.ErrNoToken
	}
	if token == "broken-db" {
		return nil, errors.New("connection reset")
	}
	if user, ok := f[token]; ok {
		return user, nil
	}
	return nil, apperrors.ErrInvalidToken
}

var (
	member = &model.User{ID: uuid.New(), Role: model.RoleUser}
	admin  = &model.User{ID: uuid.New(), Role: model.RoleAdmin}
	users  = fakeAuthenticator{"member-token": member, "admin-token": admin}
)

func serve(t *testing.T, mw []echo.MiddlewareFunc, req *http.Request) (*model.User, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *model.User
	h := func(c echo.Context) error {
		seen = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	}
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	err := h(c)
	return seen, err
}

func TestProtect(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		cookie   string
		wantErr  error
		wantUser *model.User
	}{
		{name: "bearer header", header: "Bearer member-token", wantUser: member},
		{name: "cookie", cookie: "admin-token", wantUser: admin},
		{name: "no credential", wantErr: apperrors.ErrNoToken},
		{name: "wrong scheme", header: "Basic member-token", wantErr: apperrors.ErrNoToken},
		{name: "unknown token", header: "Bearer forged", wantErr: apperrors.ErrInvalidToken},
		{name: "empty cookie", cookie: "", wantErr: apperrors.ErrNoToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tt.cookie})
			}

			seen, err := serve(t, []echo.MiddlewareFunc{Protect(users)}, req)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, seen)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, seen)
		})
	}
}

func TestProtect_StorageFailureIsNotAuthError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer broken-db")

	_, err := serve(t, []echo.MiddlewareFunc{Protect(users)}, req)
	require.Error(t, err)
	assert.False(t, apperrors.IsKind(err, apperrors.KindAuth))
}

func TestRestrictTo(t *testing.T) {
	mw := []echo.MiddlewareFunc{Protect(users), RestrictTo(model.RoleAdmin)}

	req := httptest.NewRequest(http.MethodPost, "/api/gallery", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer member-token")
	_, err := serve(t, mw, req)
	assert.Equal(t, apperrors.ErrRoleRequired, err)

	req = httptest.NewRequest(http.MethodPost, "/api/gallery", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer admin-token")
	seen, err := serve(t, mw, req)
	require.NoError(t, err)
	assert.Equal(t, admin, seen)

	req = httptest.NewRequest(http.MethodPost, "/api/gallery", nil)
	_, err = serve(t, []echo.MiddlewareFunc{RestrictTo(model.RoleAdmin)}, req)
	assert.Equal(t, apperrors.ErrNoToken, err)
}

func TestProtectPage_RedirectsToLogin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin?tab=messages", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := ProtectPage(users, "/login")(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fadmin%3Ftab%3Dmessages", rec.Header().Get(echo.HeaderLocation))
}

func TestOptional(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	seen, err := serve(t, []echo.MiddlewareFunc{Optional(users)}, req)
	require.NoError(t, err)
	assert.Nil(t, seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "member-token"})
	seen, err = serve(t, []echo.MiddlewareFunc{Optional(users)}, req)
	require.NoError(t, err)
	assert.Equal(t, member, seen)
}
