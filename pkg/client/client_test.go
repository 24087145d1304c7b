package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/api")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin_KeepsTokenAndAttachesIt(t *testing.T) {
	var seen []string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path+" "+r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/auth/login":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ana@example.com", body["email"])
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"success": true,
				"token":   "tok-123",
				"data":    map[string]string{"id": "u1", "email": "ana@example.com", "role": "USER"},
			})
		case "/api/auth/me":
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": map[string]string{"id": "u1"}})
		case "/api/auth/logout":
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
		}
	})
	ctx := context.Background()

	user, err := c.Login(ctx, "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "USER", user.Role)
	assert.Equal(t, "tok-123", c.Token())

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", me.ID)

	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Token())

	assert.Equal(t, []string{
		"POST /api/auth/login ",
		"GET /api/auth/me Bearer tok-123",
		"POST /api/auth/logout Bearer tok-123",
	}, seen)
}

func TestErrorEnvelopeBecomesAPIError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "a recipe with this title already exists",
		})
	})

	_, err := c.CreateRecipe(context.Background(), RecipeInput{Title: "Lemon Tart"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "a recipe with this title already exists", apiErr.Message)
}

func TestNonJSONErrorFallsBackToStatusText(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := c.GetRecipe(context.Background(), "lemon-tart")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestListRecipes_EncodesQueryAndDecodesPage(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Bread", q.Get("category"))
		assert.Equal(t, "sour dough", q.Get("search"))
		assert.Equal(t, "3", q.Get("page"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.False(t, q.Has("difficulty"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":     true,
			"count":       1,
			"total":       21,
			"totalPages":  3,
			"currentPage": 3,
			"data":        []map[string]string{{"id": "r1", "slug": "sourdough"}},
		})
	})

	page, err := c.ListRecipes(context.Background(), RecipeQuery{Category: "Bread", Search: "sour dough", Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(21), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Recipes, 1)
	assert.Equal(t, "sourdough", page.Recipes[0].Slug)
}

func TestListGallery_FeaturedFlag(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("featured"))
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "count": 0, "data": []interface{}{}})
	})

	items, err := c.ListGallery(context.Background(), GalleryQuery{FeaturedOnly: true})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestUploadImage_SendsMultipart(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/uploads/gallery", r.URL.Path)
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "cake.png", header.Filename)
		assert.Equal(t, "png-bytes", string(data))
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"url": "http://cdn/bakehouse/gallery/x.png", "filename": "x.png"},
		})
	})
	c.SetToken("admin-token")

	img, err := c.UploadImage(context.Background(), TargetGallery, "cake.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "x.png", img.Filename)
}

func TestUpdateRecipe_SendsOnlySetFields(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]interface{}{"servings": float64(12)}, body)
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": map[string]interface{}{"id": "r1", "servings": 12}})
	})

	servings := 12
	recipe, err := c.UpdateRecipe(context.Background(), "r1", RecipeUpdate{Servings: &servings})
	require.NoError(t, err)
	assert.Equal(t, 12, recipe.Servings)
}
