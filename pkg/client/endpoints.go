package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	return c.authenticate(ctx, "/auth/register", map[string]string{"name": name, "email": email, "password": password})
}

// Login keeps the returned token for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	return c.authenticate(ctx, "/auth/login", map[string]string{"email": email, "password": password})
}

func (c *Client) authenticate(ctx context.Context, path string, body map[string]string) (*User, error) {
	var user User
	env, err := c.do(ctx, http.MethodPost, path, nil, body, &user)
	if err != nil {
		return nil, err
	}
	c.SetToken(env.Token)
	return &user, nil
}

// Logout clears the server cookie and forgets the token.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	c.SetToken("")
	return err
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if _, err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListRecipes returns one page of recipes, newest first.
func (c *Client) ListRecipes(ctx context.Context, q RecipeQuery) (*RecipePage, error) {
	query := url.Values{}
	setString(query, "category", q.Category)
	setString(query, "difficulty", q.Difficulty)
	setString(query, "search", q.Search)
	setInt(query, "page", q.Page)
	setInt(query, "limit", q.Limit)

	var recipes []Recipe
	env, err := c.do(ctx, http.MethodGet, "/recipes", query, nil, &recipes)
	if err != nil {
		return nil, err
	}
	return &RecipePage{
		Recipes:     recipes,
		Count:       env.Count,
		Total:       env.Total,
		TotalPages:  env.TotalPages,
		CurrentPage: env.CurrentPage,
	}, nil
}

// GetRecipe looks a recipe up by id or slug.
func (c *Client) GetRecipe(ctx context.Context, idOrSlug string) (*Recipe, error) {
	var recipe Recipe
	if _, err := c.do(ctx, http.MethodGet, "/recipes/"+url.PathEscape(idOrSlug), nil, nil, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe publishes a recipe authored by the current user.
func (c *Client) CreateRecipe(ctx context.Context, in RecipeInput) (*Recipe, error) {
	var recipe Recipe
	if _, err := c.do(ctx, http.MethodPost, "/recipes", nil, in, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe applies a partial update.
func (c *Client) UpdateRecipe(ctx context.Context, id string, upd RecipeUpdate) (*Recipe, error) {
	var recipe Recipe
	if _, err := c.do(ctx, http.MethodPut, "/recipes/"+url.PathEscape(id), nil, upd, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe.
func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/recipes/"+url.PathEscape(id), nil, nil, nil)
	return err
}

func galleryValues(q GalleryQuery) url.Values {
	query := url.Values{}
	setString(query, "category", q.Category)
	if q.FeaturedOnly {
		query.Set("featured", "true")
	}
	return query
}

// ListGallery returns every matching gallery item, newest first.
func (c *Client) ListGallery(ctx context.Context, q GalleryQuery) ([]GalleryItem, error) {
	items := []GalleryItem{}
	if _, err := c.do(ctx, http.MethodGet, "/gallery", galleryValues(q), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GalleryLayout returns matching items arranged into masonry columns.
func (c *Client) GalleryLayout(ctx context.Context, q LayoutQuery) (*GalleryLayout, error) {
	query := galleryValues(q.GalleryQuery)
	setInt(query, "columns", q.Columns)
	setInt(query, "columnWidth", q.ColumnWidth)
	setInt(query, "gap", q.Gap)

	var layout GalleryLayout
	if _, err := c.do(ctx, http.MethodGet, "/gallery/layout", query, nil, &layout); err != nil {
		return nil, err
	}
	return &layout, nil
}

// GetGalleryItem returns one gallery item.
func (c *Client) GetGalleryItem(ctx context.Context, id string) (*GalleryItem, error) {
	var item GalleryItem
	if _, err := c.do(ctx, http.MethodGet, "/gallery/"+url.PathEscape(id), nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateGalleryItem adds a gallery item. Requires an admin token.
func (c *Client) CreateGalleryItem(ctx context.Context, in GalleryInput) (*GalleryItem, error) {
	var item GalleryItem
	if _, err := c.do(ctx, http.MethodPost, "/gallery", nil, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateGalleryItem applies a partial update.
func (c *Client) UpdateGalleryItem(ctx context.Context, id string, upd GalleryUpdate) (*GalleryItem, error) {
	var item GalleryItem
	if _, err := c.do(ctx, http.MethodPut, "/gallery/"+url.PathEscape(id), nil, upd, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteGalleryItem removes a gallery item.
func (c *Client) DeleteGalleryItem(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/gallery/"+url.PathEscape(id), nil, nil, nil)
	return err
}

// SubmitContact sends a contact form. No token is needed.
func (c *Client) SubmitContact(ctx context.Context, in ContactInput) (*ContactMessage, error) {
	var msg ContactMessage
	if _, err := c.do(ctx, http.MethodPost, "/contact", nil, in, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListMessages returns one page of contact messages. Requires an admin token.
func (c *Client) ListMessages(ctx context.Context, status string, page, limit int) (*MessagePage, error) {
	query := url.Values{}
	setString(query, "status", status)
	setInt(query, "page", page)
	setInt(query, "limit", limit)

	var msgs []ContactMessage
	env, err := c.do(ctx, http.MethodGet, "/contact", query, nil, &msgs)
	if err != nil {
		return nil, err
	}
	return &MessagePage{
		Messages:    msgs,
		Count:       env.Count,
		Total:       env.Total,
		TotalPages:  env.TotalPages,
		CurrentPage: env.CurrentPage,
	}, nil
}

// GetMessage returns one contact message.
func (c *Client) GetMessage(ctx context.Context, id string) (*ContactMessage, error) {
	var msg ContactMessage
	if _, err := c.do(ctx, http.MethodGet, "/contact/"+url.PathEscape(id), nil, nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// UpdateMessageStatus sets a message's status.
func (c *Client) UpdateMessageStatus(ctx context.Context, id, status string) (*ContactMessage, error) {
	var msg ContactMessage
	if _, err := c.do(ctx, http.MethodPut, "/contact/"+url.PathEscape(id), nil, map[string]string{"status": status}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteMessage removes a contact message.
func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/contact/"+url.PathEscape(id), nil, nil, nil)
	return err
}

// Upload targets.
const (
	TargetRecipe  = "recipe"
	TargetGallery = "gallery"
)

// UploadImage stores an image for target (TargetRecipe or TargetGallery).
func (c *Client) UploadImage(ctx context.Context, target, filename string, r io.Reader) (*UploadedImage, error) {
	body, err := newMultipart("image", filename, r)
	if err != nil {
		return nil, err
	}
	var img UploadedImage
	if _, err := c.do(ctx, http.MethodPost, "/uploads/"+url.PathEscape(target), nil, body, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

// DeleteImage removes a previously uploaded image by its URL.
func (c *Client) DeleteImage(ctx context.Context, imageURL string) error {
	_, err := c.do(ctx, http.MethodDelete, "/uploads", nil, map[string]string{"url": imageURL}, nil)
	return err
}
