package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "bakehouse/internal/errors"
	"bakehouse/internal/handler"
	"bakehouse/internal/middleware"
	"bakehouse/internal/model"
	"bakehouse/internal/service"
)

// imageField is the optional file input of the admin editors.
const imageField = "imageFile"

var difficulties = []string{string(model.DifficultyEasy), string(model.DifficultyMedium), string(model.DifficultyHard)}

// RecipeForm is the admin recipe editor as posted by the browser.
// List fields hold one entry per line.
type RecipeForm struct {
	ID           string `form:"-"`
	Title        string `form:"title" validate:"required,max=200"`
	Description  string `form:"description" validate:"max=2000"`
	Difficulty   string `form:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	Category     string `form:"category" validate:"max=100"`
	PrepTime     string `form:"prepTime" validate:"max=50"`
	CookTime     string `form:"cookTime" validate:"max=50"`
	Servings     int    `form:"servings" validate:"gte=0"`
	Ingredients  string `form:"ingredients"`
	Instructions string `form:"instructions"`
	Tips         string `form:"tips"`
	Image        string `form:"image" validate:"max=512"`
}

// splitLines turns a textarea into a list, dropping blank lines.
func splitLines(s string) []string {
	lines := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func newRecipeForm(r *model.Recipe) *RecipeForm {
	return &RecipeForm{
		ID:           r.ID.String(),
		Title:        r.Title,
		Description:  r.Description,
		Difficulty:   string(r.Difficulty),
		Category:     r.Category,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Ingredients:  strings.Join(r.Ingredients, "\n"),
		Instructions: strings.Join(r.Instructions, "\n"),
		Tips:         strings.Join(r.Tips, "\n"),
		Image:        r.Image,
	}
}

func (f *RecipeForm) input() service.RecipeInput {
	return service.RecipeInput{
		Title:        f.Title,
		Description:  f.Description,
		Difficulty:   model.Difficulty(f.Difficulty),
		Category:     f.Category,
		PrepTime:     f.PrepTime,
		CookTime:     f.CookTime,
		Servings:     f.Servings,
		Ingredients:  splitLines(f.Ingredients),
		Instructions: splitLines(f.Instructions),
		Tips:         splitLines(f.Tips),
		Image:        f.Image,
	}
}

// update replaces every field the editor shows.
func (f *RecipeForm) update() service.RecipeUpdate {
	upd := service.RecipeUpdate{
		Title:        &f.Title,
		Description:  &f.Description,
		Category:     &f.Category,
		PrepTime:     &f.PrepTime,
		CookTime:     &f.CookTime,
		Servings:     &f.Servings,
		Ingredients:  splitLines(f.Ingredients),
		Instructions: splitLines(f.Instructions),
		Tips:         splitLines(f.Tips),
		Image:        &f.Image,
	}
	if f.Difficulty != "" {
		d := model.Difficulty(f.Difficulty)
		upd.Difficulty = &d
	}
	return upd
}

// GalleryForm is the admin gallery editor as posted by the browser.
type GalleryForm struct {
	ID       string `form:"-"`
	Title    string `form:"title" validate:"required,max=200"`
	Category string `form:"category" validate:"max=100"`
	Image    string `form:"image" validate:"max=512"`
	Featured bool   `form:"featured"`
	Width    int    `form:"width" validate:"gte=0"`
	Height   int    `form:"height" validate:"gte=0"`
}

func newGalleryForm(item *model.GalleryItem) *GalleryForm {
	return &GalleryForm{
		ID:       item.ID.String(),
		Title:    item.Title,
		Category: item.Category,
		Image:    item.Image,
		Featured: item.Featured,
		Width:    item.Width,
		Height:   item.Height,
	}
}

// uploadedImage stores the editor's file input, if one was sent.
func (h *Handler) uploadedImage(c echo.Context, target service.UploadTarget) (*service.UploadedImage, error) {
	file, err := c.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return h.Uploads.UploadImage(c.Request().Context(), target, file)
}

func (h *Handler) renderRecipeForm(c echo.Context, status int, form *RecipeForm, errMsg string) error {
	title := "New recipe"
	if form.ID != "" {
		title = "Edit recipe"
	}
	p := h.page(c, title, "admin", map[string]interface{}{
		"Form":         form,
		"Categories":   recipeCategories[1:],
		"Difficulties": difficulties,
	})
	p.Error = errMsg
	return c.Render(status, "recipe_form", p)
}

// NewRecipePage renders an empty recipe editor.
func (h *Handler) NewRecipePage(c echo.Context) error {
	return h.renderRecipeForm(c, http.StatusOK, &RecipeForm{Difficulty: string(model.DifficultyEasy)}, "")
}

// EditRecipePage renders the editor filled with a stored recipe.
func (h *Handler) EditRecipePage(c echo.Context) error {
	recipe, err := h.Recipes.GetOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return h.renderRecipeForm(c, http.StatusOK, newRecipeForm(recipe), "")
}

// CreateRecipe stores a new recipe from the editor.
func (h *Handler) CreateRecipe(c echo.Context) error {
	return h.saveRecipe(c, "")
}

// UpdateRecipe rewrites a recipe from the editor.
func (h *Handler) UpdateRecipe(c echo.Context) error {
	return h.saveRecipe(c, c.Param("id"))
}

func (h *Handler) saveRecipe(c echo.Context, id string) error {
	form := &RecipeForm{}
	if err := c.Bind(form); err != nil {
		return err
	}
	form.ID = id
	ctx := c.Request().Context()
	user := middleware.CurrentUser(c)

	err := c.Validate(form)
	if err == nil {
		var img *service.UploadedImage
		if img, err = h.uploadedImage(c, service.TargetRecipe); img != nil {
			form.Image = img.URL
		}
	}
	if err == nil {
		if id == "" {
			_, err = h.Recipes.Create(ctx, form.input(), user)
		} else {
			_, err = h.Recipes.Update(ctx, id, form.update(), user)
		}
	}
	if err != nil {
		msg, ok := formError(err)
		if !ok {
			return err
		}
		return h.renderRecipeForm(c, http.StatusBadRequest, form, msg)
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

func (h *Handler) renderGalleryForm(c echo.Context, status int, form *GalleryForm, errMsg string) error {
	title := "New gallery item"
	if form.ID != "" {
		title = "Edit gallery item"
	}
	p := h.page(c, title, "admin", map[string]interface{}{
		"Form":       form,
		"Categories": galleryCategories[1:],
	})
	p.Error = errMsg
	return c.Render(status, "gallery_form", p)
}

// NewGalleryPage renders an empty gallery editor.
func (h *Handler) NewGalleryPage(c echo.Context) error {
	return h.renderGalleryForm(c, http.StatusOK, &GalleryForm{}, "")
}

// EditGalleryPage renders the editor filled with a stored gallery item.
func (h *Handler) EditGalleryPage(c echo.Context) error {
	item, err := h.Gallery.GetOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return h.renderGalleryForm(c, http.StatusOK, newGalleryForm(item), "")
}

// CreateGalleryItem stores a new gallery item from the editor.
func (h *Handler) CreateGalleryItem(c echo.Context) error {
	return h.saveGalleryItem(c, "")
}

// UpdateGalleryItem rewrites a gallery item from the editor.
func (h *Handler) UpdateGalleryItem(c echo.Context) error {
	return h.saveGalleryItem(c, c.Param("id"))
}

func (h *Handler) saveGalleryItem(c echo.Context, id string) error {
	form := &GalleryForm{}
	if err := c.Bind(form); err != nil {
		return err
	}
	form.ID = id
	ctx := c.Request().Context()
	user := middleware.CurrentUser(c)

	err := c.Validate(form)
	if err == nil {
		var img *service.UploadedImage
		if img, err = h.uploadedImage(c, service.TargetGallery); img != nil {
			// the stored image decides the masonry aspect ratio
			form.Image, form.Width, form.Height = img.URL, img.Width, img.Height
		}
	}
	if err == nil && strings.TrimSpace(form.Image) == "" {
		err = apperrors.Validation("image is required")
	}
	if err == nil {
		if id == "" {
			_, err = h.Gallery.Create(ctx, service.GalleryInput{
				Title:    form.Title,
				Category: form.Category,
				Image:    form.Image,
				Featured: form.Featured,
				Width:    form.Width,
				Height:   form.Height,
			}, user)
		} else {
			_, err = h.Gallery.Update(ctx, id, service.GalleryUpdate{
				Title:    &form.Title,
				Category: &form.Category,
				Image:    &form.Image,
				Featured: &form.Featured,
				Width:    &form.Width,
				Height:   &form.Height,
			}, user)
		}
	}
	if err != nil {
		msg, ok := formError(err)
		if !ok {
			return err
		}
		return h.renderGalleryForm(c, http.StatusBadRequest, form, msg)
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

// RegisterForm is the sign-up form as posted by the browser.
type RegisterForm struct {
	Name     string `form:"name" validate:"required,max=100"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// RegisterPage renders the sign-up form, or redirects when already signed in.
func (h *Handler) RegisterPage(c echo.Context) error {
	if middleware.CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "register", h.page(c, "Sign up", "login", &RegisterForm{}))
}

// SignUp creates a USER account and signs it in.
func (h *Handler) SignUp(c echo.Context) error {
	form := &RegisterForm{}
	if err := c.Bind(form); err != nil {
		return err
	}

	var session *service.Session
	err := c.Validate(form)
	if err == nil {
		session, err = h.Auth.Register(c.Request().Context(), form.Name, form.Email, form.Password)
	}
	if err != nil {
		msg, ok := formError(err)
		if !ok {
			return err
		}
		form.Password = ""
		p := h.page(c, "Sign up", "login", form)
		p.Error = msg
		return c.Render(http.StatusBadRequest, "register", p)
	}

	c.SetCookie(handler.SessionCookie(session.Token, session.ExpiresAt, h.CookieSecure))
	return c.Redirect(http.StatusSeeOther, "/")
}
