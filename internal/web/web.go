package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	apperrors "bakehouse/internal/errors"
	"bakehouse/internal/handler"
	"bakehouse/internal/layout"
	"bakehouse/internal/middleware"
	"bakehouse/internal/model"
	"bakehouse/internal/service"
)

const (
	loginPath     = "/login"
	latestRecipes = 6
	adminPageSize = 50
)

var (
	recipeCategories  = []string{"All", "Cakes", "Cookies", "Bread", "Pastries", "Tarts", "Desserts"}
	galleryCategories = []string{"All", "Cakes", "Cupcakes", "Pastries", "Bread", "Cookies", "Events"}
	eventTypes        = []string{"Wedding", "Birthday", "Corporate", "Baby Shower", "Other"}
	galleryColumns    = layout.Options{Columns: 3, ColumnWidth: 300, Gap: 16}
)

// Page is the data every template receives.
type Page struct {
	Title string
	Nav   string
	User  *model.User
	CSRF  string
	Flash string
	Error string
	Data  interface{}
}

// Deps are the services the site reads from.
type Deps struct {
	Auth         service.AuthService
	Recipes      service.RecipeService
	Gallery      service.GalleryService
	Contact      service.ContactService
	Uploads      service.UploadService
	Users        service.UserService
	CookieSecure bool
	Logger       zerolog.Logger
}

// Handler serves the HTML pages.
type Handler struct {
	Deps
	renderer *Renderer
}

// New builds the site handler and parses its templates.
func New(deps Deps) (*Handler, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Handler{Deps: deps, renderer: renderer}, nil
}

// Register mounts the pages and static assets on e.
func (h *Handler) Register(e *echo.Echo) {
	e.Renderer = h.renderer
	e.StaticFS("/static", echo.MustSubFS(staticFS, "static"))

	csrf := echomw.CSRFWithConfig(echomw.CSRFConfig{
		TokenLookup:    "form:_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   h.CookieSecure,
		CookieSameSite: http.SameSiteLaxMode,
	})
	public := []echo.MiddlewareFunc{h.htmlErrors, csrf, middleware.Optional(h.Auth)}
	admin := []echo.MiddlewareFunc{h.htmlErrors, csrf, middleware.ProtectPage(h.Auth, loginPath), middleware.RestrictTo(model.RoleAdmin)}

	e.GET("/", h.HomePage, public...)
	e.GET("/recipes", h.RecipesPage, public...)
	e.GET("/recipes/:slug", h.RecipePage, public...)
	e.GET("/gallery", h.GalleryPage, public...)
	e.GET("/contact", h.ContactPage, public...)
	e.POST("/contact", h.SubmitContact, public...)
	e.GET(loginPath, h.LoginForm, public...)
	e.POST(loginPath, h.Login, public...)
	e.POST("/logout", h.Logout, public...)
	e.GET("/register", h.RegisterPage, public...)
	e.POST("/register", h.SignUp, public...)

	e.GET("/admin", h.Admin, admin...)
	e.POST("/admin/messages/:id/cycle", h.CycleMessage, admin...)
	e.POST("/admin/messages/:id/delete", h.DeleteMessage, admin...)
	e.GET("/admin/recipes/new", h.NewRecipePage, admin...)
	e.POST("/admin/recipes", h.CreateRecipe, admin...)
	e.GET("/admin/recipes/:id/edit", h.EditRecipePage, admin...)
	e.POST("/admin/recipes/:id", h.UpdateRecipe, admin...)
	e.POST("/admin/recipes/:id/delete", h.DeleteRecipe, admin...)
	e.GET("/admin/gallery/new", h.NewGalleryPage, admin...)
	e.POST("/admin/gallery", h.CreateGalleryItem, admin...)
	e.GET("/admin/gallery/:id/edit", h.EditGalleryPage, admin...)
	e.POST("/admin/gallery/:id", h.UpdateGalleryItem, admin...)
	e.POST("/admin/gallery/:id/delete", h.DeleteGalleryItem, admin...)
}

func (h *Handler) page(c echo.Context, title, nav string, data interface{}) Page {
	token, _ := c.Get(echomw.DefaultCSRFConfig.ContextKey).(string)
	return Page{
		Title: title,
		Nav:   nav,
		User:  middleware.CurrentUser(c),
		CSRF:  token,
		Data:  data,
	}
}

// htmlErrors renders failures as an HTML page instead of the JSON envelope.
func (h *Handler) htmlErrors(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		if err == nil || c.Response().Committed {
			return err
		}

		status, message := http.StatusInternalServerError, "something went wrong, please try again"
		var he *echo.HTTPError
		switch {
		case errors.As(err, &he):
			status, message = he.Code, http.StatusText(he.Code)
		default:
			mapped := apperrors.MapErrorToHTTP(err)
			status = mapped.StatusCode
			if status < http.StatusInternalServerError {
				message = mapped.Message
			}
		}
		if status >= http.StatusInternalServerError {
			h.Logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("page failed")
		}

		data := struct {
			Status  int
			Message string
		}{status, message}
		return c.Render(status, "error", h.page(c, http.StatusText(status), "", data))
	}
}

// HomePage shows the featured carousel and the newest recipes.
func (h *Handler) HomePage(c echo.Context) error {
	ctx := c.Request().Context()
	featured, err := h.Gallery.List(ctx, service.GalleryQuery{Featured: "true"})
	if err != nil {
		return err
	}
	latest, err := h.Recipes.List(ctx, service.RecipeQuery{Page: 1, Limit: latestRecipes})
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "home", h.page(c, "", "home", map[string]interface{}{
		"Featured": featured,
		"Latest":   latest.Items,
	}))
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

func pageLinks(base url.Values, current, total int) []pageLink {
	links := make([]pageLink, 0, total)
	for n := 1; n <= total; n++ {
		q := url.Values{}
		for k, v := range base {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(n))
		links = append(links, pageLink{Number: n, URL: "/recipes?" + q.Encode(), Current: n == current})
	}
	return links
}

func orAll(v string) string {
	if strings.TrimSpace(v) == "" {
		return "All"
	}
	return v
}

// RecipesPage lists recipes with category, difficulty and search filters.
func (h *Handler) RecipesPage(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	q := service.RecipeQuery{
		Category:   orAll(c.QueryParam("category")),
		Difficulty: orAll(c.QueryParam("difficulty")),
		Search:     c.QueryParam("search"),
		Page:       page,
		Limit:      12,
	}
	result, err := h.Recipes.List(c.Request().Context(), q)
	if err != nil {
		return err
	}

	base := url.Values{}
	for _, k := range []string{"category", "difficulty", "search"} {
		if v := c.QueryParam(k); v != "" {
			base.Set(k, v)
		}
	}
	return c.Render(http.StatusOK, "recipes", h.page(c, "Recipes", "recipes", map[string]interface{}{
		"Query":        q,
		"Page":         result,
		"Pages":        pageLinks(base, result.CurrentPage, result.TotalPages),
		"Categories":   recipeCategories,
		"Difficulties": append([]string{"All"}, difficulties...),
	}))
}

// RecipePage shows one recipe by slug.
func (h *Handler) RecipePage(c echo.Context) error {
	recipe, err := h.Recipes.GetOne(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "recipe", h.page(c, recipe.Title, "recipes", recipe))
}

// GalleryPage shows the masonry wall, optionally for one category.
func (h *Handler) GalleryPage(c echo.Context) error {
	category := orAll(c.QueryParam("category"))
	res, err := h.Gallery.Layout(c.Request().Context(), service.GalleryQuery{Category: category}, galleryColumns)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "gallery", h.page(c, "Gallery", "gallery", map[string]interface{}{
		"Category":   category,
		"Categories": galleryCategories,
		"Items":      res.Items,
		"Layout":     res.Layout,
	}))
}

// ContactForm is the contact form as posted by the browser.
type ContactForm struct {
	Name       string   `form:"name" validate:"required,max=100"`
	Email      string   `form:"email" validate:"required,email"`
	Phone      string   `form:"phone" validate:"max=50"`
	Subject    string   `form:"subject" validate:"required,max=200"`
	Message    string   `form:"message" validate:"required,max=5000"`
	EventDate  string   `form:"eventDate"`
	EventType  string   `form:"eventType" validate:"max=100"`
	EventTypes []string `form:"-"`
}

// ContactPage renders an empty contact form.
func (h *Handler) ContactPage(c echo.Context) error {
	p := h.page(c, "Contact", "contact", &ContactForm{EventTypes: eventTypes})
	if c.QueryParam("sent") == "1" {
		p.Flash = "Thank you for your message, we will get back to you soon."
	}
	return c.Render(http.StatusOK, "contact", p)
}

// SubmitContact stores a contact form submission.
func (h *Handler) SubmitContact(c echo.Context) error {
	form := &ContactForm{}
	if err := c.Bind(form); err != nil {
		return err
	}
	form.EventTypes = eventTypes

	err := c.Validate(form)
	if err == nil {
		_, err = h.Contact.Submit(c.Request().Context(), service.ContactInput{
			Name:      form.Name,
			Email:     form.Email,
			Phone:     form.Phone,
			Subject:   form.Subject,
			Message:   form.Message,
			EventDate: form.EventDate,
			EventType: form.EventType,
		})
	}
	if err != nil {
		msg, ok := formError(err)
		if !ok {
			return err
		}
		p := h.page(c, "Contact", "contact", form)
		p.Error = msg
		return c.Render(http.StatusBadRequest, "contact", p)
	}
	return c.Redirect(http.StatusSeeOther, "/contact?sent=1")
}

// formError returns the message to show next to a form for user errors.
func formError(err error) (string, bool) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return handler.ValidationMessage(validationErrs), true
	}
	if apperrors.IsKind(err, apperrors.KindValidation) || apperrors.IsKind(err, apperrors.KindConflict) ||
		apperrors.IsKind(err, apperrors.KindAuth) {
		return apperrors.MapErrorToHTTP(err).Message, true
	}
	return "", false
}

type loginData struct {
	Email string
	Next  string
}

// safeNext only allows redirects to local paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

// LoginForm renders the login form, or redirects when already signed in.
func (h *Handler) LoginForm(c echo.Context) error {
	next := safeNext(c.QueryParam("next"))
	if middleware.CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, next)
	}
	return c.Render(http.StatusOK, "login", h.page(c, "Log in", "login", loginData{Next: next}))
}

// Login signs the user in and sets the session cookie.
func (h *Handler) Login(c echo.Context) error {
	email, password := c.FormValue("email"), c.FormValue("password")
	next := safeNext(c.FormValue("next"))

	session, err := h.Auth.Login(c.Request().Context(), email, password)
	if err != nil {
		msg, ok := formError(err)
		if !ok {
			return err
		}
		p := h.page(c, "Log in", "login", loginData{Email: email, Next: next})
		p.Error = msg
		return c.Render(http.StatusUnauthorized, "login", p)
	}

	c.SetCookie(handler.SessionCookie(session.Token, session.ExpiresAt, h.CookieSecure))
	return c.Redirect(http.StatusSeeOther, next)
}

// Logout clears the session cookie.
func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(handler.ExpiredSessionCookie(h.CookieSecure))
	return c.Redirect(http.StatusSeeOther, "/")
}

// Admin is the dashboard of messages, recipes, gallery items and accounts.
func (h *Handler) Admin(c echo.Context) error {
	ctx := c.Request().Context()
	status := orAll(strings.ToUpper(c.QueryParam("status")))
	if status == "ALL" {
		status = "All"
	}

	messages, err := h.Contact.List(ctx, status, 1, adminPageSize)
	if err != nil {
		return err
	}
	recipes, err := h.Recipes.List(ctx, service.RecipeQuery{Page: 1, Limit: 100})
	if err != nil {
		return err
	}
	gallery, err := h.Gallery.List(ctx, service.GalleryQuery{})
	if err != nil {
		return err
	}
	users, err := h.Users.ListUsers(ctx)
	if err != nil {
		return err
	}

	statuses := []string{"All"}
	for _, s := range model.MessageStatuses {
		statuses = append(statuses, string(s))
	}
	return c.Render(http.StatusOK, "admin", h.page(c, "Dashboard", "admin", map[string]interface{}{
		"Status":   status,
		"Statuses": statuses,
		"Messages": messages,
		"Recipes":  recipes,
		"Gallery":  gallery,
		"Users":    users,
	}))
}

// CycleMessage advances a message to the next status in the dashboard cycle.
func (h *Handler) CycleMessage(c echo.Context) error {
	ctx := c.Request().Context()
	msg, err := h.Contact.GetOne(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	if _, err := h.Contact.UpdateStatus(ctx, c.Param("id"), string(model.NextStatus(msg.Status))); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

// DeleteMessage removes a contact message.
func (h *Handler) DeleteMessage(c echo.Context) error {
	if err := h.Contact.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

// DeleteRecipe removes a recipe.
func (h *Handler) DeleteRecipe(c echo.Context) error {
	if err := h.Recipes.Delete(c.Request().Context(), c.Param("id"), middleware.CurrentUser(c)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

// DeleteGalleryItem removes a gallery item.
func (h *Handler) DeleteGalleryItem(c echo.Context) error {
	if err := h.Gallery.Delete(c.Request().Context(), c.Param("id"), middleware.CurrentUser(c)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}
