package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bakehouse/internal/middleware"
	"bakehouse/internal/model"
	"bakehouse/internal/service"
)

// RecipeHandler handles recipe endpoints.
type RecipeHandler struct {
	recipeService service.RecipeService
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(recipeService service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// ListRecipesQuery holds the listing query parameters.
type ListRecipesQuery struct {
	Category   string `query:"category"`
	Difficulty string `query:"difficulty"`
	Search     string `query:"search"`
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
}

// CreateRecipeRequest represents a new recipe.
type CreateRecipeRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=2000"`
	Difficulty   string   `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	Category     string   `json:"category" validate:"max=100"`
	PrepTime     string   `json:"prepTime" validate:"max=50"`
	CookTime     string   `json:"cookTime" validate:"max=50"`
	Servings     int      `json:"servings" validate:"gte=0"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Tips         []string `json:"tips"`
	Image        string   `json:"image" validate:"max=512"`
}

// UpdateRecipeRequest carries the fields to change. Omitted fields are kept.
type UpdateRecipeRequest struct {
	Title        *string  `json:"title" validate:"omitempty,max=200"`
	Description  *string  `json:"description" validate:"omitempty,max=2000"`
	Difficulty   *string  `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	Category     *string  `json:"category" validate:"omitempty,max=100"`
	PrepTime     *string  `json:"prepTime" validate:"omitempty,max=50"`
	CookTime     *string  `json:"cookTime" validate:"omitempty,max=50"`
	Servings     *int     `json:"servings" validate:"omitempty,gte=0"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Tips         []string `json:"tips"`
	Image        *string  `json:"image" validate:"omitempty,max=512"`
}

// List godoc
// @Summary List recipes
// @Tags recipes
// @Produce json
// @Param category query string false "Category, All for any"
// @Param difficulty query string false "Easy, Medium, Hard or All"
// @Param search query string false "Substring of title or description"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} ListResponse{data=[]model.Recipe}
// @Failure 500 {object} errors.ErrorResponse
// @Router /recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	var q ListRecipesQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.recipeService.List(c.Request().Context(), service.RecipeQuery{
		Category:   q.Category,
		Difficulty: q.Difficulty,
		Search:     q.Search,
		Page:       q.Page,
		Limit:      q.Limit,
	})
	if err != nil {
		return err
	}
	return okPage(c, page)
}

// Get godoc
// @Summary Get a recipe by id or slug
// @Tags recipes
// @Produce json
// @Param id path string true "Recipe UUID or slug"
// @Success 200 {object} Response{data=model.Recipe}
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	recipe, err := h.recipeService.GetOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, recipe)
}

// Create godoc
// @Summary Create a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRecipeRequest true "Recipe"
// @Success 201 {object} Response{data=model.Recipe}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	var req CreateRecipeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	recipe, err := h.recipeService.Create(c.Request().Context(), service.RecipeInput{
		Title:        req.Title,
		Description:  req.Description,
		Difficulty:   model.Difficulty(req.Difficulty),
		Category:     req.Category,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Tips:         req.Tips,
		Image:        req.Image,
	}, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, recipe)
}

// Update godoc
// @Summary Update a recipe
// @Description Only the author or an admin may update a recipe.
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recipe UUID"
// @Param request body UpdateRecipeRequest true "Fields to change"
// @Success 200 {object} Response{data=model.Recipe}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [put]
func (h *RecipeHandler) Update(c echo.Context) error {
	var req UpdateRecipeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	upd := service.RecipeUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Tips:         req.Tips,
		Image:        req.Image,
	}
	if req.Difficulty != nil {
		d := model.Difficulty(*req.Difficulty)
		upd.Difficulty = &d
	}

	recipe, err := h.recipeService.Update(c.Request().Context(), c.Param("id"), upd, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, recipe)
}

// Delete godoc
// @Summary Delete a recipe
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recipe UUID"
// @Success 200 {object} Response
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	if err := h.recipeService.Delete(c.Request().Context(), c.Param("id"), middleware.CurrentUser(c)); err != nil {
		return err
	}
	return okMessage(c, "recipe deleted")
}
