package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bakehouse/internal/layout"
	"bakehouse/internal/middleware"
	"bakehouse/internal/model"
	"bakehouse/internal/service"
)

const (
	defaultColumns     = 3
	maxColumns         = 6
	defaultColumnWidth = 300
	defaultGap         = 16
)

// GalleryHandler handles gallery endpoints.
type GalleryHandler struct {
	galleryService service.GalleryService
}

// NewGalleryHandler creates a new gallery handler.
func NewGalleryHandler(galleryService service.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

// ListGalleryQuery holds the listing query parameters.
type ListGalleryQuery struct {
	Category string `query:"category"`
	Featured string `query:"featured"`
}

// LayoutQuery holds the masonry parameters on top of the listing filters.
type LayoutQuery struct {
	ListGalleryQuery
	Columns     int     `query:"columns"`
	ColumnWidth float64 `query:"columnWidth"`
	Gap         float64 `query:"gap"`
}

// CreateGalleryRequest represents a new gallery item.
type CreateGalleryRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Category string `json:"category" validate:"max=100"`
	Image    string `json:"image" validate:"required,max=512"`
	Featured bool   `json:"featured"`
	Width    int    `json:"width" validate:"gte=0"`
	Height   int    `json:"height" validate:"gte=0"`
}

// UpdateGalleryRequest carries the fields to change. Omitted fields are kept.
type UpdateGalleryRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=200"`
	Category *string `json:"category" validate:"omitempty,max=100"`
	Image    *string `json:"image" validate:"omitempty,min=1,max=512"`
	Featured *bool   `json:"featured"`
	Width    *int    `json:"width" validate:"omitempty,gte=0"`
	Height   *int    `json:"height" validate:"omitempty,gte=0"`
}

// LayoutResponse is a gallery listing with its masonry placement.
type LayoutResponse struct {
	Items  []model.GalleryItem `json:"items"`
	Layout layout.Result       `json:"layout"`
}

func (q ListGalleryQuery) toService() service.GalleryQuery {
	return service.GalleryQuery{Category: q.Category, Featured: q.Featured}
}

// List godoc
// @Summary List gallery items
// @Tags gallery
// @Produce json
// @Param category query string false "Category, All for any"
// @Param featured query string false "true to return featured items only"
// @Success 200 {object} CollectionResponse{data=[]model.GalleryItem}
// @Router /gallery [get]
func (h *GalleryHandler) List(c echo.Context) error {
	var q ListGalleryQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	items, err := h.galleryService.List(c.Request().Context(), q.toService())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CollectionResponse{Success: true, Count: len(items), Data: items})
}

// Layout godoc
// @Summary Gallery masonry layout
// @Description Packs the listed items into columns, each item going to the currently shortest column.
// @Tags gallery
// @Produce json
// @Param category query string false "Category, All for any"
// @Param featured query string false "true to return featured items only"
// @Param columns query int false "Column count" default(3)
// @Param columnWidth query number false "Column width in pixels" default(300)
// @Param gap query number false "Vertical gap in pixels" default(16)
// @Success 200 {object} Response{data=LayoutResponse}
// @Router /gallery/layout [get]
func (h *GalleryHandler) Layout(c echo.Context) error {
	q := LayoutQuery{Columns: defaultColumns, ColumnWidth: defaultColumnWidth, Gap: defaultGap}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if q.Columns < 1 || q.Columns > maxColumns {
		q.Columns = defaultColumns
	}
	if q.ColumnWidth <= 0 {
		q.ColumnWidth = defaultColumnWidth
	}
	if q.Gap < 0 {
		q.Gap = 0
	}

	res, err := h.galleryService.Layout(c.Request().Context(), q.toService(), layout.Options{
		Columns:     q.Columns,
		ColumnWidth: q.ColumnWidth,
		Gap:         q.Gap,
	})
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, LayoutResponse{Items: res.Items, Layout: res.Layout})
}

// Get godoc
// @Summary Get a gallery item
// @Tags gallery
// @Produce json
// @Param id path string true "Gallery item UUID"
// @Success 200 {object} Response{data=model.GalleryItem}
// @Failure 404 {object} errors.ErrorResponse
// @Router /gallery/{id} [get]
func (h *GalleryHandler) Get(c echo.Context) error {
	item, err := h.galleryService.GetOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, item)
}

// Create godoc
// @Summary Create a gallery item
// @Tags gallery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGalleryRequest true "Gallery item"
// @Success 201 {object} Response{data=model.GalleryItem}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /gallery [post]
func (h *GalleryHandler) Create(c echo.Context) error {
	var req CreateGalleryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.galleryService.Create(c.Request().Context(), service.GalleryInput{
		Title:    req.Title,
		Category: req.Category,
		Image:    req.Image,
		Featured: req.Featured,
		Width:    req.Width,
		Height:   req.Height,
	}, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, item)
}

// Update godoc
// @Summary Update a gallery item
// @Tags gallery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Gallery item UUID"
// @Param request body UpdateGalleryRequest true "Fields to change"
// @Success 200 {object} Response{data=model.GalleryItem}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /gallery/{id} [put]
func (h *GalleryHandler) Update(c echo.Context) error {
	var req UpdateGalleryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.galleryService.Update(c.Request().Context(), c.Param("id"), service.GalleryUpdate{
		Title:    req.Title,
		Category: req.Category,
		Image:    req.Image,
		Featured: req.Featured,
		Width:    req.Width,
		Height:   req.Height,
	}, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a gallery item
// @Tags gallery
// @Produce json
// @Security BearerAuth
// @Param id path string true "Gallery item UUID"
// @Success 200 {object} Response
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /gallery/{id} [delete]
func (h *GalleryHandler) Delete(c echo.Context) error {
	if err := h.galleryService.Delete(c.Request().Context(), c.Param("id"), middleware.CurrentUser(c)); err != nil {
		return err
	}
	return okMessage(c, "gallery item deleted")
}
