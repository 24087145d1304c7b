package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "bakehouse/internal/errors"
	"bakehouse/internal/service"
)

// UploadHandler handles image upload endpoints.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// DeleteImageRequest names the image to remove.
type DeleteImageRequest struct {
	URL string `json:"url" validate:"required"`
}

// UploadRecipeImage godoc
// @Summary Upload a recipe image
// @Description jpg, jpeg, png or webp up to 5MB.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image"
// @Success 201 {object} Response{data=service.UploadedImage}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /uploads/recipe [post]
func (h *UploadHandler) UploadRecipeImage(c echo.Context) error {
	return h.upload(c, service.TargetRecipe)
}

// UploadGalleryImage godoc
// @Summary Upload a gallery image
// @Description jpg, jpeg, png or webp up to 10MB.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image"
// @Success 201 {object} Response{data=service.UploadedImage}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /uploads/gallery [post]
func (h *UploadHandler) UploadGalleryImage(c echo.Context) error {
	return h.upload(c, service.TargetGallery)
}

func (h *UploadHandler) upload(c echo.Context, target service.UploadTarget) error {
	file, err := c.FormFile("image")
	if err != nil {
		return apperrors.ErrNoFile
	}

	img, err := h.uploadService.UploadImage(c.Request().Context(), target, file)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, img)
}

// DeleteImage godoc
// @Summary Delete an uploaded image
// @Tags uploads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeleteImageRequest true "Image URL"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /uploads [delete]
func (h *UploadHandler) DeleteImage(c echo.Context) error {
	var req DeleteImageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.uploadService.DeleteImage(c.Request().Context(), req.URL); err != nil {
		return err
	}
	return okMessage(c, "image deleted")
}
