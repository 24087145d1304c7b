package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bakehouse/internal/service"
)

// ContactHandler handles contact form endpoints.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRequest represents a contact form submission.
type ContactRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"max=50"`
	Subject   string `json:"subject" validate:"required,max=200"`
	Message   string `json:"message" validate:"required,max=5000"`
	EventDate string `json:"eventDate"`
	EventType string `json:"eventType" validate:"max=100"`
}

// ListMessagesQuery holds the listing query parameters.
type ListMessagesQuery struct {
	Status string `query:"status"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// UpdateStatusRequest sets a message status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Submit godoc
// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Enquiry"
// @Success 201 {object} Response{data=model.ContactMessage}
// @Failure 400 {object} errors.ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req ContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.contactService.Submit(c.Request().Context(), service.ContactInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		EventDate: req.EventDate,
		EventType: req.EventType,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: "thank you for your message, we will get back to you soon",
		Data:    msg,
	})
}

// List godoc
// @Summary List contact messages
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param status query string false "NEW, READ, REPLIED, ARCHIVED or All"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} ListResponse{data=[]model.ContactMessage}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /contact [get]
func (h *ContactHandler) List(c echo.Context) error {
	var q ListMessagesQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.contactService.List(c.Request().Context(), q.Status, q.Page, q.Limit)
	if err != nil {
		return err
	}
	return okPage(c, page)
}

// Get godoc
// @Summary Get a contact message
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message UUID"
// @Success 200 {object} Response{data=model.ContactMessage}
// @Failure 404 {object} errors.ErrorResponse
// @Router /contact/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	msg, err := h.contactService.GetOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, msg)
}

// UpdateStatus godoc
// @Summary Set a contact message status
// @Description Any status may follow any other.
// @Tags contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message UUID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} Response{data=model.ContactMessage}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /contact/{id} [put]
func (h *ContactHandler) UpdateStatus(c echo.Context) error {
	var req UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.contactService.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, msg)
}

// Delete godoc
// @Summary Delete a contact message
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message UUID"
// @Success 200 {object} Response
// @Failure 404 {object} errors.ErrorResponse
// @Router /contact/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.contactService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return okMessage(c, "message deleted")
}
