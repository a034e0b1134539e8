package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/udmdigital/lead-crm-api/internal/dto"
	"github.com/udmdigital/lead-crm-api/internal/middleware"
	"github.com/udmdigital/lead-crm-api/internal/repository"
	"github.com/udmdigital/lead-crm-api/internal/service"
)

// AttachmentsHandler exposes file reference endpoints.
type AttachmentsHandler struct {
	service *service.AttachmentService
}

// NewAttachmentsHandler creates a new handler instance.
func NewAttachmentsHandler(service *service.AttachmentService) *AttachmentsHandler {
	return &AttachmentsHandler{service: service}
}

// List handles GET /leads/:id/attachments requests.
func (h *AttachmentsHandler) List(c echo.Context) error {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}

	attachments, err := h.service.ListByLead(c.Request().Context(), leadID)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return Error(c, http.StatusNotFound, "lead not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to list attachments")
	}

	return Success(c, http.StatusOK, "attachments retrieved", attachments)
}

// Create handles POST /leads/:id/attachments requests.
func (h *AttachmentsHandler) Create(c echo.Context) error {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}

	var req dto.CreateAttachmentRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	uploadedBy, _ := c.Get(middleware.ContextKeyUserID).(string)

	attachment, err := h.service.Create(c.Request().Context(), leadID, req, uploadedBy)
	if err != nil {
		var verr service.ValidationError
		switch {
		case errors.As(err, &verr):
			return Error(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, repository.ErrLeadNotFound):
			return Error(c, http.StatusNotFound, "lead not found")
		default:
			return Error(c, http.StatusInternalServerError, "failed to save attachment")
		}
	}

	return Success(c, http.StatusCreated, "attachment saved", attachment)
}

// Delete handles DELETE /attachments/:id requests.
func (h *AttachmentsHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid attachment id")
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrAttachmentNotFound) {
			return Error(c, http.StatusNotFound, "attachment not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to delete attachment")
	}

	return Success(c, http.StatusOK, "attachment deleted", nil)
}
