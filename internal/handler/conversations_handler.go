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

// ConversationsHandler exposes the follow-up conversation log of a lead.
type ConversationsHandler struct {
	service *service.ConversationService
}

// NewConversationsHandler creates a new handler instance.
func NewConversationsHandler(service *service.ConversationService) *ConversationsHandler {
	return &ConversationsHandler{service: service}
}

// List handles GET /leads/:id/conversations requests.
func (h *ConversationsHandler) List(c echo.Context) error {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}

	conversations, err := h.service.ListByLead(c.Request().Context(), leadID)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return Error(c, http.StatusNotFound, "lead not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to list conversations")
	}

	return Success(c, http.StatusOK, "conversations retrieved", conversations)
}

// Create handles POST /leads/:id/conversations requests.
func (h *ConversationsHandler) Create(c echo.Context) error {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}

	var req dto.CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	createdBy, _ := c.Get(middleware.ContextKeyUserID).(string)

	conversation, err := h.service.Create(c.Request().Context(), leadID, req, createdBy)
	if err != nil {
		var verr service.ValidationError
		switch {
		case errors.As(err, &verr):
			return Error(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, repository.ErrLeadNotFound):
			return Error(c, http.StatusNotFound, "lead not found")
		default:
			return Error(c, http.StatusInternalServerError, "failed to log conversation")
		}
	}

	return Success(c, http.StatusCreated, "conversation logged", conversation)
}
