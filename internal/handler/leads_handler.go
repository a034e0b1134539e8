package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/udmdigital/lead-crm-api/internal/dto"
	"github.com/udmdigital/lead-crm-api/internal/entity"
	"github.com/udmdigital/lead-crm-api/internal/middleware"
	"github.com/udmdigital/lead-crm-api/internal/repository"
	"github.com/udmdigital/lead-crm-api/internal/service"
	"github.com/udmdigital/lead-crm-api/internal/service/followup"
)

// LeadsHandler exposes lead collection endpoints.
type LeadsHandler struct {
	service *service.LeadService
}

// NewLeadsHandler creates a new handler instance.
func NewLeadsHandler(service *service.LeadService) *LeadsHandler {
	return &LeadsHandler{service: service}
}

// List handles GET /leads requests. Query parameters map onto the dashboard
// filters: city and service are substring matches, q is the free-text
// search over lead fields, and bucket selects a follow-up window.
func (h *LeadsHandler) List(c echo.Context) error {
	query := service.ListQuery{
		Bucket: followup.Bucket(strings.TrimSpace(c.QueryParam("bucket"))),
		Criteria: followup.Criteria{
			CityContains:    strings.TrimSpace(c.QueryParam("city")),
			ServiceContains: strings.TrimSpace(c.QueryParam("service")),
			FreeTextQuery:   strings.TrimSpace(c.QueryParam("q")),
		},
	}

	leads, err := h.service.ListLeads(c.Request().Context(), query)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list leads")
	}

	return Success(c, http.StatusOK, "leads retrieved", leads)
}

// Search handles GET /leads/search requests: the free-text search including
// the conversation-body side channel.
func (h *LeadsHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))

	middleware.RecordSearch()

	leads, err := h.service.SearchLeads(c.Request().Context(), query)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to search leads")
	}

	return Success(c, http.StatusOK, "leads retrieved", leads)
}

// Get handles GET /leads/:id requests.
func (h *LeadsHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}

	lead, err := h.service.GetLead(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return Error(c, http.StatusNotFound, "lead not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to load lead")
	}

	return Success(c, http.StatusOK, "lead retrieved", lead)
}

// Create handles POST /leads requests.
func (h *LeadsHandler) Create(c echo.Context) error {
	var req dto.CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	createdBy, _ := c.Get(middleware.ContextKeyUserID).(string)

	lead, err := h.service.CreateLead(c.Request().Context(), req, createdBy)
	if err != nil {
		var verr service.ValidationError
		if errors.As(err, &verr) {
			return Error(c, http.StatusBadRequest, verr.Message)
		}
		return Error(c, http.StatusInternalServerError, "failed to create lead")
	}

	return Success(c, http.StatusCreated, "lead created", lead)
}

// Update handles PATCH /leads/:id requests.
func (h *LeadsHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}

	var req dto.UpdateLeadRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	lead, err := h.service.UpdateLead(c.Request().Context(), id, req)
	if err != nil {
		var verr service.ValidationError
		switch {
		case errors.As(err, &verr):
			return Error(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, repository.ErrLeadNotFound):
			return Error(c, http.StatusNotFound, "lead not found")
		default:
			return Error(c, http.StatusInternalServerError, "failed to update lead")
		}
	}

	return Success(c, http.StatusOK, "lead updated", lead)
}

// UpdateStage handles PATCH /leads/:id/stage requests.
func (h *LeadsHandler) UpdateStage(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}

	var req dto.UpdateStageRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	lead, err := h.service.MoveStage(c.Request().Context(), id, entity.Stage(req.Stage))
	if err != nil {
		var verr service.ValidationError
		switch {
		case errors.As(err, &verr):
			return Error(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, repository.ErrLeadNotFound):
			return Error(c, http.StatusNotFound, "lead not found")
		default:
			return Error(c, http.StatusInternalServerError, "failed to move stage")
		}
	}

	middleware.RecordStageMove(string(lead.Stage))

	return Success(c, http.StatusOK, "stage updated", lead)
}

// UpdateStatus handles PATCH /leads/:id/status requests.
func (h *LeadsHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	lead, err := h.service.QuickSetStatus(c.Request().Context(), id, entity.LeadStatus(req.LeadStatus))
	if err != nil {
		var verr service.ValidationError
		switch {
		case errors.As(err, &verr):
			return Error(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, repository.ErrLeadNotFound):
			return Error(c, http.StatusNotFound, "lead not found")
		default:
			return Error(c, http.StatusInternalServerError, "failed to update status")
		}
	}

	return Success(c, http.StatusOK, "status updated", lead)
}

// Delete handles DELETE /leads/:id requests.
func (h *LeadsHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}

	if err := h.service.DeleteLead(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return Error(c, http.StatusNotFound, "lead not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to delete lead")
	}

	return Success(c, http.StatusOK, "lead deleted", nil)
}
