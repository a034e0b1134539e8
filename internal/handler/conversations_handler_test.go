package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/udmdigital/lead-crm-api/internal/entity"
	"github.com/udmdigital/lead-crm-api/internal/service"
)

func newConversationsHandler(leads *capturingLeadsRepo, conversations *stubConversationsRepo) *ConversationsHandler {
	if conversations == nil {
		conversations = &stubConversationsRepo{}
	}
	return NewConversationsHandler(service.NewConversationService(conversations, leads))
}

func TestConversationsHandler_Create(t *testing.T) {
	leadID := uuid.New()
	leads := &capturingLeadsRepo{leads: []entity.Lead{{ID: leadID}}}
	handler := newConversationsHandler(leads, nil)
	e := echo.New()

	t.Run("created", func(t *testing.T) {
		body := `{"conversation_text":"Asked about pricing."}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec)
		c.SetParamNames("id")
		c.SetParamValues(leadID.String())

		if err := handler.Create(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		body := `{"conversation_text":"   "}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec)
		c.SetParamNames("id")
		c.SetParamValues(leadID.String())

		_ = handler.Create(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown lead", func(t *testing.T) {
		body := `{"conversation_text":"hello"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec)
		c.SetParamNames("id")
		c.SetParamValues(uuid.NewString())

		_ = handler.Create(c)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestConversationsHandler_List(t *testing.T) {
	leadID := uuid.New()
	leads := &capturingLeadsRepo{leads: []entity.Lead{{ID: leadID}}}
	handler := newConversationsHandler(leads, nil)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues(leadID.String())

	if err := handler.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	c = authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	_ = handler.List(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
