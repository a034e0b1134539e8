package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/udmdigital/lead-crm-api/internal/entity"
	"github.com/udmdigital/lead-crm-api/internal/repository"
	"github.com/udmdigital/lead-crm-api/internal/service"
)

type stubAttachmentsRepo struct {
	stored []entity.Attachment
}

func (r *stubAttachmentsRepo) ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.Attachment, error) {
	return r.stored, nil
}

func (r *stubAttachmentsRepo) Insert(ctx context.Context, attachment *entity.Attachment) (*entity.Attachment, error) {
	attachment.ID = uuid.New()
	r.stored = append(r.stored, *attachment)
	return attachment, nil
}

func (r *stubAttachmentsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for _, a := range r.stored {
		if a.ID == id {
			return nil
		}
	}
	return repository.ErrAttachmentNotFound
}

func TestAttachmentsHandler_CreateAndDelete(t *testing.T) {
	leadID := uuid.New()
	leads := &capturingLeadsRepo{leads: []entity.Lead{{ID: leadID}}}
	attachments := &stubAttachmentsRepo{}
	handler := NewAttachmentsHandler(service.NewAttachmentService(attachments, leads))
	e := echo.New()

	body := `{"file_name":"quote.pdf","file_url":"https://files.example/quote.pdf"}`
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
	if len(attachments.stored) != 1 || attachments.stored[0].UploadedBy != "user-1" {
		t.Fatalf("expected stored attachment with uploader, got %+v", attachments.stored)
	}

	delReq := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec = httptest.NewRecorder()
	c = authedContext(e, delReq, rec)
	c.SetParamNames("id")
	c.SetParamValues(attachments.stored[0].ID.String())

	_ = handler.Delete(c)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	c = authedContext(e, delReq, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	_ = handler.Delete(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAttachmentsHandler_Create_Validation(t *testing.T) {
	leadID := uuid.New()
	leads := &capturingLeadsRepo{leads: []entity.Lead{{ID: leadID}}}
	handler := NewAttachmentsHandler(service.NewAttachmentService(&stubAttachmentsRepo{}, leads))
	e := echo.New()

	body := `{"file_url":"https://files.example/quote.pdf"}`
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
}
