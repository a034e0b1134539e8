package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/udmdigital/lead-crm-api/internal/dto"
	"github.com/udmdigital/lead-crm-api/internal/entity"
	"github.com/udmdigital/lead-crm-api/internal/repository"
)

// AttachmentService manages the file references of a lead. Only metadata is
// tracked; storage of the file itself lives elsewhere.
type AttachmentService struct {
	attachments repository.AttachmentsRepository
	leads       repository.LeadsRepository
}

// NewAttachmentService builds a new AttachmentService instance.
func NewAttachmentService(attachments repository.AttachmentsRepository, leads repository.LeadsRepository) *AttachmentService {
	return &AttachmentService{attachments: attachments, leads: leads}
}

// ListByLead returns the attachments of a lead, newest upload first.
func (s *AttachmentService) ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.Attachment, error) {
	if _, err := s.leads.FindByID(ctx, leadID); err != nil {
		return nil, err
	}
	return s.attachments.ListByLead(ctx, leadID)
}

// Create registers a file reference against a lead.
func (s *AttachmentService) Create(ctx context.Context, leadID uuid.UUID, req dto.CreateAttachmentRequest, uploadedBy string) (*entity.Attachment, error) {
	name := strings.TrimSpace(req.FileName)
	url := strings.TrimSpace(req.FileURL)
	if name == "" {
		return nil, ValidationError{Message: "file_name is required"}
	}
	if url == "" {
		return nil, ValidationError{Message: "file_url is required"}
	}
	if uploadedBy == "" {
		return nil, ValidationError{Message: "uploader identity is required"}
	}

	if _, err := s.leads.FindByID(ctx, leadID); err != nil {
		return nil, err
	}

	return s.attachments.Insert(ctx, &entity.Attachment{
		LeadID:     leadID,
		FileName:   name,
		FileURL:    url,
		FileType:   req.FileType,
		UploadedBy: uploadedBy,
	})
}

// Delete removes an attachment by id.
func (s *AttachmentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.attachments.Delete(ctx, id)
}
