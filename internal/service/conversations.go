package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/udmdigital/lead-crm-api/internal/dto"
	"github.com/udmdigital/lead-crm-api/internal/entity"
	"github.com/udmdigital/lead-crm-api/internal/repository"
)

// ConversationService manages the append-only follow-up log of a lead.
type ConversationService struct {
	conversations repository.ConversationsRepository
	leads         repository.LeadsRepository
}

// NewConversationService builds a new ConversationService instance.
func NewConversationService(conversations repository.ConversationsRepository, leads repository.LeadsRepository) *ConversationService {
	return &ConversationService{conversations: conversations, leads: leads}
}

// ListByLead returns the conversations of a lead, newest conversation first.
func (s *ConversationService) ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.FollowUpConversation, error) {
	if _, err := s.leads.FindByID(ctx, leadID); err != nil {
		return nil, err
	}
	return s.conversations.ListByLead(ctx, leadID)
}

// Create appends a conversation to a lead. The conversation date may be
// back- or future-dated and defaults to now.
func (s *ConversationService) Create(ctx context.Context, leadID uuid.UUID, req dto.CreateConversationRequest, createdBy string) (*entity.FollowUpConversation, error) {
	text := strings.TrimSpace(req.ConversationText)
	if text == "" {
		return nil, ValidationError{Message: "conversation_text is required"}
	}
	if createdBy == "" {
		return nil, ValidationError{Message: "author identity is required"}
	}

	if _, err := s.leads.FindByID(ctx, leadID); err != nil {
		return nil, err
	}

	date := time.Now()
	if req.ConversationDate != nil {
		date = *req.ConversationDate
	}

	return s.conversations.Insert(ctx, &entity.FollowUpConversation{
		LeadID:           leadID,
		CreatedBy:        createdBy,
		ConversationText: text,
		ConversationDate: date,
	})
}
