package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/udmdigital/lead-crm-api/internal/dto"
	"github.com/udmdigital/lead-crm-api/internal/entity"
	"github.com/udmdigital/lead-crm-api/internal/repository"
)

func TestConversationService_Create(t *testing.T) {
	leadID := uuid.New()
	leads := &mockLeadsRepository{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
			if id != leadID {
				return nil, repository.ErrLeadNotFound
			}
			return &entity.Lead{ID: id}, nil
		},
	}

	t.Run("defaults date to now", func(t *testing.T) {
		var inserted *entity.FollowUpConversation
		conversations := &mockConversationsRepository{
			insert: func(ctx context.Context, conversation *entity.FollowUpConversation) (*entity.FollowUpConversation, error) {
				inserted = conversation
				return conversation, nil
			},
		}
		svc := NewConversationService(conversations, leads)

		before := time.Now()
		_, err := svc.Create(context.Background(), leadID, dto.CreateConversationRequest{
			ConversationText: "  Asked about pricing.  ",
		}, "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inserted.ConversationText != "Asked about pricing." {
			t.Fatalf("expected trimmed text, got %q", inserted.ConversationText)
		}
		if inserted.ConversationDate.Before(before) {
			t.Fatalf("expected date defaulted to now")
		}
	})

	t.Run("back-dated entry kept", func(t *testing.T) {
		past := time.Now().AddDate(0, -1, 0)
		conversations := &mockConversationsRepository{
			insert: func(ctx context.Context, conversation *entity.FollowUpConversation) (*entity.FollowUpConversation, error) {
				if !conversation.ConversationDate.Equal(past) {
					t.Fatalf("expected back-dated conversation preserved")
				}
				return conversation, nil
			},
		}
		svc := NewConversationService(conversations, leads)

		if _, err := svc.Create(context.Background(), leadID, dto.CreateConversationRequest{
			ConversationText: "Old call",
			ConversationDate: &past,
		}, "user-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("empty text rejected", func(t *testing.T) {
		svc := NewConversationService(&mockConversationsRepository{}, leads)
		var verr ValidationError
		if _, err := svc.Create(context.Background(), leadID, dto.CreateConversationRequest{
			ConversationText: "   ",
		}, "user-1"); !errors.As(err, &verr) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown lead rejected", func(t *testing.T) {
		svc := NewConversationService(&mockConversationsRepository{}, leads)
		if _, err := svc.Create(context.Background(), uuid.New(), dto.CreateConversationRequest{
			ConversationText: "hello",
		}, "user-1"); !errors.Is(err, repository.ErrLeadNotFound) {
			t.Fatalf("expected lead not found, got %v", err)
		}
	})
}

func TestConversationService_ListByLead(t *testing.T) {
	leadID := uuid.New()
	leads := &mockLeadsRepository{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
			if id != leadID {
				return nil, repository.ErrLeadNotFound
			}
			return &entity.Lead{ID: id}, nil
		},
	}
	conversations := &mockConversationsRepository{
		listByLead: func(ctx context.Context, id uuid.UUID) ([]entity.FollowUpConversation, error) {
			return []entity.FollowUpConversation{{LeadID: id}}, nil
		},
	}
	svc := NewConversationService(conversations, leads)

	got, err := svc.ListByLead(context.Background(), leadID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(got))
	}

	if _, err := svc.ListByLead(context.Background(), uuid.New()); !errors.Is(err, repository.ErrLeadNotFound) {
		t.Fatalf("expected lead not found, got %v", err)
	}
}
