package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udmdigital/lead-crm-api/internal/entity"
)

// ConversationsRepository describes persistence for follow-up conversations.
// Conversations are append-only, so there is no update or single delete.
type ConversationsRepository interface {
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.FollowUpConversation, error)
	Insert(ctx context.Context, conversation *entity.FollowUpConversation) (*entity.FollowUpConversation, error)
	SearchLeadIDs(ctx context.Context, pattern string) (map[uuid.UUID]struct{}, error)
}

// PGXConversationsRepository implements ConversationsRepository using pgx.
type PGXConversationsRepository struct {
	pool pgxPool
}

// NewPGXConversationsRepository wires a pgx backed repository.
func NewPGXConversationsRepository(pool *pgxpool.Pool) *PGXConversationsRepository {
	return &PGXConversationsRepository{pool: pool}
}

const conversationColumns = `id, lead_id, created_by, conversation_text, conversation_date, created_at, updated_at`

// ListByLead returns the conversations of a lead, newest conversation first.
func (r *PGXConversationsRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.FollowUpConversation, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+conversationColumns+`
        FROM followup_conversations
        WHERE lead_id = $1
        ORDER BY conversation_date DESC
    `, leadID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []entity.FollowUpConversation
	for rows.Next() {
		var c entity.FollowUpConversation
		if err := rows.Scan(&c.ID, &c.LeadID, &c.CreatedBy, &c.ConversationText, &c.ConversationDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversations: %w", err)
	}
	return conversations, nil
}

// Insert appends a conversation row.
func (r *PGXConversationsRepository) Insert(ctx context.Context, conversation *entity.FollowUpConversation) (*entity.FollowUpConversation, error) {
	if conversation == nil {
		return nil, fmt.Errorf("conversation payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO followup_conversations (lead_id, created_by, conversation_text, conversation_date)
        VALUES ($1, $2, $3, $4)
        RETURNING `+conversationColumns,
		conversation.LeadID,
		conversation.CreatedBy,
		conversation.ConversationText,
		conversation.ConversationDate,
	)

	var created entity.FollowUpConversation
	if err := row.Scan(&created.ID, &created.LeadID, &created.CreatedBy, &created.ConversationText, &created.ConversationDate, &created.CreatedAt, &created.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert conversation: %w", err)
	}
	return &created, nil
}

// SearchLeadIDs returns the distinct lead ids whose conversation bodies match
// the pattern, case-insensitively. This feeds the free-text search side
// channel consumed by the filter engine.
func (r *PGXConversationsRepository) SearchLeadIDs(ctx context.Context, pattern string) (map[uuid.UUID]struct{}, error) {
	if pattern == "" {
		return map[uuid.UUID]struct{}{}, nil
	}

	rows, err := r.pool.Query(ctx, `
        SELECT DISTINCT lead_id
        FROM followup_conversations
        WHERE conversation_text ILIKE $1
    `, "%"+pattern+"%")
	if err != nil {
		return nil, fmt.Errorf("search conversations: %w", err)
	}
	defer rows.Close()

	matches := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan conversation lead id: %w", err)
		}
		matches[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversation matches: %w", err)
	}
	return matches, nil
}
