package entity

import (
	"time"

	"github.com/google/uuid"
)

// FollowUpConversation is a timestamped note attached to a lead. Conversations
// are append-only: they are never edited or deleted, and they disappear only
// when the owning lead is deleted (cascade in the store).
type FollowUpConversation struct {
	ID               uuid.UUID `json:"id"`
	LeadID           uuid.UUID `json:"lead_id"`
	CreatedBy        string    `json:"created_by"`
	ConversationText string    `json:"conversation_text"`
	ConversationDate time.Time `json:"conversation_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
