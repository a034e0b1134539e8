package dto

import "time"

// CreateConversationRequest logs a follow-up conversation against a lead.
// ConversationDate may be back- or future-dated; it defaults to now.
type CreateConversationRequest struct {
	ConversationText string     `json:"conversation_text"`
	ConversationDate *time.Time `json:"conversation_date,omitempty"`
}

// CreateAttachmentRequest registers a file reference against a lead.
type CreateAttachmentRequest struct {
	FileName string  `json:"file_name"`
	FileURL  string  `json:"file_url"`
	FileType *string `json:"file_type,omitempty"`
}
