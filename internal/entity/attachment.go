package entity

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a file reference bound to a lead.
type Attachment struct {
	ID         uuid.UUID `json:"id"`
	LeadID     uuid.UUID `json:"lead_id"`
	FileName   string    `json:"file_name"`
	FileURL    string    `json:"file_url"`
	FileType   *string   `json:"file_type,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
	UploadedBy string    `json:"uploaded_by"`
}
