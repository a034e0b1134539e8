package dto

import (
	"encoding/json"
	"time"
)

// OptionalTime distinguishes an absent field from an explicit JSON null.
// Set is true whenever the key appeared in the payload; Value is nil when
// the payload carried null.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	o.Value = &t
	return nil
}

// CreateLeadRequest is the payload for creating a lead. Business name,
// contact person and phone are required; everything else is optional.
type CreateLeadRequest struct {
	BusinessName       string     `json:"business_name"`
	ContactPerson      string     `json:"contact_person"`
	Phone              string     `json:"phone"`
	Email              *string    `json:"email,omitempty"`
	Address            *string    `json:"address,omitempty"`
	City               *string    `json:"city,omitempty"`
	LeadStatus         string     `json:"lead_status,omitempty"`
	Stage              string     `json:"stage,omitempty"`
	NextFollowupDate   *time.Time `json:"next_followup_date,omitempty"`
	InterestedServices []string   `json:"interested_services,omitempty"`
	NotesFirstCall     *string    `json:"notes_first_call,omitempty"`
}

// UpdateLeadRequest captures a partial lead update. Absent fields are left
// untouched; required fields may be replaced but never blanked. An explicit
// null next_followup_date clears the stored date.
type UpdateLeadRequest struct {
	BusinessName       *string      `json:"business_name,omitempty"`
	ContactPerson      *string      `json:"contact_person,omitempty"`
	Phone              *string      `json:"phone,omitempty"`
	Email              *string      `json:"email,omitempty"`
	Address            *string      `json:"address,omitempty"`
	City               *string      `json:"city,omitempty"`
	LeadStatus         *string      `json:"lead_status,omitempty"`
	Stage              *string      `json:"stage,omitempty"`
	NextFollowupDate   OptionalTime `json:"next_followup_date"`
	InterestedServices []string     `json:"interested_services,omitempty"`
	NotesFirstCall     *string      `json:"notes_first_call,omitempty"`
}

// UpdateStageRequest moves a lead to a target pipeline stage.
type UpdateStageRequest struct {
	Stage string `json:"stage"`
}

// UpdateStatusRequest overwrites the lead status.
type UpdateStatusRequest struct {
	LeadStatus string `json:"lead_status"`
}
