package entity

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatus is the urgency classification of a lead.
type LeadStatus string

// Lead status values.
const (
	StatusHot  LeadStatus = "Hot"
	StatusWarm LeadStatus = "Warm"
	StatusCold LeadStatus = "Cold"
)

// Valid reports whether the status is one of the enumerated values.
func (s LeadStatus) Valid() bool {
	switch s {
	case StatusHot, StatusWarm, StatusCold:
		return true
	}
	return false
}

// Stage is the pipeline position of a lead. The set is fixed but unordered:
// any stage may move to any other stage directly.
type Stage string

// Pipeline stages.
const (
	StageContacted            Stage = "Contacted"
	StageRequirementsReceived Stage = "Requirements Received"
	StageFollowUps            Stage = "Follow-ups"
	StageClosedWon            Stage = "Closed/Won"
)

// Stages lists the pipeline stages in display order.
var Stages = []Stage{StageContacted, StageRequirementsReceived, StageFollowUps, StageClosedWon}

// Valid reports whether the stage is one of the enumerated values.
func (s Stage) Valid() bool {
	switch s {
	case StageContacted, StageRequirementsReceived, StageFollowUps, StageClosedWon:
		return true
	}
	return false
}

// ServiceCatalog is the fixed set of services a lead may be interested in.
var ServiceCatalog = []string{
	"SEO",
	"SMM (Social Media Marketing)",
	"Website Development",
	"Paid Ads (Google/Facebook)",
	"Content Marketing",
	"Email Marketing",
	"Graphic Design",
	"Video Production",
}

// Lead represents a prospective customer tracked through the sales pipeline.
type Lead struct {
	ID                 uuid.UUID  `json:"id"`
	BusinessName       string     `json:"business_name"`
	ContactPerson      string     `json:"contact_person"`
	Phone              string     `json:"phone"`
	Email              *string    `json:"email,omitempty"`
	Address            *string    `json:"address,omitempty"`
	City               *string    `json:"city,omitempty"`
	LeadStatus         LeadStatus `json:"lead_status"`
	Stage              Stage      `json:"stage"`
	NextFollowupDate   *time.Time `json:"next_followup_date,omitempty"`
	InterestedServices []string   `json:"interested_services,omitempty"`
	NotesFirstCall     *string    `json:"notes_first_call,omitempty"`
	CreatedBy          string     `json:"created_by"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
