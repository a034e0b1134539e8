package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/udmdigital/lead-crm-api/internal/dto"
	"github.com/udmdigital/lead-crm-api/internal/entity"
	"github.com/udmdigital/lead-crm-api/internal/repository"
	"github.com/udmdigital/lead-crm-api/internal/service/followup"
)

// ValidationError marks a request that failed validation before any store
// call was made.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// LeadService exposes read/write operations for the lead collection.
type LeadService struct {
	leads         repository.LeadsRepository
	conversations repository.ConversationsRepository
	log           *zap.Logger
}

// NewLeadService creates a new instance of LeadService.
func NewLeadService(leads repository.LeadsRepository, conversations repository.ConversationsRepository, log *zap.Logger) *LeadService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LeadService{leads: leads, conversations: conversations, log: log}
}

// ListQuery selects the projection of the lead collection a caller wants.
type ListQuery struct {
	Bucket   followup.Bucket
	Criteria followup.Criteria
}

// ListLeads loads the full collection and applies the filter engine in
// memory: dashboard criteria first, then the optional follow-up bucket.
func (s *LeadService) ListLeads(ctx context.Context, query ListQuery) ([]entity.Lead, error) {
	leads, err := s.leads.List(ctx)
	if err != nil {
		return nil, err
	}

	leads = followup.Apply(leads, query.Criteria)
	if query.Bucket != "" {
		leads = followup.Classify(leads, query.Bucket)
	}
	return leads, nil
}

// SearchLeads runs the free-text search, including the conversation-body
// side channel. A failed conversation search degrades to matching on lead
// fields only: the result shows more leads on error, never fewer.
func (s *LeadService) SearchLeads(ctx context.Context, query string) ([]entity.Lead, error) {
	criteria := followup.Criteria{FreeTextQuery: query}
	if trimmed := strings.TrimSpace(query); trimmed != "" {
		matches, err := s.conversations.SearchLeadIDs(ctx, trimmed)
		if err != nil {
			s.log.Warn("conversation search failed, matching lead fields only", zap.Error(err))
		} else {
			criteria.ConversationMatches = matches
		}
	}

	leads, err := s.leads.List(ctx)
	if err != nil {
		return nil, err
	}
	return followup.Apply(leads, criteria), nil
}

// GetLead returns a single lead by id.
func (s *LeadService) GetLead(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	return s.leads.FindByID(ctx, id)
}

// CreateLead validates the payload and persists a new lead. Business name,
// contact person and phone are required; status and stage default to Warm
// and Contacted.
func (s *LeadService) CreateLead(ctx context.Context, req dto.CreateLeadRequest, createdBy string) (*entity.Lead, error) {
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.ContactPerson = strings.TrimSpace(req.ContactPerson)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.BusinessName == "" {
		return nil, ValidationError{Message: "business_name is required"}
	}
	if req.ContactPerson == "" {
		return nil, ValidationError{Message: "contact_person is required"}
	}
	if req.Phone == "" {
		return nil, ValidationError{Message: "phone is required"}
	}
	if createdBy == "" {
		return nil, ValidationError{Message: "creator identity is required"}
	}

	status := entity.StatusWarm
	if req.LeadStatus != "" {
		status = entity.LeadStatus(req.LeadStatus)
		if !status.Valid() {
			return nil, ValidationError{Message: fmt.Sprintf("invalid lead_status: %q", req.LeadStatus)}
		}
	}

	stage := entity.StageContacted
	if req.Stage != "" {
		stage = entity.Stage(req.Stage)
		if !stage.Valid() {
			return nil, ValidationError{Message: fmt.Sprintf("invalid stage: %q", req.Stage)}
		}
	}

	if err := ValidateServices(req.InterestedServices); err != nil {
		return nil, ValidationError{Message: err.Error()}
	}

	var email *string
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		normalized, err := NormalizeEmail(*req.Email)
		if err != nil {
			return nil, ValidationError{Message: err.Error()}
		}
		email = &normalized
	}

	lead := &entity.Lead{
		BusinessName:       req.BusinessName,
		ContactPerson:      req.ContactPerson,
		Phone:              NormalizePhone(req.Phone),
		Email:              email,
		Address:            trimPtr(req.Address),
		City:               trimPtr(req.City),
		LeadStatus:         status,
		Stage:              stage,
		NextFollowupDate:   req.NextFollowupDate,
		InterestedServices: req.InterestedServices,
		NotesFirstCall:     req.NotesFirstCall,
		CreatedBy:          createdBy,
	}

	return s.leads.Insert(ctx, lead)
}

// UpdateLead applies a partial update. Required fields may be replaced but
// never blanked; enumerated fields are validated against their sets.
func (s *LeadService) UpdateLead(ctx context.Context, id uuid.UUID, req dto.UpdateLeadRequest) (*entity.Lead, error) {
	patch := repository.LeadPatch{
		Address:        trimPtr(req.Address),
		City:           trimPtr(req.City),
		NotesFirstCall: req.NotesFirstCall,
	}

	if req.NextFollowupDate.Set {
		if req.NextFollowupDate.Value != nil {
			patch.NextFollowupDate = req.NextFollowupDate.Value
		} else {
			patch.ClearFollowupDate = true
		}
	}

	if req.BusinessName != nil {
		trimmed := strings.TrimSpace(*req.BusinessName)
		if trimmed == "" {
			return nil, ValidationError{Message: "business_name cannot be empty"}
		}
		patch.BusinessName = &trimmed
	}
	if req.ContactPerson != nil {
		trimmed := strings.TrimSpace(*req.ContactPerson)
		if trimmed == "" {
			return nil, ValidationError{Message: "contact_person cannot be empty"}
		}
		patch.ContactPerson = &trimmed
	}
	if req.Phone != nil {
		trimmed := strings.TrimSpace(*req.Phone)
		if trimmed == "" {
			return nil, ValidationError{Message: "phone cannot be empty"}
		}
		normalized := NormalizePhone(trimmed)
		patch.Phone = &normalized
	}
	if req.Email != nil {
		normalized, err := NormalizeEmail(*req.Email)
		if err != nil {
			return nil, ValidationError{Message: err.Error()}
		}
		patch.Email = &normalized
	}
	if req.LeadStatus != nil {
		status := entity.LeadStatus(*req.LeadStatus)
		if !status.Valid() {
			return nil, ValidationError{Message: fmt.Sprintf("invalid lead_status: %q", *req.LeadStatus)}
		}
		patch.LeadStatus = &status
	}
	if req.Stage != nil {
		stage := entity.Stage(*req.Stage)
		if !stage.Valid() {
			return nil, ValidationError{Message: fmt.Sprintf("invalid stage: %q", *req.Stage)}
		}
		patch.Stage = &stage
	}
	if req.InterestedServices != nil {
		if err := ValidateServices(req.InterestedServices); err != nil {
			return nil, ValidationError{Message: err.Error()}
		}
		patch.InterestedServices = req.InterestedServices
	}

	return s.leads.Update(ctx, id, patch)
}

// MoveStage applies a pipeline move. The target must be one of the four
// stages, but any stage is reachable from any other: there is no transition
// graph. Moving a lead onto its current stage is a no-op with no store call.
func (s *LeadService) MoveStage(ctx context.Context, id uuid.UUID, target entity.Stage) (*entity.Lead, error) {
	if !target.Valid() {
		return nil, ValidationError{Message: fmt.Sprintf("invalid stage: %q", target)}
	}

	current, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Stage == target {
		return current, nil
	}

	return s.leads.Update(ctx, id, repository.LeadPatch{Stage: &target})
}

// QuickSetStatus overwrites the lead status. Unlike stage moves this always
// writes, even when the value is unchanged: the quick-edit affordance is an
// idempotent round-trip through the store.
func (s *LeadService) QuickSetStatus(ctx context.Context, id uuid.UUID, status entity.LeadStatus) (*entity.Lead, error) {
	if !status.Valid() {
		return nil, ValidationError{Message: fmt.Sprintf("invalid lead_status: %q", status)}
	}
	return s.leads.Update(ctx, id, repository.LeadPatch{LeadStatus: &status})
}

// DeleteLead removes a lead; its conversations and attachments cascade.
func (s *LeadService) DeleteLead(ctx context.Context, id uuid.UUID) error {
	if err := s.leads.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return repository.ErrLeadNotFound
		}
		return err
	}
	return nil
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
