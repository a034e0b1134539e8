package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udmdigital/lead-crm-api/internal/entity"
)

// ErrLeadNotFound is returned when no lead matches the given id.
var ErrLeadNotFound = errors.New("lead not found")

// LeadPatch carries the fields of a partial lead update. Nil pointers leave
// the stored value untouched. InterestedServices replaces the whole set when
// non-nil.
type LeadPatch struct {
	BusinessName       *string
	ContactPerson      *string
	Phone              *string
	Email              *string
	Address            *string
	City               *string
	LeadStatus         *entity.LeadStatus
	Stage              *entity.Stage
	NextFollowupDate   *time.Time
	ClearFollowupDate  bool
	InterestedServices []string
	NotesFirstCall     *string
}

// LeadsRepository describes persistence operations for leads.
type LeadsRepository interface {
	List(ctx context.Context) ([]entity.Lead, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	Insert(ctx context.Context, lead *entity.Lead) (*entity.Lead, error)
	Update(ctx context.Context, id uuid.UUID, patch LeadPatch) (*entity.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PGXLeadsRepository implements LeadsRepository using pgx.
type PGXLeadsRepository struct {
	pool pgxPool
}

// NewPGXLeadsRepository wires a pgx backed repository.
func NewPGXLeadsRepository(pool *pgxpool.Pool) *PGXLeadsRepository {
	return &PGXLeadsRepository{pool: pool}
}

const leadColumns = `
        id,
        business_name,
        contact_person,
        phone,
        email,
        address,
        city,
        lead_status,
        stage,
        next_followup_date,
        interested_services,
        notes_first_call,
        created_by,
        created_at,
        updated_at
`

// List returns the full lead collection, newest first.
func (r *PGXLeadsRepository) List(ctx context.Context) ([]entity.Lead, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// FindByID retrieves one lead.
func (r *PGXLeadsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)

	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("query lead by id: %w", err)
	}
	return lead, nil
}

// Insert creates a lead. The store assigns id and timestamps.
func (r *PGXLeadsRepository) Insert(ctx context.Context, lead *entity.Lead) (*entity.Lead, error) {
	if lead == nil {
		return nil, fmt.Errorf("lead payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO leads (
            business_name, contact_person, phone, email, address, city,
            lead_status, stage, next_followup_date, interested_services,
            notes_first_call, created_by
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING `+leadColumns,
		lead.BusinessName,
		lead.ContactPerson,
		lead.Phone,
		lead.Email,
		lead.Address,
		lead.City,
		string(lead.LeadStatus),
		string(lead.Stage),
		lead.NextFollowupDate,
		servicesOrEmpty(lead.InterestedServices),
		lead.NotesFirstCall,
		lead.CreatedBy,
	)

	created, err := scanLead(row)
	if err != nil {
		return nil, fmt.Errorf("insert lead: %w", err)
	}
	return created, nil
}

// Update applies a partial patch and bumps updated_at.
func (r *PGXLeadsRepository) Update(ctx context.Context, id uuid.UUID, patch LeadPatch) (*entity.Lead, error) {
	setClauses := make([]string, 0)
	args := make([]any, 0)
	idx := 1

	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if patch.BusinessName != nil {
		add("business_name", *patch.BusinessName)
	}
	if patch.ContactPerson != nil {
		add("contact_person", *patch.ContactPerson)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Address != nil {
		add("address", *patch.Address)
	}
	if patch.City != nil {
		add("city", *patch.City)
	}
	if patch.LeadStatus != nil {
		add("lead_status", string(*patch.LeadStatus))
	}
	if patch.Stage != nil {
		add("stage", string(*patch.Stage))
	}
	if patch.NextFollowupDate != nil {
		add("next_followup_date", *patch.NextFollowupDate)
	} else if patch.ClearFollowupDate {
		setClauses = append(setClauses, "next_followup_date = NULL")
	}
	if patch.InterestedServices != nil {
		add("interested_services", servicesOrEmpty(patch.InterestedServices))
	}
	if patch.NotesFirstCall != nil {
		add("notes_first_call", *patch.NotesFirstCall)
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE leads SET %s WHERE id = $%d RETURNING %s`, strings.Join(setClauses, ", "), idx, leadColumns)

	lead, err := scanLead(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("update lead: %w", err)
	}
	return lead, nil
}

// Delete removes a lead; conversations and attachments cascade in the store.
func (r *PGXLeadsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

func scanLeads(rows pgx.Rows) ([]entity.Lead, error) {
	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var (
		lead       entity.Lead
		email      sql.NullString
		address    sql.NullString
		city       sql.NullString
		status     string
		stage      string
		followup   sql.NullTime
		services   []string
		notes      sql.NullString
	)

	err := row.Scan(
		&lead.ID,
		&lead.BusinessName,
		&lead.ContactPerson,
		&lead.Phone,
		&email,
		&address,
		&city,
		&status,
		&stage,
		&followup,
		&services,
		&notes,
		&lead.CreatedBy,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Email = nullStringToPtr(email)
	lead.Address = nullStringToPtr(address)
	lead.City = nullStringToPtr(city)
	lead.LeadStatus = entity.LeadStatus(status)
	lead.Stage = entity.Stage(stage)
	if followup.Valid {
		ts := followup.Time
		lead.NextFollowupDate = &ts
	}
	if len(services) > 0 {
		lead.InterestedServices = append([]string(nil), services...)
	}
	lead.NotesFirstCall = nullStringToPtr(notes)

	return &lead, nil
}

func nullStringToPtr(value sql.NullString) *string {
	if value.Valid {
		val := value.String
		return &val
	}
	return nil
}

func servicesOrEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
