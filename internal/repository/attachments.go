package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udmdigital/lead-crm-api/internal/entity"
)

// ErrAttachmentNotFound is returned when no attachment matches the given id.
var ErrAttachmentNotFound = errors.New("attachment not found")

// AttachmentsRepository describes persistence for lead file references.
type AttachmentsRepository interface {
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.Attachment, error)
	Insert(ctx context.Context, attachment *entity.Attachment) (*entity.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PGXAttachmentsRepository implements AttachmentsRepository using pgx.
type PGXAttachmentsRepository struct {
	pool pgxPool
}

// NewPGXAttachmentsRepository wires a pgx backed repository.
func NewPGXAttachmentsRepository(pool *pgxpool.Pool) *PGXAttachmentsRepository {
	return &PGXAttachmentsRepository{pool: pool}
}

// ListByLead returns the attachments of a lead, newest upload first.
func (r *PGXAttachmentsRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.Attachment, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, lead_id, file_name, file_url, file_type, uploaded_at, uploaded_by
        FROM attachments
        WHERE lead_id = $1
        ORDER BY uploaded_at DESC
    `, leadID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()

	var attachments []entity.Attachment
	for rows.Next() {
		var (
			a        entity.Attachment
			fileType sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.LeadID, &a.FileName, &a.FileURL, &fileType, &a.UploadedAt, &a.UploadedBy); err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		a.FileType = nullStringToPtr(fileType)
		attachments = append(attachments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attachments: %w", err)
	}
	return attachments, nil
}

// Insert registers a file reference.
func (r *PGXAttachmentsRepository) Insert(ctx context.Context, attachment *entity.Attachment) (*entity.Attachment, error) {
	if attachment == nil {
		return nil, fmt.Errorf("attachment payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO attachments (lead_id, file_name, file_url, file_type, uploaded_by)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, lead_id, file_name, file_url, file_type, uploaded_at, uploaded_by
    `,
		attachment.LeadID,
		attachment.FileName,
		attachment.FileURL,
		attachment.FileType,
		attachment.UploadedBy,
	)

	var (
		created  entity.Attachment
		fileType sql.NullString
	)
	if err := row.Scan(&created.ID, &created.LeadID, &created.FileName, &created.FileURL, &fileType, &created.UploadedAt, &created.UploadedBy); err != nil {
		return nil, fmt.Errorf("insert attachment: %w", err)
	}
	created.FileType = nullStringToPtr(fileType)
	return &created, nil
}

// Delete removes an attachment by id.
func (r *PGXAttachmentsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrAttachmentNotFound
	}
	return nil
}
