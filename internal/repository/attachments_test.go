package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPGXAttachmentsRepository_Delete(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		pool := &stubPool{execTag: pgconn.NewCommandTag("DELETE 1")}
		repo := &PGXAttachmentsRepository{pool: pool}
		if err := repo.Delete(context.Background(), uuid.New()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		pool := &stubPool{execTag: pgconn.NewCommandTag("DELETE 0")}
		repo := &PGXAttachmentsRepository{pool: pool}
		if err := repo.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrAttachmentNotFound) {
			t.Fatalf("expected ErrAttachmentNotFound, got %v", err)
		}
	})
}

func TestPGXAttachmentsRepository_InsertNil(t *testing.T) {
	repo := &PGXAttachmentsRepository{}
	if _, err := repo.Insert(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil attachment")
	}
}
