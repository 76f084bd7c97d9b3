package postgres

import (
	"context"

	"github.com/and161185/studyhub/internal/errs"
	"github.com/and161185/studyhub/internal/model"
	"github.com/gofrs/uuid/v5"
)

// TranscriptRepo implements TranscriptRepository using PostgreSQL.
type TranscriptRepo struct{ db *DB }

// NewTranscriptRepo constructs a transcript repository.
func NewTranscriptRepo(db *DB) *TranscriptRepo { return &TranscriptRepo{db: db} }

const transcriptColumns = `id, owner_id, title, content, summary, created_at, updated_at`

// Create inserts a transcript row.
func (r *TranscriptRepo) Create(ctx context.Context, t *model.Transcript) error {
	const q = `
INSERT INTO transcripts (id, owner_id, title, content, summary)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at, updated_at`
	return r.db.Pool.QueryRow(ctx, q, t.ID, t.OwnerID, t.Title, t.Content, t.Summary).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// Get selects a transcript by ID.
func (r *TranscriptRepo) Get(ctx context.Context, id uuid.UUID) (*model.Transcript, error) {
	const q = `SELECT ` + transcriptColumns + ` FROM transcripts WHERE id=$1`
	var t model.Transcript
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(&t.ID, &t.OwnerID, &t.Title, &t.Content, &t.Summary, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// ListByOwner returns the owner's transcripts, oldest first.
func (r *TranscriptRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Transcript, error) {
	const q = `SELECT ` + transcriptColumns + ` FROM transcripts WHERE owner_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Transcript, 0)
	for rows.Next() {
		var t model.Transcript
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Content, &t.Summary, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update stores title, content and summary.
func (r *TranscriptRepo) Update(ctx context.Context, t *model.Transcript) error {
	const q = `
UPDATE transcripts SET title=$2, content=$3, summary=$4, updated_at=now()
WHERE id=$1
RETURNING updated_at`
	if err := r.db.Pool.QueryRow(ctx, q, t.ID, t.Title, t.Content, t.Summary).Scan(&t.UpdatedAt); err != nil {
		return notFound(err)
	}
	return nil
}

// Delete removes a transcript by ID.
func (r *TranscriptRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM transcripts WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
