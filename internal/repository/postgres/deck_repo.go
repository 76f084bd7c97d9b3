package postgres

import (
	"context"

	"github.com/and161185/studyhub/internal/errs"
	"github.com/and161185/studyhub/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// DeckRepo implements DeckRepository using PostgreSQL.
type DeckRepo struct{ db *DB }

// NewDeckRepo constructs a deck repository.
func NewDeckRepo(db *DB) *DeckRepo { return &DeckRepo{db: db} }

// Create inserts a deck row.
func (r *DeckRepo) Create(ctx context.Context, d *model.Deck) error {
	const q = `
INSERT INTO decks (id, owner_id, name)
VALUES ($1, $2, $3)
RETURNING created_at, updated_at`
	return r.db.Pool.QueryRow(ctx, q, d.ID, d.OwnerID, d.Name).Scan(&d.CreatedAt, &d.UpdatedAt)
}

// Get selects a deck by ID.
func (r *DeckRepo) Get(ctx context.Context, id uuid.UUID) (*model.Deck, error) {
	const q = `SELECT id, owner_id, name, created_at, updated_at FROM decks WHERE id=$1`
	var d model.Deck
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(&d.ID, &d.OwnerID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

// ListByOwner returns all decks of the owner.
func (r *DeckRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Deck, error) {
	const q = `
SELECT id, owner_id, name, created_at, updated_at
FROM decks
WHERE owner_id=$1
ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Deck, 0)
	for rows.Next() {
		var d model.Deck
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Rename sets a new name and bumps updated_at.
func (r *DeckRepo) Rename(ctx context.Context, id uuid.UUID, name string) (*model.Deck, error) {
	const q = `
UPDATE decks SET name=$2, updated_at=now()
WHERE id=$1
RETURNING id, owner_id, name, created_at, updated_at`
	var d model.Deck
	if err := r.db.Pool.QueryRow(ctx, q, id, name).Scan(&d.ID, &d.OwnerID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

// Delete removes the deck's cards and the deck in one transaction.
func (r *DeckRepo) Delete(ctx context.Context, id uuid.UUID) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const delCards = `DELETE FROM cards WHERE deck_id=$1`
	const delDeck = `DELETE FROM decks WHERE id=$1`

	if _, err = tx.Exec(ctx, delCards, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, delDeck, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
