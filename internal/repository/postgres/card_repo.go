package postgres

import (
	"context"

	"github.com/and161185/studyhub/internal/errs"
	"github.com/and161185/studyhub/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// CardRepo implements CardRepository using PostgreSQL.
// Both variants share one table; unused payload columns hold zero values.
type CardRepo struct{ db *DB }

// NewCardRepo constructs a card repository.
func NewCardRepo(db *DB) *CardRepo { return &CardRepo{db: db} }

const cardColumns = `id, deck_id, owner_id, variant, term, definition, question, choice_number, choices, created_at, updated_at`

// CreateInDeck locks the parent deck, verifies ownership and inserts the card.
func (r *CardRepo) CreateInDeck(ctx context.Context, c *model.Card) (err error) {
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

	const sel = `SELECT owner_id FROM decks WHERE id=$1 FOR SHARE`
	const ins = `
INSERT INTO cards (id, deck_id, owner_id, variant, term, definition, question, choice_number, choices)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING created_at, updated_at`

	var owner uuid.UUID
	if err = tx.QueryRow(ctx, sel, c.DeckID).Scan(&owner); err != nil {
		err = notFound(err)
		return err
	}
	if owner != c.OwnerID {
		err = errs.ErrForbidden
		return err
	}

	term, def, question, n, choices := payloadColumns(c)
	err = tx.QueryRow(ctx, ins, c.ID, c.DeckID, c.OwnerID, string(c.Variant), term, def, question, n, choices).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	return err
}

// Get selects a card by ID.
func (r *CardRepo) Get(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	const q = `SELECT ` + cardColumns + ` FROM cards WHERE id=$1`
	c, err := scanCard(r.db.Pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// ListByOwner returns the owner's cards, optionally of one variant.
func (r *CardRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, variant model.Variant) ([]model.Card, error) {
	const q = `
SELECT ` + cardColumns + `
FROM cards
WHERE owner_id=$1 AND ($2::text = '' OR variant=$2)
ORDER BY seq ASC`
	return r.list(ctx, q, ownerID, string(variant))
}

// ListByDeck returns a deck's cards in insertion order.
func (r *CardRepo) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]model.Card, error) {
	const q = `SELECT ` + cardColumns + ` FROM cards WHERE deck_id=$1 ORDER BY seq ASC`
	return r.list(ctx, q, deckID)
}

// ListByDecks returns cards of several decks, most recently created first.
func (r *CardRepo) ListByDecks(ctx context.Context, deckIDs []uuid.UUID) ([]model.Card, error) {
	if len(deckIDs) == 0 {
		return []model.Card{}, nil
	}
	const q = `SELECT ` + cardColumns + ` FROM cards WHERE deck_id = ANY($1) ORDER BY seq DESC`
	return r.list(ctx, q, deckIDs)
}

// Update rewrites the payload columns; variant and deck are immutable.
func (r *CardRepo) Update(ctx context.Context, c *model.Card) error {
	const q = `
UPDATE cards
SET term=$2, definition=$3, question=$4, choice_number=$5, choices=$6, updated_at=now()
WHERE id=$1
RETURNING updated_at`
	term, def, question, n, choices := payloadColumns(c)
	if err := r.db.Pool.QueryRow(ctx, q, c.ID, term, def, question, n, choices).Scan(&c.UpdatedAt); err != nil {
		return notFound(err)
	}
	return nil
}

// Delete removes a card by ID.
func (r *CardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM cards WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *CardRepo) list(ctx context.Context, q string, args ...any) ([]model.Card, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Card, 0)
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func payloadColumns(c *model.Card) (term, def, question string, n int, choices []string) {
	choices = []string{}
	if c.Flashcard != nil {
		term, def = c.Flashcard.Term, c.Flashcard.Definition
	}
	if c.Multicard != nil {
		question, n = c.Multicard.Question, c.Multicard.ChoiceNumber
		if c.Multicard.Choices != nil {
			choices = c.Multicard.Choices
		}
	}
	return term, def, question, n, choices
}

func scanCard(row rowScanner) (*model.Card, error) {
	var (
		c                   model.Card
		variant             string
		term, def, question string
		n                   int
		choices             []string
	)
	if err := row.Scan(&c.ID, &c.DeckID, &c.OwnerID, &variant, &term, &def, &question, &n, &choices, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Variant = model.Variant(variant)
	switch c.Variant {
	case model.VariantMulticard:
		c.Multicard = &model.Multicard{Question: question, ChoiceNumber: n, Choices: choices}
	default:
		c.Flashcard = &model.Flashcard{Term: term, Definition: def}
	}
	return &c, nil
}
