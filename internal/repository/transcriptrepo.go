package repository

import (
	"context"

	"github.com/and161185/studyhub/internal/model"
	"github.com/gofrs/uuid/v5"
)

// TranscriptRepository provides access to lesson transcripts.
type TranscriptRepository interface {
	Create(ctx context.Context, t *model.Transcript) error
	Get(ctx context.Context, id uuid.UUID) (*model.Transcript, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Transcript, error)
	Update(ctx context.Context, t *model.Transcript) error
	Delete(ctx context.Context, id uuid.UUID) error
}
