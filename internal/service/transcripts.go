package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/studyhub/internal/errs"
	"github.com/and161185/studyhub/internal/model"
	"github.com/and161185/studyhub/internal/repository"
)

// TranscriptInput carries transcript fields for create and for partial update.
type TranscriptInput struct {
	Title   string
	Content string
	Summary string
}

// TranscriptService defines owner-scoped transcript operations.
type TranscriptService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in TranscriptInput) (model.Transcript, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Transcript, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (model.Transcript, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in TranscriptInput) (model.Transcript, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type TranscriptServiceImpl struct {
	repo repository.TranscriptRepository
}

// NewTranscriptService constructs TranscriptService.
func NewTranscriptService(repo repository.TranscriptRepository) *TranscriptServiceImpl {
	return &TranscriptServiceImpl{repo: repo}
}

// Create requires title and content; summary is optional.
func (s *TranscriptServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, in TranscriptInput) (model.Transcript, error) {
	if strings.TrimSpace(in.Title) == "" {
		return model.Transcript{}, errs.Invalid("Title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return model.Transcript{}, errs.Invalid("Content is required")
	}
	id, err := uuid.NewV4()
	if err != nil {
		return model.Transcript{}, err
	}
	t := &model.Transcript{ID: id, OwnerID: ownerID, Title: strings.TrimSpace(in.Title), Content: strings.TrimSpace(in.Content), Summary: strings.TrimSpace(in.Summary)}
	if err := s.repo.Create(ctx, t); err != nil {
		return model.Transcript{}, err
	}
	return *t, nil
}

// List returns the caller's transcripts.
func (s *TranscriptServiceImpl) List(ctx context.Context, ownerID uuid.UUID) ([]model.Transcript, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get returns an owned transcript.
func (s *TranscriptServiceImpl) Get(ctx context.Context, ownerID, id uuid.UUID) (model.Transcript, error) {
	t, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return model.Transcript{}, err
	}
	return *t, nil
}

// Update keeps every stored field whose incoming value is blank.
func (s *TranscriptServiceImpl) Update(ctx context.Context, ownerID, id uuid.UUID, in TranscriptInput) (model.Transcript, error) {
	t, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return model.Transcript{}, err
	}
	t.Title = firstNonEmpty(in.Title, t.Title)
	t.Content = firstNonEmpty(in.Content, t.Content)
	t.Summary = firstNonEmpty(in.Summary, t.Summary)
	if err := s.repo.Update(ctx, t); err != nil {
		return model.Transcript{}, transcriptErr(err)
	}
	return *t, nil
}

// Delete removes an owned transcript.
func (s *TranscriptServiceImpl) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return transcriptErr(s.repo.Delete(ctx, id))
}

func (s *TranscriptServiceImpl) owned(ctx context.Context, ownerID, id uuid.UUID) (*model.Transcript, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, transcriptErr(err)
	}
	if t.OwnerID != ownerID {
		return nil, errs.ErrForbidden
	}
	return t, nil
}

func transcriptErr(err error) error {
	if errors.Is(err, errs.ErrNotFound) {
		return errs.NotFound("Transcript")
	}
	return err
}
