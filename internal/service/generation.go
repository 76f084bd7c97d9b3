package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/and161185/studyhub/internal/errs"
	"github.com/and161185/studyhub/internal/model"
	"github.com/and161185/studyhub/internal/oracle"
	"github.com/and161185/studyhub/internal/staging"
)

// MaxAudioSize is the largest accepted upload for transcription.
const MaxAudioSize = 5 << 20

const summarizeTemplate = "You are a teacher. The user will give you a transcript of a lesson and you have to summarize it for them. " +
	"In your summary, you can use bullet points to make the ideas clear, understandable but still accurate. " +
	"Do not use markdown symbols such as headers or bold, italic, underline, etc. in your response."

const flashcardTemplate = "You are a teacher. The user will give you a transcript of a lesson and you have to create %d flashcards " +
	"about concepts or questions relating to the lesson, meaning that the user can answer the flashcards only based on the lesson's transcript. " +
	"Your response should be in json containing an array of flashcards in dictionary type and delimited by three backticks as such: " +
	"\n```json\n[\n\t{\n\t\t\"term\": \"string\",\n\t\t\"definition\": \"string\"\n\t}\n]\n```"

var fencedJSON = regexp.MustCompile("```json([\\s\\S]*?)```")

// GenerationService relays study material to the oracle.
type GenerationService interface {
	// Summarize returns a plain-text summary of a lesson transcript.
	Summarize(ctx context.Context, text string) (string, error)
	// GenerateFlashcards asks for count term/definition pairs drawn from text.
	GenerateFlashcards(ctx context.Context, count int, text string) ([]model.GeneratedFlashcard, error)
	// Transcribe stages an audio upload and converts it to text.
	Transcribe(ctx context.Context, filename string, audio io.Reader, size int64) (string, error)
}

type GenerationServiceImpl struct {
	oracle oracle.Oracle
	store  staging.Store
}

// NewGenerationService constructs GenerationService.
func NewGenerationService(o oracle.Oracle, store staging.Store) *GenerationServiceImpl {
	return &GenerationServiceImpl{oracle: o, store: store}
}

// Summarize sends text with the summary template.
func (s *GenerationServiceImpl) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errs.Invalid("Prompt is required")
	}
	out, err := s.oracle.Complete(ctx, summarizeTemplate, text)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	return out, nil
}

// GenerateFlashcards extracts the first fenced json block of the reply.
func (s *GenerationServiceImpl) GenerateFlashcards(ctx context.Context, count int, text string) ([]model.GeneratedFlashcard, error) {
	if count <= 0 {
		return nil, errs.Invalid("Number of flashcards must be positive")
	}
	if strings.TrimSpace(text) == "" {
		return nil, errs.Invalid("Prompt is required")
	}
	out, err := s.oracle.Complete(ctx, fmt.Sprintf(flashcardTemplate, count), text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	return parseFlashcards(out)
}

// Transcribe stages the upload, forwards it, and always removes the staged object.
func (s *GenerationServiceImpl) Transcribe(ctx context.Context, filename string, audio io.Reader, size int64) (text string, err error) {
	if size > MaxAudioSize {
		return "", errs.Invalid("File too large")
	}
	if audio == nil || size == 0 {
		return "", errs.Invalid("File is required")
	}

	key, err := s.store.Stage(ctx, filename, io.LimitReader(audio, MaxAudioSize+1), size)
	if err != nil {
		return "", fmt.Errorf("stage upload: %w", err)
	}
	defer func() {
		// cleanup must not be skipped when the request is cancelled
		if rerr := s.store.Remove(context.WithoutCancel(ctx), key); rerr != nil && err == nil {
			err = fmt.Errorf("remove staged upload: %w", rerr)
		}
	}()

	rc, err := s.store.Open(ctx, key)
	if err != nil {
		return "", fmt.Errorf("open staged upload: %w", err)
	}
	defer rc.Close()

	// the oracle infers the audio format from the extension
	out, err := s.oracle.Transcribe(ctx, key, rc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	return out, nil
}

func parseFlashcards(reply string) ([]model.GeneratedFlashcard, error) {
	m := fencedJSON.FindStringSubmatch(reply)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return nil, errs.ErrOracleParse
	}
	var cards []model.GeneratedFlashcard
	if err := json.Unmarshal([]byte(strings.TrimSpace(m[1])), &cards); err != nil {
		return nil, errors.Join(errs.ErrOracleParse, err)
	}
	if cards == nil {
		cards = []model.GeneratedFlashcard{}
	}
	return cards, nil
}
