// Package oracle relays prompts and audio to an external language-model service.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Oracle is the generation backend used by the gateway.
type Oracle interface {
	// Complete sends a system template and user text, returning the assistant reply.
	Complete(ctx context.Context, system, user string) (string, error)
	// Transcribe converts audio to text; filename carries the format extension.
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// Config holds client settings. Zero values fall back to the defaults below.
type Config struct {
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	ChatModel   string
	MaxTokens   int
	Temperature float32
}

const (
	defaultTimeout     = 60 * time.Second
	defaultMaxTokens   = 2048
	defaultTemperature = 0.1
)

// ErrEmptyReply is returned when the service answers without any choice.
var ErrEmptyReply = errors.New("oracle: empty reply")

// OpenAI implements Oracle with the OpenAI HTTP API.
type OpenAI struct {
	client *openai.Client
	cfg    Config
}

var _ Oracle = (*OpenAI)(nil)

// NewOpenAI builds a client; BaseURL may point at a compatible gateway or a test server.
func NewOpenAI(cfg Config) *OpenAI {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = openai.GPT4Turbo
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &OpenAI{client: openai.NewClientWithConfig(oc), cfg: cfg}
}

// Complete runs one chat completion with a fixed system message.
func (o *OpenAI) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.cfg.ChatModel,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcribe streams audio to the speech-to-text endpoint.
func (o *OpenAI) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filename,
		Reader:   audio,
	})
	if err != nil {
		return "", fmt.Errorf("transcription: %w", err)
	}
	return resp.Text, nil
}
