// Package generator turns note text into flashcard drafts using a language
// model.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/nzaccagnino/studydesk/internal/config"
	"github.com/nzaccagnino/studydesk/internal/domain"
)

var (
	ErrNotConfigured = errors.New("api key is not configured")
	ErrEmptySource   = errors.New("selected note is empty")
	ErrNoCards       = errors.New("no flashcards were generated")
)

const promptTemplate = `Analyze the following text and generate a set of flashcards from it. Each flashcard should be a clear question and answer pair. Focus on key concepts, definitions, and important facts.

Respond with a JSON array only, no prose. Each element is an object with a "front" string (the question, concise) and a "back" string (a clear and direct answer).

Text:
%s`

// Draft is one generated question and answer pair.
type Draft struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Completer sends a prompt and returns the model's text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Generator struct {
	completer Completer
}

// New returns a Generator backed by the Messages API. Without an API key the
// Generator reports ErrNotConfigured on every call.
func New(cfg config.GeneratorConfig, opts ...option.RequestOption) *Generator {
	if cfg.APIKey == "" {
		return &Generator{}
	}
	return NewWithCompleter(newMessagesCompleter(cfg, opts...))
}

func NewWithCompleter(c Completer) *Generator {
	return &Generator{completer: c}
}

func (g *Generator) Configured() bool {
	return g.completer != nil
}

// Generate asks the model for flashcards covering text.
func (g *Generator) Generate(ctx context.Context, text string) ([]Draft, error) {
	if !g.Configured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptySource
	}

	reply, err := g.completer.Complete(ctx, fmt.Sprintf(promptTemplate, text))
	if err != nil {
		return nil, fmt.Errorf("failed to generate flashcards: %w", err)
	}
	return parseDrafts(reply)
}

// FromNote generates cards from a note's content, ready for a batch insert
// into deckID.
func FromNote(ctx context.Context, g *Generator, note domain.Note, deckID string) ([]domain.CardForm, error) {
	drafts, err := g.Generate(ctx, note.Content)
	if err != nil {
		return nil, err
	}
	forms := make([]domain.CardForm, len(drafts))
	for i, d := range drafts {
		forms[i] = domain.CardForm{DeckID: deckID, Front: d.Front, Back: d.Back}
	}
	return forms, nil
}

// parseDrafts extracts the first JSON array from reply, tolerating code
// fences and surrounding prose. Pairs missing a side are dropped.
func parseDrafts(reply string) ([]Draft, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end < start {
		return nil, ErrNoCards
	}

	var raw []Draft
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil, ErrNoCards
	}

	drafts := raw[:0]
	for _, d := range raw {
		d.Front = strings.TrimSpace(d.Front)
		d.Back = strings.TrimSpace(d.Back)
		if d.Front == "" || d.Back == "" {
			continue
		}
		drafts = append(drafts, d)
	}
	if len(drafts) == 0 {
		return nil, ErrNoCards
	}
	return drafts, nil
}

type messagesCompleter struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func newMessagesCompleter(cfg config.GeneratorConfig, opts ...option.RequestOption) *messagesCompleter {
	opts = append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	model := cfg.Model
	if model == "" {
		model = config.DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &messagesCompleter{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (m *messagesCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := m.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(m.model),
		MaxTokens: m.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
