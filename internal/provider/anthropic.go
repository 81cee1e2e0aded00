// Package provider wraps the single outbound Anthropic call surface.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/llmterm/llmterm/internal/config"
)

// DefaultModel is used when neither settings nor the agent config name one.
const DefaultModel = anthropic.ModelClaude3_7SonnetLatest

// ErrMissingCredential means no API key was resolvable from settings or
// the environment.
var ErrMissingCredential = errors.New("no Anthropic API key configured (set anthropic.api_key or ANTHROPIC_API_KEY)")

// ModelError wraps a transport or provider failure from a model call.
// The gateway makes exactly one attempt: no retries, no built-in timeout.
// Callers that want a deadline pass a context carrying one.
type ModelError struct {
	Err error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model call failed: %v", e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// Gateway is the resolved model client plus default call parameters.
type Gateway struct {
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewGateway resolves credentials and defaults from cfg. Extra request
// options (tests inject a fake transport this way) are appended after the
// API key option.
func NewGateway(cfg *config.Config, opts ...option.RequestOption) (*Gateway, error) {
	key := cfg.GetString("anthropic.api_key")
	if key == "" {
		return nil, ErrMissingCredential
	}

	model := anthropic.Model(cfg.GetString("model.name"))
	if model == "" {
		model = DefaultModel
	}

	all := append([]option.RequestOption{option.WithAPIKey(key)}, opts...)
	c := anthropic.NewClient(all...)
	return &Gateway{
		client:    &c,
		model:     model,
		maxTokens: int64(cfg.GetInt("model.max_tokens")),
	}, nil
}

func (g *Gateway) Client() *anthropic.Client { return g.client }

func (g *Gateway) Model() anthropic.Model { return g.model }

func (g *Gateway) MaxTokens() int64 { return g.maxTokens }

// CallOverrides carries an agent's resolved model parameters for one
// call. Zero values fall back to the gateway's settings-level defaults.
type CallOverrides struct {
	Model     anthropic.Model
	MaxTokens int64
}

// GenerateText makes one text-generation call. systemContext, when
// non-empty, is sent as the system prompt. The reply's text blocks are
// joined with newlines.
func (g *Gateway) GenerateText(ctx context.Context, prompt, systemContext string, ov CallOverrides) (string, error) {
	model := ov.Model
	if model == "" {
		model = g.model
	}
	maxTokens := ov.MaxTokens
	if maxTokens <= 0 {
		maxTokens = g.maxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
	}
	if systemContext != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemContext}}
	}

	msg, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", &ModelError{Err: err}
	}

	var parts []string
	for _, b := range msg.Content {
		if tb, ok := b.AsAny().(anthropic.TextBlock); ok && tb.Text != "" {
			parts = append(parts, tb.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}
