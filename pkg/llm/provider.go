// Package llm defines the provider abstraction for chat completion backends.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Provider is a chat completion backend.
type Provider interface {
	// Chat sends the conversation and returns the assistant reply.
	Chat(ctx context.Context, messages []Message, opts ...Option) (string, error)

	// Model reports the default model this provider targets.
	Model() string

	// Name identifies the backend, for logs.
	Name() string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat completion conversation.
type Message struct {
	Role    string
	Content string
}

// Options holds per-request generation parameters. Zero values fall back to
// the provider's defaults.
type Options struct {
	Model       string
	Temperature float32
	MaxTokens   int
	TopP        float32
}

type Option func(*Options)

func WithModel(model string) Option {
	return func(o *Options) { o.Model = model }
}

func WithTemperature(t float32) Option {
	return func(o *Options) { o.Temperature = t }
}

func WithMaxTokens(n int) Option {
	return func(o *Options) { o.MaxTokens = n }
}

func WithTopP(p float32) Option {
	return func(o *Options) { o.TopP = p }
}

func ApplyOptions(opts []Option) Options {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// ErrNotConfigured is returned before any network call when the provider is
// missing its credentials or endpoint.
var ErrNotConfigured = errors.New("llm: provider not configured")

// ErrUnauthorized is returned when the upstream rejects the credentials.
var ErrUnauthorized = errors.New("llm: invalid credentials")

// UpstreamError wraps a non-auth failure reported by the completion backend.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm: upstream error (status %d): %s", e.StatusCode, e.Message)
}
