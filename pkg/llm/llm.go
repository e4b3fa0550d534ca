// Package llm wraps an OpenAI-compatible chat API behind a small Client
// interface. The analysis pipeline uses it to turn a finished payload
// into a short narrative summary; everything works without it.
package llm

import (
	"context"
	"errors"
	"strings"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultModel is used when the config names no model.
const DefaultModel = "gpt-4o-mini"

// ErrEmptyResponse is returned when the API produced no choices.
var ErrEmptyResponse = errors.New("llm returned an empty response")

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client generates a chat completion for an ordered message list.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Config carries the connection settings for an OpenAI-compatible
// endpoint. BaseURL is optional; empty means the public OpenAI API.
type Config struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
}

// Enabled reports whether the config carries enough to build a client.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}
