package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// samplingTemperature is fixed for every completion the service issues.
const samplingTemperature = 0.5

// ID names a configured LLM provider.
type ID string

const (
	// Groq is the primary provider.
	Groq ID = "groq"
	// OpenAI is the secondary provider.
	OpenAI ID = "openai"
)

// Config describes one OpenAI-compatible chat-completion backend.
// It is immutable after process start.
type Config struct {
	Name    ID
	BaseURL string
	APIKey  string
	Model   string
}

// Client issues single chat-completion requests against one provider.
// It performs no caching and no retries; retry policy belongs to the caller.
type Client struct {
	name  ID
	model string
	api   openai.Client
}

// NewClient builds a client for the given provider configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		name:  cfg.Name,
		model: cfg.Model,
		api: openai.NewClient(
			option.WithBaseURL(cfg.BaseURL),
			option.WithAPIKey(cfg.APIKey),
			option.WithMaxRetries(0),
		),
	}
}

// Complete sends one chat completion built from the instruction and the body
// text and returns the first choice's message content.
func (c *Client) Complete(
	ctx context.Context,
	instruction string,
	body string,
) (string, error) {
	content := instruction + "\n\n" + body

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(samplingTemperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(content),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &APIError{Provider: c.name, StatusCode: apiErr.StatusCode}
		}

		return "", fmt.Errorf("do completion request (provider = %s): %w", c.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("provider %s: %w", c.name, ErrMalformedResponse)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("provider %s: %w", c.name, ErrMalformedResponse)
	}

	return text, nil
}

// Registry holds one client per configured provider.
type Registry struct {
	clients map[ID]*Client
}

// NewRegistry builds clients for every configuration.
func NewRegistry(configs ...Config) *Registry {
	clients := make(map[ID]*Client, len(configs))
	for _, cfg := range configs {
		clients[cfg.Name] = NewClient(cfg)
	}

	return &Registry{clients: clients}
}

// Complete routes a single completion to the named provider.
// An unknown id fails before any network call.
func (r *Registry) Complete(
	ctx context.Context,
	id ID,
	instruction string,
	body string,
) (string, error) {
	client, ok := r.clients[id]
	if !ok {
		return "", &InvalidProviderError{Name: string(id)}
	}

	return client.Complete(ctx, instruction, body)
}
