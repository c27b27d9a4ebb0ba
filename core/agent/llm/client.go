// Package llm wraps the OpenAI chat completion API behind the
// TextGenerator port.
package llm

import (
	"context"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"assistant_server/pkg/apperr"
	"assistant_server/pkg/resilience"
)

const DefaultModel = "gpt-4o-mini"

// Client implements out.TextGenerator on top of the OpenAI API. Every
// failure to obtain a response (transport, auth, quota, timeout, open
// breaker) is surfaced as a SERVICE_UNAVAILABLE error; a delivered but
// malformed response is returned as plain text for the caller to judge.
type Client struct {
	client    *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
	breaker   *gobreaker.CircuitBreaker
}

// ClientConfig holds LLM client configuration.
type ClientConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// NewClient creates an LLM client with defaults.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(ClientConfig{APIKey: apiKey})
}

// NewClientWithConfig creates an LLM client from config.
func NewClientWithConfig(cfg ClientConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		client:    openai.NewClient(cfg.APIKey),
		model:     model,
		maxTokens: maxTokens,
		timeout:   timeout,
		breaker:   resilience.NewBreaker("openai"),
	}
}

// Generate runs one chat completion with an optional system instruction.
// A single attempt per call; retry policy belongs to the service side.
func (c *Client) Generate(ctx context.Context, prompt, systemInstruction string, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemInstruction,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			MaxTokens:   c.maxTokens,
			Temperature: temperature,
		})
	})
	if err != nil {
		return "", apperr.ServiceUnavailable("generative service", err)
	}

	resp := result.(openai.ChatCompletionResponse)
	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}

// jsonObjectPattern matches the outermost JSON object in a model response.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSON strips markdown fences and surrounding prose from a model
// response, returning the embedded JSON object text. Returns the trimmed
// input when no object is found, so decode errors stay visible.
func ExtractJSON(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	if match := jsonObjectPattern.FindString(response); match != "" {
		return match
	}
	return response
}

// TruncateBody caps a body excerpt for prompt building.
func TruncateBody(body string, maxLen int) string {
	if len(body) <= maxLen {
		return body
	}
	return body[:maxLen] + "..."
}
