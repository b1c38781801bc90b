// Package groq talks to the Groq chat-completions API (OpenAI wire
// format) and turns study content into a structured quiz.
package groq

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"quiznote/internal/models"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// ModelName is the Groq model used for quiz generation.
	ModelName = "llama-3.3-70b-versatile"

	requestTimeout = 3 * time.Minute
)

var (
	// ErrModelCall covers transport failures and non-2xx responses from Groq.
	ErrModelCall = errors.New("model call failed")
	// ErrMalformedOutput covers responses that are not the requested JSON shape.
	ErrMalformedOutput = errors.New("malformed model output")
)

// Client wraps the OpenAI-compatible client pointed at Groq.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient builds a Groq client from an API key.
func NewClient(apiKey string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = DefaultBaseURL
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  ModelName,
	}
}

// GenerateQuiz asks the model for a summary plus count questions about the
// given content, in JSON-object-only mode. The returned quiz is parsed but
// not yet validated; the generation pipeline owns validation.
func (c *Client) GenerateQuiz(ctx context.Context, content string, count int) (*models.GeneratedQuiz, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a JSON-only API."},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(content, count)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelCall, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: response contained no choices", ErrModelCall)
	}

	raw := resp.Choices[0].Message.Content
	quiz, err := ParseQuiz(raw)
	if err != nil {
		log.Printf("WARN: failed to parse model output: %v", err)
		return nil, err
	}
	return quiz, nil
}
