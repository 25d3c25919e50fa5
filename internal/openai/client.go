// Package openai wraps the OpenAI-compatible embedding and chat completion
// APIs behind small interfaces the pipeline and chat service consume.
package openai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultEmbeddingModel is used when no embedding model is configured.
	DefaultEmbeddingModel = "text-embedding-3-small"
	// DefaultChatModel is used when no chat model is configured.
	DefaultChatModel = "gpt-4o-mini"

	// chatTemperature keeps generation close to the supplied context.
	chatTemperature = 0.2
)

var (
	// ErrEmptyInput is returned when an embedding request has no texts.
	ErrEmptyInput = errors.New("embedding input must not be empty")
	// ErrNoChoices is returned when the chat API responds without content.
	ErrNoChoices = errors.New("no completion choices returned")
)

// Message is one role-tagged turn of a chat conversation.
type Message struct {
	Role    string
	Content string
}

// Chat message roles.
const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// API is the subset of the OpenAI SDK the client depends on, extracted for
// test doubles.
type API interface {
	CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config configures the client.
type Config struct {
	APIKey         string
	BaseURL        string // optional override for OpenAI-compatible services
	EmbeddingModel string
	ChatModel      string
}

// Client talks to an OpenAI-compatible endpoint.
type Client struct {
	api            API
	embeddingModel string
	chatModel      string
}

// NewClient creates a client from config, applying model defaults.
func NewClient(cfg Config) *Client {
	sdkCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		sdkCfg.BaseURL = cfg.BaseURL
	}

	return newClientWithAPI(openai.NewClientWithConfig(sdkCfg), cfg)
}

func newClientWithAPI(api API, cfg Config) *Client {
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	return &Client{
		api:            api,
		embeddingModel: cfg.EmbeddingModel,
		chatModel:      cfg.ChatModel,
	}
}

// EmbedTexts maps texts to vectors, preserving input order. Any API failure
// is fatal to the caller; no retry is attempted here.
func (c *Client) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}
	for _, t := range texts {
		if t == "" {
			return nil, ErrEmptyInput
		}
	}

	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(c.embeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// Chat generates a reply for the given conversation.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Temperature: chatTemperature,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return resp.Choices[0].Message.Content, nil
}
