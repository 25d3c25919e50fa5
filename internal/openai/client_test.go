package openai

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	embedResp openai.EmbeddingResponse
	embedErr  error
	chatResp  openai.ChatCompletionResponse
	chatErr   error

	lastEmbedReq openai.EmbeddingRequest
	lastChatReq  openai.ChatCompletionRequest
}

func (f *fakeAPI) CreateEmbeddings(_ context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error) {
	if r, ok := req.(openai.EmbeddingRequest); ok {
		f.lastEmbedReq = r
	}
	return f.embedResp, f.embedErr
}

func (f *fakeAPI) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastChatReq = req
	return f.chatResp, f.chatErr
}

func TestEmbedTexts_PreservesOrder(t *testing.T) {
	api := &fakeAPI{
		embedResp: openai.EmbeddingResponse{
			// Out-of-order response data must land at the right index.
			Data: []openai.Embedding{
				{Index: 1, Embedding: []float32{0.2}},
				{Index: 0, Embedding: []float32{0.1}},
			},
		},
	}
	c := newClientWithAPI(api, Config{})

	vectors, err := c.EmbedTexts(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.1}, {0.2}}, vectors)
}

func TestEmbedTexts_EmptyInput(t *testing.T) {
	c := newClientWithAPI(&fakeAPI{}, Config{})

	_, err := c.EmbedTexts(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = c.EmbedTexts(context.Background(), []string{"ok", ""})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestEmbedTexts_APIFailureIsFatal(t *testing.T) {
	api := &fakeAPI{embedErr: errors.New("upstream down")}
	c := newClientWithAPI(api, Config{})

	_, err := c.EmbedTexts(context.Background(), []string{"text"})
	assert.ErrorContains(t, err, "upstream down")
}

func TestEmbedTexts_CountMismatch(t *testing.T) {
	api := &fakeAPI{
		embedResp: openai.EmbeddingResponse{
			Data: []openai.Embedding{{Index: 0, Embedding: []float32{0.1}}},
		},
	}
	c := newClientWithAPI(api, Config{})

	_, err := c.EmbedTexts(context.Background(), []string{"a", "b"})
	assert.ErrorContains(t, err, "mismatch")
}

func TestEmbedTexts_UsesConfiguredModel(t *testing.T) {
	api := &fakeAPI{
		embedResp: openai.EmbeddingResponse{
			Data: []openai.Embedding{{Index: 0, Embedding: []float32{0.1}}},
		},
	}
	c := newClientWithAPI(api, Config{EmbeddingModel: "custom-embed"})

	_, err := c.EmbedTexts(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, openai.EmbeddingModel("custom-embed"), api.lastEmbedReq.Model)
}

func TestChat_ReturnsContent(t *testing.T) {
	api := &fakeAPI{
		chatResp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "the answer"}},
			},
		},
	}
	c := newClientWithAPI(api, Config{ChatModel: "custom-chat"})

	reply, err := c.Chat(context.Background(), []Message{
		{Role: RoleSystem, Content: "be brief"},
		{Role: RoleUser, Content: "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "the answer", reply)
	assert.Equal(t, "custom-chat", api.lastChatReq.Model)
	require.Len(t, api.lastChatReq.Messages, 2)
	assert.Equal(t, RoleSystem, api.lastChatReq.Messages[0].Role)
}

func TestChat_NoChoices(t *testing.T) {
	c := newClientWithAPI(&fakeAPI{}, Config{})

	_, err := c.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	assert.ErrorIs(t, err, ErrNoChoices)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{APIKey: "sk-test"})
	assert.Equal(t, DefaultEmbeddingModel, c.embeddingModel)
	assert.Equal(t, DefaultChatModel, c.chatModel)
}
