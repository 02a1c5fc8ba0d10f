package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pharmetrics/askdb/internal/domain"
)

// MockEmbeddingAPI is a mock implementation of EmbeddingAPI
type MockEmbeddingAPI struct {
	mock.Mock
}

func (m *MockEmbeddingAPI) CreateEmbeddings(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// MockChatAPI is a mock implementation of ChatAPI
type MockChatAPI struct {
	mock.Mock
}

func (m *MockChatAPI) CreateCompletion(ctx context.Context, prompt string, temperature float32) (string, error) {
	args := m.Called(ctx, prompt, temperature)
	return args.String(0), args.Error(1)
}

func newTestClient(embeddings EmbeddingAPI, chat ChatAPI, dimensions int) *Client {
	return &Client{embeddings: embeddings, chat: chat, dimensions: dimensions}
}

func TestClient_GenerateEmbedding(t *testing.T) {
	api := new(MockEmbeddingAPI)
	embedding := []float32{0.1, 0.2, 0.3}
	api.On("CreateEmbeddings", mock.Anything, "some text").Return(embedding, nil)

	client := newTestClient(api, nil, 3)
	got, err := client.GenerateEmbedding(context.Background(), "some text")

	require.NoError(t, err)
	assert.Equal(t, embedding, got)
}

func TestClient_GenerateEmbedding_EmptyText(t *testing.T) {
	client := newTestClient(new(MockEmbeddingAPI), nil, 3)

	_, err := client.GenerateEmbedding(context.Background(), "")

	assert.Equal(t, ErrEmptyText, err)
}

func TestClient_GenerateEmbedding_WrongDimensions(t *testing.T) {
	api := new(MockEmbeddingAPI)
	api.On("CreateEmbeddings", mock.Anything, mock.Anything).Return([]float32{0.1, 0.2}, nil)

	client := newTestClient(api, nil, 3)
	_, err := client.GenerateEmbedding(context.Background(), "some text")

	assert.Equal(t, ErrWrongDimensions, err)
}

func TestClient_GenerateEmbedding_APIError(t *testing.T) {
	api := new(MockEmbeddingAPI)
	api.On("CreateEmbeddings", mock.Anything, mock.Anything).
		Return(nil, errors.New("rate limited"))

	client := newTestClient(api, nil, 3)
	_, err := client.GenerateEmbedding(context.Background(), "some text")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestClient_Generate(t *testing.T) {
	api := new(MockChatAPI)
	api.On("CreateCompletion", mock.Anything, "say hello", float32(0.2)).
		Return("hello", nil)

	client := newTestClient(nil, api, 0)
	got := client.Generate(context.Background(), "say hello", 0.2)

	assert.Equal(t, "hello", got)
}

func TestClient_Generate_FailureDegradesToSentinel(t *testing.T) {
	api := new(MockChatAPI)
	api.On("CreateCompletion", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("api unavailable"))

	client := newTestClient(nil, api, 0)
	got := client.Generate(context.Background(), "say hello", 0.2)

	assert.Equal(t, domain.GenerationErrorText, got)
}
