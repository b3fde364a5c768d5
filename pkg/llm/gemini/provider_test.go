package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"buddyai-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiProvider_Chat(t *testing.T) {
	var got geminiChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "key-123", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hi there"}]}}]}`))
	}))
	defer server.Close()

	p := NewGeminiProvider(server.URL, "key-123", "gemini-2.0-flash")
	history := []llm.Message{
		{Role: llm.RoleUser, Content: "Hello"},
		{Role: llm.RoleModel, Content: "Hey"},
	}

	reply, err := p.Chat(context.Background(), history, "How are you?")
	require.NoError(t, err)
	assert.Equal(t, "Hi there", reply)

	require.Len(t, got.Contents, 3)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "model", got.Contents[1].Role)
	assert.Equal(t, "user", got.Contents[2].Role)
	assert.Equal(t, "How are you?", got.Contents[2].Parts[0].Text)
	assert.Nil(t, got.GenerationConfig)
}

func TestGeminiProvider_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer server.Close()

	p := NewGeminiProvider(server.URL, "bad", "gemini-2.0-flash")
	_, err := p.Generate(context.Background(), "Hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGeminiProvider_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	_, err := NewGeminiProvider(server.URL, "k", "m").Generate(context.Background(), "Hello")
	assert.EqualError(t, err, "gemini returned no candidates")
}

func TestGeminiProvider_HonoursContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewGeminiProvider(server.URL, "k", "m").Generate(ctx, "Hello")
	require.Error(t, err)
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
}

func TestGeminiProvider_GenerationConfig(t *testing.T) {
	var got geminiChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	_, err := NewGeminiProvider(server.URL, "k", "m").Generate(context.Background(), "Hello",
		llm.WithMaxTokens(256), llm.WithTemperature(0.5))
	require.NoError(t, err)

	require.NotNil(t, got.GenerationConfig)
	assert.Equal(t, 256, got.GenerationConfig.MaxOutputTokens)
	require.NotNil(t, got.GenerationConfig.Temperature)
	assert.InDelta(t, 0.5, *got.GenerationConfig.Temperature, 1e-9)
}
