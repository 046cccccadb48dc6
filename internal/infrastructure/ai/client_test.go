package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listify/backend/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func completionBody(content string) string {
	reply := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	b, _ := json.Marshal(reply)
	return string(b)
}

func TestClient_Complete(t *testing.T) {
	t.Run("sends prompts and returns the reply content", func(t *testing.T) {
		var captured chatRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(completionBody(`{"title": "Jimmy H8 Flex"}`)))
		}))
		defer server.Close()

		client := NewClient("test-key", server.URL, "gpt-4o-mini", 0.3, testLogger())
		got, err := client.Complete(context.Background(), &domain.CompletionRequest{
			SystemPrompt: "You are a product research assistant.",
			UserPrompt:   "Product: jimmy h8 flex",
			MaxTokens:    4000,
		})

		require.NoError(t, err)
		assert.Equal(t, `{"title": "Jimmy H8 Flex"}`, got)

		assert.Equal(t, "gpt-4o-mini", captured.Model)
		assert.Equal(t, 0.3, captured.Temperature)
		assert.Equal(t, 4000, captured.MaxTokens)
		require.Len(t, captured.Messages, 2)
		assert.Equal(t, "system", captured.Messages[0].Role)
		assert.Equal(t, "user", captured.Messages[1].Role)
	})

	t.Run("non-200 status maps to upstream request error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error": {"message": "Rate limit reached"}}`))
		}))
		defer server.Close()

		client := NewClient("test-key", server.URL, "gpt-4o-mini", 0.3, testLogger())
		_, err := client.Complete(context.Background(), &domain.CompletionRequest{UserPrompt: "x"})

		require.ErrorIs(t, err, domain.ErrUpstreamRequest)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("unparseable body maps to upstream parse error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>gateway</html>"))
		}))
		defer server.Close()

		client := NewClient("test-key", server.URL, "gpt-4o-mini", 0.3, testLogger())
		_, err := client.Complete(context.Background(), &domain.CompletionRequest{UserPrompt: "x"})

		require.ErrorIs(t, err, domain.ErrUpstreamParse)
	})

	t.Run("empty choices map to upstream empty error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices": []}`))
		}))
		defer server.Close()

		client := NewClient("test-key", server.URL, "gpt-4o-mini", 0.3, testLogger())
		_, err := client.Complete(context.Background(), &domain.CompletionRequest{UserPrompt: "x"})

		require.ErrorIs(t, err, domain.ErrUpstreamEmpty)
	})

	t.Run("unreachable server maps to upstream request error", func(t *testing.T) {
		client := NewClient("test-key", "http://127.0.0.1:1", "gpt-4o-mini", 0.3, testLogger())
		_, err := client.Complete(context.Background(), &domain.CompletionRequest{UserPrompt: "x"})

		require.ErrorIs(t, err, domain.ErrUpstreamRequest)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcde...", Truncate("abcdefghij", 5))
}
