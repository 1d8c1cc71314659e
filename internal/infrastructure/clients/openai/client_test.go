package openai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/tourism-directory/backend/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.OpenAIConfig{
		APIKey:         "test-key",
		Model:          "test-model",
		BaseURL:        server.URL,
		RequestsPerMin: -1,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(&config.OpenAIConfig{})
	assert.Error(t, err)
}

func TestComplete_ReturnsOutputText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "Best cafes in Cebu")
		assert.Contains(t, string(body), `"model":"test-model"`)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"output":[{"content":[{"type":"output_text","text":"` + "```\\n" + `Cafe A - good coffee` + "```" + `"}]}]}`))
	})

	text, err := client.Complete(context.Background(), "Best cafes in Cebu")
	require.NoError(t, err)
	assert.Equal(t, "Cafe A - good coffee", text)
}

func TestComplete_UnauthorizedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Complete(context.Background(), "prompt")
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestComplete_EmptyOutput(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"output":[]}`))
	})

	_, err := client.Complete(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestComplete_RejectsEmptyPrompt(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.Complete(context.Background(), "  ")
	assert.Error(t, err)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a\nb", cleanText("```text\na\nb\n```"))
	assert.Equal(t, "plain", cleanText("  plain "))
}
