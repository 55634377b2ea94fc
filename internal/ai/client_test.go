package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielarbabian/stash/internal/config"
	"github.com/danielarbabian/stash/internal/models"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &Client{
		httpClient: server.Client(),
		settings:   &config.Settings{OpenAIAPIKey: "sk-test", AIEnabled: true, AIPromptStyle: "professional"},
		baseURL:    server.URL,
	}
}

func completionResponse(content string) []byte {
	raw, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return raw
}

func TestIsConfigured(t *testing.T) {
	c := &Client{settings: &config.Settings{}}
	assert.False(t, c.IsConfigured())

	c.settings.OpenAIAPIKey = "sk-test"
	assert.True(t, c.IsConfigured())
}

func TestRewriteNote(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write(completionResponse("  Cleaned up note.  "))
	})

	note := &models.Note{Content: "messy draft"}
	text, err := c.RewriteNote(context.Background(), note)
	require.NoError(t, err)

	assert.Equal(t, "Cleaned up note.", text)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, model, gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "messy draft")
}

func TestRewriteNoteNotConfigured(t *testing.T) {
	c := &Client{settings: &config.Settings{}}

	_, err := c.RewriteNote(context.Background(), &models.Note{Content: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRewriteNoteAPIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	})

	_, err := c.RewriteNote(context.Background(), &models.Note{Content: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api error: 429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestRewriteNoteMalformedResponse(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	})

	_, err := c.RewriteNote(context.Background(), &models.Note{Content: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid response format")
}

func TestTranslateQuery(t *testing.T) {
	var gotReq chatRequest

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write(completionResponse("#rust +webapp"))
	})

	query, err := c.TranslateQuery(context.Background(), "find rust notes in my webapp")
	require.NoError(t, err)

	assert.Equal(t, "#rust +webapp", query)
	assert.Equal(t, float32(0.1), gotReq.Temperature)
	assert.Equal(t, 100, gotReq.MaxTokens)
}

func TestTranslateQueryCleansWrappers(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{"code fence", "`#rust`", "#rust"},
		{"echoed command", "stash search #rust +webapp", "#rust +webapp"},
		{"bare search prefix", "search #rust", "#rust"},
		{"double quotes", `"#rust"`, "#rust"},
		{"single quotes", "'#rust'", "#rust"},
		{"clean output untouched", "#rust -#old async", "#rust -#old async"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write(completionResponse(tt.response))
			})

			query, err := c.TranslateQuery(context.Background(), "whatever")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, query)
		})
	}
}
