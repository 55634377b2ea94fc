// Package ai talks to the OpenAI chat-completions API for note
// rewriting and natural-language query translation. Failures surface as
// single error values; callers render them as status messages and never
// treat them as fatal.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danielarbabian/stash/internal/config"
	"github.com/danielarbabian/stash/internal/logger"
	"github.com/danielarbabian/stash/internal/models"
	"github.com/danielarbabian/stash/internal/perf"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	model          = "gpt-4o-mini"

	// RewriteTimeout bounds a rewrite request.
	RewriteTimeout = 30 * time.Second
	// TranslateTimeout bounds a query-translation request.
	TranslateTimeout = 10 * time.Second
)

// ErrNotConfigured is returned when an operation is attempted without
// an API key.
var ErrNotConfigured = errors.New("openai api key not configured")

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client is the AI collaborator.
type Client struct {
	httpClient *http.Client
	settings   *config.Settings
	baseURL    string
}

// NewClient loads settings and builds a client. The client is usable
// even without an API key; operations then fail with ErrNotConfigured.
func NewClient() (*Client, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	return &Client{
		httpClient: &http.Client{},
		settings:   settings,
		baseURL:    defaultBaseURL,
	}, nil
}

// IsConfigured reports whether an API key is available.
func (c *Client) IsConfigured() bool {
	return c.settings.HasAPIKey()
}

// RewriteNote asks the model to clean up a note's content according to
// the configured prompt style. Bounded by RewriteTimeout.
func (c *Client) RewriteNote(ctx context.Context, note *models.Note) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, RewriteTimeout)
	defer cancel()

	prompt := fmt.Sprintf("Please clean up and improve the following note content. Keep the same meaning and tone, but make it clearer, fix any grammar issues, and ensure proper markdown formatting:\n\n%s", note.Content)

	return c.chat(ctx, chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: c.settings.SystemPrompt()},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   2000,
		Temperature: 0.3,
	})
}

const translateSystemPrompt = `You are a command parser for the 'stash' note-taking application. Your job is to convert natural language queries into valid stash search commands.

IMPORTANT: Return ONLY the search arguments, NOT the full command. Do not include 'stash search' in your response. Do not wrap your response in quotes.

Available search patterns:
- text search: just the search term (e.g., rust, async await)
- tag search: #tagname (e.g., #rust, #webdev)
- project search: +projectname (e.g., +myapp, +backend)
- combined: #tag +project text (e.g., #rust +webapp error handling)
- exclude: -#tagname or -+projectname (e.g., -#old)
- list options: --list-tags or --list-projects
- case sensitive: --case-sensitive followed by search term

Examples:
- find rust notes → #rust
- show me my webapp project → +webapp
- notes about rust in my webapp → #rust +webapp
- math notes → math
- find my old javascript code → #javascript
- list all my tags → --list-tags
- find notes with javascript but not old stuff → #javascript -#old

Return ONLY the search arguments that would come after 'stash search'. Do not use quotes around your response.`

// TranslateQuery converts a natural-language sentence into stash search
// syntax. The output is untrusted: callers re-parse and re-validate it
// through the query engine before executing anything. Bounded by
// TranslateTimeout.
func (c *Client) TranslateQuery(ctx context.Context, input string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, TranslateTimeout)
	defer cancel()

	raw, err := c.chat(ctx, chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: translateSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Convert this natural language query to stash search arguments: %s", input)},
		},
		MaxTokens:   100,
		Temperature: 0.1,
	})
	if err != nil {
		return "", err
	}

	return cleanQuery(raw), nil
}

// cleanQuery strips the wrappers models like to add around the bare
// arguments: code fences, quotes, and echoed command prefixes.
func cleanQuery(raw string) string {
	q := strings.Trim(raw, "`")
	q = strings.TrimPrefix(q, "stash search ")
	q = strings.TrimPrefix(q, "search ")
	q = strings.Trim(q, `"`)
	q = strings.Trim(q, "'")
	return strings.TrimSpace(q)
}

// chat performs one chat-completions round trip.
func (c *Client) chat(ctx context.Context, req chatRequest) (string, error) {
	timer := perf.NewTimer("ai.chat", logger.GetLogger(), 5000)
	defer timer.Stop()

	apiKey, err := c.settings.APIKey()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", errors.New("timeout: request took too long")
		}
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", errors.New("invalid response format")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
