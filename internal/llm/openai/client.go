// Package openai is the direct chat-completion backend. The instructions and
// the JSON-only requirement travel in the system message.
package openai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/aebalz/mindful-journey/internal/llm"
	"github.com/aebalz/mindful-journey/internal/model"
)

const (
	// DefaultBaseURL points at the public OpenAI API.
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-3.5-turbo"

	temperature = 0.7
	maxErrBody  = 2048
)

// Client calls an OpenAI-compatible /chat/completions endpoint.
type Client struct {
	http    *http.Client
	apiKey  string
	model   string
	baseURL string
}

// NewClient creates a chat-completion backend. Empty values take the defaults.
func NewClient(apiKey, modelName, baseURL string, timeout time.Duration) *Client {
	if modelName == "" {
		modelName = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		model:   modelName,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Name identifies the backend in logs and metrics.
func (c *Client) Name() string { return "openai:" + c.model }

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
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

// AnalyzeMood sends text as the user message under the analysis system prompt.
func (c *Client) AnalyzeMood(ctx context.Context, text string) (*model.MoodAnalysisResult, error) {
	out, err := c.complete(ctx, llm.AnalysisSystemPrompt, text)
	if err != nil {
		return nil, err
	}
	return llm.DecodeAnalysis(out)
}

// GenerateAffirmation asks for {"affirmation": ...} for a mood description.
func (c *Client) GenerateAffirmation(ctx context.Context, mood string) (string, error) {
	out, err := c.complete(ctx, llm.AffirmationSystemPrompt, "Mood: "+mood)
	if err != nil {
		return "", err
	}
	return llm.DecodeAffirmation(out)
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    temperature,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return "", llm.NewPermanentError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", llm.NewPermanentError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		err := fmt.Errorf("openai: unexpected status %s: %s", resp.Status, string(msg))
		// Client errors other than throttling will fail the same way again.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return "", llm.NewPermanentError(err)
		}
		return "", err
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", llm.ErrEmptyResponse
	}
	return out.Choices[0].Message.Content, nil
}
