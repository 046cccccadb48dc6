package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/listify/backend/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Client handles communication with an OpenAI-compatible chat
// completions API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	rateLimiter *rate.Limiter
	logger      *logrus.Entry
}

// NewClient creates a new AI completions client
func NewClient(apiKey, baseURL, model string, temperature float64, logger *logrus.Logger) *Client {
	// Completion calls are slow and token-billed; pace them to roughly
	// one per second with a small burst.
	limiter := rate.NewLimiter(rate.Limit(1), 3)

	return &Client{
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
		rateLimiter: limiter,
		logger:      logger.WithField("component", "ai"),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt pair and returns the raw reply content.
// Single attempt; transient failures surface as ErrUpstreamRequest.
func (c *Client) Complete(ctx context.Context, req *domain.CompletionRequest) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Temperature: c.temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamRequest, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   Truncate(string(respBody), 300),
		}).Warn("completion request failed")
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamRequest, resp.StatusCode, Truncate(string(respBody), 300))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v: %s", domain.ErrUpstreamParse, err, Truncate(string(respBody), 300))
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", domain.ErrUpstreamEmpty
	}

	return parsed.Choices[0].Message.Content, nil
}

// Truncate shortens a string for log/diagnostic payloads
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
