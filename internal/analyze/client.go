package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/marcosremar/autopodcast-editor-sub002/internal/timeline"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 2 * time.Minute
)

const systemPrompt = `You are a podcast editor reviewing transcript segments.
For the given segment, respond with a JSON object containing:
"interest_score" (1-10), "clarity_score" (1-10),
"is_tangent" (bool), "is_repetition" (bool), "has_error" (bool).
Respond with the JSON object only.`

// Config configures the LLM analysis client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client scores segments through an OpenAI-compatible chat completions API.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates an analysis client. The API key falls back to the
// OPENAI_API_KEY environment variable when unset.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.APIKey == "" {
		cfg.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat responseFmt   `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFmt struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze asks the model to score one segment and parses the JSON reply.
func (c *Client) Analyze(ctx context.Context, seg timeline.Segment) (timeline.Analysis, error) {
	if c.cfg.APIKey == "" {
		return timeline.Analysis{}, fmt.Errorf("no API key configured")
	}

	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Segment [%.2fs - %.2fs]:\n%s", seg.Start, seg.End, seg.Text)},
		},
		ResponseFormat: responseFmt{Type: "json_object"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return timeline.Analysis{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return timeline.Analysis{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return timeline.Analysis{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return timeline.Analysis{}, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return timeline.Analysis{}, fmt.Errorf("decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return timeline.Analysis{}, fmt.Errorf("empty response choices")
	}

	return parseAnalysis(chat.Choices[0].Message.Content)
}

// parseAnalysis decodes the model's JSON reply and clamps scores into the
// 1..10 range the engine expects.
func parseAnalysis(content string) (timeline.Analysis, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var a timeline.Analysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &a); err != nil {
		return timeline.Analysis{}, fmt.Errorf("parse analysis JSON: %w", err)
	}

	a.InterestScore = clampScore(a.InterestScore)
	a.ClarityScore = clampScore(a.ClarityScore)
	return a, nil
}

func clampScore(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}
