package analyzer

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
)

const (
	apiURL        = "https://api.anthropic.com/v1/messages"
	apiVersion    = "2023-06-01"
	defaultModel  = "claude-sonnet-4-20250514"
	maxTokens     = 1024
	requestTimeout = 30 * time.Second
)

const dailySystemPrompt = `You are a calm, concise personal-productivity coach reviewing one day of a developer's computer-activity metrics.

You are given total active seconds, the longest continuous work span in seconds, and the top applications by time spent. Write a short, specific, non-judgmental analysis.

Output valid JSON matching exactly this schema, with no other text:
{
  "summary": "one or two sentences describing the day",
  "insights": ["one to four short specific observations"],
  "tip": "one actionable, encouraging suggestion for tomorrow"
}`

const weeklySystemPrompt = `You are a calm, concise personal-productivity coach reviewing one week of a developer's computer-activity metrics, including sleep/wake timing and top projects worked on.

Output valid JSON matching exactly this schema, with no other text:
{
  "title": "a short title for the week",
  "summary": "two to three sentences summarizing the week",
  "insights": ["one to four short specific observations"],
  "nextAction": "one concrete suggestion for next week"
}`

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
	Error   *apiErrorBody  `json:"error,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// callLLM sends one request to the Messages API and returns the raw text
// of the response, expected to be a single JSON object.
func callLLM(ctx context.Context, cfg Config, systemPrompt, userPrompt string) (string, error) {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	reqBody := messagesRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages:  []message{{Role: "user", Content: userPrompt}},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", apiError("marshaling analyzer request", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", apiError("building analyzer request", err)
	}
	req.Header.Set("x-api-key", cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("content-type", "application/json")

	client := &http.Client{Timeout: requestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", apiError("calling analyzer API", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apiError("reading analyzer API response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apiError(fmt.Sprintf("analyzer API returned status %d: %s", resp.StatusCode, string(respBytes)), nil)
	}

	var parsed messagesResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", apiError("decoding analyzer API response envelope", err)
	}
	if parsed.Error != nil {
		return "", apiError(fmt.Sprintf("analyzer API error %s", parsed.Error.Type), errors.New(parsed.Error.Message))
	}

	var text strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", apiError("analyzer API response had no text content", nil)
	}
	return text.String(), nil
}

// stripCodeFence removes a leading/trailing markdown code fence, if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSuffix(s, "```")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
