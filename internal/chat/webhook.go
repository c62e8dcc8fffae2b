package chat

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/aw-analyzer/internal/formatter"
)

// webhookPayload is the incoming-webhook request body: plain text plus
// an optional block-kit payload.
type webhookPayload struct {
	Text   string              `json:"text"`
	Blocks []formatter.Block   `json:"blocks,omitempty"`
}

// PostMessage sends a block-structured message to the configured
// incoming webhook URL. The caller is responsible for having already run
// the blocks through formatter.Validate; PostMessage re-checks fatal
// violations and refuses to send rather than silently truncating.
func PostMessage(ctx context.Context, client HTTPClient, webhookURL, fallbackText string, blocks []formatter.Block) error {
	if webhookURL == "" {
		return configError("chat webhook URL is not configured")
	}

	if violations := formatter.Fatal(formatter.Validate(blocks)); len(violations) > 0 {
		return fmt.Errorf("refusing to send: %d block validation violation(s): %v", len(violations), violations)
	}

	payload := webhookPayload{Text: fallbackText, Blocks: blocks}
	body, status, err := client.PostJSON(ctx, webhookURL, payload)
	if err != nil {
		return httpError("posting to chat webhook", err)
	}
	if status < 200 || status >= 300 {
		return httpError(fmt.Sprintf("chat webhook returned status %d: %s", status, string(body)), nil)
	}
	return nil
}
