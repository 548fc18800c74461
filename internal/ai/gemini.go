// README: Gemini text-generation client with JSON payload isolation.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-2.0-flash"

// Client wraps a Gemini generative model configured for JSON output.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient initializes a Gemini client. apiKey should come from environment
// configuration.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := c.GenerativeModel(defaultModel)

	// Force JSON responses; a low temperature keeps the itinerary structure
	// stable across calls.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.2)

	return &Client{client: c, model: model}, nil
}

// Close cleans up the underlying client resources.
func (c *Client) Close() {
	c.client.Close()
}

// Generate sends the prompt and returns the model's reply narrowed to its JSON
// span. Transport/HTTP failures surface as *UpstreamError, content-policy
// refusals as *SafetyBlockedError, and replies with no text payload as
// *MalformedResponseError. The returned string is not guaranteed to parse.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return "", &UpstreamError{StatusCode: apiErr.Code, Body: apiErr.Body, Err: err}
		}
		return "", &UpstreamError{Err: err}
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", &SafetyBlockedError{Reason: resp.PromptFeedback.BlockReason.String()}
	}

	text, ok := primaryText(resp)
	if !ok {
		// The expected candidate/part path was empty; scan everything for the
		// first part that carries text.
		text, ok = anyText(resp)
	}
	if !ok {
		return "", &MalformedResponseError{Detail: "no text part in response"}
	}

	return ExtractJSONBlock(text), nil
}

// GenerateDocument runs Generate and parses the reply into v, failing with
// *MalformedResponseError if the payload is not valid JSON.
func (c *Client) GenerateDocument(ctx context.Context, prompt string, v any) error {
	raw, err := c.Generate(ctx, prompt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return &MalformedResponseError{Detail: "response is not valid JSON", Err: err}
	}
	return nil
}

func primaryText(resp *genai.GenerateContentResponse) (string, bool) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", false
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", false
	}
	if txt, ok := parts[0].(genai.Text); ok && string(txt) != "" {
		return string(txt), true
	}
	return "", false
}

func anyText(resp *genai.GenerateContentResponse) (string, bool) {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok && string(txt) != "" {
				return string(txt), true
			}
		}
	}
	return "", false
}
