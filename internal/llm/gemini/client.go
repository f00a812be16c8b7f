package gemini

import (
	"context"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"uigen-backend/internal/llm"
	"uigen-backend/internal/project"
)

const defaultModel = "gemini-2.0-flash"

// Client is a thin wrapper around the official genai client.
type Client struct {
	cli   *genai.Client
	model string
}

// NewClient constructs a Gemini-backed generation provider.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Client{cli: cli, model: model}, nil
}

// Live reports true: repair regeneration is worth a shot against a real
// model.
func (*Client) Live() bool { return true }

// GenerateProject sends the combined prompt and requests application/json.
func (c *Client) GenerateProject(ctx context.Context, input llm.Input) ([]project.File, error) {
	full := llm.SystemPrompt() + "\n\n" + llm.UserPrompt(input)

	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("gemini response empty content")
	}
	return llm.ParseProjectJSON([]byte(text))
}
