// Package imagegen calls the Gemini generative model to render an engraving preview
// from a customer photo.
package imagegen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel supports image output; text-only models reply with prose instead of a picture.
const DefaultModel = "gemini-2.5-flash-image"

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not configured")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Generate sends the prompt followed by the image and returns the first candidate's parts.
func (c *Client) Generate(ctx context.Context, prompt string, image []byte, mimeType string) (*Response, error) {
	model := c.client.GenerativeModel(c.model)

	resp, err := model.GenerateContent(ctx,
		genai.Text(prompt),
		genai.Blob{MIMEType: mimeType, Data: image},
	)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	return fromGenai(resp), nil
}

func fromGenai(resp *genai.GenerateContentResponse) *Response {
	out := &Response{}
	if resp == nil || len(resp.Candidates) == 0 {
		return out
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return out
	}

	for _, part := range candidate.Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			out.Parts = append(out.Parts, Part{Text: string(p)})
		case genai.Blob:
			out.Parts = append(out.Parts, Part{InlineData: &InlineData{MimeType: p.MIMEType, Data: p.Data}})
		default:
			slog.Debug("ignoring unexpected gemini part", "type", fmt.Sprintf("%T", p))
		}
	}

	return out
}
