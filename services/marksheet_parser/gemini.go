package marksheet_parser

import (
	"context"
	"errors"
	"fmt"

	"admission-portal/config"

	"google.golang.org/genai"
)

// ErrParserDisabled is returned when no Gemini API key is configured.
var ErrParserDisabled = errors.New("marksheet parser is not configured, set GEMINI_API_KEY")

const extractionPrompt = `Analyze this higher secondary (class XII) marksheet image and extract the following information. Return ONLY valid JSON.

Extract these fields from the image. If a field is missing or unclear, use an empty string for text and 0 for numbers.

Required JSON format:
{
"board": string,            // Name of the examination board
"roll_number": string,      // Roll number of the candidate
"obtained_marks": number,   // Grand total of marks obtained
"total_marks": number,      // Grand total of maximum marks
"year_of_passing": number   // Year of the examination, four digits
}`

// Extractor turns a marksheet image into the model's raw text answer.
type Extractor interface {
	Extract(ctx context.Context, image []byte, mimeType string) (string, error)
}

// GeminiExtractor asks a Gemini vision model to read the marksheet.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

func NewGeminiExtractor(ctx context.Context, cfg config.GeminiConfig) (*GeminiExtractor, error) {
	if cfg.APIKey == "" {
		return nil, ErrParserDisabled
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiExtractor{client: client, model: cfg.Model}, nil
}

func (g *GeminiExtractor) Extract(ctx context.Context, image []byte, mimeType string) (string, error) {
	content := &genai.Content{
		Parts: []*genai.Part{
			{Text: extractionPrompt},
			{InlineData: &genai.Blob{
				MIMEType: mimeType,
				Data:     image,
			}},
		},
	}

	result, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.1)),
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no content generated by the model")
	}

	text := result.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", errors.New("empty response from the model")
	}
	return text, nil
}
