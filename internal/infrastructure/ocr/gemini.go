package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/chouchef/chouchef-api/internal/core/domain"
)

const (
	DefaultModel = "gemini-1.5-flash"

	transcriptionPrompt = "Transcribe all printed or handwritten text visible in this image, " +
		"line by line, exactly as written. Reply with the text only. " +
		"If there is no text, reply with an empty message."
)

// GeminiDetector extracts text from images through the Gemini API.
type GeminiDetector struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiDetector(ctx context.Context, apiKey, model string) (*GeminiDetector, error) {
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	m := client.GenerativeModel(model)
	m.SetTemperature(0)
	return &GeminiDetector{client: client, model: m}, nil
}

func (d *GeminiDetector) DetectText(ctx context.Context, image []byte, mimeType string) (string, error) {
	resp, err := d.model.GenerateContent(ctx,
		genai.ImageData(imageFormat(mimeType), image),
		genai.Text(transcriptionPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTextDetection, err)
	}
	return responseText(resp)
}

func (d *GeminiDetector) Close() error {
	return d.client.Close()
}

// imageFormat turns a MIME type into the subtype genai.ImageData expects.
func imageFormat(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	format := strings.TrimPrefix(mimeType, "image/")
	switch format {
	case "", "application/octet-stream":
		return "jpeg"
	case "jpg":
		return "jpeg"
	}
	return format
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no content generated", domain.ErrTextDetection)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String()), nil
}
