// Package generation holds the generative backends: Gemini for text and images and
// OpenAI-compatible chat endpoints as a text fallback.
package generation

import (
	"context"

	"google.golang.org/genai"
)

// ProviderType names a text generation backend.
type ProviderType string

const (
	ProviderGemini   ProviderType = "gemini"
	ProviderGroq     ProviderType = "groq"
	ProviderCerebras ProviderType = "cerebras"
	ProviderOpenAI   ProviderType = "openai"
)

// TextGenerator returns raw JSON text shaped by schema.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

// ImageGenerator returns the encoded bytes of one generated image.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, opts ImageOptions) ([]byte, error)
}

type ImageOptions struct {
	AspectRatio string
	MIMEType    string
}
