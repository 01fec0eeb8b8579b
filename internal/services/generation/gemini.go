package generation

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/socialchef/cookmate/internal/errors"
	"github.com/socialchef/cookmate/internal/httpclient"
	"github.com/socialchef/cookmate/internal/metrics"
	"github.com/socialchef/cookmate/internal/services/ai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"
)

// GeminiProvider implements TextGenerator and ImageGenerator on the Gemini API.
type GeminiProvider struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

type GeminiOption func(*genai.ClientConfig)

// WithBaseURL points the client at a different API host.
func WithBaseURL(url string) GeminiOption {
	return func(cc *genai.ClientConfig) {
		cc.HTTPOptions.BaseURL = url
	}
}

func WithHTTPClient(c *http.Client) GeminiOption {
	return func(cc *genai.ClientConfig) {
		cc.HTTPClient = c
	}
}

// NewGeminiProvider creates a Gemini-backed provider using the instrumented HTTP client.
func NewGeminiProvider(ctx context.Context, apiKey, textModel, imageModel string, opts ...GeminiOption) (*GeminiProvider, error) {
	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpclient.New(httpclient.DefaultTimeout),
	}
	for _, opt := range opts {
		opt(cc)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, apperrors.NewConfigurationError(fmt.Sprintf("failed to create Gemini client: %v", err), "GEMINI_CLIENT_INIT_FAILED")
	}

	return &GeminiProvider{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
	}, nil
}

// GenerateJSON asks the text model for a response constrained to schema.
func (p *GeminiProvider) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	startTime := time.Now()
	defer func() {
		metrics.AIGenerationDuration.Record(ctx, time.Since(startTime).Seconds(),
			metric.WithAttributes(attribute.String("provider", string(ProviderGemini))))
	}()

	resp, err := p.client.Models.GenerateContent(
		httpclient.WithProvider(ctx, "Gemini"),
		p.textModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	)
	if err != nil {
		return "", wrapGeminiError(err)
	}

	text := resp.Text()
	if text == "" {
		return "", apperrors.NewGenerationError("Gemini returned an empty response", "EMPTY_RESPONSE", nil)
	}
	return text, nil
}

// GenerateImage asks the image model for a single image.
func (p *GeminiProvider) GenerateImage(ctx context.Context, prompt string, opts ImageOptions) ([]byte, error) {
	startTime := time.Now()
	defer func() {
		metrics.ImageGenerationTime.Record(ctx, time.Since(startTime).Seconds(),
			metric.WithAttributes(attribute.String("aspect_ratio", opts.AspectRatio)))
	}()

	mimeType := opts.MIMEType
	if mimeType == "" {
		mimeType = ai.ImageMIMEType
	}

	resp, err := p.client.Models.GenerateImages(
		httpclient.WithProvider(ctx, "Imagen"),
		p.imageModel,
		prompt,
		&genai.GenerateImagesConfig{
			NumberOfImages: ai.ImageCount,
			OutputMIMEType: mimeType,
			AspectRatio:    opts.AspectRatio,
		},
	)
	if err != nil {
		return nil, wrapGeminiError(err)
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil || len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return nil, apperrors.NewGenerationError("Imagen returned no image", "EMPTY_IMAGE", nil)
	}
	return resp.GeneratedImages[0].Image.ImageBytes, nil
}

// wrapGeminiError keeps the upstream status visible to ClassifyError.
func wrapGeminiError(err error) error {
	if code := apiErrorCode(err); code != 0 {
		return &apperrors.AppError{
			Type:          apperrors.ErrorTypeGeneration,
			Message:       fmt.Sprintf("Gemini API error (status %d)", code),
			StatusCode:    code,
			ErrorCode:     "GEMINI_API_ERROR",
			IsOperational: true,
			Err:           err,
		}
	}
	return apperrors.NewGenerationError("Gemini request failed", "GEMINI_REQUEST_FAILED", err)
}
