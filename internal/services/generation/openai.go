package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/socialchef/cookmate/internal/httpclient"
	"github.com/socialchef/cookmate/internal/metrics"
	"github.com/socialchef/cookmate/internal/services/ai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"
)

type chatEndpoint struct {
	name    string
	baseURL string
	model   string
}

var chatEndpoints = map[ProviderType]chatEndpoint{
	ProviderGroq:     {name: "Groq", baseURL: "https://api.groq.com/openai/v1", model: "llama-3.3-70b-versatile"},
	ProviderCerebras: {name: "Cerebras", baseURL: "https://api.cerebras.ai/v1", model: "gpt-oss-120b"},
	ProviderOpenAI:   {name: "OpenAI", baseURL: "https://api.openai.com/v1", model: "gpt-4o-mini"},
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatProvider implements TextGenerator on an OpenAI-compatible chat completions API.
type ChatProvider struct {
	provider ProviderType
	endpoint chatEndpoint
	apiKey   string
	client   *http.Client
}

// NewChatProvider returns a provider for groq, cerebras or openai. Unknown types use groq.
func NewChatProvider(provider ProviderType, apiKey string) *ChatProvider {
	ep, ok := chatEndpoints[provider]
	if !ok {
		provider = ProviderGroq
		ep = chatEndpoints[ProviderGroq]
	}
	return &ChatProvider{
		provider: provider,
		endpoint: ep,
		apiKey:   apiKey,
		client:   httpclient.New(httpclient.DefaultTimeout),
	}
}

// WithBaseURL overrides the API base URL.
func (p *ChatProvider) WithBaseURL(url string) *ChatProvider {
	p.endpoint.baseURL = strings.TrimSuffix(url, "/")
	return p
}

func (p *ChatProvider) Type() ProviderType {
	return p.provider
}

// GenerateJSON sends the schema as a system instruction. json_object mode is only
// requested for object schemas since it rejects top-level arrays.
func (p *ChatProvider) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	startTime := time.Now()
	defer func() {
		metrics.AIGenerationDuration.Record(ctx, time.Since(startTime).Seconds(),
			metric.WithAttributes(attribute.String("provider", string(p.provider))))
	}()

	req := chatRequest{
		Model: p.endpoint.model,
		Messages: []chatMessage{
			{Role: "system", Content: ai.DescribeSchema(schema)},
			{Role: "user", Content: prompt},
		},
	}
	if schema != nil && schema.Type == genai.TypeObject {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(
		httpclient.WithProvider(ctx, p.endpoint.name),
		http.MethodPost,
		p.endpoint.baseURL+"/chat/completions",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%s API error (status %d): %s", p.endpoint.name, resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode %s response: %w", p.endpoint.name, err)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no response from %s", p.endpoint.name)
	}

	return chatResp.Choices[0].Message.Content, nil
}
