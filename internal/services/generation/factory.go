package generation

import (
	"github.com/socialchef/cookmate/internal/config"
)

// NewTextGenerator wraps the Gemini provider with an OpenAI-compatible fallback when enabled.
func NewTextGenerator(cfg *config.Config, gemini TextGenerator) TextGenerator {
	if !cfg.Generation.FallbackEnabled {
		return gemini
	}
	secondary := NewChatProvider(ProviderType(cfg.Generation.FallbackProvider), cfg.FallbackKey())
	return NewFallbackGenerator(gemini, string(ProviderGemini), secondary, string(secondary.Type()))
}
