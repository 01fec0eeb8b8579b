package generation

import (
	"testing"

	"github.com/socialchef/cookmate/internal/config"
)

func TestNewTextGeneratorWithoutFallback(t *testing.T) {
	primary := new(mockTextGenerator)
	cfg := &config.Config{}
	cfg.SetGenerationDefaults()

	if got := NewTextGenerator(cfg, primary); got != TextGenerator(primary) {
		t.Errorf("Expected primary provider, got %T", got)
	}
}

func TestNewTextGeneratorWithFallback(t *testing.T) {
	cfg := &config.Config{CerebrasKey: "c"}
	cfg.SetGenerationDefaults()
	cfg.Generation.FallbackEnabled = true
	cfg.Generation.FallbackProvider = "cerebras"

	got := NewTextGenerator(cfg, new(mockTextGenerator))

	f, ok := got.(*FallbackGenerator)
	if !ok {
		t.Fatalf("Expected FallbackGenerator, got %T", got)
	}
	if f.secondaryName != "cerebras" {
		t.Errorf("Expected cerebras fallback, got %s", f.secondaryName)
	}
}
