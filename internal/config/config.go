package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	apperrors "github.com/socialchef/cookmate/internal/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	GeminiAPIKey string
	GroqKey      string
	OpenAIKey    string
	CerebrasKey  string

	SessionSecret string
	SessionTTL    time.Duration

	RedisURL    string
	ThemeStore  string
	ThemeFile   string
	SystemTheme string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string

	Port string

	Generation GenerationConfig
}

type GenerationConfig struct {
	TextModel          string  `yaml:"text_model"`
	ImageModel         string  `yaml:"image_model"`
	FallbackEnabled    bool    `yaml:"fallback_enabled"`
	FallbackProvider   string  `yaml:"fallback_provider"`
	ImageConcurrency   int     `yaml:"image_concurrency"`
	ImageRatePerSecond float64 `yaml:"image_rate_per_second"`
}

const (
	DefaultTextModel        = "gemini-2.5-flash"
	DefaultImageModel       = "imagen-3.0-generate-002"
	DefaultImageConcurrency = 8
	DefaultSessionTTL       = 30 * time.Minute
)

func Load() (*Config, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("API_KEY")
	}

	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		GeminiAPIKey:             apiKey,
		GroqKey:                  os.Getenv("GROQ_API_KEY"),
		OpenAIKey:                os.Getenv("OPENAI_API_KEY"),
		CerebrasKey:              os.Getenv("CEREBRAS_API_KEY"),
		SessionSecret:            os.Getenv("SESSION_SECRET"),
		RedisURL:                 os.Getenv("REDIS_URL"),
		ThemeStore:               os.Getenv("THEME_STORE"),
		ThemeFile:                os.Getenv("THEME_FILE"),
		SystemTheme:              os.Getenv("SYSTEM_THEME"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		Port:                     os.Getenv("PORT"),
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", ttl, err)
		}
		cfg.SessionTTL = d
	}

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	// Load from YAML file if available
	if err := cfg.LoadFromYAML(configFile); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	// Set defaults
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "cookmate"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.ThemeStore == "" {
		cfg.ThemeStore = "file"
	}
	if cfg.ThemeFile == "" {
		cfg.ThemeFile = "theme.yaml"
	}

	cfg.SetGenerationDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Generation GenerationConfig `yaml:"generation"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	g := yamlConfig.Generation
	if g.TextModel != "" {
		c.Generation.TextModel = g.TextModel
	}
	if g.ImageModel != "" {
		c.Generation.ImageModel = g.ImageModel
	}
	if g.FallbackEnabled {
		c.Generation.FallbackEnabled = g.FallbackEnabled
	}
	if g.FallbackProvider != "" {
		c.Generation.FallbackProvider = g.FallbackProvider
	}
	if g.ImageConcurrency > 0 {
		c.Generation.ImageConcurrency = g.ImageConcurrency
	}
	if g.ImageRatePerSecond > 0 {
		c.Generation.ImageRatePerSecond = g.ImageRatePerSecond
	}

	return nil
}

func (c *Config) SetGenerationDefaults() {
	if c.Generation.TextModel == "" {
		c.Generation.TextModel = DefaultTextModel
	}
	if c.Generation.ImageModel == "" {
		c.Generation.ImageModel = DefaultImageModel
	}
	if c.Generation.FallbackProvider == "" {
		c.Generation.FallbackProvider = "groq"
	}
	if c.Generation.ImageConcurrency <= 0 {
		c.Generation.ImageConcurrency = DefaultImageConcurrency
	}
}

// FallbackKey returns the credential for the configured fallback text provider.
func (c *Config) FallbackKey() string {
	switch c.Generation.FallbackProvider {
	case "openai":
		return c.OpenAIKey
	case "cerebras":
		return c.CerebrasKey
	default:
		return c.GroqKey
	}
}

// OTLPHeaders parses OTEL_EXPORTER_OTLP_HEADERS ("k1=v1,k2=v2").
func (c *Config) OTLPHeaders() map[string]string {
	if c.OtelExporterOTLPHeaders == "" {
		return nil
	}
	headers := make(map[string]string)
	for _, pair := range strings.Split(c.OtelExporterOTLPHeaders, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		headers[k] = strings.TrimSpace(v)
	}
	return headers
}

func (c *Config) validate() error {
	if c.GeminiAPIKey == "" {
		return apperrors.NewConfigurationError("GEMINI_API_KEY (or API_KEY) is required", "MISSING_API_KEY")
	}
	switch c.ThemeStore {
	case "memory", "file":
	case "redis":
		if c.RedisURL == "" {
			return apperrors.NewConfigurationError("REDIS_URL is required when THEME_STORE=redis", "MISSING_REDIS_URL")
		}
	default:
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown THEME_STORE %q", c.ThemeStore), "INVALID_THEME_STORE")
	}
	switch c.SystemTheme {
	case "", "light", "dark":
	default:
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown SYSTEM_THEME %q", c.SystemTheme), "INVALID_SYSTEM_THEME")
	}
	if c.Generation.FallbackEnabled && c.FallbackKey() == "" {
		return apperrors.NewConfigurationError(
			fmt.Sprintf("an API key for fallback provider %q is required when fallback is enabled", c.Generation.FallbackProvider),
			"MISSING_FALLBACK_KEY",
		)
	}
	return nil
}
