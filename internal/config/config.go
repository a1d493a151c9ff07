package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mohamedfarez/ai-twin/backend/internal/service/llm"
)

// Config aggregates every setting the service reads from the environment.
type Config struct {
	Server    ServerConfig
	Engine    EngineConfig
	Providers ProvidersConfig
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	engine, err := loadEngineConfig()
	if err != nil {
		return nil, err
	}

	providers, err := loadProvidersConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Engine: engine, Providers: providers}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// EngineConfig selects the persona variant and the session idle TTL.
type EngineConfig struct {
	PersonaID  string
	SessionTTL time.Duration
}

func loadEngineConfig() (EngineConfig, error) {
	ttlMinutes, err := parseOptionalIntEnv("SESSION_TTL_MINUTES")
	if err != nil {
		return EngineConfig{}, err
	}

	ttl := 30 * time.Minute
	if ttlMinutes != nil {
		if *ttlMinutes < 1 {
			return EngineConfig{}, fmt.Errorf("SESSION_TTL_MINUTES must be at least 1, got %d", *ttlMinutes)
		}
		ttl = time.Duration(*ttlMinutes) * time.Minute
	}

	return EngineConfig{
		PersonaID:  getEnvOrDefault("PERSONA", "personal"),
		SessionTTL: ttl,
	}, nil
}

// ProvidersConfig carries one credential + endpoint per provider. A missing
// credential never fails Load; that provider simply fails its first call and
// cools down like any other failure.
type ProvidersConfig struct {
	OpenAIKey   string
	OpenAIModel string

	GeminiKey   string
	GeminiModel string

	ArkKey     string
	ArkModel   string
	ArkBaseURL string
	ArkRegion  string

	Temperature *float32
	MaxTokens   *int
}

func loadProvidersConfig() (ProvidersConfig, error) {
	temperature, err := parseOptionalFloat32Env("LLM_TEMPERATURE")
	if err != nil {
		return ProvidersConfig{}, err
	}
	if temperature == nil {
		def := float32(0.7)
		temperature = &def
	}

	maxTokens, err := parseOptionalIntEnv("LLM_MAX_TOKENS")
	if err != nil {
		return ProvidersConfig{}, err
	}
	if maxTokens == nil {
		def := 1000
		maxTokens = &def
	}

	return ProvidersConfig{
		OpenAIKey:   strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel: getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiKey:   strings.TrimSpace(os.Getenv("GOOGLE_AI_STUDIO_KEY")),
		GeminiModel: getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		ArkKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		ArkModel:    strings.TrimSpace(os.Getenv("ARK_MODEL")),
		ArkBaseURL:  getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		ArkRegion:   getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}, nil
}

// Build constructs the ordered provider list for the orchestrator.
func (c ProvidersConfig) Build() []llm.Provider {
	return []llm.Provider{
		llm.NewOpenAI(llm.OpenAIConfig{
			APIKey:      c.OpenAIKey,
			Model:       c.OpenAIModel,
			Temperature: c.Temperature,
			MaxTokens:   c.MaxTokens,
		}),
		llm.NewGemini(llm.GeminiConfig{
			APIKey:      c.GeminiKey,
			Model:       c.GeminiModel,
			Temperature: c.Temperature,
			MaxTokens:   c.MaxTokens,
		}),
		llm.NewArk(llm.ArkConfig{
			APIKey:      c.ArkKey,
			Model:       c.ArkModel,
			BaseURL:     c.ArkBaseURL,
			Region:      c.ArkRegion,
			Temperature: c.Temperature,
			MaxTokens:   c.MaxTokens,
		}),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalFloat32Env(key string) (*float32, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	result := float32(val)
	return &result, nil
}
