package llm

import (
	"os"
	"strconv"
	"time"
)

// Provider identifies the text-generation backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

const (
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com"
	defaultGeminiModel    = "gemini-2.5-flash"
	defaultOllamaEndpoint = "http://localhost:11434"
	defaultOllamaModel    = "llama3.2"
	defaultOpenAIModel    = "gpt-4o-mini"
)

// LLMConfig holds all configuration for the gateway. The API key is
// passed in explicitly; clients never look it up themselves.
type LLMConfig struct {
	Provider    Provider
	APIKey      string
	Endpoint    string // empty uses the provider default
	Model       string // empty uses the provider default
	TimeoutMs   int
	MaxRetries  int
	LogCalls    bool
	CacheTTL    time.Duration // 0 disables response caching
	MinInterval time.Duration // 0 disables call spacing
}

// DefaultConfig returns an LLMConfig with sensible defaults.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:   ProviderGemini,
		TimeoutMs:  60000,
		MaxRetries: 1,
	}
}

// LoadConfig reads gateway configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("TABI_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(v)
	}
	if v := os.Getenv("TABI_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("TABI_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("TABI_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TABI_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("TABI_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("TABI_LLM_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.CacheTTL = d
		}
	}
	if v := os.Getenv("TABI_LLM_MIN_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.MinInterval = d
		}
	}

	cfg.APIKey = firstEnv(apiKeyVars(cfg.Provider)...)
	return cfg
}

// apiKeyVars lists the variables consulted for the provider's key, most
// specific first.
func apiKeyVars(p Provider) []string {
	switch p {
	case ProviderGemini:
		return []string{"TABI_LLM_API_KEY", "GEMINI_API_KEY", "API_KEY"}
	case ProviderOpenAI:
		return []string{"TABI_LLM_API_KEY", "OPENAI_API_KEY"}
	default:
		return []string{"TABI_LLM_API_KEY"}
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// ResolvedEndpoint returns the configured endpoint or the provider default.
func (c LLMConfig) ResolvedEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	switch c.Provider {
	case ProviderGemini:
		return defaultGeminiEndpoint
	case ProviderOllama:
		return defaultOllamaEndpoint
	default:
		return ""
	}
}

// ResolvedModel returns the configured model or the provider default.
func (c LLMConfig) ResolvedModel() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderOllama:
		return defaultOllamaModel
	case ProviderOpenAI:
		return defaultOpenAIModel
	default:
		return defaultGeminiModel
	}
}

// Timeout returns the request timeout as a duration.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
