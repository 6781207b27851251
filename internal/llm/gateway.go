package llm

import "fmt"

// NewGateway builds the Gateway for cfg.Provider and applies the rate
// limit and response cache when configured. The cache sits outside the
// limiter so cached answers are never delayed.
func NewGateway(cfg LLMConfig, observer Observer) (Gateway, error) {
	if observer == nil {
		observer = NoopObserver{}
	}

	var (
		gw  Gateway
		err error
	)
	switch cfg.Provider {
	case ProviderGemini:
		gw, err = NewGeminiClient(cfg, observer)
	case ProviderOpenAI:
		gw, err = NewOpenAIClient(cfg, observer)
	case ProviderOllama:
		gw = NewOllamaClient(cfg, observer)
	default:
		return nil, fmt.Errorf("unknown llm provider %q (want gemini, ollama or openai)", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	gw = NewRateLimitedGateway(gw, cfg.MinInterval)
	gw = NewCachingGateway(gw, cfg.CacheTTL, cfg.Provider, observer)
	return gw, nil
}
