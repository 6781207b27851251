package llm

import (
	"context"
	"net/http"
	"strings"
)

// ollamaClient implements Gateway using the Ollama HTTP API.
type ollamaClient struct {
	runner
	endpoint string
	model    string
	http     *http.Client
}

// NewOllamaClient creates a Gateway that talks to a local Ollama instance.
func NewOllamaClient(cfg LLMConfig, observer Observer) Gateway {
	cfg.Provider = ProviderOllama
	return &ollamaClient{
		runner:   newRunner(cfg, observer),
		endpoint: strings.TrimRight(cfg.ResolvedEndpoint(), "/"),
		model:    cfg.ResolvedModel(),
		http:     newHTTPClient(),
	}
}

// ollamaRequest is the JSON body sent to POST /api/generate.
type ollamaRequest struct {
	Model  string `json:"model"`
	System string `json:"system,omitempty"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// ollamaResponse is the JSON body returned by POST /api/generate (non-streaming).
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	model := c.model
	if req.Model != "" {
		model = req.Model
	}
	body := ollamaRequest{
		Model:  model,
		System: req.SystemPrompt,
		Prompt: req.UserPrompt,
		Stream: false,
	}

	return c.run(ctx, model, func(ctx context.Context) (string, string, error) {
		var resp ollamaResponse
		if err := postJSON(ctx, c.http, c.endpoint+"/api/generate", nil, body, &resp, nil); err != nil {
			return "", "", err
		}
		return resp.Response, resp.Model, nil
	})
}
