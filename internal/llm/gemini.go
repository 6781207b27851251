package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// geminiClient implements Gateway using the Gemini generateContent REST API.
type geminiClient struct {
	runner
	endpoint string
	model    string
	apiKey   string
	http     *http.Client
}

// NewGeminiClient creates a Gateway backed by the Gemini API. The key is
// taken from cfg.APIKey.
func NewGeminiClient(cfg LLMConfig, observer Observer) (Gateway, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini", ErrMissingAPIKey)
	}
	cfg.Provider = ProviderGemini
	return &geminiClient{
		runner:   newRunner(cfg, observer),
		endpoint: strings.TrimRight(cfg.ResolvedEndpoint(), "/"),
		model:    cfg.ResolvedModel(),
		apiKey:   cfg.APIKey,
		http:     newHTTPClient(),
	}, nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

// geminiRequest is the JSON body sent to models/{model}:generateContent.
type geminiRequest struct {
	SystemInstruction *geminiContent `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	ModelVersion string `json:"modelVersion"`
}

type geminiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	model := c.model
	if req.Model != "" {
		model = req.Model
	}

	body := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.UserPrompt}}}},
	}
	if req.SystemPrompt != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.SystemPrompt}}}
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.endpoint, url.PathEscape(model))
	headers := map[string]string{"x-goog-api-key": c.apiKey}

	return c.run(ctx, model, func(ctx context.Context) (string, string, error) {
		var resp geminiResponse
		if err := postJSON(ctx, c.http, endpoint, headers, body, &resp, geminiErrorMessage); err != nil {
			return "", "", err
		}
		return resp.text(), resp.ModelVersion, nil
	})
}

// text concatenates the parts of the first candidate.
func (r geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

func geminiErrorMessage(body []byte) string {
	var e geminiErrorBody
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	if e.Error.Status != "" && e.Error.Message != "" {
		return e.Error.Status + ": " + e.Error.Message
	}
	return e.Error.Message
}
