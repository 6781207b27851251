package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// GenerateRequest holds the parameters for a single generation call.
type GenerateRequest struct {
	Model        string // empty uses the configured model
	SystemPrompt string
	UserPrompt   string
}

// GenerateResponse holds the result of a generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// Gateway is the text-generation service used to produce suggestions.
type Gateway interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// attemptFunc performs one provider call and returns the text and the
// model that produced it.
type attemptFunc func(ctx context.Context) (text, model string, err error)

// runner carries the timeout, retry and observer behaviour shared by all
// provider clients.
type runner struct {
	cfg      LLMConfig
	observer Observer
}

func newRunner(cfg LLMConfig, observer Observer) runner {
	if observer == nil {
		observer = NoopObserver{}
	}
	return runner{cfg: cfg, observer: observer}
}

func (r runner) run(ctx context.Context, model string, attempt attemptFunc) (*GenerateResponse, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout())
	defer cancel()

	var lastErr error
	attempts := 1 + r.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		text, respModel, err := attempt(ctx)
		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrEmptyResponse
		}
		if err == nil {
			latency := time.Since(start).Milliseconds()
			if respModel == "" {
				respModel = model
			}
			r.observer.OnCallComplete(LLMCallEvent{
				Provider:  r.cfg.Provider,
				Model:     respModel,
				LatencyMs: latency,
				Success:   true,
			})
			return &GenerateResponse{Text: text, Model: respModel, LatencyMs: latency}, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}

	err := r.classify(ctx, lastErr)
	r.observer.OnCallComplete(LLMCallEvent{
		Provider:  r.cfg.Provider,
		Model:     model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(err),
	})
	return nil, err
}

func (r runner) classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s", ErrTimeout, r.cfg.Timeout())
		}
		return ctxErr
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", ErrQuotaExceeded, apiErr)
		case apiErr.StatusCode < 500:
			return apiErr
		}
	}
	if errors.Is(err, ErrEmptyResponse) {
		return err
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
}

// postJSON sends body as JSON and decodes a 200 response into out. Any
// other status becomes an *APIError whose message is taken from the
// response via errMessage.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body, out any, errMessage func([]byte) string) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(respBody))
		if errMessage != nil {
			if m := errMessage(respBody); m != "" {
				msg = m
			}
		}
		return &APIError{StatusCode: httpResp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrQuotaExceeded):
		return "QUOTA"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}
