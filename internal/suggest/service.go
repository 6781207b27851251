package suggest

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/alexanderramin/tabi/internal/domain"
	"github.com/alexanderramin/tabi/internal/llm"
)

// ErrBusy is returned when a suggestion is requested while another one is
// still in flight.
var ErrBusy = errors.New("a suggestion request is already in progress")

const (
	// EmptyInputMessage is shown when neither problem nor constraints were given.
	EmptyInputMessage = "問題点や制約を入力してください。"

	// BusyMessage is shown when a request is refused because one is pending.
	BusyMessage = "提案を生成中です。しばらくお待ちください。"

	// InvalidInputMessage prefixes other validation failures.
	InvalidInputMessage = "入力内容を確認してください: "

	gatewayErrorPrefix = "エラーが発生しました: "
	gatewayErrorHint   = "\n\nAPIキーが有効か、または正しく設定されているか確認してください。"
)

// Result is the outcome of one suggestion request.
type Result struct {
	Text string
	Err  error
}

// Service dispatches built requests to the gateway, one at a time.
type Service struct {
	gateway  llm.Gateway
	inFlight atomic.Bool
}

// NewService creates a Service backed by gateway.
func NewService(gateway llm.Gateway) *Service {
	return &Service{gateway: gateway}
}

// Busy reports whether a request is outstanding.
func (s *Service) Busy() bool {
	return s.inFlight.Load()
}

// Suggest sends req and waits for the response text. It adds no timeout of
// its own; the gateway decides how long a call may take.
func (s *Service) Suggest(ctx context.Context, req *Request) (string, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer s.inFlight.Store(false)
	return s.generate(ctx, req)
}

// Start dispatches req in the background. The returned channel receives
// exactly one Result and is then closed.
func (s *Service) Start(ctx context.Context, req *Request) (<-chan Result, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		text, err := s.generate(ctx, req)
		// Release before publishing so a receiver can start the next request.
		s.inFlight.Store(false)
		ch <- Result{Text: text, Err: err}
	}()
	return ch, nil
}

func (s *Service) generate(ctx context.Context, req *Request) (string, error) {
	resp, err := s.gateway.Generate(ctx, llm.GenerateRequest{
		SystemPrompt: SystemInstruction,
		UserPrompt:   ComposeContents(req),
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Outcome maps a request result to exactly one of suggestion text or a
// message for the user. Gateway failures keep their detail so key and
// configuration problems can be diagnosed.
func Outcome(text string, err error) (suggestion, message string) {
	switch {
	case err == nil:
		return text, ""
	case errors.Is(err, domain.ErrEmptyInput):
		return "", EmptyInputMessage
	case errors.Is(err, ErrBusy):
		return "", BusyMessage
	case errors.As(err, new(*domain.ValidationError)):
		return "", InvalidInputMessage + err.Error()
	default:
		return "", gatewayErrorPrefix + err.Error() + gatewayErrorHint
	}
}
