package llm

import (
	"context"
	"log/slog"
)

// LLMCallEvent records metadata about a single gateway invocation.
type LLMCallEvent struct {
	Provider  Provider
	Model     string
	LatencyMs int64
	Success   bool
	Cached    bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes LLM call events to a structured logger.
type LogObserver struct {
	log *slog.Logger
}

// NewLogObserver creates an Observer that logs events through log.
func NewLogObserver(log *slog.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	status := "ok"
	level := slog.LevelInfo
	if !event.Success {
		status = "err:" + event.ErrorCode
		level = slog.LevelWarn
	}
	o.log.Log(context.Background(), level, "llm_call",
		"provider", string(event.Provider),
		"model", event.Model,
		"latency_ms", event.LatencyMs,
		"cached", event.Cached,
		"status", status,
	)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
