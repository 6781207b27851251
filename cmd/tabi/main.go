package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/tabi/internal/cli"
	"github.com/alexanderramin/tabi/internal/llm"
	"github.com/alexanderramin/tabi/internal/suggest"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal; real environment variables still apply.
	_ = godotenv.Load()

	logger := newLogger(os.Stderr, os.Getenv("TABI_LOG_LEVEL"))
	slog.SetDefault(logger)

	svc, gatewayErr := newSuggestService(llm.LoadConfig(), logger)
	app := cli.NewApp(svc, gatewayErr, logger)
	return cli.NewRootCmd(app).Execute()
}

// newSuggestService builds the gateway for cfg. Without a usable gateway
// the shell still edits itineraries; the error is shown when a suggestion
// is requested, so it is only logged at info here.
func newSuggestService(cfg llm.LLMConfig, logger *slog.Logger) (*suggest.Service, error) {
	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LogCalls {
		observer = llm.NewLogObserver(logger)
	}

	gateway, err := llm.NewGateway(cfg, observer)
	if err != nil {
		logger.Info("llm gateway unavailable", "provider", cfg.Provider, "error", err)
		return nil, err
	}
	return suggest.NewService(gateway), nil
}

// newLogger writes text records to w. The default level is warn so the
// interactive shell is not interleaved with routine records.
func newLogger(w io.Writer, level string) *slog.Logger {
	logLevel := slog.LevelWarn
	if level != "" {
		if err := logLevel.UnmarshalText([]byte(level)); err != nil {
			logLevel = slog.LevelWarn
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}
