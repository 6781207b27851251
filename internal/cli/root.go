package cli

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/tabi/internal/importer"
	"github.com/alexanderramin/tabi/internal/itinerary"
	"github.com/alexanderramin/tabi/internal/suggest"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// App holds the state and services shared by CLI commands and the shell.
type App struct {
	Store  *itinerary.Store
	Parser *importer.Parser

	// Suggest is nil when no gateway could be configured; GatewayErr then
	// explains why and is reported when a suggestion is requested.
	Suggest    *suggest.Service
	GatewayErr error

	// HistoryPath is where shell command history is kept; empty disables it.
	HistoryPath string

	Log           *slog.Logger
	IsInteractive func() bool
	Now           func() time.Time
}

// NewApp creates an App with an empty itinerary and default helpers.
func NewApp(svc *suggest.Service, gatewayErr error, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &App{
		Store:         itinerary.NewStore(),
		Parser:        importer.NewParser(),
		Suggest:       svc,
		GatewayErr:    gatewayErr,
		HistoryPath:   defaultHistoryPath(),
		Log:           log,
		IsInteractive: stdinIsTerminal,
		Now:           time.Now,
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// NewRootCmd creates the top-level "tabi" command and registers all
// subcommands against the provided App. Run bare on a terminal it opens
// the interactive shell.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tabi",
		Short: "Itinerary planner with AI re-planning",
		Long: `tabi keeps a one-day itinerary, imports schedules pasted as free text,
and asks an AI model for an alternative plan or nearby spots when
something goes wrong on the trip.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runShell(app)
		},
	}

	root.AddCommand(
		newShellCmd(app),
		newParseCmd(app),
		newSuggestCmd(app),
		newTemplatesCmd(app),
	)

	return root
}
