package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tabi/internal/cli/formatter"
	"github.com/alexanderramin/tabi/internal/domain"
	"github.com/alexanderramin/tabi/internal/llm"
	"github.com/alexanderramin/tabi/internal/suggest"
	"github.com/spf13/cobra"
)

func newSuggestCmd(app *App) *cobra.Command {
	var (
		planPath    string
		problem     string
		constraints string
		mode        string
		templates   []int
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Ask the AI for an alternative plan or nearby spots",
		Long: `Suggest sends the itinerary (from --plan, a pasted schedule file), the
problem and the constraints to the configured AI model and prints the
suggestion it returns. When neither problem nor constraints are given on
a terminal, a form asks for them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if planPath != "" {
				text, err := readInput(cmd, []string{planPath})
				if err != nil {
					return err
				}
				if _, err := app.Store.Merge(app.Parser.Parse(text)); err != nil {
					return fmt.Errorf("importing plan: %w", err)
				}
			}

			for _, n := range templates {
				if n < 1 || n > len(suggest.ConstraintTemplates) {
					return fmt.Errorf("--template must be between 1 and %d", len(suggest.ConstraintTemplates))
				}
				constraints = suggest.AppendTemplate(constraints, suggest.ConstraintTemplates[n-1])
			}

			in := suggestionInputs{Problem: problem, Constraints: constraints, Mode: domain.SuggestionMode(mode)}
			if strings.TrimSpace(problem) == "" && strings.TrimSpace(constraints) == "" && app.interactive() {
				if err := suggestionForm(&in).Run(); err != nil {
					return err
				}
			}

			text, err := runSuggestion(cmd, app, in)
			suggestion, message := suggest.Outcome(text, err)
			if message != "" {
				app.Log.Debug("suggestion failed", "error", err)
				return errors.New(message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), suggestion)
			return nil
		},
	}

	cmd.Flags().StringVar(&planPath, "plan", "", "file with the itinerary as free text")
	cmd.Flags().StringVar(&problem, "problem", "", "what went wrong or what needs changing")
	cmd.Flags().StringVar(&constraints, "constraints", "", "constraints or wishes for the new plan")
	cmd.Flags().StringVar(&mode, "mode", string(domain.ModeSchedule), "suggestion kind: schedule or spots")
	cmd.Flags().IntSliceVar(&templates, "template", nil, "append constraint template N (see 'tabi templates')")

	return cmd
}

// runSuggestion builds the request from the store and waits for the
// gateway, showing a spinner on interactive terminals.
func runSuggestion(cmd *cobra.Command, app *App, in suggestionInputs) (string, error) {
	req, err := suggest.Build(app.Store.Snapshot(), in.Problem, in.Constraints, in.Mode)
	if err != nil {
		return "", err
	}
	if app.Suggest == nil {
		return "", gatewayUnavailable(app)
	}

	if app.interactive() {
		stop := formatter.StartSpinner(cmd.ErrOrStderr(), "提案を生成中...")
		defer stop()
	}
	return app.Suggest.Suggest(cmd.Context(), req)
}

func gatewayUnavailable(app *App) error {
	if app.GatewayErr != nil {
		return app.GatewayErr
	}
	return llm.ErrMissingAPIKey
}
