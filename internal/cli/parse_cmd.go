package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/tabi/internal/cli/formatter"
	"github.com/alexanderramin/tabi/internal/export"
	"github.com/spf13/cobra"
)

func newParseCmd(app *App) *cobra.Command {
	var icsPath, date string

	cmd := &cobra.Command{
		Use:   "parse [FILE]",
		Short: "Parse a pasted schedule into itinerary items",
		Long: `Parse reads a free-text schedule from FILE (or stdin) and prints the
items it found, one per line that carries a time. With --ics the items
are also written as an iCalendar file ("-" for stdout).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			day, err := parseDay(date, app.now())
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}

			items := app.Parser.Parse(text)
			n, err := app.Store.Merge(items)
			if err != nil {
				return fmt.Errorf("importing items: %w", err)
			}
			app.Log.Debug("parsed schedule", "lines_with_time", len(items), "imported", n)

			if icsPath == "" {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatParsedItems(app.Store.Snapshot()))
				return nil
			}

			doc, err := export.ICS(app.Store.Snapshot(), day, app.now())
			if err != nil {
				return fmt.Errorf("exporting calendar: %w", err)
			}
			if icsPath == "-" {
				_, err = io.WriteString(cmd.OutOrStdout(), doc)
				return err
			}
			if err := os.WriteFile(icsPath, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", icsPath, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatParsedItems(app.Store.Snapshot()))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Dim("calendar written to"), icsPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&icsPath, "ics", "", "write the items as an iCalendar file (\"-\" for stdout)")
	cmd.Flags().StringVar(&date, "date", "", "day of the itinerary for --ics (YYYY-MM-DD, default today)")

	return cmd
}

// readInput returns the contents of the file named in args, or stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}
