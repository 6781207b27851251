package cli

import (
	"fmt"

	"github.com/alexanderramin/tabi/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTemplatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List constraint templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTemplates())
			return nil
		},
	}
}
