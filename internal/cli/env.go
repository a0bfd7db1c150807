package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/yaklabco/formulint/internal/configloader"
	"github.com/yaklabco/formulint/internal/ui/pretty"
)

// unsetValue marks variables not present in the environment.
const unsetValue = "-"

func newEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables formulint reads",
		Long: `List every FORMULINT_* environment variable with its current value and
the setting it overrides. Environment variables take precedence over config
files and are overridden by command-line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))

			rows := make([][]string, 0)
			for _, envVar := range configloader.ListEnvVars() {
				value := envVar.Value
				if value == "" {
					value = unsetValue
				}
				rows = append(rows, []string{envVar.Name, value, envVar.Description})
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(styles.TableBorder).
				Headers("VARIABLE", "VALUE", "DESCRIPTION").
				Rows(rows...)

			_, err := fmt.Fprintln(out, t.String())
			return err
		},
	}
}
