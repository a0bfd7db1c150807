package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// maxStdinSize bounds how much of stdin is read for a single formula.
const maxStdinSize = 1 << 20

// readFormula returns the formula given on the command line, or reads it
// from stdin when no argument or "-" is given. Multiple arguments are joined
// with spaces so unquoted formulas work. A single trailing newline from
// stdin is dropped.
func readFormula(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxStdinSize))
	if err != nil {
		return "", withExitCode(ExitIOError, fmt.Errorf("read stdin: %w", err))
	}

	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}
