package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"logsim/hdl"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "parse and validate a circuit description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "read source")
		}
		n, diags := hdl.Compile(bytes.NewReader(src))
		printDiags(args[0], src, diags)
		if n == nil {
			return errors.Errorf("%s: validation failed", args[0])
		}
		if verbose {
			fmt.Printf("%d devices, %d connections, %d monitors\n",
				n.Len(), len(n.Connections()), len(n.Monitors()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// printDiags prints every diagnostic with the offending source line and
// a caret under the reported column.
func printDiags(path string, src []byte, diags []hdl.Diag) {
	lines := strings.Split(string(src), "\n")
	for _, d := range diags {
		style := errStyle
		if d.Severity == hdl.Warning {
			style = warnStyle
		}
		fmt.Fprintf(os.Stderr, "%s:%s: %s: %s\n",
			path, d.Pos, style.Render(d.Severity.String()), d.Msg)
		if d.Pos.Line >= 1 && d.Pos.Line <= len(lines) {
			line := strings.ReplaceAll(lines[d.Pos.Line-1], "\t", " ")
			fmt.Fprintln(os.Stderr, line)
			fmt.Fprintln(os.Stderr, caretPad.Render(strings.Repeat(" ", d.Pos.Col-1))+"^")
		}
	}
}
