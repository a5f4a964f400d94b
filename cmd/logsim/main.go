// Command logsim compiles circuit description files and runs the
// simulator over them. It is a thin consumer of the netlist and trace
// interfaces: nothing here influences simulation semantics.
//
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	caretPad  = lipgloss.NewStyle().Faint(true)
)

var rootCmd = &cobra.Command{
	Use:   "logsim",
	Short: "compile and simulate circuit description files",
	Long: `logsim parses a circuit description (devices, connections,
monitors), validates it against the per-device semantic rules and runs
a deterministic cycle-based simulation of the resulting network.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "engine config file (default: ./logsim.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
