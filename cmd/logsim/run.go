package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"logsim"
	"logsim/hdl"
)

var runTicks int

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "simulate a circuit description and print the waveforms",
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

		fc, err := loadConfig()
		if err != nil {
			return err
		}
		cfg, err := fc.engineConfig()
		if err != nil {
			return err
		}
		s, err := logsim.New(n, cfg)
		if err != nil {
			return err
		}
		for name, lvl := range fc.Switches {
			if err := s.SetSwitch(name, lvl != 0); err != nil {
				return err
			}
		}

		if verbose {
			fmt.Printf("session %s: %d devices, %d monitors, %d ticks\n",
				uuid.NewString(), n.Len(), len(n.Monitors()), runTicks)
		}
		if err := s.Run(runTicks); err != nil {
			return err
		}
		printTrace(s.Trace())
		return nil
	},
}

func init() {
	runCmd.Flags().IntVarP(&runTicks, "ticks", "n", 20, "number of ticks to simulate")
	rootCmd.AddCommand(runCmd)
}

// printTrace prints one 0/1 waveform line per monitored signal.
func printTrace(t *logsim.Trace) {
	w := 0
	for _, name := range t.Signals() {
		if len(name) > w {
			w = len(name)
		}
	}
	for _, name := range t.Signals() {
		var b strings.Builder
		for _, s := range t.Samples(name) {
			if s.Level {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		fmt.Printf("%s %s\n", nameStyle.Render(fmt.Sprintf("%-*s", w, name)), b.String())
	}
}
