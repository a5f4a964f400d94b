// Copyright 2026 The logsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package wavetest provides utility functions for testing circuits:
// compiling sources inside tests, running them for a fixed number of
// ticks and diffing the waveforms of two circuits that should behave
// identically.
//
package wavetest

import (
	"strings"
	"testing"

	"logsim"
	"logsim/hdl"
)

// MustCompile compiles src and fails the test on any error-severity
// diagnostic.
//
func MustCompile(t *testing.T, src string) *logsim.Netlist {
	t.Helper()
	n, diags := hdl.Compile(strings.NewReader(src))
	if n == nil {
		for _, d := range diags {
			t.Log(d)
		}
		t.Fatal("compilation failed")
	}
	return n
}

// Run compiles src and runs it for the given number of ticks, returning
// the recorded trace.
//
func Run(t *testing.T, src string, ticks int) *logsim.Trace {
	t.Helper()
	s, err := logsim.New(MustCompile(t, src), logsim.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Run(ticks); err != nil {
		t.Fatal(err)
	}
	return s.Trace()
}

// Levels formats a level sequence as a 0/1 string for readable diffs.
//
func Levels(levels []bool) string {
	var b strings.Builder
	for _, l := range levels {
		if l {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// CompareTraces compiles and runs two sources for the given tick count
// and compares the waveforms of their identically named monitored
// signals. Both sources must monitor the same signal names.
//
func CompareTraces(t *testing.T, src1, src2 string, ticks int) {
	t.Helper()
	t1 := Run(t, src1, ticks)
	t2 := Run(t, src2, ticks)

	n1, n2 := t1.Signals(), t2.Signals()
	if len(n1) != len(n2) {
		t.Fatalf("monitor count mismatch: %d != %d", len(n1), len(n2))
	}
	for _, name := range n1 {
		w1, w2 := Levels(t1.Levels(name)), Levels(t2.Levels(name))
		if w2 == "" {
			t.Errorf("signal %s not monitored by second circuit", name)
			continue
		}
		if w1 != w2 {
			t.Errorf("signal %s:\nwant %s\ngot  %s", name, w1, w2)
		}
	}
}
