// Copyright 2026 The logsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package logsim

// A Sample is one recorded level of a monitored signal at the end of a
// tick. Ticks are 1-based.
//
type Sample struct {
	Tick  int
	Level bool
}

// A Trace holds the waveform samples recorded for every monitored
// signal of one simulation run. It is append-only and owned by the
// Simulator; callers read it through the accessors below.
//
type Trace struct {
	names   []string
	samples [][]Sample
}

func newTrace(n *Netlist) *Trace {
	t := &Trace{
		names:   make([]string, len(n.monitors)),
		samples: make([][]Sample, len(n.monitors)),
	}
	for i, m := range n.monitors {
		t.names[i] = n.SignalName(m)
	}
	return t
}

// Signals returns the monitored signal names in monitor order.
//
func (t *Trace) Signals() []string { return t.names }

// Samples returns the samples recorded for the monitored signal name.
// It returns nil if name is not monitored.
//
func (t *Trace) Samples(name string) []Sample {
	for i, n := range t.names {
		if n == name {
			return t.samples[i]
		}
	}
	return nil
}

// Levels returns the bare level sequence for the monitored signal name,
// one entry per recorded tick.
//
func (t *Trace) Levels(name string) []bool {
	s := t.Samples(name)
	if s == nil {
		return nil
	}
	out := make([]bool, len(s))
	for i := range s {
		out[i] = s[i].Level
	}
	return out
}

// Len returns the number of ticks recorded so far.
//
func (t *Trace) Len() int {
	if len(t.samples) == 0 {
		return 0
	}
	return len(t.samples[0])
}

func (t *Trace) record(tick int, levels []bool) {
	for i, l := range levels {
		t.samples[i] = append(t.samples[i], Sample{Tick: tick, Level: l})
	}
}

func (t *Trace) reset() {
	for i := range t.samples {
		t.samples[i] = nil
	}
}
