// Copyright 2026 The logsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package logsim

import (
	"sync"

	"github.com/pkg/errors"
)

// Policy selects the DTYPE behavior when SET and CLEAR are asserted in
// the same tick.
//
type Policy int

// SET/CLEAR conflict policies.
const (
	ClearWins Policy = iota
	SetWins
)

// Config carries engine options. The zero value selects sequential
// settling, a settle limit derived from the gate count, and the
// CLEAR-wins conflict policy.
//
type Config struct {
	// SettleLimit bounds the number of settling passes per tick.
	// 0 selects gate count + 2, enough for any acyclic network.
	SettleLimit int
	// Workers is the number of goroutines sharing one settling pass.
	// 0 or 1 evaluates sequentially. Parallel evaluation is observably
	// identical: every component reads only the previous pass's frame
	// and writes only its own output pins.
	Workers int
	// Policy resolves simultaneous SET and CLEAR assertion on a DTYPE.
	Policy Policy
}

// Reserved pins: every unconnected input reads constant low.
const (
	cstLow = iota
	cstHigh
	cstCount
)

// A component updates one device for one settling pass: it reads input
// pins from the read frame and writes its output pin into the write
// frame.
//
type component func(s *Simulator)

// source is the run-time state of a CLOCK, SWITCH or SIGGEN.
type source struct {
	dev   *Device
	pin   int
	level bool // switches only: current level
}

func (src *source) levelAt(tick int) bool {
	switch src.dev.Kind {
	case Clock:
		// low for Period ticks, then high for Period ticks
		return ((tick-1)/src.dev.Period)%2 == 1
	case SigGen:
		return src.dev.Waveform[(tick-1)%len(src.dev.Waveform)]
	}
	return src.level
}

// dff is the run-time state of a DTYPE.
type dff struct {
	data, clk, set, clear int // input pins
	q, qbar               int // output pins
	prevClk               bool
	out                   bool // current Q
}

// A Simulator runs one simulation session over a validated netlist.
// The netlist is exclusively owned by the session; concurrent sessions
// must each build their own Simulator.
//
type Simulator struct {
	n   *Netlist
	cfg Config

	s0, s1 []bool // pin state frames: s0 read, s1 write

	gates    []component
	sources  []*source
	switches map[string]*source
	dffs     []*dff

	pins    map[PortRef]int
	monPins []int
	monBuf  []bool
	trace   *Trace

	tick  int
	limit int

	mu sync.Mutex
}

// New builds a simulation session for n. The netlist must have passed
// semantic analysis: New checks only the invariants it depends on and
// fails on a netlist that was assembled by hand in a broken state.
//
func New(n *Netlist, cfg Config) (*Simulator, error) {
	s := &Simulator{
		n:        n,
		cfg:      cfg,
		switches: make(map[string]*source),
		trace:    newTrace(n),
	}

	// one pin per output port, in declaration order
	pins := make(map[PortRef]int)
	next := cstCount
	for i, d := range n.Devices() {
		for _, p := range d.Outputs() {
			pins[PortRef{Dev: i, Port: p}] = next
			next++
		}
	}
	s.pins = pins

	// fan-in: input port -> driving output pin
	drivers := make(map[PortRef]int)
	for _, c := range n.Connections() {
		src, ok := pins[c.Src]
		if !ok {
			return nil, errors.Errorf("connection source %s is not an output", n.SignalName(c.Src))
		}
		if _, dup := drivers[c.Dst]; dup {
			return nil, errors.Errorf("input %s driven twice", n.SignalName(c.Dst))
		}
		drivers[c.Dst] = src
	}
	inPin := func(dev int, port string) int {
		if p, ok := drivers[PortRef{Dev: dev, Port: port}]; ok {
			return p
		}
		return cstLow
	}

	for i, d := range n.Devices() {
		out := pins[PortRef{Dev: i, Port: d.Outputs()[0]}]
		switch d.Kind {
		case And, Or, Nand, Nor:
			if d.NumInputs < 1 || d.NumInputs > MaxGateInputs {
				return nil, errors.Errorf("gate %s: bad input count %d", d.Name, d.NumInputs)
			}
			ins := make([]int, d.NumInputs)
			for j := range ins {
				ins[j] = inPin(i, GateInput(j+1))
			}
			s.gates = append(s.gates, mountGate(d.Kind, ins, out))
		case Xor:
			a, b := inPin(i, GateInput(1)), inPin(i, GateInput(2))
			s.gates = append(s.gates, func(s *Simulator) {
				s.s1[out] = s.s0[a] != s.s0[b]
			})
		case DType:
			s.dffs = append(s.dffs, &dff{
				data:  inPin(i, PortData),
				clk:   inPin(i, PortClk),
				set:   inPin(i, PortSet),
				clear: inPin(i, PortClear),
				q:     pins[PortRef{Dev: i, Port: PortQ}],
				qbar:  pins[PortRef{Dev: i, Port: PortQBar}],
			})
		case Clock:
			if d.Period < 1 {
				return nil, errors.Errorf("clock %s: bad period %d", d.Name, d.Period)
			}
			s.sources = append(s.sources, &source{dev: d, pin: out})
		case Switch:
			src := &source{dev: d, pin: out, level: d.Initial}
			s.sources = append(s.sources, src)
			s.switches[d.Name] = src
		case SigGen:
			if len(d.Waveform) == 0 {
				return nil, errors.Errorf("siggen %s: empty waveform", d.Name)
			}
			s.sources = append(s.sources, &source{dev: d, pin: out})
		default:
			return nil, errors.Errorf("device %s: unknown kind %v", d.Name, d.Kind)
		}
	}

	for _, m := range n.Monitors() {
		p, ok := pins[m]
		if !ok {
			return nil, errors.Errorf("monitor %s is not an output", n.SignalName(m))
		}
		s.monPins = append(s.monPins, p)
	}
	s.monBuf = make([]bool, len(s.monPins))

	s.limit = cfg.SettleLimit
	if s.limit <= 0 {
		s.limit = len(s.gates) + 2
	}

	s.s0 = make([]bool, next)
	s.s1 = make([]bool, next)
	s.initFrames()
	return s, nil
}

func mountGate(k Kind, ins []int, out int) component {
	all := k == And || k == Nand
	neg := k == Nand || k == Nor
	return func(s *Simulator) {
		v := all
		for _, in := range ins {
			if s.s0[in] != all {
				v = !all
				break
			}
		}
		s.s1[out] = v != neg
	}
}

// initFrames puts every pin in its post-analysis initial state: all
// signals low, constants fixed, DTYPE outputs Q=0/QBAR=1, switches at
// their declared initial level.
//
func (s *Simulator) initFrames() {
	for i := range s.s0 {
		s.s0[i] = false
		s.s1[i] = false
	}
	s.s0[cstHigh] = true
	s.s1[cstHigh] = true
	for _, d := range s.dffs {
		d.prevClk = false
		d.out = false
		s.s0[d.qbar] = true
		s.s1[d.qbar] = true
	}
	for _, src := range s.sources {
		if src.dev.Kind == Switch {
			src.level = src.dev.Initial
			s.s0[src.pin] = src.level
			s.s1[src.pin] = src.level
		}
	}
}

// Netlist returns the netlist this session runs.
//
func (s *Simulator) Netlist() *Netlist { return s.n }

// Trace returns the waveform trace recorded so far. It is owned by the
// simulator and grows on every Run call until Reset.
//
func (s *Simulator) Trace() *Trace { return s.trace }

// Tick returns the number of completed ticks since construction or the
// last Reset.
//
func (s *Simulator) Tick() int { return s.tick }

// Run advances the simulation by n ticks, recording every monitored
// signal at the end of each tick. On an oscillation the run aborts with
// *OscillationError; the netlist and the samples recorded by earlier
// ticks remain intact.
//
func (s *Simulator) Run(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		if err := s.step(); err != nil {
			return err
		}
	}
	return nil
}

// step executes one full tick: source update, bounded combinational
// settling, clocked-state update, monitor recording. A tick either
// completes fully or the run aborts; partial ticks are never exposed.
//
func (s *Simulator) step() error {
	s.tick++

	// 1. input sources hold their level for the whole tick
	for _, src := range s.sources {
		l := src.levelAt(s.tick)
		s.s0[src.pin] = l
		s.s1[src.pin] = l
	}

	// 2. combinational settling to a fixed point
	pass := 0
	for {
		if pass == s.limit {
			t := s.tick
			s.tick-- // the failed tick does not count as completed
			return &OscillationError{Tick: t, Passes: pass}
		}
		s.pass()
		pass++
		if framesEqual(s.s0, s.s1) {
			break
		}
		s.s0, s.s1 = s.s1, s.s0
	}

	// 3. clocked state
	for _, d := range s.dffs {
		clk := s.s0[d.clk]
		rising := clk && !d.prevClk
		d.prevClk = clk
		set, clear := s.s0[d.set], s.s0[d.clear]
		switch {
		case set && clear:
			d.out = s.cfg.Policy == SetWins
		case clear:
			d.out = false
		case set:
			d.out = true
		case rising:
			d.out = s.s0[d.data]
		}
		s.s0[d.q] = d.out
		s.s1[d.q] = d.out
		s.s0[d.qbar] = !d.out
		s.s1[d.qbar] = !d.out
	}

	// 4. record
	for i, pin := range s.monPins {
		s.monBuf[i] = s.s0[pin]
	}
	s.trace.record(s.tick, s.monBuf)
	return nil
}

// pass evaluates every gate once, reading frame s0 and writing frame
// s1. With workers configured the gate list is split into chunks; the
// result is identical to sequential round-robin evaluation since writes
// are disjoint.
//
func (s *Simulator) pass() {
	w := s.cfg.Workers
	if w <= 1 {
		for _, g := range s.gates {
			g(s)
		}
		return
	}
	var wg sync.WaitGroup
	p := s.gates
	l := len(p) / w
	if l*w < len(p) {
		l++
	}
	for len(p) > 0 {
		c := l
		if c > len(p) {
			c = len(p)
		}
		wg.Add(1)
		go func(gs []component) {
			for _, g := range gs {
				g(s)
			}
			wg.Done()
		}(p[:c])
		p = p[c:]
	}
	wg.Wait()
}

func framesEqual(a, b []bool) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SetSwitch sets the level of the named SWITCH. The write is applied at
// the next tick boundary, never mid-tick. It fails with
// UnknownDeviceError if name does not designate a SWITCH.
//
func (s *Simulator) SetSwitch(name string, level bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.switches[name]
	if !ok {
		return UnknownDeviceError(name)
	}
	src.level = level
	return nil
}

// Level returns the level of the named output port at the last
// completed tick boundary. It fails with UnknownDeviceError for an
// unknown device name and with *InvalidPortError when port is not an
// output port of the device.
//
func (s *Simulator) Level(device, port string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.n.Lookup(device)
	if i < 0 {
		return false, UnknownDeviceError(device)
	}
	p, ok := s.pins[PortRef{Dev: i, Port: port}]
	if !ok {
		return false, &InvalidPortError{Device: device, Port: port}
	}
	return s.s0[p], nil
}

// Reset restores every device to its post-analysis initial state and
// clears the trace. A Reset followed by Run(n) reproduces the trace of
// a fresh session given the same switch settings.
//
func (s *Simulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick = 0
	s.initFrames()
	s.trace.reset()
}
