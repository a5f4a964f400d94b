package logsim_test

import (
	"testing"

	"logsim"
	"logsim/wavetest"
)

const muxSrc = `# 2-to-1 multiplexer: o1 = S ? B : A #
begin devices:
    SWITCH A: initial = 0;
    SWITCH B: initial = 1;
    SWITCH S: initial = 1;
    NAND notS: inputs = 2;
    AND a1: inputs = 2;
    AND a2: inputs = 2;
    OR o1: inputs = 2;
end devices;
begin connections:
    S -> notS.I1;
    S -> notS.I2;
    A -> a1.I1;
    notS -> a1.I2;
    S -> a2.I1;
    B -> a2.I2;
    a1 -> o1.I1;
    a2 -> o1.I2;
end connections;
begin monitors:
    o1;
    notS;
end monitors;
`

const dividerSrc = `# DTYPE wired as a divide-by-two counter #
begin devices:
    CLOCK clk: period = 1;
    DTYPE d;
end devices;
begin connections:
    clk -> d.CLK;
    d.QBAR -> d.DATA;
end connections;
begin monitors:
    clk;
    d.Q;
end monitors;
`

func newSim(t *testing.T, src string, cfg logsim.Config) *logsim.Simulator {
	t.Helper()
	s, err := logsim.New(wavetest.MustCompile(t, src), cfg)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func checkLevels(t *testing.T, tr *logsim.Trace, name, want string) {
	t.Helper()
	if got := wavetest.Levels(tr.Levels(name)); got != want {
		t.Errorf("signal %s: got %s, want %s", name, got, want)
	}
}

func TestMux(t *testing.T) {
	tr := wavetest.Run(t, muxSrc, 3)
	checkLevels(t, tr, "o1", "111")   // S=1 selects B=1
	checkLevels(t, tr, "notS", "000") // NAND with tied inputs inverts
}

func TestMux_switchFlip(t *testing.T) {
	s := newSim(t, muxSrc, logsim.Config{})
	if err := s.Run(2); err != nil {
		t.Fatal(err)
	}
	// select A (which is low) from the next tick on
	if err := s.SetSwitch("S", false); err != nil {
		t.Fatal(err)
	}
	if err := s.Run(2); err != nil {
		t.Fatal(err)
	}
	checkLevels(t, s.Trace(), "o1", "1100")
	if s.Tick() != 4 {
		t.Errorf("got tick %d, want 4", s.Tick())
	}
}

func TestClockPhase(t *testing.T) {
	tr := wavetest.Run(t, `begin devices:
    CLOCK c1: period = 1;
    CLOCK c2: period = 2;
end devices;
begin connections:
end connections;
begin monitors:
    c1;
    c2;
end monitors;
`, 8)
	checkLevels(t, tr, "c1", "01010101") // low phase first
	checkLevels(t, tr, "c2", "00110011")
}

func TestSigGenWraps(t *testing.T) {
	tr := wavetest.Run(t, `begin devices:
    SIGGEN w: waveform = 011;
end devices;
begin connections:
end connections;
begin monitors:
    w;
end monitors;
`, 7)
	checkLevels(t, tr, "w", "0110110")
}

func TestDTypeDividesClock(t *testing.T) {
	tr := wavetest.Run(t, dividerSrc, 8)
	checkLevels(t, tr, "clk", "01010101")
	// Q toggles on each rising edge of clk via the QBAR feedback
	checkLevels(t, tr, "d.Q", "01100110")
}

func TestDType_setClearPolicy(t *testing.T) {
	src := `begin devices:
    SWITCH s: initial = 1;
    DTYPE d;
end devices;
begin connections:
    s -> d.SET;
    s -> d.CLEAR;
end connections;
begin monitors:
    d.Q;
end monitors;
`
	td := []struct {
		name string
		cfg  logsim.Config
		want string
	}{
		{"clear wins by default", logsim.Config{}, "0000"},
		{"set wins when configured", logsim.Config{Policy: logsim.SetWins}, "1111"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			s := newSim(t, src, d.cfg)
			if err := s.Run(4); err != nil {
				t.Fatal(err)
			}
			checkLevels(t, s.Trace(), "d.Q", d.want)
		})
	}
}

func TestDType_setOverridesEdge(t *testing.T) {
	// SET asserted: Q is high regardless of DATA and CLK
	tr := wavetest.Run(t, `begin devices:
    CLOCK clk: period = 1;
    SWITCH high: initial = 1;
    DTYPE d;
end devices;
begin connections:
    clk -> d.CLK;
    high -> d.SET;
end connections;
begin monitors:
    d.Q;
end monitors;
`, 4)
	checkLevels(t, tr, "d.Q", "1111")
}

func TestUnconnectedInputReadsLow(t *testing.T) {
	tr := wavetest.Run(t, `begin devices:
    SWITCH s: initial = 1;
    AND g1: inputs = 2;
    NOR g2: inputs = 2;
end devices;
begin connections:
    s -> g1.I1;
end connections;
begin monitors:
    g1;
    g2;
end monitors;
`, 2)
	checkLevels(t, tr, "g1", "00") // I2 floats low
	checkLevels(t, tr, "g2", "11") // NOR of two low inputs
}

func TestOscillation(t *testing.T) {
	s := newSim(t, `begin devices:
    NAND n1: inputs = 2;
end devices;
begin connections:
    n1 -> n1.I1;
    n1 -> n1.I2;
end connections;
begin monitors:
    n1;
end monitors;
`, logsim.Config{})
	err := s.Run(5)
	if err == nil {
		t.Fatal("expected an oscillation error")
	}
	oe, ok := err.(*logsim.OscillationError)
	if !ok {
		t.Fatalf("got %T (%v), want *OscillationError", err, err)
	}
	if oe.Tick != 1 {
		t.Errorf("got tick %d, want 1", oe.Tick)
	}
	// the aborted tick is not recorded and does not count
	if s.Tick() != 0 {
		t.Errorf("got %d completed ticks, want 0", s.Tick())
	}
	if s.Trace().Len() != 0 {
		t.Errorf("got %d recorded ticks, want 0", s.Trace().Len())
	}
}

func TestResetReproducesRun(t *testing.T) {
	s := newSim(t, dividerSrc, logsim.Config{})
	if err := s.Run(8); err != nil {
		t.Fatal(err)
	}
	want := wavetest.Levels(s.Trace().Levels("d.Q"))
	s.Reset()
	if s.Tick() != 0 || s.Trace().Len() != 0 {
		t.Fatal("reset did not clear the session")
	}
	if err := s.Run(8); err != nil {
		t.Fatal(err)
	}
	checkLevels(t, s.Trace(), "d.Q", want)
}

func TestReset_restoresSwitchInitial(t *testing.T) {
	s := newSim(t, muxSrc, logsim.Config{})
	if err := s.SetSwitch("S", false); err != nil {
		t.Fatal(err)
	}
	s.Reset()
	if err := s.Run(2); err != nil {
		t.Fatal(err)
	}
	checkLevels(t, s.Trace(), "o1", "11") // S is back to its declared 1
}

func TestRunAppendsToTrace(t *testing.T) {
	s1 := newSim(t, dividerSrc, logsim.Config{})
	if err := s1.Run(4); err != nil {
		t.Fatal(err)
	}
	if err := s1.Run(4); err != nil {
		t.Fatal(err)
	}
	s2 := newSim(t, dividerSrc, logsim.Config{})
	if err := s2.Run(8); err != nil {
		t.Fatal(err)
	}
	checkLevels(t, s1.Trace(), "d.Q", wavetest.Levels(s2.Trace().Levels("d.Q")))
	samples := s1.Trace().Samples("d.Q")
	if len(samples) != 8 || samples[0].Tick != 1 || samples[7].Tick != 8 {
		t.Errorf("got samples %v, want ticks 1 through 8", samples)
	}
}

func TestSetSwitchErrors(t *testing.T) {
	s := newSim(t, muxSrc, logsim.Config{})
	if err := s.SetSwitch("nope", true); err != logsim.UnknownDeviceError("nope") {
		t.Errorf("got %v, want UnknownDeviceError", err)
	}
	// a gate is not a switch
	if err := s.SetSwitch("o1", true); err != logsim.UnknownDeviceError("o1") {
		t.Errorf("got %v, want UnknownDeviceError", err)
	}
}

func TestLevelProbe(t *testing.T) {
	s := newSim(t, muxSrc, logsim.Config{})
	if err := s.Run(1); err != nil {
		t.Fatal(err)
	}
	l, err := s.Level("o1", "")
	if err != nil {
		t.Fatal(err)
	}
	if !l {
		t.Error("o1 should be high")
	}
	if _, err := s.Level("nope", ""); err != logsim.UnknownDeviceError("nope") {
		t.Errorf("got %v, want UnknownDeviceError", err)
	}
	if _, err := s.Level("o1", "Q"); err == nil {
		t.Error("expected an invalid port error")
	} else if _, ok := err.(*logsim.InvalidPortError); !ok {
		t.Errorf("got %T (%v), want *InvalidPortError", err, err)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	seq := newSim(t, muxSrc, logsim.Config{})
	par := newSim(t, muxSrc, logsim.Config{Workers: 3})
	if err := seq.Run(6); err != nil {
		t.Fatal(err)
	}
	if err := par.Run(6); err != nil {
		t.Fatal(err)
	}
	for _, name := range seq.Trace().Signals() {
		w1 := wavetest.Levels(seq.Trace().Levels(name))
		w2 := wavetest.Levels(par.Trace().Levels(name))
		if w1 != w2 {
			t.Errorf("signal %s: sequential %s, parallel %s", name, w1, w2)
		}
	}
}

func TestSettleLimit(t *testing.T) {
	// a chain of four inverters settles well within the default limit
	// but not within a limit of 2
	src := `begin devices:
    SWITCH s: initial = 1;
    NAND i1: inputs = 1;
    NAND i2: inputs = 1;
    NAND i3: inputs = 1;
    NAND i4: inputs = 1;
end devices;
begin connections:
    s -> i1.I1;
    i1 -> i2.I1;
    i2 -> i3.I1;
    i3 -> i4.I1;
end connections;
begin monitors:
    i4;
end monitors;
`
	s := newSim(t, src, logsim.Config{})
	if err := s.Run(1); err != nil {
		t.Fatal(err)
	}
	checkLevels(t, s.Trace(), "i4", "1")

	s = newSim(t, src, logsim.Config{SettleLimit: 2})
	err := s.Run(1)
	if _, ok := err.(*logsim.OscillationError); !ok {
		t.Fatalf("got %v, want *OscillationError", err)
	}
}
