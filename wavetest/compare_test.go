package wavetest_test

import (
	"testing"

	"logsim/wavetest"
)

const xorInputs = `    SIGGEN A: waveform = 0011;
    SIGGEN B: waveform = 0101;
`

// An XOR device against its AND/OR/NAND expansion: the waveforms of the
// output x must be identical.
func TestCompareTraces(t *testing.T) {
	direct := `begin devices:
` + xorInputs + `    XOR x;
end devices;
begin connections:
    A -> x.I1;
    B -> x.I2;
end connections;
begin monitors:
    x;
end monitors;
`
	expanded := `begin devices:
` + xorInputs + `    NAND notA: inputs = 1;
    NAND notB: inputs = 1;
    AND t1: inputs = 2;
    AND t2: inputs = 2;
    OR x: inputs = 2;
end devices;
begin connections:
    A -> notA.I1;
    B -> notB.I1;
    A -> t1.I1;
    notB -> t1.I2;
    notA -> t2.I1;
    B -> t2.I2;
    t1 -> x.I1;
    t2 -> x.I2;
end connections;
begin monitors:
    x;
end monitors;
`
	wavetest.CompareTraces(t, direct, expanded, 8)
}

func TestRun(t *testing.T) {
	tr := wavetest.Run(t, `begin devices:
`+xorInputs+`    XOR x;
end devices;
begin connections:
    A -> x.I1;
    B -> x.I2;
end connections;
begin monitors:
    x;
end monitors;
`, 8)
	if got := wavetest.Levels(tr.Levels("x")); got != "01100110" {
		t.Errorf("got %s, want 01100110", got)
	}
}

func TestLevels(t *testing.T) {
	if got := wavetest.Levels([]bool{true, false, true, true}); got != "1011" {
		t.Errorf("got %q, want 1011", got)
	}
	if got := wavetest.Levels(nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
