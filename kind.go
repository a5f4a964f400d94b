package logsim

import "strconv"

// A Kind identifies one of the nine device types of the language.
// The enumeration is closed: every semantic rule in the hdl package and
// every mount function in the engine switches exhaustively over it.
//
type Kind int

// Device kinds.
const (
	And Kind = iota
	Or
	Nand
	Nor
	Xor
	DType
	Clock
	Switch
	SigGen

	numKinds
)

var kindNames = [numKinds]string{
	And:    "AND",
	Or:     "OR",
	Nand:   "NAND",
	Nor:    "NOR",
	Xor:    "XOR",
	DType:  "DTYPE",
	Clock:  "CLOCK",
	Switch: "SWITCH",
	SigGen: "SIGGEN",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// KindByName returns the kind named s. The second return value is false
// if s is not a device-kind keyword.
//
func KindByName(s string) (Kind, bool) {
	for k, n := range kindNames {
		if n == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// IsGate reports whether k is one of the variable-width logic gates
// (AND, OR, NAND, NOR). XOR is a gate too but has a fixed pair of inputs.
//
func (k Kind) IsGate() bool {
	switch k {
	case And, Or, Nand, Nor, Xor:
		return true
	}
	return false
}

// IsSource reports whether k drives its output from internal state only
// (no input ports): CLOCK, SWITCH and SIGGEN.
//
func (k Kind) IsSource() bool {
	switch k {
	case Clock, Switch, SigGen:
		return true
	}
	return false
}

// Attr returns the name of the attribute required by kind k, or "" if k
// takes none. Attribute sets are mutually exclusive across kinds: an
// attribute legal for one kind is illegal for every other kind.
//
func (k Kind) Attr() string {
	switch k {
	case And, Or, Nand, Nor:
		return AttrInputs
	case Clock:
		return AttrPeriod
	case Switch:
		return AttrInitial
	case SigGen:
		return AttrWaveform
	}
	return ""
}

// Attribute names.
const (
	AttrInputs   = "inputs"
	AttrPeriod   = "period"
	AttrInitial  = "initial"
	AttrWaveform = "waveform"
)

// DTYPE port names. Gate inputs are I1..In; the sole output of every
// non-DTYPE device is the unnamed port "".
const (
	PortData  = "DATA"
	PortClk   = "CLK"
	PortSet   = "SET"
	PortClear = "CLEAR"
	PortQ     = "Q"
	PortQBar  = "QBAR"
)

// MaxGateInputs is the upper bound on the inputs attribute of AND, OR,
// NAND and NOR gates.
const MaxGateInputs = 16

// GateInput returns the name of the i-th (1-based) gate input port.
//
func GateInput(i int) string {
	return "I" + strconv.Itoa(i)
}
