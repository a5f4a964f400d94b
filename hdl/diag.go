package hdl

import (
	"fmt"

	"logsim/internal/lex"
)

// A Code tags a diagnostic with its kind. Lexical and Syntax cover the
// front end; the remaining codes form the closed set of semantic rules.
//
type Code int

// Diagnostic kinds.
const (
	Lexical Code = iota
	Syntax
	UnknownDeviceKind
	MissingRequiredAttribute
	IllegalAttributeForKind
	AttributeValueOutOfRange
	ReservedNameUsed
	DuplicateDeviceName
	UndefinedDeviceReference
	UndefinedPortReference
	PortAlreadyDriven
	DuplicateMonitor
)

var codeNames = [...]string{
	Lexical:                  "Lexical",
	Syntax:                   "Syntax",
	UnknownDeviceKind:        "UnknownDeviceKind",
	MissingRequiredAttribute: "MissingRequiredAttribute",
	IllegalAttributeForKind:  "IllegalAttributeForKind",
	AttributeValueOutOfRange: "AttributeValueOutOfRange",
	ReservedNameUsed:         "ReservedNameUsed",
	DuplicateDeviceName:      "DuplicateDeviceName",
	UndefinedDeviceReference: "UndefinedDeviceReference",
	UndefinedPortReference:   "UndefinedPortReference",
	PortAlreadyDriven:        "PortAlreadyDriven",
	DuplicateMonitor:         "DuplicateMonitor",
}

func (c Code) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return fmt.Sprintf("Code(%d)", int(c))
	}
	return codeNames[c]
}

// Severity separates blocking problems from reported-but-tolerated
// ones. Only DuplicateMonitor is a Warning.
//
type Severity int

// Severities.
const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// A Diag is one diagnostic: kind tag, severity, human-readable message
// and source position. Diagnostics are collected in source order and
// returned together, never thrown one by one.
//
type Diag struct {
	Code     Code
	Severity Severity
	Msg      string
	Pos      lex.Pos
}

func (d Diag) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Msg)
}

// HasErrors reports whether diags contains at least one error-severity
// diagnostic.
//
func HasErrors(diags []Diag) bool {
	for _, d := range diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
