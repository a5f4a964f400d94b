package hdl

import "logsim/internal/lex"

// A File is the unvalidated abstract description of one source unit:
// raw device declarations, connection pairs and monitor references. It
// is produced by the parser, consumed once by Analyze and discarded.
//
type File struct {
	Devices  []DeviceDecl
	Conns    []ConnDecl
	Monitors []MonitorDecl
}

// A DeviceDecl is one statement of the devices block:
// KIND name [: attr = value {, attr = value}] ;
//
type DeviceDecl struct {
	Kind    string
	KindPos lex.Pos
	Name    string
	NamePos lex.Pos
	Attrs   []Attr
}

// An Attr is one attribute assignment of a device declaration. Value
// keeps the raw literal text so that waveform bit sequences survive
// with their leading zeros.
//
type Attr struct {
	Name     string
	NamePos  lex.Pos
	Value    string
	ValuePos lex.Pos
}

// A SignalRef names a device port: src or dst of a connection, or a
// monitor target. Port is "" when no .port suffix was given (the sole
// unnamed output).
//
type SignalRef struct {
	Dev  string
	Port string
	Pos  lex.Pos
}

func (s SignalRef) String() string {
	if s.Port == "" {
		return s.Dev
	}
	return s.Dev + "." + s.Port
}

// A ConnDecl is one statement of the connections block:
// src[.port] -> dst.port ;
//
type ConnDecl struct {
	Src SignalRef
	Dst SignalRef
}

// A MonitorDecl is one statement of the monitors block: sig[.port] ;
//
type MonitorDecl struct {
	Sig SignalRef
}
