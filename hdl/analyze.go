// Copyright 2026 The logsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"fmt"
	"io"
	"strconv"

	"logsim"
	"logsim/internal/lex"
)

// Analyze validates the abstract description against the per-kind
// semantic rules and either returns a netlist or a non-empty ordered
// list of diagnostics. Analysis never stops at the first problem: it
// reports as many independent ones as it can in one pass over devices,
// then connections, then monitors, preserving declaration order.
//
func Analyze(f *File) (*logsim.Netlist, []Diag) {
	a := &analyzer{
		n:       logsim.NewNetlist(),
		suspect: make(map[string]bool),
		driven:  make(map[logsim.PortRef]bool),
	}
	a.devices(f)
	a.connections(f)
	a.monitors(f)
	if HasErrors(a.diags) {
		return nil, a.diags
	}
	return a.n, a.diags
}

// Compile runs the whole front end: lex, parse, analyze. The netlist is
// nil unless the source is free of error-severity diagnostics.
//
func Compile(r io.Reader) (*logsim.Netlist, []Diag) {
	f, diags := Parse(r)
	if f == nil {
		return nil, diags
	}
	n, more := Analyze(f)
	diags = append(diags, more...)
	if n == nil || HasErrors(diags) {
		return nil, diags
	}
	return n, diags
}

type analyzer struct {
	n     *logsim.Netlist
	diags []Diag
	// suspect marks gates whose inputs attribute was missing or out of
	// range: their input-port checks are suppressed to avoid cascading
	// UndefinedPortReference noise.
	suspect map[string]bool
	driven  map[logsim.PortRef]bool
}

func (a *analyzer) errorf(c Code, pos lex.Pos, format string, args ...interface{}) {
	a.diags = append(a.diags, Diag{Code: c, Severity: Error, Msg: fmt.Sprintf(format, args...), Pos: pos})
}

func (a *analyzer) warnf(c Code, pos lex.Pos, format string, args ...interface{}) {
	a.diags = append(a.diags, Diag{Code: c, Severity: Warning, Msg: fmt.Sprintf(format, args...), Pos: pos})
}

func (a *analyzer) devices(f *File) {
	for _, d := range f.Devices {
		kind, ok := logsim.KindByName(d.Kind)
		if !ok {
			a.errorf(UnknownDeviceKind, d.KindPos, "unknown device kind %q", d.Kind)
			continue
		}
		if _, reserved := logsim.KindByName(d.Name); reserved {
			a.errorf(ReservedNameUsed, d.NamePos, "device name %q is a reserved word", d.Name)
			continue
		}
		if a.n.Lookup(d.Name) >= 0 {
			// first declaration wins, the rest of the line is not re-checked
			a.errorf(DuplicateDeviceName, d.NamePos, "device %q already declared", d.Name)
			continue
		}
		dev := &logsim.Device{Name: d.Name, Kind: kind}
		attrOK := a.attrs(dev, &d)
		a.n.AddDevice(dev)
		if !attrOK && kind.Attr() == logsim.AttrInputs {
			a.suspect[d.Name] = true
		}
	}
}

// attrs applies the declaration's attribute list to dev, enforcing the
// kind's attribute contract. It reports whether the required attribute
// (if any) ended up with a valid value.
func (a *analyzer) attrs(dev *logsim.Device, d *DeviceDecl) bool {
	req := dev.Kind.Attr()
	ok := true
	seen := false
	for _, at := range d.Attrs {
		if at.Name != req {
			a.errorf(IllegalAttributeForKind, at.NamePos,
				"attribute %q is not legal for %s", at.Name, dev.Kind)
			continue
		}
		seen = true
		switch req {
		case logsim.AttrInputs:
			v, err := strconv.Atoi(at.Value)
			if err != nil || v < 1 || v > logsim.MaxGateInputs {
				a.errorf(AttributeValueOutOfRange, at.ValuePos,
					"inputs must be an integer in [1,%d], got %q", logsim.MaxGateInputs, at.Value)
				ok = false
			} else {
				dev.NumInputs = v
				ok = true
			}
		case logsim.AttrPeriod:
			v, err := strconv.Atoi(at.Value)
			if err != nil || v < 1 {
				a.errorf(AttributeValueOutOfRange, at.ValuePos,
					"period must be a positive integer, got %q", at.Value)
				ok = false
			} else {
				dev.Period = v
				ok = true
			}
		case logsim.AttrInitial:
			switch at.Value {
			case "0":
				dev.Initial = false
				ok = true
			case "1":
				dev.Initial = true
				ok = true
			default:
				a.errorf(AttributeValueOutOfRange, at.ValuePos,
					"initial must be 0 or 1, got %q", at.Value)
				ok = false
			}
		case logsim.AttrWaveform:
			w, err := parseWaveform(at.Value)
			if err != nil {
				a.errorf(AttributeValueOutOfRange, at.ValuePos,
					"waveform %q: %v", at.Value, err)
				ok = false
			} else {
				dev.Waveform = w
				ok = true
			}
		}
	}
	if req != "" && !seen {
		a.errorf(MissingRequiredAttribute, d.NamePos,
			"%s %q is missing required attribute %q", dev.Kind, dev.Name, req)
		return false
	}
	return ok
}

func parseWaveform(s string) ([]bool, error) {
	if s == "" {
		return nil, fmt.Errorf("empty bit sequence")
	}
	w := make([]bool, len(s))
	for i, c := range s {
		switch c {
		case '0':
		case '1':
			w[i] = true
		default:
			return nil, fmt.Errorf("bit %d is %q, want 0 or 1", i+1, c)
		}
	}
	return w, nil
}

func (a *analyzer) connections(f *File) {
	for _, c := range f.Conns {
		src, srcOK := a.output(c.Src)
		dst, dstOK := a.input(c.Dst)
		if !srcOK || !dstOK {
			continue
		}
		if a.driven[dst] {
			a.errorf(PortAlreadyDriven, c.Dst.Pos,
				"input %s is already driven by an earlier connection", c.Dst)
			continue
		}
		a.driven[dst] = true
		a.n.Connect(src, dst)
	}
}

func (a *analyzer) monitors(f *File) {
	for _, m := range f.Monitors {
		ref, ok := a.output(m.Sig)
		if !ok {
			continue
		}
		if !a.n.AddMonitor(ref) {
			a.warnf(DuplicateMonitor, m.Sig.Pos,
				"signal %s is monitored more than once", m.Sig)
		}
	}
}

// output resolves a signal reference that must designate an output
// port: a connection source or a monitor target.
func (a *analyzer) output(s SignalRef) (logsim.PortRef, bool) {
	i := a.n.Lookup(s.Dev)
	if i < 0 {
		a.errorf(UndefinedDeviceReference, s.Pos, "device %q is not declared", s.Dev)
		return logsim.PortRef{}, false
	}
	dev := a.n.At(i)
	if dev.Kind == logsim.DType {
		if s.Port == "" {
			a.errorf(UndefinedPortReference, s.Pos,
				"DTYPE %q requires an output port (%s or %s)", s.Dev, logsim.PortQ, logsim.PortQBar)
			return logsim.PortRef{}, false
		}
		if !dev.HasOutput(s.Port) {
			a.errorf(UndefinedPortReference, s.Pos,
				"%s %q has no output port %q", dev.Kind, s.Dev, s.Port)
			return logsim.PortRef{}, false
		}
		return logsim.PortRef{Dev: i, Port: s.Port}, true
	}
	if s.Port != "" {
		a.errorf(UndefinedPortReference, s.Pos,
			"%s %q has no output port %q", dev.Kind, s.Dev, s.Port)
		return logsim.PortRef{}, false
	}
	return logsim.PortRef{Dev: i, Port: ""}, true
}

// input resolves a signal reference that must designate an input port:
// a connection destination.
func (a *analyzer) input(s SignalRef) (logsim.PortRef, bool) {
	i := a.n.Lookup(s.Dev)
	if i < 0 {
		a.errorf(UndefinedDeviceReference, s.Pos, "device %q is not declared", s.Dev)
		return logsim.PortRef{}, false
	}
	dev := a.n.At(i)
	if a.suspect[s.Dev] {
		// gate width unknown, an earlier diagnostic explains why
		return logsim.PortRef{}, false
	}
	if !dev.HasInput(s.Port) {
		a.errorf(UndefinedPortReference, s.Pos,
			"%s %q has no input port %q", dev.Kind, s.Dev, s.Port)
		return logsim.PortRef{}, false
	}
	return logsim.PortRef{Dev: i, Port: s.Port}, true
}
