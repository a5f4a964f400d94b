// Copyright 2026 The logsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package logsim

// A Device is a validated device instance in a netlist. Only the
// parameter fields relevant to its kind are meaningful: NumInputs for
// AND/OR/NAND/NOR, Period for CLOCK, Initial for SWITCH, Waveform for
// SIGGEN. XOR and DTYPE carry no parameters.
//
type Device struct {
	Name string
	Kind Kind

	NumInputs int    // gate width, in [1,16]
	Period    int    // clock half-period in ticks, >= 1
	Initial   bool   // switch start level
	Waveform  []bool // siggen bit sequence, non-empty
}

// Inputs returns the device's input port names in order.
//
func (d *Device) Inputs() []string {
	switch d.Kind {
	case And, Or, Nand, Nor:
		in := make([]string, d.NumInputs)
		for i := range in {
			in[i] = GateInput(i + 1)
		}
		return in
	case Xor:
		return []string{GateInput(1), GateInput(2)}
	case DType:
		return []string{PortData, PortClk, PortSet, PortClear}
	}
	return nil
}

// Outputs returns the device's output port names. The sole output of
// every non-DTYPE device is the unnamed port "".
//
func (d *Device) Outputs() []string {
	if d.Kind == DType {
		return []string{PortQ, PortQBar}
	}
	return []string{""}
}

// HasInput reports whether port is an input port of d.
//
func (d *Device) HasInput(port string) bool {
	for _, p := range d.Inputs() {
		if p == port {
			return true
		}
	}
	return false
}

// HasOutput reports whether port is an output port of d.
//
func (d *Device) HasOutput(port string) bool {
	for _, p := range d.Outputs() {
		if p == port {
			return true
		}
	}
	return false
}

// A PortRef designates one port of one device by device index in the
// netlist arena and port name. Connections and monitors store indices,
// not device pointers.
//
type PortRef struct {
	Dev  int
	Port string
}

// A Connection is a directed edge from a source output port to a
// destination input port. Every input port is the destination of at
// most one connection; outputs fan out freely.
//
type Connection struct {
	Src PortRef
	Dst PortRef
}

// A Netlist is the validated graph of devices and their wiring, the
// sole input to simulation. Its shape is immutable after analysis; the
// engine mutates only device run-time state.
//
type Netlist struct {
	devices  []*Device
	index    map[string]int
	conns    []Connection
	monitors []PortRef
}

// NewNetlist returns an empty netlist.
//
func NewNetlist() *Netlist {
	return &Netlist{index: make(map[string]int)}
}

// AddDevice appends d to the arena and returns its index. It returns
// -1 and false if a device with the same name is already present.
//
func (n *Netlist) AddDevice(d *Device) (int, bool) {
	if _, ok := n.index[d.Name]; ok {
		return -1, false
	}
	i := len(n.devices)
	n.devices = append(n.devices, d)
	n.index[d.Name] = i
	return i, true
}

// Device returns the device named name.
//
func (n *Netlist) Device(name string) (*Device, bool) {
	i, ok := n.index[name]
	if !ok {
		return nil, false
	}
	return n.devices[i], true
}

// Lookup returns the arena index of the device named name, or -1.
//
func (n *Netlist) Lookup(name string) int {
	if i, ok := n.index[name]; ok {
		return i
	}
	return -1
}

// At returns the device at arena index i.
//
func (n *Netlist) At(i int) *Device { return n.devices[i] }

// Len returns the number of devices.
//
func (n *Netlist) Len() int { return len(n.devices) }

// Devices returns the devices in declaration order. The returned slice
// is shared; callers must not modify it.
//
func (n *Netlist) Devices() []*Device { return n.devices }

// Connect appends a connection. The caller (the semantic analyzer) is
// responsible for port existence and fan-in checks.
//
func (n *Netlist) Connect(src, dst PortRef) {
	n.conns = append(n.conns, Connection{Src: src, Dst: dst})
}

// Connections returns the connections in declaration order.
//
func (n *Netlist) Connections() []Connection { return n.conns }

// AddMonitor records ref as a monitored signal. It returns false if the
// (device, port) pair is already monitored; the pair is kept once.
//
func (n *Netlist) AddMonitor(ref PortRef) bool {
	for _, m := range n.monitors {
		if m == ref {
			return false
		}
	}
	n.monitors = append(n.monitors, ref)
	return true
}

// Monitors returns the monitored signals in declaration order.
//
func (n *Netlist) Monitors() []PortRef { return n.monitors }

// SignalName returns the display name of ref: the device name, followed
// by "." and the port name for named ports.
//
func (n *Netlist) SignalName(ref PortRef) string {
	name := n.devices[ref.Dev].Name
	if ref.Port != "" {
		name += "." + ref.Port
	}
	return name
}
