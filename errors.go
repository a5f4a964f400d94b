package logsim

import "fmt"

// An OscillationError reports a combinational network that failed to
// settle within the configured pass limit. It aborts the current run
// only: the netlist and the trace recorded so far remain valid.
//
type OscillationError struct {
	Tick   int // tick being evaluated when settling gave up
	Passes int // settling passes executed
}

func (e *OscillationError) Error() string {
	return fmt.Sprintf("tick %d: combinational network failed to settle after %d passes", e.Tick, e.Passes)
}

// An UnknownDeviceError reports a control-interface call naming a
// device that does not exist or is not of the required kind.
//
type UnknownDeviceError string

func (e UnknownDeviceError) Error() string {
	return fmt.Sprintf("unknown device %q", string(e))
}

// An InvalidPortError reports a control-interface call naming a port
// that does not exist on the referenced device.
//
type InvalidPortError struct {
	Device string
	Port   string
}

func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("device %q has no port %q", e.Device, e.Port)
}
