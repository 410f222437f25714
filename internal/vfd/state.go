// internal/vfd/state.go
package vfd

// Decide resolves the next drive state from the spindle command and the
// state the device last reported. The returned bool is true when a control
// word write is required; when the device already agrees with the command
// no write is issued, so start transients are not re-triggered every cycle.
//
// Priority: forward pre-empts reverse when both are asserted.
func Decide(cmd Command, device State) (State, bool) {
	switch {
	case cmd.Enable && cmd.Forward && device != RunForward:
		return RunForward, true
	case cmd.Enable && cmd.Reverse && device != RunReverse:
		return RunReverse, true
	case !cmd.Enable && device.Running():
		return Stopped, true
	}
	return device, false
}
