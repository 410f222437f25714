// internal/vfd/constants.go
package vfd

// Nowforever D100/E100 register map.
// These values are fixed by the device firmware and MUST NOT be configurable.

// ---- STATUS BLOCK (read, FC3) ----

// RegStatusBase is the first register of the status block.
const RegStatusBase uint16 = 0x0500

// StatusRegCount is the fixed number of registers in the status block.
const StatusRegCount uint16 = 8

// Status block word indices, relative to RegStatusBase.
const (
	idxStatusWord = 0 // run/direction/fault bitfield, unscaled
	idxFreqSet    = 1 // commanded frequency, 0.01 Hz units
	idxFreqOut    = 2 // output frequency, 0.01 Hz units
	idxCurrent    = 3 // output current, 0.1 A units
	idxVolt       = 4 // output voltage, 0.1 V units
	idxDCBusVolt  = 5 // DC bus voltage, 1 V units
	idxLoadPct    = 6 // motor load, 0.1 % units
	idxTemp       = 7 // inverter temperature, 1 degC units
)

// ---- CONTROL BLOCK (write, FC6) ----

// RegControl is the run/direction command word.
const RegControl uint16 = 0x0900

// RegFrequency is the commanded frequency word, 0.01 Hz units.
const RegFrequency uint16 = 0x0901

// ---- STATUS WORD BITS ----

// statusRunBit is set while the drive output is active.
const statusRunBit uint16 = 1 << 0

// statusDirBit is set while the drive runs in reverse.
const statusDirBit uint16 = 1 << 1

// FaultMask covers the two fault bits of the status word.
// Remaining bits are reserved by the device and ignored here.
const FaultMask uint16 = 1<<3 | 1<<4

// stateMask selects the run/direction pair of the status word.
const stateMask uint16 = statusRunBit | statusDirBit

// ---- DRIVE STATES ----

// State is the run/direction command state of the drive.
// The encoding is the device's own: {run-bit, direction-bit}.
// Value 2 (direction without run) is not a valid state on this family
// and is never emitted.
type State uint16

const (
	Stopped    State = 0
	RunForward State = 1
	RunReverse State = 3
)

// Running reports whether the run bit of the state is set.
func (s State) Running() bool {
	return uint16(s)&statusRunBit != 0
}

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case RunForward:
		return "run-forward"
	case RunReverse:
		return "run-reverse"
	}
	return "invalid"
}
