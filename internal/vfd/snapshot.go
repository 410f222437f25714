// internal/vfd/snapshot.go
package vfd

// Status is the decoded status block of the drive.
// It carries the raw words the control cycle compares against alongside
// the engineering-unit values published to the signal surface.
type Status struct {
	Word       uint16 // raw status bitfield
	FreqOutRaw uint16 // raw output frequency word, 0.01 Hz units

	FreqSet   float64 // commanded frequency, Hz
	FreqOut   float64 // output frequency, Hz
	Current   float64 // output current, A
	Volt      float64 // output voltage, V
	DCBusVolt float64 // DC bus voltage, V
	LoadPct   float64 // motor load, %
	Temp      float64 // inverter temperature, degC
}

// State extracts the drive's own run/direction state from the status word.
func (s Status) State() State {
	return State(s.Word & stateMask)
}

// Fault reports whether either fault bit of the status word is set.
func (s Status) Fault() bool {
	return s.Word&FaultMask != 0
}

// Command is the externally owned spindle command set, read once per cycle.
type Command struct {
	Enable  bool
	Forward bool
	Reverse bool
	Speed   float64 // commanded speed, RPM; sign is ignored for frequency
}

// Tuning is the externally owned runtime parameter set, read once per cycle.
type Tuning struct {
	Tolerance float64 // at-speed tolerance fraction
	PeriodSec float64 // cycle period, seconds, clamped by the cycle
}

// Outputs is the per-cycle result the control cycle owns and overwrites.
// The signal surface copies it out under a single-writer convention.
type Outputs struct {
	StatusWord  uint16
	FreqCommand float64
	FreqOut     float64
	Current     float64
	Volt        float64
	DCBusVolt   float64
	LoadPct     float64
	Temp        float64

	Fault   bool // sticky once set
	AtSpeed bool
	Stopped bool
	SpeedFB float64 // speed feedback, RPM

	ModbusErrors uint32
}
