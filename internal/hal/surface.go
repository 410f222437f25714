// internal/hal/surface.go
package hal

import (
	"github.com/tamzrod/vfd-bridge/internal/vfd"
)

// Signal names of the bridge component. Supervisory systems bind to these
// by name; they MUST NOT change.
const (
	// inputs
	SigSpindleOn    = "spindle-on"
	SigSpindleFwd   = "spindle-fwd"
	SigSpindleRev   = "spindle-rev"
	SigSpeedCommand = "speed-command"

	// outputs
	SigInverterStatus = "inverter-status"
	SigFreqCommand    = "frequency-command"
	SigFreqOut        = "frequency-out"
	SigOutputCurrent  = "output-current"
	SigOutputVolt     = "output-volt"
	SigDCBusVolt      = "DC-bus-volt"
	SigLoadPct        = "load-percentage"
	SigInverterTemp   = "inverter-temp"
	SigVFDError       = "vfd-error"
	SigAtSpeed        = "at-speed"
	SigIsStopped      = "is-stopped"
	SigSpeedFB        = "spindle-speed-fb"

	// parameters
	SigTolerance    = "tolerance"
	SigPeriod       = "period-seconds"
	SigModbusErrors = "modbus-errors"
)

// Default parameter values.
const (
	DefaultTolerance = 0.01
	DefaultPeriodSec = 0.1
)

// Surface binds the control cycle to the named signal set.
// The cycle is the single writer of every Out signal; the surface only
// copies the owned Outputs struct into the component under one lock.
type Surface struct {
	comp *Component
}

// NewSurface registers the full bridge signal set on a fresh component.
// enableDefault is the startup value of the spindle-on input (false when
// the bridge is started with --disable).
func NewSurface(name string, enableDefault bool) (*Surface, error) {
	c := NewComponent(name)

	regs := []error{
		c.AddBit(SigSpindleOn, In, enableDefault),
		c.AddBit(SigSpindleFwd, In, false),
		c.AddBit(SigSpindleRev, In, false),
		c.AddFloat(SigSpeedCommand, In, 0),

		c.AddU32(SigInverterStatus, Out, 0),
		c.AddFloat(SigFreqCommand, Out, 0),
		c.AddFloat(SigFreqOut, Out, 0),
		c.AddFloat(SigOutputCurrent, Out, 0),
		c.AddFloat(SigOutputVolt, Out, 0),
		c.AddFloat(SigDCBusVolt, Out, 0),
		c.AddFloat(SigLoadPct, Out, 0),
		c.AddFloat(SigInverterTemp, Out, 0),
		c.AddBit(SigVFDError, Out, false),
		c.AddBit(SigAtSpeed, Out, false),
		c.AddBit(SigIsStopped, Out, false),
		c.AddFloat(SigSpeedFB, Out, 0),

		c.AddFloat(SigTolerance, Param, DefaultTolerance),
		c.AddFloat(SigPeriod, Param, DefaultPeriodSec),
		c.AddU32(SigModbusErrors, Out, 0),
	}
	for _, err := range regs {
		if err != nil {
			return nil, err
		}
	}

	return &Surface{comp: c}, nil
}

// Component exposes the underlying named signal set for supervisory binding.
func (s *Surface) Component() *Component {
	return s.comp
}

// Command reads the spindle command and tuning parameters as one
// consistent snapshot for the current iteration.
func (s *Surface) Command() (vfd.Command, vfd.Tuning) {
	s.comp.mu.RLock()
	defer s.comp.mu.RUnlock()

	sig := s.comp.signals
	cmd := vfd.Command{
		Enable:  sig[SigSpindleOn].bit,
		Forward: sig[SigSpindleFwd].bit,
		Reverse: sig[SigSpindleRev].bit,
		Speed:   sig[SigSpeedCommand].f,
	}
	tun := vfd.Tuning{
		Tolerance: sig[SigTolerance].f,
		PeriodSec: sig[SigPeriod].f,
	}
	return cmd, tun
}

// SetPeriod writes the clamped period back so supervisors observe the
// effective value.
func (s *Surface) SetPeriod(seconds float64) {
	s.comp.mu.Lock()
	defer s.comp.mu.Unlock()

	s.comp.signals[SigPeriod].f = seconds
}

// Publish copies the cycle's owned outputs into the component.
func (s *Surface) Publish(out vfd.Outputs) {
	s.comp.mu.Lock()
	defer s.comp.mu.Unlock()

	sig := s.comp.signals
	sig[SigInverterStatus].u = uint32(out.StatusWord)
	sig[SigFreqCommand].f = out.FreqCommand
	sig[SigFreqOut].f = out.FreqOut
	sig[SigOutputCurrent].f = out.Current
	sig[SigOutputVolt].f = out.Volt
	sig[SigDCBusVolt].f = out.DCBusVolt
	sig[SigLoadPct].f = out.LoadPct
	sig[SigInverterTemp].f = out.Temp
	sig[SigVFDError].bit = out.Fault
	sig[SigAtSpeed].bit = out.AtSpeed
	sig[SigIsStopped].bit = out.Stopped
	sig[SigSpeedFB].f = out.SpeedFB
	sig[SigModbusErrors].u = out.ModbusErrors
}
