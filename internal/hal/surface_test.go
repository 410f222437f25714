// internal/hal/surface_test.go
package hal

import (
	"testing"

	"github.com/tamzrod/vfd-bridge/internal/vfd"
)

func TestNewSurface_RegistersSignalSet(t *testing.T) {
	s, err := NewSurface("nowforever_vfd", true)
	if err != nil {
		t.Fatalf("NewSurface err=%v", err)
	}

	want := []string{
		SigSpindleOn, SigSpindleFwd, SigSpindleRev, SigSpeedCommand,
		SigInverterStatus, SigFreqCommand, SigFreqOut, SigOutputCurrent,
		SigOutputVolt, SigDCBusVolt, SigLoadPct, SigInverterTemp,
		SigVFDError, SigAtSpeed, SigIsStopped, SigSpeedFB,
		SigTolerance, SigPeriod, SigModbusErrors,
	}

	names := s.Component().Signals()
	if len(names) != len(want) {
		t.Fatalf("signal count: got %d, want %d", len(names), len(want))
	}
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	for _, n := range want {
		if !have[n] {
			t.Fatalf("missing signal %q", n)
		}
	}
}

func TestNewSurface_Defaults(t *testing.T) {
	s, err := NewSurface("nowforever_vfd", true)
	if err != nil {
		t.Fatalf("NewSurface err=%v", err)
	}

	cmd, tun := s.Command()
	if !cmd.Enable {
		t.Fatalf("spindle-on default: got false, want true")
	}
	if tun.Tolerance != 0.01 {
		t.Fatalf("tolerance default: got %v, want 0.01", tun.Tolerance)
	}
	if tun.PeriodSec != 0.1 {
		t.Fatalf("period default: got %v, want 0.1", tun.PeriodSec)
	}

	// --disable startup
	s, err = NewSurface("nowforever_vfd", false)
	if err != nil {
		t.Fatalf("NewSurface err=%v", err)
	}
	cmd, _ = s.Command()
	if cmd.Enable {
		t.Fatalf("spindle-on with disable: got true, want false")
	}
}

func TestSurface_CommandReflectsSupervisorWrites(t *testing.T) {
	s, _ := NewSurface("nowforever_vfd", false)
	c := s.Component()

	if err := c.SetBit(SigSpindleOn, true); err != nil {
		t.Fatalf("SetBit err=%v", err)
	}
	if err := c.SetBit(SigSpindleFwd, true); err != nil {
		t.Fatalf("SetBit err=%v", err)
	}
	if err := c.SetFloat(SigSpeedCommand, 12000); err != nil {
		t.Fatalf("SetFloat err=%v", err)
	}

	cmd, _ := s.Command()
	if !cmd.Enable || !cmd.Forward || cmd.Reverse {
		t.Fatalf("command: got %+v", cmd)
	}
	if cmd.Speed != 12000 {
		t.Fatalf("speed: got %v, want 12000", cmd.Speed)
	}
}

func TestSurface_OutputsAreReadOnlyToSupervisor(t *testing.T) {
	s, _ := NewSurface("nowforever_vfd", false)
	c := s.Component()

	if err := c.SetBit(SigAtSpeed, true); err == nil {
		t.Fatalf("expected read-only error for %s", SigAtSpeed)
	}
	if err := c.SetFloat(SigFreqOut, 1); err == nil {
		t.Fatalf("expected read-only error for %s", SigFreqOut)
	}
	if err := c.SetU32(SigModbusErrors, 1); err == nil {
		t.Fatalf("expected read-only error for %s", SigModbusErrors)
	}
}

func TestSurface_PublishReadBack(t *testing.T) {
	s, _ := NewSurface("nowforever_vfd", false)
	c := s.Component()

	s.Publish(vfd.Outputs{
		StatusWord:   1,
		FreqOut:      10.0,
		SpeedFB:      600,
		AtSpeed:      true,
		ModbusErrors: 7,
	})

	if v, _ := c.U32(SigInverterStatus); v != 1 {
		t.Fatalf("inverter-status: got %d, want 1", v)
	}
	if v, _ := c.Float(SigFreqOut); v != 10.0 {
		t.Fatalf("frequency-out: got %v, want 10.0", v)
	}
	if v, _ := c.Float(SigSpeedFB); v != 600 {
		t.Fatalf("spindle-speed-fb: got %v, want 600", v)
	}
	if v, _ := c.Bit(SigAtSpeed); !v {
		t.Fatalf("at-speed: got false, want true")
	}
	if v, _ := c.U32(SigModbusErrors); v != 7 {
		t.Fatalf("modbus-errors: got %d, want 7", v)
	}
}

func TestSurface_SetPeriodWritesBack(t *testing.T) {
	s, _ := NewSurface("nowforever_vfd", false)

	s.SetPeriod(2.0)
	if v, _ := s.Component().Float(SigPeriod); v != 2.0 {
		t.Fatalf("period-seconds: got %v, want 2.0", v)
	}
}

func TestComponent_DuplicateSignal(t *testing.T) {
	c := NewComponent("x")
	if err := c.AddBit("a", In, false); err != nil {
		t.Fatalf("AddBit err=%v", err)
	}
	if err := c.AddFloat("a", In, 0); err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestComponent_TypeMismatch(t *testing.T) {
	c := NewComponent("x")
	if err := c.AddBit("a", In, false); err != nil {
		t.Fatalf("AddBit err=%v", err)
	}
	if _, err := c.Float("a"); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}
