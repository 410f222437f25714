// internal/cycle/cycle.go
package cycle

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/tamzrod/vfd-bridge/internal/vfd"
)

// Period clamp bounds, applied at the start of every iteration.
// Out-of-range values are clamped, not rejected.
const (
	minPeriodSec = 0.001
	maxPeriodSec = 2.0
)

// Bus abstracts the Modbus operations the cycle needs.
// Retries and failure counting live behind it; a returned error means the
// transaction already exhausted its retries.
type Bus interface {
	ReadRegisters(address, quantity uint16) ([]uint16, error)
	WriteRegister(address, value uint16) error
	Errors() uint32
}

// Surface is the signal set the cycle reads commands from and publishes
// outputs to.
type Surface interface {
	Command() (vfd.Command, vfd.Tuning)
	SetPeriod(seconds float64)
	Publish(vfd.Outputs)
}

// Config is the immutable cycle configuration.
type Config struct {
	MaxFreq  float64 // drive frequency at full scale, Hz
	MaxSpeed float64 // mechanical speed at MaxFreq, RPM
	Verbose  bool
}

// Cycle is the per-period orchestrator: read, decide, write, derive.
// It owns the transport and the status snapshot exclusively; it runs on
// one goroutine with no locking of its own state.
type Cycle struct {
	cfg     Config
	bus     Bus
	surface Surface

	status vfd.Status // last good snapshot; kept stale on read failure
	fault  bool       // sticky; cleared only by process restart
}

// New validates the configuration and builds a cycle.
// Non-positive scaling parameters are configuration errors, raised here
// rather than per cycle.
func New(cfg Config, bus Bus, surface Surface) (*Cycle, error) {
	if cfg.MaxFreq <= 0 {
		return nil, errors.New("cycle: max frequency must be > 0")
	}
	if cfg.MaxSpeed <= 0 {
		return nil, errors.New("cycle: max speed must be > 0")
	}
	if bus == nil {
		return nil, errors.New("cycle: bus required")
	}
	if surface == nil {
		return nil, errors.New("cycle: surface required")
	}
	return &Cycle{cfg: cfg, bus: bus, surface: surface}, nil
}

// RunOnce performs exactly one control cycle and returns the effective
// period to sleep before the next one. All transport failures are
// absorbed: the cycle proceeds with the stale snapshot.
func (c *Cycle) RunOnce() time.Duration {
	// 1. Read and decode the status block. On failure the previous
	// snapshot stays in place; the bus has already logged and counted.
	regs, err := c.bus.ReadRegisters(vfd.RegStatusBase, vfd.StatusRegCount)
	if err == nil {
		st, derr := vfd.DecodeStatus(regs)
		if derr != nil {
			log.Printf("cycle: %v", derr)
		} else {
			c.status = st
		}
	}

	cmd, tun := c.surface.Command()

	// 2. State decision against the device's last reported state. A write
	// is issued only on disagreement, so a confirmed transition is not
	// re-sent every period.
	if next, write := vfd.Decide(cmd, c.status.State()); write {
		if c.cfg.Verbose {
			log.Printf("cycle: commanding %v (device reports %v)", next, c.status.State())
		}
		// A failed write is retried naturally next cycle: the device
		// still disagrees with the command.
		_ = c.bus.WriteRegister(vfd.RegControl, uint16(next))
	}

	// Frequency write, suppressed while the device already reports the
	// target in its output-frequency register.
	hz := vfd.TargetFrequency(cmd.Speed, c.cfg.MaxFreq, c.cfg.MaxSpeed)
	if target := vfd.EncodeFrequency(hz, c.cfg.MaxFreq); target != c.status.FreqOutRaw {
		_ = c.bus.WriteRegister(vfd.RegFrequency, target)
	}

	// 3. Derived outputs from the (possibly stale) snapshot.
	c.surface.Publish(c.derive(cmd, tun))

	// 4. Effective period, clamped and written back when normalized.
	eff := tun.PeriodSec
	if eff < minPeriodSec {
		eff = minPeriodSec
	} else if eff > maxPeriodSec {
		eff = maxPeriodSec
	}
	if eff != tun.PeriodSec {
		c.surface.SetPeriod(eff)
	}
	return time.Duration(eff * float64(time.Second))
}

func (c *Cycle) derive(cmd vfd.Command, tun vfd.Tuning) vfd.Outputs {
	st := c.status

	if st.Fault() {
		c.fault = true
	}

	out := vfd.Outputs{
		StatusWord:  st.Word,
		FreqCommand: st.FreqSet,
		FreqOut:     st.FreqOut,
		Current:     st.Current,
		Volt:        st.Volt,
		DCBusVolt:   st.DCBusVolt,
		LoadPct:     st.LoadPct,
		Temp:        st.Temp,

		Fault:        c.fault,
		Stopped:      st.FreqOutRaw == 0,
		SpeedFB:      st.FreqOut * c.cfg.MaxSpeed / c.cfg.MaxFreq,
		ModbusErrors: c.bus.Errors(),
	}

	// at-speed requires an enabled spindle and a non-zero output
	// frequency; the zero case would otherwise divide by zero.
	if cmd.Enable && st.FreqOutRaw != 0 {
		out.AtSpeed = math.Abs(1-st.FreqSet/st.FreqOut) < tun.Tolerance
	}

	return out
}

// Run repeats the cycle until ctx is cancelled. Cancellation is observed
// at the top of each iteration and during the inter-cycle sleep; no
// transaction is preempted mid-flight.
func (c *Cycle) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		period := c.RunOnce()

		select {
		case <-ctx.Done():
			return
		case <-time.After(period):
		}
	}
}
