// internal/vfd/codec.go
package vfd

import (
	"fmt"
	"math"
)

// DecodeStatus converts the raw status block into a Status snapshot.
// Scale factors are fixed by the device register map.
// No IO. No side effects.
func DecodeStatus(regs []uint16) (Status, error) {
	if len(regs) != int(StatusRegCount) {
		return Status{}, fmt.Errorf("vfd: status block must be %d registers, got %d", StatusRegCount, len(regs))
	}

	return Status{
		Word:       regs[idxStatusWord],
		FreqOutRaw: regs[idxFreqOut],

		FreqSet:   float64(regs[idxFreqSet]) * 0.01,
		FreqOut:   float64(regs[idxFreqOut]) * 0.01,
		Current:   float64(regs[idxCurrent]) * 0.1,
		Volt:      float64(regs[idxVolt]) * 0.1,
		DCBusVolt: float64(regs[idxDCBusVolt]),
		LoadPct:   float64(regs[idxLoadPct]) * 0.1,
		Temp:      float64(regs[idxTemp]),
	}, nil
}

// TargetFrequency maps a commanded speed onto the drive frequency range.
// The sign of the speed is discarded: direction travels in the control
// word only, never in the frequency word.
func TargetFrequency(speed, maxHz, maxSpeed float64) float64 {
	return math.Abs(speed) * maxHz / maxSpeed
}

// EncodeFrequency converts a frequency in Hz into the drive's 0.01 Hz
// register unit, truncating toward zero and saturating at maxHz.
// The clamp happens in the float domain so oversized commands cannot
// overflow the register conversion.
func EncodeFrequency(hz, maxHz float64) uint16 {
	ceil := maxHz * 100
	if ceil > math.MaxUint16 {
		ceil = math.MaxUint16
	}

	v := math.Abs(hz) * 100
	if v > ceil {
		v = ceil
	}
	return uint16(v) // truncation, not rounding
}
