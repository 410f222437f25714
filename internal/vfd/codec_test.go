// internal/vfd/codec_test.go
package vfd

import "testing"

func TestDecodeStatus_KnownBlock(t *testing.T) {
	regs := []uint16{1, 1000, 1000, 50, 2200, 300, 10, 45}

	st, err := DecodeStatus(regs)
	if err != nil {
		t.Fatalf("DecodeStatus err=%v", err)
	}

	if st.Word != 1 {
		t.Fatalf("status word: got %d, want 1", st.Word)
	}
	if st.State() != RunForward {
		t.Fatalf("state: got %v, want run-forward", st.State())
	}
	if st.FreqSet != 10.0 {
		t.Fatalf("freq set: got %v, want 10.0", st.FreqSet)
	}
	if st.FreqOut != 10.0 {
		t.Fatalf("freq out: got %v, want 10.0", st.FreqOut)
	}
	if st.Current != 5.0 {
		t.Fatalf("current: got %v, want 5.0", st.Current)
	}
	if st.Volt != 220.0 {
		t.Fatalf("voltage: got %v, want 220.0", st.Volt)
	}
	if st.DCBusVolt != 300.0 {
		t.Fatalf("dc bus: got %v, want 300.0", st.DCBusVolt)
	}
	if st.LoadPct != 1.0 {
		t.Fatalf("load: got %v, want 1.0", st.LoadPct)
	}
	if st.Temp != 45.0 {
		t.Fatalf("temp: got %v, want 45.0", st.Temp)
	}
	if st.Fault() {
		t.Fatalf("fault: got true, want false")
	}
}

func TestDecodeStatus_WrongLength(t *testing.T) {
	if _, err := DecodeStatus([]uint16{1, 2, 3}); err == nil {
		t.Fatalf("expected error for short block, got nil")
	}
	if _, err := DecodeStatus(make([]uint16, 9)); err == nil {
		t.Fatalf("expected error for long block, got nil")
	}
}

func TestDecodeStatus_FaultBits(t *testing.T) {
	for _, bit := range []uint16{1 << 3, 1 << 4, 1<<3 | 1<<4} {
		regs := make([]uint16, StatusRegCount)
		regs[0] = bit
		st, err := DecodeStatus(regs)
		if err != nil {
			t.Fatalf("DecodeStatus err=%v", err)
		}
		if !st.Fault() {
			t.Fatalf("word=%#x: expected fault", bit)
		}
	}
}

func TestEncodeFrequency_Saturates(t *testing.T) {
	const maxHz = 400.0

	cases := []struct {
		hz   float64
		want uint16
	}{
		{0, 0},
		{10.0, 1000},
		{200.0, 20000},
		{399.999, 39999},
		{400.0, 40000},
		{400.01, 40000}, // above ceiling: clamped, not rejected
		{100000, 40000},
		{-200.0, 20000}, // sign stripped
	}

	for _, c := range cases {
		if got := EncodeFrequency(c.hz, maxHz); got != c.want {
			t.Fatalf("EncodeFrequency(%v): got %d, want %d", c.hz, got, c.want)
		}
	}
}

func TestEncodeFrequency_TruncatesTowardZero(t *testing.T) {
	if got := EncodeFrequency(10.009, 400); got != 1000 {
		t.Fatalf("got %d, want 1000", got)
	}
}

func TestEncodeFrequency_NeverExceedsCeiling(t *testing.T) {
	const maxHz = 400.0
	ceil := uint16(maxHz * 100)

	// Round-trip every raw value in range: decode to Hz, re-encode,
	// and the result must stay at or below the ceiling.
	for raw := 0; raw <= 40000; raw += 7 {
		hz := float64(raw) * 0.01
		got := EncodeFrequency(hz, maxHz)
		if got > ceil {
			t.Fatalf("raw=%d: encoded %d exceeds ceiling %d", raw, got, ceil)
		}
	}
}

func TestTargetFrequency(t *testing.T) {
	// 12000 RPM at 24000 RPM reference over 400 Hz -> 200 Hz -> word 20000.
	hz := TargetFrequency(12000, 400, 24000)
	if hz != 200.0 {
		t.Fatalf("target: got %v, want 200.0", hz)
	}
	if got := EncodeFrequency(hz, 400); got != 20000 {
		t.Fatalf("encoded: got %d, want 20000", got)
	}

	// Negative command carries no sign into the frequency.
	if hz := TargetFrequency(-12000, 400, 24000); hz != 200.0 {
		t.Fatalf("negative target: got %v, want 200.0", hz)
	}
}
