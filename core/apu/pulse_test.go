package apu

import "testing"

type stubAPU struct{}

func (stubAPU) SetNeedToRun() {}

type stubMixer struct {
	deltas []int16
}

func (m *stubMixer) AddDelta(ch Channel, time uint32, delta int16) {
	m.deltas = append(m.deltas, delta)
}

func newTestPulse(channel1 bool) (*Pulse, *stubMixer) {
	mx := &stubMixer{}
	p := NewPulse(stubAPU{}, mx, Square1, channel1)
	return &p, mx
}

// TestPulseMutedShortPeriod checks property #8: a pulse whose period is
// below 8 contributes 0 regardless of duty/volume.
func TestPulseMutedShortPeriod(t *testing.T) {
	p, _ := newTestPulse(true)
	p.WriteDuty(0xBF) // duty 2, constant volume 15
	p.WriteTimerLo(0x02)
	p.WriteTimerHi(0x00) // realPeriod = 0x002, well under 8

	if !p.isMuted() {
		t.Fatal("pulse with period < 8 should be muted")
	}
	p.updateOutput()
	if p.timer.lastOutput() != 0 {
		t.Errorf("output with period < 8 = %d, want 0", p.timer.lastOutput())
	}
}

// TestPulseMutedSweepOverflow checks the other half of property #8: a
// sweep target beyond 0x7FF silences the channel even with a valid period.
func TestPulseMutedSweepOverflow(t *testing.T) {
	p, _ := newTestPulse(true)
	p.WriteDuty(0xBF)
	p.WriteTimerHi(0x07)
	p.WriteTimerLo(0xFF) // realPeriod = 0x7FF
	p.WriteSweep(0x81)   // enabled, shift=1, positive: target = 0x7FF + 0x3FF > 0x7FF

	if !p.isMuted() {
		t.Fatalf("pulse with sweep target %#x should be muted", p.sweepTarget)
	}
	p.updateOutput()
	if p.timer.lastOutput() != 0 {
		t.Errorf("output with overflowing sweep target = %d, want 0", p.timer.lastOutput())
	}
}

func TestPulseUnmutedProducesOutput(t *testing.T) {
	p, _ := newTestPulse(true)
	p.WriteDuty(0xBF) // duty 2 has a 1 bit at dutyPos 4-7; constant volume 15
	p.setEnabled(true) // as a $4015 write would; a disabled length counter ignores loads
	p.WriteTimerHi(0x00)
	p.reloadLengthCounter() // apply the staged length load, as APU.Tick does
	p.WriteTimerLo(0xFE)    // realPeriod = 0x0FE, comfortably above 8

	if p.isMuted() {
		t.Fatal("pulse with a valid period and no sweep should not be muted")
	}
	p.dutyPos = 4
	p.updateOutput()
	if p.timer.lastOutput() == 0 {
		t.Error("expected non-zero output for an unmuted pulse at a duty-high step")
	}
}
