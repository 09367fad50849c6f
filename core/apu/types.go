// Package apu implements the NES APU: two pulse channels, a triangle, a
// noise channel and a DMC, driven by a 4-step or 5-step frame sequencer
// and combined by the canonical non-linear mixer. Unlike the teacher's
// Mesen-derived APU, which defers channel state to a lazily-invoked
// Run(targetCycle) catch-up before every register access, this one is
// ticked once per CPU cycle by the console's master loop and always keeps
// state current.
package apu

// Channel names one of the five APU voices, used to key mixer deltas and
// to scope a length counter/timer to the length table / DAC weight it
// belongs to.
type Channel uint8

const (
	Square1 Channel = iota
	Square2
	ChanTriangle
	ChanNoise
	ChanDMC
)

// CPUClockNTSC is the NES/Famicom CPU clock in Hz, the basis for every
// timer period and frame-sequencer step count in this package.
const CPUClockNTSC = 1789773

type mixer interface {
	AddDelta(ch Channel, time uint32, delta int16)
}

// apu is the callback surface a lengthCounter needs back into its owning
// APU. SetNeedToRun is a no-op here: every channel is caught up every CPU
// cycle instead of lazily, so there's never a stale sample to force a
// catch-up on.
type apu interface {
	SetNeedToRun()
}
