package apu

// APU is the NES audio processing unit: two pulse channels, a triangle, a
// noise channel, a DMC, a frame sequencer, and the mixer that combines
// them. It implements core.APURegisters (ReadRegister/WriteRegister) so
// the console's CPU bus can map it directly at $4000-$4017 (minus the
// controller ports at $4016 write and $4016/$4017 read, which the console
// routes to core.Input instead).
type APU struct {
	Square1  Pulse
	Square2  Pulse
	Triangle Triangle
	Noise    Noise
	DMC      DMC

	frameCounter FrameCounter
	mixer        *Mixer

	cycle   uint32
	enabled bool
}

// New builds an APU resampling its output to sampleRate Hz (0 selects the
// mixer's default), with every channel wired to the shared mixer. The
// console still owes it a call to SetDMCBusReader before running, and
// polls IRQPending itself rather than being called back — the frame
// sequencer and DMC both just latch a flag that IRQPending reports.
func New(sampleRate int) *APU {
	a := &APU{mixer: NewMixer(sampleRate), enabled: true}
	a.Square1 = NewPulse(a, a.mixer, Square1, true)
	a.Square2 = NewPulse(a, a.mixer, Square2, false)
	a.Triangle = NewTriangle(a, a.mixer)
	a.Noise = NewNoise(a, a.mixer)
	a.DMC = NewDMC(a.mixer)
	return a
}

// SetNeedToRun satisfies the apu interface consumed by LengthCounter; a
// no-op here since every channel is caught up every Tick.
func (a *APU) SetNeedToRun() {}

// SetDMCBusReader wires the DMC's sample DMA to the CPU's memory bus.
func (a *APU) SetDMCBusReader(read func(addr uint16) uint8) {
	a.DMC.BusReader = read
}

func (a *APU) quarterFrame() {
	a.Square1.tickEnvelope()
	a.Square2.tickEnvelope()
	a.Triangle.tickLinearCounter()
	a.Noise.tickEnvelope()
}

func (a *APU) halfFrame() {
	a.Square1.tickLengthCounter()
	a.Square2.tickLengthCounter()
	a.Triangle.tickLengthCounter()
	a.Noise.tickLengthCounter()
	a.Square1.tickSweep()
	a.Square2.tickSweep()
}

// Tick advances the APU by one CPU cycle. Called once per CPU cycle by
// the console's master loop (spec.md §5's "APU advances by one half-APU
// tick per CPU cycle"): pulse/noise/DMC timers were pre-doubled at write
// time to model their real divide-by-two, so every channel is simply run
// up to the current cycle count every tick.
func (a *APU) Tick() {
	a.cycle++
	a.frameCounter.tick(a)

	// Writes to $4003/$4007/$400B/$400F stage a length-counter reload but
	// don't apply it until the frame sequencer has had a chance to clock
	// the counter first; applying it here, after tick and before run,
	// reproduces that ordering every cycle instead of only at catch-up
	// boundaries.
	a.Square1.reloadLengthCounter()
	a.Square2.reloadLengthCounter()
	a.Triangle.reloadLengthCounter()
	a.Noise.reloadLengthCounter()

	a.Square1.run(a.cycle)
	a.Square2.run(a.cycle)
	a.Triangle.run(a.cycle)
	a.Noise.run(a.cycle)
	a.DMC.run(a.cycle)
}

// EndFrame flushes this video frame's audio into the mixer's resampled
// output ring and rebases every channel's internal cycle counters to
// zero, matching the teacher's per-frame timer rebasing.
func (a *APU) EndFrame() {
	a.mixer.EndFrame(a.cycle)

	a.Square1.endFrame()
	a.Square2.endFrame()
	a.Triangle.endFrame()
	a.Noise.endFrame()
	a.DMC.endFrame()

	a.cycle = 0
}

// ReadSamples drains resampled 16-bit PCM audio produced since the last
// call. Safe to call from a separate audio-callback goroutine.
func (a *APU) ReadSamples(out []int16) int {
	return a.mixer.ReadSamples(out)
}

// SetVolumes scales each channel's contribution to the final mix; see
// Mixer.SetVolumes.
func (a *APU) SetVolumes(square1, square2, triangle, noise, dmc float64) {
	a.mixer.SetVolumes(square1, square2, triangle, noise, dmc)
}

// status implements $4015's read value: channel-active bits plus the
// frame and DMC IRQ flags.
func (a *APU) status() uint8 {
	var s uint8
	if a.Square1.status() {
		s |= 0x01
	}
	if a.Square2.status() {
		s |= 0x02
	}
	if a.Triangle.status() {
		s |= 0x04
	}
	if a.Noise.status() {
		s |= 0x08
	}
	if a.DMC.status() {
		s |= 0x10
	}
	if a.frameCounter.irqFlag {
		s |= 0x40
	}
	if a.DMC.irqPending() {
		s |= 0x80
	}
	return s
}

// IRQPending reports whether the frame sequencer or the DMC currently
// assert the shared APU IRQ line. Polled by the console every CPU
// instruction and OR'd into CPU.IRQ alongside the mapper's line.
func (a *APU) IRQPending() bool {
	return a.frameCounter.irqFlag || a.DMC.irqPending()
}

// ReadRegister implements core.APURegisters. Only $4015 is readable;
// every other APU address is write-only and returns open bus (0).
func (a *APU) ReadRegister(addr uint16, peek bool) uint8 {
	if addr != 0x4015 {
		return 0
	}
	s := a.status()
	if !peek {
		a.frameCounter.irqFlag = false
	}
	return s
}

// WriteRegister implements core.APURegisters, dispatching $4000-$4013 to
// the owning channel and handling $4015/$4017 locally.
func (a *APU) WriteRegister(addr uint16, val uint8) {
	switch addr {
	case 0x4000:
		a.Square1.WriteDuty(val)
	case 0x4001:
		a.Square1.WriteSweep(val)
	case 0x4002:
		a.Square1.WriteTimerLo(val)
	case 0x4003:
		a.Square1.WriteTimerHi(val)
	case 0x4004:
		a.Square2.WriteDuty(val)
	case 0x4005:
		a.Square2.WriteSweep(val)
	case 0x4006:
		a.Square2.WriteTimerLo(val)
	case 0x4007:
		a.Square2.WriteTimerHi(val)
	case 0x4008:
		a.Triangle.WriteLinear(val)
	case 0x400A:
		a.Triangle.WriteTimerLo(val)
	case 0x400B:
		a.Triangle.WriteTimerHi(val)
	case 0x400C:
		a.Noise.WriteVolume(val)
	case 0x400E:
		a.Noise.WritePeriod(val)
	case 0x400F:
		a.Noise.WriteLength(val)
	case 0x4010:
		a.DMC.WriteFlags(val)
	case 0x4011:
		a.DMC.WriteDAC(val)
	case 0x4012:
		a.DMC.WriteSampleAddr(val)
	case 0x4013:
		a.DMC.WriteSampleLen(val)
	case 0x4015:
		a.enabled = true
		a.Square1.setEnabled(val&0x01 != 0)
		a.Square2.setEnabled(val&0x02 != 0)
		a.Triangle.setEnabled(val&0x04 != 0)
		a.Noise.setEnabled(val&0x08 != 0)
		a.DMC.setEnabled(val&0x10 != 0)
		a.DMC.clearIRQ()
	case 0x4017:
		a.frameCounter.Write(val, a)
	}
}

// Reset reinitializes every channel and the frame sequencer to their
// power-up state.
func (a *APU) Reset() {
	a.cycle = 0
	a.enabled = true
	a.Square1.reset()
	a.Square2.reset()
	a.Triangle.reset()
	a.Noise.reset()
	a.DMC.reset()
	a.frameCounter.reset()
	a.mixer.Reset()
}
