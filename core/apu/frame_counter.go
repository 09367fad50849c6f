package apu

// stepCycles gives, per mode, the CPU-cycle count at which each frame
// sequencer step fires. Mode 0 has 4 steps and wraps after the fourth;
// mode 1 has 5 and never raises the frame IRQ.
var stepCycles = [2][5]uint32{
	{7457, 14913, 22371, 29829, 0},
	{7457, 14913, 22371, 29829, 37281},
}

// halfFrameStep and quarterFrameStep report whether the given step index
// (within the mode's step count) clocks the length-counter/sweep units
// ("half frame") and/or the envelope/triangle-linear units ("quarter
// frame"), per spec.md's frame sequencer table.
func halfFrameStep(mode uint8, step int) bool {
	if mode == 0 {
		return step == 1 || step == 3
	}
	return step == 0 || step == 2
}

func quarterFrameStep(mode uint8, step int) bool {
	if mode == 0 {
		return true
	}
	return step != 4
}

// FrameCounter is the APU's ~240 Hz sequencer: it divides the CPU clock
// into 4 or 5 steps per cycle and fans a quarter-frame/half-frame clock
// out to every channel, plus an IRQ in 4-step mode.
type FrameCounter struct {
	mode       uint8 // 0: 4-step, 1: 5-step
	step       int
	cycle      uint32
	inhibitIRQ bool
	irqFlag    bool
}

func (fc *FrameCounter) numSteps() int {
	if fc.mode == 0 {
		return 4
	}
	return 5
}

// Write handles $4017. Bit 7 selects 5-step mode and, per spec.md,
// immediately clocks the length/sweep and envelope/linear units once;
// bit 6 inhibits (and, if set, clears) the frame IRQ.
func (fc *FrameCounter) Write(val uint8, apu *APU) {
	fc.mode = (val >> 7) & 1
	fc.inhibitIRQ = val&0x40 != 0
	if fc.inhibitIRQ {
		fc.irqFlag = false
	}
	fc.step = 0
	fc.cycle = 0
	if fc.mode == 1 {
		apu.quarterFrame()
		apu.halfFrame()
	}
}

// tick advances the sequencer by one CPU cycle, firing quarter/half frame
// clocks and the frame IRQ as their step cycle counts are reached.
func (fc *FrameCounter) tick(apu *APU) {
	fc.cycle++
	target := stepCycles[fc.mode][fc.step]
	if fc.cycle < target {
		return
	}

	if quarterFrameStep(fc.mode, fc.step) {
		apu.quarterFrame()
	}
	if halfFrameStep(fc.mode, fc.step) {
		apu.halfFrame()
	}
	if fc.mode == 0 && fc.step == 3 && !fc.inhibitIRQ {
		fc.irqFlag = true
	}

	fc.step++
	if fc.step >= fc.numSteps() {
		fc.step = 0
		fc.cycle = 0
	}
}

func (fc *FrameCounter) reset() {
	fc.mode = 0
	fc.step = 0
	fc.cycle = 0
	fc.inhibitIRQ = false
	fc.irqFlag = false
}
