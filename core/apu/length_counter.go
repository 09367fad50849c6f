package apu

// lengthCounterLUT is the 32-entry duration table shared by all four
// note-gated channels, indexed by the 5-bit length code written to
// $4003/$4007/$400B/$400F.
var lengthCounterLUT = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// lengthCounter is the note-duration gate shared by all four non-DMC
// channels. load stages a reload rather than applying it immediately:
// reloadPending must run after the frame sequencer has clocked the counter
// for this cycle, or a length-clocking edge and a $4003-style write landing
// on the same cycle would double-count.
type lengthCounter struct {
	channel Channel
	newHalt bool

	enabled  bool
	halt     bool
	counter  uint8
	reload   uint8
	lastSeen uint8

	apu apu
}

func (lc *lengthCounter) init(halt bool) {
	lc.apu.SetNeedToRun()
	lc.newHalt = halt
}

func (lc *lengthCounter) load(val uint8) {
	if !lc.enabled {
		return
	}
	lc.reload = lengthCounterLUT[val]
	lc.lastSeen = lc.counter
	lc.apu.SetNeedToRun()
}

// reset always drops enabled; a soft reset additionally spares the
// triangle's counter, since triangle length is unaffected by a soft reset
// on real hardware.
func (lc *lengthCounter) reset(soft bool) {
	lc.enabled = false
	if soft && lc.channel == ChanTriangle {
		return
	}
	lc.halt = false
	lc.counter = 0
	lc.newHalt = false
	lc.reload = 0
	lc.lastSeen = 0
}

func (lc *lengthCounter) status() bool   { return lc.counter > 0 }
func (lc *lengthCounter) isHalted() bool { return lc.halt }

// reloadPending applies a staged load, but only if the counter wasn't
// already clocked to a different value by the frame sequencer this same
// cycle.
func (lc *lengthCounter) reloadPending() {
	if lc.reload != 0 {
		if lc.counter == lc.lastSeen {
			lc.counter = lc.reload
		}
		lc.reload = 0
	}
	lc.halt = lc.newHalt
}

func (lc *lengthCounter) tick() {
	if lc.counter > 0 && !lc.halt {
		lc.counter--
	}
}

func (lc *lengthCounter) setEnabled(enabled bool) {
	if !enabled {
		lc.counter = 0
	}
	lc.enabled = enabled
}
