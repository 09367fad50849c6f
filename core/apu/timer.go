package apu

// timer is the divide-by-N counter driving every channel's sequencer: it
// tracks the cycle its output last changed at and forwards only the delta
// to the mixer, so the mixer never has to sample every channel every cycle.
type timer struct {
	prevCycle uint32
	countdown uint16
	period    uint16
	lastOut   int8

	channel Channel
	mixer   mixer
}

// reset clears the countdown, period and cycle bookkeeping but preserves
// the channel/mixer wiring a channel set up at construction.
func (t *timer) reset(_ bool) {
	t.countdown = 0
	t.period = 0
	t.prevCycle = 0
	t.lastOut = 0
}

// addOutput records a step in the channel's instantaneous DAC output,
// timestamped at the cycle the timer last fired, and forwards only the
// delta to the mixer.
func (t *timer) addOutput(out int8) {
	if out == t.lastOut {
		return
	}
	t.mixer.AddDelta(t.channel, t.prevCycle, int16(out-t.lastOut))
	t.lastOut = out
}

func (t *timer) lastOutput() int8 { return t.lastOut }

// run catches the timer up to targetCycle. Each call that finds a full
// period elapsed since prevCycle reloads the countdown and returns true;
// callers loop on it until it returns false, meaning targetCycle has been
// fully absorbed without a fresh period boundary.
func (t *timer) run(targetCycle uint32) bool {
	elapsed := uint16(targetCycle - t.prevCycle)
	if elapsed <= t.countdown {
		t.countdown -= elapsed
		t.prevCycle = targetCycle
		return false
	}
	t.prevCycle += uint32(t.countdown) + 1
	t.countdown = t.period
	return true
}

func (t *timer) endFrame() { t.prevCycle = 0 }
