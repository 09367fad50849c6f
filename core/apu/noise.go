package apu

// Noise implements the $400C-$400F noise channel: a 15-bit LFSR clocked
// by a 16-entry period table, gated by envelope and length counter.
//
//	      Timer --> Shift Register   Length Counter
//	                    |                |
//	                    v                v
//	Envelope -------> Gate ----------> Gate --> (to mixer)
type Noise struct {
	envelope envelope
	timer    timer

	lfsr uint16 // 15-bit linear feedback shift register
	mode bool   // true selects the short (bit 6) feedback tap
}

func NewNoise(a apu, mx mixer) Noise {
	n := Noise{}
	n.envelope.lengthCounter.channel = ChanNoise
	n.envelope.lengthCounter.apu = a
	n.timer.channel = ChanNoise
	n.timer.mixer = mx
	n.lfsr = 1
	return n
}

// noisePeriodLUT is the NTSC noise timer period table, in CPU-cycle units
// (already doubled to compensate for the divide-by-two the real timer
// applies, matching Pulse.setPeriod's convention).
var noisePeriodLUT = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160,
	202, 254, 380, 508, 762, 1016, 2034, 4068,
}

// WriteVolume handles $400C: envelope/constant-volume and length-halt.
func (n *Noise) WriteVolume(val uint8) {
	n.envelope.init(val)
}

// WritePeriod handles $400E: LFSR mode and timer period select.
func (n *Noise) WritePeriod(val uint8) {
	n.timer.period = noisePeriodLUT[val&0x0F] - 1
	n.mode = val&0x80 != 0
}

// WriteLength handles $400F: length counter reload, plus an envelope
// restart shared with the pulse/noise "length" registers.
func (n *Noise) WriteLength(val uint8) {
	n.envelope.lengthCounter.load(val >> 3)
	n.envelope.restart()
}

func (n *Noise) run(targetCycle uint32) {
	for n.timer.run(targetCycle) {
		tap := uint(1)
		if n.mode {
			tap = 6
		}
		feedback := (n.lfsr & 1) ^ ((n.lfsr >> tap) & 1)
		n.lfsr >>= 1
		n.lfsr |= feedback << 14

		if n.isMuted() {
			n.timer.addOutput(0)
		} else {
			n.timer.addOutput(int8(n.envelope.volumeOut()))
		}
	}
}

// isMuted reports spec.md's NoiseChannel invariant: the sample bit is the
// LFSR's bit 0, so a set bit 0 silences the channel regardless of the
// current envelope volume.
func (n *Noise) isMuted() bool {
	return n.lfsr&1 == 1
}

func (n *Noise) tickEnvelope()        { n.envelope.tick() }
func (n *Noise) tickLengthCounter()   { n.envelope.lengthCounter.tick() }
func (n *Noise) reloadLengthCounter() { n.envelope.lengthCounter.reloadPending() }
func (n *Noise) endFrame()            { n.timer.endFrame() }
func (n *Noise) setEnabled(en bool)   { n.envelope.lengthCounter.setEnabled(en) }
func (n *Noise) status() bool         { return n.envelope.lengthCounter.status() }
func (n *Noise) output() uint8        { return uint8(n.timer.lastOutput()) }

func (n *Noise) reset() {
	n.envelope.reset(false)
	n.timer.reset(false)
	n.timer.period = noisePeriodLUT[0] - 1
	n.lfsr = 1
	n.mode = false
}
