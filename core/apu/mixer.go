package apu

import (
	"slices"

	"github.com/arl/blip"
)

// defaultSampleRate is the PCM output rate a Mixer runs at when nothing
// else is requested; spec.md calls out 44.1 kHz as the typical target.
const defaultSampleRate = 44100

// ringCapacity bounds the lock-free sample ring described in spec.md §5:
// large enough to absorb a few frames of host stall before the APU starts
// dropping the oldest samples.
const ringCapacity = 1 << 15 // must be a power of two

// Mixer accumulates per-channel volume deltas timestamped in CPU cycles,
// combines them with the canonical non-linear NES mixer formula once per
// video frame, and resamples the result to the host rate with a
// band-limited synthesis buffer (github.com/arl/blip) rather than naive
// decimation. The result lands in a single-producer/single-consumer ring
// buffer: the APU (producer) never blocks, and drops the oldest sample on
// overflow, exactly as spec.md's host-audio-thread contract requires.
type Mixer struct {
	buf *blip.Buffer

	timestamps []uint32
	deltas     [5][]int16 // per-Channel delta events, indexed in parallel with timestamps' positions
	current    [5]int16
	prevOut    int16

	outbuf []int16
	ring   *sampleRing

	volume [5]float64 // per-Channel gain, applied in sample()
}

// NewMixer builds a Mixer resampling to sampleRate Hz. A sampleRate of 0
// falls back to defaultSampleRate.
func NewMixer(sampleRate int) *Mixer {
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	m := &Mixer{
		buf:  blip.NewBuffer(sampleRate / 10),
		ring: newSampleRing(ringCapacity),
	}
	m.buf.SetRates(CPUClockNTSC, float64(sampleRate))
	for i := range m.volume {
		m.volume[i] = 1.0
	}
	return m
}

// SetVolumes scales each channel's contribution to the mix independently,
// from a host-supplied config.AudioConfig. A scalar of 0 mutes the channel
// outright; 1 is the default, unscaled level.
func (m *Mixer) SetVolumes(square1, square2, triangle, noise, dmc float64) {
	m.volume = [5]float64{square1, square2, triangle, noise, dmc}
}

func (m *Mixer) Reset() {
	m.buf.Clear()
	m.timestamps = m.timestamps[:0]
	for i := range m.deltas {
		m.deltas[i] = m.deltas[i][:0]
	}
	m.current = [5]int16{}
	m.prevOut = 0
}

// AddDelta records a signed step change in ch's DAC output at the given
// CPU-cycle timestamp within the current frame. Called by each channel's
// Timer whenever its instantaneous output value changes.
func (m *Mixer) AddDelta(ch Channel, time uint32, delta int16) {
	if delta == 0 {
		return
	}
	m.timestamps = append(m.timestamps, time)
	idx := len(m.timestamps) - 1
	for len(m.deltas[ch]) <= idx {
		m.deltas[ch] = append(m.deltas[ch], 0)
	}
	m.deltas[ch][idx] = delta
}

// pulseOut and tndOut implement the two halves of the canonical NES DAC
// mixing formula from spec.md §4.4.
func pulseOut(p1, p2 float64) float64 {
	if p1+p2 == 0 {
		return 0
	}
	return 95.88 / (8128.0/(p1+p2) + 100.0)
}

func tndOut(t, n, d float64) float64 {
	if t == 0 && n == 0 && d == 0 {
		return 0
	}
	return 159.79 / (1.0/(t/8227.0+n/12241.0+d/22638.0) + 100.0)
}

func (m *Mixer) sample() int16 {
	out := pulseOut(float64(m.current[Square1])*m.volume[Square1], float64(m.current[Square2])*m.volume[Square2]) +
		tndOut(float64(m.current[ChanTriangle])*m.volume[ChanTriangle], float64(m.current[ChanNoise])*m.volume[ChanNoise], float64(m.current[ChanDMC])*m.volume[ChanDMC])
	if out > 1 {
		out = 1
	} else if out < -1 {
		out = -1
	}
	return int16(out * 32767)
}

// EndFrame consumes every delta recorded since the last call, feeds the
// resulting waveform to the resampler, and drains newly available samples
// into the ring buffer. frameLen is the number of CPU cycles elapsed this
// video frame (roughly 29781 for NTSC).
func (m *Mixer) EndFrame(frameLen uint32) {
	order := make([]int, len(m.timestamps))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int { return int(m.timestamps[a]) - int(m.timestamps[b]) })

	for _, i := range order {
		t := m.timestamps[i]
		for ch := range m.deltas {
			if i < len(m.deltas[ch]) {
				m.current[ch] += m.deltas[ch][i]
			}
		}
		out := m.sample()
		if out != m.prevOut {
			m.buf.AddDelta(uint64(t), int32(out)-int32(m.prevOut))
			m.prevOut = out
		}
	}

	m.buf.EndFrame(int(frameLen))
	m.timestamps = m.timestamps[:0]
	for i := range m.deltas {
		m.deltas[i] = m.deltas[i][:0]
	}

	avail := m.buf.SamplesAvailable()
	if avail == 0 {
		return
	}
	if cap(m.outbuf) < avail*2 {
		m.outbuf = make([]int16, avail*2)
	}
	n := m.buf.ReadSamples(m.outbuf, avail, false)
	for i := 0; i < n; i++ {
		m.ring.push(m.outbuf[i])
	}
}

// ReadSamples drains up to len(out) samples produced since the last call
// into out, returning the count actually written. Safe to call from a
// different goroutine than the one driving the emulator core.
func (m *Mixer) ReadSamples(out []int16) int {
	return m.ring.drain(out)
}
