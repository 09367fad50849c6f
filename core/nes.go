package core

import (
	"github.com/go-faster/errors"

	"nescore/config"
	"nescore/core/apu"
)

// Console wires a CPU, PPU, APU, cartridge and controller ports together
// into the master loop described by the rest of this package: for every
// CPU instruction (or serviced interrupt) it steps the PPU three times per
// CPU cycle and the APU once per CPU cycle, then polls the mapper and APU
// IRQ lines. Nothing outside this file drives the clock.
type Console struct {
	CPU   *CPU
	PPU   *PPU
	APU   *apu.APU
	Input *Input
	dma   *OAMDMA

	cpuBus *CPUMemoryBus
	ppuBus *PPUMemoryBus
	cart   *Cartridge
}

// NewConsole builds a fully wired console around cart, using default
// timing and audio settings. Reset must be called before the first
// ExecuteFrame. Panics if config.Default() ever names an unsupported
// region, which would be a bug in config itself rather than caller error.
func NewConsole(cart *Cartridge) *Console {
	c, err := NewConsoleWithConfig(cart, config.Default())
	if err != nil {
		panic(err)
	}
	return c
}

// NewConsoleWithConfig is NewConsole with an explicit config, letting a
// host apply region selection, strict-opcode mode, and per-channel volume
// scalars loaded from a config.toml. Returns ErrUnsupportedRegion if
// cfg.Emulation.Region names anything but NTSC, the only timing this
// package implements.
func NewConsoleWithConfig(cart *Cartridge, cfg config.Config) (*Console, error) {
	if cfg.Emulation.Region != "NTSC" {
		return nil, errors.Wrapf(ErrUnsupportedRegion, "region %q", cfg.Emulation.Region)
	}

	c := &Console{cart: cart}

	c.cpuBus = NewCPUMemoryBus()
	c.ppuBus = NewPPUMemoryBus(cart)
	c.CPU = NewCPU(c.cpuBus)
	c.CPU.StrictOpcodes = cfg.Emulation.StrictOpcodes
	c.APU = apu.New(cfg.Audio.SampleRate)
	c.APU.SetVolumes(
		cfg.Audio.Square1Volume,
		cfg.Audio.Square2Volume,
		cfg.Audio.TriangleVolume,
		cfg.Audio.NoiseVolume,
		cfg.Audio.DMCVolume,
	)
	c.Input = NewInput()

	c.PPU = NewPPU(c.ppuBus, cart, c.CPU.NMI)
	c.dma = NewOAMDMA(c.cpuBus, c.PPU, c.CPU)

	c.cpuBus.MapPPU(c.PPU)
	c.cpuBus.MapOAMDMA(c.dma)
	c.cpuBus.MapAPUAndInput(c.APU, c.Input)
	c.cpuBus.MapCartridge(cart)

	c.APU.SetDMCBusReader(func(addr uint16) uint8 { return c.cpuBus.Read8(addr, false) })

	return c, nil
}

// Reset re-initializes every component to its power-up state, per §2's
// "CPU/PPU/APU state created at construction, re-initialized by reset()".
func (c *Console) Reset() {
	c.CPU.Reset()
	c.PPU.Reset()
	c.APU.Reset()
}

// Framebuffer returns the frame produced by the most recently completed
// ExecuteFrame call, as 256x240 6-bit palette indices. The returned
// pointer is a borrowed view valid only until the next ExecuteFrame.
func (c *Console) Framebuffer() *[256 * 240]uint8 { return c.PPU.Framebuffer() }

// ReadAudioSamples drains 16-bit PCM audio produced since the last call.
func (c *Console) ReadAudioSamples(out []int16) int { return c.APU.ReadSamples(out) }

// SetButtons updates the live button state (see the Button bit constants)
// for controller port 0 or 1. Optional: a console with nothing wired here
// simply never sees a button pressed.
func (c *Console) SetButtons(port int, state uint8) { c.Input.SetButtons(port, state) }

// SignalNMI forces an NMI on the next instruction boundary, bypassing the
// PPU's own VBlank-driven latch. Exposed for hosts (or tests) that want to
// drive interrupts directly rather than through PPU timing.
func (c *Console) SignalNMI() { c.CPU.NMI() }

// SignalIRQ sets the CPU's external maskable interrupt line, independent
// of the APU frame counter and mapper IRQ sources this console already
// polls every instruction.
func (c *Console) SignalIRQ(active bool) { c.CPU.IRQ(active) }

// ExecuteFrame runs the master loop until the PPU completes scanline 260,
// then keeps running through the pre-render line 261, and returns once the
// PPU has wrapped to scanline 0. If paused
// is true, no CPU/PPU/APU state advances and it returns immediately —
// callers that still want a live framebuffer while paused should just
// keep the previous Framebuffer() view, which nothing here mutates.
func (c *Console) ExecuteFrame(paused bool) {
	if paused {
		return
	}
	for c.PPU.Scanline != 261 && !c.CPU.Halted {
		c.step()
	}
	// Run the pre-render line itself so the next call starts at scanline 0.
	for c.PPU.Scanline == 261 && !c.CPU.Halted {
		c.step()
	}
	c.APU.EndFrame()
}

// step executes one CPU instruction (or a pending interrupt/DMA stall),
// catches the PPU and APU up by the matching number of dots/ticks, then
// polls the mapper and APU IRQ lines so the CPU sees them at the next
// instruction boundary — matching the ordering the master loop is
// specified to use, rather than sampling them before the instruction that
// should observe them has even run.
func (c *Console) step() {
	k, err := c.CPU.Step()
	if err != nil {
		c.CPU.Halted = true
		return
	}

	for i := 0; i < k*3; i++ {
		c.PPU.Step()
	}
	for i := 0; i < k; i++ {
		c.APU.Tick()
	}

	c.CPU.IRQ(c.cart.IRQPending() || c.APU.IRQPending())
}
