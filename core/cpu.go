package core

import (
	"github.com/go-faster/errors"

	"nescore/emu/log"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// CPU is a 6502-family processor executed at instruction granularity: Step
// runs exactly one instruction (or services one pending interrupt) and
// reports how many CPU cycles it took, so the caller (Console) can drive
// the PPU and APU by that same count.
type CPU struct {
	Bus *CPUMemoryBus

	A, X, Y, SP uint8
	PC          uint16
	P           P

	Cycles uint64

	nmiPending bool // edge-latched; cleared once serviced
	irqLine    bool // level-triggered; caller re-asserts every step

	Halted bool

	// StrictOpcodes makes Step return ErrInvalidOpcode instead of treating
	// an unofficial opcode as a NOP of the correct length.
	StrictOpcodes bool

	stallCycles int // pending OAM DMA stall, serviced whole at the next Step
}

// NewCPU creates a CPU wired to bus. Reset must be called before Step to
// load PC from the reset vector.
func NewCPU(bus *CPUMemoryBus) *CPU {
	return &CPU{Bus: bus}
}

// Reset puts the CPU in its power-up state and loads PC from ResetVector.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = FlagUnused
	c.P.setIntDisable(true)

	c.Cycles = 0
	c.nmiPending = false
	c.irqLine = false
	c.Halted = false
	c.stallCycles = 0

	c.PC = c.read16(ResetVector)
}

// NMI latches a non-maskable interrupt request. It is edge-triggered: one
// call queues exactly one NMI, serviced at the next Step regardless of the
// interrupt-disable flag.
func (c *CPU) NMI() {
	c.nmiPending = true
}

// IRQ sets the level of the maskable interrupt line. Callers (the APU
// frame counter, DMC, or a mapper) should call this every step with the
// OR of all their pending conditions; the CPU services it at the next
// instruction boundary if P.I is clear.
func (c *CPU) IRQ(active bool) {
	c.irqLine = active
}

// Stall queues n idle CPU cycles, consumed whole by the next Step call
// before any instruction or interrupt is serviced. OAM DMA ($4014) is the
// only source: the transfer itself happens synchronously as an internal
// bus burst, and the 513/514-cycle cost is charged here so the caller's
// CPU/PPU/APU cycle bookkeeping stays in lockstep.
func (c *CPU) Stall(n int) {
	c.stallCycles += n
}

// Step executes one instruction, or services one pending interrupt, and
// returns the number of CPU cycles consumed. It only returns an error in
// strict-opcode mode, when it fetches an opcode with no defined behavior.
func (c *CPU) Step() (int, error) {
	if c.Halted {
		return 0, nil
	}

	if c.stallCycles > 0 {
		n := c.stallCycles
		c.stallCycles = 0
		c.Cycles += uint64(n)
		return n, nil
	}

	if c.nmiPending {
		c.nmiPending = false
		c.serviceInterrupt(NMIVector, false)
		return 7, nil
	}
	if c.irqLine && !c.P.intDisable() {
		c.serviceInterrupt(IRQVector, false)
		return 7, nil
	}

	opStart := c.PC
	opcode := c.fetch8()
	entry := &opcodeTable[opcode]

	if !entry.official && c.StrictOpcodes {
		log.ModCPU.ErrorZ("halting on invalid opcode").
			Hex8("opcode", opcode).
			Hex16("pc", opStart).
			End()
		return 0, errors.Wrapf(ErrInvalidOpcode, "opcode $%02X at $%04X", opcode, opStart)
	}

	addr, pageCrossed := c.resolveAddr(entry.mode)
	extra := entry.exec(c, addr, entry.mode)

	cycles := int(entry.cycles) + extra
	if entry.pageCrossPenalty && pageCrossed {
		cycles++
	}
	c.Cycles += uint64(cycles)
	return cycles, nil
}

func (c *CPU) serviceInterrupt(vector uint16, brk bool) {
	c.push16(c.PC)
	p := c.P
	p.setBrk(brk)
	p.setUnused(true)
	c.push8(uint8(p))
	c.P.setIntDisable(true)
	c.PC = c.read16(vector)
}

func (c *CPU) fetch8() uint8 {
	val := c.Bus.Read8(c.PC, false)
	c.PC++
	return val
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) read8(addr uint16) uint8 {
	return c.Bus.Read8(addr, false)
}

func (c *CPU) write8(addr uint16, val uint8) {
	c.Bus.Write8(addr, val)
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := c.read8(addr)
	hi := c.read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) push8(val uint8) {
	c.Bus.Write8(0x0100+uint16(c.SP), val)
	c.SP--
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	return c.Bus.Read8(0x0100+uint16(c.SP), false)
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}
