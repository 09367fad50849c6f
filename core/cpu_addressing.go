package core

// AddrMode names a 6502 addressing mode. The opcode table pairs one of
// these with every instruction; resolveAddr turns it into an operand
// address (or, for Implied/Accumulator, nothing at all).
//
//go:generate go tool stringer -type=AddrMode
type AddrMode uint8

const (
	Implied AddrMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX // (zp,X)
	IndirectY // (zp),Y
	Relative
)

func samePage(a, b uint16) bool {
	return a&0xFF00 == b&0xFF00
}

// resolveAddr consumes however many operand bytes mode requires (advancing
// PC), and returns the effective address plus whether an indexed
// calculation crossed a page boundary (relevant for the read-instruction
// page-cross cycle penalty; Relative mode reports it for the branch's own
// separate page-cross bonus).
func (c *CPU) resolveAddr(mode AddrMode) (addr uint16, pageCrossed bool) {
	switch mode {
	case Implied, Accumulator:
		return 0, false

	case Immediate:
		addr = c.PC
		c.PC++
		return addr, false

	case ZeroPage:
		addr = uint16(c.fetch8())
		return addr, false

	case ZeroPageX:
		addr = uint16(c.fetch8()+c.X) & 0xFF
		return addr, false

	case ZeroPageY:
		addr = uint16(c.fetch8()+c.Y) & 0xFF
		return addr, false

	case Absolute:
		addr = c.fetch16()
		return addr, false

	case AbsoluteX:
		base := c.fetch16()
		addr = base + uint16(c.X)
		return addr, !samePage(base, addr)

	case AbsoluteY:
		base := c.fetch16()
		addr = base + uint16(c.Y)
		return addr, !samePage(base, addr)

	case Indirect:
		ptr := c.fetch16()
		return c.readIndirectBug(ptr), false

	case IndirectX:
		zp := c.fetch8() + c.X
		lo := c.Bus.Read8(uint16(zp), false)
		hi := c.Bus.Read8(uint16(zp+1)&0xFF, false)
		addr = uint16(hi)<<8 | uint16(lo)
		return addr, false

	case IndirectY:
		zp := c.fetch8()
		lo := c.Bus.Read8(uint16(zp), false)
		hi := c.Bus.Read8(uint16(zp+1)&0xFF, false)
		base := uint16(hi)<<8 | uint16(lo)
		addr = base + uint16(c.Y)
		return addr, !samePage(base, addr)

	case Relative:
		off := int8(c.fetch8())
		addr = uint16(int32(c.PC) + int32(off))
		return addr, !samePage(c.PC, addr)

	default:
		return 0, false
	}
}

// readIndirectBug reproduces the JMP ($xxFF) page-wrap bug: the high byte
// of the target is fetched from $xx00 instead of the following page.
func (c *CPU) readIndirectBug(ptr uint16) uint16 {
	lo := c.Bus.Read8(ptr, false)
	hiAddr := (ptr & 0xFF00) | uint16(byte(ptr)+1)
	hi := c.Bus.Read8(hiAddr, false)
	return uint16(hi)<<8 | uint16(lo)
}
