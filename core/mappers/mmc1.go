package mappers

import "nescore/core"

func init() {
	register(1, newMMC1)
}

// mmc1 (mapper 1) is a serial-shift-register-programmed mapper: any CPU
// write to $8000-$FFFF shifts one bit of val into a 5-bit register; on the
// fifth write the accumulated value is latched into one of four internal
// registers selected by the address, and the shift register resets.
// Writing with bit 7 set resets the shift register immediately regardless
// of how many bits had been shifted in.
type mmc1 struct {
	base

	shift   uint8
	nbits   uint8
	ctrl    uint8
	chrBank [2]uint8
	prgBank uint8
}

func newMMC1(cfg core.CartridgeConfig) (core.Mapper, error) {
	if !ispow2(len(cfg.PRG)) {
		return nil, errInvalidPRGSize(len(cfg.PRG))
	}
	m := &mmc1{base: newBase(cfg)}
	m.ctrl = 0x0C // power-on: 16 KiB PRG mode, $8000 swappable, $C000 fixed to last
	return m, nil
}

func (m *mmc1) prgMode() uint8 { return (m.ctrl >> 2) & 0x3 }
func (m *mmc1) chrMode() uint8 { return (m.ctrl >> 4) & 0x1 }

func (m *mmc1) Mirroring() core.Mirroring {
	switch m.ctrl & 0x3 {
	case 0:
		return core.SingleScreenLow
	case 1:
		return core.SingleScreenHigh
	case 2:
		return core.Vertical
	default:
		return core.Horizontal
	}
}

func (m *mmc1) CPURead(addr uint16) uint8 {
	if addr < 0x8000 {
		return m.readPRGRAM(addr)
	}

	switch m.prgMode() {
	case 0, 1:
		// 32 KiB mode: ignore the low bit of the bank number.
		off := m.prgBankOffset(0x8000, int(m.prgBank&0xFE)/2)
		return m.prg[off+int(addr-0x8000)]
	case 2:
		if addr < 0xC000 {
			off := m.prgBankOffset(0x4000, 0)
			return m.prg[off+int(addr-0x8000)]
		}
		off := m.prgBankOffset(0x4000, int(m.prgBank))
		return m.prg[off+int(addr-0xC000)]
	default: // 3
		if addr < 0xC000 {
			off := m.prgBankOffset(0x4000, int(m.prgBank))
			return m.prg[off+int(addr-0x8000)]
		}
		off := m.prgBankOffset(0x4000, -1)
		return m.prg[off+int(addr-0xC000)]
	}
}

func (m *mmc1) CPUWrite(addr uint16, val uint8) {
	if addr < 0x8000 {
		m.writePRGRAM(addr, val)
		return
	}

	if val&0x80 != 0 {
		m.shift = 0
		m.nbits = 0
		m.ctrl |= 0x0C
		return
	}

	m.shift |= (val & 1) << m.nbits
	m.nbits++
	if m.nbits < 5 {
		return
	}

	reg := m.shift
	m.shift, m.nbits = 0, 0

	switch (addr >> 13) & 0x3 {
	case 0:
		m.ctrl = reg
		modMapper.DebugZ("MMC1 write CTRL").Uint8("val", reg).End()
	case 1:
		m.chrBank[0] = reg
	case 2:
		m.chrBank[1] = reg
	case 3:
		m.prgBank = reg & 0x0F
	}
}

func (m *mmc1) PPURead(addr uint16) uint8 {
	return m.chr[m.chrOffset(addr)]
}

func (m *mmc1) PPUWrite(addr uint16, val uint8) {
	if m.chrIsRAM {
		m.chr[m.chrOffset(addr)] = val
	}
}

func (m *mmc1) chrOffset(addr uint16) int {
	if m.chrMode() == 0 {
		// 8 KiB mode, low bit of the bank number is ignored.
		off := m.chrBankOffset(0x2000, int(m.chrBank[0]&0x1E)/2)
		return off + int(addr&0x1FFF)
	}
	// 4 KiB mode: two independently selected 4 KiB banks.
	if addr < 0x1000 {
		off := m.chrBankOffset(0x1000, int(m.chrBank[0]))
		return off + int(addr)
	}
	off := m.chrBankOffset(0x1000, int(m.chrBank[1]))
	return off + int(addr-0x1000)
}
