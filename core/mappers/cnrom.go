package mappers

import "nescore/core"

func init() {
	register(3, newCNROM)
}

// cnrom (mapper 3) has fixed PRG (16 or 32 KiB, mirrored the same way as
// NROM) and switches an 8 KiB CHR-ROM bank. CNROM only implements the
// bottom two bits of the bank select register.
type cnrom struct {
	base

	chrBank uint8
}

func newCNROM(cfg core.CartridgeConfig) (core.Mapper, error) {
	if !ispow2(len(cfg.PRG)) {
		return nil, errInvalidPRGSize(len(cfg.PRG))
	}
	return &cnrom{base: newBase(cfg)}, nil
}

func (m *cnrom) CPURead(addr uint16) uint8 {
	if addr < 0x8000 {
		return m.readPRGRAM(addr)
	}
	return m.prg[int(addr-0x8000)%len(m.prg)]
}

func (m *cnrom) CPUWrite(addr uint16, val uint8) {
	if addr < 0x8000 {
		m.writePRGRAM(addr, val)
		return
	}

	// 7  bit  0
	// ---- ----
	// cccc ccCC
	// ++++-++++- Select 8 KB CHR ROM bank for PPU $0000-$1FFF
	// CNROM only uses the lowest 2 bits.
	prev := m.chrBank
	m.chrBank = val & 0b11
	if prev != m.chrBank {
		modMapper.DebugZ("CHR bank switch").String("mapper", "CNROM").Uint8("bank", m.chrBank).End()
	}
}

func (m *cnrom) PPURead(addr uint16) uint8 {
	off := m.chrBankOffset(0x2000, int(m.chrBank))
	return m.chr[off+int(addr&0x1FFF)]
}

func (m *cnrom) PPUWrite(addr uint16, val uint8) {
	if m.chrIsRAM {
		off := m.chrBankOffset(0x2000, int(m.chrBank))
		m.chr[off+int(addr&0x1FFF)] = val
	}
}
