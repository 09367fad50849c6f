package mappers

import "nescore/core"

func init() {
	register(0, newNROM)
}

// nrom is the simplest mapper: PRG-ROM (16 or 32 KiB, mirrored if 16),
// optional PRG-RAM at $6000-$7FFF, and CHR-ROM/RAM with no banking at all.
type nrom struct {
	base
}

func newNROM(cfg core.CartridgeConfig) (core.Mapper, error) {
	if !ispow2(len(cfg.PRG)) {
		return nil, errInvalidPRGSize(len(cfg.PRG))
	}
	return &nrom{base: newBase(cfg)}, nil
}

func (m *nrom) CPURead(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		return m.readPRGRAM(addr)
	default:
		// A 16 KiB PRG-ROM is mirrored across both $8000-$BFFF and
		// $C000-$FFFF.
		return m.prg[int(addr-0x8000)%len(m.prg)]
	}
}

func (m *nrom) CPUWrite(addr uint16, val uint8) {
	if addr < 0x8000 {
		m.writePRGRAM(addr, val)
	}
}

func (m *nrom) PPURead(addr uint16) uint8 {
	return m.chr[addr&0x1FFF]
}

func (m *nrom) PPUWrite(addr uint16, val uint8) {
	if m.chrIsRAM {
		m.chr[addr&0x1FFF] = val
	}
}
