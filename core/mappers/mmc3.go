package mappers

import "nescore/core"

func init() {
	register(4, newMMC3)
}

// mmc3 (mapper 4) banks PRG in two swappable 8 KiB windows (plus two fixed
// ones) and CHR in six independently selected banks (two 2 KiB + four
// 1 KiB, or the mirror image of that layout depending on the CHR mode
// bit), and drives a scanline-counted IRQ off the OnScanline hook the PPU
// calls once per visible scanline.
type mmc3 struct {
	base

	bankSelect uint8 // which of the 8 bank registers $8001 targets, plus mode bits
	bank       [8]uint8

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnabled bool
	irqPending bool
}

func newMMC3(cfg core.CartridgeConfig) (core.Mapper, error) {
	if !ispow2(len(cfg.PRG)) {
		return nil, errInvalidPRGSize(len(cfg.PRG))
	}
	return &mmc3{base: newBase(cfg)}, nil
}

func (m *mmc3) prgMode() bool { return m.bankSelect&0x40 != 0 } // true: $8000 fixed to second-to-last
func (m *mmc3) chrMode() bool { return m.bankSelect&0x80 != 0 } // true: 1 KiB banks come first

func (m *mmc3) CPURead(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		return m.readPRGRAM(addr)
	case addr < 0xA000:
		return m.prgByte(0, addr-0x8000)
	case addr < 0xC000:
		return m.prgByte(1, addr-0xA000)
	case addr < 0xE000:
		return m.prgByte(2, addr-0xC000)
	default:
		return m.prgByte(3, addr-0xE000)
	}
}

// prgByte resolves one of the four 8 KiB CPU windows. Windows 1 and 3 are
// always mapped to bank[7] and the last bank respectively; windows 0 and 2
// swap between bank[6] and the second-to-last bank depending on prgMode.
func (m *mmc3) prgByte(window int, off uint16) uint8 {
	var bank int
	switch window {
	case 1:
		bank = int(m.bank[7])
	case 3:
		bank = -1
	case 0:
		if m.prgMode() {
			bank = -2
		} else {
			bank = int(m.bank[6])
		}
	case 2:
		if m.prgMode() {
			bank = int(m.bank[6])
		} else {
			bank = -2
		}
	}
	return m.prg[m.prgBankOffset(0x2000, bank)+int(off)]
}

func (m *mmc3) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr < 0x8000:
		m.writePRGRAM(addr, val)
	case addr < 0xA000:
		if addr&1 == 0 {
			m.bankSelect = val
		} else {
			m.bank[m.bankSelect&0x7] = val
		}
	case addr < 0xC000:
		if addr&1 == 0 {
			if val&1 == 0 {
				m.mirror = core.Vertical
			} else {
				m.mirror = core.Horizontal
			}
		}
		// odd address: PRG-RAM protect, not modeled
	case addr < 0xE000:
		if addr&1 == 0 {
			m.irqLatch = val
		} else {
			m.irqReload = true
		}
	default:
		if addr&1 == 0 {
			m.irqEnabled = false
			m.irqPending = false
		} else {
			m.irqEnabled = true
		}
	}
}

func (m *mmc3) PPURead(addr uint16) uint8 {
	return m.chr[m.chrOffset(addr)]
}

func (m *mmc3) PPUWrite(addr uint16, val uint8) {
	if m.chrIsRAM {
		m.chr[m.chrOffset(addr)] = val
	}
}

// chrOffset resolves one of the eight 1 KiB PPU windows against the six
// bank registers: two 2 KiB banks (bank[0], bank[1], even-aligned) and
// four 1 KiB banks (bank[2..5]), with chrMode swapping which half of the
// $0000-$1FFF space each group lands in.
func (m *mmc3) chrOffset(addr uint16) int {
	addr &= 0x1FFF
	half := addr < 0x1000
	if m.chrMode() {
		half = !half
	}

	if half {
		// two 2 KiB banks
		if addr&0x0800 == 0 {
			return m.chrBankOffset(0x0800, int(m.bank[0]&0xFE)/2) + int(addr&0x07FF)
		}
		return m.chrBankOffset(0x0800, int(m.bank[1]&0xFE)/2) + int(addr&0x07FF)
	}
	// four 1 KiB banks
	idx := 2 + int((addr>>10)&0x3)
	return m.chrBankOffset(0x0400, int(m.bank[idx])) + int(addr&0x03FF)
}

// OnScanline advances the scanline IRQ counter. Called once per visible
// scanline by the PPU after its background fetches for that line.
func (m *mmc3) OnScanline() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

func (m *mmc3) IRQPending() bool {
	return m.irqPending
}
