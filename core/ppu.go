package core

// PPU is the picture processing unit: a 341-cycle/262-scanline state
// machine that walks a background fetch pipeline and a sprite evaluator
// over the cartridge's pattern tables and the console's nametable/palette
// RAM (PPUMemoryBus), producing one 256x240 frame of 6-bit palette indices
// per call sequence ending at the pre-render line. It implements
// PPURegisters so CPUMemoryBus can map it straight onto $2000-$3FFF.
type PPU struct {
	bus *PPUMemoryBus

	// nmiOut is called at the exact cycle VBlank is entered (if
	// PPUCTRL's NMI-enable bit is set) or on a rising edge of that bit
	// during VBlank, edge-latching the CPU's NMI line. The console wires
	// this to CPU.NMI.
	nmiOut func()
	// mapper receives a hook once per visible scanline, after this
	// scanline's background fetches, for MMC3-style scanline IRQ counters.
	mapper Mapper

	Cycle    int // 0..340
	Scanline int // 0..261 (261 is the pre-render line)
	frameOdd bool

	ctrl    uint8
	mask    uint8
	status  uint8
	oamAddr uint8

	oam          [256]byte
	secondaryOAM [8]spriteEntry
	spriteCount  int

	// loopy scroll registers: v is the current VRAM address, t the
	// temporary address latched by writes to $2005/$2006, x the fine X
	// scroll, w the shared write toggle.
	v, t uint16
	x    uint8
	w    bool

	dataBuf uint8 // buffered PPUDATA read, returned one read behind
	openBus uint8

	// background pipeline: two 16-bit shift registers for pattern bits,
	// two 16-bit shift registers for the attribute-table bits latched
	// alongside them, and the byte-sized latches the 4-step fetch
	// sequence fills in before they're merged into the shifters.
	bgShiftLo, bgShiftHi         uint16
	bgAttrShiftLo, bgAttrShiftHi uint16
	ntByte, atByte               uint8
	patternLo, patternHi         uint8

	frameBuf [256 * 240]uint8
}

// spriteEntry holds one sprite's evaluated state for the scanline
// currently being rendered: its fetched 8-pixel pattern row (already
// flipped if needed), attribute byte, X position, and whether it is OAM
// sprite 0 (for sprite-0-hit).
type spriteEntry struct {
	patternLo, patternHi uint8
	attr                 uint8
	x                    uint8
	isZero               bool
}

// PPUCTRL/PPUMASK/PPUSTATUS bit positions, named the way the hardware
// documentation and the rest of this module's comments refer to them.
const (
	ctrlNametable   = 0x03
	ctrlVRAMIncr    = 1 << 2
	ctrlSpriteTable = 1 << 3
	ctrlBGTable     = 1 << 4
	ctrlSpriteSize  = 1 << 5
	ctrlNMIEnable   = 1 << 7

	maskGreyscale   = 1 << 0
	maskShowBGLeft  = 1 << 1
	maskShowSprLeft = 1 << 2
	maskShowBG      = 1 << 3
	maskShowSprites = 1 << 4

	statusOverflow = 1 << 5
	statusSprite0  = 1 << 6
	statusVBlank   = 1 << 7
)

func NewPPU(bus *PPUMemoryBus, mapper Mapper, nmiOut func()) *PPU {
	return &PPU{bus: bus, mapper: mapper, nmiOut: nmiOut}
}

// Framebuffer returns a read-only view of the frame completed by the most
// recent run to the end of scanline 260. Palette indices are 6 bits;
// emphasis (PPUMASK bits 5-7) is not baked in and is left to the host.
func (p *PPU) Framebuffer() *[256 * 240]uint8 { return &p.frameBuf }

func (p *PPU) Reset() {
	p.Cycle = 0
	p.Scanline = 0
	p.frameOdd = false
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.dataBuf = 0
	p.bgShiftLo, p.bgShiftHi = 0, 0
	p.bgAttrShiftLo, p.bgAttrShiftHi = 0, 0
}

func (p *PPU) renderingEnabled() bool { return p.mask&(maskShowBG|maskShowSprites) != 0 }

// ReadRegister implements PPURegisters for $2000-$2007 (mirrored every 8
// bytes across $2000-$3FFF by CPUMemoryBus).
func (p *PPU) ReadRegister(addr uint16, peek bool) uint8 {
	switch addr & 7 {
	case 2: // PPUSTATUS
		val := p.status&(statusVBlank|statusSprite0|statusOverflow) | (p.openBus & 0x1F)
		if !peek {
			p.status &^= statusVBlank
			p.w = false
		}
		return val
	case 4: // OAMDATA
		return p.oam[p.oamAddr]
	case 7: // PPUDATA
		return p.readData(peek)
	default:
		return p.openBus
	}
}

// WriteRegister implements PPURegisters for the same range.
func (p *PPU) WriteRegister(addr uint16, val uint8) {
	p.openBus = val
	switch addr & 7 {
	case 0: // PPUCTRL
		wasEnabled := p.ctrl&ctrlNMIEnable != 0
		p.ctrl = val
		p.t = (p.t &^ (0x03 << 10)) | (uint16(val&ctrlNametable) << 10)
		if !wasEnabled && val&ctrlNMIEnable != 0 && p.status&statusVBlank != 0 {
			// Toggling NMI-enable on while VBlank is still asserted
			// re-triggers the edge; a program can spin multiple NMIs out
			// of one VBlank this way.
			p.signalNMI()
		}
	case 1: // PPUMASK
		p.mask = val
	case 3: // OAMADDR
		p.oamAddr = val
	case 4: // OAMDATA
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case 5: // PPUSCROLL
		if !p.w {
			p.x = val & 0x07
			p.t = (p.t &^ 0x1F) | uint16(val>>3)
		} else {
			p.t = (p.t &^ 0x73E0) | (uint16(val&0x07) << 12) | (uint16(val&0xF8) << 2)
		}
		p.w = !p.w
	case 6: // PPUADDR
		if !p.w {
			p.t = (p.t &^ 0x7F00) | (uint16(val&0x3F) << 8)
		} else {
			p.t = (p.t &^ 0x00FF) | uint16(val)
			p.v = p.t
		}
		p.w = !p.w
	case 7: // PPUDATA
		p.writeData(val)
	}
}

func (p *PPU) readData(peek bool) uint8 {
	addr := p.v & 0x3FFF
	var val uint8
	if addr < 0x3F00 {
		val = p.dataBuf
		if !peek {
			p.dataBuf = p.bus.Read8(addr, false)
		}
	} else {
		val = p.bus.Read8(addr, peek)
		if !peek {
			p.dataBuf = p.bus.Read8(addr&0x2FFF, false)
		}
	}
	if !peek {
		p.incVRAMAddr()
	}
	return val
}

func (p *PPU) writeData(val uint8) {
	p.bus.Write8(p.v&0x3FFF, val)
	p.incVRAMAddr()
}

func (p *PPU) incVRAMAddr() {
	if p.ctrl&ctrlVRAMIncr != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x7FFF
}

func (p *PPU) signalNMI() {
	if p.nmiOut != nil {
		p.nmiOut()
	}
}

// Step advances the PPU by exactly one dot (cycle). The console's master
// loop calls this three times per CPU cycle.
func (p *PPU) Step() {
	visible := p.Scanline < 240
	preRender := p.Scanline == 261

	if visible || preRender {
		p.renderCycle(preRender)
	}

	if p.Scanline == 241 && p.Cycle == 1 {
		p.status |= statusVBlank
		if p.ctrl&ctrlNMIEnable != 0 {
			p.signalNMI()
		}
	}

	if preRender && p.Cycle == 1 {
		p.status &^= statusVBlank | statusSprite0 | statusOverflow
	}

	p.Cycle++
	skip := preRender && p.frameOdd && p.renderingEnabled() && p.Cycle == 340
	if skip {
		p.Cycle++
	}
	if p.Cycle >= 341 {
		p.Cycle = 0
		p.Scanline++
		if p.Scanline >= 262 {
			p.Scanline = 0
			p.frameOdd = !p.frameOdd
		}
	}
}

// renderCycle drives the background pipeline and sprite evaluator for a
// visible or pre-render scanline dot. Background fetches happen at their
// exact hardware cycle; sprite evaluation and pattern fetch, which have no
// externally visible per-cycle side effects in this model, are collapsed
// together into a single step at cycle 0 of the scanline being rendered
// rather than spread across cycles 65-320 of the previous one.
func (p *PPU) renderCycle(preRender bool) {
	c := p.Cycle
	rendering := p.renderingEnabled()

	if rendering && (c >= 1 && c <= 256 || c >= 321 && c <= 336) {
		p.shiftBackground()
		switch c % 8 {
		case 1:
			p.reloadShiftersAndFetchNT()
		case 3:
			p.fetchAT()
		case 5:
			p.fetchPatternLow()
		case 7:
			p.fetchPatternHigh()
		case 0:
			p.incCoarseX()
		}
	}

	if !preRender && c >= 1 && c <= 256 {
		p.renderPixel()
	}

	if rendering {
		if c == 256 {
			p.incFineY()
		}
		if c == 257 {
			p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
		}
		if preRender && c >= 280 && c <= 304 {
			p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
		}
	}

	if !preRender && c == 0 && rendering {
		// Real hardware builds secondary OAM for a scanline during the
		// previous one's cycles 65-256 and fetches its pattern bytes
		// during 257-320; collapsing both into one idle-cycle step
		// produces the same visible frame without needing a pending/
		// active double-buffer, since nothing in this model mutates OAM
		// mid-frame between a scanline's evaluation and its render.
		p.evaluateSprites()
	}
	if !preRender && c == 256 && p.mapper != nil {
		p.mapper.OnScanline()
	}
}

func (p *PPU) reloadShiftersAndFetchNT() {
	p.bgShiftLo = (p.bgShiftLo &^ 0x00FF) | uint16(p.patternLo)
	p.bgShiftHi = (p.bgShiftHi &^ 0x00FF) | uint16(p.patternHi)
	attrBit := uint16(0)
	if p.atByte&1 != 0 {
		attrBit = 0xFF
	}
	p.bgAttrShiftLo = (p.bgAttrShiftLo &^ 0x00FF) | attrBit
	attrBit = 0
	if p.atByte&2 != 0 {
		attrBit = 0xFF
	}
	p.bgAttrShiftHi = (p.bgAttrShiftHi &^ 0x00FF) | attrBit

	addr := 0x2000 | (p.v & 0x0FFF)
	p.ntByte = p.bus.Read8(addr, false)
}

func (p *PPU) fetchAT() {
	addr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
	at := p.bus.Read8(addr, false)
	shift := ((p.v >> 4) & 4) | (p.v & 2)
	p.atByte = (at >> shift) & 0x03
}

func (p *PPU) fetchPatternLow() {
	table := uint16(0)
	if p.ctrl&ctrlBGTable != 0 {
		table = 0x1000
	}
	fineY := (p.v >> 12) & 0x07
	addr := table + uint16(p.ntByte)*16 + fineY
	p.patternLo = p.bus.Read8(addr, false)
}

func (p *PPU) fetchPatternHigh() {
	table := uint16(0)
	if p.ctrl&ctrlBGTable != 0 {
		table = 0x1000
	}
	fineY := (p.v >> 12) & 0x07
	addr := table + uint16(p.ntByte)*16 + fineY + 8
	p.patternHi = p.bus.Read8(addr, false)
}

func (p *PPU) shiftBackground() {
	p.bgShiftLo <<= 1
	p.bgShiftHi <<= 1
	p.bgAttrShiftLo <<= 1
	p.bgAttrShiftHi <<= 1
}

// incCoarseX and incFineY implement the canonical loopy v-register
// increment logic, wrapping into the adjacent nametable on overflow.
func (p *PPU) incCoarseX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incFineY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) renderPixel() {
	x := p.Cycle - 1
	y := p.Scanline

	bgPixel, bgOpaque := p.backgroundPixel(x)
	sprPixel, sprOpaque, sprPriority, sprIsZero := p.spritePixel(x)

	var idx uint8
	switch {
	case !bgOpaque && !sprOpaque:
		idx = p.bus.Read8(0x3F00, false)
	case !bgOpaque && sprOpaque:
		idx = sprPixel
	case bgOpaque && !sprOpaque:
		idx = bgPixel
	default:
		if x < 255 && sprIsZero && bgOpaque && sprOpaque {
			p.status |= statusSprite0
		}
		if sprPriority {
			idx = bgPixel
		} else {
			idx = sprPixel
		}
	}

	p.frameBuf[y*256+x] = idx & 0x3F
}

// backgroundPixel reads the current pixel out of the shift registers,
// respecting fine X scroll and the left-8-pixel mask.
func (p *PPU) backgroundPixel(x int) (uint8, bool) {
	if p.mask&maskShowBG == 0 || (x < 8 && p.mask&maskShowBGLeft == 0) {
		return p.bus.Read8(0x3F00, false), false
	}
	bit := uint16(0x8000) >> p.x
	lo := uint8(0)
	if p.bgShiftLo&bit != 0 {
		lo = 1
	}
	hi := uint8(0)
	if p.bgShiftHi&bit != 0 {
		hi = 2
	}
	pattern := lo | hi
	attrLo := uint8(0)
	if p.bgAttrShiftLo&bit != 0 {
		attrLo = 1
	}
	attrHi := uint8(0)
	if p.bgAttrShiftHi&bit != 0 {
		attrHi = 2
	}
	palette := attrLo | attrHi
	if pattern == 0 {
		return p.bus.Read8(0x3F00, false), false
	}
	return p.bus.Read8(0x3F00|uint16(palette)<<2|uint16(pattern), false), true
}

// spritePixel scans this scanline's already-evaluated sprite set,
// lowest-index-wins, for the first one with a non-transparent pixel at x.
func (p *PPU) spritePixel(x int) (idx uint8, opaque bool, bgPriority bool, isZero bool) {
	if p.mask&maskShowSprites == 0 || (x < 8 && p.mask&maskShowSprLeft == 0) {
		return 0, false, false, false
	}
	for i := 0; i < p.spriteCount; i++ {
		s := p.secondaryOAM[i]
		offset := x - int(s.x)
		if offset < 0 || offset > 7 {
			continue
		}
		bit := uint(7 - offset)
		lo := (s.patternLo >> bit) & 1
		hi := (s.patternHi >> bit) & 1
		pattern := lo | hi<<1
		if pattern == 0 {
			continue
		}
		palette := (s.attr & 0x03) | 0x04
		color := p.bus.Read8(0x3F00|uint16(palette)<<2|uint16(pattern), false)
		return color, true, s.attr&0x20 != 0, s.isZero
	}
	return 0, false, false, false
}

// evaluateSprites selects up to 8 sprites (by ascending OAM index) whose
// range covers the scanline about to be rendered, fetches their pattern
// rows (with flips applied), and sets the overflow flag if a ninth would
// have qualified. Real hardware spreads this and the pattern fetch across
// cycles 65-320 with several documented bugs in the overflow detector;
// this module implements only the intended behavior.
func (p *PPU) evaluateSprites() {
	height := 8
	if p.ctrl&ctrlSpriteSize != 0 {
		height = 16
	}

	target := p.Scanline
	count := 0
	overflow := false
	for i := 0; i < 64; i++ {
		y := int(p.oam[i*4])
		row := target - y
		if row < 0 || row >= height {
			continue
		}
		if count < 8 {
			p.secondaryOAM[count] = p.buildSpriteEntry(i, row, height)
			count++
		} else {
			overflow = true
			break
		}
	}
	p.spriteCount = count
	if overflow {
		p.status |= statusOverflow
	}
}

func (p *PPU) buildSpriteEntry(oamIndex, row, height int) spriteEntry {
	tileIndex := p.oam[oamIndex*4+1]
	attr := p.oam[oamIndex*4+2]
	x := p.oam[oamIndex*4+3]

	if attr&0x80 != 0 { // vertical flip
		row = height - 1 - row
	}

	var addr uint16
	if height == 16 {
		table := uint16(tileIndex&1) * 0x1000
		tile := uint16(tileIndex &^ 1)
		if row >= 8 {
			tile++
			row -= 8
		}
		addr = table + tile*16 + uint16(row)
	} else {
		table := uint16(0)
		if p.ctrl&ctrlSpriteTable != 0 {
			table = 0x1000
		}
		addr = table + uint16(tileIndex)*16 + uint16(row)
	}

	lo := p.bus.Read8(addr, false)
	hi := p.bus.Read8(addr+8, false)
	if attr&0x40 != 0 { // horizontal flip
		lo = reverseBits(lo)
		hi = reverseBits(hi)
	}

	return spriteEntry{patternLo: lo, patternHi: hi, attr: attr, x: x, isZero: oamIndex == 0}
}

func reverseBits(b uint8) uint8 {
	b = (b&0xF0)>>4 | (b&0x0F)<<4
	b = (b&0xCC)>>2 | (b&0x33)<<2
	b = (b&0xAA)>>1 | (b&0x55)<<1
	return b
}
