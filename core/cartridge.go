package core

// Mirroring names a nametable mirroring scheme. MapperControlled means the
// mapper itself decides, and may change the mapping at runtime (MMC1,
// MMC3), overriding whatever the ROM header suggested.
//
//go:generate go tool stringer -type=Mirroring
type Mirroring int

const (
	Horizontal Mirroring = iota
	Vertical
	SingleScreenLow
	SingleScreenHigh
	FourScreen
	MapperControlled
)

// Mapper is the capability set every cartridge memory controller
// implements: CPU/PPU reads and writes over its own PRG/CHR/SAV storage,
// a per-scanline hook for mappers with scanline-counted IRQs (MMC3), and
// the nametable mirroring it currently wants. A Mapper never reaches back
// into the CPU or PPU bus itself — CPUMemoryBus and PPUMemoryBus own all
// address routing and simply delegate to whichever Mapper the Cartridge
// holds for addresses in cartridge-owned ranges.
type Mapper interface {
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)

	// OnScanline is invoked once per visible scanline, after the PPU's
	// background fetches for that line. Mappers that don't care (anything
	// but MMC3) make this a no-op.
	OnScanline()

	Mirroring() Mirroring

	// IRQPending reports whether the mapper currently asserts its IRQ
	// line. The CPU polls this at instruction boundaries; the mapper
	// itself is responsible for clearing the condition when its disable
	// register is written.
	IRQPending() bool
}

// SaveRAMProvider is implemented by mappers that expose battery-backed
// PRG-RAM. Cartridge.FlushSaveRAM uses it to hand the bytes to a caller-
// supplied sink without the mapper needing to know how persistence works.
type SaveRAMProvider interface {
	SaveRAM() []byte
}

// SaveRAMSink receives a cartridge's battery-backed RAM contents so the
// embedding host can persist them (to a .sav file, a browser's storage,
// whatever fits). Invoked by Cartridge.FlushSaveRAM.
type SaveRAMSink func(data []byte) error

// CartridgeConfig is the plain-data description of a ROM image, decoded by
// a loader (the ines package, or a test building one by hand) and handed
// to a mapper factory to build a Cartridge.
type CartridgeConfig struct {
	MapperID  uint8
	PRG       []byte // multiple of 16 KiB
	CHR       []byte // multiple of 8 KiB; empty means CHR-RAM
	Battery   bool
	Mirroring Mirroring
}

// Cartridge owns a ROM's PRG/CHR/SAV storage indirectly through its
// Mapper, and is what CPUMemoryBus/PPUMemoryBus address for cartridge-
// owned ranges (0x4020-0xFFFF on the CPU side, 0x0000-0x1FFF and mapper-
// controlled nametable banking on the PPU side).
type Cartridge struct {
	Mapper

	Battery bool
}

// NewCartridge wraps an already-constructed Mapper (built by a mapper
// factory from cfg) into a Cartridge. Mapper selection by ID lives in
// core/mappers, which is the only place that knows the full set of
// supported mapper implementations.
func NewCartridge(mapper Mapper, cfg CartridgeConfig) *Cartridge {
	return &Cartridge{Mapper: mapper, Battery: cfg.Battery}
}

// FlushSaveRAM hands the cartridge's battery-backed RAM to sink, if the
// mapper and cartridge both support persistence. A no-op otherwise.
func (c *Cartridge) FlushSaveRAM(sink SaveRAMSink) error {
	if !c.Battery || sink == nil {
		return nil
	}
	prov, ok := c.Mapper.(SaveRAMProvider)
	if !ok {
		return nil
	}
	data := prov.SaveRAM()
	if len(data) == 0 {
		return nil
	}
	return sink(data)
}
