// Package mappers implements the cartridge memory controllers (mappers)
// NROM, UxROM, CNROM, MMC1 and MMC3, each satisfying core.Mapper. Unlike
// the teacher's mapper package, which reached into the CPU/PPU bus
// directly to install banks, every mapper here only ever touches its own
// PRG/CHR/SAV storage; CPUMemoryBus and PPUMemoryBus are the ones that
// decide when to call into it.
package mappers

import (
	"github.com/go-faster/errors"

	"nescore/core"
	"nescore/emu/log"
)

var modMapper = log.NewModule("mapper")

type factory func(core.CartridgeConfig) (core.Mapper, error)

// registry maps an iNES mapper ID to the factory that builds it. Populated
// by each mapper's init().
var registry = map[uint8]factory{}

func register(id uint8, f factory) {
	registry[id] = f
}

// New looks up cfg.MapperID in the registry, builds the mapper, and wraps
// it in a core.Cartridge. Returns core.ErrUnsupportedMapper wrapped with
// the offending ID for anything not registered.
func New(cfg core.CartridgeConfig) (*core.Cartridge, error) {
	f, ok := registry[cfg.MapperID]
	if !ok {
		return nil, errors.Wrapf(core.ErrUnsupportedMapper, "mapper id %d", cfg.MapperID)
	}
	m, err := f(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "mapper initialization failed")
	}
	return core.NewCartridge(m, cfg), nil
}

func ispow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func errInvalidPRGSize(n int) error {
	return errors.Wrapf(core.ErrBadROMHeader, "PRG-ROM size %d is not a power of two", n)
}

// base is the fixed-size storage shared by every mapper here: the raw
// PRG/CHR/SAV bytes plus mirroring state, with helpers for resolving a
// logical bank index (including the -1 "last bank" convention used
// throughout NES mapper documentation) to a byte offset.
type base struct {
	prg []byte
	chr []byte // CHR-ROM, or CHR-RAM if the cartridge had none
	sav []byte // PRG-RAM, always present; only persisted if Battery is set

	chrIsRAM bool
	mirror   core.Mirroring
}

func newBase(cfg core.CartridgeConfig) base {
	chr := cfg.CHR
	chrIsRAM := len(chr) == 0
	if chrIsRAM {
		chr = make([]byte, 0x2000)
	}
	return base{
		prg:      cfg.PRG,
		chr:      chr,
		sav:      make([]byte, 0x2000),
		chrIsRAM: chrIsRAM,
		mirror:   cfg.Mirroring,
	}
}

func (b *base) Mirroring() core.Mirroring { return b.mirror }
func (b *base) OnScanline()               {}
func (b *base) IRQPending() bool          { return false }

func (b *base) SaveRAM() []byte { return b.sav }

// prgBankOffset resolves a logical bank index (negative counts back from
// the end, so -1 is "last bank") to a byte offset into b.prg.
func (b *base) prgBankOffset(bankSize, index int) int {
	banks := len(b.prg) / bankSize
	if banks == 0 {
		return 0
	}
	if index < 0 {
		index += banks
	}
	return (index % banks) * bankSize
}

func (b *base) chrBankOffset(bankSize, index int) int {
	banks := len(b.chr) / bankSize
	if banks == 0 {
		return 0
	}
	if index < 0 {
		index += banks
	}
	return (index % banks) * bankSize
}

func (b *base) readPRGRAM(addr uint16) uint8 {
	return b.sav[addr&0x1FFF]
}

func (b *base) writePRGRAM(addr uint16, val uint8) {
	b.sav[addr&0x1FFF] = val
}
