// Package ines implements a reader for the iNES ROM file format used to
// distribute NES binary programs.
package ines

import (
	"io"
	"os"

	"github.com/go-faster/errors"

	"nescore/core"
	"nescore/core/mappers"
)

const (
	Magic = "NES\x1a"

	prgUnitSize = 16384
	chrUnitSize = 8192
	trainerSize = 512
	headerSize  = 16
)

// Header is the decoded 16-byte iNES header.
type Header struct {
	raw [headerSize]byte

	PRGSize int // PRG-ROM size in bytes, prg16k * 16384
	CHRSize int // CHR-ROM size in bytes, chr8k * 8192 (0 means CHR-RAM)
	Mapper  uint8
}

// HasTrainer reports whether a 512-byte trainer section follows the header.
func (h *Header) HasTrainer() bool {
	return h.raw[6]&0x04 != 0
}

// HasBattery reports whether the cartridge carries battery-backed save RAM.
func (h *Header) HasBattery() bool {
	return h.raw[6]&0x02 != 0
}

// Mirroring derives the nametable mirroring scheme from flags6. A mapper
// that implements mapper-controlled mirroring (e.g. MMC1) overrides this at
// runtime; this is only the header's hint.
func (h *Header) Mirroring() core.Mirroring {
	if h.raw[6]&0x08 != 0 {
		return core.FourScreen
	}
	if h.raw[6]&0x01 != 0 {
		return core.Vertical
	}
	return core.Horizontal
}

func (h *Header) decode(p []byte) error {
	if len(p) < headerSize {
		return errors.Wrap(core.ErrBadROMHeader, "file shorter than 16-byte header")
	}
	if string(p[:4]) != Magic {
		return errors.Wrap(core.ErrBadROMHeader, "bad magic number")
	}
	copy(h.raw[:], p[:headerSize])

	h.PRGSize = int(h.raw[4]) * prgUnitSize
	h.CHRSize = int(h.raw[5]) * chrUnitSize
	h.Mapper = (h.raw[7] & 0xF0) | (h.raw[6] >> 4)

	if h.PRGSize == 0 {
		return errors.Wrap(core.ErrBadROMHeader, "zero PRG banks")
	}
	return nil
}

// ROM is a fully decoded iNES image: header plus the raw PRG/CHR data it
// describes. It carries no mapper logic of its own — Cartridge consumes it
// to build a core.Cartridge with the mapper selected by Header.Mapper.
type ROM struct {
	Header
	Trainer []byte // 512 bytes if present, nil otherwise
	PRG     []byte // length is a multiple of 16 KiB
	CHR     []byte // length is a multiple of 8 KiB; empty means CHR-RAM
}

// Open reads and decodes a ROM from the filesystem.
func Open(path string) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(core.ErrIOFailure, err.Error())
	}
	defer f.Close()

	rom := new(ROM)
	if _, err := rom.ReadFrom(f); err != nil {
		return nil, err
	}
	return rom, nil
}

// ReadFrom decodes a ROM from an arbitrary reader, implementing
// io.ReaderFrom.
func (rom *ROM) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, errors.Wrap(core.ErrIOFailure, err.Error())
	}

	var off int
	if err := rom.decode(buf); err != nil {
		return 0, err
	}
	off += headerSize

	if rom.HasTrainer() {
		if len(buf) < off+trainerSize {
			return 0, errors.Wrap(core.ErrBadROMHeader, "truncated trainer section")
		}
		rom.Trainer = buf[off : off+trainerSize]
		off += trainerSize
	}

	if len(buf) < off+rom.PRGSize {
		return 0, errors.Wrap(core.ErrBadROMHeader, "truncated PRG section")
	}
	rom.PRG = buf[off : off+rom.PRGSize]
	off += rom.PRGSize

	if rom.CHRSize > 0 {
		if len(buf) < off+rom.CHRSize {
			return 0, errors.Wrap(core.ErrBadROMHeader, "truncated CHR section")
		}
		rom.CHR = buf[off : off+rom.CHRSize]
		off += rom.CHRSize
	}

	return int64(len(buf)), nil
}

// Cartridge builds a core.Cartridge backed by this ROM's PRG/CHR data,
// dispatching to the mapper implementation selected by the header's mapper
// ID. Returns core.ErrUnsupportedMapper for unregistered IDs.
func (rom *ROM) Cartridge() (*core.Cartridge, error) {
	return mappers.New(core.CartridgeConfig{
		MapperID:  rom.Mapper,
		PRG:       rom.PRG,
		CHR:       rom.CHR,
		Battery:   rom.HasBattery(),
		Mirroring: rom.Mirroring(),
	})
}
