package ines

import (
	"bytes"
	"testing"

	"github.com/go-faster/errors"

	"nescore/core"
)

func buildROM(flags6, flags7 byte, prgBanks, chrBanks int, trainer bool) []byte {
	var buf bytes.Buffer
	buf.WriteString(Magic)
	buf.WriteByte(byte(prgBanks))
	buf.WriteByte(byte(chrBanks))
	buf.WriteByte(flags6)
	buf.WriteByte(flags7)
	buf.Write(make([]byte, 8)) // flags8..15, unused by this decoder

	if trainer {
		buf.Write(make([]byte, trainerSize))
	}
	buf.Write(make([]byte, prgBanks*prgUnitSize))
	buf.Write(make([]byte, chrBanks*chrUnitSize))
	return buf.Bytes()
}

func TestReadFromBasic(t *testing.T) {
	raw := buildROM(0x01, 0x00, 2, 1, false)

	rom := new(ROM)
	n, err := rom.ReadFrom(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	if int(n) != len(raw) {
		t.Errorf("ReadFrom returned %d, want %d", n, len(raw))
	}
	if len(rom.PRG) != 2*prgUnitSize {
		t.Errorf("PRG size = %d, want %d", len(rom.PRG), 2*prgUnitSize)
	}
	if len(rom.CHR) != chrUnitSize {
		t.Errorf("CHR size = %d, want %d", len(rom.CHR), chrUnitSize)
	}
	if rom.Mirroring() != core.Vertical {
		t.Errorf("Mirroring() = %v, want Vertical", rom.Mirroring())
	}
	if rom.HasTrainer() || rom.HasBattery() {
		t.Errorf("unexpected trainer/battery flags")
	}
}

func TestReadFromTrainerAndMapperID(t *testing.T) {
	// mapper 4 (MMC3): low nibble in flags6 bits 4-7, high nibble in flags7.
	raw := buildROM(0x04|0x40, 0x00, 1, 1, true)

	rom := new(ROM)
	if _, err := rom.ReadFrom(bytes.NewReader(raw)); err != nil {
		t.Fatal(err)
	}
	if !rom.HasTrainer() {
		t.Error("expected trainer section")
	}
	if len(rom.Trainer) != trainerSize {
		t.Errorf("Trainer size = %d, want %d", len(rom.Trainer), trainerSize)
	}
	if rom.Mapper != 4 {
		t.Errorf("Mapper = %d, want 4", rom.Mapper)
	}
}

func TestReadFromFourScreenOverridesBit0(t *testing.T) {
	raw := buildROM(0x08|0x01, 0x00, 1, 1, false)

	rom := new(ROM)
	if _, err := rom.ReadFrom(bytes.NewReader(raw)); err != nil {
		t.Fatal(err)
	}
	if rom.Mirroring() != core.FourScreen {
		t.Errorf("Mirroring() = %v, want FourScreen when bit3 is set", rom.Mirroring())
	}
}

func TestReadFromCHRRAM(t *testing.T) {
	raw := buildROM(0x00, 0x00, 1, 0, false)

	rom := new(ROM)
	if _, err := rom.ReadFrom(bytes.NewReader(raw)); err != nil {
		t.Fatal(err)
	}
	if len(rom.CHR) != 0 {
		t.Errorf("CHR size = %d, want 0 (CHR-RAM)", len(rom.CHR))
	}
}

func TestReadFromBadMagic(t *testing.T) {
	raw := buildROM(0x00, 0x00, 1, 1, false)
	raw[0] = 'X'

	rom := new(ROM)
	if _, err := rom.ReadFrom(bytes.NewReader(raw)); !errors.Is(err, core.ErrBadROMHeader) {
		t.Fatalf("expected ErrBadROMHeader, got %v", err)
	}
}

func TestReadFromTruncatedPRG(t *testing.T) {
	raw := buildROM(0x00, 0x00, 2, 1, false)
	raw = raw[:len(raw)-prgUnitSize] // drop the second PRG bank's worth of bytes

	rom := new(ROM)
	if _, err := rom.ReadFrom(bytes.NewReader(raw)); !errors.Is(err, core.ErrBadROMHeader) {
		t.Fatalf("expected ErrBadROMHeader, got %v", err)
	}
}
