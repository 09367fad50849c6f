package core_test

import (
	"testing"

	"github.com/go-faster/errors"

	"nescore/config"
	"nescore/core"
	"nescore/core/mappers"
)

func newNROMConsole(t *testing.T, prg []byte, resetVector uint16) *core.Console {
	t.Helper()
	if len(prg) != 0x4000 {
		t.Fatalf("newNROMConsole: prg must be exactly 16 KiB, got %d", len(prg))
	}
	prg[0x3FFC] = uint8(resetVector)
	prg[0x3FFD] = uint8(resetVector >> 8)

	cart, err := mappers.New(core.CartridgeConfig{MapperID: 0, PRG: prg, Mirroring: core.Horizontal})
	if err != nil {
		t.Fatalf("mappers.New: %v", err)
	}
	console := core.NewConsole(cart)
	console.Reset()
	return console
}

// TestS1LoadStoreJumpThroughConsole runs scenario S1 through the real
// master loop instead of stepping the CPU directly: after one frame,
// ram[0] == 0xAA, X == 5, and the CPU is spinning on the JMP loop.
func TestS1LoadStoreJumpThroughConsole(t *testing.T) {
	prg := make([]byte, 0x4000)
	prg[0] = 0xA2
	prg[1] = 0x05 // LDX #$05
	prg[2] = 0xA9
	prg[3] = 0xAA // LDA #$AA
	prg[4] = 0x85
	prg[5] = 0x00 // STA $00
	prg[6] = 0xEA // NOP
	prg[7] = 0x4C
	prg[8] = 0x06
	prg[9] = 0x80 // JMP $8006

	console := newNROMConsole(t, prg, 0x8000)
	console.ExecuteFrame(false)

	if got := console.CPU.Bus.Read8(0x0000, true); got != 0xAA {
		t.Errorf("ram[0] = %#02x, want 0xAA", got)
	}
	if console.CPU.X != 0x05 {
		t.Errorf("X = %#02x, want 0x05", console.CPU.X)
	}
	if console.CPU.PC < 0x8006 || console.CPU.PC > 0x8009 {
		t.Errorf("PC = %#04x, want somewhere on the $8006 NOP/JMP loop", console.CPU.PC)
	}
}

// TestS3VBlankPollCounter runs scenario S3's polling loop for 60 frames: a
// program that spins on PPUSTATUS until VBlank, increments a counter, and
// loops. Each ExecuteFrame call should observe exactly one VBlank.
func TestS3VBlankPollCounter(t *testing.T) {
	prg := make([]byte, 0x4000)
	prg[0] = 0xAD
	prg[1] = 0x02
	prg[2] = 0x20 // loop: LDA $2002
	prg[3] = 0x10
	prg[4] = 0xFB // BPL loop
	prg[5] = 0xE6
	prg[6] = 0x10 // INC $10
	prg[7] = 0x4C
	prg[8] = 0x00
	prg[9] = 0x80 // JMP loop ($8000)

	console := newNROMConsole(t, prg, 0x8000)

	const frames = 60
	for i := 0; i < frames; i++ {
		console.ExecuteFrame(false)
	}

	got := console.CPU.Bus.Read8(0x0010, true)
	if got < frames-1 || got > frames+1 {
		t.Errorf("vblank counter after %d frames = %d, want %d (+/-1)", frames, got, frames)
	}
}

// TestNewConsoleWithConfigRejectsUnsupportedRegion checks that a PAL config
// fails construction instead of silently running at NTSC speed.
func TestNewConsoleWithConfigRejectsUnsupportedRegion(t *testing.T) {
	prg := make([]byte, 0x4000)
	prg[0x3FFC], prg[0x3FFD] = 0x00, 0x80
	cart, err := mappers.New(core.CartridgeConfig{MapperID: 0, PRG: prg, Mirroring: core.Horizontal})
	if err != nil {
		t.Fatalf("mappers.New: %v", err)
	}

	cfg := config.Default()
	cfg.Emulation.Region = "PAL"
	if _, err := core.NewConsoleWithConfig(cart, cfg); !errors.Is(err, core.ErrUnsupportedRegion) {
		t.Errorf("NewConsoleWithConfig(PAL) error = %v, want core.ErrUnsupportedRegion", err)
	}
}

// TestConsolePausedDoesNothing checks that ExecuteFrame(true) leaves the
// CPU's cycle counter exactly where it was.
func TestConsolePausedDoesNothing(t *testing.T) {
	prg := make([]byte, 0x4000)
	prg[0] = 0xEA // NOP
	prg[1] = 0x4C
	prg[2] = 0x00
	prg[3] = 0x80 // JMP $8000

	console := newNROMConsole(t, prg, 0x8000)
	before := console.CPU.Cycles
	console.ExecuteFrame(true)
	if console.CPU.Cycles != before {
		t.Errorf("CPU.Cycles changed from %d to %d while paused", before, console.CPU.Cycles)
	}
}
