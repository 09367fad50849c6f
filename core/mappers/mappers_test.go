package mappers

import (
	"testing"

	"github.com/go-faster/errors"

	"nescore/core"
)

func makePRG(banks int, fill byte) []byte {
	prg := make([]byte, banks*0x4000)
	for i := range prg {
		prg[i] = fill
	}
	return prg
}

func TestNewUnsupportedMapper(t *testing.T) {
	_, err := New(core.CartridgeConfig{MapperID: 200, PRG: makePRG(2, 0)})
	if !errors.Is(err, core.ErrUnsupportedMapper) {
		t.Fatalf("expected ErrUnsupportedMapper, got %v", err)
	}
}

func TestNROMReadsLastBankAtC000(t *testing.T) {
	prg := makePRG(1, 0)
	prg[0x3FFF] = 0x42
	cart, err := New(core.CartridgeConfig{MapperID: 0, PRG: prg})
	if err != nil {
		t.Fatal(err)
	}
	// 16 KiB PRG mirrors across both $8000 and $C000 windows.
	if got := cart.CPURead(0xFFFF); got != 0x42 {
		t.Errorf("CPURead(0xFFFF) = %02x, want 42", got)
	}
	if got := cart.CPURead(0xBFFF); got != 0x42 {
		t.Errorf("CPURead(0xBFFF) = %02x, want 42 (mirrored)", got)
	}
}

func TestUxROMBankSwitch(t *testing.T) {
	prg := makePRG(4, 0)
	prg[1*0x4000] = 0x11
	prg[3*0x4000] = 0x99 // last bank, first byte (addr $C000 maps to offset 0 within it)

	cart, err := New(core.CartridgeConfig{MapperID: 2, PRG: prg})
	if err != nil {
		t.Fatal(err)
	}
	if got := cart.CPURead(0xC000); got != 0x99 {
		t.Errorf("fixed bank at $C000 = %02x, want 99", got)
	}

	cart.CPUWrite(0x8000, 1)
	if got := cart.CPURead(0x8000); got != 0x11 {
		t.Errorf("after switching to bank 1, CPURead(0x8000) = %02x, want 11", got)
	}
}

func TestMMC1PRGModes(t *testing.T) {
	prg := makePRG(4, 0)
	for i := 0; i < 4; i++ {
		prg[i*0x4000] = byte(0x10 + i)
	}

	cart, err := New(core.CartridgeConfig{MapperID: 1, PRG: prg})
	if err != nil {
		t.Fatal(err)
	}

	writeMMC1 := func(addr uint16, val uint8) {
		for i := 0; i < 5; i++ {
			cart.CPUWrite(addr, (val>>i)&1)
		}
	}

	// Power-on default (mode 3): $8000 switchable (bank 0), $C000 fixed to
	// last bank (bank 3).
	if got := cart.CPURead(0x8000); got != 0x10 {
		t.Errorf("CPURead(0x8000) at reset = %02x, want 10", got)
	}
	if got := cart.CPURead(0xC000); got != 0x13 {
		t.Errorf("CPURead(0xC000) at reset = %02x, want 13", got)
	}

	// Select PRG bank 2 for the switchable $8000 window.
	writeMMC1(0xE000, 2)
	if got := cart.CPURead(0x8000); got != 0x12 {
		t.Errorf("CPURead(0x8000) after bank select = %02x, want 12", got)
	}
	if got := cart.CPURead(0xC000); got != 0x13 {
		t.Errorf("CPURead(0xC000) after bank select = %02x, want 13 (still fixed)", got)
	}
}

func TestMMC1ResetBitAbortsShift(t *testing.T) {
	prg := makePRG(2, 0)
	cart, err := New(core.CartridgeConfig{MapperID: 1, PRG: prg})
	if err != nil {
		t.Fatal(err)
	}
	cart.CPUWrite(0x8000, 1)
	cart.CPUWrite(0x8000, 1)
	cart.CPUWrite(0x8000, 0x80) // reset bit set: abort the in-progress shift
	m := cart.Mapper.(*mmc1)
	if m.nbits != 0 || m.shift != 0 {
		t.Fatalf("reset bit should clear shift state, got nbits=%d shift=%x", m.nbits, m.shift)
	}
}

// TestMMC1BitSerialControlWrite makes five successive $8000 writes whose
// bit 0 is 1, 0, 0, 0, 0 — the "10000" bit-serial framing MMC1
// documentation uses for describing a register load. Bit 0 of the first
// write lands in bit 0 of the assembled register, so the sequence puts
// 0x01 in the control register (bank register 0), and the completed fifth
// write leaves the shift register cleared.
func TestMMC1BitSerialControlWrite(t *testing.T) {
	prg := makePRG(2, 0)
	cart, err := New(core.CartridgeConfig{MapperID: 1, PRG: prg})
	if err != nil {
		t.Fatal(err)
	}

	bits := []uint8{1, 0, 0, 0, 0}
	for _, b := range bits {
		cart.CPUWrite(0x8000, b)
	}

	m := cart.Mapper.(*mmc1)
	if m.ctrl != 0x01 {
		t.Errorf("control register after 10000 write = %#02x, want 0x01", m.ctrl)
	}
	if m.shift != 0 || m.nbits != 0 {
		t.Errorf("shift register after completed write = shift=%#02x nbits=%d, want both 0", m.shift, m.nbits)
	}
}

func TestMMC3ScanlineIRQ(t *testing.T) {
	prg := makePRG(2, 0)
	cart, err := New(core.CartridgeConfig{MapperID: 4, PRG: prg})
	if err != nil {
		t.Fatal(err)
	}

	cart.CPUWrite(0xC000, 2) // IRQ latch = 2
	cart.CPUWrite(0xC001, 0) // request reload
	cart.CPUWrite(0xE001, 0) // enable IRQ

	cart.OnScanline() // reload: counter = 2
	if cart.IRQPending() {
		t.Fatal("IRQ should not be pending yet")
	}
	cart.OnScanline() // counter = 1
	if cart.IRQPending() {
		t.Fatal("IRQ should not be pending yet")
	}
	cart.OnScanline() // counter = 0, enabled -> pending
	if !cart.IRQPending() {
		t.Fatal("expected IRQ pending after counter reaches 0")
	}

	cart.CPUWrite(0xE000, 0) // disable + acknowledge
	if cart.IRQPending() {
		t.Fatal("writing $E000 should acknowledge the IRQ")
	}
}

func TestCNROMCHRBankSwitch(t *testing.T) {
	prg := makePRG(2, 0)
	chr := make([]byte, 4*0x2000)
	chr[2*0x2000] = 0x55

	cart, err := New(core.CartridgeConfig{MapperID: 3, PRG: prg, CHR: chr})
	if err != nil {
		t.Fatal(err)
	}
	cart.CPUWrite(0x8000, 2)
	if got := cart.PPURead(0x0000); got != 0x55 {
		t.Errorf("PPURead(0) after CHR bank switch = %02x, want 55", got)
	}
}
