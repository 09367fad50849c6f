package hwio_test

import (
	"testing"

	"nescore/core/hwio"
)

func TestTableMapMem(t *testing.T) {
	tbl := hwio.NewTable("bus")

	ram := &hwio.Mem{Name: "ram", Data: make([]byte, 0x800), VSize: 0x2000}
	tbl.MapMem(0x0000, ram)

	reg1 := &hwio.Reg8{Name: "reg1", Value: 0x99, RoMask: 0xF0}
	reg1.ReadCb = func(val uint8) uint8 {
		reg1.Value++
		return reg1.Value
	}
	tbl.MapReg8(0x2001, reg1)

	// Mem, mirrored every 0x800 bytes across the mapped 0x2000 window.
	if got := tbl.Read8(0x00, false); got != 0 {
		t.Errorf("Read8(0x00) = %02X, want 00", got)
	}
	tbl.Write8(0x00, 0x12)
	if got := tbl.Read8(0x00, false); got != 0x12 {
		t.Errorf("Read8(0x00) = %02X, want 12", got)
	}
	if got := tbl.Read8(0x800, false); got != 0x12 {
		t.Errorf("Read8(0x800) = %02X, want 12 (mirrored)", got)
	}

	// Reg1: ReadCb increments on every access.
	if got := tbl.Read8(0x2001, false); got != 0x9A {
		t.Errorf("Read8(0x2001) = %02X, want 9A", got)
	}
	if got := tbl.Read8(0x2001, false); got != 0x9B {
		t.Errorf("Read8(0x2001) = %02X, want 9B", got)
	}
	tbl.Write8(0x2001, 0xFF)
	if got := tbl.Read8(0x2001, true); got != 0x9F {
		t.Errorf("peek after write = %02X, want 9F (RoMask keeps high nibble from 0x9B)", got)
	}
}

func TestTableUnmapped(t *testing.T) {
	tbl := hwio.NewTable("bus")
	if got := tbl.Read8(0x1234, false); got != 0 {
		t.Errorf("unmapped read should return 0, got %02X", got)
	}
	tbl.Write8(0x1234, 0x55) // must not panic
}

func TestTableUnmap(t *testing.T) {
	tbl := hwio.NewTable("bus")
	tbl.MapMemorySlice(0x0000, 0x07FF, make([]byte, 0x800), false)
	tbl.Write8(0x10, 0x7)
	if got := tbl.Read8(0x10, false); got != 0x7 {
		t.Fatalf("expected mapped read, got %02X", got)
	}
	tbl.Unmap(0x0000, 0x07FF)
	if got := tbl.Read8(0x10, false); got != 0 {
		t.Fatalf("expected unmapped read after Unmap, got %02X", got)
	}
}
