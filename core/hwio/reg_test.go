package hwio

import "testing"

func TestReg8(t *testing.T) {
	r := Reg8{Value: 0x11, RoMask: 0xF0}

	if got := r.Read8(0, false); got != 0x11 {
		t.Errorf("invalid read: %x", got)
	}
	if got := r.Read8(9999, false); got != 0x11 {
		t.Errorf("invalid read with offset: %x", got)
	}

	r.Write8(0, 0x77)
	if r.Value != 0x17 {
		t.Errorf("writemask not respected: %x", r.Value)
	}
	r.Write8(9999, 0x88)
	if r.Value != 0x18 {
		t.Errorf("writemask with offset not respected: %x", r.Value)
	}
}

func TestReg8Callbacks(t *testing.T) {
	var lastOld, lastNew uint8
	r := Reg8{
		WriteCb: func(old, val uint8) { lastOld, lastNew = old, val },
		ReadCb:  func(val uint8) uint8 { return val + 1 },
	}

	r.Write8(0, 0x42)
	if lastOld != 0 || lastNew != 0x42 {
		t.Fatalf("WriteCb not invoked with expected values: old=%x new=%x", lastOld, lastNew)
	}
	if got := r.Read8(0, false); got != 0x43 {
		t.Fatalf("ReadCb not applied: got %x", got)
	}
	if got := r.Read8(0, true); got != 0x42 {
		t.Fatalf("peek should bypass ReadCb: got %x", got)
	}
}

func TestReg8ReadOnlyWriteOnly(t *testing.T) {
	ro := Reg8{Value: 5, Flags: ReadOnlyFlag}
	ro.Write8(0, 9)
	if ro.Value != 5 {
		t.Fatalf("write to readonly register should be ignored, got %x", ro.Value)
	}

	wo := Reg8{Value: 5, Flags: WriteOnlyFlag}
	if got := wo.Read8(0, false); got != 0 {
		t.Fatalf("read from writeonly register should return 0, got %x", got)
	}
}
