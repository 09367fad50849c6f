package hwio

import (
	"nescore/emu/log"
)

// log unmapped accesses; useful when debugging but very verbose on NES
// since many games read from open bus intentionally.
const logUnmapped = false

// BankIO8 is implemented by anything that can be mapped into a Table:
// a Reg8, a Mem region, or a FuncIO.
type BankIO8 interface {
	// Read8 reads a byte from the given address. If peek is true, the read
	// must not have side effects (used for tracing/debugging).
	Read8(addr uint16, peek bool) uint8
	Write8(addr uint16, val uint8)
}

func Write16(b BankIO8, addr uint16, val uint16) {
	lo := uint8(val & 0xff)
	hi := uint8(val >> 8)
	b.Write8(addr, lo)
	b.Write8(addr+1, hi)
}

func Read16(b BankIO8, addr uint16) uint16 {
	lo := b.Read8(addr, false)
	hi := b.Read8(addr+1, false)
	return uint16(hi)<<8 | uint16(lo)
}

func Peek16(b BankIO8, addr uint16) uint16 {
	lo := b.Read8(addr, true)
	hi := b.Read8(addr+1, true)
	return uint16(hi)<<8 | uint16(lo)
}

// FuncIO adapts a pair of read/write closures into a BankIO8, for registers
// that don't warrant a full Reg8 (e.g. a single OAMDMA trigger byte).
type FuncIO struct {
	ReadFn  func(addr uint16, peek bool) uint8
	WriteFn func(addr uint16, val uint8)
}

func (f FuncIO) Read8(addr uint16, peek bool) uint8 {
	if f.ReadFn == nil {
		return 0
	}
	return f.ReadFn(addr, peek)
}

func (f FuncIO) Write8(addr uint16, val uint8) {
	if f.WriteFn != nil {
		f.WriteFn(addr, val)
	}
}

// Table dispatches byte accesses over the full 16-bit NES address space to
// whichever BankIO8 currently owns each address. Unlike the teacher's
// reflection-driven register-bank mapper, regions are installed with
// explicit Map* calls: the address space a NES bus covers is small and
// entirely known at construction time, so a flat lookup table is both
// simpler and plenty fast.
type Table struct {
	Name string

	slots [0x10000]BankIO8
}

func NewTable(name string) *Table {
	return &Table{Name: name}
}

func (t *Table) Reset() {
	for i := range t.slots {
		t.slots[i] = nil
	}
}

func (t *Table) mapRange(addr, size uint16, io BankIO8) {
	end := uint32(addr) + uint32(size)
	for a := uint32(addr); a < end; a++ {
		t.slots[uint16(a)] = io
	}
}

func (t *Table) MapReg8(addr uint16, reg *Reg8) {
	t.mapRange(addr, 1, reg)
}

func (t *Table) MapFunc(addr, size uint16, io FuncIO) {
	t.mapRange(addr, size, io)
}

// MapMem maps a Mem region at addr, covering mem.vsize() bytes (which may
// mirror a smaller physical buffer — see Mem.VSize).
func (t *Table) MapMem(addr uint16, mem *Mem) {
	log.ModHwIo.DebugZ("mapping mem").
		Hex16("addr", addr).
		Hex16("size", uint16(mem.vsize())).
		String("area", mem.Name).
		String("bus", t.Name).
		End()

	if len(mem.Data)&(len(mem.Data)-1) != 0 {
		panic("memory buffer size is not pow2")
	}

	t.mapRange(addr, uint16(mem.vsize()), mem.BankIO8())
}

// MapMemorySlice maps the inclusive range [addr, end] directly onto buf,
// without mirroring (VSize == len(buf)).
func (t *Table) MapMemorySlice(addr, end uint16, buf []byte, readonly bool) {
	var flags MemFlags
	if readonly {
		flags |= MemFlag8ReadOnly
	}
	t.MapMem(addr, &Mem{
		Data:  buf,
		Flags: flags,
		VSize: int(end-addr) + 1,
	})
}

func (t *Table) Unmap(begin, end uint16) {
	for a := uint32(begin); a <= uint32(end); a++ {
		t.slots[uint16(a)] = nil
	}
}

// Read8 forwards the read to whatever owns addr. Unmapped reads return 0,
// matching spec.md §7's "log and return 0" policy for anomalous accesses.
func (t *Table) Read8(addr uint16, peek bool) uint8 {
	io := t.slots[addr]
	if io == nil {
		if logUnmapped && !peek {
			log.ModHwIo.ErrorZ("unmapped Read8").
				String("name", t.Name).
				Hex16("addr", addr).
				End()
		}
		return 0
	}
	return io.Read8(addr, peek)
}

func (t *Table) Peek8(addr uint16) uint8 {
	return t.Read8(addr, true)
}

func (t *Table) Write8(addr uint16, val uint8) {
	io := t.slots[addr]
	if io == nil {
		if logUnmapped {
			log.ModHwIo.ErrorZ("unmapped Write8").
				String("name", t.Name).
				Hex16("addr", addr).
				Hex8("val", val).
				End()
		}
		return
	}
	if m, ok := io.(*mem); ok {
		if !m.Write8CheckRO(addr, val) && m.ro&MemFlagNoROLog == 0 {
			log.ModHwIo.ErrorZ("Write8 to read-only address").
				String("name", t.Name).
				Hex16("addr", addr).
				Hex8("val", val).
				End()
		}
		return
	}
	io.Write8(addr, val)
}

func (t *Table) FetchPointer(addr uint16) []uint8 {
	if m, ok := t.slots[addr].(*mem); ok {
		return m.FetchPointer(addr)
	}
	return nil
}
