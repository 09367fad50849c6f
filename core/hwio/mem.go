package hwio

import (
	"nescore/emu/log"
)

// mem is the BankIO8 adaptor backing a Mem region. The mask wraps accesses
// within the physical buffer even when a larger virtual range (VSize) was
// mapped into the bus — that's how CPU internal RAM's 4x mirror is
// implemented: map a bigger range, back it with a smaller power-of-two
// buffer.
type mem struct {
	data []byte
	mask uint16
	wcb  func(uint16, uint8)
	ro   MemFlags
}

func newMem(buf []byte, wcb func(uint16, uint8), roflag MemFlags) *mem {
	if len(buf)&(len(buf)-1) != 0 {
		panic("memory buffer size is not pow2")
	}
	return &mem{
		data: buf,
		mask: uint16(len(buf) - 1),
		wcb:  wcb,
		ro:   roflag,
	}
}

func (m *mem) FetchPointer(addr uint16) []uint8 {
	off := addr & m.mask
	return m.data[off:]
}

func (m *mem) Read8(addr uint16, peek bool) uint8 {
	return m.data[addr&m.mask]
}

func (m *mem) Write8CheckRO(addr uint16, val uint8) bool {
	if m.ro == MemFlagReadWrite {
		m.data[addr&m.mask] = val
		if m.wcb != nil {
			m.wcb(addr, val)
		}
		return true
	}
	return false
}

func (m *mem) Write8(addr uint16, val uint8) {
	if m.wcb != nil {
		m.wcb(addr, val)
		return
	}

	switch m.ro {
	case MemFlagReadWrite:
		m.data[addr&m.mask] = val
	case MemFlag8ReadOnly:
		log.ModHwIo.ErrorZ("Write8 to readonly memory").
			Hex8("val", val).
			Hex16("addr", addr).
			End()
	case MemFlagNoROLog:
		return
	}
}

type MemFlags int

const (
	MemFlagReadWrite MemFlags = 0
	MemFlag8ReadOnly MemFlags = (1 << iota) // read-only accesses
	MemFlagNoROLog                          // skip logging attempts to write when configured to readonly
)

// Mem is a linear memory region that can be mapped into a Table. It does
// not directly implement BankIO8: callers go through BankIO8() to get an
// adaptor configured for the region's flags.
type Mem struct {
	Name    string              // name of the memory area (for debugging/logging)
	Data    []byte              // actual storage, must be a power-of-two size
	VSize   int                 // virtual size exposed on the bus (>= len(Data) for mirroring)
	Flags   MemFlags            // access flags
	WriteCb func(uint16, uint8) // optional write callback; Table writes store the byte and then call it
}

func (m *Mem) BankIO8() BankIO8 {
	return newMem(m.Data, m.WriteCb, m.Flags)
}

func (m *Mem) vsize() int {
	if m.VSize != 0 {
		return m.VSize
	}
	return len(m.Data)
}
