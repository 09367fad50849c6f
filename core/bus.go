package core

import "nescore/core/hwio"

// PPURegisters is implemented by the PPU. Reads and writes to $2000-$3FFF
// are all routed here, mirrored every 8 bytes: the register itself decides
// what addr&7 means.
type PPURegisters interface {
	ReadRegister(addr uint16, peek bool) uint8
	WriteRegister(addr uint16, val uint8)
}

// APURegisters is implemented by the APU for every $4000-$4017 address not
// claimed by the controller ports ($4016 write, $4016/$4017 read).
type APURegisters interface {
	ReadRegister(addr uint16, peek bool) uint8
	WriteRegister(addr uint16, val uint8)
}

// InputPorts is implemented by the controller subsystem. A write to $4016
// strobes both controllers; reads of $4016/$4017 shift out controller 1/2.
type InputPorts interface {
	ReadPort(addr uint16, peek bool) uint8
	WritePort(addr uint16, val uint8)
}

// OAMDMADriver is implemented by whatever drives the $4014 sprite DMA transfer.
type OAMDMADriver interface {
	StartTransfer(page uint8)
}

// CPUMemoryBus is the CPU's view of the address space: internal RAM,
// mirrored PPU/APU/input registers, and the cartridge. Components are
// wired in with the Map* calls below rather than reached into directly, so
// nothing outside this file needs to know the address map.
type CPUMemoryBus struct {
	table *hwio.Table
	ram   hwio.Mem
}

func NewCPUMemoryBus() *CPUMemoryBus {
	b := &CPUMemoryBus{table: hwio.NewTable("cpu")}
	b.ram = hwio.Mem{
		Name:  "ram",
		Data:  make([]byte, 0x800),
		VSize: 0x2000, // $0000-$1FFF, four mirrors of the 2 KiB internal RAM
	}
	b.table.MapMem(0x0000, &b.ram)
	return b
}

func (b *CPUMemoryBus) Read8(addr uint16, peek bool) uint8 { return b.table.Read8(addr, peek) }
func (b *CPUMemoryBus) Write8(addr uint16, val uint8)      { b.table.Write8(addr, val) }

// MapPPU installs the PPU's eight registers, mirrored across $2000-$3FFF.
func (b *CPUMemoryBus) MapPPU(regs PPURegisters) {
	b.table.MapFunc(0x2000, 0x2000, hwio.FuncIO{
		ReadFn:  regs.ReadRegister,
		WriteFn: regs.WriteRegister,
	})
}

// MapOAMDMA installs the $4014 sprite DMA trigger.
func (b *CPUMemoryBus) MapOAMDMA(dma OAMDMADriver) {
	b.table.MapFunc(0x4014, 1, hwio.FuncIO{
		WriteFn: func(addr uint16, val uint8) { dma.StartTransfer(val) },
	})
}

// MapAPUAndInput installs the APU registers and controller ports across
// $4000-$4017. $4016 writes strobe the controllers; every other write in
// range (including $4017, the frame counter control) goes to the APU.
// $4016/$4017 reads shift out controller 1/2; every other read is APU.
func (b *CPUMemoryBus) MapAPUAndInput(apu APURegisters, input InputPorts) {
	b.table.MapFunc(0x4000, 0x18, hwio.FuncIO{
		ReadFn: func(addr uint16, peek bool) uint8 {
			if addr == 0x4016 || addr == 0x4017 {
				return input.ReadPort(addr, peek)
			}
			return apu.ReadRegister(addr, peek)
		},
		WriteFn: func(addr uint16, val uint8) {
			if addr == 0x4016 {
				input.WritePort(addr, val)
				return
			}
			apu.WriteRegister(addr, val)
		},
	})
}

// MapCartridge installs the cartridge across $4020-$FFFF: PRG-RAM, PRG-ROM
// banks, and mapper registers, all routed through Mapper.CPURead/CPUWrite.
// $4020-$5FFF (expansion audio on some rare boards) is folded into the
// same range for simplicity; no mapper this module supports uses it.
func (b *CPUMemoryBus) MapCartridge(cart *Cartridge) {
	b.table.MapFunc(0x4020, 0xBFE0, hwio.FuncIO{
		ReadFn:  func(addr uint16, peek bool) uint8 { return cart.CPURead(addr) },
		WriteFn: func(addr uint16, val uint8) { cart.CPUWrite(addr, val) },
	})
}

// PPUMemoryBus is the PPU's view of its 14-bit address space: cartridge
// pattern tables, 2 KiB of internal nametable VRAM mirrored according to
// the cartridge, and the 32-byte palette.
type PPUMemoryBus struct {
	cart *Cartridge

	nametables [0x800]byte
	palette    [0x20]byte
}

func NewPPUMemoryBus(cart *Cartridge) *PPUMemoryBus {
	return &PPUMemoryBus{cart: cart}
}

func (b *PPUMemoryBus) Read8(addr uint16, peek bool) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return b.cart.PPURead(addr)
	case addr < 0x3F00:
		return b.nametables[b.nametableOffset(addr)]
	default:
		return b.palette[paletteIndex(addr)]
	}
}

func (b *PPUMemoryBus) Write8(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		b.cart.PPUWrite(addr, val)
	case addr < 0x3F00:
		b.nametables[b.nametableOffset(addr)] = val
	default:
		b.palette[paletteIndex(addr)] = val & 0x3F
	}
}

// nametableOffset maps a $2000-$2FFF nametable address (its $3000-$3FFF
// mirror is folded in by the caller) onto one of the two physical 1 KiB
// VRAM banks, per the cartridge's current mirroring mode. Four-screen
// boards would need on-cartridge VRAM this module doesn't model, so they
// fall back to vertical mirroring.
func (b *PPUMemoryBus) nametableOffset(addr uint16) uint16 {
	addr &= 0x2FFF
	table := (addr - 0x2000) / 0x400
	offset := addr & 0x3FF

	switch b.cart.Mirroring() {
	case Horizontal:
		if table == 0 || table == 1 {
			return offset
		}
		return 0x400 + offset
	case SingleScreenLow:
		return offset
	case SingleScreenHigh:
		return 0x400 + offset
	default: // Vertical, FourScreen, MapperControlled
		if table%2 == 0 {
			return offset
		}
		return 0x400 + offset
	}
}

// paletteIndex folds the four background-color mirrors ($3F10, $3F14,
// $3F18, $3F1C) onto the entries they mirror ($3F00, $3F04, $3F08, $3F0C).
func paletteIndex(addr uint16) uint16 {
	idx := addr & 0x1F
	if idx >= 0x10 && idx%4 == 0 {
		idx &= 0x0F
	}
	return idx
}
