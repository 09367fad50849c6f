package core

// opFunc performs the operation and returns any cycle count beyond the
// table's base entry (currently only branches use this, for the
// taken/page-crossed bonus).
type opFunc func(c *CPU, addr uint16, mode AddrMode) int

type opEntry struct {
	name string
	mode AddrMode
	// cycles is the base cycle count for this opcode+mode pair.
	cycles uint8
	// pageCrossPenalty is set for read instructions in an indexed
	// addressing mode where crossing a page boundary costs one extra
	// cycle. Write and read-modify-write instructions never carry it:
	// their cycle count already reflects the worst case.
	pageCrossPenalty bool
	// official is false for opcodes with no documented behavior. Step
	// treats these as NOPs of the table-declared length unless
	// StrictOpcodes is set, in which case it returns ErrInvalidOpcode.
	official bool
	exec     opFunc
}

func e(name string, mode AddrMode, cycles uint8, pageCross bool, exec opFunc) opEntry {
	return opEntry{name: name, mode: mode, cycles: cycles, pageCrossPenalty: pageCross, official: true, exec: exec}
}

// u builds an unofficial opcode entry: same shape, but flagged so Step can
// promote it to ErrInvalidOpcode in strict mode. Its exec is always opNOP
// — none of the illegal read/write/RMW side effects (SLO, DCP, LAX, ...)
// are modeled, only the instruction's length and cycle cost.
func u(mode AddrMode, cycles uint8, pageCross bool) opEntry {
	return opEntry{name: "*NOP", mode: mode, cycles: cycles, pageCrossPenalty: pageCross, official: false, exec: opNOP}
}

var opcodeTable = [256]opEntry{
	// 0x00
	0x00: e("BRK", Implied, 7, false, opBRK),
	0x01: e("ORA", IndirectX, 6, false, opORA),
	0x02: u(Implied, 2, false),
	0x03: u(IndirectX, 8, false),
	0x04: u(ZeroPage, 3, false),
	0x05: e("ORA", ZeroPage, 3, false, opORA),
	0x06: e("ASL", ZeroPage, 5, false, opASL),
	0x07: u(ZeroPage, 5, false),
	0x08: e("PHP", Implied, 3, false, opPHP),
	0x09: e("ORA", Immediate, 2, false, opORA),
	0x0A: e("ASL", Accumulator, 2, false, opASL),
	0x0B: u(Immediate, 2, false),
	0x0C: u(Absolute, 4, false),
	0x0D: e("ORA", Absolute, 4, false, opORA),
	0x0E: e("ASL", Absolute, 6, false, opASL),
	0x0F: u(Absolute, 6, false),

	// 0x10
	0x10: e("BPL", Relative, 2, false, opBPL),
	0x11: e("ORA", IndirectY, 5, true, opORA),
	0x12: u(Implied, 2, false),
	0x13: u(IndirectY, 8, false),
	0x14: u(ZeroPageX, 4, false),
	0x15: e("ORA", ZeroPageX, 4, false, opORA),
	0x16: e("ASL", ZeroPageX, 6, false, opASL),
	0x17: u(ZeroPageX, 6, false),
	0x18: e("CLC", Implied, 2, false, opCLC),
	0x19: e("ORA", AbsoluteY, 4, true, opORA),
	0x1A: u(Implied, 2, false),
	0x1B: u(AbsoluteY, 7, false),
	0x1C: u(AbsoluteX, 4, true),
	0x1D: e("ORA", AbsoluteX, 4, true, opORA),
	0x1E: e("ASL", AbsoluteX, 7, false, opASL),
	0x1F: u(AbsoluteX, 7, false),

	// 0x20
	0x20: e("JSR", Absolute, 6, false, opJSR),
	0x21: e("AND", IndirectX, 6, false, opAND),
	0x22: u(Implied, 2, false),
	0x23: u(IndirectX, 8, false),
	0x24: e("BIT", ZeroPage, 3, false, opBIT),
	0x25: e("AND", ZeroPage, 3, false, opAND),
	0x26: e("ROL", ZeroPage, 5, false, opROL),
	0x27: u(ZeroPage, 5, false),
	0x28: e("PLP", Implied, 4, false, opPLP),
	0x29: e("AND", Immediate, 2, false, opAND),
	0x2A: e("ROL", Accumulator, 2, false, opROL),
	0x2B: u(Immediate, 2, false),
	0x2C: e("BIT", Absolute, 4, false, opBIT),
	0x2D: e("AND", Absolute, 4, false, opAND),
	0x2E: e("ROL", Absolute, 6, false, opROL),
	0x2F: u(Absolute, 6, false),

	// 0x30
	0x30: e("BMI", Relative, 2, false, opBMI),
	0x31: e("AND", IndirectY, 5, true, opAND),
	0x32: u(Implied, 2, false),
	0x33: u(IndirectY, 8, false),
	0x34: u(ZeroPageX, 4, false),
	0x35: e("AND", ZeroPageX, 4, false, opAND),
	0x36: e("ROL", ZeroPageX, 6, false, opROL),
	0x37: u(ZeroPageX, 6, false),
	0x38: e("SEC", Implied, 2, false, opSEC),
	0x39: e("AND", AbsoluteY, 4, true, opAND),
	0x3A: u(Implied, 2, false),
	0x3B: u(AbsoluteY, 7, false),
	0x3C: u(AbsoluteX, 4, true),
	0x3D: e("AND", AbsoluteX, 4, true, opAND),
	0x3E: e("ROL", AbsoluteX, 7, false, opROL),
	0x3F: u(AbsoluteX, 7, false),

	// 0x40
	0x40: e("RTI", Implied, 6, false, opRTI),
	0x41: e("EOR", IndirectX, 6, false, opEOR),
	0x42: u(Implied, 2, false),
	0x43: u(IndirectX, 8, false),
	0x44: u(ZeroPage, 3, false),
	0x45: e("EOR", ZeroPage, 3, false, opEOR),
	0x46: e("LSR", ZeroPage, 5, false, opLSR),
	0x47: u(ZeroPage, 5, false),
	0x48: e("PHA", Implied, 3, false, opPHA),
	0x49: e("EOR", Immediate, 2, false, opEOR),
	0x4A: e("LSR", Accumulator, 2, false, opLSR),
	0x4B: u(Immediate, 2, false),
	0x4C: e("JMP", Absolute, 3, false, opJMP),
	0x4D: e("EOR", Absolute, 4, false, opEOR),
	0x4E: e("LSR", Absolute, 6, false, opLSR),
	0x4F: u(Absolute, 6, false),

	// 0x50
	0x50: e("BVC", Relative, 2, false, opBVC),
	0x51: e("EOR", IndirectY, 5, true, opEOR),
	0x52: u(Implied, 2, false),
	0x53: u(IndirectY, 8, false),
	0x54: u(ZeroPageX, 4, false),
	0x55: e("EOR", ZeroPageX, 4, false, opEOR),
	0x56: e("LSR", ZeroPageX, 6, false, opLSR),
	0x57: u(ZeroPageX, 6, false),
	0x58: e("CLI", Implied, 2, false, opCLI),
	0x59: e("EOR", AbsoluteY, 4, true, opEOR),
	0x5A: u(Implied, 2, false),
	0x5B: u(AbsoluteY, 7, false),
	0x5C: u(AbsoluteX, 4, true),
	0x5D: e("EOR", AbsoluteX, 4, true, opEOR),
	0x5E: e("LSR", AbsoluteX, 7, false, opLSR),
	0x5F: u(AbsoluteX, 7, false),

	// 0x60
	0x60: e("RTS", Implied, 6, false, opRTS),
	0x61: e("ADC", IndirectX, 6, false, opADC),
	0x62: u(Implied, 2, false),
	0x63: u(IndirectX, 8, false),
	0x64: u(ZeroPage, 3, false),
	0x65: e("ADC", ZeroPage, 3, false, opADC),
	0x66: e("ROR", ZeroPage, 5, false, opROR),
	0x67: u(ZeroPage, 5, false),
	0x68: e("PLA", Implied, 4, false, opPLA),
	0x69: e("ADC", Immediate, 2, false, opADC),
	0x6A: e("ROR", Accumulator, 2, false, opROR),
	0x6B: u(Immediate, 2, false),
	0x6C: e("JMP", Indirect, 5, false, opJMP),
	0x6D: e("ADC", Absolute, 4, false, opADC),
	0x6E: e("ROR", Absolute, 6, false, opROR),
	0x6F: u(Absolute, 6, false),

	// 0x70
	0x70: e("BVS", Relative, 2, false, opBVS),
	0x71: e("ADC", IndirectY, 5, true, opADC),
	0x72: u(Implied, 2, false),
	0x73: u(IndirectY, 8, false),
	0x74: u(ZeroPageX, 4, false),
	0x75: e("ADC", ZeroPageX, 4, false, opADC),
	0x76: e("ROR", ZeroPageX, 6, false, opROR),
	0x77: u(ZeroPageX, 6, false),
	0x78: e("SEI", Implied, 2, false, opSEI),
	0x79: e("ADC", AbsoluteY, 4, true, opADC),
	0x7A: u(Implied, 2, false),
	0x7B: u(AbsoluteY, 7, false),
	0x7C: u(AbsoluteX, 4, true),
	0x7D: e("ADC", AbsoluteX, 4, true, opADC),
	0x7E: e("ROR", AbsoluteX, 7, false, opROR),
	0x7F: u(AbsoluteX, 7, false),

	// 0x80
	0x80: u(Immediate, 2, false),
	0x81: e("STA", IndirectX, 6, false, opSTA),
	0x82: u(Immediate, 2, false),
	0x83: u(IndirectX, 6, false),
	0x84: e("STY", ZeroPage, 3, false, opSTY),
	0x85: e("STA", ZeroPage, 3, false, opSTA),
	0x86: e("STX", ZeroPage, 3, false, opSTX),
	0x87: u(ZeroPage, 3, false),
	0x88: e("DEY", Implied, 2, false, opDEY),
	0x89: u(Immediate, 2, false),
	0x8A: e("TXA", Implied, 2, false, opTXA),
	0x8B: u(Immediate, 2, false),
	0x8C: e("STY", Absolute, 4, false, opSTY),
	0x8D: e("STA", Absolute, 4, false, opSTA),
	0x8E: e("STX", Absolute, 4, false, opSTX),
	0x8F: u(Absolute, 4, false),

	// 0x90
	0x90: e("BCC", Relative, 2, false, opBCC),
	0x91: e("STA", IndirectY, 6, false, opSTA),
	0x92: u(Implied, 2, false),
	0x93: u(IndirectY, 6, false),
	0x94: e("STY", ZeroPageX, 4, false, opSTY),
	0x95: e("STA", ZeroPageX, 4, false, opSTA),
	0x96: e("STX", ZeroPageY, 4, false, opSTX),
	0x97: u(ZeroPageY, 4, false),
	0x98: e("TYA", Implied, 2, false, opTYA),
	0x99: e("STA", AbsoluteY, 5, false, opSTA),
	0x9A: e("TXS", Implied, 2, false, opTXS),
	0x9B: u(AbsoluteY, 5, false),
	0x9C: u(AbsoluteX, 5, false),
	0x9D: e("STA", AbsoluteX, 5, false, opSTA),
	0x9E: u(AbsoluteY, 5, false),
	0x9F: u(AbsoluteY, 5, false),

	// 0xA0
	0xA0: e("LDY", Immediate, 2, false, opLDY),
	0xA1: e("LDA", IndirectX, 6, false, opLDA),
	0xA2: e("LDX", Immediate, 2, false, opLDX),
	0xA3: u(IndirectX, 6, false),
	0xA4: e("LDY", ZeroPage, 3, false, opLDY),
	0xA5: e("LDA", ZeroPage, 3, false, opLDA),
	0xA6: e("LDX", ZeroPage, 3, false, opLDX),
	0xA7: u(ZeroPage, 3, false),
	0xA8: e("TAY", Implied, 2, false, opTAY),
	0xA9: e("LDA", Immediate, 2, false, opLDA),
	0xAA: e("TAX", Implied, 2, false, opTAX),
	0xAB: u(Immediate, 2, false),
	0xAC: e("LDY", Absolute, 4, false, opLDY),
	0xAD: e("LDA", Absolute, 4, false, opLDA),
	0xAE: e("LDX", Absolute, 4, false, opLDX),
	0xAF: u(Absolute, 4, false),

	// 0xB0
	0xB0: e("BCS", Relative, 2, false, opBCS),
	0xB1: e("LDA", IndirectY, 5, true, opLDA),
	0xB2: u(Implied, 2, false),
	0xB3: u(IndirectY, 5, true),
	0xB4: e("LDY", ZeroPageX, 4, false, opLDY),
	0xB5: e("LDA", ZeroPageX, 4, false, opLDA),
	0xB6: e("LDX", ZeroPageY, 4, false, opLDX),
	0xB7: u(ZeroPageY, 4, false),
	0xB8: e("CLV", Implied, 2, false, opCLV),
	0xB9: e("LDA", AbsoluteY, 4, true, opLDA),
	0xBA: e("TSX", Implied, 2, false, opTSX),
	0xBB: u(AbsoluteY, 4, true),
	0xBC: e("LDY", AbsoluteX, 4, true, opLDY),
	0xBD: e("LDA", AbsoluteX, 4, true, opLDA),
	0xBE: e("LDX", AbsoluteY, 4, true, opLDX),
	0xBF: u(AbsoluteY, 4, true),

	// 0xC0
	0xC0: e("CPY", Immediate, 2, false, opCPY),
	0xC1: e("CMP", IndirectX, 6, false, opCMP),
	0xC2: u(Immediate, 2, false),
	0xC3: u(IndirectX, 8, false),
	0xC4: e("CPY", ZeroPage, 3, false, opCPY),
	0xC5: e("CMP", ZeroPage, 3, false, opCMP),
	0xC6: e("DEC", ZeroPage, 5, false, opDEC),
	0xC7: u(ZeroPage, 5, false),
	0xC8: e("INY", Implied, 2, false, opINY),
	0xC9: e("CMP", Immediate, 2, false, opCMP),
	0xCA: e("DEX", Implied, 2, false, opDEX),
	0xCB: u(Immediate, 2, false),
	0xCC: e("CPY", Absolute, 4, false, opCPY),
	0xCD: e("CMP", Absolute, 4, false, opCMP),
	0xCE: e("DEC", Absolute, 6, false, opDEC),
	0xCF: u(Absolute, 6, false),

	// 0xD0
	0xD0: e("BNE", Relative, 2, false, opBNE),
	0xD1: e("CMP", IndirectY, 5, true, opCMP),
	0xD2: u(Implied, 2, false),
	0xD3: u(IndirectY, 8, false),
	0xD4: u(ZeroPageX, 4, false),
	0xD5: e("CMP", ZeroPageX, 4, false, opCMP),
	0xD6: e("DEC", ZeroPageX, 6, false, opDEC),
	0xD7: u(ZeroPageX, 6, false),
	0xD8: e("CLD", Implied, 2, false, opCLD),
	0xD9: e("CMP", AbsoluteY, 4, true, opCMP),
	0xDA: u(Implied, 2, false),
	0xDB: u(AbsoluteY, 7, false),
	0xDC: u(AbsoluteX, 4, true),
	0xDD: e("CMP", AbsoluteX, 4, true, opCMP),
	0xDE: e("DEC", AbsoluteX, 7, false, opDEC),
	0xDF: u(AbsoluteX, 7, false),

	// 0xE0
	0xE0: e("CPX", Immediate, 2, false, opCPX),
	0xE1: e("SBC", IndirectX, 6, false, opSBC),
	0xE2: u(Immediate, 2, false),
	0xE3: u(IndirectX, 8, false),
	0xE4: e("CPX", ZeroPage, 3, false, opCPX),
	0xE5: e("SBC", ZeroPage, 3, false, opSBC),
	0xE6: e("INC", ZeroPage, 5, false, opINC),
	0xE7: u(ZeroPage, 5, false),
	0xE8: e("INX", Implied, 2, false, opINX),
	0xE9: e("SBC", Immediate, 2, false, opSBC),
	0xEA: e("NOP", Implied, 2, false, opNOP),
	0xEB: u(Immediate, 2, false),
	0xEC: e("CPX", Absolute, 4, false, opCPX),
	0xED: e("SBC", Absolute, 4, false, opSBC),
	0xEE: e("INC", Absolute, 6, false, opINC),
	0xEF: u(Absolute, 6, false),

	// 0xF0
	0xF0: e("BEQ", Relative, 2, false, opBEQ),
	0xF1: e("SBC", IndirectY, 5, true, opSBC),
	0xF2: u(Implied, 2, false),
	0xF3: u(IndirectY, 8, false),
	0xF4: u(ZeroPageX, 4, false),
	0xF5: e("SBC", ZeroPageX, 4, false, opSBC),
	0xF6: e("INC", ZeroPageX, 6, false, opINC),
	0xF7: u(ZeroPageX, 6, false),
	0xF8: e("SED", Implied, 2, false, opSED),
	0xF9: e("SBC", AbsoluteY, 4, true, opSBC),
	0xFA: u(Implied, 2, false),
	0xFB: u(AbsoluteY, 7, false),
	0xFC: u(AbsoluteX, 4, true),
	0xFD: e("SBC", AbsoluteX, 4, true, opSBC),
	0xFE: e("INC", AbsoluteX, 7, false, opINC),
	0xFF: u(AbsoluteX, 7, false),
}
