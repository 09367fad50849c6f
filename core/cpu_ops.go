package core

// Every opcode function has the same shape: given the address the
// addressing mode already resolved (unused by Implied/Accumulator/
// Relative-consuming instructions), perform the operation and return any
// cycles beyond the table's base count (branches taken, page crosses on
// branches — the generic read-instruction page-cross bonus is handled by
// the caller via the table's pageCrossPenalty flag).

func opLDA(c *CPU, addr uint16, mode AddrMode) int { c.A = c.read8(addr); c.P.setNZ(c.A); return 0 }
func opLDX(c *CPU, addr uint16, mode AddrMode) int { c.X = c.read8(addr); c.P.setNZ(c.X); return 0 }
func opLDY(c *CPU, addr uint16, mode AddrMode) int { c.Y = c.read8(addr); c.P.setNZ(c.Y); return 0 }

func opSTA(c *CPU, addr uint16, mode AddrMode) int { c.write8(addr, c.A); return 0 }
func opSTX(c *CPU, addr uint16, mode AddrMode) int { c.write8(addr, c.X); return 0 }
func opSTY(c *CPU, addr uint16, mode AddrMode) int { c.write8(addr, c.Y); return 0 }

func opTAX(c *CPU, addr uint16, mode AddrMode) int { c.X = c.A; c.P.setNZ(c.X); return 0 }
func opTAY(c *CPU, addr uint16, mode AddrMode) int { c.Y = c.A; c.P.setNZ(c.Y); return 0 }
func opTXA(c *CPU, addr uint16, mode AddrMode) int { c.A = c.X; c.P.setNZ(c.A); return 0 }
func opTYA(c *CPU, addr uint16, mode AddrMode) int { c.A = c.Y; c.P.setNZ(c.A); return 0 }
func opTSX(c *CPU, addr uint16, mode AddrMode) int { c.X = c.SP; c.P.setNZ(c.X); return 0 }
func opTXS(c *CPU, addr uint16, mode AddrMode) int { c.SP = c.X; return 0 }

func opPHA(c *CPU, addr uint16, mode AddrMode) int { c.push8(c.A); return 0 }
func opPHP(c *CPU, addr uint16, mode AddrMode) int {
	p := c.P
	p.setBrk(true)
	p.setUnused(true)
	c.push8(uint8(p))
	return 0
}
func opPLA(c *CPU, addr uint16, mode AddrMode) int { c.A = c.pull8(); c.P.setNZ(c.A); return 0 }
func opPLP(c *CPU, addr uint16, mode AddrMode) int {
	p := P(c.pull8())
	p.setBrk(false)
	p.setUnused(true)
	c.P = p
	return 0
}

func adc(c *CPU, val uint8) {
	carryIn := uint16(0)
	if c.P.carry() {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(val) + carryIn
	result := uint8(sum)
	c.P.setCarry(sum > 0xFF)
	c.P.setOverflow((c.A^val)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.P.setNZ(result)
	c.A = result
}

func opADC(c *CPU, addr uint16, mode AddrMode) int { adc(c, c.read8(addr)); return 0 }
func opSBC(c *CPU, addr uint16, mode AddrMode) int { adc(c, ^c.read8(addr)); return 0 }

func opAND(c *CPU, addr uint16, mode AddrMode) int {
	c.A &= c.read8(addr)
	c.P.setNZ(c.A)
	return 0
}
func opORA(c *CPU, addr uint16, mode AddrMode) int {
	c.A |= c.read8(addr)
	c.P.setNZ(c.A)
	return 0
}
func opEOR(c *CPU, addr uint16, mode AddrMode) int {
	c.A ^= c.read8(addr)
	c.P.setNZ(c.A)
	return 0
}

func opBIT(c *CPU, addr uint16, mode AddrMode) int {
	val := c.read8(addr)
	c.P.setZero(c.A&val == 0)
	c.P.setOverflow(val&0x40 != 0)
	c.P.setNegative(val&0x80 != 0)
	return 0
}

func compare(c *CPU, reg, val uint8) {
	c.P.setCarry(reg >= val)
	c.P.setNZ(reg - val)
}

func opCMP(c *CPU, addr uint16, mode AddrMode) int { compare(c, c.A, c.read8(addr)); return 0 }
func opCPX(c *CPU, addr uint16, mode AddrMode) int { compare(c, c.X, c.read8(addr)); return 0 }
func opCPY(c *CPU, addr uint16, mode AddrMode) int { compare(c, c.Y, c.read8(addr)); return 0 }

func opINC(c *CPU, addr uint16, mode AddrMode) int {
	val := c.read8(addr) + 1
	c.write8(addr, val)
	c.P.setNZ(val)
	return 0
}
func opDEC(c *CPU, addr uint16, mode AddrMode) int {
	val := c.read8(addr) - 1
	c.write8(addr, val)
	c.P.setNZ(val)
	return 0
}
func opINX(c *CPU, addr uint16, mode AddrMode) int { c.X++; c.P.setNZ(c.X); return 0 }
func opINY(c *CPU, addr uint16, mode AddrMode) int { c.Y++; c.P.setNZ(c.Y); return 0 }
func opDEX(c *CPU, addr uint16, mode AddrMode) int { c.X--; c.P.setNZ(c.X); return 0 }
func opDEY(c *CPU, addr uint16, mode AddrMode) int { c.Y--; c.P.setNZ(c.Y); return 0 }

func opASL(c *CPU, addr uint16, mode AddrMode) int {
	if mode == Accumulator {
		c.P.setCarry(c.A&0x80 != 0)
		c.A <<= 1
		c.P.setNZ(c.A)
		return 0
	}
	val := c.read8(addr)
	c.P.setCarry(val&0x80 != 0)
	val <<= 1
	c.write8(addr, val)
	c.P.setNZ(val)
	return 0
}

func opLSR(c *CPU, addr uint16, mode AddrMode) int {
	if mode == Accumulator {
		c.P.setCarry(c.A&0x01 != 0)
		c.A >>= 1
		c.P.setNZ(c.A)
		return 0
	}
	val := c.read8(addr)
	c.P.setCarry(val&0x01 != 0)
	val >>= 1
	c.write8(addr, val)
	c.P.setNZ(val)
	return 0
}

func opROL(c *CPU, addr uint16, mode AddrMode) int {
	carryIn := uint8(0)
	if c.P.carry() {
		carryIn = 1
	}
	if mode == Accumulator {
		c.P.setCarry(c.A&0x80 != 0)
		c.A = (c.A << 1) | carryIn
		c.P.setNZ(c.A)
		return 0
	}
	val := c.read8(addr)
	c.P.setCarry(val&0x80 != 0)
	val = (val << 1) | carryIn
	c.write8(addr, val)
	c.P.setNZ(val)
	return 0
}

// opROR combines the incoming carry with the shifted-out value using OR:
// the correct 6502 behavior. (An AND here would zero out bit 7 whenever
// carry was already clear before the shift — a common transcription bug.)
func opROR(c *CPU, addr uint16, mode AddrMode) int {
	carryIn := uint8(0)
	if c.P.carry() {
		carryIn = 0x80
	}
	if mode == Accumulator {
		c.P.setCarry(c.A&0x01 != 0)
		c.A = (c.A >> 1) | carryIn
		c.P.setNZ(c.A)
		return 0
	}
	val := c.read8(addr)
	c.P.setCarry(val&0x01 != 0)
	val = (val >> 1) | carryIn
	c.write8(addr, val)
	c.P.setNZ(val)
	return 0
}

func branch(c *CPU, addr uint16, take bool) int {
	if !take {
		return 0
	}
	pageCrossed := !samePage(c.PC, addr)
	c.PC = addr
	if pageCrossed {
		return 2
	}
	return 1
}

func opBCC(c *CPU, addr uint16, mode AddrMode) int { return branch(c, addr, !c.P.carry()) }
func opBCS(c *CPU, addr uint16, mode AddrMode) int { return branch(c, addr, c.P.carry()) }
func opBEQ(c *CPU, addr uint16, mode AddrMode) int { return branch(c, addr, c.P.zero()) }
func opBNE(c *CPU, addr uint16, mode AddrMode) int { return branch(c, addr, !c.P.zero()) }
func opBMI(c *CPU, addr uint16, mode AddrMode) int { return branch(c, addr, c.P.negative()) }
func opBPL(c *CPU, addr uint16, mode AddrMode) int { return branch(c, addr, !c.P.negative()) }
func opBVC(c *CPU, addr uint16, mode AddrMode) int { return branch(c, addr, !c.P.overflow()) }
func opBVS(c *CPU, addr uint16, mode AddrMode) int { return branch(c, addr, c.P.overflow()) }

func opJMP(c *CPU, addr uint16, mode AddrMode) int { c.PC = addr; return 0 }

func opJSR(c *CPU, addr uint16, mode AddrMode) int {
	c.push16(c.PC - 1)
	c.PC = addr
	return 0
}

func opRTS(c *CPU, addr uint16, mode AddrMode) int {
	c.PC = c.pull16() + 1
	return 0
}

func opRTI(c *CPU, addr uint16, mode AddrMode) int {
	p := P(c.pull8())
	p.setBrk(false)
	p.setUnused(true)
	c.P = p
	c.PC = c.pull16()
	return 0
}

func opBRK(c *CPU, addr uint16, mode AddrMode) int {
	c.PC++ // the byte after BRK's opcode is skipped, not executed
	c.serviceInterrupt(IRQVector, true)
	return 0
}

func opCLC(c *CPU, addr uint16, mode AddrMode) int { c.P.setCarry(false); return 0 }
func opCLD(c *CPU, addr uint16, mode AddrMode) int { c.P.setDecimal(false); return 0 }
func opCLI(c *CPU, addr uint16, mode AddrMode) int { c.P.setIntDisable(false); return 0 }
func opCLV(c *CPU, addr uint16, mode AddrMode) int { c.P.setOverflow(false); return 0 }
func opSEC(c *CPU, addr uint16, mode AddrMode) int { c.P.setCarry(true); return 0 }
func opSED(c *CPU, addr uint16, mode AddrMode) int { c.P.setDecimal(true); return 0 }
func opSEI(c *CPU, addr uint16, mode AddrMode) int { c.P.setIntDisable(true); return 0 }

func opNOP(c *CPU, addr uint16, mode AddrMode) int { return 0 }
