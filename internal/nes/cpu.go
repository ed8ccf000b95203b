package nes

import "fmt"

// addressingMode identifies one of the 6502's 13 addressing modes.
type addressingMode uint8

const (
	modeAbsolute addressingMode = iota
	modeAbsoluteX
	modeAbsoluteY
	modeAccumulator
	modeImmediate
	modeImplied
	modeIndexedIndirect
	modeIndirect
	modeIndirectIndexed
	modeRelative
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
)

// interruptKind is the CPU's single pending-interrupt slot (§3 data model).
type interruptKind uint8

const (
	interruptNone interruptKind = iota
	interruptNMI
	interruptIRQ
)

// status flag bits, in the order C Z I D B U V N (bit 0..7).
const (
	flagC uint8 = 1 << 0
	flagZ uint8 = 1 << 1
	flagI uint8 = 1 << 2
	flagD uint8 = 1 << 3
	flagB uint8 = 1 << 4
	flagU uint8 = 1 << 5
	flagV uint8 = 1 << 6
	flagN uint8 = 1 << 7
)

// CPU is a 6502 variant without decimal mode: the Ricoh 2A03.
type CPU struct {
	PC     uint16
	SP     uint8
	A, X, Y uint8
	Status uint8

	interrupt interruptKind
	Cycles    uint64
	stall     int
}

func newCPU() *CPU {
	return &CPU{}
}

// reset sets the CPU to its power-on state, reading the reset vector from
// the bus.
func (cpu *CPU) reset(c *Console) {
	cpu.PC = c.read16(0xFFFC)
	cpu.SP = 0xFD
	cpu.Status = flagI | flagU
	cpu.Cycles = 0
	cpu.interrupt = interruptNone
	cpu.stall = 0
}

func (cpu *CPU) setFlag(flag uint8, set bool) {
	if set {
		cpu.Status |= flag
	} else {
		cpu.Status &^= flag
	}
}

func (cpu *CPU) flag(flag uint8) bool { return cpu.Status&flag != 0 }

func (cpu *CPU) setZN(v uint8) {
	cpu.setFlag(flagZ, v == 0)
	cpu.setFlag(flagN, v&0x80 != 0)
}

func (cpu *CPU) push(c *Console, v uint8) {
	c.cpuWrite(0x0100|uint16(cpu.SP), v)
	cpu.SP--
}

func (cpu *CPU) pop(c *Console) uint8 {
	cpu.SP++
	return c.cpuRead(0x0100 | uint16(cpu.SP))
}

func (cpu *CPU) push16(c *Console, v uint16) {
	cpu.push(c, uint8(v>>8))
	cpu.push(c, uint8(v))
}

func (cpu *CPU) pop16(c *Console) uint16 {
	lo := uint16(cpu.pop(c))
	hi := uint16(cpu.pop(c))
	return hi<<8 | lo
}

// triggerNMI latches an NMI edge. Called by the PPU after its NMI delay
// counter elapses.
func (cpu *CPU) triggerNMI() { cpu.interrupt = interruptNMI }

// triggerIRQ latches an IRQ edge. Called by the APU's frame counter and by
// mapper 4's scanline counter.
func (cpu *CPU) triggerIRQ() {
	if cpu.interrupt == interruptNone {
		cpu.interrupt = interruptIRQ
	}
}

func pagesDiffer(a, b uint16) bool { return a&0xFF00 != b&0xFF00 }

// stepInfo is handed to every opcode function: the resolved effective
// address, the PC at the start of the instruction, and the addressing mode
// (some opcodes, like the shifts, branch on whether the mode is
// Accumulator).
type stepInfo struct {
	address  uint16
	pc       uint16
	mode     addressingMode
	mnemonic string
}

// resolveAddress computes the effective address for mode, advances PC past
// the operand bytes, and reports whether a page boundary was crossed (used
// for the page-cross cycle penalty).
func (cpu *CPU) resolveAddress(c *Console, mode addressingMode) (addr uint16, pageCrossed bool) {
	switch mode {
	case modeAbsolute:
		addr = c.read16(cpu.PC)
		cpu.PC += 2
	case modeAbsoluteX:
		base := c.read16(cpu.PC)
		cpu.PC += 2
		addr = base + uint16(cpu.X)
		pageCrossed = pagesDiffer(base, addr)
	case modeAbsoluteY:
		base := c.read16(cpu.PC)
		cpu.PC += 2
		addr = base + uint16(cpu.Y)
		pageCrossed = pagesDiffer(base, addr)
	case modeAccumulator:
		addr = 0
	case modeImmediate:
		addr = cpu.PC
		cpu.PC++
	case modeImplied:
		addr = 0
	case modeIndexedIndirect:
		base := c.cpuRead(cpu.PC)
		cpu.PC++
		ptr := uint16(base + cpu.X)
		addr = uint16(c.cpuRead(ptr&0x00FF)) | uint16(c.cpuRead((ptr+1)&0x00FF))<<8
	case modeIndirect:
		ptr := c.read16(cpu.PC)
		cpu.PC += 2
		addr = c.read16Bugged(ptr)
	case modeIndirectIndexed:
		base := c.cpuRead(cpu.PC)
		cpu.PC++
		lo := uint16(c.cpuRead(uint16(base) & 0x00FF))
		hi := uint16(c.cpuRead((uint16(base) + 1) & 0x00FF))
		ptr := hi<<8 | lo
		addr = ptr + uint16(cpu.Y)
		pageCrossed = pagesDiffer(ptr, addr)
	case modeRelative:
		offset := uint16(c.cpuRead(cpu.PC))
		cpu.PC++
		if offset&0x80 != 0 {
			offset |= 0xFF00
		}
		addr = cpu.PC + offset
	case modeZeroPage:
		addr = uint16(c.cpuRead(cpu.PC))
		cpu.PC++
	case modeZeroPageX:
		addr = uint16(c.cpuRead(cpu.PC)+cpu.X) & 0x00FF
		cpu.PC++
	case modeZeroPageY:
		addr = uint16(c.cpuRead(cpu.PC)+cpu.Y) & 0x00FF
		cpu.PC++
	}
	return addr, pageCrossed
}

// step executes exactly one instruction (or, if stalled, burns one stall
// cycle) and returns the number of CPU cycles consumed.
func (cpu *CPU) step(c *Console) uint32 {
	if cpu.stall > 0 {
		cpu.stall--
		cpu.Cycles++
		return 1
	}

	switch cpu.interrupt {
	case interruptNMI:
		cpu.serviceInterrupt(c, 0xFFFA)
		cpu.interrupt = interruptNone
		cpu.Cycles += 7
		return 7
	case interruptIRQ:
		if !cpu.flag(flagI) {
			cpu.serviceInterrupt(c, 0xFFFE)
			cpu.interrupt = interruptNone
			cpu.Cycles += 7
			return 7
		}
	}

	opcode := c.cpuRead(cpu.PC)
	def := &opcodeTable[opcode]

	startPC := cpu.PC
	cpu.PC++

	addr, pageCrossed := cpu.resolveAddress(c, def.mode)

	cycles := uint32(def.cycles)
	if pageCrossed && def.pageCycles > 0 {
		switch def.mode {
		case modeAbsoluteX, modeAbsoluteY, modeIndirectIndexed:
			cycles += uint32(def.pageCycles)
		}
	}

	info := stepInfo{address: addr, pc: startPC, mode: def.mode, mnemonic: def.name}
	extra := def.fn(cpu, c, &info)
	cycles += uint32(extra)

	cpu.Cycles += uint64(cycles)
	return cycles
}

func (cpu *CPU) serviceInterrupt(c *Console, vector uint16) {
	cpu.push16(c, cpu.PC)
	cpu.push(c, (cpu.Status|flagU)&^flagB)
	cpu.setFlag(flagI, true)
	cpu.PC = c.read16(vector)
}

func (cpu *CPU) branch(c *Console, info *stepInfo) uint8 {
	cycles := uint8(1)
	if pagesDiffer(cpu.PC, info.address) {
		cycles++
	}
	cpu.PC = info.address
	return cycles
}

// --- official opcodes ---

func opADC(cpu *CPU, c *Console, info *stepInfo) uint8 {
	a := cpu.A
	b := c.cpuRead(info.address)
	carry := uint16(0)
	if cpu.flag(flagC) {
		carry = 1
	}
	sum := uint16(a) + uint16(b) + carry
	cpu.A = uint8(sum)
	cpu.setFlag(flagC, sum > 0xFF)
	cpu.setZN(cpu.A)
	cpu.setFlag(flagV, (a^b)&0x80 == 0 && (a^cpu.A)&0x80 != 0)
	return 0
}

func opSBC(cpu *CPU, c *Console, info *stepInfo) uint8 {
	a := cpu.A
	b := c.cpuRead(info.address)
	carry := uint16(0)
	if cpu.flag(flagC) {
		carry = 1
	}
	sub := uint16(a) - uint16(b) - (1 - carry)
	cpu.A = uint8(sub)
	cpu.setFlag(flagC, sub < 0x100)
	cpu.setZN(cpu.A)
	cpu.setFlag(flagV, (a^b)&0x80 != 0 && (a^cpu.A)&0x80 != 0)
	return 0
}

func opAND(cpu *CPU, c *Console, info *stepInfo) uint8 {
	cpu.A &= c.cpuRead(info.address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) readForShift(c *Console, info *stepInfo) uint8 {
	if info.mode == modeAccumulator {
		return cpu.A
	}
	return c.cpuRead(info.address)
}

func (cpu *CPU) writeForShift(c *Console, info *stepInfo, v uint8) {
	if info.mode == modeAccumulator {
		cpu.A = v
		return
	}
	c.cpuWrite(info.address, v)
}

func opASL(cpu *CPU, c *Console, info *stepInfo) uint8 {
	v := cpu.readForShift(c, info)
	cpu.setFlag(flagC, v&0x80 != 0)
	v <<= 1
	cpu.setZN(v)
	cpu.writeForShift(c, info, v)
	return 0
}

func opLSR(cpu *CPU, c *Console, info *stepInfo) uint8 {
	v := cpu.readForShift(c, info)
	cpu.setFlag(flagC, v&0x01 != 0)
	v >>= 1
	cpu.setZN(v)
	cpu.writeForShift(c, info, v)
	return 0
}

func opROL(cpu *CPU, c *Console, info *stepInfo) uint8 {
	v := cpu.readForShift(c, info)
	carryIn := uint8(0)
	if cpu.flag(flagC) {
		carryIn = 1
	}
	cpu.setFlag(flagC, v&0x80 != 0)
	v = (v << 1) | carryIn
	cpu.setZN(v)
	cpu.writeForShift(c, info, v)
	return 0
}

func opROR(cpu *CPU, c *Console, info *stepInfo) uint8 {
	v := cpu.readForShift(c, info)
	carryIn := uint8(0)
	if cpu.flag(flagC) {
		carryIn = 0x80
	}
	cpu.setFlag(flagC, v&0x01 != 0)
	v = (v >> 1) | carryIn
	cpu.setZN(v)
	cpu.writeForShift(c, info, v)
	return 0
}

func branchIf(cond bool) func(*CPU, *Console, *stepInfo) uint8 {
	return func(cpu *CPU, c *Console, info *stepInfo) uint8 {
		if cond {
			return cpu.branch(c, info)
		}
		return 0
	}
}

func opBCC(cpu *CPU, c *Console, info *stepInfo) uint8 { return branchIf(!cpu.flag(flagC))(cpu, c, info) }
func opBCS(cpu *CPU, c *Console, info *stepInfo) uint8 { return branchIf(cpu.flag(flagC))(cpu, c, info) }
func opBEQ(cpu *CPU, c *Console, info *stepInfo) uint8 { return branchIf(cpu.flag(flagZ))(cpu, c, info) }
func opBNE(cpu *CPU, c *Console, info *stepInfo) uint8 { return branchIf(!cpu.flag(flagZ))(cpu, c, info) }
func opBMI(cpu *CPU, c *Console, info *stepInfo) uint8 { return branchIf(cpu.flag(flagN))(cpu, c, info) }
func opBPL(cpu *CPU, c *Console, info *stepInfo) uint8 { return branchIf(!cpu.flag(flagN))(cpu, c, info) }
func opBVC(cpu *CPU, c *Console, info *stepInfo) uint8 { return branchIf(!cpu.flag(flagV))(cpu, c, info) }
func opBVS(cpu *CPU, c *Console, info *stepInfo) uint8 { return branchIf(cpu.flag(flagV))(cpu, c, info) }

func opBIT(cpu *CPU, c *Console, info *stepInfo) uint8 {
	v := c.cpuRead(info.address)
	cpu.setFlag(flagZ, v&cpu.A == 0)
	cpu.setFlag(flagV, v&0x40 != 0)
	cpu.setFlag(flagN, v&0x80 != 0)
	return 0
}

func opBRK(cpu *CPU, c *Console, info *stepInfo) uint8 {
	cpu.PC++ // BRK is a 2-byte instruction; the second byte is a padding signature skipped on return
	cpu.push16(c, cpu.PC)
	cpu.push(c, cpu.Status|flagB|flagU)
	cpu.setFlag(flagI, true)
	cpu.PC = c.read16(0xFFFE)
	return 0
}

func opCLC(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.setFlag(flagC, false); return 0 }
func opCLD(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.setFlag(flagD, false); return 0 }
func opCLI(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.setFlag(flagI, false); return 0 }
func opCLV(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.setFlag(flagV, false); return 0 }
func opSEC(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.setFlag(flagC, true); return 0 }
func opSED(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.setFlag(flagD, true); return 0 }
func opSEI(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.setFlag(flagI, true); return 0 }

func compare(cpu *CPU, reg uint8, v uint8) {
	cpu.setFlag(flagC, reg >= v)
	cpu.setZN(reg - v)
}

func opCMP(cpu *CPU, c *Console, info *stepInfo) uint8 { compare(cpu, cpu.A, c.cpuRead(info.address)); return 0 }
func opCPX(cpu *CPU, c *Console, info *stepInfo) uint8 { compare(cpu, cpu.X, c.cpuRead(info.address)); return 0 }
func opCPY(cpu *CPU, c *Console, info *stepInfo) uint8 { compare(cpu, cpu.Y, c.cpuRead(info.address)); return 0 }

func opDEC(cpu *CPU, c *Console, info *stepInfo) uint8 {
	v := c.cpuRead(info.address) - 1
	c.cpuWrite(info.address, v)
	cpu.setZN(v)
	return 0
}

func opINC(cpu *CPU, c *Console, info *stepInfo) uint8 {
	v := c.cpuRead(info.address) + 1
	c.cpuWrite(info.address, v)
	cpu.setZN(v)
	return 0
}

func opDEX(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.X--; cpu.setZN(cpu.X); return 0 }
func opDEY(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.Y--; cpu.setZN(cpu.Y); return 0 }
func opINX(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.X++; cpu.setZN(cpu.X); return 0 }
func opINY(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.Y++; cpu.setZN(cpu.Y); return 0 }

func opEOR(cpu *CPU, c *Console, info *stepInfo) uint8 {
	cpu.A ^= c.cpuRead(info.address)
	cpu.setZN(cpu.A)
	return 0
}

func opORA(cpu *CPU, c *Console, info *stepInfo) uint8 {
	cpu.A |= c.cpuRead(info.address)
	cpu.setZN(cpu.A)
	return 0
}

func opJMP(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.PC = info.address; return 0 }

func opJSR(cpu *CPU, c *Console, info *stepInfo) uint8 {
	cpu.push16(c, cpu.PC-1)
	cpu.PC = info.address
	return 0
}

func opRTS(cpu *CPU, c *Console, info *stepInfo) uint8 {
	cpu.PC = cpu.pop16(c) + 1
	return 0
}

func opRTI(cpu *CPU, c *Console, info *stepInfo) uint8 {
	cpu.Status = (cpu.pop(c) &^ flagB) | flagU
	cpu.PC = cpu.pop16(c)
	return 0
}

func opLDA(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.A = c.cpuRead(info.address); cpu.setZN(cpu.A); return 0 }
func opLDX(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.X = c.cpuRead(info.address); cpu.setZN(cpu.X); return 0 }
func opLDY(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.Y = c.cpuRead(info.address); cpu.setZN(cpu.Y); return 0 }
func opSTA(cpu *CPU, c *Console, info *stepInfo) uint8 { c.cpuWrite(info.address, cpu.A); return 0 }
func opSTX(cpu *CPU, c *Console, info *stepInfo) uint8 { c.cpuWrite(info.address, cpu.X); return 0 }
func opSTY(cpu *CPU, c *Console, info *stepInfo) uint8 { c.cpuWrite(info.address, cpu.Y); return 0 }

func opNOP(cpu *CPU, c *Console, info *stepInfo) uint8 { return 0 }

func opPHA(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.push(c, cpu.A); return 0 }
func opPHP(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.push(c, cpu.Status|flagB|flagU); return 0 }
func opPLA(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.A = cpu.pop(c); cpu.setZN(cpu.A); return 0 }
func opPLP(cpu *CPU, c *Console, info *stepInfo) uint8 {
	cpu.Status = (cpu.pop(c) &^ flagB) | flagU
	return 0
}

func opTAX(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.X = cpu.A; cpu.setZN(cpu.X); return 0 }
func opTAY(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.Y = cpu.A; cpu.setZN(cpu.Y); return 0 }
func opTSX(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.X = cpu.SP; cpu.setZN(cpu.X); return 0 }
func opTXA(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.A = cpu.X; cpu.setZN(cpu.A); return 0 }
func opTXS(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.SP = cpu.X; return 0 }
func opTYA(cpu *CPU, c *Console, info *stepInfo) uint8 { cpu.A = cpu.Y; cpu.setZN(cpu.A); return 0 }

// --- unofficial opcodes that are fully implemented ---

func opLAX(cpu *CPU, c *Console, info *stepInfo) uint8 {
	v := c.cpuRead(info.address)
	cpu.A, cpu.X = v, v
	cpu.setZN(v)
	return 0
}

func opSAX(cpu *CPU, c *Console, info *stepInfo) uint8 {
	c.cpuWrite(info.address, cpu.A&cpu.X)
	return 0
}

func opDCP(cpu *CPU, c *Console, info *stepInfo) uint8 {
	v := c.cpuRead(info.address) - 1
	c.cpuWrite(info.address, v)
	compare(cpu, cpu.A, v)
	return 0
}

func opISC(cpu *CPU, c *Console, info *stepInfo) uint8 {
	v := c.cpuRead(info.address) + 1
	c.cpuWrite(info.address, v)
	return opSBCValue(cpu, v)
}

func opSBCValue(cpu *CPU, b uint8) uint8 {
	a := cpu.A
	carry := uint16(0)
	if cpu.flag(flagC) {
		carry = 1
	}
	sub := uint16(a) - uint16(b) - (1 - carry)
	cpu.A = uint8(sub)
	cpu.setFlag(flagC, sub < 0x100)
	cpu.setZN(cpu.A)
	cpu.setFlag(flagV, (a^b)&0x80 != 0 && (a^cpu.A)&0x80 != 0)
	return 0
}

func opSLO(cpu *CPU, c *Console, info *stepInfo) uint8 {
	v := c.cpuRead(info.address)
	cpu.setFlag(flagC, v&0x80 != 0)
	v <<= 1
	c.cpuWrite(info.address, v)
	cpu.A |= v
	cpu.setZN(cpu.A)
	return 0
}

func opRLA(cpu *CPU, c *Console, info *stepInfo) uint8 {
	v := c.cpuRead(info.address)
	carryIn := uint8(0)
	if cpu.flag(flagC) {
		carryIn = 1
	}
	cpu.setFlag(flagC, v&0x80 != 0)
	v = (v << 1) | carryIn
	c.cpuWrite(info.address, v)
	cpu.A &= v
	cpu.setZN(cpu.A)
	return 0
}

func opSRE(cpu *CPU, c *Console, info *stepInfo) uint8 {
	v := c.cpuRead(info.address)
	cpu.setFlag(flagC, v&0x01 != 0)
	v >>= 1
	c.cpuWrite(info.address, v)
	cpu.A ^= v
	cpu.setZN(cpu.A)
	return 0
}

func opRRA(cpu *CPU, c *Console, info *stepInfo) uint8 {
	v := c.cpuRead(info.address)
	carryIn := uint8(0)
	if cpu.flag(flagC) {
		carryIn = 0x80
	}
	cpu.setFlag(flagC, v&0x01 != 0)
	v = (v >> 1) | carryIn
	c.cpuWrite(info.address, v)
	return opADCValue(cpu, v)
}

func opADCValue(cpu *CPU, b uint8) uint8 {
	a := cpu.A
	carry := uint16(0)
	if cpu.flag(flagC) {
		carry = 1
	}
	sum := uint16(a) + uint16(b) + carry
	cpu.A = uint8(sum)
	cpu.setFlag(flagC, sum > 0xFF)
	cpu.setZN(cpu.A)
	cpu.setFlag(flagV, (a^b)&0x80 == 0 && (a^cpu.A)&0x80 != 0)
	return 0
}

// --- unofficial opcode stubs: §7 UnimplementedOpcode, logged on every execution and otherwise a no-op ---

func opStub(cpu *CPU, c *Console, info *stepInfo) uint8 {
	c.logger.Warn().Str("mnemonic", info.mnemonic).
		Uint16("pc", info.pc).Msg("unimplemented opcode")
	return 0
}

func opKIL(cpu *CPU, c *Console, info *stepInfo) uint8 { return opStub(cpu, c, info) }

// String renders the CPU registers in the trace-log column order: A, X, Y,
// the status byte P, and SP, each as two hex digits.
func (cpu *CPU) String() string {
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X", cpu.A, cpu.X, cpu.Y, cpu.Status, cpu.SP)
}
