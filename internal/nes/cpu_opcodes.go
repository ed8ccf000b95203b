package nes

// opcodeDef is one row of the 256-entry instruction table: the function
// that implements the opcode, its addressing mode, byte size, and base/
// page-cross cycle counts.
type opcodeDef struct {
	name       string
	mode       addressingMode
	size       uint8
	cycles     uint8
	pageCycles uint8
	unofficial bool
	fn         func(*CPU, *Console, *stepInfo) uint8
}

// opcodeTable is the full 6502 instruction set, official and documented
// unofficial. The documented-unofficial opcodes (LAX, SAX, DCP, ISC, SLO,
// RLA, SRE, RRA) are fully implemented; the remainder (AHX, ALR, ANC, ARR,
// AXS, KIL, LAS, SHX, SHY, TAS, XAA) are vanishingly rare outside deliberate
// test ROMs and fall through to opStub, which logs and continues.
var opcodeTable = [256]opcodeDef{
	0x00: {"BRK", modeImplied, 1, 7, 0, false, opBRK},
	0x01: {"ORA", modeIndexedIndirect, 2, 6, 0, false, opORA},
	0x02: {"KIL", modeImplied, 1, 2, 0, true, opKIL},
	0x03: {"SLO", modeIndexedIndirect, 2, 8, 0, true, opSLO},
	0x04: {"NOP", modeZeroPage, 2, 3, 0, true, opNOP},
	0x05: {"ORA", modeZeroPage, 2, 3, 0, false, opORA},
	0x06: {"ASL", modeZeroPage, 2, 5, 0, false, opASL},
	0x07: {"SLO", modeZeroPage, 2, 5, 0, true, opSLO},
	0x08: {"PHP", modeImplied, 1, 3, 0, false, opPHP},
	0x09: {"ORA", modeImmediate, 2, 2, 0, false, opORA},
	0x0A: {"ASL", modeAccumulator, 1, 2, 0, false, opASL},
	0x0B: {"ANC", modeImmediate, 2, 2, 0, true, opStub},
	0x0C: {"NOP", modeAbsolute, 3, 4, 0, true, opNOP},
	0x0D: {"ORA", modeAbsolute, 3, 4, 0, false, opORA},
	0x0E: {"ASL", modeAbsolute, 3, 6, 0, false, opASL},
	0x0F: {"SLO", modeAbsolute, 3, 6, 0, true, opSLO},

	0x10: {"BPL", modeRelative, 2, 2, 0, false, opBPL},
	0x11: {"ORA", modeIndirectIndexed, 2, 5, 1, false, opORA},
	0x12: {"KIL", modeImplied, 1, 2, 0, true, opKIL},
	0x13: {"SLO", modeIndirectIndexed, 2, 8, 0, true, opSLO},
	0x14: {"NOP", modeZeroPageX, 2, 4, 0, true, opNOP},
	0x15: {"ORA", modeZeroPageX, 2, 4, 0, false, opORA},
	0x16: {"ASL", modeZeroPageX, 2, 6, 0, false, opASL},
	0x17: {"SLO", modeZeroPageX, 2, 6, 0, true, opSLO},
	0x18: {"CLC", modeImplied, 1, 2, 0, false, opCLC},
	0x19: {"ORA", modeAbsoluteY, 3, 4, 1, false, opORA},
	0x1A: {"NOP", modeImplied, 1, 2, 0, true, opNOP},
	0x1B: {"SLO", modeAbsoluteY, 3, 7, 0, true, opSLO},
	0x1C: {"NOP", modeAbsoluteX, 3, 4, 1, true, opNOP},
	0x1D: {"ORA", modeAbsoluteX, 3, 4, 1, false, opORA},
	0x1E: {"ASL", modeAbsoluteX, 3, 7, 0, false, opASL},
	0x1F: {"SLO", modeAbsoluteX, 3, 7, 0, true, opSLO},

	0x20: {"JSR", modeAbsolute, 3, 6, 0, false, opJSR},
	0x21: {"AND", modeIndexedIndirect, 2, 6, 0, false, opAND},
	0x22: {"KIL", modeImplied, 1, 2, 0, true, opKIL},
	0x23: {"RLA", modeIndexedIndirect, 2, 8, 0, true, opRLA},
	0x24: {"BIT", modeZeroPage, 2, 3, 0, false, opBIT},
	0x25: {"AND", modeZeroPage, 2, 3, 0, false, opAND},
	0x26: {"ROL", modeZeroPage, 2, 5, 0, false, opROL},
	0x27: {"RLA", modeZeroPage, 2, 5, 0, true, opRLA},
	0x28: {"PLP", modeImplied, 1, 4, 0, false, opPLP},
	0x29: {"AND", modeImmediate, 2, 2, 0, false, opAND},
	0x2A: {"ROL", modeAccumulator, 1, 2, 0, false, opROL},
	0x2B: {"ANC", modeImmediate, 2, 2, 0, true, opStub},
	0x2C: {"BIT", modeAbsolute, 3, 4, 0, false, opBIT},
	0x2D: {"AND", modeAbsolute, 3, 4, 0, false, opAND},
	0x2E: {"ROL", modeAbsolute, 3, 6, 0, false, opROL},
	0x2F: {"RLA", modeAbsolute, 3, 6, 0, true, opRLA},

	0x30: {"BMI", modeRelative, 2, 2, 0, false, opBMI},
	0x31: {"AND", modeIndirectIndexed, 2, 5, 1, false, opAND},
	0x32: {"KIL", modeImplied, 1, 2, 0, true, opKIL},
	0x33: {"RLA", modeIndirectIndexed, 2, 8, 0, true, opRLA},
	0x34: {"NOP", modeZeroPageX, 2, 4, 0, true, opNOP},
	0x35: {"AND", modeZeroPageX, 2, 4, 0, false, opAND},
	0x36: {"ROL", modeZeroPageX, 2, 6, 0, false, opROL},
	0x37: {"RLA", modeZeroPageX, 2, 6, 0, true, opRLA},
	0x38: {"SEC", modeImplied, 1, 2, 0, false, opSEC},
	0x39: {"AND", modeAbsoluteY, 3, 4, 1, false, opAND},
	0x3A: {"NOP", modeImplied, 1, 2, 0, true, opNOP},
	0x3B: {"RLA", modeAbsoluteY, 3, 7, 0, true, opRLA},
	0x3C: {"NOP", modeAbsoluteX, 3, 4, 1, true, opNOP},
	0x3D: {"AND", modeAbsoluteX, 3, 4, 1, false, opAND},
	0x3E: {"ROL", modeAbsoluteX, 3, 7, 0, false, opROL},
	0x3F: {"RLA", modeAbsoluteX, 3, 7, 0, true, opRLA},

	0x40: {"RTI", modeImplied, 1, 6, 0, false, opRTI},
	0x41: {"EOR", modeIndexedIndirect, 2, 6, 0, false, opEOR},
	0x42: {"KIL", modeImplied, 1, 2, 0, true, opKIL},
	0x43: {"SRE", modeIndexedIndirect, 2, 8, 0, true, opSRE},
	0x44: {"NOP", modeZeroPage, 2, 3, 0, true, opNOP},
	0x45: {"EOR", modeZeroPage, 2, 3, 0, false, opEOR},
	0x46: {"LSR", modeZeroPage, 2, 5, 0, false, opLSR},
	0x47: {"SRE", modeZeroPage, 2, 5, 0, true, opSRE},
	0x48: {"PHA", modeImplied, 1, 3, 0, false, opPHA},
	0x49: {"EOR", modeImmediate, 2, 2, 0, false, opEOR},
	0x4A: {"LSR", modeAccumulator, 1, 2, 0, false, opLSR},
	0x4B: {"ALR", modeImmediate, 2, 2, 0, true, opStub},
	0x4C: {"JMP", modeAbsolute, 3, 3, 0, false, opJMP},
	0x4D: {"EOR", modeAbsolute, 3, 4, 0, false, opEOR},
	0x4E: {"LSR", modeAbsolute, 3, 6, 0, false, opLSR},
	0x4F: {"SRE", modeAbsolute, 3, 6, 0, true, opSRE},

	0x50: {"BVC", modeRelative, 2, 2, 0, false, opBVC},
	0x51: {"EOR", modeIndirectIndexed, 2, 5, 1, false, opEOR},
	0x52: {"KIL", modeImplied, 1, 2, 0, true, opKIL},
	0x53: {"SRE", modeIndirectIndexed, 2, 8, 0, true, opSRE},
	0x54: {"NOP", modeZeroPageX, 2, 4, 0, true, opNOP},
	0x55: {"EOR", modeZeroPageX, 2, 4, 0, false, opEOR},
	0x56: {"LSR", modeZeroPageX, 2, 6, 0, false, opLSR},
	0x57: {"SRE", modeZeroPageX, 2, 6, 0, true, opSRE},
	0x58: {"CLI", modeImplied, 1, 2, 0, false, opCLI},
	0x59: {"EOR", modeAbsoluteY, 3, 4, 1, false, opEOR},
	0x5A: {"NOP", modeImplied, 1, 2, 0, true, opNOP},
	0x5B: {"SRE", modeAbsoluteY, 3, 7, 0, true, opSRE},
	0x5C: {"NOP", modeAbsoluteX, 3, 4, 1, true, opNOP},
	0x5D: {"EOR", modeAbsoluteX, 3, 4, 1, false, opEOR},
	0x5E: {"LSR", modeAbsoluteX, 3, 7, 0, false, opLSR},
	0x5F: {"SRE", modeAbsoluteX, 3, 7, 0, true, opSRE},

	0x60: {"RTS", modeImplied, 1, 6, 0, false, opRTS},
	0x61: {"ADC", modeIndexedIndirect, 2, 6, 0, false, opADC},
	0x62: {"KIL", modeImplied, 1, 2, 0, true, opKIL},
	0x63: {"RRA", modeIndexedIndirect, 2, 8, 0, true, opRRA},
	0x64: {"NOP", modeZeroPage, 2, 3, 0, true, opNOP},
	0x65: {"ADC", modeZeroPage, 2, 3, 0, false, opADC},
	0x66: {"ROR", modeZeroPage, 2, 5, 0, false, opROR},
	0x67: {"RRA", modeZeroPage, 2, 5, 0, true, opRRA},
	0x68: {"PLA", modeImplied, 1, 4, 0, false, opPLA},
	0x69: {"ADC", modeImmediate, 2, 2, 0, false, opADC},
	0x6A: {"ROR", modeAccumulator, 1, 2, 0, false, opROR},
	0x6B: {"ARR", modeImmediate, 2, 2, 0, true, opStub},
	0x6C: {"JMP", modeIndirect, 3, 5, 0, false, opJMP},
	0x6D: {"ADC", modeAbsolute, 3, 4, 0, false, opADC},
	0x6E: {"ROR", modeAbsolute, 3, 6, 0, false, opROR},
	0x6F: {"RRA", modeAbsolute, 3, 6, 0, true, opRRA},

	0x70: {"BVS", modeRelative, 2, 2, 0, false, opBVS},
	0x71: {"ADC", modeIndirectIndexed, 2, 5, 1, false, opADC},
	0x72: {"KIL", modeImplied, 1, 2, 0, true, opKIL},
	0x73: {"RRA", modeIndirectIndexed, 2, 8, 0, true, opRRA},
	0x74: {"NOP", modeZeroPageX, 2, 4, 0, true, opNOP},
	0x75: {"ADC", modeZeroPageX, 2, 4, 0, false, opADC},
	0x76: {"ROR", modeZeroPageX, 2, 6, 0, false, opROR},
	0x77: {"RRA", modeZeroPageX, 2, 6, 0, true, opRRA},
	0x78: {"SEI", modeImplied, 1, 2, 0, false, opSEI},
	0x79: {"ADC", modeAbsoluteY, 3, 4, 1, false, opADC},
	0x7A: {"NOP", modeImplied, 1, 2, 0, true, opNOP},
	0x7B: {"RRA", modeAbsoluteY, 3, 7, 0, true, opRRA},
	0x7C: {"NOP", modeAbsoluteX, 3, 4, 1, true, opNOP},
	0x7D: {"ADC", modeAbsoluteX, 3, 4, 1, false, opADC},
	0x7E: {"ROR", modeAbsoluteX, 3, 7, 0, false, opROR},
	0x7F: {"RRA", modeAbsoluteX, 3, 7, 0, true, opRRA},

	0x80: {"NOP", modeImmediate, 2, 2, 0, true, opNOP},
	0x81: {"STA", modeIndexedIndirect, 2, 6, 0, false, opSTA},
	0x82: {"NOP", modeImmediate, 2, 2, 0, true, opNOP},
	0x83: {"SAX", modeIndexedIndirect, 2, 6, 0, true, opSAX},
	0x84: {"STY", modeZeroPage, 2, 3, 0, false, opSTY},
	0x85: {"STA", modeZeroPage, 2, 3, 0, false, opSTA},
	0x86: {"STX", modeZeroPage, 2, 3, 0, false, opSTX},
	0x87: {"SAX", modeZeroPage, 2, 3, 0, true, opSAX},
	0x88: {"DEY", modeImplied, 1, 2, 0, false, opDEY},
	0x89: {"NOP", modeImmediate, 2, 2, 0, true, opNOP},
	0x8A: {"TXA", modeImplied, 1, 2, 0, false, opTXA},
	0x8B: {"XAA", modeImmediate, 2, 2, 0, true, opStub},
	0x8C: {"STY", modeAbsolute, 3, 4, 0, false, opSTY},
	0x8D: {"STA", modeAbsolute, 3, 4, 0, false, opSTA},
	0x8E: {"STX", modeAbsolute, 3, 4, 0, false, opSTX},
	0x8F: {"SAX", modeAbsolute, 3, 4, 0, true, opSAX},

	0x90: {"BCC", modeRelative, 2, 2, 0, false, opBCC},
	0x91: {"STA", modeIndirectIndexed, 2, 6, 0, false, opSTA},
	0x92: {"KIL", modeImplied, 1, 2, 0, true, opKIL},
	0x93: {"AHX", modeIndirectIndexed, 2, 6, 0, true, opStub},
	0x94: {"STY", modeZeroPageX, 2, 4, 0, false, opSTY},
	0x95: {"STA", modeZeroPageX, 2, 4, 0, false, opSTA},
	0x96: {"STX", modeZeroPageY, 2, 4, 0, false, opSTX},
	0x97: {"SAX", modeZeroPageY, 2, 4, 0, true, opSAX},
	0x98: {"TYA", modeImplied, 1, 2, 0, false, opTYA},
	0x99: {"STA", modeAbsoluteY, 3, 5, 0, false, opSTA},
	0x9A: {"TXS", modeImplied, 1, 2, 0, false, opTXS},
	0x9B: {"TAS", modeAbsoluteY, 3, 5, 0, true, opStub},
	0x9C: {"SHY", modeAbsoluteX, 3, 5, 0, true, opStub},
	0x9D: {"STA", modeAbsoluteX, 3, 5, 0, false, opSTA},
	0x9E: {"SHX", modeAbsoluteY, 3, 5, 0, true, opStub},
	0x9F: {"AHX", modeAbsoluteY, 3, 5, 0, true, opStub},

	0xA0: {"LDY", modeImmediate, 2, 2, 0, false, opLDY},
	0xA1: {"LDA", modeIndexedIndirect, 2, 6, 0, false, opLDA},
	0xA2: {"LDX", modeImmediate, 2, 2, 0, false, opLDX},
	0xA3: {"LAX", modeIndexedIndirect, 2, 6, 0, true, opLAX},
	0xA4: {"LDY", modeZeroPage, 2, 3, 0, false, opLDY},
	0xA5: {"LDA", modeZeroPage, 2, 3, 0, false, opLDA},
	0xA6: {"LDX", modeZeroPage, 2, 3, 0, false, opLDX},
	0xA7: {"LAX", modeZeroPage, 2, 3, 0, true, opLAX},
	0xA8: {"TAY", modeImplied, 1, 2, 0, false, opTAY},
	0xA9: {"LDA", modeImmediate, 2, 2, 0, false, opLDA},
	0xAA: {"TAX", modeImplied, 1, 2, 0, false, opTAX},
	0xAB: {"LAX", modeImmediate, 2, 2, 0, true, opLAX},
	0xAC: {"LDY", modeAbsolute, 3, 4, 0, false, opLDY},
	0xAD: {"LDA", modeAbsolute, 3, 4, 0, false, opLDA},
	0xAE: {"LDX", modeAbsolute, 3, 4, 0, false, opLDX},
	0xAF: {"LAX", modeAbsolute, 3, 4, 0, true, opLAX},

	0xB0: {"BCS", modeRelative, 2, 2, 0, false, opBCS},
	0xB1: {"LDA", modeIndirectIndexed, 2, 5, 1, false, opLDA},
	0xB2: {"KIL", modeImplied, 1, 2, 0, true, opKIL},
	0xB3: {"LAX", modeIndirectIndexed, 2, 5, 1, true, opLAX},
	0xB4: {"LDY", modeZeroPageX, 2, 4, 0, false, opLDY},
	0xB5: {"LDA", modeZeroPageX, 2, 4, 0, false, opLDA},
	0xB6: {"LDX", modeZeroPageY, 2, 4, 0, false, opLDX},
	0xB7: {"LAX", modeZeroPageY, 2, 4, 0, true, opLAX},
	0xB8: {"CLV", modeImplied, 1, 2, 0, false, opCLV},
	0xB9: {"LDA", modeAbsoluteY, 3, 4, 1, false, opLDA},
	0xBA: {"TSX", modeImplied, 1, 2, 0, false, opTSX},
	0xBB: {"LAS", modeAbsoluteY, 3, 4, 1, true, opStub},
	0xBC: {"LDY", modeAbsoluteX, 3, 4, 1, false, opLDY},
	0xBD: {"LDA", modeAbsoluteX, 3, 4, 1, false, opLDA},
	0xBE: {"LDX", modeAbsoluteY, 3, 4, 1, false, opLDX},
	0xBF: {"LAX", modeAbsoluteY, 3, 4, 1, true, opLAX},

	0xC0: {"CPY", modeImmediate, 2, 2, 0, false, opCPY},
	0xC1: {"CMP", modeIndexedIndirect, 2, 6, 0, false, opCMP},
	0xC2: {"NOP", modeImmediate, 2, 2, 0, true, opNOP},
	0xC3: {"DCP", modeIndexedIndirect, 2, 8, 0, true, opDCP},
	0xC4: {"CPY", modeZeroPage, 2, 3, 0, false, opCPY},
	0xC5: {"CMP", modeZeroPage, 2, 3, 0, false, opCMP},
	0xC6: {"DEC", modeZeroPage, 2, 5, 0, false, opDEC},
	0xC7: {"DCP", modeZeroPage, 2, 5, 0, true, opDCP},
	0xC8: {"INY", modeImplied, 1, 2, 0, false, opINY},
	0xC9: {"CMP", modeImmediate, 2, 2, 0, false, opCMP},
	0xCA: {"DEX", modeImplied, 1, 2, 0, false, opDEX},
	0xCB: {"AXS", modeImmediate, 2, 2, 0, true, opStub},
	0xCC: {"CPY", modeAbsolute, 3, 4, 0, false, opCPY},
	0xCD: {"CMP", modeAbsolute, 3, 4, 0, false, opCMP},
	0xCE: {"DEC", modeAbsolute, 3, 6, 0, false, opDEC},
	0xCF: {"DCP", modeAbsolute, 3, 6, 0, true, opDCP},

	0xD0: {"BNE", modeRelative, 2, 2, 0, false, opBNE},
	0xD1: {"CMP", modeIndirectIndexed, 2, 5, 1, false, opCMP},
	0xD2: {"KIL", modeImplied, 1, 2, 0, true, opKIL},
	0xD3: {"DCP", modeIndirectIndexed, 2, 8, 0, true, opDCP},
	0xD4: {"NOP", modeZeroPageX, 2, 4, 0, true, opNOP},
	0xD5: {"CMP", modeZeroPageX, 2, 4, 0, false, opCMP},
	0xD6: {"DEC", modeZeroPageX, 2, 6, 0, false, opDEC},
	0xD7: {"DCP", modeZeroPageX, 2, 6, 0, true, opDCP},
	0xD8: {"CLD", modeImplied, 1, 2, 0, false, opCLD},
	0xD9: {"CMP", modeAbsoluteY, 3, 4, 1, false, opCMP},
	0xDA: {"NOP", modeImplied, 1, 2, 0, true, opNOP},
	0xDB: {"DCP", modeAbsoluteY, 3, 7, 0, true, opDCP},
	0xDC: {"NOP", modeAbsoluteX, 3, 4, 1, true, opNOP},
	0xDD: {"CMP", modeAbsoluteX, 3, 4, 1, false, opCMP},
	0xDE: {"DEC", modeAbsoluteX, 3, 7, 0, false, opDEC},
	0xDF: {"DCP", modeAbsoluteX, 3, 7, 0, true, opDCP},

	0xE0: {"CPX", modeImmediate, 2, 2, 0, false, opCPX},
	0xE1: {"SBC", modeIndexedIndirect, 2, 6, 0, false, opSBC},
	0xE2: {"NOP", modeImmediate, 2, 2, 0, true, opNOP},
	0xE3: {"ISC", modeIndexedIndirect, 2, 8, 0, true, opISC},
	0xE4: {"CPX", modeZeroPage, 2, 3, 0, false, opCPX},
	0xE5: {"SBC", modeZeroPage, 2, 3, 0, false, opSBC},
	0xE6: {"INC", modeZeroPage, 2, 5, 0, false, opINC},
	0xE7: {"ISC", modeZeroPage, 2, 5, 0, true, opISC},
	0xE8: {"INX", modeImplied, 1, 2, 0, false, opINX},
	0xE9: {"SBC", modeImmediate, 2, 2, 0, false, opSBC},
	0xEA: {"NOP", modeImplied, 1, 2, 0, false, opNOP},
	0xEB: {"SBC", modeImmediate, 2, 2, 0, true, opSBC},
	0xEC: {"CPX", modeAbsolute, 3, 4, 0, false, opCPX},
	0xED: {"SBC", modeAbsolute, 3, 4, 0, false, opSBC},
	0xEE: {"INC", modeAbsolute, 3, 6, 0, false, opINC},
	0xEF: {"ISC", modeAbsolute, 3, 6, 0, true, opISC},

	0xF0: {"BEQ", modeRelative, 2, 2, 0, false, opBEQ},
	0xF1: {"SBC", modeIndirectIndexed, 2, 5, 1, false, opSBC},
	0xF2: {"KIL", modeImplied, 1, 2, 0, true, opKIL},
	0xF3: {"ISC", modeIndirectIndexed, 2, 8, 0, true, opISC},
	0xF4: {"NOP", modeZeroPageX, 2, 4, 0, true, opNOP},
	0xF5: {"SBC", modeZeroPageX, 2, 4, 0, false, opSBC},
	0xF6: {"INC", modeZeroPageX, 2, 6, 0, false, opINC},
	0xF7: {"ISC", modeZeroPageX, 2, 6, 0, true, opISC},
	0xF8: {"SED", modeImplied, 1, 2, 0, false, opSED},
	0xF9: {"SBC", modeAbsoluteY, 3, 4, 1, false, opSBC},
	0xFA: {"NOP", modeImplied, 1, 2, 0, true, opNOP},
	0xFB: {"ISC", modeAbsoluteY, 3, 7, 0, true, opISC},
	0xFC: {"NOP", modeAbsoluteX, 3, 4, 1, true, opNOP},
	0xFD: {"SBC", modeAbsoluteX, 3, 4, 1, false, opSBC},
	0xFE: {"INC", modeAbsoluteX, 3, 7, 0, false, opINC},
	0xFF: {"ISC", modeAbsoluteX, 3, 7, 0, true, opISC},
}
