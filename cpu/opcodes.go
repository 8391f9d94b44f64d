package cpu

// Addressing modes.
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
const (
	IMPLICIT = iota
	ACCUMULATOR
	IMMEDIATE
	ZERO_PAGE
	ZERO_PAGE_X
	ZERO_PAGE_Y
	RELATIVE
	ABSOLUTE
	ABSOLUTE_X
	ABSOLUTE_Y
	INDIRECT
	INDIRECT_X // Indexed Indirect: (d,X)
	INDIRECT_Y // Indirect Indexed: (d),Y
)

// Instruction ids. One id can be reached by several opcode bytes,
// each pairing it with a different addressing mode.
const (
	ADC = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
	// Unofficial/illegal opcodes. Names follow the common community
	// naming (nesdev "Undocumented Opcodes").
	LAX
	SAX
	DCP
	ISC
	SLO
	RLA
	SRE
	RRA
	ANC
	ALR
	ARR
	AXS
)

type opcode struct {
	inst   uint8
	name   string
	mode   uint8
	bytes  uint8
	cycles uint8
}

var opcodes = map[uint8]opcode{
	0x69: {ADC, "ADC", IMMEDIATE, 2, 2},
	0x65: {ADC, "ADC", ZERO_PAGE, 2, 3},
	0x75: {ADC, "ADC", ZERO_PAGE_X, 2, 4},
	0x6D: {ADC, "ADC", ABSOLUTE, 3, 4},
	0x7D: {ADC, "ADC", ABSOLUTE_X, 3, 4},
	0x79: {ADC, "ADC", ABSOLUTE_Y, 3, 4},
	0x61: {ADC, "ADC", INDIRECT_X, 2, 6},
	0x71: {ADC, "ADC", INDIRECT_Y, 2, 5},

	0x29: {AND, "AND", IMMEDIATE, 2, 2},
	0x25: {AND, "AND", ZERO_PAGE, 2, 3},
	0x35: {AND, "AND", ZERO_PAGE_X, 2, 4},
	0x2D: {AND, "AND", ABSOLUTE, 3, 4},
	0x3D: {AND, "AND", ABSOLUTE_X, 3, 4},
	0x39: {AND, "AND", ABSOLUTE_Y, 3, 4},
	0x21: {AND, "AND", INDIRECT_X, 2, 6},
	0x31: {AND, "AND", INDIRECT_Y, 2, 5},

	0x0A: {ASL, "ASL", ACCUMULATOR, 1, 2},
	0x06: {ASL, "ASL", ZERO_PAGE, 2, 5},
	0x16: {ASL, "ASL", ZERO_PAGE_X, 2, 6},
	0x0E: {ASL, "ASL", ABSOLUTE, 3, 6},
	0x1E: {ASL, "ASL", ABSOLUTE_X, 3, 7},

	0x90: {BCC, "BCC", RELATIVE, 2, 2},
	0xB0: {BCS, "BCS", RELATIVE, 2, 2},
	0xF0: {BEQ, "BEQ", RELATIVE, 2, 2},
	0x24: {BIT, "BIT", ZERO_PAGE, 2, 3},
	0x2C: {BIT, "BIT", ABSOLUTE, 3, 4},
	0x30: {BMI, "BMI", RELATIVE, 2, 2},
	0xD0: {BNE, "BNE", RELATIVE, 2, 2},
	0x10: {BPL, "BPL", RELATIVE, 2, 2},
	0x00: {BRK, "BRK", IMPLICIT, 1, 7},
	0x50: {BVC, "BVC", RELATIVE, 2, 2},
	0x70: {BVS, "BVS", RELATIVE, 2, 2},

	0x18: {CLC, "CLC", IMPLICIT, 1, 2},
	0xD8: {CLD, "CLD", IMPLICIT, 1, 2},
	0x58: {CLI, "CLI", IMPLICIT, 1, 2},
	0xB8: {CLV, "CLV", IMPLICIT, 1, 2},

	0xC9: {CMP, "CMP", IMMEDIATE, 2, 2},
	0xC5: {CMP, "CMP", ZERO_PAGE, 2, 3},
	0xD5: {CMP, "CMP", ZERO_PAGE_X, 2, 4},
	0xCD: {CMP, "CMP", ABSOLUTE, 3, 4},
	0xDD: {CMP, "CMP", ABSOLUTE_X, 3, 4},
	0xD9: {CMP, "CMP", ABSOLUTE_Y, 3, 4},
	0xC1: {CMP, "CMP", INDIRECT_X, 2, 6},
	0xD1: {CMP, "CMP", INDIRECT_Y, 2, 5},

	0xE0: {CPX, "CPX", IMMEDIATE, 2, 2},
	0xE4: {CPX, "CPX", ZERO_PAGE, 2, 3},
	0xEC: {CPX, "CPX", ABSOLUTE, 3, 4},
	0xC0: {CPY, "CPY", IMMEDIATE, 2, 2},
	0xC4: {CPY, "CPY", ZERO_PAGE, 2, 3},
	0xCC: {CPY, "CPY", ABSOLUTE, 3, 4},

	0xC6: {DEC, "DEC", ZERO_PAGE, 2, 5},
	0xD6: {DEC, "DEC", ZERO_PAGE_X, 2, 6},
	0xCE: {DEC, "DEC", ABSOLUTE, 3, 6},
	0xDE: {DEC, "DEC", ABSOLUTE_X, 3, 7},
	0xCA: {DEX, "DEX", IMPLICIT, 1, 2},
	0x88: {DEY, "DEY", IMPLICIT, 1, 2},

	0x49: {EOR, "EOR", IMMEDIATE, 2, 2},
	0x45: {EOR, "EOR", ZERO_PAGE, 2, 3},
	0x55: {EOR, "EOR", ZERO_PAGE_X, 2, 4},
	0x4D: {EOR, "EOR", ABSOLUTE, 3, 4},
	0x5D: {EOR, "EOR", ABSOLUTE_X, 3, 4},
	0x59: {EOR, "EOR", ABSOLUTE_Y, 3, 4},
	0x41: {EOR, "EOR", INDIRECT_X, 2, 6},
	0x51: {EOR, "EOR", INDIRECT_Y, 2, 5},

	0xE6: {INC, "INC", ZERO_PAGE, 2, 5},
	0xF6: {INC, "INC", ZERO_PAGE_X, 2, 6},
	0xEE: {INC, "INC", ABSOLUTE, 3, 6},
	0xFE: {INC, "INC", ABSOLUTE_X, 3, 7},
	0xE8: {INX, "INX", IMPLICIT, 1, 2},
	0xC8: {INY, "INY", IMPLICIT, 1, 2},

	0x4C: {JMP, "JMP", ABSOLUTE, 3, 3},
	0x6C: {JMP, "JMP", INDIRECT, 3, 5},
	0x20: {JSR, "JSR", ABSOLUTE, 3, 6},

	0xA9: {LDA, "LDA", IMMEDIATE, 2, 2},
	0xA5: {LDA, "LDA", ZERO_PAGE, 2, 3},
	0xB5: {LDA, "LDA", ZERO_PAGE_X, 2, 4},
	0xAD: {LDA, "LDA", ABSOLUTE, 3, 4},
	0xBD: {LDA, "LDA", ABSOLUTE_X, 3, 4},
	0xB9: {LDA, "LDA", ABSOLUTE_Y, 3, 4},
	0xA1: {LDA, "LDA", INDIRECT_X, 2, 6},
	0xB1: {LDA, "LDA", INDIRECT_Y, 2, 5},

	0xA2: {LDX, "LDX", IMMEDIATE, 2, 2},
	0xA6: {LDX, "LDX", ZERO_PAGE, 2, 3},
	0xB6: {LDX, "LDX", ZERO_PAGE_Y, 2, 4},
	0xAE: {LDX, "LDX", ABSOLUTE, 3, 4},
	0xBE: {LDX, "LDX", ABSOLUTE_Y, 3, 4},

	0xA0: {LDY, "LDY", IMMEDIATE, 2, 2},
	0xA4: {LDY, "LDY", ZERO_PAGE, 2, 3},
	0xB4: {LDY, "LDY", ZERO_PAGE_X, 2, 4},
	0xAC: {LDY, "LDY", ABSOLUTE, 3, 4},
	0xBC: {LDY, "LDY", ABSOLUTE_X, 3, 4},

	0x4A: {LSR, "LSR", ACCUMULATOR, 1, 2},
	0x46: {LSR, "LSR", ZERO_PAGE, 2, 5},
	0x56: {LSR, "LSR", ZERO_PAGE_X, 2, 6},
	0x4E: {LSR, "LSR", ABSOLUTE, 3, 6},
	0x5E: {LSR, "LSR", ABSOLUTE_X, 3, 7},

	0xEA: {NOP, "NOP", IMPLICIT, 1, 2},
	0x1A: {NOP, "NOP", IMPLICIT, 1, 2},
	0x3A: {NOP, "NOP", IMPLICIT, 1, 2},
	0x5A: {NOP, "NOP", IMPLICIT, 1, 2},
	0x7A: {NOP, "NOP", IMPLICIT, 1, 2},
	0xDA: {NOP, "NOP", IMPLICIT, 1, 2},
	0xFA: {NOP, "NOP", IMPLICIT, 1, 2},
	0x80: {NOP, "NOP", IMMEDIATE, 2, 2},
	0x04: {NOP, "NOP", ZERO_PAGE, 2, 3},
	0x44: {NOP, "NOP", ZERO_PAGE, 2, 3},
	0x64: {NOP, "NOP", ZERO_PAGE, 2, 3},
	0x14: {NOP, "NOP", ZERO_PAGE_X, 2, 4},
	0x34: {NOP, "NOP", ZERO_PAGE_X, 2, 4},
	0x54: {NOP, "NOP", ZERO_PAGE_X, 2, 4},
	0x74: {NOP, "NOP", ZERO_PAGE_X, 2, 4},
	0xD4: {NOP, "NOP", ZERO_PAGE_X, 2, 4},
	0xF4: {NOP, "NOP", ZERO_PAGE_X, 2, 4},
	0x0C: {NOP, "NOP", ABSOLUTE, 3, 4},
	0x1C: {NOP, "NOP", ABSOLUTE_X, 3, 4},
	0x3C: {NOP, "NOP", ABSOLUTE_X, 3, 4},
	0x5C: {NOP, "NOP", ABSOLUTE_X, 3, 4},
	0x7C: {NOP, "NOP", ABSOLUTE_X, 3, 4},
	0xDC: {NOP, "NOP", ABSOLUTE_X, 3, 4},
	0xFC: {NOP, "NOP", ABSOLUTE_X, 3, 4},

	0x09: {ORA, "ORA", IMMEDIATE, 2, 2},
	0x05: {ORA, "ORA", ZERO_PAGE, 2, 3},
	0x15: {ORA, "ORA", ZERO_PAGE_X, 2, 4},
	0x0D: {ORA, "ORA", ABSOLUTE, 3, 4},
	0x1D: {ORA, "ORA", ABSOLUTE_X, 3, 4},
	0x19: {ORA, "ORA", ABSOLUTE_Y, 3, 4},
	0x01: {ORA, "ORA", INDIRECT_X, 2, 6},
	0x11: {ORA, "ORA", INDIRECT_Y, 2, 5},

	0x48: {PHA, "PHA", IMPLICIT, 1, 3},
	0x08: {PHP, "PHP", IMPLICIT, 1, 3},
	0x68: {PLA, "PLA", IMPLICIT, 1, 4},
	0x28: {PLP, "PLP", IMPLICIT, 1, 4},

	0x2A: {ROL, "ROL", ACCUMULATOR, 1, 2},
	0x26: {ROL, "ROL", ZERO_PAGE, 2, 5},
	0x36: {ROL, "ROL", ZERO_PAGE_X, 2, 6},
	0x2E: {ROL, "ROL", ABSOLUTE, 3, 6},
	0x3E: {ROL, "ROL", ABSOLUTE_X, 3, 7},

	0x6A: {ROR, "ROR", ACCUMULATOR, 1, 2},
	0x66: {ROR, "ROR", ZERO_PAGE, 2, 5},
	0x76: {ROR, "ROR", ZERO_PAGE_X, 2, 6},
	0x6E: {ROR, "ROR", ABSOLUTE, 3, 6},
	0x7E: {ROR, "ROR", ABSOLUTE_X, 3, 7},

	0x40: {RTI, "RTI", IMPLICIT, 1, 6},
	0x60: {RTS, "RTS", IMPLICIT, 1, 6},

	0xE9: {SBC, "SBC", IMMEDIATE, 2, 2},
	0xEB: {SBC, "SBC", IMMEDIATE, 2, 2}, // unofficial alias
	0xE5: {SBC, "SBC", ZERO_PAGE, 2, 3},
	0xF5: {SBC, "SBC", ZERO_PAGE_X, 2, 4},
	0xED: {SBC, "SBC", ABSOLUTE, 3, 4},
	0xFD: {SBC, "SBC", ABSOLUTE_X, 3, 4},
	0xF9: {SBC, "SBC", ABSOLUTE_Y, 3, 4},
	0xE1: {SBC, "SBC", INDIRECT_X, 2, 6},
	0xF1: {SBC, "SBC", INDIRECT_Y, 2, 5},

	0x38: {SEC, "SEC", IMPLICIT, 1, 2},
	0xF8: {SED, "SED", IMPLICIT, 1, 2},
	0x78: {SEI, "SEI", IMPLICIT, 1, 2},

	0x85: {STA, "STA", ZERO_PAGE, 2, 3},
	0x95: {STA, "STA", ZERO_PAGE_X, 2, 4},
	0x8D: {STA, "STA", ABSOLUTE, 3, 4},
	0x9D: {STA, "STA", ABSOLUTE_X, 3, 5},
	0x99: {STA, "STA", ABSOLUTE_Y, 3, 5},
	0x81: {STA, "STA", INDIRECT_X, 2, 6},
	0x91: {STA, "STA", INDIRECT_Y, 2, 6},

	0x86: {STX, "STX", ZERO_PAGE, 2, 3},
	0x96: {STX, "STX", ZERO_PAGE_Y, 2, 4},
	0x8E: {STX, "STX", ABSOLUTE, 3, 4},
	0x84: {STY, "STY", ZERO_PAGE, 2, 3},
	0x94: {STY, "STY", ZERO_PAGE_X, 2, 4},
	0x8C: {STY, "STY", ABSOLUTE, 3, 4},

	0xAA: {TAX, "TAX", IMPLICIT, 1, 2},
	0xA8: {TAY, "TAY", IMPLICIT, 1, 2},
	0xBA: {TSX, "TSX", IMPLICIT, 1, 2},
	0x8A: {TXA, "TXA", IMPLICIT, 1, 2},
	0x9A: {TXS, "TXS", IMPLICIT, 1, 2},
	0x98: {TYA, "TYA", IMPLICIT, 1, 2},

	// Unofficial opcodes. Byte assignments and cycle counts per the
	// community "Undocumented Opcodes" reference.
	0xA7: {LAX, "LAX", ZERO_PAGE, 2, 3},
	0xB7: {LAX, "LAX", ZERO_PAGE_Y, 2, 4},
	0xAF: {LAX, "LAX", ABSOLUTE, 3, 4},
	0xBF: {LAX, "LAX", ABSOLUTE_Y, 3, 4},
	0xA3: {LAX, "LAX", INDIRECT_X, 2, 6},
	0xB3: {LAX, "LAX", INDIRECT_Y, 2, 5},

	0x87: {SAX, "SAX", ZERO_PAGE, 2, 3},
	0x97: {SAX, "SAX", ZERO_PAGE_Y, 2, 4},
	0x8F: {SAX, "SAX", ABSOLUTE, 3, 4},
	0x83: {SAX, "SAX", INDIRECT_X, 2, 6},

	0xC7: {DCP, "DCP", ZERO_PAGE, 2, 5},
	0xD7: {DCP, "DCP", ZERO_PAGE_X, 2, 6},
	0xCF: {DCP, "DCP", ABSOLUTE, 3, 6},
	0xDF: {DCP, "DCP", ABSOLUTE_X, 3, 7},
	0xDB: {DCP, "DCP", ABSOLUTE_Y, 3, 7},
	0xC3: {DCP, "DCP", INDIRECT_X, 2, 8},
	0xD3: {DCP, "DCP", INDIRECT_Y, 2, 8},

	0xE7: {ISC, "ISC", ZERO_PAGE, 2, 5},
	0xF7: {ISC, "ISC", ZERO_PAGE_X, 2, 6},
	0xEF: {ISC, "ISC", ABSOLUTE, 3, 6},
	0xFF: {ISC, "ISC", ABSOLUTE_X, 3, 7},
	0xFB: {ISC, "ISC", ABSOLUTE_Y, 3, 7},
	0xE3: {ISC, "ISC", INDIRECT_X, 2, 8},
	0xF3: {ISC, "ISC", INDIRECT_Y, 2, 8},

	0x07: {SLO, "SLO", ZERO_PAGE, 2, 5},
	0x17: {SLO, "SLO", ZERO_PAGE_X, 2, 6},
	0x0F: {SLO, "SLO", ABSOLUTE, 3, 6},
	0x1F: {SLO, "SLO", ABSOLUTE_X, 3, 7},
	0x1B: {SLO, "SLO", ABSOLUTE_Y, 3, 7},
	0x03: {SLO, "SLO", INDIRECT_X, 2, 8},
	0x13: {SLO, "SLO", INDIRECT_Y, 2, 8},

	0x27: {RLA, "RLA", ZERO_PAGE, 2, 5},
	0x37: {RLA, "RLA", ZERO_PAGE_X, 2, 6},
	0x2F: {RLA, "RLA", ABSOLUTE, 3, 6},
	0x3F: {RLA, "RLA", ABSOLUTE_X, 3, 7},
	0x3B: {RLA, "RLA", ABSOLUTE_Y, 3, 7},
	0x23: {RLA, "RLA", INDIRECT_X, 2, 8},
	0x33: {RLA, "RLA", INDIRECT_Y, 2, 8},

	0x47: {SRE, "SRE", ZERO_PAGE, 2, 5},
	0x57: {SRE, "SRE", ZERO_PAGE_X, 2, 6},
	0x4F: {SRE, "SRE", ABSOLUTE, 3, 6},
	0x5F: {SRE, "SRE", ABSOLUTE_X, 3, 7},
	0x5B: {SRE, "SRE", ABSOLUTE_Y, 3, 7},
	0x43: {SRE, "SRE", INDIRECT_X, 2, 8},
	0x53: {SRE, "SRE", INDIRECT_Y, 2, 8},

	0x67: {RRA, "RRA", ZERO_PAGE, 2, 5},
	0x77: {RRA, "RRA", ZERO_PAGE_X, 2, 6},
	0x6F: {RRA, "RRA", ABSOLUTE, 3, 6},
	0x7F: {RRA, "RRA", ABSOLUTE_X, 3, 7},
	0x7B: {RRA, "RRA", ABSOLUTE_Y, 3, 7},
	0x63: {RRA, "RRA", INDIRECT_X, 2, 8},
	0x73: {RRA, "RRA", INDIRECT_Y, 2, 8},

	0x0B: {ANC, "ANC", IMMEDIATE, 2, 2},
	0x2B: {ANC, "ANC", IMMEDIATE, 2, 2},
	0x4B: {ALR, "ALR", IMMEDIATE, 2, 2},
	0x6B: {ARR, "ARR", IMMEDIATE, 2, 2},
	0xCB: {AXS, "AXS", IMMEDIATE, 2, 2},
}

// getOperandAddr resolves the operand address for mode, assuming pc
// points at the first operand byte (past the opcode itself).
func (c *CPU) getOperandAddr(mode uint8) uint16 {
	switch mode {
	case IMMEDIATE:
		return c.pc
	case ZERO_PAGE:
		return uint16(c.Read(c.pc))
	case ZERO_PAGE_X:
		return uint16(c.Read(c.pc) + c.x)
	case ZERO_PAGE_Y:
		return uint16(c.Read(c.pc) + c.y)
	case ABSOLUTE:
		return c.Read16(c.pc)
	case ABSOLUTE_X:
		a := c.Read16(c.pc)
		addr := a + uint16(c.x)
		c.cycles += extraCycles(a, addr)
		return addr
	case ABSOLUTE_Y:
		a := c.Read16(c.pc)
		addr := a + uint16(c.y)
		c.cycles += extraCycles(a, addr)
		return addr
	case INDIRECT:
		return c.indirectBugRead16(c.Read16(c.pc))
	case INDIRECT_X:
		return c.zpRead16(c.Read(c.pc) + c.x)
	case INDIRECT_Y:
		a := c.zpRead16(c.Read(c.pc))
		addr := a + uint16(c.y)
		c.cycles += extraCycles(a, addr)
		return addr
	case RELATIVE:
		return (c.pc + 1) + uint16(int8(c.Read(c.pc)))
	}
	panic("cpu: getOperandAddr called with an implicit/accumulator mode")
}

// zpRead16 reads a little-endian pointer out of the zero page,
// wrapping within page 0 instead of crossing into page 1 — the
// behavior (d,X) and (d),Y addressing depend on.
func (c *CPU) zpRead16(zp uint8) uint16 {
	lo := uint16(c.Read(uint16(zp)))
	hi := uint16(c.Read(uint16(zp + 1)))
	return (hi << 8) | lo
}

// indirectBugRead16 reproduces JMP ($xxyy)'s page-wrap bug: if the
// pointer's low byte is $FF, the high byte is fetched from the start
// of the same page rather than the next one.
// https://www.nesdev.org/6502bugs.txt
func (c *CPU) indirectBugRead16(ptr uint16) uint16 {
	lo := uint16(c.Read(ptr))
	hiAddr := (ptr & 0xFF00) | uint16(uint8(ptr)+1)
	hi := uint16(c.Read(hiAddr))
	return (hi << 8) | lo
}

var dispatch = map[uint8]func(*CPU, uint8){
	ADC: (*CPU).ADC, AND: (*CPU).AND, ASL: (*CPU).ASL,
	BCC: (*CPU).BCC, BCS: (*CPU).BCS, BEQ: (*CPU).BEQ,
	BIT: (*CPU).BIT, BMI: (*CPU).BMI, BNE: (*CPU).BNE, BPL: (*CPU).BPL,
	BRK: (*CPU).BRK, BVC: (*CPU).BVC, BVS: (*CPU).BVS,
	CLC: (*CPU).CLC, CLD: (*CPU).CLD, CLI: (*CPU).CLI, CLV: (*CPU).CLV,
	CMP: (*CPU).CMP, CPX: (*CPU).CPX, CPY: (*CPU).CPY,
	DEC: (*CPU).DEC, DEX: (*CPU).DEX, DEY: (*CPU).DEY,
	EOR: (*CPU).EOR,
	INC: (*CPU).INC, INX: (*CPU).INX, INY: (*CPU).INY,
	JMP: (*CPU).JMP, JSR: (*CPU).JSR,
	LDA: (*CPU).LDA, LDX: (*CPU).LDX, LDY: (*CPU).LDY, LSR: (*CPU).LSR,
	NOP: (*CPU).NOP, ORA: (*CPU).ORA,
	PHA: (*CPU).PHA, PHP: (*CPU).PHP, PLA: (*CPU).PLA, PLP: (*CPU).PLP,
	ROL: (*CPU).ROL, ROR: (*CPU).ROR, RTI: (*CPU).RTI, RTS: (*CPU).RTS,
	SBC: (*CPU).SBC, SEC: (*CPU).SEC, SED: (*CPU).SED, SEI: (*CPU).SEI,
	STA: (*CPU).STA, STX: (*CPU).STX, STY: (*CPU).STY,
	TAX: (*CPU).TAX, TAY: (*CPU).TAY, TSX: (*CPU).TSX,
	TXA: (*CPU).TXA, TXS: (*CPU).TXS, TYA: (*CPU).TYA,
	LAX: (*CPU).LAX, SAX: (*CPU).SAX, DCP: (*CPU).DCP, ISC: (*CPU).ISC,
	SLO: (*CPU).SLO, RLA: (*CPU).RLA, SRE: (*CPU).SRE, RRA: (*CPU).RRA,
	ANC: (*CPU).ANC, ALR: (*CPU).ALR, ARR: (*CPU).ARR, AXS: (*CPU).AXS,
}
