// Package cpu implements the NES's 2A03 CPU core, a MOS 6502
// variant with the decimal mode circuitry removed.
// https://www.nesdev.org/wiki/CPU
package cpu

import (
	"fmt"
	"strings"
)

// Bus is the CPU's view of the unified NES address space. The bus
// package implements it; tests use smaller stand-ins.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// 6502 interrupt vectors.
// https://en.wikipedia.org/wiki/Interrupts_in_65xx_processors
const (
	vecNMI   = 0xFFFA
	vecRESET = 0xFFFC
	vecIRQ   = 0xFFFE
	vecBRK   = vecIRQ
)

// Processor status flags.
// https://www.nesdev.org/obelisk-6502-guide/registers.html
const (
	FlagCarry           = 1 << 0 // C
	FlagZero            = 1 << 1 // Z
	FlagInterruptDisable = 1 << 2 // I
	FlagDecimal         = 1 << 3 // D - settable, never consulted by ADC/SBC
	FlagBreak           = 1 << 4 // B
	flagUnused          = 1 << 5 // always reads 1
	FlagOverflow        = 1 << 6 // V
	FlagNegative        = 1 << 7 // N
)

const stackPage = 0x0100

// CPU holds all 2A03 register state and drives instruction dispatch
// against a Bus.
type CPU struct {
	acc, x, y uint8
	status    uint8
	sp        uint8
	pc        uint16
	bus       Bus

	cycles int    // cycles consumed by the most recently executed instruction
	total  uint64 // running total, used by the console to interleave PPU/APU ticks

	pendingNMI bool
	pendingIRQ bool
}

// New returns a CPU wired to bus, with registers at their documented
// power-on state.
// https://www.nesdev.org/wiki/CPU_power_up_state
func New(bus Bus) *CPU {
	c := &CPU{
		sp:     0xFD,
		status: flagUnused | FlagBreak | FlagInterruptDisable,
		bus:    bus,
	}
	c.pc = c.Read16(vecRESET)
	return c
}

func (c *CPU) String() string {
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%s SP:%02X PC:%04X", c.acc, c.x, c.y, statusString(c.status), c.sp, c.pc)
}

var flagOrder = []struct {
	bit  uint8
	ch   byte
}{
	{FlagNegative, 'N'}, {FlagOverflow, 'V'}, {flagUnused, '-'}, {FlagBreak, 'B'},
	{FlagDecimal, 'D'}, {FlagInterruptDisable, 'I'}, {FlagZero, 'Z'}, {FlagCarry, 'C'},
}

func statusString(p uint8) string {
	var sb strings.Builder
	for _, f := range flagOrder {
		if p&f.bit != 0 {
			sb.WriteByte(f.ch)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.pc }

// SetPC forces the program counter, used by test harnesses (e.g. the
// nestest automated-mode entry point) that bypass the reset vector.
func (c *CPU) SetPC(addr uint16) { c.pc = addr }

// Status returns the raw status register, bit 5 always set.
func (c *CPU) Status() uint8 { return c.status }

// Registers returns A, X, Y and SP, for tracing and tests.
func (c *CPU) Registers() (a, x, y, sp uint8) { return c.acc, c.x, c.y, c.sp }

// TotalCycles returns the number of CPU cycles elapsed since New
// (Reset does not clear it), used by Console to interleave PPU/APU
// ticks at a 1:3/1:1 ratio.
func (c *CPU) TotalCycles() uint64 { return c.total }

// Read returns the byte at addr via the bus.
func (c *CPU) Read(addr uint16) uint8 { return c.bus.Read(addr) }

// Write stores val at addr via the bus.
func (c *CPU) Write(addr uint16, val uint8) { c.bus.Write(addr, val) }

// Read16 returns the two bytes at addr, little-endian.
func (c *CPU) Read16(addr uint16) uint16 {
	lsb := uint16(c.Read(addr))
	msb := uint16(c.Read(addr + 1))
	return (msb << 8) | lsb
}

// Write16 stores val at addr, little-endian.
func (c *CPU) Write16(addr uint16, val uint16) {
	c.Write(addr, uint8(val&0x00FF))
	c.Write(addr+1, uint8(val>>8))
}

// LoadMem copies data into bus memory starting at addr. Test/fixture
// helper only; real carts load through the mapper.
func (c *CPU) LoadMem(addr uint16, data []uint8) {
	for i, b := range data {
		c.Write(addr+uint16(i), b)
	}
}

func (c *CPU) memRange(low, high uint16) []uint8 {
	ret := make([]uint8, 0, high-low+1)
	for i := low; i <= high; i++ {
		ret = append(ret, c.Read(i))
		if i == high {
			break
		}
	}
	return ret
}

// Reset restores the CPU to its post-reset state: SP drops by 3 (as
// if 3 bytes were pushed without being written, since /RESET holds
// R/W high), interrupts are disabled, and PC loads from the reset
// vector.
func (c *CPU) Reset() {
	c.sp -= 3
	c.flagsOn(FlagInterruptDisable)
	c.pc = c.Read16(vecRESET)
	c.cycles = 7
}

// StackAddr returns the current top-of-stack address ($0100-$01FF).
func (c *CPU) StackAddr() uint16 {
	return stackPage + uint16(c.sp)
}

func (c *CPU) pushStack(val uint8) {
	c.Write(c.StackAddr(), val)
	c.sp--
}

func (c *CPU) popStack() uint8 {
	c.sp++
	return c.Read(c.StackAddr())
}

func (c *CPU) pushAddress(addr uint16) {
	c.pushStack(uint8(addr >> 8))
	c.pushStack(uint8(addr & 0xFF))
}

func (c *CPU) popAddress() uint16 {
	lo := uint16(c.popStack())
	hi := uint16(c.popStack())
	return (hi << 8) | lo
}

func (c *CPU) flagsOn(mask uint8)  { c.status |= mask }
func (c *CPU) flagsOff(mask uint8) { c.status &^= mask }

func (c *CPU) setNegativeAndZeroFlags(n uint8) {
	if n == 0 {
		c.flagsOn(FlagZero)
	} else {
		c.flagsOff(FlagZero)
	}
	if n&0x80 != 0 {
		c.flagsOn(FlagNegative)
	} else {
		c.flagsOff(FlagNegative)
	}
}

// extraCycles returns 1 if addr1 and addr2 fall in different 256-byte
// pages, 0 otherwise.
func extraCycles(addr1, addr2 uint16) int {
	if addr1&0xFF00 != addr2&0xFF00 {
		return 1
	}
	return 0
}

// NMI latches a non-maskable interrupt, serviced at the next
// instruction boundary. The PPU calls this on VBlank start when NMI
// output is enabled.
func (c *CPU) NMI() { c.pendingNMI = true }

// SetIRQ sets the level of the CPU's maskable interrupt line. The APU
// frame sequencer and any IRQ-capable mapper drive this; it stays
// asserted until the source deasserts it.
func (c *CPU) SetIRQ(asserted bool) { c.pendingIRQ = asserted }

func (c *CPU) serviceInterrupt(vector uint16, isBRK bool) int {
	c.pushAddress(c.pc)
	if isBRK {
		c.pushStack(c.status | FlagBreak)
	} else {
		c.pushStack(c.status &^ FlagBreak)
	}
	c.flagsOn(FlagInterruptDisable)
	c.pc = c.Read16(vector)
	return 7
}

// Fault reports a condition Step cannot recover from: an opcode byte
// with no table entry. Step returns it as an error; callers should
// treat it as fatal per the emulator's error taxonomy.
type Fault struct {
	PC    uint16
	Byte  uint8
	A, X, Y, SP uint8
}

func (f *Fault) Error() string {
	return fmt.Sprintf("cpu: unknown opcode 0x%02X at pc=0x%04X (A=%02X X=%02X Y=%02X SP=%02X)", f.Byte, f.PC, f.A, f.X, f.Y, f.SP)
}

func (c *CPU) fault(b uint8) *Fault {
	return &Fault{PC: c.pc, Byte: b, A: c.acc, X: c.x, Y: c.y, SP: c.sp}
}

// AddStallCycles accounts for cycles consumed by a bus-level stall
// (OAM-DMA) that doesn't go through Step's returned count. The
// Console's cycle interleaving reads TotalCycles before and after a
// Step call, so a stall folded in here still drives the right number
// of PPU/APU ticks.
func (c *CPU) AddStallCycles(n int) { c.total += uint64(n) }

// Step services a pending interrupt (NMI first, then an unmasked IRQ)
// or, when none is pending, executes one full instruction. It returns
// the number of CPU cycles that consumed (7 for an interrupt), or a
// *Fault if the opcode byte is unrecognized. A stall added through
// AddStallCycles during the instruction is in TotalCycles but not in
// the returned count.
func (c *CPU) Step() (int, error) {
	if c.pendingNMI {
		c.pendingNMI = false
		c.cycles = c.serviceInterrupt(vecNMI, false)
		c.total += uint64(c.cycles)
		return c.cycles, nil
	}
	if c.pendingIRQ && c.status&FlagInterruptDisable == 0 {
		c.cycles = c.serviceInterrupt(vecIRQ, false)
		c.total += uint64(c.cycles)
		return c.cycles, nil
	}

	b := c.Read(c.pc)
	op, ok := opcodes[b]
	if !ok {
		return 0, c.fault(b)
	}

	startPC := c.pc
	c.pc++
	c.cycles = int(op.cycles)

	fn := dispatch[op.inst]
	fn(c, op.mode)

	// If the instruction didn't branch/jump, advance past its
	// remaining operand bytes.
	if c.pc == startPC+1 {
		c.pc += uint16(op.bytes) - 1
	}

	c.total += uint64(c.cycles)
	return c.cycles, nil
}
