// Package bus implements the NES's unified CPU address space: 2 KiB of
// work RAM, the PPU/APU/input register windows, and the cartridge's
// PRG space, plus the OAM-DMA side effect of a write to $4014.
package bus

import (
	"github.com/kbessho/gintendo/apu"
	"github.com/kbessho/gintendo/cpu"
	"github.com/kbessho/gintendo/input"
	"github.com/kbessho/gintendo/mapper"
	"github.com/kbessho/gintendo/ppu"
)

// CPU memory map (spec.md 3)
const (
	ramSize      = 0x0800
	ramMirrorEnd = 0x1FFF
	ppuMirrorEnd = 0x3FFF
	apuIOStart   = 0x4000
	apuIOEnd     = 0x4017
	cartStart    = 0x4020
)

const oamDMAReg = 0x4014

// Bus owns the CPU-visible work RAM and wires the CPU, PPU, APU,
// controllers and cartridge mapper together. It implements cpu.Bus,
// ppu.Bus and apu.Bus so each component can be built against it
// without knowing about the others directly.
type Bus struct {
	CPU  *cpu.CPU
	PPU  *ppu.PPU
	APU  *apu.APU

	Mapper mapper.Mapper
	Pad1   input.Controller
	Pad2   input.Controller

	ram [ramSize]uint8

	// dmaOddCycle lets the bus compute OAM-DMA's +1-cycle penalty
	// without reaching into the CPU's private cycle counter: the
	// console sets it from the cycle count's parity, via
	// NoteCPUCycleParity, before every CPU step.
	dmaOddCycle bool
}

// New wires a fresh Bus around m. The CPU and PPU are constructed
// against the Bus itself, mirroring the teacher's two-phase
// construction (the Bus can't exist as a Read/Write target until after
// it's allocated, and the CPU/PPU can't exist before their Bus does).
func New(m mapper.Mapper) *Bus {
	b := &Bus{Mapper: m}
	b.CPU = cpu.New(b)
	b.PPU = ppu.New(b)
	b.PPU.SetMirroring(m.Mirroring())
	b.APU = apu.New(b)
	return b
}

// Read implements cpu.Bus.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= ramMirrorEnd:
		return b.ram[addr&(ramSize-1)]
	case addr <= ppuMirrorEnd:
		return b.PPU.ReadReg(0x2000 + addr&0x0007)
	case addr == 0x4015:
		return b.APU.ReadReg(addr)
	case addr == 0x4016:
		return b.Pad1.Read()
	case addr == 0x4017:
		return b.Pad2.Read()
	case addr <= apuIOEnd:
		return 0
	case addr < cartStart:
		return 0 // $4018-$401F: APU/IO test-mode registers, unimplemented on retail hardware
	default:
		return b.Mapper.PrgRead(addr)
	}
}

// Write implements cpu.Bus.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= ramMirrorEnd:
		b.ram[addr&(ramSize-1)] = val
	case addr <= ppuMirrorEnd:
		b.PPU.WriteReg(0x2000+addr&0x0007, val)
	case addr == oamDMAReg:
		b.runOAMDMA(val)
	case addr == 0x4016:
		b.Pad1.Write(val)
		b.Pad2.Write(val)
	case addr <= apuIOEnd:
		b.APU.WriteReg(addr, val)
	case addr < cartStart:
		// $4018-$401F: APU/IO test-mode registers, unimplemented on retail hardware
	default:
		b.Mapper.PrgWrite(addr, val)
	}
}

// runOAMDMA implements spec.md 4.8: 256 consecutive reads from
// page<<8 written into PPU OAM through $2004, stalling the CPU for
// 513 cycles (514 if the write landed on an odd CPU cycle). The
// teacher's version ran this as an unthrottled loop and charged it a
// flat, made-up cycle count; this charges the real stall by folding it
// into the CPU's own running total so the console's Δ-cycle
// interleaving picks it up automatically.
func (b *Bus) runOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.PPU.WriteOAMByte(b.Read(base + uint16(i)))
	}

	stall := 513
	if b.dmaOddCycle {
		stall = 514
	}
	b.CPU.AddStallCycles(stall)
}

// NoteCPUCycleParity is called by the console once per Step so the
// next OAM-DMA trigger knows whether it landed on an odd CPU cycle.
func (b *Bus) NoteCPUCycleParity(totalCycles uint64) {
	b.dmaOddCycle = totalCycles%2 != 0
}

// ChrRead implements ppu.Bus, routing pattern-table fetches through
// the cartridge mapper's CHR space.
func (b *Bus) ChrRead(addr uint16) uint8 { return b.Mapper.ChrRead(addr) }

// ChrWrite implements ppu.Bus (CHR-RAM cartridges only; mappers with
// CHR-ROM treat this as a no-op).
func (b *Bus) ChrWrite(addr uint16, val uint8) { b.Mapper.ChrWrite(addr, val) }

// TriggerNMI implements ppu.Bus.
func (b *Bus) TriggerNMI() { b.CPU.NMI() }

// PrgRead implements apu.Bus, used for DMC sample playback.
func (b *Bus) PrgRead(addr uint16) uint8 { return b.Mapper.PrgRead(addr) }

// SetIRQ implements apu.Bus.
func (b *Bus) SetIRQ(asserted bool) { b.CPU.SetIRQ(asserted) }
