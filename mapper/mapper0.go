package mapper

import "github.com/kbessho/gintendo/rom"

// PRG-RAM at $6000-$7FFF is mirrored down to a single 4 KiB bank on
// real NROM boards.
const nromPrgRAMSize = 4096

// CHR-RAM size when the cartridge has no CHR-ROM.
const nromChrRAMSize = 8192

func init() {
	Register(0, "NROM", newNROM)
}

// nrom implements mapper 0: no bank switching, PRG-ROM fixed at
// $8000-$FFFF (mirrored if only 16 KiB is present), and either
// CHR-ROM or 8 KiB of CHR-RAM (spec.md §4.2).
type nrom struct {
	*baseMapper
	prgRAM  []uint8
	chrRAM  []uint8 // nil when the cartridge has CHR-ROM
	prgMask uint16
}

func newNROM(img *rom.RomImage) Mapper {
	n := &nrom{
		baseMapper: newBaseMapper(0, "NROM", img),
		prgRAM:     make([]uint8, nromPrgRAMSize),
		prgMask:    0x7FFF,
	}
	if img.NumPrgBlocks() <= 1 {
		n.prgMask = 0x3FFF // 16 KiB cart: $8000-$BFFF mirrors $C000-$FFFF
	}
	if len(img.CHR()) == 0 {
		n.chrRAM = make([]uint8, nromChrRAMSize)
	}
	return n
}

func (n *nrom) PrgRead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr <= 0x7FFF:
		return n.prgRAM[(addr-0x6000)&(nromPrgRAMSize-1)]
	case addr >= 0x8000:
		return n.img.PRG()[addr&n.prgMask]
	}
	return 0
}

func (n *nrom) PrgWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr <= 0x7FFF {
		n.prgRAM[(addr-0x6000)&(nromPrgRAMSize-1)] = val
	}
	// writes to $8000-$FFFF target ROM and are ignored.
}

func (n *nrom) ChrRead(addr uint16) uint8 {
	if n.chrRAM != nil {
		return n.chrRAM[addr&0x1FFF]
	}
	return n.img.CHR()[addr&0x1FFF]
}

func (n *nrom) ChrWrite(addr uint16, val uint8) {
	if n.chrRAM != nil {
		n.chrRAM[addr&0x1FFF] = val
	}
	// CHR-ROM carts ignore writes.
}
