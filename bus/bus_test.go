package bus

import (
	"testing"

	"github.com/kbessho/gintendo/input"
	"github.com/kbessho/gintendo/mapper"
	"github.com/kbessho/gintendo/ppu"
)

func newTestBus() *Bus {
	return New(mapper.NewFlat())
}

func TestRAMMirroring(t *testing.T) {
	b := newTestBus()
	b.Write(0x0000, 0x42)
	for _, mirror := range []uint16{0x0800, 0x1000, 0x1800} {
		if got := b.Read(mirror); got != 0x42 {
			t.Errorf("Read(0x%04X) = 0x%02X, want 0x42 (RAM mirror)", mirror, got)
		}
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b := newTestBus()
	// $200B/$200C mirror OAMADDR/OAMDATA ($2003/$2004) every 8 bytes.
	b.Write(0x200B, 0x10)
	b.Write(0x200C, 0x77)
	b.PPU.WriteReg(ppu.OAMADDR, 0x10) // the OAMDATA write advanced OAMADDR
	if got := b.PPU.ReadReg(ppu.OAMDATA); got != 0x77 {
		t.Errorf("OAMDATA via direct address = 0x%02X, want 0x77 (written through $200C mirror)", got)
	}
}

func TestOAMDMACopiesPageAndStalls(t *testing.T) {
	b := newTestBus()
	for i := 0; i < 256; i++ {
		b.Write(0x1000+uint16(i), uint8(i))
	}
	before := b.CPU.TotalCycles()
	b.NoteCPUCycleParity(before) // even
	b.Write(0x4014, 0x10)
	after := b.CPU.TotalCycles()
	if after-before != 513 {
		t.Errorf("stall cost = %d, want 513 for an even-cycle trigger", after-before)
	}
	for i := 0; i < 256; i++ {
		b.PPU.WriteReg(ppu.OAMADDR, uint8(i))
		if got := b.PPU.ReadReg(ppu.OAMDATA); got != uint8(i) {
			t.Fatalf("OAM byte %d = %d, want %d", i, got, i)
		}
	}
}

func TestOAMDMAOddCycleCostsOneMore(t *testing.T) {
	b := newTestBus()
	before := b.CPU.TotalCycles()
	b.NoteCPUCycleParity(before + 1) // force odd
	b.Write(0x4014, 0x00)
	after := b.CPU.TotalCycles()
	if after-before != 514 {
		t.Errorf("stall cost = %d, want 514 for an odd-cycle trigger", after-before)
	}
}

func TestControllerStrobeReachesBothPads(t *testing.T) {
	b := newTestBus()
	b.Pad1.SetButtons(input.ButtonA)
	b.Pad2.SetButtons(input.ButtonB)

	b.Write(0x4016, 1)
	b.Write(0x4016, 0)

	if got := b.Read(0x4016); got != 1 {
		t.Errorf("pad1 first bit = %d, want 1 (A pressed)", got)
	}
	if got := b.Read(0x4017); got != 0 {
		t.Errorf("pad2 first bit = %d, want 0 (A not pressed)", got)
	}
}

func TestCartridgeSpacePassesThroughToMapper(t *testing.T) {
	b := newTestBus()
	b.Write(0x8000, 0x99)
	if got := b.Read(0x8000); got != 0x99 {
		t.Errorf("Read(0x8000) = 0x%02X, want 0x99", got)
	}
}
