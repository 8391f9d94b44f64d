package console

import (
	"testing"

	"github.com/kbessho/gintendo/mapper"
)

func TestStepAdvancesCPUPPUInLockstep(t *testing.T) {
	c := New(mapper.NewFlat())
	before := c.Bus.PPU.String()
	delta, _, err := c.Step()
	if err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if delta <= 0 {
		t.Fatalf("delta = %d, want > 0", delta)
	}
	if c.Bus.PPU.String() == before {
		t.Error("PPU state should have advanced after a CPU step")
	}
}

func TestRunFrameEventuallyReportsReady(t *testing.T) {
	c := New(mapper.NewFlat())
	const maxSteps = 1_000_000
	cycles := 0
	for i := 0; i < maxSteps; i++ {
		delta, ready, err := c.Step()
		if err != nil {
			t.Fatalf("Step returned error after %d cycles: %v", cycles, err)
		}
		cycles += delta
		if ready {
			return
		}
	}
	t.Fatalf("frame never became ready within %d steps", maxSteps)
}

func TestOAMDMAStallIsVisibleToConsoleStepping(t *testing.T) {
	c := New(mapper.NewFlat())
	// STA $4014 at the reset vector (0x0000): opcode 0x8D (STA abs).
	c.Bus.Write(0x0000, 0x8D)
	c.Bus.Write(0x0001, 0x14)
	c.Bus.Write(0x0002, 0x40)
	c.Bus.CPU.SetPC(0x0000)

	delta, _, err := c.Step()
	if err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	// STA absolute costs 4 cycles on its own; OAM-DMA adds 513 or 514.
	if delta < 4+513 {
		t.Errorf("delta = %d, want at least %d (STA cost + DMA stall)", delta, 4+513)
	}
}
