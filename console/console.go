// Package console composes the CPU, PPU, APU, input and mapper into a
// runnable machine: the cycle-interleaving Step loop, and the
// ebiten.Game wiring used to actually display and drive it.
package console

import (
	stdcolor "image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kbessho/gintendo/bus"
	"github.com/kbessho/gintendo/mapper"
)

// NTSC CPU clock rate and the PCM rate Step resamples the APU output
// down to.
const (
	cpuClockHz  = 1789773.0
	SampleRateHz = 44100
)

const cyclesPerSample = cpuClockHz / SampleRateHz

// Console is the top-level machine: it owns the Bus (and, through it,
// the CPU/PPU/APU/mapper/controllers) and drives them one instruction
// at a time.
type Console struct {
	Bus *bus.Bus

	sampleAccum float64
	samples     []int16
}

// New builds a Console around a freshly-constructed Mapper.
func New(m mapper.Mapper) *Console {
	return &Console{Bus: bus.New(m)}
}

// DrainSamples returns every PCM sample generated since the last call
// and clears the internal buffer. Safe to call once per ebiten audio
// pull; Console itself isn't safe for concurrent use otherwise.
func (c *Console) DrainSamples() []int16 {
	s := c.samples
	c.samples = nil
	return s
}

// Step runs one CPU step (either servicing a pending interrupt or
// executing one instruction, see cpu.Step) and interleaves the PPU and
// APU by the matching number of cycles, per spec.md 4.9. It returns
// the number of CPU cycles consumed, including any OAM-DMA stall, and
// whether a new frame became ready during this step.
func (c *Console) Step() (int, bool, error) {
	before := c.Bus.CPU.TotalCycles()
	c.Bus.NoteCPUCycleParity(before)

	if _, err := c.Bus.CPU.Step(); err != nil {
		return 0, false, err
	}
	delta := int(c.Bus.CPU.TotalCycles() - before)

	frameReady := false
	for i := 0; i < 3*delta; i++ {
		c.Bus.PPU.Tick(1)
		if c.Bus.PPU.FrameReady() {
			frameReady = true
		}
	}

	for i := 0; i < delta; i++ {
		c.Bus.APU.Step(before + uint64(i))

		c.sampleAccum++
		if c.sampleAccum >= cyclesPerSample {
			c.sampleAccum -= cyclesPerSample
			c.samples = append(c.samples, int16(c.Bus.APU.Output()*32767))
		}
	}

	return delta, frameReady, nil
}

// RunFrame steps the console until a frame is ready, returning the
// total CPU cycles consumed. Mappers that generate their own IRQs
// (not used by the NROM mapper this repo ships) would signal through
// cpu.SetIRQ the same way the APU does; nothing else about this loop
// changes for them.
func (c *Console) RunFrame() (int, error) {
	total := 0
	for {
		delta, ready, err := c.Step()
		total += delta
		if err != nil {
			return total, err
		}
		if ready {
			return total, nil
		}
	}
}

// Layout implements ebiten.Game: the NES's fixed resolution, so
// ebiten handles any window scaling itself.
func (c *Console) Layout(outsideWidth, outsideHeight int) (int, int) {
	return c.Bus.PPU.GetResolution()
}

// Draw implements ebiten.Game, blitting the PPU's current frame
// buffer onto the screen image.
func (c *Console) Draw(screen *ebiten.Image) {
	px := c.Bus.PPU.GetPixels()
	w, _ := c.Bus.PPU.GetResolution()
	for i, p := range px {
		x, y := i%w, i/w
		screen.Set(x, y, stdcolor.RGBA{p[0], p[1], p[2], p[3]})
	}
}

// Update implements ebiten.Game. Emulation itself runs on ebiten's
// update tick rather than a separate goroutine: each call runs
// exactly one frame's worth of CPU/PPU/APU steps, keeping emulation
// cadence tied to ebiten's own 60Hz scheduler instead of a free-running
// loop that would race the renderer.
func (c *Console) Update() error {
	_, err := c.RunFrame()
	return err
}
