// Command gintendo runs an NES ROM: window, keyboard, audio and an
// optional stdin debugger.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/kbessho/gintendo/console"
	"github.com/kbessho/gintendo/mapper"
	"github.com/kbessho/gintendo/rom"
)

var (
	debug          bool
	scale          int
	mute           bool
	headlessFrames int
)

func main() {
	root := &cobra.Command{
		Use:   "gintendo [rom file]",
		Short: "An NES/Famicom emulator",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().BoolVar(&debug, "debug", false, "drop into the stdin debugger instead of running the window")
	root.Flags().IntVar(&scale, "scale", 2, "window size multiplier")
	root.Flags().BoolVar(&mute, "mute", false, "disable audio output")
	root.Flags().IntVar(&headlessFrames, "headless-frames", 0, "run N frames with no window or audio, then exit (0 disables)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	img, err := rom.New(args[0])
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	m, err := mapper.Get(img)
	if err != nil {
		return fmt.Errorf("building mapper: %w", err)
	}

	gintendo := console.New(m)

	if debug {
		gintendo.Debug(context.Background())
		return nil
	}

	if headlessFrames > 0 {
		for i := 0; i < headlessFrames; i++ {
			if _, err := gintendo.RunFrame(); err != nil {
				return fmt.Errorf("running frame %d: %w", i, err)
			}
			gintendo.DrainSamples()
		}
		return nil
	}

	w, h := gintendo.Bus.PPU.GetResolution()
	ebiten.SetWindowSize(w*scale, h*scale)
	ebiten.SetWindowTitle("gintendo - " + img.String())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	player := newAudioPlayer(gintendo)
	if mute {
		player.SetVolume(0)
	}
	defer player.Close()

	driver := &gameDriver{Console: gintendo}
	return ebiten.RunGame(driver)
}
