package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kbessho/gintendo/console"
	"github.com/kbessho/gintendo/input"
)

// gameDriver adapts a *console.Console to ebiten's input model: the
// input package stays host-agnostic (see input.Controller), so all
// key polling lives here instead.
type gameDriver struct {
	*console.Console
}

var keymap = []struct {
	key    ebiten.Key
	button uint8
}{
	{ebiten.KeyZ, input.ButtonA},
	{ebiten.KeyX, input.ButtonB},
	{ebiten.KeyShift, input.ButtonSelect},
	{ebiten.KeyEnter, input.ButtonStart},
	{ebiten.KeyUp, input.ButtonUp},
	{ebiten.KeyDown, input.ButtonDown},
	{ebiten.KeyLeft, input.ButtonLeft},
	{ebiten.KeyRight, input.ButtonRight},
}

func pollPad1() uint8 {
	var mask uint8
	for _, k := range keymap {
		if ebiten.IsKeyPressed(k.key) {
			mask |= k.button
		}
	}
	return mask
}

// Update polls the keyboard for controller 1 before advancing
// emulation by one frame.
func (g *gameDriver) Update() error {
	g.Bus.Pad1.SetButtons(pollPad1())
	return g.Console.Update()
}
