package main

import (
	"encoding/binary"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/kbessho/gintendo/console"
)

// pcmStream adapts the console's mono int16 sample queue to the
// stereo 16-bit little-endian PCM stream ebiten's audio package wants.
// It never blocks: if the console hasn't produced enough samples yet
// it pads with silence rather than stalling ebiten's audio callback.
type pcmStream struct {
	console *console.Console
	pending []byte
}

func (s *pcmStream) Read(p []byte) (int, error) {
	for len(s.pending) < len(p) {
		samples := s.console.DrainSamples()
		if len(samples) == 0 {
			break
		}
		for _, v := range samples {
			var frame [4]byte
			binary.LittleEndian.PutUint16(frame[0:2], uint16(v))
			binary.LittleEndian.PutUint16(frame[2:4], uint16(v))
			s.pending = append(s.pending, frame[:]...)
		}
	}

	if len(s.pending) == 0 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

func newAudioPlayer(c *console.Console) *audio.Player {
	ctx := audio.NewContext(console.SampleRateHz)
	player, err := ctx.NewPlayer(&pcmStream{console: c})
	if err != nil {
		log.Fatalf("creating audio player: %v", err)
	}
	player.Play()
	return player
}
