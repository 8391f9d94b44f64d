package rom

import (
	"bytes"
	"errors"
	"testing"
)

func buildImage(prgBanks, chrBanks int, flags6 uint8) []byte {
	var buf bytes.Buffer
	buf.WriteString(magic)
	buf.WriteByte(byte(prgBanks))
	buf.WriteByte(byte(chrBanks))
	buf.WriteByte(flags6)
	buf.Write(make([]byte, 9)) // flags7..15
	buf.Write(make([]byte, PRG_BLOCK_SIZE*prgBanks))
	buf.Write(make([]byte, CHR_BLOCK_SIZE*chrBanks))
	return buf.Bytes()
}

func TestLoad(t *testing.T) {
	img, err := Load(buildImage(2, 1, MIRRORING))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.NumPrgBlocks() != 2 || img.NumChrBlocks() != 1 {
		t.Errorf("got prg=%d chr=%d, want prg=2 chr=1", img.NumPrgBlocks(), img.NumChrBlocks())
	}
	if len(img.PRG()) != 2*PRG_BLOCK_SIZE || len(img.CHR()) != CHR_BLOCK_SIZE {
		t.Errorf("got prg len=%d chr len=%d", len(img.PRG()), len(img.CHR()))
	}
	if img.MirroringMode() != MIRROR_VERTICAL {
		t.Errorf("got mirroring %d, want vertical", img.MirroringMode())
	}
}

func TestLoadTruncated(t *testing.T) {
	full := buildImage(1, 1, 0)
	_, err := Load(full[:len(full)-100])
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("got %v, want ErrTruncated", err)
	}
}

func TestLoadBadMagic(t *testing.T) {
	buf := buildImage(1, 0, 0)
	buf[0] = 'X'
	if _, err := Load(buf); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("got %v, want ErrInvalidHeader", err)
	}
}

func TestLoadCHRRam(t *testing.T) {
	img, err := Load(buildImage(1, 0, 0))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(img.CHR()) != 0 {
		t.Errorf("expected no CHR-ROM bytes, got %d", len(img.CHR()))
	}
}
