package input

import "testing"

func TestSerialReadOrder(t *testing.T) {
	var c Controller
	c.SetButtons(ButtonA | ButtonStart | ButtonRight)

	c.Write(1) // strobe high
	c.Write(0) // strobe low: latch

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 1}
	for i, w := range want {
		if got := c.Read(); got != w {
			t.Errorf("bit %d: got %d, want %d", i, got, w)
		}
	}
}

func TestReadPast8thBitReturns0(t *testing.T) {
	var c Controller
	c.SetButtons(0xFF)
	c.Write(1)
	c.Write(0)
	for i := 0; i < 8; i++ {
		c.Read()
	}
	if got := c.Read(); got != 0 {
		t.Errorf("9th read = %d, want 0", got)
	}
}

func TestStrobeHighReportsLiveButtonA(t *testing.T) {
	var c Controller
	c.Write(1) // strobe held high
	c.SetButtons(0)
	if got := c.Read(); got != 0 {
		t.Errorf("Read = %d, want 0", got)
	}
	c.SetButtons(ButtonA)
	if got := c.Read(); got != 1 {
		t.Errorf("Read after SetButtons(ButtonA) = %d, want 1 (live while strobed)", got)
	}
}

func TestWriteResetsShiftIndex(t *testing.T) {
	var c Controller
	c.SetButtons(ButtonB)
	c.Write(1)
	c.Write(0)
	c.Read() // consumes bit 0 (A)
	c.Write(1)
	c.Write(0) // re-latch, index should reset to 0
	if got := c.Read(); got != 0 {
		t.Errorf("Read after re-latch = %d, want 0 (A is not pressed)", got)
	}
}
