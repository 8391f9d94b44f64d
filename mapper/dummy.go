package mapper

// Flat is a test double: a single flat 64 KiB address space used in
// place of a real cartridge wherever a test needs a Mapper but isn't
// exercising mapper semantics itself (bus and console tests).
type Flat struct {
	mem []uint8
	MM  uint8 // mirroring mode; tests set directly
}

// NewFlat returns a ready-to-use Flat mapper.
func NewFlat() *Flat {
	return &Flat{mem: make([]uint8, 1<<16)}
}

func (f *Flat) ID() uint16   { return 0 }
func (f *Flat) Name() string { return "flat" }

func (f *Flat) PrgRead(addr uint16) uint8       { return f.mem[addr] }
func (f *Flat) PrgWrite(addr uint16, val uint8) { f.mem[addr] = val }
func (f *Flat) ChrRead(addr uint16) uint8       { return f.mem[addr] }
func (f *Flat) ChrWrite(addr uint16, val uint8) { f.mem[addr] = val }

func (f *Flat) Mirroring() uint8 { return f.MM }
func (f *Flat) HasSaveRAM() bool { return true }
