// Package mapper implements and registers cartridge mappers,
// referenced numerically by iNES and NES 2.0 ROM files.
// https://www.nesdev.org/wiki/Mapper
package mapper

import (
	"fmt"

	"github.com/kbessho/gintendo/rom"
)

// Mapper abstracts cartridge-specific PRG/CHR banking and nametable
// mirroring behind the id carried in the ROM header (spec.md §4.2).
// The CPU's internal 2 KiB work RAM is not part of a cartridge and
// lives on the bus instead, unlike some early mapper designs that
// folded it in.
type Mapper interface {
	ID() uint16
	Name() string
	PrgRead(addr uint16) uint8
	PrgWrite(addr uint16, val uint8)
	ChrRead(addr uint16) uint8
	ChrWrite(addr uint16, val uint8)
	Mirroring() uint8
	HasSaveRAM() bool
}

// Factory builds a fresh Mapper bound to img. A new instance is
// built per ROM load so that cartridge RAM isn't accidentally shared
// across unrelated consoles/tests.
type Factory func(img *rom.RomImage) Mapper

type registration struct {
	name    string
	factory Factory
}

var registry = map[uint16]registration{}

// Register associates a mapper id with a Factory. Called from each
// mapper implementation's init().
func Register(id uint16, name string, factory Factory) {
	if r, ok := registry[id]; ok {
		panic(fmt.Sprintf("mapper id %d already registered by %q", id, r.name))
	}
	registry[id] = registration{name: name, factory: factory}
}

// ErrUnsupportedMapper is returned by Get when the cartridge names a
// mapper id with no registered implementation (spec.md §7).
var ErrUnsupportedMapper = fmt.Errorf("unsupported mapper")

// Get constructs the Mapper named by img's header, or
// ErrUnsupportedMapper if no implementation is registered for it.
func Get(img *rom.RomImage) (Mapper, error) {
	id := img.MapperNum()
	r, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: mapper %d (%s)", ErrUnsupportedMapper, id, img)
	}
	return r.factory(img), nil
}

// baseMapper carries the bookkeeping common to every mapper: its id,
// display name, and a handle on the backing ROM image.
type baseMapper struct {
	id   uint16
	name string
	img  *rom.RomImage
}

func newBaseMapper(id uint16, name string, img *rom.RomImage) *baseMapper {
	return &baseMapper{id: id, name: name, img: img}
}

func (bm *baseMapper) ID() uint16 { return bm.id }

func (bm *baseMapper) Name() string { return bm.name }

func (bm *baseMapper) String() string { return bm.name }

func (bm *baseMapper) Mirroring() uint8 { return bm.img.MirroringMode() }

func (bm *baseMapper) HasSaveRAM() bool { return bm.img.HasBattery() }
