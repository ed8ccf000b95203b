package nes

import "github.com/nesgo/nesgo/internal/nes/mapper"

// Cartridge, MirrorMode and the mirroring constants live in package mapper
// (mapper 1 and mapper 4 need to rewrite mirroring at runtime, and mapper
// cannot import nes without creating a cycle). nes re-exports them under
// their familiar names so callers outside the mapper package never need to
// import it directly.
type Cartridge = mapper.Cartridge
type MirrorMode = mapper.MirrorMode

const (
	MirrorHorizontal = mapper.MirrorHorizontal
	MirrorVertical   = mapper.MirrorVertical
	MirrorSingle0    = mapper.MirrorSingle0
	MirrorSingle1    = mapper.MirrorSingle1
	MirrorFour       = mapper.MirrorFour
)

// mirrorAddress maps a PPU nametable address ($2000-$3EFF) down to one of
// the four physical 0x400-byte nametable banks.
func mirrorAddress(mode MirrorMode, addr uint16) uint16 {
	return mapper.MirrorAddress(mode, addr)
}
