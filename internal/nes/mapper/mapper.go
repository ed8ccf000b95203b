// Package mapper implements the cartridge memory mappers: the bank-switching
// logic that sits between the CPU/PPU address buses and a Cartridge's PRG
// and CHR banks. It also owns the Cartridge type and nametable mirroring
// math, since mapper 1 and mapper 4 can rewrite mirroring at runtime.
package mapper

import "fmt"

// MirrorMode selects how the PPU's 2KiB of nametable RAM is mapped into the
// 4KiB nametable address window.
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingle0
	MirrorSingle1
	MirrorFour
)

// lookup maps a nametable quadrant (0-3) to one of the four 0x400-byte
// physical banks, per mirroring mode.
var lookup = [5][4]uint16{
	MirrorHorizontal: {0, 0, 1, 1},
	MirrorVertical:   {0, 1, 0, 1},
	MirrorSingle0:    {0, 0, 0, 0},
	MirrorSingle1:    {1, 1, 1, 1},
	MirrorFour:       {0, 1, 2, 3},
}

// MirrorAddress maps a PPU nametable address ($2000-$3EFF) down to one of
// the four physical 0x400-byte nametable banks.
func MirrorAddress(mode MirrorMode, addr uint16) uint16 {
	addr = (addr - 0x2000) % 0x1000
	bank := addr / 0x400
	offset := addr & 0x3FF
	return lookup[mode][bank]*0x400 + 0x2000 + offset
}

// Cartridge holds the ROM/RAM images and metadata decoded from an iNES
// image. It is immutable after load except for CHR-RAM, SRAM and Mirror
// (mapper 1 and mapper 4 may rewrite mirroring at runtime).
type Cartridge struct {
	PRG      []byte
	CHR      []byte
	CHRIsRAM bool
	SRAM     [8192]byte
	MapperID uint8
	Mirror   MirrorMode
	Battery  bool
}

// PPUState is the slice of PPU state mapper 4's scanline IRQ needs. Other
// mappers ignore it.
type PPUState struct {
	Scanline         int
	Cycle            int
	RenderingEnabled bool
}

// Mapper translates CPU addresses >= $6000 and PPU addresses < $2000 into
// offsets within a Cartridge's PRG/CHR/SRAM, and drives any mapper-local
// IRQ source.
type Mapper interface {
	// Read returns the byte at addr, which must be in $6000-$FFFF (PRG/SRAM)
	// or $0000-$1FFF (CHR).
	Read(addr uint16) uint8
	// Write stores val at addr, same ranges as Read.
	Write(addr uint16, val uint8)
	// Step is called once per PPU tick. It returns true the tick an IRQ
	// edge should be raised.
	Step(state PPUState) bool
	// Reset restores power-on bank state.
	Reset()
}

// New constructs the Mapper for the given mapper id. Supported ids are
// {0, 1, 2, 3, 4, 7}; any other id returns an error the caller should
// surface as nes.ErrUnsupportedMapper.
func New(id uint8, cart *Cartridge) (Mapper, error) {
	switch id {
	case 0, 2:
		return newUxROM(cart), nil
	case 1:
		return newMMC1(cart), nil
	case 3:
		return newCNROM(cart), nil
	case 4:
		return newMMC3(cart), nil
	case 7:
		return newAxROM(cart), nil
	default:
		return nil, fmt.Errorf("mapper %d not implemented", id)
	}
}

// Supported reports whether id names an implemented mapper.
func Supported(id uint8) bool {
	switch id {
	case 0, 1, 2, 3, 4, 7:
		return true
	default:
		return false
	}
}

func prgBanks16k(cart *Cartridge) int { return len(cart.PRG) / 0x4000 }
func prgBanks8k(cart *Cartridge) int  { return len(cart.PRG) / 0x2000 }
func chrBanks8k(cart *Cartridge) int {
	if len(cart.CHR) == 0 {
		return 1
	}
	return len(cart.CHR) / 0x2000
}
