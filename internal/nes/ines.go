package nes

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidROM is returned when the input buffer is not a valid iNES image.
var ErrInvalidROM = errors.New("nes: invalid rom")

// ErrUnsupportedMapper is returned when the header names a mapper this
// package does not implement.
var ErrUnsupportedMapper = errors.New("nes: unsupported mapper")

const inesMagic = 0x1A53454E // "NES\x1A" little-endian
const inesHeaderSize = 16
const trainerSize = 512
const prgBankSize = 16 * 1024
const chrBankSize = 8 * 1024

// parseINES reads an iNES v1 image and returns the Cartridge it describes.
func parseINES(rom []byte) (*Cartridge, error) {
	if len(rom) < inesHeaderSize {
		return nil, fmt.Errorf("%w: buffer too short (%d bytes)", ErrInvalidROM, len(rom))
	}
	if magic := binary.LittleEndian.Uint32(rom[0:4]); magic != inesMagic {
		return nil, fmt.Errorf("%w: bad magic %#08x", ErrInvalidROM, magic)
	}

	prgBanks := int(rom[4])
	chrBanks := int(rom[5])
	ctrl1 := rom[6]
	ctrl2 := rom[7]

	mapperID := (ctrl1 >> 4) | (ctrl2 & 0xF0)

	mirror := MirrorHorizontal
	if ctrl1&0x01 != 0 {
		mirror = MirrorVertical
	}
	if ctrl1&0x08 != 0 {
		mirror = MirrorFour
	}
	battery := ctrl1&0x02 != 0
	hasTrainer := ctrl1&0x04 != 0

	offset := inesHeaderSize
	if hasTrainer {
		offset += trainerSize
	}

	if prgBanks == 0 {
		return nil, fmt.Errorf("%w: zero PRG banks", ErrInvalidROM)
	}
	prgSize := prgBanks * prgBankSize
	if offset+prgSize > len(rom) {
		return nil, fmt.Errorf("%w: truncated PRG data", ErrInvalidROM)
	}
	prg := make([]byte, prgSize)
	copy(prg, rom[offset:offset+prgSize])
	offset += prgSize

	var chr []byte
	chrIsRAM := chrBanks == 0
	if chrIsRAM {
		chr = make([]byte, chrBankSize)
	} else {
		chrSize := chrBanks * chrBankSize
		if offset+chrSize > len(rom) {
			return nil, fmt.Errorf("%w: truncated CHR data", ErrInvalidROM)
		}
		chr = make([]byte, chrSize)
		copy(chr, rom[offset:offset+chrSize])
		offset += chrSize
	}

	return &Cartridge{
		PRG:      prg,
		CHR:      chr,
		CHRIsRAM: chrIsRAM,
		MapperID: mapperID,
		Mirror:   mirror,
		Battery:  battery,
	}, nil
}
