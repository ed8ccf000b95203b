package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildINES(mapperID uint8, mirrorVertical, battery bool, prgBanks, chrBanks int) []byte {
	ctrl1 := uint8(0)
	if mirrorVertical {
		ctrl1 |= 0x01
	}
	if battery {
		ctrl1 |= 0x02
	}
	ctrl1 |= (mapperID & 0x0F) << 4
	ctrl2 := mapperID & 0xF0

	header := []byte{'N', 'E', 'S', 0x1A, byte(prgBanks), byte(chrBanks), ctrl1, ctrl2, 0, 0, 0, 0, 0, 0, 0, 0}
	rom := append([]byte{}, header...)
	rom = append(rom, make([]byte, prgBanks*prgBankSize)...)
	rom = append(rom, make([]byte, chrBanks*chrBankSize)...)
	return rom
}

func TestParseINESRejectsBadMagic(t *testing.T) {
	rom := buildINES(0, false, false, 1, 1)
	rom[0] = 'X'
	_, err := parseINES(rom)
	assert.ErrorIs(t, err, ErrInvalidROM)
}

func TestParseINESRejectsTruncatedPRG(t *testing.T) {
	rom := buildINES(0, false, false, 2, 1)
	rom = rom[:len(rom)-prgBankSize]
	_, err := parseINES(rom)
	assert.ErrorIs(t, err, ErrInvalidROM)
}

func TestParseINESAllocatesCHRRAM(t *testing.T) {
	rom := buildINES(2, true, false, 1, 0)
	cart, err := parseINES(rom)
	require.NoError(t, err)
	assert.True(t, cart.CHRIsRAM)
	assert.Len(t, cart.CHR, chrBankSize)
}

func TestParseINESDecodesMapperAndMirroring(t *testing.T) {
	rom := buildINES(4, true, true, 2, 1)
	cart, err := parseINES(rom)
	require.NoError(t, err)
	assert.Equal(t, uint8(4), cart.MapperID)
	assert.Equal(t, MirrorVertical, cart.Mirror)
	assert.True(t, cart.Battery)
}

func TestParseINESFourScreenOverridesMirrorBit(t *testing.T) {
	rom := buildINES(0, true, false, 1, 1)
	rom[6] |= 0x08
	cart, err := parseINES(rom)
	require.NoError(t, err)
	assert.Equal(t, MirrorFour, cart.Mirror)
}

func TestMirrorAddressHorizontal(t *testing.T) {
	assert.Equal(t, uint16(0x2000), mirrorAddress(MirrorHorizontal, 0x2000))
	assert.Equal(t, uint16(0x2000), mirrorAddress(MirrorHorizontal, 0x2400))
	assert.Equal(t, uint16(0x2400), mirrorAddress(MirrorHorizontal, 0x2800))
	assert.Equal(t, uint16(0x2400), mirrorAddress(MirrorHorizontal, 0x2C00))
}

func TestMirrorAddressVertical(t *testing.T) {
	assert.Equal(t, uint16(0x2000), mirrorAddress(MirrorVertical, 0x2000))
	assert.Equal(t, uint16(0x2400), mirrorAddress(MirrorVertical, 0x2400))
	assert.Equal(t, uint16(0x2000), mirrorAddress(MirrorVertical, 0x2800))
	assert.Equal(t, uint16(0x2400), mirrorAddress(MirrorVertical, 0x2C00))
}

func TestMirrorAddressSingleScreen(t *testing.T) {
	for _, addr := range []uint16{0x2000, 0x2400, 0x2800, 0x2C00} {
		assert.Equal(t, uint16(0x2000), mirrorAddress(MirrorSingle0, addr))
		assert.Equal(t, uint16(0x2400), mirrorAddress(MirrorSingle1, addr))
	}
}
