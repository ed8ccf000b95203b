package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartridge(mapperID uint8, prgBanks, chrBanks int) *Cartridge {
	cart := &Cartridge{
		PRG:      make([]byte, prgBanks*0x4000),
		MapperID: mapperID,
	}
	if chrBanks == 0 {
		cart.CHR = make([]byte, 0x2000)
		cart.CHRIsRAM = true
	} else {
		cart.CHR = make([]byte, chrBanks*0x2000)
	}
	for i := range cart.PRG {
		cart.PRG[i] = uint8(i)
	}
	return cart
}

func TestUxROMBankSwitch(t *testing.T) {
	cart := newTestCartridge(2, 4, 0)
	m, err := New(2, cart)
	require.NoError(t, err)

	assert.Equal(t, cart.PRG[3*0x4000], m.Read(0xC000), "fixed last bank at reset")

	m.Write(0x8000, 1)
	assert.Equal(t, cart.PRG[0x4000], m.Read(0x8000), "switched bank 1 visible at $8000")
	assert.Equal(t, cart.PRG[3*0x4000], m.Read(0xC000), "last bank still fixed")
}

func TestCNROMChrBankSelect(t *testing.T) {
	cart := newTestCartridge(3, 2, 4)
	for i := range cart.CHR {
		cart.CHR[i] = uint8(i % 256)
	}
	m, err := New(3, cart)
	require.NoError(t, err)

	m.Write(0x8000, 2)
	assert.Equal(t, cart.CHR[2*0x2000], m.Read(0x0000))
}

func TestMMC1ShiftRegisterResetAfterFifthWrite(t *testing.T) {
	cart := newTestCartridge(1, 8, 0)
	m, err := New(1, cart)
	require.NoError(t, err)
	mm := m.(*mmc1)

	assert.Equal(t, uint8(0x10), mm.shift, "reset state per invariant 5")

	for i := 0; i < 5; i++ {
		m.Write(0x8000, 0x01)
	}
	assert.Equal(t, uint8(0x10), mm.shift, "shift register reloads to 0x10 after the fifth write")
	assert.Equal(t, uint8(0), mm.shiftCount)
}

func TestMMC1BitSevenResetsShiftRegister(t *testing.T) {
	cart := newTestCartridge(1, 8, 0)
	m, err := New(1, cart)
	require.NoError(t, err)
	mm := m.(*mmc1)

	m.Write(0x8000, 0x01)
	m.Write(0x8000, 0x80)
	assert.Equal(t, uint8(0x10), mm.shift)
	assert.Equal(t, uint8(0), mm.shiftCount)
	assert.Equal(t, uint8(0x0C), mm.control&0x0C, "bit 7 write ORs 0x0C into control")
}

func TestMMC1MirroringFromControlBits(t *testing.T) {
	cart := newTestCartridge(1, 8, 0)
	m, err := New(1, cart)
	require.NoError(t, err)

	writeMMC1Register(m, 0x8000, 0x02) // control: mode bits 0b10 -> vertical
	assert.Equal(t, MirrorVertical, cart.Mirror)

	writeMMC1Register(m, 0x8000, 0x03) // horizontal
	assert.Equal(t, MirrorHorizontal, cart.Mirror)
}

// writeMMC1Register performs the five serial bit writes MMC1 needs to
// commit val into the register selected by addr.
func writeMMC1Register(m Mapper, addr uint16, val uint8) {
	for i := 0; i < 5; i++ {
		m.Write(addr, (val>>i)&0x01)
	}
}

func TestMMC3ScanlineIRQ(t *testing.T) {
	cart := newTestCartridge(4, 8, 8)
	m, err := New(4, cart)
	require.NoError(t, err)

	m.Write(0xC000, 4) // latch
	m.Write(0xC001, 0) // reload on next clock
	m.Write(0xE001, 0) // enable IRQ

	state := PPUState{Cycle: 280, Scanline: 0, RenderingEnabled: true}
	// first clock reloads the counter from the latch (reload flag was set)
	assert.False(t, m.Step(state))
	for i := 0; i < 3; i++ {
		assert.False(t, m.Step(state))
	}
	assert.True(t, m.Step(state), "counter reaches zero on the fifth clock")
}

func TestMMC3IRQDisabled(t *testing.T) {
	cart := newTestCartridge(4, 8, 8)
	m, err := New(4, cart)
	require.NoError(t, err)

	m.Write(0xC000, 0)
	m.Write(0xC001, 0)
	m.Write(0xE000, 0) // disable

	state := PPUState{Cycle: 280, Scanline: 0, RenderingEnabled: true}
	assert.False(t, m.Step(state))
}

func TestAxROMMirroringSelect(t *testing.T) {
	cart := newTestCartridge(7, 4, 0)
	m, err := New(7, cart)
	require.NoError(t, err)

	m.Write(0x8000, 0x10)
	assert.Equal(t, MirrorSingle1, cart.Mirror)

	m.Write(0x8000, 0x00)
	assert.Equal(t, MirrorSingle0, cart.Mirror)
}

func TestUnsupportedMapperRejected(t *testing.T) {
	assert.False(t, Supported(5))
	_, err := New(5, newTestCartridge(5, 2, 1))
	assert.Error(t, err)
}
