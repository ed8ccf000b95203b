package nes

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nesgo/nesgo/internal/nes/mapper"
)

// newTestConsole builds a Console around a 32KiB NROM image with prg loaded
// at $8000 and the reset vector pointed at resetAddr.
func newTestConsole(t *testing.T, prg []byte, resetAddr uint16) *Console {
	t.Helper()
	full := make([]byte, 0x8000)
	copy(full, prg)
	full[0x7FFC] = uint8(resetAddr)
	full[0x7FFD] = uint8(resetAddr >> 8)

	cart := &Cartridge{PRG: full, CHR: make([]byte, 0x2000), CHRIsRAM: true, MapperID: 0}
	m, err := mapper.New(0, cart)
	require.NoError(t, err)

	c := &Console{cpu: newCPU(), ppu: newPPU(), apu: newAPU(), cart: cart, mapper: m, logger: zerolog.Nop()}
	c.Reset()
	return c
}

func TestLDAImmediateSetsZeroAndNegativeFlags(t *testing.T) {
	c := newTestConsole(t, []byte{0xA9, 0x00}, 0x8000)
	c.cpu.step(c)
	assert.Equal(t, uint8(0x00), c.cpu.A)
	assert.True(t, c.cpu.flag(flagZ))
	assert.False(t, c.cpu.flag(flagN))

	c2 := newTestConsole(t, []byte{0xA9, 0x80}, 0x8000)
	c2.cpu.step(c2)
	assert.True(t, c2.cpu.flag(flagN))
	assert.False(t, c2.cpu.flag(flagZ))
}

func TestADCSetsOverflowOnSignedWrap(t *testing.T) {
	// LDA #$7F; ADC #$01 -> 0x80 with V and N set, C clear.
	c := newTestConsole(t, []byte{0xA9, 0x7F, 0x69, 0x01}, 0x8000)
	c.cpu.step(c)
	c.cpu.step(c)
	assert.Equal(t, uint8(0x80), c.cpu.A)
	assert.True(t, c.cpu.flag(flagV))
	assert.True(t, c.cpu.flag(flagN))
	assert.False(t, c.cpu.flag(flagC))
}

func TestBranchTakenCrossingPageAddsCycle(t *testing.T) {
	// PC=$80FD: BNE +5. The operand is consumed at $80FE, landing PC at
	// $80FF before the offset is added, so the $8104 target crosses into
	// the next page and costs an extra cycle.
	prg := make([]byte, 0x200)
	prg[0xFD] = 0xD0
	prg[0xFE] = 0x05
	c := newTestConsole(t, prg, 0x80FD)
	cycles := c.cpu.step(c)
	assert.Equal(t, uint16(0x8104), c.cpu.PC)
	assert.Equal(t, uint32(4), cycles) // 2 base + 1 taken + 1 page cross
}

func TestStackPushPopRoundTrips(t *testing.T) {
	// LDA #$42; PHA; LDA #$00; PLA
	c := newTestConsole(t, []byte{0xA9, 0x42, 0x48, 0xA9, 0x00, 0x68}, 0x8000)
	for i := 0; i < 4; i++ {
		c.cpu.step(c)
	}
	assert.Equal(t, uint8(0x42), c.cpu.A)
}

func TestJSRRTSRoundTrips(t *testing.T) {
	prg := make([]byte, 0x8000)
	prg[0] = 0x20 // JSR $8010
	prg[1] = 0x10
	prg[2] = 0x80
	prg[0x10] = 0x60 // RTS
	c := newTestConsole(t, prg, 0x8000)
	c.cpu.step(c) // JSR
	assert.Equal(t, uint16(0x8010), c.cpu.PC)
	c.cpu.step(c) // RTS
	assert.Equal(t, uint16(0x8003), c.cpu.PC)
}

func TestLAXLoadsBothAccumulatorAndX(t *testing.T) {
	c := newTestConsole(t, []byte{0xA7, 0x10}, 0x8000) // LAX $10
	c.ram[0x10] = 0x55
	c.cpu.step(c)
	assert.Equal(t, uint8(0x55), c.cpu.A)
	assert.Equal(t, uint8(0x55), c.cpu.X)
}

func TestNMIVectorsAndClearsPendingFlag(t *testing.T) {
	full := make([]byte, 0x8000)
	full[0x7FFA] = 0x00 // NMI vector -> $8500
	full[0x7FFB] = 0x85
	full[0x7FFC] = 0x00
	full[0x7FFD] = 0x80
	cart := &Cartridge{PRG: full, CHR: make([]byte, 0x2000), CHRIsRAM: true}
	m, err := mapper.New(0, cart)
	require.NoError(t, err)
	c := &Console{cpu: newCPU(), ppu: newPPU(), apu: newAPU(), cart: cart, mapper: m, logger: zerolog.Nop()}
	c.Reset()

	c.cpu.triggerNMI()
	c.cpu.step(c)
	assert.Equal(t, uint16(0x8500), c.cpu.PC)
	assert.Equal(t, interruptNone, c.cpu.interrupt)
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	full := make([]byte, 0x8000)
	full[0x0000] = 0x34 // wrapped high byte: read from $8000, not $8100
	full[0x0100] = 0xFF // the (incorrect, unbugged) high byte address
	full[0x00FF] = 0x00 // pointer low byte, at $80FF
	full[0x10] = 0x6C   // JMP ($80FF), placed away from $8000 itself
	full[0x11] = 0xFF
	full[0x12] = 0x80
	full[0x7FFC] = 0x10
	full[0x7FFD] = 0x80
	cart := &Cartridge{PRG: full, CHR: make([]byte, 0x2000), CHRIsRAM: true}
	m, err := mapper.New(0, cart)
	require.NoError(t, err)
	c := &Console{cpu: newCPU(), ppu: newPPU(), apu: newAPU(), cart: cart, mapper: m, logger: zerolog.Nop()}
	c.Reset()
	c.cpu.step(c)
	assert.Equal(t, uint16(0x3400), c.cpu.PC)
}
