package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTraceLineMatchesNestestSample reproduces §8 scenario 3: the first
// line nestest.nes emits when run from its automation entry point, with
// SP=$FD, P=$24, cpu.Cycles=7, scanline=0, cycle=21.
func TestTraceLineMatchesNestestSample(t *testing.T) {
	prg := make([]byte, 0x8000) // two 16KiB banks: $8000-$BFFF, fixed $C000-$FFFF
	prg[0x4000] = 0x4C          // JMP $C5F5 at $C000
	prg[0x4001] = 0xF5
	prg[0x4002] = 0xC5
	c := newTestConsole(t, prg, 0xC000)

	c.cpu.PC = 0xC000
	c.cpu.SP = 0xFD
	c.cpu.Status = 0x24
	c.cpu.Cycles = 7
	c.ppu.Scanline = 0
	c.ppu.Cycle = 21

	line := c.Trace().String()
	expected := "C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7"
	assert.Equal(t, expected, line)
}

// TestRunNestestAdvancesPPUAndCPUCycleColumns drives RunNestest itself
// (rather than hand-seeding Trace()) and checks that both the seeded start
// state and the per-instruction PPU/CYC advance match the reference log:
// JMP $C5F5 costs 3 CPU cycles, so line 2 lands at CYC:10 with the PPU
// clock 9 ticks further along (scanline=0, cycle=21+9=30).
func TestRunNestestAdvancesPPUAndCPUCycleColumns(t *testing.T) {
	prg := make([]byte, 0x8000)
	prg[0x4000] = 0x4C // JMP $C5F5 at $C000
	prg[0x4001] = 0xF5
	prg[0x4002] = 0xC5
	prg[0x45F5] = 0xEA // NOP at $C5F5
	c := newTestConsole(t, prg, 0xC000)

	var lines []TraceLine
	c.RunNestest(2, func(line TraceLine) { lines = append(lines, line) })

	require.Len(t, lines, 2)
	assert.Equal(t, uint16(0xC000), lines[0].PC)
	assert.Equal(t, uint64(7), lines[0].CPUCycle)
	assert.Equal(t, 0, lines[0].Scanline)
	assert.Equal(t, 21, lines[0].PPUCycle)

	assert.Equal(t, uint16(0xC5F5), lines[1].PC)
	assert.Equal(t, uint64(10), lines[1].CPUCycle, "JMP absolute costs 3 CPU cycles")
	assert.Equal(t, 0, lines[1].Scanline)
	assert.Equal(t, 30, lines[1].PPUCycle, "the PPU clock advances 3x the CPU cycles consumed")
}
