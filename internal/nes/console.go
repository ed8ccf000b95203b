// Package nes implements a cycle-accurate emulation core for the
// Nintendo Entertainment System: iNES ROM loading, the 6502 CPU, the 2C02
// PPU, the 2A03 APU, cartridge mappers, and controller input, wired
// together behind a single Console.
package nes

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nesgo/nesgo/internal/nes/mapper"
)

const cpuFrequencyHz = 1789773

// Console owns every component of one emulated machine and is the only
// type callers outside this package construct directly. Components never
// hold a back-reference to their owning Console; instead each bus
// operation takes the Console as an explicit parameter, which keeps CPU,
// PPU and APU free of import cycles and of the lifetime questions a stored
// owner pointer would raise.
type Console struct {
	cpu *CPU
	ppu *PPU
	apu *APU

	cart   *Cartridge
	mapper mapper.Mapper

	ram [2048]byte

	controller1, controller2 Controller

	logger zerolog.Logger
}

// NewConsole parses rom as an iNES image and returns a freshly reset
// Console ready to Step. logger may be the zero zerolog.Logger (no-op);
// passing one lets callers observe unimplemented-opcode warnings. Parse and
// unsupported-mapper failures are returned as errors, not logged.
func NewConsole(rom []byte, logger zerolog.Logger) (*Console, error) {
	cart, err := parseINES(rom)
	if err != nil {
		return nil, err
	}
	if !mapper.Supported(cart.MapperID) {
		return nil, fmt.Errorf("%w: mapper %d", ErrUnsupportedMapper, cart.MapperID)
	}
	m, err := mapper.New(cart.MapperID, cart)
	if err != nil {
		return nil, err
	}

	c := &Console{
		cpu:    newCPU(),
		ppu:    newPPU(),
		apu:    newAPU(),
		cart:   cart,
		mapper: m,
		logger: logger,
	}
	c.Reset()
	return c, nil
}

// Reset returns every component to its power-on state without reloading
// the cartridge.
func (c *Console) Reset() {
	c.mapper.Reset()
	c.ppu.reset()
	c.cpu.reset(c)
}

// SRAM returns the cartridge's battery-backed save RAM, or nil if the
// cartridge has no battery. Callers persist this between sessions.
func (c *Console) SRAM() []byte {
	if !c.cart.Battery {
		return nil
	}
	return c.cart.SRAM[:]
}

// SetAudioSink installs a callback invoked with one mixed audio sample
// (in [0,1]) every APU step. Passing nil disables audio sampling.
func (c *Console) SetAudioSink(fn func(float32)) { c.apu.OnSample = fn }

// ButtonDown latches a button as held on the given controller (1 or 2).
func (c *Console) ButtonDown(player int, b Button) { c.controller(player).setButton(b, true) }

// ButtonUp releases a button on the given controller (1 or 2).
func (c *Console) ButtonUp(player int, b Button) { c.controller(player).setButton(b, false) }

func (c *Console) controller(player int) *Controller {
	if player == 2 {
		return &c.controller2
	}
	return &c.controller1
}

// ButtonsSnapshot returns the given controller's currently held buttons as
// a bitmask (bit index per the Button enum), for HUD/debug display.
func (c *Console) ButtonsSnapshot(player int) uint8 { return c.controller(player).snapshot() }

// FrameCount returns the number of PPU frames rendered so far.
func (c *Console) FrameCount() uint64 { return c.ppu.Frame }

// Step executes exactly one CPU instruction (or one stall cycle during
// OAM/DMC DMA) and drives the PPU and APU the matching number of ticks, at
// the system's fixed CPU:PPU:APU cadence of 1:3:0.5. It returns the number
// of CPU cycles the instruction consumed.
func (c *Console) Step() uint32 {
	cpuCycles := c.cpu.step(c)
	for i := uint32(0); i < cpuCycles*3; i++ {
		c.ppu.step(c)
	}
	for i := uint32(0); i < cpuCycles; i++ {
		c.apu.step(c)
	}
	return cpuCycles
}

// RunForSeconds steps the console until it has simulated approximately
// seconds of wall-clock NES time, driven off the fixed 1.789773MHz CPU
// clock.
func (c *Console) RunForSeconds(seconds float64) {
	target := uint64(seconds * cpuFrequencyHz)
	start := c.cpu.Cycles
	for c.cpu.Cycles-start < target {
		c.Step()
	}
}

func (c *Console) ppuState() mapper.PPUState {
	return mapper.PPUState{
		Scanline:         c.ppu.Scanline,
		Cycle:            c.ppu.Cycle,
		RenderingEnabled: c.ppu.renderingEnabled(),
	}
}

// read16 reads a little-endian word off the CPU bus.
func (c *Console) read16(addr uint16) uint16 {
	lo := uint16(c.cpuRead(addr))
	hi := uint16(c.cpuRead(addr + 1))
	return hi<<8 | lo
}

// read16Bugged reproduces the 6502's indirect-JMP page-wrap bug: if the
// pointer's low byte is 0xFF, the high byte is fetched from the start of
// the same page instead of the next one.
func (c *Console) read16Bugged(addr uint16) uint16 {
	lo := uint16(c.cpuRead(addr))
	var hiAddr uint16
	if addr&0x00FF == 0x00FF {
		hiAddr = addr & 0xFF00
	} else {
		hiAddr = addr + 1
	}
	hi := uint16(c.cpuRead(hiAddr))
	return hi<<8 | lo
}

// cpuReadDebug reads a byte without triggering any read side effect
// (PPU/APU register reads mutate state), for use by trace logging.
func (c *Console) cpuReadDebug(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return c.ram[addr%0x0800]
	case addr < 0x4000, addr == 0x4014, addr == 0x4016, addr == 0x4017:
		return 0
	case addr == 0x4015:
		return 0
	case addr < 0x4018:
		return 0
	default:
		return c.mapper.Read(addr)
	}
}

// cpuRead dispatches a CPU bus read: 2KiB internal RAM mirrored through
// $1FFF, PPU registers mirrored every 8 bytes through $3FFF, APU/IO
// registers at $4000-$4017, and the cartridge (via the mapper) from $4018
// up.
func (c *Console) cpuRead(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return c.ram[addr%0x0800]
	case addr < 0x4000:
		return c.ppu.readRegister(c, addr)
	case addr == 0x4015:
		return c.apu.readStatus()
	case addr == 0x4016:
		return c.controller1.read()
	case addr == 0x4017:
		return c.controller2.read()
	case addr < 0x4018:
		return 0
	default:
		return c.mapper.Read(addr)
	}
}

// cpuWrite dispatches a CPU bus write, mirroring cpuRead's address map.
// Writing $4014 triggers OAM DMA, which stalls the CPU for 513 or 514
// cycles while 256 bytes are copied from CPU page (val<<8) into OAM.
func (c *Console) cpuWrite(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		c.ram[addr%0x0800] = val
	case addr < 0x4000:
		c.ppu.writeRegister(c, addr, val)
	case addr == 0x4014:
		c.doOAMDMA(val)
	case addr == 0x4016:
		c.controller1.write(val)
		c.controller2.write(val)
	case addr == 0x4017:
		c.apu.writeRegister(c, addr, val)
	case addr < 0x4018:
		c.apu.writeRegister(c, addr, val)
	default:
		c.mapper.Write(addr, val)
	}
}

func (c *Console) doOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		c.ppu.oam[c.ppu.oamAddr] = c.cpuRead(base + uint16(i))
		c.ppu.oamAddr++
	}
	if c.cpu.Cycles%2 == 1 {
		c.cpu.stall += 514
	} else {
		c.cpu.stall += 513
	}
}
