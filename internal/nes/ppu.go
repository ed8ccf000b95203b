package nes

import (
	"image"
	"image/color"
)

// palette is the standard NES 2C02 64-color RGB palette.
var palette = [64]uint32{
	0x666666, 0x002A88, 0x1412A7, 0x3B00A4, 0x5C007E, 0x6E0040, 0x6C0600, 0x561D00,
	0x333500, 0x0B4800, 0x005200, 0x004F08, 0x00404D, 0x000000, 0x000000, 0x000000,
	0xADADAD, 0x155FD9, 0x4240FF, 0x7527FE, 0xA01ACC, 0xB71E7B, 0xB53120, 0x994E00,
	0x6B6D00, 0x388700, 0x0C9300, 0x008F32, 0x007C8D, 0x000000, 0x000000, 0x000000,
	0xFFFEFF, 0x64B0FF, 0x9290FF, 0xC676FF, 0xF36AFF, 0xFE6ECC, 0xFE8170, 0xEA9E22,
	0xBCBE00, 0x88D800, 0x5CE430, 0x45E082, 0x48CDDE, 0x4F4F4F, 0x000000, 0x000000,
	0xFFFEFF, 0xC0DFFF, 0xD3D2FF, 0xE8C8FF, 0xFBC2FF, 0xFEC4EA, 0xFECCC5, 0xF7D8A5,
	0xE4E594, 0xCFEF96, 0xBDF4AB, 0xB3F3CC, 0xB5EBF2, 0xB8B8B8, 0x000000, 0x000000,
}

// PPUCTRL/PPUMASK/PPUSTATUS bit accessors.
const (
	ctrlNametable     = 0x03
	ctrlIncrement32   = 0x04
	ctrlSpriteTable   = 0x08
	ctrlBgTable       = 0x10
	ctrlSpriteSize    = 0x20
	ctrlMasterSlave   = 0x40
	ctrlNMIEnable     = 0x80
	maskGrayscale     = 0x01
	maskShowBgLeft    = 0x02
	maskShowSpriteLeft = 0x04
	maskShowBg        = 0x08
	maskShowSprites   = 0x10
	maskEmphasizeRed  = 0x20
	maskEmphasizeGreen = 0x40
	maskEmphasizeBlue = 0x80
	statusSpriteOverflow = 0x20
	statusSprite0Hit     = 0x40
	statusVBlank         = 0x80
)

type spriteData struct {
	pattern  uint32
	position uint8
	priority uint8
	index    uint8
}

// PPU is a Ricoh 2C02, driven one PPU-clock tick per step call.
type PPU struct {
	ctrl, mask, status uint8
	oamAddr            uint8
	oam                [256]byte

	nametable  [2048]byte
	paletteRAM [32]byte

	v, t uint16
	x    uint8
	w    bool

	openBus    uint8 // last byte written to any PPU register, for $2002's open-bus low bits
	readBuffer uint8 // $2007's buffered-read latch, touched only by $2007 reads

	Scanline int
	Cycle    int
	Frame    uint64
	oddFrame bool

	nmiOutput   bool
	nmiOccurred bool
	nmiDelay    uint8

	nameByte, attrByte, tileLo, tileHi uint8
	tileData                           uint64

	sprites        [8]spriteData
	spriteCount    int
	sprite0Visible bool

	front *image.RGBA
	back  *image.RGBA
}

func newPPU() *PPU {
	p := &PPU{
		front: image.NewRGBA(image.Rect(0, 0, 256, 240)),
		back:  image.NewRGBA(image.Rect(0, 0, 256, 240)),
	}
	return p
}

func (p *PPU) reset() {
	p.Cycle = 340
	p.Scanline = 240
	p.Frame = 0
	p.ctrl, p.mask, p.status = 0, 0, 0
}

// Frame returns the most recently completed frame buffer.
func (c *Console) Frame() *image.RGBA { return c.ppu.front }

func (p *PPU) readRegister(c *Console, addr uint16) uint8 {
	switch addr % 8 {
	case 2:
		result := p.status & 0xE0
		result |= p.openBus & 0x1F
		p.status &^= statusVBlank
		p.nmiOccurred = false
		p.w = false
		return result
	case 4:
		return p.oam[p.oamAddr]
	case 7:
		v := p.v & 0x3FFF
		var data uint8
		if v < 0x3F00 {
			data = p.readBuffer
			p.readBuffer = p.ppuRead(c, v)
		} else {
			data = p.ppuRead(c, v)
			p.readBuffer = p.ppuRead(c, v-0x1000)
		}
		if p.ctrl&ctrlIncrement32 != 0 {
			p.v += 32
		} else {
			p.v++
		}
		return data
	}
	return p.openBus
}

func (p *PPU) writeRegister(c *Console, addr uint16, val uint8) {
	p.openBus = val
	switch addr % 8 {
	case 0:
		p.ctrl = val
		p.t = (p.t &^ 0x0C00) | (uint16(val&0x03) << 10)
		wasEnabled := p.nmiOutput
		p.nmiOutput = val&ctrlNMIEnable != 0
		if p.nmiOutput && !wasEnabled && p.nmiOccurred {
			p.nmiDelay = 15
		}
	case 1:
		p.mask = val
	case 3:
		p.oamAddr = val
	case 4:
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case 5:
		if !p.w {
			p.t = (p.t &^ 0x001F) | uint16(val>>3)
			p.x = val & 0x07
			p.w = true
		} else {
			p.t = (p.t &^ 0x73E0) | (uint16(val&0x07) << 12) | (uint16(val&0xF8) << 2)
			p.w = false
		}
	case 6:
		if !p.w {
			p.t = (p.t &^ 0x7F00) | (uint16(val&0x3F) << 8)
			p.w = true
		} else {
			p.t = (p.t &^ 0x00FF) | uint16(val)
			p.v = p.t
			p.w = false
		}
	case 7:
		p.ppuWrite(c, p.v&0x3FFF, val)
		if p.ctrl&ctrlIncrement32 != 0 {
			p.v += 32
		} else {
			p.v++
		}
	}
}

func (p *PPU) ppuRead(c *Console, addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return c.mapper.Read(addr)
	case addr < 0x3F00:
		return p.nametable[p.nametableIndex(c, addr)]
	default:
		return p.readPalette(addr)
	}
}

func (p *PPU) ppuWrite(c *Console, addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		c.mapper.Write(addr, val)
	case addr < 0x3F00:
		p.nametable[p.nametableIndex(c, addr)] = val
	default:
		p.writePalette(addr, val)
	}
}

func (p *PPU) nametableIndex(c *Console, addr uint16) uint16 {
	return mirrorAddress(c.cart.Mirror, addr) - 0x2000
}

func (p *PPU) readPalette(addr uint16) uint8 {
	addr &= 0x1F
	if addr >= 0x10 && addr%4 == 0 {
		addr -= 0x10
	}
	return p.paletteRAM[addr]
}

func (p *PPU) writePalette(addr uint16, val uint8) {
	addr &= 0x1F
	if addr >= 0x10 && addr%4 == 0 {
		addr -= 0x10
	}
	p.paletteRAM[addr] = val
}

func (p *PPU) renderingEnabled() bool { return p.mask&(maskShowBg|maskShowSprites) != 0 }

// -- scroll register helpers (Loopy's notation: coarse X/Y, fine Y, nametable select) --

func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
	} else {
		p.v &^= 0x7000
		y := (p.v & 0x03E0) >> 5
		switch y {
		case 29:
			y = 0
			p.v ^= 0x0800
		case 31:
			y = 0
		default:
			y++
		}
		p.v = (p.v &^ 0x03E0) | (y << 5)
	}
}

func (p *PPU) copyX() {
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) copyY() {
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

// -- background pipeline --

func (p *PPU) fetchNameByte(c *Console) {
	addr := 0x2000 | (p.v & 0x0FFF)
	p.nameByte = p.ppuRead(c, addr)
}

func (p *PPU) fetchAttrByte(c *Console) {
	addr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
	shift := ((p.v >> 4) & 4) | (p.v & 2)
	p.attrByte = (p.ppuRead(c, addr) >> shift) & 0x03
}

func (p *PPU) bgPatternTableBase() uint16 {
	if p.ctrl&ctrlBgTable != 0 {
		return 0x1000
	}
	return 0
}

func (p *PPU) fetchTileLow(c *Console) {
	fineY := (p.v >> 12) & 0x07
	addr := p.bgPatternTableBase() + uint16(p.nameByte)*16 + fineY
	p.tileLo = p.ppuRead(c, addr)
}

func (p *PPU) fetchTileHigh(c *Console) {
	fineY := (p.v >> 12) & 0x07
	addr := p.bgPatternTableBase() + uint16(p.nameByte)*16 + fineY + 8
	p.tileHi = p.ppuRead(c, addr)
}

// loadShift packs one tile's 8 pixels (2 pattern bits + 2 attribute bits
// each) into the low 32 bits of the 64-bit shift register, ready to be
// shifted out over the next 8 cycles.
func (p *PPU) loadShift() {
	var data uint32
	attr := uint32(p.attrByte)
	for i := 0; i < 8; i++ {
		lo := (p.tileLo >> (7 - i)) & 1
		hi := (p.tileHi >> (7 - i)) & 1
		data <<= 4
		data |= attr<<2 | uint32(hi)<<1 | uint32(lo)
	}
	p.tileData |= uint64(data)
}

func (p *PPU) backgroundPixel() (patternIndex, paletteIndex uint8) {
	if p.mask&maskShowBg == 0 {
		return 0, 0
	}
	data := uint32(p.tileData>>32) >> ((7 - p.x) * 4)
	return uint8(data & 0x03), uint8((data >> 2) & 0x03)
}

// -- sprite evaluation --

func (p *PPU) spriteHeight() int {
	if p.ctrl&ctrlSpriteSize != 0 {
		return 16
	}
	return 8
}

// evaluateSprites scans OAM for sprites visible on the given scanline,
// picking the first 8 in OAM order and setting the overflow flag once a
// ninth is found.
func (p *PPU) evaluateSprites(c *Console, scanline int) {
	p.spriteCount = 0
	p.sprite0Visible = false
	height := p.spriteHeight()
	count := 0
	for i := 0; i < 64; i++ {
		y := int(p.oam[i*4])
		row := scanline - y
		if row < 0 || row >= height {
			continue
		}
		if count == 8 {
			p.status |= statusSpriteOverflow
			break
		}
		tile := p.oam[i*4+1]
		attr := p.oam[i*4+2]
		x := p.oam[i*4+3]
		if attr&0x80 != 0 {
			row = height - 1 - row
		}
		var addr uint16
		if height == 16 {
			table := uint16(tile&0x01) * 0x1000
			tileIdx := uint16(tile &^ 0x01)
			if row >= 8 {
				tileIdx++
				row -= 8
			}
			addr = table + tileIdx*16 + uint16(row)
		} else {
			addr = p.spritePatternTableBase() + uint16(tile)*16 + uint16(row)
		}
		lo := p.ppuRead(c, addr)
		hi := p.ppuRead(c, addr+8)
		if attr&0x40 != 0 {
			lo, hi = reverseByte(lo), reverseByte(hi)
		}
		var pattern uint32
		for b := 0; b < 8; b++ {
			l := (lo >> (7 - b)) & 1
			h := (hi >> (7 - b)) & 1
			pattern <<= 4
			pattern |= uint32(attr&0x03)<<2 | uint32(h)<<1 | uint32(l)
		}
		p.sprites[p.spriteCount] = spriteData{
			pattern:  pattern,
			position: x,
			priority: (attr >> 5) & 1,
			index:    uint8(i),
		}
		if i == 0 {
			p.sprite0Visible = true
		}
		p.spriteCount++
		count++
	}
}

func (p *PPU) spritePatternTableBase() uint16 {
	if p.ctrl&ctrlSpriteTable != 0 {
		return 0x1000
	}
	return 0
}

func reverseByte(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

func (p *PPU) spritePixel(x int) (patternIndex, paletteIndex, priority uint8, index int) {
	if p.mask&maskShowSprites == 0 {
		return 0, 0, 0, -1
	}
	for i := 0; i < p.spriteCount; i++ {
		s := &p.sprites[i]
		offset := x - int(s.position)
		if offset < 0 || offset >= 8 {
			continue
		}
		shift := uint32((7 - offset) * 4)
		data := (s.pattern >> shift) & 0x0F
		pat := uint8(data & 0x03)
		if pat == 0 {
			continue
		}
		return pat, uint8((data >> 2) & 0x03), s.priority, int(s.index)
	}
	return 0, 0, 0, -1
}

func (p *PPU) paletteColor(pixel uint8) uint32 {
	return palette[p.readPalette(0x3F00+uint16(pixel))&0x3F]
}

func (p *PPU) renderPixel(c *Console) {
	x := p.Cycle - 1
	y := p.Scanline
	if x < 0 || x >= 256 || y < 0 || y >= 240 {
		return
	}
	bgPattern, bgAttr := p.backgroundPixel()
	if x < 8 && p.mask&maskShowBgLeft == 0 {
		bgPattern = 0
	}
	spPattern, spAttr, spPriority, spIndex := p.spritePixel(x)
	if x < 8 && p.mask&maskShowSpriteLeft == 0 {
		spPattern = 0
	}

	var pixel uint8
	switch {
	case bgPattern == 0 && spPattern == 0:
		pixel = 0
	case bgPattern == 0:
		pixel = 0x10 + spAttr<<2 + spPattern
	case spPattern == 0:
		pixel = bgAttr<<2 + bgPattern
	default:
		if spIndex == 0 && p.sprite0Visible && x != 255 {
			p.status |= statusSprite0Hit
		}
		if spPriority == 0 {
			pixel = 0x10 + spAttr<<2 + spPattern
		} else {
			pixel = bgAttr<<2 + bgPattern
		}
	}

	rgb := p.paletteColor(pixel)
	p.back.Set(x, y, rgbaFromPalette(rgb))
}

func rgbaFromPalette(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}

// -- main clock --

// step advances the PPU by one PPU clock tick. Timing follows the
// 341-cycle/262-scanline grid with the odd-frame one-cycle skip; the
// background pipeline fetches two tiles ahead of where it draws, cycle 257
// copies horizontal scroll, cycles 280-304 on the pre-render line copy
// vertical scroll, and the post-render/vblank lines drive NMI delivery.
func (p *PPU) step(c *Console) {
	renderingOn := p.renderingEnabled()

	if p.nmiDelay > 0 {
		p.nmiDelay--
		if p.nmiDelay == 0 && p.nmiOutput && p.nmiOccurred {
			c.cpu.triggerNMI()
		}
	}

	if m := c.mapper; m != nil {
		if m.Step(c.ppuState()) {
			c.cpu.triggerIRQ()
		}
	}

	visibleLine := p.Scanline < 240
	preRenderLine := p.Scanline == 261
	fetchCycle := (p.Cycle >= 1 && p.Cycle <= 256) || (p.Cycle >= 321 && p.Cycle <= 336)

	if visibleLine && p.Cycle >= 1 && p.Cycle <= 256 {
		p.renderPixel(c)
	}

	if renderingOn && (visibleLine || preRenderLine) && fetchCycle {
		p.tileData <<= 4
		p.runBackgroundFetchStep(c)
	}

	if renderingOn && visibleLine && p.Cycle == 256 {
		p.incrementY()
	}
	if renderingOn && p.Cycle == 257 {
		p.copyX()
	}
	if visibleLine && p.Cycle == 257 {
		p.evaluateSprites(c, p.Scanline)
	}
	if renderingOn && preRenderLine && p.Cycle >= 280 && p.Cycle <= 304 {
		p.copyY()
	}

	if p.Scanline == 241 && p.Cycle == 1 {
		p.front, p.back = p.back, p.front
		p.status |= statusVBlank
		p.nmiOccurred = true
		if p.nmiOutput {
			p.nmiDelay = 15
		}
	}
	if preRenderLine && p.Cycle == 1 {
		p.status &^= statusVBlank | statusSprite0Hit | statusSpriteOverflow
		p.nmiOccurred = false
	}

	p.tick(renderingOn)
}

// runBackgroundFetchStep performs the 8-cycle name/attribute/pattern fetch
// sequence, loading the finished tile into the low bits of the shift
// register on the cycle that completes it.
func (p *PPU) runBackgroundFetchStep(c *Console) {
	switch p.Cycle % 8 {
	case 1:
		p.fetchNameByte(c)
	case 3:
		p.fetchAttrByte(c)
	case 5:
		p.fetchTileLow(c)
	case 7:
		p.fetchTileHigh(c)
	case 0:
		p.loadShift()
		p.incrementX()
	}
}

func (p *PPU) tick(renderingOn bool) {
	if p.oddFrame && p.Scanline == 261 && p.Cycle == 339 && renderingOn {
		p.Cycle = 0
		p.Scanline = 0
		p.Frame++
		p.oddFrame = !p.oddFrame
		return
	}
	p.Cycle++
	if p.Cycle > 340 {
		p.Cycle = 0
		p.Scanline++
		if p.Scanline > 261 {
			p.Scanline = 0
			p.Frame++
			p.oddFrame = !p.oddFrame
		}
	}
}
