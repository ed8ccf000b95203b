package mapper

// mmc1 implements mapper 1. Writes to $8000-$FFFF load a 5-bit serial shift
// register one bit at a time (bit 0 of each write); the fifth write commits
// the shifted value into one of four internal registers selected by the
// target sub-range. Any write with bit 7 set resets the shift register and
// forces PRG mode 3 (control bits 2-3 = 0b11).
type mmc1 struct {
	cart *Cartridge

	shift      uint8
	shiftCount uint8

	control uint8 // mirroring (0-1), prg mode (2-3), chr mode (4)
	chr0    uint8
	chr1    uint8
	prg     uint8

	prgOffsets [2]int
	chrOffsets [2]int

	prgBanks int
	chrBanks int
}

func newMMC1(cart *Cartridge) *mmc1 {
	m := &mmc1{cart: cart, prgBanks: prgBanks16k(cart), chrBanks: chrBanks8k(cart) * 2}
	m.Reset()
	return m
}

func (m *mmc1) Reset() {
	m.shift = 0x10
	m.shiftCount = 0
	m.control = 0x0C
	m.chr0, m.chr1, m.prg = 0, 0, 0
	m.updateOffsets()
}

// prgBankOffset returns the byte offset of PRG bank index in banks of size
// bytes (16KiB or 32KiB at the call sites). Indices >= 0x80 are treated as
// signed negatives, and negative indices count from the end of PRG.
func prgBankOffset(banks16k int, index int, size int) int {
	if index >= 0x80 {
		index -= 0x100
	}
	numBanks := (banks16k * 0x4000) / size
	index %= numBanks
	if index < 0 {
		index += numBanks
	}
	return index * size
}

func chrBankOffset(chrLen int, index int, size int) int {
	if index >= 0x80 {
		index -= 0x100
	}
	numBanks := chrLen / size
	if numBanks == 0 {
		return 0
	}
	index %= numBanks
	if index < 0 {
		index += numBanks
	}
	return index * size
}

func (m *mmc1) updateOffsets() {
	switch (m.control >> 2) & 0x03 {
	case 0, 1:
		m.prgOffsets[0] = prgBankOffset(m.prgBanks, int(m.prg&0xFE)>>1, 0x8000)
		m.prgOffsets[1] = m.prgOffsets[0] + 0x4000
	case 2:
		m.prgOffsets[0] = 0
		m.prgOffsets[1] = prgBankOffset(m.prgBanks, int(m.prg), 0x4000)
	case 3:
		m.prgOffsets[0] = prgBankOffset(m.prgBanks, int(m.prg), 0x4000)
		m.prgOffsets[1] = prgBankOffset(m.prgBanks, m.prgBanks-1, 0x4000)
	}

	chrLen := len(m.cart.CHR)
	if (m.control>>4)&0x01 == 0 {
		off := chrBankOffset(chrLen, int(m.chr0&0xFE)>>1, 0x2000)
		m.chrOffsets[0] = off
		m.chrOffsets[1] = off + 0x1000
	} else {
		m.chrOffsets[0] = chrBankOffset(chrLen, int(m.chr0), 0x1000)
		m.chrOffsets[1] = chrBankOffset(chrLen, int(m.chr1), 0x1000)
	}
}

func (m *mmc1) writeControl(val uint8) {
	m.control = val & 0x1F
	switch m.control & 0x03 {
	case 0:
		m.cart.Mirror = MirrorSingle0
	case 1:
		m.cart.Mirror = MirrorSingle1
	case 2:
		m.cart.Mirror = MirrorVertical
	case 3:
		m.cart.Mirror = MirrorHorizontal
	}
	m.updateOffsets()
}

func (m *mmc1) loadRegister(addr uint16, val uint8) {
	switch {
	case addr <= 0x9FFF:
		m.writeControl(val)
	case addr <= 0xBFFF:
		m.chr0 = val
		m.updateOffsets()
	case addr <= 0xDFFF:
		m.chr1 = val
		m.updateOffsets()
	default:
		m.prg = val & 0x0F
		m.updateOffsets()
	}
}

func (m *mmc1) Read(addr uint16) uint8 {
	switch {
	case addr < 0x1000:
		return m.cart.CHR[m.chrOffsets[0]+int(addr)]
	case addr < 0x2000:
		return m.cart.CHR[m.chrOffsets[1]+int(addr-0x1000)]
	case addr < 0x6000:
		return 0
	case addr < 0x8000:
		return m.cart.SRAM[addr-0x6000]
	case addr < 0xC000:
		return m.cart.PRG[m.prgOffsets[0]+int(addr-0x8000)]
	default:
		return m.cart.PRG[m.prgOffsets[1]+int(addr-0xC000)]
	}
}

func (m *mmc1) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x1000:
		if m.cart.CHRIsRAM {
			m.cart.CHR[m.chrOffsets[0]+int(addr)] = val
		}
	case addr < 0x2000:
		if m.cart.CHRIsRAM {
			m.cart.CHR[m.chrOffsets[1]+int(addr-0x1000)] = val
		}
	case addr < 0x6000:
	case addr < 0x8000:
		m.cart.SRAM[addr-0x6000] = val
	default:
		if val&0x80 != 0 {
			m.shift = 0x10
			m.shiftCount = 0
			m.writeControl(m.control | 0x0C)
			return
		}
		m.shift = (m.shift >> 1) | ((val & 0x01) << 4)
		m.shiftCount++
		if m.shiftCount == 5 {
			m.loadRegister(addr, m.shift&0x1F)
			m.shift = 0x10
			m.shiftCount = 0
		}
	}
}

func (m *mmc1) Step(PPUState) bool { return false }
