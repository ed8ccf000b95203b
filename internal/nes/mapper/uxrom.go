package mapper

// uxROM implements mapper 2 (UxROM) and, with a single fixed bank, mapper 0
// (NROM) — mirroring the teacher's note that "Mapper-0 is implemented by
// the Mapper-2 code path with fixed banks" (an NROM image has one or two
// 16KiB PRG banks, so banks is 1 or 2; prgHi is never written after Reset).
type uxROM struct {
	cart   *Cartridge
	prgLo  int
	prgHi  int
	banks  int
	chrRAM bool
}

func newUxROM(cart *Cartridge) *uxROM {
	m := &uxROM{cart: cart, banks: prgBanks16k(cart), chrRAM: cart.CHRIsRAM}
	m.Reset()
	return m
}

func (m *uxROM) Reset() {
	m.prgLo = 0
	m.prgHi = m.banks - 1
}

func (m *uxROM) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return m.cart.CHR[addr]
	case addr >= 0x8000 && addr <= 0xBFFF:
		return m.cart.PRG[m.prgLo*0x4000+int(addr&0x3FFF)]
	case addr >= 0xC000:
		return m.cart.PRG[m.prgHi*0x4000+int(addr&0x3FFF)]
	case addr >= 0x6000:
		return m.cart.SRAM[addr-0x6000]
	}
	return 0
}

func (m *uxROM) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		if m.chrRAM {
			m.cart.CHR[addr] = val
		}
	case addr >= 0x8000:
		m.prgLo = int(val) % m.banks
	case addr >= 0x6000:
		m.cart.SRAM[addr-0x6000] = val
	}
}

func (m *uxROM) Step(PPUState) bool { return false }
