package cartridge

import "github.com/croakmoor/dotmatrix/internal/types"

// MemoryBankedCartridge5 represents a MBC5 cartridge. The 9-bit ROM
// bank register is split across two control windows and, unlike the
// earlier controllers, really can map bank 0 into the switchable
// window.
type MemoryBankedCartridge5 struct {
	rom     []byte
	romBank uint32

	ram        []byte
	ramBank    uint32
	ramEnabled bool

	header *Header
}

// NewMemoryBankedCartridge5 returns a new MemoryBankedCartridge5 cartridge.
func NewMemoryBankedCartridge5(rom []byte, header *Header) *MemoryBankedCartridge5 {
	return &MemoryBankedCartridge5{
		rom:     rom,
		romBank: 1,
		ram:     make([]byte, header.RAMSize),
		header:  header,
	}
}

// Read returns the value from the cartridges ROM or RAM, depending on
// the bank selected.
func (m *MemoryBankedCartridge5) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address] // bank 0 is always fixed
	case address < 0x8000:
		return m.rom[uint32(address&0x3FFF)+m.romBank*0x4000] // switchable bank
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			return m.ram[m.ramBank*0x2000+uint32(address&0x1FFF)]
		}
		return 0xFF
	}
	return 0xFF
}

// Write attempts to switch the ROM or RAM bank.
func (m *MemoryBankedCartridge5) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x3000:
		// ROM bank number (lower 8 bits)
		m.setROMBank((m.romBank & 0x100) | uint32(value))
	case address < 0x4000:
		// ROM bank number (9th bit)
		m.setROMBank((m.romBank & 0x0FF) | uint32(value&0x01)<<8)
	case address < 0x6000:
		m.ramBank = uint32(value) & 0x0F
		if len(m.ram) == 0 {
			m.ramBank = 0
		} else if m.ramBank*0x2000 >= uint32(len(m.ram)) {
			m.ramBank %= uint32(len(m.ram)) / 0x2000
		}
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			m.ram[m.ramBank*0x2000+uint32(address&0x1FFF)] = value
		}
	}
}

// setROMBank wraps the bank to the populated ROM size. There is no
// bank 0 quirk on this controller.
func (m *MemoryBankedCartridge5) setROMBank(bank uint32) {
	if bank*0x4000 >= uint32(len(m.rom)) {
		bank %= uint32(len(m.rom)) / 0x4000
	}
	m.romBank = bank
}

// Header returns the parsed cartridge header.
func (m *MemoryBankedCartridge5) Header() *Header {
	return m.header
}

// Title returns the title of the game.
func (m *MemoryBankedCartridge5) Title() string {
	return m.header.Title
}

// RAM returns a copy of the external RAM.
func (m *MemoryBankedCartridge5) RAM() []byte {
	data := make([]byte, len(m.ram))
	copy(data, m.ram)
	return data
}

// LoadRAM restores the external RAM from previously saved data.
func (m *MemoryBankedCartridge5) LoadRAM(data []byte) {
	copy(m.ram, data)
}

var _ types.Stater = (*MemoryBankedCartridge5)(nil)

func (m *MemoryBankedCartridge5) Load(s *types.State) {
	s.ReadData(m.ram)
	m.ramEnabled = s.ReadBool()
	m.romBank = s.Read32()
	m.ramBank = s.Read32()
}

func (m *MemoryBankedCartridge5) Save(s *types.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.ramEnabled)
	s.Write32(m.romBank)
	s.Write32(m.ramBank)
}
