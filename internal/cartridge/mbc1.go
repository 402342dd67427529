package cartridge

import "github.com/croakmoor/dotmatrix/internal/types"

// MemoryBankedCartridge1 represents a MBC1 cartridge. The controller
// combines a 5-bit and a 2-bit bank register into the ROM bank number;
// in RAM banking mode the 2-bit register selects the RAM bank instead.
type MemoryBankedCartridge1 struct {
	rom     []byte
	romBank uint32

	ram        []byte
	ramBank    uint32
	ramEnabled bool

	// romBanking selects how the 2-bit bank register is applied. When
	// set it extends the ROM bank number and RAM is fixed to bank 0.
	romBanking bool

	header *Header
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func NewMemoryBankedCartridge1(rom []byte, header *Header) *MemoryBankedCartridge1 {
	return &MemoryBankedCartridge1{
		rom:        rom,
		romBank:    1,
		ram:        make([]byte, header.RAMSize),
		romBanking: true,
		header:     header,
	}
}

// Read returns the value from the cartridges ROM or RAM, depending on
// the bank selected.
func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address] // bank 0 is always fixed
	case address < 0x8000:
		return m.rom[uint32(address-0x4000)+m.romBank*0x4000] // switchable bank
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			return m.ram[m.ramOffset(address)]
		}
		return 0xFF // disabled or absent RAM reads as open bus
	}
	return 0xFF
}

// Write attempts to switch the ROM or RAM bank.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		// ROM bank number (lower 5 bits)
		m.setROMBank((m.romBank & 0x60) | uint32(value&0x1F))
	case address < 0x6000:
		if m.romBanking {
			// ROM bank number (upper 2 bits)
			m.setROMBank((m.romBank & 0x1F) | uint32(value&0x03)<<5)
		} else {
			m.ramBank = uint32(value) & 0x03
			if len(m.ram) == 0 {
				m.ramBank = 0
			} else if m.ramBank*0x2000 >= uint32(len(m.ram)) {
				m.ramBank %= uint32(len(m.ram)) / 0x2000
			}
		}
	case address < 0x8000:
		// ROM/RAM mode select
		m.romBanking = value&0x01 == 0x00
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			m.ram[m.ramOffset(address)] = value
		}
	}
}

// setROMBank applies the bank 0 quirk and wraps the bank to the
// populated ROM size. A lower-5-bit value of 0 always selects the next
// bank up, so banks 0x00, 0x20, 0x40 and 0x60 are unreachable.
func (m *MemoryBankedCartridge1) setROMBank(bank uint32) {
	if bank&0x1F == 0 {
		bank++
	}
	if bank*0x4000 >= uint32(len(m.rom)) {
		bank %= uint32(len(m.rom)) / 0x4000
	}
	m.romBank = bank
}

// ramOffset translates a RAM window address. In ROM banking mode the
// RAM is fixed to bank 0.
func (m *MemoryBankedCartridge1) ramOffset(address uint16) uint32 {
	if m.romBanking {
		return uint32(address & 0x1FFF)
	}
	return m.ramBank*0x2000 + uint32(address&0x1FFF)
}

// Header returns the parsed cartridge header.
func (m *MemoryBankedCartridge1) Header() *Header {
	return m.header
}

// Title returns the title of the game.
func (m *MemoryBankedCartridge1) Title() string {
	return m.header.Title
}

// RAM returns a copy of the external RAM.
func (m *MemoryBankedCartridge1) RAM() []byte {
	data := make([]byte, len(m.ram))
	copy(data, m.ram)
	return data
}

// LoadRAM restores the external RAM from previously saved data.
func (m *MemoryBankedCartridge1) LoadRAM(data []byte) {
	copy(m.ram, data)
}

var _ types.Stater = (*MemoryBankedCartridge1)(nil)

func (m *MemoryBankedCartridge1) Load(s *types.State) {
	m.romBank = s.Read32()
	s.ReadData(m.ram)
	m.ramBank = s.Read32()
	m.ramEnabled = s.ReadBool()
	m.romBanking = s.ReadBool()
}

func (m *MemoryBankedCartridge1) Save(s *types.State) {
	s.Write32(m.romBank)
	s.WriteData(m.ram)
	s.Write32(m.ramBank)
	s.WriteBool(m.ramEnabled)
	s.WriteBool(m.romBanking)
}
