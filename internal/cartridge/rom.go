package cartridge

import "github.com/croakmoor/dotmatrix/internal/types"

// ROMCartridge represents a cartridge with no bank controller. The ROM
// occupies 0x0000 - 0x7FFF as-is; the plain-RAM variants map their RAM
// straight into 0xA000 - 0xBFFF.
type ROMCartridge struct {
	rom []byte
	ram []byte

	header *Header
}

// NewROMCartridge returns a new ROM cartridge.
func NewROMCartridge(rom []byte, header *Header) *ROMCartridge {
	return &ROMCartridge{
		rom:    rom,
		ram:    make([]byte, header.RAMSize),
		header: header,
	}
}

// Read returns the value at the given address.
func (r *ROMCartridge) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return r.rom[address]
	case address >= 0xA000 && address < 0xC000:
		if len(r.ram) > 0 {
			return r.ram[address&0x1FFF]
		}
	}
	return 0xFF
}

// Write writes the value to the given address. The ROM ignores writes;
// only the RAM window is backed.
func (r *ROMCartridge) Write(address uint16, value uint8) {
	if address >= 0xA000 && address < 0xC000 && len(r.ram) > 0 {
		r.ram[address&0x1FFF] = value
	}
}

// Header returns the parsed cartridge header.
func (r *ROMCartridge) Header() *Header {
	return r.header
}

// Title returns the title of the game.
func (r *ROMCartridge) Title() string {
	return r.header.Title
}

// RAM returns a copy of the external RAM.
func (r *ROMCartridge) RAM() []byte {
	data := make([]byte, len(r.ram))
	copy(data, r.ram)
	return data
}

// LoadRAM restores the external RAM from previously saved data.
func (r *ROMCartridge) LoadRAM(data []byte) {
	copy(r.ram, data)
}

var _ types.Stater = (*ROMCartridge)(nil)

func (r *ROMCartridge) Load(s *types.State) {
	s.ReadData(r.ram)
}

func (r *ROMCartridge) Save(s *types.State) {
	s.WriteData(r.ram)
}
