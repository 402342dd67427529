// Package cartridge provides the cartridge side of the memory bus: the
// game ROM, any external RAM, and the memory bank controller that maps
// them into the 0x0000 - 0x7FFF and 0xA000 - 0xBFFF windows.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/croakmoor/dotmatrix/internal/types"
)

var (
	// ErrROMTooSmall is returned when the image is too short to hold a
	// header.
	ErrROMTooSmall = errors.New("cartridge: image too small to hold a header")
	// ErrSizeMismatch is returned when the ROM size declared in the
	// header does not match the length of the image.
	ErrSizeMismatch = errors.New("cartridge: declared ROM size does not match image length")
	// ErrUnsupportedType is returned when the header declares a mapper
	// that this package does not implement.
	ErrUnsupportedType = errors.New("cartridge: unsupported cartridge type")
)

// Cartridge represents a game cartridge. Reads and writes cover the ROM
// windows and the external RAM window; writes to the ROM windows drive
// the bank controller rather than memory.
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	Header() *Header
	Title() string

	types.Stater
}

// Battery is implemented by cartridges whose external RAM can be
// persisted by the host. Whether the contents actually survive
// power-off is decided by Header.HasBattery.
type Battery interface {
	RAM() []byte
	LoadRAM(data []byte)
}

// New parses the header of the given image and returns the cartridge it
// describes. The image is rejected if it is too short to hold a header,
// if its length disagrees with the ROM size the header declares, or if
// the declared mapper is not implemented.
func New(rom []byte) (Cartridge, error) {
	if len(rom) < 0x150 {
		return nil, fmt.Errorf("%w: %d bytes", ErrROMTooSmall, len(rom))
	}

	header := parseHeader(rom[0x100:0x150])
	if int(header.ROMSize) != len(rom) {
		return nil, fmt.Errorf("%w: declared %d bytes, image is %d", ErrSizeMismatch, header.ROMSize, len(rom))
	}

	switch header.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		return NewROMCartridge(rom, &header), nil
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return NewMemoryBankedCartridge1(rom, &header), nil
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		return NewMemoryBankedCartridge3(rom, &header), nil
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return NewMemoryBankedCartridge5(rom, &header), nil
	}

	return nil, fmt.Errorf("%w: 0x%02X", ErrUnsupportedType, uint8(header.CartridgeType))
}
