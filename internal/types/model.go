package types

import (
	"strings"
)

type Model int // The Model used in emulation.

const (
	Unset Model = iota // Unset - Model hasn't been set - behaves as DMGABC
	DMG0               // DMG0 - early Game Boy, only released in Japan
	DMGABC             // DMGABC - Standard Game Boy
	MGB                // MGB - Pocket Game Boy
)

var ModelNames = map[Model]string{
	Unset:  "Unset",
	DMG0:   "DMG0",
	DMGABC: "DMG",
	MGB:    "MGB",
}

// StringToModel converts a string to a Model.
func StringToModel(s string) Model {
	for m, n := range ModelNames {
		if n == strings.ToUpper(s) {
			return m
		}
	}

	return Unset
}

func (m Model) String() string {
	return ModelNames[m]
}

// ModelIO - model specific starting IO registers.
var ModelIO = map[Model]map[HardwareAddress]interface{}{
	Unset:  {DIV: uint16(0xABC9)},
	DMG0:   {DIV: uint16(0x182F), LY: uint8(0x92)},
	DMGABC: {DIV: uint16(0xABC9)},
	MGB:    {DIV: uint16(0xABC9)},
}

// ModelRegisters - model specific starting CPU registers, in the
// order A, F, B, C, D, E, H, L.
var ModelRegisters = map[Model][]uint8{
	Unset:  {0x01, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D}, // default to DMG registers
	DMG0:   {0x01, 0x00, 0xFF, 0x13, 0x00, 0xC1, 0x84, 0x03},
	DMGABC: {0x01, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D},
	MGB:    {0xFF, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D},
}

// CommonIO - common starting IO registers.
var CommonIO = map[HardwareAddress]interface{}{
	P1:   uint8(0xCF),
	TAC:  uint8(0xF8),
	NR10: uint8(0x80),
	NR11: uint8(0xBF),
	NR12: uint8(0xF3),
	NR14: uint8(0x00),
	NR21: uint8(0x3F),
	NR22: uint8(0x00),
	NR24: uint8(0xBF),
	NR30: uint8(0x7F),
	NR31: uint8(0xFF),
	NR32: uint8(0x9F),
	NR33: uint8(0xBF),
	NR41: uint8(0xFF),
	NR42: uint8(0x00),
	NR43: uint8(0x00),
	NR50: uint8(0x77),
	NR51: uint8(0xF3),
	NR52: uint8(0xF1),
	BGP:  uint8(0xFC),
	LCDC: uint8(0x91),
	IF:   uint8(0xE1),
	STAT: uint8(0x87),
}
