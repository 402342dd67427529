package cpu

import (
	"fmt"

	"github.com/croakmoor/dotmatrix/pkg/utils"
)

// testBit tests the bit at the given position in the given value.
//
//	BIT n, r
//	n = 0-7
//	r = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if bit n of Register r is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(value uint8, position uint8) {
	c.shouldZeroFlag((value >> position) & 0x01)
	c.clearFlag(FlagSubtract)
	c.setFlag(FlagHalfCarry)
}

func init() {
	generateBitInstructions()
}

// generateBitInstructions generates the CB-prefixed BIT, RES, and SET
// instructions.
//
// The instructions are generated in the following format:
//
//	0x40 BIT 0, B
//	0x41 BIT 0, C
//	...
//	0xFF SET 7, A
func generateBitInstructions() {
	// Loop through each bit
	for bit := uint8(0); bit <= 7; bit++ {
		// Loop through each register
		for reg := uint8(0); reg <= 7; reg++ {
			currentBit := bit
			if reg == 6 {
				// (HL) is not a register, it's the memory address
				// pointed to by HL, so it needs a bus access

				// BIT
				DefineInstructionCB(0x40+bit*8+reg, fmt.Sprintf("BIT %d, (HL)", bit), func(c *CPU) {
					c.testBit(c.readByte(c.HL.Uint16()), currentBit)
				})

				// RES
				DefineInstructionCB(0x80+bit*8+reg, fmt.Sprintf("RES %d, (HL)", bit), func(c *CPU) {
					c.writeByte(
						c.HL.Uint16(),
						utils.ClearBit(c.readByte(c.HL.Uint16()), currentBit),
					)
				})

				// SET
				DefineInstructionCB(0xC0+bit*8+reg, fmt.Sprintf("SET %d, (HL)", bit), func(c *CPU) {
					c.writeByte(
						c.HL.Uint16(),
						utils.SetBit(c.readByte(c.HL.Uint16()), currentBit),
					)
				})
				continue
			}

			register := reg

			// Create BIT instruction
			DefineInstructionCB(0x40+bit*8+reg, fmt.Sprintf("BIT %d, %s", bit, registerNameMap[register]), func(c *CPU) {
				c.testBit(*c.registerPointer(register), currentBit)
			})

			// Create RES instruction
			DefineInstructionCB(0x80+bit*8+reg, fmt.Sprintf("RES %d, %s", bit, registerNameMap[register]), func(c *CPU) {
				*c.registerPointer(register) = utils.ClearBit(*c.registerPointer(register), currentBit)
			})

			// Create SET instruction
			DefineInstructionCB(0xC0+bit*8+reg, fmt.Sprintf("SET %d, %s", bit, registerNameMap[register]), func(c *CPU) {
				*c.registerPointer(register) = utils.SetBit(*c.registerPointer(register), currentBit)
			})
		}
	}
}
