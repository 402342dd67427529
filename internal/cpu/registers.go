package cpu

import "fmt"

// Register is a single 8-bit register.
type Register = uint8

// RegisterPair is a pair of 8-bit registers addressed as one 16-bit
// value, high byte first.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the value of the RegisterPair as a uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair from a uint16.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

// Registers contains the 8-bit registers of the CPU, and the 16-bit
// register pairs that alias them.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair
}

// registerNameMap maps an opcode-encoded register index to its
// mnemonic. Index 6 is the memory location addressed by HL.
var registerNameMap = []string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// registerPointer returns a pointer to the Register encoded by the
// given opcode index. Index 6 has no backing register and must be
// handled by the caller.
func (c *CPU) registerPointer(index uint8) *Register {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	panic(fmt.Sprintf("invalid register index: %d", index))
}
