// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/croakmoor/dotmatrix/internal/interrupts"
	"github.com/croakmoor/dotmatrix/internal/types"
	"github.com/croakmoor/dotmatrix/pkg/utils"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// State represents the state of the joypad. Select either the action
// or direction keys by writing to the register, then read bits 0-3 to
// get the state of the selected keys.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// State holds the pressed buttons, action keys in the lower
	// nibble and direction keys in the upper. Unlike the register
	// readback, a 1 here means pressed; the nibble is inverted on
	// the way out.
	State Button

	// p1 holds the select bits last written to the register.
	p1 uint8

	irq *interrupts.Service
}

// New returns a new joypad state.
func New(irq *interrupts.Service) *State {
	return &State{
		p1:  0x30, // neither key group selected
		irq: irq,
	}
}

// Read returns the value of the joypad register. The select bits read
// back as written; the key bits reflect whichever groups they select.
func (s *State) Read(address uint16) uint8 {
	value := 0xC0 | s.p1&0x30

	var pressed uint8
	if s.p1&types.Bit4 == 0 {
		pressed |= s.State >> 4
	}
	if s.p1&types.Bit5 == 0 {
		pressed |= s.State & 0x0F
	}

	return value | (pressed^0x0F)&0x0F
}

// Write writes the value to the joypad register. Only the two select
// bits are writable.
func (s *State) Write(address uint16, value uint8) {
	s.p1 = value & 0x30
}

// Press presses a button and requests a joypad interrupt. The request
// is also what wakes a stopped console.
func (s *State) Press(button Button) {
	s.State = utils.SetBit(s.State, button)
	s.irq.Request(interrupts.JoypadFlag)
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.State = utils.ClearBit(s.State, button)
}

var _ types.Stater = (*State)(nil)

func (s *State) Load(st *types.State) {
	s.State = st.Read8()
	s.p1 = st.Read8()
}

func (s *State) Save(st *types.State) {
	st.Write8(s.State)
	st.Write8(s.p1)
}
