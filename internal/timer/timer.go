// Package timer provides an implementation of the Game Boy timer. It
// is used to generate interrupts at a specific frequency. The
// frequency can be configured using the types.TAC register.
package timer

import (
	"github.com/croakmoor/dotmatrix/internal/interrupts"
	"github.com/croakmoor/dotmatrix/internal/types"
)

// bits maps the two TAC clock select bits to the divider bit the timer
// follows.
//
//	00 = bit 9 (4096 Hz)
//	01 = bit 3 (262144 Hz)
//	10 = bit 5 (65536 Hz)
//	11 = bit 7 (16384 Hz)
var bits = [4]uint16{512, 8, 32, 128}

// Controller is a timer controller. TIMA increments on the falling
// edge of an internal signal derived from the divider, so writes to
// DIV and TAC can themselves produce increments.
type Controller struct {
	internalDiv uint16
	currentBit  uint16
	lastBit     bool

	tima    uint8
	tma     uint8
	tac     uint8
	enabled bool

	overflow           bool
	ticksSinceOverflow uint8

	irq *interrupts.Service
}

// NewController returns a new timer controller.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{
		irq:        irq,
		currentBit: bits[0],
		tac:        0xF8,
	}
}

// Tick advances the timer by the given number of T-cycles.
func (c *Controller) Tick(cycles uint8) {
	for i := uint8(0); i < cycles; i++ {
		c.internalDiv++
		c.updateEdge()

		if c.overflow {
			c.ticksSinceOverflow++

			switch c.ticksSinceOverflow {
			case 4:
				c.irq.Request(interrupts.TimerFlag)
			case 5:
				c.tima = c.tma
			case 6:
				c.overflow = false
				c.ticksSinceOverflow = 0
			}
		}
	}
}

// updateEdge recomputes the timer input signal and increments TIMA on
// a falling edge. The signal is the selected divider bit gated by the
// enable bit, so disabling the timer or resetting the divider while
// the bit is high also counts as an edge.
func (c *Controller) updateEdge() {
	newBit := c.enabled && c.internalDiv&c.currentBit != 0
	if !newBit && c.lastBit {
		c.incrementTIMA()
	}
	c.lastBit = newBit
}

// incrementTIMA increments the timer counter. On overflow TIMA holds 0
// for 4 T-cycles before the interrupt is requested and the counter is
// reloaded from TMA.
func (c *Controller) incrementTIMA() {
	c.tima++
	if c.tima == 0 {
		c.overflow = true
		c.ticksSinceOverflow = 0
	}
}

// Read returns the value of the given timer register.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.DIV:
		return uint8(c.internalDiv >> 8)
	case types.TIMA:
		return c.tima
	case types.TMA:
		return c.tma
	case types.TAC:
		return c.tac | 0xF8
	}
	return 0xFF
}

// Write writes the value to the given timer register.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.DIV:
		// any write resets the whole counter, which can itself drop
		// the timer signal
		c.internalDiv = 0
		c.updateEdge()
	case types.TIMA:
		// writes are ignored on the tick TIMA reloads
		if c.ticksSinceOverflow != 5 {
			c.tima = value
			c.overflow = false
			c.ticksSinceOverflow = 0
		}
	case types.TMA:
		c.tma = value
		// a write on the reload tick propagates straight into TIMA
		if c.ticksSinceOverflow == 5 {
			c.tima = value
		}
	case types.TAC:
		c.tac = value
		c.currentBit = bits[value&0b11]
		c.enabled = value&0x04 == 0x04
		c.updateEdge()
	}
}

// SetDivider sets the divider counter directly, bypassing the reset a
// bus write performs. Used to apply post-boot values.
func (c *Controller) SetDivider(value uint16) {
	c.internalDiv = value
	c.lastBit = c.enabled && c.internalDiv&c.currentBit != 0
}

// Divider returns the current value of the internal divider counter.
func (c *Controller) Divider() uint16 {
	return c.internalDiv
}

var _ types.Stater = (*Controller)(nil)

// Load loads the state of the controller.
func (c *Controller) Load(s *types.State) {
	c.internalDiv = s.Read16()
	c.tima = s.Read8()
	c.tma = s.Read8()
	c.tac = s.Read8()

	c.enabled = s.ReadBool()
	c.currentBit = s.Read16()
	c.lastBit = s.ReadBool()
	c.overflow = s.ReadBool()
	c.ticksSinceOverflow = s.Read8()
}

// Save saves the state of the controller.
func (c *Controller) Save(s *types.State) {
	s.Write16(c.internalDiv)
	s.Write8(c.tima)
	s.Write8(c.tma)
	s.Write8(c.tac)

	s.WriteBool(c.enabled)
	s.Write16(c.currentBit)
	s.WriteBool(c.lastBit)
	s.WriteBool(c.overflow)
	s.Write8(c.ticksSinceOverflow)
}
