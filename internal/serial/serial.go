// Package serial provides the serial port of the Game Boy. No link
// partner is modelled, so the line behaves as if no cable is plugged
// in: every incoming bit reads as 1.
package serial

import (
	"github.com/croakmoor/dotmatrix/internal/interrupts"
	"github.com/croakmoor/dotmatrix/internal/types"
)

// ticksPerBit is the number of T-cycles per transferred bit when the
// internal clock drives the line (8192 Hz).
const ticksPerBit = 512

// Controller is the serial controller. Before a transfer types.SB
// holds the byte to be sent; during one, each bit time shifts the
// outgoing bit out of the top and the incoming bit into the bottom,
// so by the end SB holds the received byte. With no partner attached
// that byte is always 0xFF.
type Controller struct {
	sb uint8
	sc uint8

	count  uint8  // bits transferred so far
	cycles uint16 // T-cycles accumulated toward the next bit

	transferRequest bool
	internalClock   bool

	irq *interrupts.Service
}

// NewController creates a new serial controller.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{
		irq: irq,
		sc:  0x7E,
	}
}

// Tick advances the serial clock by the given number of T-cycles. Only
// a transfer driven by the internal clock makes progress; waiting on an
// external clock with no partner attached blocks forever.
func (c *Controller) Tick(cycles uint8) {
	if !c.transferRequest || !c.internalClock {
		return
	}

	c.cycles += uint16(cycles)
	for c.cycles >= ticksPerBit {
		c.cycles -= ticksPerBit
		c.shiftBit()
		if !c.transferRequest {
			c.cycles = 0
			return
		}
	}
}

// shiftBit moves one bit out of and into the data register. The
// disconnected line reads high, so a 1 is shifted in.
func (c *Controller) shiftBit() {
	c.sb = c.sb<<1 | 1

	c.count++
	if c.count == 8 {
		c.count = 0
		c.transferRequest = false
		c.sc &^= types.Bit7
		c.irq.Request(interrupts.SerialFlag)
	}
}

// Read returns the value of the given serial register.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.SB:
		return c.sb
	case types.SC:
		return c.sc | 0x7E // bits 1-6 are always set
	}
	return 0xFF
}

// Write writes the value to the given serial register.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.SB:
		c.sb = value
	case types.SC:
		c.sc = value
		c.internalClock = value&types.Bit0 == types.Bit0

		if value&types.Bit7 == types.Bit7 && !c.transferRequest {
			c.transferRequest = true
			c.count = 0
			c.cycles = 0
		} else if value&types.Bit7 == 0 {
			c.transferRequest = false
		}
	}
}

var _ types.Stater = (*Controller)(nil)

// Load loads the state of the controller.
func (c *Controller) Load(s *types.State) {
	c.sb = s.Read8()
	c.sc = s.Read8()
	c.count = s.Read8()
	c.cycles = s.Read16()
	c.transferRequest = s.ReadBool()
	c.internalClock = s.ReadBool()
}

// Save saves the state of the controller.
func (c *Controller) Save(s *types.State) {
	s.Write8(c.sb)
	s.Write8(c.sc)
	s.Write8(c.count)
	s.Write16(c.cycles)
	s.WriteBool(c.transferRequest)
	s.WriteBool(c.internalClock)
}
