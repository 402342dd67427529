// Package interrupts tracks the interrupt enable mask and request
// flags exposed through the IE and IF registers, and computes the
// highest-priority pending interrupt for the CPU to service.
package interrupts

import (
	"github.com/croakmoor/dotmatrix/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0), requested
	// by the video collaborator at the start of vertical blanking.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD STAT interrupt flag (bit 1), requested
	// when one of the STAT conditions is met.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2), requested
	// when TIMA overflows.
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3), requested
	// when a serial transfer completes.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt flag (bit 4), requested
	// when a selected input line goes low.
	JoypadFlag = types.Bit4
)

// Service is the interrupt service, used to request interrupts and
// to resolve the vector of the highest-priority pending one.
//
// When an interrupt is requested, the corresponding bit in the Flag
// register is set. When an interrupt is enabled, the corresponding
// bit in the Enable register is set. When an interrupt is both
// requested and enabled, and the CPU's IME is set, the CPU jumps to
// the interrupt vector and the Flag bit is cleared.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
}

// NewService returns a new Service.
func NewService() *Service {
	return &Service{}
}

// WriteFlag writes to the IF register. Only the low 5 bits are
// backed by hardware.
func (s *Service) WriteFlag(v uint8) {
	s.Flag = v & 0x1F
}

// ReadFlag reads the IF register. The upper 3 bits are always set.
func (s *Service) ReadFlag() uint8 {
	return s.Flag | 0xE0
}

// WriteEnable writes to the IE register. All 8 bits are stored and
// read back, though only the low 5 gate interrupts.
func (s *Service) WriteEnable(v uint8) {
	s.Enable = v
}

// ReadEnable reads the IE register.
func (s *Service) ReadEnable() uint8 {
	return s.Enable
}

// HasPending returns true if any interrupt is both requested and
// enabled.
func (s *Service) HasPending() bool {
	return s.Enable&s.Flag&0x1F != 0
}

// Requested returns true if any interrupt is requested, enabled or
// not. A halted CPU wakes on this condition alone.
func (s *Service) Requested() bool {
	return s.Flag&0x1F != 0
}

// Request requests the specified interrupt, by setting the
// corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag
}

// Vector returns the vector of the highest-priority interrupt that
// is both requested and enabled, clearing its Flag bit, or 0 if none
// is pending. Priority is fixed by bit index: VBlank first, Joypad
// last.
func (s *Service) Vector() uint16 {
	if s.Enable&s.Flag&0x1F == 0 {
		return 0
	}
	for i := uint8(0); i < 5; i++ {
		// get the flag for the current interrupt
		flag := uint8(1 << i)

		// check if the interrupt is requested and enabled
		if s.Flag&flag != 0 && s.Enable&flag != 0 {
			// clear the interrupt flag and return the vector
			s.Flag = s.Flag ^ flag
			return uint16(0x0040 + i*8)
		}
	}

	return 0
}

var _ types.Stater = (*Service)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
func (s *Service) Load(st *types.State) {
	s.Flag = st.Read8()
	s.Enable = st.Read8()
}

// Save implements the types.Stater interface.
//
// The values are saved in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
func (s *Service) Save(st *types.State) {
	st.Write8(s.Flag)
	st.Write8(s.Enable)
}
