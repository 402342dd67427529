// Package ram provides the fixed-size RAM blocks backing the work,
// video, object attribute and high RAM regions of the bus.
package ram

import "github.com/croakmoor/dotmatrix/internal/types"

// RAM represents a block of RAM. Addresses are relative to the start
// of the block; the bus translates absolute addresses before calling.
type RAM struct {
	data []uint8
}

// New returns a new RAM block of the given size.
func New(size uint32) *RAM {
	return &RAM{
		data: make([]uint8, size),
	}
}

// Read returns the value at the given address.
func (r *RAM) Read(address uint16) uint8 {
	return r.data[address]
}

// Write writes the value to the given address.
func (r *RAM) Write(address uint16, value uint8) {
	r.data[address] = value
}

var _ types.Stater = (*RAM)(nil)

// Load restores the block contents from the state.
func (r *RAM) Load(s *types.State) {
	s.ReadData(r.data)
}

// Save writes the block contents to the state.
func (r *RAM) Save(s *types.State) {
	s.WriteData(r.data)
}
