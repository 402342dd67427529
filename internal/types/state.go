package types

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash"
)

// State is an append-only byte buffer that components serialize
// themselves into, used to save and load console states between runs.
// Components must read fields back in exactly the order they wrote
// them.
type State struct {
	raw          []byte // raw state data (for serialization)
	readPosition int    // current read position
}

// Stater is implemented by components that can be saved to and
// loaded from a State.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new empty state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0),
	}
}

// StateFromBytes creates a state that reads from the given bytes.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
}

func (s *State) Write32(value uint32) {
	s.raw = append(s.raw, byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
}

func (s *State) Write64(value uint64) {
	s.raw = append(s.raw, byte(value), byte(value>>8), byte(value>>16), byte(value>>24),
		byte(value>>32), byte(value>>40), byte(value>>48), byte(value>>56))
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
}

func (s *State) Read8() uint8 {
	value := s.raw[s.readPosition]
	s.readPosition++
	return value
}

func (s *State) Read16() uint16 {
	value := uint16(s.raw[s.readPosition]) | uint16(s.raw[s.readPosition+1])<<8
	s.readPosition += 2
	return value
}

func (s *State) Read32() uint32 {
	value := uint32(s.raw[s.readPosition]) | uint32(s.raw[s.readPosition+1])<<8 |
		uint32(s.raw[s.readPosition+2])<<16 | uint32(s.raw[s.readPosition+3])<<24
	s.readPosition += 4
	return value
}

func (s *State) Read64() uint64 {
	value := uint64(s.Read32()) | uint64(s.Read32())<<32
	return value
}

func (s *State) ReadBool() bool {
	value := s.raw[s.readPosition] != 0
	s.readPosition++
	return value
}

func (s *State) ReadData(p []byte) {
	copy(p, s.raw[s.readPosition:])
	s.readPosition += len(p)
}

// Seal appends an xxhash64 digest of the payload written so far.
// A sealed state detects truncation and corruption on import.
func (s *State) Seal() {
	s.Write64(xxhash.Sum64(s.raw))
}

// Verify checks the digest appended by Seal. It must be called
// before any component reads from the state.
func (s *State) Verify() error {
	if len(s.raw) < 8 {
		return fmt.Errorf("state too short to carry a digest: %d bytes", len(s.raw))
	}
	payload := s.raw[:len(s.raw)-8]
	footer := s.raw[len(s.raw)-8:]
	var want uint64
	for i := 7; i >= 0; i-- {
		want = want<<8 | uint64(footer[i])
	}
	if got := xxhash.Sum64(payload); got != want {
		return fmt.Errorf("state digest mismatch: got %016x, want %016x", got, want)
	}
	return nil
}

// SaveToFile writes the raw state to the given file.
func (s *State) SaveToFile(filename string) error {
	return os.WriteFile(filename, s.raw, 0644)
}

// Bytes returns the raw state data.
func (s *State) Bytes() []byte {
	return s.raw
}
