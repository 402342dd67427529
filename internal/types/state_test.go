package types

import (
	"os"
	"path/filepath"
	"testing"
)

func TestState_RoundTrip(t *testing.T) {
	s := NewState()
	s.Write8(0x12)
	s.Write16(0x3456)
	s.Write32(0x789ABCDE)
	s.Write64(0x0123456789ABCDEF)
	s.WriteBool(true)
	s.WriteData([]byte{0xAA, 0xBB, 0xCC})

	// fields are stored little endian
	if b := s.Bytes(); b[1] != 0x56 || b[2] != 0x34 {
		t.Errorf("expected little endian layout, got % 02X", b[1:3])
	}

	if got := s.Read8(); got != 0x12 {
		t.Errorf("expected 0x12, got 0x%02X", got)
	}
	if got := s.Read16(); got != 0x3456 {
		t.Errorf("expected 0x3456, got 0x%04X", got)
	}
	if got := s.Read32(); got != 0x789ABCDE {
		t.Errorf("expected 0x789ABCDE, got 0x%08X", got)
	}
	if got := s.Read64(); got != 0x0123456789ABCDEF {
		t.Errorf("expected 0x0123456789ABCDEF, got 0x%016X", got)
	}
	if !s.ReadBool() {
		t.Error("expected true")
	}
	buf := make([]byte, 3)
	s.ReadData(buf)
	if buf[0] != 0xAA || buf[1] != 0xBB || buf[2] != 0xCC {
		t.Errorf("expected AA BB CC, got % 02X", buf)
	}
}

func TestState_SealVerify(t *testing.T) {
	s := NewState()
	s.Write32(0xDEADBEEF)
	s.Seal()

	if err := s.Verify(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("Corrupted", func(t *testing.T) {
		raw := append([]byte(nil), s.Bytes()...)
		raw[0] ^= 0xFF

		if err := StateFromBytes(raw).Verify(); err == nil {
			t.Error("expected a digest mismatch")
		}
	})
	t.Run("Truncated", func(t *testing.T) {
		if err := StateFromBytes([]byte{0x01}).Verify(); err == nil {
			t.Error("expected an error for a state too short to carry a digest")
		}
	})
}

func TestState_SaveToFile(t *testing.T) {
	s := NewState()
	s.Write16(0x1234)

	path := filepath.Join(t.TempDir(), "state.bin")
	if err := s.SaveToFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := StateFromBytes(raw).Read16(); got != 0x1234 {
		t.Errorf("expected 0x1234, got 0x%04X", got)
	}
}
