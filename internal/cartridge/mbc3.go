package cartridge

import "github.com/croakmoor/dotmatrix/internal/types"

// rtcCyclesPerSecond is the number of T-cycles in one RTC second. The
// clock advances on emulated cycles rather than wall time so that runs
// are deterministic and save states resume exactly.
const rtcCyclesPerSecond = 4194304

// RTC represents the real time clock of an MBC3 cartridge. The live
// registers count while the halt bit is clear; the latched registers
// hold the values captured by the last latch sequence.
type RTC struct {
	Seconds              uint8
	Minutes              uint8
	Hours                uint8
	DaysLower            uint8
	DaysHigherAndControl uint8

	LatchedSeconds              uint8
	LatchedMinutes              uint8
	LatchedHours                uint8
	LatchedDaysLower            uint8
	LatchedDaysHigherAndControl uint8

	Register       uint8
	LatchFlagValue uint8
	Cycles         uint32
}

// Tick advances the clock by the given number of T-cycles. The halt
// bit freezes the counter entirely, sub-second progress included.
func (r *RTC) Tick(cycles uint8) {
	if r.DaysHigherAndControl&types.Bit6 != 0 {
		return
	}
	r.Cycles += uint32(cycles)
	for r.Cycles >= rtcCyclesPerSecond {
		r.Cycles -= rtcCyclesPerSecond
		r.advance()
	}
}

// advance rolls the live clock forward by one second. The counters are
// 6, 6, 5 and 9 bits wide; out of range values written by the game wrap
// around their field without carrying.
func (r *RTC) advance() {
	r.Seconds = (r.Seconds + 1) & 0x3F
	if r.Seconds != 60 {
		return
	}
	r.Seconds = 0
	r.Minutes = (r.Minutes + 1) & 0x3F
	if r.Minutes != 60 {
		return
	}
	r.Minutes = 0
	r.Hours = (r.Hours + 1) & 0x1F
	if r.Hours != 24 {
		return
	}
	r.Hours = 0
	days := (uint16(r.DaysHigherAndControl&types.Bit0)<<8 | uint16(r.DaysLower)) + 1
	r.DaysLower = uint8(days)
	r.DaysHigherAndControl &^= types.Bit0
	if days > 0x1FF {
		// day counter overflowed, the carry stays set until the game
		// clears it
		r.DaysHigherAndControl |= types.Bit7
	} else if days > 0xFF {
		r.DaysHigherAndControl |= types.Bit0
	}
}

// latch captures the live registers into the latched set.
func (r *RTC) latch() {
	r.LatchedSeconds = r.Seconds
	r.LatchedMinutes = r.Minutes
	r.LatchedHours = r.Hours
	r.LatchedDaysLower = r.DaysLower
	r.LatchedDaysHigherAndControl = r.DaysHigherAndControl
}

// MemoryBankedCartridge3 represents a MBC3 cartridge. The controller
// has a 7-bit ROM bank register and maps either a RAM bank or one of
// the RTC registers into the RAM window.
type MemoryBankedCartridge3 struct {
	rom     []byte
	romBank uint32

	ram        []byte
	ramBank    uint32
	ramEnabled bool

	hasRTC bool
	rtc    *RTC
	// rtcSelected maps the RTC register named by rtc.Register into the
	// RAM window instead of a RAM bank.
	rtcSelected bool

	header *Header
}

// NewMemoryBankedCartridge3 returns a new MemoryBankedCartridge3 cartridge.
func NewMemoryBankedCartridge3(rom []byte, header *Header) *MemoryBankedCartridge3 {
	return &MemoryBankedCartridge3{
		rom:     rom,
		romBank: 1,
		ram:     make([]byte, header.RAMSize),
		hasRTC:  header.CartridgeType == MBC3TIMERBATT || header.CartridgeType == MBC3TIMERRAMBATT,
		rtc:     &RTC{},
		header:  header,
	}
}

// TickRTC advances the real time clock by the given number of T-cycles.
func (m *MemoryBankedCartridge3) TickRTC(cycles uint8) {
	if m.hasRTC {
		m.rtc.Tick(cycles)
	}
}

// Read returns the value from the cartridges ROM, RAM or RTC register,
// depending on the bank selected.
func (m *MemoryBankedCartridge3) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address] // bank 0 is always fixed
	case address < 0x8000:
		return m.rom[uint32(address-0x4000)+m.romBank*0x4000] // switchable bank
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return 0xFF
		}
		if m.rtcSelected {
			switch m.rtc.Register {
			case 0x08:
				return m.rtc.LatchedSeconds
			case 0x09:
				return m.rtc.LatchedMinutes
			case 0x0A:
				return m.rtc.LatchedHours
			case 0x0B:
				return m.rtc.LatchedDaysLower
			case 0x0C:
				return m.rtc.LatchedDaysHigherAndControl
			}
			return 0xFF
		}
		if len(m.ram) > 0 {
			return m.ram[m.ramBank*0x2000+uint32(address&0x1FFF)]
		}
		return 0xFF
	}
	return 0xFF
}

// Write attempts to switch the ROM or RAM bank, or drives the RTC
// latch and registers.
func (m *MemoryBankedCartridge3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		// ROM bank number (7 bits), bank 0 selects bank 1
		m.romBank = uint32(value & 0x7F)
		if m.romBank == 0 {
			m.romBank = 1
		}
		if m.romBank*0x4000 >= uint32(len(m.rom)) {
			m.romBank %= uint32(len(m.rom)) / 0x4000
		}
	case address < 0x6000:
		if value >= 0x08 && value <= 0x0C {
			if m.hasRTC {
				m.rtc.Register = value
				m.rtcSelected = true
			}
		} else if value <= 0x03 {
			m.rtcSelected = false
			m.ramBank = uint32(value & 0x03)
			if len(m.ram) == 0 {
				m.ramBank = 0
			} else if m.ramBank*0x2000 >= uint32(len(m.ram)) {
				m.ramBank %= uint32(len(m.ram)) / 0x2000
			}
		}
	case address < 0x8000:
		// writing 0x00 then 0x01 latches the live clock
		if m.hasRTC {
			if m.rtc.LatchFlagValue == 0x00 && value == 0x01 {
				m.rtc.latch()
			}
			m.rtc.LatchFlagValue = value
		}
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return
		}
		if m.rtcSelected {
			switch m.rtc.Register {
			case 0x08:
				m.rtc.Seconds = value & 0x3F
				// a seconds write also resets the sub-second counter
				m.rtc.Cycles = 0
			case 0x09:
				m.rtc.Minutes = value & 0x3F
			case 0x0A:
				m.rtc.Hours = value & 0x1F
			case 0x0B:
				m.rtc.DaysLower = value
			case 0x0C:
				m.rtc.DaysHigherAndControl = value & 0xC1
			}
			return
		}
		if len(m.ram) > 0 {
			m.ram[m.ramBank*0x2000+uint32(address&0x1FFF)] = value
		}
	}
}

// Header returns the parsed cartridge header.
func (m *MemoryBankedCartridge3) Header() *Header {
	return m.header
}

// Title returns the title of the game.
func (m *MemoryBankedCartridge3) Title() string {
	return m.header.Title
}

// RAM returns a copy of the external RAM.
func (m *MemoryBankedCartridge3) RAM() []byte {
	data := make([]byte, len(m.ram))
	copy(data, m.ram)
	return data
}

// LoadRAM restores the external RAM from previously saved data.
func (m *MemoryBankedCartridge3) LoadRAM(data []byte) {
	copy(m.ram, data)
}

var _ types.Stater = (*MemoryBankedCartridge3)(nil)

func (m *MemoryBankedCartridge3) Load(s *types.State) {
	m.romBank = s.Read32()
	s.ReadData(m.ram)
	m.ramBank = s.Read32()
	m.ramEnabled = s.ReadBool()
	m.rtcSelected = s.ReadBool()

	m.rtc.Seconds = s.Read8()
	m.rtc.Minutes = s.Read8()
	m.rtc.Hours = s.Read8()
	m.rtc.DaysLower = s.Read8()
	m.rtc.DaysHigherAndControl = s.Read8()
	m.rtc.LatchedSeconds = s.Read8()
	m.rtc.LatchedMinutes = s.Read8()
	m.rtc.LatchedHours = s.Read8()
	m.rtc.LatchedDaysLower = s.Read8()
	m.rtc.LatchedDaysHigherAndControl = s.Read8()
	m.rtc.Register = s.Read8()
	m.rtc.LatchFlagValue = s.Read8()
	m.rtc.Cycles = s.Read32()
}

func (m *MemoryBankedCartridge3) Save(s *types.State) {
	s.Write32(m.romBank)
	s.WriteData(m.ram)
	s.Write32(m.ramBank)
	s.WriteBool(m.ramEnabled)
	s.WriteBool(m.rtcSelected)

	s.Write8(m.rtc.Seconds)
	s.Write8(m.rtc.Minutes)
	s.Write8(m.rtc.Hours)
	s.Write8(m.rtc.DaysLower)
	s.Write8(m.rtc.DaysHigherAndControl)
	s.Write8(m.rtc.LatchedSeconds)
	s.Write8(m.rtc.LatchedMinutes)
	s.Write8(m.rtc.LatchedHours)
	s.Write8(m.rtc.LatchedDaysLower)
	s.Write8(m.rtc.LatchedDaysHigherAndControl)
	s.Write8(m.rtc.Register)
	s.Write8(m.rtc.LatchFlagValue)
	s.Write32(m.rtc.Cycles)
}
