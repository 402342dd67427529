// Package gameboy provides an emulation of a Nintendo Game Boy. It
// wires the CPU, bus, cartridge and peripherals together and exposes
// the stepping, inspection and save state API the host drives.
package gameboy

import (
	"github.com/croakmoor/dotmatrix/internal/cartridge"
	"github.com/croakmoor/dotmatrix/internal/cpu"
	"github.com/croakmoor/dotmatrix/internal/interrupts"
	"github.com/croakmoor/dotmatrix/internal/joypad"
	"github.com/croakmoor/dotmatrix/internal/mmu"
	"github.com/croakmoor/dotmatrix/internal/serial"
	"github.com/croakmoor/dotmatrix/internal/timer"
	"github.com/croakmoor/dotmatrix/internal/types"
	"github.com/croakmoor/dotmatrix/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = 4194304 // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = 70224 // 4194304 / 59.73
)

// GameBoy represents a Game Boy. It contains all the components of the
// Game Boy. It is the main entry point for the emulator.
type GameBoy struct {
	CPU *cpu.CPU
	MMU *mmu.MMU

	Cart       cartridge.Cartridge
	Joypad     *joypad.State
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	Serial     *serial.Controller

	log.Logger

	model types.Model

	// rtc is set when the cartridge carries a real time clock, which
	// advances with the emulated cycles rather than wall time.
	rtc *cartridge.MemoryBankedCartridge3

	currentCycle uint
}

// NewGameBoy returns a new GameBoy running the given ROM image. The
// console starts from the documented post-boot state; no boot ROM is
// executed.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, err
	}

	interrupt := interrupts.NewService()
	pad := joypad.New(interrupt)
	serialCtl := serial.NewController(interrupt)
	timerCtl := timer.NewController(interrupt)
	memBus := mmu.NewMMU(cart, interrupt)

	memBus.AttachIO([]types.HardwareAddress{types.P1}, pad)
	memBus.AttachIO([]types.HardwareAddress{types.SB, types.SC}, serialCtl)
	memBus.AttachIO([]types.HardwareAddress{types.DIV, types.TIMA, types.TMA, types.TAC}, timerCtl)

	g := &GameBoy{
		CPU: cpu.NewCPU(memBus, interrupt),
		MMU: memBus,

		Cart:       cart,
		Joypad:     pad,
		Interrupts: interrupt,
		Timer:      timerCtl,
		Serial:     serialCtl,

		Logger: log.New(),
	}
	if mbc3, ok := cart.(*cartridge.MemoryBankedCartridge3); ok {
		g.rtc = mbc3
	}

	for _, opt := range opts {
		opt(g)
	}

	g.applyModel()
	g.Infof("loaded cartridge: %s", cart.Header().String())

	return g, nil
}

// applyModel brings the console into the state the boot ROM of the
// selected model leaves behind.
func (g *GameBoy) applyModel() {
	registers := types.ModelRegisters[g.model]
	g.CPU.A, g.CPU.F = registers[0], registers[1]
	g.CPU.B, g.CPU.C = registers[2], registers[3]
	g.CPU.D, g.CPU.E = registers[4], registers[5]
	g.CPU.H, g.CPU.L = registers[6], registers[7]
	g.CPU.SP = 0xFFFE
	g.CPU.PC = 0x0100

	for address, value := range types.CommonIO {
		g.MMU.Write(address, value.(uint8))
	}
	for address, value := range types.ModelIO[g.model] {
		switch v := value.(type) {
		case uint8:
			g.MMU.Write(address, v)
		case uint16:
			// the divider is the only 16-bit register, and a bus
			// write would reset it
			if address == types.DIV {
				g.Timer.SetDivider(v)
			}
		}
	}
}

// Model returns the model the console is emulating.
func (g *GameBoy) Model() types.Model {
	return g.model
}

// Step executes one CPU step and advances the peripherals by the
// cycles it consumed. The returned count is in T-cycles. Execution is
// not continuable after an error.
func (g *GameBoy) Step() (uint8, error) {
	cycles, err := g.CPU.Step()

	g.Timer.Tick(cycles)
	g.Serial.Tick(cycles)
	if g.rtc != nil {
		g.rtc.TickRTC(cycles)
	}

	return cycles, err
}

// Frame steps the emulation through one frame's worth of cycles.
// Leftover cycles from the instruction straddling the frame boundary
// carry into the next frame.
func (g *GameBoy) Frame() error {
	for g.currentCycle < CyclesPerFrame {
		cycles, err := g.Step()
		if err != nil {
			return err
		}
		g.currentCycle += uint(cycles)
	}
	g.currentCycle -= CyclesPerFrame

	return nil
}

// Read returns the value at the given bus address.
func (g *GameBoy) Read(address uint16) uint8 {
	return g.MMU.Read(address)
}

// Write writes the value to the given bus address.
func (g *GameBoy) Write(address uint16, value uint8) {
	g.MMU.Write(address, value)
}

// SaveState serializes the full console state, sealed with a digest so
// corruption is caught on import.
func (g *GameBoy) SaveState() []byte {
	s := types.NewState()
	g.CPU.Save(s)
	g.MMU.Save(s)
	g.Cart.Save(s)
	g.Timer.Save(s)
	g.Serial.Save(s)
	g.Joypad.Save(s)
	s.Write32(uint32(g.currentCycle))
	s.Seal()
	return s.Bytes()
}

// LoadState restores a state produced by SaveState. The console must
// be running the same ROM the state was taken from; restored execution
// continues exactly where the save left off.
func (g *GameBoy) LoadState(data []byte) error {
	s := types.StateFromBytes(data)
	if err := s.Verify(); err != nil {
		return err
	}
	g.CPU.Load(s)
	g.MMU.Load(s)
	g.Cart.Load(s)
	g.Timer.Load(s)
	g.Serial.Load(s)
	g.Joypad.Load(s)
	g.currentCycle = uint(s.Read32())
	return nil
}
