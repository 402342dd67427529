package gameboy

import (
	"github.com/croakmoor/dotmatrix/internal/types"
	"github.com/croakmoor/dotmatrix/pkg/log"
)

// Opt is a function that modifies a GameBoy instance.
type Opt func(gb *GameBoy)

// Debug enables the CPU debug breakpoint, set when the magic LD B, B
// instruction executes.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.CPU.Debug = true
	}
}

// AsModel selects the hardware model whose post-boot state the console
// starts from.
func AsModel(m types.Model) Opt {
	return func(gb *GameBoy) {
		gb.model = m
	}
}

// WithLogger replaces the default logger.
func WithLogger(l log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = l
	}
}
