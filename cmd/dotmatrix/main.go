// Command dotmatrix runs a ROM headlessly for a fixed number of
// frames and reports where execution ended up. It exists for poking at
// games and timing behavior without a frontend attached.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cespare/xxhash"
	"github.com/croakmoor/dotmatrix/internal/cpu"
	"github.com/croakmoor/dotmatrix/internal/gameboy"
	"github.com/croakmoor/dotmatrix/internal/types"
	"github.com/croakmoor/dotmatrix/pkg/utils"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load")
	asModel := flag.String("model", "dmg", "The model to emulate. Can be dmg, dmg0 or mgb")
	frames := flag.Int("frames", 60, "The number of frames to run")
	trace := flag.Bool("trace", false, "Log every executed instruction")
	flag.Parse()

	if *romFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dotmatrix: %v\n", err)
		os.Exit(1)
	}

	gb, err := gameboy.NewGameBoy(rom, gameboy.AsModel(types.StringToModel(*asModel)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "dotmatrix: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(gb.Cart.Header().String())

	if err := run(gb, *frames, *trace); err != nil {
		fmt.Fprintf(os.Stderr, "dotmatrix: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("PC: 0x%04X SP: 0x%04X\n", gb.CPU.PC, gb.CPU.SP)
	fmt.Printf("state: %016x\n", xxhash.Sum64(gb.SaveState()))
}

func run(gb *gameboy.GameBoy, frames int, trace bool) error {
	if !trace {
		for i := 0; i < frames; i++ {
			if err := gb.Frame(); err != nil {
				return err
			}
		}
		return nil
	}

	target := uint(frames) * gameboy.CyclesPerFrame
	for cycles := uint(0); cycles < target; {
		gb.Debugf("0x%04X: %s", gb.CPU.PC, disassemble(gb))
		c, err := gb.Step()
		if err != nil {
			return err
		}
		cycles += uint(c)
	}
	return nil
}

// disassemble names the instruction at the current program counter.
func disassemble(gb *gameboy.GameBoy) string {
	opcode := gb.Read(gb.CPU.PC)
	if opcode == 0xCB {
		return cpu.InstructionSetCB[gb.Read(gb.CPU.PC+1)].Name()
	}
	return cpu.InstructionSet[opcode].Name()
}
