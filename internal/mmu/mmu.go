// Package mmu provides a memory management unit for the Game Boy. The
// MMU is unaware of the other components, and handles all the memory
// reads and writes via the IOBus interface.
package mmu

import (
	"github.com/croakmoor/dotmatrix/internal/cartridge"
	"github.com/croakmoor/dotmatrix/internal/interrupts"
	"github.com/croakmoor/dotmatrix/internal/ram"
	"github.com/croakmoor/dotmatrix/internal/types"
)

// IOBus is the interface that the MMU uses to communicate with the
// peripherals that own IO registers.
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory, and
// delegates to the other components through the IOBus interface. Every
// address resolves to exactly one handler pair, so no access can
// fault.
type MMU struct {
	// 64kB address space
	raw [65536]*types.Address

	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart cartridge.Cartridge

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	vRAM *ram.RAM

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *ram.RAM

	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	oam *ram.RAM

	// 0xFF00 - 0xFF7F - I/O registers without an owning peripheral
	// are plain byte stores so games can read back what they wrote
	ioRegs [0x80]uint8

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	zRAM *ram.RAM

	// 0xFF0F / 0xFFFF - interrupt flag and enable registers
	IRQ *interrupts.Service
}

// NewMMU returns a new MMU mapping the given cartridge and interrupt
// service into the address space.
func NewMMU(cart cartridge.Cartridge, irq *interrupts.Service) *MMU {
	m := &MMU{
		Cart: cart,
		vRAM: ram.New(0x2000),
		wRAM: ram.New(0x2000),
		oam:  ram.New(0xA0),
		zRAM: ram.New(0x7F),
		IRQ:  irq,
	}
	m.init()
	return m
}

func (m *MMU) init() {
	// setup raw memory
	addresses := []types.Address{
		{Read: m.Cart.Read, Write: m.Cart.Write},
		{Read: readOffset(m.vRAM.Read, 0x8000), Write: writeOffset(m.vRAM.Write, 0x8000)},
		{Read: readOffset(m.wRAM.Read, 0xC000), Write: writeOffset(m.wRAM.Write, 0xC000)},
		{Read: readOffset(m.wRAM.Read, 0xE000), Write: writeOffset(m.wRAM.Write, 0xE000)},
		{Read: readOffset(m.oam.Read, 0xFE00), Write: writeOffset(m.oam.Write, 0xFE00)},
		{Read: readOffset(m.zRAM.Read, 0xFF80), Write: writeOffset(m.zRAM.Write, 0xFF80)},
		{Read: m.readIO, Write: m.writeIO},
		{Read: func(address uint16) uint8 {
			return 0xFF
		}, Write: func(address uint16, value uint8) {}},
	}

	// 0x0000 - 0x7FFF - ROM (32kB)
	for i := 0x0000; i < 0x8000; i++ {
		m.raw[i] = &addresses[0]
	}

	// 0x8000 - 0x9FFF - video RAM (8kB)
	for i := 0x8000; i < 0xA000; i++ {
		m.raw[i] = &addresses[1]
	}

	// 0xA000 - 0xBFFF - external RAM (8kB)
	for i := 0xA000; i < 0xC000; i++ {
		m.raw[i] = &addresses[0]
	}

	// 0xC000 - 0xDFFF - work RAM (8kB)
	for i := 0xC000; i < 0xE000; i++ {
		m.raw[i] = &addresses[2]
	}

	// 0xE000 - 0xFDFF - echo of work RAM
	for i := 0xE000; i < 0xFE00; i++ {
		m.raw[i] = &addresses[3]
	}

	// 0xFE00 - 0xFE9F - sprite attribute table (OAM) (160B)
	for i := 0xFE00; i < 0xFEA0; i++ {
		m.raw[i] = &addresses[4]
	}

	// 0xFEA0 - 0xFEFF - unusable memory (96B)
	for i := 0xFEA0; i < 0xFF00; i++ {
		m.raw[i] = &addresses[7]
	}

	// 0xFF00 - 0xFF7F - I/O (128B), open bus until a store or a
	// peripheral claims the register
	for i := 0xFF00; i < 0xFF80; i++ {
		m.raw[i] = &addresses[7]
	}

	// registers whose owners live outside this module are plain stores
	for _, register := range []types.HardwareAddress{
		types.NR10, types.NR11, types.NR12, types.NR13, types.NR14,
		types.NR21, types.NR22, types.NR23, types.NR24,
		types.NR30, types.NR31, types.NR32, types.NR33, types.NR34,
		types.NR41, types.NR42, types.NR43, types.NR44,
		types.NR50, types.NR51, types.NR52,
		types.LCDC, types.STAT, types.SCY, types.SCX, types.LY, types.LYC,
		types.BGP, types.OBP0, types.OBP1, types.WY, types.WX,
	} {
		m.raw[register] = &addresses[6]
	}

	// 0xFF30 - 0xFF3F - wave pattern RAM (16B)
	for i := 0xFF30; i < 0xFF40; i++ {
		m.raw[i] = &addresses[6]
	}

	// 0xFF46 - OAM DMA, a write copies 160 bytes into OAM
	m.raw[types.DMA] = &types.Address{
		Read: m.readIO,
		Write: func(address uint16, value uint8) {
			m.writeIO(address, value)
			m.doDMATransfer(value)
		},
	}

	// interrupt flag and enable registers
	m.raw[types.IF] = &types.Address{
		Read: func(address uint16) uint8 {
			return m.IRQ.ReadFlag()
		},
		Write: func(address uint16, value uint8) {
			m.IRQ.WriteFlag(value)
		},
	}
	m.raw[types.IE] = &types.Address{
		Read: func(address uint16) uint8 {
			return m.IRQ.ReadEnable()
		},
		Write: func(address uint16, value uint8) {
			m.IRQ.WriteEnable(value)
		},
	}

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	for i := 0xFF80; i < 0xFFFF; i++ {
		m.raw[i] = &addresses[5]
	}
}

func readOffset(read func(uint16) uint8, offset uint16) func(uint16) uint8 {
	return func(addr uint16) uint8 {
		return read(addr - offset)
	}
}

func writeOffset(write func(uint16, uint8), offset uint16) func(uint16, uint8) {
	return func(addr uint16, v uint8) {
		write(addr-offset, v)
	}
}

// AttachIO routes the given IO registers to the peripheral that owns
// them.
func (m *MMU) AttachIO(registers []types.HardwareAddress, peripheral IOBus) {
	address := &types.Address{Read: peripheral.Read, Write: peripheral.Write}
	for _, register := range registers {
		m.raw[register] = address
	}
}

func (m *MMU) readIO(address uint16) uint8 {
	return m.ioRegs[address-0xFF00]
}

func (m *MMU) writeIO(address uint16, value uint8) {
	m.ioRegs[address-0xFF00] = value
}

// doDMATransfer copies 160 bytes from value<<8 into OAM through the
// normal read path.
func (m *MMU) doDMATransfer(value uint8) {
	source := uint16(value) << 8
	for i := uint16(0); i < 0xA0; i++ {
		m.oam.Write(i, m.Read(source+i))
	}
}

// Read returns the value at the given address. It handles all the
// memory banks, mirroring, I/O, etc.
func (m *MMU) Read(address uint16) uint8 {
	return m.raw[address].Read(address)
}

// Write writes the value to the given address.
func (m *MMU) Write(address uint16, value uint8) {
	m.raw[address].Write(address, value)
}

var _ types.Stater = (*MMU)(nil)

// Load restores the bus-owned memories from the state.
func (m *MMU) Load(s *types.State) {
	m.vRAM.Load(s)
	m.wRAM.Load(s)
	m.oam.Load(s)
	m.zRAM.Load(s)
	s.ReadData(m.ioRegs[:])
}

// Save writes the bus-owned memories to the state.
func (m *MMU) Save(s *types.State) {
	m.vRAM.Save(s)
	m.wRAM.Save(s)
	m.oam.Save(s)
	m.zRAM.Save(s)
	s.WriteData(m.ioRegs[:])
}
