package types

// Address represents a routable location in the Game Boy's 16-bit
// address space. The bus builds its routing table out of these,
// so that every read or write resolves to exactly one handler pair.
type Address struct {
	// Read is called when the CPU reads from the address.
	Read func(address uint16) uint8
	// Write is called when the CPU writes to the address.
	Write func(address uint16, value uint8)
}

// HardwareAddress represents the address of a hardware register.
// The hardware registers are mapped to 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 selects the joypad matrix lines to read. Bits 4 and 5
	// select the direction and action nibbles respectively, and
	// bits 0-3 read back the selected keys (0 = pressed).
	P1 HardwareAddress = 0xFF00
	// SB holds the byte being shifted over the serial line.
	SB HardwareAddress = 0xFF01
	// SC controls the serial port. Bit 7 starts a transfer, bit 0
	// selects the internal clock.
	SC HardwareAddress = 0xFF02
	// DIV is the visible upper byte of the 16-bit divider that the
	// timer derives its rates from. Any write resets the divider.
	DIV HardwareAddress = 0xFF04
	// TIMA is the timer counter, incremented at the rate selected by
	// TAC. When TIMA overflows it is reloaded from TMA and a timer
	// interrupt is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the value loaded into TIMA on overflow.
	TMA HardwareAddress = 0xFF06
	// TAC controls the timer. Bit 2 enables TIMA, bits 0-1 select
	// the divider bit it follows.
	TAC HardwareAddress = 0xFF07
	// IF holds the pending interrupt requests.
	//
	//	Bit 0: VBlank   (INT 40h)
	//	Bit 1: LCD STAT (INT 48h)
	//	Bit 2: Timer    (INT 50h)
	//	Bit 3: Serial   (INT 58h)
	//	Bit 4: Joypad   (INT 60h)
	IF HardwareAddress = 0xFF0F

	// Sound channel registers. The audio synthesizer is an external
	// collaborator; the bus keeps these as plain byte stores so games
	// can write and read them back.
	NR10 HardwareAddress = 0xFF10
	NR11 HardwareAddress = 0xFF11
	NR12 HardwareAddress = 0xFF12
	NR13 HardwareAddress = 0xFF13
	NR14 HardwareAddress = 0xFF14
	NR21 HardwareAddress = 0xFF16
	NR22 HardwareAddress = 0xFF17
	NR23 HardwareAddress = 0xFF18
	NR24 HardwareAddress = 0xFF19
	NR30 HardwareAddress = 0xFF1A
	NR31 HardwareAddress = 0xFF1B
	NR32 HardwareAddress = 0xFF1C
	NR33 HardwareAddress = 0xFF1D
	NR34 HardwareAddress = 0xFF1E
	NR41 HardwareAddress = 0xFF20
	NR42 HardwareAddress = 0xFF21
	NR43 HardwareAddress = 0xFF22
	NR44 HardwareAddress = 0xFF23
	NR50 HardwareAddress = 0xFF24
	NR51 HardwareAddress = 0xFF25
	NR52 HardwareAddress = 0xFF26

	// LCD registers. Like the sound registers these are inert byte
	// stores here; the pixel pipeline that interprets them lives
	// outside this module.
	LCDC HardwareAddress = 0xFF40
	STAT HardwareAddress = 0xFF41
	SCY  HardwareAddress = 0xFF42
	SCX  HardwareAddress = 0xFF43
	LY   HardwareAddress = 0xFF44
	LYC  HardwareAddress = 0xFF45
	// DMA starts an OAM transfer. Writing value v copies the 160
	// bytes at v<<8 into OAM.
	DMA  HardwareAddress = 0xFF46
	BGP  HardwareAddress = 0xFF47
	OBP0 HardwareAddress = 0xFF48
	OBP1 HardwareAddress = 0xFF49
	WY   HardwareAddress = 0xFF4A
	WX   HardwareAddress = 0xFF4B

	// IE holds the interrupt enable mask, gating the bits of IF.
	IE HardwareAddress = 0xFFFF
)
