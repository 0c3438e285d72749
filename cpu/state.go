package cpu

import (
	"fmt"
)

const (
	REGISTER_COUNT = 32   // Number of general purpose registers.
	REGISTER_LINK  = 31   // Return address register written by jal.
	MEMORY_SIZE    = 1024 // Default size of byte memory.
	PC_HALT        = -1   // Program counter value of a halted machine.
	PC_STRIDE      = 4    // Bytes per instruction.
)

// State is the mutable machine state: program counter, register file and memory.
type State struct {
	Pc       int32                  // Byte address of the next instruction.
	Register [REGISTER_COUNT]uint32 // Register file.
	Memory   []byte                 // Byte addressable memory.
}

// NewState creates a zeroed machine state with the given memory size.
func NewState(size uint) (state *State) {
	state = &State{
		Memory: make([]byte, size),
	}

	return
}

// Reset zeroes the registers and memory and rewinds the program counter.
func (state *State) Reset() {
	state.Pc = 0
	clear(state.Register[:])
	clear(state.Memory)
}

// Halted is true once the program counter holds the halt sentinel.
func (state *State) Halted() bool {
	return state.Pc < 0
}

// Halt sets the program counter to the halt sentinel.
func (state *State) Halt() {
	state.Pc = PC_HALT
}

// ReadRegister returns the value of register id.
func (state *State) ReadRegister(id uint32) (value uint32, err error) {
	if id >= REGISTER_COUNT {
		err = ErrRegisterRange(id)
		return
	}

	value = state.Register[id]
	return
}

// WriteRegister sets register id to value.
func (state *State) WriteRegister(id uint32, value uint32) (err error) {
	if id >= REGISTER_COUNT {
		err = ErrRegisterRange(id)
		return
	}

	state.Register[id] = value
	return
}

// ReadMemory returns the byte at addr.
func (state *State) ReadMemory(addr uint32) (value uint8, err error) {
	if uint64(addr) >= uint64(len(state.Memory)) {
		err = ErrMemoryFault(addr)
		return
	}

	value = state.Memory[addr]
	return
}

// WriteMemory stores value at addr.
func (state *State) WriteMemory(addr uint32, value uint8) (err error) {
	if uint64(addr) >= uint64(len(state.Memory)) {
		err = ErrMemoryFault(addr)
		return
	}

	state.Memory[addr] = value
	return
}

// Snapshot returns a copy of the register file, ordered by register index.
func (state *State) Snapshot() []uint32 {
	regs := make([]uint32, REGISTER_COUNT)
	copy(regs, state.Register[:])
	return regs
}

// String returns the program counter and non-zero registers.
func (state *State) String() (text string) {
	text = fmt.Sprintf("   pc: %d\n", state.Pc)
	for n, val := range state.Register {
		if val == 0 {
			continue
		}
		text += fmt.Sprintf("% 5s: %04X_%04X (%d)\n", fmt.Sprintf("r%d", n), val>>16, val&0xffff, val)
	}

	return
}
