package cpu

import (
	"log"
)

// Halt is the reason a step stopped the machine.
type Halt int

//go:generate go tool stringer -linecomment -type=Halt
const (
	HALT_NONE = Halt(0) // running
	HALT_EXIT = Halt(1) // exit
	HALT_END  = Halt(2) // end
)

// Cpu is the fetch-decode-execute engine over a machine State.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	State // Machine state.

	Ticks int   // Executed instruction counter.
	Fault error // Fault that aborted the run, if any.
}

// NewCpu creates a new CPU with a specifically sized memory.
func NewCpu(size uint) (cpu *Cpu) {
	cpu = &Cpu{
		State: *NewState(size),
	}

	return
}

// Reset the CPU state.
// - Clears the registers and memory.
// - Zeros statistics counters.
// - Sets the program counter to the first instruction.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.State.Reset()
	cpu.Ticks = 0
	cpu.Fault = nil
}

// Tick executes a single instruction of prog.
//
// Ticking a halted CPU does nothing. Running past the final instruction halts
// the CPU the same way as an exit instruction. An error aborts the run: the
// program counter is left at the faulting instruction, and every later tick
// returns the same error until Reset.
func (cpu *Cpu) Tick(prog *Program) (halt Halt, err error) {
	if cpu.Fault != nil {
		err = cpu.Fault
		return
	}

	if cpu.Halted() {
		return
	}

	inst, ok := prog.Fetch(cpu.Pc)
	if !ok {
		cpu.Halt()
		halt = HALT_END
		return
	}

	pc := cpu.Pc
	halt, err = cpu.Execute(prog, inst)
	if err != nil {
		cpu.Pc = pc
		cpu.Fault = err
		return
	}

	cpu.Ticks += 1

	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(prog *Program, inst *Instruction) (halt Halt, err error) {
	if cpu.Verbose {
		log.Printf("%04x: %v", cpu.Pc, inst)
	}

	// Control transfers overwrite the provisional advance.
	cpu.Pc += PC_STRIDE

	ops := inst.Operands
	if len(ops) != len(inst.Opcode.Arity()) {
		err = ErrOpcodeUnimplemented(inst.Opcode)
		return
	}

	switch inst.Opcode {
	case OP_MOV:
		var val uint32
		val, err = cpu.ReadRegister(ops[1].Value)
		if err != nil {
			return
		}
		err = cpu.WriteRegister(ops[0].Value, val)
	case OP_MOVI:
		err = cpu.WriteRegister(ops[0].Value, ops[1].Value)
	case OP_ADD, OP_SUB:
		var rs, rt uint32
		rs, rt, err = cpu.readPair(ops[1], ops[2])
		if err != nil {
			return
		}
		if inst.Opcode == OP_SUB {
			rt = (^rt) + 1
		}
		err = cpu.WriteRegister(ops[0].Value, rs+rt)
	case OP_LW:
		var addr uint32
		var val uint8
		addr, err = cpu.address(ops[1], ops[2])
		if err != nil {
			return
		}
		val, err = cpu.ReadMemory(addr)
		if err != nil {
			return
		}
		err = cpu.WriteRegister(ops[0].Value, uint32(val))
	case OP_SW:
		var addr, val uint32
		addr, err = cpu.address(ops[1], ops[2])
		if err != nil {
			return
		}
		val, err = cpu.ReadRegister(ops[0].Value)
		if err != nil {
			return
		}
		err = cpu.WriteMemory(addr, uint8(val))
	case OP_BEQ, OP_BNE:
		var rs, rt uint32
		rs, rt, err = cpu.readPair(ops[0], ops[1])
		if err != nil {
			return
		}
		if (rs == rt) == (inst.Opcode == OP_BEQ) {
			err = cpu.jump(prog, ops[2].Word)
		}
	case OP_J:
		err = cpu.jump(prog, ops[0].Word)
	case OP_JAL:
		link := uint32(cpu.Pc)
		err = cpu.jump(prog, ops[0].Word)
		if err != nil {
			return
		}
		err = cpu.WriteRegister(REGISTER_LINK, link)
	case OP_EXIT:
		cpu.Halt()
		halt = HALT_EXIT
	default:
		err = ErrOpcodeUnimplemented(inst.Opcode)
	}

	return
}

// readPair reads two register operands.
func (cpu *Cpu) readPair(a, b Operand) (va, vb uint32, err error) {
	va, err = cpu.ReadRegister(a.Value)
	if err != nil {
		return
	}
	vb, err = cpu.ReadRegister(b.Value)
	return
}

// address computes a base register plus immediate offset, wrapping at 32 bits.
func (cpu *Cpu) address(base, offset Operand) (addr uint32, err error) {
	addr, err = cpu.ReadRegister(base.Value)
	if err != nil {
		return
	}

	addr += offset.Value
	return
}

// jump sets the program counter to a label's address.
func (cpu *Cpu) jump(prog *Program, label string) (err error) {
	pc, err := prog.Resolve(label)
	if err != nil {
		return
	}

	cpu.Pc = pc
	return
}
