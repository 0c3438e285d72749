// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives a cpu.Program on a cpu.Cpu: it loads source text,
// ticks the CPU until it halts, and forwards a register snapshot to the host
// after every step.
package emulator

import (
	"context"
	"io"
	"log"

	"github.com/ezrec/mipsim/cpu"
	"github.com/ezrec/mipsim/host"
)

// Emulator state. CPU + program + host observer.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Observer  host.Observer // Receives the register file after every step.
	Logger    *log.Logger   // Diagnostic sink. If nil, diagnostics are dropped.
	StepLimit int           // Maximum steps taken by Run. Zero is unlimited.

	fault error // Runtime error that aborted the current run.
}

// NewEmulator creates a new emulator with the default memory size.
func NewEmulator() (emu *Emulator) {
	return NewEmulatorSize(cpu.MEMORY_SIZE)
}

// NewEmulatorSize creates a new emulator with a specifically sized memory.
func NewEmulatorSize(size uint) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(size),
		Program: &cpu.Program{},
	}

	return
}

// logf writes a diagnostic line.
func (emu *Emulator) logf(format string, args ...any) {
	if emu.Logger != nil {
		emu.Logger.Printf(format, args...)
	}
}

// Load assembles source text into the emulator's program, and resets the CPU.
func (emu *Emulator) Load(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	emu.logf("program length %d", len(prog.Instructions))

	emu.Reset()

	return
}

// Reset the machine state to run the program from its first instruction.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.fault = nil
}

// Fault returns the runtime error that aborted the run, if any.
func (emu *Emulator) Fault() error {
	return emu.fault
}

// Pc returns current program counter.
func (emu *Emulator) Pc() int32 {
	return emu.Cpu.Pc
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Instruction == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single step of the emulator, and notifies the observer.
//
// Once a step fails, the run stays aborted: Tick returns the same *ErrRuntime
// until Reset or Load.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Program == nil {
		err = ErrNoProgram
		return
	}

	if emu.fault != nil {
		err = emu.fault
		done = true
		return
	}

	if emu.Cpu.Halted() {
		done = true
		return
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()

	halt, err := emu.Cpu.Tick(emu.Program)
	if err != nil {
		err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		emu.fault = err
		done = true
		return
	}

	switch halt {
	case cpu.HALT_END:
		emu.logf("program done")
	case cpu.HALT_EXIT:
		emu.logf("exiting gracefully")
	}

	if emu.Observer != nil {
		emu.Observer.Update(emu.Cpu.Snapshot())
	}

	done = emu.Cpu.Halted()

	return
}

// Run ticks the emulator until the program halts, the context is done, or
// StepLimit steps have been taken.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for steps := 0; ; steps++ {
		if emu.StepLimit > 0 && steps >= emu.StepLimit {
			err = ErrStepLimit
			return
		}

		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
