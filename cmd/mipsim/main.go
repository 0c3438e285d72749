// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/ezrec/mipsim/cpu"
	"github.com/ezrec/mipsim/emulator"
	"github.com/ezrec/mipsim/host"
)

// registerWidth is the printed width of one `rNN=xxxxxxxx` trace column.
const registerWidth = 14

// traceColumns picks how many registers fit on a terminal line.
func traceColumns(out *os.File) int {
	fd := int(out.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width < registerWidth {
		return 8
	}

	return width / registerWidth
}

func main() {
	var compile string
	var verbose bool
	var trace bool
	var columns int
	var limit int
	var memory uint
	var history int

	flag.StringVar(&compile, "c", "-", "Assembly source file to run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&trace, "t", false, "Trace the register file after every step")
	flag.IntVar(&columns, "w", -1, "Registers per trace line (0 for one line per step)")
	flag.IntVar(&limit, "n", 0, "Maximum steps to run (0 is unlimited)")
	flag.UintVar(&memory, "m", cpu.MEMORY_SIZE, "Memory size in bytes")
	flag.IntVar(&history, "r", 16, "Register snapshots to dump on a failed run (0 to disable)")

	flag.Parse()

	if flag.NArg() != 0 {
		atexit.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var input io.Reader = os.Stdin
	if compile != "-" {
		inf, err := os.Open(compile)
		if err != nil {
			atexit.Fatalf("%v: %v", compile, err)
		}
		atexit.Register(func() { inf.Close() })
		input = inf
	}

	emu := emulator.NewEmulatorSize(memory)
	emu.Verbose = verbose
	emu.StepLimit = limit
	if verbose {
		emu.Logger = log.Default()
	}

	observers := &host.Dispatcher{}
	emu.Observer = observers

	if trace {
		if columns < 0 {
			columns = traceColumns(os.Stdout)
		}
		observers.Register(&host.Tape{Output: os.Stdout, Columns: columns})
	}

	var recent *host.Ring
	if history > 0 {
		recent = &host.Ring{Capacity: history}
		observers.Register(recent)
	}

	err := emu.Load(input)
	if err != nil {
		atexit.Fatalf("%v: %v", compile, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	atexit.Register(stop)

	err = emu.Run(ctx)
	fmt.Print(emu.Cpu.String())
	if err != nil {
		if recent != nil && recent.Size > 0 {
			fmt.Fprintf(os.Stderr, "last %d steps:\n", recent.Size)
			recent.Replay(&host.Tape{Output: os.Stderr, Columns: traceColumns(os.Stderr)})
		}
		atexit.Fatalf("%v: %v", compile, err)
	}

	atexit.Exit(0)
}
