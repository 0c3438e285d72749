package host

import (
	"fmt"
	"io"
	"strings"
)

// Tape writes each snapshot as text to an io.Writer.
//
// With Columns at zero a snapshot is one line of space separated hex values.
// Otherwise registers are printed as `rN=value`, Columns to a line, and
// snapshots are separated by a blank line.
type Tape struct {
	Output  io.Writer
	Columns int

	Err   error // First write error; later snapshots are dropped.
	Steps int   // Snapshots written.
}

var _ Observer = (*Tape)(nil)

// Update writes the snapshot.
func (tc *Tape) Update(registers []uint32) {
	if tc.Err != nil {
		return
	}

	var text strings.Builder
	if tc.Columns <= 0 {
		fmt.Fprintf(&text, "%d:", tc.Steps)
		for _, val := range registers {
			fmt.Fprintf(&text, " %08x", val)
		}
		text.WriteString("\n")
	} else {
		fmt.Fprintf(&text, "step %d\n", tc.Steps)
		for n, val := range registers {
			fmt.Fprintf(&text, "%4s=%08x", fmt.Sprintf("r%d", n), val)
			if (n+1)%tc.Columns == 0 || n == len(registers)-1 {
				text.WriteString("\n")
			} else {
				text.WriteString(" ")
			}
		}
		text.WriteString("\n")
	}

	_, tc.Err = io.WriteString(tc.Output, text.String())
	tc.Steps++
}
