package cpu

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Program is an assembled instruction listing and its label table.
type Program struct {
	Instructions []Instruction
	Label        map[string]int32 // Map of labels to byte addresses.
}

type Debug struct {
	*Instruction
	Index int
}

// Resolve returns the byte address bound to label.
func (prog *Program) Resolve(label string) (pc int32, err error) {
	pc, ok := prog.Label[label]
	if !ok {
		err = ErrLabelMissing(label)
		return
	}

	return
}

// Fetch returns the instruction at byte address pc.
func (prog *Program) Fetch(pc int32) (inst *Instruction, ok bool) {
	if pc < 0 {
		return
	}

	index := int(pc / PC_STRIDE)
	if index >= len(prog.Instructions) {
		return
	}

	return &prog.Instructions[index], true
}

// Debug locates the instruction, and its source line, at byte address pc.
func (prog *Program) Debug(pc int32) (dbg Debug) {
	inst, ok := prog.Fetch(pc)
	if !ok {
		return
	}

	dbg = Debug{
		Instruction: inst,
		Index:       int(pc / PC_STRIDE),
	}

	return
}

// Listing iterates over the instructions by byte address.
func (prog *Program) Listing() iter.Seq2[int32, Instruction] {
	return func(yield func(pc int32, inst Instruction) bool) {
		for n, inst := range prog.Instructions {
			if !yield(int32(n*PC_STRIDE), inst) {
				return
			}
		}
	}
}

// Labels returns the labels bound to byte address pc, sorted.
func (prog *Program) Labels(pc int32) (labels []string) {
	for label, addr := range prog.Label {
		if addr == pc {
			labels = append(labels, label)
		}
	}
	slices.Sort(labels)

	return
}

// Clone returns a deep copy of the program.
func (prog *Program) Clone() *Program {
	return &Program{
		Instructions: slices.Clone(prog.Instructions),
		Label:        maps.Clone(prog.Label),
	}
}

// String returns a listing that re-assembles to the same program.
func (prog *Program) String() string {
	var text strings.Builder

	for pc, inst := range prog.Listing() {
		for _, label := range prog.Labels(pc) {
			text.WriteString("." + label + "\n")
		}
		text.WriteString(inst.String() + "\n")
	}

	// Labels past the last instruction.
	end := int32(len(prog.Instructions) * PC_STRIDE)
	var trailing []string
	for label, addr := range prog.Label {
		if addr >= end {
			trailing = append(trailing, label)
		}
	}
	slices.Sort(trailing)
	for _, label := range trailing {
		text.WriteString("." + label + "\n")
	}

	return text.String()
}
