// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":         "0",
	"MEMORY_SIZE":    fmt.Sprintf("%d", MEMORY_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
}

// regAlias maps register names other than rN.
var regAlias = map[string]uint32{
	"ra": REGISTER_LINK,
}

var exprRegexp = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler is a single pass assembler for the mipsim dialect.
type Assembler struct {
	Verbose     bool          // If set, verbosely logs the assembler actions.
	Instruction []Instruction // List of generated instructions.

	predefine map[string]string // Predefines
	Label     map[string]int32  // Map of labels to byte addresses.
	Equate    map[string]string // Map of values visible to $(...) expressions.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// currentPc gets the byte address of the next emitted instruction.
func (asm *Assembler) currentPc() int32 {
	return int32(len(asm.Instruction) * PC_STRIDE)
}

// register decodes a register token.
func (asm *Assembler) register(word string) (id uint32, err error) {
	id, ok := regAlias[word]
	if ok {
		return
	}

	if len(word) < 2 || word[0] != 'r' {
		err = ErrRegisterInvalid
		return
	}

	v64, perr := strconv.ParseUint(word[1:], 10, 32)
	if perr != nil {
		err = ErrRegisterInvalid
		return
	}

	id = uint32(v64)
	return
}

// immediate decodes an unsigned 32-bit decimal literal.
func (asm *Assembler) immediate(word string) (value uint32, err error) {
	v64, perr := strconv.ParseUint(word, 10, 32)
	if perr != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for label, pc := range asm.Label {
		pred[label] = starlark.MakeInt(int(pc))
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	v64, ok := st_int.Int64()
	if !ok || v64 > 0xffffffff || v64 < -int64(0x80000000) {
		err = ErrParseExpression(expr)
		return
	}

	value = uint32(v64)
	return
}

// expand replaces $(...) expressions by their decimal value.
func (asm *Assembler) expand(line string) (out string, err error) {
	out = exprRegexp.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return fmt.Sprintf("%d", value)
	})

	return
}

// bindLabel binds a label to the next emitted instruction's address.
func (asm *Assembler) bindLabel(label string) (err error) {
	if len(label) == 0 {
		err = ErrLabelInvalid
		return
	}

	if asm.Label == nil {
		asm.Label = make(map[string]int32, 16)
	}

	pc := asm.currentPc()
	prior, ok := asm.Label[label]
	if ok && asm.Verbose {
		log.Printf("asm: label %v rebound from %d to %d", label, prior, pc)
	}
	asm.Label[label] = pc

	return
}

// parseLine parses a single line, binding any label and emitting any instruction.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%d", lineno)

	// Labels are bound first, so that $(...) can refer to their own line.
	words := strings.Fields(line)
	if len(words) > 0 && strings.HasPrefix(words[0], ".") {
		err = asm.bindLabel(words[0][1:])
		if err != nil {
			return
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, words[0]))
	}

	line, err = asm.expand(line)
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	return asm.parseWords(words, lineno)
}

// parseWords decodes an opcode and its operands.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	op, ok := LookupOpcode(words[0])
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	kinds := op.Arity()
	if len(args) < len(kinds) {
		err = ErrOperandMissing
		return
	}
	if len(args) > len(kinds) {
		err = ErrOperandExtra
		return
	}

	inst := Instruction{
		LineNo:   lineno,
		Pc:       asm.currentPc(),
		Opcode:   op,
		Operands: make([]Operand, len(kinds)),
	}

	for n, kind := range kinds {
		operand := Operand{Kind: kind, Word: args[n]}
		switch kind {
		case OPERAND_REGISTER:
			operand.Value, err = asm.register(args[n])
		case OPERAND_IMMEDIATE:
			operand.Value, err = asm.immediate(args[n])
		case OPERAND_LABEL:
			// Resolved at execution time.
		}
		if err != nil {
			return
		}
		inst.Operands[n] = operand
	}

	asm.Instruction = append(asm.Instruction, inst)

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int32, 16)
	asm.Instruction = asm.Instruction[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		// The failing line was never returned by the scanner.
		lineno += 1
		line = ""
		return
	}

	prog = &Program{
		Instructions: slices.Clone(asm.Instruction),
		Label:        maps.Clone(asm.Label),
	}

	return
}
