package cpu

import (
	"errors"

	"github.com/ezrec/mipsim/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrOperandExtra    = errors.New(f("excessive operands"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrLabelInvalid    = errors.New(f("label invalid"))
)

// ErrLabelMissing is returned when a jump or branch target was never bound.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrRegisterRange is returned when a register index is outside the register file.
type ErrRegisterRange uint32

func (er ErrRegisterRange) Error() string {
	return f("register r%v out of range", uint32(er))
}

// ErrMemoryFault is returned when a byte address is outside memory.
type ErrMemoryFault uint32

func (em ErrMemoryFault) Error() string {
	return f("memory fault at %#08x", uint32(em))
}

// ErrOpcodeUnimplemented is returned when an opcode has no execution rule.
type ErrOpcodeUnimplemented Opcode

func (eo ErrOpcodeUnimplemented) Error() string {
	return f("opcode %v unimplemented", Opcode(eo).String())
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
