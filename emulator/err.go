package emulator

import (
	"errors"

	"github.com/ezrec/mipsim/translate"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit reached"))
	ErrNoProgram = errors.New(f("no program loaded"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Pc     int32
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d (pc %#04x) %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
