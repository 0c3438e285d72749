package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reg(n uint32) Operand {
	return Operand{Kind: OPERAND_REGISTER, Word: fmt.Sprintf("r%d", n), Value: n}
}

func imm(n uint32) Operand {
	return Operand{Kind: OPERAND_IMMEDIATE, Word: fmt.Sprintf("%d", n), Value: n}
}

func lbl(name string) Operand {
	return Operand{Kind: OPERAND_LABEL, Word: name}
}

func parse(t *testing.T, program ...string) *Program {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)
	return prog
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Instructions))
	assert.Equal(0, len(prog.Label))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal(fmt.Sprintf("%d", MEMORY_SIZE), asm.Equate["MEMORY_SIZE"])
	assert.Equal(fmt.Sprintf("%d", REGISTER_COUNT), asm.Equate["REGISTER_COUNT"])
}

func TestAssemblerOpcodes(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t,
		"mov r1 r2",
		"movi r3 42",
		"add r4 r5 r6",
		"sub r7 r8 r9",
		"lw r10 r11 12",
		"sw r13 r14 15",
		"beq r16 r17 done",
		"bne r18 r19 done",
		"j done",
		"jal done",
		".done exit",
	)

	expected := []Instruction{
		{1, 0, OP_MOV, []Operand{reg(1), reg(2)}},
		{2, 4, OP_MOVI, []Operand{reg(3), imm(42)}},
		{3, 8, OP_ADD, []Operand{reg(4), reg(5), reg(6)}},
		{4, 12, OP_SUB, []Operand{reg(7), reg(8), reg(9)}},
		{5, 16, OP_LW, []Operand{reg(10), reg(11), imm(12)}},
		{6, 20, OP_SW, []Operand{reg(13), reg(14), imm(15)}},
		{7, 24, OP_BEQ, []Operand{reg(16), reg(17), lbl("done")}},
		{8, 28, OP_BNE, []Operand{reg(18), reg(19), lbl("done")}},
		{9, 32, OP_J, []Operand{lbl("done")}},
		{10, 36, OP_JAL, []Operand{lbl("done")}},
		{11, 40, OP_EXIT, []Operand{}},
	}

	assert.Equal(expected, prog.Instructions)
	assert.Equal(map[string]int32{"done": 40}, prog.Label)
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t,
		".top",
		"movi r1 1",
		"",
		".middle",
		".also   movi r2 2",
		"j top",
		"   ; just a comment",
		".again",
		"exit",
		".again",
		".tail",
	)

	assert.Equal(4, len(prog.Instructions))
	assert.Equal(map[string]int32{
		"top":    0,
		"middle": 4,
		"also":   4,
		"again":  16, // last binding wins
		"tail":   16,
	}, prog.Label)

	// Label address is four times the instructions before it.
	for pc, inst := range prog.Listing() {
		assert.Equal(pc, inst.Pc)
	}
}

func TestAssemblerLabelOnExit(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t,
		".start movi r1 42",
		"j skip",
		"movi r1 0",
		".skip exit",
	)

	pc, err := prog.Resolve("skip")
	assert.NoError(err)
	assert.Equal(int32(12), pc)

	pc, err = prog.Resolve("start")
	assert.NoError(err)
	assert.Equal(int32(0), pc)
}

func TestAssemblerRegisters(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t,
		"mov ra r0",
		"mov r31 r40", // range is checked at execution
		"movi r007 4294967295",
	)

	assert.Equal(uint32(REGISTER_LINK), prog.Instructions[0].Operands[0].Value)
	assert.Equal(uint32(40), prog.Instructions[1].Operands[1].Value)
	assert.Equal(uint32(7), prog.Instructions[2].Operands[0].Value)
	assert.Equal(uint32(0xffffffff), prog.Instructions[2].Operands[1].Value)
}

func TestAssemblerComments(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t,
		"; header",
		"\tmovi\tr1\t5 ; tabs are whitespace",
		"exit;",
	)

	assert.Equal(2, len(prog.Instructions))
	assert.Equal("movi r1 5", prog.Instructions[0].String())
	assert.Equal(2, prog.Instructions[0].LineNo)
	assert.Equal(3, prog.Instructions[1].LineNo)
}

func TestAssemblerExpression(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "0x100")

	program := []string{
		"movi r1 $(MEMORY_SIZE - 1)",
		".here movi r2 $(here + 8)",
		"movi r3 $(BASE | 0x23)",
		"movi r4 $(-1)",
		"lw r5 r0 $( LINENO * 2 )",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	values := []uint32{1023, 12, 0x123, 0xffffffff, 10}
	for n, value := range values {
		inst := prog.Instructions[n]
		assert.Equal(value, inst.Operands[len(inst.Operands)-1].Value, program[n])
	}
}

func TestAssemblerErrors(t *testing.T) {
	table := [](struct {
		name    string
		program []string
		lineno  int
		err     error
	}){
		{"unknown", []string{"movi r1 1", "nop"}, 2, ErrOpcodeInvalid},
		{"label-unknown", []string{".x frob r1"}, 1, ErrOpcodeInvalid},
		{"missing", []string{"add r1 r2"}, 1, ErrOperandMissing},
		{"missing-label", []string{"exit", "j"}, 2, ErrOperandMissing},
		{"extra", []string{"exit now"}, 1, ErrOperandExtra},
		{"extra-mov", []string{"mov r1 r2 r3"}, 1, ErrOperandExtra},
		{"not-register", []string{"mov x1 r2"}, 1, ErrRegisterInvalid},
		{"bare-r", []string{"mov r r2"}, 1, ErrRegisterInvalid},
		{"signed-register", []string{"mov r-1 r2"}, 1, ErrRegisterInvalid},
		{"empty-label", []string{". exit"}, 1, ErrLabelInvalid},
		{"first-error", []string{"movi r1 1", "bogus", "alsobogus"}, 2, ErrOpcodeInvalid},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.ErrorIs(t, err, entry.err, entry.name)

		var syntax *ErrSyntax
		if assert.True(t, errors.As(err, &syntax), entry.name) {
			assert.Equal(t, entry.lineno, syntax.LineNo, entry.name)
			assert.Equal(t, entry.program[entry.lineno-1], syntax.Line, entry.name)
		}
	}
}

func TestAssemblerLineTooLong(t *testing.T) {
	assert := assert.New(t)

	long := "movi r1 1 ; " + strings.Repeat("x", 70000)
	source := strings.Join([]string{"movi r1 1", long, "exit"}, "\n")

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader(source))
	assert.ErrorIs(err, bufio.ErrTooLong)

	var syntax *ErrSyntax
	if assert.True(errors.As(err, &syntax)) {
		assert.Equal(2, syntax.LineNo)
		assert.Equal("", syntax.Line)
	}
}

func TestAssemblerErrorsNumber(t *testing.T) {
	table := []string{
		"movi r1 abc",
		"movi r1 -1",
		"movi r1 4294967296",
		"movi r1 0x10",
		"lw r1 r2 1.5",
	}

	for _, line := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(line))

		var number ErrParseNumber
		assert.True(t, errors.As(err, &number), line)
	}
}

func TestAssemblerErrorsExpression(t *testing.T) {
	table := []string{
		`movi r1 $("text")`,
		`movi r1 $(1 +)`,
		`movi r1 $(undefined)`,
		`movi r1 $(1 << 40)`,
		`j $(later)`,
	}

	for _, line := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(line + "\n.later exit"))

		var expr ErrParseExpression
		assert.True(t, errors.As(err, &expr), line)
	}
}

func TestAssemblerReuse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	first, err := asm.Parse(strings.NewReader(".a movi r1 1\nexit"))
	assert.NoError(err)

	second, err := asm.Parse(strings.NewReader("exit"))
	assert.NoError(err)

	assert.Equal(2, len(first.Instructions))
	assert.Equal(1, len(second.Instructions))
	assert.Equal(int32(0), first.Label["a"])
	_, ok := second.Label["a"]
	assert.False(ok)
}
