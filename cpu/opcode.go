package cpu

import (
	"strings"
)

// Opcode is an instruction mnemonic.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_MOV  = Opcode(0)  // mov
	OP_MOVI = Opcode(1)  // movi
	OP_ADD  = Opcode(2)  // add
	OP_SUB  = Opcode(3)  // sub
	OP_LW   = Opcode(4)  // lw
	OP_SW   = Opcode(5)  // sw
	OP_BEQ  = Opcode(6)  // beq
	OP_BNE  = Opcode(7)  // bne
	OP_J    = Opcode(8)  // j
	OP_JAL  = Opcode(9)  // jal
	OP_EXIT = Opcode(10) // exit
)

// OperandKind is the kind of token an opcode expects in an operand slot.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	OPERAND_REGISTER  = OperandKind(0) // register
	OPERAND_IMMEDIATE = OperandKind(1) // immediate
	OPERAND_LABEL     = OperandKind(2) // label
)

// opcodeMap maps mnemonics to opcodes.
var opcodeMap = map[string]Opcode{
	"mov":  OP_MOV,
	"movi": OP_MOVI,
	"add":  OP_ADD,
	"sub":  OP_SUB,
	"lw":   OP_LW,
	"sw":   OP_SW,
	"beq":  OP_BEQ,
	"bne":  OP_BNE,
	"j":    OP_J,
	"jal":  OP_JAL,
	"exit": OP_EXIT,
}

// arityMap is the operand layout of each opcode.
var arityMap = map[Opcode][]OperandKind{
	OP_MOV:  {OPERAND_REGISTER, OPERAND_REGISTER},
	OP_MOVI: {OPERAND_REGISTER, OPERAND_IMMEDIATE},
	OP_ADD:  {OPERAND_REGISTER, OPERAND_REGISTER, OPERAND_REGISTER},
	OP_SUB:  {OPERAND_REGISTER, OPERAND_REGISTER, OPERAND_REGISTER},
	OP_LW:   {OPERAND_REGISTER, OPERAND_REGISTER, OPERAND_IMMEDIATE},
	OP_SW:   {OPERAND_REGISTER, OPERAND_REGISTER, OPERAND_IMMEDIATE},
	OP_BEQ:  {OPERAND_REGISTER, OPERAND_REGISTER, OPERAND_LABEL},
	OP_BNE:  {OPERAND_REGISTER, OPERAND_REGISTER, OPERAND_LABEL},
	OP_J:    {OPERAND_LABEL},
	OP_JAL:  {OPERAND_LABEL},
	OP_EXIT: {},
}

// LookupOpcode returns the opcode for a mnemonic.
func LookupOpcode(word string) (op Opcode, ok bool) {
	op, ok = opcodeMap[word]
	return
}

// Arity returns the operand kinds required by the opcode.
func (op Opcode) Arity() []OperandKind {
	return arityMap[op]
}

// Operand is a decoded operand token.
type Operand struct {
	Kind  OperandKind
	Word  string // Source token.
	Value uint32 // Register index or immediate value.
}

// Instruction is a single parsed line of assembly.
type Instruction struct {
	LineNo   int
	Pc       int32
	Opcode   Opcode
	Operands []Operand
}

// Words returns the operand tokens as written in the source.
func (inst Instruction) Words() (words []string) {
	for _, operand := range inst.Operands {
		words = append(words, operand.Word)
	}
	return
}

// String returns the assembly language representation of this instruction.
func (inst Instruction) String() string {
	return strings.Join(append([]string{inst.Opcode.String()}, inst.Words()...), " ")
}
