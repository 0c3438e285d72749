// Package cpu implements the assembler and execution engine for the mipsim
// instruction-set simulator.
//
// The machine has a signed 32-bit program counter holding a byte address
// (instructions are 4 bytes apart, a negative value means halted), 32
// general-purpose 32-bit registers (r0-r31, none hardwired) and a small
// byte-addressable memory.
//
// The assembler accepts one instruction per line, optionally prefixed by a
// `.label` token, and supports compile-time `$(expression)` evaluation.
package cpu
