// Package cpu implements the μISA interpreter.
//
// The CPU consists of an instruction pointer (IP), an unbounded operand
// stack, and 64KiB of byte-wide memory shared by code and data. A program
// is loaded at address 0 and executed until the IP reaches the end of the
// loaded program. Nothing protects the loaded code: a store may rewrite
// instructions that have not yet executed.
package cpu
