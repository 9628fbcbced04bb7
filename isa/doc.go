// Package isa defines the μISA instruction set: the opcode table, the
// per-instruction bit-field layout, and the encode/decode functions shared
// by the assembler and the interpreter.
//
// Every instruction begins with a byte whose top 3 bits carry the opcode
// tag. Operand fields follow, big-endian and most-significant-bit first.
//
//	sqrt  001aaaaa aaaaaaaa aaaaaaaa aaaaaaaa oooooooo   5 bytes
//	read  010ooooo                                       1 byte
//	load  011ccccc cccccccc cccccccc 00000000            4 bytes
//	store 111aaaaa aaaaaaaa aaaaaaaa 00000000            4 bytes
//
// The operand masks applied by the encoder are wider than the bits that
// survive the byte layout (load/store keep 21 bits, sqrt keeps 25 address
// bits). The shift and mask sequence is the wire format.
package isa
