package isa

import (
	"fmt"
)

// Op is a 3-bit opcode tag.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_SQRT  = Op(1) // sqrt
	OP_READ  = Op(2) // read
	OP_LOAD  = Op(3) // load
	OP_STORE = Op(7) // store
)

// Operand masks applied by the encoder.
const (
	LOAD_CONST_MASK  = 0x3FFFFF  // 22 bits
	READ_OFFSET_MASK = 0x1F      // 5 bits
	STORE_ADDR_MASK  = 0x1FFFFFF // 25 bits
	SQRT_ADDR_MASK   = 0x1FFFFFF // 25 bits
	SQRT_OFFSET_MASK = 0xFF      // 8 bits
)

// Operand bits that survive an encode/decode round trip.
const (
	LOAD_CONST_BITS  = 21
	READ_OFFSET_BITS = 5
	STORE_ADDR_BITS  = 21
	SQRT_ADDR_BITS   = 25
	SQRT_OFFSET_BITS = 8
)

const (
	TAG_SHIFT       = 5    // Position of the tag in the first byte.
	FIELD_HEAD_MASK = 0x1F // Operand bits sharing the first byte with the tag.
	MAX_WIDTH       = 5    // Widest encoding, in bytes.

	padding = 0 // Reserved trailing byte of load and store.
)

// Tag extracts the opcode tag from the first byte of an instruction.
func Tag(head byte) Op {
	return Op(head >> TAG_SHIFT)
}

// Valid returns true if the tag names one of the four instructions.
func (op Op) Valid() bool {
	return op.Width() != 0
}

// Width returns the encoded size in bytes, or 0 for an unknown tag.
func (op Op) Width() int {
	switch op {
	case OP_READ:
		return 1
	case OP_LOAD, OP_STORE:
		return 4
	case OP_SQRT:
		return 5
	}

	return 0
}

// Instruction is a single decoded instruction.
// Only the operand fields used by Op are meaningful.
type Instruction struct {
	Op     Op
	Const  uint32 // load
	Offset uint32 // read, sqrt
	Addr   uint32 // store, sqrt
}

// MakeLoad creates an instruction pushing a constant.
func MakeLoad(value uint32) Instruction {
	return Instruction{Op: OP_LOAD, Const: value}
}

// MakeRead creates an instruction replacing the top of stack with memory[top+offset].
func MakeRead(offset uint32) Instruction {
	return Instruction{Op: OP_READ, Offset: offset}
}

// MakeStore creates an instruction popping a value into memory[addr].
func MakeStore(addr uint32) Instruction {
	return Instruction{Op: OP_STORE, Addr: addr}
}

// MakeSqrt creates an instruction storing the integer square root of
// memory[pop+offset] into memory[addr].
func MakeSqrt(addr uint32, offset uint32) Instruction {
	return Instruction{Op: OP_SQRT, Addr: addr, Offset: offset}
}

// Width returns the encoded size of the instruction in bytes.
func (ins Instruction) Width() int {
	return ins.Op.Width()
}

// Encode returns the packed bytes of the instruction.
func (ins Instruction) Encode() (code []byte, err error) {
	return ins.Append(make([]byte, 0, MAX_WIDTH))
}

// Append appends the packed bytes of the instruction to dst.
func (ins Instruction) Append(dst []byte) (code []byte, err error) {
	code = dst

	tag := byte(ins.Op) << TAG_SHIFT

	switch ins.Op {
	case OP_LOAD:
		b := ins.Const & LOAD_CONST_MASK
		code = append(code,
			tag|byte((b>>16)&FIELD_HEAD_MASK),
			byte((b>>8)&0xFF),
			byte(b&0xFF),
			padding)
	case OP_READ:
		b := ins.Offset & READ_OFFSET_MASK
		code = append(code, tag|byte(b))
	case OP_STORE:
		b := ins.Addr & STORE_ADDR_MASK
		code = append(code,
			tag|byte((b>>16)&FIELD_HEAD_MASK),
			byte((b>>8)&0xFF),
			byte(b&0xFF),
			padding)
	case OP_SQRT:
		b := ins.Addr & SQRT_ADDR_MASK
		c := ins.Offset & SQRT_OFFSET_MASK
		code = append(code,
			tag|byte((b>>24)&FIELD_HEAD_MASK),
			byte((b>>16)&0xFF),
			byte((b>>8)&0xFF),
			byte(b&0xFF),
			byte(c))
	default:
		err = ErrOpcode(ins)
		return
	}

	return
}

// Decode decodes the instruction at the start of code.
// Bytes past the instruction's width are ignored.
func Decode(code []byte) (ins Instruction, err error) {
	if len(code) == 0 {
		err = ErrTruncated
		return
	}

	op := Tag(code[0])
	if !op.Valid() {
		err = ErrOpcode(Instruction{Op: op})
		return
	}

	if len(code) < op.Width() {
		err = ErrTruncated
		return
	}

	ins.Op = op
	head := uint32(code[0] & FIELD_HEAD_MASK)

	switch op {
	case OP_LOAD:
		ins.Const = head<<16 | uint32(code[1])<<8 | uint32(code[2])
	case OP_READ:
		ins.Offset = head
	case OP_STORE:
		ins.Addr = head<<16 | uint32(code[1])<<8 | uint32(code[2])
	case OP_SQRT:
		ins.Addr = head<<24 | uint32(code[1])<<16 | uint32(code[2])<<8 | uint32(code[3])
		ins.Offset = uint32(code[4])
	}

	return
}

// String returns the assembly language form of the instruction.
func (ins Instruction) String() string {
	switch ins.Op {
	case OP_LOAD:
		return fmt.Sprintf("%v %d", ins.Op, ins.Const)
	case OP_READ:
		return fmt.Sprintf("%v %d", ins.Op, ins.Offset)
	case OP_STORE:
		return fmt.Sprintf("%v %d", ins.Op, ins.Addr)
	case OP_SQRT:
		return fmt.Sprintf("%v %d, %d", ins.Op, ins.Addr, ins.Offset)
	}

	return ins.Op.String()
}
