package asm

import (
	"errors"

	"github.com/ezrec/uisa/isa"
	"github.com/ezrec/uisa/translate"
)

var f = translate.From

var (
	ErrOperandCount   = errors.New(f("wrong number of operands"))
	ErrSourceTrailing = errors.New(f("trailing data after instruction list"))
)

// ErrMnemonic reports an instruction name with no opcode.
type ErrMnemonic string

func (em ErrMnemonic) Error() string {
	return f("unknown opcode '%v'", string(em))
}

func (em ErrMnemonic) Is(err error) bool {
	return err == isa.ErrUnknownOpcode
}

// ErrOperandMissing reports a JSON record without a required operand.
type ErrOperandMissing string

func (eo ErrOperandMissing) Error() string {
	return f("operand '%v' missing", string(eo))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrInstruction locates an error by instruction index.
type ErrInstruction struct {
	Index int
	Err   error
}

func (err ErrInstruction) Error() string {
	return f("instruction %d %v", err.Index, err.Err)
}

func (err ErrInstruction) Unwrap() error {
	return err.Err
}

// ErrSyntax locates an error by source line.
type ErrSyntax struct {
	Name   string
	LineNo int
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("%v:%d %v", err.Name, err.LineNo, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
