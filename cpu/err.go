package cpu

import (
	"errors"

	"github.com/ezrec/uisa/isa"
	"github.com/ezrec/uisa/translate"
)

var f = translate.From

var (
	ErrUnknownOpcode  = isa.ErrUnknownOpcode
	ErrStackUnderflow = errors.New(f("stack underflow"))
	ErrOutOfBounds    = errors.New(f("address out of bounds"))
	ErrDomain         = errors.New(f("square root of a negative value"))
)

// ErrOpcode identifies the instruction that failed to execute.
type ErrOpcode isa.Instruction

func (eo ErrOpcode) Error() string {
	return f("opcode '%v'", isa.Instruction(eo).String())
}

// ErrAddress reports an access outside of memory.
type ErrAddress struct {
	Start int
	End   int
}

func (err ErrAddress) Error() string {
	if err.Start == err.End {
		return f("address %d out of bounds", err.Start)
	}
	return f("address range %d..%d out of bounds", err.Start, err.End)
}

func (err ErrAddress) Is(target error) bool {
	return target == ErrOutOfBounds
}
