package isa

import (
	"errors"

	"github.com/ezrec/uisa/translate"
)

var f = translate.From

var (
	ErrUnknownOpcode = errors.New(f("unknown opcode"))
	ErrTruncated     = errors.New(f("instruction truncated"))
)

// ErrOpcode reports an instruction whose tag has no encoding.
type ErrOpcode Instruction

func (eo ErrOpcode) Error() string {
	return f("unknown opcode %d", int(eo.Op))
}

func (eo ErrOpcode) Is(err error) bool {
	return err == ErrUnknownOpcode
}
