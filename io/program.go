package io

import (
	"io"

	"github.com/ezrec/uisa/cpu"
)

// ReadProgram reads an unframed binary program.
// The program's length is the length of the input.
func ReadProgram(r io.Reader) (code []byte, err error) {
	code, err = io.ReadAll(io.LimitReader(r, cpu.MEMORY_SIZE+1))
	if err != nil {
		return
	}

	if len(code) > cpu.MEMORY_SIZE {
		code = nil
		err = ErrProgramSize
		return
	}

	return
}

// WriteProgram writes an unframed binary program.
func WriteProgram(w io.Writer, code []byte) (err error) {
	_, err = w.Write(code)
	return
}
