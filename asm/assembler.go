// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"math/big"
	"strings"

	"github.com/ezrec/uisa/isa"
)

// Assembler translates μISA sources into binary programs.
type Assembler struct {
	Verbose bool      // If set, verbosely logs the assembler actions.
	Trace   io.Writer // If set, receives a hex line of each assembled program.
}

// opMap is a map of mnemonics to opcodes.
var opMap = map[string]isa.Op{
	isa.OP_LOAD.String():  isa.OP_LOAD,
	isa.OP_READ.String():  isa.OP_READ,
	isa.OP_STORE.String(): isa.OP_STORE,
	isa.OP_SQRT.String():  isa.OP_SQRT,
}

// operandMap names the operands of each opcode, in source order.
var operandMap = map[isa.Op][]string{
	isa.OP_LOAD:  {"const"},
	isa.OP_READ:  {"offset"},
	isa.OP_STORE: {"addr"},
	isa.OP_SQRT:  {"addr", "offset"},
}

// lowBits truncates an operand of any size to its low 32 bits, two's complement.
func lowBits(value *big.Int) uint32 {
	low := new(big.Int).And(value, big.NewInt(0xFFFFFFFF))
	return uint32(low.Uint64())
}

// makeInstruction builds an instruction from its mnemonic and operands.
// Operands are truncated to 32 bits as two's complement, then masked
// to their field width on encode.
func makeInstruction(mnemonic string, operands []*big.Int) (ins isa.Instruction, err error) {
	op, ok := opMap[mnemonic]
	if !ok {
		err = ErrMnemonic(mnemonic)
		return
	}

	if len(operands) != len(operandMap[op]) {
		err = ErrOperandCount
		return
	}

	switch op {
	case isa.OP_LOAD:
		ins = isa.MakeLoad(lowBits(operands[0]))
	case isa.OP_READ:
		ins = isa.MakeRead(lowBits(operands[0]))
	case isa.OP_STORE:
		ins = isa.MakeStore(lowBits(operands[0]))
	case isa.OP_SQRT:
		ins = isa.MakeSqrt(lowBits(operands[0]), lowBits(operands[1]))
	}

	return
}

// Parse reads a source, selecting the JSON reader if the source
// starts with a '[', and the text reader otherwise.
func (asm *Assembler) Parse(name string, r io.Reader) (program []isa.Instruction, err error) {
	br := bufio.NewReader(r)

	for {
		var ch rune
		ch, _, err = br.ReadRune()
		if err == io.EOF {
			err = nil
			return
		}
		if err != nil {
			return
		}
		if strings.ContainsRune(" \t\r\n", ch) {
			continue
		}
		err = br.UnreadRune()
		if err != nil {
			return
		}
		if ch == '[' {
			return asm.ParseJSON(br)
		}
		return asm.ParseText(name, br)
	}
}

// Assemble encodes each instruction in order into a single binary blob.
func (asm *Assembler) Assemble(program []isa.Instruction) (code []byte, err error) {
	code = make([]byte, 0, len(program)*isa.MAX_WIDTH)

	for n, ins := range program {
		ip := len(code)
		code, err = ins.Append(code)
		if err != nil {
			err = ErrInstruction{Index: n, Err: err}
			code = nil
			return
		}
		if asm.Verbose {
			log.Printf("%04x: %v ; % x", ip, ins, code[ip:])
		}
	}

	if asm.Trace != nil {
		_, err = fmt.Fprintln(asm.Trace, Hex(code))
		if err != nil {
			return
		}
	}

	return
}

// Hex formats a binary blob as space separated, lower case, two digit hex bytes.
func Hex(code []byte) string {
	var buf bytes.Buffer

	for n, b := range code {
		if n > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%02x", b)
	}

	return buf.String()
}
