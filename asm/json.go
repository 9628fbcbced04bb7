package asm

import (
	"encoding/json"
	"io"
	"log"
	"math/big"

	"github.com/ezrec/uisa/isa"
)

// record is a single JSON instruction.
type record struct {
	Op     string `json:"op"`
	Const  *json.Number `json:"const"`
	Offset *json.Number `json:"offset"`
	Addr   *json.Number `json:"addr"`
}

func (rec *record) operand(name string) *json.Number {
	switch name {
	case "const":
		return rec.Const
	case "offset":
		return rec.Offset
	case "addr":
		return rec.Addr
	}
	return nil
}

// ParseJSON reads a JSON array of instruction records.
func (asm *Assembler) ParseJSON(r io.Reader) (program []isa.Instruction, err error) {
	var records []record

	dec := json.NewDecoder(r)
	err = dec.Decode(&records)
	if err != nil {
		return
	}

	_, err = dec.Token()
	if err != io.EOF {
		err = ErrSourceTrailing
		return
	}
	err = nil

	program = make([]isa.Instruction, 0, len(records))
	for n, rec := range records {
		var operands []*big.Int
		op, ok := opMap[rec.Op]
		if ok {
			for _, name := range operandMap[op] {
				value := rec.operand(name)
				if value == nil {
					err = ErrInstruction{Index: n, Err: ErrOperandMissing(name)}
					program = nil
					return
				}
				number, ok := new(big.Int).SetString(value.String(), 10)
				if !ok {
					err = ErrInstruction{Index: n, Err: ErrParseNumber(value.String())}
					program = nil
					return
				}
				operands = append(operands, number)
			}
		}

		var ins isa.Instruction
		ins, err = makeInstruction(rec.Op, operands)
		if err != nil {
			err = ErrInstruction{Index: n, Err: err}
			program = nil
			return
		}

		if asm.Verbose {
			log.Printf("json %d: %v", n, ins)
		}

		program = append(program, ins)
	}

	return
}
