package asm

import (
	"errors"
	"io"
	"log"
	"math/big"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/uisa/cpu"
	"github.com/ezrec/uisa/isa"
)

// textSource is a whole text source file, one instruction per line.
type textSource struct {
	Lines []*textLine `parser:"( @@? EOL )* @@?"`
}

// textLine is a mnemonic and its comma separated operands.
type textLine struct {
	Pos      lexer.Position
	Mnemonic string         `parser:"@Ident"`
	Operands []*textOperand `parser:"( @@ ( \",\" @@ )* )?"`
}

// textOperand is a number literal or a $(...) expression.
type textOperand struct {
	Number *string `parser:"  @Number"`
	Expr   *string `parser:"| @Expr"`
}

var textLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `;[^\n]*`},
	{Name: "Expr", Pattern: `\$\((?:[^()\n]|\([^()\n]*\))*\)`},
	{Name: "Number", Pattern: `-?(?:0[xX][0-9a-fA-F_]+|0[bB][01_]+|0[oO][0-7_]+|[0-9][0-9_]*)`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `,`},
	{Name: "EOL", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

var textParser = participle.MustBuild[textSource](
	participle.Lexer(textLexer),
	participle.Elide("Whitespace", "Comment"),
)

// ParseText reads a line oriented assembly source.
func (asm *Assembler) ParseText(name string, r io.Reader) (program []isa.Instruction, err error) {
	source, err := textParser.Parse(name, r)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			err = ErrSyntax{Name: name, LineNo: perr.Position().Line, Err: errors.New(perr.Message())}
		}
		return
	}

	for _, line := range source.Lines {
		var ins isa.Instruction
		ins, err = asm.parseLine(line)
		if err != nil {
			err = ErrSyntax{Name: name, LineNo: line.Pos.Line, Err: err}
			program = nil
			return
		}

		if asm.Verbose {
			log.Printf("%v:%d: %v", name, line.Pos.Line, ins)
		}

		program = append(program, ins)
	}

	return
}

// parseLine converts a parsed line into an instruction.
func (asm *Assembler) parseLine(line *textLine) (ins isa.Instruction, err error) {
	operands := make([]*big.Int, 0, len(line.Operands))
	for _, operand := range line.Operands {
		var value *big.Int
		switch {
		case operand.Number != nil:
			value, err = valueOf(*operand.Number)
		case operand.Expr != nil:
			expr := *operand.Expr
			value, err = parenEval(expr[2:len(expr)-1], line.Pos.Line)
		}
		if err != nil {
			return
		}
		operands = append(operands, value)
	}

	return makeInstruction(line.Mnemonic, operands)
}

// valueOf returns the value of a number literal, of any size.
func valueOf(word string) (value *big.Int, err error) {
	value, ok := new(big.Int).SetString(word, 0)
	if !ok {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parenEval does assembly time $(...) evaluations.
func parenEval(expr string, lineno int) (value *big.Int, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"MEMORY_SIZE": starlark.MakeInt(cpu.MEMORY_SIZE),
		"LINENO":      starlark.MakeInt(lineno),
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = st_int.BigInt()

	return
}
