package asm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/uisa/isa"
)

var scenario = []isa.Instruction{
	isa.MakeLoad(8),
	isa.MakeRead(25),
	isa.MakeStore(218),
	isa.MakeSqrt(697, 24),
}

var scenarioCode = []byte{
	0x60, 0x00, 0x08, 0x00,
	0x59,
	0xe0, 0x00, 0xda, 0x00,
	0x20, 0x00, 0x02, 0xb9, 0x18,
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	code, err := asm.Assemble(nil)
	assert.NoError(err)
	assert.Equal(0, len(code))

	code, err = asm.Assemble(scenario)
	assert.NoError(err)
	assert.Equal(scenarioCode, code)
}

func TestAssemblerTrace(t *testing.T) {
	assert := assert.New(t)

	trace := &bytes.Buffer{}
	asm := &Assembler{Trace: trace}

	_, err := asm.Assemble(scenario)
	assert.NoError(err)
	assert.Equal("60 00 08 00 59 e0 00 da 00 20 00 02 b9 18\n", trace.String())

	// Tracing does not alter the output.
	quiet, err := (&Assembler{}).Assemble(scenario)
	assert.NoError(err)
	loud, err := asm.Assemble(scenario)
	assert.NoError(err)
	assert.Equal(quiet, loud)
}

func TestAssemblerUnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []isa.Instruction{isa.MakeLoad(1), {Op: 4}}
	code, err := asm.Assemble(program)
	assert.ErrorIs(err, isa.ErrUnknownOpcode)
	assert.Nil(code)

	var ei ErrInstruction
	assert.True(errors.As(err, &ei))
	assert.Equal(1, ei.Index)
}

func TestAssemblerMasking(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	code, err := asm.Assemble([]isa.Instruction{isa.MakeLoad(1 << 22), isa.MakeRead(33)})
	assert.NoError(err)
	assert.Equal([]byte{0x60, 0x00, 0x00, 0x00, 0x41}, code)
}

func TestHex(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", Hex(nil))
	assert.Equal("0a", Hex([]byte{0x0a}))
	assert.Equal("ff 00 7f", Hex([]byte{0xff, 0x00, 0x7f}))
}

func TestParseJSON(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	source := `[
		{"op": "load", "const": 8},
		{"op": "read", "offset": 25},
		{"op": "store", "addr": 218},
		{"op": "sqrt", "addr": 697, "offset": 24}
	]`

	program, err := asm.ParseJSON(strings.NewReader(source))
	assert.NoError(err)
	assert.Equal(scenario, program)

	program, err = asm.Parse("test.json", strings.NewReader("\n  "+source))
	assert.NoError(err)
	assert.Equal(scenario, program)
}

func TestParseJSONErrors(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	table := [](struct {
		name   string
		source string
		err    error
		index  int
	}){
		{"unknown", `[{"op": "load", "const": 1}, {"op": "jump", "addr": 0}]`, isa.ErrUnknownOpcode, 1},
		{"missing", `[{"op": "sqrt", "addr": 1}]`, ErrOperandMissing("offset"), 0},
		{"wrong_field", `[{"op": "load", "addr": 1}]`, ErrOperandMissing("const"), 0},
	}

	for _, entry := range table {
		program, err := asm.ParseJSON(strings.NewReader(entry.source))
		assert.ErrorIs(err, entry.err, entry.name)
		assert.Nil(program, entry.name)

		var ei ErrInstruction
		assert.True(errors.As(err, &ei), entry.name)
		assert.Equal(entry.index, ei.Index, entry.name)
	}

	_, err := asm.ParseJSON(strings.NewReader(`[{"op": "load", "const": "eight"}]`))
	assert.Error(err)

	_, err = asm.ParseJSON(strings.NewReader(`{"op": "load"}`))
	assert.Error(err)
}

func TestParseJSONNegative(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program, err := asm.ParseJSON(strings.NewReader(`[{"op": "read", "offset": -1}]`))
	assert.NoError(err)

	code, err := asm.Assemble(program)
	assert.NoError(err)
	assert.Equal([]byte{0x5f}, code)
}

func TestParseText(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	source := []string{
		"; the reference program",
		"load 8",
		"",
		"read 0x19   ; hex",
		"store $(200 + 18)",
		"sqrt 697, 24",
	}

	program, err := asm.Parse("test.s", strings.NewReader(strings.Join(source, "\n")))
	assert.NoError(err)
	assert.Equal(scenario, program)

	code, err := asm.Assemble(program)
	assert.NoError(err)
	assert.Equal(scenarioCode, code)
}

func TestParseTextExpressions(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	source := []string{
		"load $(MEMORY_SIZE - 1)",
		"store $(LINENO * 100)",
		"sqrt $((1 << 4) | 1), $(0b11)",
		"load 1_000",
	}

	program, err := asm.ParseText("expr.s", strings.NewReader(strings.Join(source, "\n")))
	assert.NoError(err)
	assert.Equal([]isa.Instruction{
		isa.MakeLoad(65535),
		isa.MakeStore(200),
		isa.MakeSqrt(17, 3),
		isa.MakeLoad(1000),
	}, program)
}

func TestParseTextErrors(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	table := [](struct {
		name   string
		source string
		err    error
		lineno int
	}){
		{"unknown", "load 1\njump 4", isa.ErrUnknownOpcode, 2},
		{"count_few", "sqrt 1", ErrOperandCount, 1},
		{"count_many", "\n\nread 1, 2", ErrOperandCount, 3},
		{"expr_string", `load $("x")`, ErrParseExpression(`"x"`), 1},
		{"expr_unknown", "load $(UNDEFINED)", ErrParseExpression("UNDEFINED"), 1},
	}

	for _, entry := range table {
		program, err := asm.ParseText("bad.s", strings.NewReader(entry.source))
		assert.ErrorIs(err, entry.err, entry.name)
		assert.Nil(program, entry.name)

		var es ErrSyntax
		assert.True(errors.As(err, &es), entry.name)
		assert.Equal(entry.lineno, es.LineNo, entry.name)
		assert.Equal("bad.s", es.Name, entry.name)
	}

	_, err := asm.ParseText("bad.s", strings.NewReader("load 1\n8 load"))
	var es ErrSyntax
	assert.True(errors.As(err, &es))
	assert.Equal(2, es.LineNo)
}

func TestParseEmpty(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program, err := asm.Parse("empty", strings.NewReader(" \n\t"))
	assert.NoError(err)
	assert.Empty(program)

	program, err = asm.Parse("comment", strings.NewReader("; nothing\n"))
	assert.NoError(err)
	assert.Empty(program)
}

func TestParseWideOperands(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	table := [](struct {
		name   string
		source string
	}){
		{"json", `[{"op": "load", "const": 18446744073709551624}]`},
		{"text_number", "load 0x10000000000000008"},
		{"text_expr", "load $((1 << 64) + 8)"},
		{"text_negative_wide", "load -0xFFFFFFFFFFFFFFF8"},
	}

	for _, entry := range table {
		program, err := asm.Parse(entry.name, strings.NewReader(entry.source))
		assert.NoError(err, entry.name)
		assert.Equal([]isa.Instruction{isa.MakeLoad(8)}, program, entry.name)
	}

	program, err := asm.ParseJSON(strings.NewReader(`[{"op": "sqrt", "addr": -1, "offset": 340282366920938463463374607431768211711}]`))
	assert.NoError(err)
	assert.Equal([]isa.Instruction{isa.MakeSqrt(0xFFFFFFFF, 0xFF)}, program)

	_, err = asm.ParseJSON(strings.NewReader(`[{"op": "load", "const": 8.5}]`))
	assert.ErrorIs(err, ErrParseNumber("8.5"))
}

func TestParseTextOneInstructionPerLine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program, err := asm.ParseText("joined.s", strings.NewReader("load 8 read 25"))
	assert.Error(err)
	assert.Nil(program)

	var es ErrSyntax
	assert.True(errors.As(err, &es))
	assert.Equal(1, es.LineNo)

	program, err = asm.ParseText("split.s", strings.NewReader("\n\nload 8\n\n; done\nread 25\n\n"))
	assert.NoError(err)
	assert.Equal([]isa.Instruction{isa.MakeLoad(8), isa.MakeRead(25)}, program)
}

func TestParseJSONTrailing(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	for _, trailing := range []string{" trailing", "]", `[{"op": "read", "offset": 1}]`} {
		program, err := asm.ParseJSON(strings.NewReader(`[{"op": "load", "const": 8}]` + trailing))
		assert.ErrorIs(err, ErrSourceTrailing, trailing)
		assert.Nil(program, trailing)
	}

	program, err := asm.ParseJSON(strings.NewReader("[{\"op\": \"load\", \"const\": 8}]\n\t \n"))
	assert.NoError(err)
	assert.Equal([]isa.Instruction{isa.MakeLoad(8)}, program)
}
