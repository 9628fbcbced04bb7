package emulator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/uisa/cpu"
	"github.com/ezrec/uisa/isa"
)

func assemble(t *testing.T, program ...isa.Instruction) (code []byte) {
	for _, ins := range program {
		var err error
		code, err = ins.Append(code)
		if err != nil {
			t.Fatal(err)
		}
	}
	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Empty(emu.Program)

	assert.NoError(emu.Reset())
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.NoError(emu.Run())
}

func TestEmulatorSingle(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = assemble(t,
		isa.MakeLoad(90),
		isa.MakeLoad(0),
		isa.MakeRead(30),
		isa.MakeStore(100),
		isa.MakeSqrt(101, 10),
	)

	assert.NoError(emu.Reset())
	emu.Cpu.Memory[30] = 121

	steps := []struct {
		ip    int
		depth int
	}{
		{4, 1},
		{8, 2},
		{9, 2},
		{13, 1},
		{18, 0},
	}

	for n, step := range steps {
		done, err := emu.Tick()
		assert.NoError(err, "step %d", n)
		assert.Equal(step.ip, emu.Ip(), "step %d", n)
		assert.Equal(step.depth, emu.Cpu.Stack.Depth(), "step %d", n)
		assert.Equal(n == len(steps)-1, done, "step %d", n)
	}

	assert.Equal(uint8(121), emu.Cpu.Memory[100])
	assert.Equal(uint8(11), emu.Cpu.Memory[101])
	assert.Equal(5, emu.Ticks())
}

func TestEmulatorScenario(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = assemble(t,
		isa.MakeLoad(8),
		isa.MakeRead(25),
		isa.MakeStore(218),
		isa.MakeSqrt(697, 24),
	)
	assert.NoError(emu.Reset())

	err := emu.Run()
	assert.ErrorIs(err, cpu.ErrStackUnderflow)

	var rt *ErrRuntime
	assert.True(errors.As(err, &rt))
	assert.Equal(9, rt.Ip)
	assert.Contains(err.Error(), "stack underflow")

	// The dump still covers the halted memory.
	seq, err := emu.Dump(0, 100)
	assert.NoError(err)
	var values []uint8
	for addr, value := range seq {
		assert.Equal(len(values), addr)
		values = append(values, value)
	}
	assert.Equal(101, len(values))
	assert.Equal(emu.Program, values[:len(emu.Program)])
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = assemble(t, isa.MakeLoad(0x2a), isa.MakeStore(50))

	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())
	assert.Equal(uint8(0x2a), emu.Cpu.Memory[50])

	// A reset discards the prior run.
	emu.Program = assemble(t, isa.MakeRead(0))
	assert.NoError(emu.Reset())
	assert.Equal(uint8(0), emu.Cpu.Memory[50])
	assert.Equal(1, emu.Cpu.Length)
	assert.ErrorIs(emu.Run(), cpu.ErrStackUnderflow)

	emu.Program = make([]byte, cpu.MEMORY_SIZE+1)
	assert.ErrorIs(emu.Reset(), cpu.ErrOutOfBounds)
}

func TestEmulatorUnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = append(assemble(t, isa.MakeLoad(1)), 0xa0)
	assert.NoError(emu.Reset())

	err := emu.Run()
	assert.ErrorIs(err, cpu.ErrUnknownOpcode)
	assert.ErrorIs(err, isa.ErrUnknownOpcode)
	assert.Equal(4, emu.Ip())
	assert.Equal([]uint32{1}, emu.Cpu.Stack.Data)
}
