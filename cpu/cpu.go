package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"math"

	"github.com/ezrec/uisa/isa"
)

// Cpu is the simulation context of the μISA interpreter.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ip     int    // Current instruction pointer.
	Length int    // Length of the loaded program.
	Memory Memory // Unified code and data memory.
	Stack  Stack  // Operand stack.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU with cleared memory.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 6s: %04x\n", "ip", cpu.Ip)
	text += fmt.Sprintf("% 6s: %04x\n", "length", cpu.Length)
	text += fmt.Sprintf("% 6s: %d\n", "depth", cpu.Stack.Depth())

	val, ok := cpu.Stack.Peek()
	if ok {
		text += fmt.Sprintf("% 6s: %06X\n", "stack", val)
	} else {
		text += fmt.Sprintf("% 6s: ------\n", "stack")
	}

	return
}

// Reset the CPU state.
// - Clears memory and stack.
// - Zeros the instruction pointer, program length and tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	cpu.Stack.Reset()
	cpu.Ip = 0
	cpu.Length = 0
	cpu.Ticks = 0
}

// Load copies a program into memory at address 0.
func (cpu *Cpu) Load(program []byte) (err error) {
	if len(program) > MEMORY_SIZE {
		err = ErrAddress{Start: 0, End: len(program) - 1}
		return
	}

	copy(cpu.Memory[:], program)
	cpu.Length = len(program)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", cpu.Length)
	}

	return
}

// Done returns true once the IP has run off the end of the program.
func (cpu *Cpu) Done() bool {
	return cpu.Ip >= cpu.Length
}

// Dump returns the (address, value) pairs of memory from start to end, inclusive.
func (cpu *Cpu) Dump(start, end int) (iter.Seq2[int, uint8], error) {
	return cpu.Memory.Range(start, end)
}

// FetchCode decodes the instruction at the IP.
func (cpu *Cpu) FetchCode() (ins isa.Instruction, err error) {
	if cpu.Ip < 0 || cpu.Ip >= MEMORY_SIZE {
		err = ErrAddress{Start: cpu.Ip, End: cpu.Ip}
		return
	}

	ins, err = isa.Decode(cpu.Memory[cpu.Ip:])
	if errors.Is(err, isa.ErrTruncated) {
		err = ErrAddress{Start: cpu.Ip, End: cpu.Ip + isa.Tag(cpu.Memory[cpu.Ip]).Width() - 1}
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	ins, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(ins)

	return
}

// Execute executes a single decoded instruction.
// The IP only advances if the instruction succeeds.
func (cpu *Cpu) Execute(ins isa.Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(ins), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%04x: %v", cpu.Ip, ins)
	}

	switch ins.Op {
	case isa.OP_LOAD:
		cpu.Stack.Push(ins.Const)
	case isa.OP_READ:
		var addr int
		addr, err = cpu.popAddress(ins.Offset)
		if err != nil {
			return
		}
		cpu.Stack.Push(uint32(cpu.Memory[addr]))
	case isa.OP_STORE:
		value, ok := cpu.Stack.Pop()
		if !ok {
			err = ErrStackUnderflow
			return
		}
		var addr int
		addr, err = cpu.address(uint64(ins.Addr))
		if err != nil {
			return
		}
		cpu.Memory[addr] = uint8(value)
	case isa.OP_SQRT:
		var src int
		src, err = cpu.popAddress(ins.Offset)
		if err != nil {
			return
		}
		var dst int
		dst, err = cpu.address(uint64(ins.Addr))
		if err != nil {
			return
		}
		var root uint32
		root, err = Sqrt(int64(cpu.Memory[src]))
		if err != nil {
			return
		}
		cpu.Memory[dst] = uint8(root)
	default:
		err = ErrUnknownOpcode
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %v", cpu.Stack.Data)
	}

	cpu.Ip += ins.Width()
	cpu.Ticks++

	return
}

// popAddress pops a base address from the stack, and adds an offset.
func (cpu *Cpu) popAddress(offset uint32) (addr int, err error) {
	base, ok := cpu.Stack.Pop()
	if !ok {
		err = ErrStackUnderflow
		return
	}

	return cpu.address(uint64(base) + uint64(offset))
}

// address validates a computed memory address.
func (cpu *Cpu) address(addr uint64) (int, error) {
	if !cpu.Memory.Contains(addr) {
		return 0, ErrAddress{Start: int(addr), End: int(addr)}
	}

	return int(addr), nil
}

// Sqrt returns floor(sqrt(value)). Negative values fail with ErrDomain.
func Sqrt(value int64) (root uint32, err error) {
	if value < 0 {
		err = ErrDomain
		return
	}

	root = uint32(math.Sqrt(float64(value)))

	// float64 rounding can land one off for large values.
	for uint64(root)*uint64(root) > uint64(value) {
		root--
	}
	for next := uint64(root) + 1; next*next <= uint64(value); next++ {
		root++
	}

	return
}
