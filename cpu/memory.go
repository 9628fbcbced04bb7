package cpu

import (
	"iter"
)

const (
	MEMORY_SIZE = 65536 // Number of byte-wide memory cells.
)

// Memory is the unified code and data address space.
type Memory [MEMORY_SIZE]uint8

// Contains returns true if addr names a memory cell.
func (mem *Memory) Contains(addr uint64) bool {
	return addr < MEMORY_SIZE
}

// Range returns the (address, value) pairs from start to end, inclusive.
func (mem *Memory) Range(start, end int) (seq iter.Seq2[int, uint8], err error) {
	if start < 0 || end < start || end >= MEMORY_SIZE {
		err = ErrAddress{Start: start, End: end}
		return
	}

	seq = func(yield func(addr int, value uint8) bool) {
		for addr := start; addr <= end; addr++ {
			if !yield(addr, mem[addr]) {
				return
			}
		}
	}

	return
}
