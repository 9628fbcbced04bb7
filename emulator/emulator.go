// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"iter"
	"log"

	"github.com/ezrec/uisa/cpu"
)

// Emulator state. CPU + loaded program.
type Emulator struct {
	Verbose  bool   // If set, enables verbose logging.
	*cpu.Cpu        // Reference to the CPU simulation.
	Program  []byte // Binary program, loaded at address 0 on reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	return
}

// Reset clears the CPU and loads the program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Program)

	return
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int {
	return emu.Cpu.Ip
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.Done() {
		done = true
		return
	}

	ip := emu.Cpu.Ip
	err = emu.Cpu.Tick()
	if err != nil {
		err = &ErrRuntime{Ip: ip, Err: err}
		return
	}

	done = emu.Cpu.Done()

	return
}

// Run ticks the emulator until the program ends, or an error halts it.
// Memory is left as the failing instruction found it.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			if emu.Verbose {
				log.Printf("emulator: halted: %v", err)
			}
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: done after %d ticks", emu.Ticks())
	}

	return
}

// Dump returns the (address, value) pairs of memory from start to end, inclusive.
func (emu *Emulator) Dump(start, end int) (iter.Seq2[int, uint8], error) {
	return emu.Cpu.Dump(start, end)
}
