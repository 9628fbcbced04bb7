// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/ezrec/uisa/emulator"
	"github.com/ezrec/uisa/io"
	"github.com/ezrec/uisa/translate"
)

func main() {
	var binary string
	var dump string
	var start int
	var end int
	var verbose bool

	flag.StringVar(&binary, "b", "", "Binary program to run")
	flag.StringVar(&dump, "d", "", "CSV file to dump memory into")
	flag.IntVar(&start, "s", 0, "First address to dump")
	flag.IntVar(&end, "e", -1, "Last address to dump")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	// uvm <binary> <dump> <start> <end>
	if flag.NArg() == 4 && len(binary) == 0 && len(dump) == 0 {
		binary = flag.Arg(0)
		dump = flag.Arg(1)
		var err error
		start, err = strconv.Atoi(flag.Arg(2))
		if err != nil {
			log.Fatalf("%v: start: %v", os.Args[0], err)
		}
		end, err = strconv.Atoi(flag.Arg(3))
		if err != nil {
			log.Fatalf("%v: end: %v", os.Args[0], err)
		}
	} else if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(binary) == 0 || len(dump) == 0 || end < 0 {
		log.Fatalf("usage: %v -b <binary> -d <dump.csv> -s <start> -e <end> [-v]", os.Args[0])
	}

	inf, err := os.Open(binary)
	if err != nil {
		log.Fatalf("%v: %v", binary, err)
	}
	code, err := io.ReadProgram(inf)
	inf.Close()
	if err != nil {
		log.Fatalf("%v: %v", binary, err)
	}

	emu := emulator.NewEmulator()
	emu.Program = code
	emu.Verbose = verbose

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", binary, err)
	}

	// The dump is written even if the program halts on an error.
	runErr := emu.Run()
	if runErr != nil {
		log.Printf("%v: %v", binary, runErr)
		if verbose {
			log.Printf("%v: state\n%v", binary, emu.Cpu.String())
		}
	}

	cells, err := emu.Dump(start, end)
	if err != nil {
		log.Fatalf("%v: %v", dump, err)
	}

	ouf, err := os.Create(dump)
	if err != nil {
		log.Fatalf("%v: %v", dump, err)
	}

	err = io.WriteDump(ouf, cells)
	if err == nil {
		err = ouf.Close()
	} else {
		ouf.Close()
	}
	if err != nil {
		log.Fatalf("%v: %v", dump, err)
	}

	if runErr != nil {
		os.Exit(1)
	}

	log.Printf("%v: %v instructions executed, memory dumped to %v", binary, translate.Number(emu.Ticks()), dump)
}
