// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ezrec/uisa/asm"
	"github.com/ezrec/uisa/io"
)

// assembleFile assembles input into output. The code is only returned
// once the output file has been written and closed.
func assembleFile(input string, output string, verbose bool) (code []byte, err error) {
	inf, err := os.Open(input)
	if err != nil {
		return
	}
	defer inf.Close()

	assembler := &asm.Assembler{Verbose: verbose}

	prog, err := assembler.Parse(input, inf)
	if err != nil {
		return
	}

	bin, err := assembler.Assemble(prog)
	if err != nil {
		return
	}

	ouf, err := os.Create(output)
	if err != nil {
		return
	}

	err = io.WriteProgram(ouf, bin)
	if err == nil {
		err = ouf.Close()
	} else {
		ouf.Close()
	}
	if err != nil {
		return
	}

	code = bin
	return
}

func main() {
	var input string
	var output string
	var trace bool
	var verbose bool

	flag.StringVar(&input, "i", "", "Source file to assemble (.json or text)")
	flag.StringVar(&output, "o", "", "Binary file to write")
	flag.BoolVar(&trace, "t", false, "Print the assembled bytes as hex")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	// uasm <input> <output> <true|false>
	if flag.NArg() == 3 && len(input) == 0 && len(output) == 0 {
		input = flag.Arg(0)
		output = flag.Arg(1)
		trace = strings.EqualFold(flag.Arg(2), "true")
	} else if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(input) == 0 || len(output) == 0 {
		log.Fatalf("usage: %v -i <source> -o <binary> [-t] [-v]", os.Args[0])
	}

	code, err := assembleFile(input, output, verbose)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	// Traced only once the binary has landed.
	if trace {
		fmt.Println(asm.Hex(code))
	}
}
