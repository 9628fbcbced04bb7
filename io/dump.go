package io

import (
	"encoding/csv"
	"io"
	"iter"
	"strconv"
)

// DUMP_HEADER is the first row of a memory dump.
var DUMP_HEADER = []string{"address", "value"}

// WriteDump writes (address, value) pairs as CSV rows, after a header row.
// Rows end in CRLF.
func WriteDump(w io.Writer, cells iter.Seq2[int, uint8]) (err error) {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	err = cw.Write(DUMP_HEADER)
	if err != nil {
		return
	}

	for addr, value := range cells {
		err = cw.Write([]string{strconv.Itoa(addr), strconv.Itoa(int(value))})
		if err != nil {
			return
		}
	}

	cw.Flush()
	err = cw.Error()

	return
}
