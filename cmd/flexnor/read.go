package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
)

func readCommand(args []string) {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	var (
		addr    uint
		nread   int
		outFile string
		verbose bool
	)
	fs.UintVar(&addr, "addr", 0, "start address")
	fs.IntVar(&nread, "n", 256, "number of bytes to read")
	fs.StringVar(&outFile, "o", "", "output file (default: hexdump)")
	fs.BoolVar(&verbose, "v", false, "verbose bring-up logging")
	fs.Parse(args)

	f, ctrl := newDevice(verbose, false)
	before := len(ctrl.Records)

	data := make([]byte, nread)
	if err := f.Read(uint32(addr), data); err != nil {
		fatalf("read flash failed: %v", err)
	}

	if n := len(ctrl.Records) - before; n != 0 {
		// Reads are memory-mapped; any transfer here is a driver bug.
		fatalf("read issued %d unexpected transfers", n)
	}

	if outFile == "" {
		fmt.Print(hex.Dump(data))
		return
	}
	if err := os.WriteFile(outFile, data, 0644); err != nil {
		fatalf("write file failed: %v", err)
	}
}
