package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
)

func writeCommand(args []string) {
	fs := flag.NewFlagSet("write", flag.ExitOnError)
	var (
		filename string
		addr     uint
		xip      bool
		verbose  bool
	)
	fs.StringVar(&filename, "f", "", "input file")
	fs.UintVar(&addr, "addr", 0, "start address")
	fs.BoolVar(&xip, "xip", false, "simulate execute-in-place")
	fs.BoolVar(&verbose, "v", false, "verbose bring-up logging")
	fs.Parse(args)

	if filename == "" {
		fatalUsage("input file is required")
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		fatalf("failed to read file: %v", err)
	}

	f, ctrl := newDevice(verbose, xip)
	before := len(ctrl.Records)

	if err := f.Write(uint32(addr), data); err != nil {
		fatalf("write flash failed: %v", err)
	}

	fmt.Printf("wrote %d bytes at %#08x:\n", len(data), addr)
	printPlan(ctrl.Records, before)

	readback := make([]byte, len(data))
	if err := f.Read(uint32(addr), readback); err != nil {
		fatalf("verify read failed: %v", err)
	}
	if !bytes.Equal(data, readback) {
		fatalf("verify failed: readback differs")
	}
	fmt.Println("verify OK")
}
