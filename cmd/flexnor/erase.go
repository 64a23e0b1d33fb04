package main

import (
	"flag"
	"fmt"
)

func eraseCommand(args []string) {
	fs := flag.NewFlagSet("erase", flag.ExitOnError)
	var (
		addr    uint
		size    uint
		all     bool
		xip     bool
		verbose bool
	)
	fs.UintVar(&addr, "addr", 0, "start address (sector-aligned)")
	fs.UintVar(&size, "size", 0, "number of bytes to erase (sector-aligned)")
	fs.BoolVar(&all, "all", false, "erase the entire chip")
	fs.BoolVar(&xip, "xip", false, "simulate execute-in-place")
	fs.BoolVar(&verbose, "v", false, "verbose bring-up logging")
	fs.Parse(args)

	f, ctrl := newDevice(verbose, xip)
	if all {
		addr = 0
		size = uint(f.Geometry().Size)
	}
	if size == 0 {
		fatalUsage("erase size is required")
	}

	before := len(ctrl.Records)
	if err := f.Erase(uint32(addr), uint32(size)); err != nil {
		fatalf("erase flash failed: %v", err)
	}

	fmt.Printf("erased %d bytes at %#08x:\n", size, addr)
	printPlan(ctrl.Records, before)
}
