// Command flexnor exercises the NOR flash driver against the simulated
// controller: it runs the bring-up handshake, performs read/write/erase
// requests, and reports the transfer plan the engine generated. Useful for
// inspecting how a request decomposes into transfers without hardware.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/edaniels/golog"
	"github.com/gentam/flexnor"
)

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

func fatalUsage(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(2)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
	flexnor <command> [arguments]

Commands:
	info	 print device identification and geometry
	read	 read flash memory
	write	 write flash memory and verify
	erase	 erase a flash range and report the erase plan
`)
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
	}

	switch cmd := flag.Arg(0); cmd {
	case "info":
		infoCommand(flag.Args()[1:])
	case "read":
		readCommand(flag.Args()[1:])
	case "write":
		writeCommand(flag.Args()[1:])
	case "erase":
		eraseCommand(flag.Args()[1:])
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %q\n", cmd)
		usage()
	}
}

var w25q128jvID = [3]byte{0xEF, 0x40, 0x18}

// newDevice builds a flash device over the simulated controller and runs
// the bring-up handshake.
func newDevice(verbose, xip bool) (*flexnor.Flash, *flexnor.FakeController) {
	ctrl := flexnor.NewFakeController(flexnor.GeometryW25Q128JV, w25q128jvID)
	ctrl.XIP = xip

	logger := golog.NewDevelopmentLogger("flexnor")
	if !verbose {
		logger = golog.NewLogger("flexnor")
	}

	f, err := flexnor.NewFlash(ctrl, 0, flexnor.DefaultDeviceConfig(),
		flexnor.WithLogger(logger),
		flexnor.WithWriteBuffer(),
	)
	if err != nil {
		fatalf("%v", err)
	}
	if err := f.Init(); err != nil {
		fatalf("flash bring-up failed: %v", err)
	}
	return f, ctrl
}

var seqNames = map[flexnor.SeqID]string{
	flexnor.SeqReadQuadIO:      "read-quad-io",
	flexnor.SeqReadStatus1:     "read-status-1",
	flexnor.SeqReadQuadOutput:  "read-quad-output",
	flexnor.SeqWriteEnable:     "write-enable",
	flexnor.SeqReadID:          "read-id",
	flexnor.SeqEraseSector:     "erase-sector",
	flexnor.SeqWriteStatus:     "write-status",
	flexnor.SeqReadStatus2:     "read-status-2",
	flexnor.SeqEraseBlock:      "erase-block",
	flexnor.SeqPageProgram:     "page-program",
	flexnor.SeqPageProgramQuad: "page-program-quad",
	flexnor.SeqEraseChip:       "erase-chip",
}

// printPlan dumps the transfers issued after the given log position.
func printPlan(records []flexnor.TransferRecord, since int) {
	for _, r := range records[since:] {
		name := seqNames[r.Seq]
		switch r.Seq {
		case flexnor.SeqPageProgram, flexnor.SeqPageProgramQuad:
			fmt.Printf("  %-18s addr=%#08x len=%d\n", name, r.Addr, r.Len)
		case flexnor.SeqEraseSector, flexnor.SeqEraseBlock:
			fmt.Printf("  %-18s addr=%#08x\n", name, r.Addr)
		case flexnor.SeqEraseChip:
			fmt.Printf("  %-18s\n", name)
		}
	}
	fmt.Printf("  %d transfers total\n", len(records)-since)
}
