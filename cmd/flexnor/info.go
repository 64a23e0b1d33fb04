package main

import (
	"flag"
	"fmt"
)

func infoCommand(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	verbose := fs.Bool("v", false, "verbose bring-up logging")
	fs.Parse(args)

	f, ctrl := newDevice(*verbose, false)

	id, name := f.ID()
	if name == "" {
		name = "unknown"
	}
	geom := f.Geometry()
	params := f.Parameters()
	layout := f.PageLayout()

	fmt.Printf("JEDEC ID:     %X (%s)\n", id, name)
	fmt.Printf("Size:         %d bytes\n", geom.Size)
	fmt.Printf("Sector size:  %d\n", geom.SectorSize)
	fmt.Printf("Block size:   %d\n", geom.BlockSize)
	fmt.Printf("Page size:    %d\n", geom.PageSize)
	fmt.Printf("Write unit:   %d byte(s)\n", params.WriteUnitSize)
	fmt.Printf("Erase value:  %#02x\n", params.EraseValue)
	fmt.Printf("Layout:       %d units x %d bytes\n", layout.UnitCount, layout.UnitSize)
	fmt.Printf("Bring-up:     %d transfers, %d controller resets\n", len(ctrl.Records), ctrl.Resets)
}
