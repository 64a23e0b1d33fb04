package flexnor

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/physic"
)

// Geometry fixes the program/erase granularities of one chip model. All
// sizes are in bytes and immutable for a given part number.
type Geometry struct {
	Size       uint32
	SectorSize uint32
	BlockSize  uint32
	PageSize   uint32
}

// GeometryW25Q128JV is the 16 MiB W25Q128JV family layout.
var GeometryW25Q128JV = Geometry{
	Size:       16 << 20,
	SectorSize: 4 << 10,
	BlockSize:  64 << 10,
	PageSize:   256,
}

func (g Geometry) Validate() error {
	switch {
	case g.Size == 0 || g.SectorSize == 0 || g.BlockSize == 0 || g.PageSize == 0:
		return errors.Wrap(ErrConfig, "geometry sizes must be positive")
	case g.SectorSize > g.BlockSize || g.BlockSize > g.Size:
		return errors.Wrap(ErrConfig, "geometry must satisfy sector <= block <= total size")
	case g.Size%g.SectorSize != 0:
		return errors.Wrap(ErrConfig, "total size must be a multiple of the sector size")
	case g.BlockSize%g.SectorSize != 0:
		return errors.Wrap(ErrConfig, "block size must be a multiple of the sector size")
	}
	return nil
}

// DeviceConfig carries the per-chip bus parameters the controller needs:
// clock rate, chip-select timing, addressing mode and AHB write timing.
// Immutable after Init.
type DeviceConfig struct {
	// RootClock is the serial root clock fed to the flash.
	RootClock physic.Frequency

	// Chip-select timing, in serial clock cycles.
	CSInterval  uint16
	CSHoldTime  uint8
	CSSetupTime uint8

	DataValidTime uint8
	ColumnSpace   uint8

	// WordAddressable marks devices addressed in 16-bit words rather than
	// bytes.
	WordAddressable bool

	// AHB write wait, in AHB bus cycles.
	AHBWriteWaitInterval uint16

	Geometry Geometry
}

// DefaultDeviceConfig returns the timing used for the W25Q128JV reference
// board: 120 MHz root clock, byte addressing, two-cycle chip-select gaps.
func DefaultDeviceConfig() DeviceConfig {
	return DeviceConfig{
		RootClock:   120 * physic.MegaHertz,
		CSInterval:  2,
		CSHoldTime:  3,
		CSSetupTime: 3,
		Geometry:    GeometryW25Q128JV,
	}
}

func (c DeviceConfig) Validate() error {
	if c.RootClock <= 0 {
		return errors.Wrap(ErrConfig, "root clock must be positive")
	}
	return c.Geometry.Validate()
}
