// Package flexnor drives quad-capable serial NOR flash behind a FlexSPI-style
// bus controller. The controller does not shift raw byte streams; it executes
// pre-programmed instruction sequences from a lookup table, and it maps the
// flash contents into the AHB address space for direct reads. The driver
// translates byte-addressed read/write/erase requests into chip-correct
// sequences of transfers, honoring page/sector/block granularities, the
// write-enable latch, and the busy-polling protocol, and stays safe to run
// while the same flash also serves instruction fetches (execute-in-place).
//
// # References:
//
// SPI Flash
//   - [W25Q128]: W25Q128JV-DTR Winbond Serial Flash Memory (https://www.winbond.com/resource-files/W25Q128JV_DTR%20RevD%2012232024%20Plus.pdf)
//
// Bus controller
//   - [IMXRT1060RM]: i.MX RT1060 Processor Reference Manual, Chapter 27: FlexSPI
//   - [AN12564]: NXP AN12564, FlexSPI NOR memory interfacing and execute-in-place
package flexnor
