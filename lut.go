package flexnor

import "github.com/pkg/errors"

// Sequence slots, matching the controller's execute-in-place layout. The
// controller's AHB read path is wired to SeqReadQuadIO at configuration time,
// so that slot must stay at index 0 regardless of what else the table holds.
type SeqID uint8

const (
	SeqReadQuadIO SeqID = iota // Fast Read Quad I/O, fixed AHB/XIP slot
	SeqReadStatus1
	SeqReadQuadOutput
	SeqWriteEnable
	SeqReadID
	SeqEraseSector
	SeqWriteStatus
	SeqReadStatus2
	SeqEraseBlock
	SeqPageProgram
	SeqPageProgramQuad
	SeqEraseChip
)

// lutSlots is the number of sequence slots the controller provides; lutSeqLen
// is the instruction capacity of one slot.
const (
	lutSlots  = 16
	lutSeqLen = 8
)

// Flash commands: [W25Q128|8.1.2 Instruction Set Table 1 and 2]
const (
	flashCmdWriteEnable     = 0x06
	flashCmdReadStatus1     = 0x05
	flashCmdReadStatus2     = 0x35
	flashCmdWriteStatus     = 0x01
	flashCmdReadID          = 0x9F
	flashCmdPageProgram     = 0x02
	flashCmdQuadPageProgram = 0x32 // Quad Input Page Program
	flashCmdSectorErase     = 0x20 // 4KB
	flashCmdBlockErase      = 0xD8 // 64KB
	flashCmdChipErase       = 0xC7
	flashCmdQuadRead        = 0x6B // Fast Read Quad Output
	flashCmdQuadIORead      = 0xEB // Fast Read Quad I/O
)

// LUTCmd is the kind of one lookup-table instruction.
type LUTCmd uint8

const (
	LUTCmdSDR      LUTCmd = iota // shift out the operand byte
	LUTCmdRAddrSDR               // shift out the row address, operand = bit count
	LUTCmdDummySDR               // idle clocks, operand = cycle count
	LUTCmdReadSDR                // read data phase
	LUTCmdWriteSDR               // write data phase
	LUTCmdStop
)

// PadWidth is the number of data lines an instruction drives.
type PadWidth uint8

const (
	Pads1 PadWidth = iota
	Pads2
	Pads4
)

// Instr is one lookup-table instruction: what to do, on how many pads, with
// an 8-bit operand whose meaning depends on the command kind.
type Instr struct {
	Cmd     LUTCmd
	Pads    PadWidth
	Operand uint8
}

// LUT is the controller's programmable sequence table. Read-only once a
// device has been configured with it.
type LUT [lutSlots][]Instr

const addr24 = 0x18 // 24-bit row address

// NORLUT returns the sequence table for the W25Q128JV family.
func NORLUT() *LUT {
	return &LUT{
		SeqReadQuadIO: {
			{LUTCmdSDR, Pads1, flashCmdQuadIORead},
			{LUTCmdRAddrSDR, Pads4, addr24},
			{LUTCmdDummySDR, Pads4, 0x06},
			{LUTCmdReadSDR, Pads4, 0x04},
		},
		SeqReadStatus1: {
			{LUTCmdSDR, Pads1, flashCmdReadStatus1},
			{LUTCmdReadSDR, Pads1, 0x04},
		},
		SeqReadQuadOutput: {
			{LUTCmdSDR, Pads1, flashCmdQuadRead},
			{LUTCmdRAddrSDR, Pads1, addr24},
			{LUTCmdDummySDR, Pads4, 0x08},
			{LUTCmdReadSDR, Pads4, 0x04},
		},
		SeqWriteEnable: {
			{LUTCmdSDR, Pads1, flashCmdWriteEnable},
			{LUTCmdStop, Pads1, 0x00},
		},
		SeqReadID: {
			{LUTCmdSDR, Pads1, flashCmdReadID},
			{LUTCmdReadSDR, Pads1, 0x04},
		},
		SeqEraseSector: {
			{LUTCmdSDR, Pads1, flashCmdSectorErase},
			{LUTCmdRAddrSDR, Pads1, addr24},
		},
		SeqWriteStatus: {
			{LUTCmdSDR, Pads1, flashCmdWriteStatus},
			{LUTCmdWriteSDR, Pads1, 0x04},
		},
		SeqReadStatus2: {
			{LUTCmdSDR, Pads1, flashCmdReadStatus2},
			{LUTCmdReadSDR, Pads1, 0x04},
		},
		SeqEraseBlock: {
			{LUTCmdSDR, Pads1, flashCmdBlockErase},
			{LUTCmdRAddrSDR, Pads1, addr24},
		},
		SeqPageProgram: {
			{LUTCmdSDR, Pads1, flashCmdPageProgram},
			{LUTCmdRAddrSDR, Pads1, addr24},
			{LUTCmdWriteSDR, Pads1, 0x04},
			{LUTCmdStop, Pads1, 0x00},
		},
		SeqPageProgramQuad: {
			{LUTCmdSDR, Pads1, flashCmdQuadPageProgram},
			{LUTCmdRAddrSDR, Pads1, addr24},
			{LUTCmdWriteSDR, Pads4, 0x04},
			{LUTCmdStop, Pads1, 0x00},
		},
		SeqEraseChip: {
			{LUTCmdSDR, Pads1, flashCmdChipErase},
			{LUTCmdStop, Pads1, 0x00},
		},
	}
}

// requiredSeqs lists every slot the driver issues transfers against.
var requiredSeqs = []SeqID{
	SeqReadQuadIO,
	SeqReadStatus1,
	SeqWriteEnable,
	SeqReadID,
	SeqEraseSector,
	SeqWriteStatus,
	SeqReadStatus2,
	SeqEraseBlock,
	SeqPageProgramQuad,
	SeqEraseChip,
}

// Validate checks that the table can back every operation the driver issues
// and that the execute-in-place read sequence sits at its contracted slot.
func (l *LUT) Validate() error {
	for _, id := range requiredSeqs {
		if len(l[id]) == 0 {
			return errors.Wrapf(ErrConfig, "sequence table slot %d is empty", id)
		}
	}
	for i, seq := range l {
		if len(seq) > lutSeqLen {
			return errors.Wrapf(ErrConfig, "sequence table slot %d holds %d instructions, limit is %d", i, len(seq), lutSeqLen)
		}
	}
	xip := l[SeqReadQuadIO]
	if xip[0].Cmd != LUTCmdSDR || xip[0].Operand != flashCmdQuadIORead {
		return errors.Wrap(ErrConfig, "execute-in-place slot does not hold a quad I/O read")
	}
	return nil
}
