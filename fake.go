package flexnor

import "github.com/pkg/errors"

// TransferRecord captures one issued transfer for assertions.
type TransferRecord struct {
	Seq  SeqID
	Type TransferType
	Addr uint32
	Len  int
}

// FakeController implements Controller against an in-memory chip model:
// status registers with write-enable latch and busy bit, page-wrapped
// programming, erase fills, and a transfer log. The package tests and the
// flexnor CLI use it as a bring-up harness.
type FakeController struct {
	// NotReady reports the controller as uninitialized.
	NotReady bool
	// XIP reports execute-in-place as active.
	XIP bool
	// RejectConfig makes ConfigureDevice fail.
	RejectConfig bool
	// BusyPolls is how many consecutive busy reads the chip reports after
	// each mutating transfer.
	BusyPolls int
	// IgnoreStatusWrites simulates a chip whose status-register writes do
	// not stick, so quad bring-up fails verification.
	IgnoreStatusWrites bool
	// FailTransfer, when set, is consulted before executing a transfer and
	// may inject an error.
	FailTransfer func(xfer *Transfer) error

	// Records holds every transfer that reached the chip model.
	Records      []TransferRecord
	Resets       int
	BusIdleWaits int

	id         [3]byte
	geom       Geometry
	mem        []byte
	wel        bool
	sr2        uint8
	busyLeft   int
	lut        *LUT
	configured bool
}

// NewFakeController returns a controller with an erased chip of the given
// geometry behind it.
func NewFakeController(geom Geometry, id [3]byte) *FakeController {
	mem := make([]byte, geom.Size)
	for i := range mem {
		mem[i] = 0xFF
	}
	return &FakeController{id: id, geom: geom, mem: mem}
}

func (c *FakeController) Ready() bool { return !c.NotReady }

func (c *FakeController) ConfigureDevice(port Port, cfg DeviceConfig, lut *LUT) error {
	if c.RejectConfig {
		return errors.New("device configuration rejected")
	}
	c.lut = lut
	c.configured = true
	return nil
}

func (c *FakeController) Reset() error {
	c.Resets++
	return nil
}

func (c *FakeController) WaitBusIdle() { c.BusIdleWaits++ }

func (c *FakeController) RunningXIP() bool { return c.XIP }

func (c *FakeController) AHBSlice(port Port, offset, n uint32) []byte {
	return c.mem[offset : offset+n]
}

func (c *FakeController) Transfer(xfer *Transfer) error {
	if !c.configured {
		return errors.New("no device configured on port")
	}
	if xfer.SeqNumber != 1 {
		return errors.Errorf("unsupported sequence count %d", xfer.SeqNumber)
	}
	if c.FailTransfer != nil {
		if err := c.FailTransfer(xfer); err != nil {
			return err
		}
	}

	c.Records = append(c.Records, TransferRecord{
		Seq:  xfer.SeqIndex,
		Type: xfer.Type,
		Addr: xfer.DeviceAddress,
		Len:  len(xfer.Data),
	})

	switch xfer.SeqIndex {
	case SeqReadID:
		copy(xfer.Data, c.id[:])

	case SeqReadStatus1:
		var sr byte
		if c.wel {
			sr |= 1 << 1
		}
		if c.busyLeft > 0 {
			sr |= 1
			c.busyLeft--
		}
		xfer.Data[0] = sr

	case SeqReadStatus2:
		xfer.Data[0] = c.sr2

	case SeqWriteEnable:
		c.wel = true

	case SeqWriteStatus:
		if err := c.consumeWEL(); err != nil {
			return err
		}
		if !c.IgnoreStatusWrites && len(xfer.Data) > 1 {
			c.sr2 = xfer.Data[1]
		}
		c.busyLeft = c.BusyPolls

	case SeqPageProgram, SeqPageProgramQuad:
		if err := c.consumeWEL(); err != nil {
			return err
		}
		c.program(xfer.DeviceAddress, xfer.Data)
		c.busyLeft = c.BusyPolls

	case SeqEraseSector:
		if err := c.consumeWEL(); err != nil {
			return err
		}
		c.fill(xfer.DeviceAddress&^(c.geom.SectorSize-1), c.geom.SectorSize)
		c.busyLeft = c.BusyPolls

	case SeqEraseBlock:
		if err := c.consumeWEL(); err != nil {
			return err
		}
		c.fill(xfer.DeviceAddress&^(c.geom.BlockSize-1), c.geom.BlockSize)
		c.busyLeft = c.BusyPolls

	case SeqEraseChip:
		if err := c.consumeWEL(); err != nil {
			return err
		}
		c.fill(0, c.geom.Size)
		c.busyLeft = c.BusyPolls

	case SeqReadQuadIO, SeqReadQuadOutput:
		copy(xfer.Data, c.mem[xfer.DeviceAddress:])

	default:
		return errors.Errorf("invalid sequence index %d", xfer.SeqIndex)
	}
	return nil
}

// consumeWEL enforces the write-enable latch: every mutating transfer must
// be immediately authorized, and the latch auto-clears after one use.
func (c *FakeController) consumeWEL() error {
	if !c.wel {
		return errors.New("write enable latch not set")
	}
	c.wel = false
	return nil
}

// program models NOR programming: bits only clear, and the address wraps
// within the page rather than advancing into the next one.
func (c *FakeController) program(addr uint32, data []byte) {
	page := addr &^ (c.geom.PageSize - 1)
	off := addr & (c.geom.PageSize - 1)
	for i, b := range data {
		c.mem[page+(off+uint32(i))%c.geom.PageSize] &= b
	}
}

func (c *FakeController) fill(start, size uint32) {
	for i := uint32(0); i < size; i++ {
		c.mem[start+i] = 0xFF
	}
}

// SetBusy makes the chip report busy for the next n status reads.
func (c *FakeController) SetBusy(n int) { c.busyLeft = n }

// CountingWindow records execution window entries and exits.
type CountingWindow struct {
	Enters int
	Exits  int
}

func (w *CountingWindow) Enter() { w.Enters++ }
func (w *CountingWindow) Exit()  { w.Exits++ }

// RecordingCache records the length of every invalidated range.
type RecordingCache struct {
	Invalidated []int
}

func (c *RecordingCache) InvalidateRange(mem []byte) {
	c.Invalidated = append(c.Invalidated, len(mem))
}
