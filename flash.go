package flexnor

import (
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

// Flash is one serial NOR chip attached to one controller port. All
// mutating operations are strictly ordered per device; concurrent Write or
// Erase calls on the same Flash from independent goroutines are not safe.
type Flash struct {
	controller Controller
	port       Port
	cfg        DeviceConfig
	geom       Geometry
	lut        *LUT
	logger     golog.Logger
	window     ExecutionWindow
	cache      CacheMaintainer

	// writeBuf, when non-nil, is the driver-owned scratch page the write
	// path stages chunks through (WithWriteBuffer).
	writeBuf []byte

	ready bool
	id    [3]byte
	name  string
}

// Parameters reports the chip family's program and erase characteristics.
type Parameters struct {
	// WriteUnitSize is the smallest programmable unit in bytes.
	WriteUnitSize uint32
	// EraseValue is the byte value of erased flash.
	EraseValue byte
}

// PageLayout reports the erase granularity as uniform addressable units for
// a storage layer above the driver.
type PageLayout struct {
	UnitCount uint32
	UnitSize  uint32
}

// NewFlash builds a device instance for one controller port. The device is
// not usable until Init has run.
func NewFlash(controller Controller, port Port, cfg DeviceConfig, opts ...Option) (*Flash, error) {
	if controller == nil {
		return nil, errors.Wrap(ErrInvalidArg, "controller is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f := &Flash{
		controller: controller,
		port:       port,
		cfg:        cfg,
		geom:       cfg.Geometry,
		lut:        NORLUT(),
		logger:     golog.Global(),
		window:     noopWindow{},
		cache:      noopCache{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Init runs the one-time bring-up handshake: program the device
// configuration and sequence table into the controller, read the chip
// identifier, then enable and verify quad transfer mode. Not re-entrant.
func (f *Flash) Init() error {
	if !f.controller.Ready() {
		return errors.Wrap(ErrNotReady, "flexspi controller")
	}

	if err := f.lut.Validate(); err != nil {
		return err
	}

	if f.controller.RunningXIP() {
		// Quiesce instruction fetches before touching the configuration.
		f.controller.WaitBusIdle()
	}

	if err := f.controller.ConfigureDevice(f.port, f.cfg, f.lut); err != nil {
		return errors.Wrapf(ErrConfig, "port %d: %v", f.port, err)
	}

	if err := f.busyWait(); err != nil {
		return err
	}
	if err := f.reset(); err != nil {
		return err
	}

	id, err := f.readJEDECID()
	if err != nil {
		return errors.WithMessage(err, "reading vendor id")
	}
	f.id = id
	f.name = flashName(id)
	if f.name == "" {
		f.logger.Infof("unknown flash id %X", id)
	} else {
		f.logger.Debugf("flash id %X (%s)", id, f.name)
	}

	if err := f.enableQuadMode(); err != nil {
		return errors.WithMessage(err, "enabling quad mode")
	}
	if err := f.busyWait(); err != nil {
		return err
	}
	if err := f.reset(); err != nil {
		return err
	}

	f.ready = true
	return nil
}

// ID returns the JEDEC id read during Init and the decoded part name, empty
// for unrecognized chips.
func (f *Flash) ID() ([3]byte, string) {
	return f.id, f.name
}

// Parameters implements the storage parameter query. NOR flash programs at
// byte granularity and erases to 0xFF.
func (f *Flash) Parameters() Parameters {
	return Parameters{WriteUnitSize: 1, EraseValue: 0xFF}
}

// PageLayout reports one uniform run of sector-sized units.
func (f *Flash) PageLayout() PageLayout {
	return PageLayout{
		UnitCount: f.geom.Size / f.geom.SectorSize,
		UnitSize:  f.geom.SectorSize,
	}
}

// Geometry returns the chip geometry the device was configured with.
func (f *Flash) Geometry() Geometry {
	return f.geom
}

// Read copies from the memory-mapped window into p. Flash contents are
// AHB-visible, so no bus transfer is issued.
func (f *Flash) Read(offset uint32, p []byte) error {
	if err := f.checkRange(offset, uint32(len(p))); err != nil {
		return err
	}
	copy(p, f.controller.AHBSlice(f.port, offset, uint32(len(p))))
	return nil
}

// Write programs len(p) bytes starting at offset. The request is split at
// page boundaries because the chip wraps the address within a page instead
// of advancing to the next one. Each chunk is bracketed by write-enable
// before and busy-wait plus a controller reset after.
//
// Write is not transactional: on a transfer failure it returns immediately,
// leaving chunks programmed before the failure committed and the rest
// untouched.
func (f *Flash) Write(offset uint32, p []byte) error {
	if !f.ready {
		return errors.Wrap(ErrNotReady, "device not initialized")
	}
	if err := f.checkRange(offset, uint32(len(p))); err != nil {
		return err
	}

	dst := f.controller.AHBSlice(f.port, offset, uint32(len(p)))

	if err := f.withExclusion(func() error {
		return f.programRange(offset, p)
	}); err != nil {
		return err
	}

	f.cache.InvalidateRange(dst)
	return nil
}

func (f *Flash) programRange(offset uint32, p []byte) error {
	for len(p) > 0 {
		chunk := f.geom.PageSize - offset%f.geom.PageSize
		if chunk > uint32(len(p)) {
			chunk = uint32(len(p))
		}

		src := p[:chunk]
		if f.writeBuf != nil {
			copy(f.writeBuf[:chunk], src)
			src = f.writeBuf[:chunk]
		}

		if err := f.writeEnable(); err != nil {
			return err
		}
		if err := f.pageProgram(offset, src); err != nil {
			return err
		}
		if err := f.busyWait(); err != nil {
			return err
		}
		if err := f.reset(); err != nil {
			return err
		}

		offset += chunk
		p = p[chunk:]
	}
	return nil
}

// Erase erases size bytes starting at offset. Both must be sector-aligned.
// The planner picks the coarsest legal granularity: a single chip erase for
// the exact full range, block erases when the range is block-aligned, sector
// erases otherwise. Fewer, larger erases spend less total time busy-waiting;
// chip erase cannot be bounded to a sub-range, so it is only legal for the
// whole address space.
//
// Erase has the same non-atomicity as Write: units erased before a failure
// stay erased.
func (f *Flash) Erase(offset, size uint32) error {
	if !f.ready {
		return errors.Wrap(ErrNotReady, "device not initialized")
	}
	if offset%f.geom.SectorSize != 0 {
		return errors.Wrapf(ErrInvalidArg, "offset %#x is not sector-aligned", offset)
	}
	if size%f.geom.SectorSize != 0 {
		return errors.Wrapf(ErrInvalidArg, "size %#x is not sector-aligned", size)
	}
	if err := f.checkRange(offset, size); err != nil {
		return err
	}

	dst := f.controller.AHBSlice(f.port, offset, size)

	if err := f.withExclusion(func() error {
		return f.eraseRange(offset, size)
	}); err != nil {
		return err
	}

	f.cache.InvalidateRange(dst)
	return nil
}

func (f *Flash) eraseRange(offset, size uint32) error {
	switch {
	case offset == 0 && size == f.geom.Size:
		f.logger.Debugf("erasing chip")
		return f.eraseUnit(SeqEraseChip, 0)

	case offset%f.geom.BlockSize == 0 && size%f.geom.BlockSize == 0:
		for n := size / f.geom.BlockSize; n > 0; n-- {
			f.logger.Debugf("erasing block at %#08x", offset)
			if err := f.eraseUnit(SeqEraseBlock, offset); err != nil {
				return err
			}
			offset += f.geom.BlockSize
		}

	default:
		for n := size / f.geom.SectorSize; n > 0; n-- {
			f.logger.Debugf("erasing sector at %#08x", offset)
			if err := f.eraseUnit(SeqEraseSector, offset); err != nil {
				return err
			}
			offset += f.geom.SectorSize
		}
	}
	return nil
}

// eraseUnit runs the full protocol for one erase transfer: write-enable,
// erase, busy-wait, controller reset.
func (f *Flash) eraseUnit(seq SeqID, offset uint32) error {
	if err := f.writeEnable(); err != nil {
		return err
	}
	if err := f.exec(&Transfer{
		DeviceAddress: offset,
		Port:          f.port,
		Type:          TransferCommand,
		SeqIndex:      seq,
		SeqNumber:     1,
	}); err != nil {
		return err
	}
	if err := f.busyWait(); err != nil {
		return err
	}
	return f.reset()
}

// withExclusion runs op inside the exclusive execution window when the
// controller is serving instruction fetches from this flash. No flash read
// may happen inside the window; everything op touches must live in RAM.
func (f *Flash) withExclusion(op func() error) error {
	if f.controller.RunningXIP() {
		f.window.Enter()
		defer f.window.Exit()
	}
	return op()
}

// exec hands one transfer to the controller, unchanged. No retries.
func (f *Flash) exec(xfer *Transfer) error {
	if err := f.controller.Transfer(xfer); err != nil {
		return &TransferError{Seq: xfer.SeqIndex, Cause: err}
	}
	return nil
}

func (f *Flash) reset() error {
	if err := f.controller.Reset(); err != nil {
		return errors.WithMessage(err, "controller reset")
	}
	return nil
}

func (f *Flash) writeEnable() error {
	return f.exec(&Transfer{
		Port:      f.port,
		Type:      TransferCommand,
		SeqIndex:  SeqWriteEnable,
		SeqNumber: 1,
	})
}

func (f *Flash) readStatus() (StatusRegister, error) {
	buf := make([]byte, 1)
	err := f.exec(&Transfer{
		Port:      f.port,
		Type:      TransferRead,
		SeqIndex:  SeqReadStatus1,
		SeqNumber: 1,
		Data:      buf,
	})
	return StatusRegister(buf[0]), err
}

func (f *Flash) readStatus2() (uint8, error) {
	buf := make([]byte, 1)
	err := f.exec(&Transfer{
		Port:      f.port,
		Type:      TransferRead,
		SeqIndex:  SeqReadStatus2,
		SeqNumber: 1,
		Data:      buf,
	})
	return buf[0], err
}

// writeStatus writes up to two status registers in one transfer.
func (f *Flash) writeStatus(regs []byte) error {
	if len(regs) > 2 {
		return errors.Wrap(ErrInvalidArg, "cannot write more than 2 status registers")
	}
	return f.exec(&Transfer{
		Port:      f.port,
		Type:      TransferWrite,
		SeqIndex:  SeqWriteStatus,
		SeqNumber: 1,
		Data:      regs,
	})
}

// busyWait polls status register 1 until the chip clears its busy bit.
// There is no bound: an unresponsive chip blocks the caller indefinitely.
func (f *Flash) busyWait() error {
	for {
		sr, err := f.readStatus()
		if err != nil {
			return err
		}
		if !sr.Busy() {
			return nil
		}
		f.logger.Debugf("flash busy: %v", sr)
	}
}

func (f *Flash) readJEDECID() ([3]byte, error) {
	buf := make([]byte, 3)
	err := f.exec(&Transfer{
		Port:      f.port,
		Type:      TransferRead,
		SeqIndex:  SeqReadID,
		SeqNumber: 1,
		Data:      buf,
	})
	return [3]byte(buf), err
}

// enableQuadMode sets the QE bit in status register 2 and verifies it took
// effect, then resets the controller to resynchronize its timing to the new
// transfer width. Any readback other than the QE pattern fails the
// bring-up; the device is never marked ready in single-wire mode.
func (f *Flash) enableQuadMode() error {
	if err := f.writeEnable(); err != nil {
		return err
	}
	if err := f.writeStatus([]byte{0x00, quadEnable}); err != nil {
		return errors.WithMessage(err, "writing status register")
	}
	if err := f.busyWait(); err != nil {
		return err
	}

	sr2, err := f.readStatus2()
	if err != nil {
		return err
	}
	if sr2 != quadEnable {
		return errors.Wrapf(ErrIO, "quad mode not confirmed: status register 2 is %#02x", sr2)
	}

	if err := f.busyWait(); err != nil {
		return err
	}
	return f.reset()
}

func (f *Flash) pageProgram(offset uint32, data []byte) error {
	f.logger.Debugf("page programming %d bytes at %#08x", len(data), offset)
	return f.exec(&Transfer{
		DeviceAddress: offset,
		Port:          f.port,
		Type:          TransferWrite,
		SeqIndex:      SeqPageProgramQuad,
		SeqNumber:     1,
		Data:          data,
	})
}

func (f *Flash) checkRange(offset, n uint32) error {
	if uint64(offset)+uint64(n) > uint64(f.geom.Size) {
		return errors.Wrapf(ErrInvalidArg, "range [%#x, %#x) exceeds flash size %#x",
			offset, uint64(offset)+uint64(n), f.geom.Size)
	}
	return nil
}
