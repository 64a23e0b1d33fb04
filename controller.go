package flexnor

// Port identifies which chip-select line on the controller a device uses.
type Port uint8

// TransferType selects the data phase of a transfer.
type TransferType uint8

const (
	// TransferCommand issues the sequence with no data phase.
	TransferCommand TransferType = iota
	// TransferRead issues the sequence and fills Data from the bus.
	TransferRead
	// TransferWrite issues the sequence and shifts Data out.
	TransferWrite
)

// Transfer describes one bus transaction: which sequence to execute, against
// which address, and the data phase if any. Transfers are constructed per
// call and not reused.
type Transfer struct {
	// DeviceAddress is the target byte address. Ignored by command-only
	// sequences without an address phase.
	DeviceAddress uint32
	Port          Port
	Type          TransferType
	// SeqIndex selects the sequence table slot; SeqNumber is how many
	// consecutive slots to chain (1 for everything this driver issues).
	SeqIndex  SeqID
	SeqNumber int
	// Data backs the data phase. Nil for command transfers.
	Data []byte
}

// Controller is the FlexSPI-style bus controller behind the flash device.
// Implementations serialize concurrent Transfer calls themselves; the driver
// issues strictly ordered transfers per device and adds no locking of its
// own.
type Controller interface {
	// Ready reports whether the controller finished its own bring-up.
	Ready() bool

	// ConfigureDevice programs per-device bus timing and the sequence
	// table for one port.
	ConfigureDevice(port Port, cfg DeviceConfig, lut *LUT) error

	// Transfer executes one transaction and blocks until it completes.
	Transfer(xfer *Transfer) error

	// Reset resynchronizes the controller's internal state machine, needed
	// after transfers whose sequence uses a non-default pad width.
	Reset() error

	// WaitBusIdle blocks until the AHB bus is quiet. Called before
	// reconfiguring a controller that is serving instruction fetches.
	WaitBusIdle()

	// RunningXIP reports whether the controller is currently serving code
	// execution from the attached flash.
	RunningXIP() bool

	// AHBSlice returns the memory-mapped window covering n bytes of flash
	// at offset on the given port.
	AHBSlice(port Port, offset, n uint32) []byte
}

// CacheMaintainer invalidates data-cache lines covering a mapped flash range
// after it has been programmed or erased, so stale cached copies are not
// observed through the memory-mapped read path.
type CacheMaintainer interface {
	InvalidateRange(mem []byte)
}

// ExecutionWindow is an exclusive execution window entered around mutating
// operations while the controller also serves instruction fetches from the
// same flash. On bare-metal targets this is an interrupt mask; instruction
// fetch and flash programming cannot be interleaved on this chip class.
type ExecutionWindow interface {
	Enter()
	Exit()
}

type noopWindow struct{}

func (noopWindow) Enter() {}
func (noopWindow) Exit()  {}

type noopCache struct{}

func (noopCache) InvalidateRange([]byte) {}
