package flexnor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error categories. Call sites add context with pkg/errors so callers can
// still match the category with errors.Is.
var (
	// ErrNotReady reports that the bus controller (or the device itself)
	// has not completed initialization.
	ErrNotReady = errors.New("not ready")

	// ErrConfig reports that the controller rejected the device
	// configuration or sequence table.
	ErrConfig = errors.New("configuration rejected")

	// ErrIO reports a transfer-level failure, including a quad-mode
	// verification mismatch during bring-up.
	ErrIO = errors.New("transfer failed")

	// ErrInvalidArg reports a request rejected before any transfer was
	// issued, such as a misaligned erase range.
	ErrInvalidArg = errors.New("invalid argument")
)

// TransferError ties a failed bus transfer to the ErrIO category while
// keeping the controller's error as the cause.
type TransferError struct {
	Seq   SeqID
	Cause error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer (sequence %d) failed: %v", e.Seq, e.Cause)
}

func (e *TransferError) Unwrap() error { return e.Cause }

func (e *TransferError) Is(target error) bool { return target == ErrIO }
