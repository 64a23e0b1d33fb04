package flexnor

import "github.com/edaniels/golog"

// Option configures a Flash at construction time.
type Option func(*Flash)

// WithLogger sets the logger used for transfer-level debug output.
func WithLogger(logger golog.Logger) Option {
	return func(f *Flash) {
		f.logger = logger
	}
}

// WithWriteBuffer makes the write path copy each chunk into a driver-owned
// page buffer before programming it, instead of handing the caller's buffer
// to the controller. Use this when the caller's buffer may be modified, or
// has an alignment or lifetime the controller cannot hold across a transfer.
func WithWriteBuffer() Option {
	return func(f *Flash) {
		f.writeBuf = make([]byte, f.geom.PageSize)
	}
}

// WithExecutionWindow sets the exclusive execution window entered around
// mutating operations while the flash is serving instruction fetches. The
// default window is a no-op, for systems that never execute in place from
// this device.
func WithExecutionWindow(w ExecutionWindow) Option {
	return func(f *Flash) {
		f.window = w
	}
}

// WithCacheMaintainer sets the cache maintenance hook invoked over the
// written or erased range after a successful mutating operation. The default
// is a no-op, for cores without a data cache over the AHB window.
func WithCacheMaintainer(m CacheMaintainer) Option {
	return func(f *Flash) {
		f.cache = m
	}
}

// WithLUT replaces the default W25Q128JV sequence table. The table is
// validated during Init.
func WithLUT(lut *LUT) Option {
	return func(f *Flash) {
		f.lut = lut
	}
}
