package flexnor

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Registry holds flash devices keyed by a logical name. It replaces
// build-time device-table instantiation with an explicit construction path:
// devices are built from validated configs at startup, registered, then
// initialized together.
type Registry struct {
	mu      sync.Mutex
	devices map[string]*Flash
}

func NewRegistry() *Registry {
	return &Registry{devices: map[string]*Flash{}}
}

// Add registers a device under a logical name. Names are unique.
func (r *Registry) Add(name string, f *Flash) error {
	if name == "" {
		return errors.Wrap(ErrInvalidArg, "device name is empty")
	}
	if f == nil {
		return errors.Wrap(ErrInvalidArg, "device is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.devices[name]; ok {
		return errors.Wrapf(ErrInvalidArg, "device %q already registered", name)
	}
	r.devices[name] = f
	return nil
}

// Lookup returns the device registered under name.
func (r *Registry) Lookup(name string) (*Flash, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.devices[name]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidArg, "no device %q", name)
	}
	return f, nil
}

// Names returns the registered device names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.devices))
	for name := range r.devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InitAll runs the bring-up handshake on every registered device. Failures
// do not stop the remaining devices; all errors are combined.
func (r *Registry) InitAll() error {
	var err error
	for _, name := range r.Names() {
		f, _ := r.Lookup(name)
		if initErr := f.Init(); initErr != nil {
			err = multierr.Append(err, errors.WithMessagef(initErr, "device %q", name))
		}
	}
	return err
}
