package gds

import (
	"io"
	"slices"
	"sync"

	"github.com/layoutkit/rect2lef/pkg/errors"
)

// StreamBackend is the name of the GDSII stream backend.
const StreamBackend = "gdsii"

// ErrBackendUnavailable is returned by Export when no backend was given.
// Callers treat it as a reason to skip GDS output, not to fail.
var ErrBackendUnavailable = errors.New(errors.ErrCodeBackendUnavailable, "no GDS backend available")

// Backend serialises a Library.
type Backend interface {
	// Name identifies the backend, e.g. "gdsii".
	Name() string
	// Extension is the file suffix for written libraries, e.g. ".gds".
	Extension() string
	// Write encodes lib to w.
	Write(w io.Writer, lib *Library) error
}

var registry = struct {
	sync.RWMutex
	backends map[string]Backend
}{backends: make(map[string]Backend)}

// Register makes b available under b.Name(), replacing any previous
// backend with that name. It is meant to be called from init functions.
func Register(b Backend) {
	registry.Lock()
	defer registry.Unlock()
	registry.backends[b.Name()] = b
}

// Lookup returns the backend registered as name.
func Lookup(name string) (Backend, bool) {
	registry.RLock()
	defer registry.RUnlock()
	b, ok := registry.backends[name]
	return b, ok
}

// Default returns the GDSII stream backend if it is linked in.
func Default() (Backend, bool) {
	return Lookup(StreamBackend)
}

// Backends returns the names of all registered backends, sorted.
func Backends() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.backends))
	for n := range registry.backends {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Export writes lib with b. A nil backend yields ErrBackendUnavailable.
func Export(w io.Writer, lib *Library, b Backend) error {
	if b == nil {
		return ErrBackendUnavailable
	}
	if err := b.Write(w, lib); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "%s export", b.Name())
	}
	return nil
}
