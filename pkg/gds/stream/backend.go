package stream

import (
	"io"
	"time"

	"github.com/layoutkit/rect2lef/pkg/gds"
)

func init() {
	gds.Register(Backend{})
}

// Backend is the gdsii backend. Now stamps the library; it defaults to
// time.Now.
type Backend struct {
	Now func() time.Time
}

func (Backend) Name() string      { return gds.StreamBackend }
func (Backend) Extension() string { return ".gds" }

func (b Backend) Write(w io.Writer, lib *gds.Library) error {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return NewWriter(w).Library(lib, now())
}
