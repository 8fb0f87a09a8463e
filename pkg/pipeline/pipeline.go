// Package pipeline runs the rect2lef emitters for one cell.
//
// The pipeline takes an already loaded cell and technology configuration
// and produces every requested output in memory. Emitters are pure
// functions of their inputs, so they run concurrently; nothing is written
// to disk here, which lets callers decide how (and whether) to persist the
// artifacts once the whole run succeeded.
//
// # Usage
//
//	opts := pipeline.Options{LEF: true, GDS: true, Logger: logger}
//	result, err := pipeline.Run(ctx, cell, conf, opts)
//	if err != nil {
//	    return err
//	}
//	for format, data := range result.Artifacts {
//	    name := result.Files[format]
//	    ...
//	}
//
// A GDS request that cannot be served because no backend is linked in is not
// an error: the format is reported in Result.Skipped instead.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/layoutkit/rect2lef/pkg/errors"
	"github.com/layoutkit/rect2lef/pkg/gds"
)

// Format keys used in Result.Artifacts and Result.Files.
const (
	FormatLEF      = "lef"
	FormatLayerMap = "layermap"
	FormatGDS      = "gds"
)

// LayerMapFile is the fixed output name of the layer map.
const LayerMapFile = "layermap.txt"

// ValidGDSFormats is the set of GDS backends the CLI accepts by name. A
// valid format may still be unavailable in a given build.
var ValidGDSFormats = map[string]bool{
	gds.StreamBackend: true,
	gds.JSONBackend:   true,
}

// Options selects which artifacts to produce.
type Options struct {
	LEF      bool
	LayerMap bool
	GDS      bool

	// GDSFormat names the GDS backend. Empty selects the stream backend.
	GDSFormat string

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Result holds the artifacts of a run.
type Result struct {
	// Artifacts maps a format key to its encoded output.
	Artifacts map[string][]byte

	// Files maps a format key to the file name it should be written as.
	Files map[string]string

	// Skipped lists requested formats that were not produced, with reasons.
	Skipped []string

	Stats Stats
}

// Stats summarises the cell and the run.
type Stats struct {
	Rects     int
	Pins      int
	Unmapped  []string
	Durations map[string]time.Duration
}

// ValidateGDSFormat checks that format names a known GDS backend.
func ValidateGDSFormat(format string) error {
	if !ValidGDSFormats[format] {
		return errors.New(errors.ErrCodeInvalidOption,
			"invalid GDS format: %q (must be one of: gdsii, json)", format)
	}
	return nil
}

// Validate checks the options and fills in defaults.
func (o *Options) Validate() error {
	if o.GDSFormat == "" {
		o.GDSFormat = gds.StreamBackend
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if !o.LEF && !o.LayerMap && !o.GDS {
		return errors.New(errors.ErrCodeInvalidOption, "no outputs requested")
	}
	if o.GDS {
		return ValidateGDSFormat(o.GDSFormat)
	}
	return nil
}

// Formats returns the requested format keys in output order.
func (o *Options) Formats() []string {
	var out []string
	if o.LEF {
		out = append(out, FormatLEF)
	}
	if o.LayerMap {
		out = append(out, FormatLayerMap)
	}
	if o.GDS {
		out = append(out, FormatGDS)
	}
	return out
}

func (r *Result) skip(format, reason string) {
	r.Skipped = append(r.Skipped, fmt.Sprintf("%s: %s", format, reason))
}
