package pipeline

import (
	"bytes"
	"context"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/layoutkit/rect2lef/pkg/errors"
	"github.com/layoutkit/rect2lef/pkg/gds"
	"github.com/layoutkit/rect2lef/pkg/layermap"
	"github.com/layoutkit/rect2lef/pkg/layers"
	"github.com/layoutkit/rect2lef/pkg/layout"
	"github.com/layoutkit/rect2lef/pkg/lef"
	"github.com/layoutkit/rect2lef/pkg/observability"
	"github.com/layoutkit/rect2lef/pkg/techconf"
)

// emitter produces one artifact. A nil slice with a nil error means the
// artifact was skipped and reason says why.
type emitter func(ctx context.Context) (data []byte, name, reason string, err error)

// Run produces the artifacts selected by opts. The first emitter error
// cancels the others and is returned; on error no artifacts are returned.
//
// cell may be nil when only the layer map is requested.
func Run(ctx context.Context, cell *layout.Cell, conf *techconf.Config, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if cell == nil && (opts.LEF || opts.GDS) {
		return nil, errors.New(errors.ErrCodeInvalidOption, "lef and gds output require an input cell")
	}
	name := cellName(cell)
	hooks := observability.Pipeline()
	hooks.OnRunStart(ctx, name, opts.Formats())
	start := time.Now()

	result, err := run(ctx, cell, conf, opts, hooks)
	hooks.OnRunComplete(ctx, name, time.Since(start), err)
	return result, err
}

func cellName(cell *layout.Cell) string {
	if cell == nil {
		return ""
	}
	return cell.Name
}

func run(ctx context.Context, cell *layout.Cell, conf *techconf.Config, opts Options, hooks observability.PipelineHooks) (*Result, error) {
	logger := opts.Logger

	result := &Result{
		Artifacts: make(map[string][]byte),
		Files:     make(map[string]string),
		Stats:     Stats{Durations: make(map[string]time.Duration)},
	}
	if cell != nil {
		result.Stats.Rects = len(cell.Rects)
		result.Stats.Pins = len(cell.Pins())
		result.Stats.Unmapped = Unmapped(cell, conf)
	}
	for _, tag := range result.Stats.Unmapped {
		logger.Debug("layer has no output mapping, geometry dropped", "layer", tag)
	}

	emitters := map[string]emitter{
		FormatLEF:      lefEmitter(cell, conf),
		FormatLayerMap: layerMapEmitter(conf),
		FormatGDS:      gdsEmitter(cell, conf, opts.GDSFormat),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats() {
		emit := emitters[format]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hooks.OnEmitStart(gctx, format)
			start := time.Now()
			data, name, reason, err := emit(gctx)
			elapsed := time.Since(start)
			hooks.OnEmitComplete(gctx, format, len(data), elapsed, err)
			if err != nil {
				return err
			}
			logger.Debug("emitted", "format", format, "bytes", len(data), "duration", elapsed)

			mu.Lock()
			defer mu.Unlock()
			result.Stats.Durations[format] = elapsed
			if data == nil {
				result.skip(format, reason)
				return nil
			}
			result.Artifacts[format] = data
			result.Files[format] = name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slices.Sort(result.Skipped)
	return result, nil
}

func lefEmitter(cell *layout.Cell, conf *techconf.Config) emitter {
	return func(context.Context) ([]byte, string, string, error) {
		data, err := lef.Render(cell, conf)
		if err != nil {
			return nil, "", "", err
		}
		return data, cell.Name + ".lef", "", nil
	}
}

func layerMapEmitter(conf *techconf.Config) emitter {
	return func(context.Context) ([]byte, string, string, error) {
		data, err := layermap.Render(conf)
		if err != nil {
			return nil, "", "", err
		}
		if data == nil {
			data = []byte{}
		}
		return data, LayerMapFile, "", nil
	}
}

func gdsEmitter(cell *layout.Cell, conf *techconf.Config, format string) emitter {
	return func(ctx context.Context) ([]byte, string, string, error) {
		lib, err := gds.Build(cell, conf)
		if err != nil {
			return nil, "", "", err
		}
		if err := ctx.Err(); err != nil {
			return nil, "", "", err
		}

		backend, _ := gds.Lookup(format)
		var buf bytes.Buffer
		err = gds.Export(&buf, lib, backend)
		if errors.Is(err, errors.ErrCodeBackendUnavailable) {
			return nil, "", "backend " + format + " is not available in this build", nil
		}
		if err != nil {
			return nil, "", "", err
		}
		return buf.Bytes(), cell.Name + backend.Extension(), "", nil
	}
}

// Unmapped returns the distinct layer tags of cell that resolve to no
// output layer, in order of first use.
func Unmapped(cell *layout.Cell, conf *techconf.Config) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range cell.Rects {
		if seen[r.Layer] {
			continue
		}
		seen[r.Layer] = true
		if len(layers.Resolve(r.Layer, conf)) == 0 {
			out = append(out, r.Layer)
		}
	}
	return out
}
