// Package pkg provides the libraries behind rect2lef, a converter from
// rectangle cell layouts to LEF macros and GDS databases.
//
// # Overview
//
// The data flow for one cell:
//
//	technology file (.conf / .toml)      cell file (.rect)
//	         ↓                                  ↓
//	    [techconf] package                 [layout] package
//	         └──────────────┬───────────────────┘
//	                        ↓
//	                 [pipeline] package
//	         ┌──────────────┼──────────────┐
//	       [lef]        [layermap]       [gds]
//	         ↓              ↓              ↓
//	    <cell>.lef     layermap.txt    <cell>.gds
//
// # Main Packages
//
// [techconf] - Read-only technology configuration: the ACT .conf format with
// nested sections, typed values and includes, or TOML.
//
// [layout] - The cell model and the .rect reader. Kind inference from the
// cell name decides the LEF class and site.
//
// [layers] - Maps layout layer tags to output layers with bloat, and reads
// the technology's GDS layer table.
//
// [lef] - LEF macro emission, including pin classification.
//
// [layermap] - GDS layer map emission for place-and-route tools.
//
// [gds] - The logical GDS database and its backends; [gds/stream] writes
// GDSII.
//
// [pipeline] - Runs the requested emitters concurrently into memory.
//
// [errors] - Coded errors shared by all packages.
//
// [observability] - Optional hooks for instrumenting conversions.
//
// # Quick Start
//
//	conf, _ := techconf.Load("/opt/cad/conf/sky130/layout.conf")
//	cell, _ := layout.ReadCell("inv_cell.rect")
//	data, _ := lef.Render(cell, conf)
//
// [techconf]: https://pkg.go.dev/github.com/layoutkit/rect2lef/pkg/techconf
// [layout]: https://pkg.go.dev/github.com/layoutkit/rect2lef/pkg/layout
// [layers]: https://pkg.go.dev/github.com/layoutkit/rect2lef/pkg/layers
// [lef]: https://pkg.go.dev/github.com/layoutkit/rect2lef/pkg/lef
// [layermap]: https://pkg.go.dev/github.com/layoutkit/rect2lef/pkg/layermap
// [gds]: https://pkg.go.dev/github.com/layoutkit/rect2lef/pkg/gds
// [gds/stream]: https://pkg.go.dev/github.com/layoutkit/rect2lef/pkg/gds/stream
// [pipeline]: https://pkg.go.dev/github.com/layoutkit/rect2lef/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/layoutkit/rect2lef/pkg/errors
// [observability]: https://pkg.go.dev/github.com/layoutkit/rect2lef/pkg/observability
package pkg
