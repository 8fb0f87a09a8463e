// Package gds builds a logical GDS database from a layout cell.
//
// # Model
//
// [Build] produces a [Library] holding one [Cell] with rectangles
// ([Boundary]) and text ([Label]) on numeric layer/datatype pairs taken from
// the technology's gds.layers, gds.major and gds.minor tables. Coordinates
// are scaled by general.scale and expressed in user units.
//
// For a cell it draws:
//
//   - the bounding box on the first table layer whose name starts with
//     "prb", when there is one
//   - one rectangle per resolved output layer of every cell rectangle,
//     bloated then scaled, skipping output layers absent from gds.layers
//   - at most one label per rectangle, at its center, on the first layer
//     drawn for it; labels "" and "#" are never written
//
// # Backends
//
// Serialisation is delegated to a [Backend]. Backends register themselves
// with [Register]; the GDSII stream writer lives in package
// [github.com/layoutkit/rect2lef/pkg/gds/stream] and is linked into the CLI
// unless it is built with the nogds tag. A JSON backend is always available.
//
//	lib, err := gds.Build(cell, conf)
//	backend, ok := gds.Default()
//	err = gds.Export(w, lib, backend) // ErrBackendUnavailable if !ok
package gds
