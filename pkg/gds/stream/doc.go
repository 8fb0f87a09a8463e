// Package stream writes GDSII stream files.
//
// Importing the package registers the "gdsii" backend with package gds:
//
//	import _ "github.com/layoutkit/rect2lef/pkg/gds/stream"
//
// Only the records needed for flat rectangle layouts are produced: library
// and structure headers, BOUNDARY and TEXT elements. Reals use the 8-byte
// excess-64 format and coordinates are rounded to database units.
package stream
