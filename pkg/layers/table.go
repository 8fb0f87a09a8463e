package layers

import (
	"strings"

	"github.com/layoutkit/rect2lef/pkg/techconf"
)

// GDSLayer is one entry of the technology's GDS layer table.
type GDSLayer struct {
	Name  string // full name, e.g. "met1.drawing"
	Major int    // GDS layer number
	Minor int    // GDS datatype
}

// Table zips gds.layers, gds.major and gds.minor into GDS layers, in
// configuration order. Entries beyond the shortest table are ignored.
func Table(conf *techconf.Config) []GDSLayer {
	names := conf.Strings("gds", "layers")
	major := conf.Ints("gds", "major")
	minor := conf.Ints("gds", "minor")
	n := min(len(names), len(major), len(minor))
	table := make([]GDSLayer, n)
	for i := range n {
		table[i] = GDSLayer{Name: names[i], Major: major[i], Minor: minor[i]}
	}
	return table
}

// Index maps full layer names to their table entry.
type Index map[string]GDSLayer

// NewIndex builds an Index over table. A name listed twice maps to its
// last entry.
func NewIndex(table []GDSLayer) Index {
	idx := make(Index, len(table))
	for _, l := range table {
		idx[l.Name] = l
	}
	return idx
}

// FirstWithPrefix returns the first table entry whose name starts with
// prefix.
func FirstWithPrefix(table []GDSLayer, prefix string) (GDSLayer, bool) {
	for _, l := range table {
		if strings.HasPrefix(l.Name, prefix) {
			return l, true
		}
	}
	return GDSLayer{}, false
}
