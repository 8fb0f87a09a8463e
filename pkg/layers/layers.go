// Package layers maps abstract layout layer tags to concrete output layers.
//
// A layer tag from a .rect file (for example "poly" or "m1") resolves to an
// ordered list of [Target]s, one per GDS layer configured for it, each with
// the bloat to apply before scaling. Resolution never fails: a tag with no
// configuration resolves to nothing and its geometry is dropped from every
// output.
package layers

import (
	"strings"

	"github.com/layoutkit/rect2lef/pkg/techconf"
)

// Target is one output layer for a tag.
type Target struct {
	Name  string // full output layer name, e.g. "met1.drawing"
	Bloat int    // oversize per side, in layout grid units
}

// LEFName returns the name part of the target, which is what LEF LAYER
// statements refer to.
func (t Target) LEFName() string {
	name, _ := SplitName(t.Name)
	return name
}

// candidate names a pair of parallel tables to read for a tag. exists
// decides whether the candidate applies at all.
type candidate struct {
	exists func(conf *techconf.Config, tag string) bool
	names  func(tag string) []string
	bloats func(tag string) []string
}

// candidates are tried in order; the first whose exists check passes is
// used even if its tables are empty.
var candidates = []candidate{
	{
		exists: func(conf *techconf.Config, tag string) bool {
			_, ok := conf.TryGet("materials", tag)
			return ok
		},
		names:  func(tag string) []string { return []string{"materials", tag, "gds"} },
		bloats: func(tag string) []string { return []string{"materials", tag, "gds_bloat"} },
	},
	{
		exists: func(*techconf.Config, string) bool { return true },
		names:  func(tag string) []string { return []string{"materials", "metal", tag + "_gds"} },
		bloats: func(tag string) []string { return []string{"materials", "metal", tag + "_gds_bloat"} },
	},
}

// Resolve returns the output layers configured for tag, in configuration
// order. The name and bloat tables are paired by index; a length mismatch
// truncates to the shorter table.
func Resolve(tag string, conf *techconf.Config) []Target {
	for _, c := range candidates {
		if !c.exists(conf, tag) {
			continue
		}
		names := conf.Strings(c.names(tag)...)
		bloats := conf.Ints(c.bloats(tag)...)
		n := min(len(names), len(bloats))
		if n == 0 {
			return nil
		}
		targets := make([]Target, n)
		for i := range n {
			targets[i] = Target{Name: names[i], Bloat: bloats[i]}
		}
		return targets
	}
	return nil
}

// SplitName splits a full layer name into name and purpose at the last '.'.
// A name without a '.' has an empty purpose.
func SplitName(full string) (name, purpose string) {
	i := strings.LastIndex(full, ".")
	if i < 0 {
		return full, ""
	}
	return full[:i], full[i+1:]
}
