// Package techconf loads technology configuration files into a typed,
// read-only tree.
//
// # Overview
//
// A technology file describes a process: the coordinate scale, the number of
// metal layers, which GDS layers each abstract layout layer maps to and how
// much each is oversized, and the numeric GDS layer/datatype pairs. The tree
// is made of nested [Section]s holding typed [Value]s:
//
//	general.scale        real or int
//	general.metals       int
//	materials.<layer>    section with gds (string table) and gds_bloat (int table)
//	gds.layers           string table
//	gds.major, gds.minor int tables
//
// Lookups go through [Config.TryGet], which returns false instead of
// panicking when any path element is missing.
//
// # File Formats
//
// [Load] understands two formats, chosen by file extension:
//
//   - ACT .conf directives (include, begin/end, string, int, real,
//     int_table, string_table), parsed by [Parse]
//   - TOML (.toml), decoded with BurntSushi/toml into the same tree
//
// A minimal .conf file:
//
//	begin general
//	  real scale 0.5
//	  int metals 5
//	end
//	begin materials
//	  begin poly
//	    string_table gds "poly.drawing"
//	    int_table gds_bloat 0
//	  end
//	end
//
// The equivalent TOML:
//
//	[general]
//	scale = 0.5
//	metals = 5
//
//	[materials.poly]
//	gds = ["poly.drawing"]
//	gds_bloat = [0]
//
// All parse failures are returned as INVALID_CONFIG errors from
// [github.com/layoutkit/rect2lef/pkg/errors] carrying file and line.
package techconf
