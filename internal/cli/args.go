package cli

import "slices"

// legacyFlags maps single-dash long options accepted by older releases to
// their current spelling.
var legacyFlags = map[string]string{
	"-lm":  "--lm",
	"-gds": "--gds",
}

// NormalizeArgs rewrites legacy single-dash options. Arguments after "--"
// are left alone.
func NormalizeArgs(args []string) []string {
	out := slices.Clone(args)
	for i, a := range out {
		if a == "--" {
			break
		}
		if repl, ok := legacyFlags[a]; ok {
			out[i] = repl
		}
	}
	return out
}
