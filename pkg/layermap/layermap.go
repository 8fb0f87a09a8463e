// Package layermap renders a technology's GDS layer table as a layer map
// for place-and-route tools.
//
// Each gds.layers entry is split into name and purpose at the last '.', and
// the purpose selects the map directive:
//
//	drawing, dg, drw     <name> LEFOBS <major> <minor>   (VIA for via layers)
//	label, ll, lbl       NAME <name>/PINNAME, /PIN, /LEFPINNAME, /LEFPIN
//	net, nt              <name> NET <major> <minor>
//	pin, pin1, pn        <name> PIN,LEFPIN <major> <minor>
//	blockage, be, blo    <name> BLOCKAGE <major> <minor>
//
// Independently, a layer whose name contains "prb" in any case also maps the
// die area: DIEAREA ALL <major> <minor>.
package layermap

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/layoutkit/rect2lef/pkg/layers"
	"github.com/layoutkit/rect2lef/pkg/techconf"
)

// purposeRule maps a set of purpose aliases to the lines emitted for a
// layer. match may further restrict the rule by layer name.
type purposeRule struct {
	purposes []string
	match    func(name string) bool
	lines    func(name string) []string
}

var (
	drawing = []string{"drawing", "dg", "drw"}

	isVia = func(name string) bool { return strings.Contains(name, "via") }
)

// purposeRules are evaluated in order; the first match wins.
var purposeRules = []purposeRule{
	{purposes: drawing, match: isVia, lines: single("%s VIA")},
	{purposes: drawing, lines: single("%s LEFOBS")},
	{purposes: []string{"label", "ll", "lbl"}, lines: func(name string) []string {
		return []string{
			"NAME " + name + "/PINNAME",
			"NAME " + name + "/PIN",
			"NAME " + name + "/LEFPINNAME",
			"NAME " + name + "/LEFPIN",
		}
	}},
	{purposes: []string{"net", "nt"}, lines: single("%s NET")},
	{purposes: []string{"pin", "pin1", "pn"}, lines: single("%s PIN,LEFPIN")},
	{purposes: []string{"blockage", "be", "blo"}, lines: single("%s BLOCKAGE")},
}

func single(format string) func(string) []string {
	return func(name string) []string { return []string{fmt.Sprintf(format, name)} }
}

func (r purposeRule) applies(name, purpose string) bool {
	if !slices.Contains(r.purposes, purpose) {
		return false
	}
	return r.match == nil || r.match(name)
}

// Lines returns the layer map directives for one GDS layer, without the
// trailing layer numbers.
func Lines(layer layers.GDSLayer) []string {
	name, purpose := layers.SplitName(layer.Name)
	var out []string
	for _, rule := range purposeRules {
		if rule.applies(name, purpose) {
			out = rule.lines(name)
			break
		}
	}
	if strings.Contains(strings.ToLower(name), "prb") {
		out = append(out, "DIEAREA ALL")
	}
	return out
}

// Render returns the layer map for conf.
func Render(conf *techconf.Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, conf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes the layer map for conf to w, one directive per line, in
// gds.layers order.
func Write(w io.Writer, conf *techconf.Config) error {
	bw := bufio.NewWriter(w)
	for _, layer := range layers.Table(conf) {
		for _, l := range Lines(layer) {
			fmt.Fprintf(bw, "%s %d %d\n", l, layer.Major, layer.Minor)
		}
	}
	return bw.Flush()
}
