package lef

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/layoutkit/rect2lef/pkg/layers"
	"github.com/layoutkit/rect2lef/pkg/layout"
	"github.com/layoutkit/rect2lef/pkg/techconf"
)

// SiteName is the placement site of standard cells.
const SiteName = "CoreSite"

// classNames maps cell kinds to LEF CLASS values.
var classNames = map[layout.Kind]string{
	layout.KindTap:   "CORE WELLTAP",
	layout.KindFill:  "CORE SPACER",
	layout.KindCore:  "CORE",
	layout.KindBlock: "BLOCK",
}

// Class returns the LEF CLASS for kind.
func Class(kind layout.Kind) string {
	if c, ok := classNames[kind]; ok {
		return c
	}
	return classNames[layout.KindBlock]
}

// Render returns the LEF macro for cell.
func Render(cell *layout.Cell, conf *techconf.Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, cell, conf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders the LEF macro for cell to w. It only reads cell and conf
// and is safe to call concurrently.
func Write(w io.Writer, cell *layout.Cell, conf *techconf.Config) error {
	scale, err := conf.Scale()
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	e := emitter{w: bw, scale: scale, conf: conf}
	e.macro(cell)
	return bw.Flush()
}

type emitter struct {
	w     *bufio.Writer
	scale float64
	conf  *techconf.Config
}

func (e *emitter) line(format string, args ...any) {
	fmt.Fprintf(e.w, format, args...)
	e.w.WriteByte('\n')
}

func (e *emitter) macro(cell *layout.Cell) {
	bb := cell.BBox
	e.line("MACRO %s", cell.Name)
	e.line("CLASS %s ;", Class(cell.Kind))
	e.line("\tORIGIN %s %s ;", e.coord(-bb.XMin), e.coord(-bb.YMin))
	e.line("\tFOREIGN %s %s %s ;", cell.Name, e.coord(bb.XMin), e.coord(bb.YMin))
	e.line("\tSIZE %s BY %s ;", e.coord(bb.Width()), e.coord(bb.Height()))
	e.line("\tSYMMETRY X Y ;")
	if cell.Kind.IsStdCell() {
		e.line("\tSITE %s ;", SiteName)
	}

	for _, r := range cell.Rects {
		if r.IsPin() {
			e.pin(r, cell.Kind)
		}
	}

	e.line("\tOBS")
	for _, r := range cell.Rects {
		e.geometry(r, "\t\t")
	}
	e.line("\tEND")
	e.line("END %s", cell.Name)
	e.line("")
}

func (e *emitter) pin(r layout.Rect, kind layout.Kind) {
	class := Classify(r, kind)
	e.line("\tPIN %s", r.Label)
	e.line("\t\tDIRECTION %s ;", class.Direction)
	e.line("\t\tUSE %s ;", class.Use)
	if class.Abutment {
		e.line("\t\tSHAPE ABUTMENT ;")
	}
	e.line("\t\tPORT")
	e.geometry(r, "\t\t\t")
	e.line("\t\tEND")
	e.line("\tEND %s", r.Label)
}

// geometry writes a LAYER/RECT pair per resolved target of r.
func (e *emitter) geometry(r layout.Rect, indent string) {
	for _, t := range layers.Resolve(r.Layer, e.conf) {
		b := r.Bounds.Bloat(t.Bloat)
		e.line("%sLAYER %s ;", indent, t.LEFName())
		e.line("%s\tRECT %s %s %s %s ;", indent, e.coord(b.XMin), e.coord(b.YMin), e.coord(b.XMax), e.coord(b.YMax))
	}
}

func (e *emitter) coord(v int) string {
	return FormatCoord(float64(v) * e.scale)
}

// FormatCoord formats a scaled coordinate with the fewest digits needed,
// rounded to 1e-6 so products like 3*0.1 print as 0.3. Integral values have
// no decimal point.
func FormatCoord(v float64) string {
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
