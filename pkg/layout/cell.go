package layout

import "strings"

// Kind classifies a macro for LEF CLASS and SITE emission.
type Kind int

const (
	KindBlock Kind = iota
	KindTap
	KindFill
	KindCore
)

func (k Kind) String() string {
	switch k {
	case KindTap:
		return "tap"
	case KindFill:
		return "fill"
	case KindCore:
		return "core"
	default:
		return "block"
	}
}

// IsStdCell reports whether the macro sits on the core site grid (fill, tap
// and core cells). Blocks do not.
func (k Kind) IsStdCell() bool {
	return k == KindTap || k == KindFill || k == KindCore
}

// kindRules are checked in order against the lower-cased cell name; the
// first substring hit wins.
var kindRules = []struct {
	substr string
	kind   Kind
}{
	{"welltap", KindTap},
	{"fill", KindFill},
	{"cell", KindCore},
}

// InferKind derives the macro kind from a cell or file base name.
func InferKind(name string) Kind {
	lower := strings.ToLower(name)
	for _, r := range kindRules {
		if strings.Contains(lower, r.substr) {
			return r.kind
		}
	}
	return KindBlock
}

// Box is an axis-aligned rectangle in layout grid units.
type Box struct {
	XMin, YMin, XMax, YMax int
}

// UnitBox is the bounding box of a cell without a bbox record.
var UnitBox = Box{0, 0, 1, 1}

func (b Box) Width() int  { return b.XMax - b.XMin }
func (b Box) Height() int { return b.YMax - b.YMin }

// Valid reports whether the box is not inverted.
func (b Box) Valid() bool { return b.XMin <= b.XMax && b.YMin <= b.YMax }

// Bloat grows the box by n on every side.
func (b Box) Bloat(n int) Box {
	return Box{b.XMin - n, b.YMin - n, b.XMax + n, b.YMax + n}
}

// Center returns the midpoint of the box.
func (b Box) Center() (x, y float64) {
	return float64(b.XMin+b.XMax) / 2, float64(b.YMin+b.YMax) / 2
}

// Scaled returns the corners multiplied by s, in output units.
func (b Box) Scaled(s float64) (xmin, ymin, xmax, ymax float64) {
	return float64(b.XMin) * s, float64(b.YMin) * s, float64(b.XMax) * s, float64(b.YMax) * s
}

// Rect is one shape of a cell.
type Rect struct {
	Label    string
	Layer    string // abstract layer tag, resolved by package layers
	Bounds   Box
	Hint     string
	IsInput  bool
	IsOutput bool
}

// IsPin reports whether the rectangle is a pin shape.
func (r Rect) IsPin() bool { return r.IsInput || r.IsOutput }

// Cell is one layout macro.
type Cell struct {
	Name  string
	Kind  Kind
	BBox  Box
	Rects []Rect
}

// Pins returns the pin rectangles of c in file order.
func (c *Cell) Pins() []Rect {
	var pins []Rect
	for _, r := range c.Rects {
		if r.IsPin() {
			pins = append(pins, r)
		}
	}
	return pins
}
