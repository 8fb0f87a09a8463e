package gds

import (
	"github.com/layoutkit/rect2lef/pkg/layers"
	"github.com/layoutkit/rect2lef/pkg/layout"
	"github.com/layoutkit/rect2lef/pkg/techconf"
)

const (
	// DefaultLibName names libraries built by Build.
	DefaultLibName = "library"

	// DefaultUnit is the size of one user unit in meters (1 um).
	DefaultUnit = 1e-6

	// DefaultPrecision is the size of one database unit in meters (1 nm).
	DefaultPrecision = 1e-9

	// BoundaryPrefix selects the die boundary layer in gds.layers.
	BoundaryPrefix = "prb"
)

// Point is a coordinate in user units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Boundary is a closed polygon. Points are not repeated at the end.
type Boundary struct {
	Layer    int     `json:"layer"`
	Datatype int     `json:"datatype"`
	Points   []Point `json:"points"`
}

// Label is a text element.
type Label struct {
	Text     string `json:"text"`
	Layer    int    `json:"layer"`
	Texttype int    `json:"texttype"`
	At       Point  `json:"at"`
}

// Cell is a GDS structure.
type Cell struct {
	Name       string     `json:"name"`
	Boundaries []Boundary `json:"boundaries"`
	Labels     []Label    `json:"labels,omitempty"`
}

// Library is a GDS database.
type Library struct {
	Name      string  `json:"name"`
	Unit      float64 `json:"unit"`
	Precision float64 `json:"precision"`
	Cells     []Cell  `json:"cells"`
}

// Rectangle returns an axis-aligned boundary with corners (x0,y0) and
// (x1,y1), listed counter-clockwise from the lower left.
func Rectangle(layer, datatype int, x0, y0, x1, y1 float64) Boundary {
	return Boundary{
		Layer:    layer,
		Datatype: datatype,
		Points:   []Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}},
	}
}

// Build converts cell into a library with a single top-level cell. It only
// reads cell and conf and is safe to call concurrently.
func Build(cell *layout.Cell, conf *techconf.Config) (*Library, error) {
	scale, err := conf.Scale()
	if err != nil {
		return nil, err
	}
	table := layers.Table(conf)
	index := layers.NewIndex(table)

	out := Cell{Name: cell.Name}
	if bnd, ok := layers.FirstWithPrefix(table, BoundaryPrefix); ok {
		x0, y0, x1, y1 := cell.BBox.Scaled(scale)
		out.Boundaries = append(out.Boundaries, Rectangle(bnd.Major, bnd.Minor, x0, y0, x1, y1))
	}

	for _, r := range cell.Rects {
		labeled := false
		for _, t := range layers.Resolve(r.Layer, conf) {
			gl, ok := index[t.Name]
			if !ok {
				continue
			}
			x0, y0, x1, y1 := r.Bounds.Bloat(t.Bloat).Scaled(scale)
			out.Boundaries = append(out.Boundaries, Rectangle(gl.Major, gl.Minor, x0, y0, x1, y1))

			if !labeled && hasLabel(r) {
				cx, cy := r.Bounds.Center()
				out.Labels = append(out.Labels, Label{
					Text:     r.Label,
					Layer:    gl.Major,
					Texttype: gl.Minor,
					At:       Point{cx * scale, cy * scale},
				})
				labeled = true
			}
		}
	}

	return &Library{
		Name:      DefaultLibName,
		Unit:      DefaultUnit,
		Precision: DefaultPrecision,
		Cells:     []Cell{out},
	}, nil
}

// hasLabel reports whether r carries a real net name. "#" marks an
// anonymous shape.
func hasLabel(r layout.Rect) bool {
	return r.Label != "" && r.Label != "#"
}
