package stream

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/layoutkit/rect2lef/pkg/gds"
)

// Writer encodes GDSII records onto an underlying writer. The first error
// sticks; later calls are no-ops and Flush reports it.
type Writer struct {
	w   *bufio.Writer
	err error
	buf []byte
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Flush writes any buffered data and returns the first error seen.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

func (w *Writer) record(typ uint16, payload []byte) {
	if w.err != nil {
		return
	}
	n := 4 + len(payload)
	if n > maxRecord {
		w.err = fmt.Errorf("record %#04x: %d bytes exceeds the record limit", typ, n)
		return
	}
	var hdr [4]byte
	binary.BigEndian.PutUint16(hdr[0:], uint16(n))
	binary.BigEndian.PutUint16(hdr[2:], typ)
	if _, err := w.w.Write(hdr[:]); err != nil {
		w.err = err
		return
	}
	if _, err := w.w.Write(payload); err != nil {
		w.err = err
	}
}

func (w *Writer) empty(typ uint16) { w.record(typ, nil) }

func (w *Writer) int16s(typ uint16, vals ...int16) {
	w.buf = w.buf[:0]
	for _, v := range vals {
		w.buf = binary.BigEndian.AppendUint16(w.buf, uint16(v))
	}
	w.record(typ, w.buf)
}

func (w *Writer) int32s(typ uint16, vals ...int32) {
	w.buf = w.buf[:0]
	for _, v := range vals {
		w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(v))
	}
	w.record(typ, w.buf)
}

func (w *Writer) reals(typ uint16, vals ...float64) {
	w.buf = w.buf[:0]
	for _, v := range vals {
		w.buf = binary.BigEndian.AppendUint64(w.buf, EncodeReal(v))
	}
	w.record(typ, w.buf)
}

// str writes s NUL-padded to an even length.
func (w *Writer) str(typ uint16, s string) {
	w.buf = append(w.buf[:0], s...)
	if len(w.buf)%2 == 1 {
		w.buf = append(w.buf, 0)
	}
	w.record(typ, w.buf)
}

func timestamp(t time.Time) []int16 {
	ts := []int16{
		int16(t.Year()), int16(t.Month()), int16(t.Day()),
		int16(t.Hour()), int16(t.Minute()), int16(t.Second()),
	}
	// modification time, then access time
	return append(ts, ts...)
}

// Library writes lib as a complete stream. Coordinates are converted from
// user units to database units using lib.Unit and lib.Precision.
func (w *Writer) Library(lib *gds.Library, now time.Time) error {
	unit, precision := lib.Unit, lib.Precision
	if unit <= 0 {
		unit = gds.DefaultUnit
	}
	if precision <= 0 {
		precision = gds.DefaultPrecision
	}
	dbPerUser := unit / precision
	ts := timestamp(now)

	w.int16s(recHeader, Version)
	w.int16s(recBgnLib, ts...)
	w.str(recLibName, lib.Name)
	w.reals(recUnits, precision/unit, precision)

	for _, c := range lib.Cells {
		w.int16s(recBgnStr, ts...)
		w.str(recStrName, c.Name)
		for _, b := range c.Boundaries {
			xy, err := boundaryXY(b.Points, dbPerUser)
			if err != nil {
				return fmt.Errorf("cell %s: %w", c.Name, err)
			}
			layer, datatype, err := layerPair(b.Layer, b.Datatype)
			if err != nil {
				return fmt.Errorf("cell %s: %w", c.Name, err)
			}
			w.empty(recBoundary)
			w.int16s(recLayer, layer)
			w.int16s(recDatatype, datatype)
			w.int32s(recXY, xy...)
			w.empty(recEndEl)
		}
		for _, l := range c.Labels {
			xy, err := toDB([]gds.Point{l.At}, dbPerUser)
			if err != nil {
				return fmt.Errorf("cell %s: label %s: %w", c.Name, l.Text, err)
			}
			layer, texttype, err := layerPair(l.Layer, l.Texttype)
			if err != nil {
				return fmt.Errorf("cell %s: label %s: %w", c.Name, l.Text, err)
			}
			w.empty(recText)
			w.int16s(recLayer, layer)
			w.int16s(recTexttype, texttype)
			w.int32s(recXY, xy...)
			w.str(recString, l.Text)
			w.empty(recEndEl)
		}
		w.empty(recEndStr)
	}

	w.empty(recEndLib)
	return w.Flush()
}

// layerPair checks a layer and datatype number against the two-byte field
// they are stored in. Numbers above 32767 keep their unsigned bit pattern.
func layerPair(layer, datatype int) (int16, int16, error) {
	for _, n := range [2]int{layer, datatype} {
		if n < 0 || n > math.MaxUint16 {
			return 0, 0, fmt.Errorf("layer number %d out of range 0..%d", n, math.MaxUint16)
		}
	}
	return int16(uint16(layer)), int16(uint16(datatype)), nil
}

// boundaryXY converts a polygon and repeats its first point to close it.
func boundaryXY(pts []gds.Point, dbPerUser float64) ([]int32, error) {
	if len(pts) < 3 {
		return nil, fmt.Errorf("boundary with %d points", len(pts))
	}
	return toDB(append(pts[:len(pts):len(pts)], pts[0]), dbPerUser)
}

func toDB(pts []gds.Point, dbPerUser float64) ([]int32, error) {
	out := make([]int32, 0, 2*len(pts))
	for _, p := range pts {
		for _, v := range [2]float64{p.X, p.Y} {
			d := math.Round(v * dbPerUser)
			if d > math.MaxInt32 || d < math.MinInt32 {
				return nil, fmt.Errorf("coordinate %g out of range", v)
			}
			out = append(out, int32(d))
		}
	}
	return out, nil
}
