package layout

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/layoutkit/rect2lef/pkg/errors"
)

// ReadCell parses the rectangle file at path. The cell is named after the
// file's base name without extension.
func ReadCell(path string) (*Cell, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cell file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return Parse(f, CellName(path))
}

// CellName derives a cell name from a file path: the base name with its
// extension stripped.
func CellName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Parse reads rectangle records from r into a cell called name.
func Parse(r io.Reader, name string) (*Cell, error) {
	if err := errors.ValidateCellName(name); err != nil {
		return nil, err
	}
	cell := &Cell{
		Name: name,
		Kind: InferKind(name),
		BBox: UnitBox,
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "bbox" {
			if len(fields) != 5 {
				return nil, errors.At(errors.ErrCodeInvalidCell, name, line, "bbox expects 4 coordinates, got %d", len(fields)-1)
			}
			box, err := parseBox(fields[1:5])
			if err != nil {
				return nil, errors.At(errors.ErrCodeInvalidCell, name, line, "bbox: %v", err)
			}
			cell.BBox = box
			continue
		}

		rect, err := parseRect(fields)
		if err != nil {
			return nil, errors.At(errors.ErrCodeInvalidCell, name, line, "%v", err)
		}
		cell.Rects = append(cell.Rects, rect)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", name)
	}
	return cell, nil
}

func parseRect(fields []string) (Rect, error) {
	if len(fields) != 7 && len(fields) != 8 {
		return Rect{}, fmt.Errorf("%s: expected 7 or 8 fields, got %d", fields[0], len(fields))
	}
	box, err := parseBox(fields[3:7])
	if err != nil {
		return Rect{}, fmt.Errorf("%s %s: %v", fields[0], fields[1], err)
	}
	r := Rect{
		Label:    fields[1],
		Layer:    fields[2],
		Bounds:   box,
		IsInput:  fields[0] == "inrect",
		IsOutput: fields[0] == "outrect",
	}
	if len(fields) == 8 {
		r.Hint = fields[7]
	}
	return r, nil
}

func parseBox(fields []string) (Box, error) {
	var v [4]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Box{}, fmt.Errorf("invalid coordinate %q", f)
		}
		v[i] = n
	}
	b := Box{v[0], v[1], v[2], v[3]}
	if !b.Valid() {
		return Box{}, fmt.Errorf("inverted box (%d,%d)-(%d,%d)", b.XMin, b.YMin, b.XMax, b.YMax)
	}
	return b, nil
}
