package stream

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/layoutkit/rect2lef/pkg/gds"
)

type record struct {
	typ  uint16
	data []byte
}

func readRecords(t *testing.T, b []byte) []record {
	t.Helper()
	var recs []record
	r := bytes.NewReader(b)
	for {
		var hdr [4]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return recs
			}
			t.Fatalf("read header: %v", err)
		}
		n := int(binary.BigEndian.Uint16(hdr[0:]))
		if n < 4 || n%2 != 0 {
			t.Fatalf("bad record length %d", n)
		}
		data := make([]byte, n-4)
		if _, err := io.ReadFull(r, data); err != nil {
			t.Fatalf("read payload: %v", err)
		}
		recs = append(recs, record{typ: binary.BigEndian.Uint16(hdr[2:]), data: data})
	}
}

func int32s(b []byte) []int32 {
	out := make([]int32, len(b)/4)
	for i := range out {
		out[i] = int32(binary.BigEndian.Uint32(b[4*i:]))
	}
	return out
}

func testLibrary() *gds.Library {
	return &gds.Library{
		Name:      "library",
		Unit:      gds.DefaultUnit,
		Precision: gds.DefaultPrecision,
		Cells: []gds.Cell{{
			Name:       "inv",
			Boundaries: []gds.Boundary{gds.Rectangle(68, 20, 0, 0, 1.5, 2)},
			Labels:     []gds.Label{{Text: "A", Layer: 68, Texttype: 5, At: gds.Point{X: 0.75, Y: 1}}},
		}},
	}
}

func TestWriteLibrary(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 9, 12, 30, 5, 0, time.UTC)
	b := Backend{Now: func() time.Time { return now }}
	if err := b.Write(&buf, testLibrary()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	recs := readRecords(t, buf.Bytes())
	var types []uint16
	for _, r := range recs {
		types = append(types, r.typ)
	}
	want := []uint16{
		recHeader, recBgnLib, recLibName, recUnits,
		recBgnStr, recStrName,
		recBoundary, recLayer, recDatatype, recXY, recEndEl,
		recText, recLayer, recTexttype, recXY, recString, recEndEl,
		recEndStr, recEndLib,
	}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Fatalf("record sequence mismatch (-want +got):\n%s", diff)
	}

	if v := binary.BigEndian.Uint16(recs[0].data); v != Version {
		t.Errorf("HEADER version = %d, want %d", v, Version)
	}
	if year := binary.BigEndian.Uint16(recs[1].data); year != 2024 {
		t.Errorf("BGNLIB year = %d, want 2024", year)
	}
	if got := string(recs[2].data); got != "library\x00" {
		t.Errorf("LIBNAME = %q, want NUL padded", got)
	}

	units := recs[3].data
	if u := DecodeReal(binary.BigEndian.Uint64(units[0:])); u != 1e-3 {
		t.Errorf("user units per db unit = %g, want 1e-3", u)
	}
	if m := DecodeReal(binary.BigEndian.Uint64(units[8:])); m != 1e-9 {
		t.Errorf("meters per db unit = %g, want 1e-9", m)
	}

	wantXY := []int32{0, 0, 1500, 0, 1500, 2000, 0, 2000, 0, 0}
	if diff := cmp.Diff(wantXY, int32s(recs[9].data)); diff != "" {
		t.Errorf("boundary XY mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int32{750, 1000}, int32s(recs[14].data)); diff != "" {
		t.Errorf("text XY mismatch (-want +got):\n%s", diff)
	}
	if got := string(recs[15].data); got != "A\x00" {
		t.Errorf("STRING = %q", got)
	}
}

func TestWriteRejectsDegenerateBoundary(t *testing.T) {
	lib := testLibrary()
	lib.Cells[0].Boundaries[0].Points = lib.Cells[0].Boundaries[0].Points[:2]

	err := Backend{}.Write(io.Discard, lib)
	if err == nil || !strings.Contains(err.Error(), "boundary with 2 points") {
		t.Errorf("err = %v, want degenerate boundary error", err)
	}
}

func TestWriteRejectsHugeCoordinate(t *testing.T) {
	lib := testLibrary()
	lib.Cells[0].Labels[0].At.X = 1e9

	err := Backend{}.Write(io.Discard, lib)
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("err = %v, want out of range error", err)
	}
}

func TestWriteLayerNumberRange(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(lib *gds.Library)
		wantErr bool
	}{
		{"boundary layer too large", func(lib *gds.Library) { lib.Cells[0].Boundaries[0].Layer = 70000 }, true},
		{"negative datatype", func(lib *gds.Library) { lib.Cells[0].Boundaries[0].Datatype = -1 }, true},
		{"texttype too large", func(lib *gds.Library) { lib.Cells[0].Labels[0].Texttype = 65536 }, true},
		{"unsigned upper half", func(lib *gds.Library) { lib.Cells[0].Boundaries[0].Layer = 40000 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib := testLibrary()
			tt.edit(lib)

			var buf bytes.Buffer
			err := Backend{}.Write(&buf, lib)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "layer number") {
					t.Errorf("err = %v, want layer number error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Write: %v", err)
			}
			recs := readRecords(t, buf.Bytes())
			if got := binary.BigEndian.Uint16(recs[7].data); got != 40000 {
				t.Errorf("LAYER = %d, want 40000", got)
			}
		})
	}
}

func TestRegistered(t *testing.T) {
	b, ok := gds.Default()
	if !ok {
		t.Fatal("gdsii backend not registered")
	}
	if b.Name() != "gdsii" || b.Extension() != ".gds" {
		t.Errorf("backend = %s %s", b.Name(), b.Extension())
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	err := Backend{}.Write(failWriter{}, testLibrary())
	if err == nil || err.Error() != "disk full" {
		t.Errorf("err = %v, want disk full", err)
	}
}
