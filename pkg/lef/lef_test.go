package lef

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/layoutkit/rect2lef/pkg/layout"
	"github.com/layoutkit/rect2lef/pkg/techconf"
)

const testConf = `
begin general
  real scale 0.5
  int metals 2
end
begin materials
  begin poly
    string_table gds "poly.drawing"
    int_table gds_bloat 0
  end
  begin metal
    string_table m1_gds "met1.drawing" "met1.pin"
    int_table m1_gds_bloat 0 2
  end
end
`

func mustConf(t *testing.T, src string) *techconf.Config {
	t.Helper()
	conf, err := techconf.Parse(strings.NewReader(src), "test.conf")
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	return conf
}

func mustCell(t *testing.T, name, src string) *layout.Cell {
	t.Helper()
	cell, err := layout.Parse(strings.NewReader(src), name)
	if err != nil {
		t.Fatalf("parse cell: %v", err)
	}
	return cell
}

func TestRenderGolden(t *testing.T) {
	conf := mustConf(t, testConf)
	cell := mustCell(t, "inv_cell", strings.Join([]string{
		"bbox 2 4 42 84",
		"inrect A poly 4 10 8 14",
		"outrect Y m1 30 10 34 70",
		"rect vdd m1 2 80 42 84",
		"rect fill unknown 0 0 1 1",
		"rect # poly 10 10 12 12",
	}, "\n"))

	got, err := Render(cell, conf)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := strings.Join([]string{
		"MACRO inv_cell",
		"CLASS CORE ;",
		"\tORIGIN -1 -2 ;",
		"\tFOREIGN inv_cell 1 2 ;",
		"\tSIZE 20 BY 40 ;",
		"\tSYMMETRY X Y ;",
		"\tSITE CoreSite ;",
		"\tPIN A",
		"\t\tDIRECTION INPUT ;",
		"\t\tUSE SIGNAL ;",
		"\t\tPORT",
		"\t\t\tLAYER poly ;",
		"\t\t\t\tRECT 2 5 4 7 ;",
		"\t\tEND",
		"\tEND A",
		"\tPIN Y",
		"\t\tDIRECTION OUTPUT ;",
		"\t\tUSE SIGNAL ;",
		"\t\tPORT",
		"\t\t\tLAYER met1 ;",
		"\t\t\t\tRECT 15 5 17 35 ;",
		"\t\t\tLAYER met1 ;",
		"\t\t\t\tRECT 14 4 18 36 ;",
		"\t\tEND",
		"\tEND Y",
		"\tOBS",
		"\t\tLAYER poly ;",
		"\t\t\tRECT 2 5 4 7 ;",
		"\t\tLAYER met1 ;",
		"\t\t\tRECT 15 5 17 35 ;",
		"\t\tLAYER met1 ;",
		"\t\t\tRECT 14 4 18 36 ;",
		"\t\tLAYER met1 ;",
		"\t\t\tRECT 1 40 21 42 ;",
		"\t\tLAYER met1 ;",
		"\t\t\tRECT 0 39 22 43 ;",
		"\t\tLAYER poly ;",
		"\t\t\tRECT 5 5 6 6 ;",
		"\tEND",
		"END inv_cell",
		"",
		"",
	}, "\n")

	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderUnitScale(t *testing.T) {
	conf := mustConf(t, "begin general\nint scale 1\nend\nbegin materials\nbegin m1\nstring_table gds \"met1.drawing\"\nint_table gds_bloat 0\nend\nend\n")
	cell := mustCell(t, "blk", "bbox 0 0 10 20\nrect a m1 0 0 10 20\n")

	got, err := Render(cell, conf)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(got), "\t\t\tRECT 0 0 10 20 ;\n") {
		t.Errorf("expected RECT 0 0 10 20 in:\n%s", got)
	}
	if !strings.Contains(string(got), "\tORIGIN 0 0 ;\n") {
		t.Errorf("expected ORIGIN 0 0 (no negative zero) in:\n%s", got)
	}
}

func TestRenderClassAndSite(t *testing.T) {
	conf := mustConf(t, testConf)
	tests := []struct {
		name     string
		class    string
		wantSite bool
	}{
		{"welltap_n", "CLASS CORE WELLTAP ;", true},
		{"fill_x4", "CLASS CORE SPACER ;", true},
		{"nand_cell", "CLASS CORE ;", true},
		{"sram", "CLASS BLOCK ;", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(mustCell(t, tt.name, "rect vdd m1 0 0 1 1\n"), conf)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			out := string(got)
			if !strings.Contains(out, "\n"+tt.class+"\n") {
				t.Errorf("missing %q in:\n%s", tt.class, out)
			}
			if hasSite := strings.Contains(out, "SITE CoreSite"); hasSite != tt.wantSite {
				t.Errorf("SITE present = %v, want %v", hasSite, tt.wantSite)
			}
		})
	}
}

func TestRenderObstructionOnly(t *testing.T) {
	conf := mustConf(t, testConf)
	got, err := Render(mustCell(t, "blk", "rect net1 poly 0 0 2 2\n"), conf)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := string(got)
	if strings.Contains(out, "PIN") {
		t.Errorf("non-pin rectangle produced a PIN block:\n%s", out)
	}
	if !strings.Contains(out, "\tOBS\n\t\tLAYER poly ;\n\t\t\tRECT 0 0 1 1 ;\n\tEND\n") {
		t.Errorf("obstruction geometry missing:\n%s", out)
	}
}

func TestRenderUnresolvedPin(t *testing.T) {
	conf := mustConf(t, testConf)
	got, err := Render(mustCell(t, "blk", "inrect a nowhere 0 0 2 2\n"), conf)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := string(got)
	if !strings.Contains(out, "\t\tPORT\n\t\tEND\n\tEND a\n") {
		t.Errorf("expected empty PORT for unresolved pin:\n%s", out)
	}
	if strings.Contains(out, "RECT") {
		t.Errorf("unresolved layer produced geometry:\n%s", out)
	}
}

func TestRenderMissingScale(t *testing.T) {
	conf := mustConf(t, "")
	if _, err := Render(mustCell(t, "blk", ""), conf); err == nil {
		t.Error("expected error without general.scale")
	}
}

func TestFormatCoord(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.0 * 1, "0"},
		{10, "10"},
		{-2.5, "-2.5"},
		{3 * 0.1, "0.3"},
		{0.005, "0.005"},
	}
	for _, tt := range tests {
		if got := FormatCoord(tt.in); got != tt.want {
			t.Errorf("FormatCoord(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
