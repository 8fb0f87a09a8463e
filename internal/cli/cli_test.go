package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/layoutkit/rect2lef/pkg/errors"
)

const testConf = `# test technology
begin general
  real scale 0.5
  int metals 1
end
begin materials
  begin metal
    string_table m1_gds "met1.drawing" "met1.pin"
    int_table m1_gds_bloat 0 1
  end
end
begin gds
  string_table layers "met1.drawing" "met1.pin" "prbnd.boundary"
  int_table major 68 68 235
  int_table minor 20 16 4
end
`

const testRect = `bbox 0 0 40 80
inrect A m1 4 10 8 14
outrect Y m1 30 10 34 70
inrect vdd m1 0 76 40 80
rect # poly 0 0 2 2
`

type fixture struct {
	dir, conf, rect, out string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:  dir,
		conf: filepath.Join(dir, "layout.conf"),
		rect: filepath.Join(dir, "inv_cell.rect"),
		out:  filepath.Join(dir, "out"),
	}
	mustWrite(t, f.conf, testConf)
	mustWrite(t, f.rect, testRect)
	if err := os.Mkdir(f.out, 0o755); err != nil {
		t.Fatal(err)
	}
	return f
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// execute runs the CLI with args and returns its stderr output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var stderr bytes.Buffer
	root.SetOut(io.Discard)
	root.SetErr(&stderr)
	err := Execute(context.Background(), root, args)
	return stderr.String(), err
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"legacy flags", []string{"-lm", "-gds", "a.rect"}, []string{"--lm", "--gds", "a.rect"}},
		{"modern flags untouched", []string{"--lm", "-Tsky130", "a.rect"}, []string{"--lm", "-Tsky130", "a.rect"}},
		{"after terminator", []string{"--", "-lm"}, []string{"--", "-lm"}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, NormalizeArgs(tt.in)); diff != "" {
				t.Errorf("NormalizeArgs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeArgsDoesNotMutate(t *testing.T) {
	in := []string{"-lm"}
	NormalizeArgs(in)
	if in[0] != "-lm" {
		t.Errorf("input mutated: %v", in)
	}
}

func TestConvertLEFOnly(t *testing.T) {
	f := newFixture(t)

	if _, err := execute(t, "--tech-file", f.conf, "-o", f.out, f.rect); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if diff := cmp.Diff([]string{"inv_cell.lef"}, listDir(t, f.out)); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(filepath.Join(f.out, "inv_cell.lef"))
	if err != nil {
		t.Fatal(err)
	}
	lef := string(data)
	for _, want := range []string{"MACRO inv_cell\n", "CLASS CORE ;\n", "\tSIZE 20 BY 40 ;\n", "\tPIN vdd\n", "END inv_cell\n"} {
		if !strings.Contains(lef, want) {
			t.Errorf("lef output missing %q:\n%s", want, lef)
		}
	}
}

func TestConvertAllOutputs(t *testing.T) {
	f := newFixture(t)

	if _, err := execute(t, "--tech-file", f.conf, "-o", f.out, "--lm", "--gds", f.rect); err != nil {
		t.Fatalf("execute: %v", err)
	}

	want := []string{"inv_cell.gds", "inv_cell.lef", "layermap.txt"}
	if diff := cmp.Diff(want, listDir(t, f.out)); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}

	gds, err := os.ReadFile(filepath.Join(f.out, "inv_cell.gds"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(gds, []byte{0x00, 0x06, 0x00, 0x02, 0x02, 0x58}) {
		t.Errorf("gds does not start with a HEADER record: % x", gds[:min(len(gds), 8)])
	}

	lm, err := os.ReadFile(filepath.Join(f.out, "layermap.txt"))
	if err != nil {
		t.Fatal(err)
	}
	wantMap := "met1 LEFOBS 68 20\nmet1 PIN,LEFPIN 68 16\nDIEAREA ALL 235 4\n"
	if string(lm) != wantMap {
		t.Errorf("layermap = %q, want %q", lm, wantMap)
	}
}

func TestConvertLayerMapWithoutInput(t *testing.T) {
	f := newFixture(t)

	if _, err := execute(t, "--tech-file", f.conf, "-lm", "-o", f.out); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if diff := cmp.Diff([]string{"layermap.txt"}, listDir(t, f.out)); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
	lm, err := os.ReadFile(filepath.Join(f.out, "layermap.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "met1 LEFOBS 68 20\nmet1 PIN,LEFPIN 68 16\nDIEAREA ALL 235 4\n"; string(lm) != want {
		t.Errorf("layermap = %q, want %q", lm, want)
	}
}

func TestConvertLegacyFlags(t *testing.T) {
	f := newFixture(t)

	if _, err := execute(t, "-lm", "-gds", "--gds-format", "json", "--tech-file", f.conf, "-o", f.out, f.rect); err != nil {
		t.Fatalf("execute: %v", err)
	}

	want := []string{"inv_cell.gds.json", "inv_cell.lef", "layermap.txt"}
	if diff := cmp.Diff(want, listDir(t, f.out)); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertTechFromHome(t *testing.T) {
	f := newFixture(t)
	home := filepath.Join(f.dir, "act")
	mustWrite(t, filepath.Join(home, "conf", "mytech", "layout.conf"), testConf)
	t.Setenv("ACT_HOME", home)

	if _, err := execute(t, "-Tmytech", "-o", f.out, f.rect); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := os.Stat(filepath.Join(f.out, "inv_cell.lef")); err != nil {
		t.Errorf("lef not written: %v", err)
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     func(f fixture) []string
		wantCode errors.Code
	}{
		{
			name:     "unknown option",
			args:     func(f fixture) []string { return []string{"--bogus", f.rect} },
			wantCode: errors.ErrCodeInvalidOption,
		},
		{
			name:     "unknown gds format",
			args:     func(f fixture) []string { return []string{"--gds", "--gds-format", "oasis", f.rect} },
			wantCode: errors.ErrCodeInvalidOption,
		},
		{
			name:     "bad tech name",
			args:     func(f fixture) []string { return []string{"-T../etc", f.rect} },
			wantCode: errors.ErrCodeInvalidOption,
		},
		{
			name: "missing tech file",
			args: func(f fixture) []string {
				return []string{"--tech-file", filepath.Join(f.dir, "nope.conf"), f.rect}
			},
			wantCode: errors.ErrCodeFileNotFound,
		},
		{
			name:     "no input without lm",
			args:     func(f fixture) []string { return []string{"--tech-file", f.conf} },
			wantCode: errors.ErrCodeInvalidOption,
		},
		{
			name:     "gds without input",
			args:     func(f fixture) []string { return []string{"--tech-file", f.conf, "--lm", "--gds"} },
			wantCode: errors.ErrCodeInvalidOption,
		},
		{
			name: "missing input",
			args: func(f fixture) []string {
				return []string{"--tech-file", f.conf, filepath.Join(f.dir, "nope.rect")}
			},
			wantCode: errors.ErrCodeFileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			args := append([]string{"-o", f.out}, tt.args(f)...)

			_, err := execute(t, args...)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("err = %v, want code %s", err, tt.wantCode)
			}
			if names := listDir(t, f.out); len(names) != 0 {
				t.Errorf("outputs written despite error: %v", names)
			}
		})
	}
}

func TestConvertUnknownOptionPrintsUsage(t *testing.T) {
	f := newFixture(t)

	stderr, _ := execute(t, "--bogus", f.rect)
	if !strings.Contains(stderr, "Usage:") {
		t.Errorf("stderr = %q, want usage", stderr)
	}
}

func TestConvertEmitterErrorWritesNothing(t *testing.T) {
	f := newFixture(t)
	mustWrite(t, f.conf, "begin general\nint metals 1\nend\n")

	_, err := execute(t, "--tech-file", f.conf, "-o", f.out, "--lm", f.rect)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("err = %v, want INVALID_CONFIG", err)
	}
	if names := listDir(t, f.out); len(names) != 0 {
		t.Errorf("outputs written despite error: %v", names)
	}
}

func TestInspect(t *testing.T) {
	f := newFixture(t)

	if _, err := execute(t, "inspect", "--tech-file", f.conf, f.rect); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestRectFileCompletion(t *testing.T) {
	got, directive := rectFileCompletion(nil, nil, "")
	if diff := cmp.Diff([]string{"rect"}, got); diff != "" {
		t.Errorf("extensions mismatch (-want +got):\n%s", diff)
	}
	if directive != cobra.ShellCompDirectiveFilterFileExt {
		t.Errorf("directive = %v, want FilterFileExt", directive)
	}

	if got, _ := rectFileCompletion(nil, []string{"a.rect"}, ""); len(got) != 0 {
		t.Errorf("second argument completed to %v", got)
	}
}

func TestTechCompletion(t *testing.T) {
	home := t.TempDir()
	for _, tech := range []string{"sky130", "sky90", "gf180"} {
		mustWrite(t, filepath.Join(home, "conf", tech, "layout.conf"), testConf)
	}
	t.Setenv("ACT_HOME", home)

	got, directive := techCompletion(nil, nil, "sky")
	if diff := cmp.Diff([]string{"sky130", "sky90"}, got); diff != "" {
		t.Errorf("techs mismatch (-want +got):\n%s", diff)
	}
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v, want NoFileComp", directive)
	}
}

func TestLabelOrDash(t *testing.T) {
	if got := labelOrDash(""); got != "-" {
		t.Errorf("labelOrDash(\"\") = %q, want \"-\"", got)
	}
	if got := labelOrDash("vdd"); got != "vdd" {
		t.Errorf("labelOrDash(vdd) = %q", got)
	}
}
