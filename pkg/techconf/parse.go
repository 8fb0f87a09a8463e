package techconf

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

// Load reads the technology file at path. Files ending in .toml are decoded
// as TOML; everything else is parsed as ACT .conf directives.
func Load(path string) (*Config, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return LoadTOML(path)
	}
	p := newParser()
	root, err := p.parseFile(path)
	if err != nil {
		return nil, err
	}
	return &Config{root: root, source: path}, nil
}

// Parse reads .conf directives from r. name is used in error messages and as
// the base directory for relative includes.
func Parse(r io.Reader, name string) (*Config, error) {
	p := newParser()
	p.active[fileKey(name)] = true
	root, err := p.parse(r, name)
	if err != nil {
		return nil, err
	}
	return &Config{root: root, source: name}, nil
}

type parser struct {
	open   func(string) (io.ReadCloser, error)
	active map[string]bool // files on the current include chain
}

func newParser() *parser {
	return &parser{
		open:   func(path string) (io.ReadCloser, error) { return os.Open(path) },
		active: make(map[string]bool),
	}
}

func (p *parser) parseFile(path string) (*Section, error) {
	key := fileKey(path)
	if p.active[key] {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "include cycle through %s", path)
	}
	p.active[key] = true
	defer delete(p.active, key)

	f, err := p.open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "technology file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return p.parse(f, path)
}

// fileKey identifies a file on the include chain.
func fileKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (p *parser) parse(r io.Reader, name string) (*Section, error) {
	root := newSection()
	stack := []*Section{root}
	names := []string{""}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		toks, err := tokenize(sc.Text())
		if err != nil {
			return nil, errors.At(errors.ErrCodeInvalidConfig, name, line, "%v", err)
		}
		if len(toks) == 0 {
			continue
		}
		fail := func(format string, args ...any) error {
			return errors.At(errors.ErrCodeInvalidConfig, name, line, format, args...)
		}

		top := stack[len(stack)-1]
		directive, args := toks[0].text, toks[1:]
		switch directive {
		case "include":
			if len(args) != 1 {
				return nil, fail("include expects a file name")
			}
			inc := args[0].text
			if !filepath.IsAbs(inc) {
				inc = filepath.Join(filepath.Dir(name), inc)
			}
			sub, err := p.parseFile(inc)
			if err != nil {
				if errors.Is(err, errors.ErrCodeFileNotFound) {
					return nil, fail("include %q: not found", args[0].text)
				}
				return nil, err
			}
			top.merge(sub)

		case "begin":
			if len(args) != 1 {
				return nil, fail("begin expects a section name")
			}
			key := args[0].text
			sec, ok := top.values[key].Section()
			if !ok {
				sec = newSection()
				top.set(key, sectionValue(sec))
			}
			stack = append(stack, sec)
			names = append(names, key)

		case "end":
			if len(stack) == 1 {
				return nil, fail("end without matching begin")
			}
			stack = stack[:len(stack)-1]
			names = names[:len(names)-1]

		case "string":
			if len(args) != 2 {
				return nil, fail("string expects a key and a value")
			}
			top.set(args[0].text, StringValue(args[1].text))

		case "int":
			if len(args) != 2 {
				return nil, fail("int expects a key and a value")
			}
			n, err := strconv.Atoi(args[1].text)
			if err != nil {
				return nil, fail("int %s: invalid integer %q", args[0].text, args[1].text)
			}
			top.set(args[0].text, IntValue(n))

		case "real":
			if len(args) != 2 {
				return nil, fail("real expects a key and a value")
			}
			f, err := strconv.ParseFloat(args[1].text, 64)
			if err != nil {
				return nil, fail("real %s: invalid number %q", args[0].text, args[1].text)
			}
			top.set(args[0].text, RealValue(f))

		case "int_table":
			if len(args) < 1 {
				return nil, fail("int_table expects a key")
			}
			ns := make([]int, 0, len(args)-1)
			for _, a := range args[1:] {
				n, err := strconv.Atoi(a.text)
				if err != nil {
					return nil, fail("int_table %s: invalid integer %q", args[0].text, a.text)
				}
				ns = append(ns, n)
			}
			top.set(args[0].text, Value{kind: KindIntTable, ints: ns})

		case "string_table":
			if len(args) < 1 {
				return nil, fail("string_table expects a key")
			}
			ss := make([]string, 0, len(args)-1)
			for _, a := range args[1:] {
				ss = append(ss, a.text)
			}
			top.set(args[0].text, Value{kind: KindStringTable, strs: ss})

		default:
			return nil, fail("unknown directive %q", directive)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", name)
	}
	if len(stack) > 1 {
		return nil, errors.At(errors.ErrCodeInvalidConfig, name, 0, "unterminated section %q", strings.Join(names[1:], "."))
	}
	return root, nil
}

type token struct {
	text   string
	quoted bool
}

// tokenize splits a directive line into whitespace-separated tokens. Single
// or double quotes group a token and are stripped; a backslash inside quotes
// escapes the next character. '#' outside quotes ends the line.
func tokenize(line string) ([]token, error) {
	var (
		toks   []token
		cur    strings.Builder
		inTok  bool
		quote  rune
		escape bool
	)
	flush := func(quoted bool) {
		toks = append(toks, token{text: cur.String(), quoted: quoted})
		cur.Reset()
		inTok = false
	}
	for _, r := range line {
		switch {
		case quote != 0:
			switch {
			case escape:
				cur.WriteRune(r)
				escape = false
			case r == '\\':
				escape = true
			case r == quote:
				quote = 0
				flush(true)
			default:
				cur.WriteRune(r)
			}
		case r == '#':
			if inTok {
				flush(false)
			}
			return toks, nil
		case r == '"' || r == '\'':
			if inTok {
				flush(false)
			}
			quote = r
		case r == ' ' || r == '\t' || r == '\r':
			if inTok {
				flush(false)
			}
		default:
			cur.WriteRune(r)
			inTok = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated string")
	}
	if inTok {
		flush(false)
	}
	return toks, nil
}
