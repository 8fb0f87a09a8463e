package techconf

import (
	"github.com/layoutkit/rect2lef/pkg/errors"
)

// Section is an ordered set of named values. Sections are only built by the
// loaders in this package and are read-only afterwards.
type Section struct {
	keys   []string
	values map[string]Value
}

func newSection() *Section {
	return &Section{values: make(map[string]Value)}
}

// set stores v under key, keeping the position of an existing key.
func (s *Section) set(key string, v Value) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = v
}

// merge copies every top-level entry of other into s, overwriting.
func (s *Section) merge(other *Section) {
	for _, k := range other.keys {
		s.set(k, other.values[k])
	}
}

// Get returns the value stored directly under key.
func (s *Section) Get(key string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key exists directly in s.
func (s *Section) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Keys returns the keys of s in definition order.
func (s *Section) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// Len returns the number of entries in s.
func (s *Section) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Config is a parsed technology configuration. It is immutable and safe for
// concurrent use.
type Config struct {
	root   *Section
	source string
}

// Source returns the path the configuration was loaded from, if any.
func (c *Config) Source() string { return c.source }

// Root returns the top-level section.
func (c *Config) Root() *Section { return c.root }

// TryGet walks path through nested sections and returns the value at the
// end. It returns false if any element is missing or an intermediate element
// is not a section. An empty path is never found.
func (c *Config) TryGet(path ...string) (Value, bool) {
	if c == nil || len(path) == 0 {
		return Value{}, false
	}
	sec := c.root
	for i, key := range path {
		v, ok := sec.Get(key)
		if !ok {
			return Value{}, false
		}
		if i == len(path)-1 {
			return v, true
		}
		if sec, ok = v.Section(); !ok {
			return Value{}, false
		}
	}
	return Value{}, false
}

// Section returns the section at path.
func (c *Config) Section(path ...string) (*Section, bool) {
	v, ok := c.TryGet(path...)
	if !ok {
		return nil, false
	}
	return v.Section()
}

// Strings returns the string table at path, or nil.
func (c *Config) Strings(path ...string) []string {
	v, _ := c.TryGet(path...)
	s, _ := v.Strings()
	return s
}

// Ints returns the int table at path, or nil.
func (c *Config) Ints(path ...string) []int {
	v, _ := c.TryGet(path...)
	n, _ := v.Ints()
	return n
}

// Scale returns general.scale, the factor applied to every output
// coordinate. A missing or non-numeric entry is an INVALID_CONFIG error.
func (c *Config) Scale() (float64, error) {
	v, ok := c.TryGet("general", "scale")
	if !ok {
		return 0, errors.At(errors.ErrCodeInvalidConfig, c.Source(), 0, "missing general.scale")
	}
	f, ok := v.Float()
	if !ok {
		return 0, errors.At(errors.ErrCodeInvalidConfig, c.Source(), 0, "general.scale must be numeric, got %s", v.Kind())
	}
	return f, nil
}

// Metals returns general.metals, or 0 when it is not configured.
func (c *Config) Metals() int {
	v, _ := c.TryGet("general", "metals")
	n, _ := v.Int()
	return n
}
