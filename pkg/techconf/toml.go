package techconf

import (
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/layoutkit/rect2lef/pkg/errors"
)

// LoadTOML reads a TOML technology file. Tables become sections, integer and
// float keys become int and real values, and homogeneous arrays of integers
// or strings become tables.
func LoadTOML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "technology file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	return ParseTOML(string(data), path)
}

// ParseTOML decodes TOML source into a Config. name is used in error messages.
func ParseTOML(src, name string) (*Config, error) {
	var doc map[string]any
	md, err := toml.Decode(src, &doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", name)
	}

	root, err := tomlSection(doc, tomlOrder(md), nil)
	if err != nil {
		return nil, errors.At(errors.ErrCodeInvalidConfig, name, 0, "%v", err)
	}
	return &Config{root: root, source: name}, nil
}

// tomlOrder maps each table path to its keys in document order so the tree
// keeps the author's ordering.
func tomlOrder(md toml.MetaData) map[string][]string {
	order := make(map[string][]string)
	for _, key := range md.Keys() {
		// Implicit parent tables only show up as prefixes.
		for i := 1; i <= len(key); i++ {
			parent := key[:i-1].String()
			leaf := key[i-1]
			if !slices.Contains(order[parent], leaf) {
				order[parent] = append(order[parent], leaf)
			}
		}
	}
	return order
}

func tomlSection(m map[string]any, order map[string][]string, path toml.Key) (*Section, error) {
	sec := newSection()
	keys := slices.Clone(order[path.String()])
	var extra []string
	for k := range m {
		if !slices.Contains(keys, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	keys = append(keys, extra...)
	for _, k := range keys {
		raw, ok := m[k]
		if !ok {
			continue
		}
		child := append(slices.Clone(path), k)
		v, err := tomlValue(raw, order, child)
		if err != nil {
			return nil, err
		}
		sec.set(k, v)
	}
	return sec, nil
}

func tomlValue(raw any, order map[string][]string, path toml.Key) (Value, error) {
	switch x := raw.(type) {
	case string:
		return StringValue(x), nil
	case int64:
		return IntValue(int(x)), nil
	case float64:
		return RealValue(x), nil
	case map[string]any:
		sec, err := tomlSection(x, order, path)
		if err != nil {
			return Value{}, err
		}
		return sectionValue(sec), nil
	case []any:
		return tomlArray(x, path)
	default:
		return Value{}, fmt.Errorf("%s: unsupported value of type %T", path, raw)
	}
}

func tomlArray(items []any, path toml.Key) (Value, error) {
	if len(items) == 0 {
		return Value{kind: KindStringTable, strs: []string{}}, nil
	}
	switch items[0].(type) {
	case int64:
		ns := make([]int, len(items))
		for i, it := range items {
			n, ok := it.(int64)
			if !ok {
				return Value{}, fmt.Errorf("%s: mixed array at index %d", path, i)
			}
			ns[i] = int(n)
		}
		return Value{kind: KindIntTable, ints: ns}, nil
	case string:
		ss := make([]string, len(items))
		for i, it := range items {
			s, ok := it.(string)
			if !ok {
				return Value{}, fmt.Errorf("%s: mixed array at index %d", path, i)
			}
			ss[i] = s
		}
		return Value{kind: KindStringTable, strs: ss}, nil
	default:
		return Value{}, fmt.Errorf("%s: arrays must hold integers or strings, got %T", path, items[0])
	}
}
