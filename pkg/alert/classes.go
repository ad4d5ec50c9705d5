package alert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Classes is the normalized set of extra CSS classes for an alert.
// It can be built from a space separated string, a list or a map, and
// always ends up as one ordered, duplicate free list of names.
type Classes struct {
	names []string
}

// ClassString splits a space separated token list.
func ClassString(s string) Classes {
	return newClasses(strings.Fields(s))
}

// ClassList keeps the given order. Elements containing spaces are split.
func ClassList(names ...string) Classes {
	var out []string
	for _, n := range names {
		out = append(out, strings.Fields(n)...)
	}
	return newClasses(out)
}

// ClassMap treats every key as a class name regardless of its value.
// Keys are sorted so the result does not depend on map iteration order.
func ClassMap(m map[string]any) Classes {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return ClassList(keys...)
}

func newClasses(names []string) Classes {
	return Classes{names: appendUnique(nil, names...)}
}

// Names returns a copy of the class names.
func (c Classes) Names() []string {
	return slices.Clone(c.names)
}

// Len returns the number of class names.
func (c Classes) Len() int {
	return len(c.names)
}

// String joins the names with single spaces.
func (c Classes) String() string {
	return strings.Join(c.names, " ")
}

// UnmarshalJSON accepts a string, an array of strings or an object whose
// keys are class names. Object keys keep their document order.
// Values of any other JSON type decode to an empty set.
func (c *Classes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*c = Classes{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ClassString(s)
	case '[':
		var items []any
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		names := make([]string, 0, len(items))
		for _, it := range items {
			if s, ok := it.(string); ok {
				names = append(names, s)
			}
		}
		*c = ClassList(names...)
	case '{':
		keys, err := objectKeys(data)
		if err != nil {
			return err
		}
		*c = ClassList(keys...)
	default:
		*c = Classes{}
	}
	return nil
}

func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// MarshalJSON encodes the normalized list.
func (c Classes) MarshalJSON() ([]byte, error) {
	if c.names == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.names)
}

// UnmarshalYAML accepts the same three shapes as UnmarshalJSON.
func (c *Classes) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*c = Classes{}
			return nil
		}
		*c = ClassString(value.Value)
	case yaml.SequenceNode:
		names := make([]string, 0, len(value.Content))
		for _, n := range value.Content {
			if n.Kind == yaml.ScalarNode {
				names = append(names, n.Value)
			}
		}
		*c = ClassList(names...)
	case yaml.MappingNode:
		names := make([]string, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			names = append(names, value.Content[i].Value)
		}
		*c = ClassList(names...)
	default:
		*c = Classes{}
	}
	return nil
}

// appendUnique appends the non-blank names not already present in dst.
func appendUnique(dst []string, names ...string) []string {
	for _, n := range names {
		if n == "" || slices.Contains(dst, n) {
			continue
		}
		dst = append(dst, n)
	}
	return dst
}
