package domain

import (
	"encoding/json"
	"sort"
	"strconv"
)

type tagKind uint8

const (
	tagString tagKind = iota
	tagNumber
	tagBool
)

// TagValue is a scalar substituted for a placeholder.
type TagValue struct {
	kind tagKind
	str  string
	num  float64
	b    bool
}

func StringTag(s string) TagValue  { return TagValue{kind: tagString, str: s} }
func NumberTag(n float64) TagValue { return TagValue{kind: tagNumber, num: n} }
func BoolTag(b bool) TagValue      { return TagValue{kind: tagBool, b: b} }

func (v TagValue) IsNumber() bool { return v.kind == tagNumber }

func (v TagValue) Number() float64 { return v.num }

// Truthy follows the loose truth rules of the upstream authoring tool:
// empty strings, zero and false are not truthy.
func (v TagValue) Truthy() bool {
	switch v.kind {
	case tagNumber:
		return v.num != 0
	case tagBool:
		return v.b
	default:
		return v.str != ""
	}
}

// String renders the value as it appears in the substituted template.
// Numbers use the shortest decimal form, so 42 renders as "42" and 1.5 as "1.5".
func (v TagValue) String() string {
	switch v.kind {
	case tagNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case tagBool:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}

// Value returns the JSON tree form of the value: json.Number, bool or string.
func (v TagValue) Value() any {
	switch v.kind {
	case tagNumber:
		return json.Number(v.String())
	case tagBool:
		return v.b
	default:
		return v.str
	}
}

func (v TagValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case tagNumber:
		return []byte(v.String()), nil
	case tagBool:
		return json.Marshal(v.b)
	default:
		return json.Marshal(v.str)
	}
}

// TagMapping maps tag names such as "type1_1:title" to their values.
type TagMapping map[string]TagValue

// Merge copies every entry of other into m. Later writes win.
func (m TagMapping) Merge(other TagMapping) {
	for k, v := range other {
		m[k] = v
	}
}

func (m TagMapping) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Keys returns the tag names in sorted order.
func (m TagMapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
