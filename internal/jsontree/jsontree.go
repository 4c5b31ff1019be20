// Package jsontree holds JSON documents as trees that keep object key order.
//
// Nodes are *Object, []any, string, json.Number, bool or nil.
package jsontree

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
)

// Object is a JSON object that remembers key insertion order.
type Object struct {
	keys   []string
	values map[string]any
}

func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

func (o *Object) Len() int { return len(o.keys) }

// Keys returns the keys in document order. The slice must not be modified.
func (o *Object) Keys() []string { return o.keys }

func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Set replaces the value of an existing key in place or appends a new key.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i:i], o.keys[i+1:]...)
			break
		}
	}
}

// Rename changes a key while keeping its position. When newKey already
// exists elsewhere in the object that entry is dropped, matching how a
// duplicate key resolves in a parsed document.
func (o *Object) Rename(oldKey, newKey string) {
	if oldKey == newKey {
		return
	}
	v, ok := o.values[oldKey]
	if !ok {
		return
	}
	if _, clash := o.values[newKey]; clash {
		o.Delete(newKey)
	}
	delete(o.values, oldKey)
	o.values[newKey] = v
	for i, k := range o.keys {
		if k == oldKey {
			o.keys[i] = newKey
			break
		}
	}
}

// Object returns the child object stored at key, if any.
func (o *Object) Object(key string) (*Object, bool) {
	v, ok := o.values[key]
	if !ok {
		return nil, false
	}
	child, ok := v.(*Object)
	return child, ok
}

// String returns the string stored at key, if any.
func (o *Object) String(key string) (string, bool) {
	v, ok := o.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Path walks nested objects by key.
func (o *Object) Path(keys ...string) (*Object, bool) {
	cur := o
	for _, k := range keys {
		next, ok := cur.Object(k)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse decodes data into a tree. Syntax errors are reported with the
// message of encoding/json unchanged.
func Parse(data []byte) (any, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return buildRaw(raw)
}

// ParseObject decodes data that must be a JSON object.
func ParseObject(data []byte) (*Object, error) {
	node, err := Parse(data)
	if err != nil {
		return nil, err
	}
	obj, ok := node.(*Object)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %s", Kind(node))
	}
	return obj, nil
}

// buildRaw builds the node of one syntactically valid JSON value.
func buildRaw(raw []byte) (any, error) {
	value, dataType, _, err := jsonparser.Get(raw)
	if err != nil {
		return nil, err
	}
	return build(raw, value, dataType)
}

// build converts a value classified by jsonparser. Containers are walked with
// a json.Decoder so object keys are unescaped exactly once, in document order.
func build(raw, value []byte, dataType jsonparser.ValueType) (any, error) {
	switch dataType {
	case jsonparser.Object:
		dec := json.NewDecoder(bytes.NewReader(raw))
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		obj := NewObject()
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", tok)
			}
			child, err := decodeChild(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, child)
		}
		return obj, nil
	case jsonparser.Array:
		dec := json.NewDecoder(bytes.NewReader(raw))
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		arr := make([]any, 0)
		for dec.More() {
			child, err := decodeChild(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, child)
		}
		return arr, nil
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Number:
		return json.Number(string(value)), nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Null:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected JSON value %q", string(value))
	}
}

func decodeChild(dec *json.Decoder) (any, error) {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return buildRaw(raw)
}

// Marshal encodes a tree without HTML escaping.
func Marshal(node any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent encodes a tree with the given indent, without HTML escaping.
func MarshalIndent(node any, indent string) ([]byte, error) {
	compact, err := Marshal(node)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, node any) error {
	switch v := node.(type) {
	case *Object:
		buf.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeScalar(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encode(buf, v.values[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return encodeScalar(buf, v)
	}
}

func encodeScalar(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encoder terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Kind names the JSON type of a node.
func Kind(node any) string {
	switch node.(type) {
	case *Object:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number, float64, int:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", node)
	}
}

// Clone returns a deep copy of a tree.
func Clone(node any) any {
	switch v := node.(type) {
	case *Object:
		out := &Object{keys: make([]string, len(v.keys)), values: make(map[string]any, len(v.values))}
		copy(out.keys, v.keys)
		for k, child := range v.values {
			out.values[k] = Clone(child)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = Clone(child)
		}
		return out
	default:
		return v
	}
}

// FromValue converts an arbitrary Go value into a tree through its JSON form.
func FromValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// StringSlice converts strings into an array node.
func StringSlice(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

// Walk visits every node depth first. fn receives the parent object and key
// for object members; both are zero for array items and the root.
func Walk(node any, fn func(parent *Object, key string, value any)) {
	walk(nil, "", node, fn)
}

func walk(parent *Object, key string, node any, fn func(*Object, string, any)) {
	fn(parent, key, node)
	switch v := node.(type) {
	case *Object:
		for _, k := range append([]string(nil), v.keys...) {
			child, ok := v.values[k]
			if !ok {
				continue
			}
			walk(v, k, child, fn)
		}
	case []any:
		for _, item := range v {
			walk(nil, "", item, fn)
		}
	}
}

// MapStrings rewrites every string value and object key with fn, in place
// where possible, and returns the resulting root.
func MapStrings(node any, fn func(string) string) any {
	switch v := node.(type) {
	case *Object:
		for _, k := range append([]string(nil), v.keys...) {
			v.values[k] = MapStrings(v.values[k], fn)
			if nk := fn(k); nk != k {
				v.Rename(k, nk)
			}
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = MapStrings(item, fn)
		}
		return v
	case string:
		return fn(v)
	default:
		return v
	}
}
