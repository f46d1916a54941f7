// Package document holds the ordered JSON object tree every configuration is built on.
// Keys keep the order in which they were first written; reads and writes are addressed
// with gjson/sjson paths (use Key to build paths from arbitrary key names).
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var ErrMalformed = errors.New("document is not a JSON object")

// Document is an immutable-by-value JSON object. The zero value is the empty object.
// Mutating methods replace the underlying buffer, so copies never observe each other's writes.
type Document struct {
	raw []byte
}

// Field is one key/value pair for Of.
type Field struct {
	Key   string
	Value any
}

func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

func Empty() Document {
	return Document{}
}

// Of builds an object whose keys appear in argument order.
func Of(fields ...Field) Document {
	var d Document
	for _, f := range fields {
		// Values passed by callers are plain Go values or documents; a marshal
		// failure only drops that field.
		_ = d.Set(Key(f.Key), f.Value)
	}
	return d
}

// Parse accepts a JSON object and keeps its key order.
func Parse(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || !gjson.ValidBytes(trimmed) {
		return Document{}, ErrMalformed
	}
	if !gjson.ParseBytes(trimmed).IsObject() {
		return Document{}, ErrMalformed
	}
	return Document{raw: pretty.Ugly(trimmed)}, nil
}

// FromResult returns the object held by r, or the empty document when r is not an object.
func FromResult(r gjson.Result) Document {
	if !r.IsObject() {
		return Document{}
	}
	return Document{raw: []byte(r.Raw)}
}

func (d Document) buf() []byte {
	if len(d.raw) == 0 {
		return []byte("{}")
	}
	return d.raw
}

func (d Document) Get(path string) gjson.Result {
	return gjson.GetBytes(d.buf(), path)
}

func (d Document) Has(path string) bool {
	return d.Get(path).Exists()
}

// Object returns the object at path, or the empty document on any structural absence.
func (d Document) Object(path string) Document {
	return FromResult(d.Get(path))
}

// Array returns the elements of the array at path, or nil when path is not an array.
func (d Document) Array(path string) []gjson.Result {
	r := d.Get(path)
	if !r.IsArray() {
		return nil
	}
	return r.Array()
}

// GetString returns scalars (strings, numbers, booleans) as text and "" for
// objects, arrays, null and missing paths.
func (d Document) GetString(path string) string {
	r := d.Get(path)
	switch r.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return r.String()
	}
	return ""
}

func (d Document) Keys() []string {
	var keys []string
	gjson.ParseBytes(d.buf()).ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}

func (d Document) IsEmpty() bool {
	empty := true
	gjson.ParseBytes(d.buf()).ForEach(func(_, _ gjson.Result) bool {
		empty = false
		return false
	})
	return empty
}

// Set writes value at path. Existing keys are replaced in place, new keys are appended.
func (d *Document) Set(path string, value any) error {
	raw, err := marshal(value)
	if err != nil {
		return err
	}
	return d.SetRaw(path, raw)
}

func (d *Document) SetRaw(path string, raw []byte) error {
	out, err := sjson.SetRawBytes(d.buf(), path, raw)
	if err != nil {
		return err
	}
	d.raw = out
	return nil
}

// Append pushes value onto the array at path, creating the array when absent.
func (d *Document) Append(path string, value any) error {
	raw, err := marshal(value)
	if err != nil {
		return err
	}
	if !d.Get(path).IsArray() {
		return d.SetRaw(path, append(append([]byte{'['}, raw...), ']'))
	}
	return d.SetRaw(path+".-1", raw)
}

func (d *Document) Delete(path string) error {
	if !d.Has(path) {
		return nil
	}
	out, err := sjson.DeleteBytes(d.buf(), path)
	if err != nil {
		return err
	}
	d.raw = out
	return nil
}

func (d Document) Clone() Document {
	if len(d.raw) == 0 {
		return Document{}
	}
	return Document{raw: append([]byte(nil), d.raw...)}
}

// Bytes returns the compact JSON encoding.
func (d Document) Bytes() []byte {
	return append([]byte(nil), d.buf()...)
}

func (d Document) String() string {
	return string(d.buf())
}

// Pretty returns an indented encoding with the original key order.
func (d Document) Pretty() string {
	return string(pretty.Pretty(d.buf()))
}

// Equal reports semantic equality; key order is ignored.
func (d Document) Equal(other Document) bool {
	return reflect.DeepEqual(
		gjson.ParseBytes(d.buf()).Value(),
		gjson.ParseBytes(other.buf()).Value(),
	)
}

func (d Document) MarshalJSON() ([]byte, error) {
	return d.Bytes(), nil
}

func (d *Document) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Key joins path components, escaping characters gjson and sjson treat as syntax.
func Key(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = escapeKey(p)
	}
	return strings.Join(escaped, ".")
}

// escapeKey also escapes a leading ':', which sjson reads as a force-key marker.
func escapeKey(k string) string {
	if !strings.ContainsAny(k, `\.*?|#@!`) && !strings.HasPrefix(k, ":") {
		return k
	}
	var b strings.Builder
	b.Grow(len(k) + 4)
	for i := 0; i < len(k); i++ {
		switch k[i] {
		case '\\', '.', '*', '?', '|', '#', '@', '!':
			b.WriteByte('\\')
		case ':':
			if i == 0 {
				b.WriteByte('\\')
			}
		}
		b.WriteByte(k[i])
	}
	return b.String()
}

func marshal(value any) ([]byte, error) {
	switch v := value.(type) {
	case Document:
		return v.Bytes(), nil
	case *Document:
		return v.Bytes(), nil
	case gjson.Result:
		if !v.Exists() {
			return []byte("null"), nil
		}
		return []byte(v.Raw), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
