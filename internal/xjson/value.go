// Package xjson models loosely-shaped JSON responses as semi-structured
// values. Nested lookups return absent instead of panicking, so callers can
// project arbitrary remote payloads into fixed shapes without guarding every
// key access.
package xjson

import (
	"bytes"

	go_json "github.com/goccy/go-json"
)

// Value is one JSON object with optional nested lookup.
type Value map[string]any

// Decode parses a JSON object from raw bytes.
func Decode(data []byte) (Value, error) {
	var v Value
	if err := go_json.NewDecoder(bytes.NewReader(data)).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Get walks the given key path. The second return is false if any key along
// the path is missing or a non-object value is traversed into.
func (v Value) Get(path ...string) (any, bool) {
	if v == nil || len(path) == 0 {
		return nil, false
	}

	var cur any = map[string]any(v)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Float returns the value at path as a float64.
func (v Value) Float(path ...string) (float64, bool) {
	raw, ok := v.Get(path...)
	if !ok {
		return 0, false
	}
	switch n := raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case go_json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Int returns the value at path as an int64. JSON numbers decode as float64,
// so integral floats are accepted.
func (v Value) Int(path ...string) (int64, bool) {
	f, ok := v.Float(path...)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// String returns the value at path as a string.
func (v Value) String(path ...string) (string, bool) {
	raw, ok := v.Get(path...)
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

// Map returns the value at path as a nested Value.
func (v Value) Map(path ...string) (Value, bool) {
	raw, ok := v.Get(path...)
	if !ok {
		return nil, false
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	return Value(m), true
}

// Slice returns the value at path as a []any.
func (v Value) Slice(path ...string) ([]any, bool) {
	raw, ok := v.Get(path...)
	if !ok {
		return nil, false
	}
	s, ok := raw.([]any)
	return s, ok
}
