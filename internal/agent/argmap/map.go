package argmap

import (
	"sort"
)

// Map is the immutable configuration mapping produced by Parse.
//
// The zero value is an empty mapping. A Map never changes after it is
// returned; accessors hand out copies.
type Map struct {
	entries map[string]Value
}

// builder is the staging form of a Map. It is local to a single parse and
// is never exposed.
type builder struct {
	entries map[string]Value
}

func newBuilder() *builder {
	return &builder{entries: make(map[string]Value)}
}

// set stores v under key, replacing any earlier value.
func (b *builder) set(key string, v Value) {
	b.entries[key] = v
}

// freeze hands the staged entries to a Map. The builder must not be used
// afterwards.
func (b *builder) freeze() Map {
	m := Map{entries: b.entries}
	b.entries = nil
	return m
}

// Len returns the number of entries.
func (m Map) Len() int { return len(m.entries) }

// Get returns the value stored under key.
func (m Map) Get(key string) (Value, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Int returns the integer stored under key. ok is false when the key is
// missing or not an integer.
func (m Map) Int(key string) (int, bool) {
	v, ok := m.entries[key]
	if !ok {
		return 0, false
	}
	return v.Int()
}

// Float returns the float stored under key.
func (m Map) Float(key string) (float32, bool) {
	v, ok := m.entries[key]
	if !ok {
		return 0, false
	}
	return v.Float()
}

// Text returns the text stored under key.
func (m Map) Text(key string) (string, bool) {
	v, ok := m.entries[key]
	if !ok {
		return "", false
	}
	return v.Text()
}

// Keys returns the keys in ascending order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Each calls fn for every entry in key order.
func (m Map) Each(fn func(key string, v Value)) {
	for _, k := range m.Keys() {
		fn(k, m.entries[k])
	}
}

// Equal reports whether both mappings hold the same keys with the same
// kinds and values.
func (m Map) Equal(other Map) bool {
	if len(m.entries) != len(other.entries) {
		return false
	}
	for k, v := range m.entries {
		ov, ok := other.entries[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// AsMap returns a fresh map of plain Go values, suitable for encoding.
func (m Map) AsMap() map[string]any {
	out := make(map[string]any, len(m.entries))
	for k, v := range m.entries {
		out[k] = v.Any()
	}
	return out
}
