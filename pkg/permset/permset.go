// Package permset implements the permission map attached to roles: an
// ordered set of permission-name to allowed/denied flags. JSON encoding
// preserves insertion order so a round-trip through the API does not shuffle
// the keys an operator typed in.
package permset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateKey reports an attempt to add or rename to a key that
	// already exists in the map.
	ErrDuplicateKey = errors.New("permset: duplicate permission key")

	// ErrUnknownKey reports an operation on a key not present in the map.
	ErrUnknownKey = errors.New("permset: unknown permission key")

	// ErrBadBool reports a value literal that is neither "true" nor "false".
	ErrBadBool = errors.New(`permset: value must be "true" or "false"`)
)

// Map is an insertion-ordered permission-name to boolean map.
// The zero value is ready to use.
type Map struct {
	keys   []string
	values map[string]bool
}

// New builds a Map from key/value pairs in the given order.
func New(pairs ...Pair) *Map {
	m := &Map{}
	for _, p := range pairs {
		_ = m.Add(p.Key, p.Value)
	}
	return m
}

// Pair is a single permission entry.
type Pair struct {
	Key   string
	Value bool
}

// ParseBool coerces a "true"/"false" literal case-insensitively, the same
// way value edits in the console are interpreted.
func ParseBool(literal string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(literal)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: got %q", ErrBadBool, literal)
}

// Add appends a new permission. Keys must be unique within one map.
func (m *Map) Add(key string, value bool) error {
	if m.values == nil {
		m.values = make(map[string]bool)
	}
	if _, exists := m.values[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	m.keys = append(m.keys, key)
	m.values[key] = value
	return nil
}

// Rename rewrites a permission key in place, preserving its boolean value
// and its position in the ordering.
func (m *Map) Rename(oldKey, newKey string) error {
	if _, ok := m.values[oldKey]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, oldKey)
	}
	if oldKey == newKey {
		return nil
	}
	if _, exists := m.values[newKey]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, newKey)
	}

	for i, k := range m.keys {
		if k == oldKey {
			m.keys[i] = newKey
			break
		}
	}
	m.values[newKey] = m.values[oldKey]
	delete(m.values, oldKey)
	return nil
}

// Set updates the value of an existing key from a "true"/"false" literal,
// coerced case-insensitively.
func (m *Map) Set(key, literal string) error {
	if _, ok := m.values[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	value, err := ParseBool(literal)
	if err != nil {
		return err
	}
	m.values[key] = value
	return nil
}

// Remove deletes a permission entry, closing the gap in the ordering.
func (m *Map) Remove(key string) error {
	if _, ok := m.values[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	delete(m.values, key)
	return nil
}

// Get returns the value for key and whether it exists.
func (m *Map) Get(key string) (bool, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the permission names in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len reports the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Clone returns a deep copy, used when seeding edit drafts.
func (m *Map) Clone() *Map {
	c := &Map{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]bool, len(m.values)),
	}
	copy(c.keys, m.keys)
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		if m.values[k] {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the document.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("permset: expected JSON object")
	}

	m.keys = nil
	m.values = make(map[string]bool)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.New("permset: expected string key")
		}

		var value bool
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("permset: value for %q: %w", key, err)
		}

		if err := m.Add(key, value); err != nil {
			return err
		}
	}

	// Consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
