package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// RuleMap is a rule name to raw severity map that keeps document order.
// Order matters: entries are applied one after another, so a later entry for
// the same canonical rule overrides an earlier one.
type RuleMap struct {
	keys   []string
	values map[string]any
}

// NewRuleMap returns an empty RuleMap.
func NewRuleMap() *RuleMap {
	return &RuleMap{values: make(map[string]any)}
}

// RuleMapOf builds a RuleMap from alternating name, value pairs.
func RuleMapOf(pairs ...any) *RuleMap {
	m := NewRuleMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			continue
		}
		m.Set(name, pairs[i+1])
	}
	return m
}

// Set stores a value. Existing keys keep their position.
func (m *RuleMap) Set(name string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = value
}

// Get returns the raw value for name.
func (m *RuleMap) Get(name string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[name]
	return v, ok
}

// Delete removes name.
func (m *RuleMap) Delete(name string) {
	if m == nil {
		return
	}
	if _, ok := m.values[name]; !ok {
		return
	}
	delete(m.values, name)
	for i, k := range m.keys {
		if k == name {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the names in document order.
func (m *RuleMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *RuleMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns a shallow copy.
func (m *RuleMap) Clone() *RuleMap {
	out := NewRuleMap()
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out.Set(k, m.values[k])
	}
	return out
}

// Merge returns a new map holding m's entries overlaid with over's entries.
// Keys of m keep their position; keys only in over are appended.
func (m *RuleMap) Merge(over *RuleMap) *RuleMap {
	out := m.Clone()
	if over == nil {
		return out
	}
	for _, k := range over.keys {
		out.Set(k, over.values[k])
	}
	return out
}

// MarshalJSON writes the map as a JSON object in document order.
func (m *RuleMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var errRuleMapNotObject = errors.New("rules must be an object")

// UnmarshalJSON reads a JSON object, keeping key order.
func (m *RuleMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errRuleMapNotObject
	}

	out := NewRuleMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected rule key %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("rule %s: %w", key, err)
		}
		out.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = *out
	return nil
}

// MarshalYAML writes the map as a YAML mapping in document order.
func (m *RuleMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range m.Keys() {
		var val yaml.Node
		if err := val.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("rule %s: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}
	return node, nil
}

// UnmarshalYAML reads a YAML mapping, keeping key order.
func (m *RuleMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errRuleMapNotObject
	}
	out := NewRuleMap()
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("rule %s: %w", node.Content[i].Value, err)
		}
		out.Set(node.Content[i].Value, value)
	}
	*m = *out
	return nil
}
