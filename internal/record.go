package internal

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Record is one logged event: a string-keyed map that keeps the key order
// of the source JSON. Values are JSON-compatible (string, float64, bool,
// nil, map[string]any, []any).
type Record struct {
	fields *orderedmap.OrderedMap[string, any]
}

// Pair is a key/value used to build records
type Pair struct {
	Key   string
	Value any
}

// NewRecord creates a record holding pairs in order
func NewRecord(pairs ...Pair) *Record {
	r := &Record{fields: orderedmap.New[string, any]()}
	for _, p := range pairs {
		r.fields.Set(p.Key, p.Value)
	}
	return r
}

func (r *Record) ensure() {
	if r.fields == nil {
		r.fields = orderedmap.New[string, any]()
	}
}

// Get returns the value stored under key
func (r *Record) Get(key string) (any, bool) {
	if r == nil || r.fields == nil {
		return nil, false
	}
	return r.fields.Get(key)
}

// Set stores value under key, keeping the position of an existing key
func (r *Record) Set(key string, value any) {
	r.ensure()
	r.fields.Set(key, value)
}

// Len returns the number of fields
func (r *Record) Len() int {
	if r == nil || r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Keys returns field names in source order
func (r *Record) Keys() []string {
	if r == nil || r.fields == nil {
		return nil
	}
	keys := make([]string, 0, r.fields.Len())
	for p := r.fields.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Each calls fn for every field in source order until fn returns false
func (r *Record) Each(fn func(key string, value any) bool) {
	if r == nil || r.fields == nil {
		return
	}
	for p := r.fields.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// Type returns the record type tag, or "" when absent
func (r *Record) Type() string {
	v, ok := r.Get(FieldRecordType)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// HasType reports whether the record carries a string type tag
func (r *Record) HasType() bool {
	v, ok := r.Get(FieldRecordType)
	if !ok {
		return false
	}
	_, isString := v.(string)
	return isString
}

// GameTime returns the game-time in seconds, 0 when absent or not numeric
func (r *Record) GameTime() float64 {
	v, _ := r.Get(FieldGameTimeSecs)
	f, _ := toFloat(v)
	return f
}

// HasGameTime reports whether the record carries a numeric game-time
func (r *Record) HasGameTime() bool {
	v, _ := r.Get(FieldGameTimeSecs)
	_, ok := toFloat(v)
	return ok
}

// Epoch returns milliseconds since epoch, 0 when absent or not numeric
func (r *Record) Epoch() int64 {
	v, _ := r.Get(FieldMillisSinceEpoch)
	f, _ := toFloat(v)
	return int64(f)
}

// HasEpoch reports whether the record carries numeric epoch millis
func (r *Record) HasEpoch() bool {
	v, _ := r.Get(FieldMillisSinceEpoch)
	_, ok := toFloat(v)
	return ok
}

// SceneName returns the scene name of a scene-entry record
func (r *Record) SceneName() string {
	v, _ := r.Get(FieldSceneName)
	s, _ := v.(string)
	return s
}

// IsSceneMarker reports whether the record opens a scene
func (r *Record) IsSceneMarker() bool {
	return r.Type() == string(RecordTypeSceneEntry)
}

// Clone returns a deep copy of the record
func (r *Record) Clone() *Record {
	c := NewRecord()
	r.Each(func(k string, v any) bool {
		c.fields.Set(k, cloneValue(v))
		return true
	})
	return c
}

// Map returns the record as a plain map with deep-copied values
func (r *Record) Map() map[string]any {
	m := make(map[string]any, r.Len())
	r.Each(func(k string, v any) bool {
		m[k] = cloneValue(v)
		return true
	})
	return m
}

// MarshalJSON encodes the record with keys in source order
func (r *Record) MarshalJSON() ([]byte, error) {
	r.ensure()
	return r.fields.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object, keeping key order
func (r *Record) UnmarshalJSON(data []byte) error {
	m := orderedmap.New[string, any]()
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	r.fields = m
	return nil
}

// MarshalYAML encodes the record as a mapping with keys in source order
func (r *Record) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var encErr error
	r.Each(func(k string, v any) bool {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		val := &yaml.Node{}
		if err := val.Encode(v); err != nil {
			encErr = fmt.Errorf("encode field %s: %w", k, err)
			return false
		}
		node.Content = append(node.Content, key, val)
		return true
	})
	if encErr != nil {
		return nil, encErr
	}
	return node, nil
}

func (r *Record) String() string {
	b, err := r.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Record(%d fields)", r.Len())
	}
	return string(b)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	case *Record:
		return t.Clone()
	default:
		return v
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
