package internal

import (
	"fmt"
	"maps"
	"reflect"
	"sync"
	"sync/atomic"
)

// Metadata keys set by the loaders
const (
	MetadataFilePath     = "file_path"
	MetadataRelativePath = "relative_path"
)

// Predicate selects records. It must not modify the record and may be
// called in any order, or not at all for some records.
type Predicate func(*Record) bool

// Session is an immutable, normalized sequence of records plus a metadata
// bag. Every filter returns a new Session. The scene index is built on first
// use and cached; it is safe to share a Session across goroutines.
type Session struct {
	records []*Record

	mu       sync.RWMutex
	metadata map[string]any

	scenesOnce sync.Once
	scenes     atomic.Pointer[SceneManager]
}

// SessionOption configures NewSession
type SessionOption func(*Session)

// WithEagerScenes builds the scene index at construction time
func WithEagerScenes() SessionOption {
	return func(s *Session) {
		s.Scenes()
	}
}

// withSceneManager shares an already built index with a derived session
func withSceneManager(m *SceneManager) SessionOption {
	return func(s *Session) {
		if m == nil {
			return
		}
		s.scenesOnce.Do(func() {
			s.scenes.Store(m)
		})
	}
}

// NewSession normalizes records and wraps them with a copy of metadata.
// The caller keeps ownership of the input slice.
func NewSession(records []*Record, metadata map[string]any, opts ...SessionOption) *Session {
	return newSession(NormalizeRecords(records), metadata, opts...)
}

// newSession wraps records that are already normalized. Any subsequence of
// a normalized sequence is itself normalized, so filters skip the sort.
func newSession(records []*Record, metadata map[string]any, opts ...SessionOption) *Session {
	if records == nil {
		records = []*Record{}
	}
	s := &Session{
		records:  records,
		metadata: maps.Clone(metadata),
	}
	if s.metadata == nil {
		s.metadata = make(map[string]any)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of records
func (s *Session) Len() int {
	return len(s.records)
}

// Records returns deep copies of the records in order
func (s *Session) Records() []*Record {
	out := make([]*Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// Each calls fn for every record in order until fn returns false. The
// records must not be modified.
func (s *Session) Each(fn func(i int, r *Record) bool) {
	for i, r := range s.records {
		if !fn(i, r) {
			return
		}
	}
}

// Metadata returns a copy of the metadata bag
func (s *Session) Metadata() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.metadata)
}

// SetMetadata stores value under key on this session
func (s *Session) SetMetadata(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metadata[key] = value
}

// UpdateMetadata merges values into this session's metadata
func (s *Session) UpdateMetadata(values map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	maps.Copy(s.metadata, values)
}

// Scenes returns the scene index, building it on first use
func (s *Session) Scenes() *SceneManager {
	s.scenesOnce.Do(func() {
		s.scenes.Store(NewSceneManager(s.records))
	})
	return s.scenes.Load()
}

// ListScenes returns scene names in discovery order
func (s *Session) ListScenes() []string {
	return s.Scenes().ListScenes()
}

// realizedScenes returns the scene index, or nil if it was never built
func (s *Session) realizedScenes() *SceneManager {
	return s.scenes.Load()
}

// Filter returns a new session holding the records pred accepts. A scene
// index already built on s is shared with the result, so scene queries on
// the result still see markers the filter dropped.
func (s *Session) Filter(pred Predicate) *Session {
	var kept []*Record
	for _, r := range s.records {
		if pred(r) {
			kept = append(kept, r)
		}
	}
	var opts []SessionOption
	if m := s.realizedScenes(); m != nil {
		opts = append(opts, withSceneManager(m))
	}
	return newSession(kept, s.Metadata(), opts...)
}

// FilterType keeps records whose type tag is one of types
func (s *Session) FilterType(types ...string) *Session {
	return s.Filter(TypeIn(types...))
}

// FilterTimeRange keeps records with game-time in [start, end]
func (s *Session) FilterTimeRange(start, end float64) *Session {
	return s.Filter(TimeBetween(start, end))
}

// Scene resolves one scene instance and returns a view over its records
func (s *Session) Scene(name string, instance int) (*SceneView, error) {
	scenes := s.Scenes()
	info, err := scenes.SceneInfo(name, instance)
	if err != nil {
		return nil, err
	}
	records, err := scenes.SceneRecords(name, instance)
	if err != nil {
		return nil, err
	}
	return newSceneView(newSession(records, s.Metadata()), info), nil
}

func (s *Session) String() string {
	return fmt.Sprintf("LogSession(%d records)", len(s.records))
}

// TypeIn matches records whose type tag is one of types
func TypeIn(types ...string) Predicate {
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return func(r *Record) bool {
		if !r.HasType() {
			return false
		}
		_, ok := set[r.Type()]
		return ok
	}
}

// TimeBetween matches records with game-time in [start, end]
func TimeBetween(start, end float64) Predicate {
	return func(r *Record) bool {
		t := r.GameTime()
		return start <= t && t <= end
	}
}

// FieldEquals matches records whose field key holds value
func FieldEquals(key string, value any) Predicate {
	return func(r *Record) bool {
		v, ok := r.Get(key)
		if !ok {
			return false
		}
		if a, ok := toFloat(v); ok {
			if b, ok := toFloat(value); ok {
				return a == b
			}
		}
		return reflect.DeepEqual(v, value)
	}
}
