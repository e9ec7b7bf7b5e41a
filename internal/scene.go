package internal

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes one instance of a named scene
type SceneInfo struct {
	Name          string  `json:"name" yaml:"name"`
	Instance      int     `json:"instance" yaml:"instance"`
	StartGameTime float64 `json:"start_game_time_secs" yaml:"start_game_time_secs"`
	EndGameTime   float64 `json:"end_game_time_secs" yaml:"end_game_time_secs"`
	StartEpoch    int64   `json:"start_millis_since_epoch" yaml:"start_millis_since_epoch"`
	EndEpoch      int64   `json:"end_millis_since_epoch" yaml:"end_millis_since_epoch"`
}

// Duration returns the scene length in game-time seconds
func (s SceneInfo) Duration() float64 {
	return s.EndGameTime - s.StartGameTime
}

// DurationMillis returns the scene length in epoch milliseconds
func (s SceneInfo) DurationMillis() int64 {
	return s.EndEpoch - s.StartEpoch
}

// Contains reports whether r falls inside the scene, bounds included
func (s SceneInfo) Contains(r *Record) bool {
	t := r.GameTime()
	return s.StartGameTime <= t && t <= s.EndGameTime
}

func (s SceneInfo) String() string {
	return fmt.Sprintf("%s#%d [%.3f, %.3f]", s.Name, s.Instance, s.StartGameTime, s.EndGameTime)
}

// SortKey orders scene instances across names
type SortKey int

const (
	// SortNone keeps instances grouped by name in discovery order
	SortNone SortKey = iota
	// SortGameTime orders by start game-time
	SortGameTime
	// SortEpoch orders by start epoch millis
	SortEpoch
)

// ParseSortKey maps "", "none", "game_time" and "epoch" to a SortKey
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "game_time", "gametime", "game-time":
		return SortGameTime, nil
	case "epoch":
		return SortEpoch, nil
	default:
		return SortNone, fmt.Errorf("unknown sort key: %q (want none, game_time or epoch)", s)
	}
}

func (k SortKey) String() string {
	switch k {
	case SortGameTime:
		return "game_time"
	case SortEpoch:
		return "epoch"
	default:
		return "none"
	}
}

// SceneManager indexes the scene instances of a normalized record sequence.
// Adjacent scenes share their boundary instant: a record whose game-time
// equals the boundary belongs to both.
type SceneManager struct {
	records []*Record
	names   []string
	scenes  map[string][]SceneInfo
}

// NewSceneManager builds the scene index for records, which must already
// be normalized.
func NewSceneManager(records []*Record) *SceneManager {
	m := &SceneManager{
		records: records,
		scenes:  make(map[string][]SceneInfo),
	}
	m.buildIndex()
	return m
}

func (m *SceneManager) buildIndex() {
	var markers []*Record
	for _, r := range m.records {
		if r.IsSceneMarker() {
			markers = append(markers, r)
		}
	}
	if len(markers) == 0 {
		return
	}

	var maxGameTime float64
	var maxEpoch int64
	for i, r := range m.records {
		if gt := r.GameTime(); i == 0 || gt > maxGameTime {
			maxGameTime = gt
		}
		if ep := r.Epoch(); i == 0 || ep > maxEpoch {
			maxEpoch = ep
		}
	}

	for i, marker := range markers {
		name := marker.SceneName()
		if name == "" {
			logDebug("Skipping scene marker at %.3f without a name", marker.GameTime())
			continue
		}

		info := SceneInfo{
			Name:          name,
			Instance:      len(m.scenes[name]),
			StartGameTime: marker.GameTime(),
			StartEpoch:    marker.Epoch(),
		}
		if i+1 < len(markers) {
			// a next marker missing a time field ends the scene at its start
			next := markers[i+1]
			info.EndGameTime = info.StartGameTime
			if next.HasGameTime() {
				info.EndGameTime = next.GameTime()
			}
			info.EndEpoch = info.StartEpoch
			if next.HasEpoch() {
				info.EndEpoch = next.Epoch()
			}
		} else {
			info.EndGameTime = maxGameTime
			info.EndEpoch = maxEpoch
		}

		if _, seen := m.scenes[name]; !seen {
			m.names = append(m.names, name)
		}
		m.scenes[name] = append(m.scenes[name], info)
	}
}

// ListScenes returns scene names in discovery order
func (m *SceneManager) ListScenes() []string {
	names := make([]string, len(m.names))
	copy(names, m.names)
	return names
}

// HasScene reports whether the given instance of name exists
func (m *SceneManager) HasScene(name string, instance int) bool {
	return instance >= 0 && instance < len(m.scenes[name])
}

// SceneCount returns the number of instances of name
func (m *SceneManager) SceneCount(name string) int {
	return len(m.scenes[name])
}

// SceneInfo returns the descriptor of one scene instance
func (m *SceneManager) SceneInfo(name string, instance int) (SceneInfo, error) {
	if !m.HasScene(name, instance) {
		return SceneInfo{}, m.notFound(name, instance)
	}
	return m.scenes[name][instance], nil
}

// SceneRecords returns the records whose game-time lies within the scene
// instance, bounds included.
func (m *SceneManager) SceneRecords(name string, instance int) ([]*Record, error) {
	info, err := m.SceneInfo(name, instance)
	if err != nil {
		return nil, err
	}
	var out []*Record
	for _, r := range m.records {
		if info.Contains(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// SceneInstances returns the instances of name, or of every scene when name
// is empty, optionally sorted by start time across names.
func (m *SceneManager) SceneInstances(name string, sortBy SortKey) ([]SceneInfo, error) {
	var instances []SceneInfo
	if name != "" {
		list, ok := m.scenes[name]
		if !ok {
			return nil, m.notFound(name, 0)
		}
		instances = append(instances, list...)
	} else {
		for _, n := range m.names {
			instances = append(instances, m.scenes[n]...)
		}
	}

	switch sortBy {
	case SortGameTime:
		sort.SliceStable(instances, func(i, j int) bool {
			return instances[i].StartGameTime < instances[j].StartGameTime
		})
	case SortEpoch:
		sort.SliceStable(instances, func(i, j int) bool {
			return instances[i].StartEpoch < instances[j].StartEpoch
		})
	}
	return instances, nil
}

// SceneSummary aggregates the instances of one scene name
type SceneSummary struct {
	Name                string      `json:"name" yaml:"name"`
	InstanceCount       int         `json:"instance_count" yaml:"instance_count"`
	TotalDurationSecs   float64     `json:"total_duration_secs" yaml:"total_duration_secs"`
	AverageDurationSecs float64     `json:"average_duration_secs" yaml:"average_duration_secs"`
	Instances           []SceneInfo `json:"instances" yaml:"instances"`
}

// Summary returns one SceneSummary per scene name, in discovery order
func (m *SceneManager) Summary() []SceneSummary {
	summaries := make([]SceneSummary, 0, len(m.names))
	for _, name := range m.names {
		instances := m.scenes[name]
		s := SceneSummary{
			Name:          name,
			InstanceCount: len(instances),
			Instances:     append([]SceneInfo(nil), instances...),
		}
		for _, inst := range instances {
			s.TotalDurationSecs += inst.Duration()
		}
		if len(instances) > 0 {
			s.AverageDurationSecs = s.TotalDurationSecs / float64(len(instances))
		}
		summaries = append(summaries, s)
	}
	return summaries
}

func (m *SceneManager) notFound(name string, instance int) error {
	return &SceneNotFoundError{Name: name, Instance: instance, Available: m.ListScenes()}
}
