package internal

import "encoding/json"

// UnknownRecordType counts records without a type tag in Stats
const UnknownRecordType = "unknown"

// Range is a closed [Start, End] interval
type Range struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// SceneCount is one entry of the session-level scene list
type SceneCount struct {
	Name      string `json:"name" yaml:"name"`
	Instances int    `json:"instances" yaml:"instances"`
}

// SceneStats describes the scene a view is scoped to
type SceneStats struct {
	Name          string  `json:"name" yaml:"name"`
	Instance      int     `json:"instance" yaml:"instance"`
	DurationSecs  float64 `json:"duration_secs" yaml:"duration_secs"`
	StartGameTime float64 `json:"start_game_time_secs" yaml:"start_game_time_secs"`
	EndGameTime   float64 `json:"end_game_time_secs" yaml:"end_game_time_secs"`
	StartEpoch    int64   `json:"start_millis_since_epoch" yaml:"start_millis_since_epoch"`
	EndEpoch      int64   `json:"end_millis_since_epoch" yaml:"end_millis_since_epoch"`
}

// Stats summarizes a session or scene view. It is computed on every call.
type Stats struct {
	TotalRecords  int            `json:"total_records" yaml:"total_records"`
	RecordTypes   map[string]int `json:"record_types" yaml:"record_types"`
	GameTimeRange *Range         `json:"game_time_range" yaml:"game_time_range"`
	EpochRange    *Range         `json:"millis_since_epoch_range" yaml:"millis_since_epoch_range"`
	Scenes        []SceneCount   `json:"scenes" yaml:"scenes"`
	Metadata      map[string]any `json:"metadata" yaml:"metadata"`
	Scene         *SceneStats    `json:"scene_info,omitempty" yaml:"scene_info,omitempty"`
}

// sessionStats always carries the scene list, even when empty
type sessionStats struct {
	TotalRecords  int            `json:"total_records" yaml:"total_records"`
	RecordTypes   map[string]int `json:"record_types" yaml:"record_types"`
	GameTimeRange *Range         `json:"game_time_range" yaml:"game_time_range"`
	EpochRange    *Range         `json:"millis_since_epoch_range" yaml:"millis_since_epoch_range"`
	Scenes        []SceneCount   `json:"scenes" yaml:"scenes"`
	Metadata      map[string]any `json:"metadata" yaml:"metadata"`
	Scene         *SceneStats    `json:"-" yaml:"-"`
}

// viewStats replaces the scene list with the view's scene
type viewStats struct {
	TotalRecords  int            `json:"total_records" yaml:"total_records"`
	RecordTypes   map[string]int `json:"record_types" yaml:"record_types"`
	GameTimeRange *Range         `json:"game_time_range" yaml:"game_time_range"`
	EpochRange    *Range         `json:"millis_since_epoch_range" yaml:"millis_since_epoch_range"`
	Scenes        []SceneCount   `json:"-" yaml:"-"`
	Metadata      map[string]any `json:"metadata" yaml:"metadata"`
	Scene         *SceneStats    `json:"scene_info" yaml:"scene_info"`
}

func (s Stats) wire() any {
	if s.Scene != nil {
		return viewStats(s)
	}
	if s.Scenes == nil {
		s.Scenes = []SceneCount{}
	}
	return sessionStats(s)
}

// MarshalJSON emits "scenes" for sessions and "scene_info" for views
func (s Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.wire())
}

// MarshalYAML mirrors MarshalJSON
func (s Stats) MarshalYAML() (interface{}, error) {
	return s.wire(), nil
}

// Stats aggregates type counts, time extrema and the scene list
func (s *Session) Stats() Stats {
	st := Stats{
		TotalRecords: len(s.records),
		RecordTypes:  make(map[string]int),
		Scenes:       []SceneCount{},
		Metadata:     s.Metadata(),
	}
	if len(s.records) == 0 {
		return st
	}

	for _, r := range s.records {
		t := UnknownRecordType
		if r.HasType() {
			t = r.Type()
		}
		st.RecordTypes[t]++

		if r.HasGameTime() {
			st.GameTimeRange = extend(st.GameTimeRange, r.GameTime())
		}
		if r.HasEpoch() {
			st.EpochRange = extend(st.EpochRange, float64(r.Epoch()))
		}
	}

	scenes := s.Scenes()
	for _, name := range scenes.ListScenes() {
		st.Scenes = append(st.Scenes, SceneCount{Name: name, Instances: scenes.SceneCount(name)})
	}
	return st
}

func extend(r *Range, v float64) *Range {
	if r == nil {
		return &Range{Start: v, End: v}
	}
	if v < r.Start {
		r.Start = v
	}
	if v > r.End {
		r.End = v
	}
	return r
}

func sceneStats(info SceneInfo) *SceneStats {
	return &SceneStats{
		Name:          info.Name,
		Instance:      info.Instance,
		DurationSecs:  info.Duration(),
		StartGameTime: info.StartGameTime,
		EndGameTime:   info.EndGameTime,
		StartEpoch:    info.StartEpoch,
		EndEpoch:      info.EndEpoch,
	}
}
