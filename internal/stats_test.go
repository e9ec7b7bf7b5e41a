package internal

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestStats_MarshalJSON(t *testing.T) {
	sample := CreateTestSession("sample.json")
	view, err := sample.Scene("MainMenu", 0)
	if err != nil {
		t.Fatalf("Scene() error = %v", err)
	}
	noScenes := NewSession([]*Record{CreateTestActivity(1, 1000, MovementHead)}, nil)

	tests := []struct {
		name    string
		stats   Stats
		want    []string
		notWant []string
	}{
		{
			name:    "session without scenes",
			stats:   noScenes.Stats(),
			want:    []string{`"scenes":[]`, `"total_records":1`},
			notWant: []string{`"scene_info"`},
		},
		{
			name:    "empty session",
			stats:   NewSession(nil, nil).Stats(),
			want:    []string{`"scenes":[]`, `"game_time_range":null`},
			notWant: []string{`"scene_info"`},
		},
		{
			name:    "session with scenes",
			stats:   sample.Stats(),
			want:    []string{`"scenes":[{"name":"MainMenu","instances":1},{"name":"GameLevel1","instances":1}]`},
			notWant: []string{`"scene_info"`},
		},
		{
			name:    "scene view",
			stats:   view.Stats(),
			want:    []string{`"scene_info":{"name":"MainMenu"`, `"total_records":3`},
			notWant: []string{`"scenes"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.stats)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			out := string(data)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("json.Marshal() = %s, want substring %s", out, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(out, nw) {
					t.Errorf("json.Marshal() = %s, should not contain %s", out, nw)
				}
			}
		})
	}
}

func TestStats_RoundTripKeepsScenes(t *testing.T) {
	data, err := json.Marshal(CreateTestSession("sample.json").Stats())
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var st Stats
	if err := json.Unmarshal(data, &st); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if len(st.Scenes) != 2 || st.Scene != nil {
		t.Errorf("decoded Stats = %+v, want two scenes and no scene info", st)
	}
}

func TestStats_MarshalYAML(t *testing.T) {
	noScenes := NewSession([]*Record{CreateTestActivity(1, 1000, MovementHead)}, nil)
	data, err := yaml.Marshal(noScenes.Stats())
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), "scenes: []") {
		t.Errorf("yaml.Marshal() = %s, want empty scenes list", data)
	}
	if strings.Contains(string(data), "scene_info") {
		t.Errorf("yaml.Marshal() = %s, should not contain scene_info", data)
	}
}
