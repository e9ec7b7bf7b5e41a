package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/demengc/bwell-logkit/internal"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	session := internal.CreateTestSession("sample.json")
	view, err := session.Scene("GameLevel1", 0)
	if err != nil {
		t.Fatalf("Scene() error = %v", err)
	}

	tests := []struct {
		name        string
		src         Source
		wantRecords int
		want        []string
	}{
		{
			name:        "session",
			src:         session,
			wantRecords: 9,
			want:        []string{"file_path: sample.json", "sceneName: MainMenu"},
		},
		{
			name:        "scene view",
			src:         view,
			wantRecords: 4,
			want:        []string{"scene:", "name: GameLevel1", "end_game_time_secs: 25"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&YAMLExporter{}).Export(tt.src, &buf); err != nil {
				t.Fatalf("YAMLExporter.Export() error = %v", err)
			}

			output := buf.String()
			var doc struct {
				Records []map[string]any `yaml:"records"`
			}
			if err := yaml.Unmarshal([]byte(output), &doc); err != nil {
				t.Fatalf("Output is not valid YAML: %v\nOutput: %s", err, output)
			}
			if len(doc.Records) != tt.wantRecords {
				t.Errorf("records = %d, want %d", len(doc.Records), tt.wantRecords)
			}
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("YAML output should contain %q", want)
				}
			}
		})
	}
}

func TestYAMLExporter_Extension(t *testing.T) {
	if got := (&YAMLExporter{}).Extension(); got != "yaml" {
		t.Errorf("YAMLExporter.Extension() = %v, want yaml", got)
	}
}
