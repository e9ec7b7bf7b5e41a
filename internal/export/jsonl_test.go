package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/demengc/bwell-logkit/internal"
)

func TestJSONLExporter_Export(t *testing.T) {
	tests := []struct {
		name      string
		session   *internal.Session
		wantLines int
	}{
		{name: "sample session", session: internal.CreateTestSession("sample.json"), wantLines: 9},
		{name: "empty session", session: internal.CreateTestSessionWithRecords(nil), wantLines: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &JSONLExporter{}

			if err := exporter.Export(tt.session, &buf); err != nil {
				t.Fatalf("JSONLExporter.Export() error = %v", err)
			}

			lines := 0
			scanner := bufio.NewScanner(&buf)
			var prev float64
			for scanner.Scan() {
				var rec map[string]any
				if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
					t.Fatalf("line %d is not valid JSON: %v", lines+1, err)
				}
				ts, _ := rec["timestamp"].(float64)
				if ts < prev {
					t.Errorf("line %d timestamp %v < previous %v", lines+1, ts, prev)
				}
				prev = ts
				lines++
			}
			if lines != tt.wantLines {
				t.Errorf("JSONLExporter.Export() wrote %d lines, want %d", lines, tt.wantLines)
			}
		})
	}
}

func TestJSONLExporter_Extension(t *testing.T) {
	if got := (&JSONLExporter{}).Extension(); got != "jsonl" {
		t.Errorf("JSONLExporter.Extension() = %v, want jsonl", got)
	}
}
