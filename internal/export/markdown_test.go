package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/demengc/bwell-logkit/internal"
)

func TestMarkdownExporter_Export(t *testing.T) {
	session := internal.CreateTestSession("sample.json")
	view, err := session.Scene("MainMenu", 0)
	if err != nil {
		t.Fatalf("Scene() error = %v", err)
	}

	tests := []struct {
		name    string
		src     Source
		want    []string
		notWant []string
	}{
		{
			name: "session",
			src:  session,
			want: []string{
				"# Log session",
				"**File:** sample.json",
				"**Records:** 9",
				"**Game time:** 1 to 25 s",
				"| AbsoluteActivityRecord | 6 |",
				"## Scenes",
				"| MainMenu | 1 |",
				"## Records",
				"| timestamp | msSinceEpoch | myType |",
			},
		},
		{
			name: "scene view",
			src:  view,
			want: []string{
				"# Scene MainMenu (instance 0)",
				"**Records:** 3",
				"**Duration:** 11 s",
				"scene_name",
			},
			notWant: []string{"## Scenes"},
		},
		{
			name: "empty session",
			src:  internal.CreateTestSessionWithRecords(nil),
			want: []string{"**Records:** 0", "_No records._"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &MarkdownExporter{Options: DefaultOptions()}

			if err := exporter.Export(tt.src, &buf); err != nil {
				t.Fatalf("MarkdownExporter.Export() error = %v", err)
			}

			output := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("MarkdownExporter.Export() output should contain %q\nOutput: %s", want, output)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(output, nw) {
					t.Errorf("MarkdownExporter.Export() output should not contain %q", nw)
				}
			}
		})
	}
}

func TestEscapeCell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a|b", `a\|b`},
		{"line1\nline2", "line1<br>line2"},
		{"crlf\r\nend", "crlf<br>end"},
	}
	for _, tt := range tests {
		if got := escapeCell(tt.in); got != tt.want {
			t.Errorf("escapeCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarkdownExporter_Extension(t *testing.T) {
	if got := (&MarkdownExporter{}).Extension(); got != "md" {
		t.Errorf("MarkdownExporter.Extension() = %v, want md", got)
	}
}
