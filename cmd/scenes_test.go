package cmd

import (
	"strings"
	"testing"

	"github.com/demengc/bwell-logkit/internal"
	"github.com/demengc/bwell-logkit/testutil"
)

func TestScenesCommand(t *testing.T) {
	path := testutil.CreateSampleLog(t)

	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    []string
	}{
		{
			name: "default order",
			args: []string{"scenes", path},
			want: []string{"Found 2 scene instance(s)", "MainMenu", "4.000", "15.000", "11.000", "GameLevel1", "10.000", "Totals"},
		},
		{
			name: "sort by epoch",
			args: []string{"scenes", path, "--sort", "epoch"},
			want: []string{"MainMenu", "GameLevel1"},
		},
		{
			name:    "bad sort key",
			args:    []string{"scenes", path, "--sort", "duration"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("scenes error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("scenes output should contain %q\nOutput: %s", want, out)
				}
			}
			if len(tt.want) > 1 && strings.Index(out, "MainMenu") > strings.Index(out, "GameLevel1") {
				t.Error("MainMenu should be listed before GameLevel1")
			}
		})
	}
}

func TestScenesCommand_JSON(t *testing.T) {
	path := testutil.CreateSampleLog(t)

	out, err := executeCommand(t, "scenes", path, "--json")
	if err != nil {
		t.Fatalf("scenes --json error = %v", err)
	}

	var summary []internal.SceneSummary
	testutil.JSONUnmarshal(t, []byte(out), &summary)
	if len(summary) != 2 {
		t.Fatalf("summary has %d scenes, want 2", len(summary))
	}
	if summary[1].Name != "GameLevel1" || summary[1].TotalDurationSecs != 10 {
		t.Errorf("summary[1] = %+v, want GameLevel1 lasting 10s", summary[1])
	}
}

func TestScenesCommand_NoScenes(t *testing.T) {
	path := testutil.WriteLogFixture(t, t.TempDir(), "plain.json", testutil.TruncatedLogJSON)

	out, err := executeCommand(t, "scenes", path)
	if err != nil {
		t.Fatalf("scenes error = %v", err)
	}
	if !strings.Contains(out, "No scenes found") {
		t.Errorf("output should say no scenes were found\nOutput: %s", out)
	}
}
