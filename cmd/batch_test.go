package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/demengc/bwell-logkit/internal"
	"github.com/demengc/bwell-logkit/testutil"
)

func TestBatchCommand(t *testing.T) {
	dir := testutil.CreateLogDirFixture(t, t.TempDir(), true)

	out, stderr, err := executeCommandWithStderr(t, "batch", dir, "--workers", "2")
	if err != nil {
		t.Fatalf("batch error = %v", err)
	}
	for _, want := range []string{"Loaded 2 log file(s)", "session1.json", "sub/session2.json", "MainMenu, GameLevel1", "Failed (1)", "broken.json"} {
		if !strings.Contains(out, want) {
			t.Errorf("batch output should contain %q\nOutput: %s", want, out)
		}
	}
	if strings.Contains(out, "notes.txt") {
		t.Error("files not matching the pattern should be ignored")
	}
	if !strings.Contains(stderr, "WARNING: Skipped 1 file(s) that failed to load") {
		t.Errorf("stderr should warn about skipped files, got %q", stderr)
	}
}

func TestBatchCommand_FailFast(t *testing.T) {
	dir := testutil.CreateLogDirFixture(t, t.TempDir(), true)

	_, err := executeCommand(t, "batch", dir, "--skip-errors=false")
	var readErr *internal.ReadError
	if !errors.As(err, &readErr) || readErr.Path != "broken.json" {
		t.Errorf("batch error = %v, want ReadError for broken.json", err)
	}
}

func TestBatchCommand_Pattern(t *testing.T) {
	dir := testutil.CreateLogDirFixture(t, t.TempDir(), false)

	tests := []struct {
		name    string
		pattern string
		want    string
		wantErr bool
	}{
		{name: "no matches", pattern: "*.log", want: "No log files found"},
		{name: "prefix", pattern: "session1*", want: "Loaded 1 log file(s)"},
		{name: "invalid", pattern: "[", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, "batch", dir, "--pattern", tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Fatalf("batch error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("batch output should contain %q\nOutput: %s", tt.want, out)
			}
		})
	}
}

func TestBatchCommand_NotADirectory(t *testing.T) {
	path := testutil.CreateSampleLog(t)
	if _, err := executeCommand(t, "batch", path); err == nil {
		t.Error("batch on a file should fail")
	}
}
