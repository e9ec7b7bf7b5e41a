package cmd

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/demengc/bwell-logkit/internal/export"
	"github.com/demengc/bwell-logkit/testutil"
)

func TestExportCommand_Formats(t *testing.T) {
	path := testutil.CreateSampleLog(t)

	tests := []struct {
		format string
		file   string
	}{
		{format: "json", file: "session.json"},
		{format: "jsonl", file: "session.jsonl"},
		{format: "yaml", file: "session.yaml"},
		{format: "md", file: "session.md"},
		{format: "csv", file: "session.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			outDir := t.TempDir()
			out, err := executeCommand(t, "export", path, "--format", tt.format, "--out", outDir)
			if err != nil {
				t.Fatalf("export error = %v", err)
			}
			if want := "Exported 9 record(s) to " + filepath.Join(outDir, tt.file); !strings.Contains(out, want) {
				t.Errorf("output = %q, want %q", out, want)
			}

			data := testutil.ReadFile(t, filepath.Join(outDir, tt.file))
			if len(data) == 0 {
				t.Errorf("%s export is empty", tt.format)
			}
		})
	}
}

func TestExportCommand_Stdout(t *testing.T) {
	path := testutil.CreateSampleLog(t)

	out, err := executeCommand(t, "export", path, "--format", "jsonl", "--out", "-", "--type", "AbsoluteActivityRecord")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}

	lines := 0
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("line %d is not JSON: %v", lines+1, err)
		}
		if rec["myType"] != "AbsoluteActivityRecord" {
			t.Errorf("line %d type = %v", lines+1, rec["myType"])
		}
		lines++
	}
	if lines != 6 {
		t.Errorf("exported %d lines, want 6", lines)
	}
}

func TestExportCommand_SceneCSV(t *testing.T) {
	path := testutil.CreateSampleLog(t)
	outDir := t.TempDir()

	_, err := executeCommand(t, "export", path, "--format", "csv", "--out", outDir,
		"--scene", "GameLevel1", "--include-metadata")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}

	f, err := os.Open(filepath.Join(outDir, "session_GameLevel1_0.csv"))
	if err != nil {
		t.Fatalf("scene export not written: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 5 {
		t.Errorf("CSV has %d lines, want header + 4", len(rows))
	}
	header := strings.Join(rows[0], ",")
	for _, col := range []string{export.MetadataColumnPrefix + "file_path", export.ColSceneName, export.ColSceneDuration} {
		if !strings.Contains(header, col) {
			t.Errorf("header missing %s: %s", col, header)
		}
	}
}

func TestExportCommand_SQLite(t *testing.T) {
	path := testutil.CreateSampleLog(t)
	dbPath := filepath.Join(t.TempDir(), "nested", "out.db")

	if _, err := executeCommand(t, "export", path, "--format", "sqlite", "--out", dbPath, "--table", "log"); err != nil {
		t.Fatalf("export error = %v", err)
	}

	db := testutil.OpenSQLite(t, dbPath)
	if got := testutil.CountRows(t, db, "log"); got != 9 {
		t.Errorf("rows = %d, want 9", got)
	}
	if _, ok := testutil.TableColumns(t, db, "log")["absolutePosition_x"]; !ok {
		t.Error("nested fields should be flattened by default")
	}
}

func TestExportCommand_Errors(t *testing.T) {
	path := testutil.CreateSampleLog(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown format", args: []string{"export", path, "--format", "xml", "--out", t.TempDir()}},
		{name: "sqlite to stdout", args: []string{"export", path, "--format", "sqlite", "--out", "-"}},
		{name: "unknown scene", args: []string{"export", path, "--scene", "Lobby", "--out", "-"}},
		{name: "missing file", args: []string{"export", filepath.Join(t.TempDir(), "none.json")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := executeCommand(t, tt.args...); err == nil {
				t.Error("export error = nil, want error")
			}
		})
	}
}

func TestDefaultOutputName(t *testing.T) {
	resetFlags(exportCmd)
	if got := defaultOutputName("/logs/run 1.json", "csv"); got != "run 1.csv" {
		t.Errorf("defaultOutputName() = %q, want %q", got, "run 1.csv")
	}

	exportSel.scene = "Level 2/A"
	exportSel.instance = 1
	defer resetFlags(exportCmd)
	if got := defaultOutputName("/logs/run.json", "db"); got != "run_Level_2_A_1.db" {
		t.Errorf("defaultOutputName() = %q, want %q", got, "run_Level_2_A_1.db")
	}
}
