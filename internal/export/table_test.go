package export

import (
	"reflect"
	"testing"

	"github.com/demengc/bwell-logkit/internal"
)

func TestBuildTable_Flatten(t *testing.T) {
	session := internal.CreateTestSession("sample.json")

	table := BuildTable(session, Options{Flatten: true})

	wantPrefix := []string{
		"timestamp", "msSinceEpoch", "myType", "senderTag",
		"absolutePosition_x", "absolutePosition_y", "absolutePosition_z",
		"absoluteRotation_w", "absoluteRotation_x", "absoluteRotation_y", "absoluteRotation_z",
		"sceneName", "setting", "value",
	}
	if !reflect.DeepEqual(table.Columns, wantPrefix) {
		t.Errorf("Columns = %v, want %v", table.Columns, wantPrefix)
	}
	if len(table.Rows) != 9 {
		t.Fatalf("Rows = %d, want 9", len(table.Rows))
	}
	for i, row := range table.Rows {
		if len(row) != len(table.Columns) {
			t.Errorf("row %d has %d cells, want %d", i, len(row), len(table.Columns))
		}
	}
	// marker row has no movement columns
	if table.Rows[3][4] != nil {
		t.Errorf("marker absolutePosition_x = %v, want nil", table.Rows[3][4])
	}
}

func TestBuildTable_NestedColumnOrder(t *testing.T) {
	session := internal.CreateTestSessionWithRecords([]*internal.Record{
		internal.NewRecord(
			internal.Pair{Key: internal.FieldGameTimeSecs, Value: 1.0},
			internal.Pair{Key: "pos", Value: map[string]any{"z": 1.0, "a": 2.0}},
		),
		internal.NewRecord(
			internal.Pair{Key: internal.FieldGameTimeSecs, Value: 2.0},
			internal.Pair{Key: "pos", Value: map[string]any{"m": 3.0, "a": 4.0}},
		),
	})

	table := BuildTable(session, Options{Flatten: true})

	want := []string{internal.FieldGameTimeSecs, "pos_a", "pos_z", "pos_m"}
	if !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("Columns = %v, want %v", table.Columns, want)
	}
	wantRows := [][]any{
		{1.0, 2.0, 1.0, nil},
		{2.0, 4.0, nil, 3.0},
	}
	if !reflect.DeepEqual(table.Rows, wantRows) {
		t.Errorf("Rows = %v, want %v", table.Rows, wantRows)
	}
}

func TestBuildTable_NoFlatten(t *testing.T) {
	session := internal.CreateTestSession("sample.json")
	table := BuildTable(session, Options{})

	if table.Columns[4] != "absolutePosition" {
		t.Errorf("Columns[4] = %q, want absolutePosition", table.Columns[4])
	}
	if _, ok := table.Rows[0][4].(map[string]any); !ok {
		t.Errorf("Rows[0][4] = %T, want nested map", table.Rows[0][4])
	}
}

func TestBuildTable_MetadataAndScene(t *testing.T) {
	session := internal.CreateTestSession("sample.json")
	session.SetMetadata("subject", "p01")
	view, err := session.Scene("MainMenu", 0)
	if err != nil {
		t.Fatalf("Scene() error = %v", err)
	}

	table := BuildTable(view, Options{Flatten: true, IncludeMetadata: true, IncludeSceneInfo: true})

	wantTail := []string{
		"session_file_path", "session_subject",
		ColSceneName, ColSceneInstance, ColSceneStartTime, ColSceneEndTime,
		ColSceneStartEpoch, ColSceneEndEpoch, ColSceneDuration,
	}
	tail := table.Columns[len(table.Columns)-len(wantTail):]
	if !reflect.DeepEqual(tail, wantTail) {
		t.Errorf("trailing columns = %v, want %v", tail, wantTail)
	}

	last := table.Rows[0][len(table.Columns)-1]
	if last != 11.0 {
		t.Errorf("scene_duration = %v, want 11", last)
	}

	plain := BuildTable(view, Options{Flatten: true})
	for _, c := range plain.Columns {
		if c == ColSceneName || c == "session_subject" {
			t.Errorf("unexpected column %q without metadata/scene options", c)
		}
	}
}

func TestBuildTable_EmptyScene(t *testing.T) {
	session := internal.CreateTestSession("sample.json")
	view, _ := session.Scene("GameLevel1", 0)
	empty := view.FilterType("Nope")

	table := BuildTable(empty, DefaultOptions())
	if len(table.Rows) != 0 {
		t.Errorf("Rows = %d, want 0", len(table.Rows))
	}
	if len(table.Columns) != 7 || table.Columns[0] != ColSceneName {
		t.Errorf("Columns = %v, want only scene columns", table.Columns)
	}
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "Head", "Head"},
		{"bool", true, "true"},
		{"whole float", 25.0, "25"},
		{"fraction", 0.8, "0.8"},
		{"int", 3, "3"},
		{"int64", int64(15000), "15000"},
		{"map", map[string]any{"b": 1.0, "a": "x"}, `{"a":"x","b":1}`},
		{"slice", []any{1.0, "y"}, `[1,"y"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCell(tt.in); got != tt.want {
				t.Errorf("FormatCell(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
