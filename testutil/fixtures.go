package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleLogJSON is a nine-record bWell log with two scene markers:
// "MainMenu" at 4.0 and "GameLevel1" at 15.0.
const SampleLogJSON = `{"data": [
{"timestamp": 1.0, "msSinceEpoch": 1000, "myType": "AbsoluteActivityRecord", "senderTag": "Head", "absolutePosition": {"x": 0.0, "y": 1.5, "z": 0.0}, "absoluteRotation": {"x": 0.0, "y": 0.0, "z": 0.0, "w": 1.0}},
{"timestamp": 2.0, "msSinceEpoch": 2000, "myType": "AbsoluteActivityRecord", "senderTag": "LeftHand", "absolutePosition": {"x": -0.3, "y": 1.0, "z": 0.2}, "absoluteRotation": {"x": 0.0, "y": 0.0, "z": 0.0, "w": 1.0}},
{"timestamp": 3.0, "msSinceEpoch": 3000, "myType": "AbsoluteActivityRecord", "senderTag": "RightHand", "absolutePosition": {"x": 0.3, "y": 1.0, "z": 0.2}, "absoluteRotation": {"x": 0.0, "y": 0.0, "z": 0.0, "w": 1.0}},
{"timestamp": 4.0, "msSinceEpoch": 4000, "myType": "SceneEntryRecord", "sceneName": "MainMenu"},
{"timestamp": 10.0, "msSinceEpoch": 10000, "myType": "AbsoluteActivityRecord", "senderTag": "Head", "absolutePosition": {"x": 0.1, "y": 1.6, "z": 0.1}, "absoluteRotation": {"x": 0.0, "y": 0.1, "z": 0.0, "w": 0.99}},
{"timestamp": 15.0, "msSinceEpoch": 15000, "myType": "SceneEntryRecord", "sceneName": "GameLevel1"},
{"timestamp": 20.0, "msSinceEpoch": 20000, "myType": "AbsoluteActivityRecord", "senderTag": "Head", "absolutePosition": {"x": 0.2, "y": 1.6, "z": 0.3}, "absoluteRotation": {"x": 0.0, "y": 0.2, "z": 0.0, "w": 0.98}},
{"timestamp": 22.0, "msSinceEpoch": 22000, "myType": "AbsoluteActivityRecord", "senderTag": "LeftHand", "absolutePosition": {"x": -0.2, "y": 1.1, "z": 0.4}, "absoluteRotation": {"x": 0.0, "y": 0.0, "z": 0.1, "w": 0.99}},
{"timestamp": 25.0, "msSinceEpoch": 25000, "myType": "GameSettingsRecord", "setting": "volume", "value": 0.8}
]}`

// TruncatedLogJSON ends after a trailing comma inside the data array
const TruncatedLogJSON = `{"data": [{"timestamp": 1.0, "myType": "AbsoluteActivityRecord", "senderTag": "Head"},`

// MalformedLogJSON is missing its closing brackets
const MalformedLogJSON = `{"data": [{"timestamp": 1.0, "myType": "AbsoluteActivityRecord"}`

// InvalidLogText is not JSON at all
const InvalidLogText = "this is not json at all { invalid }"

// NoDataLogJSON is a valid object without a data array
const NoDataLogJSON = `{"other_field": "value", "records": []}`

// WriteLogFixture writes content to dir/name and returns the path
func WriteLogFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", path, err)
	}
	return path
}

// CreateSampleLog writes SampleLogJSON to a temp file and returns its path
func CreateSampleLog(t *testing.T) string {
	t.Helper()
	return WriteLogFixture(t, t.TempDir(), "session.json", SampleLogJSON)
}

// CreateLogDirFixture builds a directory tree of logs under basePath:
// session1.json, sub/session2.json (truncated), notes.txt and, when
// withBroken is set, broken.json holding invalid text.
func CreateLogDirFixture(t *testing.T, basePath string, withBroken bool) string {
	t.Helper()
	WriteLogFixture(t, basePath, "session1.json", SampleLogJSON)
	WriteLogFixture(t, basePath, filepath.Join("sub", "session2.json"), TruncatedLogJSON)
	WriteLogFixture(t, basePath, "notes.txt", "not a log")
	if withBroken {
		WriteLogFixture(t, basePath, "broken.json", InvalidLogText)
	}
	return basePath
}
