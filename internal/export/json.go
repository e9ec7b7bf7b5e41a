package export

import (
	"encoding/json"
	"io"

	"github.com/demengc/bwell-logkit/internal"
)

// document is the shape written by the JSON and YAML exporters
type document struct {
	Metadata map[string]any      `json:"metadata" yaml:"metadata"`
	Scene    *internal.SceneInfo `json:"scene,omitempty" yaml:"scene,omitempty"`
	Records  []*internal.Record  `json:"records" yaml:"records"`
}

func newDocument(src Source) document {
	doc := document{
		Metadata: src.Metadata(),
		Records:  src.Records(),
	}
	if scene, ok := src.(sceneSource); ok {
		info := scene.Info()
		doc.Scene = &info
	}
	return doc
}

// JSONExporter exports sessions in JSON format (pretty-printed)
type JSONExporter struct{}

// Export exports a session to JSON format
func (e *JSONExporter) Export(src Source, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(newDocument(src))
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
