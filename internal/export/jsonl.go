package export

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONLExporter exports sessions in JSONL format (one record per line)
type JSONLExporter struct{}

// Export exports a session to JSONL format
func (e *JSONLExporter) Export(src Source, w io.Writer) error {
	enc := json.NewEncoder(w)

	for i, record := range src.Records() {
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("failed to encode record %d: %w", i, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
