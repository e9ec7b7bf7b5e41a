package export

import (
	"encoding/csv"
	"io"

	"github.com/demengc/bwell-logkit/internal"
)

// CSVExporter writes one flattened row per record with a header line
type CSVExporter struct {
	Options Options
}

// Export exports a session to CSV format
func (e *CSVExporter) Export(src Source, w io.Writer) error {
	table := BuildTable(src, e.Options)
	cw := csv.NewWriter(w)

	if err := cw.Write(table.Columns); err != nil {
		return &internal.ExtractionError{Extractor: "csv", Err: err}
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, cell := range row {
			record[i] = FormatCell(cell)
		}
		if err := cw.Write(record); err != nil {
			return &internal.ExtractionError{Extractor: "csv", Err: err}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return &internal.ExtractionError{Extractor: "csv", Err: err}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *CSVExporter) Extension() string {
	return "csv"
}
