package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/demengc/bwell-logkit/internal"
)

// MarkdownExporter exports a summary and a record table in Markdown format
type MarkdownExporter struct {
	Options Options
}

// Export exports a session to Markdown format
func (e *MarkdownExporter) Export(src Source, w io.Writer) error {
	md := src.Metadata()

	// Header
	title := "Log session"
	if scene, ok := src.(sceneSource); ok {
		info := scene.Info()
		title = fmt.Sprintf("Scene %s (instance %d)", info.Name, info.Instance)
	}
	_, _ = fmt.Fprintf(w, "# %s\n\n", title)

	if path, ok := md[internal.MetadataFilePath].(string); ok && path != "" {
		_, _ = fmt.Fprintf(w, "**File:** %s  \n", path)
	}

	if s, ok := src.(statsSource); ok {
		st := s.Stats()
		_, _ = fmt.Fprintf(w, "**Records:** %d  \n", st.TotalRecords)
		if st.GameTimeRange != nil {
			_, _ = fmt.Fprintf(w, "**Game time:** %s to %s s  \n",
				FormatCell(st.GameTimeRange.Start), FormatCell(st.GameTimeRange.End))
		}
		if st.Scene != nil {
			_, _ = fmt.Fprintf(w, "**Duration:** %s s  \n", FormatCell(st.Scene.DurationSecs))
		}
		_, _ = fmt.Fprintf(w, "\n")

		if len(st.RecordTypes) > 0 {
			_, _ = fmt.Fprintf(w, "## Record types\n\n| Type | Count |\n| --- | --- |\n")
			types := make([]string, 0, len(st.RecordTypes))
			for t := range st.RecordTypes {
				types = append(types, t)
			}
			sort.Strings(types)
			for _, t := range types {
				_, _ = fmt.Fprintf(w, "| %s | %d |\n", escapeCell(t), st.RecordTypes[t])
			}
			_, _ = fmt.Fprintf(w, "\n")
		}

		if len(st.Scenes) > 0 {
			_, _ = fmt.Fprintf(w, "## Scenes\n\n| Scene | Instances |\n| --- | --- |\n")
			for _, sc := range st.Scenes {
				_, _ = fmt.Fprintf(w, "| %s | %d |\n", escapeCell(sc.Name), sc.Instances)
			}
			_, _ = fmt.Fprintf(w, "\n")
		}
	}

	_, _ = fmt.Fprintf(w, "---\n\n## Records\n\n")

	table := BuildTable(src, e.Options)
	if len(table.Rows) == 0 {
		_, _ = fmt.Fprintf(w, "_No records._\n")
		return nil
	}

	header := make([]string, len(table.Columns))
	sep := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = escapeCell(c)
		sep[i] = "---"
	}
	if _, err := fmt.Fprintf(w, "| %s |\n| %s |\n", strings.Join(header, " | "), strings.Join(sep, " | ")); err != nil {
		return err
	}
	cells := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, v := range row {
			cells[i] = escapeCell(FormatCell(v))
		}
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | ")); err != nil {
			return err
		}
	}

	return nil
}

// escapeCell keeps a value inside one Markdown table cell
func escapeCell(text string) string {
	text = strings.ReplaceAll(text, "|", "\\|")
	text = strings.ReplaceAll(text, "\r\n", "<br>")
	return strings.ReplaceAll(text, "\n", "<br>")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
