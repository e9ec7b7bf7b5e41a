package export

import (
	"fmt"
	"io"

	"github.com/demengc/bwell-logkit/internal"
)

// Source is anything that exposes records and metadata: a *internal.Session
// or a *internal.SceneView
type Source interface {
	Records() []*internal.Record
	Metadata() map[string]any
}

// sceneSource is implemented by scene views
type sceneSource interface {
	Info() internal.SceneInfo
}

// statsSource is implemented by sessions and scene views
type statsSource interface {
	Stats() internal.Stats
}

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(src Source, w io.Writer) error
	Extension() string
}

// Options control how records are laid out in tabular formats
type Options struct {
	// Flatten expands nested objects into parent_child columns
	Flatten bool
	// IncludeMetadata adds one session_<key> column per metadata entry
	IncludeMetadata bool
	// IncludeSceneInfo adds scene_* columns when exporting a scene view
	IncludeSceneInfo bool
}

// DefaultOptions flattens nested objects and adds scene columns
func DefaultOptions() Options {
	return Options{Flatten: true, IncludeSceneInfo: true}
}

// Option modifies Options
type Option func(*Options)

// WithFlatten sets Options.Flatten
func WithFlatten(v bool) Option {
	return func(o *Options) { o.Flatten = v }
}

// WithMetadata sets Options.IncludeMetadata
func WithMetadata(v bool) Option {
	return func(o *Options) { o.IncludeMetadata = v }
}

// WithSceneInfo sets Options.IncludeSceneInfo
func WithSceneInfo(v bool) Option {
	return func(o *Options) { o.IncludeSceneInfo = v }
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Formats lists the formats NewExporter accepts
var Formats = []string{"json", "jsonl", "yaml", "md", "csv"}

// NewExporter creates a new exporter based on format
func NewExporter(format string, opts ...Option) (Exporter, error) {
	o := buildOptions(opts)
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{Options: o}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "csv":
		return &CSVExporter{Options: o}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, jsonl, yaml, md, csv)", format)
	}
}
