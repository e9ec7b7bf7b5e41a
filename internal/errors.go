package internal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFormat is matched by every FormatError
	ErrInvalidFormat = errors.New("invalid log format")

	// ErrSceneNotFound is matched by every SceneNotFoundError
	ErrSceneNotFound = errors.New("scene not found")

	errEmptyFile = errors.New("file is empty")
)

// ReadError represents errors reading log files
type ReadError struct {
	Path string
	Op   string // "open", "read", "decode", "scan", "load"
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ParseError represents content that is not valid JSON even after healing
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error %s: failed to parse JSON even after healing: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatError represents valid JSON with the wrong top-level shape
type FormatError struct {
	Path   string
	Reason string // "root must be an object", "missing data array"
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error %s: %v: %s", e.Path, ErrInvalidFormat, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}

// SceneNotFoundError is returned when a scene instance is not in the index.
// Available lists every scene name the session does have.
type SceneNotFoundError struct {
	Name      string
	Instance  int
	Available []string
}

func (e *SceneNotFoundError) Error() string {
	msg := fmt.Sprintf("scene %q (instance %d) not found", e.Name, e.Instance)
	if len(e.Available) > 0 {
		msg += "; available scenes: " + strings.Join(e.Available, ", ")
	}
	return msg
}

func (e *SceneNotFoundError) Unwrap() error {
	return ErrSceneNotFound
}

// ExtractionError represents errors during export
type ExtractionError struct {
	Extractor string // "csv", "sqlite", ...
	Path      string
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("extraction error [%s]: %v", e.Extractor, e.Err)
	}
	return fmt.Sprintf("extraction error [%s] %s: %v", e.Extractor, e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
