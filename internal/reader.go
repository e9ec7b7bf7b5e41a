package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is the text encoding assumed for log files
const DefaultEncoding = "utf-8"

type readConfig struct {
	encoding string
	cache    *CacheManager
}

// ReadOption configures ReadRecords and LoadLog
type ReadOption func(*readConfig)

// WithEncoding sets the text encoding of the log file. Names follow the
// WHATWG encoding labels (utf-8, utf-16le, latin1, windows-1252, ...).
func WithEncoding(name string) ReadOption {
	return func(c *readConfig) {
		if name != "" {
			c.encoding = name
		}
	}
}

// WithCache makes LoadLog reuse and refresh parsed records in cm.
// ReadRecords ignores it.
func WithCache(cm *CacheManager) ReadOption {
	return func(c *readConfig) {
		c.cache = cm
	}
}

func newReadConfig(opts []ReadOption) *readConfig {
	cfg := &readConfig{encoding: DefaultEncoding}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ReadRecords reads a bWell log file and returns the elements of its data
// array in file order. Truncated files are healed once before giving up.
func ReadRecords(path string, opts ...ReadOption) ([]*Record, error) {
	cfg := newReadConfig(opts)

	content, err := readContent(path, cfg.encoding)
	if err != nil {
		return nil, err
	}

	root, err := parseRoot(path, content)
	if err != nil {
		return nil, err
	}

	rawData, ok := root["data"]
	if !ok || !isJSONArray(rawData) {
		return nil, &FormatError{Path: path, Reason: "missing data array"}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(rawData, &elements); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	records := make([]*Record, 0, len(elements))
	for i, elem := range elements {
		if !isJSONObject(elem) {
			logWarn("Skipping data[%d] in %s: not an object", i, path)
			continue
		}
		record := &Record{}
		if err := record.UnmarshalJSON(elem); err != nil {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("data[%d]: %w", i, err)}
		}
		records = append(records, record)
	}

	logDebug("Read %d records from %s", len(records), path)
	return records, nil
}

// LoadLog reads a log file into a normalized Session whose metadata
// carries the file path.
func LoadLog(path string, opts ...ReadOption) (*Session, error) {
	cfg := newReadConfig(opts)
	metadata := map[string]any{MetadataFilePath: path}

	if cfg.cache != nil {
		if records, ok := cfg.cache.Lookup(path, cfg.encoding); ok {
			logDebug("Loaded %d records for %s from cache", len(records), path)
			return newSession(records, metadata), nil
		}
	}

	records, err := ReadRecords(path, opts...)
	if err != nil {
		return nil, err
	}
	session := NewSession(records, metadata)

	if cfg.cache != nil {
		if err := cfg.cache.Store(path, cfg.encoding, session.records); err != nil {
			logWarn("Failed to cache %s: %v", path, err)
		}
	}
	return session, nil
}

func readContent(path, encoding string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		op := "read"
		if errors.Is(err, os.ErrNotExist) {
			op = "open"
		}
		return "", &ReadError{Path: path, Op: op, Err: err}
	}

	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return "", &ReadError{Path: path, Op: "decode", Err: fmt.Errorf("unknown encoding %q: %w", encoding, err)}
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", &ReadError{Path: path, Op: "decode", Err: err}
	}

	content := strings.TrimSpace(string(decoded))
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\n", "")
	if content == "" {
		return "", &ReadError{Path: path, Op: "read", Err: errEmptyFile}
	}
	return content, nil
}

// parseRoot decodes the top-level object, healing the content once on a
// syntax error.
func parseRoot(path, content string) (map[string]json.RawMessage, error) {
	root, err := decodeRoot(content)
	if err != nil && isSyntaxError(err) {
		logDebug("Parsing %s failed (%v), attempting to heal", path, err)
		root, err = decodeRoot(HealJSON(content))
		if err != nil && isSyntaxError(err) {
			return nil, &ParseError{Path: path, Err: err}
		}
	}
	if err != nil {
		return nil, &FormatError{Path: path, Reason: "root must be an object"}
	}
	if root == nil {
		return nil, &FormatError{Path: path, Reason: "root must be an object"}
	}
	return root, nil
}

func decodeRoot(content string) (map[string]json.RawMessage, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &root); err != nil {
		return nil, err
	}
	return root, nil
}

func isSyntaxError(err error) bool {
	var syntaxErr *json.SyntaxError
	return errors.As(err, &syntaxErr)
}

func isJSONArray(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) > 0 && b[0] == '['
}

func isJSONObject(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) > 0 && b[0] == '{'
}
