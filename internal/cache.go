package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// CacheVersion is bumped whenever the cached record layout changes
const CacheVersion = "1"

// CacheManager stores the normalized records of parsed log files so that
// repeated loads skip decoding, healing and sorting. Entries are keyed by
// absolute source path and invalidated when its size or mod time changes.
type CacheManager struct {
	cacheDir string
	mu       sync.Mutex
}

// CacheEntry describes one cached log file in the index
type CacheEntry struct {
	ID            string    `yaml:"id"`
	SourcePath    string    `yaml:"source_path"`
	SourceModTime time.Time `yaml:"source_mod_time"`
	SourceSize    int64     `yaml:"source_size"`
	Encoding      string    `yaml:"encoding"`
	RecordCount   int       `yaml:"record_count"`
	CachedAt      time.Time `yaml:"cached_at"`
}

// CacheIndex is the YAML index of all cached log files
type CacheIndex struct {
	CacheVersion string       `yaml:"cache_version"`
	Entries      []CacheEntry `yaml:"entries"`
}

// NewCacheManager creates a new cache manager
func NewCacheManager(cacheDir string) *CacheManager {
	return &CacheManager{
		cacheDir: cacheDir,
	}
}

// EnsureCacheDir ensures the cache directory exists
func (cm *CacheManager) EnsureCacheDir() error {
	return os.MkdirAll(cm.cacheDir, 0755)
}

// GetCacheDir returns the cache directory path
func (cm *CacheManager) GetCacheDir() string {
	return cm.cacheDir
}

// GetIndexPath returns the path to the cache index YAML file
func (cm *CacheManager) GetIndexPath() string {
	return filepath.Join(cm.cacheDir, "logs.yaml")
}

// GetEntryPath returns the path to the records file of a cache entry
func (cm *CacheManager) GetEntryPath(id string) string {
	return filepath.Join(cm.cacheDir, fmt.Sprintf("log_%s.jsonl", id))
}

// cacheID derives a stable file-name-safe id from an absolute path
func cacheID(absPath string) string {
	sum := sha256.Sum256([]byte(absPath))
	return hex.EncodeToString(sum[:8])
}

// LoadIndex loads the cache index
func (cm *CacheManager) LoadIndex() (*CacheIndex, error) {
	data, err := os.ReadFile(cm.GetIndexPath())
	if err != nil {
		return nil, err
	}

	var index CacheIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index: %w", err)
	}
	return &index, nil
}

// SaveIndex saves the cache index
func (cm *CacheManager) SaveIndex(index *CacheIndex) error {
	if err := cm.EnsureCacheDir(); err != nil {
		return err
	}

	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	return os.WriteFile(cm.GetIndexPath(), data, 0644)
}

// Lookup returns the cached records for path when the cache entry still
// matches the file on disk and was read with the same encoding
func (cm *CacheManager) Lookup(path, encoding string) ([]*Record, bool) {
	abs, info, err := statSource(path)
	if err != nil {
		return nil, false
	}

	cm.mu.Lock()
	index, err := cm.LoadIndex()
	cm.mu.Unlock()
	if err != nil || index.CacheVersion != CacheVersion {
		return nil, false
	}

	entry, ok := index.find(abs)
	if !ok || !entry.matches(info, encoding) {
		return nil, false
	}

	records, err := cm.readEntry(entry.ID)
	if err != nil {
		logDebug("Ignoring cache entry for %s: %v", path, err)
		return nil, false
	}
	if len(records) != entry.RecordCount {
		logDebug("Ignoring cache entry for %s: %d records, index says %d", path, len(records), entry.RecordCount)
		return nil, false
	}
	return records, true
}

// Store caches records, which must already be normalized, for path
func (cm *CacheManager) Store(path, encoding string, records []*Record) error {
	abs, info, err := statSource(path)
	if err != nil {
		return err
	}
	if err := cm.EnsureCacheDir(); err != nil {
		return err
	}

	id := cacheID(abs)
	if err := cm.writeEntry(id, records); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	index, err := cm.LoadIndex()
	if err != nil || index.CacheVersion != CacheVersion {
		index = &CacheIndex{CacheVersion: CacheVersion}
	}

	entry := CacheEntry{
		ID:            id,
		SourcePath:    abs,
		SourceModTime: info.ModTime(),
		SourceSize:    info.Size(),
		Encoding:      encoding,
		RecordCount:   len(records),
		CachedAt:      time.Now(),
	}
	found := false
	for i := range index.Entries {
		if index.Entries[i].SourcePath == abs {
			index.Entries[i] = entry
			found = true
			break
		}
	}
	if !found {
		index.Entries = append(index.Entries, entry)
	}

	return cm.SaveIndex(index)
}

// ClearCache removes every cached entry and the index
func (cm *CacheManager) ClearCache() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	index, err := cm.LoadIndex()
	if err == nil {
		for _, entry := range index.Entries {
			_ = os.Remove(cm.GetEntryPath(entry.ID))
		}
	}

	if err := os.Remove(cm.GetIndexPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (cm *CacheManager) writeEntry(id string, records []*Record) error {
	tmp, err := os.CreateTemp(cm.cacheDir, "log_*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), cm.GetEntryPath(id))
}

func (cm *CacheManager) readEntry(id string) ([]*Record, error) {
	f, err := os.Open(cm.GetEntryPath(id))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []*Record
	dec := json.NewDecoder(f)
	for {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		record := &Record{}
		if err := record.UnmarshalJSON(raw); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (idx *CacheIndex) find(absPath string) (CacheEntry, bool) {
	for _, e := range idx.Entries {
		if e.SourcePath == absPath {
			return e, true
		}
	}
	return CacheEntry{}, false
}

func (e CacheEntry) matches(info os.FileInfo, encoding string) bool {
	return e.SourceSize == info.Size() &&
		e.SourceModTime.Equal(info.ModTime()) &&
		e.Encoding == encoding
}

func statSource(path string) (string, os.FileInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", nil, err
	}
	return abs, info, nil
}
