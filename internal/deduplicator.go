package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Deduplicator removes duplicate records
type Deduplicator struct{}

// NewDeduplicator creates a new Deduplicator
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Deduplicate removes duplicate records based on content hash. The first
// occurrence of each fingerprint wins and relative order is kept.
func (d *Deduplicator) Deduplicate(records []*Record) []*Record {
	seen := make(map[string]bool, len(records))
	unique := make([]*Record, 0, len(records))

	for _, record := range records {
		hash := d.Fingerprint(record)
		if !seen[hash] {
			seen[hash] = true
			unique = append(unique, record)
		}
	}

	return unique
}

// Fingerprint returns a canonical content hash for a record. Keys are
// sorted at every nesting level, so field order does not matter.
func (d *Deduplicator) Fingerprint(record *Record) string {
	h := sha256.New()
	h.Write(canonicalBytes(record))
	return hex.EncodeToString(h.Sum(nil))
}

func canonicalBytes(record *Record) []byte {
	m := record.Map()
	b, err := json.Marshal(m)
	if err == nil {
		return b
	}
	// Values json cannot encode (NaN, channels, ...) fall back to fmt,
	// which also prints map keys in sorted order.
	return []byte(fmt.Sprintf("%v", m))
}
