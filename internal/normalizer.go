package internal

import "sort"

// Normalizer turns a raw record sequence into the canonical one a Session
// holds: deduplicated, then stable-sorted by game-time.
type Normalizer struct {
	dedup *Deduplicator
}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{dedup: NewDeduplicator()}
}

// Normalize deduplicates and time-sorts records. The input slice is not
// modified. Normalizing an already normalized sequence returns an equal one.
func (n *Normalizer) Normalize(records []*Record) []*Record {
	out := n.dedup.Deduplicate(records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GameTime() < out[j].GameTime()
	})
	return out
}

// NormalizeRecords is shorthand for NewNormalizer().Normalize(records)
func NormalizeRecords(records []*Record) []*Record {
	return NewNormalizer().Normalize(records)
}

// isNormalized reports whether records are already in game-time order
func isNormalized(records []*Record) bool {
	for i := 1; i < len(records); i++ {
		if records[i].GameTime() < records[i-1].GameTime() {
			return false
		}
	}
	return true
}
