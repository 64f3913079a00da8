package service

import (
	"sync"

	"scanstation/internal/domain"
)

const defaultHistoryCapacity = 10

// RecentHistory is the bounded, newest-first record of confirmed scans. It
// is a session-local recency aid, not a system of record: nothing here is
// persisted.
type RecentHistory struct {
	mu       sync.Mutex
	capacity int
	entries  []domain.RecentScanEntry
}

// NewRecentHistory creates a history bounded at capacity entries. A
// non-positive capacity falls back to the default of 10.
func NewRecentHistory(capacity int) *RecentHistory {
	if capacity <= 0 {
		capacity = defaultHistoryCapacity
	}
	return &RecentHistory{capacity: capacity}
}

// Append inserts an entry at the head, evicting the oldest entry once the
// history exceeds capacity.
func (h *RecentHistory) Append(entry domain.RecentScanEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]domain.RecentScanEntry{entry}, h.entries...)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[:h.capacity]
	}
}

// Entries returns a copy of the history, newest first.
func (h *RecentHistory) Entries() []domain.RecentScanEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]domain.RecentScanEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the current number of entries.
func (h *RecentHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
