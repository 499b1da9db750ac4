// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recent tracks a bounded, deduplicated, most-recent-first list of
// submitted search queries for the lifetime of a session.
package recent

import (
	"strings"
	"sync"
)

// Tracker holds recent queries, most recent first.
type Tracker struct {
	mu       sync.Mutex
	capacity int
	entries  []string
}

// NewTracker returns an empty tracker holding at most capacity entries.
// A capacity below 1 is treated as 1.
func NewTracker(capacity int) *Tracker {
	if capacity < 1 {
		capacity = 1
	}
	return &Tracker{capacity: capacity}
}

// Record moves term to the front of the list, inserting it if absent, and
// truncates the list to capacity. Terms that are empty after trimming are
// ignored. The trimmed term is stored.
func (t *Tracker) Record(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	next := make([]string, 0, t.capacity)
	next = append(next, term)
	for _, e := range t.entries {
		if e == term {
			continue
		}
		if len(next) == t.capacity {
			break
		}
		next = append(next, e)
	}
	t.entries = next
}

// Clear empties the list.
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.entries = nil
	t.mu.Unlock()
}

// List returns a copy of the entries, most recent first.
func (t *Tracker) List() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
