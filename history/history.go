// Package history implements the bounded, ordered log of past comparisons.
package history

import (
	"sync"

	"simlab/types"
)

// DefaultCapacity is the number of records retained before oldest-first
// eviction begins.
const DefaultCapacity = 50

// Buffer is a FIFO-evicting container of comparison records. Each session
// owns its own Buffer; it is never shared across sessions.
type Buffer struct {
	mu       sync.RWMutex
	records  []types.ComparisonRecord
	capacity int
	nextSeq  int
}

// New creates an empty buffer. Non-positive capacity falls back to
// DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		records:  make([]types.ComparisonRecord, 0, capacity),
		capacity: capacity,
	}
}

// Append stamps the record with the next sequence number and stores it,
// evicting the oldest record first when the buffer is at capacity.
func (b *Buffer) Append(rec types.ComparisonRecord) types.ComparisonRecord {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec.Seq = b.nextSeq
	b.nextSeq++

	if len(b.records) >= b.capacity {
		b.records = b.records[1:]
	}
	b.records = append(b.records, rec)
	return rec
}

// Recent returns a most-recent-first copy of the buffer contents.
func (b *Buffer) Recent() []types.ComparisonRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]types.ComparisonRecord, len(b.records))
	for i, rec := range b.records {
		out[len(b.records)-1-i] = rec
	}
	return out
}

// Len returns the number of retained records.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}

// Capacity returns the retention bound.
func (b *Buffer) Capacity() int { return b.capacity }

// Clear removes all records. Sequence numbering continues from where it
// left off so cleared records are never confused with new ones.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = b.records[:0]
}
