// dedup.go
package main

import (
	"context"
	"sync"
	"time"
)

const defaultRetention = 5 * time.Minute

// Deduplicator tracks recently processed message IDs so provider
// redeliveries are handled at most once. Facebook delivers webhooks
// at-least-once; a redelivered mid inside the retention window must not
// trigger a second AI call or a second outbound send.
type Deduplicator struct {
	mu        sync.Mutex
	seen      map[string]time.Time
	retention time.Duration
	now       func() time.Time
}

func NewDeduplicator(retention time.Duration) *Deduplicator {
	if retention <= 0 {
		retention = defaultRetention
	}
	return &Deduplicator{
		seen:      make(map[string]time.Time),
		retention: retention,
		now:       time.Now,
	}
}

// IsDuplicate reports whether mid was already seen inside the retention
// window, recording first sight otherwise. Events without a message ID
// (read receipts and the like) are never deduplicated.
func (d *Deduplicator) IsDuplicate(mid string) bool {
	if mid == "" {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	d.purgeLocked(now)

	if _, ok := d.seen[mid]; ok {
		return true
	}
	d.seen[mid] = now
	return false
}

// Purge drops expired entries. The janitor calls this on a tick so a
// quiet inbox doesn't leave stale entries in memory between lazy purges.
func (d *Deduplicator) Purge() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.purgeLocked(d.now())
}

// Len reports the number of tracked message IDs.
func (d *Deduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

func (d *Deduplicator) purgeLocked(now time.Time) {
	cutoff := now.Add(-d.retention)
	for mid, firstSeen := range d.seen {
		if firstSeen.Before(cutoff) {
			delete(d.seen, mid)
		}
	}
}

// Janitor purges expired entries on a fixed tick until ctx is done.
func (d *Deduplicator) Janitor(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.Purge()
		}
	}
}
