// dedup_test.go
package main

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicatorFirstSightThenDuplicate(t *testing.T) {
	now := time.Now()
	d := NewDeduplicator(5 * time.Minute)
	d.now = func() time.Time { return now }

	require.False(t, d.IsDuplicate("m1"), "first sighting must not be a duplicate")
	require.True(t, d.IsDuplicate("m1"), "second sighting within window must be a duplicate")
	require.True(t, d.IsDuplicate("m1"), "repeat sightings stay duplicates")
}

func TestDeduplicatorExpiry(t *testing.T) {
	now := time.Now()
	d := NewDeduplicator(5 * time.Minute)
	d.now = func() time.Time { return now }

	require.False(t, d.IsDuplicate("m1"))

	now = now.Add(5*time.Minute + time.Second)
	require.False(t, d.IsDuplicate("m1"), "sighting after the retention window is novel again")
	require.True(t, d.IsDuplicate("m1"))
}

func TestDeduplicatorEmptyIDNeverDuplicate(t *testing.T) {
	d := NewDeduplicator(5 * time.Minute)

	for i := 0; i < 3; i++ {
		assert.False(t, d.IsDuplicate(""), "events without a message ID are always novel")
	}
	assert.Equal(t, 0, d.Len(), "empty IDs must not be recorded")
}

func TestDeduplicatorPurge(t *testing.T) {
	now := time.Now()
	d := NewDeduplicator(5 * time.Minute)
	d.now = func() time.Time { return now }

	d.IsDuplicate("m1")
	d.IsDuplicate("m2")
	require.Equal(t, 2, d.Len())

	now = now.Add(10 * time.Minute)
	d.Purge()
	assert.Equal(t, 0, d.Len(), "janitor purge must drop expired entries")
}

func TestDeduplicatorConcurrentAccess(t *testing.T) {
	d := NewDeduplicator(5 * time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	novel := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !d.IsDuplicate("same-mid") {
				mu.Lock()
				novel++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, novel, "exactly one concurrent sighting may be treated as novel")
}
