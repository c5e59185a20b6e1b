package automod

import (
	"hash/fnv"
	"sync"
	"time"
)

const rateShardCount = 16

// rateEntry tracks one user's message count inside the active window
type rateEntry struct {
	count       int
	windowStart time.Time
}

type rateShard struct {
	mu      sync.Mutex
	entries map[string]*rateEntry
}

// RateState holds per-user message counters for the spam detector.
// Entries are transient and never persisted; losing them on restart is
// acceptable, rate limits are a soft control.
//
// The map is sharded by user ID so racing messages from different users never
// contend on the same lock, and updates for the same user are serialized.
type RateState struct {
	shards [rateShardCount]*rateShard
	now    func() time.Time
}

// NewRateState creates an empty RateState using the real clock
func NewRateState() *RateState {
	rs := &RateState{now: time.Now}
	for i := range rs.shards {
		rs.shards[i] = &rateShard{entries: make(map[string]*rateEntry)}
	}
	return rs
}

func (rs *RateState) shardFor(userID string) *rateShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return rs.shards[h.Sum32()%rateShardCount]
}

// Bump registers one message from a user and returns the count inside the
// active window plus whether the count strictly exceeds max.
//
// If the user has no entry or the window expired, the entry resets to
// {count: 1, windowStart: now} and the message never violates. A message
// exactly at the limit does not trigger.
func (rs *RateState) Bump(userID string, window time.Duration, max int) (int, bool) {
	shard := rs.shardFor(userID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	now := rs.now()
	entry, exists := shard.entries[userID]
	if !exists || now.Sub(entry.windowStart) > window {
		shard.entries[userID] = &rateEntry{count: 1, windowStart: now}
		return 1, false
	}

	entry.count++
	return entry.count, entry.count > max
}

// Size returns the total number of tracked users
func (rs *RateState) Size() int {
	total := 0
	for _, shard := range rs.shards {
		shard.mu.Lock()
		total += len(shard.entries)
		shard.mu.Unlock()
	}
	return total
}
