package stamps

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/penwyp/go-stampwatch/internal/core/constants"
	"github.com/penwyp/go-stampwatch/internal/core/model"
	"github.com/penwyp/go-stampwatch/internal/util"
)

// ErrFull is returned by Create when the log is at capacity under the drop policy
var ErrFull = errors.New("timestamp log is full")

// Log is a fixed-capacity, time-ordered sequence of Unix-second timestamps
type Log struct {
	mu       sync.RWMutex
	entries  []int64 // len(entries) == capacity, only [0, count) are valid
	count    int
	capacity int
	policy   model.OverflowPolicy
}

// ClampCapacity forces a capacity into the supported range
func ClampCapacity(capacity int) int {
	if capacity < constants.MinCapacity {
		return constants.MinCapacity
	}
	if capacity > constants.MaxCapacity {
		return constants.MaxCapacity
	}
	return capacity
}

// New creates an empty log
func New(capacity int, policy model.OverflowPolicy) *Log {
	capacity = ClampCapacity(capacity)
	return &Log{
		entries:  make([]int64, capacity),
		capacity: capacity,
		policy:   policy,
	}
}

// Create appends now to the log
func (l *Log) Create(now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.createLocked(now)
}

func (l *Log) createLocked(now time.Time) error {
	ts := now.Unix()
	if l.count > 0 && ts < l.entries[l.count-1] {
		util.LogWarnf("clock went backwards (%d < %d), clamping to last timestamp", ts, l.entries[l.count-1])
		ts = l.entries[l.count-1]
	}

	if l.count < l.capacity {
		l.entries[l.count] = ts
		l.count++
		util.LogDebugf("created timestamp #%d", l.count)
		return nil
	}

	if l.policy == model.OverflowRotate {
		copy(l.entries, l.entries[1:])
		l.entries[l.capacity-1] = ts
		util.LogDebugf("created timestamp #%d, discarded oldest", l.count)
		return nil
	}

	util.LogDebug("already enough timestamps")
	return ErrFull
}

// Reset clears the log and records now so it is never left empty
func (l *Log) Reset(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		l.entries[i] = 0
	}
	l.count = 0
	util.LogDebug("timestamps reset")
	_ = l.createLocked(now)
}

// Restore replaces the log contents with persisted slots.
// count is clamped to the capacity and to the number of slots; when the
// persisted data holds more valid entries than fit, the newest are kept.
func (l *Log) Restore(slots []int64, count int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if count < 0 {
		count = 0
	}
	if count > len(slots) {
		util.LogWarnf("persisted count %d exceeds %d stored slots", count, len(slots))
		count = len(slots)
	}

	valid := append([]int64(nil), slots[:count]...)
	if !sort.SliceIsSorted(valid, func(i, j int) bool { return valid[i] < valid[j] }) {
		util.LogWarn("persisted timestamps out of order, sorting")
		sort.Slice(valid, func(i, j int) bool { return valid[i] < valid[j] })
	}
	if len(valid) > l.capacity {
		util.LogWarnf("persisted %d timestamps, keeping newest %d", len(valid), l.capacity)
		valid = valid[len(valid)-l.capacity:]
	}

	for i := range l.entries {
		l.entries[i] = 0
	}
	copy(l.entries, valid)
	l.count = len(valid)
}

// Len returns the number of valid entries
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.count
}

// Cap returns the capacity
func (l *Log) Cap() int {
	return l.capacity
}

// Policy returns the overflow policy
func (l *Log) Policy() model.OverflowPolicy {
	return l.policy
}

// Full reports whether the log holds capacity entries
func (l *Log) Full() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.count >= l.capacity
}

// Entries returns a copy of the valid timestamps, oldest first
func (l *Log) Entries() []int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]int64(nil), l.entries[:l.count]...)
}

// Last returns the newest timestamp
func (l *Log) Last() (time.Time, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.count == 0 {
		return time.Time{}, false
	}
	return time.Unix(l.entries[l.count-1], 0), true
}

// Since returns the time elapsed between the newest timestamp and now
func (l *Log) Since(now time.Time) time.Duration {
	last, ok := l.Last()
	if !ok {
		return 0
	}
	d := now.Sub(last)
	if d < 0 {
		return 0
	}
	return d
}

func (l *Log) String() string {
	return fmt.Sprintf("Log{%d/%d %s}", l.Len(), l.capacity, l.policy)
}
