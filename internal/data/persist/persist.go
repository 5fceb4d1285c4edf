// Package persist moves the timestamp log in and out of the key-value store.
package persist

import (
	"errors"
	"fmt"
	"time"

	"github.com/penwyp/go-stampwatch/internal/core/constants"
	"github.com/penwyp/go-stampwatch/internal/core/stamps"
	"github.com/penwyp/go-stampwatch/internal/data/store"
	"github.com/penwyp/go-stampwatch/internal/util"
)

// Load reads persisted values into log. On first start, with no count
// stored, the log is initialised with one timestamp at now.
func Load(s store.Store, log *stamps.Log, now time.Time) error {
	var slots []int64
	if s.Exists(constants.TimestampStorageKey) {
		data, err := s.ReadData(constants.TimestampStorageKey)
		if err != nil {
			return fmt.Errorf("read timestamps: %w", err)
		}
		slots, err = stamps.DecodeSlots(data)
		if err != nil {
			return fmt.Errorf("decode timestamps: %w", err)
		}
	}

	if !s.Exists(constants.NumItemsStorageKey) {
		util.LogDebug("create initial timestamp on first start ...")
		log.Restore(nil, 0)
		return createIgnoringFull(log, now)
	}

	count, err := s.ReadInt(constants.NumItemsStorageKey)
	if err != nil {
		return fmt.Errorf("read item count: %w", err)
	}
	log.Restore(slots, int(count))
	util.LogDebugf("num_items after read: %d", log.Len())
	return nil
}

// Save writes log to the store and flushes it
func Save(s store.Store, log *stamps.Log) error {
	data, err := log.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode timestamps: %w", err)
	}
	if err := s.WriteInt(constants.NumItemsStorageKey, int32(log.Len())); err != nil {
		return fmt.Errorf("write item count: %w", err)
	}
	if err := s.WriteData(constants.TimestampStorageKey, data); err != nil {
		return fmt.Errorf("write timestamps: %w", err)
	}
	if err := s.Flush(); err != nil {
		return err
	}
	util.LogDebug("stored persisted values", util.F("count", log.Len()))
	return nil
}

func createIgnoringFull(log *stamps.Log, now time.Time) error {
	if err := log.Create(now); err != nil && !errors.Is(err, stamps.ErrFull) {
		return err
	}
	return nil
}
