package stamps

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/penwyp/go-stampwatch/internal/core/constants"
)

// ErrBadBlob is returned when persisted timestamp data has an invalid length
var ErrBadBlob = errors.New("invalid timestamp blob")

const slotSize = 8

// MarshalBinary encodes all capacity slots, unused slots are zero
func (l *Log) MarshalBinary() ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return EncodeSlots(l.entries), nil
}

// EncodeSlots encodes timestamps as little-endian int64 values
func EncodeSlots(slots []int64) []byte {
	buf := make([]byte, len(slots)*slotSize)
	for i, ts := range slots {
		binary.LittleEndian.PutUint64(buf[i*slotSize:], uint64(ts))
	}
	return buf
}

// DecodeSlots decodes data produced by EncodeSlots
func DecodeSlots(data []byte) ([]int64, error) {
	if len(data) > constants.MaxDataSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrBadBlob, len(data), constants.MaxDataSize)
	}
	if len(data)%slotSize != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of %d", ErrBadBlob, len(data), slotSize)
	}
	slots := make([]int64, len(data)/slotSize)
	for i := range slots {
		slots[i] = int64(binary.LittleEndian.Uint64(data[i*slotSize:]))
	}
	return slots, nil
}
