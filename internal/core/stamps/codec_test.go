package stamps

import (
	"errors"
	"testing"

	"github.com/penwyp/go-stampwatch/internal/core/constants"
	"github.com/penwyp/go-stampwatch/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalBinaryWritesAllSlots(t *testing.T) {
	l := New(20, model.OverflowDrop)
	require.NoError(t, l.Create(base))

	data, err := l.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, 20*8)

	slots, err := DecodeSlots(data)
	require.NoError(t, err)
	assert.Len(t, slots, 20)
	assert.Equal(t, base.Unix(), slots[0])
	for _, s := range slots[1:] {
		assert.Zero(t, s)
	}
}

func TestDecodeSlotsRejectsPartialSlot(t *testing.T) {
	_, err := DecodeSlots(make([]byte, 12))
	assert.True(t, errors.Is(err, ErrBadBlob))
}

func TestDecodeSlotsLength(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, false},
		{"max size", constants.MaxDataSize, false},
		{"partial slot", 12, true},
		{"above max size", constants.MaxDataSize + slotSize, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := DecodeSlots(make([]byte, tt.size))
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrBadBlob))
				return
			}
			require.NoError(t, err)
			assert.Len(t, slots, tt.size/slotSize)
		})
	}
}

func TestEncodeSlotsLittleEndian(t *testing.T) {
	data := EncodeSlots([]int64{1})
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, data)
}
