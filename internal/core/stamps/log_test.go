package stamps

import (
	"errors"
	"testing"
	"time"

	"github.com/penwyp/go-stampwatch/internal/core/constants"
	"github.com/penwyp/go-stampwatch/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 7, 3, 14, 5, 9, 0, time.UTC)

func TestNewClampsCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		want     int
	}{
		{"below minimum", 5, constants.MinCapacity},
		{"minimum", 20, 20},
		{"in range", 35, 35},
		{"maximum", 50, 50},
		{"above maximum", 80, constants.MaxCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.capacity, model.OverflowDrop)
			assert.Equal(t, tt.want, l.Cap())
			assert.Equal(t, 0, l.Len())
		})
	}
}

func TestCreateAppendsInOrder(t *testing.T) {
	l := New(20, model.OverflowDrop)
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Create(base.Add(time.Duration(i)*time.Minute)))
	}

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []int64{base.Unix(), base.Unix() + 60, base.Unix() + 120}, l.Entries())

	last, ok := l.Last()
	require.True(t, ok)
	assert.Equal(t, base.Unix()+120, last.Unix())
}

func TestCreateWhenFullDrops(t *testing.T) {
	l := New(20, model.OverflowDrop)
	for i := 0; i < 20; i++ {
		require.NoError(t, l.Create(base.Add(time.Duration(i)*time.Second)))
	}
	require.True(t, l.Full())

	err := l.Create(base.Add(time.Hour))
	assert.True(t, errors.Is(err, ErrFull))
	assert.Equal(t, 20, l.Len())
	assert.Equal(t, base.Unix()+19, l.Entries()[19])
}

func TestCreateWhenFullRotates(t *testing.T) {
	l := New(20, model.OverflowRotate)
	for i := 0; i < 20; i++ {
		require.NoError(t, l.Create(base.Add(time.Duration(i)*time.Second)))
	}

	require.NoError(t, l.Create(base.Add(time.Hour)))
	entries := l.Entries()
	assert.Len(t, entries, 20)
	assert.Equal(t, base.Unix()+1, entries[0])
	assert.Equal(t, base.Add(time.Hour).Unix(), entries[19])
}

func TestCreateClampsBackwardsClock(t *testing.T) {
	l := New(20, model.OverflowDrop)
	require.NoError(t, l.Create(base))
	require.NoError(t, l.Create(base.Add(-time.Hour)))

	assert.Equal(t, []int64{base.Unix(), base.Unix()}, l.Entries())
}

func TestResetLeavesOneEntry(t *testing.T) {
	l := New(20, model.OverflowDrop)
	for i := 0; i < 20; i++ {
		require.NoError(t, l.Create(base.Add(time.Duration(i)*time.Second)))
	}

	// Reset must succeed even from a full log, and may go back in time
	l.Reset(base.Add(-time.Hour))
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, []int64{base.Add(-time.Hour).Unix()}, l.Entries())
}

func TestRestore(t *testing.T) {
	t.Run("count clamped to slots", func(t *testing.T) {
		l := New(20, model.OverflowDrop)
		l.Restore([]int64{1, 2, 3}, 10)
		assert.Equal(t, []int64{1, 2, 3}, l.Entries())
	})

	t.Run("negative count", func(t *testing.T) {
		l := New(20, model.OverflowDrop)
		l.Restore([]int64{1, 2, 3}, -1)
		assert.Equal(t, 0, l.Len())
	})

	t.Run("unused slots ignored", func(t *testing.T) {
		l := New(20, model.OverflowDrop)
		slots := make([]int64, 20)
		slots[0], slots[1] = 100, 200
		l.Restore(slots, 2)
		assert.Equal(t, []int64{100, 200}, l.Entries())
	})

	t.Run("newest kept when capacity shrank", func(t *testing.T) {
		l := New(20, model.OverflowDrop)
		slots := make([]int64, 50)
		for i := range slots {
			slots[i] = int64(i + 1)
		}
		l.Restore(slots, 30)
		entries := l.Entries()
		assert.Len(t, entries, 20)
		assert.Equal(t, int64(11), entries[0])
		assert.Equal(t, int64(30), entries[19])
	})

	t.Run("out of order sorted", func(t *testing.T) {
		l := New(20, model.OverflowDrop)
		l.Restore([]int64{30, 10, 20}, 3)
		assert.Equal(t, []int64{10, 20, 30}, l.Entries())
	})
}

func TestSince(t *testing.T) {
	l := New(20, model.OverflowDrop)
	assert.Equal(t, time.Duration(0), l.Since(base))

	require.NoError(t, l.Create(base))
	assert.Equal(t, 90*time.Second, l.Since(base.Add(90*time.Second)))
	assert.Equal(t, time.Duration(0), l.Since(base.Add(-time.Second)))
}
