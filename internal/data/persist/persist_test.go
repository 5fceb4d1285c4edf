package persist

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/go-stampwatch/internal/core/constants"
	"github.com/penwyp/go-stampwatch/internal/core/model"
	"github.com/penwyp/go-stampwatch/internal/core/stamps"
	"github.com/penwyp/go-stampwatch/internal/data/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 7, 3, 14, 5, 9, 0, time.UTC)

func openStore(t *testing.T) (*store.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := store.Open(path)
	require.NoError(t, err)
	return s, path
}

func TestLoadFirstStartCreatesTimestamp(t *testing.T) {
	s, _ := openStore(t)
	log := stamps.New(20, model.OverflowDrop)

	require.NoError(t, Load(s, log, now))
	assert.Equal(t, []int64{now.Unix()}, log.Entries())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s, path := openStore(t)
	log := stamps.New(20, model.OverflowDrop)
	require.NoError(t, Load(s, log, now))
	require.NoError(t, log.Create(now.Add(time.Minute)))
	require.NoError(t, log.Create(now.Add(time.Hour)))
	require.NoError(t, Save(s, log))

	reopened, err := store.Open(path)
	require.NoError(t, err)

	count, err := reopened.ReadInt(constants.NumItemsStorageKey)
	require.NoError(t, err)
	assert.Equal(t, int32(3), count)

	blob, err := reopened.ReadData(constants.TimestampStorageKey)
	require.NoError(t, err)
	assert.Len(t, blob, 20*8)

	restored := stamps.New(20, model.OverflowDrop)
	require.NoError(t, Load(reopened, restored, now.Add(24*time.Hour)))
	assert.Equal(t, log.Entries(), restored.Entries())
}

func TestLoadZeroCountStaysEmpty(t *testing.T) {
	s, _ := openStore(t)
	require.NoError(t, s.WriteInt(constants.NumItemsStorageKey, 0))

	log := stamps.New(20, model.OverflowDrop)
	require.NoError(t, Load(s, log, now))
	assert.Equal(t, 0, log.Len())
}

func TestLoadCountWithoutData(t *testing.T) {
	s, _ := openStore(t)
	require.NoError(t, s.WriteInt(constants.NumItemsStorageKey, 5))

	log := stamps.New(20, model.OverflowDrop)
	require.NoError(t, Load(s, log, now))
	assert.Equal(t, 0, log.Len())
}

func TestLoadCountAboveCapacity(t *testing.T) {
	s, _ := openStore(t)
	slots := make([]int64, 50)
	for i := range slots {
		slots[i] = now.Unix() + int64(i)
	}
	require.NoError(t, s.WriteData(constants.TimestampStorageKey, stamps.EncodeSlots(slots)))
	require.NoError(t, s.WriteInt(constants.NumItemsStorageKey, 50))

	log := stamps.New(20, model.OverflowDrop)
	require.NoError(t, Load(s, log, now))
	assert.Equal(t, 20, log.Len())
	assert.Equal(t, now.Unix()+30, log.Entries()[0])
}

func TestLoadBadBlob(t *testing.T) {
	s, _ := openStore(t)
	require.NoError(t, s.WriteData(constants.TimestampStorageKey, []byte{1, 2, 3}))
	require.NoError(t, s.WriteInt(constants.NumItemsStorageKey, 1))

	err := Load(s, stamps.New(20, model.OverflowDrop), now)
	assert.ErrorIs(t, err, stamps.ErrBadBlob)
}

func TestLoadTypeMismatch(t *testing.T) {
	s, _ := openStore(t)
	require.NoError(t, s.WriteData(constants.NumItemsStorageKey, []byte{1}))

	err := Load(s, stamps.New(20, model.OverflowDrop), now)
	assert.ErrorIs(t, err, store.ErrTypeMismatch)
}
