package store

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/penwyp/go-stampwatch/internal/core/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "store.json"))
	require.NoError(t, err)
	return s
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.Exists(0))
	assert.False(t, s.Exists(1))
}

func TestIntValues(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ReadInt(0)
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, s.WriteInt(0, 7))
	assert.True(t, s.Exists(0))

	v, err := s.ReadInt(0)
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)

	_, err = s.ReadData(0)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
}

func TestDataValues(t *testing.T) {
	s := newTestStore(t)

	payload := []byte{1, 2, 3}
	require.NoError(t, s.WriteData(1, payload))
	payload[0] = 9 // store keeps its own copy

	got, err := s.ReadData(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	_, err = s.ReadInt(1)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
}

func TestWriteDataTooLarge(t *testing.T) {
	s := newTestStore(t)
	err := s.WriteData(1, make([]byte, constants.MaxDataSize+1))
	assert.True(t, errors.Is(err, ErrValueTooLarge))
	assert.False(t, s.Exists(1))
}

func TestFlushAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.WriteInt(0, 2))
	require.NoError(t, s.WriteData(1, []byte("abcdefgh")))
	require.NoError(t, s.Flush())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	reopened, err := Open(path)
	require.NoError(t, err)

	n, err := reopened.ReadInt(0)
	require.NoError(t, err)
	assert.Equal(t, int32(2), n)

	data, err := reopened.ReadData(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcdefgh"), data)
}

func TestFlushWithoutChangesWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Flush())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.WriteInt(0, 1))
	require.NoError(t, s.Delete(0))
	assert.False(t, s.Exists(0))
	assert.NoError(t, s.Delete(42))
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Open(path)
	assert.True(t, errors.Is(err, ErrCorrupt))
}

func TestOpenUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 9, "values": {}}`), 0644))

	_, err := Open(path)
	assert.True(t, errors.Is(err, ErrUnknownVersion))
}

func TestOpenBadKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 1, "values": {"abc": {"int": 1}}}`), 0644))

	_, err := Open(path)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "bad key"))
}

func TestOpenOversizedValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	blob := base64.StdEncoding.EncodeToString(make([]byte, constants.MaxDataSize+1))
	content := fmt.Sprintf(`{"version": 1, "values": {"1": {"data": %q}}}`, blob)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Open(path)
	assert.True(t, errors.Is(err, ErrValueTooLarge))
}

func TestReloadSeesOtherWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	a, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, a.WriteInt(0, 1))
	require.NoError(t, a.Flush())

	b, err := Open(path)
	require.NoError(t, err)

	// Own write is not a change
	changed, err := a.Reload()
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, b.WriteInt(0, 5))
	require.NoError(t, b.Flush())

	changed, err = a.Reload()
	require.NoError(t, err)
	assert.True(t, changed)

	n, err := a.ReadInt(0)
	require.NoError(t, err)
	assert.Equal(t, int32(5), n)
}

func TestReloadMissingFile(t *testing.T) {
	s := newTestStore(t)
	changed, err := s.Reload()
	assert.NoError(t, err)
	assert.False(t, changed)
}
