package stamps

import (
	"testing"
	"time"

	"github.com/penwyp/go-stampwatch/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTitle(t *testing.T) {
	assert.Equal(t, " 3.07. 14:05:09", FormatTitle(base, model.Clock24h, time.UTC))
	assert.Equal(t, "07/ 3 02:05:09 PM", FormatTitle(base, model.Clock12h, time.UTC))

	morning := time.Date(2024, 12, 25, 9, 0, 1, 0, time.UTC)
	assert.Equal(t, "25.12. 09:00:01", FormatTitle(morning, model.Clock24h, time.UTC))
	assert.Equal(t, "12/25 09:00:01 AM", FormatTitle(morning, model.Clock12h, time.UTC))
}

func TestFormatTitleUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	assert.Equal(t, " 3.07. 16:05:09", FormatTitle(base, model.Clock24h, loc))
}

func TestFormatSubtitle(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  int64
		position int
		want     string
	}{
		{"zero", 0, 2, "0h 0m 0s     [2/20]"},
		{"seconds", 42, 3, "0h 0m 42s     [3/20]"},
		{"mixed", 3725, 4, "1h 2m 5s     [4/20]"},
		{"hours wrap at a day", 25 * 3600, 5, "1h 0m 0s     [5/20]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSubtitle(tt.elapsed, tt.position, 20))
		})
	}
}

func TestRowsNewestFirst(t *testing.T) {
	l := New(20, model.OverflowDrop)
	require.NoError(t, l.Create(base))
	require.NoError(t, l.Create(base.Add(65*time.Second)))
	require.NoError(t, l.Create(base.Add(2*time.Hour)))

	rows := l.Rows(model.Clock24h, time.UTC)
	require.Len(t, rows, 3)

	assert.Equal(t, 2, rows[0].Index)
	assert.Equal(t, " 3.07. 16:05:09", rows[0].Title)
	assert.Equal(t, "1h 58m 55s     [3/20]", rows[0].Subtitle)
	assert.Equal(t, int64(7135), rows[0].Elapsed)

	assert.Equal(t, "0h 1m 5s     [2/20]", rows[1].Subtitle)

	assert.Equal(t, 0, rows[2].Index)
	assert.Equal(t, InitialSubtitle, rows[2].Subtitle)
	assert.True(t, rows[2].Initial)
	assert.Equal(t, int64(0), rows[2].Elapsed)
}

func TestRowsEmpty(t *testing.T) {
	l := New(20, model.OverflowDrop)
	assert.Empty(t, l.Rows(model.Clock24h, time.UTC))
}
