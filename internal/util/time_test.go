package util

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeTimeProvider(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "local timezone", timezone: "Local"},
		{name: "auto means local", timezone: "auto"},
		{name: "UTC timezone", timezone: "UTC"},
		{name: "valid timezone Europe/Berlin", timezone: "Europe/Berlin"},
		{name: "empty timezone defaults to Local", timezone: ""},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitializeTimeProvider(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid timezone")
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, GetTimeProvider().Location())
		})
	}
}

func TestInitializeTimeProviderKeepsPreviousOnError(t *testing.T) {
	require.NoError(t, InitializeTimeProvider("UTC"))
	require.Error(t, InitializeTimeProvider("Nowhere/Nothing"))
	assert.Equal(t, "UTC", GetTimeProvider().Location().String())
}

func TestTimeProviderClock(t *testing.T) {
	require.NoError(t, InitializeTimeProvider("UTC"))
	tp := GetTimeProvider()

	fixed := time.Date(2024, 7, 3, 14, 5, 9, 0, time.FixedZone("X", 3600))
	tp.SetClock(func() time.Time { return fixed })
	defer tp.SetClock(nil)

	assert.Equal(t, fixed.Unix(), tp.Now().Unix())
	assert.Equal(t, time.UTC, tp.Now().Location())
	assert.Equal(t, "13:05:09", tp.Format(fixed, "15:04:05"))
}

func TestTimeProviderConcurrency(t *testing.T) {
	require.NoError(t, InitializeTimeProvider("UTC"))
	tp := GetTimeProvider()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = tp.SetTimezone("UTC")
			}
			_ = tp.Now()
			_ = tp.Location()
		}(i)
	}
	wg.Wait()
}
