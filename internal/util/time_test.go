package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeProviderSetTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{"utc", "UTC", false},
		{"empty defaults to utc", "", false},
		{"local", "Local", false},
		{"iana name", "Asia/Shanghai", false},
		{"invalid", "Not/AZone", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := &TimeProvider{}
			err := tp.SetTimezone(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTimeProviderFormat(t *testing.T) {
	tp := &TimeProvider{}
	require.NoError(t, tp.SetTimezone("UTC"))

	instant := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-15 10:30:00", tp.Format(instant, "2006-01-02 15:04:05"))

	require.NoError(t, tp.SetTimezone("Asia/Shanghai"))
	assert.Equal(t, "2024-01-15 18:30:00", tp.Format(instant, "2006-01-02 15:04:05"))
}

func TestGetTimeProviderDefaultsToUTC(t *testing.T) {
	tp := GetTimeProvider()
	require.NotNil(t, tp)

	instant := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	formatted := tp.Format(instant, "15:04:05")
	assert.NotEmpty(t, formatted)
}
