package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2026, 3, 10, 17, 45, 12, 999, time.Local)
	got := StartOfDay(ts)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local), got)
}

func TestOneMonthFrom(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{
			name: "mid month",
			from: time.Date(2026, 1, 15, 0, 0, 0, 0, time.Local),
			want: time.Date(2026, 2, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name: "end of january rolls past february",
			from: time.Date(2026, 1, 31, 0, 0, 0, 0, time.Local),
			want: time.Date(2026, 3, 3, 0, 0, 0, 0, time.Local),
		},
		{
			name: "december crosses the year",
			from: time.Date(2026, 12, 5, 0, 0, 0, 0, time.Local),
			want: time.Date(2027, 1, 5, 0, 0, 0, 0, time.Local),
		},
		{
			name: "time of day is dropped",
			from: time.Date(2026, 4, 10, 18, 30, 0, 0, time.Local),
			want: time.Date(2026, 5, 10, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OneMonthFrom(tt.from))
		})
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local), d)

	_, err = ParseDay("10/03/2026")
	assert.Error(t, err)

	_, err = ParseDay("")
	assert.Error(t, err)
}

func TestDayRange(t *testing.T) {
	start, end, err := DayRange("2026-03-10")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, 999*int(time.Millisecond), time.Local), end)

	// The next midnight must fall outside the window.
	nextMidnight := start.AddDate(0, 0, 1)
	assert.True(t, end.Before(nextMidnight))
}

func TestFormatDay(t *testing.T) {
	assert.Equal(t, "2026-03-10", FormatDay(time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)))
}
