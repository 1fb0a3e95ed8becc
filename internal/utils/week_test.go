package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWeekID(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		want string
	}{
		{
			name: "mid-year week",
			date: time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC),
			want: "2025-W07",
		},
		{
			name: "single-digit week is zero padded",
			date: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
			want: "2025-W04",
		},
		{
			name: "early January belongs to the previous ISO year",
			date: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
			want: "2026-W53",
		},
		{
			name: "late December can belong to the next ISO year",
			date: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
			want: "2025-W01",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, WeekID(tc.date))
		})
	}
}

func TestCurrentWeekID(t *testing.T) {
	require.Equal(t, WeekID(time.Now()), CurrentWeekID())
	require.True(t, ValidWeekID(CurrentWeekID()))
}

func TestValidWeekID(t *testing.T) {
	require.True(t, ValidWeekID("2025-W07"))
	require.True(t, ValidWeekID("2025-W53"))
	require.False(t, ValidWeekID("2025-07"))
	require.False(t, ValidWeekID("2025-W7"))
	require.False(t, ValidWeekID("garbage"))
	require.False(t, ValidWeekID(""))
	require.False(t, ValidWeekID("2025-W071"))
}
