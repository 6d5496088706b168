package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_ReferenceLocation(t *testing.T) {
	loc := ReferenceLocation()
	require.Equal(t, ReferenceTimezone, loc.String())

	// Riyadh has no daylight saving and sits at UTC+3.
	noon := time.Date(2025, 1, 4, 9, 0, 0, 0, time.UTC).In(loc)
	require.Equal(t, 12, noon.Hour())
}

func Test_AtHour(t *testing.T) {
	loc := ReferenceLocation()

	// 22:30 UTC on Friday is 01:30 on Saturday in Riyadh.
	at := time.Date(2025, 1, 3, 22, 30, 0, 0, time.UTC)
	got := AtHour(at, loc, 17)
	require.True(t, got.Equal(time.Date(2025, 1, 4, 17, 0, 0, 0, loc)))
	require.Equal(t, time.Saturday, got.Weekday())
}

func Test_TopOfHour(t *testing.T) {
	loc := ReferenceLocation()
	at := time.Date(2025, 1, 4, 9, 41, 12, 500, loc)
	require.True(t, TopOfHour(at, loc).Equal(time.Date(2025, 1, 4, 9, 0, 0, 0, loc)))
}

func Test_SameHour(t *testing.T) {
	loc := ReferenceLocation()
	base := time.Date(2025, 1, 4, 9, 0, 0, 0, loc)

	require.True(t, SameHour(base, base.Add(59*time.Minute), loc))
	require.False(t, SameHour(base, base.Add(time.Hour), loc))
	require.False(t, SameHour(base, base.AddDate(0, 0, 1), loc))
}
