package activation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_WeekdayOf(t *testing.T) {
	// 2025-01-04 is a Saturday.
	base := time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC)
	want := []Weekday{Saturday, Sunday, Monday, Tuesday, Wednesday, Thursday, Friday}

	for i, w := range want {
		require.Equal(t, w, WeekdayOf(base.AddDate(0, 0, i)))
	}
}

func Test_ParseWeekday(t *testing.T) {
	d, err := ParseWeekday(" Friday ")
	require.NoError(t, err)
	require.Equal(t, Friday, d)
	require.Equal(t, "friday", d.String())

	_, err = ParseWeekday("someday")
	require.Error(t, err)
}

func Test_Days(t *testing.T) {
	d := NewDays(Saturday, Wednesday)
	require.True(t, d.Any())
	require.True(t, d.Has(Saturday))
	require.False(t, d.Has(Sunday))
	require.False(t, d.Has(Weekday(9)))
	require.Equal(t, []Weekday{Saturday, Wednesday}, d.List())

	require.False(t, Days{}.Any())
	require.Len(t, EveryDay().List(), 7)
}
