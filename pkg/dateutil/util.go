package dateutil

import (
	"sync"
	"time"
	_ "time/tzdata"
)

// ReferenceTimezone is the zone every hour-of-day comparison is made in,
// whatever the server or client locale is.
const ReferenceTimezone = "Asia/Riyadh"

var (
	referenceOnce     sync.Once
	referenceLocation *time.Location
)

// ReferenceLocation returns the loaded ReferenceTimezone. The zone database
// is embedded, so loading cannot fail at runtime.
func ReferenceLocation() *time.Location {
	referenceOnce.Do(func() {
		loc, err := time.LoadLocation(ReferenceTimezone)
		if err != nil {
			panic(err)
		}

		referenceLocation = loc
	})

	return referenceLocation
}

// AtHour returns hour:00:00 on the calendar date of t in loc.
func AtHour(t time.Time, loc *time.Location, hour int) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
}

// TopOfHour returns the start of the wall-clock hour containing t in loc.
func TopOfHour(t time.Time, loc *time.Location) time.Time {
	return AtHour(t, loc, t.In(loc).Hour())
}

// SameHour reports whether a and b fall in the same wall-clock hour of the
// same calendar day in loc.
func SameHour(a, b time.Time, loc *time.Location) bool {
	return TopOfHour(a, loc).Equal(TopOfHour(b, loc))
}
