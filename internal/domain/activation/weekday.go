package activation

import (
	"fmt"
	"strings"
	"time"
)

// Weekday numbers days in the Saturday-first week used by the tenants'
// calendar: Saturday is 0 and Friday is 6.
type Weekday int

const (
	Saturday Weekday = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
)

var weekdayNames = [...]string{
	"saturday", "sunday", "monday", "tuesday", "wednesday", "thursday", "friday",
}

func (d Weekday) String() string {
	if d < Saturday || d > Friday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}

	return weekdayNames[d]
}

func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range weekdayNames {
		if name == s {
			return Weekday(i), nil
		}
	}

	return 0, fmt.Errorf("unknown weekday %q", s)
}

// WeekdayOf returns the weekday of t in t's own location.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 1) % 7)
}

// Days is one independent flag per weekday, indexed by Weekday.
type Days [7]bool

func NewDays(days ...Weekday) Days {
	var d Days
	for _, day := range days {
		d[day] = true
	}

	return d
}

func EveryDay() Days {
	return Days{true, true, true, true, true, true, true}
}

func (d Days) Has(day Weekday) bool {
	if day < Saturday || day > Friday {
		return false
	}

	return d[day]
}

func (d Days) Any() bool {
	for _, on := range d {
		if on {
			return true
		}
	}

	return false
}

func (d Days) List() []Weekday {
	days := []Weekday{}
	for i, on := range d {
		if on {
			days = append(days, Weekday(i))
		}
	}

	return days
}
