package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DayLayout is the wire format for calendar days.
const DayLayout = "2006-01-02"

// Day is a calendar day counted from 1970-01-01. It carries no time of day
// and no zone, so stays compare as plain integers.
type Day int64

// DayOf takes the calendar date of t as seen in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid date %q; expected YYYY-MM-DD", s)
	}
	return DayOf(t), nil
}

// MustParseDay is ParseDay for literals.
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns UTC midnight of the day.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*86400, 0).UTC()
}

func (d Day) String() string {
	return d.Time().Format(DayLayout)
}

func (d Day) AddDays(n int) Day {
	return d + Day(n)
}

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalYAML lets catalog files spell days as YYYY-MM-DD.
func (d *Day) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Overlaps reports whether the half-open ranges [aIn, aOut) and [bIn, bOut)
// share at least one night. Touching ranges do not overlap.
func Overlaps(aIn, aOut, bIn, bOut Day) bool {
	return aIn < bOut && aOut > bIn
}
