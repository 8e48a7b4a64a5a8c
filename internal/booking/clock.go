package booking

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a wall-clock time of day in minutes since midnight.
// It serializes strictly as "HH:MM" (24-hour) everywhere — database,
// JSON, logs — so values round-trip without normalization.
type ClockTime int

// ParseClock parses a strict 24-hour "HH:MM" string. Exactly two
// digits, a colon, two digits; no signs, spaces or other variants a
// scanner would silently normalize.
func ParseClock(s string) (ClockTime, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, Validationf("invalid time %q: expected HH:MM", s)
	}
	for _, i := range [...]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, Validationf("invalid time %q: expected HH:MM", s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, Validationf("invalid time %q: out of range", s)
	}
	return ClockTime(h*60 + m), nil
}

// MustClock is a ParseClock that panics; for constants and tests.
func MustClock(s string) ClockTime {
	t, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t ClockTime) Hour() int   { return int(t) / 60 }
func (t ClockTime) Minute() int { return int(t) % 60 }

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Value implements driver.Valuer; stored as "HH:MM" text so that
// lexicographic comparison in SQL matches chronological order.
func (t ClockTime) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner.
func (t *ClockTime) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		s = v.Format("15:04")
	default:
		return fmt.Errorf("clock time: cannot scan %T", src)
	}
	parsed, err := ParseClock(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// GormDataType keeps the column a plain text time on every dialect.
func (ClockTime) GormDataType() string { return "varchar(5)" }

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return Validationf("invalid time %s: expected a quoted HH:MM string", data)
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseWeekday maps a lowercase English day name to time.Weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return 0, Validationf("invalid day of week %q", s)
}
