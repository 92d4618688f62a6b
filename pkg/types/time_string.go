package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Supported wire formats for wall-clock times.
// Postgres TIME columns come back as "15:04:05", the API additionally accepts "15:04".
const (
	timeFormatFull  = "15:04:05"
	timeFormatShort = "15:04"
)

// TimeString represents a wall-clock time of day ("14:00:00") without a date or zone.
// It is the single time-of-day currency between the API, the domain and TIME columns.
type TimeString string

// NewTimeString creates a TimeString from the time-of-day part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeFormatFull))
}

// NewTimeStringFromString parses s as "HH:MM:SS" or "HH:MM".
func NewTimeStringFromString(s string) (TimeString, error) {
	if t, err := time.Parse(timeFormatFull, s); err == nil {
		return NewTimeString(t), nil
	}
	if t, err := time.Parse(timeFormatShort, s); err == nil {
		return NewTimeString(t), nil
	}
	return "", fmt.Errorf("invalid time string format: %q", s)
}

// Validate reports whether the value holds a parseable time of day.
func (ts TimeString) Validate() error {
	_, err := ts.toTime()
	return err
}

// IsZero reports whether the value is empty.
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// String returns the canonical "HH:MM:SS" representation.
func (ts TimeString) String() string {
	t, err := ts.toTime()
	if err != nil {
		return string(ts)
	}
	return t.Format(timeFormatFull)
}

// IsBefore reports whether ts is strictly earlier than other.
func (ts TimeString) IsBefore(other TimeString) bool {
	a, err := ts.toTime()
	if err != nil {
		return false
	}
	b, err := other.toTime()
	if err != nil {
		return false
	}
	return a.Before(b)
}

// IsAfter reports whether ts is strictly later than other.
func (ts TimeString) IsAfter(other TimeString) bool {
	a, err := ts.toTime()
	if err != nil {
		return false
	}
	b, err := other.toTime()
	if err != nil {
		return false
	}
	return a.After(b)
}

// AddMinutes returns ts shifted forward by the given number of minutes.
// The result stays within the same day; callers never schedule across midnight.
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	t, err := ts.toTime()
	if err != nil {
		return "", err
	}
	return NewTimeString(t.Add(time.Duration(minutes) * time.Minute)), nil
}

// MinutesUntil returns the number of whole minutes from ts to other.
// Negative when other is earlier than ts.
func (ts TimeString) MinutesUntil(other TimeString) (int, error) {
	a, err := ts.toTime()
	if err != nil {
		return 0, err
	}
	b, err := other.toTime()
	if err != nil {
		return 0, err
	}
	return int(b.Sub(a) / time.Minute), nil
}

// At combines the time of day with a calendar date in the date's location.
func (ts TimeString) At(date time.Time) (time.Time, error) {
	t, err := ts.toTime()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, date.Location()), nil
}

func (ts TimeString) toTime() (time.Time, error) {
	if t, err := time.Parse(timeFormatFull, string(ts)); err == nil {
		return t, nil
	}
	if t, err := time.Parse(timeFormatShort, string(ts)); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time string format: %q", string(ts))
}

// Value implements driver.Valuer for TIME columns.
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return ts.String(), nil
}

// Scan implements sql.Scanner for TIME columns.
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
}

// MarshalJSON emits the canonical "HH:MM:SS" form.
func (ts TimeString) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

// UnmarshalJSON accepts "HH:MM:SS" or "HH:MM".
func (ts *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
