// internal/core/domain/timestamp.go
package domain

import (
	"strings"
	"time"
)

const (
	// TimestampLayout is the archive's fixed-width capture time, YYYYMMDDhhmmss.
	TimestampLayout = "20060102150405"

	// DateLayout is the human date-with-time format, dd/mm/YYYY:HH:MM.
	DateLayout = "02/01/2006:15:04"

	// DateOnlyLayout is the human date-only format, dd/mm/YYYY.
	DateOnlyLayout = "02/01/2006"

	// DefaultStartDate is when UA codes were adopted.
	DefaultStartDate = "01/10/2012:00:00"
)

// Timestamp is a 14-digit archive capture time. Because the format is
// fixed-width and zero-padded, string order equals chronological order.
type Timestamp string

// ParseTimestamp validates s as a 14-digit calendar instant.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(TimestampLayout) {
		return "", &MalformedDateError{Input: s, Reason: "timestamp must have 14 digits"}
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", &MalformedDateError{Input: s, Reason: "timestamp must be numeric"}
		}
	}
	if _, err := time.Parse(TimestampLayout, s); err != nil {
		return "", &MalformedDateError{Input: s, Reason: "not a calendar instant"}
	}
	return Timestamp(s), nil
}

// TimestampFromTime renders t (in UTC) as a Timestamp.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp(t.UTC().Format(TimestampLayout))
}

// EncodeDate converts dd/mm/YYYY:HH:MM or dd/mm/YYYY into a Timestamp.
// Seconds are always zero.
func EncodeDate(date string) (Timestamp, error) {
	date = strings.TrimSpace(date)
	for _, layout := range []string{DateLayout, DateOnlyLayout} {
		if t, err := time.Parse(layout, date); err == nil {
			return TimestampFromTime(t), nil
		}
	}
	return "", &MalformedDateError{Input: date, Reason: "expected dd/mm/YYYY:HH:MM or dd/mm/YYYY"}
}

// Date renders the timestamp in the human dd/mm/YYYY:HH:MM format.
// An unparseable timestamp is returned unchanged.
func (ts Timestamp) Date() string {
	t, err := time.Parse(TimestampLayout, string(ts))
	if err != nil {
		return string(ts)
	}
	return t.Format(DateLayout)
}

// Time parses the timestamp as a UTC instant.
func (ts Timestamp) Time() (time.Time, error) {
	t, err := time.Parse(TimestampLayout, string(ts))
	if err != nil {
		return time.Time{}, &MalformedDateError{Input: string(ts), Reason: "not a calendar instant"}
	}
	return t, nil
}

func (ts Timestamp) IsZero() bool { return ts == "" }

func (ts Timestamp) String() string { return string(ts) }

// Compare returns -1, 0 or +1 following chronological order.
func (ts Timestamp) Compare(other Timestamp) int {
	return strings.Compare(string(ts), string(other))
}

func (ts Timestamp) Before(other Timestamp) bool { return ts < other }

func (ts Timestamp) After(other Timestamp) bool { return ts > other }
