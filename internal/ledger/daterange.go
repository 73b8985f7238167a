package ledger

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultBusinessOffsetMinutes is UTC+05:30.
const DefaultBusinessOffsetMinutes = 330

var calendarDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// BusinessCalendar turns caller supplied dates into absolute instants using a
// fixed business-day offset, independent of the server's local zone.
type BusinessCalendar struct {
	loc *time.Location
}

// NewBusinessCalendar creates a calendar whose days start at 00:00 in a zone
// offsetMinutes east of UTC.
func NewBusinessCalendar(offsetMinutes int) BusinessCalendar {
	name := fmt.Sprintf("UTC%+03d:%02d", offsetMinutes/60, abs(offsetMinutes%60))
	return BusinessCalendar{loc: time.FixedZone(name, offsetMinutes*60)}
}

// Location is the business-day zone.
func (c BusinessCalendar) Location() *time.Location {
	if c.loc == nil {
		return NewBusinessCalendar(DefaultBusinessOffsetMinutes).loc
	}
	return c.loc
}

// StartOfDay parses value. A bare YYYY-MM-DD resolves to 00:00:00.000 local
// business time; anything else must be RFC 3339 and is taken as absolute.
// An empty value yields nil.
func (c BusinessCalendar) StartOfDay(value string) (*time.Time, error) {
	return c.parse(value, false)
}

// EndOfDay parses value like StartOfDay, but a bare date resolves to
// 23:59:59.999 local business time.
func (c BusinessCalendar) EndOfDay(value string) (*time.Time, error) {
	return c.parse(value, true)
}

// Day returns the business calendar date of t.
func (c BusinessCalendar) Day(t time.Time) time.Time {
	return t.In(c.Location())
}

func (c BusinessCalendar) parse(value string, endOfDay bool) (*time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil, nil
	}
	if calendarDate.MatchString(s) {
		day, err := time.ParseInLocation("2006-01-02", s, c.Location())
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", s, err)
		}
		if endOfDay {
			day = day.Add(24*time.Hour - time.Millisecond)
		}
		t := day.UTC()
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: must be YYYY-MM-DD or RFC 3339", s)
	}
	t = t.UTC()
	return &t, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
