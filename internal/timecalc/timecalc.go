package timecalc

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MsPerMinute is the number of epoch milliseconds in one minute.
const MsPerMinute int64 = 60_000

// Clock supplies the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. Used by tests and dry runs.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.T }

// HM is an hour/minute pair within a day.
type HM struct {
	Hour   int
	Minute int
}

// GenerateID creates a unique identifier for logs and comments.
func GenerateID() string {
	return uuid.NewString()
}

// Millis converts t to epoch milliseconds.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts epoch milliseconds to a time in loc. A nil loc means time.Local.
func FromMillis(ms int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc)
}

// ToHM returns the hour and minute of the timestamp in loc.
func ToHM(ms int64, loc *time.Location) HM {
	t := FromMillis(ms, loc)
	return HM{Hour: t.Hour(), Minute: t.Minute()}
}

// AtHM builds a timestamp on the calendar day of ref with the given hour and
// minute. Hour is clamped to 0–23 and minute to 0–59; seconds are zeroed.
func AtHM(ref int64, hour, minute int, loc *time.Location) int64 {
	day := FromMillis(ref, loc)
	hour = clamp(hour, 0, 23)
	minute = clamp(minute, 0, 59)
	return Millis(time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()))
}

// StartOfDay returns 00:00:00.000 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatDuration formats a duration as "1h 40m", "2h" or "45m".
// Sub-minute remainders are rounded to the nearest minute.
func FormatDuration(d time.Duration) string {
	mins := int64(d.Round(time.Minute) / time.Minute)
	h := mins / 60
	m := mins % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// FormatClock renders a timestamp as HH:MM in loc.
func FormatClock(ms int64, loc *time.Location) string {
	return FromMillis(ms, loc).Format("15:04")
}

// ParseClock parses "HH:MM" (or a bare hour "HH"). Out-of-range components
// are clamped rather than rejected; only non-numeric input is an error.
func ParseClock(s string) (HM, error) {
	hs, ms, _ := strings.Cut(strings.TrimSpace(s), ":")
	h, err := strconv.Atoi(hs)
	if err != nil {
		return HM{}, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	m := 0
	if ms != "" {
		if m, err = strconv.Atoi(ms); err != nil {
			return HM{}, fmt.Errorf("invalid minute in %q: %w", s, err)
		}
	}
	return HM{Hour: clamp(h, 0, 23), Minute: clamp(m, 0, 59)}, nil
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := StartOfDay(t.AddDate(0, 0, -(wd - 1)))
	sunday := EndOfDay(monday.AddDate(0, 0, 6))
	return monday, sunday
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
