package timecalc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/timelog-editor/internal/timecalc"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m"},
		{20 * time.Second, "0m"},
		{5 * time.Minute, "5m"},
		{time.Hour, "1h"},
		{61 * time.Minute, "1h 1m"},
		{90 * time.Minute, "1h 30m"},
		{8 * time.Hour, "8h"},
		{59*time.Minute + 40*time.Second, "1h"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, timecalc.FormatDuration(tt.d), "FormatDuration(%v)", tt.d)
	}
}

func TestAtHMClampsAndKeepsReferenceDay(t *testing.T) {
	ref := timecalc.Millis(time.Date(2026, 2, 27, 9, 15, 42, 0, time.UTC))

	got := timecalc.FromMillis(timecalc.AtHM(ref, 17, 30, time.UTC), time.UTC)
	assert.Equal(t, time.Date(2026, 2, 27, 17, 30, 0, 0, time.UTC), got)

	got = timecalc.FromMillis(timecalc.AtHM(ref, 99, -4, time.UTC), time.UTC)
	assert.Equal(t, time.Date(2026, 2, 27, 23, 0, 0, 0, time.UTC), got)

	got = timecalc.FromMillis(timecalc.AtHM(ref, -1, 75, time.UTC), time.UTC)
	assert.Equal(t, time.Date(2026, 2, 27, 0, 59, 0, 0, time.UTC), got)
}

func TestToHM(t *testing.T) {
	ms := timecalc.Millis(time.Date(2026, 2, 27, 22, 5, 0, 0, time.UTC))
	assert.Equal(t, timecalc.HM{Hour: 22, Minute: 5}, timecalc.ToHM(ms, time.UTC))
}

func TestEndOfDay(t *testing.T) {
	got := timecalc.EndOfDay(time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 2, 27, 23, 59, 59, 999_000_000, time.UTC), got)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want timecalc.HM
	}{
		{"09:30", timecalc.HM{Hour: 9, Minute: 30}},
		{"7", timecalc.HM{Hour: 7}},
		{"25:61", timecalc.HM{Hour: 23, Minute: 59}},
		{" 00:00 ", timecalc.HM{}},
	}
	for _, tt := range tests {
		got, err := timecalc.ParseClock(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := timecalc.ParseClock("noon")
	assert.Error(t, err)
}

func TestWeekRange(t *testing.T) {
	// 2026-02-27 is a Friday (week 9).
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	monday, sunday := timecalc.WeekRange(fri)

	assert.Equal(t, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), monday)
	assert.Equal(t, time.Date(2026, 3, 1, 23, 59, 59, 999_000_000, time.UTC), sunday)
	assert.Equal(t, "2026-W09", timecalc.ISOWeekLabel(fri))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	assert.True(t, timecalc.SameDay(a, b))
	assert.False(t, timecalc.SameDay(a, c))
}

func TestGenerateIDUnique(t *testing.T) {
	a, b := timecalc.GenerateID(), timecalc.GenerateID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
