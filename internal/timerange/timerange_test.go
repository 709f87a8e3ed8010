package timerange_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/timelog-editor/internal/timecalc"
	"github.com/Tiliavir/timelog-editor/internal/timerange"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) int64 {
	return timecalc.Millis(day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute))
}

// workday is a 09:00–17:00 track on an 800px slider starting at x=100.
func workday() (timerange.Range, timerange.Slider) {
	return timerange.New(at(9, 0), at(17, 0), time.UTC), timerange.Slider{Left: 100, Width: 800}
}

func assertContained(t *testing.T, r timerange.Range) {
	t.Helper()
	assert.LessOrEqual(t, r.TrackStart, r.CurrentStart)
	assert.LessOrEqual(t, r.CurrentStart, r.CurrentEnd)
	assert.LessOrEqual(t, r.CurrentEnd, r.TrackEnd)
}

func TestNewStartsAtTrack(t *testing.T) {
	r, _ := workday()
	assert.Equal(t, r.TrackStart, r.CurrentStart)
	assert.Equal(t, r.TrackEnd, r.CurrentEnd)
	assert.Equal(t, "8h", r.DurationDisplay())
	assert.Equal(t, 0.0, r.StartPercent())
	assert.Equal(t, 100.0, r.EndPercent())
}

func TestDragEndBeyondTrackClampsToTrackEnd(t *testing.T) {
	r, s := workday()
	r.CurrentEnd = at(12, 0)

	// 120% of the slider width.
	require.True(t, r.DragUpdate(timerange.End, s.Left+1.2*s.Width, s))
	assert.Equal(t, at(17, 0), r.CurrentEnd)
	assert.Equal(t, 100.0, r.EndPercent())
}

func TestDragStartBeforeTrackClampsToTrackStart(t *testing.T) {
	r, s := workday()
	r.CurrentStart = at(11, 0)

	require.True(t, r.DragUpdate(timerange.Start, s.Left-300, s))
	assert.Equal(t, at(9, 0), r.CurrentStart)
	assert.Equal(t, 0.0, r.StartPercent())
}

func TestDragStartPastEndCollapsesRange(t *testing.T) {
	r, s := workday()
	r.CurrentEnd = at(12, 0)

	require.True(t, r.DragUpdate(timerange.Start, s.Left+0.9*s.Width, s))
	assert.Equal(t, r.CurrentEnd, r.CurrentStart, "start snaps onto the end handle")
	assert.Equal(t, timerange.DurationPlaceholder, r.DurationDisplay())
}

func TestDragEndBeforeStartCollapsesRange(t *testing.T) {
	r, s := workday()
	r.CurrentStart = at(13, 0)

	require.True(t, r.DragUpdate(timerange.End, s.Left+0.1*s.Width, s))
	assert.Equal(t, at(13, 0), r.CurrentEnd)
}

func TestDragRoundsToWholeMinute(t *testing.T) {
	r, s := workday()

	// 25% of 8h is 2h → 11:00; a few extra pixels land mid-minute.
	require.True(t, r.DragUpdate(timerange.Start, s.Left+200.07, s))
	assert.Equal(t, at(11, 0), r.CurrentStart)
	assert.Zero(t, r.CurrentStart%timecalc.MsPerMinute)

	// One pixel is 36s of track time, which rounds up to the next minute.
	require.True(t, r.DragUpdate(timerange.Start, s.Left+201, s))
	assert.Equal(t, at(11, 1), r.CurrentStart)
}

func TestDragUpdateIsIdempotent(t *testing.T) {
	for _, x := range []float64{-50, 100, 333.3, 500, 899, 1200} {
		for _, edge := range []timerange.Edge{timerange.Start, timerange.End} {
			r, s := workday()
			r.DragUpdate(edge, x, s)
			once := r
			r.DragUpdate(edge, x, s)
			assert.Equal(t, once, r, "edge=%v x=%v", edge, x)
		}
	}
}

func TestDragKeepsRangeContained(t *testing.T) {
	r, s := workday()
	xs := []float64{950, 120, 480, 480, 60, 1000, 700, 300, 899.5, 101}
	for i, x := range xs {
		edge := timerange.Start
		if i%2 == 1 {
			edge = timerange.End
		}
		r.DragUpdate(edge, x, s)
		assertContained(t, r)
	}
}

func TestDragOnEmptyTrackIsNoop(t *testing.T) {
	r := timerange.New(at(9, 0), at(9, 0), time.UTC)
	assert.False(t, r.DragUpdate(timerange.End, 10, timerange.Slider{Width: 100}))

	r, _ = workday()
	assert.False(t, r.DragUpdate(timerange.End, 10, timerange.Slider{Width: 0}))
}

func TestPercentOnZeroTrackDoesNotDivideByZero(t *testing.T) {
	r := timerange.New(at(9, 0), at(9, 0), time.UTC)
	assert.Equal(t, 0.0, r.StartPercent())
	assert.Equal(t, 0.0, r.EndPercent())
}

func TestSetFieldUsesTrackDateAndAllowsInversion(t *testing.T) {
	r, _ := workday()

	r.SetField(timerange.Start, 18, 30)
	assert.Equal(t, at(18, 30), r.CurrentStart)
	assert.Greater(t, r.CurrentStart, r.CurrentEnd, "typed values are not cross-validated")
	assert.Equal(t, timerange.DurationPlaceholder, r.DurationDisplay())

	r.SetField(timerange.End, 42, -3)
	assert.Equal(t, at(23, 0), r.CurrentEnd)
}

func TestSetHourAndMinuteKeepOtherComponent(t *testing.T) {
	r, _ := workday()
	r.SetField(timerange.End, 16, 45)

	r.SetHour(timerange.End, 15)
	assert.Equal(t, timecalc.HM{Hour: 15, Minute: 45}, r.EndHM())

	r.SetMinute(timerange.Start, 20)
	assert.Equal(t, timecalc.HM{Hour: 9, Minute: 20}, r.StartHM())
}

func TestDurationDisplay(t *testing.T) {
	tests := []struct {
		start, end int64
		want       string
	}{
		{at(9, 0), at(9, 0), timerange.DurationPlaceholder},
		{at(10, 0), at(9, 0), timerange.DurationPlaceholder},
		{at(9, 0), at(9, 5), "5m"},
		{at(9, 0), at(11, 0), "2h"},
		{at(9, 0), at(10, 25), "1h 25m"},
	}
	for _, tt := range tests {
		r, _ := workday()
		r.CurrentStart, r.CurrentEnd = tt.start, tt.end
		assert.Equal(t, tt.want, r.DurationDisplay())
		assert.Equal(t, tt.want == timerange.DurationPlaceholder, !r.Valid())
	}
}

func TestSetToNowEndClampsToStartDay(t *testing.T) {
	r, _ := workday()
	r.CurrentStart = at(22, 0)

	now := day.AddDate(0, 0, 1).Add(30 * time.Minute) // 00:30 next day
	r.SetToNow(timerange.End, now)

	want := time.Date(2026, 3, 10, 23, 59, 59, 999_000_000, time.UTC)
	assert.Equal(t, timecalc.Millis(want), r.CurrentEnd)
}

func TestNowForEndOnEarlierDayAlsoClamps(t *testing.T) {
	r, _ := workday()
	yesterday := day.AddDate(0, 0, -1).Add(20 * time.Hour)

	want := time.Date(2026, 3, 10, 23, 59, 59, 999_000_000, time.UTC)
	assert.Equal(t, timecalc.Millis(want), r.NowFor(timerange.End, yesterday))
}

func TestSetToNowSameDay(t *testing.T) {
	r, _ := workday()
	now := day.Add(14*time.Hour + 7*time.Minute + 13*time.Second)

	assert.Equal(t, timecalc.Millis(now), r.NowFor(timerange.End, now))

	// The start edge always takes the wall clock, even on another day.
	tomorrow := now.AddDate(0, 0, 1)
	r.SetToNow(timerange.Start, tomorrow)
	assert.Equal(t, timecalc.Millis(tomorrow), r.CurrentStart)
}

func TestTimeAt(t *testing.T) {
	r, s := workday()

	ms, ok := r.TimeAt(500, s)
	require.True(t, ok)
	assert.Equal(t, at(13, 0), ms)

	ms, ok = r.TimeAt(-50, s)
	require.True(t, ok)
	assert.Equal(t, at(9, 0), ms, "pointer left of the slider pins to the track start")

	_, ok = r.TimeAt(500, timerange.Slider{Left: 100, Width: 0})
	assert.False(t, ok)
}
