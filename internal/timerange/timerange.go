// Package timerange models the editable span of a time log: a fixed track
// window and a user-adjustable current range inside it.
package timerange

import (
	"math"
	"time"

	"github.com/Tiliavir/timelog-editor/internal/timecalc"
)

// DurationPlaceholder is rendered instead of a zero or negative duration.
const DurationPlaceholder = "---"

// Edge selects one end of the range.
type Edge int

const (
	Start Edge = iota
	End
)

func (e Edge) String() string {
	if e == End {
		return "end"
	}
	return "start"
}

// Slider is the on-screen geometry of the dual-handle slider.
type Slider struct {
	Left  float64
	Width float64
}

// Range holds epoch-millisecond bounds. TrackStart and TrackEnd are fixed for
// the lifetime of an editing session; CurrentStart and CurrentEnd move.
//
// Drag updates keep TrackStart <= CurrentStart <= CurrentEnd <= TrackEnd.
// Numeric field edits do not: typing may leave CurrentStart after CurrentEnd
// until the user fixes it, and saving rejects such a range.
type Range struct {
	TrackStart   int64
	TrackEnd     int64
	CurrentStart int64
	CurrentEnd   int64

	loc *time.Location
}

// New returns a range whose current span equals the track window.
func New(trackStart, trackEnd int64, loc *time.Location) Range {
	if loc == nil {
		loc = time.Local
	}
	return Range{
		TrackStart:   trackStart,
		TrackEnd:     trackEnd,
		CurrentStart: trackStart,
		CurrentEnd:   trackEnd,
		loc:          loc,
	}
}

// Location is the zone calendar days are computed in.
func (r Range) Location() *time.Location {
	if r.loc == nil {
		return time.Local
	}
	return r.loc
}

// Get returns the current value of the given edge.
func (r Range) Get(edge Edge) int64 {
	if edge == End {
		return r.CurrentEnd
	}
	return r.CurrentStart
}

func (r *Range) set(edge Edge, ms int64) {
	if edge == End {
		r.CurrentEnd = ms
	} else {
		r.CurrentStart = ms
	}
}

// Set replaces an edge without any clamping.
func (r *Range) Set(edge Edge, ms int64) {
	r.set(edge, ms)
}

// SetField sets an edge to hour:minute on TrackStart's calendar day.
func (r *Range) SetField(edge Edge, hour, minute int) {
	r.set(edge, timecalc.AtHM(r.TrackStart, hour, minute, r.Location()))
}

// SetHour changes only the hour of an edge, keeping its minute.
func (r *Range) SetHour(edge Edge, hour int) {
	hm := timecalc.ToHM(r.Get(edge), r.Location())
	r.SetField(edge, hour, hm.Minute)
}

// SetMinute changes only the minute of an edge, keeping its hour.
func (r *Range) SetMinute(edge Edge, minute int) {
	hm := timecalc.ToHM(r.Get(edge), r.Location())
	r.SetField(edge, hm.Hour, minute)
}

// TimeAt maps a pointer position onto the track, rounded to the nearest whole
// minute. ok is false when the track or the slider has no width.
func (r Range) TimeAt(pixelX float64, s Slider) (ms int64, ok bool) {
	span := r.TrackEnd - r.TrackStart
	if span <= 0 || s.Width <= 0 {
		return 0, false
	}
	pct := math.Min(100, math.Max(0, (pixelX-s.Left)/s.Width*100))
	t := float64(r.TrackStart) + pct/100*float64(span)
	minutes := math.Floor(t/float64(timecalc.MsPerMinute) + 0.5)
	return int64(minutes) * timecalc.MsPerMinute, true
}

// DragUpdate moves the active handle to the pointer position. A start handle
// dragged past the end handle snaps onto it, and vice versa; neither handle
// leaves the track. It reports whether the range was updated.
func (r *Range) DragUpdate(edge Edge, pixelX float64, s Slider) bool {
	t, ok := r.TimeAt(pixelX, s)
	if !ok {
		return false
	}
	switch edge {
	case Start:
		switch {
		case t > r.CurrentEnd:
			t = r.CurrentEnd
		case t < r.TrackStart:
			t = r.TrackStart
		}
		r.CurrentStart = t
	case End:
		switch {
		case t < r.CurrentStart:
			t = r.CurrentStart
		case t > r.TrackEnd:
			t = r.TrackEnd
		}
		r.CurrentEnd = t
	}
	return true
}

func (r Range) percent(ms int64) float64 {
	span := r.TrackEnd - r.TrackStart
	if span <= 0 {
		span = 1
	}
	p := float64(ms-r.TrackStart) / float64(span) * 100
	return math.Min(100, math.Max(0, p))
}

// StartPercent is the start handle's position on the slider, 0–100.
func (r Range) StartPercent() float64 { return r.percent(r.CurrentStart) }

// EndPercent is the end handle's position on the slider, 0–100.
func (r Range) EndPercent() float64 { return r.percent(r.CurrentEnd) }

// Duration is CurrentEnd − CurrentStart; it may be zero or negative.
func (r Range) Duration() time.Duration {
	return time.Duration(r.CurrentEnd-r.CurrentStart) * time.Millisecond
}

// Valid reports whether the range has a positive duration.
func (r Range) Valid() bool {
	return r.CurrentEnd > r.CurrentStart
}

// DurationDisplay renders the duration, or DurationPlaceholder when the range
// is empty or inverted.
func (r Range) DurationDisplay() string {
	if !r.Valid() {
		return DurationPlaceholder
	}
	return timecalc.FormatDuration(r.Duration())
}

// StartHM returns the hour and minute of CurrentStart.
func (r Range) StartHM() timecalc.HM { return timecalc.ToHM(r.CurrentStart, r.Location()) }

// EndHM returns the hour and minute of CurrentEnd.
func (r Range) EndHM() timecalc.HM { return timecalc.ToHM(r.CurrentEnd, r.Location()) }

// NowFor returns the value "set to now" should give an edge. When now falls on
// a different calendar day than CurrentStart, the end edge stops at
// 23:59:59.999 of the start's day instead.
func (r Range) NowFor(edge Edge, now time.Time) int64 {
	if edge == End {
		start := timecalc.FromMillis(r.CurrentStart, r.Location())
		if !timecalc.SameDay(start, now.In(r.Location())) {
			return timecalc.Millis(timecalc.EndOfDay(start))
		}
	}
	return timecalc.Millis(now)
}

// SetToNow applies NowFor to the edge.
func (r *Range) SetToNow(edge Edge, now time.Time) {
	r.set(edge, r.NowFor(edge, now))
}
