package logform

import (
	"sort"
	"time"

	"github.com/Tiliavir/timelog-editor/internal/model"
	"github.com/Tiliavir/timelog-editor/internal/timecalc"
)

// DefaultMinIdle is the shortest idle stretch reported as a gap.
const DefaultMinIdle = time.Minute

// FindGaps lists idle windows longer than minIdle on the given day: from
// midnight to the first log, and between consecutive logs. Time after the
// last log is not a gap; it is still open.
func FindGaps(logs []model.Log, day time.Time, minIdle time.Duration) []Gap {
	if minIdle <= 0 {
		minIdle = DefaultMinIdle
	}
	dayStart := timecalc.Millis(timecalc.StartOfDay(day))
	dayEnd := timecalc.Millis(timecalc.EndOfDay(day))

	var dayLogs []model.Log
	for _, l := range logs {
		if l.StartTime < dayEnd && l.EndTime > dayStart {
			dayLogs = append(dayLogs, l)
		}
	}
	if len(dayLogs) == 0 {
		return nil
	}
	sort.SliceStable(dayLogs, func(i, j int) bool { return dayLogs[i].StartTime < dayLogs[j].StartTime })

	threshold := minIdle.Milliseconds()
	var gaps []Gap
	if dayLogs[0].StartTime-dayStart > threshold {
		gaps = append(gaps, Gap{Start: dayStart, End: dayLogs[0].StartTime})
	}
	// covered is the latest end seen so far; overlapping logs never open a gap.
	covered := dayLogs[0].EndTime
	for _, next := range dayLogs[1:] {
		if next.StartTime-covered > threshold {
			gaps = append(gaps, Gap{Start: covered, End: next.StartTime})
		}
		covered = max(covered, next.EndTime)
	}
	return gaps
}

// Duration is the length of the gap.
func (g Gap) Duration() time.Duration {
	return time.Duration(g.End-g.Start) * time.Millisecond
}
