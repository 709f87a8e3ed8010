// Package logform holds the state of one "create or edit a time log" form and
// derives the slider, duration and suggestions from it on demand.
//
// A Session is not safe for concurrent use. Each open editor owns its own
// session; the catalog it reads is never modified.
package logform

import (
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/timelog-editor/internal/model"
	"github.com/Tiliavir/timelog-editor/internal/suggest"
	"github.com/Tiliavir/timelog-editor/internal/timecalc"
	"github.com/Tiliavir/timelog-editor/internal/timerange"
)

// DefaultWindow is how far back a fresh log starts when nothing else is known.
const DefaultWindow = time.Hour

// Scenario is how a session was seeded. It is fixed at construction.
type Scenario int

const (
	ScenarioFresh Scenario = iota
	ScenarioGap
	ScenarioEdit
)

func (s Scenario) String() string {
	switch s {
	case ScenarioGap:
		return "gap"
	case ScenarioEdit:
		return "edit"
	default:
		return "fresh"
	}
}

// Gap is an idle window between logs, in epoch milliseconds.
type Gap struct {
	Start int64
	End   int64
}

// Options seed a session. At most one of Existing and Gap is used; Existing
// wins when both are set.
type Options struct {
	Catalog  model.Catalog
	Existing *model.Log
	Gap      *Gap

	// LastLogEnd is a hint for where a fresh log should start. Zero means unknown.
	LastLogEnd int64
	// AllLogs feeds PreviousLogEndTime.
	AllLogs []model.Log
	// DefaultWindow overrides the fresh-log look-back. Zero means DefaultWindow.
	DefaultWindow time.Duration

	Clock  timecalc.Clock
	Images ImageStore
	// OnImageRemoved is called after an attachment of an existing log is deleted.
	OnImageRemoved func(logID, filename string)
	Logger         *zerolog.Logger
}

// Snapshot is the complete editable state of the form.
type Snapshot struct {
	CategoryID        string
	ActivityID        string
	Note              string
	LinkedTaskID      string
	ProgressIncrement int
	// FocusScore is 1–5, or 0 when unset.
	FocusScore int
	ScopeIDs   []string
	Images     []string
	Comments   []model.Comment
	Reactions  []string
	Range      timerange.Range
}

func (s Snapshot) clone() Snapshot {
	s.ScopeIDs = slices.Clone(s.ScopeIDs)
	s.Images = slices.Clone(s.Images)
	s.Comments = slices.Clone(s.Comments)
	s.Reactions = slices.Clone(s.Reactions)
	return s
}

// SaveFunc receives the record built by Save.
type SaveFunc func(model.Log)

// Session is one open log editor.
type Session struct {
	id       string
	scenario Scenario
	existing *model.Log
	snap     Snapshot

	catalog    model.Catalog
	lastLogEnd int64
	allLogs    []model.Log

	clock          timecalc.Clock
	images         ImageStore
	onImageRemoved func(logID, filename string)
	log            zerolog.Logger
}

// New opens a session for one of three scenarios: editing opts.Existing,
// filling opts.Gap, or starting a fresh log ending now.
func New(opts Options) *Session {
	s := &Session{
		catalog:        opts.Catalog,
		lastLogEnd:     opts.LastLogEnd,
		allLogs:        opts.AllLogs,
		clock:          opts.Clock,
		images:         opts.Images,
		onImageRemoved: opts.OnImageRemoved,
		log:            zerolog.Nop(),
	}
	if s.clock == nil {
		s.clock = timecalc.SystemClock{}
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	}
	now := s.clock.Now()
	loc := now.Location()

	switch {
	case opts.Existing != nil:
		l := *opts.Existing
		s.scenario = ScenarioEdit
		s.existing = &l
		s.id = l.ID
		s.snap = Snapshot{
			CategoryID:        l.CategoryID,
			ActivityID:        l.ActivityID,
			Note:              l.Note,
			LinkedTaskID:      l.LinkedTaskID,
			ProgressIncrement: l.ProgressIncrement,
			FocusScore:        l.FocusScore,
			ScopeIDs:          l.ScopeIDs,
			Images:            l.Images,
			Comments:          l.Comments,
			Reactions:         l.Reactions,
			Range:             timerange.New(l.StartTime, l.EndTime, loc),
		}.clone()
	case opts.Gap != nil && opts.Gap.Start != 0 && opts.Gap.End != 0:
		s.scenario = ScenarioGap
		s.snap = s.blank(timerange.New(opts.Gap.Start, opts.Gap.End, loc))
	default:
		window := opts.DefaultWindow
		if window <= 0 {
			window = DefaultWindow
		}
		start := opts.LastLogEnd
		if start == 0 {
			start = timecalc.Millis(now.Add(-window))
		}
		s.scenario = ScenarioFresh
		s.snap = s.blank(timerange.New(start, timecalc.Millis(now), loc))
	}
	if s.id == "" {
		s.id = timecalc.GenerateID()
	}
	return s
}

func (s *Session) blank(r timerange.Range) Snapshot {
	cat, act := s.catalog.DefaultSelection()
	return Snapshot{CategoryID: cat, ActivityID: act, Range: r}
}

// ID is the id the saved log will carry.
func (s *Session) ID() string { return s.id }

// Scenario reports how the session was seeded.
func (s *Session) Scenario() Scenario { return s.scenario }

// Snapshot returns a copy of the current form state.
func (s *Session) Snapshot() Snapshot { return s.snap.clone() }

// Range returns the current time range.
func (s *Session) Range() timerange.Range { return s.snap.Range }

// Catalog returns the reference tables the session was opened with.
func (s *Session) Catalog() model.Catalog { return s.catalog }

// SetTime sets an edge to hour:minute on the track's day. Values are clamped
// but not checked against the other edge.
func (s *Session) SetTime(edge timerange.Edge, hour, minute int) {
	s.snap.Range.SetField(edge, hour, minute)
}

// SetHour changes the hour of an edge.
func (s *Session) SetHour(edge timerange.Edge, hour int) {
	s.snap.Range.SetHour(edge, hour)
}

// SetMinute changes the minute of an edge.
func (s *Session) SetMinute(edge timerange.Edge, minute int) {
	s.snap.Range.SetMinute(edge, minute)
}

// Drag moves a slider handle to the pointer position.
func (s *Session) Drag(edge timerange.Edge, pixelX float64, slider timerange.Slider) bool {
	return s.snap.Range.DragUpdate(edge, pixelX, slider)
}

// SetToNow moves an edge to the current time; see timerange.Range.NowFor.
func (s *Session) SetToNow(edge timerange.Edge) {
	s.snap.Range.SetToNow(edge, s.clock.Now())
}

// PreviousLogEndTime finds where the log before this one ended: the latest end
// among the other logs that end at or before the reference time (current
// start, else track start, else now). A result before the reference day is
// raised to that day's start. Without other logs the last-known-end hint is
// returned.
func (s *Session) PreviousLogEndTime() (int64, bool) {
	hint := func() (int64, bool) { return s.lastLogEnd, s.lastLogEnd != 0 }
	if len(s.allLogs) == 0 {
		return hint()
	}

	r := s.snap.Range
	ref := r.CurrentStart
	if ref == 0 {
		ref = r.TrackStart
	}
	if ref == 0 {
		ref = timecalc.Millis(s.clock.Now())
	}

	var best int64
	found := false
	for _, l := range s.allLogs {
		if s.existing != nil && l.ID == s.existing.ID {
			continue
		}
		if l.EndTime > ref {
			continue
		}
		if !found || l.EndTime > best {
			best, found = l.EndTime, true
		}
	}
	if !found {
		return hint()
	}

	dayStart := timecalc.Millis(timecalc.StartOfDay(timecalc.FromMillis(ref, r.Location())))
	if best < dayStart {
		best = dayStart
	}
	return best, true
}

// SetStartToPreviousEnd moves the start to PreviousLogEndTime, or to now when
// there is none.
func (s *Session) SetStartToPreviousEnd() {
	if prev, ok := s.PreviousLogEndTime(); ok {
		s.snap.Range.Set(timerange.Start, prev)
		return
	}
	s.SetToNow(timerange.Start)
}

// Suggestions recomputes activity and scope suggestions from the current state.
func (s *Session) Suggestions() suggest.Suggestions {
	return suggest.Compute(suggest.Input{
		LinkedTaskID:       s.snap.LinkedTaskID,
		Note:               s.snap.Note,
		SelectedActivityID: s.snap.ActivityID,
		SelectedScopeIDs:   s.snap.ScopeIDs,
	}, s.catalog)
}

// AcceptActivitySuggestion switches to the suggested activity, if any.
func (s *Session) AcceptActivitySuggestion() bool {
	a := s.Suggestions().Activity
	if a == nil {
		return false
	}
	s.UpdateFields(Patch{CategoryID: &a.CategoryID, ActivityID: &a.ID})
	return true
}

// AcceptScopeSuggestion adds a scope unless it is already selected.
func (s *Session) AcceptScopeSuggestion(scopeID string) bool {
	if scopeID == "" || slices.Contains(s.snap.ScopeIDs, scopeID) {
		return false
	}
	s.snap.ScopeIDs = append(slices.Clone(s.snap.ScopeIDs), scopeID)
	return true
}

// Build assembles the record to persist. It returns false when the range is
// empty or inverted. Empty optional fields are left out of the record.
func (s *Session) Build() (model.Log, bool) {
	r := s.snap.Range
	if !r.Valid() {
		return model.Log{}, false
	}
	l := model.Log{
		ID:              s.id,
		CategoryID:      s.snap.CategoryID,
		ActivityID:      s.snap.ActivityID,
		StartTime:       r.CurrentStart,
		EndTime:         r.CurrentEnd,
		DurationSeconds: (r.CurrentEnd - r.CurrentStart) / 1000,
		Note:            strings.TrimSpace(s.snap.Note),
		LinkedTaskID:    s.snap.LinkedTaskID,
		FocusScore:      s.snap.FocusScore,
	}
	if s.snap.LinkedTaskID != "" && s.snap.ProgressIncrement > 0 {
		l.ProgressIncrement = s.snap.ProgressIncrement
	}
	if len(s.snap.ScopeIDs) > 0 {
		l.ScopeIDs = slices.Clone(s.snap.ScopeIDs)
	}
	if len(s.snap.Images) > 0 {
		l.Images = slices.Clone(s.snap.Images)
	}
	if len(s.snap.Comments) > 0 {
		l.Comments = slices.Clone(s.snap.Comments)
	}
	if len(s.snap.Reactions) > 0 {
		l.Reactions = slices.Clone(s.snap.Reactions)
	}
	return l, true
}

// Save builds the record and hands it to fn. An empty or inverted range is
// rejected silently: fn is not called and Save returns false.
func (s *Session) Save(fn SaveFunc) bool {
	l, ok := s.Build()
	if !ok {
		return false
	}
	if fn != nil {
		fn(l)
	}
	return true
}

// Delete hands the id of the edited log to fn. Only sessions opened on an
// existing log can delete.
func (s *Session) Delete(fn func(id string)) bool {
	if s.existing == nil {
		return false
	}
	if fn != nil {
		fn(s.existing.ID)
	}
	return true
}
