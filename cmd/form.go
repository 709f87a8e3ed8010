package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/timelog-editor/internal/logform"
	"github.com/Tiliavir/timelog-editor/internal/logging"
	"github.com/Tiliavir/timelog-editor/internal/model"
	"github.com/Tiliavir/timelog-editor/internal/storage"
	"github.com/Tiliavir/timelog-editor/internal/timecalc"
	"github.com/Tiliavir/timelog-editor/internal/timerange"
)

// errInvalidRange is reported when a log would end at or before its start.
var errInvalidRange = errors.New("end time must be after start time; nothing saved")

// pctSlider maps --start-pct/--end-pct onto the drag projection: a 100 px
// track starting at 0, so the pixel position is the percentage.
var pctSlider = timerange.Slider{Left: 0, Width: 100}

// formFlags are the editor inputs shared by add, fill and edit.
type formFlags struct {
	start, end       string
	startPct, endPct float64
	startPrev        bool
	endNow           bool

	category string
	activity string
	note     string
	task     string
	scopes   string
	focus    int
	progress int

	comments     []string
	reactions    []string
	images       []string
	removeImages []string

	accept bool
	dryRun bool
}

func (f *formFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.start, "start", "", "Start time HH:MM on the log's day")
	fs.StringVar(&f.end, "end", "", "End time HH:MM on the log's day")
	fs.Float64Var(&f.startPct, "start-pct", 0, "Move the start handle to this percentage of the window")
	fs.Float64Var(&f.endPct, "end-pct", 0, "Move the end handle to this percentage of the window")
	fs.BoolVar(&f.startPrev, "start-prev", false, "Start where the previous log ended")
	fs.BoolVar(&f.endNow, "end-now", false, "End now")
	fs.StringVar(&f.category, "category", "", "Category id")
	fs.StringVar(&f.activity, "activity", "", "Activity id (category is looked up when omitted)")
	fs.StringVar(&f.note, "note", "", "Free-text note")
	fs.StringVar(&f.task, "task", "", "Linked task id")
	fs.StringVar(&f.scopes, "scopes", "", "Comma-separated scope ids (replaces the selection)")
	fs.IntVar(&f.focus, "focus", 0, "Focus score 1-5")
	fs.IntVar(&f.progress, "progress", 0, "Progress increment for the linked task")
	fs.StringArrayVar(&f.comments, "comment", nil, "Add a comment (repeatable)")
	fs.StringArrayVar(&f.reactions, "react", nil, "Toggle a reaction (repeatable)")
	fs.StringArrayVar(&f.images, "image", nil, "Attach an image file (repeatable)")
	fs.StringArrayVar(&f.removeImages, "remove-image", nil, "Remove an attachment by filename (repeatable)")
	fs.BoolVar(&f.accept, "accept", false, "Apply the activity and scope suggestions")
	fs.BoolVar(&f.dryRun, "dry-run", false, "Show the result without saving")
}

// apply feeds the flags into s in the order an editor would: times, then
// selections and free text, then suggestions, then annotations.
func (f *formFlags) apply(cmd *cobra.Command, s *logform.Session) error {
	changed := cmd.Flags().Changed

	for _, t := range []struct {
		edge timerange.Edge
		val  string
	}{{timerange.Start, f.start}, {timerange.End, f.end}} {
		if t.val == "" {
			continue
		}
		hm, err := timecalc.ParseClock(t.val)
		if err != nil {
			return err
		}
		s.SetTime(t.edge, hm.Hour, hm.Minute)
	}
	if changed("start-pct") {
		s.Drag(timerange.Start, f.startPct, pctSlider)
	}
	if changed("end-pct") {
		s.Drag(timerange.End, f.endPct, pctSlider)
	}
	if f.startPrev {
		s.SetStartToPreviousEnd()
	}
	if f.endNow {
		s.SetToNow(timerange.End)
	}

	var p logform.Patch
	if f.activity != "" {
		cat := f.category
		if cat == "" {
			_, found, ok := s.Catalog().FindActivity(f.activity)
			if !ok {
				return fmt.Errorf("unknown activity %q", f.activity)
			}
			cat = found
		}
		p.CategoryID, p.ActivityID = &cat, &f.activity
	} else if f.category != "" {
		c, ok := s.Catalog().Category(f.category)
		if !ok {
			return fmt.Errorf("unknown category %q", f.category)
		}
		act := ""
		if len(c.Activities) > 0 {
			act = c.Activities[0].ID
		}
		p.CategoryID, p.ActivityID = &f.category, &act
	}
	if changed("note") {
		p.Note = &f.note
	}
	if changed("task") {
		p.LinkedTaskID = &f.task
	}
	if changed("scopes") {
		ids := splitList(f.scopes)
		p.ScopeIDs = &ids
	}
	if changed("focus") {
		p.FocusScore = &f.focus
	}
	if changed("progress") {
		p.ProgressIncrement = &f.progress
	}
	s.UpdateFields(p)

	if f.accept {
		s.AcceptActivitySuggestion()
		// Scope suggestions depend on the activity, so compute them after it.
		for _, sc := range s.Suggestions().Scopes {
			s.AcceptScopeSuggestion(sc.ID)
		}
	}

	for _, c := range f.comments {
		s.AddComment(c)
	}
	for _, r := range f.reactions {
		s.ToggleReaction(r)
	}

	return nil
}

// applyAttachments stores new images and erases removed ones. It must only run
// once the form is known to be saved.
func (f *formFlags) applyAttachments(ctx context.Context, s *logform.Session) error {
	for _, name := range f.removeImages {
		if err := s.RemoveImage(ctx, name); err != nil {
			return err
		}
	}
	for _, path := range f.images {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading image %s: %w", path, err)
		}
		if _, err := s.AddImage(ctx, filepath.Base(path), data); err != nil {
			return err
		}
	}
	return nil
}

// splitList splits a comma-separated flag, trimming blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// sessionEnv carries what every form command loads before opening a session.
type sessionEnv struct {
	base    string
	catalog model.Catalog
	images  *storage.ImageStore
}

func loadSessionEnv() sessionEnv {
	base := baseDir()
	catalog, err := storage.LoadCatalog(base)
	if err != nil {
		storageFailure(err)
	}
	return sessionEnv{base: base, catalog: catalog, images: storage.NewImageStore(base)}
}

// options returns the session options shared by every scenario.
func (e sessionEnv) options(allLogs []model.Log) logform.Options {
	return logform.Options{
		Catalog:       e.catalog,
		AllLogs:       allLogs,
		DefaultWindow: cfg.DefaultWindow(),
		Clock:         clock,
		Images:        e.images,
		Logger:        logging.Logger(),
		OnImageRemoved: func(logID, filename string) {
			log.Debug().Str("log", logID).Str("image", filename).Msg("attachment removed")
		},
	}
}

// finishForm applies flags, prints the result and saves it unless this is a
// dry run. previousDay is the file an edited log was loaded from.
func finishForm(cmd *cobra.Command, f *formFlags, env sessionEnv, s *logform.Session, previousDay *time.Time) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := f.apply(cmd, s); err != nil {
		usageFailure(err)
	}

	err := commitForm(ctx, f, env, s, previousDay)
	printForm(color.Output, s.Snapshot(), env.catalog)
	switch {
	case errors.Is(err, errInvalidRange), errors.Is(err, fs.ErrNotExist):
		usageFailure(err)
	case err != nil:
		storageFailure(err)
	case f.dryRun:
		fmt.Fprintln(color.Output, color.New(color.Faint).Sprint("(dry run – not saved)"))
	default:
		fmt.Fprintf(color.Output, "Saved %s log %s\n", s.Scenario(), color.New(color.Bold).Sprint(s.ID()))
	}
}

// commitForm checks the range, applies attachment changes and persists the
// log. An invalid range or a dry run leaves the data directory untouched.
// A log moved to another start day is written to its new day before it is
// removed from previousDay.
func commitForm(ctx context.Context, f *formFlags, env sessionEnv, s *logform.Session, previousDay *time.Time) error {
	if !s.Range().Valid() {
		return errInvalidRange
	}
	if f.dryRun {
		if len(f.images) > 0 || len(f.removeImages) > 0 {
			fmt.Fprintln(os.Stderr, "Dry run: attachments left untouched")
		}
		return nil
	}
	if err := f.applyAttachments(ctx, s); err != nil {
		return err
	}

	loc := s.Range().Location()
	var saveErr error
	s.Save(func(l model.Log) {
		if saveErr = storage.UpsertLog(env.base, l, loc); saveErr != nil {
			return
		}
		if previousDay != nil && !storage.DayOf(l, loc).Equal(*previousDay) {
			saveErr = storage.DeleteLog(env.base, *previousDay, l.ID)
		}
	})
	return saveErr
}
