package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/Tiliavir/timelog-editor/internal/logform"
	"github.com/Tiliavir/timelog-editor/internal/model"
	"github.com/Tiliavir/timelog-editor/internal/suggest"
	"github.com/Tiliavir/timelog-editor/internal/timecalc"
)

// printForm renders the editor state as a two-column table.
func printForm(w io.Writer, snap logform.Snapshot, c model.Catalog) {
	r := snap.Range
	loc := r.Location()
	label := color.New(color.Bold)

	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(label.Sprint("Window"), fmt.Sprintf("%s–%s", timecalc.FormatClock(r.TrackStart, loc), timecalc.FormatClock(r.TrackEnd, loc)))
	tbl.AddRow(label.Sprint("Time"), fmt.Sprintf("%s–%s  (%s)", timecalc.FormatClock(r.CurrentStart, loc), timecalc.FormatClock(r.CurrentEnd, loc), r.DurationDisplay()))
	tbl.AddRow(label.Sprint("Slider"), fmt.Sprintf("%.0f%% – %.0f%%", r.StartPercent(), r.EndPercent()))
	tbl.AddRow(label.Sprint("Activity"), activityLabel(c, snap.CategoryID, snap.ActivityID))
	if snap.Note != "" {
		tbl.AddRow(label.Sprint("Note"), snap.Note)
	}
	if snap.LinkedTaskID != "" {
		task := snap.LinkedTaskID
		if t, ok := c.Task(task); ok {
			task = t.Title
		}
		if snap.ProgressIncrement > 0 {
			task += fmt.Sprintf(" (+%d)", snap.ProgressIncrement)
		}
		tbl.AddRow(label.Sprint("Task"), task)
	}
	if len(snap.ScopeIDs) > 0 {
		tbl.AddRow(label.Sprint("Scopes"), scopeNames(c, snap.ScopeIDs))
	}
	if snap.FocusScore > 0 {
		tbl.AddRow(label.Sprint("Focus"), strings.Repeat("●", snap.FocusScore)+strings.Repeat("○", 5-snap.FocusScore))
	}
	for _, cm := range snap.Comments {
		tbl.AddRow(label.Sprint("Comment"), cm.Content)
	}
	if len(snap.Reactions) > 0 {
		tbl.AddRow(label.Sprint("Reactions"), strings.Join(snap.Reactions, " "))
	}
	if len(snap.Images) > 0 {
		tbl.AddRow(label.Sprint("Images"), strings.Join(snap.Images, ", "))
	}
	_, _ = fmt.Fprintln(w, tbl)
}

// printLogs groups logs by the day they start on and prints one table per day.
func printLogs(w io.Writer, logs []model.Log, c model.Catalog, loc *time.Location) {
	if len(logs) == 0 {
		_, _ = fmt.Fprintln(w, "No logs found.")
		return
	}
	heading := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)

	var tbl *uitable.Table
	var currentDay string
	flush := func() {
		if tbl != nil {
			_, _ = fmt.Fprintln(w, tbl)
		}
	}
	for _, l := range logs {
		day := timecalc.FromMillis(l.StartTime, loc).Format("2006-01-02")
		if day != currentDay {
			flush()
			_, _ = fmt.Fprintln(w, heading.Sprint(day))
			tbl = uitable.New()
			tbl.MaxColWidth = 50
			currentDay = day
		}
		tbl.AddRow(
			fmt.Sprintf("%s–%s", timecalc.FormatClock(l.StartTime, loc), timecalc.FormatClock(l.EndTime, loc)),
			activityLabel(c, l.CategoryID, l.ActivityID),
			timecalc.FormatDuration(time.Duration(l.DurationSeconds)*time.Second),
			l.Note,
			faint.Sprint(l.ID),
		)
	}
	flush()
}

// printSuggestions lists what --accept would apply.
func printSuggestions(w io.Writer, sg suggest.Suggestions) {
	if sg.Activity == nil && len(sg.Scopes) == 0 {
		_, _ = fmt.Fprintln(w, "No suggestions.")
		return
	}
	reason := color.New(color.FgHiYellow, color.Italic)
	tbl := uitable.New()
	if a := sg.Activity; a != nil {
		why := string(a.Reason)
		if a.MatchedKeyword != "" {
			why += fmt.Sprintf(" %q", a.MatchedKeyword)
		}
		tbl.AddRow("activity", a.CategoryID+"/"+a.ID, a.Name, reason.Sprint(why))
	}
	for _, sc := range sg.Scopes {
		tbl.AddRow("scope", sc.ID, sc.Name, reason.Sprint(string(sc.Reason)))
	}
	_, _ = fmt.Fprintln(w, tbl)
}

// printGaps lists idle windows with their length.
func printGaps(w io.Writer, gaps []logform.Gap, loc *time.Location) {
	if len(gaps) == 0 {
		_, _ = fmt.Fprintln(w, "No gaps found.")
		return
	}
	tbl := uitable.New()
	for i, g := range gaps {
		tbl.AddRow(
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%s–%s", timecalc.FormatClock(g.Start, loc), timecalc.FormatClock(g.End, loc)),
			timecalc.FormatDuration(g.Duration()),
		)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

// activityLabel renders "Category / Activity", falling back to ids for
// entries missing from the catalog.
func activityLabel(c model.Catalog, categoryID, activityID string) string {
	cat := categoryID
	if cc, ok := c.Category(categoryID); ok {
		cat = cc.Name
	}
	act := activityID
	if a, ok := c.Activity(categoryID, activityID); ok {
		act = a.Name
	}
	if cat == "" && act == "" {
		return "–"
	}
	return cat + " / " + act
}

func scopeNames(c model.Catalog, ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if sc, ok := c.Scope(id); ok {
			names = append(names, sc.Name)
			continue
		}
		names = append(names, id)
	}
	return strings.Join(names, ", ")
}
