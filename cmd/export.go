package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/timelog-editor/internal/model"
	"github.com/Tiliavir/timelog-editor/internal/timecalc"
)

var (
	exportDate   string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a week of logs to stdout",
	Args:  cobra.NoArgs,
	Run:   runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDate, "date", "", "Any day of the week to export, YYYY-MM-DD (default today)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
}

func runExport(cmd *cobra.Command, args []string) {
	day, err := parseDay(exportDate, clock.Now())
	if err != nil {
		usageFailure(err)
	}
	logs, catalog := loadPeriod(baseDir(), day, true)

	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(logs, "", "  ")
		if err != nil {
			usageFailure(fmt.Errorf("error encoding JSON: %w", err))
		}
		fmt.Fprintln(color.Output, string(data))
	case "md":
		printLogs(color.Output, logs, catalog, day.Location())
	case "csv":
		printCSV(color.Output, logs, catalog, day.Location())
	default:
		usageFailure(fmt.Errorf("unknown format %q (want csv, json or md)", exportFormat))
	}
}

func printCSV(w io.Writer, logs []model.Log, c model.Catalog, loc *time.Location) {
	fmt.Fprintln(w, "date,category,activity,note,task,scopes,focus,start,end,duration_minutes")
	for _, l := range logs {
		start := timecalc.FromMillis(l.StartTime, loc)
		category, activity := l.CategoryID, l.ActivityID
		if cc, ok := c.Category(l.CategoryID); ok {
			category = cc.Name
		}
		if a, ok := c.Activity(l.CategoryID, l.ActivityID); ok {
			activity = a.Name
		}
		focus := ""
		if l.FocusScore > 0 {
			focus = fmt.Sprint(l.FocusScore)
		}
		fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s,%s,%s,%s,%d\n",
			start.Format("2006-01-02"),
			csvEscape(category),
			csvEscape(activity),
			csvEscape(l.Note),
			csvEscape(l.LinkedTaskID),
			csvEscape(strings.Join(l.ScopeIDs, ";")),
			focus,
			start.Format(time.RFC3339),
			timecalc.FromMillis(l.EndTime, loc).Format(time.RFC3339),
			l.DurationSeconds/60,
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	// Escape internal double quotes by doubling them.
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
