package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/timelog-editor/internal/model"
	"github.com/Tiliavir/timelog-editor/internal/timecalc"
)

var (
	reportDate   string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show time per activity for a week",
	Args:  cobra.NoArgs,
	Run:   runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDate, "date", "", "Any day of the week to report, YYYY-MM-DD (default today)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
}

// reportLine is the total of one activity.
type reportLine struct {
	Activity        string `json:"activity"`
	DurationMinutes int64  `json:"duration_minutes"`
	seconds         int64
}

func runReport(cmd *cobra.Command, args []string) {
	day, err := parseDay(reportDate, clock.Now())
	if err != nil {
		usageFailure(err)
	}
	logs, catalog := loadPeriod(baseDir(), day, true)
	if err := writeReport(color.Output, reportFormat, timecalc.ISOWeekLabel(day), aggregate(logs, catalog)); err != nil {
		usageFailure(err)
	}
}

// aggregate sums durations per activity label, sorted by label.
func aggregate(logs []model.Log, c model.Catalog) []reportLine {
	totals := map[string]int64{}
	for _, l := range logs {
		totals[activityLabel(c, l.CategoryID, l.ActivityID)] += l.DurationSeconds
	}
	lines := make([]reportLine, 0, len(totals))
	for label, sec := range totals {
		lines = append(lines, reportLine{Activity: label, DurationMinutes: sec / 60, seconds: sec})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Activity < lines[j].Activity })
	return lines
}

func writeReport(w io.Writer, format, week string, lines []reportLine) error {
	var total int64
	for _, l := range lines {
		total += l.seconds
	}

	switch format {
	case "csv":
		fmt.Fprintln(w, "activity,duration_minutes")
		for _, l := range lines {
			fmt.Fprintf(w, "%s,%d\n", csvEscape(l.Activity), l.DurationMinutes)
		}
	case "json":
		data, err := json.MarshalIndent(struct {
			Week         string       `json:"week"`
			Activities   []reportLine `json:"activities"`
			TotalMinutes int64        `json:"total_minutes"`
		}{week, lines, total / 60}, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "md", "":
		fmt.Fprintln(w, color.New(color.Bold).Sprintf("Week %s", week))
		tbl := uitable.New()
		for _, l := range lines {
			tbl.AddRow(l.Activity, timecalc.FormatDuration(time.Duration(l.seconds)*time.Second))
		}
		tbl.AddRow("", "")
		tbl.AddRow("Total", timecalc.FormatDuration(time.Duration(total)*time.Second))
		fmt.Fprintln(w, tbl)
	default:
		return fmt.Errorf("unknown format %q (want md, csv or json)", format)
	}
	return nil
}
