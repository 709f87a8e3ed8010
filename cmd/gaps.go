package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/timelog-editor/internal/logform"
	"github.com/Tiliavir/timelog-editor/internal/storage"
	"github.com/Tiliavir/timelog-editor/internal/timecalc"
)

var gapsDate string

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "List idle gaps between logs",
	Long: `List idle windows of a day: from midnight to the first log and between
logs. Windows no longer than min_idle_minutes are ignored.`,
	Args: cobra.NoArgs,
	Run:  runGaps,
}

func init() {
	gapsCmd.Flags().StringVar(&gapsDate, "date", "", "Day to inspect, YYYY-MM-DD (default today)")
}

func runGaps(cmd *cobra.Command, args []string) {
	day, err := parseDay(gapsDate, clock.Now())
	if err != nil {
		usageFailure(err)
	}
	logs, err := storage.LoadRange(baseDir(), day.AddDate(0, 0, -1), timecalc.EndOfDay(day))
	if err != nil {
		storageFailure(err)
	}
	printGaps(color.Output, logform.FindGaps(logs, day, cfg.MinIdle()), day.Location())
}
