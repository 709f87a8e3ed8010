package cmd

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/timelog-editor/internal/model"
	"github.com/Tiliavir/timelog-editor/internal/storage"
	"github.com/Tiliavir/timelog-editor/internal/timecalc"
)

var (
	listDate string
	listWeek bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List logs",
	Args:  cobra.NoArgs,
	Run:   runList,
}

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", "Show this day, YYYY-MM-DD (default today)")
	listCmd.Flags().BoolVar(&listWeek, "week", false, "Show the whole week")
}

func runList(cmd *cobra.Command, args []string) {
	day, err := parseDay(listDate, clock.Now())
	if err != nil {
		usageFailure(err)
	}
	base := baseDir()
	logs, catalog := loadPeriod(base, day, listWeek)
	printLogs(color.Output, logs, catalog, day.Location())
}

// loadPeriod loads the logs of day (or its week) together with the catalog
// used to label them.
func loadPeriod(base string, day time.Time, week bool) ([]model.Log, model.Catalog) {
	from, to := timecalc.StartOfDay(day), timecalc.EndOfDay(day)
	if week {
		from, to = timecalc.WeekRange(day)
	}
	logs, err := storage.LoadRange(base, from, to)
	if err != nil {
		storageFailure(err)
	}
	catalog, err := storage.LoadCatalog(base)
	if err != nil {
		storageFailure(err)
	}
	return logs, catalog
}
