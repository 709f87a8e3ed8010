package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timelog-editor/internal/logform"
	"github.com/Tiliavir/timelog-editor/internal/model"
	"github.com/Tiliavir/timelog-editor/internal/storage"
	"github.com/Tiliavir/timelog-editor/internal/timecalc"
)

var (
	fillFlags formFlags
	fillDate  string
	fillFrom  string
	fillTo    string
	fillIndex int
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Log time for an idle gap",
	Long: `Open a log covering a gap between existing logs. Pass --from and --to,
or let tle pick a detected gap of the day (see: tle gaps).`,
	Args: cobra.NoArgs,
	Run:  runFill,
}

func init() {
	fillCmd.Flags().StringVar(&fillDate, "date", "", "Day of the gap, YYYY-MM-DD (default today)")
	fillCmd.Flags().StringVar(&fillFrom, "from", "", "Gap start HH:MM")
	fillCmd.Flags().StringVar(&fillTo, "to", "", "Gap end HH:MM")
	fillCmd.Flags().IntVar(&fillIndex, "gap", 1, "Which detected gap to fill when --from/--to are omitted")
	fillFlags.bind(fillCmd)
}

func runFill(cmd *cobra.Command, args []string) {
	now := clock.Now()
	day, err := parseDay(fillDate, now)
	if err != nil {
		usageFailure(err)
	}
	env := loadSessionEnv()

	logs, err := storage.LoadRange(env.base, day.AddDate(0, 0, -1), timecalc.EndOfDay(day))
	if err != nil {
		storageFailure(err)
	}
	gap, err := resolveGap(logs, day, fillFrom, fillTo, fillIndex, cfg.MinIdle())
	if err != nil {
		usageFailure(err)
	}

	opts := env.options(logs)
	opts.Gap = &gap
	finishForm(cmd, &fillFlags, env, logform.New(opts), nil)
}

// resolveGap turns from/to into a gap on day. When both are empty it picks
// the index-th (1-based) gap detected on day instead.
func resolveGap(logs []model.Log, day time.Time, from, to string, index int, minIdle time.Duration) (logform.Gap, error) {
	if from == "" && to == "" {
		gaps := logform.FindGaps(logs, day, minIdle)
		if index < 1 || index > len(gaps) {
			return logform.Gap{}, fmt.Errorf("no gap #%d on %s (%d found)", index, day.Format("2006-01-02"), len(gaps))
		}
		return gaps[index-1], nil
	}
	if from == "" || to == "" {
		return logform.Gap{}, fmt.Errorf("--from and --to must be given together")
	}
	start, err := timecalc.ParseClock(from)
	if err != nil {
		return logform.Gap{}, err
	}
	end, err := timecalc.ParseClock(to)
	if err != nil {
		return logform.Gap{}, err
	}
	ref := timecalc.Millis(day)
	return logform.Gap{
		Start: timecalc.AtHM(ref, start.Hour, start.Minute, day.Location()),
		End:   timecalc.AtHM(ref, end.Hour, end.Minute, day.Location()),
	}, nil
}
