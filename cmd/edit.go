package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timelog-editor/internal/logform"
	"github.com/Tiliavir/timelog-editor/internal/storage"
	"github.com/Tiliavir/timelog-editor/internal/timecalc"
)

var (
	editFlags formFlags
	editDate  string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing log",
	Long: `Open a stored log for editing. The log is searched for on --date and the
six days before it. Attachments whose files are gone are dropped.`,
	Args: cobra.ExactArgs(1),
	Run:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editDate, "date", "", "Day to start searching from, YYYY-MM-DD (default today)")
	editFlags.bind(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	day, err := parseDay(editDate, clock.Now())
	if err != nil {
		usageFailure(err)
	}
	env := loadSessionEnv()

	existing, foundDay, err := storage.FindLog(env.base, day, args[0])
	if err != nil {
		lookupFailure(err)
	}
	neighbours, err := storage.LoadRange(env.base, foundDay.AddDate(0, 0, -1), timecalc.EndOfDay(foundDay))
	if err != nil {
		storageFailure(err)
	}

	opts := env.options(neighbours)
	opts.Existing = &existing
	s := logform.New(opts)
	s.ResolveImages(context.Background())
	finishForm(cmd, &editFlags, env, s, &foundDay)
}
