package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/timelog-editor/internal/logform"
	"github.com/Tiliavir/timelog-editor/internal/storage"
)

var addFlags formFlags

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log time that ends now",
	Long: `Open a fresh log. It starts where the last log ended (or one default
window ago) and ends now. Form flags adjust it before saving.`,
	Args: cobra.NoArgs,
	Run:  runAdd,
}

func init() {
	addFlags.bind(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	now := clock.Now()
	env := loadSessionEnv()

	lastEnd, err := storage.LastLogEnd(env.base, now)
	if err != nil {
		storageFailure(err)
	}
	recent, err := storage.LoadRange(env.base, now.AddDate(0, 0, -6), now)
	if err != nil {
		storageFailure(err)
	}

	opts := env.options(recent)
	opts.LastLogEnd = lastEnd
	finishForm(cmd, &addFlags, env, logform.New(opts), nil)
}
