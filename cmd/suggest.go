package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/timelog-editor/internal/model"
	"github.com/Tiliavir/timelog-editor/internal/storage"
	"github.com/Tiliavir/timelog-editor/internal/suggest"
)

var (
	suggestNote     string
	suggestActivity string
	suggestTask     string
	suggestScopes   string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show activity and scope suggestions for a note",
	Args:  cobra.NoArgs,
	Run:   runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestNote, "note", "", "Note text to match keywords against")
	suggestCmd.Flags().StringVar(&suggestActivity, "activity", "", "Currently selected activity id")
	suggestCmd.Flags().StringVar(&suggestTask, "task", "", "Linked task id")
	suggestCmd.Flags().StringVar(&suggestScopes, "scopes", "", "Comma-separated scope ids already selected")
}

func runSuggest(cmd *cobra.Command, args []string) {
	catalog, err := storage.LoadCatalog(baseDir())
	if err != nil {
		storageFailure(err)
	}
	printSuggestions(color.Output, suggestFor(catalog, suggestNote, suggestActivity, suggestTask, suggestScopes))
}

func suggestFor(c model.Catalog, note, activity, task, scopes string) suggest.Suggestions {
	return suggest.Compute(suggest.Input{
		LinkedTaskID:       task,
		Note:               note,
		SelectedActivityID: activity,
		SelectedScopeIDs:   splitList(scopes),
	}, c)
}
