package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/timelog-editor/internal/logform"
	"github.com/Tiliavir/timelog-editor/internal/storage"
)

var (
	deleteDate string
	deleteYes  bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a log and its attachments",
	Args:  cobra.ExactArgs(1),
	Run:   runDelete,
}

func init() {
	deleteCmd.Flags().StringVar(&deleteDate, "date", "", "Day to start searching from, YYYY-MM-DD (default today)")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) {
	day, err := parseDay(deleteDate, clock.Now())
	if err != nil {
		usageFailure(err)
	}
	env := loadSessionEnv()

	existing, foundDay, err := storage.FindLog(env.base, day, args[0])
	if err != nil {
		lookupFailure(err)
	}

	if !deleteYes && !confirmDelete(existing.ID) {
		fmt.Fprintln(color.Output, "Aborted.")
		return
	}

	opts := env.options(nil)
	opts.Existing = &existing
	s := logform.New(opts)

	var delErr error
	s.Delete(func(id string) {
		delErr = storage.DeleteLog(env.base, foundDay, id)
	})
	if delErr != nil {
		storageFailure(delErr)
	}

	ctx := context.Background()
	for _, img := range existing.Images {
		if err := env.images.Delete(ctx, img); err != nil {
			log.Warn().Err(err).Str("image", img).Msg("attachment left behind")
		}
	}
	fmt.Fprintf(color.Output, "Deleted log %s\n", color.New(color.Bold).Sprint(existing.ID))
}

// confirmDelete asks y/N on the terminal. Any prompt failure counts as no.
func confirmDelete(id string) bool {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Delete log %s", id),
		IsConfirm: true,
		Templates: &promptui.PromptTemplates{
			Prompt:  "{{ . }} : ",
			Valid:   "{{ . | green }} : ",
			Invalid: "{{ . | red }} : ",
			Success: "{{ . | bold }} : ",
		},
	}
	_, err := prompt.Run()
	return err == nil
}
