package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timelog-editor/internal/config"
	"github.com/Tiliavir/timelog-editor/internal/logging"
	"github.com/Tiliavir/timelog-editor/internal/storage"
	"github.com/Tiliavir/timelog-editor/internal/timecalc"
)

var (
	cfg   config.Config
	debug bool

	// clock is the single source of "now" for every command.
	clock timecalc.Clock = timecalc.SystemClock{}
)

var rootCmd = &cobra.Command{
	Use:   "tle",
	Short: "Timelog editor – create, fill and edit time logs from the terminal",
	Long: `tle edits categorised time logs stored as human-readable JSON files.
Data lives in ~/.tle/ unless data_dir or TLE_DATA_DIR says otherwise.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Warning:", err)
		}
		cfg = loaded
		logging.Init(cfg.LogLevel, debug)
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(gapsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
}

// baseDir returns the data directory, exiting with code 2 when it cannot be
// determined.
func baseDir() string {
	if cfg.DataDir != "" {
		return cfg.DataDir
	}
	base, err := config.DefaultBaseDir()
	if err != nil {
		storageFailure(err)
	}
	return base
}

// storageFailure reports an I/O problem and exits with code 2.
func storageFailure(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}

// lookupFailure treats an unknown id as bad input and anything else as an
// I/O problem.
func lookupFailure(err error) {
	if errors.Is(err, storage.ErrNotFound) {
		usageFailure(err)
	}
	storageFailure(err)
}

// usageFailure reports bad input and exits with code 1.
func usageFailure(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

// parseDay parses a YYYY-MM-DD flag in now's location. Empty means today.
func parseDay(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return timecalc.StartOfDay(now), nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}
