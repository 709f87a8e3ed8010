package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Tiliavir/timelog-editor/internal/model"
	"github.com/Tiliavir/timelog-editor/internal/timecalc"
)

// ErrNotFound is returned when a log id is not present in the searched days.
var ErrNotFound = errors.New("log not found")

// lookback bounds how many days LastLogEnd and FindLog search.
const lookback = 7

// dayFilePath returns the path for the given date's JSON file.
func dayFilePath(base string, t time.Time) string {
	return filepath.Join(base, "logs", t.Format("2006"), t.Format("01"), t.Format("02")+".json")
}

// LoadDay loads the DayFile for the given date. Returns an empty DayFile if not found.
func LoadDay(base string, t time.Time) (model.DayFile, error) {
	path := dayFilePath(base, t)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.DayFile{Date: t.Format("2006-01-02"), Logs: []model.Log{}}, nil
	}
	if err != nil {
		return model.DayFile{}, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	var df model.DayFile
	if err := json.Unmarshal(data, &df); err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		log.Warn().Str("path", path).Str("backup", backupPath).Msg("corrupt day file moved aside")
		return model.DayFile{}, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return df, nil
}

// SaveDay atomically writes a DayFile for the given date.
func SaveDay(base string, t time.Time, df model.DayFile) error {
	path := dayFilePath(base, t)
	sort.SliceStable(df.Logs, func(i, j int) bool { return df.Logs[i].StartTime < df.Logs[j].StartTime })
	return writeJSON(path, df)
}

// writeJSON writes v to a temp file and renames it over path.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// DayOf returns the calendar day a log is filed under: the day it starts.
func DayOf(l model.Log, loc *time.Location) time.Time {
	return timecalc.StartOfDay(timecalc.FromMillis(l.StartTime, loc))
}

// UpsertLog replaces or appends a log in the file of the day it starts on.
func UpsertLog(base string, l model.Log, loc *time.Location) error {
	day := DayOf(l, loc)
	df, err := LoadDay(base, day)
	if err != nil {
		return err
	}
	for i, e := range df.Logs {
		if e.ID == l.ID {
			df.Logs[i] = l
			return SaveDay(base, day, df)
		}
	}
	df.Logs = append(df.Logs, l)
	return SaveDay(base, day, df)
}

// DeleteLog removes a log from the given day. Missing ids yield ErrNotFound.
func DeleteLog(base string, day time.Time, id string) error {
	df, err := LoadDay(base, day)
	if err != nil {
		return err
	}
	for i, e := range df.Logs {
		if e.ID == id {
			df.Logs = append(df.Logs[:i], df.Logs[i+1:]...)
			return SaveDay(base, day, df)
		}
	}
	return fmt.Errorf("%w: %s on %s", ErrNotFound, id, day.Format("2006-01-02"))
}

// FindLog searches day and the days before it for a log with the given id.
func FindLog(base string, day time.Time, id string) (model.Log, time.Time, error) {
	for i := 0; i < lookback; i++ {
		d := day.AddDate(0, 0, -i)
		df, err := LoadDay(base, d)
		if err != nil {
			return model.Log{}, time.Time{}, err
		}
		for _, l := range df.Logs {
			if l.ID == id {
				return l, timecalc.StartOfDay(d), nil
			}
		}
	}
	return model.Log{}, time.Time{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// LoadRange loads all logs in [from, to] inclusive.
func LoadRange(base string, from, to time.Time) ([]model.Log, error) {
	var logs []model.Log
	for d := timecalc.StartOfDay(from); !d.After(to); d = d.AddDate(0, 0, 1) {
		df, err := LoadDay(base, d)
		if err != nil {
			return nil, err
		}
		logs = append(logs, df.Logs...)
	}
	return logs, nil
}

// LastLogEnd returns the latest end time at or before now among the logs of
// the past week, or 0 when there is none.
func LastLogEnd(base string, now time.Time) (int64, error) {
	logs, err := LoadRange(base, now.AddDate(0, 0, -(lookback-1)), now)
	if err != nil {
		return 0, err
	}
	limit := timecalc.Millis(now)
	var last int64
	for _, l := range logs {
		if l.EndTime <= limit && l.EndTime > last {
			last = l.EndTime
		}
	}
	return last, nil
}
