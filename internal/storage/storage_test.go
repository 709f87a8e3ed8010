package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/timelog-editor/internal/model"
	"github.com/Tiliavir/timelog-editor/internal/storage"
	"github.com/Tiliavir/timelog-editor/internal/timecalc"
)

var day = time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)

func at(h, m int) int64 {
	return timecalc.Millis(day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute))
}

func logAt(id string, startH, endH int) model.Log {
	return model.Log{
		ID:              id,
		CategoryID:      "work",
		ActivityID:      "coding",
		StartTime:       at(startH, 0),
		EndTime:         at(endH, 0),
		DurationSeconds: int64((endH - startH) * 3600),
	}
}

func TestLoadDayNotExist(t *testing.T) {
	base := t.TempDir()
	df, err := storage.LoadDay(base, day)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-27", df.Date)
	assert.Empty(t, df.Logs)
}

func TestSaveDayAndLoadDaySortsByStart(t *testing.T) {
	base := t.TempDir()
	df := model.DayFile{
		Date: "2026-02-27",
		Logs: []model.Log{logAt("late", 14, 15), logAt("early", 8, 9)},
	}
	require.NoError(t, storage.SaveDay(base, day, df))

	loaded, err := storage.LoadDay(base, day)
	require.NoError(t, err)
	require.Len(t, loaded.Logs, 2)
	assert.Equal(t, "early", loaded.Logs[0].ID)
	assert.Equal(t, "late", loaded.Logs[1].ID)
}

func TestLoadDayBacksUpCorruptFile(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "logs", "2026", "02")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	path := filepath.Join(dir, "27.json")
	require.NoError(t, os.WriteFile(path, []byte("{bad json"), 0o600))

	_, err := storage.LoadDay(base, day)
	require.Error(t, err)

	_, statErr := os.Stat(path + ".corrupt")
	assert.NoError(t, statErr, "expected backup file to exist after corrupt JSON")
}

func TestUpsertLog(t *testing.T) {
	base := t.TempDir()
	l := logAt("e1", 9, 10)
	require.NoError(t, storage.UpsertLog(base, l, time.UTC))

	l.Note = "updated"
	require.NoError(t, storage.UpsertLog(base, l, time.UTC))

	df, err := storage.LoadDay(base, day)
	require.NoError(t, err)
	require.Len(t, df.Logs, 1)
	assert.Equal(t, "updated", df.Logs[0].Note)
}

func TestDeleteLog(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, storage.UpsertLog(base, logAt("a", 9, 10), time.UTC))
	require.NoError(t, storage.UpsertLog(base, logAt("b", 10, 11), time.UTC))

	require.NoError(t, storage.DeleteLog(base, day, "a"))
	err := storage.DeleteLog(base, day, "a")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	df, err := storage.LoadDay(base, day)
	require.NoError(t, err)
	require.Len(t, df.Logs, 1)
	assert.Equal(t, "b", df.Logs[0].ID)
}

func TestFindLogSearchesBack(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, storage.UpsertLog(base, logAt("a", 9, 10), time.UTC))

	got, gotDay, err := storage.FindLog(base, day.AddDate(0, 0, 3), "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, day, gotDay)

	_, _, err = storage.FindLog(base, day, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLoadRangeAndLastLogEnd(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, storage.UpsertLog(base, logAt("a", 9, 10), time.UTC))
	require.NoError(t, storage.UpsertLog(base, logAt("b", 11, 12), time.UTC))
	require.NoError(t, storage.UpsertLog(base, logAt("next-day", 25, 26), time.UTC))

	logs, err := storage.LoadRange(base, day, timecalc.EndOfDay(day))
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	last, err := storage.LastLogEnd(base, timecalc.FromMillis(at(11, 30), time.UTC))
	require.NoError(t, err)
	assert.Equal(t, at(10, 0), last)

	last, err = storage.LastLogEnd(base, timecalc.FromMillis(at(30, 0), time.UTC))
	require.NoError(t, err)
	assert.Equal(t, at(26, 0), last)

	last, err = storage.LastLogEnd(t.TempDir(), day)
	require.NoError(t, err)
	assert.Zero(t, last)
}

func TestCatalogRoundTrip(t *testing.T) {
	base := t.TempDir()

	empty, err := storage.LoadCatalog(base)
	require.NoError(t, err)
	assert.Empty(t, empty.Categories)

	c := model.Catalog{
		Categories: []model.Category{{ID: "work", Name: "Work", Activities: []model.Activity{{ID: "coding", Name: "Coding", Keywords: []string{"go"}}}}},
		Rules:      []model.AutoLinkRule{{ID: "r", ActivityID: "coding", ScopeID: "career"}},
	}
	require.NoError(t, storage.SaveCatalog(base, c))

	got, err := storage.LoadCatalog(base)
	require.NoError(t, err)
	assert.Equal(t, c.Categories, got.Categories)
	assert.Equal(t, c.Rules, got.Rules)
}
