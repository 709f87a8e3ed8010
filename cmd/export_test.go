package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/timelog-editor/internal/model"
)

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{`"quoted, twice"`, `"""quoted, twice"""`},
		{"with\nnewline", "\"with\nnewline\""},
		{"with\rreturn", "\"with\rreturn\""},
		{"", ""},
	}
	for _, tt := range tests {
		got := csvEscape(tt.input)
		if got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPrintCSV(t *testing.T) {
	logs := []model.Log{
		{
			ID: "a", CategoryID: "sport", ActivityID: "gym",
			StartTime: at(9, 0), EndTime: at(10, 30), DurationSeconds: 5400,
			Note: "legs, then core", LinkedTaskID: "t1", ScopeIDs: []string{"health", "outdoors"}, FocusScore: 4,
		},
		{
			ID: "b", CategoryID: "gone", ActivityID: "missing",
			StartTime: at(11, 0), EndTime: at(11, 45), DurationSeconds: 2700,
		},
	}

	var buf bytes.Buffer
	printCSV(&buf, logs, testCatalog(), time.UTC)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	want := []string{
		"date,category,activity,note,task,scopes,focus,start,end,duration_minutes",
		`2026-03-10,Sport,Gym,"legs, then core",t1,health;outdoors,4,2026-03-10T09:00:00Z,2026-03-10T10:30:00Z,90`,
		"2026-03-10,gone,missing,,,,,2026-03-10T11:00:00Z,2026-03-10T11:45:00Z,45",
	}
	if len(lines) != len(want) {
		t.Fatalf("printCSV wrote %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
