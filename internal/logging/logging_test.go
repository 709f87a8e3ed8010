package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		want  zerolog.Level
	}{
		{"info", false, zerolog.InfoLevel},
		{"error", false, zerolog.ErrorLevel},
		{"bogus", false, zerolog.WarnLevel},
		{"", false, zerolog.WarnLevel},
		{"error", true, zerolog.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.name, tt.debug), "level %q debug=%v", tt.name, tt.debug)
	}
}

func TestInitToFiltersByLevel(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	InitTo(&buf, "warn", false)
	Logger().Info().Msg("hidden")
	Logger().Warn().Str("file", "27.json").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "file=27.json")
}
