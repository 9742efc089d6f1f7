// internal/logging/logging.go
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup builds the process logger: human-readable console output at the
// configured level plus a rotating JSON log file that always captures
// debug, so the file keeps full detail while the console stays quiet.
func Setup(level, dir string) (zerolog.Logger, error) {
	if level == "warning" {
		level = "warn"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("logging: unknown level %q", level)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), fmt.Errorf("logging: create %s: %w", dir, err)
	}

	console := &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{
			Writer: zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339},
		},
		Level: lvl,
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "adapter.log"),
		MaxSize:    1, // megabytes
		MaxBackups: 4,
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(console, file)).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()

	return logger, nil
}
