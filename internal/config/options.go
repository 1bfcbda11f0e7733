package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options holds the runtime settings of the wotd binaries.
type Options struct {
	// ConfigPath is the frame collection file.
	ConfigPath string `json:"config_path"`

	// VocabPath is the vocabulary dataset: a CSV file, or a SQLite
	// database built by "wotdctl import" when it ends in .db or .sqlite.
	VocabPath string `json:"vocab_path"`

	// FillReadings derives missing kana with the morphological analyzer.
	FillReadings bool `json:"fill_readings"`

	// LogPath receives the log; the terminal belongs to the UI.
	// Empty disables logging.
	LogPath string `json:"log_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`
}

// DefaultOptions returns defaults rooted at ~/.wotd.
func DefaultOptions() Options {
	homeDir, _ := os.UserHomeDir()
	base := filepath.Join(homeDir, ".wotd")

	return Options{
		ConfigPath: filepath.Join(base, "config.yaml"),
		VocabPath:  filepath.Join(base, "vocabulary.csv"),
		LogPath:    filepath.Join(base, "wotd.log"),
		LogLevel:   "info",
	}
}

// IsDatabase reports whether VocabPath names a SQLite vocabulary database.
func (o Options) IsDatabase() bool {
	switch strings.ToLower(filepath.Ext(o.VocabPath)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return l, nil
}

// OpenLogger returns a text logger appending to o.LogPath, and the closer
// for the underlying file. An empty LogPath yields a discarding logger.
func (o Options) OpenLogger() (*slog.Logger, io.Closer, error) {
	if o.LogPath == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nopCloser{}, nil
	}

	level, err := ParseLevel(o.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(o.LogPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(o.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log %s: %w", o.LogPath, err)
	}

	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
