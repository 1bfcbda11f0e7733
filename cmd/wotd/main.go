// wotd shows Japanese word-of-the-day panels in the terminal.
//
// Usage:
//
//	wotd [flags]
//
// Flags:
//
//	-config    Frame collection file, YAML or .json (default: ~/.wotd/config.yaml)
//	-vocab     Vocabulary CSV or .db built by "wotdctl import" (default: ~/.wotd/vocabulary.csv)
//	-readings  Derive missing kana with the morphological analyzer
//	-log       Log file; empty disables logging (default: ~/.wotd/wotd.log)
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Mr-Dark-debug/wotd/internal/config"
	"github.com/Mr-Dark-debug/wotd/internal/lifecycle"
	"github.com/Mr-Dark-debug/wotd/internal/rotation"
	"github.com/Mr-Dark-debug/wotd/internal/tui"
	"github.com/Mr-Dark-debug/wotd/internal/widget"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	opts := config.DefaultOptions()

	flag.StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Frame collection file (YAML, or JSON by .json extension)")
	flag.StringVar(&opts.VocabPath, "vocab", opts.VocabPath, "Vocabulary CSV, or SQLite database (.db/.sqlite)")
	flag.BoolVar(&opts.FillReadings, "readings", opts.FillReadings, "Derive missing kana readings")
	flag.StringVar(&opts.LogPath, "log", opts.LogPath, "Log file (empty disables logging)")
	flag.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level: debug, info, warn, error")
	flag.Parse()

	logger, logFile, err := opts.OpenLogger()
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer logFile.Close()

	table, err := opts.LoadVocabulary(logger)
	if err != nil {
		log.Fatalf("Failed to load vocabulary: %v", err)
	}

	store := config.NewStore(opts.ConfigPath, config.WithLogger(logger))
	factory := widget.Factory(rotation.NewSelector(table), widget.WithLogger(logger))
	ctrl := lifecycle.New(store, factory,
		lifecycle.WithIDSource(store.IDs()),
		lifecycle.WithLogger(logger))

	if err := ctrl.Open(); err != nil {
		log.Fatalf("Failed to load frames from %s: %v", opts.ConfigPath, err)
	}

	logger.Info("wotd: starting", "config", opts.ConfigPath, "frames", ctrl.Len())

	model := tui.NewModel(ctrl, tui.WithSource(table.Source()))
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, runErr := p.Run()

	ctrl.Close()
	if err := ctrl.Save(); err != nil {
		logger.Error("wotd: final save failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error saving frames: %v\n", err)
		os.Exit(1)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", runErr)
		os.Exit(1)
	}
}
