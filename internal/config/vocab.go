package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Mr-Dark-debug/wotd/internal/database"
	"github.com/Mr-Dark-debug/wotd/internal/vocab"
)

// LoadVocabulary loads the table named by VocabPath: a SQLite database
// when IsDatabase reports true, a CSV dataset otherwise. With FillReadings
// set, entries without kana get one from the morphological analyzer.
func (o Options) LoadVocabulary(log *slog.Logger) (*vocab.Table, error) {
	var loadOpts []vocab.LoadOption
	if o.FillReadings {
		r, err := vocab.NewKagomeReader()
		if err != nil {
			return nil, fmt.Errorf("starting reading analyzer: %w", err)
		}
		loadOpts = append(loadOpts, vocab.WithReadings(r))
	}

	var src vocab.Source = vocab.CSVSource{Path: o.VocabPath}
	if o.IsDatabase() {
		// Opening a missing path would create an empty database.
		if _, err := os.Stat(o.VocabPath); errors.Is(err, os.ErrNotExist) {
			return nil, &vocab.DataSourceError{Source: o.VocabPath, Reason: "file not found", Err: err}
		}
		db, err := database.NewDBService(o.VocabPath)
		if err != nil {
			return nil, &vocab.DataSourceError{Source: o.VocabPath, Reason: "opening database", Err: err}
		}
		defer db.Close()
		src = db
	}

	table, err := vocab.Load(src, loadOpts...)
	if err != nil {
		return nil, err
	}
	log.Info("config: vocabulary loaded", "source", table.Source(), "entries", table.Len(), "readings", o.FillReadings)
	return table, nil
}
