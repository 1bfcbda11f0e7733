// Package vocab holds the vocabulary table that panels rotate through.
//
// A Table is loaded once from a Source and never mutated afterwards; its
// length is fixed for the lifetime of the process. Entries are identified
// by their 0-based position.
package vocab

import (
	"errors"
	"fmt"
)

// Entry is a single vocabulary item.
type Entry struct {
	Word     string `json:"word"`
	Kana     string `json:"kana"`
	Romaji   string `json:"romaji"`
	English  string `json:"english"`
	AudioRef string `json:"audio_ref,omitempty"`
}

// Source yields the ordered rows of a vocabulary dataset.
type Source interface {
	// Entries returns every row in dataset order.
	Entries() ([]Entry, error)
	// Describe names the source for logs and errors.
	Describe() string
}

// DataSourceError reports a vocabulary dataset that is missing, unreadable
// or too short. It is fatal at startup.
type DataSourceError struct {
	Source string
	Reason string
	Err    error
}

func (e *DataSourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vocabulary source %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("vocabulary source %s: %s", e.Source, e.Reason)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// Table is an immutable, ordered vocabulary table.
type Table struct {
	entries []Entry
	source  string
}

// LoadOption adjusts how Load post-processes rows.
type LoadOption func(*loadOptions)

type loadOptions struct {
	readings Reader
}

// WithReadings fills in the kana of entries that have none using r.
func WithReadings(r Reader) LoadOption {
	return func(o *loadOptions) { o.readings = r }
}

// Load reads every row from src into a new Table.
func Load(src Source, opts ...LoadOption) (*Table, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	entries, err := src.Entries()
	if err != nil {
		var dse *DataSourceError
		if errors.As(err, &dse) {
			return nil, err
		}
		return nil, &DataSourceError{Source: src.Describe(), Reason: "reading rows", Err: err}
	}
	if len(entries) == 0 {
		return nil, &DataSourceError{Source: src.Describe(), Reason: "no rows past the header"}
	}

	// Own the slice so callers cannot mutate the table behind our back.
	owned := make([]Entry, len(entries))
	copy(owned, entries)

	if o.readings != nil {
		for i := range owned {
			if owned[i].Kana != "" || owned[i].Word == "" {
				continue
			}
			owned[i].Kana = o.readings.Reading(owned[i].Word)
		}
	}

	return &Table{entries: owned, source: src.Describe()}, nil
}

// FromEntries builds a Table directly from entries. It is mostly useful in
// tests and for sources that were already validated.
func FromEntries(entries []Entry) (*Table, error) {
	return Load(sliceSource(entries))
}

// Len returns the number of entries N.
func (t *Table) Len() int { return len(t.entries) }

// Get returns the entry at index i. i must be in [0, Len()).
func (t *Table) Get(i int) Entry {
	if i < 0 || i >= len(t.entries) {
		panic(fmt.Sprintf("vocab: index %d out of range [0,%d)", i, len(t.entries)))
	}
	return t.entries[i]
}

// Source names where the table was loaded from.
func (t *Table) Source() string { return t.source }

type sliceSource []Entry

func (s sliceSource) Entries() ([]Entry, error) { return s, nil }
func (s sliceSource) Describe() string          { return "memory" }
