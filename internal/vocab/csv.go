package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column layout of the vocabulary dataset. The full export carries 15
// columns; only these are read.
const (
	colWord     = 0
	colKana     = 1
	colRomaji   = 2
	colEnglish  = 3
	colAudioRef = 14

	minColumns = colEnglish + 1
)

// CSVSource reads a vocabulary dataset from a CSV file with a header row.
type CSVSource struct {
	Path string
}

// Describe implements Source.
func (s CSVSource) Describe() string { return s.Path }

// Entries implements Source.
func (s CSVSource) Entries() ([]Entry, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &DataSourceError{Source: s.Path, Reason: "file not found", Err: err}
		}
		return nil, &DataSourceError{Source: s.Path, Reason: "opening file", Err: err}
	}
	defer f.Close()

	return ReadCSV(f, s.Path)
}

// ReadCSV parses dataset rows from r. name is used in error messages.
func ReadCSV(r io.Reader, name string) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, &DataSourceError{Source: name, Reason: "empty file"}
		}
		return nil, &DataSourceError{Source: name, Reason: "reading header", Err: err}
	}

	var entries []Entry
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &DataSourceError{Source: name, Reason: "parsing row", Err: err}
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < minColumns {
			return nil, &DataSourceError{
				Source: name,
				Reason: fmt.Sprintf("row %d has %d columns, need at least %d", line, len(rec), minColumns),
			}
		}

		e := Entry{
			Word:    strings.TrimSpace(rec[colWord]),
			Kana:    strings.TrimSpace(rec[colKana]),
			Romaji:  strings.TrimSpace(rec[colRomaji]),
			English: strings.TrimSpace(rec[colEnglish]),
		}
		if len(rec) > colAudioRef {
			e.AudioRef = strings.TrimSpace(rec[colAudioRef])
		}
		entries = append(entries, e)
	}

	if len(entries) == 0 {
		return nil, &DataSourceError{Source: name, Reason: "no rows past the header"}
	}
	return entries, nil
}
