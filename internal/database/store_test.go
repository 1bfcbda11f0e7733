package database

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Mr-Dark-debug/wotd/internal/vocab"
)

func newTestDB(t *testing.T) *DBService {
	t.Helper()
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc
}

var sample = []vocab.Entry{
	{Word: "座席", Kana: "ざせき", Romaji: "zaseki", English: "seat", AudioRef: "a/zaseki.mp3"},
	{Word: "犬", Kana: "いぬ", Romaji: "inu", English: "dog"},
	{Word: "猫", Kana: "ねこ", Romaji: "neko", English: "cat"},
}

// TestNewDBService verifies that the database initializes correctly
// with the embedded schema using an in-memory SQLite instance.
func TestNewDBService(t *testing.T) {
	svc := newTestDB(t)
	n, err := svc.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected empty vocabulary, got %d", n)
	}
}

// TestReplaceAndReadVocabulary verifies import order survives the
// round trip, since rotation indexes by position.
func TestReplaceAndReadVocabulary(t *testing.T) {
	svc := newTestDB(t)

	imp, err := svc.ReplaceVocabulary("vocab.csv", sample)
	if err != nil {
		t.Fatalf("ReplaceVocabulary failed: %v", err)
	}
	if imp.ImportID == 0 || imp.RowCount != 3 || imp.Source != "vocab.csv" {
		t.Errorf("unexpected import record %+v", imp)
	}

	entries, err := svc.Entries()
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != len(sample) {
		t.Fatalf("expected %d entries, got %d", len(sample), len(entries))
	}
	for i := range sample {
		if entries[i] != sample[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, entries[i], sample[i])
		}
	}
}

func TestReplaceVocabularyReplaces(t *testing.T) {
	svc := newTestDB(t)

	if _, err := svc.ReplaceVocabulary("first.csv", sample); err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	if _, err := svc.ReplaceVocabulary("second.csv", sample[:1]); err != nil {
		t.Fatalf("second import failed: %v", err)
	}

	n, err := svc.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 entry after replace, got %d", n)
	}

	imports, err := svc.Imports(10)
	if err != nil {
		t.Fatalf("Imports failed: %v", err)
	}
	if len(imports) != 2 || imports[0].Source != "second.csv" {
		t.Errorf("expected newest import first, got %+v", imports)
	}
}

func TestReplaceVocabularyRejectsEmpty(t *testing.T) {
	svc := newTestDB(t)
	if _, err := svc.ReplaceVocabulary("empty.csv", nil); err == nil {
		t.Fatal("expected error for empty import")
	}
}

func TestLookup(t *testing.T) {
	svc := newTestDB(t)
	if _, err := svc.ReplaceVocabulary("vocab.csv", sample); err != nil {
		t.Fatalf("ReplaceVocabulary failed: %v", err)
	}

	for _, term := range []string{"猫", "ねこ"} {
		rows, err := svc.Lookup(term)
		if err != nil {
			t.Fatalf("Lookup(%s) failed: %v", term, err)
		}
		if len(rows) != 1 || rows[0].Position != 2 || rows[0].Entry.English != "cat" {
			t.Errorf("Lookup(%s) = %+v", term, rows)
		}
	}

	rows, err := svc.Lookup("鳥")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %+v", rows)
	}
}

// TestVocabularyLoadFromDatabase verifies the service works as a
// vocab.Source and that an empty database is a data source error.
func TestVocabularyLoadFromDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.db")
	svc, err := NewDBService(path)
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	_, err = vocab.Load(svc)
	var dse *vocab.DataSourceError
	if !errors.As(err, &dse) {
		t.Fatalf("expected DataSourceError for empty database, got %v", err)
	}

	if _, err := svc.ReplaceVocabulary("vocab.csv", sample); err != nil {
		t.Fatalf("ReplaceVocabulary failed: %v", err)
	}
	table, err := vocab.Load(svc)
	if err != nil {
		t.Fatalf("vocab.Load failed: %v", err)
	}
	if table.Len() != 3 || table.Get(1).Word != "犬" {
		t.Errorf("unexpected table: len=%d first=%+v", table.Len(), table.Get(1))
	}
	if table.Source() != path {
		t.Errorf("expected source %s, got %s", path, table.Source())
	}
}
