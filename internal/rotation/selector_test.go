package rotation

import (
	"fmt"
	"testing"
	"time"

	"github.com/Mr-Dark-debug/wotd/internal/vocab"
	"github.com/Mr-Dark-debug/wotd/pkg/timeutil"
)

func tableOf(t *testing.T, n int) *vocab.Table {
	t.Helper()
	entries := make([]vocab.Entry, n)
	for i := range entries {
		entries[i] = vocab.Entry{Word: fmt.Sprintf("w%d", i), English: fmt.Sprintf("e%d", i)}
	}
	table, err := vocab.FromEntries(entries)
	if err != nil {
		t.Fatalf("FromEntries failed: %v", err)
	}
	return table
}

func TestSplitMix64KnownVector(t *testing.T) {
	g := NewSplitMix64(0)
	want := []uint64{0xE220A8397B1DCDAF, 0x6E789E6AA1B965F4}
	for i, w := range want {
		if got := g.Next(); got != w {
			t.Fatalf("output %d: got %#x, want %#x", i, got, w)
		}
	}
}

func TestIntnBounds(t *testing.T) {
	g := NewSplitMix64(42)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := g.Intn(4)
		if v < 0 || v >= 4 {
			t.Fatalf("Intn(4) returned %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected all 4 values over 1000 draws, saw %v", seen)
	}
}

func TestSelectIsDeterministic(t *testing.T) {
	table := tableOf(t, 50)
	s := NewSelector(table)

	for day := int64(19000); day < 19010; day++ {
		for key := int64(1); key < 20; key++ {
			first := s.Select(day, key)
			for i := 0; i < 3; i++ {
				if again := s.Select(day, key); again != first {
					t.Fatalf("day %d key %d: got %+v then %+v", day, key, first, again)
				}
			}
			// A fresh selector over an equal table stands in for a restart.
			if other := NewSelector(tableOf(t, 50)).Select(day, key); other != first {
				t.Fatalf("day %d key %d: selection differs across selectors", day, key)
			}
		}
	}
}

func TestConcreteScenario(t *testing.T) {
	// Five entries, day 100, id 7, offset 0: seed 107, range [0,4).
	if Seed(100, 7+0) != 107 {
		t.Fatalf("expected seed 107, got %d", Seed(100, 7))
	}
	idx := Index(100, 7, 5)
	if idx < 0 || idx >= 4 {
		t.Fatalf("expected index in [0,4), got %d", idx)
	}
	for i := 0; i < 10; i++ {
		if again := Index(100, 7, 5); again != idx {
			t.Fatalf("seed 107 selected %d then %d", idx, again)
		}
	}

	g := NewSplitMix64(107)
	if want := g.Intn(4); want != idx {
		t.Errorf("Index must be the first bounded draw of the seeded generator: got %d, want %d", idx, want)
	}
}

func TestLastIndexNeverSelected(t *testing.T) {
	const n = 5
	for seed := int64(0); seed < 5000; seed++ {
		if idx := Index(seed, 0, n); idx == n-1 {
			t.Fatalf("seed %d selected the last index %d", seed, idx)
		}
	}
}

func TestSingleEntryTable(t *testing.T) {
	s := NewSelector(tableOf(t, 1))
	for key := int64(0); key < 10; key++ {
		if got := s.Select(123, key); got.Word != "w0" {
			t.Fatalf("expected w0, got %+v", got)
		}
	}
}

func TestSelectAtUsesDayBucket(t *testing.T) {
	s := NewSelector(tableOf(t, 30))
	at := time.Unix(100*timeutil.SecondsPerDay+500, 0)
	if got, want := s.SelectAt(at, 9), s.Select(100, 9); got != want {
		t.Errorf("SelectAt = %+v, Select = %+v", got, want)
	}
}
