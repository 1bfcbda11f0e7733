// Package rotation picks which vocabulary entry a panel shows.
//
// Selection is a pure function of (day bucket, instance key): the sum seeds
// a splitmix64 generator and one index is drawn uniformly from
// [0, N-1), where N is the table length. The generator is fully specified
// here so that any reimplementation shows the same word for the same panel
// on the same day:
//
//	state += 0x9E3779B97F4A7C15
//	z = state
//	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
//	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
//	return z ^ (z >> 31)
//
// A bounded draw of n rejects outputs below (2^64 - n) mod n and returns
// the remainder r mod n.
//
// The draw range excludes the last table index: entry N-1 is never shown.
// A one-entry table always yields entry 0.
package rotation

import (
	"time"

	"github.com/Mr-Dark-debug/wotd/internal/vocab"
	"github.com/Mr-Dark-debug/wotd/pkg/timeutil"
)

// SplitMix64 is a 64-bit splitmix generator.
type SplitMix64 struct {
	state uint64
}

// NewSplitMix64 seeds a generator.
func NewSplitMix64(seed uint64) *SplitMix64 {
	return &SplitMix64{state: seed}
}

// Next returns the next 64-bit output.
func (s *SplitMix64) Next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Intn returns a uniform value in [0, n). n must be positive.
func (s *SplitMix64) Intn(n int) int {
	if n <= 0 {
		panic("rotation: Intn called with non-positive bound")
	}
	bound := uint64(n)
	threshold := -bound % bound
	for {
		r := s.Next()
		if r >= threshold {
			return int(r % bound)
		}
	}
}

// Seed combines a day bucket and instance key into a generator seed.
func Seed(dayBucket, instanceKey int64) uint64 {
	return uint64(dayBucket + instanceKey)
}

// selectableRange is the number of table indices the draw can reach.
func selectableRange(n int) int {
	if n <= 1 {
		return 1
	}
	return n - 1
}

// Index returns the table index chosen for (dayBucket, instanceKey) in a
// table of n entries.
func Index(dayBucket, instanceKey int64, n int) int {
	g := NewSplitMix64(Seed(dayBucket, instanceKey))
	return g.Intn(selectableRange(n))
}

// Selector maps (day bucket, instance key) to a vocabulary entry.
type Selector struct {
	table *vocab.Table
}

// NewSelector returns a Selector over table.
func NewSelector(table *vocab.Table) *Selector {
	return &Selector{table: table}
}

// Select returns the entry for dayBucket and instanceKey. Identical
// arguments over the same table always yield the same entry.
func (s *Selector) Select(dayBucket, instanceKey int64) vocab.Entry {
	return s.table.Get(Index(dayBucket, instanceKey, s.table.Len()))
}

// SelectAt is Select with the day bucket taken from t.
func (s *Selector) SelectAt(t time.Time, instanceKey int64) vocab.Entry {
	return s.Select(timeutil.DayBucket(t), instanceKey)
}

// Len returns the size of the underlying table.
func (s *Selector) Len() int { return s.table.Len() }
