package frame

import (
	"math/rand/v2"
	"time"
)

// MaxID is the upper bound of generated ids.
const MaxID = 1<<31 - 1

// IDSource draws fresh panel ids.
type IDSource interface {
	NewID() int64
}

// RandomIDs draws ids uniformly from [1, MaxID].
type RandomIDs struct {
	rng *rand.Rand
}

// NewRandomIDs returns a generator seeded from the wall clock.
func NewRandomIDs() *RandomIDs {
	now := uint64(time.Now().UnixNano())
	return SeededIDs(now, now>>32)
}

// SeededIDs returns a reproducible generator.
func SeededIDs(seed1, seed2 uint64) *RandomIDs {
	return &RandomIDs{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// NewID implements IDSource.
func (g *RandomIDs) NewID() int64 {
	return 1 + g.rng.Int64N(MaxID)
}

// UniqueID draws from src until taken reports the id as free.
func UniqueID(src IDSource, taken func(int64) bool) int64 {
	for {
		id := src.NewID()
		if !taken(id) {
			return id
		}
	}
}
