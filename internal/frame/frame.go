// Package frame defines the persisted state of a single word panel.
//
// A Config is the in-memory value; a Record is its on-disk form, where
// every field is optional so files written by older versions still load.
// EnsureDefaults turns a Record into a Config, InheritFrom clones the
// presentation of an existing panel under a new identity.
package frame

import (
	"fmt"
)

// OffsetCycle is the number of look-at offsets a panel cycles through.
const OffsetCycle = 4

// Defaults for fields missing from a record.
const (
	DefaultWidth            = 300
	DefaultHeight           = 250
	DefaultFont             = "Noto Sans JP"
	DefaultEnglishFont      = "Noto Sans"
	DefaultMainTextColour   = "250, 250, 250, 240"
	DefaultSecondTextColour = "190, 190, 190, 240"
	DefaultLockColour       = "20, 20, 20, 100"
	DefaultUnlockColour     = "50, 50, 50, 100"
	DefaultX                = 1584
	DefaultY                = 50
)

// Size is a panel's width and height.
type Size struct {
	Width  int
	Height int
}

// Point is a panel's position.
type Point struct {
	X int
	Y int
}

// Config is the persisted state of one panel.
type Config struct {
	ID               int64
	Size             Size
	Font             string
	EnglishFont      string
	MainTextColour   string
	SecondTextColour string
	LockColour       string
	UnlockColour     string
	Position         Point
	LookatOffset     int
}

// InstanceKey is the per-panel component of the rotation seed.
func (c Config) InstanceKey() int64 {
	return c.ID + int64(c.LookatOffset)
}

// CycleOffset moves the look-at offset by dir, wrapping within [0,3].
func (c *Config) CycleOffset(dir int) {
	c.LookatOffset = NormalizeOffset(c.LookatOffset + dir)
}

// NormalizeOffset maps any integer into [0, OffsetCycle).
func NormalizeOffset(o int) int {
	return ((o % OffsetCycle) + OffsetCycle) % OffsetCycle
}

// Default returns a Config populated entirely from defaults, carrying id.
func Default(id int64) Config {
	return Config{
		ID:               id,
		Size:             Size{Width: DefaultWidth, Height: DefaultHeight},
		Font:             DefaultFont,
		EnglishFont:      DefaultEnglishFont,
		MainTextColour:   DefaultMainTextColour,
		SecondTextColour: DefaultSecondTextColour,
		LockColour:       DefaultLockColour,
		UnlockColour:     DefaultUnlockColour,
		Position:         Point{X: DefaultX, Y: DefaultY},
	}
}

// InheritFrom returns a new Config that copies the presentation fields of
// src (size, fonts, colours) under id. Position and offset take defaults.
func InheritFrom(src Config, id int64) Config {
	c := Default(id)
	c.Size = src.Size
	c.Font = src.Font
	c.EnglishFont = src.EnglishFont
	c.MainTextColour = src.MainTextColour
	c.SecondTextColour = src.SecondTextColour
	c.LockColour = src.LockColour
	c.UnlockColour = src.UnlockColour
	return c
}

// SamePresentation reports whether a and b share size, fonts and colours.
func SamePresentation(a, b Config) bool {
	return a.Size == b.Size &&
		a.Font == b.Font &&
		a.EnglishFont == b.EnglishFont &&
		a.MainTextColour == b.MainTextColour &&
		a.SecondTextColour == b.SecondTextColour &&
		a.LockColour == b.LockColour &&
		a.UnlockColour == b.UnlockColour
}

// Adopt overwrites every field of c with src except the id.
func (c *Config) Adopt(src Config) {
	id := c.ID
	*c = src
	c.ID = id
}

func (c Config) String() string {
	return fmt.Sprintf("frame %d (%dx%d at %d,%d offset %d)",
		c.ID, c.Size.Width, c.Size.Height, c.Position.X, c.Position.Y, c.LookatOffset)
}
