package frame

import (
	"errors"
	"fmt"
)

// Record is the on-disk form of a Config. Nil fields are missing from the
// file and are filled by EnsureDefaults.
type Record struct {
	Size             []int   `yaml:"size,flow,omitempty" json:"size,omitempty"`
	Font             *string `yaml:"font,omitempty" json:"font,omitempty"`
	EnglishFont      *string `yaml:"englishFont,omitempty" json:"englishFont,omitempty"`
	MainTextColour   *string `yaml:"mainTextColour,omitempty" json:"mainTextColour,omitempty"`
	SecondTextColour *string `yaml:"secondTextColour,omitempty" json:"secondTextColour,omitempty"`
	LockColour       *string `yaml:"lockColour,omitempty" json:"lockColour,omitempty"`
	UnlockColour     *string `yaml:"unlockColour,omitempty" json:"unlockColour,omitempty"`
	Position         []int   `yaml:"position,flow,omitempty" json:"position,omitempty"`
	LookatOffset     *int    `yaml:"lookatOffset,omitempty" json:"lookatOffset,omitempty"`
	ID               *int64  `yaml:"id,omitempty" json:"id,omitempty"`
}

// ErrInvalidRecord is wrapped by every Record validation failure.
var ErrInvalidRecord = errors.New("invalid frame record")

// Validate checks the shape of the fields that are present.
func (r Record) Validate() error {
	if r.Size != nil {
		if len(r.Size) != 2 {
			return fmt.Errorf("%w: size needs 2 values, got %d", ErrInvalidRecord, len(r.Size))
		}
		if r.Size[0] <= 0 || r.Size[1] <= 0 {
			return fmt.Errorf("%w: size must be positive, got %v", ErrInvalidRecord, r.Size)
		}
	}
	if r.Position != nil && len(r.Position) != 2 {
		return fmt.Errorf("%w: position needs 2 values, got %d", ErrInvalidRecord, len(r.Position))
	}
	if r.ID != nil && *r.ID <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidRecord, *r.ID)
	}
	return nil
}

// EnsureDefaults builds a Config from r, taking every missing field from
// the defaults and never overwriting a field that is present. A missing id
// is drawn from ids. A present offset is normalised into [0,3].
func EnsureDefaults(r Record, ids IDSource) (Config, error) {
	if err := r.Validate(); err != nil {
		return Config{}, err
	}

	var id int64
	if r.ID != nil {
		id = *r.ID
	} else {
		id = ids.NewID()
	}

	c := Default(id)
	if r.Size != nil {
		c.Size = Size{Width: r.Size[0], Height: r.Size[1]}
	}
	setString(&c.Font, r.Font)
	setString(&c.EnglishFont, r.EnglishFont)
	setString(&c.MainTextColour, r.MainTextColour)
	setString(&c.SecondTextColour, r.SecondTextColour)
	setString(&c.LockColour, r.LockColour)
	setString(&c.UnlockColour, r.UnlockColour)
	if r.Position != nil {
		c.Position = Point{X: r.Position[0], Y: r.Position[1]}
	}
	if r.LookatOffset != nil {
		c.LookatOffset = NormalizeOffset(*r.LookatOffset)
	}
	return c, nil
}

// Record returns the fully populated on-disk form of c.
func (c Config) Record() Record {
	id := c.ID
	offset := c.LookatOffset
	return Record{
		Size:             []int{c.Size.Width, c.Size.Height},
		Font:             ptr(c.Font),
		EnglishFont:      ptr(c.EnglishFont),
		MainTextColour:   ptr(c.MainTextColour),
		SecondTextColour: ptr(c.SecondTextColour),
		LockColour:       ptr(c.LockColour),
		UnlockColour:     ptr(c.UnlockColour),
		Position:         []int{c.Position.X, c.Position.Y},
		LookatOffset:     &offset,
		ID:               &id,
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func ptr(s string) *string { return &s }
