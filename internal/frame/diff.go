package frame

import "fmt"

// Change is one field that differs between two configs.
type Change struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

func (c Change) String() string {
	return fmt.Sprintf("%s: %s -> %s", c.Field, c.Old, c.New)
}

// Diff lists the fields that differ from old to new, in record key order.
// Ids are compared too, so diffing two different frames reports it.
func Diff(old, new Config) []Change {
	var out []Change
	add := func(field string, a, b any) {
		as, bs := fmt.Sprint(a), fmt.Sprint(b)
		if as != bs {
			out = append(out, Change{Field: field, Old: as, New: bs})
		}
	}

	add("size", sizeString(old.Size), sizeString(new.Size))
	add("font", old.Font, new.Font)
	add("englishFont", old.EnglishFont, new.EnglishFont)
	add("mainTextColour", old.MainTextColour, new.MainTextColour)
	add("secondTextColour", old.SecondTextColour, new.SecondTextColour)
	add("lockColour", old.LockColour, new.LockColour)
	add("unlockColour", old.UnlockColour, new.UnlockColour)
	add("position", pointString(old.Position), pointString(new.Position))
	add("lookatOffset", old.LookatOffset, new.LookatOffset)
	add("id", old.ID, new.ID)
	return out
}

func sizeString(s Size) string  { return fmt.Sprintf("%dx%d", s.Width, s.Height) }
func pointString(p Point) string { return fmt.Sprintf("%d,%d", p.X, p.Y) }
