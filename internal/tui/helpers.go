package tui

import (
	"sort"
)

// ────────────────────────────────────────────────────────────
// Layout order
// ────────────────────────────────────────────────────────────

// layoutOrder returns panel ids sorted top-to-bottom then left-to-right by
// their stored position. Ties keep collection order.
func (m Model) layoutOrder() []int64 {
	frames := m.ctrl.Frames()
	sort.SliceStable(frames, func(i, j int) bool {
		a, b := frames[i].Position, frames[j].Position
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	ids := make([]int64, len(frames))
	for i, f := range frames {
		ids[i] = f.ID
	}
	return ids
}

// neighbour returns the id after removed in order, or the one before it
// when removed was last. It returns 0 when nothing else is left.
func neighbour(order []int64, removed int64) int64 {
	i := indexOf(order, removed)
	switch {
	case i < 0 || len(order) <= 1:
		return 0
	case i+1 < len(order):
		return order[i+1]
	default:
		return order[i-1]
	}
}

func indexOf(ids []int64, id int64) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// ────────────────────────────────────────────────────────────
// String helpers
// ────────────────────────────────────────────────────────────

// truncate cuts a string to maxLen and appends "..." if truncated.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// clamp restricts val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// maxInt returns the larger of a and b.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
