package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Mr-Dark-debug/wotd/internal/frame"
	"github.com/Mr-Dark-debug/wotd/internal/lifecycle"
	"github.com/Mr-Dark-debug/wotd/internal/rotation"
	"github.com/Mr-Dark-debug/wotd/internal/vocab"
	"github.com/Mr-Dark-debug/wotd/internal/widget"

	tea "github.com/charmbracelet/bubbletea"
)

type memStore struct {
	frames []frame.Config
	saves  int
}

func (s *memStore) Load() ([]frame.Config, error) {
	return append([]frame.Config(nil), s.frames...), nil
}

func (s *memStore) Save(frames []frame.Config) error {
	s.saves++
	s.frames = append([]frame.Config(nil), frames...)
	return nil
}

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func newTestModel(t *testing.T, frames ...frame.Config) (Model, *memStore) {
	t.Helper()
	return newTestModelAt(t, func() time.Time { return fixedNow }, frames...)
}

func newTestModelAt(t *testing.T, clock func() time.Time, frames ...frame.Config) (Model, *memStore) {
	t.Helper()

	entries := make([]vocab.Entry, 20)
	for i := range entries {
		entries[i] = vocab.Entry{
			Word:    fmt.Sprintf("語%d", i),
			Kana:    fmt.Sprintf("ご%d", i),
			Romaji:  fmt.Sprintf("go%d", i),
			English: fmt.Sprintf("word %d", i),
		}
	}
	table, err := vocab.FromEntries(entries)
	if err != nil {
		t.Fatal(err)
	}

	store := &memStore{frames: frames}
	ctrl := lifecycle.New(store, widget.Factory(rotation.NewSelector(table), widget.WithClock(clock)),
		lifecycle.WithIDSource(frame.SeededIDs(1, 2)))
	if err := ctrl.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	m := NewModel(ctrl, WithClock(clock), WithSource("test"))
	return send(m, tea.WindowSizeMsg{Width: 120, Height: 40}), store
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, k tea.KeyType) Model {
	return send(m, tea.KeyMsg{Type: k})
}

func typeRune(m Model, r rune) Model {
	return send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func at(id int64, x, y int) frame.Config {
	f := frame.Default(id)
	f.Position = frame.Point{X: x, Y: y}
	return f
}

func TestFocusFollowsLayoutOrder(t *testing.T) {
	m, _ := newTestModel(t, at(1, 500, 0), at(2, 0, 0), at(3, 0, 100))

	if m.Focus() != 2 {
		t.Fatalf("expected top-left panel 2 focused, got %d", m.Focus())
	}
	m = press(m, tea.KeyTab)
	if m.Focus() != 1 {
		t.Errorf("expected 1 after tab, got %d", m.Focus())
	}
	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyTab)
	if m.Focus() != 2 {
		t.Errorf("expected focus to wrap to 2, got %d", m.Focus())
	}
	m = press(m, tea.KeyShiftTab)
	if m.Focus() != 3 {
		t.Errorf("expected 3 after shift+tab, got %d", m.Focus())
	}
}

func TestCycleOffsetKeys(t *testing.T) {
	m, _ := newTestModel(t, frame.Default(5))

	m = typeRune(m, '[')
	if f, _ := m.ctrl.Frame(5); f.LookatOffset != 3 {
		t.Errorf("expected offset 3, got %d", f.LookatOffset)
	}
	m = typeRune(m, ']')
	m = typeRune(m, ']')
	if f, _ := m.ctrl.Frame(5); f.LookatOffset != 1 {
		t.Errorf("expected offset 1, got %d", f.LookatOffset)
	}

	w, _ := m.ctrl.Widget(5)
	f, _ := m.ctrl.Frame(5)
	if want := fmt.Sprintf("語%d", rotation.Index(20742, f.InstanceKey(), 20)); w.Entry().Word != want {
		t.Errorf("expected %s, got %s", want, w.Entry().Word)
	}
}

func TestLockAndMoveKeys(t *testing.T) {
	m, _ := newTestModel(t, at(5, 100, 100))

	m = press(m, tea.KeyRight)
	if f, _ := m.ctrl.Frame(5); f.Position.X != 100 {
		t.Errorf("locked panel moved to %+v", f.Position)
	}
	if !strings.Contains(m.statusMsg, "locked") {
		t.Errorf("expected locked hint, got %q", m.statusMsg)
	}

	m = press(m, tea.KeyCtrlL)
	m = press(m, tea.KeyRight)
	m = press(m, tea.KeyUp)
	if f, _ := m.ctrl.Frame(5); f.Position != (frame.Point{X: 100 + moveStep, Y: 100 - moveStep}) {
		t.Errorf("unexpected position %+v", f.Position)
	}
}

func TestCloneAndDeleteKeys(t *testing.T) {
	src := frame.Default(5)
	src.Font = "Klee One"
	m, _ := newTestModel(t, src)

	m = press(m, tea.KeyCtrlN)
	if m.ctrl.Len() != 2 {
		t.Fatalf("expected 2 panels, got %d", m.ctrl.Len())
	}
	clone, ok := m.ctrl.Frame(m.Focus())
	if !ok || clone.ID == 5 {
		t.Fatalf("focus must move to the clone, got %d", m.Focus())
	}
	if clone.Font != "Klee One" || clone.Position.X != frame.DefaultX+cloneShift {
		t.Errorf("unexpected clone %+v", clone)
	}

	w, _ := m.ctrl.Widget(clone.ID)
	if want := fmt.Sprintf("created panel %d (%s)", clone.ID, w.ShortHandle()); m.statusMsg != want {
		t.Errorf("expected status %q, got %q", want, m.statusMsg)
	}

	m = press(m, tea.KeyCtrlD)
	if want := fmt.Sprintf("deleted panel %d (%s)", clone.ID, w.ShortHandle()); m.statusMsg != want {
		t.Errorf("expected status %q, got %q", want, m.statusMsg)
	}
	if m.ctrl.Len() != 1 || m.Focus() != 5 {
		t.Errorf("expected only panel 5 focused, got len=%d focus=%d", m.ctrl.Len(), m.Focus())
	}

	m = press(m, tea.KeyCtrlD)
	if m.ctrl.Len() != 0 || m.Focus() != 0 {
		t.Errorf("expected no panels, got len=%d focus=%d", m.ctrl.Len(), m.Focus())
	}
	if !strings.Contains(m.View(), "ctrl+n") {
		t.Error("empty state must point at ctrl+n")
	}

	m = press(m, tea.KeyCtrlN)
	if m.ctrl.Len() != 1 {
		t.Fatalf("ctrl+n with no panels must create a default one")
	}
	f, _ := m.ctrl.Frame(m.Focus())
	if f.Font != frame.DefaultFont {
		t.Errorf("expected default font, got %s", f.Font)
	}
}

func TestRolloverWaitsForKeyPress(t *testing.T) {
	now := fixedNow
	m, _ := newTestModelAt(t, func() time.Time { return now }, frame.Default(5))
	w, _ := m.ctrl.Widget(5)
	day := w.Day()

	now = now.Add(24 * time.Hour)
	m = send(m, clockMsg(now))
	if w.Day() != day {
		t.Fatalf("the clock tick must not re-select, day moved to %d", w.Day())
	}

	m = press(m, tea.KeyTab)
	if w.Day() != day+1 {
		t.Errorf("expected day %d after a key press, got %d", day+1, w.Day())
	}
	if !strings.HasPrefix(m.statusMsg, "new day: ") {
		t.Errorf("unexpected status %q", m.statusMsg)
	}
}

func TestSaveAndReloadKeys(t *testing.T) {
	m, store := newTestModel(t, frame.Default(5))

	m = press(m, tea.KeyCtrlS)
	if store.saves != 1 {
		t.Fatalf("expected one save, got %d", store.saves)
	}

	edited := frame.Default(5)
	edited.Font = "Edited"
	store.frames = []frame.Config{edited}
	m = press(m, tea.KeyCtrlR)
	if f, _ := m.ctrl.Frame(5); f.Font != "Edited" {
		t.Errorf("reload did not apply, got %+v", f)
	}
	if !strings.Contains(m.statusMsg, "reloaded 1") {
		t.Errorf("unexpected status %q", m.statusMsg)
	}
}

func TestQuitAndHelp(t *testing.T) {
	m, _ := newTestModel(t, frame.Default(5))

	m = typeRune(m, '?')
	if !m.help.ShowAll {
		t.Error("expected full help")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestViewShowsPanel(t *testing.T) {
	m, _ := newTestModel(t, frame.Default(5))
	w, _ := m.ctrl.Widget(5)

	view := m.View()
	for _, want := range []string{"WOTD", "2026-10-16", "1 panel", "next word in 14h 30m", w.Entry().Word, w.Entry().English} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestNeighbour(t *testing.T) {
	order := []int64{1, 2, 3}
	tests := []struct {
		removed, want int64
	}{
		{1, 2},
		{2, 3},
		{3, 2},
		{9, 0},
	}
	for _, tt := range tests {
		if got := neighbour(order, tt.removed); got != tt.want {
			t.Errorf("neighbour(%d) = %d, want %d", tt.removed, got, tt.want)
		}
	}
	if got := neighbour([]int64{4}, 4); got != 0 {
		t.Errorf("expected 0 for last panel, got %d", got)
	}
}
