package tui

import (
	"fmt"
	"time"

	"github.com/Mr-Dark-debug/wotd/internal/frame"
	"github.com/Mr-Dark-debug/wotd/internal/lifecycle"
	"github.com/Mr-Dark-debug/wotd/internal/widget"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Controller is the registry the model drives.
type Controller = lifecycle.Controller[*widget.Panel]

const (
	// moveStep is how far one arrow press moves an unlocked panel.
	moveStep = 10
	// cloneShift offsets a cloned panel from its source.
	cloneShift = 20
)

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Model is the root BubbleTea model hosting the word panels.
// Rendering is delegated to component functions in separate files.
type Model struct {
	ctrl  *Controller
	keys  KeyMap
	help  help.Model
	clock func() time.Time

	// vocabulary description for the header
	source string

	// UI state
	focus  int64
	width  int
	height int

	// Status
	statusMsg string
	err       error
}

// Option configures a Model.
type Option func(*Model)

// WithClock replaces time.Now for the header countdown.
func WithClock(clock func() time.Time) Option {
	return func(m *Model) { m.clock = clock }
}

// WithSource names the vocabulary in the header.
func WithSource(source string) Option {
	return func(m *Model) { m.source = source }
}

// NewModel creates the model over an opened controller. The first panel
// in layout order has focus.
func NewModel(ctrl *Controller, opts ...Option) Model {
	m := Model{
		ctrl:  ctrl,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if ids := m.layoutOrder(); len(ids) > 0 {
		m.focus = ids[0]
	}
	m.statusMsg = fmt.Sprintf("%d panels", ctrl.Len())
	return m
}

// Focus returns the id of the focused panel, or 0 when there is none.
func (m Model) Focus() int64 { return m.focus }

// ────────────────────────────────────────────────────────────
// Messages
// ────────────────────────────────────────────────────────────

// clockMsg redraws the header countdown. Panels notice rollover on the next
// key press, when the controller is refreshed.
type clockMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// ────────────────────────────────────────────────────────────
// Init
// ────────────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return tick()
}

// ────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		next, cmd := m.handleKey(msg)
		if next.ctrl.Refresh() {
			next.setStatus("new day: " + next.today())
		}
		return next, cmd

	case clockMsg:
		return m, tick()
	}

	return m, nil
}

// handleKey routes keyboard input to the controller.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.NextPanel):
		m.moveFocus(+1)

	case key.Matches(msg, m.keys.PrevPanel):
		m.moveFocus(-1)

	case key.Matches(msg, m.keys.Clone):
		var id int64
		if cloned, ok := m.ctrl.Clone(m.focus, cloneShift, cloneShift); ok {
			id = cloned
		} else {
			id = m.ctrl.CreateWindow(nil, frame.Point{X: frame.DefaultX, Y: frame.DefaultY})
		}
		m.focus = id
		m.setStatus(fmt.Sprintf("created panel %d (%s)", id, m.handle(id)))

	case key.Matches(msg, m.keys.Delete):
		order := m.layoutOrder()
		handle := m.handle(m.focus)
		if m.ctrl.DeleteWindow(m.focus) {
			m.setStatus(fmt.Sprintf("deleted panel %d (%s)", m.focus, handle))
			m.focus = neighbour(order, m.focus)
		}

	case key.Matches(msg, m.keys.Reload):
		n, err := m.ctrl.ReloadAll()
		if err != nil {
			m.setError(err)
		} else {
			m.setStatus(fmt.Sprintf("reloaded %d panels", n))
		}

	case key.Matches(msg, m.keys.Save):
		if err := m.ctrl.Save(); err != nil {
			m.setError(err)
		} else {
			m.setStatus(fmt.Sprintf("saved %d panels", m.ctrl.Len()))
		}

	case key.Matches(msg, m.keys.Lock):
		m.ctrl.ToggleLock(m.focus)

	case key.Matches(msg, m.keys.OffsetNext):
		m.ctrl.CycleOffset(m.focus, +1)

	case key.Matches(msg, m.keys.OffsetPrev):
		m.ctrl.CycleOffset(m.focus, -1)

	case key.Matches(msg, m.keys.Up):
		m.move(0, -moveStep)

	case key.Matches(msg, m.keys.Down):
		m.move(0, moveStep)

	case key.Matches(msg, m.keys.Left):
		m.move(-moveStep, 0)

	case key.Matches(msg, m.keys.Right):
		m.move(moveStep, 0)
	}

	return m, nil
}

func (m *Model) move(dx, dy int) {
	if !m.ctrl.Move(m.focus, dx, dy) {
		if w, ok := m.ctrl.Widget(m.focus); ok && w.Locked() {
			m.setStatus("panel is locked (ctrl+l to unlock)")
		}
	}
}

// handle returns the short live handle of panel id, matching the
// handle field of the log lines for that panel.
func (m Model) handle(id int64) string {
	if w, ok := m.ctrl.Widget(id); ok {
		return w.ShortHandle()
	}
	return "-"
}

func (m *Model) moveFocus(dir int) {
	ids := m.layoutOrder()
	if len(ids) == 0 {
		return
	}
	i := indexOf(ids, m.focus)
	if i < 0 {
		m.focus = ids[0]
		return
	}
	m.focus = ids[(i+dir+len(ids))%len(ids)]
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.err = nil
}

func (m *Model) setError(err error) {
	m.err = err
	m.statusMsg = fmt.Sprintf("Error: %v", err)
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	header := renderHeader(&m)
	footer := renderFooter(&m)

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)

	var body string
	if m.ctrl.Len() == 0 {
		body = emptyStateStyle.Render("No panels. Press ctrl+n to create one.")
	} else {
		body = renderPanels(&m)
	}
	body = lipgloss.NewStyle().Height(maxInt(bodyHeight, 0)).MaxHeight(maxInt(bodyHeight, 0)).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
