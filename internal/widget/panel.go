// Package widget implements the live word panel bound to one frame config.
//
// A Panel is Created by its factory, Running after Start and Destroyed
// after Stop; there are no other states. Lock is a display sub-state of
// Running. The panel caches its selected entry together with the day
// bucket and instance key it was selected for, and re-selects on Refresh
// only when either has changed, so day rollover is noticed the first time
// the panel is refreshed on the new day.
package widget

import (
	"io"
	"log/slog"
	"time"

	"github.com/Mr-Dark-debug/wotd/internal/frame"
	"github.com/Mr-Dark-debug/wotd/internal/rotation"
	"github.com/Mr-Dark-debug/wotd/internal/vocab"
	"github.com/Mr-Dark-debug/wotd/pkg/timeutil"

	"github.com/google/uuid"
)

// State is a panel's lifecycle state.
type State int

const (
	StateCreated State = iota
	StateRunning
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Panel is one live word panel.
type Panel struct {
	handle uuid.UUID
	cfg    *frame.Config
	sel    *rotation.Selector
	clock  func() time.Time
	log    *slog.Logger

	state  State
	locked bool

	// Selection cache.
	selected bool
	day      int64
	key      int64
	entry    vocab.Entry
}

// Option configures a Panel.
type Option func(*Panel)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(p *Panel) { p.clock = clock }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Panel) { p.log = l }
}

// New creates a panel bound to cfg. Panels start locked.
func New(cfg *frame.Config, sel *rotation.Selector, opts ...Option) *Panel {
	p := &Panel{
		handle: uuid.New(),
		cfg:    cfg,
		sel:    sel,
		clock:  time.Now,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:  StateCreated,
		locked: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Factory returns a constructor suitable for the lifecycle controller.
func Factory(sel *rotation.Selector, opts ...Option) func(cfg *frame.Config) *Panel {
	return func(cfg *frame.Config) *Panel {
		return New(cfg, sel, opts...)
	}
}

// Handle identifies this live instance in logs. It changes every run,
// unlike the persisted frame id.
func (p *Panel) Handle() uuid.UUID { return p.handle }

// ShortHandle is the first group of Handle, for status lines.
func (p *Panel) ShortHandle() string { return p.handle.String()[:8] }

// State returns the lifecycle state.
func (p *Panel) State() State { return p.state }

// Start moves a created panel to running and selects its first entry.
func (p *Panel) Start() {
	if p.state != StateCreated {
		p.log.Debug("widget: start ignored", "frame", p.cfg.ID, "state", p.state)
		return
	}
	p.state = StateRunning
	p.Refresh()
	p.log.Info("widget: started", "frame", p.cfg.ID, "handle", p.handle, "word", p.entry.Word)
}

// Stop destroys the panel. A destroyed panel never runs again.
func (p *Panel) Stop() {
	if p.state == StateDestroyed {
		return
	}
	p.state = StateDestroyed
	p.log.Info("widget: stopped", "frame", p.cfg.ID, "handle", p.handle)
}

// Reconfigure drops the selection cache after the bound config changed
// wholesale (reload). The next Refresh re-selects.
func (p *Panel) Reconfigure() {
	p.selected = false
	p.Refresh()
}

// Refresh re-selects the entry if the day or instance key changed since the
// last selection and reports whether it did.
func (p *Panel) Refresh() bool {
	if p.state != StateRunning {
		return false
	}
	day := timeutil.DayBucket(p.clock())
	key := p.cfg.InstanceKey()
	if p.selected && day == p.day && key == p.key {
		return false
	}

	prev := p.entry
	p.entry = p.sel.Select(day, key)
	if p.selected && day != p.day {
		p.log.Info("widget: day rollover", "frame", p.cfg.ID, "day", day, "from", prev.Word, "to", p.entry.Word)
	}
	p.day, p.key, p.selected = day, key, true
	return true
}

// Entry returns the currently selected entry.
func (p *Panel) Entry() vocab.Entry { return p.entry }

// Day returns the day bucket of the current selection.
func (p *Panel) Day() int64 { return p.day }

// Config returns a copy of the bound config.
func (p *Panel) Config() frame.Config { return *p.cfg }

// Locked reports whether the panel is locked in place.
func (p *Panel) Locked() bool { return p.locked }

// SetLocked changes the lock sub-state.
func (p *Panel) SetLocked(locked bool) {
	p.locked = locked
}

// Background returns the panel background for the current lock state.
func (p *Panel) Background() frame.RGBA {
	if p.locked {
		return frame.MustColour(p.cfg.LockColour, frame.DefaultLockColour)
	}
	return frame.MustColour(p.cfg.UnlockColour, frame.DefaultUnlockColour)
}

// Foregrounds returns the main and secondary text colours.
func (p *Panel) Foregrounds() (main, second frame.RGBA) {
	main = frame.MustColour(p.cfg.MainTextColour, frame.DefaultMainTextColour)
	second = frame.MustColour(p.cfg.SecondTextColour, frame.DefaultSecondTextColour)
	return main, second
}
