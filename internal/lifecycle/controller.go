// Package lifecycle keeps the persisted frame collection and the live
// widgets in 1:1 correspondence by id.
//
// Every operation that adds or removes a panel touches the registry map,
// the collection order and the widget in the same call. All methods must
// be called from a single goroutine (the UI event loop).
package lifecycle

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Mr-Dark-debug/wotd/internal/frame"

	"github.com/google/uuid"
)

// ErrLookupMiss is returned internally when an operation names an id with
// no live widget. Callers see a false result; the miss is logged at debug.
var ErrLookupMiss = errors.New("no live frame with that id")

// Widget is a live panel instance bound to one frame config.
type Widget interface {
	// Start moves a created widget to running.
	Start()
	// Stop destroys the widget.
	Stop()
	// Refresh re-selects content if its inputs changed.
	Refresh() bool
	// Reconfigure is called after the bound config was replaced on reload.
	Reconfigure()
	Locked() bool
	SetLocked(locked bool)
	// Handle names this live instance in log lines. Unlike the frame id it
	// is never persisted or reused.
	Handle() uuid.UUID
}

// Factory builds a widget bound to cfg. The pointer stays valid until the
// widget is deleted; the controller mutates it in place.
type Factory[W Widget] func(cfg *frame.Config) W

// ConfigStore persists the frame collection.
type ConfigStore interface {
	Load() ([]frame.Config, error)
	Save(frames []frame.Config) error
}

type entry[W Widget] struct {
	cfg    *frame.Config
	widget W
}

// Controller owns the frame registry.
type Controller[W Widget] struct {
	store   ConfigStore
	ids     frame.IDSource
	factory Factory[W]
	log     *slog.Logger

	entries map[int64]*entry[W]
	order   []int64
	closed  bool
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	ids frame.IDSource
	log *slog.Logger
}

// WithIDSource sets the id generator for new frames.
func WithIDSource(ids frame.IDSource) Option {
	return func(o *options) { o.ids = ids }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// New creates an empty controller. Call Open to populate it from the store.
func New[W Widget](store ConfigStore, factory Factory[W], opts ...Option) *Controller[W] {
	o := options{
		ids: frame.NewRandomIDs(),
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller[W]{
		store:   store,
		ids:     o.ids,
		factory: factory,
		log:     o.log,
		entries: make(map[int64]*entry[W]),
	}
}

// Open loads the collection and starts one widget per frame, in file order.
func (c *Controller[W]) Open() error {
	frames, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("loading frames: %w", err)
	}
	for _, f := range frames {
		if c.taken(f.ID) {
			old := f.ID
			f.ID = frame.UniqueID(c.ids, c.taken)
			c.log.Warn("lifecycle: duplicate frame id, reassigned", "old", old, "new", f.ID)
		}
		c.register(f)
	}
	c.log.Info("lifecycle: opened", "frames", len(c.order))
	return nil
}

func (c *Controller[W]) taken(id int64) bool {
	_, ok := c.entries[id]
	return ok
}

func (c *Controller[W]) register(f frame.Config) W {
	cfg := f
	w := c.factory(&cfg)
	c.entries[cfg.ID] = &entry[W]{cfg: &cfg, widget: w}
	c.order = append(c.order, cfg.ID)
	w.Start()
	return w
}

func (c *Controller[W]) lookup(id int64) (*entry[W], error) {
	e, ok := c.entries[id]
	if !ok {
		return nil, fmt.Errorf("frame %d: %w", id, ErrLookupMiss)
	}
	return e, nil
}

// CreateWindow adds a panel at pos. With inherit set the new frame copies
// its presentation; otherwise it takes every default. The new id is unique
// among live frames.
func (c *Controller[W]) CreateWindow(inherit *frame.Config, pos frame.Point) int64 {
	id := frame.UniqueID(c.ids, c.taken)

	var f frame.Config
	if inherit != nil {
		f = frame.InheritFrom(*inherit, id)
	} else {
		f = frame.Default(id)
	}
	f.Position = pos

	w := c.register(f)
	c.log.Info("lifecycle: created frame", "id", id, "handle", w.Handle(), "inherited", inherit != nil, "x", pos.X, "y", pos.Y)
	return id
}

// Clone creates a panel inheriting the presentation of frame id, placed at
// its position shifted by (dx, dy).
func (c *Controller[W]) Clone(id int64, dx, dy int) (int64, bool) {
	e, err := c.lookup(id)
	if err != nil {
		c.log.Debug("lifecycle: clone", "error", err)
		return 0, false
	}
	src := *e.cfg
	pos := frame.Point{X: src.Position.X + dx, Y: src.Position.Y + dy}
	return c.CreateWindow(&src, pos), true
}

// DeleteWindow stops the widget and removes the frame from the collection.
// An unknown id is a no-op that returns false.
func (c *Controller[W]) DeleteWindow(id int64) bool {
	e, err := c.lookup(id)
	if err != nil {
		c.log.Debug("lifecycle: delete", "error", err)
		return false
	}

	delete(c.entries, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	e.widget.Stop()

	c.log.Info("lifecycle: deleted frame", "id", id, "handle", e.widget.Handle(), "remaining", len(c.order))
	return true
}

// ReloadAll re-reads the store and pushes each record into the live widget
// with the same id. Records with no live widget are ignored and live
// widgets missing from the file keep their config. It returns the number
// of widgets updated.
func (c *Controller[W]) ReloadAll() (int, error) {
	frames, err := c.store.Load()
	if err != nil {
		return 0, fmt.Errorf("reloading frames: %w", err)
	}

	n := 0
	for _, f := range frames {
		e, err := c.lookup(f.ID)
		if err != nil {
			c.log.Debug("lifecycle: reload skipped record", "error", err)
			continue
		}
		if changes := frame.Diff(*e.cfg, f); len(changes) > 0 {
			c.log.Info("lifecycle: frame changed on disk", "id", f.ID, "handle", e.widget.Handle(), "changes", changes)
		}
		e.cfg.Adopt(f)
		e.widget.Reconfigure()
		n++
	}
	c.log.Info("lifecycle: reloaded", "records", len(frames), "updated", n)
	return n, nil
}

// CycleOffset moves the look-at offset of frame id by dir, wrapping within
// [0,3], and lets the widget re-select.
func (c *Controller[W]) CycleOffset(id int64, dir int) bool {
	e, err := c.lookup(id)
	if err != nil {
		c.log.Debug("lifecycle: cycle offset", "error", err)
		return false
	}
	e.cfg.CycleOffset(dir)
	e.widget.Refresh()
	c.log.Debug("lifecycle: offset", "id", id, "offset", e.cfg.LookatOffset)
	return true
}

// ToggleLock flips the lock state of frame id.
func (c *Controller[W]) ToggleLock(id int64) bool {
	e, err := c.lookup(id)
	if err != nil {
		c.log.Debug("lifecycle: toggle lock", "error", err)
		return false
	}
	e.widget.SetLocked(!e.widget.Locked())
	c.log.Debug("lifecycle: lock", "id", id, "locked", e.widget.Locked())
	return true
}

// Move shifts frame id by (dx, dy). Locked frames do not move.
func (c *Controller[W]) Move(id int64, dx, dy int) bool {
	e, err := c.lookup(id)
	if err != nil {
		c.log.Debug("lifecycle: move", "error", err)
		return false
	}
	if e.widget.Locked() {
		return false
	}
	e.cfg.Position.X += dx
	e.cfg.Position.Y += dy
	return true
}

// Refresh lets every widget notice a day rollover. It reports whether any
// widget changed its entry.
func (c *Controller[W]) Refresh() bool {
	changed := false
	for _, id := range c.order {
		if c.entries[id].widget.Refresh() {
			changed = true
		}
	}
	return changed
}

// Save writes the collection in order.
func (c *Controller[W]) Save() error {
	if err := c.store.Save(c.Frames()); err != nil {
		return fmt.Errorf("saving frames: %w", err)
	}
	c.log.Info("lifecycle: saved", "frames", len(c.order))
	return nil
}

// Frames returns a snapshot of the collection in order.
func (c *Controller[W]) Frames() []frame.Config {
	out := make([]frame.Config, len(c.order))
	for i, id := range c.order {
		out[i] = *c.entries[id].cfg
	}
	return out
}

// Frame returns a copy of the config of frame id.
func (c *Controller[W]) Frame(id int64) (frame.Config, bool) {
	e, ok := c.entries[id]
	if !ok {
		return frame.Config{}, false
	}
	return *e.cfg, true
}

// Widget returns the live widget of frame id.
func (c *Controller[W]) Widget(id int64) (W, bool) {
	e, ok := c.entries[id]
	if !ok {
		var zero W
		return zero, false
	}
	return e.widget, true
}

// IDs returns frame ids in collection order.
func (c *Controller[W]) IDs() []int64 {
	return append([]int64(nil), c.order...)
}

// Len returns the number of live frames.
func (c *Controller[W]) Len() int { return len(c.order) }

// Close stops every widget. The collection is left intact so it can still
// be saved.
func (c *Controller[W]) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for _, id := range c.order {
		c.entries[id].widget.Stop()
	}
	c.log.Info("lifecycle: closed", "frames", len(c.order))
}
