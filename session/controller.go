// Package session runs selection sessions. A Controller owns the state
// machine and is driven by one goroutine draining an ordered input queue.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gridsnap/geom"
	"gridsnap/grid"
	"gridsnap/log"
	"gridsnap/monitor"
	"gridsnap/placement"
	"gridsnap/selection"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultQueueSize = 64
)

// ErrStopped is returned by Post after Run has returned.
var ErrStopped = errors.New("session controller stopped")

// Snapshot is everything a session resolves against. It is replaced
// wholesale, never mutated.
type Snapshot struct {
	Layout *monitor.Layout
	Grids  grid.Set
	Gaps   placement.Gaps
}

// Validate checks that every monitor has a grid.
func (s Snapshot) Validate() error {
	if s.Layout == nil || s.Layout.Len() == 0 {
		return monitor.ErrNoMonitors
	}
	for _, d := range s.Layout.Ordered() {
		if _, ok := s.Grids[d.ID]; !ok {
			return fmt.Errorf("monitor %s has no grid", d.ID.Short())
		}
	}
	return s.Gaps.Validate()
}

// StartedCell is the first key of a selection in progress.
type StartedCell struct {
	Monitor monitor.ID     `json:"monitor"`
	Cell    grid.CellIndex `json:"cell"`
}

// Progress is the read-only projection the overlay renders.
type Progress struct {
	Open    bool         `json:"open"`
	Active  monitor.ID   `json:"active"`
	Started *StartedCell `json:"started,omitempty"`
	// Last is the kind of the input that produced this projection.
	Last string `json:"last"`

	Layout *monitor.Layout `json:"-"`
	Grids  grid.Set        `json:"-"`
}

// Hooks are called from the controller goroutine. Each session ends with
// exactly one call to OnFinished or OnCancelled.
type Hooks struct {
	OnProgress  func(Progress)
	OnFinished  func(monitor.ID, geom.Rect)
	OnCancelled func(selection.Reason)
}

type Options struct {
	// Timeout cancels a session after this long without input.
	Timeout   time.Duration
	QueueSize int
}

// Controller serializes all session inputs onto one goroutine.
type Controller struct {
	opts   Options
	hooks  Hooks
	inputs chan Input
	done   chan struct{}

	// Owned by the Run goroutine.
	snap     Snapshot
	machine  *selection.Machine
	active   monitor.ID
	gen      uint64
	timer    *time.Timer
	openedAt time.Time
}

// NewController validates snap and returns a controller. Call Run to start
// processing.
func NewController(snap Snapshot, hooks Hooks, opts Options) (*Controller, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	return &Controller{
		opts:    opts,
		hooks:   hooks,
		inputs:  make(chan Input, opts.QueueSize),
		done:    make(chan struct{}),
		snap:    snap,
		machine: selection.NewMachine(snap.Layout, snap.Grids),
	}, nil
}

// Post enqueues an input. It blocks while the queue is full and fails once
// the controller has stopped.
func (c *Controller) Post(in Input) error {
	select {
	case <-c.done:
		return ErrStopped
	default:
	}
	select {
	case c.inputs <- in:
		return nil
	case <-c.done:
		return ErrStopped
	}
}

// Replace swaps the snapshot used by later sessions. An open session is
// cancelled first.
func (c *Controller) Replace(snap Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	return c.Post(replace{snap: snap})
}

// Toggle opens a session on m, or cancels the open one.
func (c *Controller) Toggle(m monitor.ID) error {
	return c.Post(Activate{Monitor: m})
}

// Done is closed when Run returns.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Run processes inputs in arrival order until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.done)
	defer c.stopTimer()

	for {
		select {
		case <-ctx.Done():
			if c.machine.IsOpen() {
				c.machine.Reset()
				c.finishCancelled(selection.ReasonCancelled)
			}
			return ctx.Err()
		case in := <-c.inputs:
			c.handle(in)
		}
	}
}

func (c *Controller) handle(in Input) {
	done := log.GetProfiler().StartEvent(in.kind())
	defer done()

	var ev selection.Event
	switch in := in.(type) {
	case Activate:
		if c.machine.IsOpen() {
			log.SessionTrace("activation while open, cancelling")
			c.machine.Reset()
			c.finishCancelled(selection.ReasonToggled)
			return
		}
		c.open(in.Monitor)
		return
	case Key:
		ev = selection.KeyEvent{Key: in.Rune, Monitor: c.active}
	case InvalidKey:
		ev = selection.InvalidKeyEvent{Key: in.Rune}
	case Navigate:
		if next, ok := c.snap.Layout.Toward(c.active, in.Direction); ok && c.machine.IsOpen() {
			log.InputTrace("navigate %s: %s -> %s", in.Direction, c.active.Short(), next.Short())
			c.active = next
		}
		ev = selection.NavigateEvent{Direction: in.Direction, Monitor: c.active}
	case Cancel:
		ev = selection.CancelEvent{}
	case timeout:
		if in.gen != c.gen {
			return
		}
		ev = selection.TimeoutEvent{}
	case replace:
		c.swap(in.snap)
		return
	default:
		return
	}

	c.apply(in.kind(), c.machine.Handle(ev))
}

func (c *Controller) open(m monitor.ID) {
	if !c.snap.Layout.Has(m) {
		m = c.snap.Layout.Primary().ID
	}
	c.active = m
	c.openedAt = time.Now()
	c.machine.Open()
	c.arm()
	log.SessionTrace("opened on %s", m.Short())
	c.emit("activate")
}

func (c *Controller) swap(snap Snapshot) {
	removed := c.snap.Layout.Removed(snap.Layout)
	if c.machine.IsOpen() {
		c.apply("replace", c.machine.Handle(selection.LayoutChangedEvent{Removed: removed}))
	}
	log.LayoutTrace("snapshot replaced: %d monitors, %d removed", snap.Layout.Len(), len(removed))
	c.snap = snap
	c.machine = selection.NewMachine(snap.Layout, snap.Grids)
	if !snap.Layout.Has(c.active) {
		c.active = snap.Layout.Primary().ID
	}
	c.emit("replace")
}

func (c *Controller) apply(kind string, out selection.Outcome) {
	switch out.Kind {
	case selection.Ignored:
		if out.Rearm {
			c.arm()
		}
	case selection.Progressed:
		c.arm()
		c.emit(kind)
	case selection.Done:
		c.finish(out.Selection)
	case selection.Cancelled:
		c.finishCancelled(out.Reason)
	}
}

func (c *Controller) finish(sel selection.Selection) {
	engine := placement.Engine{Layout: c.snap.Layout, Grids: c.snap.Grids, Gaps: c.snap.Gaps}
	p, err := engine.Place(sel)
	if err != nil {
		if !errors.Is(err, placement.ErrNotAdjacent) {
			log.ErrorLog.Printf("could not place %s: %v", sel, err)
		}
		c.finishCancelled(selection.ReasonNotAdjacent)
		return
	}

	c.stopTimer()
	c.recordSession()
	log.SessionTrace("finished %s -> %s", sel, p.Rect)
	c.emit("finished")
	if c.hooks.OnFinished != nil {
		c.hooks.OnFinished(p.Monitor, p.Rect)
	}
}

func (c *Controller) finishCancelled(reason selection.Reason) {
	c.stopTimer()
	c.recordSession()
	log.SessionTrace("cancelled: %s", reason)
	c.emit("cancelled")
	if c.hooks.OnCancelled != nil {
		c.hooks.OnCancelled(reason)
	}
}

func (c *Controller) recordSession() {
	if !c.openedAt.IsZero() {
		log.GetProfiler().RecordSession(time.Since(c.openedAt))
		c.openedAt = time.Time{}
	}
}

func (c *Controller) emit(last string) {
	if c.hooks.OnProgress == nil {
		return
	}
	p := Progress{
		Open:   c.machine.IsOpen(),
		Active: c.active,
		Last:   last,
		Layout: c.snap.Layout,
		Grids:  c.snap.Grids,
	}
	if sel := c.machine.Selection(); sel.Phase == selection.Started {
		p.Started = &StartedCell{Monitor: sel.MonitorStart, Cell: sel.Start}
	}
	c.hooks.OnProgress(p)
}

// arm restarts the inactivity timer. Fires from earlier generations are
// dropped by handle.
func (c *Controller) arm() {
	c.stopTimer()
	c.gen++
	gen := c.gen
	c.timer = time.AfterFunc(c.opts.Timeout, func() {
		_ = c.Post(timeout{gen: gen})
	})
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}
