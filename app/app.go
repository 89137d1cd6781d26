package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gridsnap/config"
	"gridsnap/geom"
	"gridsnap/inspect"
	"gridsnap/keys"
	"gridsnap/log"
	"gridsnap/monitor"
	"gridsnap/placement"
	"gridsnap/platform"
	"gridsnap/selection"
	"gridsnap/session"
	"gridsnap/ui"
	"gridsnap/ui/layout"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// resultDisplay is how long a result stays on the status line.
const resultDisplay = 5 * time.Second

// Options configures the overlay program.
type Options struct {
	Backend platform.Backend
	Config  *config.Config
	State   *config.State
	// Apply moves the active window; without it placements are only shown.
	Apply bool
	// Copy puts the final rectangle on the clipboard.
	Copy bool
	// Once quits after the first session ends.
	Once bool
	// Watcher delivers config and layout file changes. May be nil.
	Watcher *config.Watcher
}

// Run is the main entrypoint into the overlay.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m, err := newHome(ctx, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()

	cancel()
	<-m.ctrl.Done()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

type home struct {
	ctx context.Context

	// -- Configuration --

	opts    Options
	cfg     *config.Config
	state   *config.State
	backend platform.Backend

	// -- Session --

	ctrl *session.Controller
	// events carries hook calls from the controller goroutine to Update.
	events   chan tea.Msg
	progress session.Progress
	result   ui.Result
	// resultSeq invalidates pending hideResultMsg when a newer result lands.
	resultSeq int

	// -- UI Components --

	width, height int
	constraints   layout.Constraints
	desktop       *ui.DesktopView
	keymap        keyMap
	help          help.Model
	showFullHelp  bool
}

func newHome(ctx context.Context, opts Options) (*home, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.State == nil {
		opts.State = config.DefaultState()
	}
	if opts.Backend == nil {
		return nil, fmt.Errorf("no window backend")
	}

	snap, err := BuildSnapshot(opts.Backend, opts.Config)
	if err != nil {
		return nil, err
	}

	m := &home{
		ctx:     ctx,
		opts:    opts,
		cfg:     opts.Config,
		state:   opts.State,
		backend: opts.Backend,
		events:  make(chan tea.Msg, session.DefaultQueueSize),
		desktop: ui.NewDesktopView(),
		keymap:  newKeyMap(),
		help:    help.New(),
		progress: session.Progress{
			Active: opts.State.LastMonitor,
			Layout: snap.Layout,
			Grids:  snap.Grids,
		},
	}
	m.result = ui.LastPlaced(m.state, time.Now())
	m.desktop.SetProgress(m.progress)

	m.ctrl, err = session.NewController(snap, m.hooks(), session.Options{Timeout: opts.Config.Timeout()})
	if err != nil {
		return nil, err
	}
	go func() {
		if err := m.ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.ErrorLog.Printf("session controller stopped: %v", err)
		}
	}()
	return m, nil
}

// hooks forward controller callbacks into the tea event loop.
func (m *home) hooks() session.Hooks {
	send := func(msg tea.Msg) {
		select {
		case m.events <- msg:
		case <-m.ctx.Done():
		}
	}
	return session.Hooks{
		OnProgress: func(p session.Progress) { send(progressMsg(p)) },
		OnFinished: func(id monitor.ID, r geom.Rect) {
			send(finishedMsg{placement: placement.Placement{Monitor: id, Rect: r}})
		},
		OnCancelled: func(reason selection.Reason) { send(cancelledMsg{reason: reason}) },
	}
}

// updateHandleWindowSizeEvent sets the sizes of the components.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.constraints = layout.ComputeConstraints(msg.Width, msg.Height)
	d := layout.ComputeDegradation(m.constraints)

	m.desktop.SetSize(m.constraints.CanvasWidth, m.constraints.CanvasHeight)
	m.desktop.SetHideNames(d.HideMonitorNames)
	m.help.Width = msg.Width
	log.RenderTrace("app", "resize %dx%d mode=%s canvas=%dx%d", msg.Width, msg.Height,
		m.constraints.Mode, m.constraints.CanvasWidth, m.constraints.CanvasHeight)
}

func (m *home) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.waitForChange())
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.inspect()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil
	case progressMsg:
		m.progress = session.Progress(msg)
		m.desktop.SetProgress(m.progress)
		return m, m.waitForEvent()
	case finishedMsg:
		return m, tea.Batch(m.waitForEvent(), m.place(msg.placement))
	case cancelledMsg:
		return m, tea.Batch(m.waitForEvent(), m.cancelled(msg.reason))
	case configChangedMsg:
		return m, tea.Batch(m.waitForChange(), m.reload(config.Change(msg)))
	case hideResultMsg:
		if msg.seq == m.resultSeq {
			m.result = ui.LastPlaced(m.state, time.Now())
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	open := m.progress.Open
	switch {
	case !open && key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case !open && key.Matches(msg, m.keymap.Help):
		m.showFullHelp = !m.showFullHelp
		return m, nil
	case key.Matches(msg, m.keymap.Toggle):
		if err := m.ctrl.Toggle(m.state.LastMonitor); err != nil {
			return m, m.handleError(err)
		}
		return m, nil
	case open:
		in, ok := keys.Classify(msg.String())
		if !ok {
			return m, nil
		}
		log.InputTrace("key %q -> %s", msg.String(), in.Kind)
		return m, m.post(session.FromKeys(in))
	}
	return m, nil
}

func (m *home) post(in session.Input) tea.Cmd {
	if err := m.ctrl.Post(in); err != nil {
		return m.handleError(err)
	}
	return nil
}

// place applies a finished placement to the active window.
func (m *home) place(p placement.Placement) tea.Cmd {
	final := p.Rect
	if m.opts.Apply {
		var err error
		if final, err = m.apply(p.Rect); err != nil {
			return m.handleError(fmt.Errorf("could not place window: %w", err))
		}
	}
	p.Rect = final

	if m.opts.Copy {
		if err := clipboard.WriteAll(final.String()); err != nil {
			log.WarningLog.Printf("failed to copy placement: %v", err)
		}
	}

	if err := m.state.RecordPlacement(p); err != nil {
		log.WarningLog.Printf("failed to save state: %v", err)
	}
	log.InfoLog.Printf("placed %s on %s", final, p.Monitor)

	verb := "selected"
	if m.opts.Apply {
		verb = "placed"
	}
	cmd := m.showResult(ui.Result{Kind: ui.ResultPlaced, Message: fmt.Sprintf("%s %s on %s", verb, final, m.monitorName(p.Monitor))})
	if m.opts.Once {
		return tea.Quit
	}
	return cmd
}

// apply moves the active window, clamped to its size limits when the
// configuration asks for it.
func (m *home) apply(r geom.Rect) (geom.Rect, error) {
	h, err := m.backend.ActiveWindow()
	if err != nil {
		return r, err
	}
	if m.cfg.ApplyConstraints {
		wc, err := m.backend.Constraints(h)
		if err != nil {
			return r, err
		}
		if r, err = placement.Constrain(r, wc); err != nil {
			return r, err
		}
	}
	return r, m.backend.MoveResize(h, r)
}

func (m *home) cancelled(reason selection.Reason) tea.Cmd {
	res := ui.Result{Kind: ui.ResultCancelled, Message: "cancelled: " + reason.String()}
	if reason == selection.ReasonNotAdjacent {
		res = ui.Result{Kind: ui.ResultError, Message: "monitors are not side by side"}
	}
	cmd := m.showResult(res)
	if m.opts.Once {
		return tea.Quit
	}
	return cmd
}

// reload rebuilds the session snapshot after a watched file changed. The
// previous snapshot stays in use when the new one is invalid.
func (m *home) reload(c config.Change) tea.Cmd {
	cfg := m.cfg
	backend := m.backend
	switch c.Kind {
	case config.ConfigChanged:
		cfg = config.LoadConfig()
	case config.LayoutChanged:
		b, err := platform.LoadFixture(c.Path)
		if err != nil {
			return m.handleError(err)
		}
		backend = b
	}

	snap, err := BuildSnapshot(backend, cfg)
	if err != nil {
		return m.handleError(fmt.Errorf("keeping previous layout: %w", err))
	}
	if err := m.ctrl.Replace(snap); err != nil {
		return m.handleError(err)
	}
	m.cfg, m.backend = cfg, backend
	log.InfoLog.Printf("%s reloaded from %s", c.Kind, c.Path)
	return nil
}

func (m *home) monitorName(id monitor.ID) string {
	if m.progress.Layout != nil {
		if d, ok := m.progress.Layout.Lookup(id); ok && d.Name != "" {
			return d.Name
		}
	}
	return id.Short()
}

// handleError shows err on the status line until the next result.
func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	return m.showResult(ui.Result{Kind: ui.ResultError, Message: err.Error()})
}

func (m *home) showResult(res ui.Result) tea.Cmd {
	m.result = res
	m.resultSeq++
	seq := m.resultSeq
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(resultDisplay):
		}
		return hideResultMsg{seq: seq}
	}
}

func (m *home) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.events:
			return msg
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *home) waitForChange() tea.Cmd {
	w := m.opts.Watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case c, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return configChangedMsg(c)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *home) inspect() {
	if !inspect.IsEnabled() {
		return
	}
	snap := inspect.NewSnapshot().
		WithTerminal(m.width, m.height).
		WithLayout(m.constraints, layout.ComputeDegradation(m.constraints)).
		WithProgress(m.progress, m.result.Message).
		WithComponents(m.desktop)
	if err := inspect.WriteSnapshot(snap); err != nil {
		log.WarningLog.Printf("failed to write inspect snapshot: %v", err)
	}
}

// progressMsg carries a session.Progress from the controller.
type progressMsg session.Progress

type finishedMsg struct {
	placement placement.Placement
}

type cancelledMsg struct {
	reason selection.Reason
}

type configChangedMsg config.Change

// hideResultMsg clears the status line result once it has been shown long
// enough.
type hideResultMsg struct {
	seq int
}

func (m *home) View() string {
	c := m.constraints
	d := layout.ComputeDegradation(c)

	var parts []string
	if !d.HideHeader && c.HeaderHeight > 0 {
		parts = append(parts, ui.Header(m.progress, c.TerminalWidth))
	}
	if c.CanvasHeight > 0 {
		if d.ShowMinWarning {
			parts = append(parts, lipgloss.Place(c.CanvasWidth, c.CanvasHeight, lipgloss.Center, lipgloss.Center,
				ui.TextStyles.Muted.Render("terminal too small")))
		} else {
			parts = append(parts, m.desktop.String())
		}
	}
	if c.StatusHeight > 0 {
		parts = append(parts, ui.StatusLine(m.progress, m.result, c.TerminalWidth))
	}
	if !d.HideHelp {
		h := m.help
		h.ShowAll = m.showFullHelp && d.FullHelp
		parts = append(parts, h.View(m.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
