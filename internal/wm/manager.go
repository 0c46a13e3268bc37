package wm

import "github.com/DevByProxy/fensterchef/internal/geometry"

// Quad is four edge measurements in pixel order (left, top, right,
// bottom), used for both gaps and resize deltas.
type Quad struct {
	Left, Top, Right, Bottom int32
}

// Options are the tiling-relevant configuration knobs the frame tree and
// state machine consult. Kept separate from internal/config.Configuration
// so this package stays free of a dependency on the config format, the
// way internal/wm stays free of a dependency on any X11 package.
type Options struct {
	AutoRemoveVoid bool
	AutoFillVoid   bool
	GapsInner      Quad
	GapsOuter      Quad
	BorderSize     int32
	MinLeafSize    int32
}

// Requester is the set of X11 side-effects the state machine and frame
// tree need to perform. internal/x11 implements it; tests use a recording
// fake. Every method is fire-and-forget from the caller's perspective --
// concrete implementations queue and log protocol errors themselves instead
// of returning them.
type Requester interface {
	Configure(w *Window, rect geometry.Rect)
	Map(w *Window)
	Unmap(w *Window)
	Raise(w *Window)
	Focus(w *Window) // w == nil focuses the root/desktop
	SendDelete(w *Window)
	Kill(w *Window)
}

// Manager ties the window registry, the monitor set, and the pending
// requester together, and is the home for every cross-cutting operation
// the window registry, state machine, and frame tree call for. Grounded
// on taowm's package-level manage/unmanage (main.go) and the
// screens/workspace globals (geom.go), generalized from taowm's
// process-wide globals into an explicit, constructible record.
type Manager struct {
	Registry *Registry
	Monitors *Set
	Options  Options
	Req      Requester

	focused *Window
}

// NewManager builds a Manager over an existing monitor set.
func NewManager(monitors *Set, opts Options, req Requester) *Manager {
	return &Manager{
		Registry: NewRegistry(),
		Monitors: monitors,
		Options:  opts,
		Req:      req,
	}
}

// Focused returns the window currently holding input focus, or nil.
func (mgr *Manager) Focused() *Window { return mgr.focused }

// FocusWindow directs input focus to w (nil focuses the root window).
func (mgr *Manager) FocusWindow(w *Window) {
	mgr.focused = w
	mgr.Req.Focus(w)
}

// gapsAdjustedRect returns the rectangle a tiling window should occupy:
// its frame's rectangle inset by the configured inner gap and border.
func (mgr *Manager) gapsAdjustedRect(f *Frame) geometry.Rect {
	g := mgr.Options.GapsInner
	b := mgr.Options.BorderSize
	return f.rect.Inset(g.Left+b, g.Top+b, g.Right+b, g.Bottom+b)
}

// TargetRect computes the rectangle w should occupy given its current
// state: its frame's rectangle while tiling, the owning monitor's full
// rectangle while fullscreen, and its own stored rectangle otherwise.
func (mgr *Manager) TargetRect(w *Window) geometry.Rect {
	switch w.state {
	case Tiling:
		if w.Frame == nil {
			return w.rect
		}
		return mgr.gapsAdjustedRect(w.Frame)
	case Fullscreen:
		m := mgr.monitorFor(w)
		if m == nil {
			return w.rect
		}
		return m.Rect()
	case Popup:
		return w.popupRect
	default: // Hidden
		return w.rect
	}
}

func (mgr *Manager) monitorFor(w *Window) *Monitor {
	if w.Frame != nil && w.Frame.monitor != nil {
		return w.Frame.monitor
	}
	return mgr.Monitors.Primary()
}

// ApplyGeometry recomputes w's target rectangle and issues a configure
// request only if it differs from the last one applied. Hidden windows
// are unmapped instead.
func (mgr *Manager) ApplyGeometry(w *Window) {
	if w.state == Hidden {
		if w.lastAppliedValid {
			mgr.Req.Unmap(w)
		}
		w.lastAppliedValid = false
		return
	}
	target := mgr.TargetRect(w)
	if w.lastAppliedValid && w.lastAppliedRect == target {
		return
	}
	w.rect = target
	w.lastAppliedRect = target
	w.lastAppliedValid = true
	mgr.Req.Configure(w, target)
	if w.state == Fullscreen {
		mgr.Req.Raise(w)
	}
}

// PlaceWindow assigns w a leaf on m: the first empty leaf found by
// pre-order traversal of m's tree; if none exists and AutoFillVoid is
// false, the focused leaf is reused and its current occupant is displaced
// to Hidden; if none exists and AutoFillVoid is true, w itself is left
// unplaced (Hidden) rather than displacing anything.
func (mgr *Manager) PlaceWindow(m *Monitor, w *Window) {
	if target := m.root.FirstEmptyLeaf(); target != nil {
		target.AssignWindow(w)
		w.state = Tiling
		return
	}
	if !mgr.Options.AutoFillVoid {
		target := m.focused
		if occupant := target.win; occupant != nil {
			occupant.Vacate()
			mgr.transitionTo(occupant, Hidden)
		}
		target.AssignWindow(w)
		w.state = Tiling
		return
	}
	w.state = Hidden
}

// CreateWindow registers a new window, classifies its initial state, and
// -- for tiling windows -- places it in the currently focused monitor's
// tree. Grounded on taowm's manage (main.go).
func (mgr *Manager) CreateWindow(id XWindow, attrs Attributes, focusMonitor *Monitor) (*Window, error) {
	w, err := mgr.Registry.Create(id, attrs)
	if err != nil {
		return nil, err
	}
	w.state = PredictState(attrs, focusMonitor.Rect())
	w.previousState = Tiling
	switch w.state {
	case Tiling:
		mgr.PlaceWindow(focusMonitor, w)
	case Popup, Fullscreen:
		w.popupRect = attrs.Geometry
	}
	if w.state != Hidden {
		mgr.Req.Map(w)
	}
	mgr.ApplyGeometry(w)
	return w, nil
}

// DestroyWindow releases w's record after vacating its frame and clearing
// focus if it held it. If w was tiling and AutoRemoveVoid is set, the
// vacated leaf is collapsed, cascading up through any ancestor that also
// becomes an empty leaf. Grounded on taowm's unmanage (main.go),
// simplified because taowm's replacement-window search (picking another
// hidden window to fill the vacated frame) belongs to taowm's
// window-list feature, which this manager does not have.
func (mgr *Manager) DestroyWindow(w *Window) {
	leaf := w.Frame
	w.Vacate()
	if leaf != nil && mgr.Options.AutoRemoveVoid {
		leaf.Remove(true)
	}
	if mgr.focused == w {
		mgr.focused = nil
	}
	mgr.Registry.Destroy(w)
}

func (mgr *Manager) transitionTo(w *Window, target State) {
	w.previousState = w.state
	w.state = target
	mgr.ApplyGeometry(w)
}

// SetState drives w directly into target, applying its geometry.
func (mgr *Manager) SetState(w *Window, target State) {
	if w.state == target {
		return
	}
	mgr.transitionTo(w, target)
}

// ToggleFullscreen flips w between Fullscreen and its previous state,
// restoring whatever previousState was recorded rather than assuming
// Tiling.
func (mgr *Manager) ToggleFullscreen(w *Window) {
	if w.state == Fullscreen {
		mgr.transitionTo(w, w.previousState)
		return
	}
	mgr.transitionTo(w, Fullscreen)
}

// ToggleTiling moves w out of the tiling tree into a floating popup (at
// its frame's last rectangle) or, if it is already non-tiling, attempts to
// place it back into the focused monitor's tree.
func (mgr *Manager) ToggleTiling(w *Window, focusMonitor *Monitor) {
	if w.state == Tiling {
		r := mgr.TargetRect(w)
		w.Vacate()
		w.popupRect = r
		mgr.transitionTo(w, Popup)
		return
	}
	w.previousState = w.state
	mgr.PlaceWindow(focusMonitor, w)
	mgr.ApplyGeometry(w)
}

// Hide unmaps w but keeps its record and frame slot intact, so a later
// Show restores it.
func (mgr *Manager) Hide(w *Window) {
	mgr.SetState(w, Hidden)
}

// Show restores w from Hidden to whatever previousState was recorded.
func (mgr *Manager) Show(w *Window) {
	if w.state != Hidden {
		return
	}
	mgr.transitionTo(w, w.previousState)
}

// UpdateName records a fresh WM_NAME/_NET_WM_NAME value.
func (mgr *Manager) UpdateName(w *Window, name string) { w.name = name }

// UpdateSizeHints records a fresh WM_NORMAL_HINTS value, recomputes the
// predicted state, and transitions w if it changed.
func (mgr *Manager) UpdateSizeHints(w *Window, hints SizeHints) {
	w.hints = hints
	mgr.recomputeState(w)
}

// UpdateWMHints records a fresh WM_HINTS value, recomputes the predicted
// state, and transitions w if it changed.
func (mgr *Manager) UpdateWMHints(w *Window, hints WMHints) {
	w.wmHints = hints
	mgr.recomputeState(w)
}

func (mgr *Manager) recomputeState(w *Window) {
	attrs := Attributes{
		Geometry:         w.rect,
		Name:             w.name,
		Hints:            w.hints,
		WMHints:          w.wmHints,
		Protocols:        w.protocols,
		TransientFor:     w.transientFor,
		OverrideRedirect: w.overrideRedirect,
		Fullscreen:       w.state == Fullscreen,
	}
	m := mgr.monitorFor(w)
	predicted := PredictState(attrs, m.Rect())
	if predicted != w.state {
		if w.state == Tiling && predicted != Tiling {
			w.Vacate()
		}
		mgr.transitionTo(w, predicted)
	}
}

// ApplyConfigureRequest handles a ConfigureRequest for an already-managed
// window: tiling geometry always wins and the request is dropped; a
// popup's requested position is honored and its size is clamped to its
// size hints.
func (mgr *Manager) ApplyConfigureRequest(w *Window, requested geometry.Rect) {
	if w.state == Tiling || w.state == Fullscreen {
		return
	}
	clamped := requested
	if w.hints.HasMin {
		if clamped.Width < w.hints.MinWidth {
			clamped.Width = w.hints.MinWidth
		}
		if clamped.Height < w.hints.MinHeight {
			clamped.Height = w.hints.MinHeight
		}
	}
	if w.hints.HasMax {
		if clamped.Width > w.hints.MaxWidth {
			clamped.Width = w.hints.MaxWidth
		}
		if clamped.Height > w.hints.MaxHeight {
			clamped.Height = w.hints.MaxHeight
		}
	}
	w.popupRect = clamped
	mgr.ApplyGeometry(w)
}

// SetPopupRect updates w's own requested rectangle while it is a popup,
// and applies it. Used by internal/x11's interactive move/resize drag.
func (mgr *Manager) SetPopupRect(w *Window, rect geometry.Rect) {
	w.popupRect = rect
	mgr.ApplyGeometry(w)
}

// MigrateWindows moves every window tiled on from into to's first empty
// leaf (or, failing that, shares to's first leaf, displacing any occupant
// to Hidden), for use when from's monitor has been disconnected.
func (mgr *Manager) MigrateWindows(from, to *Monitor) {
	for _, leaf := range from.root.Leaves() {
		w := leaf.win
		if w == nil {
			continue
		}
		leaf.win = nil
		w.Frame = nil
		target := to.root.FirstEmptyLeaf()
		if target == nil {
			target = to.root.Leaves()[0]
			if occupant := target.win; occupant != nil {
				occupant.Vacate()
				mgr.transitionTo(occupant, Hidden)
			}
		}
		target.AssignWindow(w)
		mgr.ApplyGeometry(w)
	}
}

// NextLeaf returns the leaf adjacent to current in the monitor's pre-order
// leaf sequence, wrapping around; forward selects the successor, and
// false the predecessor. Grounded on taowm's frame.traverse (geom.go),
// reimplemented over a flat pre-order slice because taowm's traversal
// relied on a sibling/parent pointer walk this package's strict binary
// tree doesn't need.
func (m *Monitor) NextLeaf(current *Frame, forward bool) *Frame {
	leaves := m.root.Leaves()
	if len(leaves) == 0 {
		return current
	}
	idx := 0
	for i, l := range leaves {
		if l == current {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(leaves)
	} else {
		idx = (idx - 1 + len(leaves)) % len(leaves)
	}
	return leaves[idx]
}
