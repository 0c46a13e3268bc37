// Package wm implements the tiling frame tree and the window registry and
// state machine that sit on top of it. None of this package talks to an X
// server directly; it is driven by the internal/x11 layer through the
// attributes and requests defined here, which keeps the tree and state
// machine invariants fuzzable and table-testable without a display
// connection.
package wm

import (
	"errors"

	"github.com/DevByProxy/fensterchef/internal/geometry"
)

// XWindow is an opaque X11 window identifier.
type XWindow uint32

// State is one of the four states a managed window can be in.
type State int

const (
	Tiling State = iota
	Popup
	Fullscreen
	Hidden
)

func (s State) String() string {
	switch s {
	case Tiling:
		return "tiling"
	case Popup:
		return "popup"
	case Fullscreen:
		return "fullscreen"
	case Hidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// ProtocolSet records which WM_PROTOCOLS a window advertises support for.
type ProtocolSet struct {
	DeleteWindow bool
	TakeFocus    bool
}

// WMHints mirrors the ICCCM WM_HINTS properties this manager cares about.
type WMHints struct {
	Input  bool
	Urgent bool
}

// SizeHints mirrors the ICCCM WM_NORMAL_HINTS properties this manager
// cares about. A field group is only meaningful when its Has flag is set.
type SizeHints struct {
	HasMin, HasMax, HasBase, HasIncrement, HasAspect bool

	MinWidth, MinHeight     int32
	MaxWidth, MaxHeight     int32
	BaseWidth, BaseHeight   int32
	WidthIncrement, HeightIncrement int32
	AspectNumerator, AspectDenominator int32
}

// Attributes is the snapshot of server-side state gathered when a window is
// first seen, supplied by internal/x11 so this package never issues its own
// round-trip requests.
type Attributes struct {
	Geometry         geometry.Rect
	Name             string
	Hints            SizeHints
	WMHints          WMHints
	Protocols        ProtocolSet
	TransientFor     XWindow
	OverrideRedirect bool
	Fullscreen       bool // _NET_WM_STATE_FULLSCREEN already set at map time
}

// Window is the internal record for every window under management.
type Window struct {
	ID XWindow

	rect geometry.Rect

	state         State
	previousState State

	name      string
	hints     SizeHints
	wmHints   WMHints
	protocols ProtocolSet

	transientFor     XWindow
	overrideRedirect bool

	// Frame is the leaf holding this window while it is tiling. It stays
	// set when a tiled window goes fullscreen or is hidden, and is nil for
	// popups. Back-reference only: Frame never outlives the tree that
	// owns it, and this pointer is cleared on Destroy.
	Frame *Frame

	// popupRect is the window's own requested geometry while it is a
	// popup or fullscreen, independent of any frame.
	popupRect geometry.Rect

	lastAppliedRect  geometry.Rect
	lastAppliedValid bool

	selected bool
}

// Rect returns the window's last known geometry in root coordinates.
func (w *Window) Rect() geometry.Rect { return w.rect }

// State returns the window's current lifecycle state.
func (w *Window) State() State { return w.state }

// Name returns the window's display name as last reported.
func (w *Window) Name() string { return w.name }

// Protocols returns the window's advertised WM_PROTOCOLS support.
func (w *Window) Protocols() ProtocolSet { return w.protocols }

// Selected reports whether the window is part of the current selection.
func (w *Window) Selected() bool { return w.selected }

// SetSelected updates the window's selection flag.
func (w *Window) SetSelected(v bool) { w.selected = v }

// ErrAlreadyManaged is returned by Registry.Create when the given XWindow
// already has a Window record.
var ErrAlreadyManaged = errors.New("wm: window already managed")

// Registry maps X window ids to Window records and owns their lifecycle.
type Registry struct {
	byID map[XWindow]*Window
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[XWindow]*Window)}
}

// Create allocates a Window record for id from its initial attributes.
// It does not place the window in a frame; callers do that via the frame
// tree once Create has returned, per the placement rule.
func (r *Registry) Create(id XWindow, attrs Attributes) (*Window, error) {
	if _, ok := r.byID[id]; ok {
		return nil, ErrAlreadyManaged
	}
	w := &Window{
		ID:               id,
		rect:             attrs.Geometry,
		name:             attrs.Name,
		hints:            attrs.Hints,
		wmHints:          attrs.WMHints,
		protocols:        attrs.Protocols,
		transientFor:     attrs.TransientFor,
		overrideRedirect: attrs.OverrideRedirect,
		popupRect:        attrs.Geometry,
	}
	r.byID[id] = w
	return w, nil
}

// Lookup returns the Window for id, if managed.
func (r *Registry) Lookup(id XWindow) (*Window, bool) {
	w, ok := r.byID[id]
	return w, ok
}

// Destroy removes w's record. Callers must first vacate w from any frame.
func (r *Registry) Destroy(w *Window) {
	delete(r.byID, w.ID)
	*w = Window{}
}

// Iterate returns every currently managed window, in unspecified order.
func (r *Registry) Iterate() []*Window {
	out := make([]*Window, 0, len(r.byID))
	for _, w := range r.byID {
		out = append(out, w)
	}
	return out
}

// Len reports how many windows are managed.
func (r *Registry) Len() int { return len(r.byID) }
