package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/DevByProxy/fensterchef/internal/geometry"
	"github.com/DevByProxy/fensterchef/internal/wm"
)

// dragKind distinguishes an interactive move from an interactive resize,
// and a resize additionally records which edges the drag adjusts.
type dragKind int

const (
	dragMove dragKind = iota
	dragResize
)

// dragState tracks an in-progress interactive move or resize, grabbed on
// the root window for the duration. Grounded on the original
// implementation's selected_window (event.c): only a popup window --
// never a tiling one, whose geometry is structural -- can be dragged.
type dragState struct {
	window *wm.Window
	kind   dragKind

	// edges marks which sides a resize drag moves; a move drag ignores
	// them and translates all four together.
	left, top, right, bottom bool

	startRect geometry.Rect
	lastX, lastY int16
}

// startDrag begins an interactive move or resize of the popup window
// under the pointer, or does nothing if the pointer is not over a popup.
// Grounded on handle_button_press (event.c), generalized from its
// always-move behavior to also support resize, picking the edges nearest
// the press point within ResizeTolerance.
func (d *Dispatcher) startDrag(e xproto.ButtonPressEvent, kind dragKind) {
	w, ok := d.windowFor(e.Child)
	if !ok || w.State() != wm.Popup {
		return
	}
	rect := w.Rect()
	ds := &dragState{window: w, kind: kind, startRect: rect, lastX: e.RootX, lastY: e.RootY}
	if kind == dragResize {
		ds.left = int32(e.RootX)-rect.X <= d.ResizeTolerance
		ds.right = rect.X+rect.Width-int32(e.RootX) <= d.ResizeTolerance
		ds.top = int32(e.RootY)-rect.Y <= d.ResizeTolerance
		ds.bottom = rect.Y+rect.Height-int32(e.RootY) <= d.ResizeTolerance
		if !ds.left && !ds.right && !ds.top && !ds.bottom {
			ds.right, ds.bottom = true, true
		}
	}
	d.drag = ds
	d.Client.check(grabPointerChecker{xproto.GrabPointer(d.Client.Conn, false, d.Client.Root,
		xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion,
		xproto.GrabModeAsync, xproto.GrabModeAsync, 0, 0, xproto.TimeCurrentTime)})
	// A pointer grab does not redirect key events; Escape-cancellation
	// (spec §5) needs its own passive key grab, released when the drag
	// ends. ModMaskAny so it fires whatever else the user is holding.
	if code, _, ok := d.Keymap.Keycode(xkEscape); ok {
		d.Client.check(xproto.GrabKeyChecked(d.Client.Conn, true, d.Client.Root,
			xproto.ModMaskAny, code, xproto.GrabModeAsync, xproto.GrabModeAsync))
	}
}

// updateDrag applies the pointer's movement since the last event to the
// dragged window's geometry: a move drag translates it, a resize drag
// adjusts only the edges startDrag picked. Grounded on
// handle_motion_notify (event.c).
func (d *Dispatcher) updateDrag(x, y int16) {
	ds := d.drag
	dx := int32(x - ds.lastX)
	dy := int32(y - ds.lastY)
	ds.lastX, ds.lastY = x, y

	rect := ds.window.Rect()
	switch ds.kind {
	case dragMove:
		rect.X += dx
		rect.Y += dy
	case dragResize:
		if ds.left {
			rect.X += dx
			rect.Width -= dx
		}
		if ds.right {
			rect.Width += dx
		}
		if ds.top {
			rect.Y += dy
			rect.Height -= dy
		}
		if ds.bottom {
			rect.Height += dy
		}
		if rect.Width < 1 {
			rect.Width = 1
		}
		if rect.Height < 1 {
			rect.Height = 1
		}
	}
	d.Manager.SetPopupRect(ds.window, rect)
}

// endDrag releases the pointer grab and clears the drag state. Grounded
// on handle_button_release (event.c).
func (d *Dispatcher) endDrag() {
	d.Client.check(xproto.UngrabPointerChecked(d.Client.Conn, xproto.TimeCurrentTime))
	d.ungrabDragEscape()
	d.drag = nil
}

// cancelDrag restores the dragged window to the rectangle it had before
// the drag started and releases both grabs, implementing spec §5's
// Escape-cancels-a-drag rule -- the only cancellation this manager
// supports.
func (d *Dispatcher) cancelDrag() {
	ds := d.drag
	d.Manager.SetPopupRect(ds.window, ds.startRect)
	d.Client.check(xproto.UngrabPointerChecked(d.Client.Conn, xproto.TimeCurrentTime))
	d.ungrabDragEscape()
	d.drag = nil
}

func (d *Dispatcher) ungrabDragEscape() {
	if code, _, ok := d.Keymap.Keycode(xkEscape); ok {
		d.Client.check(xproto.UngrabKeyChecked(d.Client.Conn, code, d.Client.Root, xproto.ModMaskAny))
	}
}
