package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/DevByProxy/fensterchef/internal/geometry"
	"github.com/DevByProxy/fensterchef/internal/wm"
)

func u32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// manage brings a newly mapped window under management: it fetches the
// attributes wm.Registry.Create needs, registers it, and asks the
// manager to place and map it. Grounded on taowm's manage (main.go),
// generalized from taowm's single-linked-list window record to
// wm.Registry.Create plus wm.Manager.CreateWindow.
func (d *Dispatcher) manage(xWin xproto.Window) {
	if w, ok := d.windowFor(xWin); ok {
		d.Manager.Show(w)
		d.Client.check(xproto.MapWindowChecked(d.Client.Conn, xWin))
		return
	}

	attrs := d.fetchAttributes(xWin)

	d.Client.check(xproto.ChangeWindowAttributesChecked(d.Client.Conn, xWin, xproto.CwEventMask,
		[]uint32{xproto.EventMaskEnterWindow | xproto.EventMaskPropertyChange}))

	pointer, err := xproto.QueryPointer(d.Client.Conn, d.Client.Root).Reply()
	focusMonitor := d.Manager.Monitors.Primary()
	if err == nil {
		focusMonitor = d.Manager.Monitors.ContainingPoint(int32(pointer.RootX), int32(pointer.RootY))
	}

	w, err := d.Manager.CreateWindow(wm.XWindow(xWin), attrs, focusMonitor)
	if err != nil {
		return
	}
	if w.State() != wm.Hidden {
		d.Manager.FocusWindow(w)
	}
}

// ManageExisting brings every window already mapped on the root window
// under management, for windows that existed before this manager
// connected (a restart, or a manager replacing another). Grounded on
// main's startup QueryTree loop (main.go).
func (d *Dispatcher) ManageExisting() error {
	tree, err := xproto.QueryTree(d.Client.Conn, d.Client.Root).Reply()
	if err != nil {
		return err
	}
	for _, child := range tree.Children {
		wa, err := xproto.GetWindowAttributes(d.Client.Conn, child).Reply()
		if err != nil || wa.OverrideRedirect || wa.MapState == xproto.MapStateUnmapped {
			continue
		}
		d.manage(child)
	}
	return nil
}

// hide transitions a window to Hidden on an UnmapNotify without dropping
// its record or frame slot, so a later remap restores it via Show.
// Grounded on original_source's handle_unmap_notify (event.c), which
// sets WINDOW_STATE_HIDDEN rather than destroying the window -- unlike a
// DestroyNotify, an UnmapNotify does not mean the window is gone for
// good; a client can unmap and remap itself (minimize_window does
// exactly that through Manager.Hide/Req.Unmap).
func (d *Dispatcher) hide(xWin xproto.Window) {
	w, ok := d.windowFor(xWin)
	if !ok {
		return
	}
	d.Manager.Hide(w)
}

// unmanage drops a window's record entirely after it has been destroyed.
// X already destroyed it, so this only releases this manager's own
// bookkeeping. Grounded on taowm's unmanage (main.go).
func (d *Dispatcher) unmanage(xWin xproto.Window) {
	w, ok := d.windowFor(xWin)
	if !ok {
		return
	}
	d.Manager.DestroyWindow(w)
}

// fetchAttributes gathers the ICCCM state a newly seen window needs
// classified: its geometry, override-redirect bit, WM_PROTOCOLS,
// WM_TRANSIENT_FOR, WM_NAME, WM_NORMAL_HINTS, WM_HINTS and whether
// _NET_WM_STATE already carries _NET_WM_STATE_FULLSCREEN. Any individual
// property fetch failing just leaves that field at its zero value,
// mirroring taowm's tolerance of missing properties (main.go's manage).
func (d *Dispatcher) fetchAttributes(xWin xproto.Window) wm.Attributes {
	var attrs wm.Attributes

	if geom, err := xproto.GetGeometry(d.Client.Conn, xproto.Drawable(xWin)).Reply(); err == nil {
		attrs.Geometry = geometry.Rect{
			X: int32(geom.X), Y: int32(geom.Y),
			Width: int32(geom.Width), Height: int32(geom.Height),
		}
	}
	if wa, err := xproto.GetWindowAttributes(d.Client.Conn, xWin).Reply(); err == nil {
		attrs.OverrideRedirect = wa.OverrideRedirect
	}
	attrs.Protocols = d.fetchProtocols(xWin)
	attrs.TransientFor = d.fetchTransientFor(xWin)
	attrs.Name, _ = d.fetchName(xWin)
	attrs.Hints = d.fetchSizeHints(xWin)
	attrs.WMHints = d.fetchWMHints(xWin)
	attrs.Fullscreen = d.fetchFullscreen(xWin)
	return attrs
}

func (d *Dispatcher) fetchProtocols(xWin xproto.Window) wm.ProtocolSet {
	var protocols wm.ProtocolSet
	prop, err := xproto.GetProperty(d.Client.Conn, false, xWin, d.Client.Atoms.WMProtocols,
		xproto.GetPropertyTypeAny, 0, 64).Reply()
	if err != nil {
		return protocols
	}
	for v := prop.Value; len(v) >= 4; v = v[4:] {
		switch xproto.Atom(u32(v)) {
		case d.Client.Atoms.WMDeleteWindow:
			protocols.DeleteWindow = true
		case d.Client.Atoms.WMTakeFocus:
			protocols.TakeFocus = true
		}
	}
	return protocols
}

func (d *Dispatcher) fetchTransientFor(xWin xproto.Window) wm.XWindow {
	prop, err := xproto.GetProperty(d.Client.Conn, false, xWin, d.Client.Atoms.WMTransientFor,
		xproto.GetPropertyTypeAny, 0, 4).Reply()
	if err != nil || len(prop.Value) < 4 {
		return 0
	}
	return wm.XWindow(u32(prop.Value))
}

func (d *Dispatcher) fetchName(xWin xproto.Window) (string, error) {
	prop, err := xproto.GetProperty(d.Client.Conn, false, xWin, d.Client.Atoms.WMName,
		xproto.GetPropertyTypeAny, 0, 256).Reply()
	if err != nil {
		return "", err
	}
	return string(prop.Value), nil
}

// fetchSizeHints decodes WM_NORMAL_HINTS: a flags CARD32 followed by the
// obsolete position/size fields, then min/max size, resize increment,
// aspect ratio and base size, each a CARD32 pair or quad in that order.
func (d *Dispatcher) fetchSizeHints(xWin xproto.Window) wm.SizeHints {
	var hints wm.SizeHints
	prop, err := xproto.GetProperty(d.Client.Conn, false, xWin, d.Client.Atoms.WMNormalHints,
		xproto.GetPropertyTypeAny, 0, 18).Reply()
	if err != nil || len(prop.Value) < 4 {
		return hints
	}
	v := prop.Value
	word := func(i int) int32 {
		off := i * 4
		if off+4 > len(v) {
			return 0
		}
		return int32(u32(v[off:]))
	}
	flags := uint32(word(0))
	const (
		pMinSize    = 1 << 4
		pMaxSize    = 1 << 5
		pResizeInc  = 1 << 6
		pAspect     = 1 << 7
		pBaseSize   = 1 << 8
	)
	if flags&pMinSize != 0 {
		hints.HasMin = true
		hints.MinWidth, hints.MinHeight = word(5), word(6)
	}
	if flags&pMaxSize != 0 {
		hints.HasMax = true
		hints.MaxWidth, hints.MaxHeight = word(7), word(8)
	}
	if flags&pResizeInc != 0 {
		hints.HasIncrement = true
		hints.WidthIncrement, hints.HeightIncrement = word(9), word(10)
	}
	if flags&pAspect != 0 {
		hints.HasAspect = true
		hints.AspectNumerator, hints.AspectDenominator = word(11), word(12)
	}
	if flags&pBaseSize != 0 {
		hints.HasBase = true
		hints.BaseWidth, hints.BaseHeight = word(15), word(16)
	}
	return hints
}

// fetchWMHints decodes WM_HINTS' flags and input/urgency bits.
func (d *Dispatcher) fetchWMHints(xWin xproto.Window) wm.WMHints {
	var hints wm.WMHints
	prop, err := xproto.GetProperty(d.Client.Conn, false, xWin, d.Client.Atoms.WMHints,
		xproto.GetPropertyTypeAny, 0, 9).Reply()
	if err != nil || len(prop.Value) < 8 {
		return hints
	}
	flags := u32(prop.Value[0:4])
	const (
		inputHint    = 1 << 0
		urgencyHint  = 1 << 8
	)
	if flags&inputHint != 0 {
		hints.Input = u32(prop.Value[4:8]) != 0
	}
	hints.Urgent = flags&urgencyHint != 0
	return hints
}

func (d *Dispatcher) fetchFullscreen(xWin xproto.Window) bool {
	prop, err := xproto.GetProperty(d.Client.Conn, false, xWin, d.Client.Atoms.NetWMState,
		xproto.GetPropertyTypeAny, 0, 64).Reply()
	if err != nil {
		return false
	}
	for v := prop.Value; len(v) >= 4; v = v[4:] {
		if xproto.Atom(u32(v)) == d.Client.Atoms.NetWMStateFullscreen {
			return true
		}
	}
	return false
}
