package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/DevByProxy/fensterchef/internal/geometry"
	"github.com/DevByProxy/fensterchef/internal/wm"
)

// Requester implements wm.Requester against a live Client. Every method
// sends a checked request without waiting for its reply and defers error
// inspection to the next FlushChecks call, the same fire-and-forget batching taowm's check()
// helper (main.go) performs for configure/map/unmap requests.
type Requester struct {
	Client *Client
	// XWindowOf resolves a wm.Window back to its X window id. Kept as a
	// function instead of a field on wm.Window so internal/wm stays free
	// of any X11-specific identifier beyond the already-generic XWindow
	// type alias.
	XWindowOf func(*wm.Window) xproto.Window
}

func (r *Requester) win(w *wm.Window) xproto.Window {
	if r.XWindowOf != nil {
		return r.XWindowOf(w)
	}
	return xproto.Window(w.ID)
}

// Configure moves and resizes w's X window to rect; it does not set the
// window's border width. Grounded on taowm's
// window.configure (geom.go).
func (r *Requester) Configure(w *wm.Window, rect geometry.Rect) {
	xWin := r.win(w)
	r.Client.check(xproto.ConfigureWindowChecked(r.Client.Conn, xWin,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{
			uint32(rect.X),
			uint32(rect.Y),
			uint32(rect.Width),
			uint32(rect.Height),
		},
	))
}

// Map shows w's X window.
func (r *Requester) Map(w *wm.Window) {
	r.Client.check(xproto.MapWindowChecked(r.Client.Conn, r.win(w)))
}

// Unmap hides w's X window.
func (r *Requester) Unmap(w *wm.Window) {
	r.Client.check(xproto.UnmapWindowChecked(r.Client.Conn, r.win(w)))
}

// Raise stacks w's X window above its siblings.
func (r *Requester) Raise(w *wm.Window) {
	r.Client.check(xproto.ConfigureWindowChecked(r.Client.Conn, r.win(w),
		xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove}))
}

// Focus sets input focus to w's X window, or to the root window if w is
// nil. Grounded on taowm's focus (actions.go), which always has a
// window because taowm keeps a dummy window in every workspace; this
// manager has no dummy window, so nil falls back to the root.
func (r *Requester) Focus(w *wm.Window) {
	xWin := r.Client.Root
	if w != nil {
		xWin = r.win(w)
	}
	r.Client.check(xproto.SetInputFocusChecked(r.Client.Conn,
		xproto.InputFocusPointerRoot, xWin, xproto.TimeCurrentTime))
}

// SendDelete sends a WM_DELETE_WINDOW client message, the polite close
// request a window's own WM_PROTOCOLS may opt into. Grounded on taowm's
// sendClientMessage (main.go).
func (r *Requester) SendDelete(w *wm.Window) {
	xWin := r.win(w)
	event := xproto.ClientMessageEvent{
		Format: 32,
		Window: xWin,
		Type:   r.Client.Atoms.WMProtocols,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(r.Client.Atoms.WMDeleteWindow),
			uint32(xproto.TimeCurrentTime),
			0, 0, 0,
		}),
	}
	r.Client.check(xproto.SendEventChecked(r.Client.Conn, false, xWin,
		xproto.EventMaskNoEvent, string(event.Bytes())))
}

// Kill forcibly terminates the X client owning w's window, for windows
// that do not honor WM_DELETE_WINDOW.
func (r *Requester) Kill(w *wm.Window) {
	r.Client.check(xproto.KillClientChecked(r.Client.Conn, uint32(r.win(w))))
}
