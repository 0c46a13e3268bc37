package x11

import "github.com/BurntSushi/xgb/xproto"

// Grabber implements bind.Grabber against a live Client, translating a
// keysym into the keycode(s) that produce it before grabbing. Grounded
// on taowm's per-key GrabKeyChecked call (xinit.go), generalized from
// taowm's single hard-coded wmKeysym grab to the full binding table.
type Grabber struct {
	Client *Client
	Keymap *Keymap
}

// GrabKey grabs keysym with modifiers on the root window. If keysym
// requires Shift to reach (a shifted-level symbol with no unshifted
// keycode of its own), Shift is folded into the grabbed modifiers so the
// grab fires on the key combination that actually produces it.
func (g *Grabber) GrabKey(modifiers uint16, keysym uint32) {
	code, shift, ok := g.Keymap.Keycode(keysym)
	if !ok {
		return
	}
	if shift {
		modifiers |= uint16(xproto.ModMaskShift)
	}
	g.Client.check(xproto.GrabKeyChecked(g.Client.Conn, true, g.Client.Root,
		modifiers, code, xproto.GrabModeAsync, xproto.GrabModeAsync))
}

// GrabButton grabs a pointer button with modifiers on the root window in
// asynchronous mode; while the grab is active the root window receives the
// press, release and motion events that drag-to-move and drag-to-resize
// need.
func (g *Grabber) GrabButton(modifiers uint16, button uint32) {
	g.Client.check(xproto.GrabButtonChecked(g.Client.Conn, true, g.Client.Root,
		xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		0, 0, byte(button), modifiers))
}

// UngrabAll releases every key and button grab on the root window, the
// step RegrabAll takes before re-establishing the current binding table.
func (g *Grabber) UngrabAll() {
	const anyKey, anyButton = 0, 0
	g.Client.check(xproto.UngrabKeyChecked(g.Client.Conn, anyKey, g.Client.Root, xproto.ModMaskAny))
	g.Client.check(xproto.UngrabButtonChecked(g.Client.Conn, anyButton, g.Client.Root, xproto.ModMaskAny))
}
