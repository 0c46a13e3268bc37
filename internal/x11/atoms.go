package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Atoms holds the interned atom values this manager looks up by name at
// startup instead of re-interning on every property read. Grounded on
// taowm's atomWM* globals (xinit.go), generalized to the larger set this
// manager's window classification and EWMH state reporting need.
type Atoms struct {
	WMProtocols    xproto.Atom
	WMDeleteWindow xproto.Atom
	WMTakeFocus    xproto.Atom
	WMName         xproto.Atom
	WMClass        xproto.Atom
	WMTransientFor xproto.Atom
	WMHints        xproto.Atom
	WMNormalHints  xproto.Atom

	NetWMState            xproto.Atom
	NetWMStateFullscreen  xproto.Atom
	NetWMWindowType       xproto.Atom
	NetWMWindowTypeDialog xproto.Atom
	NetSupported          xproto.Atom
}

func (c *Client) internAtoms() error {
	names := []struct {
		dst  *xproto.Atom
		name string
	}{
		{&c.Atoms.WMProtocols, "WM_PROTOCOLS"},
		{&c.Atoms.WMDeleteWindow, "WM_DELETE_WINDOW"},
		{&c.Atoms.WMTakeFocus, "WM_TAKE_FOCUS"},
		{&c.Atoms.WMName, "WM_NAME"},
		{&c.Atoms.WMClass, "WM_CLASS"},
		{&c.Atoms.WMTransientFor, "WM_TRANSIENT_FOR"},
		{&c.Atoms.WMHints, "WM_HINTS"},
		{&c.Atoms.WMNormalHints, "WM_NORMAL_HINTS"},
		{&c.Atoms.NetWMState, "_NET_WM_STATE"},
		{&c.Atoms.NetWMStateFullscreen, "_NET_WM_STATE_FULLSCREEN"},
		{&c.Atoms.NetWMWindowType, "_NET_WM_WINDOW_TYPE"},
		{&c.Atoms.NetWMWindowTypeDialog, "_NET_WM_WINDOW_TYPE_DIALOG"},
		{&c.Atoms.NetSupported, "_NET_SUPPORTED"},
	}
	for _, n := range names {
		atom, err := internAtom(c.Conn, n.name)
		if err != nil {
			return err
		}
		*n.dst = atom
	}
	return nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Atom, nil
}
