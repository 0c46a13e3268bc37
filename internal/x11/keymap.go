package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// keyLo and keyHi bound the keycode range GetKeyboardMapping covers,
// matching the X11 convention that keycodes 0-7 are reserved. Grounded
// on taowm's initKeyboardMapping (xinit.go).
const (
	keyLo = 8
	keyHi = 255
)

// Keymap is a keycode -> keysym table, indexed [code][shift-level]. Only
// the first two shift levels are tracked; this manager's bindings only
// ever ask for the unshifted or shifted keysym of a key, the same
// restriction taowm's keysyms table (xinit.go) makes.
type Keymap struct {
	syms [keyHi + 1][2]xproto.Keysym
}

// LoadKeymap queries the server's current keyboard mapping. Grounded on
// taowm's initKeyboardMapping (xinit.go).
func LoadKeymap(conn *xgb.Conn) (*Keymap, error) {
	reply, err := xproto.GetKeyboardMapping(conn, keyLo, keyHi-keyLo+1).Reply()
	if err != nil {
		return nil, err
	}
	n := int(reply.KeysymsPerKeycode)
	if n < 2 {
		n = 2
	}
	km := &Keymap{}
	for i := keyLo; i <= keyHi; i++ {
		base := (i - keyLo) * int(reply.KeysymsPerKeycode)
		if base+1 >= len(reply.Keysyms) {
			continue
		}
		km.syms[i][0] = reply.Keysyms[base+0]
		km.syms[i][1] = reply.Keysyms[base+1]
	}
	return km, nil
}

// Keycode returns the keycode that produces keysym at shift level 0 or
// 1, and whether Shift must be held to reach it. Grounded on taowm's
// findKeycode (xinit.go).
func (km *Keymap) Keycode(keysym uint32) (code xproto.Keycode, shift bool, ok bool) {
	for i := keyLo; i <= keyHi; i++ {
		if uint32(km.syms[i][0]) == keysym {
			return xproto.Keycode(i), false, true
		}
		if uint32(km.syms[i][1]) == keysym {
			return xproto.Keycode(i), true, true
		}
	}
	return 0, false, false
}

// Keysym returns the keysym keycode produces given whether Shift is
// held, mirroring handleKeyPress's lookup direction (input.go).
func (km *Keymap) Keysym(code xproto.Keycode, shiftHeld bool) uint32 {
	if int(code) < keyLo || int(code) > keyHi {
		return 0
	}
	level := 0
	if shiftHeld {
		level = 1
	}
	sym := km.syms[code][level]
	if sym == 0 && shiftHeld {
		sym = km.syms[code][0]
	}
	return uint32(sym)
}
