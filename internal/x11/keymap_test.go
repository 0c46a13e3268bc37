package x11

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestKeymapKeycodeFindsShiftedAndUnshifted(t *testing.T) {
	km := &Keymap{}
	km.syms[38] = [2]xproto.Keysym{'a', 'A'}

	code, shift, ok := km.Keycode('a')
	if !ok || code != 38 || shift {
		t.Errorf("Keycode('a') = (%d, %v, %v), want (38, false, true)", code, shift, ok)
	}
	code, shift, ok = km.Keycode('A')
	if !ok || code != 38 || !shift {
		t.Errorf("Keycode('A') = (%d, %v, %v), want (38, true, true)", code, shift, ok)
	}
	if _, _, ok = km.Keycode('z'); ok {
		t.Errorf("Keycode('z') should not be found")
	}
}

func TestKeymapKeysymFallsBackWhenShiftLevelEmpty(t *testing.T) {
	km := &Keymap{}
	km.syms[10] = [2]xproto.Keysym{'1', 0}

	if got := km.Keysym(10, false); got != '1' {
		t.Errorf("Keysym(unshifted) = %d, want '1'", got)
	}
	if got := km.Keysym(10, true); got != '1' {
		t.Errorf("Keysym(shifted, empty level) should fall back to unshifted, got %d", got)
	}
}

func TestKeymapKeysymOutOfRangeReturnsZero(t *testing.T) {
	km := &Keymap{}
	if got := km.Keysym(3, false); got != 0 {
		t.Errorf("Keysym for reserved keycode = %d, want 0", got)
	}
}
