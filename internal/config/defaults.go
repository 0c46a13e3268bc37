package config

import "github.com/DevByProxy/fensterchef/internal/wm"

// X11 keysym values for the named keys the default bindings use.
// Lowercase ASCII letters and common punctuation equal their codepoint
// and are written as rune literals below instead of being named here.
const (
	xkReturn uint32 = 0xff0d
	xkLeft   uint32 = 0xff51
	xkUp     uint32 = 0xff52
	xkRight  uint32 = 0xff53
	xkDown   uint32 = 0xff54
)

// DefaultConfiguration returns the built-in configuration: the values and
// bindings a freshly installed instance runs with before any user file is
// read. Transcribed from default_configuration's default_configuration
// struct and its merge_with_default_key_bindings /
// merge_with_default_button_bindings tables, which this function
// reproduces bit-for-bit in semantics: same modifiers, same triggers,
// same actions, same parameters.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		General: General{OverlapPercentage: 80},
		Tiling: Tiling{
			AutoRemoveVoid: false,
			AutoFillVoid:   true,
			MinLeafSize:    minLeafSizeFallback,
		},
		Font: Font{Name: "Mono"},
		Border: Border{Size: 0},
		Gaps: Gaps{
			Inner: wm.Quad{},
			Outer: wm.Quad{},
		},
		Notification: Notification{
			DurationSeconds: 2,
			Padding:         6,
			BorderColor:     0x000000,
			BorderSize:      1,
			Foreground:      0x000000,
			Background:      0xffffff,
		},
		Mouse: Mouse{
			ResizeTolerance: 8,
			Modifiers:       []string{"mod4"},
			IgnoreModifiers: []string{"lock", "mod2", "mod3", "mod5"},
			Buttons:         defaultButtonBindings(),
		},
		Keyboard: Keyboard{
			Modifiers:       []string{"mod4"},
			IgnoreModifiers: []string{"lock", "mod2", "mod3", "mod5"},
			Keys:            defaultKeyBindings(),
		},
	}
}

// defaultButtonBindings is merge_with_default_button_bindings's table.
// Every entry's Modifiers here is the binding's own extra modifiers; the
// mouse context's base modifiers (Mod4) are OR'd in at resolve time.
func defaultButtonBindings() []ButtonBinding {
	return []ButtonBinding{
		{Button: 1, Actions: []ActionSpec{{Code: "initiate_resize"}}},
		{Button: 2, Actions: []ActionSpec{{Code: "minimize_window"}}},
		{Button: 3, Actions: []ActionSpec{{Code: "initiate_move"}}},
	}
}

func quad(left, top, right, bottom int32) *[4]int32 {
	q := [4]int32{left, top, right, bottom}
	return &q
}

func str(s string) *string { return &s }

// defaultKeyBindings is merge_with_default_key_bindings's table. Every
// entry's Modifiers here is the binding's own extra modifiers; the
// keyboard context's base modifiers (Mod4) are OR'd in at resolve time.
func defaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Modifiers: []string{"shift"}, Key: 'r', Actions: []ActionSpec{{Code: "reload_configuration"}}},

		{Key: 'a', Actions: []ActionSpec{{Code: "parent_frame"}}},
		{Key: 'b', Actions: []ActionSpec{{Code: "child_frame"}}},
		{Modifiers: []string{"shift"}, Key: 'a', Actions: []ActionSpec{{Code: "root_frame"}}},

		{Key: 'q', Actions: []ActionSpec{{Code: "close_window"}}},

		{Key: '-', Actions: []ActionSpec{{Code: "minimize_window"}}},

		{Key: 'n', Actions: []ActionSpec{{Code: "next_window"}}},
		{Key: 'p', Actions: []ActionSpec{{Code: "previous_window"}}},

		{Key: 'r', Actions: []ActionSpec{{Code: "remove_frame"}}},

		{Modifiers: []string{"shift"}, Key: ' ', Actions: []ActionSpec{{Code: "toggle_tiling"}}},

		{Key: 'f', Actions: []ActionSpec{{Code: "toggle_fullscreen"}}},

		{Key: ' ', Actions: []ActionSpec{{Code: "toggle_focus"}}},

		{Key: 'v', Actions: []ActionSpec{{Code: "split_horizontally"}}},
		{Key: 's', Actions: []ActionSpec{{Code: "split_vertically"}}},

		{Key: 'k', Actions: []ActionSpec{{Code: "focus_up"}}},
		{Key: 'h', Actions: []ActionSpec{{Code: "focus_left"}}},
		{Key: 'l', Actions: []ActionSpec{{Code: "focus_right"}}},
		{Key: 'j', Actions: []ActionSpec{{Code: "focus_down"}}},

		{Modifiers: []string{"shift"}, Key: 'k', Actions: []ActionSpec{{Code: "exchange_up"}}},
		{Modifiers: []string{"shift"}, Key: 'h', Actions: []ActionSpec{{Code: "exchange_left"}}},
		{Modifiers: []string{"shift"}, Key: 'l', Actions: []ActionSpec{{Code: "exchange_right"}}},
		{Modifiers: []string{"shift"}, Key: 'j', Actions: []ActionSpec{{Code: "exchange_down"}}},

		// Resizing the top/left edges of a window.
		{Modifiers: []string{"control"}, Key: xkLeft, Actions: []ActionSpec{{Code: "resize_by", Quad: quad(20, 0, 0, 0)}}},
		{Modifiers: []string{"control"}, Key: xkUp, Actions: []ActionSpec{{Code: "resize_by", Quad: quad(0, 20, 0, 0)}}},
		{Modifiers: []string{"control"}, Key: xkRight, Actions: []ActionSpec{{Code: "resize_by", Quad: quad(-20, 0, 0, 0)}}},
		{Modifiers: []string{"control"}, Key: xkDown, Actions: []ActionSpec{{Code: "resize_by", Quad: quad(0, -20, 0, 0)}}},

		// Resizing the bottom/right edges of a window.
		{Modifiers: []string{"shift"}, Key: xkLeft, Actions: []ActionSpec{{Code: "resize_by", Quad: quad(0, 0, -20, 0)}}},
		{Modifiers: []string{"shift"}, Key: xkUp, Actions: []ActionSpec{{Code: "resize_by", Quad: quad(0, 0, 0, -20)}}},
		{Modifiers: []string{"shift"}, Key: xkRight, Actions: []ActionSpec{{Code: "resize_by", Quad: quad(0, 0, 20, 0)}}},
		{Modifiers: []string{"shift"}, Key: xkDown, Actions: []ActionSpec{{Code: "resize_by", Quad: quad(0, 0, 0, 20)}}},

		// Moving a window (opposite edges move together).
		{Key: xkLeft, Actions: []ActionSpec{{Code: "resize_by", Quad: quad(20, 0, -20, 0)}}},
		{Key: xkUp, Actions: []ActionSpec{{Code: "resize_by", Quad: quad(0, 20, 0, -20)}}},
		{Key: xkRight, Actions: []ActionSpec{{Code: "resize_by", Quad: quad(-20, 0, 20, 0)}}},
		{Key: xkDown, Actions: []ActionSpec{{Code: "resize_by", Quad: quad(0, -20, 0, 20)}}},

		// Inflate/deflate a window.
		{Modifiers: []string{"control"}, Key: '+', Actions: []ActionSpec{{Code: "resize_by", Quad: quad(10, 10, 10, 10)}}},
		{Modifiers: []string{"control"}, Key: '-', Actions: []ActionSpec{{Code: "resize_by", Quad: quad(-10, -10, -10, -10)}}},
		{Modifiers: []string{"control"}, Key: '=', Actions: []ActionSpec{{Code: "resize_by", Quad: quad(10, 10, 10, 10)}}},

		{Key: 'w', Actions: []ActionSpec{{Code: "show_window_list"}}},

		{Key: xkReturn, Actions: []ActionSpec{{Code: "run", String: str(`[ -n "$TERMINAL" ] && exec "$TERMINAL" || exec xterm`)}}},

		{Modifiers: []string{"control", "shift"}, Key: 'e', Actions: []ActionSpec{{Code: "quit"}}},
	}
}
