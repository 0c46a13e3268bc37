// Package config defines the serializable configuration format: the
// values a user can override in a YAML file, the default key and mouse
// binding tables, and the resolve step that turns both into the runtime
// types internal/wm and internal/bind operate on. Grounded on taowm's
// config.go, generalized from taowm's Go-source configuration (a literal
// map compiled into the binary) to a data file a running instance can
// reload, the way this window manager's SIGHUP-triggered reload requires.
package config

import (
	"fmt"

	"github.com/DevByProxy/fensterchef/internal/action"
	"github.com/DevByProxy/fensterchef/internal/bind"
	"github.com/DevByProxy/fensterchef/internal/wm"
	"gopkg.in/yaml.v3"
)

// General holds window-placement knobs that don't fit any other section.
type General struct {
	// OverlapPercentage is a percentage (0-100) that is loaded and saved
	// with the configuration; no other code reads it, and popups are not
	// clamped or associated by it.
	OverlapPercentage int32 `yaml:"overlap_percentage"`
}

// Tiling mirrors wm.Options' tiling-relevant fields in serializable form.
type Tiling struct {
	AutoRemoveVoid bool `yaml:"auto_remove_void"`
	AutoFillVoid   bool `yaml:"auto_fill_void"`
	// MinLeafSize is the fewest pixels a leaf may keep on either axis
	// after a resize. Zero is not a valid override -- WMOptions falls
	// back to minLeafSizeFallback rather than let a leaf collapse to
	// nothing.
	MinLeafSize int32 `yaml:"min_leaf_size"`
}

// minLeafSizeFallback is the minimum leaf size enforced when a
// configuration leaves min_leaf_size unset (or set to zero).
const minLeafSizeFallback int32 = 20

// Font names a font. It is loaded and saved with the configuration; no
// code renders text with it.
type Font struct {
	Name string `yaml:"name"`
}

// Border.Size is the number of pixels a tiled window is inset from its
// frame on every side; no border is drawn.
type Border struct {
	Size int32 `yaml:"size"`
}

// Gaps controls the space reserved between and around tiled frames.
type Gaps struct {
	Inner wm.Quad `yaml:"inner"`
	Outer wm.Quad `yaml:"outer"`
}

// Notification holds feedback-window settings that are loaded and saved
// with the configuration. Notifications are written to the log; no window
// is shown and these fields are not read.
type Notification struct {
	DurationSeconds float64 `yaml:"duration_seconds"`
	Padding         int32   `yaml:"padding"`
	BorderColor     uint32  `yaml:"border_color"`
	BorderSize      int32   `yaml:"border_size"`
	Foreground      uint32  `yaml:"foreground"`
	Background      uint32  `yaml:"background"`
}

// ActionSpec is an action.Action in its serializable form: the code by
// name, plus whichever one of the parameter fields its code expects.
type ActionSpec struct {
	Code    string  `yaml:"code"`
	Integer *int32  `yaml:"integer,omitempty"`
	Quad    *[4]int32 `yaml:"quad,omitempty"`
	String  *string `yaml:"string,omitempty"`
}

// Resolve converts a spec into the action.Action it names.
func (s ActionSpec) Resolve() (action.Action, error) {
	code, ok := action.ParseCode(s.Code)
	if !ok {
		return action.Action{}, fmt.Errorf("unknown action code %q", s.Code)
	}
	switch {
	case s.Integer != nil:
		return action.Action{Code: code, Parameter: action.IntegerValue(*s.Integer)}, nil
	case s.Quad != nil:
		q := *s.Quad
		return action.Action{Code: code, Parameter: action.QuadValue(q[0], q[1], q[2], q[3])}, nil
	case s.String != nil:
		return action.Action{Code: code, Parameter: action.StringValue(*s.String)}, nil
	default:
		return action.Action{Code: code, Parameter: action.NoneValue()}, nil
	}
}

// ResolveActions converts a list of specs, failing on the first bad one.
func ResolveActions(specs []ActionSpec) ([]action.Action, error) {
	out := make([]action.Action, len(specs))
	for i, s := range specs {
		a, err := s.Resolve()
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

// flagsFromNames turns "press"/"release"/"hold" names into a bind.Flags
// mask. Defined here rather than in internal/bind because the name
// vocabulary is a configuration-file concern, not a core binding concern.
func flagsFromNames(names []string) (bind.Flags, error) {
	var mask bind.Flags
	for _, name := range names {
		switch name {
		case "press":
			mask |= bind.OnPress
		case "release":
			mask |= bind.OnRelease
		case "hold":
			mask |= bind.WhileHeld
		default:
			return 0, fmt.Errorf("unknown binding flag %q", name)
		}
	}
	if mask == 0 {
		mask = bind.OnPress // default to on-press, the common case.
	}
	return mask, nil
}

// KeyBinding is one key binding in its serializable form. Key is an X11
// keysym value: lowercase letters and common punctuation equal their ASCII
// codepoint, named keys (Return, Left, …) use their XK_* numeric value.
type KeyBinding struct {
	Modifiers []string     `yaml:"modifiers,omitempty"`
	Key       uint32       `yaml:"key"`
	Flags     []string     `yaml:"flags,omitempty"`
	Actions   []ActionSpec `yaml:"actions"`
}

// ButtonBinding is one mouse binding in its serializable form. Button is
// an X11 button number (1 = left, 2 = middle, 3 = right, …).
type ButtonBinding struct {
	Modifiers []string     `yaml:"modifiers,omitempty"`
	Button    uint32       `yaml:"button"`
	Flags     []string     `yaml:"flags,omitempty"`
	Actions   []ActionSpec `yaml:"actions"`
}

// Mouse configures pointer-driven bindings and the tolerance, in pixels,
// within which a resize drag's press counts as grabbing a popup window's
// edge. Tiled frames are not dragged.
type Mouse struct {
	ResizeTolerance int32           `yaml:"resize_tolerance"`
	Modifiers       []string        `yaml:"modifiers"`
	IgnoreModifiers []string        `yaml:"ignore_modifiers"`
	Buttons         []ButtonBinding `yaml:"buttons"`
}

// Keyboard configures key-driven bindings.
type Keyboard struct {
	Modifiers       []string     `yaml:"modifiers"`
	IgnoreModifiers []string     `yaml:"ignore_modifiers"`
	Keys            []KeyBinding `yaml:"keys"`
}

// Configuration is the complete set of user-overridable settings. The
// zero value is not meaningful; callers start from DefaultConfiguration
// and override fields, or unmarshal a user file and merge it against the
// default as Load does.
type Configuration struct {
	General      General      `yaml:"general"`
	Tiling       Tiling       `yaml:"tiling"`
	Font         Font         `yaml:"font"`
	Border       Border       `yaml:"border"`
	Gaps         Gaps         `yaml:"gaps"`
	Notification Notification `yaml:"notification"`
	Mouse        Mouse        `yaml:"mouse"`
	Keyboard     Keyboard     `yaml:"keyboard"`
}

// Marshal serializes c to YAML.
func Marshal(c *Configuration) ([]byte, error) {
	return yaml.Marshal(c)
}

// Unmarshal parses a YAML document into a Configuration. Fields absent
// from data keep their Go zero value; callers that want "unset means
// default" behavior should unmarshal onto a copy of DefaultConfiguration
// rather than a zero Configuration.
func Unmarshal(data []byte) (*Configuration, error) {
	var c Configuration
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// WMOptions projects the tiling-relevant fields of c into a wm.Options.
func (c *Configuration) WMOptions() wm.Options {
	minLeafSize := c.Tiling.MinLeafSize
	if minLeafSize <= 0 {
		minLeafSize = minLeafSizeFallback
	}
	return wm.Options{
		AutoRemoveVoid: c.Tiling.AutoRemoveVoid,
		AutoFillVoid:   c.Tiling.AutoFillVoid,
		GapsInner:      c.Gaps.Inner,
		GapsOuter:      c.Gaps.Outer,
		BorderSize:     c.Border.Size,
		MinLeafSize:    minLeafSize,
	}
}
