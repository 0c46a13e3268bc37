// Package action defines the parameterized operations a binding can fire
// and the tagged-union parameter type they carry. Dispatch on a Code is a
// single switch in internal/interp, not a virtual call, per the tagged
// variant style used throughout this codebase's data model.
package action

// Code names one operation an Action can perform. The Go zero value,
// None, is never a valid code in a real Action and exists only so an
// unparsed or missing action fails closed.
type Code int

const (
	None Code = iota

	// Navigation.
	FocusUp
	FocusDown
	FocusLeft
	FocusRight
	ParentFrame
	ChildFrame
	RootFrame
	NextWindow
	PreviousWindow
	ToggleFocus

	// Mutation.
	SplitHorizontally
	SplitVertically
	RemoveFrame
	ExchangeUp
	ExchangeDown
	ExchangeLeft
	ExchangeRight
	ResizeBy
	MinimizeWindow
	CloseWindow
	InitiateMove
	InitiateResize

	// State toggles.
	ToggleTiling
	ToggleFullscreen

	// Meta.
	ReloadConfiguration
	ShowWindowList
	Run
	Quit
)

func (c Code) String() string {
	switch c {
	case FocusUp:
		return "focus_up"
	case FocusDown:
		return "focus_down"
	case FocusLeft:
		return "focus_left"
	case FocusRight:
		return "focus_right"
	case ParentFrame:
		return "parent_frame"
	case ChildFrame:
		return "child_frame"
	case RootFrame:
		return "root_frame"
	case NextWindow:
		return "next_window"
	case PreviousWindow:
		return "previous_window"
	case ToggleFocus:
		return "toggle_focus"
	case SplitHorizontally:
		return "split_horizontally"
	case SplitVertically:
		return "split_vertically"
	case RemoveFrame:
		return "remove_frame"
	case ExchangeUp:
		return "exchange_up"
	case ExchangeDown:
		return "exchange_down"
	case ExchangeLeft:
		return "exchange_left"
	case ExchangeRight:
		return "exchange_right"
	case ResizeBy:
		return "resize_by"
	case MinimizeWindow:
		return "minimize_window"
	case CloseWindow:
		return "close_window"
	case InitiateMove:
		return "initiate_move"
	case InitiateResize:
		return "initiate_resize"
	case ToggleTiling:
		return "toggle_tiling"
	case ToggleFullscreen:
		return "toggle_fullscreen"
	case ReloadConfiguration:
		return "reload_configuration"
	case ShowWindowList:
		return "show_window_list"
	case Run:
		return "run"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}

var byName = map[string]Code{
	"focus_up": FocusUp, "focus_down": FocusDown, "focus_left": FocusLeft, "focus_right": FocusRight,
	"parent_frame": ParentFrame, "child_frame": ChildFrame, "root_frame": RootFrame,
	"next_window": NextWindow, "previous_window": PreviousWindow, "toggle_focus": ToggleFocus,
	"split_horizontally": SplitHorizontally, "split_vertically": SplitVertically,
	"remove_frame": RemoveFrame,
	"exchange_up": ExchangeUp, "exchange_down": ExchangeDown, "exchange_left": ExchangeLeft, "exchange_right": ExchangeRight,
	"resize_by": ResizeBy, "minimize_window": MinimizeWindow, "close_window": CloseWindow,
	"initiate_move": InitiateMove, "initiate_resize": InitiateResize,
	"toggle_tiling": ToggleTiling, "toggle_fullscreen": ToggleFullscreen,
	"reload_configuration": ReloadConfiguration, "show_window_list": ShowWindowList,
	"run": Run, "quit": Quit,
}

// ParseCode looks up a Code by its String() name, for configuration
// deserialization.
func ParseCode(name string) (Code, bool) {
	c, ok := byName[name]
	return c, ok
}

// Kind tags which field of DataValue is live.
type Kind int

const (
	KindNone Kind = iota
	KindInteger
	KindQuad
	KindString
)

// DataValue is a tagged sum over the parameter shapes an Action's code can
// demand. Only one of Integer, Quad, Str is meaningful, selected by Kind.
type DataValue struct {
	Kind    Kind
	Integer int32
	Quad    [4]int32
	Str     string
}

// NoneValue is the zero-parameter value for codes that take none.
func NoneValue() DataValue { return DataValue{Kind: KindNone} }

// IntegerValue wraps a single signed count.
func IntegerValue(v int32) DataValue { return DataValue{Kind: KindInteger, Integer: v} }

// QuadValue wraps the (left, top, right, bottom) shape ResizeBy takes.
func QuadValue(left, top, right, bottom int32) DataValue {
	return DataValue{Kind: KindQuad, Quad: [4]int32{left, top, right, bottom}}
}

// StringValue wraps the command line Run takes.
func StringValue(s string) DataValue { return DataValue{Kind: KindString, Str: s} }

// Clone returns a value-independent copy of v. Every field of DataValue is
// already a plain value (arrays and strings copy by value in Go), so Clone
// is the identity function in practice; it exists as the explicit
// deep-copy point default-merge calls, so that if DataValue ever grows a
// reference-typed field the copy stays correct without an audit of every
// call site.
func (v DataValue) Clone() DataValue { return v }

// Action pairs a Code with the DataValue its parameter type requires.
type Action struct {
	Code      Code
	Parameter DataValue
}

// Clone returns a copy of a whose Parameter is independently owned.
func (a Action) Clone() Action {
	return Action{Code: a.Code, Parameter: a.Parameter.Clone()}
}

// CloneAll clones every action in a sequence, for use when a binding's
// action list is copied from an immutable defaults table into a
// user-owned configuration.
func CloneAll(actions []Action) []Action {
	out := make([]Action, len(actions))
	for i, a := range actions {
		out[i] = a.Clone()
	}
	return out
}
