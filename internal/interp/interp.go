// Package interp executes a bound action sequence against a running
// tiling manager. Dispatch on action.Code is a single switch, grounded
// on taowm's actions map (actions.go) but replacing its compiled
// do-function-pointer table with this codebase's data-driven Code enum,
// since the binding table the actions come from is loaded at runtime
// rather than linked in as Go closures.
package interp

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/DevByProxy/fensterchef/internal/action"
	"github.com/DevByProxy/fensterchef/internal/geometry"
	"github.com/DevByProxy/fensterchef/internal/notify"
	"github.com/DevByProxy/fensterchef/internal/run"
	"github.com/DevByProxy/fensterchef/internal/wm"
)

// Context is the frame of reference an action sequence runs against: the
// monitor the triggering input arrived on, the frame currently focused
// there, and the window that frame holds, if any. internal/x11 builds
// one per key or button event from the pointer's containing monitor, the
// way taowm's handleKeyPress resolves screenContaining(pointer).workspace.
type Context struct {
	Monitor *wm.Monitor
	Frame   *wm.Frame
}

// Window returns the window ctx.Frame currently holds, or nil.
func (ctx Context) Window() *wm.Window {
	if ctx.Frame == nil {
		return nil
	}
	return ctx.Frame.Window()
}

// Reloader reloads the running configuration from disk. internal/app's
// App is the concrete implementation.
type Reloader interface {
	Reload() error
}

// Quitter requests the process shut down.
type Quitter interface {
	Quit()
}

// Interpreter holds the collaborators an action sequence may need: the
// tiling manager, a way to launch external commands, user feedback, and
// the reload/quit hooks Meta actions trigger.
type Interpreter struct {
	Manager  *wm.Manager
	Launcher run.Launcher
	Notifier notify.Notifier
	Reloader Reloader
	Quitter  Quitter
	Logger   *slog.Logger
}

// ErrNoFocus is returned by actions that require a focused frame or
// window when ctx carries neither.
var ErrNoFocus = errors.New("interp: no focused frame")

// Execute runs every action in sequence against ctx, stopping at the
// first action that returns a fatal error. Non-fatal problems (a launch
// failure, a missing window for a frame-only action) are reported through
// Notifier and execution continues with the next action, matching
// taowm's loop over checkers after each event: one bad request does not
// abort the batch.
func (ip *Interpreter) Execute(actions []action.Action, ctx Context) error {
	for _, a := range actions {
		if err := ip.execOne(a, ctx); err != nil {
			if errors.Is(err, errFatal) {
				return err
			}
			ip.logf("action %s failed: %v", a.Code, err)
			if ip.Notifier != nil {
				ip.Notifier.NotifyError(a.Code.String(), err)
			}
		}
	}
	return nil
}

var errFatal = errors.New("interp: fatal")

func (ip *Interpreter) logf(format string, args ...any) {
	if ip.Logger != nil {
		ip.Logger.Error(fmt.Sprintf(format, args...))
	}
}

func (ip *Interpreter) execOne(a action.Action, ctx Context) error {
	mgr := ip.Manager
	switch a.Code {
	case action.FocusUp, action.FocusDown, action.FocusLeft, action.FocusRight:
		return ip.focusDirection(ctx, directionFor(a.Code))

	case action.ParentFrame:
		if ctx.Frame == nil {
			return ErrNoFocus
		}
		return ip.moveFocusFrame(ctx, ctx.Frame.Parent())

	case action.ChildFrame:
		if ctx.Frame == nil || ctx.Frame.IsLeaf() {
			return ErrNoFocus
		}
		return ip.moveFocusFrame(ctx, firstDescendant(ctx.Frame))

	case action.RootFrame:
		if ctx.Monitor == nil {
			return ErrNoFocus
		}
		return ip.moveFocusFrame(ctx, ctx.Monitor.Root())

	case action.NextWindow:
		return ip.stepWindow(ctx, true)

	case action.PreviousWindow:
		return ip.stepWindow(ctx, false)

	case action.ToggleFocus:
		return ip.toggleFocus(ctx)

	case action.SplitHorizontally:
		return ip.split(ctx, geometry.Horizontal)

	case action.SplitVertically:
		return ip.split(ctx, geometry.Vertical)

	case action.RemoveFrame:
		if ctx.Frame == nil {
			return ErrNoFocus
		}
		return ctx.Frame.Remove(mgr.Options.AutoRemoveVoid)

	case action.ExchangeUp, action.ExchangeDown, action.ExchangeLeft, action.ExchangeRight:
		return ip.exchangeDirection(ctx, directionFor(a.Code))

	case action.ResizeBy:
		if ctx.Frame == nil {
			return ErrNoFocus
		}
		q := a.Parameter.Quad
		if err := ctx.Frame.ResizeBy(q[0], q[1], q[2], q[3], mgr.Options.MinLeafSize); err != nil {
			return err
		}
		ip.applyMonitor(ctx.Monitor)
		return nil

	case action.MinimizeWindow:
		w := ctx.Window()
		if w == nil {
			return ErrNoFocus
		}
		mgr.Hide(w)
		return nil

	case action.CloseWindow:
		w := ctx.Window()
		if w == nil {
			return ErrNoFocus
		}
		if w.Protocols().DeleteWindow {
			mgr.Req.SendDelete(w)
		} else {
			mgr.Req.Kill(w)
		}
		return nil

	case action.ToggleTiling:
		w := ctx.Window()
		if w == nil {
			return ErrNoFocus
		}
		mgr.ToggleTiling(w, ctx.Monitor)
		return nil

	case action.ToggleFullscreen:
		w := ctx.Window()
		if w == nil {
			return ErrNoFocus
		}
		mgr.ToggleFullscreen(w)
		return nil

	case action.InitiateMove, action.InitiateResize:
		// Handled by internal/x11's pointer-drag state machine, which
		// owns the button-press/motion-notify/button-release sequence
		// these codes start; a button binding carrying them never reaches
		// Execute, and from any other binding they do nothing.
		return nil

	case action.ReloadConfiguration:
		if ip.Reloader == nil {
			return nil
		}
		if err := ip.Reloader.Reload(); err != nil {
			return err
		}
		if ip.Notifier != nil {
			ip.Notifier.Notify("configuration reloaded")
		}
		return nil

	case action.ShowWindowList:
		// Not implemented: the interactive window-list overlay taowm
		// paints (actions.go's doList) is explicitly out of scope.
		return nil

	case action.Run:
		if ip.Launcher == nil {
			return nil
		}
		return ip.Launcher.Run(a.Parameter.Str)

	case action.Quit:
		if ip.Quitter != nil {
			ip.Quitter.Quit()
		}
		return fmt.Errorf("%w: quit requested", errFatal)

	default:
		return fmt.Errorf("interp: unhandled action code %v", a.Code)
	}
}

func directionFor(code action.Code) geometry.Direction {
	switch code {
	case action.FocusUp, action.ExchangeUp:
		return geometry.Up
	case action.FocusDown, action.ExchangeDown:
		return geometry.Down
	case action.FocusLeft, action.ExchangeLeft:
		return geometry.Left
	default:
		return geometry.Right
	}
}

func (ip *Interpreter) focusDirection(ctx Context, dir geometry.Direction) error {
	if ctx.Monitor == nil || ctx.Frame == nil {
		return ErrNoFocus
	}
	next := ctx.Monitor.FocusDirection(ctx.Frame, dir)
	return ip.moveFocusFrame(ctx, next)
}

func (ip *Interpreter) exchangeDirection(ctx Context, dir geometry.Direction) error {
	if ctx.Monitor == nil || ctx.Frame == nil {
		return ErrNoFocus
	}
	other := ctx.Monitor.FocusDirection(ctx.Frame, dir)
	if other == nil {
		return nil
	}
	wm.Exchange(ctx.Frame, other)
	if w := ctx.Frame.Window(); w != nil {
		ip.Manager.ApplyGeometry(w)
	}
	if w := other.Window(); w != nil {
		ip.Manager.ApplyGeometry(w)
	}
	return nil
}

// moveFocusFrame updates the monitor's focused frame and, if it holds a
// window, the manager's focused window; next == nil is a no-op, matching
// the direction-search convention that an edge frame has no neighbor.
func (ip *Interpreter) moveFocusFrame(ctx Context, next *wm.Frame) error {
	if next == nil {
		return nil
	}
	if ctx.Monitor != nil {
		ctx.Monitor.SetFocused(next)
	}
	ip.Manager.FocusWindow(next.Window())
	return nil
}

func (ip *Interpreter) stepWindow(ctx Context, forward bool) error {
	if ctx.Monitor == nil {
		return ErrNoFocus
	}
	next := ctx.Monitor.NextLeaf(ctx.Frame, forward)
	return ip.moveFocusFrame(ctx, next)
}

// toggleFocus swaps focus between the last tiling frame and a popup or
// fullscreen window, matching the default binding's XK_space /
// ACTION_TOGGLE_FOCUS semantics. The window chosen is the first popup or
// fullscreen one the registry yields; that order is not defined, so it
// need not be the topmost one.
func (ip *Interpreter) toggleFocus(ctx Context) error {
	focused := ip.Manager.Focused()
	if focused != nil && focused.State() != wm.Tiling {
		return ip.moveFocusFrame(ctx, ctx.Frame)
	}
	for _, w := range ip.Manager.Registry.Iterate() {
		if w.State() == wm.Popup || w.State() == wm.Fullscreen {
			ip.Manager.FocusWindow(w)
			return nil
		}
	}
	return nil
}

func (ip *Interpreter) split(ctx Context, axis geometry.Axis) error {
	if ctx.Frame == nil {
		return ErrNoFocus
	}
	first, _, err := ctx.Frame.Split(axis)
	if err != nil {
		return err
	}
	if ctx.Monitor != nil {
		ctx.Monitor.SetFocused(first)
	}
	return nil
}

// applyMonitor reissues geometry for every occupied leaf on m, used after
// an operation (ResizeBy) that can move more than one leaf's rect.
func (ip *Interpreter) applyMonitor(m *wm.Monitor) {
	if m == nil {
		return
	}
	for _, leaf := range m.Root().Leaves() {
		if w := leaf.Window(); w != nil {
			ip.Manager.ApplyGeometry(w)
		}
	}
}

// firstDescendant walks f's first-children down to the nearest leaf,
// used by ACTION_CHILD_FRAME to pick which child to focus.
func firstDescendant(f *wm.Frame) *wm.Frame {
	for !f.IsLeaf() {
		f = f.FirstChild()
	}
	return f
}
