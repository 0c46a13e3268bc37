package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/DevByProxy/fensterchef/internal/action"
	"github.com/DevByProxy/fensterchef/internal/bind"
	"github.com/DevByProxy/fensterchef/internal/geometry"
	"github.com/DevByProxy/fensterchef/internal/interp"
	"github.com/DevByProxy/fensterchef/internal/wm"
)

// xkEscape is XK_Escape, checked directly against the keysym a KeyPress
// produces rather than routed through the binding table: cancelling a
// drag is a property of the drag itself, not a configurable binding.
const xkEscape uint32 = 0xff1b

// Dispatcher runs the event loop: it translates raw X events into the
// wm.Manager and internal/interp calls that implement them. Grounded on
// taowm's main event loop and its manage/unmanage/handle* functions
// (main.go, input.go), generalized from taowm's single hard-coded
// keysym table to bind.Table lookups and an interp.Interpreter that
// executes whatever action list the lookup returns.
type Dispatcher struct {
	Client  *Client
	Manager *wm.Manager
	Interp  *interp.Interpreter
	Keymap  *Keymap

	Keys                  *bind.Table
	KeyIgnoreModifiers    uint16
	Buttons               *bind.Table
	ButtonIgnoreModifiers uint16
	ResizeTolerance       int32

	// Proactive carries closures that originate outside the X event
	// stream -- a caught SIGHUP or SIGTERM, say -- onto the same
	// single-threaded loop that processes events, so a signal handler
	// never touches the frame tree or registry from another goroutine.
	// Grounded on taowm's proactiveChan (main.go).
	Proactive chan func()

	logger *slog.Logger
	drag   *dragState
	quit   bool
}

// NewDispatcher wires a Dispatcher over an already-connected Client and
// a populated Manager; the caller still has to grab bindings via
// bind.RegrabAll before events start arriving.
func NewDispatcher(c *Client, mgr *wm.Manager, ip *interp.Interpreter, km *Keymap, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		Client:    c,
		Manager:   mgr,
		Interp:    ip,
		Keymap:    km,
		logger:    logger,
		Proactive: make(chan func()),
	}
}

// Quit asks Run's loop to exit after the current event finishes
// processing. Implements interp.Quitter so ACTION_QUIT can reach it.
func (d *Dispatcher) Quit() { d.quit = true }

// eventOrError pairs one WaitForEvent result, mirroring the shape of
// xgb.Conn.WaitForEvent's two return values so the reader goroutine
// below can hand either half to the select loop. Grounded on taowm's
// xEventOrError (main.go).
type eventOrError struct {
	event xgb.Event
	err   xgb.Error
}

// Run processes X events until Quit is called or the connection fails.
// Grounded on taowm's main function's for-select loop (main.go): queued
// requests are flushed once per iteration rather than checked inline,
// so one bad request never blocks the handler that issued it.
func (d *Dispatcher) Run() error {
	eeChan := make(chan eventOrError)
	go func() {
		for {
			ev, err := d.Client.Conn.WaitForEvent()
			eeChan <- eventOrError{ev, err}
			if ev == nil && err == nil {
				return
			}
		}
	}()

	for !d.quit {
		select {
		case fn := <-d.Proactive:
			fn()
		case ee := <-eeChan:
			if ee.err != nil {
				d.logf("x11 protocol error: %v", ee.err)
				continue
			}
			if ee.event == nil {
				return nil
			}
			d.handle(ee.event)
		}
		d.Client.FlushChecks()
	}
	return nil
}

func (d *Dispatcher) logf(format string, args ...any) {
	if d.logger != nil {
		d.logger.Error(fmt.Sprintf(format, args...))
	}
}

func (d *Dispatcher) handle(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		d.manage(e.Window)
	case xproto.UnmapNotifyEvent:
		d.hide(e.Window)
	case xproto.DestroyNotifyEvent:
		d.unmanage(e.Window)
	case xproto.ConfigureRequestEvent:
		d.handleConfigureRequest(e)
	case xproto.KeyPressEvent:
		d.handleKeyPress(e)
	case xproto.ButtonPressEvent:
		d.handleButtonPress(e)
	case xproto.ButtonReleaseEvent:
		d.handleButtonRelease(e)
	case xproto.MotionNotifyEvent:
		d.handleMotionNotify(e)
	case xproto.EnterNotifyEvent:
		d.handleEnterNotify(e)
	case xproto.PropertyNotifyEvent:
		d.handlePropertyNotify(e)
	case randr.ScreenChangeNotifyEvent:
		d.handleScreenChange(e)
	default:
		// ClientMessage, ConfigureNotify, MapNotify, MappingNotify,
		// RandR's OutputChange/CrtcChange notifications and anything else
		// this manager does not act on; per spec §9 Open Question 4 only
		// ScreenChangeNotify drives a re-tile.
	}
}

// handleScreenChange re-probes RandR outputs after a hotplug or geometry
// change, migrates windows off any monitor that disappeared onto a
// surviving one, and merges the fresh probe into the monitor set.
// Grounded on spec §4.6's RandR handling and wm.Set.Merge/Gone.
func (d *Dispatcher) handleScreenChange(e randr.ScreenChangeNotifyEvent) {
	outputs, err := d.Client.ProbeOutputs()
	if err != nil {
		d.logf("randr: probe outputs: %v", err)
		return
	}
	set := d.Manager.Monitors
	if gone := set.Gone(outputs); len(gone) > 0 {
		goneSet := make(map[*wm.Monitor]bool, len(gone))
		for _, g := range gone {
			goneSet[g] = true
		}
		var survivor *wm.Monitor
		for _, m := range set.Monitors() {
			if !goneSet[m] {
				survivor = m
				break
			}
		}
		if survivor != nil {
			for _, g := range gone {
				d.Manager.MigrateWindows(g, survivor)
			}
		}
	}
	set.Merge(outputs)
}

// contextAt builds an interp.Context from the monitor containing (x, y)
// and that monitor's currently focused frame, the same resolution
// taowm's screenContaining(pointer).workspace performs before running an
// action (input.go's handleKeyPress).
func (d *Dispatcher) contextAt(x, y int16) interp.Context {
	mon := d.Manager.Monitors.ContainingPoint(int32(x), int32(y))
	return interp.Context{Monitor: mon, Frame: mon.Focused()}
}

func (d *Dispatcher) windowFor(xWin xproto.Window) (*wm.Window, bool) {
	return d.Manager.Registry.Lookup(wm.XWindow(xWin))
}

func (d *Dispatcher) handleKeyPress(e xproto.KeyPressEvent) {
	shiftHeld := e.State&uint16(xproto.ModMaskShift) != 0
	keysym := d.Keymap.Keysym(e.Detail, shiftHeld)
	if keysym == 0 {
		return
	}
	if d.drag != nil && keysym == xkEscape {
		d.cancelDrag()
		return
	}
	b, ok := d.Keys.Lookup(e.State, d.KeyIgnoreModifiers, bind.Trigger{Kind: bind.Key, Value: keysym}, bind.OnPress)
	if !ok && shiftHeld {
		// Bindings name a key by its unshifted keysym and list Shift as a
		// modifier (Shift+r, not R), so retry with the unshifted symbol.
		unshifted := bind.Trigger{Kind: bind.Key, Value: d.Keymap.Keysym(e.Detail, false)}
		b, ok = d.Keys.Lookup(e.State, d.KeyIgnoreModifiers, unshifted, bind.OnPress)
	}
	if !ok {
		return
	}
	ctx := d.contextAt(e.RootX, e.RootY)
	if err := d.Interp.Execute(b.Actions, ctx); err != nil {
		d.quit = true
	}
}

func (d *Dispatcher) handleButtonPress(e xproto.ButtonPressEvent) {
	trig := bind.Trigger{Kind: bind.Button, Value: uint32(e.Detail)}
	b, ok := d.Buttons.Lookup(e.State, d.ButtonIgnoreModifiers, trig, bind.OnPress)
	if !ok {
		return
	}
	for _, a := range b.Actions {
		switch a.Code {
		case action.InitiateMove:
			d.startDrag(e, dragMove)
			return
		case action.InitiateResize:
			d.startDrag(e, dragResize)
			return
		}
	}
	ctx := d.contextAt(e.RootX, e.RootY)
	if err := d.Interp.Execute(b.Actions, ctx); err != nil {
		d.quit = true
	}
}

func (d *Dispatcher) handleButtonRelease(e xproto.ButtonReleaseEvent) {
	if d.drag != nil {
		d.endDrag()
	}
}

func (d *Dispatcher) handleMotionNotify(e xproto.MotionNotifyEvent) {
	if d.drag != nil {
		d.updateDrag(e.RootX, e.RootY)
	}
}

// handleEnterNotify focuses the window the pointer entered, implementing
// focus-follows-mouse. Grounded on taowm's handleEnterNotify (input.go).
func (d *Dispatcher) handleEnterNotify(e xproto.EnterNotifyEvent) {
	w, ok := d.windowFor(e.Event)
	if !ok || w.Frame == nil {
		return
	}
	if mon := w.Frame.Monitor(); mon != nil {
		mon.SetFocused(w.Frame)
	}
	d.Manager.FocusWindow(w)
}

// handleConfigureRequest forwards the request through
// Manager.ApplyConfigureRequest for a managed window, which applies it to
// a popup and ignores it for a tiling or fullscreen window, or honors it
// verbatim for an unmanaged one. Grounded on
// taowm's handleConfigureRequest (main.go).
func (d *Dispatcher) handleConfigureRequest(e xproto.ConfigureRequestEvent) {
	if w, ok := d.windowFor(e.Window); ok {
		requested := geometry.Rect{X: int32(e.X), Y: int32(e.Y), Width: int32(e.Width), Height: int32(e.Height)}
		d.Manager.ApplyConfigureRequest(w, requested)
		return
	}
	var mask uint16
	var values []uint32
	if e.ValueMask&xproto.ConfigWindowX != 0 {
		mask |= xproto.ConfigWindowX
		values = append(values, uint32(e.X))
	}
	if e.ValueMask&xproto.ConfigWindowY != 0 {
		mask |= xproto.ConfigWindowY
		values = append(values, uint32(e.Y))
	}
	if e.ValueMask&xproto.ConfigWindowWidth != 0 {
		mask |= xproto.ConfigWindowWidth
		values = append(values, uint32(e.Width))
	}
	if e.ValueMask&xproto.ConfigWindowHeight != 0 {
		mask |= xproto.ConfigWindowHeight
		values = append(values, uint32(e.Height))
	}
	if e.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
		mask |= xproto.ConfigWindowBorderWidth
		values = append(values, uint32(e.BorderWidth))
	}
	if e.ValueMask&xproto.ConfigWindowStackMode != 0 {
		mask |= xproto.ConfigWindowStackMode
		values = append(values, uint32(e.StackMode))
	}
	d.Client.check(xproto.ConfigureWindowChecked(d.Client.Conn, e.Window, mask, values))
}

// handlePropertyNotify refreshes a managed window's cached WM_NAME,
// WM_HINTS or WM_NORMAL_HINTS when the server reports one changed.
// Updating either hint re-runs the state prediction and transitions the
// window if the result changed -- a window that becomes fixed-size via a
// late WM_NORMAL_HINTS change, for instance, moves from tiling to popup
// right away rather than waiting for some other event to notice.
// Grounded on original_source's event.c, which calls predict_window_state
// after every property change it cares about.
func (d *Dispatcher) handlePropertyNotify(e xproto.PropertyNotifyEvent) {
	w, ok := d.windowFor(e.Window)
	if !ok {
		return
	}
	switch e.Atom {
	case d.Client.Atoms.WMName:
		name, err := d.fetchName(e.Window)
		if err != nil {
			return
		}
		d.Manager.UpdateName(w, name)
	case d.Client.Atoms.WMNormalHints:
		d.Manager.UpdateSizeHints(w, d.fetchSizeHints(e.Window))
	case d.Client.Atoms.WMHints:
		d.Manager.UpdateWMHints(w, d.fetchWMHints(e.Window))
	}
}
