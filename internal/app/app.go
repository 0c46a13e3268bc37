// Package app wires internal/config, internal/wm, internal/bind,
// internal/interp and internal/x11 into one running instance: it is the
// only package besides cmd/fensterchef that constructs all of them
// together. Grounded on taowm's main function (main.go), generalized
// from taowm's package-level global wiring into an explicit, restartable
// App value so a configuration reload can rebuild the binding tables and
// re-grab without tearing down the X connection.
package app

import (
	"fmt"
	"os"

	"log/slog"

	"github.com/DevByProxy/fensterchef/internal/bind"
	"github.com/DevByProxy/fensterchef/internal/config"
	"github.com/DevByProxy/fensterchef/internal/interp"
	"github.com/DevByProxy/fensterchef/internal/notify"
	"github.com/DevByProxy/fensterchef/internal/run"
	"github.com/DevByProxy/fensterchef/internal/wm"
	"github.com/DevByProxy/fensterchef/internal/x11"
)

// App owns every long-lived collaborator a running window manager needs.
// All of its mutation happens on the single goroutine that calls Run,
// per spec §5's single-threaded cooperative model -- Reload is only
// ever invoked from inside that same loop (via ACTION_RELOAD_CONFIGURATION
// or the SIGHUP proactive closure), never concurrently with event
// handling.
type App struct {
	configPath string
	logger     *slog.Logger

	client     *x11.Client
	keymap     *x11.Keymap
	grabber    *x11.Grabber
	manager    *wm.Manager
	dispatcher *x11.Dispatcher

	cfg *config.Configuration
}

// New connects to the X display, probes the initial monitor layout,
// loads configPath (a missing file is not an error -- it just means the
// built-in defaults apply), wires every collaborator, and grabs every
// bound key and button on the root window. The returned App has not yet
// started managing existing windows; call Start for that.
func New(displayName, configPath string, logger *slog.Logger) (*App, error) {
	client, err := x11.Connect(displayName, logger)
	if err != nil {
		return nil, err
	}
	if err := client.InitRandR(); err != nil {
		client.Close()
		return nil, fmt.Errorf("app: init randr: %w", err)
	}
	keymap, err := x11.LoadKeymap(client.Conn)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("app: load keymap: %w", err)
	}
	outputs, err := client.ProbeOutputs()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("app: probe outputs: %w", err)
	}
	if len(outputs) == 0 {
		client.Close()
		return nil, fmt.Errorf("app: no connected RandR outputs")
	}

	a := &App{
		configPath: configPath,
		logger:     logger,
		client:     client,
		keymap:     keymap,
		grabber:    &x11.Grabber{Client: client, Keymap: keymap},
	}

	cfg, bindings, err := a.loadConfiguration()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("app: load configuration: %w", err)
	}
	a.cfg = cfg

	requester := &x11.Requester{Client: client}
	monitors := wm.NewSet(outputs)
	a.manager = wm.NewManager(monitors, cfg.WMOptions(), requester)

	ip := &interp.Interpreter{
		Manager:  a.manager,
		Launcher: run.ShellLauncher{},
		Notifier: notify.NewSlogNotifier(logger),
		Reloader: a,
		Logger:   logger,
	}
	a.dispatcher = x11.NewDispatcher(client, a.manager, ip, keymap, logger)
	ip.Quitter = a.dispatcher
	a.applyBindings(bindings)

	return a, nil
}

// loadConfiguration reads configPath, tolerating its absence, and
// resolves it through internal/config.Load.
func (a *App) loadConfiguration() (*config.Configuration, *config.ResolvedBindings, error) {
	data, err := os.ReadFile(a.configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, nil, err
	}
	return config.Load(data)
}

// applyBindings installs a freshly resolved binding set onto the
// dispatcher and re-grabs the root window, per spec §4.4's grab rule:
// after (re)loading a configuration, every bound key/button is grabbed
// once per combination with a subset of its ignore modifiers.
func (a *App) applyBindings(b *config.ResolvedBindings) {
	a.dispatcher.Keys = b.Keys
	a.dispatcher.KeyIgnoreModifiers = b.KeyIgnore
	a.dispatcher.Buttons = b.Buttons
	a.dispatcher.ButtonIgnoreModifiers = b.ButtonIgnore
	a.dispatcher.ResizeTolerance = b.ResizeTolerance

	bind.RegrabAll(b.Keys, b.KeyIgnore, a.grabber)
	bind.RegrabAll(b.Buttons, b.ButtonIgnore, a.grabber)
	a.client.FlushChecks()
}

// Reload re-reads configPath and atomically replaces the running
// configuration: binding tables, tiling options and grabs are all
// rebuilt from the new value before anything is torn down from the old
// one, so a malformed file leaves the prior configuration fully active
// per spec §7's "the reload is rejected, the prior configuration remains
// active" rule. Implements interp.Reloader.
func (a *App) Reload() error {
	cfg, bindings, err := a.loadConfiguration()
	if err != nil {
		return fmt.Errorf("app: reload: %w", err)
	}
	a.cfg = cfg
	a.manager.Options = cfg.WMOptions()
	a.applyBindings(bindings)
	return nil
}

// Start brings every window already mapped under management, the step
// taowm's main performs once at startup (main.go) before entering its
// event loop. The key and button grabs are already in place from New.
func (a *App) Start() error {
	return a.dispatcher.ManageExisting()
}

// Signal schedules fn to run on the event loop goroutine at the next
// opportunity, for use by a caller (cmd/fensterchef's signal handler)
// running on a different goroutine. Safe to call concurrently with Run.
func (a *App) Signal(fn func()) {
	a.dispatcher.Proactive <- fn
}

// Quit asks the event loop to exit after the current iteration.
func (a *App) Quit() { a.dispatcher.Quit() }

// Run processes X events until Quit is called or the display connection
// is lost.
func (a *App) Run() error {
	return a.dispatcher.Run()
}

// Close releases every key and button grab on the root window and the X
// connection.
// Grounded on spec §7's resource-exhaustion handling: the process exits
// only after leaving the X session in a usable state for whatever window
// manager replaces this one.
func (a *App) Close() {
	a.grabber.UngrabAll()
	a.client.FlushChecks()
	a.client.Close()
}
