package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/DevByProxy/fensterchef/internal/app"
	"github.com/phsym/console-slog"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagDisplay string
	flagDebug   bool
)

// rootCmd is fensterchef's entry point: connecting to the X server,
// loading the configuration and running the event loop until SIGTERM,
// SIGINT or ACTION_QUIT. Grounded on a9sk-i3-snapshot's root.go, which
// splits the cobra root command from main()'s call to Execute so every
// subcommand file (version.go) can register itself via init().
var rootCmd = &cobra.Command{
	Use:   "fensterchef",
	Short: "A tiling window manager for X11",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon()
	},
	SilenceUsage: true,
}

func init() {
	defaultConfig := filepath.Join(defaultConfigDir(), "fensterchef", "config.yaml")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", defaultConfig, "path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&flagDisplay, "display", "", "X display name (defaults to $DISPLAY)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

func defaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return "."
}

// newLogger builds the slog logger every collaborator shares, styled
// through console-slog the way ItsNotGoodName-x-ipcviewer's InitLogger
// does (cmd/x-ipcviewer/main.go).
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{Level: level}))
}

// runDaemon connects to the display, loads the configuration, and runs
// the event loop until the process is asked to stop. SIGHUP re-resolves
// the on-disk configuration the way the bound ACTION_RELOAD_CONFIGURATION
// key does; SIGTERM and SIGINT request a clean shutdown, per spec §6's
// "CLI / environment" note and §7's resource-exhaustion handling.
func runDaemon() error {
	logger := newLogger(flagDebug)
	slog.SetDefault(logger)

	a, err := app.New(flagDisplay, flagConfig, logger)
	if err != nil {
		return fmt.Errorf("fensterchef: %w", err)
	}
	defer a.Close()

	if err := a.Start(); err != nil {
		return fmt.Errorf("fensterchef: manage existing windows: %w", err)
	}

	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		for sig := range sigC {
			switch sig {
			case syscall.SIGHUP:
				a.Signal(func() {
					if err := a.Reload(); err != nil {
						logger.Error("reload failed", slog.Any("error", err))
					} else {
						logger.Info("configuration reloaded")
					}
				})
			case syscall.SIGTERM, syscall.SIGINT:
				a.Signal(a.Quit)
			}
		}
	}()

	return a.Run()
}
