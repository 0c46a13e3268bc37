// Package notify reports transient, user-visible feedback for actions
// that would otherwise happen silently (a reload, a configuration
// error). taowm paints this kind of feedback directly onto its desktop
// window (main.go's pulseChan-driven repaint, geom.go's drawText); this
// manager does not carry a font-rendering stack, so the default
// implementation logs structured events instead and leaves an on-screen
// overlay to a Notifier a caller supplies.
package notify

import "log/slog"

// Notifier surfaces a short-lived message to the user. internal/interp
// calls it after actions that change state without other visible
// feedback.
type Notifier interface {
	Notify(message string)
	NotifyError(message string, err error)
}

// SlogNotifier reports notifications through a structured logger.
type SlogNotifier struct {
	Logger *slog.Logger
}

// NewSlogNotifier returns a Notifier backed by logger, or slog.Default
// if logger is nil.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogNotifier{Logger: logger}
}

func (n *SlogNotifier) Notify(message string) {
	n.Logger.Info("notify", slog.String("message", message))
}

func (n *SlogNotifier) NotifyError(message string, err error) {
	n.Logger.Error("notify", slog.String("message", message), slog.Any("error", err))
}
