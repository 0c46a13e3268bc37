package wm

import "github.com/DevByProxy/fensterchef/internal/geometry"

// PredictState classifies a window's state purely from its attributes and
// the monitor it would land on, independent of any existing frame
// assignment. Named after original_source/src/event.c's
// predict_window_state, which is referenced (by handle_property_notify)
// but not defined in the excerpt available; its call sites pin the
// contract reproduced here -- a pure function from a window's properties
// to a State, re-run after every property change.
func PredictState(attrs Attributes, monitorRect geometry.Rect) State {
	if attrs.Fullscreen {
		return Fullscreen
	}
	if attrs.OverrideRedirect || attrs.TransientFor != 0 {
		return Popup
	}
	fixedSize := attrs.Hints.HasMin && attrs.Hints.HasMax &&
		attrs.Hints.MinWidth == attrs.Hints.MaxWidth &&
		attrs.Hints.MinHeight == attrs.Hints.MaxHeight
	smallerThanMonitor := attrs.Hints.HasMax &&
		attrs.Hints.MaxWidth < monitorRect.Width &&
		attrs.Hints.MaxHeight < monitorRect.Height
	if fixedSize && smallerThanMonitor {
		return Popup
	}
	return Tiling
}
