package wm

import "github.com/DevByProxy/fensterchef/internal/geometry"

// OutputID is a RandR output identifier.
type OutputID uint32

// Monitor tracks one RandR output's usable rectangle and the root of its
// frame tree. Generalizes taowm's screen (geom.go), which paired a
// rectangle with one workspace's frame tree; workspaces are a taowm
// feature outside this spec, so a Monitor owns its root frame directly.
type Monitor struct {
	Output OutputID
	rect   geometry.Rect
	root   *Frame

	focused *Frame
}

// NewMonitor creates a monitor with a single empty leaf spanning rect.
func NewMonitor(output OutputID, rect geometry.Rect) *Monitor {
	m := &Monitor{Output: output, rect: rect}
	m.root = NewRootFrame(rect, m)
	m.focused = m.root
	return m
}

// Rect returns the monitor's usable rectangle.
func (m *Monitor) Rect() geometry.Rect { return m.rect }

// Root returns the root frame of the monitor's tree.
func (m *Monitor) Root() *Frame { return m.root }

// Focused returns the monitor's currently focused leaf.
func (m *Monitor) Focused() *Frame { return m.focused }

// SetFocused updates the monitor's focused leaf. f must belong to this
// monitor's tree.
func (m *Monitor) SetFocused(f *Frame) {
	if f != nil {
		m.focused = f
	}
}

// Relayout resizes the monitor's rectangle (e.g. after a RandR geometry
// change) and relays out its whole tree.
func (m *Monitor) Relayout(rect geometry.Rect) {
	m.rect = rect
	m.root.Layout(rect)
}

// Set tracks the collection of connected monitors and arbitrates which one
// is primary. Grounded on taowm's package-level `screens []*screen` plus
// `initScreens`/`screenContaining` (geom.go, xinit.go), generalized from
// taowm's Xinerama probe to RandR, and from a package-level
// slice to an owned, mergeable Set so ScreenChangeNotify handling
// is a pure method instead of reassigning a global.
type Set struct {
	monitors []*Monitor
	primary  int
}

// NewSet builds a Set from an initial RandR probe result.
func NewSet(outputs []OutputInfo) *Set {
	s := &Set{}
	s.Merge(outputs)
	return s
}

// OutputInfo is one RandR output's id and usable rectangle, as returned by
// the out-of-scope RandR probe (internal/x11).
type OutputInfo struct {
	Output    OutputID
	Rect      geometry.Rect
	IsPrimary bool
}

// Monitors returns the current monitor list. The slice is owned by s and
// must not be mutated.
func (s *Set) Monitors() []*Monitor { return s.monitors }

// Primary returns the primary monitor. Panics if the set is empty.
func (s *Set) Primary() *Monitor { return s.monitors[s.primary] }

// ContainingPoint returns the monitor whose rectangle contains (x, y),
// falling back to the primary monitor. Grounded on taowm's
// screenContaining (geom.go).
func (s *Set) ContainingPoint(x, y int32) *Monitor {
	for _, m := range s.monitors {
		if m.rect.Contains(x, y) {
			return m
		}
	}
	return s.Primary()
}

// Merge reconciles a fresh RandR probe against the existing monitor list,
// matching by output id. New outputs get a fresh empty frame tree;
// existing outputs are relaid out in place; outputs no longer present are
// dropped. Merge returns nothing; Gone reports the monitors that are about
// to be dropped so the caller can migrate their windows first (via
// Manager.MigrateWindows) -- call order is: gone := s.Gone(outputs);
// migrate their windows; then s.Merge(outputs).
func (s *Set) Merge(outputs []OutputInfo) {
	byID := make(map[OutputID]*Monitor, len(s.monitors))
	for _, m := range s.monitors {
		byID[m.Output] = m
	}

	merged := make([]*Monitor, 0, len(outputs))
	primaryIndex := 0
	for i, info := range outputs {
		if m, ok := byID[info.Output]; ok {
			m.Relayout(info.Rect)
			merged = append(merged, m)
		} else {
			merged = append(merged, NewMonitor(info.Output, info.Rect))
		}
		if info.IsPrimary {
			primaryIndex = i
		}
	}
	s.monitors = merged
	s.primary = primaryIndex
}

// Gone returns the monitors currently tracked whose output id is absent
// from the fresh probe result outputs.
func (s *Set) Gone(outputs []OutputInfo) []*Monitor {
	present := make(map[OutputID]bool, len(outputs))
	for _, info := range outputs {
		present[info.Output] = true
	}
	var gone []*Monitor
	for _, m := range s.monitors {
		if !present[m.Output] {
			gone = append(gone, m)
		}
	}
	return gone
}
