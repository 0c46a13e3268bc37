package wm

import (
	"errors"

	"github.com/DevByProxy/fensterchef/internal/geometry"
)

// Frame is a node in a monitor's binary partition tree: either a leaf
// (holding at most one window) or an inner node split into exactly two
// children. This mirrors taowm's frame type (geom.go), generalized from
// taowm's N-ary sibling list down to the strict binary tree.
type Frame struct {
	parent *Frame

	first, second *Frame
	axis          geometry.Axis
	ratio         float64

	win  *Window
	rect geometry.Rect

	monitor *Monitor
}

var (
	// ErrCannotSplitOccupied is returned when Split is called on a frame
	// that is already an inner node.
	ErrCannotSplitOccupied = errors.New("wm: frame is not a leaf")
	// ErrCannotRemoveRoot is returned when Remove is called on the root
	// frame of a monitor, which has no sibling to collapse into.
	ErrCannotRemoveRoot = errors.New("wm: cannot remove the root frame")
	// ErrResizeTooSmall is returned when a resize would shrink a leaf
	// below the minimum size on either axis.
	ErrResizeTooSmall = errors.New("wm: resize would shrink a frame below the minimum size")
)

// NewRootFrame creates the single leaf frame that starts a monitor's tree.
func NewRootFrame(rect geometry.Rect, monitor *Monitor) *Frame {
	return &Frame{rect: rect, monitor: monitor}
}

// IsLeaf reports whether f holds no children.
func (f *Frame) IsLeaf() bool { return f.first == nil }

// Parent returns f's parent, or nil for the root frame.
func (f *Frame) Parent() *Frame { return f.parent }

// Window returns the window held by this leaf, or nil.
func (f *Frame) Window() *Window { return f.win }

// Rect returns the frame's current rectangle.
func (f *Frame) Rect() geometry.Rect { return f.rect }

// Monitor returns the monitor that owns this frame's tree.
func (f *Frame) Monitor() *Monitor { return f.monitor }

// Axis returns the split axis of an inner node (meaningless on a leaf).
func (f *Frame) Axis() geometry.Axis { return f.axis }

// FirstChild returns the first child of an inner node, or nil on a leaf.
func (f *Frame) FirstChild() *Frame { return f.first }

// SecondChild returns the second child of an inner node, or nil on a leaf.
func (f *Frame) SecondChild() *Frame { return f.second }

// AssignWindow places w into leaf f, clearing any previous frame
// association w had.
func (f *Frame) AssignWindow(w *Window) {
	if w.Frame != nil {
		w.Frame.win = nil
	}
	f.win = w
	w.Frame = f
}

// Vacate clears w's association with its frame, if any.
func (w *Window) Vacate() {
	if w.Frame != nil {
		w.Frame.win = nil
		w.Frame = nil
	}
}

// Split replaces leaf f with an inner node along axis, moving f's window
// (if any) into the first child. The split ratio defaults to 0.5.
// Grounded on taowm's frame.split (geom.go), generalized from taowm's
// sibling-insertion (which supported N-ary runs of same-axis splits) down
// to the strict binary tree.
func (f *Frame) Split(axis geometry.Axis) (first, second *Frame, err error) {
	if !f.IsLeaf() {
		return nil, nil, ErrCannotSplitOccupied
	}
	f.axis = axis
	f.ratio = 0.5
	f.first = &Frame{parent: f, monitor: f.monitor}
	f.second = &Frame{parent: f, monitor: f.monitor}
	if f.win != nil {
		w := f.win
		f.win = nil
		f.first.win = w
		w.Frame = f.first
	}
	f.Layout(f.rect)
	return f.first, f.second, nil
}

func (f *Frame) otherChild(child *Frame) *Frame {
	if f.first == child {
		return f.second
	}
	if f.second == child {
		return f.first
	}
	return nil
}

// Remove collapses f's parent, replacing it with f's sibling. If
// autoRemoveVoid is true and the promoted frame is itself an empty leaf,
// removal cascades up the tree. Grounded on taowm's doMerge (actions.go),
// generalized from taowm's N-ary sibling splice to a two-child collapse.
func (f *Frame) Remove(autoRemoveVoid bool) error {
	first := true
	for {
		parent := f.parent
		if parent == nil {
			if first {
				return ErrCannotRemoveRoot
			}
			// Cascade bottomed out at an already-collapsed root leaf.
			return nil
		}
		first = false
		sibling := parent.otherChild(f)

		parent.axis = sibling.axis
		parent.ratio = sibling.ratio
		parent.first = sibling.first
		parent.second = sibling.second
		parent.win = sibling.win
		if parent.win != nil {
			parent.win.Frame = parent
		}
		for _, c := range [2]*Frame{parent.first, parent.second} {
			if c != nil {
				c.parent = parent
			}
		}
		if parent.monitor != nil && (parent.monitor.focused == f || parent.monitor.focused == sibling) {
			parent.monitor.focused = parent
		}
		parent.Layout(parent.rect)

		if !autoRemoveVoid || !parent.IsLeaf() || parent.win != nil {
			return nil
		}
		f = parent
	}
}

// FirstEmptyLeaf returns the first window-less leaf found by pre-order
// traversal, or nil if none exists. Grounded on taowm's
// frame.firstEmptyFrame (geom.go).
func (f *Frame) FirstEmptyLeaf() *Frame {
	if f.IsLeaf() {
		if f.win == nil {
			return f
		}
		return nil
	}
	if r := f.first.FirstEmptyLeaf(); r != nil {
		return r
	}
	return f.second.FirstEmptyLeaf()
}

// Leaves returns every leaf frame in pre-order.
func (f *Frame) Leaves() []*Frame {
	if f.IsLeaf() {
		return []*Frame{f}
	}
	out := f.first.Leaves()
	return append(out, f.second.Leaves()...)
}

// Layout recomputes rect for f and, recursively, its descendants.
// Grounded on taowm's frame.layout (geom.go).
func (f *Frame) Layout(rect geometry.Rect) {
	f.rect = rect
	if f.IsLeaf() {
		return
	}
	first, second := geometry.Split(rect, f.axis, f.ratio)
	f.first.Layout(first)
	f.second.Layout(second)
}

// FrameContaining returns the leaf whose rectangle contains (x, y), or nil
// if the point falls outside f's rectangle entirely. Grounded on taowm's
// frame.frameContaining (geom.go).
func (f *Frame) FrameContaining(x, y int32) *Frame {
	if !f.rect.Contains(x, y) {
		return nil
	}
	if f.IsLeaf() {
		return f
	}
	if r := f.first.FrameContaining(x, y); r != nil {
		return r
	}
	return f.second.FrameContaining(x, y)
}

// Exchange swaps the windows held by f and other, leaving both frames'
// geometry unchanged. Grounded on taowm's changeWindow (actions.go),
// simplified because the exchange never involves an intervening
// window list.
func Exchange(f, other *Frame) {
	f.win, other.win = other.win, f.win
	if f.win != nil {
		f.win.Frame = f
	}
	if other.win != nil {
		other.win.Frame = other
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// FocusDirection returns the nearest leaf to current along the cardinal
// direction dir, using rectangle-center Manhattan distance, breaking ties
// by axis-aligned distance and then by pre-order tree position. Returns
// nil if no leaf qualifies. This traversal has no taowm analogue (taowm's
// only directional navigation sent synthetic arrow keystrokes to the
// focused client, see actions.go doSynthetic); the half-plane/Manhattan
// heuristic is authored directly against the cardinal-direction frame
// navigation requirement.
func (m *Monitor) FocusDirection(current *Frame, dir geometry.Direction) *Frame {
	leaves := m.root.Leaves()
	ox, oy := current.rect.Center()

	var best *Frame
	var bestDist, bestAxisDist int32
	var bestIndex int

	for i, l := range leaves {
		if l == current {
			continue
		}
		cx, cy := l.rect.Center()
		if !geometry.InHalfPlane(dir, ox, oy, cx, cy) {
			continue
		}
		dist := geometry.ManhattanDistance(ox, oy, cx, cy)
		var axisDist int32
		switch dir {
		case geometry.Up, geometry.Down:
			axisDist = abs32(cy - oy)
		default:
			axisDist = abs32(cx - ox)
		}
		better := best == nil ||
			dist < bestDist ||
			(dist == bestDist && axisDist < bestAxisDist) ||
			(dist == bestDist && axisDist == bestAxisDist && i < bestIndex)
		if better {
			best, bestDist, bestAxisDist, bestIndex = l, dist, axisDist, i
		}
	}
	return best
}

// findSplitAncestor walks up from f looking for the nearest ancestor whose
// split axis matches and whose child on f's path is the first child (if
// viaFirst) or the second child (otherwise).
func findSplitAncestor(f *Frame, axis geometry.Axis, viaFirst bool) *Frame {
	child := f
	for child.parent != nil {
		p := child.parent
		if p.axis == axis {
			if viaFirst && p.first == child {
				return p
			}
			if !viaFirst && p.second == child {
				return p
			}
		}
		child = p
	}
	return nil
}

func validateRatio(size int32, ratio float64, minSize int32) error {
	if ratio <= 0 || ratio >= 1 {
		return ErrResizeTooSmall
	}
	firstSize := int32(float64(size) * ratio)
	secondSize := size - firstSize
	if firstSize < minSize || secondSize < minSize {
		return ErrResizeTooSmall
	}
	return nil
}

// ResizeBy adjusts the edges of f's rectangle by the given pixel deltas
// (positive grows the frame outward on that edge), propagating the
// opposite adjustment to whichever adjacent leaf shares each edge, by
// shifting the nearest ancestor split boundary. The minSize constraint is
// checked against the two child rectangles of each shifted split; leaves
// nested further inside those children are not checked one by one. If any
// edge's adjustment would violate it, no changes are applied at all.
func (f *Frame) ResizeBy(left, top, right, bottom, minSize int32) error {
	type pending struct {
		ancestor *Frame
		ratio    float64
	}
	var adjustments []pending

	if left != 0 {
		if p := findSplitAncestor(f, geometry.Vertical, false); p != nil {
			newX := f.rect.X - left
			ratio := float64(newX-p.rect.X) / float64(p.rect.Width)
			if err := validateRatio(p.rect.Width, ratio, minSize); err != nil {
				return err
			}
			adjustments = append(adjustments, pending{p, ratio})
		}
	}
	if right != 0 {
		if p := findSplitAncestor(f, geometry.Vertical, true); p != nil {
			newRight := f.rect.X + f.rect.Width + right
			ratio := float64(newRight-p.rect.X) / float64(p.rect.Width)
			if err := validateRatio(p.rect.Width, ratio, minSize); err != nil {
				return err
			}
			adjustments = append(adjustments, pending{p, ratio})
		}
	}
	if top != 0 {
		if p := findSplitAncestor(f, geometry.Horizontal, false); p != nil {
			newY := f.rect.Y - top
			ratio := float64(newY-p.rect.Y) / float64(p.rect.Height)
			if err := validateRatio(p.rect.Height, ratio, minSize); err != nil {
				return err
			}
			adjustments = append(adjustments, pending{p, ratio})
		}
	}
	if bottom != 0 {
		if p := findSplitAncestor(f, geometry.Horizontal, true); p != nil {
			newBottom := f.rect.Y + f.rect.Height + bottom
			ratio := float64(newBottom-p.rect.Y) / float64(p.rect.Height)
			if err := validateRatio(p.rect.Height, ratio, minSize); err != nil {
				return err
			}
			adjustments = append(adjustments, pending{p, ratio})
		}
	}

	for _, a := range adjustments {
		a.ancestor.ratio = a.ratio
		a.ancestor.Layout(a.ancestor.rect)
	}
	return nil
}
