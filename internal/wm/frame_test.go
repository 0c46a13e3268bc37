package wm

import (
	"testing"

	"github.com/DevByProxy/fensterchef/internal/geometry"
)

// area sums a slice of rectangles' pixel areas, for checking that leaf
// rectangles tile a root rectangle exactly.
func area(rects []geometry.Rect) int64 {
	var total int64
	for _, r := range rects {
		total += int64(r.Width) * int64(r.Height)
	}
	return total
}

func leafRects(f *Frame) []geometry.Rect {
	leaves := f.Leaves()
	out := make([]geometry.Rect, len(leaves))
	for i, l := range leaves {
		out[i] = l.Rect()
	}
	return out
}

func TestLeavesTileTheRootExactly(t *testing.T) {
	root := NewRootFrame(geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, nil)
	first, _, err := root.Split(geometry.Vertical)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if _, _, err := first.Split(geometry.Horizontal); err != nil {
		t.Fatalf("Split: %v", err)
	}

	rootArea := int64(1920) * 1080
	if got := area(leafRects(root)); got != rootArea {
		t.Errorf("leaf area sum = %d, want %d", got, rootArea)
	}
	if len(root.Leaves()) != 3 {
		t.Errorf("expected 3 leaves after two splits, got %d", len(root.Leaves()))
	}
}

func TestSplitOccupiedLeafRejected(t *testing.T) {
	root := NewRootFrame(geometry.Rect{Width: 100, Height: 100}, nil)
	if _, _, err := root.Split(geometry.Vertical); err != nil {
		t.Fatalf("first split: %v", err)
	}
	if _, _, err := root.Split(geometry.Vertical); err != ErrCannotSplitOccupied {
		t.Errorf("second split on inner node: got %v, want ErrCannotSplitOccupied", err)
	}
}

func TestRemoveRootRejected(t *testing.T) {
	root := NewRootFrame(geometry.Rect{Width: 100, Height: 100}, nil)
	if err := root.Remove(false); err != ErrCannotRemoveRoot {
		t.Errorf("Remove(root) = %v, want ErrCannotRemoveRoot", err)
	}
}

func TestRemoveCascadesWithAutoRemoveVoid(t *testing.T) {
	root := NewRootFrame(geometry.Rect{Width: 100, Height: 100}, nil)
	first, _, _ := root.Split(geometry.Vertical)
	firstFirst, _, _ := first.Split(geometry.Horizontal)

	if err := firstFirst.Remove(true); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !root.IsLeaf() {
		t.Errorf("cascading remove should have collapsed back to a single leaf")
	}
}

func TestFirstEmptyLeafPreOrder(t *testing.T) {
	root := NewRootFrame(geometry.Rect{Width: 100, Height: 100}, nil)
	first, second, _ := root.Split(geometry.Vertical)
	w := &Window{ID: 1}
	first.AssignWindow(w)

	got := root.FirstEmptyLeaf()
	if got != second {
		t.Errorf("FirstEmptyLeaf returned the occupied leaf or nil, want the second leaf")
	}
}

func TestResizeByRejectsBelowMinimum(t *testing.T) {
	root := NewRootFrame(geometry.Rect{Width: 100, Height: 100}, nil)
	first, _, _ := root.Split(geometry.Vertical)

	// first's leaf is 50px wide (half of 100); shrinking it by 30px to 20px
	// stays within the minimum of 10, but a further 40px would leave it at
	// -20px, so that resize is rejected.
	if err := first.ResizeBy(0, 0, -30, 0, 10); err != nil {
		t.Fatalf("ResizeBy within bounds: %v", err)
	}
	if err := first.ResizeBy(0, 0, -40, 0, 10); err != ErrResizeTooSmall {
		t.Errorf("ResizeBy below minimum = %v, want ErrResizeTooSmall", err)
	}
}

func TestFocusDirectionInvolutiveOnSymmetricGeometry(t *testing.T) {
	root := NewRootFrame(geometry.Rect{X: 0, Y: 0, Width: 200, Height: 100}, nil)
	left, right, _ := root.Split(geometry.Vertical)
	m := &Monitor{root: root}

	got := m.FocusDirection(left, geometry.Right)
	if got != right {
		t.Fatalf("focus_right from left leaf = %v, want right leaf", got)
	}
	back := m.FocusDirection(got, geometry.Left)
	if back != left {
		t.Fatalf("focus_left after focus_right = %v, want original left leaf", back)
	}
}

func TestFrameContaining(t *testing.T) {
	root := NewRootFrame(geometry.Rect{X: 0, Y: 0, Width: 200, Height: 100}, nil)
	left, right, _ := root.Split(geometry.Vertical)

	if got := root.FrameContaining(50, 50); got != left {
		t.Errorf("FrameContaining(50,50) = %v, want left leaf", got)
	}
	if got := root.FrameContaining(150, 50); got != right {
		t.Errorf("FrameContaining(150,50) = %v, want right leaf", got)
	}
	if got := root.FrameContaining(1000, 1000); got != nil {
		t.Errorf("FrameContaining outside rect = %v, want nil", got)
	}
}
