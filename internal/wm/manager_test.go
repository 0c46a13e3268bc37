package wm

import (
	"testing"

	"github.com/DevByProxy/fensterchef/internal/geometry"
)

// fakeRequester records every side effect Manager issues, for assertions,
// without touching an X server.
type fakeRequester struct {
	configured map[XWindow]geometry.Rect
	mapped     map[XWindow]bool
	focused    XWindow
}

func newFakeRequester() *fakeRequester {
	return &fakeRequester{configured: map[XWindow]geometry.Rect{}, mapped: map[XWindow]bool{}}
}

func (f *fakeRequester) Configure(w *Window, rect geometry.Rect) { f.configured[w.ID] = rect }
func (f *fakeRequester) Map(w *Window)                           { f.mapped[w.ID] = true }
func (f *fakeRequester) Unmap(w *Window)                         { f.mapped[w.ID] = false }
func (f *fakeRequester) Raise(w *Window)                         {}
func (f *fakeRequester) Focus(w *Window) {
	if w == nil {
		f.focused = 0
		return
	}
	f.focused = w.ID
}
func (f *fakeRequester) SendDelete(w *Window) {}
func (f *fakeRequester) Kill(w *Window)       {}

func newTestManager() (*Manager, *Monitor, *fakeRequester) {
	mon := NewMonitor(1, geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080})
	set := NewSet(nil)
	set.monitors = []*Monitor{mon}
	req := newFakeRequester()
	mgr := NewManager(set, Options{MinLeafSize: 1}, req)
	return mgr, mon, req
}

func TestScenario1_MapOnEmptyTree(t *testing.T) {
	mgr, mon, req := newTestManager()
	w1, err := mgr.CreateWindow(1, Attributes{}, mon)
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if w1.State() != Tiling {
		t.Fatalf("state = %v, want tiling", w1.State())
	}
	want := geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	if got := req.configured[w1.ID]; got != want {
		t.Errorf("configured rect = %+v, want %+v", got, want)
	}
}

func TestScenario2_SplitThenMap(t *testing.T) {
	mgr, mon, req := newTestManager()
	w1, _ := mgr.CreateWindow(1, Attributes{}, mon)
	if _, _, err := w1.Frame.Split(geometry.Vertical); err != nil {
		t.Fatalf("Split: %v", err)
	}
	mgr.ApplyGeometry(w1)

	w2, _ := mgr.CreateWindow(2, Attributes{}, mon)

	want1 := geometry.Rect{X: 0, Y: 0, Width: 960, Height: 1080}
	want2 := geometry.Rect{X: 960, Y: 0, Width: 960, Height: 1080}
	if got := req.configured[w1.ID]; got != want1 {
		t.Errorf("w1 rect = %+v, want %+v", got, want1)
	}
	if got := req.configured[w2.ID]; got != want2 {
		t.Errorf("w2 rect = %+v, want %+v", got, want2)
	}
}

func TestScenario3_ResizeBy(t *testing.T) {
	mgr, mon, req := newTestManager()
	w1, _ := mgr.CreateWindow(1, Attributes{}, mon)
	w1.Frame.Split(geometry.Vertical)
	mgr.ApplyGeometry(w1)
	w2, _ := mgr.CreateWindow(2, Attributes{}, mon)

	if err := w1.Frame.ResizeBy(0, 0, -100, 0, 1); err != nil {
		t.Fatalf("ResizeBy: %v", err)
	}
	mgr.ApplyGeometry(w1)
	mgr.ApplyGeometry(w2)

	want1 := geometry.Rect{X: 0, Y: 0, Width: 860, Height: 1080}
	want2 := geometry.Rect{X: 860, Y: 0, Width: 1060, Height: 1080}
	if got := req.configured[w1.ID]; got != want1 {
		t.Errorf("w1 rect = %+v, want %+v", got, want1)
	}
	if got := req.configured[w2.ID]; got != want2 {
		t.Errorf("w2 rect = %+v, want %+v", got, want2)
	}
}

func TestScenario4_ExchangeRight(t *testing.T) {
	mgr, mon, _ := newTestManager()
	w1, _ := mgr.CreateWindow(1, Attributes{}, mon)
	left, right, _ := w1.Frame.Split(geometry.Vertical)
	mgr.ApplyGeometry(w1)
	w2, _ := mgr.CreateWindow(2, Attributes{}, mon)

	leftRect, rightRect := left.Rect(), right.Rect()
	Exchange(left, right)

	if left.Window() != w2 || right.Window() != w1 {
		t.Fatalf("exchange did not swap windows")
	}
	if left.Rect() != leftRect || right.Rect() != rightRect {
		t.Errorf("exchange must not alter frame geometry")
	}
	if w1.Frame != right || w2.Frame != left {
		t.Errorf("window back-references not updated by exchange")
	}
}

func TestScenario5_DestroyWithAutoRemoveVoid(t *testing.T) {
	mgr, mon, req := newTestManager()
	mgr.Options.AutoRemoveVoid = true
	w1, _ := mgr.CreateWindow(1, Attributes{}, mon)
	w1.Frame.Split(geometry.Vertical)
	mgr.ApplyGeometry(w1)
	w2, _ := mgr.CreateWindow(2, Attributes{}, mon)

	mgr.DestroyWindow(w1)
	mgr.ApplyGeometry(w2)

	if !mon.Root().IsLeaf() {
		t.Fatalf("expected single leaf after cascading remove")
	}
	if mon.Root().Window() != w2 {
		t.Fatalf("surviving leaf does not hold w2")
	}
	want := geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	if got := req.configured[w2.ID]; got != want {
		t.Errorf("w2 rect = %+v, want %+v", got, want)
	}
}

func TestDestroyWindowClearsFocus(t *testing.T) {
	mgr, mon, _ := newTestManager()
	w1, _ := mgr.CreateWindow(1, Attributes{}, mon)
	mgr.FocusWindow(w1)
	mgr.DestroyWindow(w1)
	if mgr.Focused() != nil {
		t.Errorf("Focused() should be nil after destroying the focused window")
	}
	if _, ok := mgr.Registry.Lookup(w1.ID); ok {
		t.Errorf("destroyed window still present in registry")
	}
}

func TestApplyGeometryIsIdempotent(t *testing.T) {
	mgr, mon, req := newTestManager()
	w1, _ := mgr.CreateWindow(1, Attributes{}, mon)
	delete(req.configured, w1.ID)
	mgr.ApplyGeometry(w1)
	if _, ok := req.configured[w1.ID]; ok {
		t.Errorf("ApplyGeometry reissued a configure for an unchanged rect")
	}
}

func TestToggleFullscreenRestoresPreviousState(t *testing.T) {
	mgr, mon, _ := newTestManager()
	w1, _ := mgr.CreateWindow(1, Attributes{}, mon)
	mgr.ToggleFullscreen(w1)
	if w1.State() != Fullscreen {
		t.Fatalf("state = %v, want fullscreen", w1.State())
	}
	mgr.ToggleFullscreen(w1)
	if w1.State() != Tiling {
		t.Fatalf("state = %v, want tiling after toggling back", w1.State())
	}
}
