package wm

import (
	"testing"

	"github.com/DevByProxy/fensterchef/internal/geometry"
)

func TestSetMergeAddsAndRelayouts(t *testing.T) {
	s := NewSet([]OutputInfo{
		{Output: 1, Rect: geometry.Rect{Width: 1920, Height: 1080}, IsPrimary: true},
	})
	if len(s.Monitors()) != 1 {
		t.Fatalf("expected 1 monitor, got %d", len(s.Monitors()))
	}
	original := s.Monitors()[0]

	s.Merge([]OutputInfo{
		{Output: 1, Rect: geometry.Rect{Width: 2560, Height: 1440}, IsPrimary: true},
		{Output: 2, Rect: geometry.Rect{X: 2560, Width: 1920, Height: 1080}},
	})

	if len(s.Monitors()) != 2 {
		t.Fatalf("expected 2 monitors after merge, got %d", len(s.Monitors()))
	}
	if s.Monitors()[0] != original {
		t.Errorf("existing output 1 should be relaid out in place, not replaced")
	}
	if got := original.Rect(); got.Width != 2560 || got.Height != 1440 {
		t.Errorf("existing monitor rect = %+v, want relaid-out rect", got)
	}
}

func TestSetGoneDetectsDisconnectedOutputs(t *testing.T) {
	s := NewSet([]OutputInfo{
		{Output: 1, Rect: geometry.Rect{Width: 1920, Height: 1080}, IsPrimary: true},
		{Output: 2, Rect: geometry.Rect{X: 1920, Width: 1920, Height: 1080}},
	})
	gone := s.Gone([]OutputInfo{
		{Output: 1, Rect: geometry.Rect{Width: 1920, Height: 1080}, IsPrimary: true},
	})
	if len(gone) != 1 || gone[0].Output != 2 {
		t.Fatalf("Gone = %+v, want a single entry for output 2", gone)
	}
}

func TestSetContainingPointFallsBackToPrimary(t *testing.T) {
	s := NewSet([]OutputInfo{
		{Output: 1, Rect: geometry.Rect{Width: 1920, Height: 1080}, IsPrimary: true},
	})
	if m := s.ContainingPoint(100, 100); m != s.Primary() {
		t.Errorf("point inside primary should resolve to primary")
	}
	if m := s.ContainingPoint(5000, 5000); m != s.Primary() {
		t.Errorf("point outside every monitor should fall back to primary")
	}
}

func TestMigrateWindowsMovesOccupantsToEmptyLeaves(t *testing.T) {
	mgr, from, _ := newTestManager()
	to := NewMonitor(2, geometry.Rect{X: 1920, Width: 1920, Height: 1080})

	w1, _ := mgr.CreateWindow(1, Attributes{}, from)

	mgr.MigrateWindows(from, to)

	if w1.Frame == nil || w1.Frame.Monitor() != to {
		t.Fatalf("w1 was not migrated onto the destination monitor")
	}
	if !from.Root().IsLeaf() || from.Root().Window() != nil {
		t.Errorf("source monitor's root leaf should be empty after migration")
	}
}
