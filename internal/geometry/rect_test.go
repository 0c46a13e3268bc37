package geometry

import "testing"

func TestSplitVerticalProducesSideBySide(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	first, second := Split(r, Vertical, 0.5)
	want1 := Rect{X: 0, Y: 0, Width: 960, Height: 1080}
	want2 := Rect{X: 960, Y: 0, Width: 960, Height: 1080}
	if first != want1 {
		t.Errorf("first = %+v, want %+v", first, want1)
	}
	if second != want2 {
		t.Errorf("second = %+v, want %+v", second, want2)
	}
}

func TestSplitHorizontalProducesStacked(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	first, second := Split(r, Horizontal, 0.5)
	if first.Width != 1920 || second.Width != 1920 {
		t.Errorf("horizontal split should preserve width, got first=%d second=%d", first.Width, second.Width)
	}
	if first.Height+second.Height != 1080 {
		t.Errorf("heights should sum to original, got %d + %d", first.Height, second.Height)
	}
	if second.Y != first.Height {
		t.Errorf("second.Y = %d, want %d", second.Y, first.Height)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 100, Height: 50}
	cases := []struct {
		x, y int32
		want bool
	}{
		{10, 10, true},
		{110, 60, true},
		{9, 10, false},
		{111, 10, false},
		{50, 200, false},
	}
	for _, c := range cases {
		if got := r.Contains(c.x, c.y); got != c.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestInset(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	got := r.Inset(5, 10, 5, 10)
	want := Rect{X: 5, Y: 10, Width: 90, Height: 80}
	if got != want {
		t.Errorf("Inset = %+v, want %+v", got, want)
	}
}

func TestInHalfPlane(t *testing.T) {
	cases := []struct {
		dir  Direction
		cx   int32
		want bool
	}{
		{Left, -5, true},
		{Left, 5, false},
		{Right, 5, true},
		{Right, -5, false},
	}
	for _, c := range cases {
		if got := InHalfPlane(c.dir, 0, 0, c.cx, 0); got != c.want {
			t.Errorf("InHalfPlane(%v, cx=%d) = %v, want %v", c.dir, c.cx, got, c.want)
		}
	}
}

func TestManhattanDistance(t *testing.T) {
	if d := ManhattanDistance(0, 0, 3, 4); d != 7 {
		t.Errorf("ManhattanDistance = %d, want 7", d)
	}
	if d := ManhattanDistance(-2, -2, 2, 2); d != 8 {
		t.Errorf("ManhattanDistance = %d, want 8", d)
	}
}
