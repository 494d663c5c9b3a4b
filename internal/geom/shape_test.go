package geom

import (
	"math"
	"testing"

	"github.com/setanarut/vec"
)

func TestAABBArea(t *testing.T) {
	b, err := NewAABB(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 2, Y: 3})
	if err != nil {
		t.Fatalf("NewAABB failed: %v", err)
	}
	if b.Area() != 6 {
		t.Errorf("expected area 6, got %f", b.Area())
	}
	if d := b.Dimensions(); d.X != 2 || d.Y != 3 {
		t.Errorf("expected dimensions (2,3), got %v", d)
	}
	if c := b.Center(); c.X != 1 || c.Y != 1.5 {
		t.Errorf("expected center (1,1.5), got %v", c)
	}
}

func TestAABBInvalid(t *testing.T) {
	if _, err := NewAABB(vec.Vec2{X: 1, Y: 0}, vec.Vec2{X: 0, Y: 1}); err == nil {
		t.Error("expected error for inverted bounds")
	}
}

func TestAABBContainsCorners(t *testing.T) {
	b, _ := NewAABB(vec.Vec2{X: -1, Y: -2}, vec.Vec2{X: 3, Y: 4})

	corners := []vec.Vec2{
		{X: -1, Y: -2}, {X: 3, Y: -2}, {X: -1, Y: 4}, {X: 3, Y: 4},
	}
	for _, c := range corners {
		if !b.ContainsPoint(c) {
			t.Errorf("corner %v should be contained", c)
		}
	}

	outside := []vec.Vec2{
		{X: -1.001, Y: 0}, {X: 3.001, Y: 0}, {X: 0, Y: -2.001}, {X: 0, Y: 4.001},
	}
	for _, p := range outside {
		if b.ContainsPoint(p) {
			t.Errorf("point %v should not be contained", p)
		}
	}
}

func TestAABBSurfaces(t *testing.T) {
	b, _ := NewAABB(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 2, Y: 2})

	tests := []struct {
		axis, side int
		normal     vec.Vec2
	}{
		{0, 0, vec.Vec2{X: -1, Y: 0}},
		{1, 0, vec.Vec2{X: 0, Y: -1}},
		{0, 1, vec.Vec2{X: 1, Y: 0}},
		{1, 1, vec.Vec2{X: 0, Y: 1}},
	}
	for _, tt := range tests {
		s := b.Surface(tt.axis, tt.side)
		if s.Normal != tt.normal {
			t.Errorf("surface(%d,%d): expected normal %v, got %v", tt.axis, tt.side, tt.normal, s.Normal)
		}
		if s.Delta != s.To.Sub(s.From) {
			t.Errorf("surface(%d,%d): delta not to-from", tt.axis, tt.side)
		}
		if s.Length() != 2 {
			t.Errorf("surface(%d,%d): expected length 2, got %f", tt.axis, tt.side, s.Length())
		}
	}
}

func TestDiskArea(t *testing.T) {
	d, err := NewDisk(vec.Vec2{}, 2)
	if err != nil {
		t.Fatalf("NewDisk failed: %v", err)
	}
	if math.Abs(d.Area()-4*math.Pi) > 1e-12 {
		t.Errorf("expected area 4*pi, got %f", d.Area())
	}
}

func TestDiskContainsBoundary(t *testing.T) {
	d, _ := NewDisk(vec.Vec2{X: 1, Y: 1}, 2)

	// Points exactly on the boundary circle are inside.
	boundary := []vec.Vec2{
		{X: 3, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: 3}, {X: 1, Y: -1},
	}
	for _, p := range boundary {
		if !d.ContainsPoint(p) {
			t.Errorf("boundary point %v should be contained", p)
		}
	}

	if d.ContainsPoint(vec.Vec2{X: 3.001, Y: 1}) {
		t.Error("point beyond radius should not be contained")
	}
}

func TestDiskInvalidRadius(t *testing.T) {
	for _, r := range []float64{0, -1} {
		if _, err := NewDisk(vec.Vec2{}, r); err == nil {
			t.Errorf("expected error for radius %f", r)
		}
	}
}

func TestLineArea(t *testing.T) {
	l, err := NewLine(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 3, Y: 0}, 2)
	if err != nil {
		t.Fatalf("NewLine failed: %v", err)
	}
	if l.Area() != 6 {
		t.Errorf("expected area 6, got %f", l.Area())
	}
}

func TestLineDefaultWidth(t *testing.T) {
	l, _ := NewLine(vec.Vec2{}, vec.Vec2{X: 1, Y: 0}, 0)
	if l.Width != DefaultLineWidth {
		t.Errorf("expected default width %f, got %f", DefaultLineWidth, l.Width)
	}

	if _, err := NewLine(vec.Vec2{}, vec.Vec2{X: 1, Y: 0}, -0.5); err == nil {
		t.Error("expected error for negative width")
	}
}

func TestLineContainsPoint(t *testing.T) {
	// Width 4: squared distance is compared against the raw width, so the
	// effective reach from the axis is sqrt(4) = 2.
	l, _ := NewLine(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0}, 4)

	tests := []struct {
		p    vec.Vec2
		want bool
	}{
		{vec.Vec2{X: 5, Y: 0}, true},
		{vec.Vec2{X: 5, Y: 2}, true},    // distance 2, distSq 4 == width
		{vec.Vec2{X: 5, Y: 2.01}, false}, // distSq just over width
		{vec.Vec2{X: -2, Y: 0}, true},   // beyond v1, distSq 4 == width
		{vec.Vec2{X: 12.01, Y: 0}, false},
		{vec.Vec2{X: 10, Y: -2}, true}, // clamped to v2
	}
	for _, tt := range tests {
		if got := l.ContainsPoint(tt.p); got != tt.want {
			t.Errorf("ContainsPoint(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestLineDegenerate(t *testing.T) {
	// Zero-length segment degrades to a point query.
	l, _ := NewLine(vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 1, Y: 1}, 1)
	if !l.ContainsPoint(vec.Vec2{X: 1.5, Y: 1}) {
		t.Error("point within width of degenerate segment should be contained")
	}
	if l.ContainsPoint(vec.Vec2{X: 3, Y: 1}) {
		t.Error("distant point should not be contained")
	}
}

func TestBoundingBoxes(t *testing.T) {
	var bb AABB

	d, _ := NewDisk(vec.Vec2{X: 1, Y: 2}, 3)
	d.BoundingBox(&bb)
	if bb.Min.X != -2 || bb.Min.Y != -1 || bb.Max.X != 4 || bb.Max.Y != 5 {
		t.Errorf("disk bounding box wrong: %v %v", bb.Min, bb.Max)
	}

	l, _ := NewLine(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 2}, 1)
	l.BoundingBox(&bb)
	if bb.Min.X != -0.5 || bb.Min.Y != -0.5 || bb.Max.X != 4.5 || bb.Max.Y != 2.5 {
		t.Errorf("line bounding box wrong: %v %v", bb.Min, bb.Max)
	}

	b, _ := NewAABB(vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 2, Y: 2})
	b.BoundingBox(&bb)
	if bb.Min != b.Min || bb.Max != b.Max {
		t.Errorf("aabb bounding box wrong: %v %v", bb.Min, bb.Max)
	}
}

func TestShapeKinds(t *testing.T) {
	b, _ := NewAABB(vec.Vec2{}, vec.Vec2{X: 1, Y: 1})
	d, _ := NewDisk(vec.Vec2{}, 1)
	l, _ := NewLine(vec.Vec2{}, vec.Vec2{X: 1, Y: 0}, 0)

	if b.Kind() != KindAABB || d.Kind() != KindDisk || l.Kind() != KindLine {
		t.Error("shape kind tags wrong")
	}
	if KindDisk.String() != "disk" {
		t.Errorf("expected kind string disk, got %s", KindDisk.String())
	}
}
