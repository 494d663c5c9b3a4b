package geom

import "github.com/setanarut/vec"

// LineSegment is an oriented boundary element: a segment with an outward
// unit normal. It is currently the only surface primitive.
type LineSegment struct {
	From   vec.Vec2
	To     vec.Vec2
	Normal vec.Vec2
	Delta  vec.Vec2
}

func NewLineSegment(from, to, normal vec.Vec2) LineSegment {
	return LineSegment{
		From:   from,
		To:     to,
		Normal: normal,
		Delta:  to.Sub(from),
	}
}

// Length returns the segment length.
func (s LineSegment) Length() float64 {
	return s.Delta.Mag()
}
