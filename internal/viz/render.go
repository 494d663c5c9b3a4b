package viz

import (
	"errors"
	"fmt"
	"math"

	"github.com/setanarut/vec"

	"github.com/san-kum/pulleylab/internal/geom"
	"github.com/san-kum/pulleylab/internal/world"
)

// ErrUnknownRenderer indicates an object whose shape kind has no draw
// handler registered. This is a configuration gap and is fatal; objects
// are never silently skipped.
var ErrUnknownRenderer = errors.New("viz: no renderer registered for shape kind")

// View maps world coordinates onto canvas sub-pixels. Both frames have y
// growing downward.
type View struct {
	// Origin is the world point mapped to the canvas top-left pixel.
	Origin vec.Vec2
	// Scale is sub-pixels per world unit.
	Scale float64
}

// FitView builds a view that fits the given world span onto a canvas.
func FitView(c *Canvas, minX, maxX, minY, maxY float64) View {
	sx := float64(c.PixelWidth()) / (maxX - minX)
	sy := float64(c.PixelHeight()) / (maxY - minY)
	return View{Origin: vec.Vec2{X: minX, Y: minY}, Scale: math.Min(sx, sy)}
}

// ToPixel converts a world point to sub-pixel coordinates.
func (v View) ToPixel(p vec.Vec2) (int, int) {
	d := p.Sub(v.Origin).Scale(v.Scale)
	return int(math.Round(d.X)), int(math.Round(d.Y))
}

// ToWorld converts sub-pixel coordinates back to a world point.
func (v View) ToWorld(x, y int) vec.Vec2 {
	return v.Origin.Add(vec.Vec2{X: float64(x), Y: float64(y)}.Scale(1 / v.Scale))
}

// DrawFunc renders one object at its interpolated position.
type DrawFunc func(c *Canvas, v View, obj world.Object, alpha float64)

// Registry resolves draw handlers by shape kind.
type Registry struct {
	draws map[geom.ShapeKind]DrawFunc
}

func NewRegistry() *Registry {
	return &Registry{draws: make(map[geom.ShapeKind]DrawFunc)}
}

// Register installs the handler for a shape kind.
func (r *Registry) Register(kind geom.ShapeKind, fn DrawFunc) {
	r.draws[kind] = fn
}

// Draw renders one object, resolving the handler by the shape's kind tag
// and failing if none is registered.
func (r *Registry) Draw(c *Canvas, v View, obj world.Object, alpha float64) error {
	fn, ok := r.draws[obj.Shape().Kind()]
	if !ok {
		return fmt.Errorf("%w: %s (object %q)", ErrUnknownRenderer, obj.Shape().Kind(), obj.Name())
	}
	fn(c, v, obj, alpha)
	return nil
}

// DrawWorld renders every registered object at the frame's interpolation
// ratio.
func (r *Registry) DrawWorld(c *Canvas, v View, w *world.World, alpha float64) error {
	var err error
	w.ForEachObject(func(obj world.Object) {
		if err != nil {
			return
		}
		err = r.Draw(c, v, obj, alpha)
	})
	return err
}

// DefaultRegistry draws the three shape kinds with braille primitives.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(geom.KindAABB, func(c *Canvas, v View, obj world.Object, alpha float64) {
		b := obj.Shape().(*geom.AABB)
		pos := obj.RenderPosition(alpha)
		x0, y0 := v.ToPixel(pos.Add(b.Min))
		x1, y1 := v.ToPixel(pos.Add(b.Max))
		c.DrawRect(x0, y0, x1, y1, obj.RenderHints().Filled)
	})

	r.Register(geom.KindDisk, func(c *Canvas, v View, obj world.Object, alpha float64) {
		d := obj.Shape().(*geom.Disk)
		pos := obj.RenderPosition(alpha)
		cx, cy := v.ToPixel(pos.Add(d.Center))
		c.DrawCircle(cx, cy, int(math.Round(d.Radius*v.Scale)))
	})

	r.Register(geom.KindLine, func(c *Canvas, v View, obj world.Object, alpha float64) {
		l := obj.Shape().(*geom.Line)
		pos := obj.RenderPosition(alpha)
		x0, y0 := v.ToPixel(pos.Add(l.V1))
		x1, y1 := v.ToPixel(pos.Add(l.V2))
		c.DrawSegment(x0, y0, x1, y1)
	})

	return r
}
