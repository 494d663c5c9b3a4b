package world

import (
	"github.com/san-kum/pulleylab/internal/geom"
	"github.com/setanarut/vec"
)

// ObjectType is a capability bitmask. Movable bodies carry both flags.
type ObjectType uint8

const (
	TypeRigidBody ObjectType = 1 << iota
	TypeMovable
)

// RenderConfig carries drawing hints consumed by the renderer; the world
// itself never reads it.
type RenderConfig struct {
	Color  string
	Filled bool
}

// Object is the capability set shared by everything registered in a world.
// The variant set is closed: RigidBody and Movable are the only
// implementations.
type Object interface {
	ID() int
	Name() string
	Shape() geom.Shape
	Position() vec.Vec2
	ObjectType() ObjectType
	Is(t ObjectType) bool
	CanMove() bool

	// ContainsPoint takes a world-frame point, translates it into the
	// object's local frame and delegates to the shape. The caller's point
	// is never mutated.
	ContainsPoint(p vec.Vec2) bool

	// RenderPosition blends between the previous and current position by
	// alpha in [0,1). Static bodies return their position unchanged.
	RenderPosition(alpha float64) vec.Vec2

	// RenderHints returns the drawing hints set on the body.
	RenderHints() RenderConfig

	assignID(id int)
}

// RigidBody is an immovable world object: a shape placed at a position.
type RigidBody struct {
	id     int
	name   string
	shape  geom.Shape
	Pos    vec.Vec2
	Render RenderConfig
}

// NewBody creates an unregistered static body. The id is assigned when the
// body is added to a world.
func NewBody(name string, shape geom.Shape, pos vec.Vec2) *RigidBody {
	return &RigidBody{name: name, shape: shape, Pos: pos}
}

func (b *RigidBody) ID() int            { return b.id }
func (b *RigidBody) Name() string       { return b.name }
func (b *RigidBody) Shape() geom.Shape  { return b.shape }
func (b *RigidBody) Position() vec.Vec2 { return b.Pos }
func (b *RigidBody) CanMove() bool      { return false }

func (b *RigidBody) ObjectType() ObjectType { return TypeRigidBody }

// Is reports whether the body carries all requested capability bits.
func (b *RigidBody) Is(t ObjectType) bool {
	return b.ObjectType()&t == t
}

func (b *RigidBody) ContainsPoint(p vec.Vec2) bool {
	return b.shape.ContainsPoint(p.Sub(b.Pos))
}

func (b *RigidBody) RenderPosition(alpha float64) vec.Vec2 {
	return b.Pos
}

func (b *RigidBody) RenderHints() RenderConfig { return b.Render }

func (b *RigidBody) assignID(id int) { b.id = id }

// Movable is a body that integrates over time. It keeps a snapshot of the
// position at the previous step so renderers can interpolate.
type Movable struct {
	RigidBody

	Velocity     vec.Vec2
	Acceleration vec.Vec2

	lastPos  vec.Vec2
	onGround bool

	// Ground transition hooks, fired synchronously from SetOnGround.
	OnGroundHit   func(m *Movable)
	OnGroundLeave func(m *Movable)
}

// NewMovable creates an unregistered movable body. Velocity and
// acceleration start at zero and may be overridden through the exported
// fields before the first step.
func NewMovable(name string, shape geom.Shape, pos vec.Vec2) *Movable {
	m := &Movable{RigidBody: RigidBody{name: name, shape: shape, Pos: pos}}
	m.lastPos = pos
	return m
}

func (m *Movable) CanMove() bool { return true }

func (m *Movable) ObjectType() ObjectType { return TypeRigidBody | TypeMovable }

func (m *Movable) Is(t ObjectType) bool {
	return m.ObjectType()&t == t
}

// MoveTo snapshots the current position and places the body at p. Call it
// once per step so the interpolation window spans exactly one tick.
func (m *Movable) MoveTo(p vec.Vec2) {
	m.lastPos = m.Pos
	m.Pos = p
}

// LastPosition returns the position snapshot from the previous step.
func (m *Movable) LastPosition() vec.Vec2 { return m.lastPos }

func (m *Movable) RenderPosition(alpha float64) vec.Vec2 {
	return m.lastPos.Lerp(m.Pos, alpha)
}

// OnGround reports the current ground contact flag.
func (m *Movable) OnGround() bool { return m.onGround }

// SetOnGround updates the ground flag and fires the matching transition
// hook when the flag changes.
func (m *Movable) SetOnGround(on bool) {
	if on == m.onGround {
		return
	}
	m.onGround = on
	if on {
		if m.OnGroundHit != nil {
			m.OnGroundHit(m)
		}
	} else if m.OnGroundLeave != nil {
		m.OnGroundLeave(m)
	}
}
