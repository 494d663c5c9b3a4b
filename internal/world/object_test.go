package world

import (
	"testing"

	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/pulleylab/internal/geom"
)

func box(t *testing.T, w, h float64) geom.Shape {
	t.Helper()
	s, err := geom.NewAABB(vec.Vec2{}, vec.Vec2{X: w, Y: h})
	require.NoError(t, err)
	return s
}

func TestObjectTypeFlags(t *testing.T) {
	b := NewBody("wall", box(t, 1, 1), vec.Vec2{})
	m := NewMovable("crate", box(t, 1, 1), vec.Vec2{})

	assert.True(t, b.Is(TypeRigidBody))
	assert.False(t, b.Is(TypeMovable))
	assert.False(t, b.Is(TypeRigidBody|TypeMovable))
	assert.False(t, b.CanMove())

	assert.True(t, m.Is(TypeRigidBody))
	assert.True(t, m.Is(TypeMovable))
	assert.True(t, m.Is(TypeRigidBody|TypeMovable))
	assert.True(t, m.CanMove())
}

func TestContainsPointTranslatesToLocalFrame(t *testing.T) {
	b := NewBody("wall", box(t, 2, 2), vec.Vec2{X: 10, Y: 10})

	p := vec.Vec2{X: 11, Y: 11}
	assert.True(t, b.ContainsPoint(p))
	assert.False(t, b.ContainsPoint(vec.Vec2{X: 1, Y: 1}))

	// The query point is passed by value and must survive the call.
	assert.Equal(t, vec.Vec2{X: 11, Y: 11}, p)
}

func TestMovableInterpolation(t *testing.T) {
	m := NewMovable("crate", box(t, 1, 1), vec.Vec2{X: 0, Y: 0})
	m.MoveTo(vec.Vec2{X: 4, Y: 2})

	assert.Equal(t, vec.Vec2{X: 0, Y: 0}, m.LastPosition())
	assert.Equal(t, vec.Vec2{X: 2, Y: 1}, m.RenderPosition(0.5))
	assert.Equal(t, vec.Vec2{X: 0, Y: 0}, m.RenderPosition(0))

	// Static bodies ignore alpha.
	b := NewBody("wall", box(t, 1, 1), vec.Vec2{X: 7, Y: 7})
	assert.Equal(t, vec.Vec2{X: 7, Y: 7}, b.RenderPosition(0.5))
}

func TestGroundTransitionHooks(t *testing.T) {
	m := NewMovable("crate", box(t, 1, 1), vec.Vec2{})

	var hits, leaves int
	m.OnGroundHit = func(*Movable) { hits++ }
	m.OnGroundLeave = func(*Movable) { leaves++ }

	m.SetOnGround(true)
	m.SetOnGround(true) // no transition
	m.SetOnGround(false)
	m.SetOnGround(true)

	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, leaves)
	assert.True(t, m.OnGround())
}
