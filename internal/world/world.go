package world

import (
	"fmt"
	"time"

	"github.com/setanarut/vec"
)

// Config describes a world. StepIntegrate is the single seam through which
// plant physics is wired into the stepper; it runs once per consumed tick.
type Config struct {
	// Dt is the fixed tick length in seconds.
	Dt float64

	// Floor and Ceiling bound the scene vertically (y grows downward).
	Floor   float64
	Ceiling float64

	// StepIntegrate advances the physical system by one tick.
	StepIntegrate func(dt float64)
}

// World owns the object table and drives the fixed-timestep loop.
type World struct {
	cfg Config

	objects  map[int]Object
	movables map[int]*Movable

	Collisions *CollisionList

	currentIteration uint64
	totalTime        float64
	lastObjectID     int

	running      bool
	lastStepTime time.Time
	now          func() time.Time
}

// New validates the config and creates an empty world.
func New(cfg Config) (*World, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.StepIntegrate == nil {
		return nil, fmt.Errorf("%w: missing step callback", ErrInvalidConfig)
	}
	return &World{
		cfg:              cfg,
		objects:          make(map[int]Object),
		movables:         make(map[int]*Movable),
		Collisions:       NewCollisionList(),
		currentIteration: 1,
		now:              time.Now,
	}, nil
}

// SetClock replaces the wall-clock source. Tests use this to drive the
// accumulator deterministically.
func (w *World) SetClock(now func() time.Time) { w.now = now }

func (w *World) Config() Config     { return w.cfg }
func (w *World) Dt() float64        { return w.cfg.Dt }
func (w *World) Iteration() uint64  { return w.currentIteration }
func (w *World) TotalTime() float64 { return w.totalTime }
func (w *World) ObjectCount() int   { return len(w.objects) }
func (w *World) IsRunning() bool    { return w.running }

// AddObject registers a body, assigning the next id if it has none.
// Re-adding an object whose id is already registered fails; ids are never
// reused.
func (w *World) AddObject(obj Object) (int, error) {
	id := obj.ID()
	if id == 0 {
		w.lastObjectID++
		id = w.lastObjectID
		obj.assignID(id)
	} else if id > w.lastObjectID {
		w.lastObjectID = id
	}
	if _, exists := w.objects[id]; exists {
		return 0, fmt.Errorf("%w: %d", ErrDuplicateObjectID, id)
	}
	w.objects[id] = obj
	if m, ok := obj.(*Movable); ok {
		w.movables[id] = m
	}
	return id, nil
}

// RemoveObject drops a body from the object table, the movable subset and
// the collision registry. Removing an unknown object is a no-op.
func (w *World) RemoveObject(obj Object) {
	delete(w.objects, obj.ID())
	delete(w.movables, obj.ID())
	w.Collisions.RemoveObject(obj.ID())
}

// Object resolves an id to a live object.
func (w *World) Object(id int) (Object, error) {
	obj, ok := w.objects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownObject, id)
	}
	return obj, nil
}

// ForEachObject visits every registered object in map order.
func (w *World) ForEachObject(fn func(obj Object)) {
	for _, obj := range w.objects {
		fn(obj)
	}
}

// ForEachMovable visits the movable subset.
func (w *World) ForEachMovable(fn func(m *Movable)) {
	for _, m := range w.movables {
		fn(m)
	}
}

// ForEachObjectAtPoint reports every object containing the world-frame
// point p. Each object sees its own copy of the point, so local-frame
// translation cannot corrupt the query. All matches are visited; there is
// no early exit.
func (w *World) ForEachObjectAtPoint(p vec.Vec2, fn func(obj Object)) {
	for _, obj := range w.objects {
		q := p
		if obj.ContainsPoint(q) {
			fn(obj)
		}
	}
}

// Start anchors the wall clock and begins consuming real time. Calling
// Start on a running world is a no-op.
func (w *World) Start() {
	if w.running {
		return
	}
	w.running = true
	w.lastStepTime = w.now()
}

// Stop halts the accumulator. Any in-flight step has already completed.
func (w *World) Stop() {
	w.running = false
}

// AdvanceTime consumes the wall-clock time elapsed since the last step,
// runs one discrete step per whole tick, and returns the fractional
// remainder as an interpolation ratio in [0,1). While stopped the elapsed
// time is defined as zero.
func (w *World) AdvanceTime() float64 {
	if !w.running {
		return 0
	}
	dt := time.Duration(w.cfg.Dt * float64(time.Second))
	now := w.now()
	for now.Sub(w.lastStepTime) >= dt {
		w.step(w.cfg.Dt)
	}
	return float64(now.Sub(w.lastStepTime)) / float64(dt)
}

// StepOnce forces exactly one discrete step regardless of run state or
// elapsed wall time.
func (w *World) StepOnce() {
	w.step(w.cfg.Dt)
}

// step advances the iteration counter, the simulated clock and the
// wall-clock anchor, then hands the tick to the physics callback. The
// anchor moves by exactly dt, not by measured elapsed time, so ticks stay
// uniform under frame jitter.
func (w *World) step(dt float64) {
	w.currentIteration++
	w.totalTime += dt
	w.lastStepTime = w.lastStepTime.Add(time.Duration(dt * float64(time.Second)))
	w.Collisions.BeginIteration(w.currentIteration)
	w.cfg.StepIntegrate(dt)
}
