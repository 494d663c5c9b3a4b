// Package world owns the object table and the fixed-timestep loop.
//
// A [World] holds static and movable bodies, a [CollisionList] for pair
// bookkeeping, and a wall-clock accumulator that turns elapsed real time
// into discrete steps of length Dt. Physics is plugged in through the
// Config.StepIntegrate callback; the world itself knows nothing about the
// system being simulated.
//
// Everything here is single-threaded: the world is driven from one
// cooperative loop (a render tick or a CLI runner) and is not safe for
// concurrent use.
package world
