// Package sim wires the world, the pulley plant and the PID controller
// into one session object. The session owns all mutable simulation state;
// UI layers and the CLI hold a reference to it instead of globals.
package sim

import (
	"context"

	"github.com/san-kum/pulleylab/internal/config"
	"github.com/san-kum/pulleylab/internal/control"
	"github.com/san-kum/pulleylab/internal/metrics"
	"github.com/san-kum/pulleylab/internal/pulley"
	"github.com/san-kum/pulleylab/internal/world"
)

// Session is the simulation context: one world, one plant, one controller.
type Session struct {
	World *world.World
	Plant *pulley.Plant
	PID   *control.PID

	metrics []metrics.Metric
}

// New builds a session from a validated config. The world's step callback
// runs the controller before the plant, so actuator changes take effect on
// the tick they are decided.
func New(cfg *config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{}

	w, err := world.New(world.Config{
		Dt:            cfg.Dt,
		Floor:         cfg.Floor,
		Ceiling:       cfg.Ceiling,
		StepIntegrate: s.stepIntegrate,
	})
	if err != nil {
		return nil, err
	}
	s.World = w

	plant, err := pulley.New(cfg.Pulley, w)
	if err != nil {
		return nil, err
	}
	s.Plant = plant

	s.PID = control.NewPID(plant,
		cfg.Controller.Kp, cfg.Controller.Ki, cfg.Controller.Kd,
		cfg.Controller.SetPoint)
	s.PID.On = cfg.Controller.Enabled

	return s, nil
}

// stepIntegrate is the world's per-tick seam: controller, then plant.
func (s *Session) stepIntegrate(dt float64) {
	s.PID.Update()
	s.Plant.Step(dt)
}

// AddMetric registers a metric observed on every headless run tick.
func (s *Session) AddMetric(m metrics.Metric) {
	s.metrics = append(s.metrics, m)
}

// Result is the recorded trajectory of a headless run.
type Result struct {
	Times      []float64
	Positions  []float64
	Velocities []float64
	Volumes    []float64
	Controls   []float64

	Metrics    map[string]float64
	StepsTaken int
}

// Run advances the session by duration seconds of simulated time using
// StepOnce, recording the trajectory after every tick. Wall-clock pacing
// is bypassed entirely; the run is deterministic.
func (s *Session) Run(ctx context.Context, duration float64) (*Result, error) {
	steps := int(duration / s.World.Dt())
	result := &Result{
		Times:      make([]float64, 0, steps),
		Positions:  make([]float64, 0, steps),
		Velocities: make([]float64, 0, steps),
		Volumes:    make([]float64, 0, steps),
		Controls:   make([]float64, 0, steps),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.World.StepOnce()

		ph := s.Plant.Phys
		t := s.World.TotalTime()
		_, _, _, u := s.PID.Terms()

		result.Times = append(result.Times, t)
		result.Positions = append(result.Positions, ph.PayloadPosition)
		result.Velocities = append(result.Velocities, ph.PayloadVelocity)
		result.Volumes = append(result.Volumes, ph.BallonetVolume)
		result.Controls = append(result.Controls, u)
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(ph.PayloadPosition, ph.PayloadVelocity, u, t)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
