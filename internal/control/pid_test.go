package control

import (
	"math"
	"testing"
)

// stubPlant records actuation and serves a scripted measurement.
type stubPlant struct {
	value float64
	us    []float64
}

func (s *stubPlant) GetControllerValue() float64  { return s.value }
func (s *stubPlant) SetControllerValue(u float64) { s.us = append(s.us, u) }

func TestPIDOffIsNoop(t *testing.T) {
	plant := &stubPlant{value: 5}
	pid := NewPID(plant, 1, 1, 1, 10)

	if u := pid.Update(); u != 0 {
		t.Errorf("expected 0 output while off, got %f", u)
	}
	if len(plant.us) != 0 {
		t.Error("plant should not be actuated while controller is off")
	}
}

func TestPIDZeroGains(t *testing.T) {
	plant := &stubPlant{value: 3}
	pid := NewPID(plant, 0, 0, 0, 10)
	pid.On = true

	for i := 0; i < 5; i++ {
		if u := pid.Update(); u != 0 {
			t.Fatalf("zero gains must yield u=0, got %f", u)
		}
	}
	for _, u := range plant.us {
		if u != 0 {
			t.Errorf("actuation should stay at 0, got %f", u)
		}
	}
}

func TestPIDTerms(t *testing.T) {
	plant := &stubPlant{value: 8}
	pid := NewPID(plant, 2, 0.5, 1, 10) // error = 2
	pid.On = true

	u := pid.Update()
	// P = 4, I = 1, D = 1*(2-0) = 2.
	if math.Abs(u-7) > 1e-12 {
		t.Errorf("expected u=7, got %f", u)
	}

	p, i, d, last := pid.Terms()
	if p != 4 || i != 1 || d != 2 || last != u {
		t.Errorf("unexpected terms p=%f i=%f d=%f u=%f", p, i, d, last)
	}

	// Same error again: integral accumulates, derivative goes to zero.
	u = pid.Update()
	if math.Abs(u-6) > 1e-12 {
		t.Errorf("expected u=6, got %f", u)
	}
}

func TestPIDIntegralPersistsAcrossToggle(t *testing.T) {
	plant := &stubPlant{value: 8}
	pid := NewPID(plant, 0, 1, 0, 10) // pure integral, error = 2
	pid.On = true

	pid.Update()
	pid.Update()
	_, i1, _, _ := pid.Terms()
	if i1 != 4 {
		t.Fatalf("expected integral 4, got %f", i1)
	}

	pid.On = false
	pid.Update()
	pid.On = true
	pid.Update()

	_, i2, _, _ := pid.Terms()
	if i2 != 6 {
		t.Errorf("integral should persist across toggling, got %f", i2)
	}
}

func TestPIDParams(t *testing.T) {
	pid := NewPID(&stubPlant{}, 1, 2, 3, 4)

	params := pid.GetParams()
	if params["Kp"] != 1 || params["Ki"] != 2 || params["Kd"] != 3 || params["SetPoint"] != 4 {
		t.Errorf("unexpected params: %v", params)
	}

	pid.SetParam("SetPoint", 9)
	pid.SetParam("Kp", 5)
	pid.SetParam("bogus", 1) // ignored
	if pid.SetPoint != 9 || pid.Kp != 5 {
		t.Error("SetParam did not apply")
	}
}
