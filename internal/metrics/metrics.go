// Package metrics provides trajectory quality measures for headless runs.
//
// Each metric observes the scalar plant trajectory (position, velocity,
// control) once per tick and reduces it to a single value at the end of a
// run.
package metrics

// Metric observes one sample per tick and reduces to a scalar.
type Metric interface {
	Name() string
	Observe(pos, vel, u, t float64)
	Value() float64
	Reset()
}

// ControlEffort is the mean absolute control signal.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort { return &ControlEffort{} }

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(pos, vel, u, t float64) {
	if u < 0 {
		u = -u
	}
	c.sum += u
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// Overshoot is the largest excursion past the target, measured in the
// direction the trajectory initially approaches from.
type Overshoot struct {
	target  float64
	first   bool
	fromLow bool
	worst   float64
}

func NewOvershoot(target float64) *Overshoot {
	return &Overshoot{target: target, first: true}
}

func (o *Overshoot) Name() string { return "overshoot" }

func (o *Overshoot) Observe(pos, vel, u, t float64) {
	if o.first {
		o.fromLow = pos <= o.target
		o.first = false
	}
	var excess float64
	if o.fromLow {
		excess = pos - o.target
	} else {
		excess = o.target - pos
	}
	if excess > o.worst {
		o.worst = excess
	}
}

func (o *Overshoot) Value() float64 { return o.worst }

func (o *Overshoot) Reset() {
	o.first = true
	o.worst = 0
}

// SettlingTime is the last time the position was seen outside a band
// around the target; after that instant the trajectory stayed settled.
type SettlingTime struct {
	target      float64
	band        float64
	lastOutside float64
}

func NewSettlingTime(target, band float64) *SettlingTime {
	return &SettlingTime{target: target, band: band}
}

func (s *SettlingTime) Name() string { return "settling_time" }

func (s *SettlingTime) Observe(pos, vel, u, t float64) {
	d := pos - s.target
	if d < 0 {
		d = -d
	}
	if d > s.band {
		s.lastOutside = t
	}
}

func (s *SettlingTime) Value() float64 { return s.lastOutside }

func (s *SettlingTime) Reset() { s.lastOutside = 0 }
