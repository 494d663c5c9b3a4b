package control

// Plant is the scalar measurement/actuation interface a controller closes
// over.
type Plant interface {
	GetControllerValue() float64
	SetControllerValue(u float64)
}

// PID is a discrete proportional-integral-derivative controller. Update is
// expected to run exactly once per fixed tick; the integral and derivative
// terms accumulate per tick, not per second.
type PID struct {
	SetPoint float64
	Kp       float64
	Ki       float64
	Kd       float64
	On       bool

	plant Plant

	errValue float64
	pOut     float64
	iOut     float64
	dOut     float64
	u        float64
}

func NewPID(plant Plant, kp, ki, kd, setPoint float64) *PID {
	return &PID{
		SetPoint: setPoint,
		Kp:       kp,
		Ki:       ki,
		Kd:       kd,
		plant:    plant,
	}
}

// Update runs one control step: computes the error against the plant
// measurement, updates the three terms and actuates the plant. While the
// controller is off it does nothing and returns 0.
//
// The integral accumulator is never reset, not even when the controller is
// toggled off and back on.
func (c *PID) Update() float64 {
	if !c.On {
		return 0
	}

	err := c.SetPoint - c.plant.GetControllerValue()
	c.pOut = c.Kp * err
	c.iOut += c.Ki * err
	c.dOut = c.Kd * (err - c.errValue)
	c.errValue = err

	c.u = c.pOut + c.iOut + c.dOut
	c.plant.SetControllerValue(c.u)
	return c.u
}

// Terms returns the last computed P, I, D contributions and output, for
// display.
func (c *PID) Terms() (p, i, d, u float64) {
	return c.pOut, c.iOut, c.dOut, c.u
}

// Error returns the last computed error value.
func (c *PID) Error() float64 { return c.errValue }

// GetParams returns tunable parameters for live adjustment.
func (c *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":       c.Kp,
		"Ki":       c.Ki,
		"Kd":       c.Kd,
		"SetPoint": c.SetPoint,
	}
}

// SetParam adjusts a controller parameter by name.
func (c *PID) SetParam(name string, value float64) {
	switch name {
	case "Kp":
		c.Kp = value
	case "Ki":
		c.Ki = value
	case "Kd":
		c.Kd = value
	case "SetPoint":
		c.SetPoint = value
	}
}
