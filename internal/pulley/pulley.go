// Package pulley implements the buoyancy-driven pulley plant: a payload on
// one side of a disk, a counterweight on the other, and a ballonet whose
// volume (pumped in, vented out) shifts the mass balance. The single degree
// of freedom is the payload position along its string.
package pulley

import (
	"fmt"
	"math"

	"github.com/setanarut/vec"

	"github.com/san-kum/pulleylab/internal/geom"
	"github.com/san-kum/pulleylab/internal/world"
)

const (
	// deadZone is the control-signal magnitude below which both actuators
	// stay off, to avoid pump/valve chatter near zero error.
	deadZone = 1e-7

	// minMassDelta floors the acceleration denominator; an exactly balanced
	// payload and counterweight is otherwise a singularity.
	minMassDelta = 1e-9

	// epsilonForce is a placeholder disturbance term, fixed at zero.
	epsilonForce = 0.0

	// minBallonetRadius keeps the ballonet disk drawable at zero volume.
	minBallonetRadius = 0.01
)

// Params are the static plant constants.
type Params struct {
	DiskRadius   float64  `yaml:"disk_radius"`
	DiskPosition vec.Vec2 `yaml:"-"`
	DiskX        float64  `yaml:"disk_x"`
	DiskY        float64  `yaml:"disk_y"`

	FreeStringLength float64 `yaml:"free_string_length"`

	PayloadWidth  float64 `yaml:"payload_width"`
	PayloadHeight float64 `yaml:"payload_height"`
	PayloadMass   float64 `yaml:"payload_mass"`

	CounterweightWidth  float64 `yaml:"counterweight_width"`
	CounterweightHeight float64 `yaml:"counterweight_height"`
	CounterweightMass   float64 `yaml:"counterweight_mass"`

	PumpInFlow   float64 `yaml:"pump_in_flow"`
	ValveOutFlow float64 `yaml:"valve_out_flow"`
	AirDensity   float64 `yaml:"air_density"`

	Friction float64 `yaml:"friction"`
	Gravity  float64 `yaml:"gravity"`

	InitialBallonetVolume float64 `yaml:"initial_ballonet_volume"`
	InitialPosition       float64 `yaml:"initial_position"`
}

// DefaultParams returns a plant that fits the default 100x100 scene
// (y grows downward, disk near the ceiling).
func DefaultParams() Params {
	return Params{
		DiskRadius:            8,
		DiskX:                 50,
		DiskY:                 15,
		FreeStringLength:      60,
		PayloadWidth:          8,
		PayloadHeight:         6,
		PayloadMass:           10,
		CounterweightWidth:    6,
		CounterweightHeight:   8,
		CounterweightMass:     12,
		PumpInFlow:            1.5,
		ValveOutFlow:          2.0,
		AirDensity:            0.4,
		Friction:              0.8,
		Gravity:               9.81,
		InitialBallonetVolume: 5,
		InitialPosition:       30,
	}
}

// Physics is the mutable per-tick record: the degree of freedom, its
// derivatives and the force diagnostics recomputed every step.
type Physics struct {
	BallonetVolume  float64
	PayloadPosition float64
	PayloadVelocity float64

	TotalPayloadMass float64
	Buoyancy         float64
	Weight           float64
	Drag             float64
	Force            float64
	Accel            float64

	PumpOn    bool
	ValveOpen bool
}

// Plant couples the physics record to the world bodies that visualize it.
type Plant struct {
	Params Params
	Phys   Physics

	w      *world.World
	floorY float64

	disk          *world.RigidBody
	floor         *world.RigidBody
	leftString    *world.RigidBody
	rightString   *world.RigidBody
	counterweight *world.Movable
	payload       *world.Movable
	ballonet      *world.Movable

	leftLine  *geom.Line
	rightLine *geom.Line
	balloon   *geom.Disk

	onStep []func(p *Plant)
}

// New validates the params, builds the pulley's bodies and registers them
// with the world.
func New(params Params, w *world.World) (*Plant, error) {
	if params.DiskRadius <= 0 || params.FreeStringLength <= 0 {
		return nil, fmt.Errorf("%w: disk radius %v, string length %v",
			geom.ErrInvalidGeometry, params.DiskRadius, params.FreeStringLength)
	}
	if params.DiskPosition == (vec.Vec2{}) {
		params.DiskPosition = vec.Vec2{X: params.DiskX, Y: params.DiskY}
	}

	p := &Plant{
		Params: params,
		w:      w,
		floorY: w.Config().Floor,
		Phys: Physics{
			BallonetVolume:  params.InitialBallonetVolume,
			PayloadPosition: params.InitialPosition,
		},
	}
	if err := p.buildBodies(); err != nil {
		return nil, err
	}
	p.updateGeometry()
	return p, nil
}

func (p *Plant) buildBodies() error {
	pr := p.Params
	center := pr.DiskPosition

	diskShape, err := geom.NewDisk(vec.Vec2{}, pr.DiskRadius)
	if err != nil {
		return err
	}
	p.disk = world.NewBody("pulley-disk", diskShape, center)
	p.disk.Render = world.RenderConfig{Color: "245"}

	floorShape, err := geom.NewAABB(vec.Vec2{X: -1000, Y: 0}, vec.Vec2{X: 1000, Y: 2})
	if err != nil {
		return err
	}
	p.floor = world.NewBody("floor", floorShape, vec.Vec2{X: 0, Y: p.floorY})
	p.floor.Render = world.RenderConfig{Color: "240"}

	// Strings hang from the disk's left and right tangent points; their
	// local segment endpoints are rewritten every step.
	p.leftLine, err = geom.NewLine(vec.Vec2{}, vec.Vec2{Y: 1}, 0)
	if err != nil {
		return err
	}
	p.leftString = world.NewBody("left-string", p.leftLine,
		vec.Vec2{X: center.X - pr.DiskRadius, Y: center.Y})

	p.rightLine, err = geom.NewLine(vec.Vec2{}, vec.Vec2{Y: 1}, 0)
	if err != nil {
		return err
	}
	p.rightString = world.NewBody("right-string", p.rightLine,
		vec.Vec2{X: center.X + pr.DiskRadius, Y: center.Y})

	cwShape, err := geom.NewAABBForExtents(vec.Vec2{}, pr.CounterweightWidth/2, pr.CounterweightHeight/2)
	if err != nil {
		return err
	}
	p.counterweight = world.NewMovable("counterweight", cwShape, center)
	p.counterweight.Render = world.RenderConfig{Color: "208", Filled: true}

	boxShape, err := geom.NewAABBForExtents(vec.Vec2{}, pr.PayloadWidth/2, pr.PayloadHeight/2)
	if err != nil {
		return err
	}
	p.payload = world.NewMovable("payload", boxShape, center)
	p.payload.Render = world.RenderConfig{Color: "86", Filled: true}

	p.balloon, err = geom.NewDisk(vec.Vec2{}, minBallonetRadius)
	if err != nil {
		return err
	}
	p.ballonet = world.NewMovable("ballonet", p.balloon, center)
	p.ballonet.Render = world.RenderConfig{Color: "205"}

	for _, obj := range []world.Object{
		p.disk, p.floor, p.leftString, p.rightString,
		p.counterweight, p.payload, p.ballonet,
	} {
		if _, err := p.w.AddObject(obj); err != nil {
			return err
		}
	}
	return nil
}

// OnStep registers a hook fired synchronously after each completed tick,
// in registration order.
func (p *Plant) OnStep(fn func(p *Plant)) {
	p.onStep = append(p.onStep, fn)
}

// Step advances the plant by one tick: actuator flows, mass balance,
// semi-implicit Euler integration, boundary clamping, then dependent
// geometry.
func (p *Plant) Step(dt float64) {
	ph := &p.Phys
	pr := p.Params

	if ph.PumpOn {
		ph.BallonetVolume += pr.PumpInFlow * dt
	}
	if ph.ValveOpen {
		ph.BallonetVolume = math.Max(0, ph.BallonetVolume-pr.ValveOutFlow*dt)
	}

	ph.TotalPayloadMass = pr.PayloadMass + ph.BallonetVolume*pr.AirDensity
	ph.Buoyancy = ph.TotalPayloadMass * pr.Gravity
	ph.Weight = pr.CounterweightMass * pr.Gravity
	ph.Force = ph.Buoyancy - ph.Weight + epsilonForce

	massDelta := math.Abs(ph.TotalPayloadMass - pr.CounterweightMass)
	if massDelta < minMassDelta {
		massDelta = minMassDelta
	}
	ph.Accel = ph.Force / massDelta

	ph.Drag = -pr.Friction * ph.PayloadVelocity
	ph.PayloadVelocity += (ph.Accel + ph.Drag) * dt
	ph.PayloadPosition += ph.PayloadVelocity * dt

	p.clampToLimits()
	p.updateGeometry()

	for _, fn := range p.onStep {
		fn(p)
	}
}

// floorDistance is the vertical span between the disk center and the floor.
func (p *Plant) floorDistance() float64 {
	return p.floorY - p.Params.DiskPosition.Y
}

// clampToLimits stops the payload dead (velocity zeroed, fully inelastic)
// when either string would go slack against the disk or run long enough to
// ground its load.
func (p *Plant) clampToLimits() {
	ph := &p.Phys
	free := p.Params.FreeStringLength
	fd := p.floorDistance()

	hi := free
	if fd < hi {
		hi = fd // payload on the floor
	}
	lo := 0.0
	if free-fd > lo {
		lo = free - fd // counterweight on the floor
	}

	if ph.PayloadPosition > hi {
		ph.PayloadPosition = hi
		ph.PayloadVelocity = 0
	} else if ph.PayloadPosition < lo {
		ph.PayloadPosition = lo
		ph.PayloadVelocity = 0
	}
}

// BallonetRadius is the radius of a sphere holding the current volume.
func (p *Plant) BallonetRadius() float64 {
	r := math.Cbrt(3 * p.Phys.BallonetVolume / (4 * math.Pi))
	return math.Max(r, minBallonetRadius)
}

// LeftStringLength is the counterweight side's effective string length.
func (p *Plant) LeftStringLength() float64 {
	return p.Params.FreeStringLength - p.Phys.PayloadPosition
}

// RightStringLength is the payload side's effective string length.
func (p *Plant) RightStringLength() float64 {
	return p.Phys.PayloadPosition
}

// updateGeometry places every dependent body from the current degree of
// freedom: strings, counterweight, payload box and ballonet.
func (p *Plant) updateGeometry() {
	pr := p.Params
	center := pr.DiskPosition
	leftLen := p.LeftStringLength()
	rightLen := p.RightStringLength()

	p.leftLine.V2 = vec.Vec2{Y: leftLen}
	p.rightLine.V2 = vec.Vec2{Y: rightLen}

	p.counterweight.MoveTo(vec.Vec2{
		X: center.X - pr.DiskRadius,
		Y: center.Y + leftLen + pr.CounterweightHeight/2,
	})

	payloadPos := vec.Vec2{
		X: center.X + pr.DiskRadius,
		Y: center.Y + rightLen + pr.PayloadHeight/2,
	}
	p.payload.MoveTo(payloadPos)

	r := p.BallonetRadius()
	p.balloon.Radius = r
	p.ballonet.MoveTo(vec.Vec2{
		X: payloadPos.X,
		Y: payloadPos.Y - pr.PayloadHeight/2 - r,
	})

	p.payload.SetOnGround(p.Phys.PayloadPosition >= math.Min(pr.FreeStringLength, p.floorDistance()))
	p.counterweight.SetOnGround(leftLen >= p.floorDistance())
}

// PayloadBody returns the payload's world body.
func (p *Plant) PayloadBody() *world.Movable { return p.payload }

// CounterweightBody returns the counterweight's world body.
func (p *Plant) CounterweightBody() *world.Movable { return p.counterweight }

// BallonetBody returns the ballonet's world body.
func (p *Plant) BallonetBody() *world.Movable { return p.ballonet }

// DiskBody returns the static pulley disk.
func (p *Plant) DiskBody() *world.RigidBody { return p.disk }

// GetControllerValue exposes the payload position as the plant measurement.
func (p *Plant) GetControllerValue() float64 {
	return p.Phys.PayloadPosition
}

// SetControllerValue maps a continuous control signal onto the two boolean
// actuators by sign. Signals inside the dead zone switch both off.
func (p *Plant) SetControllerValue(u float64) {
	switch {
	case u > deadZone:
		p.Phys.PumpOn = true
		p.Phys.ValveOpen = false
	case u < -deadZone:
		p.Phys.PumpOn = false
		p.Phys.ValveOpen = true
	default:
		p.Phys.PumpOn = false
		p.Phys.ValveOpen = false
	}
}

// SetPump toggles the pump directly (UI control path).
func (p *Plant) SetPump(on bool) { p.Phys.PumpOn = on }

// SetValve toggles the valve directly (UI control path).
func (p *Plant) SetValve(open bool) { p.Phys.ValveOpen = open }

// ResetBallonet restores the ballonet to its initial volume.
func (p *Plant) ResetBallonet() {
	p.Phys.BallonetVolume = p.Params.InitialBallonetVolume
}
