package pulley

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/pulleylab/internal/world"
)

func testPlant(t *testing.T, params Params) (*Plant, *world.World) {
	t.Helper()
	w, err := world.New(world.Config{
		Dt:            0.01,
		Floor:         100,
		StepIntegrate: func(dt float64) {},
	})
	require.NoError(t, err)
	p, err := New(params, w)
	require.NoError(t, err)
	return p, w
}

func TestNewRegistersBodies(t *testing.T) {
	p, w := testPlant(t, DefaultParams())

	// Disk, floor, two strings, counterweight, payload, ballonet.
	assert.Equal(t, 7, w.ObjectCount())

	var movables int
	w.ForEachMovable(func(*world.Movable) { movables++ })
	assert.Equal(t, 3, movables)

	assert.Equal(t, p.Params.InitialPosition, p.Phys.PayloadPosition)
	assert.Equal(t, p.Params.InitialBallonetVolume, p.Phys.BallonetVolume)
}

func TestNewRejectsBadGeometry(t *testing.T) {
	w, err := world.New(world.Config{Dt: 0.01, Floor: 100, StepIntegrate: func(float64) {}})
	require.NoError(t, err)

	bad := DefaultParams()
	bad.DiskRadius = 0
	_, err = New(bad, w)
	assert.Error(t, err)
}

func TestActuatorIntegration(t *testing.T) {
	params := DefaultParams()
	params.PumpInFlow = 2.0
	params.ValveOutFlow = 3.0
	params.InitialBallonetVolume = 1.0
	p, _ := testPlant(t, params)

	p.SetPump(true)
	p.Step(0.5)
	assert.InDelta(t, 2.0, p.Phys.BallonetVolume, 1e-12)

	p.SetPump(false)
	p.SetValve(true)
	p.Step(0.5)
	assert.InDelta(t, 0.5, p.Phys.BallonetVolume, 1e-12)

	// Venting never drives the volume negative.
	p.Step(0.5)
	assert.Equal(t, 0.0, p.Phys.BallonetVolume)
}

func TestForceBalance(t *testing.T) {
	params := DefaultParams()
	params.PayloadMass = 10
	params.CounterweightMass = 12
	params.AirDensity = 0.5
	params.InitialBallonetVolume = 8 // total payload mass 14
	p, _ := testPlant(t, params)

	p.Step(0.01)

	assert.InDelta(t, 14.0, p.Phys.TotalPayloadMass, 1e-12)
	assert.InDelta(t, 14.0*params.Gravity, p.Phys.Buoyancy, 1e-9)
	assert.InDelta(t, 12.0*params.Gravity, p.Phys.Weight, 1e-9)
	assert.InDelta(t, 2.0*params.Gravity, p.Phys.Force, 1e-9)
	// Denominator is |14 - 12| = 2.
	assert.InDelta(t, params.Gravity, p.Phys.Accel, 1e-9)
	assert.Greater(t, p.Phys.PayloadVelocity, 0.0)
}

func TestEqualMassSingularityGuard(t *testing.T) {
	params := DefaultParams()
	params.PayloadMass = 12
	params.CounterweightMass = 12
	params.InitialBallonetVolume = 0
	params.Friction = 0
	p, _ := testPlant(t, params)

	p.Step(0.01)

	// Equal masses: zero net force over the floored denominator stays zero.
	assert.Equal(t, 0.0, p.Phys.Force)
	assert.Equal(t, 0.0, p.Phys.Accel)
	assert.False(t, math.IsNaN(p.Phys.Accel))
	assert.False(t, math.IsInf(p.Phys.Accel, 0))
}

func TestClampAtStringEnd(t *testing.T) {
	params := DefaultParams()
	params.FreeStringLength = 40
	// Floor far below: the string end is the binding limit.
	params.DiskY = 10
	params.PayloadMass = 30 // heavy payload, constant downward drive
	params.CounterweightMass = 10
	params.InitialBallonetVolume = 0
	params.InitialPosition = 35
	p, _ := testPlant(t, params)

	for i := 0; i < 2000; i++ {
		p.Step(0.01)
		assert.LessOrEqual(t, p.Phys.PayloadPosition, params.FreeStringLength)
	}

	assert.Equal(t, params.FreeStringLength, p.Phys.PayloadPosition)
	assert.Equal(t, 0.0, p.Phys.PayloadVelocity)
	assert.True(t, p.PayloadBody().OnGround())
}

func TestClampAtDisk(t *testing.T) {
	params := DefaultParams()
	params.FreeStringLength = 40
	params.DiskY = 10
	params.PayloadMass = 5 // light payload, counterweight wins
	params.CounterweightMass = 30
	params.InitialBallonetVolume = 0
	params.InitialPosition = 5
	p, _ := testPlant(t, params)

	for i := 0; i < 2000; i++ {
		p.Step(0.01)
		assert.GreaterOrEqual(t, p.Phys.PayloadPosition, 0.0)
	}

	assert.Equal(t, 0.0, p.Phys.PayloadPosition)
	assert.Equal(t, 0.0, p.Phys.PayloadVelocity)
}

func TestClampAgainstFloor(t *testing.T) {
	params := DefaultParams()
	params.FreeStringLength = 120 // longer than the floor span
	params.DiskY = 10             // floor at 100 -> floor distance 90
	params.PayloadMass = 30
	params.CounterweightMass = 10
	params.InitialBallonetVolume = 0
	params.InitialPosition = 80
	p, _ := testPlant(t, params)

	for i := 0; i < 3000; i++ {
		p.Step(0.01)
	}

	assert.Equal(t, 90.0, p.Phys.PayloadPosition)
	assert.Equal(t, 0.0, p.Phys.PayloadVelocity)
}

func TestDependentGeometry(t *testing.T) {
	params := DefaultParams()
	params.InitialPosition = 20
	p, _ := testPlant(t, params)

	center := p.Params.DiskPosition

	cw := p.CounterweightBody().Position()
	assert.InDelta(t, center.X-params.DiskRadius, cw.X, 1e-9)
	assert.InDelta(t, center.Y+p.LeftStringLength()+params.CounterweightHeight/2, cw.Y, 1e-9)

	pay := p.PayloadBody().Position()
	assert.InDelta(t, center.X+params.DiskRadius, pay.X, 1e-9)
	assert.InDelta(t, center.Y+20+params.PayloadHeight/2, pay.Y, 1e-9)

	// Ballonet radius is the sphere-equivalent of its volume.
	wantR := math.Cbrt(3 * params.InitialBallonetVolume / (4 * math.Pi))
	assert.InDelta(t, wantR, p.BallonetRadius(), 1e-12)

	bal := p.BallonetBody().Position()
	assert.InDelta(t, pay.Y-params.PayloadHeight/2-wantR, bal.Y, 1e-9)
}

func TestControllerValueMapping(t *testing.T) {
	p, _ := testPlant(t, DefaultParams())

	assert.Equal(t, p.Phys.PayloadPosition, p.GetControllerValue())

	p.SetControllerValue(1.0)
	assert.True(t, p.Phys.PumpOn)
	assert.False(t, p.Phys.ValveOpen)

	p.SetControllerValue(-1.0)
	assert.False(t, p.Phys.PumpOn)
	assert.True(t, p.Phys.ValveOpen)

	// Dead zone: both off.
	for _, u := range []float64{0, 1e-8, -1e-8, deadZone, -deadZone} {
		p.SetControllerValue(u)
		assert.False(t, p.Phys.PumpOn, "u=%v", u)
		assert.False(t, p.Phys.ValveOpen, "u=%v", u)
	}
}

func TestResetBallonet(t *testing.T) {
	p, _ := testPlant(t, DefaultParams())

	p.SetPump(true)
	for i := 0; i < 100; i++ {
		p.Step(0.01)
	}
	assert.Greater(t, p.Phys.BallonetVolume, p.Params.InitialBallonetVolume)

	p.ResetBallonet()
	assert.Equal(t, p.Params.InitialBallonetVolume, p.Phys.BallonetVolume)
}

func TestOnStepHooks(t *testing.T) {
	p, _ := testPlant(t, DefaultParams())

	var order []int
	p.OnStep(func(*Plant) { order = append(order, 1) })
	p.OnStep(func(*Plant) { order = append(order, 2) })

	p.Step(0.01)
	assert.Equal(t, []int{1, 2}, order)
}
