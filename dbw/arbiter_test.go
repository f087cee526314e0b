package dbw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArbiter() ActuationArbiter {
	return NewActuationArbiter(DefaultConfig())
}

func TestArbitrateDisabledDispatchesNothing(t *testing.T) {
	a := testArbiter()
	cmds := a.Arbitrate(Actuation{Steering: 0.1, Acceleration: 0.5}, false, true)
	assert.True(t, cmds.Empty())
}

func TestArbitrateNotReadyDispatchesNothing(t *testing.T) {
	a := testArbiter()
	cmds := a.Arbitrate(Actuation{Steering: 0.1, Acceleration: 0.5}, true, false)
	assert.True(t, cmds.Empty())
}

func TestArbitrateNeverBothThrottleAndBrake(t *testing.T) {
	a := testArbiter()
	for _, accel := range []float64{-5, -1, -0.001, 0, 0.001, 0.4, 1, 10} {
		cmds := a.Arbitrate(Actuation{Acceleration: accel}, true, true)
		both := cmds.Throttle != nil && cmds.Brake != nil
		neither := cmds.Throttle == nil && cmds.Brake == nil
		assert.False(t, both, "accel=%f dispatched both", accel)
		assert.False(t, neither, "accel=%f dispatched neither", accel)
	}
}

func TestArbitrateSteeringAlwaysPresentWhenEnabled(t *testing.T) {
	a := testArbiter()
	cmds := a.Arbitrate(Actuation{Steering: 0.2, Acceleration: -1}, true, true)
	require.NotNil(t, cmds.Steering)
	assert.True(t, cmds.Steering.Enable)
	assert.InDelta(t, 0.2, cmds.Steering.Angle, 1e-12)
	assert.Equal(t, a.SteerRateLimit, cmds.Steering.VelocityLimit)
}

func TestArbitratePositiveAccelIsThrottle(t *testing.T) {
	a := testArbiter()
	cmds := a.Arbitrate(Actuation{Acceleration: 0.6}, true, true)
	require.NotNil(t, cmds.Throttle)
	assert.Nil(t, cmds.Brake)
	assert.True(t, cmds.Throttle.Enable)
	assert.InDelta(t, 0.6, cmds.Throttle.Pedal, 1e-12)
}

func TestArbitrateThrottleClampedToPercentRange(t *testing.T) {
	a := testArbiter()
	cmds := a.Arbitrate(Actuation{Acceleration: 4.2}, true, true)
	require.NotNil(t, cmds.Throttle)
	assert.Equal(t, 1.0, cmds.Throttle.Pedal)
}

func TestArbitrateBrakeTorqueFromMass(t *testing.T) {
	a := testArbiter()
	decel := -1.5
	cmds := a.Arbitrate(Actuation{Acceleration: decel}, true, true)
	require.NotNil(t, cmds.Brake)
	assert.Nil(t, cmds.Throttle)
	want := a.VehicleMass * 1.5 * a.WheelRadius
	assert.InDelta(t, want, cmds.Brake.Torque, 1e-9)
}

func TestArbitrateBrakeTorqueClamped(t *testing.T) {
	a := testArbiter()
	cmds := a.Arbitrate(Actuation{Acceleration: -100}, true, true)
	require.NotNil(t, cmds.Brake)
	assert.Equal(t, a.MaxBrakeTorque, cmds.Brake.Torque)
}

func TestArbitrateZeroAccelIsBrake(t *testing.T) {
	a := testArbiter()
	cmds := a.Arbitrate(Actuation{Acceleration: 0}, true, true)
	require.NotNil(t, cmds.Brake)
	assert.Equal(t, 0.0, cmds.Brake.Torque)
}

func TestArbitrateSteeringClamped(t *testing.T) {
	a := testArbiter()
	cmds := a.Arbitrate(Actuation{Steering: 99, Acceleration: 0.1}, true, true)
	require.NotNil(t, cmds.Steering)
	assert.Equal(t, a.MaxSteer, cmds.Steering.Angle)
}
