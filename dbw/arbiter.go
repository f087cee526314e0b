package dbw

// SteeringCommand orders a steering wheel angle. Dispatched every tick the
// controller is enabled and ready.
type SteeringCommand struct {
	Enable        bool
	Angle         float64 // rad
	VelocityLimit float64 // rad/s, 0 means platform default
}

// ThrottleCommand orders accelerator pedal position in percent mode.
type ThrottleCommand struct {
	Enable bool
	Pedal  float64 // [0,1]
}

// BrakeCommand orders brake effort in torque mode.
type BrakeCommand struct {
	Enable bool
	Torque float64 // Nm, >= 0
}

// CommandSet is the outcome of one tick's arbitration. A nil field means
// that actuator receives nothing this tick. Throttle and Brake are mutually
// exclusive by construction.
type CommandSet struct {
	Steering *SteeringCommand
	Throttle *ThrottleCommand
	Brake    *BrakeCommand
}

// Empty reports whether nothing is dispatched this tick.
func (c CommandSet) Empty() bool {
	return c.Steering == nil && c.Throttle == nil && c.Brake == nil
}

// ActuationArbiter turns a raw control action into safety-gated actuator
// commands. Braking converts the deceleration request into wheel torque
// from the vehicle mass and wheel radius.
type ActuationArbiter struct {
	VehicleMass    float64
	WheelRadius    float64
	MaxSteer       float64
	SteerRateLimit float64
	MaxBrakeTorque float64
}

func NewActuationArbiter(cfg Config) ActuationArbiter {
	return ActuationArbiter{
		VehicleMass:    cfg.VehicleMassKg,
		WheelRadius:    cfg.WheelRadiusM,
		MaxSteer:       cfg.MaxSteerRad,
		SteerRateLimit: cfg.SteerRateLimit,
		MaxBrakeTorque: cfg.MaxBrakeTorqueNm,
	}
}

// Arbitrate gates on the enable flag and telemetry readiness. When either
// fails, nothing is dispatched. Otherwise steering is always commanded,
// plus exactly one of throttle (positive acceleration) or brake.
func (a ActuationArbiter) Arbitrate(act Actuation, enabled, ready bool) CommandSet {
	if !enabled || !ready {
		return CommandSet{}
	}

	out := CommandSet{
		Steering: &SteeringCommand{
			Enable:        true,
			Angle:         clampFloat(act.Steering, -a.MaxSteer, a.MaxSteer),
			VelocityLimit: a.SteerRateLimit,
		},
	}

	if act.Acceleration > 0 {
		out.Throttle = &ThrottleCommand{
			Enable: true,
			Pedal:  clampFloat(act.Acceleration, 0, 1),
		}
	} else {
		torque := a.VehicleMass * -act.Acceleration * a.WheelRadius
		out.Brake = &BrakeCommand{
			Enable: true,
			Torque: clampFloat(torque, 0, a.MaxBrakeTorque),
		}
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
