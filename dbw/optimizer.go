package dbw

// Actuation is a raw control action: a steering angle and a signed net
// acceleration request. Positive acceleration means throttle, non-positive
// means brake.
type Actuation struct {
	Steering     float64 // rad
	Acceleration float64 // m/s^2, signed
}

// Optimizer is the external trajectory optimizer. Given the (latency
// compensated) kinematic state and the local-frame path polynomial, it
// returns a single-step control action. A non-nil error means it failed to
// converge this tick; the caller applies the fallback policy.
type Optimizer interface {
	Solve(state [6]float64, coeffs []float64) (Actuation, error)
}

// SpeedReferenced is implemented by optimizers that track an externally
// supplied speed setpoint; the controller feeds it the closest waypoint's
// target speed each tick.
type SpeedReferenced interface {
	SetTargetSpeed(v float64)
}
