package dbw

import "math"

// PredictedState is the 6-element kinematic state handed to the optimizer:
// local x, local y, heading, speed, cross-track error, heading error.
type PredictedState struct {
	X          float64
	Y          float64
	Heading    float64
	Speed      float64
	CTE        float64
	HeadingErr float64
}

// Vector returns the state in the optimizer's expected ordering.
func (s PredictedState) Vector() [6]float64 {
	return [6]float64{s.X, s.Y, s.Heading, s.Speed, s.CTE, s.HeadingErr}
}

// KinematicPredictor forward-simulates a bicycle model over the actuation
// latency window, so the optimizer solves for the state at the moment the
// new command actually takes effect. The previous tick's command is assumed
// to persist for the whole window; on the first tick the zero-valued
// previous Actuation gives the required neutral defaults.
type KinematicPredictor struct {
	Latency float64 // s
	Lf      float64 // m, center of mass to front axle
}

// Predict steps the local-frame state forward by the latency under the
// previously commanded steering and acceleration. The heading contribution
// of the steering input and the accumulated yaw over the window are kept as
// separate quantities.
func (p KinematicPredictor) Predict(prev Actuation, speed, cte, headingErr float64) PredictedState {
	headingFromSteer := prev.Steering
	yaw := speed * prev.Steering * p.Latency / p.Lf

	return PredictedState{
		X:          speed * math.Cos(headingFromSteer) * p.Latency,
		Y:          speed * math.Sin(headingFromSteer) * p.Latency,
		Heading:    headingFromSteer + yaw,
		Speed:      speed + prev.Acceleration*p.Latency,
		CTE:        cte + speed*math.Sin(headingErr)*p.Latency,
		HeadingErr: headingErr + yaw,
	}
}
