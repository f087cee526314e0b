package dbw

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredictNeutralCommandGoesStraight(t *testing.T) {
	p := KinematicPredictor{Latency: 0.1, Lf: 2.67}

	// First tick: zero-valued previous Actuation is the neutral default.
	st := p.Predict(Actuation{}, 10, 0, 0)
	assert.InDelta(t, 1.0, st.X, 1e-9) // 10 m/s over 100 ms
	assert.InDelta(t, 0.0, st.Y, 1e-9)
	assert.InDelta(t, 0.0, st.Heading, 1e-9)
	assert.InDelta(t, 10.0, st.Speed, 1e-9)
	assert.InDelta(t, 0.0, st.CTE, 1e-9)
	assert.InDelta(t, 0.0, st.HeadingErr, 1e-9)
}

func TestPredictBicycleModelStep(t *testing.T) {
	p := KinematicPredictor{Latency: 0.1, Lf: 2.67}
	prev := Actuation{Steering: 0.05, Acceleration: 0.8}
	v, cte, epsi := 12.0, 0.3, -0.02

	st := p.Predict(prev, v, cte, epsi)

	yaw := v * prev.Steering * p.Latency / p.Lf
	assert.InDelta(t, v*math.Cos(prev.Steering)*p.Latency, st.X, 1e-12)
	assert.InDelta(t, v*math.Sin(prev.Steering)*p.Latency, st.Y, 1e-12)
	assert.InDelta(t, prev.Steering+yaw, st.Heading, 1e-12)
	assert.InDelta(t, v+prev.Acceleration*p.Latency, st.Speed, 1e-12)
	assert.InDelta(t, cte+v*math.Sin(epsi)*p.Latency, st.CTE, 1e-12)
	assert.InDelta(t, epsi+yaw, st.HeadingErr, 1e-12)
}

func TestPredictSpeedDropsUnderBraking(t *testing.T) {
	p := KinematicPredictor{Latency: 0.1, Lf: 2.67}
	st := p.Predict(Actuation{Acceleration: -3}, 20, 0, 0)
	assert.InDelta(t, 19.7, st.Speed, 1e-9)
}

func TestVectorOrdering(t *testing.T) {
	st := PredictedState{X: 1, Y: 2, Heading: 3, Speed: 4, CTE: 5, HeadingErr: 6}
	assert.Equal(t, [6]float64{1, 2, 3, 4, 5, 6}, st.Vector())
}
