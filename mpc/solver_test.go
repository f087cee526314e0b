package mpc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveOnPathAtTargetSpeedIsNeutral(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.SetTargetSpeed(10)

	act, err := s.Solve([6]float64{1, 0, 0, 10, 0, 0}, []float64{0, 0, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0, act.Steering, 1e-12)
	assert.InDelta(t, 0, act.Acceleration, 1e-12)
}

func TestSolveBelowTargetAccelerates(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.SetTargetSpeed(15)

	act, err := s.Solve([6]float64{0, 0, 0, 10, 0, 0}, []float64{0, 0, 0, 0})
	require.NoError(t, err)
	assert.Greater(t, act.Acceleration, 0.0)
	assert.LessOrEqual(t, act.Acceleration, DefaultConfig().MaxAccelMPS2)
}

func TestSolveAboveTargetBrakesWithinLimit(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.SetTargetSpeed(5)

	act, err := s.Solve([6]float64{0, 0, 0, 30, 0, 0}, []float64{0, 0, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, -DefaultConfig().MaxDecelMPS2, act.Acceleration, 1e-12)
}

func TestSolveSteersAgainstCrossTrackError(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.SetTargetSpeed(10)

	// Vehicle left of the path (positive cte): steer negative.
	act, err := s.Solve([6]float64{0, 0, 0, 10, 2.0, 0}, []float64{2, 0, 0, 0})
	require.NoError(t, err)
	assert.Less(t, act.Steering, 0.0)
}

func TestSolveSteeringClamped(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSolver(cfg)

	act, err := s.Solve([6]float64{0, 0, 0, 10, 100, 1.0}, []float64{100, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, -cfg.MaxSteerRad, act.Steering)
}

func TestSolveRejectsNonFiniteState(t *testing.T) {
	s := NewSolver(DefaultConfig())

	_, err := s.Solve([6]float64{0, 0, math.NaN(), 10, 0, 0}, []float64{0, 0, 0, 0})
	assert.Error(t, err)

	_, err = s.Solve([6]float64{0, 0, 0, 10, 0, 0}, []float64{math.Inf(1), 0, 0, 0})
	assert.Error(t, err)
}

func TestResetClearsState(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.SetTargetSpeed(10)
	_, err := s.Solve([6]float64{0, 0, 0, 10, 1, 0}, []float64{1, 0, 0, 0})
	require.NoError(t, err)

	s.Reset()
	d := s.GetDiagnostics()
	assert.Zero(t, d.PrevCTE)
	assert.Zero(t, d.Iterations)
}
