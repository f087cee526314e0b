// Package mpc provides a single-step approximate trajectory optimizer. It
// trades the full horizon optimization for a damped gradient step that runs
// comfortably inside one control tick on embedded hardware.
package mpc

import (
	"fmt"
	"math"

	"dbw-control-core/dbw"
)

type Config struct {
	// Steering gains on cross-track and heading error.
	KCte  float64 `json:"k_cte"`
	KEpsi float64 `json:"k_epsi"`
	// Damping on the cross-track error rate.
	KDamp float64 `json:"k_damp"`

	// Speed tracking over an equivalent prediction horizon.
	HorizonS float64 `json:"horizon_s"`

	MaxSteerRad  float64 `json:"max_steer_rad"`
	MaxAccelMPS2 float64 `json:"max_accel_mps2"`
	MaxDecelMPS2 float64 `json:"max_decel_mps2"`
}

func DefaultConfig() Config {
	return Config{
		KCte:         0.12,
		KEpsi:        0.9,
		KDamp:        0.25,
		HorizonS:     1.0,
		MaxSteerRad:  0.436, // 25 degrees at the wheels
		MaxAccelMPS2: 1.0,
		MaxDecelMPS2: 4.0,
	}
}

// Solver implements dbw.Optimizer. State ordering follows the predictor:
// x, y, heading, speed, cte, heading error.
type Solver struct {
	cfg    Config
	target float64

	prevCTE    float64
	havePrev   bool
	iterations int
}

func NewSolver(cfg Config) *Solver {
	return &Solver{cfg: cfg}
}

// SetTargetSpeed updates the speed setpoint tracked by Solve.
func (s *Solver) SetTargetSpeed(v float64) {
	s.target = v
}

func (s *Solver) Solve(state [6]float64, coeffs []float64) (dbw.Actuation, error) {
	for _, v := range state {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return dbw.Actuation{}, fmt.Errorf("mpc: non-finite state input")
		}
	}
	for _, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return dbw.Actuation{}, fmt.Errorf("mpc: non-finite path coefficients")
		}
	}
	s.iterations++

	speed := state[3]
	cte := state[4]
	epsi := state[5]

	// Lateral: drive both errors to zero, damped on the cte rate so the
	// correction does not oscillate across the path.
	steer := -(s.cfg.KCte*cte + s.cfg.KEpsi*epsi)
	if s.havePrev {
		steer -= s.cfg.KDamp * (cte - s.prevCTE)
	}
	steer = clamp(steer, -s.cfg.MaxSteerRad, s.cfg.MaxSteerRad)

	// Longitudinal: acceleration that closes the speed error over the
	// horizon, clamped to platform limits.
	accel := (s.target - speed) / s.cfg.HorizonS
	accel = clamp(accel, -s.cfg.MaxDecelMPS2, s.cfg.MaxAccelMPS2)

	s.prevCTE = cte
	s.havePrev = true

	return dbw.Actuation{Steering: steer, Acceleration: accel}, nil
}

// Reset clears solver state between runs.
func (s *Solver) Reset() {
	s.prevCTE = 0
	s.havePrev = false
	s.iterations = 0
}

// Diagnostics is a snapshot of solver internals for logging.
type Diagnostics struct {
	TargetSpeed float64
	PrevCTE     float64
	Iterations  int
}

func (s *Solver) GetDiagnostics() Diagnostics {
	return Diagnostics{
		TargetSpeed: s.target,
		PrevCTE:     s.prevCTE,
		Iterations:  s.iterations,
	}
}

func (s *Solver) String() string {
	d := s.GetDiagnostics()
	return fmt.Sprintf("target=%.2fm/s cte=%.3f iterations=%d", d.TargetSpeed, d.PrevCTE, d.Iterations)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
