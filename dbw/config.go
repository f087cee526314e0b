package dbw

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the vehicle and loop constants read once at startup.
type Config struct {
	VehicleMassKg     float64 `json:"vehicle_mass_kg"`
	ActuationLatencyS float64 `json:"actuation_latency_s"`
	LfM               float64 `json:"lf_m"` // center of mass to front axle
	LoopHz            float64 `json:"loop_hz"`

	WheelRadiusM     float64 `json:"wheel_radius_m"`
	MaxSteerRad      float64 `json:"max_steer_rad"`
	SteerRateLimit   float64 `json:"steer_rate_limit_rps"`
	MaxBrakeTorqueNm float64 `json:"max_brake_torque_nm"`

	WaypointWindow int `json:"waypoint_window"`
	FitDegree      int `json:"fit_degree"`

	// Optimizer failure fallback: hold the last good command for up to
	// HoldTicks consecutive failures, then decelerate at FallbackDecelMPS2.
	HoldTicks         int     `json:"hold_ticks"`
	FallbackDecelMPS2 float64 `json:"fallback_decel_mps2"`
}

// DefaultConfig mirrors the stock Lincoln MKZ platform values.
func DefaultConfig() Config {
	return Config{
		VehicleMassKg:     1736.35,
		ActuationLatencyS: 0.1,
		LfM:               2.67,
		LoopHz:            50,
		WheelRadiusM:      0.335,
		MaxSteerRad:       8.2,
		SteerRateLimit:    8.7,
		MaxBrakeTorqueNm:  3412,
		WaypointWindow:    6,
		FitDegree:         3,
		HoldTicks:         5,
		FallbackDecelMPS2: 2.0,
	}
}

// LoadConfig reads a JSON config file, applying defaults for absent fields.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.VehicleMassKg <= 0 {
		return fmt.Errorf("invalid vehicle_mass_kg: %f", c.VehicleMassKg)
	}
	if c.ActuationLatencyS <= 0 {
		return fmt.Errorf("invalid actuation_latency_s: %f", c.ActuationLatencyS)
	}
	if c.LfM <= 0 {
		return fmt.Errorf("invalid lf_m: %f", c.LfM)
	}
	if c.LoopHz <= 0 {
		return fmt.Errorf("invalid loop_hz: %f", c.LoopHz)
	}
	if c.WheelRadiusM <= 0 {
		return fmt.Errorf("invalid wheel_radius_m: %f", c.WheelRadiusM)
	}
	if c.MaxBrakeTorqueNm <= 0 {
		return fmt.Errorf("invalid max_brake_torque_nm: %f", c.MaxBrakeTorqueNm)
	}
	if c.FitDegree < 1 {
		return fmt.Errorf("invalid fit_degree: %d", c.FitDegree)
	}
	if c.WaypointWindow < c.FitDegree+1 {
		return fmt.Errorf("waypoint_window %d cannot support fit_degree %d", c.WaypointWindow, c.FitDegree)
	}
	if c.HoldTicks < 0 {
		return fmt.Errorf("invalid hold_ticks: %d", c.HoldTicks)
	}
	if c.FallbackDecelMPS2 <= 0 {
		return fmt.Errorf("invalid fallback_decel_mps2: %f", c.FallbackDecelMPS2)
	}
	return nil
}
