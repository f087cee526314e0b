package dbw

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigAppliesDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "dbw.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"vehicle_mass_kg": 2000}`), 0644))

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, cfg.VehicleMassKg)
	assert.Equal(t, 0.1, cfg.ActuationLatencyS)
	assert.Equal(t, 2.67, cfg.LfM)
	assert.Equal(t, 50.0, cfg.LoopHz)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadConfigRejectsInvalidJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "dbw.json")
	require.NoError(t, os.WriteFile(p, []byte(`{nope`), 0644))
	_, err := LoadConfig(p)
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero mass", func(c *Config) { c.VehicleMassKg = 0 }},
		{"negative latency", func(c *Config) { c.ActuationLatencyS = -0.1 }},
		{"zero Lf", func(c *Config) { c.LfM = 0 }},
		{"zero loop rate", func(c *Config) { c.LoopHz = 0 }},
		{"zero wheel radius", func(c *Config) { c.WheelRadiusM = 0 }},
		{"zero brake torque", func(c *Config) { c.MaxBrakeTorqueNm = 0 }},
		{"degree below one", func(c *Config) { c.FitDegree = 0 }},
		{"window below degree+1", func(c *Config) { c.WaypointWindow = 3 }},
		{"negative hold ticks", func(c *Config) { c.HoldTicks = -1 }},
		{"zero fallback decel", func(c *Config) { c.FallbackDecelMPS2 = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}
