package cloudview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, [3]float32{0, 0, 2}, cfg.Camera.Position)
	assert.Equal(t, float32(-90), cfg.Camera.Yaw)
	assert.Equal(t, float32(2.5), cfg.Camera.Speed)
	assert.Equal(t, float32(0.1), cfg.Camera.Sensitivity)
	assert.Equal(t, 20_000_000, cfg.Points.Capacity)
	assert.Equal(t, 30_000, cfg.Points.PointsPerFrame)
	assert.Equal(t, DrawValid, cfg.Points.DrawPolicy)
}

func TestParseConfig_OverridesDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
hud = false

[camera]
speed = 5.0

[points]
capacity = 1000
points_per_frame = 10
draw_policy = "capacity"
color = [0.0, 1.0, 0.0, 1.0]
`))
	require.NoError(t, err)

	assert.False(t, cfg.HUD)
	assert.Equal(t, float32(5), cfg.Camera.Speed)
	assert.Equal(t, float32(0.1), cfg.Camera.Sensitivity, "unset keys keep their default")
	assert.Equal(t, 1000, cfg.Points.Capacity)
	assert.Equal(t, DrawCapacity, cfg.Points.DrawPolicy)
	assert.Equal(t, [4]float32{0, 1, 0, 1}, cfg.Points.Color)
	assert.Equal(t, 2560, cfg.Window.Width)
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"unknown key", "[points]\nfrobnicate = 1\n"},
		{"syntax", "[points\n"},
		{"bad policy", "[points]\ndraw_policy = \"sometimes\"\n"},
		{"batch above capacity", "[points]\ncapacity = 10\npoints_per_frame = 11\n"},
		{"pitch out of range", "[camera]\npitch = 95.0\n"},
		{"near beyond far", "[camera]\nnear = 10.0\nfar = 1.0\n"},
		{"sizes inverted", "[points]\nmin_size = 9.0\nmax_size = 2.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.toml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Width = 0
	cfg.Points.Capacity = 0

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "window size")
	assert.Contains(t, err.Error(), "points.capacity")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloud.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\ntitle = \"Lidar\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Lidar", cfg.Window.Title)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestConfig_Live(t *testing.T) {
	current := DefaultConfig()
	current.Points.Capacity = 100

	next := DefaultConfig()
	next.Points.Capacity = 5
	next.Points.PointsPerFrame = 500
	next.Camera.Speed = 9
	next.Camera.Fov = 90
	next.Window.Width = 10
	next.Points.DrawPolicy = DrawCapacity

	live := current.Live(next)
	assert.Equal(t, 100, live.Points.Capacity)
	assert.Equal(t, 100, live.Points.PointsPerFrame)
	assert.Equal(t, float32(9), live.Camera.Speed)
	assert.Equal(t, float32(45), live.Camera.Fov)
	assert.Equal(t, 2560, live.Window.Width)
	assert.Equal(t, DrawCapacity, live.Points.DrawPolicy)
}
