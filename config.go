package cloudview

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

var ErrInvalidConfig = errors.New("invalid config")

// DrawPolicy selects how many ring slots the point pass draws.
type DrawPolicy string

const (
	// DrawValid draws only slots that were written at least once.
	DrawValid DrawPolicy = "valid"
	// DrawCapacity draws every slot; unwritten slots render at the origin.
	DrawCapacity DrawPolicy = "capacity"
)

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type CameraConfig struct {
	Position    [3]float32 `toml:"position"`
	Yaw         float32    `toml:"yaw"`
	Pitch       float32    `toml:"pitch"`
	Speed       float32    `toml:"speed"`
	Sensitivity float32    `toml:"sensitivity"`
	Fov         float32    `toml:"fov"`
	Near        float32    `toml:"near"`
	Far         float32    `toml:"far"`
}

type PointsConfig struct {
	Capacity       int        `toml:"capacity"`
	PointsPerFrame int        `toml:"points_per_frame"`
	Seed           uint64     `toml:"seed"`
	MinSize        float32    `toml:"min_size"`
	MaxSize        float32    `toml:"max_size"`
	Color          [4]float32 `toml:"color"`
	DrawPolicy     DrawPolicy `toml:"draw_policy"`
}

type Config struct {
	Window WindowConfig `toml:"window"`
	Camera CameraConfig `toml:"camera"`
	Points PointsConfig `toml:"points"`
	HUD    bool         `toml:"hud"`
	Debug  bool         `toml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  2560,
			Height: 1440,
			Title:  "Point Cloud",
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 2},
			Yaw:         -90,
			Pitch:       0,
			Speed:       2.5,
			Sensitivity: 0.1,
			Fov:         45,
			Near:        0.1,
			Far:         100,
		},
		Points: PointsConfig{
			Capacity:       20_000_000,
			PointsPerFrame: 30_000,
			MinSize:        1,
			MaxSize:        8,
			Color:          [4]float32{1.0, 0.5, 0.2, 1.0},
			DrawPolicy:     DrawValid,
		},
		HUD: true,
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig. Keys missing from
// the file keep their default; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Camera.Speed >= 0, "camera.speed must not be negative")
	check(c.Camera.Sensitivity >= 0, "camera.sensitivity must not be negative")
	check(c.Camera.Pitch >= -89 && c.Camera.Pitch <= 89, "camera.pitch must be within [-89, 89], got %g", c.Camera.Pitch)
	check(c.Camera.Fov > 0 && c.Camera.Fov < 180, "camera.fov must be within (0, 180), got %g", c.Camera.Fov)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "camera near/far planes must satisfy 0 < near < far")
	check(c.Points.Capacity > 0, "points.capacity must be positive")
	check(c.Points.PointsPerFrame >= 0 && c.Points.PointsPerFrame <= c.Points.Capacity,
		"points.points_per_frame must be within [0, capacity], got %d", c.Points.PointsPerFrame)
	check(c.Points.MinSize > 0 && c.Points.MaxSize >= c.Points.MinSize, "point sizes must satisfy 0 < min_size <= max_size")
	check(c.Points.DrawPolicy == DrawValid || c.Points.DrawPolicy == DrawCapacity,
		"points.draw_policy must be %q or %q, got %q", DrawValid, DrawCapacity, c.Points.DrawPolicy)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Live copies the fields that can change while the viewer runs. Buffer
// capacity, window and projection settings stay as they were at startup.
func (c Config) Live(next Config) Config {
	c.Camera.Speed = next.Camera.Speed
	c.Camera.Sensitivity = next.Camera.Sensitivity
	c.Points.PointsPerFrame = min(next.Points.PointsPerFrame, c.Points.Capacity)
	c.Points.MinSize = next.Points.MinSize
	c.Points.MaxSize = next.Points.MaxSize
	c.Points.Color = next.Points.Color
	c.Points.DrawPolicy = next.Points.DrawPolicy
	c.HUD = next.HUD
	c.Debug = next.Debug
	return c
}
