package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/golfsim/internal/ballistics"
	"github.com/san-kum/golfsim/internal/integrators"
)

const (
	DefaultSpeed    = 70.0
	DefaultAngleDeg = 9.0
	DefaultDt       = ballistics.DefaultDt
	DefaultMaxSteps = ballistics.DefaultMaxSteps
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Name       string        `yaml:"name"`
	Launch     LaunchConfig  `yaml:"launch"`
	Dt         float64       `yaml:"dt"`
	MaxSteps   int           `yaml:"max_steps"`
	Integrator string        `yaml:"integrator"`
	Forces     ForcesConfig  `yaml:"forces"`
	Physics    PhysicsConfig `yaml:"physics"`
	Logger     LoggerConfig  `yaml:"logger"`
}

type LaunchConfig struct {
	Speed    float64 `yaml:"speed"`
	AngleDeg float64 `yaml:"angle_deg"`
}

// ForcesConfig names the force terms; see ballistics.ParseDragLaw and
// ballistics.ParseDensityModel for accepted values.
type ForcesConfig struct {
	Drag    string `yaml:"drag"`
	Density string `yaml:"density"`
	Magnus  bool   `yaml:"magnus"`
}

type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity"`
	AirDensity        float64 `yaml:"air_density"`
	Area              float64 `yaml:"area"`
	Mass              float64 `yaml:"mass"`
	DragCoefficient   float64 `yaml:"drag_coefficient"`
	SeaLevelTemp      float64 `yaml:"sea_level_temp"`
	LapseRate         float64 `yaml:"lapse_rate"`
	DensityExponent   float64 `yaml:"density_exponent"`
	MagnusCoefficient float64 `yaml:"magnus_coefficient"`
}

// LoggerConfig drives observability.Initialize. An empty File disables the
// rotated JSON log.
type LoggerConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	ServiceName string `yaml:"service_name"`
	File        string `yaml:"file"`
	MaxSize     int    `yaml:"max_size"`
	MaxBackups  int    `yaml:"max_backups"`
	MaxAge      int    `yaml:"max_age"`
	Compress    bool   `yaml:"compress"`
}

func DefaultPhysics() PhysicsConfig {
	c := ballistics.GolfBall()
	return PhysicsConfig{
		Gravity:           c.Gravity,
		AirDensity:        c.AirDensity,
		Area:              c.Area,
		Mass:              c.Mass,
		DragCoefficient:   c.DragCoefficient,
		SeaLevelTemp:      c.SeaLevelTemp,
		LapseRate:         c.LapseRate,
		DensityExponent:   c.DensityExponent,
		MagnusCoefficient: c.MagnusCoefficient,
	}
}

func DefaultLogger() LoggerConfig {
	return LoggerConfig{
		Level:       "info",
		Format:      "console",
		ServiceName: "golfsim",
		MaxSize:     10,
		MaxBackups:  3,
		MaxAge:      28,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Name: "ideal",
		Launch: LaunchConfig{
			Speed:    DefaultSpeed,
			AngleDeg: DefaultAngleDeg,
		},
		Dt:         DefaultDt,
		MaxSteps:   DefaultMaxSteps,
		Integrator: integrators.Default,
		Forces: ForcesConfig{
			Drag:    ballistics.DragNone.String(),
			Density: ballistics.DensityVacuum.String(),
		},
		Physics: DefaultPhysics(),
		Logger:  DefaultLogger(),
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive and finite, got %g", ErrInvalidConfig, c.Dt)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("%w: max_steps must be positive, got %d", ErrInvalidConfig, c.MaxSteps)
	}
	if _, err := integrators.Get(c.Integrator); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.LaunchParams().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.ForceModel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Constants().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) LaunchParams() ballistics.Launch {
	return ballistics.LaunchDegrees(c.Launch.Speed, c.Launch.AngleDeg)
}

func (c *Config) ForceModel() (ballistics.ForceModel, error) {
	drag, err := ballistics.ParseDragLaw(c.Forces.Drag)
	if err != nil {
		return ballistics.ForceModel{}, err
	}
	density, err := ballistics.ParseDensityModel(c.Forces.Density)
	if err != nil {
		return ballistics.ForceModel{}, err
	}
	return ballistics.ForceModel{Drag: drag, Density: density, Magnus: c.Forces.Magnus}, nil
}

func (c *Config) Constants() ballistics.Constants {
	p := c.Physics
	return ballistics.Constants{
		Gravity:           p.Gravity,
		AirDensity:        p.AirDensity,
		Area:              p.Area,
		Mass:              p.Mass,
		DragCoefficient:   p.DragCoefficient,
		SeaLevelTemp:      p.SeaLevelTemp,
		LapseRate:         p.LapseRate,
		DensityExponent:   p.DensityExponent,
		MagnusCoefficient: p.MagnusCoefficient,
	}
}

// Options builds integration options with a fresh integrator.
func (c *Config) Options() (ballistics.Options, error) {
	integ, err := integrators.Get(c.Integrator)
	if err != nil {
		return ballistics.Options{}, err
	}
	return ballistics.Options{
		Dt:         c.Dt,
		MaxSteps:   c.MaxSteps,
		Integrator: integ,
	}, nil
}
