package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix is prepended to environment overrides, e.g. SPHERETRACER_IMAGE_WIDTH
const EnvPrefix = "SPHERETRACER"

// DefaultFileName is the config file looked up in the working directory
// when no explicit path is given
const DefaultFileName = "spheretracer.yaml"

// Config represents the renderer configuration
type Config struct {
	Image  ImageConfig  `yaml:"image" mapstructure:"image"`
	Render RenderConfig `yaml:"render" mapstructure:"render"`
	Camera CameraConfig `yaml:"camera" mapstructure:"camera"`
	Sky    SkyConfig    `yaml:"sky" mapstructure:"sky"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// ImageConfig contains output image settings
type ImageConfig struct {
	Width       int     `yaml:"width" mapstructure:"width"`
	AspectRatio float64 `yaml:"aspect_ratio" mapstructure:"aspect_ratio"`
	Output      string  `yaml:"output" mapstructure:"output"`
}

// RenderConfig contains sampling and scheduling settings
type RenderConfig struct {
	SamplesPerPixel    int     `yaml:"samples_per_pixel" mapstructure:"samples_per_pixel"`
	MaxDepth           int     `yaml:"max_depth" mapstructure:"max_depth"`
	Workers            int     `yaml:"workers" mapstructure:"workers"` // 0 = one per CPU
	Seed               uint64  `yaml:"seed" mapstructure:"seed"`
	TMin               float64 `yaml:"t_min" mapstructure:"t_min"`
	DiffuseAttenuation float64 `yaml:"diffuse_attenuation" mapstructure:"diffuse_attenuation"`
	Scene              string  `yaml:"scene" mapstructure:"scene"`
}

// CameraConfig contains the pinhole camera geometry
type CameraConfig struct {
	ViewportHeight float64 `yaml:"viewport_height" mapstructure:"viewport_height"`
	FocalLength    float64 `yaml:"focal_length" mapstructure:"focal_length"`
}

// SkyConfig contains the background gradient end points as linear RGB
type SkyConfig struct {
	Horizon [3]float64 `yaml:"horizon,flow" mapstructure:"horizon"`
	Zenith  [3]float64 `yaml:"zenith,flow" mapstructure:"zenith"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Image: ImageConfig{
			Width:       600,
			AspectRatio: 16.0 / 9.0,
			Output:      "image.png",
		},
		Render: RenderConfig{
			SamplesPerPixel:    100,
			MaxDepth:           50,
			Workers:            4,
			Seed:               0,
			TMin:               0.001,
			DiffuseAttenuation: 0.5,
			Scene:              "default",
		},
		Camera: CameraConfig{
			ViewportHeight: 2.0,
			FocalLength:    1.0,
		},
		Sky: SkyConfig{
			Horizon: [3]float64{1.0, 1.0, 1.0},
			Zenith:  [3]float64{0.5, 0.7, 1.0},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// NewViper returns a viper instance preloaded with the defaults and wired
// to SPHERETRACER_* environment variables. Callers may bind flags to it
// before passing it to Load.
func NewViper() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("image.width", d.Image.Width)
	v.SetDefault("image.aspect_ratio", d.Image.AspectRatio)
	v.SetDefault("image.output", d.Image.Output)
	v.SetDefault("render.samples_per_pixel", d.Render.SamplesPerPixel)
	v.SetDefault("render.max_depth", d.Render.MaxDepth)
	v.SetDefault("render.workers", d.Render.Workers)
	v.SetDefault("render.seed", d.Render.Seed)
	v.SetDefault("render.t_min", d.Render.TMin)
	v.SetDefault("render.diffuse_attenuation", d.Render.DiffuseAttenuation)
	v.SetDefault("render.scene", d.Render.Scene)
	v.SetDefault("camera.viewport_height", d.Camera.ViewportHeight)
	v.SetDefault("camera.focal_length", d.Camera.FocalLength)
	v.SetDefault("sky.horizon", d.Sky.Horizon)
	v.SetDefault("sky.zenith", d.Sky.Zenith)
	v.SetDefault("log.level", d.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configuration into v and returns the validated result.
// With an empty path, DefaultFileName is looked up in the working
// directory and silently skipped when absent; an explicit path must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFileName, filepath.Ext(DefaultFileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Save writes the configuration as YAML, creating the parent directory
func Save(config *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks every setting is in range
func (c *Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Image.Width <= 0 {
		return invalid("image width must be positive, got %d", c.Image.Width)
	}
	if c.Image.AspectRatio <= 0 {
		return invalid("aspect ratio must be positive, got %g", c.Image.AspectRatio)
	}
	if c.Height() <= 0 {
		return invalid("image height %d derived from width %d and aspect ratio %g must be positive",
			c.Height(), c.Image.Width, c.Image.AspectRatio)
	}
	if c.Image.Output == "" {
		return invalid("output path cannot be empty")
	}

	if c.Render.SamplesPerPixel <= 0 {
		return invalid("samples per pixel must be positive, got %d", c.Render.SamplesPerPixel)
	}
	if c.Render.MaxDepth <= 0 {
		return invalid("max depth must be positive, got %d", c.Render.MaxDepth)
	}
	if c.Render.Workers < 0 {
		return invalid("workers cannot be negative, got %d", c.Render.Workers)
	}
	if c.Render.TMin < 0 {
		return invalid("t_min cannot be negative, got %g", c.Render.TMin)
	}
	if c.Render.DiffuseAttenuation < 0 || c.Render.DiffuseAttenuation > 1 {
		return invalid("diffuse attenuation must be in [0, 1], got %g", c.Render.DiffuseAttenuation)
	}
	if c.Render.Scene == "" {
		return invalid("scene cannot be empty")
	}

	if c.Camera.ViewportHeight <= 0 {
		return invalid("viewport height must be positive, got %g", c.Camera.ViewportHeight)
	}
	if c.Camera.FocalLength <= 0 {
		return invalid("focal length must be positive, got %g", c.Camera.FocalLength)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return invalid("log level %q: %v", c.Log.Level, err)
	}

	return nil
}

// Height returns the image height derived from width and aspect ratio
func (c *Config) Height() int {
	return int(float64(c.Image.Width) / c.Image.AspectRatio)
}

// SamplingConfig converts to the renderer's sampling settings
func (c *Config) SamplingConfig() renderer.SamplingConfig {
	return renderer.SamplingConfig{
		Width:              c.Image.Width,
		Height:             c.Height(),
		SamplesPerPixel:    c.Render.SamplesPerPixel,
		MaxDepth:           c.Render.MaxDepth,
		TMin:               c.Render.TMin,
		DiffuseAttenuation: c.Render.DiffuseAttenuation,
	}
}

// CameraConfig converts to the renderer's camera settings. The camera
// shares the image aspect ratio so pixels stay square.
func (c *Config) CameraConfig() renderer.CameraConfig {
	return renderer.CameraConfig{
		Origin:         core.Vec3{},
		AspectRatio:    c.Image.AspectRatio,
		ViewportHeight: c.Camera.ViewportHeight,
		FocalLength:    c.Camera.FocalLength,
	}
}

// WorkerPoolConfig converts to the scheduler settings
func (c *Config) WorkerPoolConfig() renderer.WorkerPoolConfig {
	return renderer.WorkerPoolConfig{
		Width:      c.Image.Width,
		Height:     c.Height(),
		NumWorkers: c.Render.Workers,
		Seed:       c.Render.Seed,
	}
}

// SkyColors returns the gradient as (top, bottom) colors
func (c *Config) SkyColors() (top, bottom core.Vec3) {
	return core.NewVec3(c.Sky.Zenith[0], c.Sky.Zenith[1], c.Sky.Zenith[2]),
		core.NewVec3(c.Sky.Horizon[0], c.Sky.Horizon[1], c.Sky.Horizon[2])
}
