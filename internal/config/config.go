package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"model-stage/internal/animation"
	"model-stage/internal/geometry"
	"model-stage/internal/transition"
	"model-stage/internal/watch"
)

// Config holds all configurable paths, frame and timing settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	OutputDir string `json:"output_dir"`

	// Frame the documents are laid out against
	FrameWidth  float64 `json:"frame_width"`
	FrameHeight float64 `json:"frame_height"`

	// Transitions
	TransitionSteps      int `json:"transition_steps"`
	TransitionIntervalMS int `json:"transition_interval_ms"`

	// Animation state machine
	DefaultAnimation string `json:"default_animation"`
	DefaultPose      string `json:"default_pose"`
	CrossfadeMS      int    `json:"crossfade_ms"`
	SettleMS         int    `json:"settle_ms"`

	// Observers
	SampleIntervalMS int `json:"sample_interval_ms"`

	// Output
	Preview      bool `json:"preview"`
	PreviewWidth int  `json:"preview_width"`
	Workers      int  `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.FrameWidth = flags.Width
	}
	if flags.Height > 0 {
		c.FrameHeight = flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Preview {
		c.Preview = true
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "staged")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}

	// Defaults
	if c.FrameWidth <= 0 {
		c.FrameWidth = 1280
	}
	if c.FrameHeight <= 0 {
		c.FrameHeight = 720
	}
	if c.TransitionSteps <= 0 {
		c.TransitionSteps = transition.DefaultSteps
	}
	if c.TransitionIntervalMS <= 0 {
		c.TransitionIntervalMS = int(transition.DefaultInterval / time.Millisecond)
	}
	anim := animation.DefaultConfig()
	if c.DefaultAnimation == "" {
		c.DefaultAnimation = anim.DefaultName
	}
	if c.DefaultPose == "" {
		c.DefaultPose = anim.DefaultPose
	}
	if c.CrossfadeMS <= 0 {
		c.CrossfadeMS = int(anim.Crossfade / time.Millisecond)
	}
	if c.SettleMS <= 0 {
		c.SettleMS = int(anim.Settle / time.Millisecond)
	}
	if c.SampleIntervalMS <= 0 {
		c.SampleIntervalMS = int(watch.DefaultInterval / time.Millisecond)
	}
	if c.PreviewWidth <= 0 {
		c.PreviewWidth = 640
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir   string
	OutputDir string
	Width     float64
	Height    float64
	Workers   int
	Preview   bool
}

// Frame returns the configured frame.
func (c Config) Frame() geometry.Frame {
	return geometry.Frame{Width: c.FrameWidth, Height: c.FrameHeight}
}

// TransitionOptions returns the configured transition settings.
func (c Config) TransitionOptions() []transition.Option {
	return []transition.Option{
		transition.WithSteps(c.TransitionSteps),
		transition.WithInterval(time.Duration(c.TransitionIntervalMS) * time.Millisecond),
	}
}

// Animation returns the configured animation player settings.
func (c Config) Animation() animation.Config {
	a := animation.DefaultConfig()
	a.DefaultName = c.DefaultAnimation
	a.DefaultPose = c.DefaultPose
	a.Crossfade = time.Duration(c.CrossfadeMS) * time.Millisecond
	a.Settle = time.Duration(c.SettleMS) * time.Millisecond
	return a
}

// SampleInterval returns the observer sampling period.
func (c Config) SampleInterval() time.Duration {
	return time.Duration(c.SampleIntervalMS) * time.Millisecond
}
