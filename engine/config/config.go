// Package config loads the engine configuration from TOML. Keys left out of a file keep their
// defaults, so a file only needs the values it changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/drawcall"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/queue"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/target"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is returned for values that decode but cannot be used.
var ErrInvalid = errors.New("config: invalid value")

// Config is the full engine configuration.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Engine   EngineConfig   `toml:"engine"`
}

// WindowConfig configures the window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// VSync is a pointer so an explicit false survives defaulting.
	VSync *bool `toml:"vsync"`
}

// RendererConfig configures the render context.
type RendererConfig struct {
	DrawCallCapacity     int    `toml:"draw_call_capacity"`
	QueueCapacity        int    `toml:"queue_capacity"`
	MaxParticles         int    `toml:"max_particles"`
	GeneralTargetDivisor int    `toml:"general_target_divisor"`
	PostSmallDivisor     int    `toml:"post_small_divisor"`
	PostLargeDivisor     int    `toml:"post_large_divisor"`
	ExhaustionPolicy     string `toml:"exhaustion_policy"`
	// ScreenWidth and ScreenHeight override the window size the renderer starts with; 0 uses the window.
	ScreenWidth  int `toml:"screen_width"`
	ScreenHeight int `toml:"screen_height"`
}

// EngineConfig configures the frame loop.
type EngineConfig struct {
	TickRate      float64 `toml:"tick_rate"`
	FrameLimit    float64 `toml:"frame_limit"`
	Profiling     bool    `toml:"profiling"`
	LoaderWorkers int     `toml:"loader_workers"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	vsync := true
	return Config{
		Window: WindowConfig{
			Title:  "oxy",
			Width:  1280,
			Height: 720,
			VSync:  &vsync,
		},
		Renderer: RendererConfig{
			DrawCallCapacity:     drawcall.DefaultCapacity,
			QueueCapacity:        queue.DefaultCapacity,
			MaxParticles:         1024,
			GeneralTargetDivisor: 4,
			PostSmallDivisor:     8,
			PostLargeDivisor:     2,
			ExhaustionPolicy:     target.PolicyReuse.String(),
		},
		Engine: EngineConfig{
			TickRate:      60,
			LoaderWorkers: 2,
		},
	}
}

// Load reads and decodes the TOML file at path.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Config: the configuration with defaults for missing keys
//   - error: an error if the file cannot be read or decoded
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a TOML document. Unknown keys are rejected.
//
// Parameters:
//   - data: the document
//
// Returns:
//   - Config: the configuration with defaults for missing keys
//   - error: an error if the document does not decode or holds invalid values
func Parse(data []byte) (Config, error) {
	return Decode(bytes.NewReader(data))
}

// Decode decodes a TOML document from r, see Parse.
//
// Parameters:
//   - r: the reader
//
// Returns:
//   - Config: the configuration with defaults for missing keys
//   - error: an error if the document does not decode or holds invalid values
func Decode(r io.Reader) (Config, error) {
	var c Config
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	c = c.withDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// withDefaults fills every zero value from Default.
func (c Config) withDefaults() Config {
	d := Default()

	c.Window.Title = common.Coalesce(c.Window.Title, d.Window.Title)
	c.Window.Width = common.Coalesce(c.Window.Width, d.Window.Width)
	c.Window.Height = common.Coalesce(c.Window.Height, d.Window.Height)
	if c.Window.VSync == nil {
		c.Window.VSync = d.Window.VSync
	}

	r, dr := &c.Renderer, d.Renderer
	r.DrawCallCapacity = common.Coalesce(r.DrawCallCapacity, dr.DrawCallCapacity)
	r.QueueCapacity = common.Coalesce(r.QueueCapacity, dr.QueueCapacity)
	r.MaxParticles = common.Coalesce(r.MaxParticles, dr.MaxParticles)
	r.GeneralTargetDivisor = common.Coalesce(r.GeneralTargetDivisor, dr.GeneralTargetDivisor)
	r.PostSmallDivisor = common.Coalesce(r.PostSmallDivisor, dr.PostSmallDivisor)
	r.PostLargeDivisor = common.Coalesce(r.PostLargeDivisor, dr.PostLargeDivisor)
	r.ExhaustionPolicy = common.Coalesce(r.ExhaustionPolicy, dr.ExhaustionPolicy)

	c.Engine.TickRate = common.Coalesce(c.Engine.TickRate, d.Engine.TickRate)
	c.Engine.LoaderWorkers = common.Coalesce(c.Engine.LoaderWorkers, d.Engine.LoaderWorkers)
	return c
}

// Validate reports values that cannot be used.
//
// Returns:
//   - error: an ErrInvalid wrapping error naming the first bad key, or nil
func (c Config) Validate() error {
	positive := []struct {
		key string
		v   int
	}{
		{"window.width", c.Window.Width},
		{"window.height", c.Window.Height},
		{"renderer.draw_call_capacity", c.Renderer.DrawCallCapacity},
		{"renderer.queue_capacity", c.Renderer.QueueCapacity},
		{"renderer.max_particles", c.Renderer.MaxParticles},
		{"renderer.general_target_divisor", c.Renderer.GeneralTargetDivisor},
		{"renderer.post_small_divisor", c.Renderer.PostSmallDivisor},
		{"renderer.post_large_divisor", c.Renderer.PostLargeDivisor},
		{"engine.loader_workers", c.Engine.LoaderWorkers},
	}
	for _, p := range positive {
		if p.v < 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, p.key, p.v)
		}
	}
	if c.Renderer.ScreenWidth < 0 || c.Renderer.ScreenHeight < 0 {
		return fmt.Errorf("%w: renderer screen size must not be negative", ErrInvalid)
	}
	if c.Engine.TickRate < 0 || c.Engine.FrameLimit < 0 {
		return fmt.Errorf("%w: engine rates must not be negative", ErrInvalid)
	}
	if _, err := target.ParseExhaustionPolicy(c.Renderer.ExhaustionPolicy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Policy returns the parsed exhaustion policy. Validate has already rejected unknown names.
//
// Returns:
//   - target.ExhaustionPolicy: the policy
func (r RendererConfig) Policy() target.ExhaustionPolicy {
	p, _ := target.ParseExhaustionPolicy(r.ExhaustionPolicy)
	return p
}
