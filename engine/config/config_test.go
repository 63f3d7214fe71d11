package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrideKeepsOtherDefaults(t *testing.T) {
	c, err := Parse([]byte("[renderer]\ndraw_call_capacity = 128\n"))
	require.NoError(t, err)

	want := Default()
	want.Renderer.DrawCallCapacity = 128
	assert.Equal(t, want, c)
}

func TestEmptyDocumentIsDefault(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, target.PolicyReuse, c.Renderer.Policy())
}

func TestFullDocument(t *testing.T) {
	doc := `
[window]
title = "demo"
width = 800
height = 600
vsync = false

[renderer]
queue_capacity = 256
max_particles = 64
general_target_divisor = 2
post_small_divisor = 4
post_large_divisor = 1
exhaustion_policy = "fail"
screen_width = 400
screen_height = 300

[engine]
tick_rate = 30.0
frame_limit = 120.0
profiling = true
loader_workers = 4
`
	c, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "demo", c.Window.Title)
	assert.Equal(t, 800, c.Window.Width)
	require.NotNil(t, c.Window.VSync)
	assert.False(t, *c.Window.VSync)
	assert.Equal(t, 256, c.Renderer.QueueCapacity)
	assert.Equal(t, 64, c.Renderer.MaxParticles)
	assert.Equal(t, 2, c.Renderer.GeneralTargetDivisor)
	assert.Equal(t, 1, c.Renderer.PostLargeDivisor)
	assert.Equal(t, target.PolicyFail, c.Renderer.Policy())
	assert.Equal(t, 400, c.Renderer.ScreenWidth)
	assert.Equal(t, 30.0, c.Engine.TickRate)
	assert.Equal(t, 120.0, c.Engine.FrameLimit)
	assert.True(t, c.Engine.Profiling)
	assert.Equal(t, 4, c.Engine.LoaderWorkers)
	assert.Equal(t, Default().Renderer.DrawCallCapacity, c.Renderer.DrawCallCapacity)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"syntax":         "[renderer\n",
		"unknown key":    "[renderer]\ndraw_calls = 3\n",
		"wrong type":     "[renderer]\ndraw_call_capacity = \"many\"\n",
		"bad policy":     "[renderer]\nexhaustion_policy = \"panic\"\n",
		"negative":       "[renderer]\nmax_particles = -1\n",
		"negative rate":  "[engine]\ntick_rate = -5.0\n",
		"negative width": "[window]\nwidth = -1\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("[renderer]\nexhaustion_policy = \"panic\"\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxy.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine]\nprofiling = true\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.True(t, c.Engine.Profiling)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
