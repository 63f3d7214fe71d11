package loader

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/Carmen-Shannon/oxy-gles/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/mrf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const glowDoc = `{
	"Id": "glow",
	"ToolName": "OxyMrfExporter",
	"LeftShiftBits": 16,
	"Passes": [{
		"Id": "main", "Target": 0, "ClearMode": 0, "ClearColor": [0, 0, 0, 0],
		"ModelType": 1, "ParticleCount": 0, "CullingMode": 0, "TextureType": 0,
		"BlendMode": 2, "DepthMask": 1, "DepthFunc": 0, "ColorMask": [1, 1, 1, 1],
		"VertexShader": "quad", "FragmentShader": "glow",
		"Uniforms": [{"Name": "u_strength", "Priority": 0, "Values": [98304]}]
	}]
}`

func newTestRenderer(t *testing.T) renderer.Renderer {
	t.Helper()
	r := renderer.NewRenderer(nil, renderer.WithDevice(gputest.NewDevice()), renderer.WithScreenSize(64, 64))
	_, err := r.RegisterShader("quad", "glow", "void main() {}", "void main() {}")
	require.NoError(t, err)
	return r
}

func TestLoadCompletesOnDrain(t *testing.T) {
	r := newTestRenderer(t)
	l := NewLoader(BackendTypeFile, WithRenderer(r), WithWorkers(2))

	l.Load("glow", []byte(glowDoc))
	l.Load("broken", []byte(`{"ToolName": "Other"}`))
	assert.Equal(t, 2, l.Pending())
	l.Wait()
	assert.Nil(t, l.Get("glow"))

	results := l.Drain()
	require.Len(t, results, 2)
	assert.Equal(t, 0, l.Pending())

	byName := map[string]Result{}
	for _, res := range results {
		byName[res.Name] = res
	}
	require.NoError(t, byName["glow"].Err)
	m := byName["glow"].Mrf
	require.NotNil(t, m)
	assert.Equal(t, mrf.StateReady, m.State())
	assert.Equal(t, r.Shaders().Lookup("quad_glow"), m.Program(0))
	assert.Same(t, m, l.Get("glow"))

	assert.ErrorIs(t, byName["broken"].Err, mrf.ErrToolName)
	assert.Nil(t, byName["broken"].Mrf)
	assert.Nil(t, l.Get("broken"))

	assert.Empty(t, l.Drain())
	assert.Len(t, l.Mrfs(), 1)
}

func TestLoadFileBackends(t *testing.T) {
	r := newTestRenderer(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "glow.json"), []byte(glowDoc), 0o644))
	files := NewLoader(BackendTypeFile, WithRenderer(r))
	assert.Equal(t, "glow", files.LoadFile(filepath.Join(dir, "glow.json")))
	assert.Equal(t, "missing", files.LoadFile(filepath.Join(dir, "missing.json")))
	files.Wait()
	results := files.Drain()
	require.Len(t, results, 2)
	assert.NotNil(t, files.Get("glow"))
	assert.Nil(t, files.Get("missing"))

	fsys := fstest.MapFS{"fx/bloom.mrf": &fstest.MapFile{Data: []byte(glowDoc)}}
	embedded := NewLoader(BackendTypeFS, WithRenderer(r), WithFS(fsys))
	assert.Equal(t, "bloom", embedded.LoadFile("fx/bloom.mrf"))
	embedded.Wait()
	results = embedded.Drain()
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "glow", embedded.Get("bloom").ID())
}

func TestNewLoaderPreconditions(t *testing.T) {
	r := newTestRenderer(t)
	assert.Panics(t, func() { NewLoader(BackendTypeFile) })
	assert.Panics(t, func() { NewLoader(BackendTypeFS, WithRenderer(r)) })

	m := r.NewMrf()
	l := NewLoader(BackendTypeFile, WithRenderer(r), WithMrf("preset", m))
	assert.Same(t, m, l.Get("preset"))
}
