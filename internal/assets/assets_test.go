package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/modelview/internal/engine/shader/shaders"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestShaderSourcesDefaults(t *testing.T) {
	m := NewManager()

	vert, frag, err := m.ShaderSources("", "")
	require.NoError(t, err)
	assert.Equal(t, shaders.BasicVertex, vert)
	assert.Equal(t, shaders.BasicFragment, frag)
}

func TestShaderSourcesFromRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "custom.vert", "#version 410 core\nvoid main() {}\n")

	m := NewManager()
	require.NoError(t, m.AddRoot(dir))

	vert, frag, err := m.ShaderSources("custom.vert", "")
	require.NoError(t, err)
	assert.Contains(t, vert, "void main")
	assert.Equal(t, shaders.BasicFragment, frag)
}

func TestShaderSourcesMissing(t *testing.T) {
	m := NewManager()

	_, _, err := m.ShaderSources("", filepath.Join(t.TempDir(), "nope.frag"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fragment shader")
}

func TestRootPriority(t *testing.T) {
	low := t.TempDir()
	high := t.TempDir()
	writeFile(t, low, "a.txt", "low")
	writeFile(t, high, "a.txt", "high")

	m := NewManager()
	require.NoError(t, m.AddRoot(low))
	require.NoError(t, m.AddRoot(high))

	data, err := m.Load("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "high", string(data))
}

func TestAddRootRejectsFiles(t *testing.T) {
	path := writeFile(t, t.TempDir(), "file.txt", "x")

	m := NewManager()
	assert.Error(t, m.AddRoot(path))
	assert.Error(t, m.AddRoot(filepath.Join(t.TempDir(), "missing")))
}

func TestLoadCaches(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "shader.frag", "v1")

	m := NewManager()
	first, err := m.Load(path)
	require.NoError(t, err)

	// Later edits are not picked up once cached.
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	second, err := m.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "v1", string(first))
	assert.Equal(t, "v1", string(second))

	hits, misses := m.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	m.Close()
	hits, misses = m.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}
