// Package assets handles loading and caching of viewer resources from disk.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/engine/shader/shaders"
	"github.com/Faultbox/modelview/internal/logger"
)

// Manager resolves resource paths against a list of search roots.
type Manager struct {
	roots []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager. Relative paths are tried against
// the working directory when no root matches.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddRoot adds a search directory.
// Roots are searched in reverse order (last added = highest priority).
func (m *Manager) AddRoot(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding root %s: not a directory", dir)
	}

	m.mu.Lock()
	m.roots = append(m.roots, dir)
	m.mu.Unlock()

	return nil
}

// Load reads a file, using the cache when possible.
func (m *Manager) Load(path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	data, err := m.read(path)
	if err != nil {
		return nil, err
	}
	m.cache.Set(path, data)
	return data, nil
}

func (m *Manager) read(path string) ([]byte, error) {
	if filepath.IsAbs(path) {
		return os.ReadFile(path)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		data, err := os.ReadFile(filepath.Join(m.roots[i], path))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("file not found: %s: %w", path, err)
	}
	return data, nil
}

// ShaderSources returns the vertex and fragment sources. An empty path
// selects the embedded default for that stage.
func (m *Manager) ShaderSources(vertexPath, fragmentPath string) (string, string, error) {
	vert, err := m.source(vertexPath, shaders.BasicVertex)
	if err != nil {
		return "", "", fmt.Errorf("vertex shader: %w", err)
	}
	frag, err := m.source(fragmentPath, shaders.BasicFragment)
	if err != nil {
		return "", "", fmt.Errorf("fragment shader: %w", err)
	}
	return vert, frag, nil
}

func (m *Manager) source(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := m.Load(path)
	if err != nil {
		return "", err
	}
	logger.Debug("shader source loaded", zap.String("path", path), zap.Int("bytes", len(data)))
	return string(data), nil
}

// Close drops all roots and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.roots = nil
	m.cache.Clear()
}

// Stats returns cache hits and misses.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
