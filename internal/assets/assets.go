// Package assets handles loading script resources from directories and packs.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Faultbox/animset/pkg/encoding"
	"github.com/Faultbox/animset/pkg/pk3"
)

// ErrNotFound is returned when no source has the requested resource.
var ErrNotFound = errors.New("resource not found")

// source is one place resources can come from.
type source interface {
	Read(path string) ([]byte, error)
	Close() error
	String() string
}

// Manager handles resource loading from directories and pk3 packs.
type Manager struct {
	sources []source
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a new resource manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddDir adds a directory to the search path.
// Sources are searched in reverse order (last added = highest priority).
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding directory %s: not a directory", dir)
	}

	m.mu.Lock()
	m.sources = append(m.sources, dirSource(dir))
	m.mu.Unlock()

	return nil
}

// AddArchive adds a pk3 pack to the search path.
func (m *Manager) AddArchive(path string) error {
	archive, err := pk3.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}

	m.mu.Lock()
	m.sources = append(m.sources, packSource{archive})
	m.mu.Unlock()

	return nil
}

// Sources returns a description of each source in search order.
func (m *Manager) Sources() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.sources))
	for i := len(m.sources) - 1; i >= 0; i-- {
		out = append(out, m.sources[i].String())
	}
	return out
}

// Load loads a resource. Missing resources yield an error wrapping ErrNotFound.
func (m *Manager) Load(path string) ([]byte, error) {
	key := encoding.NormalizePath(path)

	// Check cache first
	if data, ok := m.cache.Get(key); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	// Search sources in reverse order
	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := m.sources[i].Read(path)
		if err == nil {
			m.cache.Set(key, data)
			return data, nil
		}
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, pk3.ErrFileNotFound) {
			return nil, fmt.Errorf("loading %s from %s: %w", path, m.sources[i], err)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// LoadText loads a text resource and converts it to UTF-8.
func (m *Manager) LoadText(path string) ([]byte, error) {
	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}
	return encoding.DecodeText(data), nil
}

// Invalidate drops cached data so the next Load reads from the sources again.
func (m *Manager) Invalidate() {
	m.cache.Clear()
}

// Reload reopens every pack and drops cached data. A pack that fails to
// reopen keeps serving its previous contents and the first error is returned.
func (m *Manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for i, s := range m.sources {
		p, ok := s.(packSource)
		if !ok {
			continue
		}
		archive, err := pk3.Open(p.archive.Path())
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("reopening archive %s: %w", p.archive.Path(), err)
			}
			continue
		}
		p.Close()
		m.sources[i] = packSource{archive}
	}
	m.cache.Clear()

	return firstErr
}

// Close closes all packs.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.sources {
		s.Close()
	}
	m.sources = nil
	m.cache.Clear()
}

// dirSource reads loose files below a directory.
type dirSource string

func (d dirSource) Read(name string) ([]byte, error) {
	// Rooted clean keeps lookups inside the directory
	name = path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))
	data, err := os.ReadFile(filepath.Join(string(d), filepath.FromSlash(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

func (d dirSource) Close() error   { return nil }
func (d dirSource) String() string { return string(d) }

type packSource struct {
	archive *pk3.Archive
}

func (p packSource) Read(path string) ([]byte, error) { return p.archive.Read(path) }
func (p packSource) Close() error                     { return p.archive.Close() }
func (p packSource) String() string                   { return p.archive.Path() }

// Cache is a simple in-memory cache for loaded resources.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

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
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
