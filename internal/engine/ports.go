package engine

import "sync"

// SettingsStore persists raw key/value strings (birthday, end date, lifespan).
type SettingsStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Renderer paints a frame. It must not call back into the Dispatcher.
type Renderer interface {
	Render(frame Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame)

// Render calls f(frame).
func (f RendererFunc) Render(frame Frame) { f(frame) }

// Renderers fans a frame out to several renderers, in order.
type Renderers []Renderer

// Render forwards the frame to every non-nil renderer.
func (rs Renderers) Render(frame Frame) {
	for _, r := range rs {
		if r != nil {
			r.Render(frame)
		}
	}
}

// MemoryStore is an in-process SettingsStore, used by the terminal mode.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value stored under key and whether it was set.
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}
