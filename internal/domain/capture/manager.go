package capture

import "sync"

// Manager holds finished capture results keyed by capture ID so HTTP
// clients can start a pipeline run from a websocket recording.
type Manager struct {
	mu      sync.RWMutex
	results map[string]*Result
}

func NewManager() *Manager {
	return &Manager{results: make(map[string]*Result)}
}

func (m *Manager) Put(id string, result *Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[id] = result
}

func (m *Manager) Get(id string) (*Result, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result, ok := m.results[id]
	return result, ok
}

// Count reports how many finished captures are held.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.results)
}

// Remove drops a result once its run has consumed it.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.results, id)
}
