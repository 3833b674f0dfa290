// internal/plugin/manager.go
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/tidemark/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string // Registration order; init and shutdown follow it
	active  map[string]bool
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
		active:  make(map[string]bool),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(p Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = p
	m.order = append(m.order, name)
	logger.DebugTagf("plugin", "Registered plugin '%s'", name)
	return nil
}

// InitializePlugins calls Initialize on every registered plugin. A failing
// plugin is logged and left inactive; the others still start.
func (m *Manager) InitializePlugins(api EditorAPI) {
	m.mu.RLock()
	toInit := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		toInit = append(toInit, m.plugins[name])
	}
	m.mu.RUnlock()

	logger.Infof("Plugin Manager: Initializing %d plugins...", len(toInit))
	for _, p := range toInit {
		if err := p.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", p.Name(), err)
			continue
		}
		m.mu.Lock()
		m.active[p.Name()] = true
		m.mu.Unlock()
		logger.DebugTagf("plugin", "Initialized plugin '%s'", p.Name())
	}
}

// ShutdownPlugins calls Shutdown on active plugins in reverse order.
func (m *Manager) ShutdownPlugins() {
	m.mu.Lock()
	var toStop []Plugin
	for i := len(m.order) - 1; i >= 0; i-- {
		name := m.order[i]
		if m.active[name] {
			toStop = append(toStop, m.plugins[name])
			delete(m.active, name)
		}
	}
	m.mu.Unlock()

	for _, p := range toStop {
		if err := p.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", p.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}

// Active returns the sorted names of successfully initialized plugins.
func (m *Manager) Active() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.active))
	for name := range m.active {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
