// internal/theme/manager.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/tidemark/internal/logger"
)

// Manager holds loaded themes and the active one.
type Manager struct {
	mutex       sync.RWMutex
	themes      map[string]*Theme // Lower-case name -> theme
	activeTheme *Theme
	themesDir   string
}

// DefaultThemesDir returns $XDG_CONFIG_HOME/tidemark/themes, or "" if the
// config dir is unknown.
func DefaultThemesDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		logger.Warnf("Could not find user config dir: %v", err)
		return ""
	}
	return filepath.Join(dir, "tidemark", "themes")
}

// NewManager registers the built-in themes and loads *.toml files from
// themesDir. A missing directory is not an error.
func NewManager(themesDir string) *Manager {
	m := &Manager{
		themes:    make(map[string]*Theme),
		themesDir: themesDir,
	}
	m.register(&TidemarkDark)
	m.register(&TidemarkLight)
	m.activeTheme = &TidemarkDark

	if themesDir != "" {
		if err := m.LoadThemesFromDir(); err != nil {
			logger.Errorf("Error loading themes from '%s': %v", themesDir, err)
		}
	}
	return m
}

func (m *Manager) register(t *Theme) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	key := strings.ToLower(t.Name)
	if existing, ok := m.themes[key]; ok && existing != t {
		logger.Infof("Theme '%s' replaced", t.Name)
	}
	m.themes[key] = t
	if m.activeTheme != nil && strings.ToLower(m.activeTheme.Name) == key {
		m.activeTheme = t
	}
}

// LoadThemesFromDir loads every .toml file in the themes directory.
func (m *Manager) LoadThemesFromDir() error {
	files, err := os.ReadDir(m.themesDir)
	if os.IsNotExist(err) {
		logger.Debugf("Theme directory '%s' does not exist", m.themesDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", m.themesDir, err)
	}

	loaded := 0
	for _, file := range files {
		if file.IsDir() || !strings.EqualFold(filepath.Ext(file.Name()), ".toml") {
			continue
		}
		if _, err := m.LoadFile(filepath.Join(m.themesDir, file.Name())); err != nil {
			logger.Warnf("%v", err)
			continue
		}
		loaded++
	}
	logger.Infof("Loaded %d custom themes from %s", loaded, m.themesDir)
	return nil
}

// LoadFile parses one theme file and registers it, replacing a theme with
// the same name. If that theme is active, the new version becomes active.
func (m *Manager) LoadFile(path string) (*Theme, error) {
	t, err := LoadThemeFromFile(path)
	if err != nil {
		return nil, err
	}
	m.register(t)
	return t, nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme activates a theme by name (case-insensitive).
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	t, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	if m.activeTheme != t {
		m.activeTheme = t
		logger.Infof("Active theme set to: %s", t.Name)
	}
	return nil
}

// ListThemes returns the sorted names of all loaded themes.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

// GetTheme returns a theme by name (case-insensitive).
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	t, ok := m.themes[strings.ToLower(name)]
	return t, ok
}
