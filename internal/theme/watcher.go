// internal/theme/watcher.go
package theme

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/utils"
	"github.com/fsnotify/fsnotify"
)

// ReloadDelay is how long the watcher waits for writes to settle.
const ReloadDelay = 150 * time.Millisecond

// Watch reloads theme files from the themes directory when they change and
// calls onReload with each reloaded theme. It blocks until ctx is done.
func (m *Manager) Watch(ctx context.Context, onReload func(*Theme)) error {
	if m.themesDir == "" {
		return fmt.Errorf("no themes directory configured")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating theme watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(m.themesDir); err != nil {
		return fmt.Errorf("watching '%s': %w", m.themesDir, err)
	}
	logger.DebugTagf("theme", "Watching %s", m.themesDir)

	debouncers := make(map[string]*utils.Debouncer)
	defer func() {
		for _, d := range debouncers {
			d.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".toml") {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path := ev.Name
			d, ok := debouncers[path]
			if !ok {
				d = &utils.Debouncer{}
				debouncers[path] = d
			}
			d.Debounce(ReloadDelay, func() {
				t, err := m.LoadFile(path)
				if err != nil {
					logger.Warnf("Theme reload failed: %v", err)
					return
				}
				logger.InfoTagf("theme", "Reloaded theme '%s'", t.Name)
				if onReload != nil {
					onReload(t)
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("Theme watcher error: %v", err)
		}
	}
}
