package app

import (
	"fmt"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/plugin"
	"github.com/bethropolis/tidemark/plugins/autosave"
	"github.com/bethropolis/tidemark/plugins/tasks"
	"github.com/bethropolis/tidemark/plugins/wordcount"
)

// registerPlugins registers all built-in plugins with the manager.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	pluginConstructors := []func() plugin.Plugin{
		func() plugin.Plugin { return wordcount.New() },
		func() plugin.Plugin { return tasks.New() },
		func() plugin.Plugin { return autosave.New() },
	}

	var firstErr error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		logger.Debugf("Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			wrapped := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.Errorf("%v", wrapped)
			if firstErr == nil {
				firstErr = wrapped
			}
		}
	}
	return firstErr
}
