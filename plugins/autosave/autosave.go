package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/plugin"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	// Default configuration values
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave periodically raises the save-current-note trigger while the note
// has unsaved edits. Whoever owns note storage acts on the trigger.
type AutoSave struct {
	api plugin.EditorAPI

	// Configuration
	mutex    sync.RWMutex // Protects the fields below
	enabled  bool
	interval time.Duration
	dirty    bool

	subs     []event.SubscriptionID
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new instance of the AutoSave plugin.
func New() *AutoSave {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads configuration and starts the auto-save loop if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	pluginName := p.Name()

	p.mutex.Lock()
	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	}
	if intervalVal, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		if strVal, isStr := intervalVal.(string); isStr {
			parsed, err := time.ParseDuration(strVal)
			switch {
			case err != nil:
				logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", pluginName, strVal, err, p.interval)
			case parsed <= 0:
				logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", pluginName, strVal, p.interval)
			default:
				p.interval = parsed
			}
		} else {
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, intervalVal, p.interval)
		}
	}
	isEnabled := p.enabled
	interval := p.interval
	p.mutex.Unlock()

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, isEnabled, interval)
	if !isEnabled {
		return nil
	}

	p.subs = append(p.subs,
		api.SubscribeEvent(event.TypeBufferModified, func(event.Event) bool {
			p.setDirty(true)
			return false
		}),
		// A manual save clears the pending state.
		api.SubscribeEvent(event.TypeNoteManagementSaveCurrentNoteTrigger, func(event.Event) bool {
			p.setDirty(false)
			return false
		}),
	)

	p.stopChan = make(chan struct{})
	p.wg.Add(1)
	go p.saverLoop(interval)
	return nil
}

// Shutdown signals the saver goroutine to stop and waits for it.
func (p *AutoSave) Shutdown() error {
	for _, id := range p.subs {
		p.api.UnsubscribeEvent(id)
	}
	p.subs = nil
	if p.stopChan != nil {
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
		logger.Debugf("%s: Saver goroutine stopped.", p.Name())
	}
	return nil
}

func (p *AutoSave) setDirty(v bool) {
	p.mutex.Lock()
	p.dirty = v
	p.mutex.Unlock()
}

// Dirty reports whether edits arrived since the last save trigger.
func (p *AutoSave) Dirty() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.dirty
}

func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.saveIfModified()
		case <-p.stopChan:
			return
		}
	}
}

// saveIfModified queues a save trigger for the UI loop. The trigger itself
// clears the dirty flag when it is dispatched.
func (p *AutoSave) saveIfModified() {
	if !p.Dirty() {
		return
	}
	logger.Debugf("%s: Requesting save of modified note", p.Name())
	p.api.QueueEvent(event.TypeNoteManagementSaveCurrentNoteTrigger, nil)
}
