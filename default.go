package injector

import "sync"

var (
	defaultMu        sync.RWMutex
	defaultContainer *Container
)

// Default returns the process-wide container, creating it with default
// options on first use.
func Default() *Container {
	defaultMu.RLock()
	c := defaultContainer
	defaultMu.RUnlock()

	if c != nil {
		return c
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultContainer == nil {
		defaultContainer = New()
	}

	return defaultContainer
}

// SetDefault replaces the process-wide container. This is similar to
// slog.SetDefault. Passing nil makes the next call to Default create a
// fresh container.
func SetDefault(c *Container) {
	defaultMu.Lock()
	defaultContainer = c
	defaultMu.Unlock()
}
