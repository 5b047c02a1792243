package logger

import "sync"

// components holds per-component overrides, keyed by component name
// ("graph", "task", "download", "config").
var components = struct {
	sync.RWMutex
	m map[string]*Logger
}{m: make(map[string]*Logger)}

// Register makes Get(component) return l. A nil l removes the override.
func Register(component string, l *Logger) {
	components.Lock()
	defer components.Unlock()
	if l == nil {
		delete(components.m, component)
		return
	}
	components.m[component] = l
}

// Get returns the logger registered for component, or the global logger
// tagged with the component name. Readers built without a logger use it.
func Get(component string) *Logger {
	components.RLock()
	l, ok := components.m[component]
	components.RUnlock()
	if ok {
		return l
	}
	return WithComponent(component)
}
