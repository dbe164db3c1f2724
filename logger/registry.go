package logger

import "sync"

// named holds loggers registered under a component name.
var named sync.Map // string -> *Logger

// Register stores l under name for later Get calls.
func Register(name string, l *Logger) {
	named.Store(name, l)
}

// Unregister removes the logger stored under name.
func Unregister(name string) {
	named.Delete(name)
}

// Get returns the logger registered under name, or the global logger tagged
// with name as its component.
func Get(name string) *Logger {
	if l, ok := named.Load(name); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(name)
}
