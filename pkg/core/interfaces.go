package core

// Logger interface for raycaster logging
type Logger interface {
	Printf(format string, args ...interface{})
}
