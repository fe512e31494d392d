package gameshare

import "sync/atomic"

// defaultGameShare holds the default GameShare.
var defaultGameShare atomic.Pointer[GameShare]

// SetDefault sets the default GameShare used by the package-level helpers.
// This is similar to slog.SetDefault. Pass nil to remove the default.
func SetDefault(g *GameShare) {
	defaultGameShare.Store(g)
}

// Default returns the current default GameShare, or nil if none is set.
func Default() *GameShare {
	return defaultGameShare.Load()
}

// InjectDefault injects the default GameShare's objects into target.
func InjectDefault(target any) error {
	g := Default()
	if g == nil {
		return ErrNoDefault
	}
	return g.InjectSharedObjects(target)
}
