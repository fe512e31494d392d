package testutil

// Scene is a ready-made set of shared objects.
type Scene struct {
	Engine    *Engine
	Primary   *Sword
	Secondary *Bow
	Logger    *MemoryLogger
}

// NewScene creates a scene with fresh objects.
func NewScene() *Scene {
	return &Scene{
		Engine:    NewEngine(100),
		Primary:   NewSword(12),
		Secondary: NewBow(7),
		Logger:    NewMemoryLogger(),
	}
}
