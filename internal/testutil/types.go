package testutil

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Common test errors
var (
	ErrTest        = errors.New("test error")
	ErrIntentional = errors.New("intentional error")
)

// Engine is a basic shared object.
type Engine struct {
	ID    string
	Power int
}

// NewEngine creates a new engine
func NewEngine(power int) *Engine {
	return &Engine{
		ID:    uuid.NewString(),
		Power: power,
	}
}

// Weapon is shared under sub keys, since a scene usually has several.
type Weapon interface {
	Name() string
	Damage() int
}

// Sword implements Weapon
type Sword struct {
	ID     string
	damage int
}

func NewSword(damage int) *Sword {
	return &Sword{ID: uuid.NewString(), damage: damage}
}

func (s *Sword) Name() string { return "sword" }
func (s *Sword) Damage() int  { return s.damage }

// Bow implements Weapon
type Bow struct {
	ID     string
	damage int
}

func NewBow(damage int) *Bow {
	return &Bow{ID: uuid.NewString(), damage: damage}
}

func (b *Bow) Name() string { return "bow" }
func (b *Bow) Damage() int  { return b.damage }

// Logger is a test logger interface
type Logger interface {
	Log(msg string)
	Messages() []string
}

// MemoryLogger implements Logger
type MemoryLogger struct {
	mu   sync.Mutex
	logs []string
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, msg)
}

func (l *MemoryLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.logs))
	copy(out, l.logs)
	return out
}

// Garage depends on an Engine; used with constructor-based sharing.
type Garage struct {
	ID     string
	Engine *Engine
}

func NewGarage(engine *Engine) *Garage {
	return &Garage{ID: uuid.NewString(), Engine: engine}
}
