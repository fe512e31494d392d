package gameshare

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/junioryono/gameshare/internal/testutil"
)

// ============================================================================
// Shared Test Types
// ============================================================================

// TVehicle uses the implicit declaration only.
type TVehicle struct {
	Engine *testutil.Engine `share:""`
	Name   string
}

// TArmory resolves two weapons of the same type by sub key.
type TArmory struct {
	Primary   testutil.Weapon `share:"Weapon, Primary"`
	Secondary testutil.Weapon `share:"Weapon, Secondary"`
}

// TPlayer mixes the three declaration modes.
type TPlayer struct {
	Engine  *testutil.Engine `share:""`
	Weapon  testutil.Weapon  `share:"Weapon, Primary"`
	Logger  testutil.Logger  `share:"*MemoryLogger"`
	Ignored *testutil.Engine `share:"-"`
	Plain   *testutil.Engine
}

// TPrivate has unexported tagged fields.
type TPrivate struct {
	engine *testutil.Engine `share:""`
	weapon testutil.Weapon  `share:"Weapon, Secondary"`
}

// Diamond: TDiamond reaches TBase through TLeft and TRight.
type TBase struct {
	Engine *testutil.Engine `share:""`
}

type TLeft struct {
	TBase
	Primary testutil.Weapon `share:"Weapon, Primary"`
}

type TRight struct {
	TBase
	Secondary testutil.Weapon `share:"Weapon, Secondary"`
}

type TDiamond struct {
	TLeft
	TRight
}

// TWithPointerBase embeds its ancestor by pointer.
type TWithPointerBase struct {
	*TBase
	Logger testutil.Logger `share:"*MemoryLogger"`
}

// TComponent is reached through an embedded interface.
type TComponent interface {
	Component() string
}

type TRenderer struct {
	Logger testutil.Logger `share:"*MemoryLogger"`
}

func (r *TRenderer) Component() string { return "renderer" }

type TWithComponent struct {
	TComponent
	Engine *testutil.Engine `share:""`
}

// TStrictVictim has one resolvable and one missing member.
type TStrictVictim struct {
	Engine  *testutil.Engine `share:""`
	Missing *testutil.Garage `share:""`
}

// TBound lists its members in code.
type TBound struct {
	engine  *testutil.Engine
	primary testutil.Weapon
	seen    []string
}

func (b *TBound) BindShared(bs *Bindings) {
	Bind(bs, "engine", &b.engine, Implicit())
	Bind(bs, "primary", &b.primary, KeyedOf[testutil.Weapon]("Primary"))
	BindFunc(bs, "secondary", func(w testutil.Weapon) {
		b.seen = append(b.seen, w.Name())
	}, KeyedOf[testutil.Weapon]("Secondary"))
	BindFunc[*testutil.MemoryLogger](bs, "logger", nil, Implicit())
}

// ============================================================================
// Test Helpers
// ============================================================================

// newTestShare creates a GameShare holding a full testutil.Scene.
func newTestShare(t *testing.T, opts ...Option) (*GameShare, *testutil.Scene) {
	t.Helper()

	scene := testutil.NewScene()
	g := NewGameShare(opts...)

	require.NoError(t, g.AddSharedObject(scene.Engine))
	require.NoError(t, ShareKeyed[testutil.Weapon](g, scene.Primary, "Primary"))
	require.NoError(t, ShareKeyed[testutil.Weapon](g, scene.Secondary, "Secondary"))
	require.NoError(t, g.AddSharedObject(scene.Logger))

	return g, scene
}

// countingRegistry wraps a Registry and counts lookups per key.
type countingRegistry struct {
	*GameShare

	mu     sync.Mutex
	counts map[Key]int
}

func newCountingRegistry(g *GameShare) *countingRegistry {
	return &countingRegistry{GameShare: g, counts: make(map[Key]int)}
}

func (r *countingRegistry) Lookup(serviceType, as reflect.Type) (any, error) {
	r.count(Key{Type: serviceType})
	return r.GameShare.Lookup(serviceType, as)
}

func (r *countingRegistry) LookupKeyed(mainType reflect.Type, sub string, as reflect.Type) (any, error) {
	r.count(Key{Type: mainType, Sub: sub})
	return r.GameShare.LookupKeyed(mainType, sub, as)
}

func (r *countingRegistry) count(k Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[k]++
}

func (r *countingRegistry) Lookups(k Key) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[k]
}

// mapRegistry is a minimal Registry that cannot resolve type names.
type mapRegistry map[Key]any

func (m mapRegistry) Lookup(serviceType, as reflect.Type) (any, error) {
	return m.LookupKeyed(serviceType, "", as)
}

func (m mapRegistry) LookupKeyed(mainType reflect.Type, sub string, as reflect.Type) (any, error) {
	key := Key{Type: mainType, Sub: sub}
	obj, ok := m[key]
	if !ok {
		return nil, NotFoundError{Key: key}
	}
	return obj, nil
}
