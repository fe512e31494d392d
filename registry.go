package gameshare

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/junioryono/gameshare/internal/reflection"
)

// Registry is the lookup side of a shared-object store, as consumed by the
// Injector. Implementations must be safe for concurrent lookups.
type Registry interface {
	// Lookup returns the object shared under serviceType, or the single
	// unkeyed object assignable to it. The result must be assignable to as.
	Lookup(serviceType, as reflect.Type) (any, error)

	// LookupKeyed returns the object shared under (mainType, sub). The result
	// must be assignable to as.
	LookupKeyed(mainType reflect.Type, sub string, as reflect.Type) (any, error)
}

// TypeNamer maps the type names written in struct tags to types. With
// registries that do not implement it, a tag can only name the member's own
// type.
type TypeNamer interface {
	TypeNamed(name string) (reflect.Type, error)
}

// Holder reports whether obj is one of the registry's shared objects. The
// injector does not descend into embedded values that are shared objects.
type Holder interface {
	Holds(obj any) bool
}

var (
	_ Registry  = (*GameShare)(nil)
	_ TypeNamer = (*GameShare)(nil)
	_ Holder    = (*GameShare)(nil)
)

// GameShare is the central registry of shared objects. Objects are added by
// discovery collaborators (see Sharable) before any injection pass runs.
//
// GameShare is safe for concurrent use.
type GameShare struct {
	id       string
	logger   *slog.Logger
	injector *Injector

	mu      sync.RWMutex
	entries map[Key]any
	order   []Key
	names   map[string][]reflect.Type
}

// NewGameShare creates an empty GameShare. The options also configure the
// injector used by InjectSharedObjects.
func NewGameShare(opts ...Option) *GameShare {
	o := newOptions(opts)
	id := uuid.NewString()

	return &GameShare{
		id:       id,
		logger:   o.logger.With(slog.String("game_share", id)),
		injector: newInjector(o),
		entries:  make(map[Key]any),
		names:    make(map[string][]reflect.Type),
	}
}

// ID returns the unique identifier of this GameShare.
func (g *GameShare) ID() string {
	return g.id
}

// Injector returns the injector used by InjectSharedObjects.
func (g *GameShare) Injector() *Injector {
	return g.injector
}

// AddSharedObject shares obj under its dynamic type.
func (g *GameShare) AddSharedObject(obj any) error {
	if reflection.IsNil(obj) {
		return ArgumentError{Argument: "object", Reason: "cannot be nil"}
	}
	return g.add(Key{Type: reflect.TypeOf(obj)}, obj)
}

// AddSharedObjectAs shares obj under t. obj must be assignable to t; use it
// to share a concrete value under an interface type.
func (g *GameShare) AddSharedObjectAs(obj any, t reflect.Type) error {
	if err := checkShareable(obj, t); err != nil {
		return err
	}
	return g.add(Key{Type: t}, obj)
}

// AddKeyedSharedObject shares obj under the compound key (mainType, sub).
func (g *GameShare) AddKeyedSharedObject(obj any, mainType reflect.Type, sub string) error {
	if sub == "" {
		return ArgumentError{Argument: "sub", Reason: "sub key cannot be empty"}
	}
	if err := checkShareable(obj, mainType); err != nil {
		return err
	}
	return g.add(Key{Type: mainType, Sub: sub}, obj)
}

func checkShareable(obj any, t reflect.Type) error {
	if reflection.IsNil(obj) {
		return ArgumentError{Argument: "object", Reason: "cannot be nil"}
	}
	if t == nil {
		return ArgumentError{Argument: "type", Reason: "cannot be nil"}
	}
	if actual := reflect.TypeOf(obj); !actual.AssignableTo(t) {
		return TypeMismatchError{Expected: t, Actual: actual, Context: "registration"}
	}
	return nil
}

func (g *GameShare) add(key Key, obj any) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.entries[key]; exists {
		return DuplicateKeyError{Key: key}
	}

	g.entries[key] = obj
	g.order = append(g.order, key)
	g.indexType(key.Type.String(), key.Type)
	g.indexType(formatType(key.Type), key.Type)

	g.logger.Debug("shared object added",
		slog.String("key", key.String()),
		slog.String("type", fmt.Sprintf("%T", obj)))

	return nil
}

// indexType must be called with g.mu held.
func (g *GameShare) indexType(name string, t reflect.Type) {
	if slices.Contains(g.names[name], t) {
		return
	}
	g.names[name] = append(g.names[name], t)
}

// AliasType makes t resolvable from struct tags under name.
func (g *GameShare) AliasType(name string, t reflect.Type) error {
	if strings.TrimSpace(name) == "" {
		return ArgumentError{Argument: "name", Reason: "cannot be empty"}
	}
	if t == nil {
		return ArgumentError{Argument: "type", Reason: "cannot be nil"}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.indexType(name, t)
	return nil
}

// TypeNamed resolves a tag type name. Both the full name (*game.Engine) and
// the short name (*Engine) of every shared type are known, plus any alias.
func (g *GameShare) TypeNamed(name string) (reflect.Type, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	types := g.names[name]
	switch len(types) {
	case 0:
		return nil, fmt.Errorf("%w: no shared type named %q", ErrNotFound, name)
	case 1:
		return types[0], nil
	default:
		return nil, AmbiguousError{Name: name, Candidates: slices.Clone(types)}
	}
}

// Lookup implements Registry.
func (g *GameShare) Lookup(serviceType, as reflect.Type) (any, error) {
	if serviceType == nil {
		return nil, ArgumentError{Argument: "type", Reason: "cannot be nil"}
	}
	if as == nil {
		as = serviceType
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	key := Key{Type: serviceType}
	if obj, ok := g.entries[key]; ok {
		return checkAssignable(obj, as)
	}

	var (
		match      any
		candidates []reflect.Type
	)
	for _, k := range g.order {
		if k.Sub != "" {
			continue
		}
		obj := g.entries[k]
		if !reflect.TypeOf(obj).AssignableTo(serviceType) {
			continue
		}
		if match != nil && sameObject(match, obj) {
			continue
		}
		if match == nil {
			match = obj
		}
		candidates = append(candidates, k.Type)
	}

	switch len(candidates) {
	case 0:
		return nil, NotFoundError{Key: key, Available: g.unkeyedTypes()}
	case 1:
		return checkAssignable(match, as)
	default:
		return nil, AmbiguousError{Type: serviceType, Candidates: candidates}
	}
}

// LookupKeyed implements Registry. An empty sub key is a plain Lookup.
func (g *GameShare) LookupKeyed(mainType reflect.Type, sub string, as reflect.Type) (any, error) {
	if sub == "" {
		return g.Lookup(mainType, as)
	}
	if mainType == nil {
		return nil, ArgumentError{Argument: "type", Reason: "cannot be nil"}
	}
	if as == nil {
		as = mainType
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	key := Key{Type: mainType, Sub: sub}
	obj, ok := g.entries[key]
	if !ok {
		return nil, NotFoundError{Key: key}
	}
	return checkAssignable(obj, as)
}

func checkAssignable(obj any, as reflect.Type) (any, error) {
	if actual := reflect.TypeOf(obj); !actual.AssignableTo(as) {
		return nil, TypeMismatchError{Expected: as, Actual: actual, Context: "lookup"}
	}
	return obj, nil
}

// sameObject reports whether a and b are the same shared instance, so one
// object shared under two types does not count as an ambiguity. Values that
// are not comparable at run time (a struct holding a slice in an interface
// field) are never the same.
func sameObject(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return va.Equal(vb)
}

// unkeyedTypes must be called with g.mu held.
func (g *GameShare) unkeyedTypes() []reflect.Type {
	types := make([]reflect.Type, 0, len(g.order))
	for _, k := range g.order {
		if k.Sub == "" {
			types = append(types, k.Type)
		}
	}
	return types
}

// Contains reports whether an object is shared directly under t.
func (g *GameShare) Contains(t reflect.Type) bool {
	return g.ContainsKeyed(t, "")
}

// ContainsKeyed reports whether an object is shared under (t, sub).
func (g *GameShare) ContainsKeyed(t reflect.Type, sub string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.entries[Key{Type: t, Sub: sub}]
	return ok
}

// Holds implements Holder.
func (g *GameShare) Holds(obj any) bool {
	if reflection.IsNil(obj) {
		return false
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, shared := range g.entries {
		if sameObject(shared, obj) {
			return true
		}
	}
	return false
}

// Count returns the number of shared objects.
func (g *GameShare) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// Keys returns every registered key, sorted by their string form.
func (g *GameShare) Keys() []Key {
	g.mu.RLock()
	keys := slices.Clone(g.order)
	g.mu.RUnlock()

	slices.SortFunc(keys, func(a, b Key) int {
		return strings.Compare(a.Type.String()+"\x00"+a.Sub, b.Type.String()+"\x00"+b.Sub)
	})
	return keys
}

// InjectSharedObjects injects this GameShare's objects into target using the
// GameShare's own injector.
func (g *GameShare) InjectSharedObjects(target any) error {
	return g.injector.Inject(target, g)
}
