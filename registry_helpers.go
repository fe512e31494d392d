package gameshare

import (
	"fmt"
	"reflect"
)

// Share is a generic helper that shares v under T, which may be an
// interface implemented by v.
func Share[T any](g *GameShare, v T) error {
	return g.AddSharedObjectAs(v, reflect.TypeFor[T]())
}

// ShareKeyed is a generic helper that shares v under (T, sub).
func ShareKeyed[T any](g *GameShare, v T, sub string) error {
	return g.AddKeyedSharedObject(v, reflect.TypeFor[T](), sub)
}

// Resolve is a generic helper function that looks up a shared object as type T.
func Resolve[T any](reg Registry) (T, error) {
	var zero T

	serviceType := reflect.TypeFor[T]()

	instance, err := reg.Lookup(serviceType, serviceType)
	if err != nil {
		return zero, err
	}

	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("type assertion failed: expected %T, got %T", zero, instance)
	}

	return result, nil
}

// ResolveKeyed is a generic helper function that looks up the object shared
// under (T, sub).
func ResolveKeyed[T any](reg Registry, sub string) (T, error) {
	var zero T

	serviceType := reflect.TypeFor[T]()

	instance, err := reg.LookupKeyed(serviceType, sub, serviceType)
	if err != nil {
		return zero, err
	}

	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("type assertion failed: expected %T, got %T", zero, instance)
	}

	return result, nil
}

// MustResolve resolves a shared object and panics on error.
func MustResolve[T any](reg Registry) T {
	result, err := Resolve[T](reg)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", formatType(reflect.TypeFor[T]()), err))
	}
	return result
}

// MustResolveKeyed resolves a keyed shared object and panics on error.
func MustResolveKeyed[T any](reg Registry, sub string) T {
	result, err := ResolveKeyed[T](reg, sub)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s[%s]: %v", formatType(reflect.TypeFor[T]()), sub, err))
	}
	return result
}

// IsShared checks if an object is shared directly under T.
func IsShared[T any](g *GameShare) bool {
	return g.Contains(reflect.TypeFor[T]())
}

// IsSharedKeyed checks if an object is shared under (T, sub).
func IsSharedKeyed[T any](g *GameShare, sub string) bool {
	return g.ContainsKeyed(reflect.TypeFor[T](), sub)
}
