package gameshare

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// Typed errors below match these through Is, so callers can use errors.Is
// without knowing the concrete type.

var (
	// ErrInvalidArgument is matched by errors for nil targets, nil registries
	// and malformed registration input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is matched when no shared object is registered for a key.
	ErrNotFound = errors.New("shared object not found")

	// ErrAmbiguous is matched when a lookup has several incompatible candidates.
	ErrAmbiguous = errors.New("ambiguous shared object")

	// ErrDuplicateKey is matched when a key is registered twice.
	ErrDuplicateKey = errors.New("duplicate shared object key")

	// ErrInvalidDeclaration is matched when an injection declaration cannot be
	// turned into a lookup key.
	ErrInvalidDeclaration = errors.New("invalid injection declaration")

	// ErrTypeMismatch is matched when a shared object is not assignable to the
	// member that requested it.
	ErrTypeMismatch = errors.New("shared object type mismatch")

	// ErrNoDefault is returned by the package-level helpers when no default
	// GameShare has been set.
	ErrNoDefault = errors.New("no default game share set")
)

var (
	_ error = ArgumentError{}
	_ error = NotFoundError{}
	_ error = AmbiguousError{}
	_ error = DuplicateKeyError{}
	_ error = TypeMismatchError{}
	_ error = DeclarationError{}
	_ error = InjectionError{}
	_ error = PackageError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// ArgumentError indicates a nil or otherwise unusable argument.
type ArgumentError struct {
	Argument string
	Reason   string
}

func (e ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Argument, e.Reason)
}

func (e ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NotFoundError indicates that nothing is registered under Key.
type NotFoundError struct {
	Key       Key
	Available []reflect.Type // registered types, used for suggestions
}

func (e NotFoundError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("shared object not found: %s", e.Key))

	if e.Key.Sub == "" {
		if similar := findSimilarTypes(e.Key.Type, e.Available); len(similar) > 0 {
			b.WriteString("\n\nDid you mean one of these?\n")
			for _, t := range similar {
				b.WriteString(fmt.Sprintf("  • %s\n", formatType(t)))
			}
		}
	}

	return b.String()
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AmbiguousError indicates that a lookup matched several registered objects.
// Name is set when the ambiguity comes from a type name rather than a type.
type AmbiguousError struct {
	Type       reflect.Type
	Name       string
	Candidates []reflect.Type
}

func (e AmbiguousError) Error() string {
	what := e.Name
	if e.Type != nil {
		what = formatType(e.Type)
	}

	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.String()
	}

	return fmt.Sprintf("ambiguous shared object %s: candidates [%s]", what, strings.Join(names, ", "))
}

func (e AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguous
}

// DuplicateKeyError indicates a key is already registered.
type DuplicateKeyError struct {
	Key Key
}

func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("shared object %s already registered (use a sub key to share several)", e.Key)
}

func (e DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// TypeMismatchError indicates a value is not assignable to the expected type.
type TypeMismatchError struct {
	Expected reflect.Type
	Actual   reflect.Type
	Context  string // "lookup", "registration", ...
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Context, formatType(e.Expected), formatType(e.Actual))
}

func (e TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// DeclarationError indicates an injection declaration could not be used.
type DeclarationError struct {
	Declaration string
	Cause       error
}

func (e DeclarationError) Error() string {
	return fmt.Sprintf("invalid declaration %q: %v", e.Declaration, e.Cause)
}

func (e DeclarationError) Unwrap() error {
	return e.Cause
}

func (e DeclarationError) Is(target error) bool {
	return target == ErrInvalidDeclaration
}

// InjectionError wraps a failure to inject one member with the context needed
// to find it: consumer type, member, requested dependency and lookup key.
type InjectionError struct {
	Consumer   reflect.Type
	Member     string
	Dependency reflect.Type
	Key        Key
	Cause      error
}

func (e InjectionError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("inject %s into %s.%s", formatType(e.Dependency), formatType(e.Consumer), e.Member))
	if e.Key.Type != nil && (e.Key.Type != e.Dependency || e.Key.Sub != "") {
		b.WriteString(fmt.Sprintf(" (key %s)", e.Key))
	}
	b.WriteString(fmt.Sprintf(": %v", e.Cause))
	return b.String()
}

func (e InjectionError) Unwrap() error {
	return e.Cause
}

// PackageError wraps errors from sharing a package.
type PackageError struct {
	Package string
	Cause   error
}

func (e PackageError) Error() string {
	return fmt.Sprintf("package %q: %v", e.Package, e.Cause)
}

func (e PackageError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err matches ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAmbiguous reports whether err matches ErrAmbiguous.
func IsAmbiguous(err error) bool {
	return errors.Is(err, ErrAmbiguous)
}

// IsInjectionError reports whether err carries an InjectionError.
func IsInjectionError(err error) bool {
	var ie InjectionError
	return errors.As(err, &ie)
}

// findSimilarTypes finds types with similar names using a simple substring/prefix match
func findSimilarTypes(target reflect.Type, available []reflect.Type) []reflect.Type {
	if target == nil || len(available) == 0 {
		return nil
	}

	targetName := target.String()
	targetShortName := shortName(target)

	var similar []reflect.Type
	for _, t := range available {
		if t == nil || t == target {
			continue
		}

		typeName := t.String()
		typeShortName := shortName(t)

		if targetShortName == typeShortName ||
			strings.Contains(strings.ToLower(typeName), strings.ToLower(targetShortName)) ||
			strings.Contains(strings.ToLower(targetName), strings.ToLower(typeShortName)) {
			similar = append(similar, t)
		}

		// Limit suggestions
		if len(similar) >= 5 {
			break
		}
	}

	return similar
}

// shortName strips pointers and the package qualifier: *game.Engine -> Engine.
func shortName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// formatType renders t without package qualifiers, at any depth:
// *game.Engine is *Engine and map[string][]*game.Sword is map[string][]*Sword.
// It is also the short name tags may use.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" {
		return t.Name()
	}

	switch t.Kind() {
	case reflect.Pointer:
		return "*" + formatType(t.Elem())
	case reflect.Slice:
		return "[]" + formatType(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), formatType(t.Elem()))
	case reflect.Map:
		return "map[" + formatType(t.Key()) + "]" + formatType(t.Elem())
	default:
		return t.String()
	}
}
