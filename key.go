package gameshare

import (
	"fmt"
	"reflect"
)

// Key addresses a shared object: a type, optionally narrowed by a sub key.
type Key struct {
	Type reflect.Type
	Sub  string
}

// String formats the key as Type or Type[sub].
func (k Key) String() string {
	if k.Sub == "" {
		return formatType(k.Type)
	}
	return fmt.Sprintf("%s[%s]", formatType(k.Type), k.Sub)
}

// KeyOf returns the unkeyed Key for T.
func KeyOf[T any]() Key {
	return Key{Type: reflect.TypeFor[T]()}
}

// Declaration describes how one member resolves its dependency. The zero
// value is the implicit declaration.
type Declaration struct {
	main reflect.Type
	sub  string
}

// Implicit returns a declaration keyed by the member's own type.
func Implicit() Declaration {
	return Declaration{}
}

// MainType returns a declaration keyed by t.
func MainType(t reflect.Type) Declaration {
	return Declaration{main: t}
}

// MainTypeOf returns a declaration keyed by T.
func MainTypeOf[T any]() Declaration {
	return MainType(reflect.TypeFor[T]())
}

// Keyed returns a declaration keyed by the compound (t, sub).
func Keyed(t reflect.Type, sub string) Declaration {
	return Declaration{main: t, sub: sub}
}

// KeyedOf returns a declaration keyed by the compound (T, sub).
func KeyedOf[T any](sub string) Declaration {
	return Keyed(reflect.TypeFor[T](), sub)
}

// Mode reports which of the three resolution modes is active.
func (d Declaration) Mode() Mode {
	switch {
	case d.main == nil && d.sub == "":
		return ModeImplicit
	case d.sub == "":
		return ModeMainType
	default:
		return ModeMainSubType
	}
}

// MainType returns the explicit main type, nil for implicit declarations.
func (d Declaration) MainType() reflect.Type {
	return d.main
}

// SubKey returns the sub key, empty unless the mode is ModeMainSubType.
func (d Declaration) SubKey() string {
	return d.sub
}

// KeyFor computes the lookup key for a member of type memberType.
func (d Declaration) KeyFor(memberType reflect.Type) (Key, error) {
	if d.main == nil && d.sub != "" {
		return Key{}, DeclarationError{
			Declaration: d.String(),
			Cause:       fmt.Errorf("sub key %q requires a main type", d.sub),
		}
	}

	switch d.Mode() {
	case ModeImplicit:
		return Key{Type: memberType}, nil
	case ModeMainType:
		return Key{Type: d.main}, nil
	default:
		return Key{Type: d.main, Sub: d.sub}, nil
	}
}

// String formats the declaration the way it is written in a tag.
func (d Declaration) String() string {
	switch {
	case d.main == nil && d.sub == "":
		return ""
	case d.main == nil:
		return ", " + d.sub
	case d.sub == "":
		return d.main.String()
	default:
		return d.main.String() + ", " + d.sub
	}
}
