package reflection

import (
	"reflect"
	"unsafe"
)

// Settable returns a settable view of v. Unexported fields of an addressable
// struct are reached through their address. The second result is false when
// v is not addressable.
func Settable(v reflect.Value) (reflect.Value, bool) {
	if v.CanSet() {
		return v, true
	}

	if !v.CanAddr() {
		return reflect.Value{}, false
	}

	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem(), true
}

// IsNil reports whether x is nil or a typed nil (nil pointer, map, slice,
// func, chan or interface wrapped in a non-nil interface).
func IsNil(x any) bool {
	if x == nil {
		return true
	}

	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	}

	return false
}

// StructValue unwraps interface and pointer layers until it reaches a struct.
// It returns false for nil pointers and non-struct values.
func StructValue(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() {
		switch v.Kind() {
		case reflect.Struct:
			return v, true
		case reflect.Interface, reflect.Pointer:
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		default:
			return reflect.Value{}, false
		}
	}

	return reflect.Value{}, false
}
