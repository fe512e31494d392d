package gameshare

import (
	"reflect"
)

// Binder is implemented by consumers that list their dependencies in code
// instead of (or in addition to) struct tags. BindShared is called once per
// injection pass, after the tagged fields have been resolved.
//
//	func (p *Player) BindShared(b *gameshare.Bindings) {
//	    gameshare.Bind(b, "engine", &p.engine, gameshare.Implicit())
//	    gameshare.Bind(b, "primary", &p.primary, gameshare.KeyedOf[Weapon]("Primary"))
//	    gameshare.BindFunc(b, "Health", p.SetHealth, gameshare.Implicit())
//	}
type Binder interface {
	BindShared(b *Bindings)
}

// Bindings collects the explicit members of a Binder.
type Bindings struct {
	bindings []binding
}

type binding struct {
	name   string
	typ    reflect.Type
	decl   Declaration
	err    error
	assign func(any)
}

func (b binding) member() member {
	m := member{
		name: b.name,
		typ:  b.typ,
		declare: func() (Declaration, error) {
			if b.err != nil {
				return Declaration{}, b.err
			}
			return b.decl, nil
		},
	}
	if b.assign != nil {
		m.assign = func(v reflect.Value) {
			b.assign(v.Interface())
		}
	}
	return m
}

// Len returns the number of bound members.
func (b *Bindings) Len() int {
	return len(b.bindings)
}

// Bind declares that *dst receives the shared object selected by decl.
func Bind[T any](b *Bindings, name string, dst *T, decl Declaration) {
	bnd := binding{
		name: name,
		typ:  reflect.TypeFor[T](),
		decl: decl,
	}
	if dst == nil {
		bnd.err = ArgumentError{Argument: "dst", Reason: "cannot be nil"}
	} else {
		bnd.assign = func(v any) { *dst = v.(T) }
	}
	b.bindings = append(b.bindings, bnd)
}

// BindFunc declares that set receives the shared object selected by decl.
// A nil set marks a read-only member: the dependency is still resolved, but
// nothing is written and no error is raised.
func BindFunc[T any](b *Bindings, name string, set func(T), decl Declaration) {
	bnd := binding{
		name: name,
		typ:  reflect.TypeFor[T](),
		decl: decl,
	}
	if set != nil {
		bnd.assign = func(v any) { set(v.(T)) }
	}
	b.bindings = append(b.bindings, bnd)
}
