package gameshare

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/dig"
)

var errorType = reflect.TypeFor[error]()

// DigPackage shares objects built by a dig container. Constructors are
// provided to dig; ShareWith asks dig to build every provided type and
// shares the results, so shared objects can depend on each other through
// constructor parameters.
type DigPackage struct {
	name      string
	container *dig.Container
	shares    []digShare
}

type digShare struct {
	typ reflect.Type
	sub string
}

var _ Sharable = (*DigPackage)(nil)

// NewDigPackage creates a package backed by a new dig container.
func NewDigPackage(name string, opts ...dig.Option) *DigPackage {
	return &DigPackage{
		name:      name,
		container: dig.New(opts...),
	}
}

// Container returns the underlying dig container, for providing values that
// are needed by constructors but should not be shared.
func (p *DigPackage) Container() *dig.Container {
	return p.container
}

// Provide registers a constructor. Every value it returns, except a
// trailing error, is shared under its declared type.
//
// Options that move the values away from their plain type (dig.Name,
// dig.Group, dig.As) are rejected: use ProvideKeyed for named values, or
// Container().Provide for values that should not be shared.
func (p *DigPackage) Provide(constructor any, opts ...dig.ProvideOption) error {
	types, err := constructorOutputs(constructor)
	if err != nil {
		return PackageError{Package: p.name, Cause: err}
	}

	if err := checkProvideOptions(opts); err != nil {
		return PackageError{Package: p.name, Cause: err}
	}

	if err := p.container.Provide(constructor, opts...); err != nil {
		return PackageError{Package: p.name, Cause: err}
	}

	for _, t := range types {
		p.shares = append(p.shares, digShare{typ: t})
	}
	return nil
}

// ProvideKeyed registers a constructor returning a single value and shares
// that value under (type, sub). Inside dig the value is named sub.
func (p *DigPackage) ProvideKeyed(constructor any, sub string) error {
	if sub == "" {
		return PackageError{Package: p.name, Cause: ArgumentError{Argument: "sub", Reason: "sub key cannot be empty"}}
	}

	types, err := constructorOutputs(constructor)
	if err != nil {
		return PackageError{Package: p.name, Cause: err}
	}
	if len(types) != 1 {
		return PackageError{
			Package: p.name,
			Cause:   fmt.Errorf("keyed constructor must return exactly one value, got %d", len(types)),
		}
	}

	if err := p.container.Provide(constructor, dig.Name(sub)); err != nil {
		return PackageError{Package: p.name, Cause: err}
	}

	p.shares = append(p.shares, digShare{typ: types[0], sub: sub})
	return nil
}

// ShareWith builds every provided value and shares it with g.
func (p *DigPackage) ShareWith(g *GameShare) error {
	for _, s := range p.shares {
		obj, err := p.build(s)
		if err != nil {
			return PackageError{Package: p.name, Cause: err}
		}

		if s.sub == "" {
			err = g.AddSharedObjectAs(obj, s.typ)
		} else {
			err = g.AddKeyedSharedObject(obj, s.typ, s.sub)
		}
		if err != nil {
			return PackageError{Package: p.name, Cause: err}
		}
	}

	return nil
}

// build invokes the container with a function taking exactly the wanted
// value. Named values are requested through a dig.In parameter object.
func (p *DigPackage) build(s digShare) (any, error) {
	paramType := s.typ
	if s.sub != "" {
		paramType = reflect.StructOf([]reflect.StructField{
			{Name: "In", Type: reflect.TypeFor[dig.In](), Anonymous: true},
			{Name: "Value", Type: s.typ, Tag: reflect.StructTag(fmt.Sprintf(`name:"%s"`, s.sub))},
		})
	}

	var out any
	fn := reflect.MakeFunc(
		reflect.FuncOf([]reflect.Type{paramType}, nil, false),
		func(args []reflect.Value) []reflect.Value {
			v := args[0]
			if s.sub != "" {
				v = v.Field(1)
			}
			out = v.Interface()
			return nil
		},
	)

	if err := p.container.Invoke(fn.Interface()); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("constructor for %s produced nil", Key{Type: s.typ, Sub: s.sub})
	}
	return out, nil
}

// rekeyingOptions are the String prefixes of the dig options that provide a
// value under something other than its type.
var rekeyingOptions = []string{"Name(", "Group(", "As("}

func checkProvideOptions(opts []dig.ProvideOption) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		desc := fmt.Sprint(opt)
		for _, prefix := range rekeyingOptions {
			if strings.HasPrefix(desc, prefix) {
				return ArgumentError{
					Argument: "option",
					Reason:   fmt.Sprintf("%s cannot be shared under its type; use ProvideKeyed or Container().Provide", desc),
				}
			}
		}
	}
	return nil
}

func constructorOutputs(constructor any) ([]reflect.Type, error) {
	if constructor == nil {
		return nil, errors.New("constructor cannot be nil")
	}

	t := reflect.TypeOf(constructor)
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a function, got %s", t)
	}

	types := make([]reflect.Type, 0, t.NumOut())
	for i := 0; i < t.NumOut(); i++ {
		out := t.Out(i)
		if i == t.NumOut()-1 && out == errorType {
			continue
		}
		if dig.IsOut(out) {
			return nil, fmt.Errorf("constructor %s returns a dig.Out result object, which cannot be shared", t)
		}
		types = append(types, out)
	}

	if len(types) == 0 {
		return nil, fmt.Errorf("constructor %s returns no values to share", t)
	}
	return types, nil
}
