package gameshare

import (
	"reflect"
)

// Sharable is implemented by discovery collaborators that add objects to a
// GameShare.
type Sharable interface {
	ShareWith(g *GameShare) error
}

// Injectable is implemented by consumers that wire themselves. InjectAll
// calls InjectShared instead of running the injector on them; the hook
// usually calls g.InjectSharedObjects and then does its own setup.
type Injectable interface {
	InjectShared(g *GameShare) error
}

// CollectShared asks every source to share its objects with g, in order.
// It stops at the first error.
func CollectShared(g *GameShare, sources ...Sharable) error {
	if g == nil {
		return ArgumentError{Argument: "game share", Reason: "cannot be nil"}
	}

	for _, src := range sources {
		if src == nil {
			continue
		}
		if err := src.ShareWith(g); err != nil {
			return err
		}
	}

	return nil
}

// InjectAll wires every target. Injectable targets run their own hook; all
// others go through InjectSharedObjects. It stops at the first error.
func (g *GameShare) InjectAll(targets ...any) error {
	for _, target := range targets {
		if inj, ok := target.(Injectable); ok {
			if err := inj.InjectShared(g); err != nil {
				return err
			}
			continue
		}
		if err := g.InjectSharedObjects(target); err != nil {
			return err
		}
	}
	return nil
}

// PackageOption is one sharing action within a package.
type PackageOption func(*GameShare) error

// Package is a named bundle of objects shared together.
//
//	var Weapons = gameshare.NewPackage("weapons",
//	    gameshare.KeyedObject[Weapon](sword, "Primary"),
//	    gameshare.KeyedObject[Weapon](bow, "Secondary"),
//	)
//
//	err := gameshare.CollectShared(gs, Weapons)
type Package struct {
	name    string
	options []PackageOption
}

var _ Sharable = (*Package)(nil)

// NewPackage creates a package with the given name and sharing actions.
func NewPackage(name string, options ...PackageOption) *Package {
	return &Package{name: name, options: options}
}

// Name returns the package name.
func (p *Package) Name() string {
	return p.name
}

// ShareWith runs every action in order. Errors are wrapped in PackageError.
func (p *Package) ShareWith(g *GameShare) error {
	for _, opt := range p.options {
		if opt == nil {
			continue
		}

		if err := opt(g); err != nil {
			return PackageError{Package: p.name, Cause: err}
		}
	}

	return nil
}

// Objects shares each object under its dynamic type.
func Objects(objs ...any) PackageOption {
	return func(g *GameShare) error {
		for _, obj := range objs {
			if err := g.AddSharedObject(obj); err != nil {
				return err
			}
		}
		return nil
	}
}

// Object shares v under T.
func Object[T any](v T) PackageOption {
	return func(g *GameShare) error {
		return Share(g, v)
	}
}

// ObjectAs shares obj under t.
func ObjectAs(obj any, t reflect.Type) PackageOption {
	return func(g *GameShare) error {
		return g.AddSharedObjectAs(obj, t)
	}
}

// KeyedObject shares v under (T, sub).
func KeyedObject[T any](v T, sub string) PackageOption {
	return func(g *GameShare) error {
		return ShareKeyed(g, v, sub)
	}
}

// Include nests other sources inside a package.
func Include(sources ...Sharable) PackageOption {
	return func(g *GameShare) error {
		return CollectShared(g, sources...)
	}
}
