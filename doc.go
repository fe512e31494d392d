// Package gameshare is a lightweight registry of shared objects with a
// reflection-driven injector for the components that consume them.
//
// # Overview
//
// A GameShare holds singleton-like objects keyed by type, and optionally by a
// sub key when several objects share a type. Discovery collaborators fill it
// before anything is injected; the Injector then writes the shared objects
// into the fields of consumer structs in one synchronous pass.
//
// # Basic Usage
//
//	gs := gameshare.NewGameShare()
//	gs.AddSharedObject(engine)
//	gameshare.ShareKeyed[Weapon](gs, sword, "Primary")
//	gameshare.ShareKeyed[Weapon](gs, bow, "Secondary")
//
//	type Player struct {
//	    Engine    *Engine `share:""`
//	    Primary   Weapon  `share:"Weapon, Primary"`
//	    Secondary Weapon  `share:"Weapon, Secondary"`
//	}
//
//	var p Player
//	if err := gs.InjectSharedObjects(&p); err != nil {
//	    log.Fatal(err)
//	}
//
// # Declarations
//
// The share tag has three forms:
//
//   - `share:""` resolves the field's own type.
//   - `share:"Weapon"` resolves the named main type; the result must still be
//     assignable to the field.
//   - `share:"Weapon, Primary"` resolves the compound (main type, sub key).
//
// Type names are the full (*game.Engine) or short (*Engine) names of the
// shared types, plus any name added with GameShare.AliasType. A name the
// GameShare does not know still resolves when it names the field's own type,
// so `share:"Logger"` works on a Logger field while only implementations of
// Logger are shared. `share:"-"` ignores a field.
//
// Consumers that prefer code over tags implement Binder and list their
// members with Bind and BindFunc. BindFunc with a nil setter declares a
// read-only member, which is resolved but never written.
//
// # Hierarchy
//
// The injector visits the consumer struct, then its embedded structs, then
// structs held by its embedded interface fields, depth first. A struct type
// reached twice is only processed the first time. Unexported tagged fields
// are written too.
//
// Embedded pointers and interface values lead to separate objects, which the
// injector writes into as if they were part of the consumer. A value that is
// itself shared in the GameShare is not entered, so injection never changes
// shared objects. Other objects reached this way are mutated, and two
// consumers embedding the same one must not be injected concurrently.
//
// # Failures
//
// By default the injector is strict: the first member that cannot be
// resolved aborts the pass with an InjectionError, and nothing is written.
// WithStrictMode(false) logs and skips such members instead.
//
// # Sharing
//
// Package, DigPackage and any other Sharable fill a GameShare through
// CollectShared. Consumers implementing Injectable are wired through their
// own hook by GameShare.InjectAll.
package gameshare
