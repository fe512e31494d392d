package gameshare

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/junioryono/gameshare/internal/reflection"
)

// Injector writes shared objects into the members of consumer objects.
//
// A consumer is a non-nil pointer to a struct, a Binder, or both. Its
// hierarchy is walked depth first:
//
//  1. fields declared directly on the struct that carry the injection tag
//  2. embedded structs and non-nil embedded struct pointers, in order
//  3. embedded interface fields holding a non-nil struct pointer, in order
//
// Each struct type is processed at most once per pass, so a type reachable
// through two embedding paths is only injected through the first one.
//
// Embedded pointers and interface values point at objects outside the
// consumer, and the walk writes into them. Values the registry reports as
// shared objects (see Holder) are skipped; any other object reached this way
// must not be injected by two passes at once.
//
// Members are resolved first and written only when the pass succeeds. In
// strict mode the first failure aborts the pass and the consumer is left
// untouched; otherwise failing members are logged and skipped.
//
// An Injector is safe for concurrent use as long as the registry is.
type Injector struct {
	strict   bool
	logger   *slog.Logger
	metrics  *Metrics
	analyzer *reflection.Analyzer
}

// analyzers shares one analysis cache per tag name across injectors.
var analyzers sync.Map // map[string]*reflection.Analyzer

func analyzerFor(tagName string) *reflection.Analyzer {
	if cached, ok := analyzers.Load(tagName); ok {
		return cached.(*reflection.Analyzer)
	}
	actual, _ := analyzers.LoadOrStore(tagName, reflection.New(tagName))
	return actual.(*reflection.Analyzer)
}

// NewInjector creates an Injector. Strict mode is on by default.
func NewInjector(opts ...Option) *Injector {
	return newInjector(newOptions(opts))
}

func newInjector(o options) *Injector {
	return &Injector{
		strict:   o.strict,
		logger:   o.logger,
		metrics:  o.metrics,
		analyzer: analyzerFor(o.tagName),
	}
}

// Strict reports whether the injector runs in strict mode.
func (inj *Injector) Strict() bool {
	return inj.strict
}

// Inject is shorthand for NewInjector(opts...).Inject(target, reg).
func Inject(target any, reg Registry, opts ...Option) error {
	return NewInjector(opts...).Inject(target, reg)
}

// Inject resolves every declared member of target against reg and writes
// the results.
func (inj *Injector) Inject(target any, reg Registry) error {
	if target == nil {
		return ArgumentError{Argument: "target", Reason: "cannot be nil"}
	}
	if reflection.IsNil(reg) {
		return ArgumentError{Argument: "registry", Reason: "cannot be nil"}
	}

	v := reflect.ValueOf(target)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return ArgumentError{Argument: "target", Reason: fmt.Sprintf("nil %s", v.Type())}
	}

	binder, isBinder := target.(Binder)
	isStruct := v.Kind() == reflect.Pointer && v.Elem().Kind() == reflect.Struct
	if !isStruct && !isBinder {
		return ArgumentError{
			Argument: "target",
			Reason:   fmt.Sprintf("%s is not a pointer to a struct and does not implement Binder", v.Type()),
		}
	}

	start := time.Now()
	p := &pass{
		injector: inj,
		registry: reg,
		consumer: v.Type(),
		visited:  make(map[reflect.Type]struct{}),
	}

	err := p.run(v, isStruct, binder)
	inj.metrics.observePass(err, p, time.Since(start))
	if err != nil {
		return err
	}

	p.commit()

	inj.logger.Debug("injection pass complete",
		slog.String("consumer", formatType(p.consumer)),
		slog.Int("injected", len(p.writes)),
		slog.Int("skipped", p.skipped),
		slog.Int("failed", p.failed))

	return nil
}

// pass is the state of one Inject call.
type pass struct {
	injector *Injector
	registry Registry
	consumer reflect.Type
	visited  map[reflect.Type]struct{}
	writes   []pendingWrite
	skipped  int
	failed   int
}

// member is one injectable slot, whether found by tag or bound explicitly.
type member struct {
	name    string
	typ     reflect.Type
	declare func() (Declaration, error)
	assign  func(reflect.Value) // nil for read-only members
}

type pendingWrite struct {
	member member
	value  reflect.Value
}

func (p *pass) run(v reflect.Value, isStruct bool, binder Binder) error {
	if isStruct {
		if err := p.visit(v.Elem(), ""); err != nil {
			return err
		}
	}

	if binder != nil {
		b := &Bindings{}
		binder.BindShared(b)
		for _, bnd := range b.bindings {
			if err := p.process(bnd.member()); err != nil {
				return err
			}
		}
	}

	return nil
}

// visit processes one level of the hierarchy. v is an addressable struct.
func (p *pass) visit(v reflect.Value, path string) error {
	t := v.Type()
	if _, seen := p.visited[t]; seen {
		return nil
	}
	p.visited[t] = struct{}{}

	info, err := p.injector.analyzer.Analyze(t)
	if err != nil {
		return err
	}

	for _, m := range info.Members {
		if err := p.process(p.fieldMember(v, path, m)); err != nil {
			return err
		}
	}

	for _, e := range info.Embedded {
		fv := v.Field(e.Index)
		if e.Pointer {
			if fv.IsNil() || p.shared(fv) {
				continue
			}
			fv = fv.Elem()
		}
		if err := p.visit(fv, path+e.Name+"."); err != nil {
			return err
		}
	}

	for _, e := range info.Interfaces {
		fv := v.Field(e.Index)
		if fv.IsNil() || p.shared(fv) {
			continue
		}
		sv, ok := reflection.StructValue(fv)
		if !ok || !sv.CanAddr() {
			continue
		}
		if err := p.visit(sv, path+e.Name+"."); err != nil {
			return err
		}
	}

	return nil
}

// shared reports whether the value held by an embedded pointer or interface
// field is one of the registry's own objects. Those belong to the registry
// and are left alone.
func (p *pass) shared(fv reflect.Value) bool {
	holder, ok := p.registry.(Holder)
	if !ok {
		return false
	}
	if accessible, ok := reflection.Settable(fv); ok {
		fv = accessible
	}
	if fv.Kind() == reflect.Interface {
		fv = fv.Elem()
	}
	if !fv.CanInterface() {
		return false
	}
	return holder.Holds(fv.Interface())
}

func (p *pass) fieldMember(v reflect.Value, path string, m reflection.MemberInfo) member {
	return member{
		name: path + m.Name,
		typ:  m.Type,
		declare: func() (Declaration, error) {
			return p.tagDeclaration(m)
		},
		assign: func(value reflect.Value) {
			// Analyze only lists fields of addressable structs, so this cannot fail.
			dst, _ := reflection.Settable(v.Field(m.Index))
			dst.Set(value)
		},
	}
}

func (p *pass) tagDeclaration(m reflection.MemberInfo) (Declaration, error) {
	if m.Err != nil {
		return Declaration{}, DeclarationError{Declaration: m.Tag, Cause: m.Err}
	}
	if m.Spec.IsImplicit() {
		return Implicit(), nil
	}

	main, err := p.typeNamed(m)
	if err != nil {
		return Declaration{}, DeclarationError{Declaration: m.Tag, Cause: err}
	}

	if m.Spec.SubKey == "" {
		return MainType(main), nil
	}
	return Keyed(main, m.Spec.SubKey), nil
}

// typeNamed resolves the main type named by a tag. Names the registry does
// not know still resolve when they name the member's own type, so an
// interface can be named while only its implementations are shared.
func (p *pass) typeNamed(m reflection.MemberInfo) (reflect.Type, error) {
	name := m.Spec.MainType

	namer, ok := p.registry.(TypeNamer)
	if !ok {
		if own := memberTypeNamed(m.Type, name); own != nil {
			return own, nil
		}
		return nil, fmt.Errorf("registry %T cannot resolve type name %q", p.registry, name)
	}

	t, err := namer.TypeNamed(name)
	if err != nil && errors.Is(err, ErrNotFound) {
		if own := memberTypeNamed(m.Type, name); own != nil {
			return own, nil
		}
	}
	return t, err
}

// memberTypeNamed returns t when name is its full or short name, or that of
// its element for pointer members (`share:"Engine"` on a *Engine field).
func memberTypeNamed(t reflect.Type, name string) reflect.Type {
	if t.String() == name || formatType(t) == name {
		return t
	}
	if t.Kind() == reflect.Pointer {
		if elem := t.Elem(); elem.String() == name || formatType(elem) == name {
			return t
		}
	}
	return nil
}

// process resolves one member and stages its write.
func (p *pass) process(m member) error {
	decl, err := m.declare()
	if err != nil {
		return p.fail(m, Key{}, err)
	}

	key, err := decl.KeyFor(m.typ)
	if err != nil {
		return p.fail(m, key, err)
	}

	var obj any
	if key.Sub == "" {
		obj, err = p.registry.Lookup(key.Type, m.typ)
	} else {
		obj, err = p.registry.LookupKeyed(key.Type, key.Sub, m.typ)
	}
	if err != nil {
		return p.fail(m, key, err)
	}

	value := reflect.ValueOf(obj)
	if !value.IsValid() {
		return p.fail(m, key, NotFoundError{Key: key})
	}
	if !value.Type().AssignableTo(m.typ) {
		return p.fail(m, key, TypeMismatchError{Expected: m.typ, Actual: value.Type(), Context: "injection"})
	}

	if m.assign == nil {
		p.skipped++
		p.injector.logger.Debug("read-only member left unchanged",
			slog.String("consumer", formatType(p.consumer)),
			slog.String("member", m.name))
		return nil
	}

	p.writes = append(p.writes, pendingWrite{member: m, value: value})
	return nil
}

func (p *pass) fail(m member, key Key, cause error) error {
	err := InjectionError{
		Consumer:   p.consumer,
		Member:     m.name,
		Dependency: m.typ,
		Key:        key,
		Cause:      cause,
	}

	if p.injector.strict {
		return err
	}

	p.failed++
	p.injector.logger.Warn("shared object not injected",
		slog.String("consumer", formatType(p.consumer)),
		slog.String("member", m.name),
		slog.Any("error", err))
	return nil
}

func (p *pass) commit() {
	for _, w := range p.writes {
		w.member.assign(w.value)
		p.injector.logger.Debug("shared object injected",
			slog.String("consumer", formatType(p.consumer)),
			slog.String("member", w.member.name),
			slog.String("type", w.value.Type().String()))
	}
}
