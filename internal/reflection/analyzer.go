package reflection

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/junioryono/gameshare/internal/declaration"
)

// DefaultTagName is the struct tag key that marks injectable fields.
const DefaultTagName = "share"

// Analyzer performs reflection-based analysis of consumer struct types.
// It caches analysis results for performance.
type Analyzer struct {
	mu      sync.RWMutex
	tagName string
	cache   map[reflect.Type]*TypeInfo
}

// TypeInfo describes one struct type of a consumer hierarchy. Only what is
// declared directly on the type is listed; embedded types get their own
// TypeInfo when the walker reaches them.
type TypeInfo struct {
	Type reflect.Type

	// Members are the fields that carry an injection tag, in declaration order.
	Members []MemberInfo

	// Embedded are untagged embedded struct or pointer-to-struct fields.
	Embedded []EmbeddedInfo

	// Interfaces are untagged embedded interface fields.
	Interfaces []EmbeddedInfo
}

// MemberInfo describes a tagged field.
type MemberInfo struct {
	Name     string
	Index    int
	Type     reflect.Type
	Exported bool
	Tag      string           // raw tag value
	Spec     declaration.Spec // parsed tag, valid when Err is nil
	Err      error            // tag parse failure, reported when the member is injected
}

// EmbeddedInfo describes an embedded field the walker descends into.
type EmbeddedInfo struct {
	Name    string
	Index   int
	Type    reflect.Type
	Pointer bool // *T embedding
}

// New creates a new Analyzer reading the given tag key. An empty key falls
// back to DefaultTagName.
func New(tagName string) *Analyzer {
	if tagName == "" {
		tagName = DefaultTagName
	}

	return &Analyzer{
		tagName: tagName,
		cache:   make(map[reflect.Type]*TypeInfo),
	}
}

// TagName returns the struct tag key the analyzer reads.
func (a *Analyzer) TagName() string {
	return a.tagName
}

// Analyze returns the injection layout of a struct type.
func (a *Analyzer) Analyze(t reflect.Type) (*TypeInfo, error) {
	if t == nil {
		return nil, fmt.Errorf("type cannot be nil")
	}

	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected a struct type, got %v", t.Kind())
	}

	// Check cache first
	a.mu.RLock()
	if cached, ok := a.cache[t]; ok {
		a.mu.RUnlock()
		return cached, nil
	}
	a.mu.RUnlock()

	info := a.analyzeStruct(t)

	a.mu.Lock()
	if cached, ok := a.cache[t]; ok {
		info = cached
	} else {
		a.cache[t] = info
	}
	a.mu.Unlock()

	return info, nil
}

func (a *Analyzer) analyzeStruct(t reflect.Type) *TypeInfo {
	info := &TypeInfo{Type: t}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		value, tagged := field.Tag.Lookup(a.tagName)
		if tagged && value == declaration.Ignore {
			continue
		}

		if tagged {
			member := MemberInfo{
				Name:     field.Name,
				Index:    i,
				Type:     field.Type,
				Exported: field.IsExported(),
				Tag:      value,
			}
			member.Spec, member.Err = declaration.Parse(value)
			info.Members = append(info.Members, member)
			continue
		}

		if !field.Anonymous {
			continue
		}

		switch {
		case field.Type.Kind() == reflect.Struct:
			info.Embedded = append(info.Embedded, EmbeddedInfo{
				Name:  field.Name,
				Index: i,
				Type:  field.Type,
			})
		case field.Type.Kind() == reflect.Pointer && field.Type.Elem().Kind() == reflect.Struct:
			info.Embedded = append(info.Embedded, EmbeddedInfo{
				Name:    field.Name,
				Index:   i,
				Type:    field.Type.Elem(),
				Pointer: true,
			})
		case field.Type.Kind() == reflect.Interface:
			info.Interfaces = append(info.Interfaces, EmbeddedInfo{
				Name:  field.Name,
				Index: i,
				Type:  field.Type,
			})
		}
	}

	return info
}

// Clear clears the analysis cache.
func (a *Analyzer) Clear() {
	a.mu.Lock()
	a.cache = make(map[reflect.Type]*TypeInfo)
	a.mu.Unlock()
}

// CacheSize returns the number of cached analyses.
func (a *Analyzer) CacheSize() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.cache)
}
