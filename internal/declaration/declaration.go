// Package declaration parses the struct tag that marks a field as injectable.
//
// The tag value has three forms:
//
//	`share:""`                  // implicit: the field's own type is the key
//	`share:"Weapon"`            // main type
//	`share:"Weapon, Primary"`   // main type plus sub key
//
// Type names may be qualified and may carry a leading '*' (`*game.Engine`).
// Sub keys are identifiers, integers or single-quoted strings. The value "-"
// marks a field as explicitly ignored.
package declaration

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Ignore is the tag value that excludes a field from injection.
const Ignore = "-"

// Spec is the parsed, still unresolved form of a tag. Type names are kept as
// text; mapping them to reflect.Type is the registry's job.
type Spec struct {
	MainType string
	SubKey   string
}

// IsImplicit reports whether the tag named no explicit type.
func (s Spec) IsImplicit() bool {
	return s.MainType == "" && s.SubKey == ""
}

// tag is the participle grammar root.
type tag struct {
	Main *typeRef `parser:"@@"`
	Sub  *subKey  `parser:"( ',' @@ )?"`
}

type typeRef struct {
	Pointer bool     `parser:"@'*'?"`
	Parts   []string `parser:"@Ident ( '.' @Ident )*"`
}

func (r *typeRef) String() string {
	name := strings.Join(r.Parts, ".")
	if r.Pointer {
		return "*" + name
	}
	return name
}

type subKey struct {
	Ident  *string `parser:"  @Ident"`
	Int    *string `parser:"| @Int"`
	Quoted *string `parser:"| @String"`
}

func (k *subKey) String() string {
	switch {
	case k.Ident != nil:
		return *k.Ident
	case k.Int != nil:
		return *k.Int
	case k.Quoted != nil:
		q := *k.Quoted
		return strings.ReplaceAll(q[1:len(q)-1], `\'`, `'`)
	default:
		return ""
	}
}

var parser = participle.MustBuild[tag](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `'(\\'|[^'])*'`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Punct", Pattern: `[*.,]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
)

// Parse parses a tag value. An empty value is the implicit form.
func Parse(value string) (Spec, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Spec{}, nil
	}

	// A leading comma means a sub key with no main type.
	if strings.HasPrefix(value, ",") {
		return Spec{}, fmt.Errorf("sub key %q requires a main type", strings.TrimSpace(value[1:]))
	}

	parsed, err := parser.ParseString("", value)
	if err != nil {
		return Spec{}, fmt.Errorf("invalid declaration %q: %w", value, err)
	}

	spec := Spec{MainType: parsed.Main.String()}
	if parsed.Sub != nil {
		spec.SubKey = parsed.Sub.String()
		if spec.SubKey == "" {
			return Spec{}, fmt.Errorf("invalid declaration %q: empty sub key", value)
		}
	}

	return spec, nil
}
