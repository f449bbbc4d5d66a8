package carpenter

import (
	"strings"

	"carpenter/domain"
	"carpenter/table"
)

// DefaultMethod is the builder method a Ref resolves to when none is named.
const DefaultMethod = "build"

// Builder configures the structure of a table: columns, source, sort,
// page size, driver overrides. It must not fetch data; materialization
// happens after the table is handed back.
type Builder interface {
	Build(t *table.Table) error
}

// BuilderFunc adapts a plain function to the Builder interface.
type BuilderFunc func(t *table.Table) error

func (f BuilderFunc) Build(t *table.Table) error { return f(t) }

// MethodBuilder is implemented by builders that expose named variants of
// their table besides the default one (a list view and a compact view of
// the same data, say). BuilderMethod returns the builder for a variant,
// or false when the variant does not exist.
type MethodBuilder interface {
	Builder
	BuilderMethod(name string) (Builder, bool)
}

// Ref points at a builder either directly (Func) or symbolically by
// registered type name plus method (Type, Method). Exactly one of the two
// forms is set; symbolic refs are resolved against the type registry at
// build time.
type Ref struct {
	Func   Builder
	Type   string
	Method string
}

// FuncRef wraps a builder function in a direct Ref.
func FuncRef(fn func(t *table.Table) error) Ref {
	return Ref{Func: BuilderFunc(fn)}
}

// BuilderRef wraps a builder value in a direct Ref.
func BuilderRef(b Builder) Ref {
	return Ref{Func: b}
}

// ParseRef parses a symbolic builder reference of the form "Type" or
// "Type@method", e.g. "reports.Passengers@compact".
func ParseRef(s string) (Ref, error) {
	name, method, found := strings.Cut(s, "@")
	if name == "" {
		return Ref{}, domain.ErrValidation("builder reference %q has no type name", s)
	}
	if found && method == "" {
		return Ref{}, domain.ErrValidation("builder reference %q has an empty method", s)
	}
	if !found {
		method = DefaultMethod
	}
	return Ref{Type: name, Method: method}, nil
}

// resolve turns a Ref into a concrete Builder using the type registry.
func (r Ref) resolve(types map[string]func() Builder) (Builder, error) {
	if r.Func != nil {
		return r.Func, nil
	}
	factory, ok := types[r.Type]
	if !ok {
		return nil, domain.ErrNotFound("builder type %q is not registered", r.Type)
	}
	b := factory()
	method := r.Method
	if method == "" || method == DefaultMethod {
		return b, nil
	}
	mb, ok := b.(MethodBuilder)
	if !ok {
		return nil, domain.ErrValidation("builder type %q has no named methods, cannot resolve %q", r.Type, method)
	}
	variant, ok := mb.BuilderMethod(method)
	if !ok {
		return nil, domain.ErrNotFound("builder type %q has no method %q", r.Type, method)
	}
	return variant, nil
}
