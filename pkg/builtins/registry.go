package builtins

import (
	"sort"

	"tdop/interpreter-go/pkg/ast"
	"tdop/interpreter-go/pkg/runtime"
)

// Variadic is the arity of builtins that take any number of arguments.
const Variadic = ast.VariadicArity

// Builtin is a native function callable from scripts by name.
type Builtin struct {
	Name  string
	Arity int
	Impl  runtime.NativeFunc
}

// Registry maps builtin names to their implementations. The parser consults
// it when it meets an identifier.
type Registry struct {
	entries map[string]Builtin
}

func NewRegistry(builtins ...Builtin) *Registry {
	r := &Registry{entries: make(map[string]Builtin, len(builtins))}
	for _, b := range builtins {
		r.Register(b)
	}
	return r
}

// Register adds b, replacing any builtin with the same name.
func (r *Registry) Register(b Builtin) {
	r.entries[b.Name] = b
}

func (r *Registry) Lookup(name string) (Builtin, bool) {
	if r == nil {
		return Builtin{}, false
	}
	b, ok := r.entries[name]
	return b, ok
}

// Names lists the registered builtins in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns a registry holding puts, input and sum.
func Default() *Registry {
	return NewRegistry(
		Builtin{Name: "puts", Arity: Variadic, Impl: Puts},
		Builtin{Name: "input", Arity: 1, Impl: Input},
		Builtin{Name: "sum", Arity: Variadic, Impl: Sum},
	)
}
