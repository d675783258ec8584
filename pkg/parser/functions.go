package parser

import (
	"sort"

	"tdop/interpreter-go/pkg/ast"
)

// FunctionTable maps function names to their definitions. A REPL session or
// a multi-file run keeps one table across parses; it has a single writer.
type FunctionTable struct {
	defs map[string]*ast.FunctionDefinition
}

func NewFunctionTable() *FunctionTable {
	return &FunctionTable{defs: make(map[string]*ast.FunctionDefinition)}
}

func (t *FunctionTable) Lookup(name string) (*ast.FunctionDefinition, bool) {
	def, ok := t.defs[name]
	return def, ok
}

// Define registers def, replacing any earlier definition of the same name.
// Calls parsed earlier keep pointing at the definition they resolved to.
func (t *FunctionTable) Define(def *ast.FunctionDefinition) {
	t.defs[def.Name] = def
}

func (t *FunctionTable) Names() []string {
	names := make([]string, 0, len(t.defs))
	for name := range t.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
