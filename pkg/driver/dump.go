package driver

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"

	"tdop/interpreter-go/pkg/ast"
	"tdop/interpreter-go/pkg/lexer"
	"tdop/interpreter-go/pkg/runtime"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// DumpTokens writes the token stream as a table.
func DumpTokens(w io.Writer, tokens []lexer.Token) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Kind", "Text", "Line", "Column"})
	table.SetAutoWrapText(false)
	for i, tok := range tokens {
		table.Append([]string{
			fmt.Sprint(i),
			tok.Kind.String(),
			tok.Text,
			fmt.Sprint(tok.Line),
			fmt.Sprint(tok.Column),
		})
	}
	table.Render()
}

// DumpProgram writes the S-expression form of program. With verbose set
// it also writes the full node structure.
func DumpProgram(w io.Writer, program *ast.Program, verbose bool) {
	if program == nil {
		return
	}
	fmt.Fprintln(w, ast.Format(program))
	if verbose {
		dumpConfig.Fdump(w, program)
	}
}

// DumpEnvironment writes global variables and defined functions as a table.
func DumpEnvironment(w io.Writer, s *Session) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Kind", "Value"})
	table.SetAutoWrapText(false)
	env := s.Environment()
	vars := env.Snapshot()
	for _, name := range env.Keys() {
		v := vars[name]
		table.Append([]string{name, v.Kind().String(), runtime.Inspect(v)})
	}
	for _, name := range s.Functions().Names() {
		def, _ := s.Functions().Lookup(name)
		table.Append([]string{name, "function", fmt.Sprintf("func %s(%s)", name, strings.Join(def.Params, ", "))})
	}
	table.Render()
}
