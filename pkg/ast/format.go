package ast

import (
	"strconv"
	"strings"

	"tdop/interpreter-go/pkg/runtime"
)

// Format renders a node as an S-expression. A Program renders one top-level
// statement per line.
func Format(node Node) string {
	var b strings.Builder
	writeNode(&b, node)
	return b.String()
}

func writeNode(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Program:
		for i, stmt := range n.Statements {
			if i > 0 {
				b.WriteByte('\n')
			}
			writeNode(b, stmt)
		}
	case *Block:
		b.WriteString("(block")
		if n != nil {
			for _, stmt := range n.Statements {
				b.WriteByte(' ')
				writeNode(b, stmt)
			}
		}
		b.WriteByte(')')
	case *ExpressionStatement:
		writeNode(b, n.Expression)
	case *NumberLiteral:
		b.WriteString(runtime.FormatNumber(n.Value))
	case *StringLiteral:
		b.WriteString(strconv.Quote(n.Value))
	case *BooleanLiteral:
		b.WriteString(strconv.FormatBool(n.Value))
	case *NullLiteral:
		b.WriteString("null")
	case *Identifier:
		b.WriteString(n.Name)
	case *Assignment:
		writeList(b, string(n.Operator), n.Name, n.Value)
	case *UnaryOp:
		writeList(b, string(n.Operator), n.Operand)
	case *BinaryOp:
		writeList(b, n.Operator, n.Left, n.Right)
	case *ArgumentList:
		for i, arg := range n.Arguments {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeNode(b, arg)
		}
	case *FunctionCall:
		writeCall(b, "call", n.Name, n.Arguments)
	case *BuiltinCall:
		writeCall(b, "builtin", n.Name, n.Arguments)
	case *FunctionDefinition:
		b.WriteString("(func ")
		b.WriteString(n.Name)
		b.WriteString(" (")
		b.WriteString(strings.Join(n.Params, " "))
		b.WriteString(") ")
		writeNode(b, n.Body)
		b.WriteByte(')')
	case *Return:
		writeList(b, "return", n.Value)
	case *If:
		b.WriteString("(if")
		for i, cond := range n.Conditions {
			b.WriteByte(' ')
			if i > 0 {
				b.WriteString("(elif ")
			}
			writeNode(b, cond)
			b.WriteByte(' ')
			writeNode(b, n.Branches[i])
			if i > 0 {
				b.WriteByte(')')
			}
		}
		if n.Else != nil {
			b.WriteString(" (else ")
			writeNode(b, n.Else)
			b.WriteByte(')')
		}
		b.WriteByte(')')
	case *While:
		writeList(b, "while", n.Condition, n.Body)
	default:
		b.WriteString("<" + string(node.NodeType()) + ">")
	}
}

// writeList writes (head items...), where string items are written verbatim.
func writeList(b *strings.Builder, head string, items ...any) {
	b.WriteByte('(')
	b.WriteString(head)
	for _, item := range items {
		b.WriteByte(' ')
		switch v := item.(type) {
		case string:
			b.WriteString(v)
		case Node:
			writeNode(b, v)
		}
	}
	b.WriteByte(')')
}

func writeCall(b *strings.Builder, head, name string, args *ArgumentList) {
	b.WriteByte('(')
	b.WriteString(head)
	b.WriteByte(' ')
	b.WriteString(name)
	if args.Len() > 0 {
		b.WriteByte(' ')
		writeNode(b, args)
	}
	b.WriteByte(')')
}
