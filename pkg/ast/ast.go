package ast

import "tdop/interpreter-go/pkg/runtime"

type NodeType string

const (
	NodeProgram             NodeType = "Program"
	NodeBlock               NodeType = "Block"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeNumberLiteral       NodeType = "NumberLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeNullLiteral         NodeType = "NullLiteral"
	NodeIdentifier          NodeType = "Identifier"
	NodeAssignment          NodeType = "Assignment"
	NodeUnaryOp             NodeType = "UnaryOp"
	NodeBinaryOp            NodeType = "BinaryOp"
	NodeArgumentList        NodeType = "ArgumentList"
	NodeFunctionDefinition  NodeType = "FunctionDefinition"
	NodeFunctionCall        NodeType = "FunctionCall"
	NodeBuiltinCall         NodeType = "BuiltinCall"
	NodeReturn              NodeType = "Return"
	NodeIf                  NodeType = "If"
	NodeWhile               NodeType = "While"
)

// Position is the 1-based line and column of the first token of a node.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Node interface {
	NodeType() NodeType
	Pos() Position
	isNode()
}

type nodeImpl struct {
	Type     NodeType `json:"type"`
	Position Position `json:"position"`
}

func newNodeImpl(kind NodeType, pos Position) nodeImpl {
	return nodeImpl{Type: kind, Position: pos}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Pos() Position      { return n.Position }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Program and blocks

type Program struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram, Position{Line: 1, Column: 1}), Statements: statements}
}

type Block struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewBlock(pos Position, statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock, pos), Statements: statements}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement, expr.Pos()), Expression: expr}
}

// Literals

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(pos Position, value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral, pos), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(pos Position, value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral, pos), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(pos Position, value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral, pos), Value: value}
}

type NullLiteral struct {
	nodeImpl
	expressionMarker
}

func NewNullLiteral(pos Position) *NullLiteral {
	return &NullLiteral{nodeImpl: newNodeImpl(NodeNullLiteral, pos)}
}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(pos Position, name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier, pos), Name: name}
}

// Operators

type AssignmentOperator string

const (
	AssignmentAssign AssignmentOperator = "="
	AssignmentAdd    AssignmentOperator = "+="
	AssignmentSub    AssignmentOperator = "-="
	AssignmentMul    AssignmentOperator = "*="
	AssignmentDiv    AssignmentOperator = "/="
)

// BinaryOperator returns the arithmetic operator a compound assignment
// applies, or "" for plain assignment.
func (op AssignmentOperator) BinaryOperator() string {
	if op == AssignmentAssign {
		return ""
	}
	return string(op[:len(op)-1])
}

type Assignment struct {
	nodeImpl
	expressionMarker

	Name     string             `json:"name"`
	Operator AssignmentOperator `json:"operator"`
	Value    Expression         `json:"value"`
}

func NewAssignment(pos Position, name string, operator AssignmentOperator, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment, pos), Name: name, Operator: operator, Value: value}
}

type UnaryOperator string

const (
	UnaryOperatorNegate UnaryOperator = "-"
	UnaryOperatorNot    UnaryOperator = "not"
)

type UnaryOp struct {
	nodeImpl
	expressionMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryOp(pos Position, operator UnaryOperator, operand Expression) *UnaryOp {
	return &UnaryOp{nodeImpl: newNodeImpl(NodeUnaryOp, pos), Operator: operator, Operand: operand}
}

type BinaryOp struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryOp(pos Position, operator string, left, right Expression) *BinaryOp {
	return &BinaryOp{nodeImpl: newNodeImpl(NodeBinaryOp, pos), Operator: operator, Left: left, Right: right}
}

// Functions

type ArgumentList struct {
	nodeImpl

	Arguments []Expression `json:"arguments"`
}

func NewArgumentList(pos Position, arguments []Expression) *ArgumentList {
	return &ArgumentList{nodeImpl: newNodeImpl(NodeArgumentList, pos), Arguments: arguments}
}

func (a *ArgumentList) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Arguments)
}

// FunctionDefinition is both a statement in the tree and the entry the
// parser's function table points calls at. Body is nil while only the
// signature is known.
type FunctionDefinition struct {
	nodeImpl
	statementMarker

	Name   string   `json:"name"`
	Params []string `json:"params"`
	Body   *Block   `json:"body"`
}

func NewFunctionDefinition(pos Position, name string, params []string, body *Block) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition, pos), Name: name, Params: params, Body: body}
}

// FunctionCall is resolved at parse time: Function is the definition the
// name referred to when the call was parsed.
type FunctionCall struct {
	nodeImpl
	expressionMarker

	Name      string              `json:"name"`
	Arguments *ArgumentList       `json:"arguments"`
	Function  *FunctionDefinition `json:"-"`
}

func NewFunctionCall(pos Position, name string, arguments *ArgumentList, fn *FunctionDefinition) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall, pos), Name: name, Arguments: arguments, Function: fn}
}

// VariadicArity marks a builtin that accepts any number of arguments.
const VariadicArity = -1

type BuiltinCall struct {
	nodeImpl
	expressionMarker

	Name      string             `json:"name"`
	Impl      runtime.NativeFunc `json:"-"`
	Arity     int                `json:"arity"`
	Arguments *ArgumentList      `json:"arguments"`
}

func NewBuiltinCall(pos Position, name string, impl runtime.NativeFunc, arity int, arguments *ArgumentList) *BuiltinCall {
	return &BuiltinCall{nodeImpl: newNodeImpl(NodeBuiltinCall, pos), Name: name, Impl: impl, Arity: arity, Arguments: arguments}
}

// Control flow

type Return struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value"`
}

func NewReturn(pos Position, value Expression) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn, pos), Value: value}
}

// If keeps Conditions and Branches aligned: Branches[i] runs when
// Conditions[i] is the first truthy condition.
type If struct {
	nodeImpl
	statementMarker

	Conditions []Expression `json:"conditions"`
	Branches   []*Block     `json:"branches"`
	Else       *Block       `json:"else,omitempty"`
}

func NewIf(pos Position, conditions []Expression, branches []*Block, elseBlock *Block) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf, pos), Conditions: conditions, Branches: branches, Else: elseBlock}
}

type While struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      *Block     `json:"body"`
}

func NewWhile(pos Position, condition Expression, body *Block) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile, pos), Condition: condition, Body: body}
}
