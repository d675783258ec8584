package parser

// BindingPower ranks how tightly an operator holds its operands. The
// expression loop keeps consuming infix operators while their power is
// strictly greater than the power it was called with.
type BindingPower int

const (
	Default BindingPower = iota
	Comma
	Assignment
	Logical
	Relational
	Additive
	Multiplicative
	Exponential
	Unary
	Call
	Member
	Primary
)

var bindingPowerNames = [...]string{
	Default:        "default",
	Comma:          "comma",
	Assignment:     "assignment",
	Logical:        "logical",
	Relational:     "relational",
	Additive:       "additive",
	Multiplicative: "multiplicative",
	Exponential:    "exponential",
	Unary:          "unary",
	Call:           "call",
	Member:         "member",
	Primary:        "primary",
}

func (bp BindingPower) String() string {
	if bp >= 0 && int(bp) < len(bindingPowerNames) {
		return bindingPowerNames[bp]
	}
	return "unknown"
}
