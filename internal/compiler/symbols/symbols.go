package symbols

import "fmt"

// Kind is the category a name is bound to.
type Kind int

const (
	Variable Kind = iota + 1
	Constant
	Procedure
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Constant:
		return "constant"
	case Procedure:
		return "procedure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Symbol is what a source name resolves to.
type Symbol struct {
	Kind Kind

	// Label is the generated storage label of a variable or the entry
	// label of a procedure.
	Label string

	// Value is the literal a constant substitutes to.
	Value int64
}

func NewVariable(label string) Symbol  { return Symbol{Kind: Variable, Label: label} }
func NewConstant(value int64) Symbol   { return Symbol{Kind: Constant, Value: value} }
func NewProcedure(label string) Symbol { return Symbol{Kind: Procedure, Label: label} }
