package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/arnavsurve/pl0retro/internal/compiler/token"
)

// --- Interfaces ---
type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

// Condition is the test of an if or while statement.
type Condition interface {
	Node
	conditionNode()
}

// Factor is an operand of a term: a number, a name or a parenthesized
// expression.
type Factor interface {
	Node
	factorNode()
}

// --- Program ---
type Program struct {
	Token token.Token // first token of the program
	Block *Block
}

func (p *Program) TokenLiteral() string { return p.Token.Literal }
func (p *Program) String() string {
	if p.Block == nil {
		return "."
	}
	return p.Block.String() + "."
}

// Block holds the declaration groups of the program or a procedure,
// followed by its single body statement. Body is nil for an empty block.
type Block struct {
	Token      token.Token
	Constants  []*ConstDecl
	Variables  []*VarDecl
	Procedures []*ProcDecl
	Body       Statement
}

func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) String() string {
	var out bytes.Buffer
	if len(b.Constants) > 0 {
		parts := make([]string, len(b.Constants))
		for i, c := range b.Constants {
			parts[i] = c.String()
		}
		out.WriteString("const " + strings.Join(parts, ", ") + ";\n")
	}
	if len(b.Variables) > 0 {
		parts := make([]string, len(b.Variables))
		for i, v := range b.Variables {
			parts[i] = v.String()
		}
		out.WriteString("var " + strings.Join(parts, ", ") + ";\n")
	}
	for _, p := range b.Procedures {
		out.WriteString(p.String() + "\n")
	}
	out.WriteString(statementString(b.Body))
	return out.String()
}

// --- Declarations ---

// ConstDecl -> name = 10
type ConstDecl struct {
	Token token.Token // the name
	Name  *Identifier
	Value int64
}

func (cd *ConstDecl) TokenLiteral() string { return cd.Token.Literal }
func (cd *ConstDecl) String() string {
	return cd.Name.String() + " = " + strconv.FormatInt(cd.Value, 10)
}

// VarDecl -> one name of a var group
type VarDecl struct {
	Token token.Token // the name
	Name  *Identifier
}

func (vd *VarDecl) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDecl) String() string       { return vd.Name.String() }

// ProcDecl -> procedure name; block;
type ProcDecl struct {
	Token token.Token // 'procedure'
	Name  *Identifier
	Block *Block
}

func (pd *ProcDecl) TokenLiteral() string { return pd.Token.Literal }
func (pd *ProcDecl) String() string {
	var out bytes.Buffer
	out.WriteString("procedure " + pd.Name.String() + ";\n")
	if pd.Block != nil {
		out.WriteString(pd.Block.String())
	}
	out.WriteString(";")
	return out.String()
}

// --- Statements ---

// AssignStatement -> x := expression
type AssignStatement struct {
	Token token.Token // :=
	Name  *Identifier
	Value *Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) String() string {
	return as.Name.String() + " := " + as.Value.String()
}

// CallStatement -> call name
type CallStatement struct {
	Token token.Token // 'call'
	Name  *Identifier
}

func (cs *CallStatement) statementNode()       {}
func (cs *CallStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CallStatement) String() string       { return "call " + cs.Name.String() }

// PrintStatement -> print expression or ! expression
type PrintStatement struct {
	Token token.Token // 'print', 'write' or '!'
	Value *Expression
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PrintStatement) String() string       { return "print " + ps.Value.String() }

// BeginStatement -> begin s1; s2 end
// Empty statements are not recorded.
type BeginStatement struct {
	Token      token.Token // 'begin'
	Statements []Statement
}

func (bs *BeginStatement) statementNode()       {}
func (bs *BeginStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BeginStatement) String() string {
	parts := make([]string, len(bs.Statements))
	for i, s := range bs.Statements {
		parts[i] = statementString(s)
	}
	return "begin " + strings.Join(parts, "; ") + " end"
}

// IfStatement -> if condition then statement
type IfStatement struct {
	Token     token.Token // 'if'
	Condition Condition
	Body      Statement
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	return "if " + is.Condition.String() + " then " + statementString(is.Body)
}

// WhileStatement -> while condition do statement
type WhileStatement struct {
	Token     token.Token // 'while'
	Condition Condition
	Body      Statement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	return "while " + ws.Condition.String() + " do " + statementString(ws.Body)
}

func statementString(s Statement) string {
	if s == nil {
		return ""
	}
	return s.String()
}

// --- Conditions ---

// Comparison -> left op right, op one of = <> < <= > >=
type Comparison struct {
	Token    token.Token // the operator
	Operator token.TokenType
	Left     *Expression
	Right    *Expression
}

func (c *Comparison) conditionNode()       {}
func (c *Comparison) TokenLiteral() string { return c.Token.Literal }
func (c *Comparison) String() string {
	return c.Left.String() + " " + c.Token.Literal + " " + c.Right.String()
}

// OddCondition -> odd expression
type OddCondition struct {
	Token token.Token // 'odd'
	Value *Expression
}

func (oc *OddCondition) conditionNode()       {}
func (oc *OddCondition) TokenLiteral() string { return oc.Token.Literal }
func (oc *OddCondition) String() string       { return "odd " + oc.Value.String() }

// --- Expressions ---

// Expression -> [+|-] term {(+|-) term}
// Sign is token.TokenMinus, token.TokenPlus or empty when absent.
type Expression struct {
	Token token.Token // first token of the expression
	Sign  token.TokenType
	First *Term
	Rest  []*TermOp
}

// TermOp pairs an additive operator with the term it applies.
type TermOp struct {
	Operator token.Token
	Term     *Term
}

func (e *Expression) factorNode()          {}
func (e *Expression) TokenLiteral() string { return e.Token.Literal }
func (e *Expression) String() string {
	var out bytes.Buffer
	switch e.Sign {
	case token.TokenMinus:
		out.WriteString("-")
	case token.TokenPlus:
		out.WriteString("+")
	}
	out.WriteString(e.First.String())
	for _, op := range e.Rest {
		out.WriteString(" " + op.Operator.Literal + " " + op.Term.String())
	}
	return out.String()
}

// Term -> factor {(*|/|%) factor}
type Term struct {
	Token token.Token
	First Factor
	Rest  []*FactorOp
}

// FactorOp pairs a multiplicative operator with the factor it applies.
type FactorOp struct {
	Operator token.Token
	Factor   Factor
}

func (t *Term) TokenLiteral() string { return t.Token.Literal }
func (t *Term) String() string {
	var out bytes.Buffer
	out.WriteString(factorString(t.First))
	for _, op := range t.Rest {
		out.WriteString(" " + op.Operator.Literal + " " + factorString(op.Factor))
	}
	return out.String()
}

func factorString(f Factor) string {
	if e, ok := f.(*Expression); ok {
		return "(" + e.String() + ")"
	}
	return f.String()
}

// NumberLiteral -> 42
type NumberLiteral struct {
	Token token.Token
	Value int64
}

func (nl *NumberLiteral) factorNode()          {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) String() string       { return strconv.FormatInt(nl.Value, 10) }

// Identifier -> a name reference or declaration
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) factorNode()          {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }
