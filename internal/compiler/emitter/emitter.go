package emitter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/arnavsurve/pl0retro/internal/compiler/ast"
	"github.com/arnavsurve/pl0retro/internal/compiler/labels"
	"github.com/arnavsurve/pl0retro/internal/compiler/retro"
	"github.com/arnavsurve/pl0retro/internal/compiler/scope"
	"github.com/arnavsurve/pl0retro/internal/compiler/symbols"
	"github.com/arnavsurve/pl0retro/internal/compiler/token"
)

// DefaultEntry is the Retro word holding the main program body.
const DefaultEntry = "main"

// Config controls the names the emitter generates.
type Config struct {
	Prefix string // namespace of generated labels
	Entry  string // word defined for the program body and run at the end
}

func DefaultConfig() Config {
	return Config{Prefix: labels.DefaultPrefix, Entry: DefaultEntry}
}

// Map source operators to Retro words
var (
	additiveOps = map[token.TokenType]retro.Word{
		token.TokenPlus:  retro.Add,
		token.TokenMinus: retro.Subtract,
	}
	multiplicativeOps = map[token.TokenType]retro.Word{
		token.TokenAsterisk: retro.Multiply,
		token.TokenSlash:    retro.Divide,
		token.TokenPercent:  retro.Modulo,
		token.TokenMod:      retro.Modulo,
	}
	relationalOps = map[token.TokenType]retro.Word{
		token.TokenLess:         retro.Less,
		token.TokenLessEqual:    retro.LessEqual,
		token.TokenGreater:      retro.Greater,
		token.TokenGreaterEqual: retro.GreaterEqual,
		token.TokenEqual:        retro.Equal,
		token.TokenNotEqual:     retro.NotEqual,
	}
)

// Emitter translates a PL/0 AST into a literate Retro document in one
// traversal, writing tokens as it goes. The label counter lives as long as
// the Emitter; use a fresh Emitter per compilation for reproducible output.
// An Emitter is not safe for concurrent use.
type Emitter struct {
	cfg    Config
	labels *labels.Allocator
	scopes scope.Stack
	out    *retro.Writer
}

func NewEmitter(cfg Config) *Emitter {
	if cfg.Prefix == "" {
		cfg.Prefix = labels.DefaultPrefix
	}
	if cfg.Entry == "" {
		cfg.Entry = DefaultEntry
	}
	return &Emitter{
		cfg:    cfg,
		labels: labels.New(cfg.Prefix),
	}
}

// Emit writes the Retro translation of program to w. The first semantic
// error aborts the pass; whatever was written before it is incomplete.
func (e *Emitter) Emit(program *ast.Program, w io.Writer) error {
	if program == nil || program.Block == nil {
		return errors.New("emitter: nil program")
	}
	e.out = retro.NewWriter(w)
	e.scopes = scope.Stack{}

	if err := e.emitProgram(program); err != nil {
		return err
	}
	return e.out.Close()
}

// EmitString is Emit into a string.
func (e *Emitter) EmitString(program *ast.Program) (string, error) {
	var sb strings.Builder
	err := e.Emit(program, &sb)
	return sb.String(), err
}

// LabelCount reports how many labels this emitter has generated.
func (e *Emitter) LabelCount() int {
	return e.labels.Count()
}

// TokenCount reports how many tokens the last Emit wrote.
func (e *Emitter) TokenCount() int {
	if e.out == nil {
		return 0
	}
	return e.out.Tokens()
}

// --- Declarations ---

func (e *Emitter) emitProgram(program *ast.Program) error {
	e.scopes.Push("program")
	defer e.scopes.Pop()

	block := program.Block
	e.out.Section("Globals")
	if err := e.emitDeclarations(block); err != nil {
		return err
	}

	e.out.Section("Main")
	e.out.Define(e.cfg.Entry)
	if err := e.emitStatement(block.Body); err != nil {
		return err
	}
	e.out.End()
	e.out.Run(e.cfg.Entry)
	return nil
}

// emitDeclarations binds a block's constants, variables and procedures in
// the innermost scope, in that order.
func (e *Emitter) emitDeclarations(block *ast.Block) error {
	for _, c := range block.Constants {
		e.scopes.Define(c.Name.Value, c.Value)
	}

	for _, v := range block.Variables {
		label := e.labels.Variable(v.Name.Value)
		e.scopes.Update(v.Name.Value, label)
		e.out.Var(label)
	}

	for _, p := range block.Procedures {
		if err := e.emitProcedure(p); err != nil {
			return err
		}
	}
	return nil
}

// emitProcedure binds the procedure in the enclosing scope before its body
// is visited, so the body may call itself.
func (e *Emitter) emitProcedure(proc *ast.ProcDecl) error {
	if proc == nil || proc.Name == nil || proc.Block == nil {
		return errors.New("emitter: invalid procedure declaration")
	}
	name := proc.Name.Value
	label := e.labels.Procedure(name)
	// Bound before the body so it can recurse. Nested procedures see it too,
	// but a call from one of them comes before :label is defined in Retro.
	e.scopes.Declare(name, label)

	e.scopes.Push(name)
	defer e.scopes.Pop()

	e.out.Section("Procedure " + name)
	if err := e.emitDeclarations(proc.Block); err != nil {
		return err
	}
	if len(proc.Block.Procedures) > 0 {
		// Nested procedures opened their own sections
		e.out.Section("Procedure " + name)
	}

	e.out.Define(label)
	if err := e.emitStatement(proc.Block.Body); err != nil {
		return err
	}
	e.out.End()
	return nil
}

// --- Statements ---

func (e *Emitter) emitStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case nil:
		return nil
	case *ast.AssignStatement:
		return e.emitAssign(s)
	case *ast.CallStatement:
		return e.emitCall(s)
	case *ast.PrintStatement:
		if err := e.emitExpression(s.Value); err != nil {
			return err
		}
		e.out.Op(retro.PrintNumber)
		e.out.Op(retro.Newline)
		return nil
	case *ast.BeginStatement:
		for _, inner := range s.Statements {
			if err := e.emitStatement(inner); err != nil {
				return err
			}
		}
		return nil
	case *ast.IfStatement:
		return e.emitIf(s)
	case *ast.WhileStatement:
		return e.emitWhile(s)
	default:
		return fmt.Errorf("emitter: unknown statement type %T", stmt)
	}
}

// emitAssign evaluates the value before resolving the target, so the value
// is on the stack when the store is written.
func (e *Emitter) emitAssign(stmt *ast.AssignStatement) error {
	if err := e.emitExpression(stmt.Value); err != nil {
		return err
	}
	sym, err := e.resolve(stmt.Name)
	if err != nil {
		return err
	}
	if sym.Kind != symbols.Variable {
		return e.kindError(ErrInvalidAssignmentTarget, stmt.Name, sym, symbols.Variable)
	}
	e.out.Store(sym.Label)
	return nil
}

func (e *Emitter) emitCall(stmt *ast.CallStatement) error {
	sym, err := e.resolve(stmt.Name)
	if err != nil {
		return err
	}
	if sym.Kind != symbols.Procedure {
		return e.kindError(ErrInvalidCallTarget, stmt.Name, sym, symbols.Procedure)
	}
	e.out.Call(sym.Label)
	return nil
}

func (e *Emitter) emitIf(stmt *ast.IfStatement) error {
	if err := e.emitCondition(stmt.Condition); err != nil {
		return err
	}
	e.out.OpenQuote()
	if err := e.emitStatement(stmt.Body); err != nil {
		return err
	}
	e.out.CloseIf()
	return nil
}

// emitWhile writes the body before the condition: Retro's while runs the
// quotation and repeats it for as long as it leaves true on the stack. The
// body therefore runs once even when the condition starts out false.
func (e *Emitter) emitWhile(stmt *ast.WhileStatement) error {
	e.out.OpenQuote()
	if err := e.emitStatement(stmt.Body); err != nil {
		return err
	}
	if err := e.emitCondition(stmt.Condition); err != nil {
		return err
	}
	e.out.CloseWhile()
	return nil
}

// --- Conditions & Expressions ---

func (e *Emitter) emitCondition(cond ast.Condition) error {
	switch c := cond.(type) {
	case *ast.Comparison:
		if err := e.emitExpression(c.Left); err != nil {
			return err
		}
		if err := e.emitExpression(c.Right); err != nil {
			return err
		}
		op, ok := relationalOps[c.Operator]
		if !ok {
			return fmt.Errorf("emitter: %d:%d: unknown relational operator %q", c.Token.Line, c.Token.Column, c.Token.Literal)
		}
		e.out.Op(op)
		return nil
	case *ast.OddCondition:
		if err := e.emitExpression(c.Value); err != nil {
			return err
		}
		e.out.Literal(2)
		e.out.Op(retro.Modulo)
		e.out.Literal(0)
		e.out.Op(retro.NotEqual)
		return nil
	default:
		return fmt.Errorf("emitter: unknown condition type %T", cond)
	}
}

// emitExpression applies a leading minus to the first term alone, before
// any later term is folded in. Earlier translators negated after all terms,
// computing -(a + b) for -a + b.
func (e *Emitter) emitExpression(expr *ast.Expression) error {
	if expr == nil {
		return errors.New("emitter: nil expression")
	}
	if err := e.emitTerm(expr.First); err != nil {
		return err
	}
	if expr.Sign == token.TokenMinus {
		e.out.Op(retro.Negate)
	}
	for _, rest := range expr.Rest {
		if err := e.emitTerm(rest.Term); err != nil {
			return err
		}
		op, ok := additiveOps[rest.Operator.Type]
		if !ok {
			return fmt.Errorf("emitter: %d:%d: unknown additive operator %q", rest.Operator.Line, rest.Operator.Column, rest.Operator.Literal)
		}
		e.out.Op(op)
	}
	return nil
}

func (e *Emitter) emitTerm(term *ast.Term) error {
	if term == nil {
		return errors.New("emitter: nil term")
	}
	if err := e.emitFactor(term.First); err != nil {
		return err
	}
	for _, rest := range term.Rest {
		if err := e.emitFactor(rest.Factor); err != nil {
			return err
		}
		op, ok := multiplicativeOps[rest.Operator.Type]
		if !ok {
			return fmt.Errorf("emitter: %d:%d: unknown multiplicative operator %q", rest.Operator.Line, rest.Operator.Column, rest.Operator.Literal)
		}
		e.out.Op(op)
	}
	return nil
}

func (e *Emitter) emitFactor(factor ast.Factor) error {
	switch f := factor.(type) {
	case *ast.NumberLiteral:
		e.out.Literal(f.Value)
		return nil
	case *ast.Identifier:
		sym, err := e.resolve(f)
		if err != nil {
			return err
		}
		switch sym.Kind {
		case symbols.Variable:
			e.out.Fetch(sym.Label)
		case symbols.Constant:
			e.out.Literal(sym.Value)
		default:
			return e.kindError(ErrInvalidValueReference, f, sym, symbols.Variable, symbols.Constant)
		}
		return nil
	case *ast.Expression:
		return e.emitExpression(f)
	default:
		return fmt.Errorf("emitter: unknown factor type %T", factor)
	}
}

// --- Helpers ---

func (e *Emitter) resolve(id *ast.Identifier) (symbols.Symbol, error) {
	sym, _, err := e.scopes.Find(id.Value)
	if err != nil {
		return sym, &SemanticError{Err: ErrUnresolvedIdentifier, Name: id.Value, Pos: id.Token}
	}
	return sym, nil
}

func (e *Emitter) kindError(sentinel error, id *ast.Identifier, got symbols.Symbol, want ...symbols.Kind) error {
	return &SemanticError{Err: sentinel, Name: id.Value, Want: want, Got: got.Kind, Pos: id.Token}
}
