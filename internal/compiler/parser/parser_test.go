package parser

import (
	"strings"
	"testing"

	"github.com/arnavsurve/pl0retro/internal/compiler/ast"
	"github.com/arnavsurve/pl0retro/internal/compiler/lexer"
	"github.com/arnavsurve/pl0retro/internal/compiler/token"
	"github.com/kr/pretty"
	"github.com/nalgeon/be"
)

// --- Test Helper Functions ---

// checkParserErrors is a common helper function for parser tests.
func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper() // Marks this function as a test helper
	errors := p.Errors()
	if len(errors) == 0 {
		return
	}

	t.Errorf("Parser has %d errors:", len(errors))
	for i, msg := range errors {
		t.Errorf("   Error %d: %q", i+1, msg)
	}
	t.FailNow() // Stop the test if there are parsing errors
}

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := NewParser(lexer.NewLexer(input))
	program := p.ParseProgram()
	checkParserErrors(t, p)
	return program
}

// --- Test Cases ---

func TestDeclarations(t *testing.T) {
	program := parse(t, `
const a = 1, b = -2;
var x, y;
procedure p;
  var z;
  z := a;
procedure q;
  call p;
x := b.`)

	block := program.Block
	if len(block.Constants) != 2 {
		t.Fatalf("block.Constants expected=2, got=%d", len(block.Constants))
	}
	be.Equal(t, block.Constants[0].Name.Value, "a")
	be.Equal(t, block.Constants[0].Value, int64(1))
	be.Equal(t, block.Constants[1].Value, int64(-2))

	if len(block.Variables) != 2 {
		t.Fatalf("block.Variables expected=2, got=%d", len(block.Variables))
	}
	be.Equal(t, block.Variables[1].Name.Value, "y")

	if len(block.Procedures) != 2 {
		t.Fatalf("block.Procedures expected=2, got=%d", len(block.Procedures))
	}
	p := block.Procedures[0]
	be.Equal(t, p.Name.Value, "p")
	be.Equal(t, p.TokenLiteral(), "procedure")
	be.Equal(t, len(p.Block.Variables), 1)
	if _, ok := p.Block.Body.(*ast.AssignStatement); !ok {
		t.Fatalf("p body is not *ast.AssignStatement. got=%T", p.Block.Body)
	}
	call, ok := block.Procedures[1].Block.Body.(*ast.CallStatement)
	if !ok {
		t.Fatalf("q body is not *ast.CallStatement. got=%T", block.Procedures[1].Block.Body)
	}
	be.Equal(t, call.Name.Value, "p")
}

func TestNestedProcedures(t *testing.T) {
	program := parse(t, `
procedure outer;
  procedure inner;
    print 1;
  call inner;
call outer.`)

	outer := program.Block.Procedures[0]
	if len(outer.Block.Procedures) != 1 {
		t.Fatalf("outer.Block.Procedures expected=1, got=%d", len(outer.Block.Procedures))
	}
	be.Equal(t, outer.Block.Procedures[0].Name.Value, "inner")
}

func TestStatements(t *testing.T) {
	program := parse(t, `
var x;
begin
  x := 0;
  while x < 10 do x := x + 1;
  if odd x then ! x;
  write x;
end.`)

	begin, ok := program.Block.Body.(*ast.BeginStatement)
	if !ok {
		t.Fatalf("body is not *ast.BeginStatement. got=%T", program.Block.Body)
	}
	// The trailing empty statement is dropped
	if len(begin.Statements) != 4 {
		t.Fatalf("begin.Statements expected=4, got=%d: %s", len(begin.Statements), pretty.Sprint(begin.Statements))
	}

	while, ok := begin.Statements[1].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("statement 1 is not *ast.WhileStatement. got=%T", begin.Statements[1])
	}
	cmp, ok := while.Condition.(*ast.Comparison)
	if !ok {
		t.Fatalf("while condition is not *ast.Comparison. got=%T", while.Condition)
	}
	be.Equal(t, cmp.Operator, token.TokenLess)

	ifStmt, ok := begin.Statements[2].(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement 2 is not *ast.IfStatement. got=%T", begin.Statements[2])
	}
	if _, ok := ifStmt.Condition.(*ast.OddCondition); !ok {
		t.Fatalf("if condition is not *ast.OddCondition. got=%T", ifStmt.Condition)
	}
	print1, ok := ifStmt.Body.(*ast.PrintStatement)
	if !ok {
		t.Fatalf("if body is not *ast.PrintStatement. got=%T", ifStmt.Body)
	}
	be.Equal(t, print1.TokenLiteral(), "!")

	print2, ok := begin.Statements[3].(*ast.PrintStatement)
	if !ok {
		t.Fatalf("statement 3 is not *ast.PrintStatement. got=%T", begin.Statements[3])
	}
	be.Equal(t, print2.TokenLiteral(), "write")
}

func TestExpressionShape(t *testing.T) {
	program := parse(t, `var x; x := -2 + 3 * (x - 1) mod 4.`)

	assign := program.Block.Body.(*ast.AssignStatement)
	expr := assign.Value
	be.Equal(t, expr.Sign, token.TokenMinus)
	be.Equal(t, len(expr.Rest), 1)
	be.Equal(t, expr.Rest[0].Operator.Type, token.TokenPlus)

	term := expr.Rest[0].Term
	if len(term.Rest) != 2 {
		t.Fatalf("term.Rest expected=2, got=%d: %# v", len(term.Rest), pretty.Formatter(term))
	}
	be.Equal(t, term.Rest[0].Operator.Type, token.TokenAsterisk)
	be.Equal(t, term.Rest[1].Operator.Type, token.TokenMod)

	inner, ok := term.Rest[0].Factor.(*ast.Expression)
	if !ok {
		t.Fatalf("parenthesized factor is not *ast.Expression. got=%T", term.Rest[0].Factor)
	}
	be.Equal(t, inner.String(), "x - 1")
}

func TestRelationalOperators(t *testing.T) {
	tests := []struct {
		op   string
		want token.TokenType
	}{
		{"=", token.TokenEqual},
		{"#", token.TokenNotEqual},
		{"<>", token.TokenNotEqual},
		{"<", token.TokenLess},
		{"<=", token.TokenLessEqual},
		{">", token.TokenGreater},
		{">=", token.TokenGreaterEqual},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			program := parse(t, "if 1 "+tt.op+" 2 then print 1.")
			cond := program.Block.Body.(*ast.IfStatement).Condition.(*ast.Comparison)
			be.Equal(t, cond.Operator, tt.want)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	input := `const n = 3;
var x;
procedure p;
begin x := x * 2 end;
begin x := -n + (1 - 2); call p; while x > 0 do x := x - 1 end.`

	first := parse(t, input)
	second := parse(t, first.String())
	if diff := pretty.Diff(first.String(), second.String()); len(diff) > 0 {
		t.Fatalf("String() is not stable:\n%s", strings.Join(diff, "\n"))
	}
}

func TestEmptyProgram(t *testing.T) {
	program := parse(t, ".")
	be.True(t, program.Block.Body == nil)
	be.Equal(t, program.String(), ".")
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing dot", "var x; x := 1", "Syntax Error: expected DOT, got end of input"},
		{"missing assign", "var x; x 1.", "1:10: Syntax Error: expected ASSIGN"},
		{"missing relational", "if 1 then print 1.", "expected relational operator"},
		{"bad factor", "print * 2.", "expected number, name or '('"},
		{"unclosed paren", "print (1 + 2.", "expected RPAREN"},
		{"missing end", "begin print 1; print 2.", "expected END"},
		{"trailing input", "print 1. print 2", "unexpected PRINT"},
		{"missing proc semicolon", "procedure p print 1;.", "expected SEMICOLON"},
		{"const without value", "const a = ;.", "expected INT"},
		{"illegal character", "print $.", "illegal input \"$\""},
		{"literal overflow", "print 99999999999999999999.", "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(lexer.NewLexer(tt.input))
			p.ParseProgram()
			errs := p.Errors()
			if len(errs) == 0 {
				t.Fatalf("expected a syntax error for %q", tt.input)
			}
			if !strings.Contains(errs[0], tt.want) {
				t.Errorf("error expected to contain %q, got=%q", tt.want, errs[0])
			}
		})
	}
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"var x;", true},
		{"begin x := 1;", true},
		{"while x < 3 do", true},
		{"var x; x := 1.", false},
		{"var x; x 1.", false},
		{"print 1. print", false},
		{"{ still typing", true},
		{"var x; /* note", true},
		{"print $.", false},
	}
	for _, tt := range tests {
		p := NewParser(lexer.NewLexer(tt.input))
		p.ParseProgram()
		be.Equal(t, p.Incomplete(), tt.want)
	}
}
