package parser

import (
	"fmt"
	"strconv"

	"github.com/arnavsurve/pl0retro/internal/compiler/ast"
	"github.com/arnavsurve/pl0retro/internal/compiler/lexer"
	"github.com/arnavsurve/pl0retro/internal/compiler/token"
)

// Parser is a recursive-descent parser for PL/0. curTok is always the next
// unconsumed token. Parsing stops at the first syntax error; the returned
// tree is then incomplete and must not be handed to the emitter.
type Parser struct {
	l       *lexer.Lexer
	curTok  token.Token
	peekTok token.Token
	errors  []string

	incomplete bool // first error was hit at end of input
}

func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:      l,
		errors: []string{},
	}
	// Read two tokens so curTok and peekTok are both set
	p.nextToken()
	p.nextToken()
	return p
}

// --- Token Handling ---
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curTok.Type == t
}

// expect consumes the current token if it has type t, and records a syntax
// error otherwise.
func (p *Parser) expect(t token.TokenType) (token.Token, bool) {
	tok := p.curTok
	if tok.Type != t {
		p.addError(tok, "expected %s, got %s", t, describe(tok))
		return tok, false
	}
	p.nextToken()
	return tok, true
}

// --- Error Handling ---
func (p *Parser) addError(tok token.Token, format string, args ...any) {
	if len(p.errors) == 0 && atEndOfInput(tok) {
		p.incomplete = true
	}
	msg := fmt.Sprintf(format, args...)
	errMsg := fmt.Sprintf("%d:%d: Syntax Error: %s", tok.Line, tok.Column, msg)
	p.errors = append(p.errors, errMsg)
}

// Errors returns the syntax errors found while parsing.
func (p *Parser) Errors() []string {
	return p.errors
}

// Incomplete reports whether parsing failed only because the input ran out,
// so more text could still make it a valid program.
func (p *Parser) Incomplete() bool {
	return p.incomplete
}

func (p *Parser) failed() bool {
	return len(p.errors) > 0
}

// atEndOfInput reports whether tok marks input that simply stopped: EOF,
// or a comment still open when the input ran out.
func atEndOfInput(tok token.Token) bool {
	return tok.Type == token.TokenEOF ||
		(tok.Type == token.TokenIllegal && tok.Literal == lexer.UnterminatedComment)
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.TokenEOF:
		return "end of input"
	case token.TokenIllegal:
		return fmt.Sprintf("illegal input %q", tok.Literal)
	}
	return fmt.Sprintf("%s (%q)", tok.Type, tok.Literal)
}

// --- Program Parsing ---

// ParseProgram parses `block "."` and requires the input to end there.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Token: p.curTok}
	program.Block = p.parseBlock()
	if p.failed() {
		return program
	}
	if _, ok := p.expect(token.TokenDot); !ok {
		return program
	}
	if !p.curTokenIs(token.TokenEOF) {
		p.addError(p.curTok, "unexpected %s after end of program", describe(p.curTok))
	}
	return program
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Token: p.curTok}

	if p.curTokenIs(token.TokenConst) {
		p.nextToken()
		for {
			decl := p.parseConstDecl()
			if decl == nil {
				return block
			}
			block.Constants = append(block.Constants, decl)
			if !p.curTokenIs(token.TokenComma) {
				break
			}
			p.nextToken()
		}
		if _, ok := p.expect(token.TokenSemicolon); !ok {
			return block
		}
	}

	if p.curTokenIs(token.TokenVar) {
		p.nextToken()
		for {
			nameTok, ok := p.expect(token.TokenIdent)
			if !ok {
				return block
			}
			block.Variables = append(block.Variables, &ast.VarDecl{
				Token: nameTok,
				Name:  &ast.Identifier{Token: nameTok, Value: nameTok.Literal},
			})
			if !p.curTokenIs(token.TokenComma) {
				break
			}
			p.nextToken()
		}
		if _, ok := p.expect(token.TokenSemicolon); !ok {
			return block
		}
	}

	for p.curTokenIs(token.TokenProcedure) {
		proc := p.parseProcDecl()
		if proc == nil {
			return block
		}
		block.Procedures = append(block.Procedures, proc)
	}

	block.Body = p.parseStatement()
	return block
}

// parseConstDecl parses `name = [-]number`.
func (p *Parser) parseConstDecl() *ast.ConstDecl {
	nameTok, ok := p.expect(token.TokenIdent)
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.TokenEqual); !ok {
		return nil
	}
	negative := false
	if p.curTokenIs(token.TokenMinus) {
		negative = true
		p.nextToken()
	}
	numTok, ok := p.expect(token.TokenInt)
	if !ok {
		return nil
	}
	value, err := strconv.ParseInt(numTok.Literal, 10, 64)
	if err != nil {
		p.addError(numTok, "constant %q out of range", numTok.Literal)
		return nil
	}
	if negative {
		value = -value
	}
	return &ast.ConstDecl{
		Token: nameTok,
		Name:  &ast.Identifier{Token: nameTok, Value: nameTok.Literal},
		Value: value,
	}
}

// parseProcDecl parses `procedure name; block;`.
func (p *Parser) parseProcDecl() *ast.ProcDecl {
	procTok := p.curTok
	p.nextToken()

	nameTok, ok := p.expect(token.TokenIdent)
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.TokenSemicolon); !ok {
		return nil
	}
	block := p.parseBlock()
	if p.failed() {
		return nil
	}
	if _, ok := p.expect(token.TokenSemicolon); !ok {
		return nil
	}
	return &ast.ProcDecl{
		Token: procTok,
		Name:  &ast.Identifier{Token: nameTok, Value: nameTok.Literal},
		Block: block,
	}
}

// --- Statements ---

// parseStatement returns nil for the empty statement.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curTok.Type {
	case token.TokenIdent:
		return p.parseAssignStatement()
	case token.TokenCall:
		return p.parseCallStatement()
	case token.TokenPrint, token.TokenBang:
		return p.parsePrintStatement()
	case token.TokenBegin:
		return p.parseBeginStatement()
	case token.TokenIf:
		return p.parseIfStatement()
	case token.TokenWhile:
		return p.parseWhileStatement()
	default:
		return nil
	}
}

func (p *Parser) parseAssignStatement() ast.Statement {
	nameTok := p.curTok
	p.nextToken()
	assignTok, ok := p.expect(token.TokenAssign)
	if !ok {
		return nil
	}
	value := p.parseExpression()
	if p.failed() {
		return nil
	}
	return &ast.AssignStatement{
		Token: assignTok,
		Name:  &ast.Identifier{Token: nameTok, Value: nameTok.Literal},
		Value: value,
	}
}

func (p *Parser) parseCallStatement() ast.Statement {
	callTok := p.curTok
	p.nextToken()
	nameTok, ok := p.expect(token.TokenIdent)
	if !ok {
		return nil
	}
	return &ast.CallStatement{
		Token: callTok,
		Name:  &ast.Identifier{Token: nameTok, Value: nameTok.Literal},
	}
}

func (p *Parser) parsePrintStatement() ast.Statement {
	printTok := p.curTok
	p.nextToken()
	value := p.parseExpression()
	if p.failed() {
		return nil
	}
	return &ast.PrintStatement{Token: printTok, Value: value}
}

func (p *Parser) parseBeginStatement() ast.Statement {
	stmt := &ast.BeginStatement{Token: p.curTok}
	p.nextToken()

	if s := p.parseStatement(); s != nil {
		stmt.Statements = append(stmt.Statements, s)
	}
	for p.curTokenIs(token.TokenSemicolon) && !p.failed() {
		p.nextToken()
		if s := p.parseStatement(); s != nil {
			stmt.Statements = append(stmt.Statements, s)
		}
	}
	if p.failed() {
		return nil
	}
	if _, ok := p.expect(token.TokenEnd); !ok {
		return nil
	}
	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	ifTok := p.curTok
	p.nextToken()
	cond := p.parseCondition()
	if p.failed() {
		return nil
	}
	if _, ok := p.expect(token.TokenThen); !ok {
		return nil
	}
	body := p.parseStatement()
	if p.failed() {
		return nil
	}
	return &ast.IfStatement{Token: ifTok, Condition: cond, Body: body}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	whileTok := p.curTok
	p.nextToken()
	cond := p.parseCondition()
	if p.failed() {
		return nil
	}
	if _, ok := p.expect(token.TokenDo); !ok {
		return nil
	}
	body := p.parseStatement()
	if p.failed() {
		return nil
	}
	return &ast.WhileStatement{Token: whileTok, Condition: cond, Body: body}
}

// --- Conditions & Expressions ---

func (p *Parser) parseCondition() ast.Condition {
	if p.curTokenIs(token.TokenOdd) {
		oddTok := p.curTok
		p.nextToken()
		value := p.parseExpression()
		if p.failed() {
			return nil
		}
		return &ast.OddCondition{Token: oddTok, Value: value}
	}

	left := p.parseExpression()
	if p.failed() {
		return nil
	}
	opTok := p.curTok
	if !opTok.IsRelational() {
		p.addError(opTok, "expected relational operator, got %s", describe(opTok))
		return nil
	}
	p.nextToken()
	right := p.parseExpression()
	if p.failed() {
		return nil
	}
	return &ast.Comparison{Token: opTok, Operator: opTok.Type, Left: left, Right: right}
}

func (p *Parser) parseExpression() *ast.Expression {
	expr := &ast.Expression{Token: p.curTok}
	if p.curTok.IsAdditive() {
		expr.Sign = p.curTok.Type
		p.nextToken()
	}
	expr.First = p.parseTerm()
	for p.curTok.IsAdditive() && !p.failed() {
		op := p.curTok
		p.nextToken()
		term := p.parseTerm()
		expr.Rest = append(expr.Rest, &ast.TermOp{Operator: op, Term: term})
	}
	return expr
}

func (p *Parser) parseTerm() *ast.Term {
	term := &ast.Term{Token: p.curTok}
	term.First = p.parseFactor()
	for p.curTok.IsMultiplicative() && !p.failed() {
		op := p.curTok
		p.nextToken()
		factor := p.parseFactor()
		term.Rest = append(term.Rest, &ast.FactorOp{Operator: op, Factor: factor})
	}
	return term
}

func (p *Parser) parseFactor() ast.Factor {
	tok := p.curTok
	switch tok.Type {
	case token.TokenIdent:
		p.nextToken()
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	case token.TokenInt:
		p.nextToken()
		value, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.addError(tok, "integer literal %q out of range", tok.Literal)
			return nil
		}
		return &ast.NumberLiteral{Token: tok, Value: value}
	case token.TokenLParen:
		p.nextToken()
		expr := p.parseExpression()
		if p.failed() {
			return nil
		}
		if _, ok := p.expect(token.TokenRParen); !ok {
			return nil
		}
		return expr
	default:
		p.addError(tok, "expected number, name or '(', got %s", describe(tok))
		return nil
	}
}
