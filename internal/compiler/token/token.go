package token

type TokenType string

const (
	// Single character tokens
	TokenLParen    TokenType = "LPAREN"    // (
	TokenRParen    TokenType = "RPAREN"    // )
	TokenPlus      TokenType = "PLUS"      // +
	TokenMinus     TokenType = "MINUS"     // -
	TokenAsterisk  TokenType = "ASTERISK"  // *
	TokenSlash     TokenType = "SLASH"     // / (integer division)
	TokenPercent   TokenType = "PERCENT"   // % (modulo)
	TokenComma     TokenType = "COMMA"     // ,
	TokenSemicolon TokenType = "SEMICOLON" // ;
	TokenDot       TokenType = "DOT"       // . (end of program)
	TokenBang      TokenType = "BANG"      // ! (print shorthand)

	// Relational operators
	TokenEqual        TokenType = "EQ"  // =
	TokenNotEqual     TokenType = "NE"  // <> or #
	TokenLess         TokenType = "LT"  // <
	TokenLessEqual    TokenType = "LTE" // <=
	TokenGreater      TokenType = "GT"  // >
	TokenGreaterEqual TokenType = "GTE" // >=

	// Assignment
	TokenAssign TokenType = "ASSIGN" // :=

	// Keywords
	TokenConst     TokenType = "CONST"     // const
	TokenVar       TokenType = "VAR"       // var
	TokenProcedure TokenType = "PROCEDURE" // procedure
	TokenCall      TokenType = "CALL"      // call
	TokenBegin     TokenType = "BEGIN"     // begin
	TokenEnd       TokenType = "END"       // end
	TokenIf        TokenType = "IF"        // if
	TokenThen      TokenType = "THEN"      // then
	TokenWhile     TokenType = "WHILE"     // while
	TokenDo        TokenType = "DO"        // do
	TokenOdd       TokenType = "ODD"       // odd
	TokenPrint     TokenType = "PRINT"     // print / write
	TokenMod       TokenType = "MOD"       // mod (same as %)

	// Literals & Identifiers
	TokenInt   TokenType = "INT"   // 43
	TokenIdent TokenType = "IDENT" // Identifier (e.g. variable name)

	// Special
	TokenEOF     TokenType = "EOF"
	TokenIllegal TokenType = "ILLEGAL"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// IsRelational reports whether t is one of the six comparison operators.
func (t Token) IsRelational() bool {
	switch t.Type {
	case TokenEqual, TokenNotEqual, TokenLess, TokenLessEqual, TokenGreater, TokenGreaterEqual:
		return true
	}
	return false
}

// IsMultiplicative reports whether t combines factors inside a term.
func (t Token) IsMultiplicative() bool {
	return t.Type == TokenAsterisk || t.Type == TokenSlash || t.Type == TokenPercent || t.Type == TokenMod
}

// IsAdditive reports whether t combines terms inside an expression.
func (t Token) IsAdditive() bool {
	return t.Type == TokenPlus || t.Type == TokenMinus
}
