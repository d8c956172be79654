package lexer

import "github.com/arnavsurve/pl0retro/internal/compiler/token"

type Lexer struct {
	input        string
	position     int  // current char index
	readPosition int  // next char index
	ch           byte // current char

	line   int // current line number (1-indexed)
	column int // current column number (1-indexed)
}

// UnterminatedComment is the literal of the ILLEGAL token produced when the
// input ends inside a comment.
const UnterminatedComment = "unterminated comment"

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// readChar advances the lexer's position and updates the current character
// It handles EOF and tracks line/column numbers correctly
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NULL (EOF)
	} else {
		l.ch = l.input[l.readPosition]
	}

	l.position = l.readPosition
	l.readPosition++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else if l.ch != 0 {
		l.column++
	}
}

// Returns the next character without consuming it
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	startLine := l.line
	startCol := l.column

	switch l.ch {
	case '/':
		if l.peekChar() == '/' {
			l.readChar()
			l.readComment()
			return l.NextToken()
		} else if l.peekChar() == '*' {
			l.readChar()
			if !l.readBlockComment() {
				return l.newToken(token.TokenIllegal, UnterminatedComment, startLine, startCol)
			}
			return l.NextToken()
		}
		return l.single(token.TokenSlash, startLine, startCol)
	case '{':
		// Classic PL/0 comment
		for l.ch != '}' && l.ch != 0 {
			l.readChar()
		}
		if l.ch == 0 {
			return l.newToken(token.TokenIllegal, UnterminatedComment, startLine, startCol)
		}
		l.readChar()
		return l.NextToken()
	case '(':
		return l.single(token.TokenLParen, startLine, startCol)
	case ')':
		return l.single(token.TokenRParen, startLine, startCol)
	case '+':
		return l.single(token.TokenPlus, startLine, startCol)
	case '-':
		return l.single(token.TokenMinus, startLine, startCol)
	case '*':
		return l.single(token.TokenAsterisk, startLine, startCol)
	case '%':
		return l.single(token.TokenPercent, startLine, startCol)
	case ',':
		return l.single(token.TokenComma, startLine, startCol)
	case ';':
		return l.single(token.TokenSemicolon, startLine, startCol)
	case '.':
		return l.single(token.TokenDot, startLine, startCol)
	case '!':
		return l.single(token.TokenBang, startLine, startCol)
	case '=':
		return l.single(token.TokenEqual, startLine, startCol)
	case '#':
		return l.single(token.TokenNotEqual, startLine, startCol)
	case '<':
		switch l.peekChar() {
		case '=':
			return l.double(token.TokenLessEqual, startLine, startCol)
		case '>':
			return l.double(token.TokenNotEqual, startLine, startCol)
		}
		return l.single(token.TokenLess, startLine, startCol)
	case '>':
		if l.peekChar() == '=' {
			return l.double(token.TokenGreaterEqual, startLine, startCol)
		}
		return l.single(token.TokenGreater, startLine, startCol)
	case ':':
		if l.peekChar() == '=' {
			return l.double(token.TokenAssign, startLine, startCol)
		}
		return l.single(token.TokenIllegal, startLine, startCol)
	case 0:
		// EOF
		// Do NOT call l.readChar() here
		return l.newToken(token.TokenEOF, "", startLine, startCol)
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			return l.newToken(lookupIdent(ident), ident, startLine, startCol)
		} else if isDigit(l.ch) {
			return l.readInteger(startLine, startCol)
		}
		return l.single(token.TokenIllegal, startLine, startCol)
	}
}

// newToken is a helper to create a token.Token struct
func (l *Lexer) newToken(tokenType token.TokenType, literal string, line, col int) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Line: line, Column: col}
}

// single consumes the current character as a one-character token.
func (l *Lexer) single(tokenType token.TokenType, line, col int) token.Token {
	tok := l.newToken(tokenType, string(l.ch), line, col)
	l.readChar()
	return tok
}

// double consumes the current and the next character as one token.
func (l *Lexer) double(tokenType token.TokenType, line, col int) token.Token {
	first := l.ch
	l.readChar()
	tok := l.newToken(tokenType, string(first)+string(l.ch), line, col)
	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\n' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readBlockComment consumes a /* ... */ comment. It reports false when the
// input ends before the comment is closed.
func (l *Lexer) readBlockComment() bool {
	l.readChar() // Consume the opening '*'

	for {
		if l.ch == 0 {
			return false
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // Consume '*'
			l.readChar() // Consume '/'
			return true
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readInteger(startLine, startCol int) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	literal := l.input[start:l.position]
	return token.Token{Type: token.TokenInt, Literal: literal, Line: startLine, Column: startCol}
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// keywords maps identifier strings to their corresponding token types.
var keywords = map[string]token.TokenType{
	"const":     token.TokenConst,
	"var":       token.TokenVar,
	"procedure": token.TokenProcedure,
	"call":      token.TokenCall,
	"begin":     token.TokenBegin,
	"end":       token.TokenEnd,
	"if":        token.TokenIf,
	"then":      token.TokenThen,
	"while":     token.TokenWhile,
	"do":        token.TokenDo,
	"odd":       token.TokenOdd,
	"print":     token.TokenPrint,
	"write":     token.TokenPrint,
	"mod":       token.TokenMod,
}

// lookupIdent checks if an identifier is a keyword, returning the keyword's
// token type or token.TokenIdent if it's not a keyword.
func lookupIdent(ident string) token.TokenType {
	// Use case-sensitive lookup
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return token.TokenIdent
}
