// Package retro writes programs for the Retro stack machine.
//
// Retro sources are literate Markdown: only the contents of ```` fenced
// blocks are code. Writer produces such documents one token at a time and
// Tangle recovers the code from them.
package retro

import (
	"io"
	"strconv"
)

const fence = "````"

// Word is a Retro word emitted verbatim.
type Word string

const (
	Add      Word = "+"
	Subtract Word = "-"
	Multiply Word = "*"
	Divide   Word = "/"
	Modulo   Word = "mod"
	Negate   Word = "n:negate"

	Less         Word = "lt?"
	LessEqual    Word = "lteq?"
	Greater      Word = "gt?"
	GreaterEqual Word = "gteq?"
	Equal        Word = "eq?"
	NotEqual     Word = "-eq?"

	PrintNumber Word = "putn"
	Newline     Word = "nl"

	quoteOpen  Word = "["
	quoteClose Word = "]"
	ifWord     Word = "if"
	whileWord  Word = "while"
	varWord    Word = "var"
	endWord    Word = ";"
)

// Writer appends Retro tokens to an underlying io.Writer. Tokens on a line
// are separated by single spaces. After the first write error every call is
// a no-op and Err reports that error.
type Writer struct {
	w         io.Writer
	err       error
	lineStart bool
	inFence   bool
	tokens    int
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, lineStart: true}
}

// Err returns the first error hit while writing.
func (w *Writer) Err() error {
	return w.err
}

// Tokens reports how many tokens have been written.
func (w *Writer) Tokens() int {
	return w.tokens
}

func (w *Writer) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *Writer) word(s string) {
	if !w.lineStart {
		w.raw(" ")
	}
	w.raw(s)
	w.lineStart = false
	w.tokens++
}

func (w *Writer) endLine() {
	if !w.lineStart {
		w.raw("\n")
		w.lineStart = true
	}
}

// line writes words on a line of their own.
func (w *Writer) line(words ...string) {
	w.endLine()
	for _, s := range words {
		w.word(s)
	}
	w.endLine()
}

// Section closes the open code block, if any, and starts a new heading
// followed by a fresh code block.
func (w *Writer) Section(title string) {
	w.endLine()
	if w.inFence {
		w.raw(fence + "\n\n")
	}
	w.raw("# " + title + "\n\n" + fence + "\n")
	w.inFence = true
}

// Close ends the open code block. It does not close the underlying writer.
func (w *Writer) Close() error {
	w.endLine()
	if w.inFence {
		w.raw(fence + "\n")
		w.inFence = false
	}
	return w.err
}

// Var allocates static storage named label.
func (w *Writer) Var(label string) {
	w.line("'"+label, string(varWord))
}

// Define starts the definition of the word label.
func (w *Writer) Define(label string) {
	w.line(":" + label)
}

// End terminates the current definition.
func (w *Writer) End() {
	w.line(string(endWord))
}

// Run invokes label at top level, outside any definition.
func (w *Writer) Run(label string) {
	w.line(label)
}

// Literal pushes n.
func (w *Writer) Literal(n int64) {
	w.word("#" + strconv.FormatInt(n, 10))
}

// Fetch pushes the value stored at label.
func (w *Writer) Fetch(label string) {
	w.word("@" + label)
}

// Store pops a value into label.
func (w *Writer) Store(label string) {
	w.word("!" + label)
}

// Call invokes the word label.
func (w *Writer) Call(label string) {
	w.word(label)
}

// Op writes an arithmetic, comparison or output word.
func (w *Writer) Op(op Word) {
	w.word(string(op))
}

// OpenQuote starts a quotation, the body of an if or while.
func (w *Writer) OpenQuote() {
	w.word(string(quoteOpen))
}

// CloseIf ends a quotation run when the flag below it is true.
func (w *Writer) CloseIf() {
	w.word(string(quoteClose))
	w.word(string(ifWord))
}

// CloseWhile ends a quotation repeated while it leaves true.
func (w *Writer) CloseWhile() {
	w.word(string(quoteClose))
	w.word(string(whileWord))
}
