package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arnavsurve/pl0retro/internal/compiler/ast"
	"github.com/arnavsurve/pl0retro/internal/compiler/emitter"
	"github.com/arnavsurve/pl0retro/internal/compiler/lexer"
	"github.com/arnavsurve/pl0retro/internal/compiler/parser"
	"github.com/arnavsurve/pl0retro/internal/compiler/retro"
)

const (
	SourceExt   = ".pl0"
	LiterateExt = ".retro" // Markdown document with code in fenced blocks
	TangledExt  = ".forth" // plain Retro code
)

// ErrSyntax wraps every parse failure returned by this package.
var ErrSyntax = errors.New("syntax errors")

// Options configures a compilation.
type Options struct {
	OutDir  string
	Tangle  bool // write plain code instead of the literate document
	Emitter emitter.Config
	Logger  *slog.Logger // nil discards debug output
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func CompileAndWrite(srcPath string, opts Options) (string, error) {
	out, err := ReadAndCompile(srcPath, opts)
	if err != nil {
		return "", err
	}

	outFile, err := writeOutput(out, srcPath, opts)
	if err != nil {
		return "", err
	}

	return outFile, nil
}

// ReadAndCompile compiles the .pl0 file at srcPath without writing anything.
func ReadAndCompile(srcPath string, opts Options) (string, error) {
	if err := validateExtension(srcPath); err != nil {
		return "", err
	}

	content, err := readSource(srcPath)
	if err != nil {
		return "", err
	}

	out, err := Compile(content, opts)
	if err != nil {
		return "", fmt.Errorf("%s: %w", srcPath, err)
	}
	return out, nil
}

// Compile translates PL/0 source text into Retro. The result is a literate
// document, or plain code when opts.Tangle is set.
func Compile(src string, opts Options) (string, error) {
	log := opts.logger()

	start := time.Now()
	prog, err := ParseSource(src)
	if err != nil {
		return "", err
	}
	log.Debug("parsed", "procedures", countProcedures(prog.Block), "elapsed", time.Since(start))

	start = time.Now()
	var buf bytes.Buffer
	em := emitter.NewEmitter(opts.Emitter)
	if err := em.Emit(prog, &buf); err != nil {
		return "", err
	}
	log.Debug("emitted", "labels", em.LabelCount(), "tokens", em.TokenCount(), "bytes", buf.Len(), "elapsed", time.Since(start))

	if !opts.Tangle {
		return buf.String(), nil
	}
	code, err := retro.Tangle(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("tangle: %w", err)
	}
	return code, nil
}

// ParseSource parses PL/0 source text and fails with ErrSyntax when the
// parser reported anything.
func ParseSource(src string) (*ast.Program, error) {
	p := parser.NewParser(lexer.NewLexer(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, strings.Join(errs, "; "))
	}
	return prog, nil
}

// Incomplete reports whether src fails to parse only because it ends early,
// so appending more text could still complete the program.
func Incomplete(src string) bool {
	p := parser.NewParser(lexer.NewLexer(src))
	p.ParseProgram()
	return p.Incomplete()
}

// ParseFile reads and parses a .pl0 file.
func ParseFile(srcPath string) (*ast.Program, error) {
	if err := validateExtension(srcPath); err != nil {
		return nil, err
	}
	content, err := readSource(srcPath)
	if err != nil {
		return nil, err
	}
	prog, err := ParseSource(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", srcPath, err)
	}
	return prog, nil
}

// OutputPath is where CompileAndWrite puts the translation of srcPath.
func OutputPath(srcPath string, opts Options) string {
	ext := LiterateExt
	if opts.Tangle {
		ext = TangledExt
	}
	return filepath.Join(opts.OutDir, strings.TrimSuffix(filepath.Base(srcPath), SourceExt)+ext)
}

func countProcedures(block *ast.Block) int {
	if block == nil {
		return 0
	}
	n := len(block.Procedures)
	for _, p := range block.Procedures {
		n += countProcedures(p.Block)
	}
	return n
}

func validateExtension(path string) error {
	if filepath.Ext(path) != SourceExt {
		return fmt.Errorf("source must have %s extension", SourceExt)
	}
	return nil
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}

func writeOutput(out, srcPath string, opts Options) (string, error) {
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return "", err
	}
	outFile := OutputPath(srcPath, opts)
	return outFile, os.WriteFile(outFile, []byte(out), 0o644)
}
