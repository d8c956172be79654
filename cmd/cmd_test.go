package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arnavsurve/pl0retro/internal/compiler"
	"github.com/nalgeon/be"
)

// run executes the root command with args and returns what it printed.
// Flag variables are package globals, so they are reset first.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	outDir, verbose = "out", false
	tangle, prefix, entry, toStdout = false, "PL0:", "main", false
	dump = false

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	be.Err(t, os.WriteFile(path, []byte(src), 0o644), nil)
	return path
}

func TestBuildStdout(t *testing.T) {
	src := writeSource(t, t.TempDir(), "one.pl0", "var x; x := 1.")

	out, err := run(t, "build", "--stdout", src)
	be.Err(t, err, nil)
	be.Equal(t, out, "# Globals\n\n````\n'PL0:v:x_1 var\n````\n\n"+
		"# Main\n\n````\n:main\n#1 !PL0:v:x_1\n;\nmain\n````\n")

	out, err = run(t, "build", "--stdout", "--tangle", "--prefix", "my:", "--entry", "start", src)
	be.Err(t, err, nil)
	be.Equal(t, out, "'my:v:x_1 var\n:start\n#1 !my:v:x_1\n;\nstart\n")
}

func TestBuildWritesFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.pl0", "print 1.")
	b := writeSource(t, dir, "b.pl0", "print 2.")
	out := filepath.Join(dir, "build")

	stdout, err := run(t, "build", "-o", out, a, b)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(stdout, "✔︎ wrote "+filepath.Join(out, "a.retro")))
	be.True(t, strings.Contains(stdout, "✔︎ wrote "+filepath.Join(out, "b.retro")))

	got, err := os.ReadFile(filepath.Join(out, "b.retro"))
	be.Err(t, err, nil)
	be.True(t, strings.Contains(string(got), "#2 putn nl"))
}

func TestBuildError(t *testing.T) {
	src := writeSource(t, t.TempDir(), "bad.pl0", "const c = 1; call c.")
	_, err := run(t, "build", "--stdout", src)
	be.Err(t, err, "invalid call target")

	_, err = run(t, "build")
	be.Err(t, err, "requires at least 1 arg")
}

func TestAst(t *testing.T) {
	src := writeSource(t, t.TempDir(), "p.pl0", "var x;\nbegin x := 1; print x end.")

	out, err := run(t, "ast", src)
	be.Err(t, err, nil)
	prog, err := compiler.ParseFile(src)
	be.Err(t, err, nil)
	be.Equal(t, out, prog.String()+"\n")

	out, err = run(t, "ast", "--dump", src)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "Variables:"))
	be.True(t, strings.Contains(out, "AssignStatement"))
	be.True(t, strings.Contains(out, `Value: (string) (len=1) "x"`))
	// Field dump, not the source form String() would give
	be.True(t, !strings.Contains(out, "x := 1"))
}

func TestHistoryPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path, ok := historyPath(logger())
	be.True(t, ok)
	be.Equal(t, path, filepath.Join(home, historyFile))

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Setenv("HOME", "")
	path, ok = historyPath(log)
	be.True(t, !ok)
	be.Equal(t, path, "")
	be.True(t, strings.Contains(buf.String(), "history disabled"))
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")

	out, err := run(t, "init", dir)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, `scaffolding new project "proj"`))

	hello := filepath.Join(dir, "src", "hello.pl0")
	content, err := os.ReadFile(hello)
	be.Err(t, err, nil)
	be.True(t, strings.HasPrefix(string(content), "{ proj: "))

	ignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	be.Err(t, err, nil)
	be.True(t, strings.Contains(string(ignore), "/out/"))

	// The scaffolded program must itself compile
	_, err = compiler.ReadAndCompile(hello, compiler.Options{})
	be.Err(t, err, nil)

	_, err = run(t, "init", dir)
	be.Err(t, err, "already exists")
}

func TestReplSession(t *testing.T) {
	s := &replSession{opts: compiler.Options{Tangle: true}}
	var out, errOut bytes.Buffer

	be.Equal(t, s.handle("print 3.", &out, &errOut), false)
	be.Equal(t, out.String(), ":main\n#3 putn nl\n;\nmain\n")

	out.Reset()
	be.Equal(t, s.handle(":literate", &out, &errOut), false)
	be.Equal(t, out.String(), "output: literate document\n")
	be.Equal(t, s.opts.Tangle, false)

	out.Reset()
	s.handle("print 3.", &out, &errOut)
	be.True(t, strings.HasPrefix(out.String(), "# Globals\n"))

	s.handle("call nothing.", &out, &errOut)
	be.True(t, strings.Contains(errOut.String(), `unresolved identifier "nothing"`))

	out.Reset()
	s.handle(":bogus", &out, &errOut)
	be.True(t, strings.Contains(out.String(), "unknown command"))

	be.Equal(t, s.handle(" :quit ", &out, &errOut), true)
}
