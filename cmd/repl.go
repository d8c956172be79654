package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavsurve/pl0retro/internal/compiler"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".pl0retro_history"
	promptMain  = "pl0> "
	promptCont  = "...> "
	replHelp    = `Enter a PL/0 program ending in "." to see its Retro translation.
  :literate  toggle between plain code and the literate document
  :help      show this message
  :quit      exit
`
)

// repl: translate programs as they are typed
var ReplCmd = &cobra.Command{
	Use:   "repl",
	Short: "Translate PL/0 programs interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func runRepl(out, errOut io.Writer) error {
	fmt.Fprintln(out, "pl0retro repl. Type :help for commands, :quit to exit.")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath, ok := historyPath(logger()); ok {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	session := &replSession{opts: buildOptions()}
	session.opts.Tangle = true

	for {
		src, ok := readProgram(ln)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		if quit := session.handle(src, out, errOut); quit {
			return nil
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// historyPath locates the history file in the home directory. Without a
// home directory the session keeps no history.
func historyPath(log *slog.Logger) (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Debug("history disabled", "err", err)
		return "", false
	}
	return filepath.Join(home, historyFile), true
}

type replSession struct {
	opts compiler.Options
}

// handle runs one command or translates one program. It returns true when
// the session should end.
func (s *replSession) handle(src string, out, errOut io.Writer) bool {
	trimmed := strings.TrimSpace(src)
	if strings.HasPrefix(trimmed, ":") {
		switch strings.ToLower(trimmed) {
		case ":quit", ":q":
			return true
		case ":help":
			fmt.Fprint(out, replHelp)
		case ":literate":
			s.opts.Tangle = !s.opts.Tangle
			mode := "literate document"
			if s.opts.Tangle {
				mode = "plain code"
			}
			fmt.Fprintf(out, "output: %s\n", mode)
		default:
			fmt.Fprintln(out, "unknown command. Type :help for a list.")
		}
		return false
	}

	code, err := compiler.Compile(src, s.opts)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return false
	}
	fmt.Fprint(out, code)
	return false
}

// readProgram collects lines until they form a whole program, a syntax
// error, or a command.
func readProgram(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl-C drops the partial program
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" {
			return "", true
		}
		if compiler.Incomplete(src) {
			continue
		}
		return src, true
	}
}
