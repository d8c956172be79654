package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	outDir  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pl0retro",
	Short: "pl0retro — translate PL/0 programs to Retro",
	Long: `pl0retro compiles PL/0 programs into code for the Retro stack machine.

Commands:
  init   Scaffold a new PL/0 project
  build  Compile (.pl0) PL/0 sources into (.retro) literate Retro
  ast    Print the syntax tree of a PL/0 source file
  repl   Translate PL/0 programs interactively
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

// logger writes debug diagnostics to stderr when --verbose is set.
func logger() *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "out", "output directory for build artifacts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log compiler phases to stderr")

	rootCmd.AddCommand(InitCmd, BuildCmd, AstCmd, ReplCmd)
}
