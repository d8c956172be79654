package cmd

import (
	"fmt"

	"github.com/arnavsurve/pl0retro/internal/compiler"
	"github.com/arnavsurve/pl0retro/internal/compiler/emitter"
	"github.com/spf13/cobra"
)

var (
	tangle   bool
	prefix   string
	entry    string
	toStdout bool
)

// build: compile sources into Retro
var BuildCmd = &cobra.Command{
	Use:   "build [file.pl0...]",
	Short: "Compile PL/0 sources into Retro",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := buildOptions()
		out := cmd.OutOrStdout()

		for _, src := range args {
			if toStdout {
				prog, err := compiler.ReadAndCompile(src, opts)
				if err != nil {
					return err
				}
				fmt.Fprint(out, prog)
				continue
			}

			fmt.Fprintf(out, "↪ building %s ...\n", src)
			outFile, err := compiler.CompileAndWrite(src, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "✔︎ wrote %s\n", outFile)
		}
		return nil
	},
}

func buildOptions() compiler.Options {
	return compiler.Options{
		OutDir: outDir,
		Tangle: tangle,
		Emitter: emitter.Config{
			Prefix: prefix,
			Entry:  entry,
		},
		Logger: logger(),
	}
}

func init() {
	BuildCmd.Flags().BoolVar(&tangle, "tangle", false, "write plain Retro code (.forth) instead of a literate document")
	BuildCmd.Flags().StringVar(&prefix, "prefix", "PL0:", "namespace prepended to generated labels")
	BuildCmd.Flags().StringVar(&entry, "entry", emitter.DefaultEntry, "name of the word holding the main program")
	BuildCmd.Flags().BoolVar(&toStdout, "stdout", false, "print the translation instead of writing files")
}
