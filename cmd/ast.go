package cmd

import (
	"fmt"

	"github.com/arnavsurve/pl0retro/internal/compiler"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var dump bool

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	DisableMethods:          true, // show fields, not the String() source form
}

// ast: show what the parser made of a source file
var AstCmd = &cobra.Command{
	Use:   "ast [file.pl0]",
	Short: "Print the syntax tree of a PL/0 source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := compiler.ParseFile(args[0])
		if err != nil {
			return err
		}

		if dump {
			fmt.Fprint(cmd.OutOrStdout(), dumpConfig.Sdump(prog))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), prog.String())
		return nil
	},
}

func init() {
	AstCmd.Flags().BoolVar(&dump, "dump", false, "dump the full node structure instead of source form")
}
