package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graeme-hill/lang-go/format"
	"github.com/graeme-hill/lang-go/lib"
)

func (a *app) newParseCmd() *cobra.Command {
	var (
		outFormat   string
		expr        string
		comparisons bool
		requireEOF  bool
	)

	cmd := &cobra.Command{
		Use:   "parse [FILE|-]",
		Short: "Print the syntax tree of a source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, text := "expression", expr
			switch {
			case expr != "" && len(args) > 0:
				return errors.New("give either -e or a source, not both")
			case len(args) == 1:
				var err error
				name, text, err = readInput(cmd, args[0])
				if err != nil {
					return err
				}
			case expr == "":
				return errors.New("nothing to parse: give a source or -e")
			}

			if outFormat == "" {
				outFormat = a.cfg.REPL.Format
			}
			f, err := format.ParseFormat(outFormat)
			if err != nil {
				return err
			}

			opts := a.cfg.ParseOptions()
			opts.Comparisons = opts.Comparisons || comparisons
			opts.RequireEOF = opts.RequireEOF || requireEOF

			tokens, err := lib.Scan(text)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			tree, err := lib.ParseWithOptions(tokens, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			return format.Write(cmd.OutOrStdout(), tree, f)
		},
	}

	cmd.Flags().StringVarP(&outFormat, "format", "f", "", "output format: sexpr, tree, json or yaml")
	cmd.Flags().StringVarP(&expr, "expr", "e", "", "parse this expression instead of a source")
	cmd.Flags().BoolVar(&comparisons, "comparisons", false, "parse comparison and logical operators")
	cmd.Flags().BoolVar(&requireEOF, "require-eof", false, "reject tokens after the expression")
	return cmd
}
