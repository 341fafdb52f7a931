package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/graeme-hill/lang-go/format"
	"github.com/graeme-hill/lang-go/lib"
)

func (a *app) newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan FILE|-",
		Short: "Print the tokens of a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			tokens, err := lib.Scan(text)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			a.logger.Debug("scanned", zap.String("source", name), zap.Int("tokens", len(tokens)))

			return format.Tokens(cmd.OutOrStdout(), tokens)
		},
	}
}
