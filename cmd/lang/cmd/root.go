package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/graeme-hill/lang-go/config"
)

type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd builds the lang command tree. Each call returns independent
// commands and flag state.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "lang",
		Short: "Scan, parse and check lang expressions",
		Long: `lang turns expression source into tokens and syntax trees.

Commands:
  scan     - print the tokens of a source
  parse    - print the syntax tree of a source
  check    - scan and parse every source in a directory
  repl     - read expressions interactively`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.newScanCmd(),
		a.newParseCmd(),
		a.newCheckCmd(),
		a.newREPLCmd(),
		newVersionCmd(),
	)
	return root
}

func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := cfg.NewLogger(a.verbose)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)

	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("loaded config", zap.String("file", a.cfgFile))
	return nil
}

// readInput returns the text named by arg: a file path, or "-" for stdin.
func readInput(cmd *cobra.Command, arg string) (string, string, error) {
	if arg == "-" {
		bytes, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "stdin", string(bytes), nil
	}

	bytes, err := os.ReadFile(arg)
	if err != nil {
		return "", "", fmt.Errorf("read source %s: %w", arg, err)
	}
	return arg, string(bytes), nil
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "error: %s\n", strings.TrimSpace(err.Error()))
}
