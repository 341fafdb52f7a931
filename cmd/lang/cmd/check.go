package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graeme-hill/lang-go/format"
	"github.com/graeme-hill/lang-go/lib"
	"github.com/graeme-hill/lang-go/store"
)

var errCheckFailed = errors.New("some sources failed to check")

func (a *app) newCheckCmd() *cobra.Command {
	var (
		ext    string
		record bool
	)

	cmd := &cobra.Command{
		Use:   "check DIR",
		Short: "Scan and parse every source in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ext == "" {
				ext = a.cfg.Check.Extension
			}
			sources, err := lib.ReadSourcesFromDir(args[0], ext)
			if err != nil {
				return err
			}

			checker := &lib.Checker{
				Options: a.cfg.ParseOptions(),
				Workers: a.cfg.Check.Workers,
				Logger:  a.logger,
			}
			results, err := checker.CheckAll(cmd.Context(), sources)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, res := range results {
				if res.OK() {
					fmt.Fprintf(out, "%s: ok\n", res.Name)
					continue
				}
				failed++
				fmt.Fprintf(out, "%s: %s error %s\n", res.Name, res.Stage, res.Err)
			}

			if record {
				id, err := a.recordRun(cmd, results)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "recorded run %s\n", id)
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errCheckFailed, failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ext, "ext", "", "source file extension (default from config, .lg)")
	cmd.Flags().BoolVar(&record, "record", false, "store the run in the configured database")
	return cmd
}

func (a *app) recordRun(cmd *cobra.Command, results []lib.Result) (string, error) {
	s, err := store.Open(cmd.Context(), a.cfg.Store.Driver, a.cfg.Store.DSN, a.logger)
	if err != nil {
		return "", err
	}
	defer s.Close()

	return s.RecordRun(cmd.Context(), results, format.SExpr)
}
