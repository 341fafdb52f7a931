package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/graeme-hill/lang-go/config"
	"github.com/graeme-hill/lang-go/store"
)

func main() {
	var (
		cfgFile string
		down    bool
	)

	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or roll back the check run schema",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			logger, err := cfg.NewLogger(false)
			if err != nil {
				return err
			}
			defer logger.Sync()

			s, err := store.Connect(cmd.Context(), cfg.Store.Driver, cfg.Store.DSN, logger)
			if err != nil {
				return err
			}
			defer s.Close()

			if down {
				return s.Rollback(cmd.Context())
			}
			logger.Info("migrating", zap.String("driver", cfg.Store.Driver))
			return s.Migrate(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	cmd.Flags().BoolVar(&down, "down", false, "roll back the latest migration")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
