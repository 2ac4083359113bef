package commands

import (
	"context"

	"github.com/kudosboards/kudos/backend/internal/setup"
	"github.com/kudosboards/kudos/shared/config"
	sharedpg "github.com/kudosboards/kudos/shared/storage/pg"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the kudosctl command tree.
func NewRootCmd() *cobra.Command {
	var configFolder string

	root := &cobra.Command{
		Use:   "kudosctl",
		Short: "Administer a kudos boards deployment",
		Long: `kudosctl registers users and issues access tokens against the store
configured for the API server. Users are resolved from the store on every
request, so a token is only usable once its user is registered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")

	load := func() (*config.Config, error) {
		return config.Load(configFolder)
	}
	root.AddCommand(newUserCmd(load), newTokenCmd(load))
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

type configLoader func() (*config.Config, error)

// withStore opens the configured store for the duration of fn.
func withStore(ctx context.Context, load configLoader, fn func(store setup.Store, cfg *config.Config) error) error {
	cfg, err := load()
	if err != nil {
		return err
	}
	store, closeStore, err := setup.OpenStore(ctx, cfg, sharedpg.LightweightConnectionConfig())
	if err != nil {
		return err
	}
	defer closeStore(ctx)
	return fn(store, cfg)
}
