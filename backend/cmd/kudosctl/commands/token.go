package commands

import (
	"fmt"

	"github.com/kudosboards/kudos/backend/internal/setup"
	"github.com/kudosboards/kudos/shared/config"
	"github.com/kudosboards/kudos/shared/jwt"
	"github.com/spf13/cobra"
)

func newTokenCmd(load configLoader) *cobra.Command {
	var userId string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a registered user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), load, func(store setup.Store, cfg *config.Config) error {
				user, err := store.GetUser(cmd.Context(), userId)
				if err != nil {
					return err
				}
				token, err := jwt.New(cfg.JwtKey(), cfg.JwtTTL()).NewToken(*user)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&userId, "user", "", "user id")
	cmd.MarkFlagRequired("user")
	return cmd
}
