package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kudosboards/kudos/backend/internal/setup"
	"github.com/kudosboards/kudos/shared/config"
	"github.com/kudosboards/kudos/shared/domain"
	"github.com/spf13/cobra"
)

func newUserCmd(load configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage registered users",
	}
	cmd.AddCommand(newUserAddCmd(load))
	return cmd
}

func newUserAddCmd(load configLoader) *cobra.Command {
	var id, username string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a user, or rename an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = uuid.NewString()
			}
			user := domain.User{Id: id, Username: username}
			return withStore(cmd.Context(), load, func(store setup.Store, _ *config.Config) error {
				if err := store.SaveUser(cmd.Context(), user); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), user.Id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "user id (generated when empty)")
	cmd.Flags().StringVar(&username, "username", "", "display name")
	cmd.MarkFlagRequired("username")
	return cmd
}
