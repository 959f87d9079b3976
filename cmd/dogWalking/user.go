package main

import (
	"fmt"

	"dog_walking/internal/domain"
	"dog_walking/internal/dto"
	"dog_walking/internal/repository/postgres"
	"dog_walking/internal/service/walking"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	user := &cobra.Command{
		Use:   "user",
		Short: "Manage registry users",
	}
	user.AddCommand(&cobra.Command{
		Use:   "add <username> <password>",
		Short: "Create a user that can log in to the bot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap()
			if err != nil {
				return err
			}
			defer rt.close()

			auth, err := walking.NewAuthService(postgres.NewUserRepository(rt.db))
			if err != nil {
				return err
			}
			ctx := domain.WithActor(cmd.Context(), "cli")
			id, err := auth.Register(ctx, &dto.Login{Username: args[0], Password: args[1]})
			if err != nil {
				return fmt.Errorf("add user %q: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %q created with id %d\n", args[0], id)
			return nil
		},
	})
	return user
}
