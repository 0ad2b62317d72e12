package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"compass-backend/internal/domain"
)

func newRoleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Inspect and assign local user roles",
	}
	cmd.AddCommand(newRoleSetCmd(app))
	cmd.AddCommand(newRoleListCmd(app))
	return cmd
}

func newRoleSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <user-id> <role>",
		Short: "Set the role of a user (ADMIN, SOCIAL_WORKER, PARTICIPANT, NO_ROLE)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, ok := domain.ParseRole(args[1])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown role %q", args[1]))
			}
			e, err := open(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout)
			defer cancel()
			u := &domain.User{ID: args[0], Role: role}
			if err := e.repos.Users.Save(ctx, u); err != nil {
				return writeErr(cmd, err)
			}
			return writeJSON(cmd, u)
		},
	}
}

func newRoleListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users with a local role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout)
			defer cancel()
			users, err := e.repos.Users.List(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeJSON(cmd, users)
		},
	}
}
