package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout)
			defer cancel()
			if err := e.repos.AutoMigrate(ctx); err != nil {
				return writeErr(cmd, fmt.Errorf("migrate: %w", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrated", e.cfg.DB.Driver)
			return nil
		},
	}
}
