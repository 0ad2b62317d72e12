package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"compass-backend/internal/core/auth"
)

func newTokenCmd(app *App) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue an HS256 bearer token for local testing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.close()

			if e.cfg.JWT.Secret == "" {
				return writeErr(cmd, errors.New("jwt.secret is not set; tokens from the identity provider must be used"))
			}
			if ttl <= 0 {
				ttl = time.Duration(e.cfg.JWT.AccessTokenTTLMin) * time.Minute
			}
			j, err := auth.New(e.cfg.JWT.Secret, "", e.cfg.JWT.Issuer, e.cfg.JWT.Audience, ttl)
			if err != nil {
				return writeErr(cmd, err)
			}
			tok, err := j.Issue(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default jwt.accesstokenttlmin)")
	return cmd
}
