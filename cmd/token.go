package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		scope   string
		subject string
		ttl     time.Duration
	)

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the protected API routes",
		Long: `Issue a JWT signed with JWT_SECRET for calling protected routes of "serve".

Examples:
  vinom-maze token
  vinom-maze token --ttl 15m --subject ci`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if config.Envs.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			if ttl <= 0 {
				return fmt.Errorf("ttl must be positive, got %s", ttl)
			}
			if subject == "" {
				subject = uuid.NewString()
			}

			ts := token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
			signed, err := ts.Generate(map[string]interface{}{
				"sub":   subject,
				"scope": scope,
			}, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}

	tokenCmd.Flags().StringVar(&scope, "scope", identity.ScopeWrite, "Space separated scopes granted by the token")
	tokenCmd.Flags().StringVar(&subject, "subject", "", "Subject claim (random when empty)")
	tokenCmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return tokenCmd
}
