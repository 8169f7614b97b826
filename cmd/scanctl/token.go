package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jewelscan/internal/service"
)

func newTokenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "token <operator>",
		Short: "Mint an operator token for the ledger API",
		Long: `Sign a bearer token for the given operator with the configured JWT
secret, issuer and expiry. Use it as "Authorization: Bearer <token>".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := service.NewAuthService(a.cfg.JWT).IssueToken(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch a.output {
			case outputYAML:
				return writeYAML(out, map[string]interface{}{
					"access_token": tok.AccessToken,
					"expires_at":   tok.ExpiresAt.UTC(),
				})
			case outputCSV:
				_, err := fmt.Fprintln(out, tok.AccessToken)
				return err
			default:
				return writeJSON(out, tok)
			}
		},
	}
}
