// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	clientID     string
	clientSecret string
	tokenURL     string
	issuerURL    string
	username     string
	scopes       []string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Get an access token for calling the API",
	Long: `Get an access token for calling the API.

Without --username the client credentials grant is used. With --username the
resource owner password grant is used and the password is read from
OAUTH2_PASSWORD, the resulting token carries the user's email claim and
resolves to their session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		endpoint, err := tokenEndpoint(ctx)
		if err != nil {
			return err
		}

		var token *oauth2.Token
		if username == "" {
			config := &clientcredentials.Config{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				TokenURL:     endpoint,
				Scopes:       scopes,
			}

			token, err = config.Token(ctx)
		} else {
			config := &oauth2.Config{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				Endpoint:     oauth2.Endpoint{TokenURL: endpoint},
				Scopes:       scopes,
			}

			token, err = config.PasswordCredentialsToken(ctx, username, os.Getenv("OAUTH2_PASSWORD"))
		}

		if err != nil {
			return fmt.Errorf("failed to get token: %w", err)
		}

		if outputFormat == "json" {
			return printJSON(cmd.OutOrStdout(), token)
		}

		fmt.Fprintln(cmd.OutOrStdout(), token.AccessToken)
		return nil
	},
}

func tokenEndpoint(ctx context.Context) (string, error) {
	if tokenURL != "" {
		return tokenURL, nil
	}

	if issuerURL == "" {
		return "", fmt.Errorf("either --token-url or --issuer-url must be provided")
	}

	// Discovery endpoint
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return "", fmt.Errorf("failed to create OIDC provider from issuer: %w", err)
	}

	return provider.Endpoint().TokenURL, nil
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&clientID, "client-id", "", "Client ID")
	tokenCmd.Flags().StringVar(&clientSecret, "client-secret", "", "Client Secret")
	tokenCmd.Flags().StringVar(&tokenURL, "token-url", "", "Token URL")
	tokenCmd.Flags().StringVar(&issuerURL, "issuer-url", "", "Issuer URL (for OIDC discovery)")
	tokenCmd.Flags().StringVar(&username, "username", "", "Resource owner, switches to the password grant")
	tokenCmd.Flags().StringSliceVar(&scopes, "scopes", []string{}, "Scopes (comma-separated)")

	_ = tokenCmd.MarkFlagRequired("client-id")
}
