// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/canonical/tenant-session/internal/kratos"
	"github.com/canonical/tenant-session/internal/types"
	"github.com/canonical/tenant-session/pkg/session"
)

var (
	sessionToken string
	loginEmail   string
	loginTenant  string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Sign in against Kratos and show the resolved session",
}

var sessionLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password and print the session",
	Long: `Sign in with email and password and print the session.

The password is read from the KRATOS_PASSWORD environment variable. The
printed session token can be passed to "session status" and "session logout".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := os.Getenv("KRATOS_PASSWORD")
		if loginEmail == "" || password == "" {
			return fmt.Errorf("--email and KRATOS_PASSWORD are required")
		}

		return withSession(cmd, func(s *session.Session, frontend *kratos.FrontendClient) error {
			err := s.Login(cmd.Context(), types.Credential{
				Method:     types.CredentialPassword,
				Identifier: loginEmail,
				Password:   password,
			})
			if err != nil {
				return err
			}

			if loginTenant != "" {
				if err := s.SwitchActiveTenant(cmd.Context(), loginTenant); err != nil {
					return fmt.Errorf("failed to switch active tenant: %w", err)
				}
			}

			return printSession(cmd.OutOrStdout(), s.View(), frontend.SessionToken())
		})
	},
}

var sessionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Resolve the session of an existing session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *session.Session, frontend *kratos.FrontendClient) error {
			if _, err := frontend.Resume(cmd.Context(), sessionToken); err != nil {
				return err
			}

			return printSession(cmd.OutOrStdout(), s.View(), "")
		})
	},
}

var sessionLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke a session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *session.Session, frontend *kratos.FrontendClient) error {
			if _, err := frontend.Resume(cmd.Context(), sessionToken); err != nil {
				return err
			}

			if err := s.Logout(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		})
	},
}

func init() {
	sessionLoginCmd.Flags().StringVar(&loginEmail, "email", "", "Email to sign in with")
	sessionLoginCmd.Flags().StringVar(&loginTenant, "tenant", "", "Switch to this tenant after signing in")

	for _, c := range []*cobra.Command{sessionStatusCmd, sessionLogoutCmd} {
		c.Flags().StringVar(&sessionToken, "session-token", "", "Kratos session token")
		_ = c.MarkFlagRequired("session-token")
	}

	sessionCmd.AddCommand(sessionLoginCmd, sessionStatusCmd, sessionLogoutCmd)
	rootCmd.AddCommand(sessionCmd)
}

func withSession(cmd *cobra.Command, fn func(*session.Session, *kratos.FrontendClient) error) error {
	d, err := openDirectory()
	if err != nil {
		return err
	}
	defer d.Close()

	if d.specs.KratosPublicURL == "" {
		return fmt.Errorf("KRATOS_PUBLIC_URL is required")
	}

	frontend := kratos.NewFrontendClient(d.specs.KratosPublicURL, d.tracer, d.monitor, d.logger)

	s := session.NewSession(frontend, d.resolver(), d.tracer, d.monitor, d.logger)
	defer s.Close()

	return fn(s, frontend)
}

func printSession(out io.Writer, view session.View, token string) error {
	if outputFormat == "json" {
		return printJSON(out, map[string]interface{}{"session": view, "session_token": token})
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if view.Identity != nil {
		fmt.Fprintf(w, "Identity:\t%s (%s)\n", view.Identity.Email, view.Identity.ID)
	}
	fmt.Fprintf(w, "State:\t%s\n", view.State)
	if view.Message != "" {
		fmt.Fprintf(w, "Message:\t%s\n", view.Message)
	}
	if view.Tenant != nil {
		fmt.Fprintf(w, "Tenant:\t%s (%s)\n", view.Tenant.Name, view.Tenant.ID)
	}
	if view.SiteAdmin {
		fmt.Fprintf(w, "Site admin:\tyes\n")
	}

	var visible, editable []string
	for section := range view.Permissions {
		if view.Permissions.Can(section, "view") {
			visible = append(visible, section)
		}
		if view.Permissions.Can(section, "edit") {
			editable = append(editable, section)
		}
	}
	sort.Strings(visible)
	sort.Strings(editable)
	if len(visible) > 0 {
		fmt.Fprintf(w, "Can view:\t%s\n", strings.Join(visible, ", "))
	}
	if len(editable) > 0 {
		fmt.Fprintf(w, "Can edit:\t%s\n", strings.Join(editable, ", "))
	}

	if token != "" {
		fmt.Fprintf(w, "Session token:\t%s\n", token)
	}

	return nil
}
