// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/tenant-session/internal/kratos"
	"github.com/canonical/tenant-session/internal/types"
	"github.com/canonical/tenant-session/pkg/access"
)

var (
	actorEmail   string
	statusFilter string
	inviteTenant string
	inviteRole   string
)

var accessCmd = &cobra.Command{
	Use:   "access",
	Short: "Review access requests and invite staff",
	Long: `Review access requests and invite staff directly against the directory.

Every subcommand acts on behalf of --as, which must be one of SITE_ADMINS.
When KRATOS_ADMIN_URL is set the decision is recorded against the Kratos
identity of --as.`,
}

var listAccessCmd = &cobra.Command{
	Use:   "list",
	Short: "List access requests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAccess(cmd, func(svc *access.Service, _ *types.Identity) error {
			requests, err := svc.ListRequests(cmd.Context(), types.RequestStatus(statusFilter))
			if err != nil {
				return err
			}

			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), requests)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "EMAIL\tSTATUS\tTENANT NAME\tROLE\tREQUESTED AT")
			for _, r := range requests {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Email, r.Status, r.TenantNameHint, r.Role, r.RequestedAt.Format(time.RFC3339))
			}

			return w.Flush()
		})
	},
}

var approveAccessCmd = &cobra.Command{
	Use:   "approve [email]",
	Short: "Approve a pending access request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAccess(cmd, func(svc *access.Service, actor *types.Identity) error {
			r, err := svc.Approve(cmd.Context(), actor, args[0])
			if err != nil {
				return fmt.Errorf("failed to approve access request: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Access request for %s approved\n", r.Email)
			return nil
		})
	},
}

var denyAccessCmd = &cobra.Command{
	Use:   "deny [email]",
	Short: "Deny a pending access request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAccess(cmd, func(svc *access.Service, actor *types.Identity) error {
			r, err := svc.Deny(cmd.Context(), actor, args[0])
			if err != nil {
				return fmt.Errorf("failed to deny access request: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Access request for %s denied\n", r.Email)
			return nil
		})
	},
}

var purgeAccessCmd = &cobra.Command{
	Use:   "purge [email]",
	Short: "Delete an access request whatever its status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAccess(cmd, func(svc *access.Service, actor *types.Identity) error {
			if err := svc.Purge(cmd.Context(), actor, args[0]); err != nil {
				return fmt.Errorf("failed to delete access request: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Access request for %s deleted\n", args[0])
			return nil
		})
	},
}

var inviteAccessCmd = &cobra.Command{
	Use:   "invite [email]",
	Short: "Invite an email to a tenant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAccess(cmd, func(svc *access.Service, actor *types.Identity) error {
			invite, err := svc.CreateInvite(cmd.Context(), actor, &access.InviteRequest{
				Email:    args[0],
				TenantID: inviteTenant,
				Role:     inviteRole,
			})
			if err != nil {
				return fmt.Errorf("failed to create invite: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Invited %s to tenant %s\n", invite.Email, invite.TenantID)
			return nil
		})
	},
}

func init() {
	accessCmd.PersistentFlags().StringVar(&actorEmail, "as", "", "Email of the site administrator performing the action")
	_ = accessCmd.MarkPersistentFlagRequired("as")

	listAccessCmd.Flags().StringVar(&statusFilter, "status", "", "Only list requests with this status (pending, approved, denied)")

	inviteAccessCmd.Flags().StringVar(&inviteTenant, "tenant", "", "Tenant ID")
	inviteAccessCmd.Flags().StringVar(&inviteRole, "role", "", "Role granted on acceptance")
	_ = inviteAccessCmd.MarkFlagRequired("tenant")

	accessCmd.AddCommand(listAccessCmd, approveAccessCmd, denyAccessCmd, purgeAccessCmd, inviteAccessCmd)
	rootCmd.AddCommand(accessCmd)
}

func withAccess(cmd *cobra.Command, fn func(*access.Service, *types.Identity) error) error {
	d, err := openDirectory()
	if err != nil {
		return err
	}
	defer d.Close()

	if !d.admins.Contains(actorEmail) {
		return fmt.Errorf("%s is not a site administrator", actorEmail)
	}

	var kratosClient kratos.AdminClientInterface
	if d.specs.KratosAdminURL != "" {
		kratosClient = kratos.NewAdminClient(d.specs.KratosAdminURL, d.tracer, d.monitor, d.logger)
	}

	actor, err := actorIdentity(cmd.Context(), kratosClient, actorEmail)
	if err != nil {
		return err
	}

	svc := access.NewService(d.storage, d.admins, d.specs.TrialLength, d.tracer, d.monitor, d.logger)

	return fn(svc, actor)
}

// actorIdentity names the acting administrator. Without a Kratos admin
// client the id is derived from the email.
func actorIdentity(ctx context.Context, kratosClient kratos.AdminClientInterface, email string) (*types.Identity, error) {
	actor := &types.Identity{ID: "cli:" + types.NormalizeEmail(email), Email: email}
	if kratosClient == nil {
		return actor, nil
	}

	id, err := kratosClient.GetIdentityIDByEmail(ctx, email)
	if errors.Is(err, kratos.ErrIdentityNotFound) {
		return nil, fmt.Errorf("no Kratos identity for %s", email)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", email, err)
	}

	actor.ID = id

	return actor, nil
}
