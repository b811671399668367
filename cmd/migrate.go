// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/canonical/tenant-session/migrations"
)

// migrateCmd applies the directory schema
var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|status|check] [version]",
	Short: "Run database migrations",
	Long: `Run database migrations against the directory database.

The DSN is read from --dsn, falling back to the DSN environment variable.
"down" without a version rolls back the last migration, with a version it
rolls back to that version.`,
	Args: migrateArgs,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().String("dsn", "", "PostgreSQL DSN connection string")

	rootCmd.AddCommand(migrateCmd)
}

func migrateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(0, 2)(cmd, args); err != nil {
		return err
	}

	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "up", "status", "check":
		if len(args) == 2 {
			return fmt.Errorf("%q does not take a version", args[0])
		}
	case "down":
		if len(args) == 2 {
			if v, err := strconv.Atoi(args[1]); err != nil || v < 0 {
				return fmt.Errorf("invalid version number: %q", args[1])
			}
		}
	default:
		return fmt.Errorf("invalid first argument: %q", args[0])
	}

	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	command := "up"
	if len(args) > 0 {
		command = args[0]
	}

	target := int64(-1)
	if len(args) > 1 {
		v, _ := strconv.Atoi(args[1])
		target = int64(v)
	}

	dsn, _ := cmd.Flags().GetString("dsn")
	if dsn == "" {
		dsn = os.Getenv("DSN")
	}

	if dsn == "" {
		return fmt.Errorf("a DSN is required, pass --dsn or set DSN")
	}

	provider, closeDB, err := newMigrationProvider(cmd.Context(), dsn)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("migration up failed: %w", err)
		}
		return reportResults(out, results)
	case "down":
		results, err := migrateDown(ctx, provider, target)
		if err != nil {
			return fmt.Errorf("migration down failed: %w", err)
		}
		return reportResults(out, results)
	case "status":
		return reportStatus(ctx, provider, out)
	case "check":
		return checkPending(ctx, provider, out)
	}

	return nil
}

func newMigrationProvider(ctx context.Context, dsn string) (*goose.Provider, func(), error) {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("DSN validation failed: %w", err)
	}

	db := stdlib.OpenDB(*config)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("DB connection failed: %w", err)
	}

	var opts []goose.ProviderOption
	if outputFormat == "json" {
		opts = append(opts, goose.WithLogger(goose.NopLogger()))
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations, opts...)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create goose provider: %w", err)
	}

	return provider, func() { _ = db.Close() }, nil
}

func migrateDown(ctx context.Context, provider *goose.Provider, target int64) ([]*goose.MigrationResult, error) {
	if target >= 0 {
		return provider.DownTo(ctx, target)
	}

	result, err := provider.Down(ctx)
	if err != nil {
		return nil, err
	}

	return []*goose.MigrationResult{result}, nil
}

func reportResults(out io.Writer, results []*goose.MigrationResult) error {
	if results == nil {
		results = []*goose.MigrationResult{}
	}

	if outputFormat == "json" {
		return printJSON(out, map[string]interface{}{"applied": results})
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No migrations to apply")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(out, "%-4s %s (%s)\n", r.Direction, r.Source.Path, r.Duration.Round(time.Millisecond))
	}

	return nil
}

func reportStatus(ctx context.Context, provider *goose.Provider, out io.Writer) error {
	statuses, err := provider.Status(ctx)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return printJSON(out, statuses)
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "APPLIED AT\tMIGRATION")
	for _, s := range statuses {
		appliedAt := "Pending"
		if s.State == goose.StateApplied {
			appliedAt = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\n", appliedAt, s.Source.Path)
	}

	return w.Flush()
}

func checkPending(ctx context.Context, provider *goose.Provider, out io.Writer) error {
	hasPending, err := provider.HasPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to check pending migrations: %w", err)
	}

	current, verr := provider.GetDBVersion(ctx)

	status := "ok"
	switch {
	case hasPending:
		status = "pending"
	case verr != nil:
		status = "unknown"
	}

	if outputFormat == "json" {
		return printJSON(out, map[string]interface{}{"status": status, "version": current})
	}

	if hasPending {
		return fmt.Errorf("migrations are pending: current version %d", current)
	}

	fmt.Fprintf(out, "Database is up to date (version %d)\n", current)

	return nil
}
