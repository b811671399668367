// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/tenant-session/internal/db"
	"github.com/canonical/tenant-session/internal/identity"
	"github.com/canonical/tenant-session/internal/kratos"
	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring/prometheus"
	"github.com/canonical/tenant-session/internal/storage"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/pkg/access"
	"github.com/canonical/tenant-session/pkg/authentication"
	"github.com/canonical/tenant-session/pkg/resolver"
	"github.com/canonical/tenant-session/pkg/web"
	"github.com/canonical/tenant-session/pkg/webhooks"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		main()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs, err := loadSpecs()
	if err != nil {
		panic(err)
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("tenant-session", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, "tenant-session", specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbClient, err := db.NewDBClient(dbConfig(specs), tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	admins := resolver.NewAdminList(specs.SiteAdmins...)
	if len(admins.Emails()) == 0 {
		logger.Warn("No site administrators configured, access requests cannot be reviewed over the API")
	}

	r := resolver.NewResolver(s, admins, specs.DefaultMemberRole, tracer, monitor, logger)
	accessService := access.NewService(s, admins, specs.TrialLength, tracer, monitor, logger)
	webhookService := webhooks.NewService(s, accessService, tracer, monitor, logger)
	if specs.WebhookAPIKey == "" {
		logger.Warn("WEBHOOK_API_KEY is not set, Kratos registration hooks will be refused")
	}

	kratosClient := kratos.NewAdminClient(
		specs.KratosAdminURL,
		tracer,
		monitor,
		logger,
	)
	identityMiddleware := identity.NewMiddleware(kratosClient, tracer, monitor, logger)

	var authn *authentication.Middleware
	if specs.AuthenticationEnabled {
		verifier, err := authentication.NewJWTAuthenticator(
			context.Background(),
			specs.AuthenticationIssuer,
			specs.AuthenticationJwksURL,
			specs.AuthenticationAllowedAuds,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to set up authentication: %w", err)
		}

		authn = authentication.NewMiddleware(verifier, tracer, monitor, logger)
		logger.Info("Authentication is enabled")
	} else {
		logger.Info("Authentication is disabled, trusting the gateway identity header")
	}

	router := web.NewRouter(
		r,
		accessService,
		webhookService,
		specs.WebhookAPIKey,
		identityMiddleware,
		authn,
		dbClient,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func main() {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
