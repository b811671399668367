// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"errors"
	"fmt"
	"sync"

	ory "github.com/ory/client-go"

	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/internal/types"
)

var ErrUnsupportedCredential = errors.New("unsupported credential method")

// FrontendClient signs a single user in and out through the Kratos native
// (API) flows and reports every identity change to its listeners. It holds
// the session token of the signed in user.
type FrontendClient struct {
	client *ory.APIClient

	mu        sync.Mutex
	token     string
	listeners map[uint64]func(*types.Identity)
	nextID    uint64

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// OnChange registers fn for identity changes, nil meaning signed out. The
// returned function removes the registration.
func (c *FrontendClient) OnChange(fn func(*types.Identity)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// emit runs the listeners on the caller's goroutine, outside the lock.
func (c *FrontendClient) emit(identity *types.Identity) {
	c.mu.Lock()
	listeners := make([]func(*types.Identity), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(identity)
	}
}

func (c *FrontendClient) SignIn(ctx context.Context, cred types.Credential) (*types.Identity, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.FrontendClient.SignIn")
	defer span.End()

	if cred.Method != types.CredentialPassword {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCredential, cred.Method)
	}

	flow, _, err := c.client.FrontendAPI.CreateNativeLoginFlow(ctx).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create login flow: %w", err)
	}

	body := ory.UpdateLoginFlowWithPasswordMethodAsUpdateLoginFlowBody(
		&ory.UpdateLoginFlowWithPasswordMethod{
			Method:     types.CredentialPassword,
			Identifier: cred.Identifier,
			Password:   cred.Password,
		},
	)

	login, _, err := c.client.FrontendAPI.UpdateLoginFlow(ctx).Flow(flow.GetId()).UpdateLoginFlowBody(body).Execute()
	if err != nil {
		c.logger.Security().AuthnLoginFail(cred.Identifier)
		return nil, fmt.Errorf("failed to complete login flow: %w", err)
	}

	session := login.GetSession()
	identity := toIdentity(session.GetIdentity())

	c.mu.Lock()
	c.token = login.GetSessionToken()
	c.mu.Unlock()

	c.logger.Security().AuthnLoginSuccess(identity.ID)
	c.emit(identity)

	return identity, nil
}

// Resume adopts an existing session token, as handed out by a previous
// SignIn, and announces its identity.
func (c *FrontendClient) Resume(ctx context.Context, token string) (*types.Identity, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.FrontendClient.Resume")
	defer span.End()

	session, _, err := c.client.FrontendAPI.ToSession(ctx).XSessionToken(token).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to resume session: %w", err)
	}

	identity := toIdentity(session.GetIdentity())

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	c.emit(identity)

	return identity, nil
}

// SignOut revokes the session token if there is one. Listeners are told the
// user is gone even when revocation fails.
func (c *FrontendClient) SignOut(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "kratos.FrontendClient.SignOut")
	defer span.End()

	c.mu.Lock()
	token := c.token
	c.token = ""
	c.mu.Unlock()

	var err error
	if token != "" {
		_, err = c.client.FrontendAPI.PerformNativeLogout(ctx).
			PerformNativeLogoutBody(ory.PerformNativeLogoutBody{SessionToken: token}).
			Execute()
	}

	c.emit(nil)

	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}

func (c *FrontendClient) SessionToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.token
}

func NewFrontendClient(kratosPublicURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *FrontendClient {
	return &FrontendClient{
		client:    newAPIClient(kratosPublicURL),
		listeners: make(map[uint64]func(*types.Identity)),
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}
