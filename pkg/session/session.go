// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
	"sync"
	"time"

	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/internal/types"
	"github.com/canonical/tenant-session/pkg/resolver"
)

const defaultResolutionTimeout = 30 * time.Second

// Session is the client side view of one signed in user. Identity changes
// reported by the provider drive resolution, each change supersedes any
// resolution still in flight.
//
// The cached fields are guarded by mu, which is never held across provider
// or directory calls.
type Session struct {
	provider IdentityProviderInterface
	resolver ResolverInterface

	mu       sync.Mutex
	identity *types.Identity
	epoch    uint64
	view     View

	subscribers map[uint64]func(View)
	nextSub     uint64

	detach  func()
	timeout time.Duration
	now     func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Login signs in with the provider. The identity change it triggers drives
// resolution, the returned error reports only the sign in itself.
func (s *Session) Login(ctx context.Context, cred types.Credential) error {
	ctx, span := s.tracer.Start(ctx, "session.Session.Login")
	defer span.End()

	if _, err := s.provider.SignIn(ctx, cred); err != nil {
		return &ProviderError{Op: "sign in", Err: err}
	}

	return nil
}

// Logout drops every cached record before asking the provider to sign out.
func (s *Session) Logout(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "session.Session.Logout")
	defer span.End()

	s.mu.Lock()
	previous := s.identity
	s.epoch++
	s.identity = nil
	s.view = unauthenticatedView()
	view := s.view
	s.mu.Unlock()

	s.publish(view)

	if previous != nil {
		s.logger.Security().AuthnLogout(previous.ID)
	}

	if err := s.provider.SignOut(ctx); err != nil {
		return &ProviderError{Op: "sign out", Err: err}
	}

	return nil
}

// Refresh resolves the latched identity again, typically after an
// administrator acted on its request or invite.
func (s *Session) Refresh(ctx context.Context) View {
	ctx, span := s.tracer.Start(ctx, "session.Session.Refresh")
	defer span.End()

	s.mu.Lock()
	identity := s.identity
	if identity == nil {
		view := s.view
		s.mu.Unlock()
		return view
	}
	s.epoch++
	epoch := s.epoch
	s.mu.Unlock()

	return s.resolve(ctx, identity, epoch)
}

// SwitchActiveTenant persists tenantID as the active tenant. The cached
// view moves to ready when it was ready or waiting for a tenant. Like any
// other resolution the switch supersedes results still in flight, and is
// itself superseded by a later identity change or refresh.
func (s *Session) SwitchActiveTenant(ctx context.Context, tenantID string) error {
	ctx, span := s.tracer.Start(ctx, "session.Session.SwitchActiveTenant")
	defer span.End()

	s.mu.Lock()
	identity := s.identity
	if identity == nil {
		s.mu.Unlock()
		return resolver.ErrUnauthenticated
	}
	s.epoch++
	epoch := s.epoch
	s.mu.Unlock()

	tenant, err := s.resolver.SwitchActiveTenant(ctx, identity, tenantID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.epoch != epoch || s.identity != identity {
		s.mu.Unlock()
		s.logger.Debugf("discarding stale tenant switch for %s", identity.ID)
		return nil
	}

	switch s.view.State {
	case resolver.StateReady, resolver.StateNeedsTenantSetup:
		s.view.State = resolver.StateReady
		s.view.Tenant = tenant
	}

	profile := types.UserProfile{ID: identity.ID, Email: types.NormalizeEmail(identity.Email)}
	if s.view.Profile != nil {
		profile = *s.view.Profile
	}
	profile.ActiveTenantID = tenant.ID
	s.view.Profile = &profile
	s.view.refresh(s.now())

	view := s.view
	s.mu.Unlock()

	s.publish(view)

	return nil
}

// handleIdentity is the provider's change listener.
func (s *Session) handleIdentity(identity *types.Identity) {
	s.mu.Lock()
	s.epoch++
	epoch := s.epoch

	if identity == nil {
		alreadyOut := s.identity == nil && s.view.State == resolver.StateUnauthenticated
		s.identity = nil
		s.view = unauthenticatedView()
		view := s.view
		s.mu.Unlock()

		if !alreadyOut {
			s.publish(view)
		}
		return
	}

	s.identity = identity
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.resolve(ctx, identity, epoch)
}

// resolve commits the result only if no newer identity change or refresh
// happened meanwhile and returns the view in force afterwards.
func (s *Session) resolve(ctx context.Context, identity *types.Identity, epoch uint64) View {
	result := s.resolver.Resolve(ctx, identity)

	s.mu.Lock()
	if s.epoch != epoch || s.identity != identity {
		view := s.view
		s.mu.Unlock()
		s.logger.Debugf("discarding stale resolution for %s", identity.ID)
		return view
	}

	s.view = NewView(result, s.now())
	view := s.view
	s.mu.Unlock()

	if result.Err != nil {
		s.logger.Warnf("session resolution for %s failed: %v", identity.ID, result.Err)
	}

	s.publish(view)

	return view
}

// Subscribe calls fn with every committed view, the returned function
// stops the calls.
func (s *Session) Subscribe(fn func(View)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Session) publish(view View) {
	s.mu.Lock()
	subscribers := make([]func(View), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(view)
	}
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view
}

func (s *Session) State() resolver.State {
	return s.View().State
}

func (s *Session) Identity() *types.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.identity
}

func (s *Session) ActiveTenant() *types.Tenant {
	return s.View().Tenant
}

func (s *Session) Profile() *types.UserProfile {
	return s.View().Profile
}

func (s *Session) AccessRequest() *types.AccessRequest {
	return s.View().AccessRequest
}

func (s *Session) Permissions() Permissions {
	return s.View().Permissions
}

// Close stops listening to the provider, the cached view is kept.
func (s *Session) Close() {
	if s.detach != nil {
		s.detach()
	}
}

func NewSession(provider IdentityProviderInterface, r ResolverInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Session {
	s := new(Session)

	s.provider = provider
	s.resolver = r
	s.view = unauthenticatedView()
	s.subscribers = make(map[uint64]func(View))
	s.timeout = defaultResolutionTimeout
	s.now = time.Now

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	s.detach = provider.OnChange(s.handleIdentity)

	return s
}
