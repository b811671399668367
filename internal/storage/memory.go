// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/tenant-session/internal/types"
)

var _ StorageInterface = (*MemoryStorage)(nil)

// MemoryStorage keeps the directory in process. It follows the same
// conflict and normalization rules as Storage and hands out copies only.
type MemoryStorage struct {
	mu sync.RWMutex

	requests    map[string]types.AccessRequest
	invites     map[string]types.Invite
	tenants     map[string]types.Tenant
	profiles    map[string]types.UserProfile
	memberships map[string]map[string]types.Membership

	now func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	s := new(MemoryStorage)

	s.requests = make(map[string]types.AccessRequest)
	s.invites = make(map[string]types.Invite)
	s.tenants = make(map[string]types.Tenant)
	s.profiles = make(map[string]types.UserProfile)
	s.memberships = make(map[string]map[string]types.Membership)
	s.now = func() time.Time { return time.Now().UTC() }

	return s
}

func copyRequest(r types.AccessRequest) *types.AccessRequest {
	c := r
	if r.ApprovedAt != nil {
		t := *r.ApprovedAt
		c.ApprovedAt = &t
	}
	if r.DeniedAt != nil {
		t := *r.DeniedAt
		c.DeniedAt = &t
	}
	return &c
}

func copyTenant(t types.Tenant) *types.Tenant {
	c := t
	c.MemberList = append([]string(nil), t.MemberList...)
	c.StaffList = make([]types.StaffMember, 0, len(t.StaffList))
	for _, m := range t.StaffList {
		perms := make(map[string]bool, len(m.Permissions))
		for k, v := range m.Permissions {
			perms[k] = v
		}
		m.Permissions = perms
		c.StaffList = append(c.StaffList, m)
	}
	if t.Subscription.TrialEndsAt != nil {
		end := *t.Subscription.TrialEndsAt
		c.Subscription.TrialEndsAt = &end
	}
	return &c
}

func (s *MemoryStorage) GetAccessRequest(_ context.Context, email string) (*types.AccessRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.requests[types.RequestKey(email)]
	if !ok {
		return nil, ErrNotFound
	}

	return copyRequest(r), nil
}

func (s *MemoryStorage) ListAccessRequests(_ context.Context, status types.RequestStatus) ([]*types.AccessRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := make([]*types.AccessRequest, 0, len(s.requests))
	for _, r := range s.requests {
		if status != "" && r.Status != status {
			continue
		}
		requests = append(requests, copyRequest(r))
	}

	sort.Slice(requests, func(i, j int) bool {
		if requests[i].RequestedAt.Equal(requests[j].RequestedAt) {
			return requests[i].Key < requests[j].Key
		}
		return requests[i].RequestedAt.Before(requests[j].RequestedAt)
	})

	return requests, nil
}

func (s *MemoryStorage) SubmitAccessRequest(_ context.Context, r *types.AccessRequest) (*types.AccessRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := types.RequestKey(r.Email)
	if existing, ok := s.requests[key]; ok && existing.Status != types.RequestDenied {
		return nil, fmt.Errorf("access request for %s is still open: %w", r.Email, ErrDuplicateKey)
	}

	created := types.AccessRequest{
		Key:            key,
		Email:          types.NormalizeEmail(r.Email),
		Status:         types.RequestPending,
		TenantNameHint: r.TenantNameHint,
		Role:           r.Role,
		RequestedAt:    s.now(),
	}
	s.requests[key] = created

	return copyRequest(created), nil
}

func (s *MemoryStorage) SetAccessRequestStatus(_ context.Context, email string, status types.RequestStatus, actorID string) (*types.AccessRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := types.RequestKey(email)
	r, ok := s.requests[key]
	if !ok || r.Status != types.RequestPending {
		return nil, ErrNotFound
	}

	now := s.now()
	switch status {
	case types.RequestApproved:
		r.ApprovedAt = &now
		r.ApprovedBy = actorID
	case types.RequestDenied:
		r.DeniedAt = &now
		r.DeniedBy = actorID
	default:
		return nil, fmt.Errorf("unsupported status transition to %q", status)
	}
	r.Status = status
	s.requests[key] = r

	return copyRequest(r), nil
}

func (s *MemoryStorage) DeleteAccessRequest(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := types.RequestKey(email)
	if _, ok := s.requests[key]; !ok {
		return ErrNotFound
	}
	delete(s.requests, key)

	return nil
}

func (s *MemoryStorage) GetInvite(_ context.Context, email string) (*types.Invite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.invites[types.NormalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}

	return &i, nil
}

func (s *MemoryStorage) CreateInvite(_ context.Context, invite *types.Invite) (*types.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := *invite
	i.Email = types.NormalizeEmail(invite.Email)
	if existing, ok := s.invites[i.Email]; ok {
		i.CreatedAt = existing.CreatedAt
	} else {
		i.CreatedAt = s.now()
	}
	s.invites[i.Email] = i

	return &i, nil
}

func (s *MemoryStorage) DeleteInvite(_ context.Context, email, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := types.NormalizeEmail(email)
	if i, ok := s.invites[key]; !ok || i.TenantID != tenantID {
		return ErrNotFound
	}
	delete(s.invites, key)

	return nil
}

func (s *MemoryStorage) GetTenant(_ context.Context, id string) (*types.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenants[id]
	if !ok {
		return nil, ErrNotFound
	}

	return copyTenant(t), nil
}

func (s *MemoryStorage) CreateTenant(_ context.Context, t *types.Tenant) (*types.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := copyTenant(*t)
	if c.ID == "" {
		uid, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate tenant ID: %w", err)
		}
		c.ID = uid.String()
	}

	if _, ok := s.tenants[c.ID]; ok {
		return nil, fmt.Errorf("insert tenant: %w", ErrDuplicateKey)
	}

	c.AdminEmail = types.NormalizeEmail(c.AdminEmail)
	for i, e := range c.MemberList {
		c.MemberList[i] = types.NormalizeEmail(e)
	}
	for i := range c.StaffList {
		c.StaffList[i].Email = types.NormalizeEmail(c.StaffList[i].Email)
	}
	if c.Subscription.Status == "" {
		c.Subscription.Status = types.SubscriptionTrial
	}
	c.CreatedAt = s.now()

	s.tenants[c.ID] = *c

	return copyTenant(*c), nil
}

func (s *MemoryStorage) FindTenantByMembership(_ context.Context, email string) (*types.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := types.NormalizeEmail(email)
	if e == "" {
		return nil, ErrNotFound
	}

	ids := make([]string, 0, len(s.tenants))
	for id := range s.tenants {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		t := s.tenants[id]
		for _, m := range t.MemberList {
			if m == e {
				return copyTenant(t), nil
			}
		}
	}

	for _, id := range ids {
		t := s.tenants[id]
		for _, m := range t.StaffList {
			if m.Email == e {
				return copyTenant(t), nil
			}
		}
	}

	return nil, ErrNotFound
}

func (s *MemoryStorage) GetUserProfile(_ context.Context, identityID string) (*types.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[identityID]
	if !ok {
		return nil, ErrNotFound
	}
	p.Roles = append([]string(nil), p.Roles...)

	return &p, nil
}

func (s *MemoryStorage) UpsertUserProfile(_ context.Context, identityID string, patch types.ProfilePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[identityID]
	if !ok {
		p = types.UserProfile{ID: identityID}
	}

	if patch.Email != nil {
		p.Email = types.NormalizeEmail(*patch.Email)
	}
	if patch.ActiveTenantID != nil {
		p.ActiveTenantID = *patch.ActiveTenantID
	}
	if patch.Roles != nil {
		p.Roles = append([]string(nil), patch.Roles...)
	}
	p.UpdatedAt = s.now()

	s.profiles[identityID] = p

	return nil
}

func (s *MemoryStorage) CreateMembership(_ context.Context, identityID, tenantID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[tenantID]; !ok {
		return fmt.Errorf("insert membership: %w", ErrForeignKeyViolation)
	}

	byTenant, ok := s.memberships[identityID]
	if !ok {
		byTenant = make(map[string]types.Membership)
		s.memberships[identityID] = byTenant
	}

	if _, ok := byTenant[tenantID]; ok {
		return nil
	}

	byTenant[tenantID] = types.Membership{
		IdentityID: identityID,
		TenantID:   tenantID,
		Role:       role,
		Status:     types.MembershipActive,
		JoinedAt:   s.now(),
	}

	return nil
}

func (s *MemoryStorage) GetMembership(_ context.Context, identityID, tenantID string) (*types.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.memberships[identityID][tenantID]
	if !ok {
		return nil, ErrNotFound
	}

	return &m, nil
}

func (s *MemoryStorage) ListMemberships(_ context.Context, identityID string) ([]*types.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	memberships := make([]*types.Membership, 0, len(s.memberships[identityID]))
	for _, m := range s.memberships[identityID] {
		m := m
		memberships = append(memberships, &m)
	}

	sort.Slice(memberships, func(i, j int) bool {
		return memberships[i].TenantID < memberships[j].TenantID
	})

	return memberships, nil
}
