// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resolver

import (
	"github.com/canonical/tenant-session/internal/types"
)

type Fact int

const (
	FactProfile Fact = iota + 1
	FactAccessRequest
	FactInvite
	FactTenant
	FactMemberTenant
	FactMembership
)

func (f Fact) String() string {
	switch f {
	case FactProfile:
		return "profile"
	case FactAccessRequest:
		return "access_request"
	case FactInvite:
		return "invite"
	case FactTenant:
		return "tenant"
	case FactMemberTenant:
		return "membership_scan"
	case FactMembership:
		return "membership"
	}
	return "unknown"
}

// Need names a single directory read. Key is the tenant id for FactTenant
// and FactMembership and empty otherwise.
type Need struct {
	Fact Fact
	Key  string
}

func (n Need) String() string {
	if n.Key == "" {
		return n.Fact.String()
	}
	return n.Fact.String() + "(" + n.Key + ")"
}

// Snapshot is what a resolution run has read from the directory so far. A
// loaded fact may be nil, meaning the record does not exist.
type Snapshot struct {
	loaded map[Need]bool

	profile      *types.UserProfile
	request      *types.AccessRequest
	invite       *types.Invite
	memberTenant *types.Tenant
	tenants      map[string]*types.Tenant
	memberships  map[string]*types.Membership
}

func NewSnapshot() *Snapshot {
	s := new(Snapshot)

	s.loaded = make(map[Need]bool)
	s.tenants = make(map[string]*types.Tenant)
	s.memberships = make(map[string]*types.Membership)

	return s
}

func (s *Snapshot) Loaded(n Need) bool {
	return s.loaded[n]
}

func (s *Snapshot) SetProfile(p *types.UserProfile) {
	s.loaded[Need{Fact: FactProfile}] = true
	s.profile = p
}

func (s *Snapshot) SetAccessRequest(r *types.AccessRequest) {
	s.loaded[Need{Fact: FactAccessRequest}] = true
	s.request = r
}

func (s *Snapshot) SetInvite(i *types.Invite) {
	s.loaded[Need{Fact: FactInvite}] = true
	s.invite = i
}

func (s *Snapshot) SetMemberTenant(t *types.Tenant) {
	s.loaded[Need{Fact: FactMemberTenant}] = true
	s.memberTenant = t
	if t != nil {
		s.SetTenant(t.ID, t)
	}
}

func (s *Snapshot) SetTenant(id string, t *types.Tenant) {
	s.loaded[Need{Fact: FactTenant, Key: id}] = true
	s.tenants[id] = t
}

func (s *Snapshot) SetMembership(tenantID string, m *types.Membership) {
	s.loaded[Need{Fact: FactMembership, Key: tenantID}] = true
	s.memberships[tenantID] = m
}

func (s *Snapshot) Profile() *types.UserProfile {
	return s.profile
}

func (s *Snapshot) AccessRequest() *types.AccessRequest {
	return s.request
}
