// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Identity is what the identity provider hands over after sign-in. It is the
// only trusted input to session resolution.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDenied   RequestStatus = "denied"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestDenied:
		return true
	}
	return false
}

type AccessRequest struct {
	Key            string        `db:"email_key" json:"-"`
	Email          string        `db:"email" json:"email"`
	Status         RequestStatus `db:"status" json:"status"`
	TenantNameHint string        `db:"tenant_name_hint" json:"tenant_name_hint,omitempty"`
	Role           string        `db:"role" json:"role,omitempty"`
	RequestedAt    time.Time     `db:"requested_at" json:"requested_at"`
	ApprovedAt     *time.Time    `db:"approved_at" json:"approved_at,omitempty"`
	ApprovedBy     string        `db:"approved_by" json:"approved_by,omitempty"`
	DeniedAt       *time.Time    `db:"denied_at" json:"denied_at,omitempty"`
	DeniedBy       string        `db:"denied_by" json:"denied_by,omitempty"`
}

type Invite struct {
	Email     string    `db:"email" json:"email"`
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	Role      string    `db:"role" json:"role,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type StaffMember struct {
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions,omitempty"`
}

type Tenant struct {
	ID           string        `db:"id" json:"id"`
	Name         string        `db:"name" json:"name"`
	AdminEmail   string        `db:"admin_email" json:"admin_email,omitempty"`
	MemberList   []string      `json:"member_list,omitempty"`
	StaffList    []StaffMember `json:"staff_list,omitempty"`
	Subscription Subscription  `json:"subscription"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}

// HasMember reports whether email appears on either membership surface.
func (t *Tenant) HasMember(email string) bool {
	e := NormalizeEmail(email)
	if e == "" {
		return false
	}

	for _, m := range t.MemberList {
		if NormalizeEmail(m) == e {
			return true
		}
	}

	for _, s := range t.StaffList {
		if NormalizeEmail(s.Email) == e {
			return true
		}
	}

	return false
}

// RoleFor returns the staff role recorded for email, or fallback when the
// email only appears on the member list or has no role.
func (t *Tenant) RoleFor(email, fallback string) string {
	e := NormalizeEmail(email)
	for _, s := range t.StaffList {
		if NormalizeEmail(s.Email) == e && s.Role != "" {
			return s.Role
		}
	}

	return fallback
}

type UserProfile struct {
	ID             string    `db:"id" json:"id"`
	Email          string    `db:"email" json:"email,omitempty"`
	ActiveTenantID string    `db:"active_tenant_id" json:"active_tenant_id,omitempty"`
	Roles          []string  `db:"roles" json:"roles,omitempty"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ProfilePatch carries the fields of a partial profile upsert, nil fields are
// left untouched.
type ProfilePatch struct {
	Email          *string
	ActiveTenantID *string
	Roles          []string
}

type Membership struct {
	IdentityID string    `db:"identity_id" json:"identity_id"`
	TenantID   string    `db:"tenant_id" json:"tenant_id"`
	Role       string    `db:"role" json:"role"`
	Status     string    `db:"status" json:"status"`
	JoinedAt   time.Time `db:"joined_at" json:"joined_at"`
}

const MembershipActive = "active"

// Credential is handed to the identity provider on sign-in.
type Credential struct {
	Method     string
	Identifier string
	Password   string
}

const CredentialPassword = "password"
