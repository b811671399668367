// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"testing"
	"time"
)

func TestNormalizeEmail(t *testing.T) {
	if NormalizeEmail(" Coach@School.com ") != "coach@school.com" {
		t.Errorf("unexpected normalization: %q", NormalizeEmail(" Coach@School.com "))
	}
}

func TestRequestKey(t *testing.T) {
	testCases := []struct {
		name     string
		email    string
		expected string
	}{
		{name: "lowercase", email: "coach@school.com", expected: "coach@school_com"},
		{name: "mixed case", email: "Coach@School.com", expected: "coach@school_com"},
		{name: "dots in local part", email: "First.Last@x.org", expected: "first_last@x_org"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RequestKey(tc.email); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestTenant_HasMember(t *testing.T) {
	tenant := &Tenant{
		ID:         "t1",
		MemberList: []string{"member@x.com"},
		StaffList:  []StaffMember{{Email: "Staff@X.com", Role: "Head Coach"}},
	}

	testCases := []struct {
		email    string
		expected bool
	}{
		{email: "member@x.com", expected: true},
		{email: "MEMBER@x.com", expected: true},
		{email: "staff@x.com", expected: true},
		{email: "other@x.com", expected: false},
		{email: "", expected: false},
	}

	for _, tc := range testCases {
		if got := tenant.HasMember(tc.email); got != tc.expected {
			t.Errorf("HasMember(%q): expected %v, got %v", tc.email, tc.expected, got)
		}
	}

	if role := tenant.RoleFor("staff@x.com", "member"); role != "Head Coach" {
		t.Errorf("expected staff role, got %q", role)
	}

	if role := tenant.RoleFor("member@x.com", "member"); role != "member" {
		t.Errorf("expected fallback role, got %q", role)
	}
}

func TestSubscription(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(36 * time.Hour)

	testCases := []struct {
		name          string
		sub           Subscription
		active        bool
		expired       bool
		daysRemaining *int
	}{
		{name: "empty status is a trial", sub: Subscription{}, active: true},
		{name: "running trial", sub: Subscription{Status: SubscriptionTrial, TrialEndsAt: &future}, active: true, daysRemaining: intPtr(2)},
		{name: "lapsed trial", sub: Subscription{Status: SubscriptionTrial, TrialEndsAt: &past}, active: false, expired: true, daysRemaining: intPtr(0)},
		{name: "active", sub: Subscription{Status: SubscriptionActive}, active: true},
		{name: "expired", sub: Subscription{Status: SubscriptionExpired}, active: false, expired: true},
		{name: "suspended", sub: Subscription{Status: SubscriptionSuspended}, active: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sub.Active(now); got != tc.active {
				t.Errorf("Active: expected %v, got %v", tc.active, got)
			}
			if got := tc.sub.Expired(now); got != tc.expired {
				t.Errorf("Expired: expected %v, got %v", tc.expired, got)
			}

			got := tc.sub.DaysRemaining(now)
			switch {
			case tc.daysRemaining == nil && got != nil:
				t.Errorf("DaysRemaining: expected nil, got %d", *got)
			case tc.daysRemaining != nil && got == nil:
				t.Errorf("DaysRemaining: expected %d, got nil", *tc.daysRemaining)
			case tc.daysRemaining != nil && *got != *tc.daysRemaining:
				t.Errorf("DaysRemaining: expected %d, got %d", *tc.daysRemaining, *got)
			}
		})
	}
}

func intPtr(i int) *int {
	return &i
}
