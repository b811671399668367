// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionTrial     SubscriptionStatus = "trial"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionSuspended SubscriptionStatus = "suspended"
)

type Subscription struct {
	Status      SubscriptionStatus `json:"status"`
	TrialEndsAt *time.Time         `json:"trial_ends_at,omitempty"`
}

// Expired is true for an explicit expiry and for a trial past its end date,
// even when the stored status was never updated.
func (s Subscription) Expired(now time.Time) bool {
	if s.Status == SubscriptionExpired {
		return true
	}

	return s.status() == SubscriptionTrial && s.TrialEndsAt != nil && s.TrialEndsAt.Before(now)
}

// Active reports whether the tenant may use the product at now.
func (s Subscription) Active(now time.Time) bool {
	switch s.status() {
	case SubscriptionActive:
		return true
	case SubscriptionTrial:
		return !s.Expired(now)
	}

	return false
}

// DaysRemaining is the number of started days left in the trial, nil when
// there is no trial end date.
func (s Subscription) DaysRemaining(now time.Time) *int {
	if s.TrialEndsAt == nil {
		return nil
	}

	remaining := s.TrialEndsAt.Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}

	return &days
}

func (s Subscription) status() SubscriptionStatus {
	if s.Status == "" {
		return SubscriptionTrial
	}

	return s.Status
}
