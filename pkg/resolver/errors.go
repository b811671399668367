// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resolver

import (
	"errors"
	"fmt"
)

var (
	ErrNotAMember      = errors.New("identity is not a member of the tenant")
	ErrTenantNotFound  = errors.New("tenant not found")
	ErrUnauthenticated = errors.New("no signed in identity")
)

// LookupError is a failed directory read. It ends the resolution in the
// resolution_error state.
type LookupError struct {
	Lookup string
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s lookup failed: %v", e.Lookup, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// RepairError is a failed repair write other than a conflict with an
// existing record.
type RepairError struct {
	Command RepairCommand
	Err     error
}

func (e *RepairError) Error() string {
	return fmt.Sprintf("repair %s failed: %v", e.Command, e.Err)
}

func (e *RepairError) Unwrap() error {
	return e.Err
}
