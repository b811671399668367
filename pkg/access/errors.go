// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"errors"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrRequestExists     = errors.New("an access request is already open for this email")
	ErrInvalidTransition = errors.New("access request is not pending")
	ErrNotApproved       = errors.New("access request has not been approved")
	ErrTenantExists      = errors.New("caller already belongs to a tenant")
	ErrForbidden         = errors.New("site administrator required")
)

// ValidationError carries a message meant for the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
